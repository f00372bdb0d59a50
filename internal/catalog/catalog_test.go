package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Counts(t *testing.T) {
	c := Default()

	assert.Equal(t, 14, c.TotalSkills())
	assert.Equal(t, 8, c.StepCount())
	assert.Len(t, c.TeachingStrategies, 6)
	assert.Len(t, c.MonitoringApproaches, 6)
	assert.Len(t, c.CommunicationItems, 5)
	assert.Len(t, c.Resources, 15)
}

func TestDefault_SkillLookup(t *testing.T) {
	c := Default()

	s, ok := c.Skill("reliability")
	require.True(t, ok)
	assert.Equal(t, "Reliability", s.Name)
	assert.Contains(t, s.SuggestedTools, "Daily task list")

	_, ok = c.Skill("juggling")
	assert.False(t, ok)
	assert.Equal(t, -1, c.SkillOrder("juggling"))
	assert.Equal(t, 0, c.SkillOrder("career-management"))
	assert.Equal(t, 13, c.SkillOrder("global-fluency"))
}

func TestDefault_StepLookup(t *testing.T) {
	c := Default()

	first, ok := c.Step(1)
	require.True(t, ok)
	assert.Equal(t, "Organization Info", first.Title)

	last, ok := c.Step(8)
	require.True(t, ok)
	assert.Equal(t, "Communicate", last.Title)

	_, ok = c.Step(0)
	assert.False(t, ok)
	_, ok = c.Step(9)
	assert.False(t, ok)
}

func TestDefault_Vocabularies(t *testing.T) {
	c := Default()

	assert.True(t, c.IsTeachingStrategy("Modeling the behavior"))
	assert.False(t, c.IsTeachingStrategy("Weekly supervisor check-ins"))
	assert.True(t, c.IsMonitoringApproach("Reflection journals"))
	assert.False(t, c.IsMonitoringApproach(""))
}

func TestParse_RejectsDuplicateSkill(t *testing.T) {
	data := []byte(`
skills:
  - {id: a, name: A}
  - {id: a, name: B}
steps:
  - {id: 1, title: One}
`)
	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate skill id")
}

func TestParse_RejectsStepGap(t *testing.T) {
	data := []byte(`
skills:
  - {id: a, name: A}
steps:
  - {id: 1, title: One}
  - {id: 3, title: Three}
`)
	_, err := Parse(data)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2")
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("skills: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog YAML")
}

func TestFilterResources(t *testing.T) {
	c := Default()

	t.Run("no filters returns everything", func(t *testing.T) {
		assert.Len(t, c.FilterResources(nil, nil), len(c.Resources))
	})

	t.Run("type filter", func(t *testing.T) {
		got := c.FilterResources([]ResourceType{ResourceVideo}, nil)
		require.Len(t, got, 3)
		for _, r := range got {
			assert.Equal(t, ResourceVideo, r.Type)
		}
	})

	t.Run("audience filter matches any audience", func(t *testing.T) {
		got := c.FilterResources(nil, []Audience{AudienceCounselors})
		ids := make([]string, 0, len(got))
		for _, r := range got {
			ids = append(ids, r.ID)
		}
		assert.Contains(t, ids, "omj-website")
		assert.NotContains(t, ids, "mentor-training")
	})

	t.Run("both filters", func(t *testing.T) {
		got := c.FilterResources([]ResourceType{ResourceTemplate}, []Audience{AudienceCounselors})
		require.Len(t, got, 1)
		assert.Equal(t, "reflection-journal", got[0].ID)
	})
}
