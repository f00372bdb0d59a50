package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/types"
)

func seededSnapshot(t *testing.T) *plan.Snapshot {
	t.Helper()
	s := plan.NewSkillStore(catalog.Default())
	s.ToggleSkill("teamwork")
	s.ToggleSkill("reliability")
	s.ToggleTool("reliability", "Progress board")
	s.ToggleTool("reliability", "Sticky notes")
	s.ToggleStrategy("teamwork", "Guided practice with feedback")
	s.ToggleMonitoring("teamwork", "Final evaluation")
	return s.Snapshot()
}

func TestBuildView_UnknownStep(t *testing.T) {
	_, ok := BuildView(42, types.OrganizationData{}, seededSnapshot(t))
	assert.False(t, ok)
}

func TestBuildView_Organization(t *testing.T) {
	v, ok := BuildView(StepOrganization, types.OrganizationData{FirstName: "Ada"}, seededSnapshot(t))
	require.True(t, ok)
	require.NotNil(t, v.Organization)
	assert.False(t, v.Organization.Complete)
	assert.Contains(t, v.Organization.Missing, types.FieldContactEmail)
	assert.Nil(t, v.Skills)
}

func TestBuildView_Skills(t *testing.T) {
	v, _ := BuildView(StepSkills, types.OrganizationData{}, seededSnapshot(t))
	require.Len(t, v.Skills, 14)
	assert.Equal(t, 2, v.SelectedCount)
	selected := 0
	for _, c := range v.Skills {
		if c.Selected {
			selected++
		}
	}
	assert.Equal(t, 2, selected)
}

func TestBuildView_ToolsIncludeCustom(t *testing.T) {
	v, _ := BuildView(StepTools, types.OrganizationData{}, seededSnapshot(t))
	require.Len(t, v.Tools, 2)

	rel := v.Tools[0]
	assert.Equal(t, "reliability", rel.Skill.ID)
	last := rel.Options[len(rel.Options)-1]
	assert.Equal(t, Option{Value: "Sticky notes", Selected: true}, last)
	assert.Contains(t, rel.Options, Option{Value: "Progress board", Selected: true})
	assert.Contains(t, rel.Options, Option{Value: "Daily task list", Selected: false})
}

func TestBuildView_TasksResolved(t *testing.T) {
	v, _ := BuildView(StepTasks, types.OrganizationData{}, seededSnapshot(t))
	require.Len(t, v.Tasks, 2)
	assert.Equal(t, plan.TaskSourceTasks, v.Tasks[0].Tasks.Source)
	assert.Len(t, v.Tasks[0].Tasks.Items, 1)
}

func TestBuildView_TeachingAndMonitoring(t *testing.T) {
	snap := seededSnapshot(t)

	teach, _ := BuildView(StepTeaching, types.OrganizationData{}, snap)
	require.Len(t, teach.Teaching, 2)
	assert.Len(t, teach.Teaching[1].Options, 6)
	assert.Contains(t, teach.Teaching[1].Options, Option{Value: "Guided practice with feedback", Selected: true})

	mon, _ := BuildView(StepMonitoring, types.OrganizationData{}, snap)
	assert.Contains(t, mon.Monitoring[1].Options, Option{Value: "Final evaluation", Selected: true})
}

func TestBuildView_AlignmentAndCommunicate(t *testing.T) {
	snap := seededSnapshot(t)

	align, _ := BuildView(StepAlignment, types.OrganizationData{}, snap)
	require.Len(t, align.Alignment, 2)
	assert.Equal(t, plan.StatusInProgress, align.Alignment[0].Status)

	comm, _ := BuildView(StepCommunicate, types.OrganizationData{}, snap)
	assert.Len(t, comm.Communication, 5)
}
