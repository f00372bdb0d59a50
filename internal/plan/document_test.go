package plan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/types"
)

func TestDocument_RoundTrip(t *testing.T) {
	cat := catalog.Default()
	s := NewSkillStore(cat, WithIDGenerator(sequentialIDs()))
	s.ToggleSkill("reliability")
	s.ToggleTool("reliability", "Daily task list")
	s.ToggleTool("reliability", "Progress board")
	s.UpdateTaskDescription("reliability", "task-1", "Open the shop")
	s.ToggleSkill("teamwork")
	s.ToggleSkill("teamwork")

	org := types.OrganizationData{FirstName: "Ada", OrganizationName: "Acme"}
	exported := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	doc := NewDocument(org, s.Snapshot(), 4, exported)

	data, err := doc.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"selected_tools": "Daily task list,Progress board"`)

	decoded, err := DecodeDocument(data, cat)
	require.NoError(t, err)
	assert.Equal(t, DocumentVersion, decoded.Version)
	assert.Equal(t, 4, decoded.CurrentStep)
	assert.True(t, exported.Equal(decoded.ExportedAt))
	assert.Equal(t, org, decoded.Organization)
	require.Len(t, decoded.Skills, 2)
	assert.Equal(t, "reliability", decoded.Skills[0].SkillID)
	assert.Equal(t, []string{"Daily task list", "Progress board"}, decoded.Skills[0].SelectedTools.Items())
	assert.False(t, decoded.Skills[1].Completed)
}

func TestDecodeDocument_NormalizesAndDropsUnknown(t *testing.T) {
	raw := `{
		"version": 1,
		"organization": {"organizationName": "Acme"},
		"skills": [
			{"skill_id": "reliability", "selected_tools": "Timers,,Timers,Checklists", "task_mapping": "Shadow supervisor weekly", "completed": true},
			{"skill_id": "juggling", "completed": true}
		]
	}`
	doc, err := DecodeDocument([]byte(raw), catalog.Default())
	require.NoError(t, err)
	require.Len(t, doc.Skills, 1)

	rel := doc.Skills[0]
	assert.Equal(t, "Timers,Checklists", rel.SelectedTools.String())
	assert.Empty(t, rel.Tasks)
	assert.Equal(t, TaskSourceLegacy, ResolveTasks(rel).Source)
}

func TestDecodeDocument_Rejects(t *testing.T) {
	_, err := DecodeDocument([]byte(`{"version": 1}`), catalog.Default())
	assert.Error(t, err)

	_, err = DecodeDocument([]byte(`{"version": 99, "organization": {}, "skills": []}`), catalog.Default())
	assert.ErrorContains(t, err, "unsupported plan document version")
}
