package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/types"
)

func readyRecord() types.SkillData {
	return types.SkillData{
		SkillID:            "teamwork",
		SelectedTools:      types.NewOrderedSet("Slack"),
		Tasks:              []types.TaskItem{{ID: "a", Description: " "}, {ID: "b", Description: "Plan the picnic"}},
		TeachingStrategy:   types.NewOrderedSet("Modeling the behavior"),
		MonitoringApproach: types.NewOrderedSet("Final evaluation"),
		Completed:          true,
	}
}

func TestEvaluate_Complete(t *testing.T) {
	results, status := Evaluate(readyRecord())
	assert.Equal(t, StatusComplete, status)
	require.Len(t, results, 4)
	for _, r := range results {
		assert.True(t, r.Passed, r.ID)
	}
	assert.Equal(t, "Each skill is taught through a real task", results[0].Label)
}

func TestEvaluate_EachSignalDowngrades(t *testing.T) {
	tests := []struct {
		name   string
		failed CheckID
		strip  func(*types.SkillData)
	}{
		{"blank tasks", CheckTask, func(d *types.SkillData) { d.Tasks = []types.TaskItem{{ID: "a", Description: "  "}} }},
		{"no tools", CheckTools, func(d *types.SkillData) { d.SelectedTools = types.OrderedSet{} }},
		{"no strategy", CheckTeaching, func(d *types.SkillData) { d.TeachingStrategy = types.OrderedSet{} }},
		{"no monitoring", CheckMonitoring, func(d *types.SkillData) { d.MonitoringApproach = types.OrderedSet{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := readyRecord()
			tt.strip(&d)
			results, status := Evaluate(d)
			assert.Equal(t, StatusInProgress, status)
			for _, r := range results {
				assert.Equal(t, r.ID != tt.failed, r.Passed, r.ID)
			}
		})
	}
}

func TestEvaluate_LegacyMappingIsNotATask(t *testing.T) {
	d := readyRecord()
	d.Tasks = nil
	d.TaskMapping = "Shadow supervisor weekly"
	results, status := Evaluate(d)
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, CheckTask, results[0].ID)
	assert.False(t, results[0].Passed)

	d.Tasks = []types.TaskItem{{ID: "a", Description: "Open the shop"}}
	_, status = Evaluate(d)
	assert.Equal(t, StatusComplete, status)
}

func TestChecklist_OnlySelectedSkills(t *testing.T) {
	s := NewSkillStore(catalog.Default())
	s.ToggleSkill("teamwork")
	s.ToggleSkill("reliability")
	s.ToggleSkill("leadership")
	s.ToggleSkill("leadership")

	list := Checklist(s.Snapshot())
	require.Len(t, list, 2)
	assert.Equal(t, "reliability", list[0].Skill.ID)
	assert.Equal(t, "teamwork", list[1].Skill.ID)
	assert.False(t, list[0].Complete())
}

func TestResolveTasks(t *testing.T) {
	modern := ResolveTasks(types.SkillData{
		Tasks:       []types.TaskItem{{ID: "1", Description: "a"}},
		TaskMapping: "ignored",
	})
	assert.Equal(t, TaskSourceTasks, modern.Source)
	assert.Equal(t, []types.TaskItem{{ID: "1", Description: "a"}}, modern.Items)
	assert.False(t, modern.ReadOnly())

	legacy := ResolveTasks(types.SkillData{TaskMapping: "Shadow supervisor weekly"})
	assert.Equal(t, TaskSourceLegacy, legacy.Source)
	assert.True(t, legacy.ReadOnly())
	assert.Equal(t, []types.TaskItem{{ID: LegacyTaskID, Description: "Shadow supervisor weekly"}}, legacy.Items)

	none := ResolveTasks(types.SkillData{})
	assert.Equal(t, TaskSourceNone, none.Source)
	assert.Empty(t, none.Items)
	assert.Equal(t, "none", none.Source.String())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 14))
	assert.Equal(t, 14, Percent(2, 14))
	assert.Equal(t, 50, Percent(7, 14))
	assert.Equal(t, 100, Percent(14, 14))
	assert.Equal(t, 0, Percent(3, 0))
}
