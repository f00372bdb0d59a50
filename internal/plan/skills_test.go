package plan

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/types"
)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newTestStore(t *testing.T) *SkillStore {
	t.Helper()
	return NewSkillStore(catalog.Default(), WithIDGenerator(sequentialIDs()))
}

func TestSkillStore_Scenario(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, 0, s.CompletedCount())
	assert.Equal(t, 0, s.Snapshot().Progress().Percent)

	s.ToggleSkill("reliability")
	s.ToggleSkill("teamwork")
	assert.Equal(t, 2, s.CompletedCount())
	assert.Equal(t, 14, s.Snapshot().Progress().Percent)

	s.ToggleTool("reliability", "Daily task list")
	rel, _ := s.Snapshot().Get("reliability")
	assert.Equal(t, "Daily task list", rel.SelectedTools.String())
	s.ToggleTool("reliability", "Daily task list")
	rel, _ = s.Snapshot().Get("reliability")
	assert.Equal(t, "", rel.SelectedTools.String())

	team, _ := s.Snapshot().Get("teamwork")
	require.Len(t, team.Tasks, 1, "a new record starts with one task")
	first := team.Tasks[0].ID
	_, second := s.AddTask("teamwork")
	require.NotEmpty(t, second)
	s.UpdateTaskDescription("teamwork", second, "Run the Friday stand-up")
	s.RemoveTask("teamwork", first)
	team, _ = s.Snapshot().Get("teamwork")
	require.Len(t, team.Tasks, 1)
	assert.Equal(t, second, team.Tasks[0].ID)
	assert.Equal(t, "Run the Friday stand-up", team.Tasks[0].Description)

	s.ToggleTool("reliability", "Shared checklist")
	s.UpdateTaskDescription("reliability", rel.Tasks[0].ID, "Open the store")
	s.ToggleSkill("reliability")
	assert.False(t, s.Snapshot().IsSelected("reliability"))
	s.ToggleSkill("reliability")

	rel, _ = s.Snapshot().Get("reliability")
	assert.True(t, rel.Completed)
	assert.Equal(t, "Shared checklist", rel.SelectedTools.String())
	require.Len(t, rel.Tasks, 1)
	assert.Equal(t, "Open the store", rel.Tasks[0].Description)
}

func TestSkillStore_ToggleSkillCreatesOneTask(t *testing.T) {
	s := newTestStore(t)
	snap := s.ToggleSkill("leadership")

	d, ok := snap.Get("leadership")
	require.True(t, ok)
	assert.True(t, d.Completed)
	require.Len(t, d.Tasks, 1)
	assert.Equal(t, "task-1", d.Tasks[0].ID)
	assert.Equal(t, "", d.Tasks[0].Description)
	assert.False(t, d.UpdatedAt.IsZero())
}

func TestSkillStore_UnknownSkillIsNoop(t *testing.T) {
	s := newTestStore(t)
	before := s.Snapshot()

	assert.Same(t, before, s.ToggleSkill("juggling"))
	assert.Same(t, before, s.ToggleTool("reliability", "Timers"))
	assert.Same(t, before, s.SaveTaskMapping("reliability", "x"))
	assert.Same(t, before, s.SetNotes("reliability", "x"))
	snap, id := s.AddTask("reliability")
	assert.Same(t, before, snap)
	assert.Empty(t, id)
	assert.Equal(t, 0, s.Snapshot().Len())
}

func TestSkillStore_RemoveLastTaskIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("discipline")
	d, _ := s.Snapshot().Get("discipline")

	before := s.Snapshot()
	after := s.RemoveTask("discipline", d.Tasks[0].ID)
	assert.Same(t, before, after)

	d, _ = after.Get("discipline")
	assert.Len(t, d.Tasks, 1)
}

func TestSkillStore_RemoveUnknownTaskIsNoop(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("discipline")
	s.AddTask("discipline")

	before := s.Snapshot()
	assert.Same(t, before, s.RemoveTask("discipline", "nope"))
	assert.Same(t, before, s.UpdateTaskDescription("discipline", "nope", "x"))
}

func TestSkillStore_InvalidToggleValues(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("teamwork")
	before := s.Snapshot()

	assert.Same(t, before, s.ToggleTool("teamwork", ""))
	assert.Same(t, before, s.ToggleTool("teamwork", "   "))
	assert.Same(t, before, s.ToggleStrategy("teamwork", "a,b"))
}

func TestSkillStore_StrategyAndMonitoring(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("teamwork")
	s.ToggleStrategy("teamwork", "Modeling the behavior")
	s.ToggleStrategy("teamwork", "Guided practice with feedback")
	s.ToggleMonitoring("teamwork", "Mid-point evaluation")

	d, _ := s.Snapshot().Get("teamwork")
	assert.Equal(t, "Modeling the behavior,Guided practice with feedback", d.TeachingStrategy.String())
	assert.Equal(t, []string{"Mid-point evaluation"}, d.MonitoringApproach.Items())

	s.ToggleStrategy("teamwork", "Modeling the behavior")
	d, _ = s.Snapshot().Get("teamwork")
	assert.Equal(t, "Guided practice with feedback", d.TeachingStrategy.String())
}

func TestSkillStore_UpdatedAtStrictlyIncreases(t *testing.T) {
	frozen := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := NewSkillStore(catalog.Default(), WithClock(func() time.Time { return frozen }))

	s.ToggleSkill("creativity")
	first, _ := s.Snapshot().Get("creativity")
	s.SetNotes("creativity", "bring sketchbooks")
	second, _ := s.Snapshot().Get("creativity")

	assert.Equal(t, frozen, first.UpdatedAt)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
	assert.Equal(t, "bring sketchbooks", second.Notes)
}

func TestSnapshot_IsImmutable(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("punctuality")
	old := s.Snapshot()

	s.ToggleTool("punctuality", "Google Calendar")
	d, _ := old.Get("punctuality")
	assert.True(t, d.SelectedTools.IsEmpty())

	d.Tasks[0].Description = "mutated copy"
	again, _ := old.Get("punctuality")
	assert.Equal(t, "", again.Tasks[0].Description)
}

func TestSnapshot_CatalogOrder(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("global-fluency")
	s.ToggleSkill("career-management")
	s.ToggleSkill("teamwork")
	s.ToggleSkill("teamwork")

	assert.Equal(t, []string{"career-management", "global-fluency"}, s.SelectedSkillIDs())

	var ids []string
	for _, r := range s.Snapshot().Records() {
		ids = append(ids, r.SkillID)
	}
	assert.Equal(t, []string{"career-management", "teamwork", "global-fluency"}, ids)
}

func TestSkillStore_Restore(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("reliability")

	snap := s.Restore([]types.SkillData{
		{SkillID: "teamwork", Completed: true, SelectedTools: types.NewOrderedSet("Slack")},
		{SkillID: "juggling", Completed: true},
	})

	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, []string{"teamwork"}, snap.SelectedSkillIDs())
	_, ok := snap.Get("reliability")
	assert.False(t, ok)
}

func TestSkillStore_HasTask(t *testing.T) {
	s := newTestStore(t)
	s.ToggleSkill("reliability")
	assert.True(t, s.HasTask("reliability", "task-1"))
	assert.False(t, s.HasTask("reliability", "task-2"))
	assert.False(t, s.HasTask("teamwork", "task-1"))
}
