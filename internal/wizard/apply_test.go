package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/plan"
)

func TestApplySkillSelection(t *testing.T) {
	s := plan.NewSkillStore(catalog.Default())
	s.ToggleSkill("teamwork")
	s.ToggleTool("teamwork", "Team meetings")

	ApplySkillSelection(s, []string{"leadership", "reliability"})
	assert.Equal(t, []string{"reliability", "leadership"}, s.SelectedSkillIDs())

	ApplySkillSelection(s, []string{"teamwork"})
	assert.Equal(t, []string{"teamwork"}, s.SelectedSkillIDs())
	d, _ := s.Snapshot().Get("teamwork")
	assert.Equal(t, "Team meetings", d.SelectedTools.String())
}

func TestApplyTools_KeepsOrderOfExisting(t *testing.T) {
	s := plan.NewSkillStore(catalog.Default())
	s.ToggleSkill("discipline")
	s.ToggleTool("discipline", "SOPs")
	s.ToggleTool("discipline", "Checklists")

	ApplyTools(s, "discipline", []string{"Task plans", "Checklists", "SOPs"})
	d, _ := s.Snapshot().Get("discipline")
	assert.Equal(t, "SOPs,Checklists,Task plans", d.SelectedTools.String())

	ApplyTools(s, "discipline", []string{"Task plans"})
	d, _ = s.Snapshot().Get("discipline")
	assert.Equal(t, "Task plans", d.SelectedTools.String())
}

func TestApplyStrategiesAndMonitoring(t *testing.T) {
	s := plan.NewSkillStore(catalog.Default())
	s.ToggleSkill("creativity")

	ApplyStrategies(s, "creativity", []string{"Modeling the behavior"})
	ApplyMonitoring(s, "creativity", []string{"Reflection journals", "Final evaluation"})
	ApplyTools(s, "leadership", []string{"Mentoring peers"})

	d, _ := s.Snapshot().Get("creativity")
	assert.Equal(t, []string{"Modeling the behavior"}, d.TeachingStrategy.Items())
	assert.Equal(t, []string{"Reflection journals", "Final evaluation"}, d.MonitoringApproach.Items())
	_, ok := s.Snapshot().Get("leadership")
	assert.False(t, ok)
}
