package wizard

import (
	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/types"
)

// ApplySkillSelection toggles skills until exactly want is selected. Deselected skills
// keep their data.
func ApplySkillSelection(skills *plan.SkillStore, want []string) {
	wanted := make(map[string]bool, len(want))
	for _, id := range want {
		wanted[id] = true
	}
	snap := skills.Snapshot()
	for _, sk := range snap.Catalog().Skills {
		if snap.IsSelected(sk.ID) != wanted[sk.ID] {
			skills.ToggleSkill(sk.ID)
		}
	}
}

// matchSet calls toggle for every value whose membership differs between have and
// want. Values already in have keep their position.
func matchSet(have types.OrderedSet, want []string, toggle func(string)) {
	target := types.NewOrderedSet(want...)
	for _, v := range have.Items() {
		if !target.Contains(v) {
			toggle(v)
		}
	}
	for _, v := range target.Items() {
		if !have.Contains(v) {
			toggle(v)
		}
	}
}

// ApplyTools makes the skill's tool set equal want.
func ApplyTools(skills *plan.SkillStore, skillID string, want []string) {
	d, ok := skills.Snapshot().Get(skillID)
	if !ok {
		return
	}
	matchSet(d.SelectedTools, want, func(v string) { skills.ToggleTool(skillID, v) })
}

// ApplyStrategies makes the skill's teaching strategies equal want.
func ApplyStrategies(skills *plan.SkillStore, skillID string, want []string) {
	d, ok := skills.Snapshot().Get(skillID)
	if !ok {
		return
	}
	matchSet(d.TeachingStrategy, want, func(v string) { skills.ToggleStrategy(skillID, v) })
}

// ApplyMonitoring makes the skill's monitoring approaches equal want.
func ApplyMonitoring(skills *plan.SkillStore, skillID string, want []string) {
	d, ok := skills.Snapshot().Get(skillID)
	if !ok {
		return
	}
	matchSet(d.MonitoringApproach, want, func(v string) { skills.ToggleMonitoring(skillID, v) })
}
