package plan

import (
	"strings"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/types"
)

// CheckID names one readiness predicate.
type CheckID string

const (
	CheckTask       CheckID = "task"
	CheckTools      CheckID = "tools"
	CheckTeaching   CheckID = "teaching"
	CheckMonitoring CheckID = "monitoring"
)

// Status is the readiness label of a skill.
type Status string

const (
	StatusComplete   Status = "Complete"
	StatusInProgress Status = "In Progress"
)

type check struct {
	id    CheckID
	label string
	pass  func(types.SkillData) bool
}

var checks = []check{
	{CheckTask, "Each skill is taught through a real task", hasDescribedTask},
	{CheckTools, "Tools support consistency", func(d types.SkillData) bool { return !d.SelectedTools.IsEmpty() }},
	{CheckTeaching, "Teaching strategies are defined", func(d types.SkillData) bool { return !d.TeachingStrategy.IsEmpty() }},
	{CheckMonitoring, "Monitoring approaches are selected", func(d types.SkillData) bool { return !d.MonitoringApproach.IsEmpty() }},
}

// hasDescribedTask looks only at the task list. A legacy mapping alone does not count.
func hasDescribedTask(d types.SkillData) bool {
	for _, t := range d.Tasks {
		if strings.TrimSpace(t.Description) != "" {
			return true
		}
	}
	return false
}

// CheckResult is one evaluated predicate.
type CheckResult struct {
	ID     CheckID `json:"id"`
	Label  string  `json:"label"`
	Passed bool    `json:"passed"`
}

// SkillReadiness is the checklist for one selected skill.
type SkillReadiness struct {
	Skill  catalog.Skill `json:"skill"`
	Checks []CheckResult `json:"checks"`
	Status Status        `json:"status"`
}

// Complete reports whether every check passed.
func (r SkillReadiness) Complete() bool {
	return r.Status == StatusComplete
}

// Evaluate runs the four readiness predicates against one record.
func Evaluate(d types.SkillData) ([]CheckResult, Status) {
	results := make([]CheckResult, 0, len(checks))
	status := StatusComplete
	for _, c := range checks {
		ok := c.pass(d)
		if !ok {
			status = StatusInProgress
		}
		results = append(results, CheckResult{ID: c.id, Label: c.label, Passed: ok})
	}
	return results, status
}

// Checklist evaluates every selected skill of snap, in catalog order. It is computed
// on every call.
func Checklist(snap *Snapshot) []SkillReadiness {
	skills := snap.SelectedSkills()
	out := make([]SkillReadiness, 0, len(skills))
	for _, sk := range skills {
		d, _ := snap.Get(sk.ID)
		results, status := Evaluate(d)
		out = append(out, SkillReadiness{Skill: sk, Checks: results, Status: status})
	}
	return out
}
