package wizard

import (
	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/types"
)

// View is what one step shows. Only the section belonging to the step is set.
type View struct {
	Step          catalog.Step `json:"step"`
	SelectedCount int          `json:"selectedCount"`

	Organization  *OrganizationForm           `json:"organization,omitempty"`
	Skills        []SkillCard                 `json:"skills,omitempty"`
	Tools         []Choices                   `json:"tools,omitempty"`
	Tasks         []TaskList                  `json:"tasks,omitempty"`
	Teaching      []Choices                   `json:"teaching,omitempty"`
	Monitoring    []Choices                   `json:"monitoring,omitempty"`
	Alignment     []plan.SkillReadiness       `json:"alignment,omitempty"`
	Communication []catalog.CommunicationItem `json:"communication,omitempty"`
}

// OrganizationForm is the profile plus its completeness.
type OrganizationForm struct {
	Data     types.OrganizationData `json:"data"`
	Complete bool                   `json:"complete"`
	Missing  []types.OrgField       `json:"missing"`
}

// SkillCard is one catalog skill with its selection flag.
type SkillCard struct {
	Skill    catalog.Skill `json:"skill"`
	Selected bool          `json:"selected"`
}

// Option is one choosable value.
type Option struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// Choices lists the options for one selected skill.
type Choices struct {
	Skill   catalog.Skill `json:"skill"`
	Options []Option      `json:"options"`
}

// TaskList is the resolved task list of one selected skill.
type TaskList struct {
	Skill catalog.Skill      `json:"skill"`
	Tasks plan.ResolvedTasks `json:"tasks"`
}

// BuildView composes the view of step from a profile and a skill snapshot. It
// reports false for an unknown step.
func BuildView(step int, org types.OrganizationData, snap *plan.Snapshot) (View, bool) {
	cat := snap.Catalog()
	st, ok := cat.Step(step)
	if !ok {
		return View{}, false
	}
	v := View{Step: st, SelectedCount: snap.CompletedCount()}

	switch step {
	case StepOrganization:
		v.Organization = &OrganizationForm{Data: org, Complete: org.IsComplete(), Missing: org.MissingFields()}
	case StepSkills:
		for _, sk := range cat.Skills {
			v.Skills = append(v.Skills, SkillCard{Skill: sk, Selected: snap.IsSelected(sk.ID)})
		}
	case StepTools:
		v.Tools = choicesPerSkill(snap, func(sk catalog.Skill, d types.SkillData) []Option {
			return toolOptions(sk, d.SelectedTools)
		})
	case StepTasks:
		for _, sk := range snap.SelectedSkills() {
			d, _ := snap.Get(sk.ID)
			v.Tasks = append(v.Tasks, TaskList{Skill: sk, Tasks: plan.ResolveTasks(d)})
		}
	case StepTeaching:
		v.Teaching = choicesPerSkill(snap, func(_ catalog.Skill, d types.SkillData) []Option {
			return vocabularyOptions(cat.TeachingStrategies, d.TeachingStrategy)
		})
	case StepMonitoring:
		v.Monitoring = choicesPerSkill(snap, func(_ catalog.Skill, d types.SkillData) []Option {
			return vocabularyOptions(cat.MonitoringApproaches, d.MonitoringApproach)
		})
	case StepAlignment:
		v.Alignment = plan.Checklist(snap)
	case StepCommunicate:
		v.Communication = cat.CommunicationItems
	}
	return v, true
}

func choicesPerSkill(snap *plan.Snapshot, options func(catalog.Skill, types.SkillData) []Option) []Choices {
	var out []Choices
	for _, sk := range snap.SelectedSkills() {
		d, _ := snap.Get(sk.ID)
		out = append(out, Choices{Skill: sk, Options: options(sk, d)})
	}
	return out
}

func vocabularyOptions(vocab []string, chosen types.OrderedSet) []Option {
	out := make([]Option, 0, len(vocab))
	for _, v := range vocab {
		out = append(out, Option{Value: v, Selected: chosen.Contains(v)})
	}
	return out
}

// toolOptions lists the suggested tools and then any custom tools the user added.
func toolOptions(sk catalog.Skill, chosen types.OrderedSet) []Option {
	out := vocabularyOptions(sk.SuggestedTools, chosen)
	for _, t := range chosen.Items() {
		if !containsString(sk.SuggestedTools, t) {
			out = append(out, Option{Value: t, Selected: true})
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
