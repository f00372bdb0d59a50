package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/observability"
	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/suggest"
	"github.com/jonathan/wbl-planner/internal/types"
)

// ErrAborted is returned when the user cancels the wizard.
var ErrAborted = errors.New("wizard aborted")

// Suggester drafts text for a suggestion request.
type Suggester interface {
	Suggest(ctx context.Context, req types.SuggestionRequest) (string, error)
}

// Interactive walks a user through every step in the terminal.
type Interactive struct {
	profile   *plan.ProfileStore
	skills    *plan.SkillStore
	flow      *Flow
	suggester Suggester
	prompter  Prompter
	out       io.Writer
}

// NewInteractive wires the terminal wizard to a session's stores. suggester may be
// nil, in which case no AI drafting is offered.
func NewInteractive(profile *plan.ProfileStore, skills *plan.SkillStore, flow *Flow, suggester Suggester, out io.Writer) *Interactive {
	if out == nil {
		out = os.Stdout
	}
	return &Interactive{profile: profile, skills: skills, flow: flow, suggester: suggester, prompter: FormPrompter{}, out: out}
}

// WithPrompter replaces the huh forms, as when answers come from a script.
func (w *Interactive) WithPrompter(p Prompter) *Interactive {
	if p != nil {
		w.prompter = p
	}
	return w
}

// Run starts at the current step and stops after the last one.
func (w *Interactive) Run(ctx context.Context) error {
	for {
		step := w.flow.Step()
		fmt.Fprintf(w.out, "\nStep %d of %d: %s\n", step.ID, w.flow.Len(), step.Title)
		fmt.Fprintln(w.out, strings.Repeat("─", 40))
		fmt.Fprintln(w.out, step.Description)

		if err := w.runStep(ctx, step.ID); err != nil {
			return err
		}
		if w.flow.IsLast() {
			return nil
		}
		if !w.flow.Next() {
			fmt.Fprintln(w.out, "Please complete the required organization fields before continuing.")
		}
	}
}

func (w *Interactive) runStep(ctx context.Context, step int) error {
	switch step {
	case StepOrganization:
		return w.organization(ctx)
	case StepSkills:
		return w.selectSkills(ctx)
	case StepTools:
		return w.perSkill(ctx, w.chooseTools)
	case StepTasks:
		return w.perSkill(ctx, w.mapTasks)
	case StepTeaching:
		return w.perSkill(ctx, w.chooseStrategies)
	case StepMonitoring:
		return w.perSkill(ctx, w.chooseMonitoring)
	case StepAlignment:
		w.printChecklist()
		return nil
	case StepCommunicate:
		w.printCommunication()
		return nil
	}
	return nil
}

func required(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

var orgLabels = map[types.OrgField]string{
	types.FieldFirstName:           "First name",
	types.FieldLastName:            "Last name",
	types.FieldOrganizationName:    "Organization name",
	types.FieldOrganizationWebsite: "Organization website",
	types.FieldInternshipAddress:   "Internship address",
	types.FieldInterestReason:      "Why are you hosting interns?",
	types.FieldContactEmail:        "Contact email",
	types.FieldContactNumber:       "Contact number",
	types.FieldNumberOfInterns:     "Number of interns",
	types.FieldProjectIdea:         "Project idea (optional)",
}

func (w *Interactive) organization(ctx context.Context) error {
	org := w.profile.Snapshot()
	values := make(map[types.OrgField]*string, len(types.OrgFields))
	fields := make([]Field, 0, len(types.OrgFields))
	isRequired := map[types.OrgField]bool{}
	for _, f := range types.RequiredOrgFields {
		isRequired[f] = true
	}

	for _, f := range types.OrgFields {
		if f == types.FieldProjectIdea {
			continue
		}
		v, _ := org.Get(f)
		values[f] = &v
		input := &Input{Title: orgLabels[f], Value: values[f]}
		if isRequired[f] {
			input.Validate = required(orgLabels[f])
		}
		fields = append(fields, input)
	}
	if err := w.prompter.Ask(ctx, fields...); err != nil {
		return err
	}
	for f, v := range values {
		w.profile.UpdateField(f, *v)
	}
	return w.projectIdea(ctx)
}

func (w *Interactive) projectIdea(ctx context.Context) error {
	idea := w.profile.Snapshot().ProjectIdea
	if w.suggester != nil && strings.TrimSpace(idea) == "" {
		draft := false
		if err := w.prompter.Ask(ctx, &Confirm{Title: "Draft a project idea with AI?", Value: &draft}); err != nil {
			return err
		}
		if draft {
			req := suggest.ProjectIdeaRequest(w.profile.Snapshot(), w.skills.Snapshot())
			if text, err := w.suggester.Suggest(ctx, req); err != nil {
				fmt.Fprintf(w.out, "Could not draft a project idea: %v\n", err)
			} else {
				idea = text
			}
		}
	}
	if err := w.prompter.Ask(ctx, &Input{Title: orgLabels[types.FieldProjectIdea], Multiline: true, Value: &idea}); err != nil {
		return err
	}
	w.profile.UpdateField(types.FieldProjectIdea, idea)
	return nil
}

func (w *Interactive) selectSkills(ctx context.Context) error {
	snap := w.skills.Snapshot()
	selected := snap.SelectedSkillIDs()
	options := make([]Choice, 0, snap.Catalog().TotalSkills())
	for _, sk := range snap.Catalog().Skills {
		options = append(options, Choice{Label: sk.Icon + " " + sk.Name, Value: sk.ID, Selected: snap.IsSelected(sk.ID)})
	}
	if err := w.prompter.Ask(ctx, &MultiSelect{
		Title:   "Which skills will you explicitly teach?",
		Choices: options,
		Value:   &selected,
	}); err != nil {
		return err
	}
	ApplySkillSelection(w.skills, selected)
	p := w.skills.Snapshot().Progress()
	fmt.Fprintf(w.out, "%d of %d skills selected (%d%%)\n", p.Completed, p.Total, p.Percent)
	return nil
}

func (w *Interactive) perSkill(ctx context.Context, fn func(context.Context, catalog.Skill) error) error {
	skills := w.skills.Snapshot().SelectedSkills()
	if len(skills) == 0 {
		fmt.Fprintln(w.out, "No skills selected yet.")
		return nil
	}
	for _, sk := range skills {
		if err := fn(ctx, sk); err != nil {
			return err
		}
	}
	return nil
}

func (w *Interactive) chooseTools(ctx context.Context, sk catalog.Skill) error {
	d, _ := w.skills.Snapshot().Get(sk.ID)
	chosen := d.SelectedTools.Items()
	custom := ""
	if err := w.prompter.Ask(ctx,
		&MultiSelect{
			Title:   sk.Icon + " " + sk.Name + ": tools",
			Choices: choices(toolOptions(sk, d.SelectedTools)),
			Value:   &chosen,
		},
		&Input{
			Title: "Another tool (optional)",
			Value: &custom,
			Validate: func(s string) error {
				if strings.Contains(s, types.SetDelimiter) {
					return fmt.Errorf("enter one tool at a time")
				}
				return nil
			},
		},
	); err != nil {
		return err
	}
	if strings.TrimSpace(custom) != "" {
		chosen = append(chosen, strings.TrimSpace(custom))
	}
	ApplyTools(w.skills, sk.ID, chosen)
	return nil
}

func (w *Interactive) mapTasks(ctx context.Context, sk catalog.Skill) error {
	if w.suggester != nil {
		if err := w.offerTaskDrafts(ctx, sk); err != nil {
			return err
		}
	}

	for {
		d, _ := w.skills.Snapshot().Get(sk.ID)
		descs := make([]string, len(d.Tasks))
		fields := make([]Field, 0, len(d.Tasks)+1)
		for i, t := range d.Tasks {
			descs[i] = t.Description
			fields = append(fields, &Input{
				Title:       fmt.Sprintf("%s %s: task %d", sk.Icon, sk.Name, i+1),
				Placeholder: "Example: Student owns daily inventory check with a 3:00 PM deadline. Supervised by warehouse manager.",
				Multiline:   true,
				Value:       &descs[i],
			})
		}
		more := false
		fields = append(fields, &Confirm{Title: "Add another task?", Value: &more})

		if err := w.prompter.Ask(ctx, fields...); err != nil {
			return err
		}
		for i, t := range d.Tasks {
			w.skills.UpdateTaskDescription(sk.ID, t.ID, descs[i])
		}
		if !more {
			return nil
		}
		w.skills.AddTask(sk.ID)
	}
}

func (w *Interactive) offerTaskDrafts(ctx context.Context, sk catalog.Skill) error {
	d, _ := w.skills.Snapshot().Get(sk.ID)
	var blank []types.TaskItem
	for _, t := range d.Tasks {
		if strings.TrimSpace(t.Description) == "" {
			blank = append(blank, t)
		}
	}
	if len(blank) == 0 {
		return nil
	}

	draft := false
	if err := w.prompter.Ask(ctx, &Confirm{
		Title: fmt.Sprintf("Draft %d blank task(s) for %s with AI?", len(blank), sk.Name),
		Value: &draft,
	}); err != nil {
		return err
	}
	if !draft {
		return nil
	}

	req := suggest.TaskRequest(w.profile.Snapshot(), sk, d)
	for _, t := range blank {
		text, err := w.suggester.Suggest(ctx, req)
		if err != nil {
			fmt.Fprintf(w.out, "Could not draft a task for %s: %v\n", sk.Name, err)
			return nil
		}
		w.skills.UpdateTaskDescription(sk.ID, t.ID, text)
	}
	return nil
}

func (w *Interactive) chooseStrategies(ctx context.Context, sk catalog.Skill) error {
	d, _ := w.skills.Snapshot().Get(sk.ID)
	chosen := d.TeachingStrategy.Items()
	vocab := w.skills.Snapshot().Catalog().TeachingStrategies
	if err := w.prompter.Ask(ctx, &MultiSelect{
		Title:   sk.Icon + " " + sk.Name + ": how will you teach it?",
		Choices: choices(vocabularyOptions(vocab, d.TeachingStrategy)),
		Value:   &chosen,
	}); err != nil {
		return err
	}
	ApplyStrategies(w.skills, sk.ID, chosen)
	return nil
}

func (w *Interactive) chooseMonitoring(ctx context.Context, sk catalog.Skill) error {
	d, _ := w.skills.Snapshot().Get(sk.ID)
	chosen := d.MonitoringApproach.Items()
	vocab := w.skills.Snapshot().Catalog().MonitoringApproaches
	if err := w.prompter.Ask(ctx, &MultiSelect{
		Title:   sk.Icon + " " + sk.Name + ": how will you monitor progress?",
		Choices: choices(vocabularyOptions(vocab, d.MonitoringApproach)),
		Value:   &chosen,
	}); err != nil {
		return err
	}
	ApplyMonitoring(w.skills, sk.ID, chosen)
	return nil
}

func (w *Interactive) printChecklist() {
	snap := w.skills.Snapshot()
	printer := observability.NewPrinter(w.out)
	printer.PrintProgress(snap.Progress())
	printer.PrintChecklist(plan.Checklist(snap))
}

func (w *Interactive) printCommunication() {
	for _, item := range w.skills.Snapshot().Catalog().CommunicationItems {
		fmt.Fprintf(w.out, "\n%s %s\n  %s\n", item.Icon, item.Title, item.Description)
	}
	fmt.Fprintln(w.out, "\nPro tip: create an orientation packet or handbook that covers all these areas.")
}
