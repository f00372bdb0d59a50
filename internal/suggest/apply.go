package suggest

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/types"
)

// Target is the session state a suggestion reads from and writes to.
type Target struct {
	Profile *plan.ProfileStore
	Skills  *plan.SkillStore
	Pending *Pending
}

// Result is the outcome of a session-bound suggestion. Applied is false when the
// target did not exist, before or after the call.
type Result struct {
	Target     string `json:"target"`
	Suggestion string `json:"suggestion"`
	Applied    bool   `json:"applied"`
}

// SuggestTask drafts a description for one task and writes it to the skill store.
// A missing task is answered without a provider call; a task removed while the call
// was in flight keeps the store unchanged.
func (g *Gateway) SuggestTask(ctx context.Context, t Target, skillID, taskID string) (Result, error) {
	key := TaskTarget(skillID, taskID)
	res := Result{Target: key}

	snap := t.Skills.Snapshot()
	d, ok := snap.Get(skillID)
	if !ok || d.TaskIndex(taskID) < 0 {
		return res, nil
	}
	sk, _ := snap.Catalog().Skill(skillID)

	release, ok := t.Pending.Begin(key)
	if !ok {
		return res, &BusyError{Target: key}
	}
	defer release()

	text, err := g.Suggest(ctx, TaskRequest(t.Profile.Snapshot(), sk, d))
	if err != nil {
		return res, err
	}
	res.Suggestion = text

	if !t.Skills.HasTask(skillID, taskID) {
		g.logger.Info("dropping suggestion for removed task", "skill", skillID, "task", taskID)
		return res, nil
	}
	t.Skills.UpdateTaskDescription(skillID, taskID, text)
	res.Applied = true
	return res, nil
}

// SuggestProjectIdea drafts a project idea and stores it on the profile.
func (g *Gateway) SuggestProjectIdea(ctx context.Context, t Target) (Result, error) {
	res := Result{Target: ProjectIdeaTarget}

	release, ok := t.Pending.Begin(ProjectIdeaTarget)
	if !ok {
		return res, &BusyError{Target: ProjectIdeaTarget}
	}
	defer release()

	text, err := g.Suggest(ctx, ProjectIdeaRequest(t.Profile.Snapshot(), t.Skills.Snapshot()))
	if err != nil {
		return res, err
	}
	res.Suggestion = text
	res.Applied = t.Profile.UpdateField(types.FieldProjectIdea, text)
	return res, nil
}

// TaskOutcome reports one task handled by FillTasks.
type TaskOutcome struct {
	SkillID    string `json:"skillId"`
	TaskID     string `json:"taskId"`
	Suggestion string `json:"suggestion,omitempty"`
	Applied    bool   `json:"applied"`
	Error      string `json:"error,omitempty"`
}

// FillReport summarizes a FillTasks run.
type FillReport struct {
	Outcomes []TaskOutcome `json:"outcomes"`
	Filled   int           `json:"filled"`
	Failed   int           `json:"failed"`
}

// FillTasks drafts every blank task of every selected skill. At most maxConcurrent
// calls run at once; a failing task does not stop the others.
func (g *Gateway) FillTasks(ctx context.Context, t Target) (FillReport, error) {
	return g.FillTasksNotify(ctx, t, nil)
}

// FillTasksNotify is FillTasks calling notify once per finished task. Calls to
// notify never overlap.
func (g *Gateway) FillTasksNotify(ctx context.Context, t Target, notify func(TaskOutcome)) (FillReport, error) {
	if g.client == nil {
		return FillReport{}, ErrNotConfigured
	}

	type job struct{ skillID, taskID string }
	var jobs []job
	snap := t.Skills.Snapshot()
	for _, id := range snap.SelectedSkillIDs() {
		d, _ := snap.Get(id)
		for _, task := range d.Tasks {
			if strings.TrimSpace(task.Description) == "" {
				jobs = append(jobs, job{id, task.ID})
			}
		}
	}

	outcomes := make([]TaskOutcome, len(jobs))
	var notifyMu sync.Mutex
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.maxConcurrent)
	for i, j := range jobs {
		eg.Go(func() error {
			res, err := g.SuggestTask(egCtx, t, j.skillID, j.taskID)
			out := TaskOutcome{SkillID: j.skillID, TaskID: j.taskID, Suggestion: res.Suggestion, Applied: res.Applied}
			if err != nil {
				out.Error = err.Error()
			}
			outcomes[i] = out
			if notify != nil {
				notifyMu.Lock()
				notify(out)
				notifyMu.Unlock()
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return FillReport{}, err
	}

	report := FillReport{Outcomes: outcomes}
	for _, o := range outcomes {
		switch {
		case o.Error != "":
			report.Failed++
		case o.Applied:
			report.Filled++
		}
	}
	g.logger.Info("filled blank tasks", "requested", len(jobs), "filled", report.Filled, "failed", report.Failed)
	return report, nil
}
