// Package wizard drives the planner's step sequence: a linear step machine, the
// per-step views built from the stores, and an interactive terminal front-end.
package wizard

import (
	"sync"

	"github.com/jonathan/wbl-planner/internal/catalog"
)

// Step ids of the fixed sequence.
const (
	StepOrganization = iota + 1
	StepSkills
	StepTools
	StepTasks
	StepTeaching
	StepMonitoring
	StepAlignment
	StepCommunicate
)

// Gate reports whether the profile allows leaving the first step.
type Gate interface {
	IsComplete() bool
}

// GateFunc adapts a function to Gate.
type GateFunc func() bool

// IsComplete calls f.
func (f GateFunc) IsComplete() bool { return f() }

// Flow is the step machine. GoTo is permissive; Next refuses to leave the
// organization step while the gate is closed.
type Flow struct {
	steps []catalog.Step
	gate  Gate

	mu      sync.Mutex
	current int
}

// NewFlow starts at the first catalog step. A nil gate never blocks.
func NewFlow(cat *catalog.Catalog, gate Gate) *Flow {
	if gate == nil {
		gate = GateFunc(func() bool { return true })
	}
	return &Flow{steps: cat.Steps, gate: gate, current: StepOrganization}
}

// Current returns the current step id.
func (f *Flow) Current() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Len is the number of steps.
func (f *Flow) Len() int {
	return len(f.steps)
}

// Step returns the catalog entry of the current step.
func (f *Flow) Step() catalog.Step {
	return f.steps[f.Current()-1]
}

// GoTo jumps to step. Ids outside the sequence are ignored.
func (f *Flow) GoTo(step int) bool {
	if step < 1 || step > len(f.steps) {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = step
	return true
}

// Next advances one step. It reports false at the last step and on the
// organization step while the profile is incomplete.
func (f *Flow) Next() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.canAdvance() {
		return false
	}
	f.current++
	return true
}

// Prev goes back one step; a no-op on the first.
func (f *Flow) Prev() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current <= 1 {
		return false
	}
	f.current--
	return true
}

// CanAdvance reports whether Next would move.
func (f *Flow) CanAdvance() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canAdvance()
}

func (f *Flow) canAdvance() bool {
	if f.current >= len(f.steps) {
		return false
	}
	if f.current == StepOrganization && !f.gate.IsComplete() {
		return false
	}
	return true
}

// IsLast reports whether the current step is the final one, where the summary is offered.
func (f *Flow) IsLast() bool {
	return f.Current() == len(f.steps)
}

// State is a point-in-time description of the flow.
type State struct {
	Current          int            `json:"current"`
	Total            int            `json:"total"`
	Step             catalog.Step   `json:"step"`
	Steps            []catalog.Step `json:"steps"`
	CanAdvance       bool           `json:"canAdvance"`
	CanGoBack        bool           `json:"canGoBack"`
	SummaryAvailable bool           `json:"summaryAvailable"`
}

// State captures the flow under one lock.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Current:          f.current,
		Total:            len(f.steps),
		Step:             f.steps[f.current-1],
		Steps:            f.steps,
		CanAdvance:       f.canAdvance(),
		CanGoBack:        f.current > 1,
		SummaryAvailable: f.current == len(f.steps),
	}
}
