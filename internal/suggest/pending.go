package suggest

import (
	"sort"
	"sync"
)

// ProjectIdeaTarget is the pending key of the organization's project idea.
const ProjectIdeaTarget = "project-idea"

// TaskTarget is the pending key of one task.
func TaskTarget(skillID, taskID string) string {
	return "task:" + skillID + "/" + taskID
}

// Pending is the set of targets with a suggestion in flight. Distinct targets never
// block each other.
type Pending struct {
	mu      sync.Mutex
	targets map[string]struct{}
}

// NewPending returns an empty set.
func NewPending() *Pending {
	return &Pending{targets: make(map[string]struct{})}
}

// Begin marks target as pending. It reports false, and marks nothing, when target is
// already pending. release clears the mark and is safe to call more than once.
func (p *Pending) Begin(target string) (release func(), ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, busy := p.targets[target]; busy {
		return func() {}, false
	}
	p.targets[target] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.targets, target)
			p.mu.Unlock()
		})
	}, true
}

// IsPending reports whether target is in flight.
func (p *Pending) IsPending(target string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.targets[target]
	return ok
}

// Targets lists the pending targets in sorted order.
func (p *Pending) Targets() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.targets))
	for t := range p.targets {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
