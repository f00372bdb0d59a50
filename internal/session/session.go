// Package session keeps the in-memory planning sessions served over HTTP. A session
// bundles the profile store, the skill store, the step flow and the pending
// suggestion targets of one planner.
package session

import (
	"sync"
	"time"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/suggest"
	"github.com/jonathan/wbl-planner/internal/wizard"
)

// Session is one planner's state.
type Session struct {
	ID        string
	CreatedAt time.Time

	Profile *plan.ProfileStore
	Skills  *plan.SkillStore
	Flow    *wizard.Flow
	Pending *suggest.Pending

	mu         sync.Mutex
	lastAccess time.Time
}

func newSession(id string, cat *catalog.Catalog, now time.Time, opts ...plan.Option) *Session {
	profile := plan.NewProfileStore()
	return &Session{
		ID:         id,
		CreatedAt:  now,
		Profile:    profile,
		Skills:     plan.NewSkillStore(cat, opts...),
		Flow:       wizard.NewFlow(cat, profile),
		Pending:    suggest.NewPending(),
		lastAccess: now,
	}
}

// Target is the view of the session the suggestion gateway writes through.
func (s *Session) Target() suggest.Target {
	return suggest.Target{Profile: s.Profile, Skills: s.Skills, Pending: s.Pending}
}

// Export captures the session as a plan document.
func (s *Session) Export(now time.Time) plan.Document {
	return plan.NewDocument(s.Profile.Snapshot(), s.Skills.Snapshot(), s.Flow.Current(), now)
}

// Restore replaces the session's profile and skills with doc and moves to the step it
// was saved on.
func (s *Session) Restore(doc plan.Document) {
	s.Profile.Replace(doc.Organization)
	s.Skills.Restore(doc.Skills)
	if doc.CurrentStep > 0 {
		s.Flow.GoTo(doc.CurrentStep)
	}
}

// LastAccess is when the session was last looked up.
func (s *Session) LastAccess() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastAccess
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastAccess = now
	s.mu.Unlock()
}
