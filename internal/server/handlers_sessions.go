package server

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/schemas"
	"github.com/jonathan/wbl-planner/internal/session"
	"github.com/jonathan/wbl-planner/internal/types"
	"github.com/jonathan/wbl-planner/internal/wizard"
)

// SessionResponse is the full state of a session.
type SessionResponse struct {
	ID           string                 `json:"id"`
	CreatedAt    time.Time              `json:"createdAt"`
	Organization types.OrganizationData `json:"organization"`
	Complete     bool                   `json:"organizationComplete"`
	Skills       []types.SkillData      `json:"skills"`
	Flow         wizard.State           `json:"flow"`
	Progress     plan.Progress          `json:"progress"`
	Pending      []string               `json:"pending"`
}

func newSessionResponse(sess *session.Session) SessionResponse {
	snap := sess.Skills.Snapshot()
	return SessionResponse{
		ID:           sess.ID,
		CreatedAt:    sess.CreatedAt,
		Organization: sess.Profile.Snapshot(),
		Complete:     sess.Profile.IsComplete(),
		Skills:       snap.Records(),
		Flow:         sess.Flow.State(),
		Progress:     snap.Progress(),
		Pending:      sess.Pending.Targets(),
	}
}

// lookupSession resolves the {id} path value, writing a 404 when it is unknown.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := r.PathValue("id")
	sess, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, r, &ErrSessionNotFound{ID: id})
		return nil, false
	}
	return sess, true
}

func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.Create()
	s.jsonResponse(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleImportSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Message: "failed to read request body: " + err.Error()})
		return
	}

	sess, err := s.sessions.Import(body)
	if err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			s.writeError(w, r, &ErrValidation{Field: "document", Message: schemaErr.Summary()})
			return
		}
		s.writeError(w, r, &ErrValidation{Field: "document", Message: err.Error()})
		return
	}
	s.jsonResponse(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.sessions.Delete(id) {
		s.writeError(w, r, &ErrSessionNotFound{ID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExportSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	now := s.now()
	data, err := sess.Export(now).Marshal()
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.attachment(w, "application/json", "WBL-Plan-"+now.Format(time.DateOnly)+".json", data)
}

// OrganizationResponse answers a profile update.
type OrganizationResponse struct {
	Organization types.OrganizationData `json:"organization"`
	Complete     bool                   `json:"complete"`
	Missing      []types.OrgField       `json:"missing"`
	Applied      []string               `json:"applied"`
	Ignored      []string               `json:"ignored"`
}

// handleUpdateOrganization writes each field of a {"field": "value"} object. Unknown
// field names are ignored and reported back.
func (s *Server) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var fields map[string]string
	if err := s.decodeJSON(w, r, &fields); err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := OrganizationResponse{Applied: []string{}, Ignored: []string{}}
	// Form order keeps the response stable.
	for _, f := range types.OrgFields {
		if v, present := fields[string(f)]; present {
			sess.Profile.UpdateField(f, v)
			resp.Applied = append(resp.Applied, string(f))
			delete(fields, string(f))
		}
	}
	for name := range fields {
		resp.Ignored = append(resp.Ignored, name)
	}
	sort.Strings(resp.Ignored)

	org := sess.Profile.Snapshot()
	resp.Organization = org
	resp.Complete = org.IsComplete()
	resp.Missing = org.MissingFields()
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Skills.Snapshot().Progress())
}

// StepRequest moves the flow to a step.
type StepRequest struct {
	Step int `json:"step" validate:"required"`
}

// StepResponse is the flow after a navigation request.
type StepResponse struct {
	Moved bool         `json:"moved"`
	Flow  wizard.State `json:"flow"`
}

func (s *Server) handleGoToStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req StepRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	moved := sess.Flow.GoTo(req.Step)
	s.jsonResponse(w, http.StatusOK, StepResponse{Moved: moved, Flow: sess.Flow.State()})
}

func (s *Server) handleNextStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	moved := sess.Flow.Next()
	s.jsonResponse(w, http.StatusOK, StepResponse{Moved: moved, Flow: sess.Flow.State()})
}

func (s *Server) handlePrevStep(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	moved := sess.Flow.Prev()
	s.jsonResponse(w, http.StatusOK, StepResponse{Moved: moved, Flow: sess.Flow.State()})
}

func (s *Server) handleStepView(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	raw := r.PathValue("step")
	step, err := strconv.Atoi(raw)
	if err != nil {
		s.writeError(w, r, &ErrUnknownStep{Step: raw})
		return
	}
	view, ok := wizard.BuildView(step, sess.Profile.Snapshot(), sess.Skills.Snapshot())
	if !ok {
		s.writeError(w, r, &ErrUnknownStep{Step: raw})
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}
