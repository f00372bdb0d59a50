package server

import (
	"io"
	"net/http"

	"github.com/jonathan/wbl-planner/internal/suggest"
)

// SuggestionResponse is the body of a successful POST /suggestions.
type SuggestionResponse struct {
	Suggestion string `json:"suggestion"`
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeError(w, r, &ErrValidation{Message: "failed to read request body"})
		return
	}
	req, err := suggest.DecodeRequest(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	text, err := s.gateway.Suggest(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, SuggestionResponse{Suggestion: text})
}

func (s *Server) handleSuggestTask(w http.ResponseWriter, r *http.Request) {
	sess, skillID, ok := s.lookupSkill(w, r)
	if !ok {
		return
	}
	res, err := s.gateway.SuggestTask(r.Context(), sess.Target(), skillID, r.PathValue("task_id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleSuggestProjectIdea(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	res, err := s.gateway.SuggestProjectIdea(r.Context(), sess.Target())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, res)
}

func (s *Server) handleFillTasks(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	report, err := s.gateway.FillTasks(r.Context(), sess.Target())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, report)
}

// handleFillTasksStream runs the same fill as handleFillTasks, sending a "task"
// event per finished task and a final "complete" event carrying the report.
func (s *Server) handleFillTasksStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	if !s.gateway.Configured() {
		s.writeError(w, r, suggest.ErrNotConfigured)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	report, err := s.gateway.FillTasksNotify(r.Context(), sess.Target(), func(o suggest.TaskOutcome) {
		if err := sse.WriteEvent("task", o); err != nil {
			s.logger.Debug("fill stream write failed", "session", sess.ID, "error", err)
		}
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}
	sse.WriteEvent("complete", report) //nolint:errcheck
}
