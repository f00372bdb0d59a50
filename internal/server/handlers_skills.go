package server

import (
	"net/http"

	"github.com/jonathan/wbl-planner/internal/plan"
	"github.com/jonathan/wbl-planner/internal/session"
	"github.com/jonathan/wbl-planner/internal/types"
)

// ToggleRequest names the value to add or remove.
type ToggleRequest struct {
	Value string `json:"value" validate:"required,max=200"`
}

// TextRequest carries free text for task_mapping or notes.
type TextRequest struct {
	Text string `json:"text" validate:"max=5000"`
}

// TaskRequest carries a task description.
type TaskRequest struct {
	Description string `json:"description" validate:"max=5000"`
}

// SkillResponse answers every skill plan mutation. Applied is false when the
// operation was a no-op, such as a missing record or task.
type SkillResponse struct {
	Applied  bool             `json:"applied"`
	Skill    *types.SkillData `json:"skill,omitempty"`
	TaskID   string           `json:"taskId,omitempty"`
	Progress plan.Progress    `json:"progress"`
}

func skillResponse(skillID string, before, after *plan.Snapshot) SkillResponse {
	resp := SkillResponse{Applied: before != after, Progress: after.Progress()}
	if d, ok := after.Get(skillID); ok {
		resp.Skill = &d
	}
	return resp
}

// lookupSkill resolves {id} and {skill_id}, writing a 404 when either is unknown.
func (s *Server) lookupSkill(w http.ResponseWriter, r *http.Request) (*session.Session, string, bool) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return nil, "", false
	}
	skillID := r.PathValue("skill_id")
	if !s.catalog.HasSkill(skillID) {
		s.writeError(w, r, &ErrUnknownSkill{SkillID: skillID})
		return nil, "", false
	}
	return sess, skillID, true
}

func (s *Server) handleToggleSkill(w http.ResponseWriter, r *http.Request) {
	sess, skillID, ok := s.lookupSkill(w, r)
	if !ok {
		return
	}
	before := sess.Skills.Snapshot()
	after := sess.Skills.ToggleSkill(skillID)
	s.jsonResponse(w, http.StatusOK, skillResponse(skillID, before, after))
}

// toggleHandler builds the handler for one multi-value field. accept, when set,
// restricts values to a vocabulary.
func (s *Server) toggleHandler(
	field string,
	accept func(string) bool,
	toggle func(*plan.SkillStore, string, string) *plan.Snapshot,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, skillID, ok := s.lookupSkill(w, r)
		if !ok {
			return
		}
		var req ToggleRequest
		if err := s.decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		if accept != nil && !accept(req.Value) {
			s.writeError(w, r, &ErrValidation{Field: field, Message: "unknown value " + req.Value})
			return
		}
		before := sess.Skills.Snapshot()
		after := toggle(sess.Skills, skillID, req.Value)
		s.jsonResponse(w, http.StatusOK, skillResponse(skillID, before, after))
	}
}

func (s *Server) handleToggleTool(w http.ResponseWriter, r *http.Request) {
	s.toggleHandler("selected_tools", nil, (*plan.SkillStore).ToggleTool)(w, r)
}

func (s *Server) handleToggleStrategy(w http.ResponseWriter, r *http.Request) {
	s.toggleHandler("teaching_strategy", s.catalog.IsTeachingStrategy, (*plan.SkillStore).ToggleStrategy)(w, r)
}

func (s *Server) handleToggleMonitoring(w http.ResponseWriter, r *http.Request) {
	s.toggleHandler("monitoring_approach", s.catalog.IsMonitoringApproach, (*plan.SkillStore).ToggleMonitoring)(w, r)
}

func (s *Server) handleSaveTaskMapping(w http.ResponseWriter, r *http.Request) {
	s.textHandler((*plan.SkillStore).SaveTaskMapping)(w, r)
}

func (s *Server) handleSetNotes(w http.ResponseWriter, r *http.Request) {
	s.textHandler((*plan.SkillStore).SetNotes)(w, r)
}

func (s *Server) textHandler(set func(*plan.SkillStore, string, string) *plan.Snapshot) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, skillID, ok := s.lookupSkill(w, r)
		if !ok {
			return
		}
		var req TextRequest
		if err := s.decodeJSON(w, r, &req); err != nil {
			s.writeError(w, r, err)
			return
		}
		before := sess.Skills.Snapshot()
		after := set(sess.Skills, skillID, req.Text)
		s.jsonResponse(w, http.StatusOK, skillResponse(skillID, before, after))
	}
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	sess, skillID, ok := s.lookupSkill(w, r)
	if !ok {
		return
	}
	before := sess.Skills.Snapshot()
	after, taskID := sess.Skills.AddTask(skillID)
	resp := skillResponse(skillID, before, after)
	resp.TaskID = taskID

	status := http.StatusOK
	if resp.Applied {
		status = http.StatusCreated
	}
	s.jsonResponse(w, status, resp)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	sess, skillID, ok := s.lookupSkill(w, r)
	if !ok {
		return
	}
	var req TaskRequest
	if err := s.decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	taskID := r.PathValue("task_id")
	before := sess.Skills.Snapshot()
	after := sess.Skills.UpdateTaskDescription(skillID, taskID, req.Description)
	resp := skillResponse(skillID, before, after)
	resp.TaskID = taskID
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleRemoveTask(w http.ResponseWriter, r *http.Request) {
	sess, skillID, ok := s.lookupSkill(w, r)
	if !ok {
		return
	}
	taskID := r.PathValue("task_id")
	before := sess.Skills.Snapshot()
	after := sess.Skills.RemoveTask(skillID, taskID)
	resp := skillResponse(skillID, before, after)
	resp.TaskID = taskID
	s.jsonResponse(w, http.StatusOK, resp)
}

// AlignmentResponse is the readiness checklist of every selected skill.
type AlignmentResponse struct {
	Skills        []plan.SkillReadiness `json:"skills"`
	CompleteCount int                   `json:"completeCount"`
	AllComplete   bool                  `json:"allComplete"`
}

func (s *Server) handleAlignment(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	checklist := plan.Checklist(sess.Skills.Snapshot())
	resp := AlignmentResponse{Skills: checklist}
	for _, sk := range checklist {
		if sk.Complete() {
			resp.CompleteCount++
		}
	}
	resp.AllComplete = len(checklist) > 0 && resp.CompleteCount == len(checklist)
	s.jsonResponse(w, http.StatusOK, resp)
}
