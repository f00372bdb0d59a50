package types

import "time"

// TaskItem is one concrete task mapped to a skill. ID is an opaque token unique within
// its skill record.
type TaskItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

// SkillData is the plan record for one skill. Completed means "included in the plan";
// a record that has been toggled off keeps every other field.
type SkillData struct {
	SkillID            string     `json:"skill_id"`
	SelectedTools      OrderedSet `json:"selected_tools"`
	TaskMapping        string     `json:"task_mapping"` // legacy single task, read-only for new code
	Tasks              []TaskItem `json:"tasks"`
	TeachingStrategy   OrderedSet `json:"teaching_strategy"`
	MonitoringApproach OrderedSet `json:"monitoring_approach"`
	Notes              string     `json:"notes"`
	Completed          bool       `json:"completed"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Clone returns a deep copy; the task slice is the only shared-mutable part.
func (d SkillData) Clone() SkillData {
	out := d
	if d.Tasks != nil {
		out.Tasks = make([]TaskItem, len(d.Tasks))
		copy(out.Tasks, d.Tasks)
	}
	return out
}

// TaskIndex returns the position of the task with id, or -1.
func (d SkillData) TaskIndex(id string) int {
	for i, t := range d.Tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
