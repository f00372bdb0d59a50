package plan

import "github.com/jonathan/wbl-planner/internal/types"

// LegacyTaskID is the id of the display-only task synthesized from task_mapping.
const LegacyTaskID = "legacy"

// TaskSource says where a resolved task list came from.
type TaskSource int

const (
	// TaskSourceNone means the record holds neither tasks nor a legacy mapping.
	TaskSourceNone TaskSource = iota
	// TaskSourceTasks means the items are the record's own task list.
	TaskSourceTasks
	// TaskSourceLegacy means a single item was synthesized from task_mapping.
	TaskSourceLegacy
)

func (s TaskSource) String() string {
	switch s {
	case TaskSourceTasks:
		return "tasks"
	case TaskSourceLegacy:
		return "legacy"
	default:
		return "none"
	}
}

// MarshalText lets TaskSource appear as a string in JSON views.
func (s TaskSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ResolvedTasks is the authoritative task list of a record.
type ResolvedTasks struct {
	Source TaskSource       `json:"source"`
	Items  []types.TaskItem `json:"items"`
}

// ReadOnly reports whether the items are synthesized and must not be written back.
func (r ResolvedTasks) ReadOnly() bool {
	return r.Source == TaskSourceLegacy
}

// ResolveTasks applies the task resolution order: the tasks list when non-empty,
// else one synthesized item carrying task_mapping, else nothing.
func ResolveTasks(d types.SkillData) ResolvedTasks {
	if len(d.Tasks) > 0 {
		items := make([]types.TaskItem, len(d.Tasks))
		copy(items, d.Tasks)
		return ResolvedTasks{Source: TaskSourceTasks, Items: items}
	}
	if d.TaskMapping != "" {
		return ResolvedTasks{
			Source: TaskSourceLegacy,
			Items:  []types.TaskItem{{ID: LegacyTaskID, Description: d.TaskMapping}},
		}
	}
	return ResolvedTasks{Source: TaskSourceNone, Items: []types.TaskItem{}}
}
