package plan

import (
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jonathan/wbl-planner/internal/catalog"
	"github.com/jonathan/wbl-planner/internal/types"
)

// Snapshot is an immutable view of every skill record at one instant.
type Snapshot struct {
	catalog *catalog.Catalog
	records map[string]types.SkillData
}

// Get returns a copy of the record for skillID.
func (s *Snapshot) Get(skillID string) (types.SkillData, bool) {
	d, ok := s.records[skillID]
	if !ok {
		return types.SkillData{}, false
	}
	return d.Clone(), true
}

// Len is the number of records, selected or not.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Records returns copies of every record in catalog order.
func (s *Snapshot) Records() []types.SkillData {
	out := make([]types.SkillData, 0, len(s.records))
	for _, d := range s.records {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		return s.catalog.SkillOrder(out[i].SkillID) < s.catalog.SkillOrder(out[j].SkillID)
	})
	return out
}

// SelectedSkillIDs returns the ids of completed records in catalog order.
func (s *Snapshot) SelectedSkillIDs() []string {
	ids := make([]string, 0, len(s.records))
	for _, sk := range s.catalog.Skills {
		if d, ok := s.records[sk.ID]; ok && d.Completed {
			ids = append(ids, sk.ID)
		}
	}
	return ids
}

// SelectedSkills returns the catalog entries of the selected skills, in catalog order.
func (s *Snapshot) SelectedSkills() []catalog.Skill {
	out := make([]catalog.Skill, 0, len(s.records))
	for _, sk := range s.catalog.Skills {
		if d, ok := s.records[sk.ID]; ok && d.Completed {
			out = append(out, sk)
		}
	}
	return out
}

// IsSelected reports whether skillID has a completed record.
func (s *Snapshot) IsSelected(skillID string) bool {
	d, ok := s.records[skillID]
	return ok && d.Completed
}

// CompletedCount counts records with Completed set.
func (s *Snapshot) CompletedCount() int {
	n := 0
	for _, d := range s.records {
		if d.Completed {
			n++
		}
	}
	return n
}

// Progress summarizes how many catalog skills are planned.
func (s *Snapshot) Progress() Progress {
	return NewProgress(s.CompletedCount(), s.catalog.TotalSkills())
}

// Catalog is the reference data the snapshot is keyed against.
func (s *Snapshot) Catalog() *catalog.Catalog {
	return s.catalog
}

// SkillStore owns the collection of SkillData records for one session. Records are
// keyed by catalog skill id and are never deleted.
type SkillStore struct {
	catalog *catalog.Catalog
	opts    options

	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

// NewSkillStore creates an empty store keyed against cat.
func NewSkillStore(cat *catalog.Catalog, opts ...Option) *SkillStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &SkillStore{catalog: cat, opts: o}
	s.current.Store(&Snapshot{catalog: cat, records: map[string]types.SkillData{}})
	return s
}

// Snapshot returns the current snapshot.
func (s *SkillStore) Snapshot() *Snapshot {
	return s.current.Load()
}

// SelectedSkillIDs is a shortcut for Snapshot().SelectedSkillIDs().
func (s *SkillStore) SelectedSkillIDs() []string {
	return s.Snapshot().SelectedSkillIDs()
}

// CompletedCount is a shortcut for Snapshot().CompletedCount().
func (s *SkillStore) CompletedCount() int {
	return s.Snapshot().CompletedCount()
}

// ToggleSkill creates a selected record with one empty task on first use and flips
// Completed afterwards. Deselecting keeps every other field. Ids outside the catalog
// are ignored.
func (s *SkillStore) ToggleSkill(skillID string) *Snapshot {
	if !s.catalog.HasSkill(skillID) {
		return s.Snapshot()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	rec, ok := cur.records[skillID]
	if ok {
		rec = rec.Clone()
		rec.Completed = !rec.Completed
	} else {
		rec = types.SkillData{
			SkillID:   skillID,
			Tasks:     []types.TaskItem{{ID: s.opts.newID()}},
			Completed: true,
		}
	}
	return s.commit(cur, rec)
}

// ToggleTool adds or removes a tool on the skill's selected tools.
func (s *SkillStore) ToggleTool(skillID, tool string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		next := d.SelectedTools.Toggle(tool)
		if next.Equal(d.SelectedTools) {
			return false
		}
		d.SelectedTools = next
		return true
	})
}

// ToggleStrategy adds or removes a teaching strategy.
func (s *SkillStore) ToggleStrategy(skillID, strategy string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		next := d.TeachingStrategy.Toggle(strategy)
		if next.Equal(d.TeachingStrategy) {
			return false
		}
		d.TeachingStrategy = next
		return true
	})
}

// ToggleMonitoring adds or removes a monitoring approach.
func (s *SkillStore) ToggleMonitoring(skillID, approach string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		next := d.MonitoringApproach.Toggle(approach)
		if next.Equal(d.MonitoringApproach) {
			return false
		}
		d.MonitoringApproach = next
		return true
	})
}

// SaveTaskMapping overwrites the legacy single-task field.
func (s *SkillStore) SaveTaskMapping(skillID, text string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		d.TaskMapping = text
		return true
	})
}

// SetNotes overwrites the free-text notes.
func (s *SkillStore) SetNotes(skillID, text string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		d.Notes = text
		return true
	})
}

// AddTask appends an empty task and returns its id. The id is empty when the record
// does not exist.
func (s *SkillStore) AddTask(skillID string) (*Snapshot, string) {
	var id string
	snap := s.mutate(skillID, func(d *types.SkillData) bool {
		id = s.opts.newID()
		d.Tasks = append(d.Tasks, types.TaskItem{ID: id})
		return true
	})
	return snap, id
}

// RemoveTask deletes a task unless it is the last one left.
func (s *SkillStore) RemoveTask(skillID, taskID string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		if len(d.Tasks) <= 1 {
			return false
		}
		i := d.TaskIndex(taskID)
		if i < 0 {
			return false
		}
		d.Tasks = append(d.Tasks[:i], d.Tasks[i+1:]...)
		return true
	})
}

// UpdateTaskDescription replaces the description of one task.
func (s *SkillStore) UpdateTaskDescription(skillID, taskID, text string) *Snapshot {
	return s.mutate(skillID, func(d *types.SkillData) bool {
		i := d.TaskIndex(taskID)
		if i < 0 {
			return false
		}
		d.Tasks[i].Description = text
		return true
	})
}

// HasTask reports whether skillID has a record holding taskID.
func (s *SkillStore) HasTask(skillID, taskID string) bool {
	d, ok := s.Snapshot().records[skillID]
	return ok && d.TaskIndex(taskID) >= 0
}

// Restore replaces every record, as when a plan document is imported. Records for
// skills outside the catalog are dropped and multi-value fields are normalized.
func (s *SkillStore) Restore(records []types.SkillData) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]types.SkillData, len(records))
	for _, r := range records {
		if !s.catalog.HasSkill(r.SkillID) {
			continue
		}
		r = r.Clone()
		r.SelectedTools = types.NewOrderedSet(r.SelectedTools.Items()...)
		r.TeachingStrategy = types.NewOrderedSet(r.TeachingStrategy.Items()...)
		r.MonitoringApproach = types.NewOrderedSet(r.MonitoringApproach.Items()...)
		next[r.SkillID] = r
	}
	snap := &Snapshot{catalog: s.catalog, records: next}
	s.current.Store(snap)
	return snap
}

// mutate applies fn to a copy of the record and publishes a new snapshot when fn
// reports a change. A missing record is a no-op.
func (s *SkillStore) mutate(skillID string, fn func(*types.SkillData) bool) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current.Load()
	rec, ok := cur.records[skillID]
	if !ok {
		return cur
	}
	rec = rec.Clone()
	if !fn(&rec) {
		return cur
	}
	return s.commit(cur, rec)
}

// commit stamps rec and publishes cur plus rec as the new snapshot. Callers hold mu.
func (s *SkillStore) commit(cur *Snapshot, rec types.SkillData) *Snapshot {
	stamp := s.opts.now()
	if !stamp.After(rec.UpdatedAt) {
		stamp = rec.UpdatedAt.Add(1)
	}
	rec.UpdatedAt = stamp

	next := make(map[string]types.SkillData, len(cur.records)+1)
	for k, v := range cur.records {
		next[k] = v
	}
	next[rec.SkillID] = rec

	snap := &Snapshot{catalog: s.catalog, records: next}
	s.current.Store(snap)
	return snap
}
