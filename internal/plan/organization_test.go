package plan

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/wbl-planner/internal/types"
)

func TestProfileStore_UpdateField(t *testing.T) {
	s := NewProfileStore()
	assert.False(t, s.IsComplete())

	assert.True(t, s.UpdateField(types.FieldFirstName, "Ada"))
	assert.True(t, s.UpdateField(types.FieldLastName, "Lovelace"))
	assert.True(t, s.UpdateField(types.FieldOrganizationName, "Analytical Engines"))
	assert.False(t, s.IsComplete())
	assert.True(t, s.UpdateField(types.FieldContactEmail, "ada@example.com"))
	assert.True(t, s.IsComplete())

	assert.False(t, s.UpdateField(types.OrgField("shoeSize"), "9"))
	assert.Equal(t, "Ada", s.Snapshot().FirstName)
}

func TestProfileStore_SnapshotIsCopy(t *testing.T) {
	s := NewProfileStore()
	s.UpdateField(types.FieldFirstName, "Ada")
	snap := s.Snapshot()
	s.UpdateField(types.FieldFirstName, "Grace")

	assert.Equal(t, "Ada", snap.FirstName)
	assert.Equal(t, "Grace", s.Snapshot().FirstName)
}

func TestProfileStore_Replace(t *testing.T) {
	s := NewProfileStore()
	s.Replace(types.OrganizationData{OrganizationName: "Acme", ProjectIdea: "Inventory app"})
	assert.Equal(t, "Acme", s.Snapshot().OrganizationName)
	assert.Equal(t, "Inventory app", s.Snapshot().ProjectIdea)
}

func TestProfileStore_ConcurrentWriters(t *testing.T) {
	s := NewProfileStore()
	var wg sync.WaitGroup
	for _, f := range types.OrgFields {
		wg.Add(1)
		go func(f types.OrgField) {
			defer wg.Done()
			s.UpdateField(f, string(f))
		}(f)
	}
	wg.Wait()

	snap := s.Snapshot()
	for _, f := range types.OrgFields {
		v, _ := snap.Get(f)
		assert.Equal(t, string(f), v)
	}
}
