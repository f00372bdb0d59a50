package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/wbl-planner/internal/catalog"
)

type fixedGate bool

func (g fixedGate) IsComplete() bool { return bool(g) }

func TestFlow_NextGatedOnOrganization(t *testing.T) {
	complete := false
	f := NewFlow(catalog.Default(), GateFunc(func() bool { return complete }))

	assert.Equal(t, StepOrganization, f.Current())
	assert.False(t, f.CanAdvance())
	assert.False(t, f.Next())
	assert.Equal(t, StepOrganization, f.Current())

	complete = true
	assert.True(t, f.Next())
	assert.Equal(t, StepSkills, f.Current())
}

func TestFlow_GoToIsPermissive(t *testing.T) {
	f := NewFlow(catalog.Default(), fixedGate(false))

	assert.True(t, f.GoTo(StepAlignment))
	assert.Equal(t, StepAlignment, f.Current())
	assert.Equal(t, "OMJ Alignment", f.Step().Title)

	assert.False(t, f.GoTo(0))
	assert.False(t, f.GoTo(9))
	assert.Equal(t, StepAlignment, f.Current())
}

func TestFlow_Boundaries(t *testing.T) {
	f := NewFlow(catalog.Default(), nil)

	assert.False(t, f.Prev())
	assert.Equal(t, 1, f.Current())

	for i := 1; i < f.Len(); i++ {
		assert.True(t, f.Next())
	}
	assert.True(t, f.IsLast())
	assert.False(t, f.Next())
	assert.Equal(t, StepCommunicate, f.Current())

	assert.True(t, f.Prev())
	assert.False(t, f.IsLast())
}

func TestFlow_State(t *testing.T) {
	f := NewFlow(catalog.Default(), fixedGate(true))
	f.GoTo(StepCommunicate)

	st := f.State()
	assert.Equal(t, 8, st.Total)
	assert.Equal(t, StepCommunicate, st.Current)
	assert.Equal(t, "Communicate", st.Step.Title)
	assert.True(t, st.SummaryAvailable)
	assert.True(t, st.CanGoBack)
	assert.False(t, st.CanAdvance)
	assert.Len(t, st.Steps, 8)
}
