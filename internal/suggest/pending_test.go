package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_BeginRelease(t *testing.T) {
	p := NewPending()

	release, ok := p.Begin(ProjectIdeaTarget)
	require.True(t, ok)
	assert.True(t, p.IsPending(ProjectIdeaTarget))

	_, ok = p.Begin(ProjectIdeaTarget)
	assert.False(t, ok, "second begin on the same target must be refused")

	other, ok := p.Begin(TaskTarget("leadership", "t1"))
	require.True(t, ok, "distinct targets are independent")
	assert.Equal(t, []string{ProjectIdeaTarget, "task:leadership/t1"}, p.Targets())

	release()
	release()
	assert.False(t, p.IsPending(ProjectIdeaTarget))
	assert.True(t, p.IsPending(TaskTarget("leadership", "t1")))

	other()
	assert.Empty(t, p.Targets())
}
