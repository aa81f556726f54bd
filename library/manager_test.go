package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerInitialisePrePopulatesKnownBackends(t *testing.T) {
	m := NewManager(t.TempDir())
	m.Initialise([]string{"work", "ieee"})

	work := m.Get("work")
	require.NotNil(t, work)
	assert.True(t, work.IsKnown())
	assert.ElementsMatch(t, []string{"work", "ieee"}, m.List())
}

func TestManagerGetCreatesEphemeralBackendForUnknownNameAfterInitialise(t *testing.T) {
	m := NewManager(t.TempDir())
	m.Initialise([]string{"work"})

	other := m.Get("scratch")
	require.NotNil(t, other)
	assert.False(t, other.IsKnown())
	assert.Same(t, other, m.Get("scratch"))
}

func TestManagerGetIsPersistentBeforeInitialise(t *testing.T) {
	m := NewManager(t.TempDir())

	be := m.Get("work")
	require.NoError(t, be.Put(Row{Kind: KindEntity, Identifier: "counter", Filename: "counter.vhd"}))

	row, ok := be.Get(KindEntity, "counter", "")
	require.True(t, ok)
	assert.Equal(t, "counter.vhd", row.Filename)
}

func TestManagerInitialiseInvalidatesPriorBackends(t *testing.T) {
	m := NewManager(t.TempDir())
	first := m.Get("work")

	m.Initialise([]string{"work"})

	assert.False(t, first.IsValid())
	second := m.Get("work")
	assert.NotSame(t, first, second)
}

func TestManagerFullyPopulatedFlag(t *testing.T) {
	m := NewManager(t.TempDir())
	assert.False(t, m.IsFullyPopulated())
	m.SetFullyPopulated(true)
	assert.True(t, m.IsFullyPopulated())
}
