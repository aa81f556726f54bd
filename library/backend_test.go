package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackendPutGetRoundTrip(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	err := be.Put(Row{Kind: KindEntity, Line: 3, Column: 1, Filename: "counter.vhd", Identifier: "counter", Timestamp: 42})
	require.NoError(t, err)

	row, ok := be.Get(KindEntity, "counter", "")
	require.True(t, ok)
	assert.Equal(t, "counter.vhd", row.Filename)
	assert.Equal(t, 3, row.Line)
	assert.Equal(t, int64(42), row.Timestamp)
}

func TestBackendCompositeKeyDistinguishesSecondaryUnits(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "counter.vhd", Identifier: "counter"}))
	require.NoError(t, be.Put(Row{Kind: KindArchitecture, Filename: "counter_rtl.vhd", Identifier: "rtl", Identifier2: "counter"}))
	require.NoError(t, be.Put(Row{Kind: KindArchitecture, Filename: "counter_behav.vhd", Identifier: "behav", Identifier2: "counter"}))

	ent, ok := be.Get(KindEntity, "counter", "")
	require.True(t, ok)
	assert.Equal(t, "counter.vhd", ent.Filename)

	rtl, ok := be.Get(KindArchitecture, "rtl", "counter")
	require.True(t, ok)
	assert.Equal(t, "counter_rtl.vhd", rtl.Filename)

	behav, ok := be.Get(KindArchitecture, "behav", "counter")
	require.True(t, ok)
	assert.Equal(t, "counter_behav.vhd", behav.Filename)
}

func TestBackendGetMissReturnsFalse(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	_, ok := be.Get(KindEntity, "nope", "")
	assert.False(t, ok)
}

func TestBackendPutSupersedesEarlierRowForSameKey(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "old.vhd", Identifier: "counter", Timestamp: 1}))
	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "new.vhd", Identifier: "counter", Timestamp: 2}))

	row, ok := be.Get(KindEntity, "counter", "")
	require.True(t, ok)
	assert.Equal(t, "new.vhd", row.Filename)
}

func TestBackendClearEmptiesTable(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "counter.vhd", Identifier: "counter"}))
	require.NoError(t, be.Clear())

	_, ok := be.Get(KindEntity, "counter", "")
	assert.False(t, ok)
}

func TestBackendAllFiltersByIdentifierSubstring(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "counter.vhd", Identifier: "counter"}))
	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "adder.vhd", Identifier: "adder"}))

	rows, err := be.All(0, "count")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "counter", rows[0].Identifier)
}

func TestBackendAllRespectsLimit(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, be.Put(Row{Kind: KindPackage, Filename: "p.vhd", Identifier: "pkg"}))
	}
	rows, err := be.All(2, "")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestBackendInMemoryWhenPathEmpty(t *testing.T) {
	be := newBackend("", false)
	defer be.Close()

	require.NoError(t, be.Put(Row{Kind: KindEntity, Filename: "counter.vhd", Identifier: "counter"}))
	row, ok := be.Get(KindEntity, "counter", "")
	require.True(t, ok)
	assert.Equal(t, "counter.vhd", row.Filename)
	assert.False(t, be.IsKnown())
}

func TestBackendInvalidateBlocksFurtherOperations(t *testing.T) {
	be := newBackend(filepath.Join(t.TempDir(), "work.db"), true)
	defer be.Close()
	be.invalidate()

	assert.False(t, be.IsValid())
	err := be.Put(Row{Kind: KindEntity, Identifier: "counter"})
	assert.Error(t, err)
	_, ok := be.Get(KindEntity, "counter", "")
	assert.False(t, ok)
}
