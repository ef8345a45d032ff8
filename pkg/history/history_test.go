package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cropsight/cropsight/pkg/types"
)

func testEntry(label types.Label, confidence float64) types.HistoryEntry {
	return types.HistoryEntry{
		ID:         uuid.NewString(),
		Label:      label,
		Confidence: confidence,
		Timestamp:  time.Now().UTC().Truncate(time.Second),
	}
}

func tempStore(t *testing.T, capacity int) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "history.json"), capacity, nil)
}

func TestAppendAndEntries(t *testing.T) {
	s := tempStore(t, 10)

	first := testEntry(types.Healthy, 0.9)
	second := testEntry(types.LeafRust, 0.7)
	require.NoError(t, s.Append(first))
	require.NoError(t, s.Append(second))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID, "newest first")
	assert.Equal(t, first.ID, entries[1].ID)
}

func TestCapacityEvictsOldest(t *testing.T) {
	s := tempStore(t, 10)

	var ids []string
	for i := 0; i < 11; i++ {
		e := testEntry(types.Healthy, 0.5)
		ids = append(ids, e.ID)
		require.NoError(t, s.Append(e))
	}

	entries := s.Entries()
	require.Len(t, entries, 10, "history never exceeds its capacity")
	assert.Equal(t, ids[10], entries[0].ID, "newest entry kept at head")
	assert.Equal(t, ids[1], entries[9].ID, "oldest entry evicted")
	for _, e := range entries {
		assert.NotEqual(t, ids[0], e.ID, "first entry must be gone")
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	s := NewStore(path, 10, nil)
	entries := []types.HistoryEntry{
		testEntry(types.EarlyBlight, 0.81),
		testEntry(types.MosaicVirus, 0.66),
		testEntry(types.Healthy, 0.93),
	}
	for _, e := range entries {
		require.NoError(t, s.Append(e))
	}

	reloaded := NewStore(path, 10, nil)
	got := reloaded.Entries()
	require.Len(t, got, 3)
	for i, e := range got {
		want := entries[len(entries)-1-i]
		assert.Equal(t, want.ID, e.ID)
		assert.Equal(t, want.Label, e.Label)
		assert.InDelta(t, want.Confidence, e.Confidence, 1e-9)
		assert.True(t, want.Timestamp.Equal(e.Timestamp), "timestamp survives serialization")
	}
}

func TestCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o644))

	s := NewStore(path, 10, nil)
	assert.Zero(t, s.Len(), "corrupt data is discarded, not fatal")

	// The store keeps working after discarding the bad data.
	require.NoError(t, s.Append(testEntry(types.Healthy, 0.8)))
	assert.Equal(t, 1, s.Len())
}

func TestMissingFileStartsEmpty(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", "history.json"), 10, nil)
	assert.Zero(t, s.Len())
}

func TestLoadTruncatesOversizedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")

	big := NewStore(path, 20, nil)
	for i := 0; i < 15; i++ {
		require.NoError(t, big.Append(testEntry(types.Healthy, 0.5)))
	}

	small := NewStore(path, 10, nil)
	assert.Equal(t, 10, small.Len(), "a shrunken capacity trims loaded history")
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := tempStore(t, 10)
	require.NoError(t, s.Append(testEntry(types.Healthy, 0.9)))

	entries := s.Entries()
	entries[0].Label = types.LateBlight

	assert.Equal(t, types.Healthy, s.Entries()[0].Label)
}

func TestDefaultCapacity(t *testing.T) {
	s := tempStore(t, 0)
	assert.Equal(t, DefaultCapacity, s.Capacity())
}

func BenchmarkAppend(b *testing.B) {
	s := NewStore(filepath.Join(b.TempDir(), "history.json"), 10, nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = s.Append(types.HistoryEntry{
			ID:        fmt.Sprintf("entry-%d", i),
			Label:     types.Healthy,
			Timestamp: time.Now(),
		})
	}
}
