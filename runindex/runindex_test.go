package runindex_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/runindex"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

func openIndex(t *testing.T) (*runindex.Index, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index", "runs.db")
	idx, err := runindex.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx, path
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := runindex.Open("")
	assert.ErrorIs(t, err, runindex.ErrEmptyPath)
}

func TestIndex_RecordAndQuery(t *testing.T) {
	idx, _ := openIndex(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, seed := range []int64{7, 8, 7} {
		id, err := idx.Record(ctx, runindex.Run{
			Seed: seed, Size: 15, Catalog: "abc", Tiles: 11, Outcome: "terminal",
			Stats:      wfc.Stats{Collapses: i + 1, Propagations: 100},
			Elapsed:    time.Duration(i+1) * time.Millisecond,
			RecordedAt: at.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	recent, err := idx.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].ID)
	assert.Equal(t, int64(2), recent[1].ID)
	assert.Equal(t, 3, recent[0].Stats.Collapses)
	assert.Equal(t, 3*time.Millisecond, recent[0].Elapsed)
	assert.True(t, at.Add(2*time.Minute).Equal(recent[0].RecordedAt))

	sevens, err := idx.BySeed(ctx, 7)
	require.NoError(t, err)
	require.Len(t, sevens, 2)
	assert.Equal(t, []int64{1, 3}, []int64{sevens[0].ID, sevens[1].ID})

	none, err := idx.BySeed(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestIndex_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	idx, err := runindex.Open(path)
	require.NoError(t, err)
	_, err = idx.Record(context.Background(), runindex.Run{Seed: 1, Size: 3, Catalog: "d", Outcome: "idle"})
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	idx, err = runindex.Open(path)
	require.NoError(t, err)
	defer idx.Close()
	runs, err := idx.Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].RecordedAt.IsZero())
}

func TestFromEngine(t *testing.T) {
	g := tileset.Signature{Terrain: tileset.Grass}
	f := tileset.Signature{Terrain: tileset.Forest}
	cat, err := tileset.NewCatalog([]tileset.Def{
		{ID: "lawn", Weight: 1, Edges: tileset.Edges{g, g, g, g, g, g}},
		{ID: "thicket", Weight: 1, Edges: tileset.Edges{f, f, f, f, f, f}},
	})
	require.NoError(t, err)
	e, err := wfc.New(cat, 5, wfc.WithSeed(31))
	require.NoError(t, err)
	require.NoError(t, e.Run(context.Background()))

	r := runindex.FromEngine(e, time.Second)
	assert.Equal(t, int64(31), r.Seed)
	assert.Equal(t, 5, r.Size)
	assert.Equal(t, cat.Digest(), r.Catalog)
	assert.Equal(t, 2, r.Tiles)
	assert.Equal(t, "terminal", r.Outcome)
	assert.Equal(t, 1, r.Stats.Collapses)

	idx, _ := openIndex(t)
	id, err := idx.Record(context.Background(), r)
	require.NoError(t, err)
	got, err := idx.BySeed(context.Background(), 31)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID)
	assert.Equal(t, r.Stats, got[0].Stats)
}
