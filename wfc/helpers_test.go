package wfc_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/hex"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
	"github.com/RocketPrinter/HexagonalWFC/wfc"
)

var (
	grass     = tileset.Signature{Terrain: tileset.Grass}
	forest    = tileset.Signature{Terrain: tileset.Forest}
	grassRoad = tileset.Signature{Terrain: tileset.Grass, Utility: tileset.Road}
)

func uniform(sig tileset.Signature) tileset.Edges {
	return tileset.Edges{sig, sig, sig, sig, sig, sig}
}

func mustCatalog(t testing.TB, defs ...tileset.Def) *tileset.Catalog {
	t.Helper()
	cat, err := tileset.NewCatalog(defs)
	require.NoError(t, err)
	return cat
}

// disjointCatalog holds two single-variant tiles, a (grass) and b (forest),
// that can never sit next to each other.
func disjointCatalog(t testing.TB) *tileset.Catalog {
	return mustCatalog(t,
		tileset.Def{ID: "a", Weight: 1, Edges: uniform(grass)},
		tileset.Def{ID: "b", Weight: 1, Edges: uniform(forest)},
	)
}

// alternatingCatalog holds one tile alternating grass and forest around its
// edges (two variants). Three cells meeting at a corner can never agree, so
// every grid larger than one cell ends in contradiction.
func alternatingCatalog(t testing.TB) *tileset.Catalog {
	return mustCatalog(t, tileset.Def{
		ID: "alt", Weight: 1,
		Edges: tileset.Edges{grass, forest, grass, forest, grass, forest},
	})
}

// basicCatalog mirrors tileset/testdata/basic.yaml.
func basicCatalog(t testing.TB) *tileset.Catalog {
	cat, err := tileset.LoadFile("../tileset/testdata/basic.yaml")
	require.NoError(t, err)
	return cat
}

// openCatalog is basicCatalog without woods, whose forest edges force the
// whole grid to woods in one collapse.
func openCatalog(t testing.TB) *tileset.Catalog {
	sand := tileset.Signature{Terrain: tileset.Sand}
	return mustCatalog(t,
		tileset.Def{ID: "meadow", Weight: 4, Edges: uniform(grass)},
		tileset.Def{ID: "shore", Weight: 1, Edges: tileset.Edges{grass, grass, grass, sand, sand, sand}},
		tileset.Def{ID: "road", Weight: 1, Edges: tileset.Edges{grassRoad, grass, grass, grassRoad, grass, grass}},
	)
}

func tileIndex(t testing.TB, cat *tileset.Catalog, key string) int {
	t.Helper()
	idx, ok := cat.Lookup(key)
	require.True(t, ok, "missing variant %s", key)
	return idx
}

// domains snapshots every cell's candidates.
func domains(t testing.TB, e *wfc.Engine) map[hex.Position][]int {
	t.Helper()
	g := e.Grid()
	out := make(map[hex.Position][]int)
	for _, p := range g.Positions() {
		c, err := e.Cell(p)
		require.NoError(t, err)
		out[p] = c.Candidates()
	}
	return out
}

// recorder collects events.
type recorder struct{ events []wfc.Event }

func (r *recorder) Notify(ev wfc.Event) { r.events = append(r.events, ev) }

func (r *recorder) count(typ wfc.EventType) int {
	n := 0
	for _, ev := range r.events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}
