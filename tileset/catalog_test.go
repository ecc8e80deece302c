package tileset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/hex"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
)

var (
	grass     = tileset.Signature{Terrain: tileset.Grass}
	sand      = tileset.Signature{Terrain: tileset.Sand}
	grassRoad = tileset.Signature{Terrain: tileset.Grass, Utility: tileset.Road}
)

func uniform(sig tileset.Signature) tileset.Edges {
	return tileset.Edges{sig, sig, sig, sig, sig, sig}
}

func TestNewCatalog_Validation(t *testing.T) {
	_, err := tileset.NewCatalog(nil)
	assert.ErrorIs(t, err, tileset.ErrEmptyCatalog)

	_, err = tileset.NewCatalog([]tileset.Def{{ID: "", Weight: 1}})
	assert.ErrorIs(t, err, tileset.ErrEmptyID)

	_, err = tileset.NewCatalog([]tileset.Def{{ID: "a", Weight: 1}, {ID: "a", Weight: 2}})
	assert.ErrorIs(t, err, tileset.ErrDuplicateID)

	for _, w := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = tileset.NewCatalog([]tileset.Def{{ID: "a", Weight: w}})
		assert.ErrorIs(t, err, tileset.ErrBadWeight, "weight %v", w)
	}
}

// TestNewCatalog_RotationExpansion checks the number of distinct variants
// for tiles of different rotational symmetry.
func TestNewCatalog_RotationExpansion(t *testing.T) {
	cases := []struct {
		name  string
		edges tileset.Edges
		want  int
	}{
		{"uniform", uniform(grass), 1},
		{"half-turn", tileset.Edges{grass, sand, grass, grass, sand, grass}, 3},
		{"third-turn", tileset.Edges{grass, sand, grass, sand, grass, sand}, 2},
		{"asymmetric", tileset.Edges{grass, grass, grass, sand, sand, sand}, 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, err := tileset.NewCatalog([]tileset.Def{{ID: tc.name, Weight: 1, Edges: tc.edges}})
			require.NoError(t, err)
			assert.Equal(t, tc.want, c.Len())
			assert.Equal(t, 1, c.Bases())

			seen := map[tileset.Edges]bool{}
			for i, tile := range c.All() {
				assert.Equal(t, i, tile.Index)
				assert.False(t, seen[tile.Edges()], "duplicate arrangement %v", tile.Key())
				seen[tile.Edges()] = true
			}
		})
	}
}

func TestCatalog_SymmetricFlag(t *testing.T) {
	c, err := tileset.NewCatalog([]tileset.Def{
		{ID: "meadow", Weight: 1, Edges: uniform(grass)},
		{ID: "shore", Weight: 1, Edges: tileset.Edges{grass, grass, grass, sand, sand, sand}},
	})
	require.NoError(t, err)
	assert.True(t, c.Tile(0).Symmetric)
	assert.False(t, c.Tile(1).Symmetric)
	assert.Equal(t, 7, c.Len())
}

// TestTile_EdgeAccountsForRotation verifies Edge(s) == base[(s - rot) mod 6].
func TestTile_EdgeAccountsForRotation(t *testing.T) {
	base := tileset.Edges{grassRoad, grass, grass, sand, sand, grass}
	c, err := tileset.NewCatalog([]tileset.Def{{ID: "bend", Weight: 2, Edges: base}})
	require.NoError(t, err)
	require.Equal(t, 6, c.Len())

	for _, tile := range c.All() {
		assert.Equal(t, 2.0, tile.Weight)
		for _, s := range hex.Sides {
			want := base[s.Rotate(-tile.Rotation)]
			assert.Equal(t, want, tile.Edge(s), "%s side %v", tile.Key(), s)
			assert.Equal(t, want, c.Signature(tile.Index, s))
		}
	}

	i, ok := c.Lookup("bend@1")
	require.True(t, ok)
	assert.Equal(t, grassRoad, c.Signature(i, hex.TopRight))
	_, ok = c.Lookup("bend@9")
	assert.False(t, ok)
}

func TestCatalog_AllIsACopy(t *testing.T) {
	c, err := tileset.NewCatalog([]tileset.Def{{ID: "meadow", Weight: 1, Edges: uniform(grass)}})
	require.NoError(t, err)
	all := c.All()
	all[0].Weight = 99
	assert.Equal(t, 1.0, c.Tile(0).Weight)
}

func TestCatalog_Digest(t *testing.T) {
	defs := []tileset.Def{{ID: "meadow", Weight: 1, Edges: uniform(grass)}}
	a, err := tileset.NewCatalog(defs)
	require.NoError(t, err)
	b, err := tileset.NewCatalog(defs)
	require.NoError(t, err)
	assert.Equal(t, a.Digest(), b.Digest())
	assert.Len(t, a.Digest(), 64)

	defs[0].Weight = 2
	d, err := tileset.NewCatalog(defs)
	require.NoError(t, err)
	assert.NotEqual(t, a.Digest(), d.Digest())
}
