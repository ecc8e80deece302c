package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/tileset"
)

func mustCatalog(t *testing.T) *tileset.Catalog {
	t.Helper()
	g := tileset.Signature{Terrain: tileset.Grass}
	cat, err := tileset.NewCatalog([]tileset.Def{
		{ID: "lawn", Weight: 1, Edges: tileset.Edges{g, g, g, g, g, g}},
	})
	require.NoError(t, err)
	return cat
}
