package hex_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RocketPrinter/HexagonalWFC/hex"
)

// TestComponents_SplitByRing marks the centre and the outer ring of a
// radius-2 grid as members: the empty first ring separates them.
func TestComponents_SplitByRing(t *testing.T) {
	g, err := hex.NewGrid(5)
	require.NoError(t, err)
	member := func(p hex.Position) bool { return hex.Distance(g.Center, p) != 1 }

	comps := g.Components(member, nil)
	require.Len(t, comps, 2)
	sizes := []int{len(comps[0]), len(comps[1])}
	sort.Ints(sizes)
	assert.Equal(t, []int{1, 12}, sizes)
}

// TestComponents_JoinedPredicate cuts every edge, leaving one region per cell.
func TestComponents_JoinedPredicate(t *testing.T) {
	g, err := hex.NewGrid(3)
	require.NoError(t, err)
	all := func(hex.Position) bool { return true }

	assert.Len(t, g.Components(all, nil), 1)
	never := func(hex.Position, hex.Side, hex.Position) bool { return false }
	assert.Len(t, g.Components(all, never), 7)
}

func TestComponents_NoMembers(t *testing.T) {
	g, err := hex.NewGrid(3)
	require.NoError(t, err)
	assert.Empty(t, g.Components(func(hex.Position) bool { return false }, nil))
}
