package wfc

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/RocketPrinter/HexagonalWFC/hex"
	"github.com/RocketPrinter/HexagonalWFC/randqueue"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
)

// sigSet is the set of signatures a cell can still present on one side.
type sigSet map[tileset.Signature]struct{}

var allSides = hex.Sides[:]

// exceptSide[s] lists every side but s.
var exceptSide = func() (out [hex.NumSides][]hex.Side) {
	for _, skip := range hex.Sides {
		for _, s := range hex.Sides {
			if s != skip {
				out[skip] = append(out[skip], s)
			}
		}
	}
	return out
}()

// Cell is one playable grid position and its remaining candidate tiles.
// Cells live in the engine's arena; pointers returned by Engine.Cell are
// read-only views valid until the next Reset.
type Cell struct {
	pos  hex.Position
	idx  int // arena slot
	live bool
	cat  *tileset.Catalog

	member []bool // member[t] ⇔ tile t still possible
	count  int

	cache      [hex.NumSides]sigSet
	cacheValid bool
}

func (c *Cell) init(pos hex.Position, idx int, cat *tileset.Catalog) {
	c.pos, c.idx, c.live, c.cat = pos, idx, true, cat
	c.member = make([]bool, cat.Len())
	c.fill()
}

// fill restores the full catalog.
func (c *Cell) fill() {
	for i := range c.member {
		c.member[i] = true
	}
	c.count = len(c.member)
	c.invalidate()
}

func (c *Cell) invalidate() { c.cacheValid = false }

// Position returns the cell's coordinates.
func (c *Cell) Position() hex.Position { return c.pos }

// Entropy is the number of remaining candidates.
func (c *Cell) Entropy() int { return c.count }

// Collapsed reports a single remaining candidate.
func (c *Cell) Collapsed() bool { return c.count == 1 }

// Contradicted reports an empty domain.
func (c *Cell) Contradicted() bool { return c.count == 0 }

// Contains reports whether catalog tile t is still a candidate.
func (c *Cell) Contains(t int) bool {
	return t >= 0 && t < len(c.member) && c.member[t]
}

// Candidates returns the remaining catalog indices in ascending order.
func (c *Cell) Candidates() []int {
	out := make([]int, 0, c.count)
	for t, ok := range c.member {
		if ok {
			out = append(out, t)
		}
	}
	return out
}

// Tile returns the chosen tile of a collapsed cell.
func (c *Cell) Tile() (tileset.Tile, bool) {
	if c.count != 1 {
		return tileset.Tile{}, false
	}
	for t, ok := range c.member {
		if ok {
			return c.cat.Tile(t), true
		}
	}
	return tileset.Tile{}, false
}

// Signatures returns the distinct signatures the cell can still present on
// side s, sorted by terrain then utility.
func (c *Cell) Signatures(s hex.Side) []tileset.Signature {
	set := c.sideCache(s)
	out := make([]tileset.Signature, 0, len(set))
	for sig := range set {
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Terrain != out[j].Terrain {
			return out[i].Terrain < out[j].Terrain
		}
		return out[i].Utility < out[j].Utility
	})
	return out
}

// sideCache returns the signature set for side s, rebuilding all six sides
// in one pass when stale.
// Complexity: O(1) when valid, O(entropy) otherwise.
func (c *Cell) sideCache(s hex.Side) sigSet {
	if !c.cacheValid {
		for _, side := range hex.Sides {
			if c.cache[side] == nil {
				c.cache[side] = make(sigSet)
			} else {
				clear(c.cache[side])
			}
		}
		for t, ok := range c.member {
			if !ok {
				continue
			}
			for _, side := range hex.Sides {
				c.cache[side][c.cat.Signature(t, side)] = struct{}{}
			}
		}
		c.cacheValid = true
	}
	return c.cache[s]
}

// remove drops tile t and records it.
func (c *Cell) remove(t int, u *undoLog) {
	c.member[t] = false
	c.count--
	u.record(c.idx, t)
}

// restore re-admits tile t. Reports whether it was absent.
func (c *Cell) restore(t int) bool {
	if c.member[t] {
		return false
	}
	c.member[t] = true
	c.count++
	c.invalidate()
	return true
}

// collapse keeps only tile t. The caller checks Contains(t). Returns the
// sides to notify: all six, or none if the cell already held only t.
// Complexity: O(catalog).
func (c *Cell) collapse(t int, u *undoLog) []hex.Side {
	if c.count == 1 {
		return nil
	}
	for other, ok := range c.member {
		if ok && other != t {
			c.remove(other, u)
		}
	}
	c.invalidate()
	return allSides
}

// collapseRandom keeps one candidate chosen with probability proportional to
// its weight. A collapsed or contradicted cell is left alone. The cell is
// untouched when a weight is rejected.
// Complexity: O(entropy · log entropy).
func (c *Cell) collapseRandom(rng *rand.Rand, u *undoLog) (int, []hex.Side, error) {
	if c.count <= 1 {
		return -1, nil, nil
	}
	q := randqueue.New[int](rng)
	for t, ok := range c.member {
		if !ok {
			continue
		}
		if err := q.PushWeighted(t, c.cat.Weight(t)); err != nil {
			return -1, nil, fmt.Errorf("cell %v tile %s: %w", c.pos, c.cat.Tile(t).Key(), err)
		}
	}
	t, _ := q.PopRandom()
	return t, c.collapse(t, u), nil
}

// updateFromSide drops every candidate whose signature on side s is absent
// from what nb can present on the facing side. Returns the sides to notify:
// all but s when something was removed and the cell is still satisfiable.
// A contradicted cell does not change.
// Complexity: O(entropy), plus an O(entropy(nb)) cache rebuild if stale.
func (c *Cell) updateFromSide(s hex.Side, nb *Cell, u *undoLog) []hex.Side {
	if c.count == 0 {
		return nil
	}
	allowed := nb.sideCache(s.Opposite())
	removed := false
	for t, ok := range c.member {
		if !ok {
			continue
		}
		if _, fits := allowed[c.cat.Signature(t, s)]; !fits {
			c.remove(t, u)
			removed = true
		}
	}
	if !removed {
		return nil
	}
	c.invalidate()
	if c.count == 0 {
		return nil
	}
	return exceptSide[s]
}
