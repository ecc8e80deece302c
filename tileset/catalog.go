package tileset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	hexgrid "github.com/RocketPrinter/HexagonalWFC/hex"
)

// Catalog is the immutable, fully expanded set of tile variants.
type Catalog struct {
	tiles  []Tile
	byKey  map[string]int
	bases  int
	digest string
}

// NewCatalog validates defs and expands every base into its distinct
// rotations. Variant indices are dense: all rotations of defs[0] first, in
// rotation order, then defs[1], and so on.
//
// Returns ErrEmptyCatalog, ErrEmptyID, ErrDuplicateID or ErrBadWeight
// (wrapped with the offending id) on invalid input.
// Complexity: O(T·6·6) time, O(T·6) memory.
func NewCatalog(defs []Def) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}
	c := &Catalog{
		tiles: make([]Tile, 0, len(defs)*hexgrid.NumSides),
		byKey: make(map[string]int, len(defs)*hexgrid.NumSides),
		bases: len(defs),
	}
	seen := make(map[string]struct{}, len(defs))
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("NewCatalog: def %d: %w", i, ErrEmptyID)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("NewCatalog: %q: %w", d.ID, ErrDuplicateID)
		}
		seen[d.ID] = struct{}{}
		if !(d.Weight > 0) || math.IsInf(d.Weight, 0) {
			return nil, fmt.Errorf("NewCatalog: %q weight %v: %w", d.ID, d.Weight, ErrBadWeight)
		}
		c.expand(d)
	}
	c.digest = digestDefs(defs)
	return c, nil
}

// expand appends d and each rotation whose arrangement is new for this base.
func (c *Catalog) expand(d Def) {
	symmetric := d.Edges.Uniform()
	produced := make([]Edges, 0, hexgrid.NumSides)
	for rot := 0; rot < hexgrid.NumSides; rot++ {
		e := d.Edges.Rotate(rot)
		if containsEdges(produced, e) {
			continue
		}
		produced = append(produced, e)
		t := Tile{
			Index:     len(c.tiles),
			ID:        d.ID,
			Rotation:  rot,
			Weight:    d.Weight,
			Symmetric: symmetric,
			edges:     e,
		}
		c.tiles = append(c.tiles, t)
		c.byKey[t.Key()] = t.Index
	}
}

func containsEdges(list []Edges, e Edges) bool {
	for _, x := range list {
		if x == e {
			return true
		}
	}
	return false
}

// Len returns the number of variants.
func (c *Catalog) Len() int { return len(c.tiles) }

// Bases returns the number of base definitions.
func (c *Catalog) Bases() int { return c.bases }

// Tile returns variant i. It panics if i is out of range, like a slice.
func (c *Catalog) Tile(i int) Tile { return c.tiles[i] }

// All returns a copy of every variant in index order.
func (c *Catalog) All() []Tile {
	out := make([]Tile, len(c.tiles))
	copy(out, c.tiles)
	return out
}

// Signature returns the signature variant i presents on side s.
// Complexity: O(1).
func (c *Catalog) Signature(i int, s hexgrid.Side) Signature {
	return c.tiles[i].edges[s]
}

// Weight returns the selection weight of variant i.
func (c *Catalog) Weight(i int) float64 { return c.tiles[i].Weight }

// Lookup finds a variant by its "id@rotation" key.
func (c *Catalog) Lookup(key string) (int, bool) {
	i, ok := c.byKey[key]
	return i, ok
}

// Digest is the sha256 of the canonical JSON form of the definitions, so a
// run can be tied to the exact catalog it used.
func (c *Catalog) Digest() string { return c.digest }

type canonicalDef struct {
	ID     string      `json:"id"`
	Weight float64     `json:"weight"`
	Edges  [6][2]uint8 `json:"edges"`
}

func digestDefs(defs []Def) string {
	canon := make([]canonicalDef, len(defs))
	for i, d := range defs {
		canon[i] = canonicalDef{ID: d.ID, Weight: d.Weight}
		for s, sig := range d.Edges {
			canon[i].Edges[s] = [2]uint8{uint8(sig.Terrain), uint8(sig.Utility)}
		}
	}
	raw, _ := json.Marshal(canon)
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
