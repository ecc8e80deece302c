package tileset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RocketPrinter/HexagonalWFC/hex"
)

// Sentinel errors for catalog construction and loading.
var (
	// ErrEmptyCatalog indicates a catalog built from zero tile definitions.
	ErrEmptyCatalog = errors.New("tileset: catalog has no tiles")

	// ErrEmptyID indicates a tile definition without an id.
	ErrEmptyID = errors.New("tileset: tile id is empty")

	// ErrDuplicateID indicates two tile definitions sharing an id.
	ErrDuplicateID = errors.New("tileset: duplicate tile id")

	// ErrBadWeight indicates a weight that is not a finite positive number.
	ErrBadWeight = errors.New("tileset: weight must be finite and > 0")

	// ErrUnknownTerrain indicates a terrain name outside the vocabulary.
	ErrUnknownTerrain = errors.New("tileset: unknown terrain")

	// ErrUnknownUtility indicates a utility name outside the vocabulary.
	ErrUnknownUtility = errors.New("tileset: unknown utility")

	// ErrSchema indicates a catalog document rejected by the schema.
	ErrSchema = errors.New("tileset: document does not match catalog schema")
)

// Terrain is the ground kind painted along a tile edge.
type Terrain uint8

const (
	TerrainNull Terrain = iota
	Grass
	Forest
	Sand
)

var terrainNames = [...]string{"null", "grass", "forest", "sand"}

// String returns the lower-case terrain name.
func (t Terrain) String() string {
	if int(t) < len(terrainNames) {
		return terrainNames[t]
	}
	return fmt.Sprintf("Terrain(%d)", uint8(t))
}

// ParseTerrain maps a name (case-insensitive) to a Terrain.
// The empty string is TerrainNull.
func ParseTerrain(s string) (Terrain, error) {
	if s == "" {
		return TerrainNull, nil
	}
	for i, name := range terrainNames {
		if strings.EqualFold(s, name) {
			return Terrain(i), nil
		}
	}
	return TerrainNull, fmt.Errorf("%w: %q", ErrUnknownTerrain, s)
}

// Utility is the network kind (road, rail, water) crossing a tile edge.
type Utility uint8

const (
	UtilityNull Utility = iota
	Road
	Rail
	Water
)

var utilityNames = [...]string{"null", "road", "rail", "water"}

// String returns the lower-case utility name.
func (u Utility) String() string {
	if int(u) < len(utilityNames) {
		return utilityNames[u]
	}
	return fmt.Sprintf("Utility(%d)", uint8(u))
}

// ParseUtility maps a name (case-insensitive) to a Utility.
// The empty string is UtilityNull.
func ParseUtility(s string) (Utility, error) {
	if s == "" {
		return UtilityNull, nil
	}
	for i, name := range utilityNames {
		if strings.EqualFold(s, name) {
			return Utility(i), nil
		}
	}
	return UtilityNull, fmt.Errorf("%w: %q", ErrUnknownUtility, s)
}

// Signature is what a tile presents on one side. It is comparable and two
// edges are compatible iff their signatures are equal.
type Signature struct {
	Terrain Terrain
	Utility Utility
}

// String renders "terrain/utility".
func (s Signature) String() string {
	return s.Terrain.String() + "/" + s.Utility.String()
}

// Edges holds one signature per side, indexed by hex.Side.
type Edges [hex.NumSides]Signature

// Rotate returns the arrangement turned n steps clockwise: the signature
// that sat on side s now sits on side s+n.
func (e Edges) Rotate(n int) Edges {
	var out Edges
	for _, s := range hex.Sides {
		out[s.Rotate(n)] = e[s]
	}
	return out
}

// Uniform reports whether all six signatures are identical.
func (e Edges) Uniform() bool {
	for _, sig := range e[1:] {
		if sig != e[0] {
			return false
		}
	}
	return true
}

// Def is a base tile definition supplied by the asset pipeline.
type Def struct {
	ID     string
	Weight float64
	Edges  Edges
}

// Tile is one immutable catalog entry: a base definition at a fixed rotation.
type Tile struct {
	// Index is the dense position of this variant in its Catalog.
	Index int
	// ID is the base definition id shared by all rotations.
	ID string
	// Rotation is the clockwise step count (0..5) applied to the base edges.
	Rotation int
	// Weight biases random selection; higher is more likely.
	Weight float64
	// Symmetric is set when all six base edges are identical.
	Symmetric bool

	edges Edges
}

// Edge returns the signature presented on side s, accounting for Rotation.
// Complexity: O(1).
func (t Tile) Edge(s hex.Side) Signature {
	return t.edges[s]
}

// Edges returns the rotated arrangement.
func (t Tile) Edges() Edges { return t.edges }

// Key is the unique variant name "id@rotation".
func (t Tile) Key() string {
	return fmt.Sprintf("%s@%d", t.ID, t.Rotation)
}

// String is the variant key.
func (t Tile) String() string { return t.Key() }
