package hex

import "fmt"

// Grid describes the playable hexagonal region of a size×size backing array.
// It is immutable once built.
//
// Center is (size/2, size/2) and Radius is size/2; a position is playable
// when it lies inside the backing array and within Radius of Center.
type Grid struct {
	Size   int
	Radius int
	Center Position
}

// NewGrid constructs the grid for a positive odd size.
// Returns ErrBadSize otherwise.
// Complexity: O(1).
func NewGrid(size int) (*Grid, error) {
	if size <= 0 || size%2 == 0 {
		return nil, fmt.Errorf("NewGrid(%d): %w", size, ErrBadSize)
	}
	return &Grid{
		Size:   size,
		Radius: size / 2,
		Center: Position{X: size / 2, Y: size / 2},
	}, nil
}

// InArray reports whether p addresses a slot of the backing array.
func (g Grid) InArray(p Position) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// InBounds reports whether p lies in the playable hexagonal region.
// Complexity: O(1).
func (g Grid) InBounds(p Position) bool {
	return g.InArray(p) && Distance(g.Center, p) <= g.Radius
}

// Len returns the number of playable positions: 1 + 3r(r+1).
func (g Grid) Len() int {
	return 1 + 3*g.Radius*(g.Radius+1)
}

// Slots returns the size of the backing array (Size²).
func (g Grid) Slots() int {
	return g.Size * g.Size
}

// Index maps p to its row-major slot: y*Size + x.
// The caller must ensure InArray(p).
// Complexity: O(1).
func (g Grid) Index(p Position) int {
	return p.Y*g.Size + p.X
}

// Position converts a row-major slot back to its coordinates.
// Complexity: O(1).
func (g Grid) Position(idx int) Position {
	return Position{X: idx % g.Size, Y: idx / g.Size}
}

// Positions returns every playable position in row-major order.
// Complexity: O(Size²).
func (g Grid) Positions() []Position {
	out := make([]Position, 0, g.Len())
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			p := Position{X: x, Y: y}
			if g.InBounds(p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// Ring returns the positions at exact distance k from Center, walking the
// ring side by side. k == 0 yields [Center]; k outside [0, Radius] yields nil.
// Complexity: O(k).
func (g Grid) Ring(k int) []Position {
	if k < 0 || k > g.Radius {
		return nil
	}
	if k == 0 {
		return []Position{g.Center}
	}
	out := make([]Position, 0, NumSides*k)
	cur := g.Center
	for i := 0; i < k; i++ {
		cur = cur.Neighbor(BottomLeft)
	}
	for _, s := range Sides {
		for step := 0; step < k; step++ {
			out = append(out, cur)
			cur = cur.Neighbor(s)
		}
	}
	return out
}
