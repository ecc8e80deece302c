package hex

import (
	"errors"
	"fmt"
)

// Sentinel errors for hex operations.
var (
	// ErrBadSize indicates a grid size that is not a positive odd integer.
	// Even sizes cannot hold a centred hexagonal region.
	ErrBadSize = errors.New("hex: grid size must be a positive odd integer")
)

// Position is an axial coordinate pair.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p+q.
func (p Position) Add(q Position) Position { return Position{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p-q.
func (p Position) Sub(q Position) Position { return Position{X: p.X - q.X, Y: p.Y - q.Y} }

// String renders the position as "(x,y)".
func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Side identifies one of the six edges of a hex cell.
// The numeric value doubles as the index into per-side tables.
type Side int

const (
	// Top is the edge towards (0,+1).
	Top Side = iota
	// TopRight is the edge towards (+1,0).
	TopRight
	// BottomRight is the edge towards (+1,-1).
	BottomRight
	// Bottom is the edge towards (0,-1).
	Bottom
	// BottomLeft is the edge towards (-1,0).
	BottomLeft
	// TopLeft is the edge towards (-1,+1).
	TopLeft
)

// NumSides is the number of edges of a hex cell.
const NumSides = 6

// Sides lists every side in canonical order.
var Sides = [NumSides]Side{Top, TopRight, BottomRight, Bottom, BottomLeft, TopLeft}

// offsets[s] is the axial step across side s.
var offsets = [NumSides]Position{
	{X: 0, Y: 1},
	{X: 1, Y: 0},
	{X: 1, Y: -1},
	{X: 0, Y: -1},
	{X: -1, Y: 0},
	{X: -1, Y: 1},
}

var sideNames = [NumSides]string{"Top", "TopRight", "BottomRight", "Bottom", "BottomLeft", "TopLeft"}

// Valid reports whether s is one of the six sides.
func (s Side) Valid() bool { return s >= 0 && s < NumSides }

// Opposite returns the side facing s across a shared edge: (s+3) mod 6.
func (s Side) Opposite() Side { return (s + 3) % NumSides }

// Rotate returns the side n steps clockwise from s (n may be negative).
func (s Side) Rotate(n int) Side {
	return Side(((int(s)+n)%NumSides + NumSides) % NumSides)
}

// Offset returns the axial step across s.
func (s Side) Offset() Position { return offsets[s] }

// String returns the side name, or "Side(n)" for invalid values.
func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}
