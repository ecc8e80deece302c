package hex

// Neighbor returns the position across side s.
// Complexity: O(1).
func (p Position) Neighbor(s Side) Position {
	return p.Add(offsets[s])
}

// Neighbors returns the six adjacent positions in side order, so that
// Neighbors()[s] == Neighbor(s).
// Complexity: O(1).
func (p Position) Neighbors() [NumSides]Position {
	var out [NumSides]Position
	for s := range offsets {
		out[s] = p.Add(offsets[s])
	}
	return out
}

// SideTo returns the side of p that faces q, and false when q is not
// adjacent to p.
func (p Position) SideTo(q Position) (Side, bool) {
	d := q.Sub(p)
	for s, off := range offsets {
		if off == d {
			return Side(s), true
		}
	}
	return 0, false
}

// Distance returns the hex distance between a and b.
//
// With the side offsets of this package the implicit third cube coordinate
// is -(x+y), so the metric is (|dx| + |dy| + |dx+dy|) / 2.
// Complexity: O(1).
func Distance(a, b Position) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return (abs(dx) + abs(dy) + abs(dx+dy)) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
