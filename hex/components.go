package hex

// Components finds the contiguous regions of playable positions for which
// member reports true. Two adjacent members belong to the same region when
// joined(a, s, b) reports true, where s is the side of a facing b; a nil
// joined connects every pair of adjacent members.
//
// Regions are discovered in row-major order of their first position and each
// region lists its positions in BFS order from that position.
//
// Time:   O(Size²·6).
// Memory: O(Size²) for visited flags and output.
func (g Grid) Components(member func(Position) bool, joined func(a Position, s Side, b Position) bool) [][]Position {
	seen := make([]bool, g.Slots())
	var comps [][]Position

	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			start := Position{X: x, Y: y}
			if !g.InBounds(start) || seen[g.Index(start)] || !member(start) {
				continue
			}
			// BFS with an explicit queue.
			queue := []Position{start}
			seen[g.Index(start)] = true
			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				for _, s := range Sides {
					v := u.Neighbor(s)
					if !g.InBounds(v) || seen[g.Index(v)] || !member(v) {
						continue
					}
					if joined != nil && !joined(u, s, v) {
						continue
					}
					seen[g.Index(v)] = true
					queue = append(queue, v)
				}
			}
			comps = append(comps, queue)
		}
	}
	return comps
}
