// Package hex provides the coordinate system of the hexagonal board:
// axial positions, the six sides, the hex distance metric and a bounded
// grid describing the playable hexagonal region.
//
// What:
//
//   - Position is an axial (X, Y) pair; Side enumerates the six edges of a
//     cell in a fixed order (Top, TopRight, BottomRight, Bottom, BottomLeft,
//     TopLeft). The positional index of a side is its value everywhere, so
//     Opposite(s) = (s+3) mod 6 holds for neighbor lookups and edge caches.
//   - Grid maps the playable hexagon of radius size/2, centred inside a
//     size×size backing array, to row-major arena indices.
//   - Components groups adjacent positions into regions (iterative BFS).
//
// Complexity:
//
//   - Distance, Neighbor, InBounds, Index: O(1).
//   - Positions, Components:               O(size²).
//
// Errors:
//
//   - ErrBadSize: grid size is not a positive odd integer.
package hex
