package wfc

import (
	"fmt"

	"github.com/RocketPrinter/HexagonalWFC/hex"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
)

// State is a coarse view of the engine's lifecycle.
type State int

const (
	// StateIdle has undecided cells and nothing pending.
	StateIdle State = iota
	// StatePropagating has pending updates.
	StatePropagating
	// StateCollapsing is reported while a collapse is being applied, i.e. to
	// listeners.
	StateCollapsing
	// StateTerminal has every cell collapsed and nothing pending.
	StateTerminal
	// StateContradicted has at least one empty cell.
	StateContradicted
)

var stateNames = [...]string{"idle", "propagating", "collapsing", "terminal", "contradicted"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// State reports the current lifecycle state. Contradiction outranks the
// queue, which outranks completion.
func (e *Engine) State() State {
	switch {
	case e.collapsing:
		return StateCollapsing
	case len(e.contradicted) > 0:
		return StateContradicted
	case e.queue.Len() > 0:
		return StatePropagating
	case e.undecided == 0:
		return StateTerminal
	default:
		return StateIdle
	}
}

// Done reports that no cell is undecided and nothing is pending.
func (e *Engine) Done() bool {
	return e.undecided == 0 && e.queue.Len() == 0
}

// Size is the grid's backing-array side length.
func (e *Engine) Size() int { return e.grid.Size }

// Grid returns a copy of the grid geometry.
func (e *Engine) Grid() hex.Grid { return *e.grid }

// Catalog returns the catalog the engine was built with.
func (e *Engine) Catalog() *tileset.Catalog { return e.cat }

// Seed is the seed actually in use.
func (e *Engine) Seed() int64 { return e.seed }

// Strict reports whether ordering violations are errors.
func (e *Engine) Strict() bool { return e.strict }

// Pacing returns the per-Tick budget.
func (e *Engine) Pacing() Pacing { return e.pacing }

// Stats returns a snapshot of the counters.
func (e *Engine) Stats() Stats { return e.stats }

// QueueLen is the number of pending updates.
func (e *Engine) QueueLen() int { return e.queue.Len() }

// Pending returns the pending updates in the order they would be processed.
func (e *Engine) Pending() []PendingUpdate { return e.queue.Values() }

// UndoDepth is the number of batches (markers included) on the undo log.
func (e *Engine) UndoDepth() int { return e.undo.depth() }

// Cells is the number of playable cells.
func (e *Engine) Cells() int { return len(e.order) }

// Cell returns a read-only view of the cell at p.
// Errors: ErrOutOfBounds.
func (e *Engine) Cell(p hex.Position) (*Cell, error) {
	c := e.cellAt(p)
	if c == nil {
		return nil, fmt.Errorf("wfc: Cell %v: %w", p, ErrOutOfBounds)
	}
	return c, nil
}

// Entropy returns the domain size of the cell at p.
// Errors: ErrOutOfBounds.
func (e *Engine) Entropy(p hex.Position) (int, error) {
	c, err := e.Cell(p)
	if err != nil {
		return 0, err
	}
	return c.count, nil
}

// EntropyMap returns the domain size of every playable cell.
// Complexity: O(cells).
func (e *Engine) EntropyMap() map[hex.Position]int {
	out := make(map[hex.Position]int, len(e.order))
	for _, idx := range e.order {
		c := &e.cells[idx]
		out[c.pos] = c.count
	}
	return out
}

// Contradictions lists contradicted cells in row-major order.
func (e *Engine) Contradictions() []hex.Position {
	out := make([]hex.Position, 0, len(e.contradicted))
	for _, idx := range e.order {
		if _, ok := e.contradicted[idx]; ok {
			out = append(out, e.cells[idx].pos)
		}
	}
	return out
}

// Tiles returns the chosen variant key of every collapsed cell.
func (e *Engine) Tiles() map[hex.Position]string {
	out := make(map[hex.Position]string)
	for _, idx := range e.order {
		if t, ok := e.cells[idx].Tile(); ok {
			out[e.cells[idx].pos] = t.Key()
		}
	}
	return out
}

// Networks groups collapsed cells joined by utility u across shared edges,
// e.g. the connected road systems of a finished map. Each group lists cells
// in discovery order; groups appear in row-major order of their first cell.
// Complexity: O(cells).
func (e *Engine) Networks(u tileset.Utility) [][]hex.Position {
	carries := func(p hex.Position) bool {
		t, ok := e.cellAt(p).Tile()
		if !ok {
			return false
		}
		for _, s := range hex.Sides {
			if t.Edge(s).Utility == u {
				return true
			}
		}
		return false
	}
	joined := func(a hex.Position, s hex.Side, b hex.Position) bool {
		ta, _ := e.cellAt(a).Tile()
		tb, _ := e.cellAt(b).Tile()
		return ta.Edge(s).Utility == u && tb.Edge(s.Opposite()).Utility == u
	}
	return e.grid.Components(carries, joined)
}
