package wfc

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/RocketPrinter/HexagonalWFC/hex"
	"github.com/RocketPrinter/HexagonalWFC/randqueue"
	"github.com/RocketPrinter/HexagonalWFC/tileset"
)

// PendingUpdate asks Target to re-check its candidates against Source,
// which lies across Side of Target.
type PendingUpdate struct {
	Target hex.Position `json:"target"`
	Side   hex.Side     `json:"side"`
	Source hex.Position `json:"source"`
}

// Stats are cumulative counters since construction or the last Reset.
type Stats struct {
	Collapses      int `json:"collapses"`
	Propagations   int `json:"propagations"`
	Removals       int `json:"removals"`
	Undos          int `json:"undos"`
	Contradictions int `json:"contradictions"`
}

// Engine owns the grid, the work queue and the undo log.
type Engine struct {
	cat  *tileset.Catalog
	grid *hex.Grid

	cells []Cell // arena, indexed by grid.Index; live only inside the region
	order []int  // live slots in row-major order

	queue *randqueue.Queue[PendingUpdate]
	undo  undoLog

	seed   int64
	rng    *rand.Rand
	strict bool
	pacing Pacing

	listeners []Listener
	log       *slog.Logger
	seq       uint64

	undecided    int              // cells with entropy > 1
	contradicted map[int]struct{} // arena slots with entropy 0
	stats        Stats

	busy       bool
	collapsing bool
}

// New builds an engine over a size×size hexagonal grid with every cell
// holding the whole catalog.
//
// Errors: ErrNilCatalog, hex.ErrBadSize (size not positive and odd).
// Complexity: O(size² + cells·catalog).
func New(cat *tileset.Catalog, size int, opts ...Option) (*Engine, error) {
	if cat == nil {
		return nil, ErrNilCatalog
	}
	grid, err := hex.NewGrid(size)
	if err != nil {
		return nil, fmt.Errorf("wfc: %w", err)
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{
		cat:       cat,
		grid:      grid,
		seed:      resolveSeed(cfg.seed),
		strict:    cfg.strict,
		pacing:    cfg.pacing,
		listeners: cfg.listeners,
		log:       cfg.logger,
	}
	e.rng = rngFromSeed(e.seed)
	e.queue = randqueue.New[PendingUpdate](e.rng)
	e.contradicted = make(map[int]struct{})
	if err := e.build(grid.Positions()); err != nil {
		return nil, err
	}
	e.log.Debug("engine ready",
		"size", size, "cells", len(e.order), "tiles", cat.Len(),
		"seed", e.seed, "strict", e.strict, "pacing", e.pacing.Mode.String())
	return e, nil
}

// build allocates the arena and places a cell at every position.
func (e *Engine) build(positions []hex.Position) error {
	e.cells = make([]Cell, e.grid.Slots())
	e.order = e.order[:0]
	for _, p := range positions {
		if err := e.place(p); err != nil {
			return err
		}
	}
	e.undecided = 0
	if e.cat.Len() > 1 {
		e.undecided = len(e.order)
	}
	return nil
}

// place creates the cell at p. Returns ErrDuplicateCell if one exists.
func (e *Engine) place(p hex.Position) error {
	if !e.grid.InBounds(p) {
		return fmt.Errorf("wfc: place %v: %w", p, ErrOutOfBounds)
	}
	idx := e.grid.Index(p)
	if e.cells[idx].live {
		return fmt.Errorf("wfc: place %v: %w", p, ErrDuplicateCell)
	}
	e.cells[idx].init(p, idx, e.cat)
	e.order = append(e.order, idx)
	return nil
}

// cellAt returns the live cell at p or nil.
func (e *Engine) cellAt(p hex.Position) *Cell {
	if !e.grid.InBounds(p) {
		return nil
	}
	return &e.cells[e.grid.Index(p)]
}

// enter marks the engine busy; nested calls fail with ErrReentrant.
func (e *Engine) enter(op string) error {
	if e.busy {
		e.log.Debug("rejected nested call", "op", op)
		return fmt.Errorf("wfc: %s: %w", op, ErrReentrant)
	}
	e.busy = true
	return nil
}

func (e *Engine) leave() { e.busy = false }

// guard enforces the empty-queue precondition of collapse and undo.
// proceed is false when the call must be skipped; err is set in strict mode.
func (e *Engine) guard(op string) (proceed bool, err error) {
	n := e.queue.Len()
	if n == 0 {
		return true, nil
	}
	if e.strict {
		return false, fmt.Errorf("wfc: %s with %d pending updates: %w", op, n, ErrInvalidState)
	}
	e.log.Warn("skipped call with pending updates", "op", op, "pending", n)
	return false, nil
}

// contradictionErr returns ErrContradiction in strict mode once any cell is
// contradicted.
func (e *Engine) contradictionErr(op string) error {
	if !e.strict || len(e.contradicted) == 0 {
		return nil
	}
	return fmt.Errorf("wfc: %s: %d cells: %w", op, len(e.contradicted), ErrContradiction)
}

func (e *Engine) emit(ev Event) {
	if len(e.listeners) == 0 {
		return
	}
	e.seq++
	ev.Seq = e.seq
	for _, l := range e.listeners {
		l.Notify(ev)
	}
}

// changed books a domain-size change of c from before and emits events.
func (e *Engine) changed(c *Cell, before int) {
	after := c.count
	if after == before {
		return
	}
	if after < before {
		e.stats.Removals += before - after
	}
	switch {
	case before > 1 && after <= 1:
		e.undecided--
	case before <= 1 && after > 1:
		e.undecided++
	}
	if before == 0 {
		delete(e.contradicted, c.idx)
	}

	e.emit(Event{Type: EventEntropyChanged, Position: c.pos, Entropy: after})
	switch after {
	case 1:
		t, _ := c.Tile()
		e.emit(Event{Type: EventCollapsed, Position: c.pos, Tile: t.Key(), Entropy: 1})
	case 0:
		e.contradicted[c.idx] = struct{}{}
		e.stats.Contradictions++
		e.log.Warn("contradiction", "cell", c.pos.String())
		e.emit(Event{Type: EventContradiction, Position: c.pos})
	}
}

// notify enqueues an update for every in-bounds neighbour of c across sides.
func (e *Engine) notify(c *Cell, sides []hex.Side) {
	for _, s := range sides {
		nb := c.pos.Neighbor(s)
		if !e.grid.InBounds(nb) {
			continue
		}
		e.queue.Push(PendingUpdate{Target: nb, Side: s.Opposite(), Source: c.pos})
	}
}

// RegisterUpdate enqueues an update by hand. Source must be the neighbour of
// Target across side.
//
// Errors: ErrOutOfBounds, ErrBadSide, ErrReentrant.
func (e *Engine) RegisterUpdate(target hex.Position, side hex.Side, source hex.Position) error {
	if err := e.enter("RegisterUpdate"); err != nil {
		return err
	}
	defer e.leave()
	if !e.grid.InBounds(target) || !e.grid.InBounds(source) {
		return fmt.Errorf("wfc: RegisterUpdate %v<-%v: %w", target, source, ErrOutOfBounds)
	}
	if !side.Valid() || target.Neighbor(side) != source {
		return fmt.Errorf("wfc: RegisterUpdate %v %v %v: %w", target, side, source, ErrBadSide)
	}
	e.queue.Push(PendingUpdate{Target: target, Side: side, Source: source})
	return nil
}

// StepPropagation processes one random pending update. Reports false when
// the queue was empty. Updates whose source is contradicted are discarded.
// Complexity: O(catalog) per call.
func (e *Engine) StepPropagation() (bool, error) {
	if err := e.enter("StepPropagation"); err != nil {
		return false, err
	}
	defer e.leave()
	return e.stepPropagation(), nil
}

func (e *Engine) stepPropagation() bool {
	u, ok := e.queue.PopRandom()
	if !ok {
		return false
	}
	e.stats.Propagations++
	source := e.cellAt(u.Source)
	target := e.cellAt(u.Target)
	if source.count == 0 {
		return true
	}
	before := target.count
	sides := target.updateFromSide(u.Side, source, &e.undo)
	e.changed(target, before)
	e.notify(target, sides)
	return true
}

// Drain processes updates until the queue is empty and returns how many.
// Terminates because every enqueue follows a strict domain shrink.
func (e *Engine) Drain() (int, error) {
	if err := e.enter("Drain"); err != nil {
		return 0, err
	}
	defer e.leave()
	return e.drain(), nil
}

func (e *Engine) drain() int {
	n := 0
	for e.stepPropagation() {
		n++
	}
	return n
}

// CollapseRandom collapses one of the undecided cells with the lowest
// entropy, ties broken uniformly, to a weighted random candidate. Does
// nothing once no cell has entropy above one.
//
// Errors: ErrInvalidState (strict, pending updates), ErrContradiction
// (strict, a cell is contradicted), ErrReentrant.
// Complexity: O(cells + catalog·log catalog).
func (e *Engine) CollapseRandom() error {
	if err := e.enter("CollapseRandom"); err != nil {
		return err
	}
	defer e.leave()
	_, err := e.collapseRandom()
	return err
}

func (e *Engine) collapseRandom() (bool, error) {
	if ok, err := e.guard("CollapseRandom"); !ok {
		return false, err
	}
	if err := e.contradictionErr("CollapseRandom"); err != nil {
		return false, err
	}
	c := e.pickLowestEntropy()
	if c == nil {
		return false, nil
	}
	e.collapsing = true
	defer func() { e.collapsing = false }()

	e.undo.begin()
	before := c.count
	t, sides, err := c.collapseRandom(e.rng, &e.undo)
	if err != nil {
		e.undo.pop()
		return false, fmt.Errorf("CollapseRandom: %w", err)
	}
	e.stats.Collapses++
	e.log.Debug("collapsed", "cell", c.pos.String(), "tile", e.cat.Tile(t).Key(), "entropy", before)
	e.changed(c, before)
	e.notify(c, sides)
	return true, nil
}

// pickLowestEntropy scans live cells in row-major order.
func (e *Engine) pickLowestEntropy() *Cell {
	best := 0
	var ties []int
	for _, idx := range e.order {
		n := e.cells[idx].count
		if n <= 1 {
			continue
		}
		switch {
		case best == 0 || n < best:
			best = n
			ties = append(ties[:0], idx)
		case n == best:
			ties = append(ties, idx)
		}
	}
	if len(ties) == 0 {
		return nil
	}
	return &e.cells[ties[e.rng.Intn(len(ties))]]
}

// Collapse fixes the cell at pos to catalog tile t. Collapsing a cell to the
// tile it already holds is a no-op.
//
// Errors: ErrOutOfBounds, ErrTileNotInDomain, ErrInvalidState (strict),
// ErrContradiction (strict), ErrReentrant.
func (e *Engine) Collapse(pos hex.Position, t int) error {
	if err := e.enter("Collapse"); err != nil {
		return err
	}
	defer e.leave()

	c := e.cellAt(pos)
	if c == nil {
		return fmt.Errorf("wfc: Collapse %v: %w", pos, ErrOutOfBounds)
	}
	if ok, err := e.guard("Collapse"); !ok {
		return err
	}
	if err := e.contradictionErr("Collapse"); err != nil {
		return err
	}
	if !c.Contains(t) {
		return fmt.Errorf("wfc: Collapse %v to tile %d: %w", pos, t, ErrTileNotInDomain)
	}
	if c.count == 1 {
		return nil
	}
	e.collapsing = true
	defer func() { e.collapsing = false }()

	e.undo.begin()
	before := c.count
	sides := c.collapse(t, &e.undo)
	e.stats.Collapses++
	e.log.Debug("collapsed", "cell", pos.String(), "tile", e.cat.Tile(t).Key(), "entropy", before)
	e.changed(c, before)
	e.notify(c, sides)
	return nil
}

// CollapseKey is Collapse addressed by variant key ("id@rotation").
func (e *Engine) CollapseKey(pos hex.Position, key string) error {
	t, ok := e.cat.Lookup(key)
	if !ok {
		return fmt.Errorf("wfc: Collapse %v to %q: %w", pos, key, ErrTileNotInDomain)
	}
	return e.Collapse(pos, t)
}

// Undo reverts the most recent batch, re-admitting every tile it removed.
// Reports false when there was nothing to undo. Restored cells are not
// re-propagated: the state before the batch was consistent.
//
// Errors: ErrInvalidState (strict, pending updates), ErrReentrant.
func (e *Engine) Undo() (bool, error) {
	if err := e.enter("Undo"); err != nil {
		return false, err
	}
	defer e.leave()
	if ok, err := e.guard("Undo"); !ok {
		return false, err
	}
	return e.undoBatch(), nil
}

func (e *Engine) undoBatch() bool {
	b, ok := e.undo.pop()
	if !ok {
		return false
	}
	if b.marker {
		return true
	}
	before := make(map[int]int)
	var touched []int
	for i := len(b.removed) - 1; i >= 0; i-- {
		r := b.removed[i]
		c := &e.cells[r.cell]
		if _, seen := before[r.cell]; !seen {
			before[r.cell] = c.count
			touched = append(touched, r.cell)
		}
		c.restore(r.tile)
	}
	for _, idx := range touched {
		e.changed(&e.cells[idx], before[idx])
	}
	e.stats.Undos++
	e.log.Debug("undone", "tiles", len(b.removed), "cells", len(touched))
	e.emit(Event{Type: EventUndone, Count: len(b.removed)})
	return true
}

// Mark pushes an undo marker for UndoToMarker.
//
// Errors: ErrInvalidState (strict, pending updates), ErrReentrant.
func (e *Engine) Mark() error {
	if err := e.enter("Mark"); err != nil {
		return err
	}
	defer e.leave()
	if ok, err := e.guard("Mark"); !ok {
		return err
	}
	e.undo.mark()
	return nil
}

// UndoToMarker undoes batches until a marker is consumed or the log is
// empty. Returns the number of non-marker batches undone.
//
// Errors: ErrInvalidState (strict, pending updates), ErrReentrant.
func (e *Engine) UndoToMarker() (int, error) {
	if err := e.enter("UndoToMarker"); err != nil {
		return 0, err
	}
	defer e.leave()
	if ok, err := e.guard("UndoToMarker"); !ok {
		return 0, err
	}
	n := 0
	for {
		b := e.undo.batches
		if len(b) == 0 {
			return n, nil
		}
		marker := b[len(b)-1].marker
		e.undoBatch()
		if marker {
			return n, nil
		}
		n++
	}
}

// Reset returns every cell to the full catalog, clears the queue, the undo
// log and the statistics, and reseeds the generator so the next run repeats
// the first one.
func (e *Engine) Reset() error {
	if err := e.enter("Reset"); err != nil {
		return err
	}
	defer e.leave()
	e.queue.Clear()
	e.undo.clear()
	for _, idx := range e.order {
		e.cells[idx].fill()
	}
	e.undecided = 0
	if e.cat.Len() > 1 {
		e.undecided = len(e.order)
	}
	clear(e.contradicted)
	e.stats = Stats{}
	e.rng.Seed(e.seed)
	e.log.Debug("reset", "seed", e.seed)
	e.emit(Event{Type: EventReset, Entropy: e.cat.Len()})
	return nil
}
