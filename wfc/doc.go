// Package wfc is a constraint-propagation ("wave function collapse") engine
// tiling a hexagonal grid with variants from a tileset.Catalog.
//
// 🚀 How it works
//
//	Every playable cell starts with the full catalog as its domain. Collapsing
//	a cell keeps one tile; every neighbour then drops the candidates whose
//	facing edge signature no longer appears on the collapsed side, and each
//	neighbour that lost candidates notifies its own neighbours in turn. The
//	work is a randomized queue of pending updates drained by an explicit loop,
//	never by recursion, so propagation depth is bounded by the queue, not by
//	the call stack.
//
// ✨ Features
//
//   - Min-entropy collapse with uniform tie breaking and weighted tile choice.
//   - Per-cell side caches, rebuilt lazily in one pass and invalidated on every
//     domain change.
//   - Undo log: one batch per collapse, optional markers (Mark / UndoToMarker).
//   - Pacing: PaceDrain runs propagation to a fixed point per Tick, PaceStep
//     performs a fixed number of steps per Tick so a host can animate the
//     process. The engine itself never blocks or sleeps.
//   - Change notifications to Listeners: entropy changes, collapses,
//     contradictions, undo and reset.
//
// ⚙️ Usage
//
//	cat, _ := tileset.LoadFile("tiles.yaml")
//	eng, err := wfc.New(cat, 15, wfc.WithSeed(42), wfc.WithStrict(true))
//	if err != nil {
//	  // hex.ErrBadSize, ErrNilCatalog
//	}
//	err = eng.Run(ctx)   // ErrContradiction in strict mode
//
// Ordering:
//
//	Collapse, CollapseRandom, Undo, Mark and UndoToMarker require an empty
//	work queue. In strict mode a violation returns ErrInvalidState; otherwise
//	the call is skipped and logged. A cell whose domain becomes empty is in
//	contradiction: it stays empty until undone or reset, it never constrains
//	its neighbours, and in strict mode the next collapse reports
//	ErrContradiction.
//
// Concurrency:
//
//	An Engine is single-threaded. Listeners run synchronously on the calling
//	goroutine; a mutating call made from inside a listener is rejected with
//	ErrReentrant (Tick and Run ignore nested calls).
package wfc
