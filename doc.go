// Package hexagonalwfc generates hexagonal tile maps by constraint
// propagation ("wave function collapse").
//
// 🚀 What is in the box?
//
//	A small, deterministic engine plus the plumbing to drive it:
//		• Hex geometry: axial positions, sides, distance, hexagonal regions
//		• Tile catalogs: YAML documents validated by JSON Schema, expanded to
//		  every distinct rotation
//		• Randomized work queue with weighted sampling
//		• The engine: min-entropy collapse, iterative propagation, undo,
//		  pacing, change events and diagnostics
//		• Sinks: compressed event logs, a SQLite run index, a websocket stream
//
// ✨ Why it is built this way
//
//   - Reproducible: one seed drives every random choice
//   - Bounded: propagation is an explicit queue, never recursion
//   - Honest: an empty cell is reported as a contradiction, never as a tile
//   - Embeddable: the engine never sleeps or blocks; the host owns the clock
//
// Packages:
//
//	hex/        positions, sides, grid regions, connected components
//	tileset/    terrain/utility signatures, catalog loading and rotation
//	randqueue/  randomized priority queue with weights
//	wfc/        the engine
//	config/     YAML configuration for the runner
//	eventlog/   zstd JSONL event recorder and reader
//	runindex/   SQLite index of finished runs
//	stream/     websocket event broadcaster
//	cmd/hexwfc  command-line runner
//
// Quick start:
//
//	cat, _ := tileset.LoadFile("tiles.yaml")
//	eng, _ := wfc.New(cat, 15, wfc.WithSeed(42))
//	if err := eng.Run(ctx); errors.Is(err, wfc.ErrContradiction) {
//	  // inspect eng.Contradictions(), Undo, or Reset and retry with another seed
//	}
package hexagonalwfc
