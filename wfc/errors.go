package wfc

import "errors"

// ErrOutOfBounds indicates an operation addressed a position outside the
// playable hexagonal region. Always returned, never recovered internally.
var ErrOutOfBounds = errors.New("wfc: position outside playable region")

// ErrDuplicateCell indicates grid construction tried to create a second cell
// at an occupied position.
var ErrDuplicateCell = errors.New("wfc: duplicate cell")

// ErrInvalidState indicates a collapse or undo attempted while propagation
// updates are still pending. Returned only in strict mode.
var ErrInvalidState = errors.New("wfc: pending propagation updates")

// ErrContradiction indicates that at least one cell has an empty domain: no
// tile satisfies all of its neighbour constraints.
var ErrContradiction = errors.New("wfc: contradiction")

// ErrTileNotInDomain indicates an explicit collapse to a tile the cell no
// longer (or never) admits.
var ErrTileNotInDomain = errors.New("wfc: tile not in cell domain")

// ErrBadSide indicates an update whose side does not join target and source.
var ErrBadSide = errors.New("wfc: side does not connect the cells")

// ErrNilCatalog indicates New was called without a catalog.
var ErrNilCatalog = errors.New("wfc: catalog is nil")

// ErrReentrant indicates a mutating call made while the engine is already
// executing one, typically from inside a Listener.
var ErrReentrant = errors.New("wfc: re-entrant call")
