// Package tileset holds the immutable tile catalog consumed by the
// constraint engine.
//
// What:
//
//   - Signature is the (terrain, utility) pair a tile presents on one side.
//     Two cells fit across a shared edge iff the signatures facing each other
//     are equal.
//   - Def is a base tile as produced by an external asset pipeline: an id, a
//     selection weight and six edge signatures in hex.Side order.
//   - Catalog expands every Def into its distinct rotations once, at build
//     time, and exposes them by dense index. Rotations that would repeat an
//     edge arrangement already produced for the same base are skipped, so a
//     tile with six identical edges contributes a single variant.
//   - Load/LoadFile read YAML or JSON catalog documents, validated against an
//     embedded JSON Schema before decoding.
//
// Complexity:
//
//   - NewCatalog: O(T·6·6) for T base tiles.
//   - Signature, Tile: O(1).
//
// Errors:
//
//   - ErrEmptyCatalog, ErrEmptyID, ErrDuplicateID, ErrBadWeight: invalid defs.
//   - ErrUnknownTerrain, ErrUnknownUtility: unknown vocabulary in a document.
//   - ErrSchema: the document does not match the catalog schema.
package tileset
