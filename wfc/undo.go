package wfc

// removal is one tile dropped from one cell.
type removal struct {
	cell int // arena index
	tile int // catalog index
}

// batch groups the removals of one collapse and everything it propagated.
// A marker batch carries no removals and only delimits UndoToMarker.
type batch struct {
	marker  bool
	removed []removal
}

// undoLog is a stack of batches.
type undoLog struct {
	batches []batch
}

// begin opens a fresh batch.
func (u *undoLog) begin() {
	u.batches = append(u.batches, batch{})
}

// mark pushes a marker.
func (u *undoLog) mark() {
	u.batches = append(u.batches, batch{marker: true})
}

// record appends a removal to the top batch, opening one when the stack is
// empty or topped by a marker.
func (u *undoLog) record(cell, tile int) {
	if n := len(u.batches); n == 0 || u.batches[n-1].marker {
		u.begin()
	}
	top := &u.batches[len(u.batches)-1]
	top.removed = append(top.removed, removal{cell: cell, tile: tile})
}

// pop removes and returns the top batch.
func (u *undoLog) pop() (batch, bool) {
	n := len(u.batches)
	if n == 0 {
		return batch{}, false
	}
	b := u.batches[n-1]
	u.batches[n-1] = batch{}
	u.batches = u.batches[:n-1]
	return b, true
}

func (u *undoLog) depth() int { return len(u.batches) }

func (u *undoLog) clear() {
	clear(u.batches)
	u.batches = u.batches[:0]
}
