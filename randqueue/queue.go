package randqueue

import (
	"container/heap"
	"errors"
	"math"
	"math/rand"
	"sort"
)

// ErrBadWeight indicates a weight that is not a finite positive number.
var ErrBadWeight = errors.New("randqueue: weight must be finite and > 0")

type entry[T any] struct {
	key  float64
	item T
}

// keyHeap is a min-heap of entries ordered by key.
type keyHeap[T any] []entry[T]

func (h keyHeap[T]) Len() int           { return len(h) }
func (h keyHeap[T]) Less(i, j int) bool { return h[i].key < h[j].key }
func (h keyHeap[T]) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *keyHeap[T]) Push(x any) {
	*h = append(*h, x.(entry[T]))
}

func (h *keyHeap[T]) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = entry[T]{} // release the item for GC
	*h = old[:n-1]
	return e
}

// Queue is a randomized priority container. The zero value is not usable;
// construct with New.
type Queue[T any] struct {
	rng  *rand.Rand
	h    keyHeap[T]
	used map[float64]struct{}
}

// New returns an empty queue drawing keys from rng.
// Panics on nil rng: a hidden fallback generator would break reproducibility.
func New[T any](rng *rand.Rand) *Queue[T] {
	if rng == nil {
		panic("randqueue: New(nil rng)")
	}
	return &Queue[T]{
		rng:  rng,
		used: make(map[float64]struct{}),
	}
}

// Push inserts item with weight 1.
func (q *Queue[T]) Push(item T) {
	q.insert(item, 1)
}

// PushWeighted inserts item with the given weight; a larger weight makes an
// earlier pop more likely. Returns ErrBadWeight for non-positive, NaN or
// infinite weights.
func (q *Queue[T]) PushWeighted(item T, weight float64) error {
	if !(weight > 0) || math.IsInf(weight, 0) {
		return ErrBadWeight
	}
	q.insert(item, weight)
	return nil
}

// insert draws keys until an unused one is found. The key is
// ln(Exp(1)/weight), kept in the log domain so that tiny weights stay finite
// and ordered instead of overflowing to +Inf.
func (q *Queue[T]) insert(item T, weight float64) {
	lw := math.Log(weight)
	for {
		key := math.Log(q.rng.ExpFloat64()) - lw
		if _, taken := q.used[key]; taken {
			continue
		}
		q.used[key] = struct{}{}
		heap.Push(&q.h, entry[T]{key: key, item: item})
		return
	}
}

// PopRandom removes and returns the item with the smallest key.
// ok is false when the queue is empty.
func (q *Queue[T]) PopRandom() (item T, ok bool) {
	if len(q.h) == 0 {
		return item, false
	}
	e := heap.Pop(&q.h).(entry[T])
	delete(q.used, e.key)
	return e.item, true
}

// Peek returns the item PopRandom would return, without removing it.
func (q *Queue[T]) Peek() (item T, ok bool) {
	if len(q.h) == 0 {
		return item, false
	}
	return q.h[0].item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.h) }

// Values returns a copy of the queued items in pop order.
// Mutating the result does not affect the queue.
func (q *Queue[T]) Values() []T {
	sorted := make([]entry[T], len(q.h))
	copy(sorted, q.h)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].key < sorted[j].key })
	out := make([]T, len(sorted))
	for i, e := range sorted {
		out[i] = e.item
	}
	return out
}

// Clear drops every queued item.
func (q *Queue[T]) Clear() {
	clear(q.h)
	q.h = q.h[:0]
	clear(q.used)
}
