// Package randqueue implements a randomized priority container: every pushed
// item receives a random key and PopRandom always removes the item with the
// smallest key.
//
// With unit weights the pop order is a uniformly random permutation of the
// pushed items, independent of insertion order. With weights, each key is an
// exponential variate divided by the item's weight (compared as logarithms,
// so extreme weights neither overflow nor tie), so among items w1 and w2
// the first one is popped first with probability w1/(w1+w2); popping a queue
// to exhaustion is weighted sampling without replacement.
//
// The queue never owns a global generator: a *rand.Rand is supplied at
// construction and is not safe for concurrent use, and neither is the queue.
//
// Complexity:
//
//   - Push, PushWeighted, PopRandom: O(log n) expected.
//   - Values:                        O(n log n).
package randqueue
