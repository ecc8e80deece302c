package wfc

import (
	"math/rand"
	"sync/atomic"
	"time"
)

// fallbackSeed is used if mixing ever produces zero.
const fallbackSeed int64 = 0x5eed

// seedStream separates engines created within the same clock tick.
var seedStream atomic.Uint64

// resolveSeed returns seed unchanged when non-zero, otherwise a fresh
// non-zero seed derived from the wall clock.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	s := mixSeed(time.Now().UnixNano(), seedStream.Add(1))
	if s == 0 {
		s = fallbackSeed
	}
	return s
}

// mixSeed folds a stream id into a parent seed.
//
// Rationale:
//   - Engines built in the same clock tick must still diverge; the stream id
//     separates them and the mix spreads one changed bit over the whole word.
//
// Notes:
//   - The constants are the SplitMix64 increment and finalizer multipliers.
//   - The result may be zero; resolveSeed substitutes fallbackSeed.
//
// Complexity: O(1).
func mixSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

func rngFromSeed(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
