package core

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
)

// RNG derives deterministic random streams from the run seed. Every generator
// call receives its own stream keyed by (seed, source, day, hour), so results
// do not depend on call order or on which worker lane executed the call.
func RNG(seed int64, parts ...string) *rand.Rand {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d", seed)
	for _, p := range parts {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return rand.New(rand.NewSource(int64(h.Sum64())))
}

// CellKey renders a (day, hour) pair as a stable seed component.
func CellKey(day, hour int) string {
	return fmt.Sprintf("%d/%d", day, hour)
}

// HourRNG returns the stream for one (source, day, hour) cell.
func HourRNG(seed int64, source SourceID, day, hour int) *rand.Rand {
	return RNG(seed, string(source), CellKey(day, hour))
}

// Poisson draws from a Poisson distribution with the given mean using Knuth's
// method. Means above the cutoff fall back to a normal approximation so large
// volumes stay cheap.
func Poisson(rng *rand.Rand, mean float64) int {
	if mean <= 0 {
		return 0
	}
	if mean > 64 {
		n := int(math.Round(mean + math.Sqrt(mean)*rng.NormFloat64()))
		if n < 0 {
			return 0
		}
		return n
	}
	l := math.Exp(-mean)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= l {
			return k
		}
		k++
	}
}

// Pick returns a uniformly chosen element of choices.
func Pick[T any](rng *rand.Rand, choices []T) T {
	return choices[rng.Intn(len(choices))]
}
