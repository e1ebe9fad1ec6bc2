// Package itemize supplies a couple of ready-made bucketing functions for
// the engine's Itemize contract: a pure, engine-opaque mapping from a raw
// interval to an integer bucket. Callers are free to write their own;
// these cover the two shapes commonly used when bucketing elapsed time.
package itemize

import "math"

// Itemize maps a raw interval to a bucket index. Like gisp.Itemize, it is an
// alias of func(interval int) int, so the two name the same type and these
// constructors plug directly into gisp.Options without any conversion at the
// call site. The package does not import gisp, so gisp's own tests can use it.
type Itemize = func(interval int) int

// FixedBucket buckets an interval into fixed-width windows of the given
// size, e.g. FixedBucket(86400) groups intervals by elapsed day.
func FixedBucket(size int) Itemize {
	if size <= 0 {
		panic("itemize: FixedBucket size must be positive")
	}
	return func(interval int) int {
		return interval / size
	}
}

// Log2Bucket buckets an interval logarithmically: bucket(t) = floor(log2(t
// + 1)). This spreads fine-grained buckets near zero and coarse ones for
// large intervals, useful when elapsed time spans many orders of
// magnitude.
func Log2Bucket() Itemize {
	return func(interval int) int {
		return int(math.Floor(math.Log2(float64(interval) + 1)))
	}
}
