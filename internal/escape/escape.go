// Package escape computes escape times for points of the multibrot iteration
// z ← c + z^exponent.
package escape

import (
	"math/cmplx"

	lru "github.com/hashicorp/golang-lru/v2"

	"multibrot/internal/coords"
)

// DefaultCacheSize bounds the evaluator's memoization cache. A frame of a
// typical terminal canvas is a few thousand samples, so this holds several
// frames' worth of points at a fixed zoom level.
const DefaultCacheSize = 1 << 16

// Count returns the iteration at which the orbit of x+iy first leaves the
// circle |z| = 2, or 0 when the orbit is still inside after maxIteration
// steps. The 0 return is a sentinel for "did not escape", not an iteration
// index; colour maps render it as the darkest shade. Exponent 2 is the
// classical Mandelbrot recurrence and runs on real arithmetic; any other
// positive exponent goes through general complex exponentiation.
func Count(x, y coords.Real, exponent float64, maxIteration int) int {
	if exponent == 2 {
		return countClassic(x, y, maxIteration)
	}
	c := complex(x, y)
	z := complex(0, 0)
	for n := 0; n < maxIteration; n++ {
		if cmplx.Abs(z) > 2 {
			return n
		}
		z = c + cmplx.Pow(z, complex(exponent, 0))
	}
	return 0
}

// countClassic is the exponent-2 hot path. It must agree with the general
// loop step for step, including the check-before-iterate ordering.
func countClassic(x, y float64, maxIteration int) int {
	var zr, zi float64
	for n := 0; n < maxIteration; n++ {
		if zr*zr+zi*zi > 4 {
			return n
		}
		zr, zi = zr*zr-zi*zi+x, 2*zr*zi+y
	}
	return 0
}

type cacheKey struct {
	x, y         coords.Real
	exponent     float64
	maxIteration int
}

// Evaluator memoizes Count behind a fixed-capacity LRU. Repeated pans and
// zooms revisit sample points at unchanged parameters, and the escape loop
// dominates render cost, but exact coordinates rarely recur across zoom
// levels, so the cache is bounded rather than grow-forever.
type Evaluator struct {
	cache *lru.Cache[cacheKey, int]
}

// NewEvaluator returns an evaluator with a cache of the given capacity.
// Sizes below 1 fall back to DefaultCacheSize.
func NewEvaluator(size int) *Evaluator {
	if size < 1 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, int](size)
	if err != nil {
		panic(err) // unreachable: size is validated above
	}
	return &Evaluator{cache: cache}
}

// Count is the memoized form of the package-level Count.
func (e *Evaluator) Count(x, y coords.Real, exponent float64, maxIteration int) int {
	k := cacheKey{x: x, y: y, exponent: exponent, maxIteration: maxIteration}
	if v, ok := e.cache.Get(k); ok {
		return v
	}
	v := Count(x, y, exponent, maxIteration)
	e.cache.Add(k, v)
	return v
}

// Len reports how many points are currently cached.
func (e *Evaluator) Len() int { return e.cache.Len() }
