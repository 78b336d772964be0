package particle

import (
	"image/color"
	"math/rand/v2"
	"time"
)

// Random is the explicitly passed random source particles draw from. It is
// not safe for concurrent use; a generator and its particles share one.
type Random struct {
	r *rand.Rand
}

// NewRandom returns a deterministic source for the given seed.
func NewRandom(seed uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewTimeRandom returns a source seeded from the wall clock.
func NewTimeRandom() *Random {
	return NewRandom(uint64(time.Now().UnixNano()))
}

// Float64 returns a number in [0, 1).
func (r *Random) Float64() float64 {
	return r.r.Float64()
}

// Range returns a number in [lo, hi).
func (r *Random) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// IntRange returns an integer in [lo, hi] as a float64.
func (r *Random) IntRange(lo, hi int) float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	return float64(r.r.IntN(hi-lo+1) + lo)
}

// Color returns a random color, opaque unless hasAlpha is set.
func (r *Random) Color(hasAlpha bool) color.NRGBA {
	a := uint8(255)
	if hasAlpha {
		a = uint8(r.r.IntN(256))
	}
	return color.NRGBA{
		R: uint8(r.r.IntN(256)),
		G: uint8(r.r.IntN(256)),
		B: uint8(r.r.IntN(256)),
		A: a,
	}
}
