package rng

import "github.com/valyala/fastrand"

// FastRand wraps github.com/valyala/fastrand, the default Source wired
// into Create. It is faster than the xoroshiro128+ reference and carries
// the same "uniform, not cryptographically strong" contract.
type FastRand struct{}

// NewFastRand returns a ready-to-use FastRand source.
func NewFastRand() FastRand {
	return FastRand{}
}

// Uint32 returns the next pseudo-random 32-bit value.
func (FastRand) Uint32() uint32 {
	return fastrand.Uint32()
}
