// Package prng is a seeded mulberry32 stream. The output sequence is a pure
// function of the seed and the number of draws, bit-for-bit identical to the
// JavaScript reference that uses Math.imul and >>> 0 truncation.
package prng

const (
	increment = 0x6d2b79f5
	scale     = 1.0 / 4294967296.0
)

type Stream struct {
	state uint32
}

func New(seed int32) *Stream {
	return &Stream{state: uint32(seed)}
}

// Uint32 advances the state and returns the next raw 32-bit output.
func (s *Stream) Uint32() uint32 {
	s.state += increment
	a := s.state
	t := (a ^ a>>15) * (1 | a)
	t = (t + (t^t>>7)*(61|t)) ^ t
	return t ^ t>>14
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.Uint32()) * scale
}
