package rng

import "hash/fnv"

// Roll is one logged draw from a Sequence.
type Roll struct {
	Index int     `json:"index"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Sequence is a deterministic pseudo-random generator (mulberry32 mix).
// Every draw is appended to an ordered roll log so that any outcome can be
// replayed bit-for-bit from its seed. Not safe for concurrent use; each
// operation owns its own Sequence.
type Sequence struct {
	state uint32
	rolls []Roll
}

// New creates a Sequence from an integer seed. The full 64 bits of the seed
// participate in the initial state so that seed and seed+2^32 diverge.
func New(seed int64) *Sequence {
	s := uint32(seed) ^ uint32(uint64(seed)>>32) ^ 0x9E3779B9
	return &Sequence{state: s}
}

// Next returns the next float in [0, 1) and logs it under label.
func (s *Sequence) Next(label string) float64 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14

	v := float64(z) / 4294967296.0
	s.rolls = append(s.rolls, Roll{Index: len(s.rolls), Label: label, Value: v})
	return v
}

// NextRange returns a draw scaled into [lo, hi).
func (s *Sequence) NextRange(label string, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Next(label)*(hi-lo)
}

// Rolls returns the append-only roll log.
func (s *Sequence) Rolls() []Roll {
	return s.rolls
}

// SubSeed derives a child seed from (seed, label). The same pair always
// yields the same child, and distinct labels yield independent streams, so
// batch operations can hand each element its own Sequence without ever
// reusing draws.
func SubSeed(seed int64, label string) int64 {
	h := fnv.New64a()
	var buf [8]byte
	u := uint64(seed)
	for i := 0; i < 8; i++ {
		buf[i] = byte(u >> (8 * i))
	}
	h.Write(buf[:])
	h.Write([]byte(label))
	return int64(h.Sum64())
}
