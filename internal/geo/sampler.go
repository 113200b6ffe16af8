// internal/geo/sampler.go
//
// Location samplers. Both variants take the caller's *rand.Rand so that a
// seeded source (daily games, tests) yields a reproducible sequence.

package geo

import (
	"math/rand"
)

// Sampler yields a random land coordinate.
type Sampler interface {
	Sample(rng *rand.Rand) Coordinate
}

// CandidateSampler picks uniformly from a precomputed, read-only set.
type CandidateSampler struct {
	set []Coordinate
}

// NewCandidateSampler wraps set. The slice is not copied and must not be
// modified afterwards.
func NewCandidateSampler(set []Coordinate) *CandidateSampler {
	return &CandidateSampler{set: set}
}

// Sample returns a member of the set, or Fallback if the set is empty.
func (s *CandidateSampler) Sample(rng *rand.Rand) Coordinate {
	if len(s.set) == 0 {
		return Fallback
	}
	return s.set[rng.Intn(len(s.set))]
}

// Len reports the candidate count.
func (s *CandidateSampler) Len() int { return len(s.set) }

// Contains reports whether c is one of the candidates.
func (s *CandidateSampler) Contains(c Coordinate) bool {
	for _, x := range s.set {
		if x == c {
			return true
		}
	}
	return false
}
