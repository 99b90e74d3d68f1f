// Package keygen produces account numbers and BVNs.
package keygen

import (
	"math/rand/v2"
	"strconv"
	"sync"
)

const (
	minAccountNumber = 1_000_000_000
	maxAccountNumber = 9_999_999_999
	minBVN           = 10_000_000_000
	maxBVN           = 99_999_999_999
)

// Generator hands out account numbers and BVNs.
type Generator interface {
	// AccountNumber returns a 10-digit account number.
	AccountNumber() int64
	// BVN returns an 11-digit numeric string.
	BVN() string
}

type random struct{}

// NewRandom returns a non-cryptographic generator. Callers must check
// account numbers for collisions.
func NewRandom() Generator { return random{} }

func (random) AccountNumber() int64 {
	return minAccountNumber + rand.Int64N(maxAccountNumber-minAccountNumber+1)
}

func (random) BVN() string {
	return strconv.FormatInt(minBVN+rand.Int64N(maxBVN-minBVN+1), 10)
}

// Sequence is a deterministic generator: numbers count up from the start
// value and BVNs count up from the smallest 11-digit number.
type Sequence struct {
	mu   sync.Mutex
	next int64
	bvn  int64
}

// NewSequence returns a Sequence whose first account number is start.
// Values below the 10-digit range are lifted into it.
func NewSequence(start int64) *Sequence {
	if start < minAccountNumber {
		start = minAccountNumber
	}
	return &Sequence{next: start, bvn: minBVN}
}

func (s *Sequence) AccountNumber() int64 {
	s.mu.Lock(); defer s.mu.Unlock()
	n := s.next
	s.next++
	if s.next > maxAccountNumber {
		s.next = minAccountNumber
	}
	return n
}

func (s *Sequence) BVN() string {
	s.mu.Lock(); defer s.mu.Unlock()
	v := s.bvn
	s.bvn++
	if s.bvn > maxBVN {
		s.bvn = minBVN
	}
	return strconv.FormatInt(v, 10)
}
