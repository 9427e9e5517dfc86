// Package source provides measurement-record suppliers for driving the
// parameter engine without quantum hardware.
package source

import (
	"math/rand"

	"github.com/alan-christopher/qrng/qrng/bitarray"
)

// labelWidth is the number of basis-selection bits (and outcome bits) per
// shot.
const labelWidth = 3

// A Source supplies ordered, index-aligned basis labels and measurement
// outcomes, one pair per executed shot.
type Source interface {
	// Next returns the next n measurement records. Order corresponds to
	// shot execution order and aligns labels with outcomes index-for-index.
	Next(n int) (labels, outcomes []bitarray.Dense, err error)
}

// A Simulated source fabricates measurement records with a configurable
// Mermin losing probability, in place of circuit execution on a backend.
type Simulated struct {
	// LosingProb is the probability that a record with an odd-sum label
	// registers as a losing event.
	LosingProb float64

	// Rand drives both label selection and outcome noise. Must be non-nil.
	Rand *rand.Rand
}

// Next implements the Source interface.
func (s *Simulated) Next(n int) (labels, outcomes []bitarray.Dense, err error) {
	labels = make([]bitarray.Dense, 0, n)
	outcomes = make([]bitarray.Dense, 0, n)
	for i := 0; i < n; i++ {
		lab := s.randomBits()
		out := s.randomBits()
		if sum := lab.CountOnes(); sum%2 == 1 {
			lose := s.Rand.Float64() < s.LosingProb
			out = forceParity(out, losingParity(sum) == lose)
		}
		labels = append(labels, lab)
		outcomes = append(outcomes, out)
	}
	return labels, outcomes, nil
}

func (s *Simulated) randomBits() bitarray.Dense {
	d := bitarray.Empty()
	for i := 0; i < labelWidth; i++ {
		d.AppendBit(s.Rand.Intn(2) == 1)
	}
	return d
}

// losingParity returns the outcome parity that registers a loss for an
// odd-sum label: odd parity loses for sum 1, even parity for sum 3.
func losingParity(wsrSum int) bool {
	return wsrSum == 1
}

// forceParity flips the last bit of d if needed so its parity matches want.
func forceParity(d bitarray.Dense, want bool) bitarray.Dense {
	if d.Parity() == want {
		return d
	}
	r := bitarray.Empty()
	for i := 0; i < d.Size()-1; i++ {
		r.AppendBit(d.Get(i))
	}
	r.AppendBit(!d.Get(d.Size() - 1))
	return r
}
