package qrng

import (
	"fmt"

	"github.com/alan-christopher/qrng/qrng/bitarray"
	"gonum.org/v1/gonum/stat"
)

// BellStats summarizes the win/loss statistics of one batch of Mermin
// inequality measurements.
type BellStats struct {
	// LosingProbability is the fraction of records registering a losing
	// event, over all records.
	LosingProbability float64

	// WinningProbability is 1 - LosingProbability.
	WinningProbability float64

	// Correlator is the Mermin correlator, 4 - 16*LosingProbability, bounded
	// in [-4, 4].
	Correlator float64
}

// ComputeBellStats reduces index-aligned sequences of basis labels and
// measurement outcomes to Mermin win/loss statistics. A record registers a
// losing event when its label has exactly one bit set and its outcome has odd
// parity, or when its label has all three bits set and its outcome has even
// parity. Labels with an even bit sum never count either way, but always
// remain in the denominator.
func ComputeBellStats(labels, outcomes []bitarray.Dense) (BellStats, error) {
	if len(labels) == 0 {
		return BellStats{}, fmt.Errorf("%w: no measurement records", ErrInputSize)
	}
	if len(labels) != len(outcomes) {
		return BellStats{}, fmt.Errorf(
			"%w: %d labels misaligned with %d outcomes", ErrInputSize, len(labels), len(outcomes))
	}
	losses := make([]float64, len(labels))
	for i := range labels {
		wsrSum := labels[i].CountOnes()
		odd := outcomes[i].Parity()
		if (wsrSum == 1 && odd) || (wsrSum == 3 && !odd) {
			losses[i] = 1
		}
	}
	losing := stat.Mean(losses, nil)
	return BellStats{
		LosingProbability:  losing,
		WinningProbability: 1 - losing,
		Correlator:         4 - 16*losing,
	}, nil
}
