package qrng

import (
	"fmt"
	"math"
)

// epsilonSV converts a Santha-Vazirani rate assumption into the corresponding
// per-bit bias bound.
func epsilonSV(rateSV float64) float64 {
	return math.Exp2(-rateSV) - 0.5
}

// adjustBell normalizes a Mermin correlator against the SV bias bound.
// deltaFiniteStat corrects for finite-statistics effects; zero assumes none.
func adjustBell(v, epsilon, deltaFiniteStat float64) float64 {
	return (v + deltaFiniteStat) / (8 * math.Pow(0.5-epsilon, 3))
}

// guessingProbability bounds the probability that an adversary predicts an
// output bit, given the adjusted Bell value. Values of 1/8 and above saturate
// at probability 1, i.e. no certifiable entropy.
func guessingProbability(adjusted float64) (float64, error) {
	if adjusted < 0 {
		return 0, fmt.Errorf("%w: adjusted bell value %v is negative", ErrDomain, adjusted)
	}
	var p float64
	switch {
	case adjusted >= 1.0/8:
		p = 1
	case adjusted >= 1.0/16:
		p = 0.5 + 4*adjusted
	default:
		p = 0.25 + 2*adjusted + math.Sqrt(3)*math.Sqrt(adjusted-4*adjusted*adjusted)
	}
	if math.IsNaN(p) || p < 0 || p > 1 {
		return 0, fmt.Errorf("%w: guessing probability %v outside [0, 1]", ErrDomain, p)
	}
	return p, nil
}

// MinEntropyRate returns the certified min-entropy rate per output bit, given
// a Mermin correlator v observed over numBits outcome bits per circuit, under
// an SV rate assumption of rateSV.
func MinEntropyRate(v float64, numBits int, rateSV float64) (float64, error) {
	gp, err := guessingProbability(adjustBell(v, epsilonSV(rateSV), 0))
	if err != nil {
		return 0, err
	}
	hMin := -float64(numBits) / 2 * math.Log2(gp)
	return hMin / float64(numBits), nil
}
