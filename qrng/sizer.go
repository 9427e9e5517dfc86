package qrng

import (
	"fmt"
	"math"
)

// DodisOutputSize returns the number of bits the first-stage (Dodis-style)
// extractor may safely emit from numBits of raw input carrying rateBT bits of
// min-entropy each, seeded by an SV source of rate rateSV. qProof selects the
// quantum-proof bound; callers must choose explicitly. A negative size means
// the inputs cannot support extraction at the requested security level, and
// surfaces as ErrInfeasible rather than being clamped.
func DodisOutputSize(numBits int, rateBT, rateSV, epsilonDodis float64, qProof bool) (int, error) {
	n := float64(numBits)
	var out float64
	if !qProof {
		out = math.Floor(n*(rateBT+rateSV-1) + 1 - 2*math.Log2(1/epsilonDodis))
	} else {
		out = math.Floor((n*(rateBT+rateSV-1) + 1 -
			8*math.Log2(1/epsilonDodis) - 8*math.Log2(math.Sqrt(3)/2)) / 5)
	}
	if out < 0 {
		return 0, fmt.Errorf("%w: dodis output size %d", ErrInfeasible, int(out))
	}
	return int(out), nil
}

// HayashiParameters returns the seed multiplier c and the security parameter
// epsilon for the second-stage (Hayashi-style) extractor, given the bit size
// of its seed and the derived bounds cMax and cPenalty. Multipliers below 2
// are invalid and surface as ErrDomain.
func HayashiParameters(inputSize int, rateSV float64, cMax, cPenalty int) (int, float64, error) {
	c := cMax - cPenalty
	if c < 2 {
		return 0, 0, fmt.Errorf("%w: hayashi multiplier %d < 2", ErrDomain, c)
	}
	epsilon := math.Sqrt(float64(c-1)) *
		math.Exp2(float64(inputSize)/2*(float64(c)*(1-rateSV)-1))
	return c, epsilon, nil
}
