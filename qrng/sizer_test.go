package qrng

import (
	"errors"
	"math"
	"testing"
)

func TestDodisOutputSize(t *testing.T) {
	tcs := []struct {
		name    string
		numBits int
		rateBT  float64
		rateSV  float64
		epsilon float64
		qProof  bool
		eout    int
	}{
		{
			name:    "classical",
			numBits: 1000,
			rateBT:  0.5,
			rateSV:  0.95,
			epsilon: 1e-30,
			eout:    251,
		}, {
			name:    "quantum proof",
			numBits: 10000,
			rateBT:  0.5,
			rateSV:  0.95,
			epsilon: 1e-30,
			qProof:  true,
			eout:    741,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DodisOutputSize(tc.numBits, tc.rateBT, tc.rateSV, tc.epsilon, tc.qProof)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.eout {
				t.Errorf("DodisOutputSize == %d, want %d", got, tc.eout)
			}
		})
	}
}

func TestDodisOutputSizeInfeasible(t *testing.T) {
	tcs := []struct {
		name    string
		numBits int
		qProof  bool
	}{
		{name: "classical too few bits", numBits: 10},
		{name: "quantum too few bits", numBits: 10, qProof: true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DodisOutputSize(tc.numBits, 0.5, 0.95, 1e-30, tc.qProof)
			if !errors.Is(err, ErrInfeasible) {
				t.Errorf("got error %v, want ErrInfeasible", err)
			}
		})
	}
}

func TestHayashiParameters(t *testing.T) {
	c, eps, err := HayashiParameters(100, 0.95, 4, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != 2 {
		t.Errorf("multiplier == %d, want 2", c)
	}
	// sqrt(2-1) * 2^(100/2 * (2*(1-0.95) - 1)) == 2^-45
	want := math.Exp2(-45)
	if math.Abs(eps-want) > 1e-25 {
		t.Errorf("epsilon == %v, want %v", eps, want)
	}
}

func TestHayashiParametersDomain(t *testing.T) {
	tcs := []struct {
		name     string
		cMax     int
		cPenalty int
	}{
		{name: "c negative", cMax: 1, cPenalty: 2},
		{name: "c one", cMax: 3, cPenalty: 2},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := HayashiParameters(100, 0.95, tc.cMax, tc.cPenalty)
			if !errors.Is(err, ErrDomain) {
				t.Errorf("got error %v, want ErrDomain", err)
			}
		})
	}
}
