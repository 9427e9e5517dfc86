// Package qrng computes randomness-extraction parameters for quantum random
// number generation certified by a Mermin inequality test. Given the basis
// labels and measurement outcomes of an executed batch of shots, it derives
// the observed Bell statistics, a certified min-entropy rate under a
// Santha-Vazirani model of the weak label source, a number-theoretically
// valid modulus, and safe output sizes for a two-stage downstream extractor.
//
// Everything here is a pure computation over the inputs; circuit execution
// and the extractors themselves live elsewhere.
package qrng

import (
	"fmt"

	"github.com/alan-christopher/qrng/qrng/bitarray"
)

var (
	DefaultRateSV       = 0.95
	DefaultEpsilonDodis = 1e-30
)

// A PlannerOpts packages together the arguments necessary to construct a new
// Planner. The zero value of every field has a usable default or is validated
// by NewPlanner.
type PlannerOpts struct {
	// RateSV is the assumed Santha-Vazirani randomness rate of the weak
	// label source, in (0, 1]. Defaults to DefaultRateSV.
	RateSV float64

	// EpsilonDodis bounds the statistical distance from uniform of the
	// first-stage output. Defaults to DefaultEpsilonDodis.
	EpsilonDodis float64

	// QuantumProof selects the quantum-proof first-stage bound. There is no
	// auto-detection; callers must choose.
	QuantumProof bool

	// CMax and CPenalty are the derived bounds feeding the second-stage
	// multiplier, c = CMax - CPenalty.
	CMax     int
	CPenalty int

	// ExpectedCorrelator, when nonzero, overrides the observed Mermin
	// correlator during sizing, e.g. with a previously profiled value for
	// the backend in use.
	ExpectedCorrelator float64

	// Logf, if non-nil, receives progress messages. The planner performs no
	// other I/O.
	Logf func(format string, args ...interface{})
}

// A Planner converts measurement records into a validated extractor
// configuration. Planners are stateless and safe for concurrent use across
// unrelated batches.
type Planner struct {
	opts PlannerOpts
}

// NewPlanner returns a new Planner, configured in accordance with opts, or an
// error if the options are nonsensical.
func NewPlanner(opts PlannerOpts) (*Planner, error) {
	if opts.RateSV == 0 {
		opts.RateSV = DefaultRateSV
	}
	if opts.RateSV <= 0 || opts.RateSV > 1 {
		return nil, fmt.Errorf("%w: rate_sv %v outside (0, 1]", ErrDomain, opts.RateSV)
	}
	if opts.EpsilonDodis == 0 {
		opts.EpsilonDodis = DefaultEpsilonDodis
	}
	if opts.EpsilonDodis <= 0 || opts.EpsilonDodis >= 1 {
		return nil, fmt.Errorf("%w: epsilon_dodis %v outside (0, 1)", ErrDomain, opts.EpsilonDodis)
	}
	return &Planner{opts: opts}, nil
}

// An ExtractorConfig holds the parameters a downstream two-stage extractor
// needs. Both output sizes are guaranteed non-negative; configurations that
// would violate that are rejected during planning.
type ExtractorConfig struct {
	// Modulus is the selected extractor modulus: Modulus+1 is prime and 2
	// has full multiplicative order modulo Modulus+1.
	Modulus int

	// InputSizeStage1 is the number of raw bits fed to the first stage,
	// truncated to the modulus.
	InputSizeStage1 int

	// OutputSizeStage1 and OutputSizeStage2 are the safe output bit-lengths
	// of the two cascaded stages.
	OutputSizeStage1 int
	OutputSizeStage2 int

	// Multiplier is the second-stage seed multiplier c.
	Multiplier int

	EpsilonDodis   float64
	EpsilonHayashi float64
}

// Diagnostics packages together a collection of potentially interesting
// metrics pertaining to one planning run.
type Diagnostics struct {
	Bell          BellStats
	RateBT        float64
	ExtractorBits int
}

// Plan runs one full parameter derivation over index-aligned label and
// outcome sequences, one pair per executed shot: Bell statistics, certified
// min-entropy rate, modulus search, and the output sizes of both extractor
// stages. The returned Diagnostics is populated as far as planning got, even
// on error.
func (p *Planner) Plan(labels, outcomes []bitarray.Dense) (ExtractorConfig, Diagnostics, error) {
	var diag Diagnostics
	bell, err := ComputeBellStats(labels, outcomes)
	if err != nil {
		return ExtractorConfig{}, diag, err
	}
	diag.Bell = bell
	p.logf("mermin correlator %v (losing probability %v)", bell.Correlator, bell.LosingProbability)

	raw := ExtractorBits(outcomes)
	diag.ExtractorBits = raw.Size()
	m, err := NASet(raw.Size())
	if err != nil {
		return ExtractorConfig{}, diag, err
	}
	p.logf("selected modulus %d for %d raw bits", m, raw.Size())

	correlator := bell.Correlator
	if p.opts.ExpectedCorrelator != 0 {
		correlator = p.opts.ExpectedCorrelator
	}
	rateBT, err := MinEntropyRate(correlator, m, p.opts.RateSV)
	if err != nil {
		return ExtractorConfig{}, diag, err
	}
	diag.RateBT = rateBT
	p.logf("certified min-entropy rate %v per bit", rateBT)

	out1, err := DodisOutputSize(m, rateBT, p.opts.RateSV, p.opts.EpsilonDodis, p.opts.QuantumProof)
	if err != nil {
		return ExtractorConfig{}, diag, err
	}
	c, epsHayashi, err := HayashiParameters(out1, p.opts.RateSV, p.opts.CMax, p.opts.CPenalty)
	if err != nil {
		return ExtractorConfig{}, diag, err
	}
	return ExtractorConfig{
		Modulus:          m,
		InputSizeStage1:  m,
		OutputSizeStage1: out1,
		OutputSizeStage2: (c - 1) * out1,
		Multiplier:       c,
		EpsilonDodis:     p.opts.EpsilonDodis,
		EpsilonHayashi:   epsHayashi,
	}, diag, nil
}

func (p *Planner) logf(format string, args ...interface{}) {
	if p.opts.Logf != nil {
		p.opts.Logf(format, args...)
	}
}

// ExtractorBits concatenates the first two bits of each outcome into the
// first-stage input stream. The third outcome bit feeds the Bell statistics
// only.
func ExtractorBits(outcomes []bitarray.Dense) bitarray.Dense {
	r := bitarray.Empty()
	for _, o := range outcomes {
		r.AppendBit(o.Get(0))
		r.AppendBit(o.Get(1))
	}
	return r
}
