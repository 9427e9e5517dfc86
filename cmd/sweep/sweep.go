// sweep.go derives extractor parameters for each entry in the cartesian
// product of a collection of different tuning parameters, e.g. assumed SV
// rate and simulated losing probability, and outputs a CSV of the resulting
// configuration for each combination.
package main

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"text/template"

	"github.com/alan-christopher/qrng/qrng"
	"github.com/alan-christopher/qrng/qrng/source"
	flag "github.com/spf13/pflag"
)

var (
	rateSV = flag.Float64Slice("rateSV", []float64{qrng.DefaultRateSV},
		"The assumed SV randomness rates of the weak label source.")
	epsilon = flag.Float64Slice("epsilon", []float64{qrng.DefaultEpsilonDodis},
		"The dodis security parameters to plan against.")
	shots = flag.IntSlice("shots", []int{4096},
		"The numbers of measurement records to simulate per run.")
	losing = flag.Float64Slice("losing", []float64{0.49},
		"The losing probabilities for odd-sum labels in the simulated source.")
	correlator = flag.Float64("correlator", 0,
		"If nonzero, size against this correlator instead of the observed one.")
	cMax     = flag.Int("cMax", 4, "The hayashi c_max bound.")
	cPenalty = flag.Int("cPenalty", 2, "The hayashi c_penalty bound.")
	qProof   = flag.Bool("qProof", false, "Whether to use the quantum-proof dodis bound.")
	seed     = flag.Int64("seed", 42, "The seed for the simulated source.")
	verbose  = flag.Bool("verbose", false, "Whether to log planner progress to stderr.")
)

var (
	inputs  = []string{"rateSV", "epsilon", "shots", "losing"}
	columns = []string{"RateSV", "Epsilon", "Shots", "SimLosing", "LosingProb",
		"Correlator", "RateBT", "Modulus", "Stage1Bits", "Stage2Bits",
		"Multiplier", "EpsilonHayashi", "Feasible"}
)

// An Experiment packages together the result of planning a single
// parameterization for easy formatting.
type Experiment struct {
	// Fields corresponding to experiment parameters
	RateSV    float64
	Epsilon   float64
	Shots     int
	SimLosing float64

	// Fields corresponding to experiment results
	LosingProb     float64
	Correlator     float64
	RateBT         float64
	Modulus        int
	Stage1Bits     int
	Stage2Bits     int
	Multiplier     int
	EpsilonHayashi float64
	Feasible       bool
}

func main() {
	flag.Parse()
	fmt.Println(header())
	tmpl := template.Must(template.New("line").Parse(lineTmpl()))
	var args [][]interface{}
	for _, inp := range inputs {
		args = append(args, lookupInput(inp))
	}
	applyCartesian(func(args []interface{}) {
		exp := &Experiment{
			RateSV:    args[inpIndex("rateSV")].(float64),
			Epsilon:   args[inpIndex("epsilon")].(float64),
			Shots:     args[inpIndex("shots")].(int),
			SimLosing: args[inpIndex("losing")].(float64),
		}
		if err := plan(exp); err != nil {
			log.Printf("Planning %v: %v", exp, err)
		}
		if err := tmpl.Execute(os.Stdout, exp); err != nil {
			log.Fatalf("BUG: could not fill in line template: %v", err)
		}
	}, args)
}

func inpIndex(v string) int {
	for i, inp := range inputs {
		if inp == v {
			return i
		}
	}
	return -1
}

func plan(exp *Experiment) error {
	opts := qrng.PlannerOpts{
		RateSV:             exp.RateSV,
		EpsilonDodis:       exp.Epsilon,
		QuantumProof:       *qProof,
		CMax:               *cMax,
		CPenalty:           *cPenalty,
		ExpectedCorrelator: *correlator,
	}
	if *verbose {
		opts.Logf = log.Printf
	}
	p, err := qrng.NewPlanner(opts)
	if err != nil {
		return err
	}
	src := &source.Simulated{
		LosingProb: exp.SimLosing,
		Rand:       rand.New(rand.NewSource(*seed)),
	}
	labels, outcomes, err := src.Next(exp.Shots)
	if err != nil {
		return err
	}
	cfg, diag, err := p.Plan(labels, outcomes)
	exp.LosingProb = diag.Bell.LosingProbability
	exp.Correlator = diag.Bell.Correlator
	exp.RateBT = diag.RateBT
	exp.Modulus = cfg.Modulus
	exp.Stage1Bits = cfg.OutputSizeStage1
	exp.Stage2Bits = cfg.OutputSizeStage2
	exp.Multiplier = cfg.Multiplier
	exp.EpsilonHayashi = cfg.EpsilonHayashi
	exp.Feasible = err == nil
	// Infeasible parameterizations are an expected sweep outcome, not a
	// failure of the sweep itself.
	if errors.Is(err, qrng.ErrInfeasible) || errors.Is(err, qrng.ErrDomain) {
		return nil
	}
	return err
}

func header() string {
	return strings.Join(columns, ", ")
}

func lineTmpl() string {
	var els []string
	for _, c := range columns {
		els = append(els, "{{."+c+"}}")
	}
	return strings.Join(els, ", ") + "\n"
}

func lookupInput(name string) []interface{} {
	var r []interface{}
	if v, err := flag.CommandLine.GetIntSlice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else if v, err := flag.CommandLine.GetFloat64Slice(name); err == nil {
		for _, val := range v {
			r = append(r, val)
		}
	} else {
		log.Fatalf("Unknown type for input %s", name)
	}
	return r
}

func applyCartesian(f func([]interface{}), args [][]interface{}) {
	for i := range args {
		if len(args[i]) == 1 {
			continue
		}
		l := make([][]interface{}, len(args))
		r := make([][]interface{}, len(args))
		copy(l, args)
		copy(r, args)
		l[i] = args[i][:1]
		r[i] = args[i][1:]
		applyCartesian(f, l)
		applyCartesian(f, r)
		return
	}
	x := make([]interface{}, 0, len(args))
	for _, a := range args {
		x = append(x, a[0])
	}
	f(x)
}
