package scoap

import (
	"fmt"
	"sort"

	"github.com/evenstarsworn/scoap.github.io/pkg/circuit"
	"github.com/evenstarsworn/scoap.github.io/pkg/utils"
)

// Metrics holds the computed testability values for one net
type Metrics struct {
	Net       string
	FwdLevel  int
	BkwdLevel int
	CC0       Cost // Combinational cost to force the net to 0
	CC1       Cost // Combinational cost to force the net to 1
	CO        Cost // Combinational observability; Inf if unobservable
	SC0       Cost // Sequential analogue of CC0
	SC1       Cost // Sequential analogue of CC1
	SO        Cost // Sequential analogue of CO
}

// Score is an aggregate difficulty used for ranking nets. Unobservable
// nets absorb to Inf and rank hardest.
func (m *Metrics) Score() Cost {
	return sum(m.CC0, m.CC1, m.CO)
}

// Result is the full output of one analysis run
type Result struct {
	Circuit    *circuit.Circuit
	Sequential bool // True if the circuit contains flip-flops; SC/SO are meaningful only then
	Iterations int  // Convergence iterations actually run
	Capped     int  // Controllability writes clamped at the saturation cap in the final pass
	Metrics    map[string]*Metrics

	ordered []*Metrics // declaration order
}

// Net returns the metrics for the named net, or nil
func (r *Result) Net(name string) *Metrics {
	return r.Metrics[name]
}

// Nets returns all metrics in net declaration order
func (r *Result) Nets() []*Metrics {
	return r.ordered
}

// HardestNets returns up to k nets ranked hardest-first by Score, with
// ties kept in declaration order.
func (r *Result) HardestNets(k int) []*Metrics {
	ranked := make([]*Metrics, len(r.ordered))
	copy(ranked, r.ordered)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}

// ConvergenceWarning reports that the iteration bound was reached before
// the sequential fixpoint. The result still carries the last computed
// values, which understate but never overstate the true costs.
type ConvergenceWarning struct {
	Iterations int
	Unsettled  int // Flip-flop boundaries still moving at the bound
}

func (w *ConvergenceWarning) Error() string {
	return fmt.Sprintf("no convergence after %d iterations, %d flip-flop boundaries still moving", w.Iterations, w.Unsettled)
}

// boundary is the value exchange across one flip-flop between convergence
// iterations: the data input's controllability feeds the output for the
// next round, and the output's observability feeds the data input.
type boundary struct {
	cc0, cc1 Cost
	sc0, sc1 Cost
	co, so   Cost
}

// Analyzer runs the SCOAP passes over one circuit. It owns the working
// arrays, indexed by net ID, and the flip-flop boundary state.
type Analyzer struct {
	cfg  Config
	log  *utils.Logger
	circ *circuit.Circuit
	topo *circuit.Topology

	cc0, cc1 []Cost
	sc0, sc1 []Cost
	co, so   []Cost
	state    []boundary
	capped   int
}

// NewAnalyzer creates an analyzer for the given circuit
func NewAnalyzer(c *circuit.Circuit, cfg Config, log *utils.Logger) *Analyzer {
	if log == nil {
		log = utils.NewLogger(utils.ErrorLevel)
	}
	return &Analyzer{
		cfg:  cfg.normalized(),
		log:  log,
		circ: c,
	}
}

// Analyze levelizes the circuit and runs the propagation passes to their
// fixpoint. The returned warning is non-nil only when the iteration bound
// was reached; the result is still valid then.
func Analyze(c *circuit.Circuit, cfg Config, log *utils.Logger) (*Result, *ConvergenceWarning, error) {
	return NewAnalyzer(c, cfg, log).Run()
}

// Run executes the analysis
func (a *Analyzer) Run() (*Result, *ConvergenceWarning, error) {
	topo, err := circuit.Levelize(a.circ)
	if err != nil {
		return nil, nil, err
	}
	a.topo = topo
	a.log.Levelize("%s: max forward level %d, max backward level %d",
		a.circ.Name, topo.MaxFwdLevel, topo.MaxBkwdLevel)

	n := len(a.circ.Nets)
	a.cc0, a.cc1 = make([]Cost, n), make([]Cost, n)
	a.sc0, a.sc1 = make([]Cost, n), make([]Cost, n)
	a.co, a.so = make([]Cost, n), make([]Cost, n)

	// Flip-flop boundaries start fully unknown: controllability at its
	// floor, observability at the sentinel.
	a.state = make([]boundary, len(a.circ.FlipFlops))
	for i := range a.state {
		a.state[i] = boundary{cc0: 1, cc1: 1, sc0: 1, sc1: 1, co: Inf, so: Inf}
	}

	iterations := 0
	unsettled := 0
	converged := false
	for iterations < a.cfg.MaxIterations {
		iterations++
		a.capped = 0
		a.runForward()
		a.runBackward()

		next := a.nextBoundary()
		unsettled = diffBoundaries(a.state, next)
		a.state = next
		a.log.Converge("iteration %d: %d boundaries moving", iterations, unsettled)
		if unsettled == 0 {
			converged = true
			break
		}
	}

	var warn *ConvergenceWarning
	if !converged {
		warn = &ConvergenceWarning{Iterations: iterations, Unsettled: unsettled}
		a.log.Warning("%v", warn)
	}
	if a.capped > 0 {
		a.log.Info("%d controllability values clamped at the saturation cap (%d)", a.capped, a.cfg.SaturationCap)
	}

	return a.result(iterations), warn, nil
}

// nextBoundary derives the flip-flop boundary values for the next
// iteration from the values just computed: data-input controllability
// crosses to the output (+1 clock unit on the sequential costs only) and
// output observability crosses back to the data input (+1 on SO only).
func (a *Analyzer) nextBoundary() []boundary {
	next := make([]boundary, len(a.circ.FlipFlops))
	for i, ff := range a.circ.FlipFlops {
		d, q := ff.Data.ID, ff.Output.ID
		next[i] = boundary{
			cc0: a.cc0[d],
			cc1: a.cc1[d],
			sc0: a.clamp(add(a.sc0[d], 1)),
			sc1: a.clamp(add(a.sc1[d], 1)),
			co:  a.co[q],
			so:  add(a.so[q], 1),
		}
	}
	return next
}

func diffBoundaries(prev, next []boundary) int {
	moving := 0
	for i := range next {
		if next[i] != prev[i] {
			moving++
		}
	}
	return moving
}

// clamp saturates a controllability value at the configured cap
func (a *Analyzer) clamp(v Cost) Cost {
	if !v.IsInf() && v > Cost(a.cfg.SaturationCap) {
		a.capped++
		return Cost(a.cfg.SaturationCap)
	}
	return v
}

func (a *Analyzer) result(iterations int) *Result {
	res := &Result{
		Circuit:    a.circ,
		Sequential: a.circ.IsSequential(),
		Iterations: iterations,
		Capped:     a.capped,
		Metrics:    make(map[string]*Metrics, len(a.circ.Nets)),
	}
	for _, net := range a.circ.Nets {
		m := &Metrics{
			Net:       net.Name,
			FwdLevel:  net.FwdLevel,
			BkwdLevel: net.BkwdLevel,
			CC0:       a.cc0[net.ID],
			CC1:       a.cc1[net.ID],
			CO:        a.co[net.ID],
			SC0:       a.sc0[net.ID],
			SC1:       a.sc1[net.ID],
			SO:        a.so[net.ID],
		}
		res.Metrics[net.Name] = m
		res.ordered = append(res.ordered, m)
	}
	return res
}
