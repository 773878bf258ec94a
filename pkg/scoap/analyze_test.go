package scoap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evenstarsworn/scoap.github.io/pkg/circuit"
)

func TestDFFPassthrough(t *testing.T) {
	// A flip-flop between a primary input and a primary output: the
	// sequential cost is the input cost plus one clock cycle, stable
	// after the first boundary exchange.
	nl := &circuit.Netlist{
		Name:    "dff_passthrough",
		Inputs:  []string{"din"},
		Outputs: []string{"q"},
		FlipFlops: []circuit.FlipFlopDecl{
			{Name: "ff0", Data: "din", Output: "q"},
		},
	}
	res, warn := mustAnalyze(t, nl, DefaultConfig())

	assert.Nil(t, warn)
	assert.True(t, res.Sequential)
	assert.Equal(t, 2, res.Iterations, "one pass to move the boundary, one to confirm it")

	q := res.Net("q")
	assert.Equal(t, Cost(2), q.SC1, "CC1(din) + one clock cycle")
	assert.Equal(t, Cost(2), q.SC0)
	assert.Equal(t, Cost(1), q.CC0, "combinational cost does not cross the state boundary")
	assert.Equal(t, Cost(1), q.CC1)
	assert.Equal(t, Cost(0), q.SO)
	assert.Equal(t, Cost(1), res.Net("din").SO, "one clock cycle to observe through the flip-flop")
}

func TestPipelineConvergence(t *testing.T) {
	// Two flip-flops in series, no feedback: the boundary values settle
	// after rippling once through each stage.
	nl := &circuit.Netlist{
		Name:    "pipeline",
		Inputs:  []string{"din"},
		Outputs: []string{"q2"},
		FlipFlops: []circuit.FlipFlopDecl{
			{Name: "ff1", Data: "din", Output: "w"},
			{Name: "ff2", Data: "w", Output: "q2"},
		},
	}
	res, warn := mustAnalyze(t, nl, DefaultConfig())
	require.Nil(t, warn)
	assert.Equal(t, 3, res.Iterations)

	assert.Equal(t, Cost(2), res.Net("w").SC1, "one clock from din")
	assert.Equal(t, Cost(3), res.Net("q2").SC1, "two clocks from din")
	assert.Equal(t, Cost(2), res.Net("din").SO, "two clocks to the output")
	assert.Equal(t, Cost(1), res.Net("w").SO)
	assert.Equal(t, Cost(1), res.Net("q2").CC1, "combinational cost stops at the boundary")
}

func TestCombinationalSinglePass(t *testing.T) {
	nl := &circuit.Netlist{
		Name:    "comb",
		Inputs:  []string{"a", "b"},
		Outputs: []string{"y"},
		Cells: []circuit.CellDecl{
			{Name: "g1", Type: circuit.NAND, Output: "y", Inputs: []string{"a", "b"}},
		},
	}
	res, warn := mustAnalyze(t, nl, DefaultConfig())
	assert.Nil(t, warn)
	assert.False(t, res.Sequential)
	assert.Equal(t, 1, res.Iterations, "no state, no iteration")
}

func TestConvergenceWarning(t *testing.T) {
	nl := &circuit.Netlist{
		Name:    "bounded",
		Inputs:  []string{"en"},
		Outputs: []string{"out"},
		Cells: []circuit.CellDecl{
			{Name: "g1", Type: circuit.NAND, Output: "d", Inputs: []string{"q", "en"}},
			{Name: "g2", Type: circuit.BUF, Output: "out", Inputs: []string{"q"}},
		},
		FlipFlops: []circuit.FlipFlopDecl{
			{Name: "ff0", Data: "d", Output: "q"},
		},
	}
	cfg := Config{SaturationCap: DefaultSaturationCap, MaxIterations: 1}
	res, warn := mustAnalyze(t, nl, cfg)

	require.NotNil(t, warn, "one iteration cannot settle a feedback loop")
	assert.Equal(t, 1, warn.Iterations)
	assert.Greater(t, warn.Unsettled, 0)
	assert.NotNil(t, res, "last computed values are still returned")
	assert.Contains(t, warn.Error(), "no convergence")
}

func TestIdempotence(t *testing.T) {
	nl := &circuit.Netlist{
		Name:    "idem",
		Inputs:  []string{"a", "b", "en"},
		Outputs: []string{"out"},
		Cells: []circuit.CellDecl{
			{Name: "g1", Type: circuit.XOR, Output: "w", Inputs: []string{"a", "b"}},
			{Name: "g2", Type: circuit.AND, Output: "d", Inputs: []string{"w", "q"}},
			{Name: "g3", Type: circuit.OR, Output: "out", Inputs: []string{"q", "en"}},
		},
		FlipFlops: []circuit.FlipFlopDecl{
			{Name: "ff0", Data: "d", Output: "q"},
		},
	}
	res1, _ := mustAnalyze(t, nl, DefaultConfig())
	res2, _ := mustAnalyze(t, nl, DefaultConfig())

	require.Equal(t, res1.Iterations, res2.Iterations)
	assert.Equal(t, res1.Nets(), res2.Nets(), "two runs on the same netlist are bit-identical")
}

func TestMonotonicIterates(t *testing.T) {
	// Truncating the convergence loop after k iterations yields the k-th
	// iterate; sequential controllability never decreases as k grows.
	nl := &circuit.Netlist{
		Name:    "monotone",
		Inputs:  []string{"en"},
		Outputs: []string{"out"},
		Cells: []circuit.CellDecl{
			{Name: "g1", Type: circuit.NAND, Output: "d", Inputs: []string{"q", "en"}},
			{Name: "g2", Type: circuit.BUF, Output: "out", Inputs: []string{"q"}},
		},
		FlipFlops: []circuit.FlipFlopDecl{
			{Name: "ff0", Data: "d", Output: "q"},
		},
	}

	var prev *Result
	for k := 1; k <= 6; k++ {
		cfg := Config{SaturationCap: DefaultSaturationCap, MaxIterations: k}
		res, _ := mustAnalyze(t, nl, cfg)
		if prev != nil {
			for _, m := range res.Nets() {
				pm := prev.Net(m.Net)
				assert.GreaterOrEqual(t, m.SC0, pm.SC0, "SC0(%s) at k=%d", m.Net, k)
				assert.GreaterOrEqual(t, m.SC1, pm.SC1, "SC1(%s) at k=%d", m.Net, k)
				if !pm.SO.IsInf() {
					assert.False(t, m.SO.IsInf(), "SO(%s) must stay defined once finite", m.Net)
				}
			}
		}
		prev = res
	}
}

func TestHardestNets(t *testing.T) {
	nl := &circuit.Netlist{
		Name:    "ranking",
		Inputs:  []string{"a", "b", "c"},
		Outputs: []string{"y"},
		Cells: []circuit.CellDecl{
			{Name: "g1", Type: circuit.AND, Output: "u", Inputs: []string{"a", "b"}}, // dead fanout
			{Name: "g2", Type: circuit.AND, Output: "w", Inputs: []string{"a", "b"}},
			{Name: "g3", Type: circuit.AND, Output: "y", Inputs: []string{"w", "c"}},
		},
	}
	res, _ := mustAnalyze(t, nl, DefaultConfig())

	top := res.HardestNets(2)
	require.Len(t, top, 2)
	assert.Equal(t, "u", top[0].Net, "unobservable nets rank hardest")
	assert.Empty(t, res.HardestNets(0))
}
