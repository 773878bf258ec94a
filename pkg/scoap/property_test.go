package scoap

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/evenstarsworn/scoap.github.io/pkg/circuit"
)

// randomNetlist builds a random combinational netlist. Cells only read
// nets declared before them, so the circuit is acyclic by construction,
// and every sink net is promoted to a primary output so no fanout is dead.
func randomNetlist(numInputs, numCells int, seed int64) *circuit.Netlist {
	rng := rand.New(rand.NewSource(seed))
	nl := &circuit.Netlist{Name: fmt.Sprintf("rand_%d", seed)}

	var nets []string
	for i := 0; i < numInputs; i++ {
		name := fmt.Sprintf("in%d", i)
		nl.Inputs = append(nl.Inputs, name)
		nets = append(nets, name)
	}

	types := []circuit.CellType{
		circuit.AND, circuit.OR, circuit.NOT, circuit.NAND,
		circuit.NOR, circuit.XOR, circuit.XNOR, circuit.BUF,
	}
	read := make(map[string]bool)
	for i := 0; i < numCells; i++ {
		ct := types[rng.Intn(len(types))]
		arity := 1
		switch ct {
		case circuit.XOR, circuit.XNOR:
			arity = 2
		case circuit.AND, circuit.OR, circuit.NAND, circuit.NOR:
			arity = 2 + rng.Intn(2)
		}
		ins := make([]string, 0, arity)
		for j := 0; j < arity; j++ {
			ins = append(ins, nets[rng.Intn(len(nets))])
		}
		out := fmt.Sprintf("w%d", i)
		nl.Cells = append(nl.Cells, circuit.CellDecl{
			Name:   fmt.Sprintf("g%d", i),
			Type:   ct,
			Output: out,
			Inputs: ins,
		})
		for _, in := range ins {
			read[in] = true
		}
		nets = append(nets, out)
	}

	for _, name := range nets {
		if !read[name] {
			nl.Outputs = append(nl.Outputs, name)
		}
	}
	return nl
}

func analyzeRandom(numInputs, numCells int, seed int64) (*Result, error) {
	c, err := randomNetlist(numInputs, numCells, seed).Build()
	if err != nil {
		return nil, err
	}
	res, _, err := Analyze(c, DefaultConfig(), nil)
	return res, err
}

// TestAnalysisInvariants checks the invariants that must hold for any
// well-formed combinational circuit.
func TestAnalysisInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 40

	properties := gopter.NewProperties(parameters)

	inputs := gen.IntRange(1, 6)
	cells := gen.IntRange(1, 25)
	seeds := gen.Int64Range(0, 1<<30)

	properties.Property("primary inputs cost one", prop.ForAll(
		func(ni, nc int, seed int64) bool {
			res, err := analyzeRandom(ni, nc, seed)
			if err != nil {
				return false
			}
			for _, in := range res.Circuit.Inputs {
				m := res.Net(in.Name)
				if m.CC0 != 1 || m.CC1 != 1 || m.SC0 != 1 || m.SC1 != 1 {
					return false
				}
			}
			return true
		},
		inputs, cells, seeds,
	))

	properties.Property("primary outputs are free to observe", prop.ForAll(
		func(ni, nc int, seed int64) bool {
			res, err := analyzeRandom(ni, nc, seed)
			if err != nil {
				return false
			}
			for _, out := range res.Circuit.Outputs {
				if res.Net(out.Name).CO != 0 {
					return false
				}
			}
			return true
		},
		inputs, cells, seeds,
	))

	properties.Property("forward levels follow the max recurrence", prop.ForAll(
		func(ni, nc int, seed int64) bool {
			res, err := analyzeRandom(ni, nc, seed)
			if err != nil {
				return false
			}
			for _, cell := range res.Circuit.Cells {
				max := -1
				for _, in := range cell.Inputs {
					if in.FwdLevel > max {
						max = in.FwdLevel
					}
				}
				if cell.Output.FwdLevel != max+1 {
					return false
				}
			}
			for _, net := range res.Circuit.Nets {
				if (net.FwdLevel == 0) != net.IsSource() {
					return false
				}
			}
			return true
		},
		inputs, cells, seeds,
	))

	properties.Property("every net reaches an output", prop.ForAll(
		func(ni, nc int, seed int64) bool {
			// The generator promotes all sinks to primary outputs, so no
			// net may report the undefined sentinel.
			res, err := analyzeRandom(ni, nc, seed)
			if err != nil {
				return false
			}
			for _, m := range res.Nets() {
				if m.CO.IsInf() {
					return false
				}
			}
			return true
		},
		inputs, cells, seeds,
	))

	properties.Property("analysis is deterministic", prop.ForAll(
		func(ni, nc int, seed int64) bool {
			res1, err1 := analyzeRandom(ni, nc, seed)
			res2, err2 := analyzeRandom(ni, nc, seed)
			if err1 != nil || err2 != nil {
				return false
			}
			return reflect.DeepEqual(res1.Nets(), res2.Nets())
		},
		inputs, cells, seeds,
	))

	properties.TestingRun(t)
}
