package scoap

import (
	"github.com/evenstarsworn/scoap.github.io/pkg/circuit"
)

// runForward is the controllability pass: nets are visited in ascending
// forward-level order, stable by declaration order within a level.
// Primary inputs cost 1 for either value; flip-flop outputs carry the
// boundary values from the previous convergence iteration.
func (a *Analyzer) runForward() {
	for i := range a.cc0 {
		a.cc0[i], a.cc1[i] = Inf, Inf
		a.sc0[i], a.sc1[i] = Inf, Inf
	}
	for _, in := range a.circ.Inputs {
		id := in.ID
		a.cc0[id], a.cc1[id] = 1, 1
		a.sc0[id], a.sc1[id] = 1, 1
	}
	for i, ff := range a.circ.FlipFlops {
		q := ff.Output.ID
		b := a.state[i]
		a.cc0[q], a.cc1[q] = b.cc0, b.cc1
		a.sc0[q], a.sc1[q] = b.sc0, b.sc1
	}

	for _, cell := range a.topo.FwdCells {
		out := cell.Output.ID
		c0, c1 := controllability(cell, a.cc0, a.cc1)
		s0, s1 := controllability(cell, a.sc0, a.sc1)
		a.cc0[out], a.cc1[out] = a.clamp(c0), a.clamp(c1)
		a.sc0[out], a.sc1[out] = a.clamp(s0), a.clamp(s1)
		a.log.Propagate("%s -> %s: c0=%s c1=%s", cell, cell.Output.Name, a.cc0[out], a.cc1[out])
	}
}

// controllability applies the per-cell SCOAP formula to the input costs
// in c0/c1 (indexed by net ID) and returns the output 0- and 1-costs.
func controllability(cell *circuit.Cell, c0, c1 []Cost) (out0, out1 Cost) {
	switch cell.Type {
	case circuit.AND:
		return add(minIn(cell, c0), 1), add(sumIn(cell, c1), 1)
	case circuit.OR:
		return add(sumIn(cell, c0), 1), add(minIn(cell, c1), 1)
	case circuit.NAND:
		return add(sumIn(cell, c1), 1), add(minIn(cell, c0), 1)
	case circuit.NOR:
		return add(minIn(cell, c1), 1), add(sumIn(cell, c0), 1)
	case circuit.NOT:
		in := cell.Inputs[0].ID
		return add(c1[in], 1), add(c0[in], 1)
	case circuit.BUF:
		in := cell.Inputs[0].ID
		return add(c0[in], 1), add(c1[in], 1)
	case circuit.XOR:
		a0, a1, b0, b1 := pairIn(cell, c0, c1)
		out0 = add(min(add(a0, b0), add(a1, b1)), 1) // inputs equal
		out1 = add(min(add(a0, b1), add(a1, b0)), 1) // inputs differ
		return out0, out1
	case circuit.XNOR:
		a0, a1, b0, b1 := pairIn(cell, c0, c1)
		out0 = add(min(add(a0, b1), add(a1, b0)), 1)
		out1 = add(min(add(a0, b0), add(a1, b1)), 1)
		return out0, out1
	default:
		return Inf, Inf
	}
}

// sumIn folds the given costs over all cell inputs
func sumIn(cell *circuit.Cell, vals []Cost) Cost {
	total := Cost(0)
	for _, in := range cell.Inputs {
		total = add(total, vals[in.ID])
	}
	return total
}

// minIn picks the cheapest input cost
func minIn(cell *circuit.Cell, vals []Cost) Cost {
	best := Inf
	for _, in := range cell.Inputs {
		best = min(best, vals[in.ID])
	}
	return best
}

// pairIn unpacks both cost pairs of a 2-input cell
func pairIn(cell *circuit.Cell, c0, c1 []Cost) (a0, a1, b0, b1 Cost) {
	x, y := cell.Inputs[0].ID, cell.Inputs[1].ID
	return c0[x], c1[x], c0[y], c1[y]
}
