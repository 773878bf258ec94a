package scoap

import (
	"github.com/evenstarsworn/scoap.github.io/pkg/circuit"
)

// runBackward is the observability pass. Cells are visited outputs-first
// (descending forward level), so a net's observability through every
// fanout position is known before its own driver is processed; each net
// keeps the minimum over all positions. Primary outputs cost 0;
// flip-flop data inputs additionally see the boundary values from the
// previous convergence iteration. Nets that reach no observable point
// keep the Inf sentinel.
func (a *Analyzer) runBackward() {
	for i := range a.co {
		a.co[i], a.so[i] = Inf, Inf
	}
	for _, out := range a.circ.Outputs {
		a.co[out.ID], a.so[out.ID] = 0, 0
	}
	for i, ff := range a.circ.FlipFlops {
		d := ff.Data.ID
		b := a.state[i]
		a.co[d] = min(a.co[d], b.co)
		a.so[d] = min(a.so[d], b.so)
	}

	for _, cell := range a.topo.BkwdCells {
		outCO := a.co[cell.Output.ID]
		outSO := a.so[cell.Output.ID]
		for pos, in := range cell.Inputs {
			candCO := add(add(outCO, sideCost(cell, pos, a.cc0, a.cc1)), 1)
			candSO := add(add(outSO, sideCost(cell, pos, a.sc0, a.sc1)), 1)
			a.co[in.ID] = min(a.co[in.ID], candCO)
			a.so[in.ID] = min(a.so[in.ID], candSO)
		}
	}
}

// sideCost is the cost of holding every other input of the cell at the
// value that sensitizes position pos to the output: non-controlling 1 for
// AND/NAND, non-controlling 0 for OR/NOR, nothing for single-input cells,
// and the cheaper of the two values for the far input of XOR/XNOR.
func sideCost(cell *circuit.Cell, pos int, c0, c1 []Cost) Cost {
	switch cell.Type {
	case circuit.AND, circuit.NAND:
		total := Cost(0)
		for j, in := range cell.Inputs {
			if j != pos {
				total = add(total, c1[in.ID])
			}
		}
		return total
	case circuit.OR, circuit.NOR:
		total := Cost(0)
		for j, in := range cell.Inputs {
			if j != pos {
				total = add(total, c0[in.ID])
			}
		}
		return total
	case circuit.XOR, circuit.XNOR:
		other := cell.Inputs[1-pos].ID
		return min(c0[other], c1[other])
	default: // NOT, BUF: single input, fully sensitized
		return 0
	}
}
