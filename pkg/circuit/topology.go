package circuit

import (
	"fmt"
	"sort"
)

// Topology holds the structural levelization of a circuit: forward levels
// (distance from primary inputs and flip-flop outputs), backward levels
// (distance from primary outputs and flip-flop data inputs), and the cell
// visitation orders derived from them. Flip-flop boundaries are treated as
// open, so all sequential feedback is broken before ordering; only purely
// combinational cycles are an error.
type Topology struct {
	Circuit      *Circuit
	MaxFwdLevel  int
	MaxBkwdLevel int

	// FwdCells lists cells in ascending output forward level, stable by
	// declaration order within a level. Every cell's inputs are leveled
	// before the cell is visited.
	FwdCells []*Cell

	// BkwdCells lists cells in descending output forward level. Every
	// net's fanout cells are visited before the net's own driver, which
	// is the order the observability sweep needs.
	BkwdCells []*Cell
}

// CombinationalLoopError reports a combinational cycle that is not broken
// by any flip-flop. Net names one member of the cycle.
type CombinationalLoopError struct {
	Net string
}

func (e *CombinationalLoopError) Error() string {
	return fmt.Sprintf("combinational loop through net %q", e.Net)
}

// Levelize computes forward and backward levels for every net and builds
// the visitation orders for the propagation passes.
func Levelize(c *Circuit) (*Topology, error) {
	t := &Topology{Circuit: c}
	if err := t.computeForwardLevels(); err != nil {
		return nil, err
	}
	t.computeBackwardLevels()
	t.buildOrders()
	return t, nil
}

// computeForwardLevels assigns forward levels. Primary inputs and
// flip-flop outputs are level 0; a cell output is 1 + max over its inputs.
// A cell is deferred until all of its inputs are leveled, so ties resolve
// to the maximum distance.
func (t *Topology) computeForwardLevels() error {
	leveled := make([]bool, len(t.Circuit.Nets))

	for _, net := range t.Circuit.Nets {
		if net.IsSource() {
			net.FwdLevel = 0
			leveled[net.ID] = true
		}
	}

	changed := true
	for changed {
		changed = false
		for _, cell := range t.Circuit.Cells {
			if leveled[cell.Output.ID] {
				continue
			}
			max := -1
			ready := true
			for _, in := range cell.Inputs {
				if !leveled[in.ID] {
					ready = false
					break
				}
				if in.FwdLevel > max {
					max = in.FwdLevel
				}
			}
			if !ready {
				continue
			}
			cell.Output.FwdLevel = max + 1
			leveled[cell.Output.ID] = true
			if max+1 > t.MaxFwdLevel {
				t.MaxFwdLevel = max + 1
			}
			changed = true
		}
	}

	for _, cell := range t.Circuit.Cells {
		if !leveled[cell.Output.ID] {
			return &CombinationalLoopError{Net: t.findLoopMember(cell, leveled)}
		}
	}
	return nil
}

// findLoopMember walks backward through unleveled driver cells until a net
// repeats, which pins down an actual cycle member rather than a net that
// is merely downstream of the loop.
func (t *Topology) findLoopMember(start *Cell, leveled []bool) string {
	seen := make(map[int]bool)
	cell := start
	for {
		net := cell.Output
		if seen[net.ID] {
			return net.Name
		}
		seen[net.ID] = true
		next := cell
		for _, in := range cell.Inputs {
			if !leveled[in.ID] && in.Driver != nil {
				next = in.Driver
				break
			}
		}
		if next == cell {
			// Should not happen once validation passed; report what we have.
			return net.Name
		}
		cell = next
	}
}

// computeBackwardLevels walks the transpose graph. Primary outputs and
// flip-flop data inputs are level 0; any other net is 1 + max over the
// outputs of the cells reading it. Nets read by nothing stay at level 0
// (their observability is the undefined sentinel anyway). Clock pins are
// not observation paths and do not participate.
func (t *Topology) computeBackwardLevels() {
	leveled := make([]bool, len(t.Circuit.Nets))

	seed := func(net *Net) {
		if !leveled[net.ID] {
			net.BkwdLevel = 0
			leveled[net.ID] = true
		}
	}
	for _, net := range t.Circuit.Outputs {
		seed(net)
	}
	for _, ff := range t.Circuit.FlipFlops {
		seed(ff.Data)
	}

	changed := true
	for changed {
		changed = false
		for _, net := range t.Circuit.Nets {
			if leveled[net.ID] {
				continue
			}
			max := -1
			ready := true
			for _, cell := range net.Readers {
				if !leveled[cell.Output.ID] {
					ready = false
					break
				}
				if cell.Output.BkwdLevel > max {
					max = cell.Output.BkwdLevel
				}
			}
			if !ready {
				continue
			}
			net.BkwdLevel = max + 1
			leveled[net.ID] = true
			if max+1 > t.MaxBkwdLevel {
				t.MaxBkwdLevel = max + 1
			}
			changed = true
		}
	}
}

func (t *Topology) buildOrders() {
	t.FwdCells = make([]*Cell, len(t.Circuit.Cells))
	copy(t.FwdCells, t.Circuit.Cells)
	sort.SliceStable(t.FwdCells, func(i, j int) bool {
		return t.FwdCells[i].Output.FwdLevel < t.FwdCells[j].Output.FwdLevel
	})

	t.BkwdCells = make([]*Cell, len(t.Circuit.Cells))
	copy(t.BkwdCells, t.Circuit.Cells)
	sort.SliceStable(t.BkwdCells, func(i, j int) bool {
		return t.BkwdCells[i].Output.FwdLevel > t.BkwdCells[j].Output.FwdLevel
	})
}
