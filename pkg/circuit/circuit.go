package circuit

import (
	"fmt"
	"strings"
)

// Circuit represents a gate-level circuit: the set of all nets, cells and
// flip-flops plus the declared primary inputs and outputs. The topology is
// immutable once built; only the computed level fields on nets change.
type Circuit struct {
	Name      string
	Nets      []*Net // All nets, in declaration order
	Cells     []*Cell
	FlipFlops []*FlipFlop
	Inputs    []*Net // Primary inputs
	Outputs   []*Net // Primary outputs

	netsByName map[string]*Net
}

// NewCircuit creates a new empty circuit with the given name
func NewCircuit(name string) *Circuit {
	return &Circuit{
		Name:       name,
		netsByName: make(map[string]*Net),
	}
}

// Net returns the net with the given name, or nil if it does not exist
func (c *Circuit) Net(name string) *Net {
	return c.netsByName[name]
}

// IsSequential returns true if the circuit contains at least one flip-flop
func (c *Circuit) IsSequential() bool {
	return len(c.FlipFlops) > 0
}

// addNet registers a new net under the next free ID
func (c *Circuit) addNet(name string, netType NetType) *Net {
	net := NewNet(len(c.Nets), name, netType)
	c.Nets = append(c.Nets, net)
	c.netsByName[name] = net
	if netType == PrimaryInput {
		c.Inputs = append(c.Inputs, net)
	}
	return net
}

// addCell registers a new cell under the next free ID
func (c *Circuit) addCell(name string, cellType CellType) *Cell {
	cell := NewCell(len(c.Cells), name, cellType)
	c.Cells = append(c.Cells, cell)
	return cell
}

// addFlipFlop registers a new flip-flop under the next free ID
func (c *Circuit) addFlipFlop(name string) *FlipFlop {
	ff := NewFlipFlop(len(c.FlipFlops), name)
	c.FlipFlops = append(c.FlipFlops, ff)
	return ff
}

// String returns a one-line summary of the circuit
func (c *Circuit) String() string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Circuit %s: %d nets, %d cells, %d flip-flops, %d inputs, %d outputs",
		c.Name, len(c.Nets), len(c.Cells), len(c.FlipFlops), len(c.Inputs), len(c.Outputs)))
	return builder.String()
}
