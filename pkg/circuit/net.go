package circuit

import (
	"fmt"
)

// NetType represents the classification of a net in the circuit
type NetType int

const (
	Internal NetType = iota
	PrimaryInput
	PrimaryOutput
)

// String returns a string representation of the net type
func (nt NetType) String() string {
	switch nt {
	case Internal:
		return "internal"
	case PrimaryInput:
		return "input"
	case PrimaryOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Net represents a named signal in the circuit. Every net has at most one
// driver (a cell output, a flip-flop output, or a primary input) and any
// number of readers.
type Net struct {
	ID   int    // Unique identifier, assigned in declaration order
	Name string // Name of the net
	Type NetType

	Driver  *Cell       // Cell driving this net (nil for inputs and flip-flop outputs)
	Source  *FlipFlop   // Flip-flop whose output drives this net (nil otherwise)
	Readers []*Cell     // Cells to which this net is an input
	DataOf  []*FlipFlop // Flip-flops whose data input is this net
	ClockOf []*FlipFlop // Flip-flops clocked by this net (structural only)

	// Structural levels - set during levelization
	FwdLevel  int // Distance from primary inputs / flip-flop outputs
	BkwdLevel int // Distance from primary outputs / flip-flop data inputs
}

// NewNet creates a new Net with the given ID, name and type
func NewNet(id int, name string, netType NetType) *Net {
	return &Net{
		ID:   id,
		Name: name,
		Type: netType,
	}
}

// IsDriven returns true if the net has a driver of any kind
func (n *Net) IsDriven() bool {
	return n.Type == PrimaryInput || n.Driver != nil || n.Source != nil
}

// IsSource returns true if the net starts a combinational region
// (primary input or flip-flop output)
func (n *Net) IsSource() bool {
	return n.Type == PrimaryInput || n.Source != nil
}

// HasObservers returns true if the net is read by anything that can carry
// its value toward an observable point. Clock pins do not count.
func (n *Net) HasObservers() bool {
	return n.Type == PrimaryOutput || len(n.Readers) > 0 || len(n.DataOf) > 0
}

// AddReader records a cell that reads this net
func (n *Net) AddReader(cell *Cell) {
	n.Readers = append(n.Readers, cell)
}

// String returns a string representation of the net
func (n *Net) String() string {
	return fmt.Sprintf("%s(%s)", n.Name, n.Type)
}
