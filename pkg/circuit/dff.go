package circuit

import "fmt"

// FlipFlop represents a D flip-flop. The clock and the optional
// asynchronous controls are structural only: they mark the element as
// sequential but carry no value through the testability formulas.
type FlipFlop struct {
	ID     int    // Unique identifier
	Name   string // Name of the flip-flop
	Data   *Net   // Data (D) input net
	Clock  *Net   // Clock net, may be nil
	Output *Net   // Output (Q) net
	Reset  *Net   // Optional asynchronous reset net
	Set    *Net   // Optional asynchronous set net
}

// NewFlipFlop creates a new flip-flop with the given ID and name
func NewFlipFlop(id int, name string) *FlipFlop {
	return &FlipFlop{
		ID:   id,
		Name: name,
	}
}

// SetData sets the data input net of the flip-flop
func (f *FlipFlop) SetData(net *Net) {
	f.Data = net
	net.DataOf = append(net.DataOf, f)
}

// SetClock sets the clock net of the flip-flop
func (f *FlipFlop) SetClock(net *Net) {
	f.Clock = net
	net.ClockOf = append(net.ClockOf, f)
}

// SetOutput sets the output net of the flip-flop
func (f *FlipFlop) SetOutput(net *Net) {
	f.Output = net
	net.Source = f
}

// String returns a string representation of the flip-flop
func (f *FlipFlop) String() string {
	return fmt.Sprintf("%s(DFF)", f.Name)
}
