package circuit

import (
	"fmt"
)

// Netlist is the normalized instance list a circuit is built from: the
// output of whatever front-end parsed the source description. Net names
// are opaque strings; declaration order is preserved and determines the
// stable ordering of the propagation passes.
type Netlist struct {
	Name      string
	Inputs    []string // Primary input net names
	Outputs   []string // Primary output net names
	Cells     []CellDecl
	FlipFlops []FlipFlopDecl
}

// CellDecl declares one combinational cell
type CellDecl struct {
	Name   string
	Type   CellType
	Output string
	Inputs []string
}

// FlipFlopDecl declares one D flip-flop. Clock, Reset and Set may be empty.
type FlipFlopDecl struct {
	Name   string
	Data   string
	Clock  string
	Output string
	Reset  string
	Set    string
}

// Kinds of netlist malformation
const (
	DuplicateDriver = "duplicate driver"
	DanglingNet     = "dangling net"
	UndrivenOutput  = "undriven primary output"
	BadCellArity    = "bad cell arity"
)

// MalformedNetlistError reports a structural violation in the netlist.
// Construction is all-or-nothing: when Build returns this error no
// partially built circuit is exposed.
type MalformedNetlistError struct {
	Kind   string // One of the kind constants above
	Name   string // Offending net or cell name
	Detail string
}

func (e *MalformedNetlistError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("malformed netlist: %s %q: %s", e.Kind, e.Name, e.Detail)
	}
	return fmt.Sprintf("malformed netlist: %s %q", e.Kind, e.Name)
}

// Build constructs and validates the circuit graph. It checks that no net
// has two drivers, that every referenced net ends up driven, that every
// primary output is driven, and that no primary input is driven by a cell
// or flip-flop.
func (nl *Netlist) Build() (*Circuit, error) {
	c := NewCircuit(nl.Name)

	get := func(name string) *Net {
		if net := c.Net(name); net != nil {
			return net
		}
		return c.addNet(name, Internal)
	}

	for _, name := range nl.Inputs {
		if c.Net(name) == nil {
			c.addNet(name, PrimaryInput)
		}
	}
	for _, name := range nl.Outputs {
		net := get(name)
		if net.Type == Internal {
			net.Type = PrimaryOutput
		}
		c.Outputs = append(c.Outputs, net)
	}

	for _, decl := range nl.Cells {
		if err := checkArity(decl); err != nil {
			return nil, err
		}
		cell := c.addCell(decl.Name, decl.Type)
		out := get(decl.Output)
		if out.Type == PrimaryInput {
			return nil, &MalformedNetlistError{
				Kind:   DuplicateDriver,
				Name:   out.Name,
				Detail: fmt.Sprintf("primary input driven by cell %s", decl.Name),
			}
		}
		if out.Driver != nil || out.Source != nil {
			return nil, &MalformedNetlistError{
				Kind:   DuplicateDriver,
				Name:   out.Name,
				Detail: fmt.Sprintf("second driver is cell %s", decl.Name),
			}
		}
		cell.SetOutput(out)
		for _, in := range decl.Inputs {
			cell.AddInput(get(in))
		}
	}

	for _, decl := range nl.FlipFlops {
		ff := c.addFlipFlop(decl.Name)
		out := get(decl.Output)
		if out.Type == PrimaryInput {
			return nil, &MalformedNetlistError{
				Kind:   DuplicateDriver,
				Name:   out.Name,
				Detail: fmt.Sprintf("primary input driven by flip-flop %s", decl.Name),
			}
		}
		if out.Driver != nil || out.Source != nil {
			return nil, &MalformedNetlistError{
				Kind:   DuplicateDriver,
				Name:   out.Name,
				Detail: fmt.Sprintf("second driver is flip-flop %s", decl.Name),
			}
		}
		ff.SetOutput(out)
		ff.SetData(get(decl.Data))
		if decl.Clock != "" {
			ff.SetClock(get(decl.Clock))
		}
		if decl.Reset != "" {
			ff.Reset = get(decl.Reset)
		}
		if decl.Set != "" {
			ff.Set = get(decl.Set)
		}
	}

	// Every net seen so far was referenced by something; any net still
	// without a driver is a dangling reference or an undriven output.
	for _, net := range c.Nets {
		if net.IsDriven() {
			continue
		}
		kind := DanglingNet
		if net.Type == PrimaryOutput {
			kind = UndrivenOutput
		}
		return nil, &MalformedNetlistError{Kind: kind, Name: net.Name}
	}

	return c, nil
}

func checkArity(decl CellDecl) error {
	n := len(decl.Inputs)
	if n < decl.Type.MinInputs() {
		return &MalformedNetlistError{
			Kind:   BadCellArity,
			Name:   decl.Name,
			Detail: fmt.Sprintf("%s cell needs at least %d inputs, got %d", decl.Type, decl.Type.MinInputs(), n),
		}
	}
	if max := decl.Type.MaxInputs(); max > 0 && n > max {
		return &MalformedNetlistError{
			Kind:   BadCellArity,
			Name:   decl.Name,
			Detail: fmt.Sprintf("%s cell takes at most %d inputs, got %d", decl.Type, max, n),
		}
	}
	return nil
}
