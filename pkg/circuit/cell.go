package circuit

import "fmt"

// CellType represents the type of combinational primitive
type CellType int

const (
	AND CellType = iota
	OR
	NOT
	NAND
	NOR
	XOR
	XNOR
	BUF // Buffer cell
)

// String returns a string representation of the cell type
func (ct CellType) String() string {
	switch ct {
	case AND:
		return "AND"
	case OR:
		return "OR"
	case NOT:
		return "NOT"
	case NAND:
		return "NAND"
	case NOR:
		return "NOR"
	case XOR:
		return "XOR"
	case XNOR:
		return "XNOR"
	case BUF:
		return "BUF"
	default:
		return "UNKNOWN"
	}
}

// ParseCellType converts a type name to a CellType
func ParseCellType(name string) (CellType, bool) {
	switch name {
	case "AND":
		return AND, true
	case "OR":
		return OR, true
	case "NOT", "INV":
		return NOT, true
	case "NAND":
		return NAND, true
	case "NOR":
		return NOR, true
	case "XOR":
		return XOR, true
	case "XNOR":
		return XNOR, true
	case "BUF", "BUFF":
		return BUF, true
	default:
		return BUF, false
	}
}

// MinInputs returns the minimum number of inputs the cell type accepts
func (ct CellType) MinInputs() int {
	switch ct {
	case NOT, BUF:
		return 1
	default:
		return 2
	}
}

// MaxInputs returns the maximum number of inputs the cell type accepts,
// or 0 for unbounded. XOR/XNOR are limited to the 2-input form; wider
// parity trees must be decomposed in the netlist.
func (ct CellType) MaxInputs() int {
	switch ct {
	case NOT, BUF:
		return 1
	case XOR, XNOR:
		return 2
	default:
		return 0
	}
}

// Cell represents a combinational primitive in the circuit
type Cell struct {
	ID     int      // Unique identifier
	Name   string   // Name of the cell
	Type   CellType // Type of the cell
	Inputs []*Net   // Input nets, in declaration order (order matters for XOR observability)
	Output *Net     // Output net
}

// NewCell creates a new cell with the given parameters
func NewCell(id int, name string, cellType CellType) *Cell {
	return &Cell{
		ID:   id,
		Name: name,
		Type: cellType,
	}
}

// AddInput adds an input net to the cell
func (c *Cell) AddInput(net *Net) {
	c.Inputs = append(c.Inputs, net)
	net.AddReader(c)
}

// SetOutput sets the output net of the cell
func (c *Cell) SetOutput(net *Net) {
	c.Output = net
	net.Driver = c
}

// String returns a string representation of the cell
func (c *Cell) String() string {
	return fmt.Sprintf("%s(%s)", c.Name, c.Type.String())
}
