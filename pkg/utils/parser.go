package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/evenstarsworn/scoap.github.io/pkg/circuit"
)

// Regular expressions for parsing BENCH format
var (
	inputRegex  = regexp.MustCompile(`^INPUT\((\w+)\)$`)
	outputRegex = regexp.MustCompile(`^OUTPUT\((\w+)\)$`)
	instRegex   = regexp.MustCompile(`^(\w+)\s*=\s*(\w+)\((.+)\)$`)
)

// ParseBenchFile reads a circuit description in BENCH format and returns
// the normalized netlist. Combinational cells use the usual
// `y = AND(a, b)` form; `q = DFF(d)` declares a D flip-flop with an
// implicit clock.
func ParseBenchFile(filename string) (*circuit.Netlist, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "open bench file")
	}
	defer file.Close()

	name := strings.TrimSuffix(filepath.Base(filename), ".bench")
	nl, err := ParseBench(file, name)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}
	return nl, nil
}

// ParseBench reads BENCH text from r into a netlist named name
func ParseBench(r io.Reader, name string) (*circuit.Netlist, error) {
	nl := &circuit.Netlist{Name: name}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	cellNo := 0
	ffNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if matches := inputRegex.FindStringSubmatch(line); matches != nil {
			nl.Inputs = append(nl.Inputs, matches[1])
			continue
		}

		if matches := outputRegex.FindStringSubmatch(line); matches != nil {
			nl.Outputs = append(nl.Outputs, matches[1])
			continue
		}

		matches := instRegex.FindStringSubmatch(line)
		if matches == nil {
			return nil, errors.Errorf("line %d: unrecognized statement %q", lineNo, line)
		}
		outputName := matches[1]
		typeName := strings.ToUpper(matches[2])
		var inputs []string
		for _, in := range strings.Split(matches[3], ",") {
			inputs = append(inputs, strings.TrimSpace(in))
		}

		if typeName == "DFF" {
			if len(inputs) != 1 {
				return nil, errors.Errorf("line %d: DFF takes one data input, got %d", lineNo, len(inputs))
			}
			nl.FlipFlops = append(nl.FlipFlops, circuit.FlipFlopDecl{
				Name:   fmt.Sprintf("ff%d", ffNo),
				Data:   inputs[0],
				Output: outputName,
			})
			ffNo++
			continue
		}

		cellType, ok := circuit.ParseCellType(typeName)
		if !ok {
			return nil, errors.Errorf("line %d: unknown cell type %q", lineNo, typeName)
		}
		nl.Cells = append(nl.Cells, circuit.CellDecl{
			Name:   fmt.Sprintf("g%d", cellNo),
			Type:   cellType,
			Output: outputName,
			Inputs: inputs,
		})
		cellNo++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read bench text")
	}

	return nl, nil
}
