package scoap

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// WriteReport renders the per-net metric table, one row per net sorted by
// name. Sequential columns appear only when the circuit contains at least
// one flip-flop. Undefined observability renders as "inf".
func WriteReport(w io.Writer, res *Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "SCOAP results for %s\n", res.Circuit.Name)

	header := fmt.Sprintf("%-10s %-8s %-8s %-8s %-8s %-8s", "Net", "FwdLev", "BkwdLev", "CC0", "CC1", "CO")
	if res.Sequential {
		header += fmt.Sprintf(" %-8s %-8s %-8s", "SC0", "SC1", "SO")
	}
	b.WriteString(header)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("-", len(header)))
	b.WriteByte('\n')

	rows := make([]*Metrics, len(res.ordered))
	copy(rows, res.ordered)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Net < rows[j].Net })

	for _, m := range rows {
		fmt.Fprintf(&b, "%-10s %-8d %-8d %-8s %-8s %-8s",
			m.Net, m.FwdLevel, m.BkwdLevel, m.CC0, m.CC1, m.CO)
		if res.Sequential {
			fmt.Fprintf(&b, " %-8s %-8s %-8s", m.SC0, m.SC1, m.SO)
		}
		b.WriteByte('\n')
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(err, "write report")
	}
	return nil
}
