package scoap

import (
	"math"
	"strconv"
)

// Cost is a SCOAP difficulty value. Controllability costs are positive
// integers; observability costs are non-negative. Inf is the distinguished
// sentinel for undefined observability (a net with no path to any
// observable point) and for values not yet computed.
type Cost int64

// Inf is the undefined/unreachable sentinel. It propagates through
// addition and is never clamped to a finite value.
const Inf Cost = math.MaxInt64

// IsInf returns true for the undefined sentinel
func (c Cost) IsInf() bool {
	return c == Inf
}

// String renders the cost, using "inf" for the sentinel
func (c Cost) String() string {
	if c.IsInf() {
		return "inf"
	}
	return strconv.FormatInt(int64(c), 10)
}

// add returns a+b with Inf absorbing
func add(a, b Cost) Cost {
	if a.IsInf() || b.IsInf() {
		return Inf
	}
	return a + b
}

// min returns the smaller of a and b
func min(a, b Cost) Cost {
	if a < b {
		return a
	}
	return b
}

// sum folds add over vals, starting from base
func sum(base Cost, vals ...Cost) Cost {
	total := base
	for _, v := range vals {
		total = add(total, v)
	}
	return total
}
