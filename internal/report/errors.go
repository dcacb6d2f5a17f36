package report

import (
	"errors"
	"fmt"
)

// ErrEmptyDataset signals that there is nothing to report. It is not a
// failure: callers short-circuit with an informational notice instead of
// emitting a degenerate report.
var ErrEmptyDataset = errors.New("no data to report")

// InvalidInputError marks aggregation input that would produce a
// non-finite value, such as a sale with zero items sold.
type InvalidInputError struct {
	Product string
	Reason  string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid aggregation input for %q: %s", e.Product, e.Reason)
}
