package functree

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported is returned for operations with no defined rule, such as
	// differentiating a product series.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrPassLimit is returned when FullSimplify does not reach a fixed point
	// within its pass budget.
	ErrPassLimit = errors.New("simplification pass limit exceeded")

	// ErrNotUnivariate is returned when a single-variable view is requested
	// for a Root that does not have exactly one unknown.
	ErrNotUnivariate = errors.New("expression is not univariate")
)

// ArgumentCountError reports an argument list of the wrong length.
type ArgumentCountError struct {
	Op       string
	Min, Max int
	Got      int
}

func (e *ArgumentCountError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("functree: %s takes %d arguments, got %d", e.Op, e.Min, e.Got)
	}
	return fmt.Sprintf("functree: %s takes %d to %d arguments, got %d", e.Op, e.Min, e.Max, e.Got)
}

// ArgumentTypeError reports an argument of the wrong node kind.
type ArgumentTypeError struct {
	Op    string
	Index int
	Want  string
	Got   string
}

func (e *ArgumentTypeError) Error() string {
	return fmt.Sprintf("functree: %s argument %d must be a %s, got %s", e.Op, e.Index, e.Want, e.Got)
}
