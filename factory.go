package functree

import "fmt"

// ============================================================
// Validated factories
// ============================================================

// NewDerivativeOp builds a derivative operator from (variable, body).
// The argument count is checked before the argument types.
func NewDerivativeOp(args ...Node) (*DerivativeOp, error) {
	const op = "derivative"
	if len(args) != 2 {
		return nil, &ArgumentCountError{Op: op, Min: 2, Max: 2, Got: len(args)}
	}
	v, ok := args[0].(*Variable)
	if !ok {
		return nil, &ArgumentTypeError{Op: op, Index: 0, Want: "variable", Got: nodeKind(args[0])}
	}
	if args[1] == nil {
		return nil, &ArgumentTypeError{Op: op, Index: 1, Want: "expression", Got: nodeKind(nil)}
	}
	return &DerivativeOp{body: args[1], variable: v}, nil
}

// NewSeries builds a Sum or Product from (index, min, max, [step,] body).
// The step defaults to 1.
func NewSeries(kind SeriesKind, args ...Node) (*Series, error) {
	op := kind.String()
	if len(args) != 4 && len(args) != 5 {
		return nil, &ArgumentCountError{Op: op, Min: 4, Max: 5, Got: len(args)}
	}
	index, ok := args[0].(*Variable)
	if !ok {
		return nil, &ArgumentTypeError{Op: op, Index: 0, Want: "variable", Got: nodeKind(args[0])}
	}
	for i, a := range args[1:] {
		if !validChild(a) {
			return nil, &ArgumentTypeError{Op: op, Index: i + 1, Want: "expression", Got: nodeKind(a)}
		}
	}
	lo, hi := args[1], args[2]
	var step Node = One()
	body := args[3]
	if len(args) == 5 {
		step, body = args[3], args[4]
	}
	return &Series{kind: kind, body: body, index: index.name, min: lo, max: hi, step: step}, nil
}

// nodeKind names n's variant for error messages.
func nodeKind(n Node) string {
	switch n.(type) {
	case nil:
		return "nil"
	case *Constant:
		return "constant"
	case *Variable:
		return "variable"
	case *Monomial:
		return "monomial"
	case *Add:
		return "sum of terms"
	case *Multiply:
		return "product of factors"
	case *Power:
		return "power"
	case *Function:
		return "function"
	case *Series:
		return "series"
	case *Domain:
		return "domain"
	case *Piecewise:
		return "piecewise"
	case *DerivativeOp:
		return "derivative"
	case *ArgumentList:
		return "argument list"
	case *Root:
		return "root"
	}
	return fmt.Sprintf("%T", n)
}
