package functree

import "fmt"

// ============================================================
// Differentiation
// ============================================================

// Derivative returns the derivative of n with respect to variable. The result
// is not simplified. It fails with ErrUnsupported for nodes with no rule.
func Derivative(n Node, variable string) (Node, error) {
	if n == nil {
		return nil, fmt.Errorf("derivative of nil node: %w", ErrUnsupported)
	}
	return n.derivative(variable)
}

// DerivativeN differentiates n order times, simplifying after each step.
func DerivativeN(n Node, variable string, order int) (Node, error) {
	if order < 0 {
		return nil, fmt.Errorf("negative derivative order %d: %w", order, ErrUnsupported)
	}
	cur := n
	for i := 0; i < order; i++ {
		d, err := Derivative(cur, variable)
		if err != nil {
			return nil, fmt.Errorf("order %d: %w", i+1, err)
		}
		cur = d.Simplify()
	}
	return cur, nil
}
