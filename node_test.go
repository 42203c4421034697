package functree_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/njchilds90/functree"
)

// ============================================================
// Construction and printing tests
// ============================================================

func TestString_Forms(t *testing.T) {
	cases := []struct {
		expr functree.Node
		want string
	}{
		{functree.Difference(x, y), "x - y"},
		{functree.Quotient(x, y), "x/y"},
		{functree.MultiplyOf(functree.AddOf(x, functree.One()), y), "(1 + x)*y"},
		{functree.NewPower(functree.AddOf(x, y), c(2)), "(x + y)^2"},
		{functree.NewPower(x, c(-1)), "x^(-1)"},
		{functree.Negate(x), "-x"},
		{functree.Sin(x), "sin(x)"},
		{functree.Pi(), "π"},
		{c(-2.5), "-2.5"},
		{functree.NewMonomial("x", 3, 2), "3*x^2"},
		{functree.NewMonomial("x", 1, -2), "x^(-2)"},
		{functree.Sum(i, "i", functree.Zero(), c(3), functree.One()), "sum(i, i, 0, 3, 1)"},
		{functree.Restrict(x, "x", functree.Closed(0, 1)), "domain(x, x in [0, 1])"},
	}
	for _, tc := range cases {
		if got := tc.expr.String(); got != tc.want {
			t.Errorf("want %s, got %s", tc.want, got)
		}
	}
}

func TestLaTeX_Forms(t *testing.T) {
	cases := []struct {
		expr functree.Node
		want string
	}{
		{functree.Quotient(x, y), `\frac{x}{y}`},
		{functree.Sqrt(x), `\sqrt{x}`},
		{functree.Sin(x), `\sin\left(x\right)`},
		{functree.NewPower(x, c(2)), `x^{2}`},
		{functree.Abs(x), `\left|x\right|`},
		{functree.Pi(), `\pi`},
		{functree.MultiplyOf(c(2), x), `2 x`},
	}
	for _, tc := range cases {
		if got := tc.expr.LaTeX(); got != tc.want {
			t.Errorf("want %s, got %s", tc.want, got)
		}
	}
}

func TestAdd_FlattensAndFoldsConstants(t *testing.T) {
	inner := functree.AddOf(x, c(2))
	outer := functree.AddOf(inner, c(3), y)
	if outer.NumChildren() != 3 {
		t.Fatalf("want 3 children, got %d", outer.NumChildren())
	}
	if outer.String() != "5 + x + y" {
		t.Errorf("want 5 + x + y, got %s", outer)
	}
}

func TestAdd_FlattenScalesCoefficients(t *testing.T) {
	a := functree.NewAdd()
	a.AddTerm(functree.AddOf(x, y), 3)
	if got := a.Coefficients(); !reflect.DeepEqual(got, []float64{3, 3}) {
		t.Errorf("want [3 3], got %v", got)
	}
}

func TestMultiply_FlattenScalesExponents(t *testing.T) {
	m := functree.NewMultiply()
	m.MultiplyBy(functree.MultiplyOf(x, functree.Quotient(functree.One(), y)), 2)
	if got := m.Exponents(); !reflect.DeepEqual(got, []float64{1, 2, -2}) {
		t.Errorf("want [1 2 -2], got %v", got)
	}
}

func TestInvalidChildIsIgnored(t *testing.T) {
	args := functree.Arguments(x, y)
	if args.IsValidChild() {
		t.Error("argument list must not be a valid child")
	}
	sum := functree.AddOf(x, args, nil)
	if sum.NumChildren() != 1 {
		t.Errorf("want 1 child, got %d", sum.NumChildren())
	}
	root := functree.NewRoot(y, nil)
	prod := functree.MultiplyOf(x, root)
	if prod.NumChildren() != 1 {
		t.Errorf("want 1 child, got %d", prod.NumChildren())
	}
}

func TestChildrenIsACopy(t *testing.T) {
	sum := functree.AddOf(x, y)
	kids := sum.Children()
	kids[0] = c(9)
	if sum.String() != "x + y" {
		t.Errorf("tree changed through Children: %s", sum)
	}
}

func TestEqual_Structural(t *testing.T) {
	if !functree.AddOf(x, y).Equal(functree.AddOf(x, y)) {
		t.Error("want equal sums")
	}
	if functree.AddOf(x, y).Equal(functree.AddOf(y, x)) {
		t.Error("terms are ordered")
	}
	if functree.Sin(x).Equal(functree.Cos(x)) {
		t.Error("different kinds must differ")
	}
	if !functree.Pi().Equal(c(functree.Pi().Float64())) {
		t.Error("constants compare by value")
	}
}

func TestFreeVariables(t *testing.T) {
	n := functree.NewVariable("n")
	s := functree.Sum(functree.MultiplyOf(x, i), "i", functree.Zero(), n, functree.One())
	if got := functree.VariableNames(s); !reflect.DeepEqual(got, []string{"x", "n"}) {
		t.Errorf("want [x n], got %v", got)
	}
	expr := functree.AddOf(functree.MultiplyOf(x, y), x)
	if got := functree.VariableNames(expr); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("want [x y], got %v", got)
	}
	if got := len(expr.FreeVariables()); got != 3 {
		t.Errorf("want 3 occurrences, got %d", got)
	}
}

// ============================================================
// Factory tests
// ============================================================

func TestNewDerivativeOp(t *testing.T) {
	op, err := functree.NewDerivativeOp(x, functree.Sin(x))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := functree.Eval1(op, "x", 0).Float64(); !approx(got, 1, tol) {
		t.Errorf("want 1, got %g", got)
	}
	if op.String() != "derivative(sin(x), x)" {
		t.Errorf("want derivative(sin(x), x), got %s", op)
	}
	if s := op.Simplify().String(); s != "cos(x)" {
		t.Errorf("want cos(x), got %s", s)
	}
}

func TestNewDerivativeOp_SecondOrder(t *testing.T) {
	op, err := functree.NewDerivativeOp(x, functree.Sin(x))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	d := mustDerivative(t, op, "x")
	if got := valueAt(t, d, "x", 0.3); !approx(got, -0.29552020666133955, tol) {
		t.Errorf("want -sin(0.3), got %g", got)
	}
}

func TestNewDerivativeOp_ArgumentErrors(t *testing.T) {
	_, err := functree.NewDerivativeOp(c(1), x)
	var typeErr *functree.ArgumentTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("want ArgumentTypeError, got %v", err)
	}
	if typeErr.Index != 0 || typeErr.Got != "constant" {
		t.Errorf("unexpected error detail: %+v", typeErr)
	}

	_, err = functree.NewDerivativeOp(x, x, x)
	var countErr *functree.ArgumentCountError
	if !errors.As(err, &countErr) {
		t.Fatalf("want ArgumentCountError, got %v", err)
	}
	if countErr.Got != 3 {
		t.Errorf("want Got=3, got %d", countErr.Got)
	}

	// The count is checked before the types.
	_, err = functree.NewDerivativeOp(c(1), x, x)
	if !errors.As(err, &countErr) {
		t.Errorf("want ArgumentCountError, got %v", err)
	}
}

func TestNewSeries(t *testing.T) {
	s, err := functree.NewSeries(functree.SeriesSum, i, functree.Zero(), c(3), i)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := s.Value(nil).Float64(); got != 6 {
		t.Errorf("want 6, got %g", got)
	}

	p, err := functree.NewSeries(functree.SeriesProduct, i, functree.One(), c(5), c(2), i)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := p.Value(nil).Float64(); got != 15 {
		t.Errorf("want 15, got %g", got)
	}
}

func TestNewSeries_ArgumentErrors(t *testing.T) {
	var countErr *functree.ArgumentCountError
	if _, err := functree.NewSeries(functree.SeriesSum, i, functree.Zero()); !errors.As(err, &countErr) {
		t.Errorf("want ArgumentCountError, got %v", err)
	}
	var typeErr *functree.ArgumentTypeError
	if _, err := functree.NewSeries(functree.SeriesSum, c(1), functree.Zero(), c(3), i); !errors.As(err, &typeErr) {
		t.Errorf("want ArgumentTypeError, got %v", err)
	}
	if _, err := functree.NewSeries(functree.SeriesSum, i, functree.Zero(), c(3), functree.Arguments(i)); !errors.As(err, &typeErr) {
		t.Errorf("want ArgumentTypeError for argument list body, got %v", err)
	}
}
