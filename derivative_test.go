package functree_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/njchilds90/functree"
)

const tol = 1e-9

func approx(a, b, eps float64) bool { return math.Abs(a-b) <= eps }

func mustDerivative(t *testing.T, n functree.Node, v string) functree.Node {
	t.Helper()
	d, err := functree.Derivative(n, v)
	if err != nil {
		t.Fatalf("derivative of %s: %v", n, err)
	}
	return d
}

func valueAt(t *testing.T, n functree.Node, name string, at float64) float64 {
	t.Helper()
	v, ok := functree.Eval1(n, name, at).Float64()
	if !ok {
		t.Fatalf("%s undefined at %s=%g", n, name, at)
	}
	return v
}

// ============================================================
// Derivative tests
// ============================================================

func TestDerivative_Sin(t *testing.T) {
	d := mustDerivative(t, functree.Sin(x), "x")
	if got := valueAt(t, d, "x", 0); !approx(got, 1, tol) {
		t.Errorf("d/dx sin(x) at 0: want 1, got %g", got)
	}
	if got := valueAt(t, d, "x", math.Pi/2); !approx(got, 0, tol) {
		t.Errorf("d/dx sin(x) at π/2: want 0, got %g", got)
	}
	if d.String() != "cos(x)" {
		t.Errorf("want cos(x), got %s", d)
	}
}

func TestDerivative_Cos(t *testing.T) {
	d := mustDerivative(t, functree.Cos(x), "x")
	if got := valueAt(t, d, "x", math.Pi/2); !approx(got, -1, tol) {
		t.Errorf("want -1, got %g", got)
	}
}

func TestDerivative_Constant(t *testing.T) {
	d := mustDerivative(t, c(5), "x")
	if d.String() != "0" {
		t.Errorf("want 0, got %s", d)
	}
}

func TestDerivative_OtherVariable(t *testing.T) {
	d := mustDerivative(t, functree.MultiplyOf(y, y), "x")
	if d.Simplify().String() != "0" {
		t.Errorf("want 0, got %s", d.Simplify())
	}
}

func TestDerivative_PowerConstantExponent(t *testing.T) {
	d := mustDerivative(t, functree.NewPower(x, c(3)), "x")
	if got := valueAt(t, d, "x", 2); got != 12 {
		t.Errorf("want 12, got %g", got)
	}
	if s := d.Simplify().String(); s != "3*x^2" {
		t.Errorf("want 3*x^2, got %s", s)
	}
}

func TestDerivative_PowerGeneral(t *testing.T) {
	// d/dx x^x = x^x (ln x + 1)
	d := mustDerivative(t, functree.NewPower(x, x), "x")
	if got := valueAt(t, d, "x", 1); !approx(got, 1, tol) {
		t.Errorf("at 1: want 1, got %g", got)
	}
	if got := valueAt(t, d, "x", 2); !approx(got, 4+4*math.Ln2, tol) {
		t.Errorf("at 2: want %g, got %g", 4+4*math.Ln2, got)
	}
}

func TestDerivative_PowerNegativeBase(t *testing.T) {
	d := mustDerivative(t, functree.NewPower(x, y), "x")
	if strings.Contains(d.String(), "log") {
		t.Errorf("exponent does not depend on x, got %s", d)
	}
	got, ok := d.Value(functree.Bindings{"x": -2, "y": 2}).Float64()
	if !ok || !approx(got, -4, tol) {
		t.Errorf("want -4, got %g (defined=%v)", got, ok)
	}

	op, err := functree.NewDerivativeOp(x, functree.NewPower(x, y))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok = op.Value(functree.Bindings{"x": -2, "y": 3}).Float64()
	if !ok || !approx(got, 12, tol) {
		t.Errorf("want 12, got %g (defined=%v)", got, ok)
	}

	d = mustDerivative(t, functree.NewPower(x, c(0.5)), "y")
	if d.String() != "0" {
		t.Errorf("want 0, got %s", d)
	}
}

func TestDerivative_NoUnitCoefficient(t *testing.T) {
	d := mustDerivative(t, functree.MultiplyOf(x, y), "x")
	if d.String() != "y" {
		t.Errorf("want y, got %s", d)
	}
	d = mustDerivative(t, functree.NewPower(x, y), "x")
	if strings.HasPrefix(d.String(), "1*") {
		t.Errorf("unexpected unit coefficient in %s", d)
	}
}

func TestDerivative_ConstantBase(t *testing.T) {
	d := mustDerivative(t, functree.NewPower(c(2), x), "x")
	if got := valueAt(t, d, "x", 3); !approx(got, 8*math.Ln2, tol) {
		t.Errorf("want %g, got %g", 8*math.Ln2, got)
	}
	d = mustDerivative(t, functree.NewPower(functree.E(), functree.MultiplyOf(c(2), x)), "x")
	if got := valueAt(t, d, "x", 0); !approx(got, 2, tol) {
		t.Errorf("want 2, got %g", got)
	}
}

func TestDerivative_ChainRule(t *testing.T) {
	d := mustDerivative(t, functree.Exp(functree.MultiplyOf(c(2), x)), "x")
	if got := valueAt(t, d, "x", 0); !approx(got, 2, tol) {
		t.Errorf("want 2, got %g", got)
	}
}

func TestDerivative_ProductRule(t *testing.T) {
	// d/dx x*sin(x) = sin(x) + x*cos(x)
	d := mustDerivative(t, functree.MultiplyOf(x, functree.Sin(x)), "x")
	want := math.Sin(1) + math.Cos(1)
	if got := valueAt(t, d, "x", 1); !approx(got, want, tol) {
		t.Errorf("want %g, got %g", want, got)
	}
}

func TestDerivative_Quotient(t *testing.T) {
	// d/dx 1/x = -1/x^2
	d := mustDerivative(t, functree.Quotient(functree.One(), x), "x")
	if got := valueAt(t, d, "x", 2); !approx(got, -0.25, tol) {
		t.Errorf("want -0.25, got %g", got)
	}
}

func TestDerivative_Monomial(t *testing.T) {
	d := mustDerivative(t, functree.NewMonomial("x", 3, 2), "x")
	if d.String() != "6*x" {
		t.Errorf("want 6*x, got %s", d)
	}
}

func TestDerivative_Sum(t *testing.T) {
	// d/dx sum_{i=0}^{3} x*i = 0+1+2+3
	body := functree.MultiplyOf(x, i)
	s := functree.Sum(body, "i", functree.Zero(), c(3), functree.One())
	d := mustDerivative(t, s, "x")
	if got := valueAt(t, d, "x", 10); got != 6 {
		t.Errorf("want 6, got %g", got)
	}
}

func TestDerivative_SumByIndexIsZero(t *testing.T) {
	s := functree.Sum(i, "i", functree.Zero(), c(3), functree.One())
	d := mustDerivative(t, s, "i")
	if d.String() != "0" {
		t.Errorf("want 0, got %s", d)
	}
}

func TestDerivative_ProductUnsupported(t *testing.T) {
	p := functree.Product(functree.MultiplyOf(x, i), "i", functree.One(), c(3), functree.One())
	_, err := functree.Derivative(p, "x")
	if !errors.Is(err, functree.ErrUnsupported) {
		t.Errorf("want ErrUnsupported, got %v", err)
	}
}

func TestDerivativeN(t *testing.T) {
	d, err := functree.DerivativeN(functree.NewPower(x, c(3)), "x", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "6*x" {
		t.Errorf("want 6*x, got %s", d)
	}
	d, err = functree.DerivativeN(x, "x", 0)
	if err != nil || d.String() != "x" {
		t.Errorf("order 0: want x, got %v, %v", d, err)
	}
	if _, err := functree.DerivativeN(x, "x", -1); err == nil {
		t.Error("want error for negative order")
	}
}

func TestDerivative_Piecewise(t *testing.T) {
	abs := functree.PiecewiseOf(
		functree.Restrict(functree.Negate(x), "x", functree.Interval{Lower: math.Inf(-1), Upper: 0, UpperOpen: true}),
		functree.Restrict(x, "x", functree.Interval{Lower: 0, Upper: math.Inf(1)}),
	)
	d := mustDerivative(t, abs, "x")
	if got := valueAt(t, d, "x", -3); got != -1 {
		t.Errorf("at -3: want -1, got %g", got)
	}
	if got := valueAt(t, d, "x", 3); got != 1 {
		t.Errorf("at 3: want 1, got %g", got)
	}
}

// Every registered function's derivative matches a central difference.
func TestDerivative_RegistryMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	for _, k := range functree.Kinds() {
		at := 0.5
		if k == functree.FuncAcosh {
			at = 1.5
		}
		f := functree.Apply(k, x)
		d, err := functree.Derivative(f, "x")
		if err != nil {
			t.Errorf("%s: %v", k, err)
			continue
		}
		hi, _ := functree.Eval1(f, "x", at+h).Float64()
		lo, _ := functree.Eval1(f, "x", at-h).Float64()
		want := (hi - lo) / (2 * h)
		got, ok := functree.Eval1(d, "x", at).Float64()
		if !ok || !approx(got, want, 1e-5) {
			t.Errorf("%s'(%g): want %g, got %g", k, at, want, got)
		}
	}
}
