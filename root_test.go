package functree_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/njchilds90/functree"
)

// ============================================================
// Root tests
// ============================================================

func linearRoot() *functree.Root {
	a := functree.NewVariable("a")
	return functree.NewRoot(functree.AddOf(functree.MultiplyOf(a, x), y), functree.Bindings{"a": 2})
}

func TestRoot_Variables(t *testing.T) {
	r := linearRoot()
	if got := r.Variables(); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("want [x y], got %v", got)
	}
	if got := r.WithoutParameter("a").Variables(); !reflect.DeepEqual(got, []string{"a", "x", "y"}) {
		t.Errorf("want [a x y], got %v", got)
	}
}

func TestRoot_ParametersWin(t *testing.T) {
	r := linearRoot()
	got, ok := r.Value(functree.Bindings{"x": 1, "y": 3, "a": 100}).Float64()
	if !ok || got != 5 {
		t.Errorf("want 5, got %g", got)
	}
	got, _ = r.WithoutParameter("a").Value(functree.Bindings{"x": 1, "y": 3, "a": 100}).Float64()
	if got != 103 {
		t.Errorf("want 103, got %g", got)
	}
}

func TestRoot_CopiesParameters(t *testing.T) {
	params := functree.Bindings{"a": 2}
	r := functree.NewRoot(functree.NewVariable("a"), params)
	params["a"] = 50
	if got, _ := r.Value(nil).Float64(); got != 2 {
		t.Errorf("want 2, got %g", got)
	}
	r.Parameters()["a"] = 70
	if got, _ := r.Value(nil).Float64(); got != 2 {
		t.Errorf("want 2, got %g", got)
	}
}

func TestRoot_Univariate(t *testing.T) {
	r := linearRoot()
	if _, err := r.Univariate(); !errors.Is(err, functree.ErrNotUnivariate) {
		t.Fatalf("want ErrNotUnivariate, got %v", err)
	}
	f, err := r.WithParameter("y", 1).Univariate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := f(3).Float64(); got != 7 {
		t.Errorf("want 7, got %g", got)
	}
}

func TestRoot_Multivariate(t *testing.T) {
	vf := linearRoot().Multivariate()
	if vf.Dim() != 2 || !reflect.DeepEqual(vf.Names(), []string{"x", "y"}) {
		t.Fatalf("unexpected coordinates %v", vf.Names())
	}
	if got, _ := vf.At(1, 3).Float64(); got != 5 {
		t.Errorf("want 5, got %g", got)
	}
	if vf.At(1).IsDefined() {
		t.Error("want undefined for a short coordinate vector")
	}
}

func TestRoot_FreeVariablesExcludeParameters(t *testing.T) {
	r := linearRoot()
	if got := functree.VariableNames(r); !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("want [x y], got %v", got)
	}
	if r.IsValidChild() {
		t.Error("root must not be a valid child")
	}
}

func TestRoot_Derivative(t *testing.T) {
	r := linearRoot()
	d := mustDerivative(t, r, "x")
	if got, _ := d.Value(nil).Float64(); got != 2 {
		t.Errorf("want 2, got %g", got)
	}
	d = mustDerivative(t, r, "a")
	if d.String() != "0" {
		t.Errorf("derivative by a parameter: want 0, got %s", d)
	}
}
