package functree

import "math"

// Bindings maps variable names to numeric values.
type Bindings map[string]float64

func (b Bindings) copy() Bindings {
	out := make(Bindings, len(b))
	for k, x := range b {
		out[k] = x
	}
	return out
}

func (b Bindings) with(name string, v float64) Bindings {
	out := b.copy()
	out[name] = v
	return out
}

func (b Bindings) without(name string) Bindings {
	out := b.copy()
	delete(out, name)
	return out
}

// Value is the result of evaluating a tree. An undefined Value stands for
// missing bindings, points outside a domain, and NaN results; it propagates
// through arithmetic instead of failing.
type Value struct {
	v  float64
	ok bool
}

// Defined returns a defined Value. NaN is reported as undefined.
func Defined(v float64) Value {
	if math.IsNaN(v) {
		return Value{}
	}
	return Value{v: v, ok: true}
}

// Undefined returns the undefined Value.
func Undefined() Value { return Value{} }

func (v Value) Float64() (float64, bool) { return v.v, v.ok }
func (v Value) IsDefined() bool          { return v.ok }

func (v Value) String() string {
	if !v.ok {
		return "undefined"
	}
	return formatNumber(v.v)
}

// Eval1 evaluates n with a single binding.
func Eval1(n Node, name string, x float64) Value {
	return n.Value(Bindings{name: x})
}
