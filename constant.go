package functree

import "math"

// ============================================================
// Constant — numeric leaf
// ============================================================

// Constant is a numeric leaf with an optional display label.
type Constant struct {
	value float64
	label string
}

func NewConstant(v float64) *Constant { return &Constant{value: v} }

// NewLabeledConstant returns a constant that prints as label.
func NewLabeledConstant(v float64, label string) *Constant {
	return &Constant{value: v, label: label}
}

func Zero() *Constant { return NewConstant(0) }
func One() *Constant  { return NewConstant(1) }
func E() *Constant    { return &Constant{value: math.E, label: "e"} }
func Pi() *Constant   { return &Constant{value: math.Pi, label: "π"} }
func Phi() *Constant  { return &Constant{value: math.Phi, label: "φ"} }

// canonicalConstant snaps well-known values to their labeled form.
func canonicalConstant(v float64) *Constant {
	switch v {
	case math.E:
		return E()
	case math.Pi:
		return Pi()
	case math.Phi:
		return Phi()
	}
	return NewConstant(v)
}

func (c *Constant) Float64() float64 { return c.value }
func (c *Constant) Label() string    { return c.label }

func (c *Constant) Precedence() Precedence {
	if c.label == "" && c.value < 0 {
		return NegPrecedence
	}
	return AtomicPrecedence
}

func (c *Constant) Value(Bindings) Value       { return Defined(c.value) }
func (c *Constant) FreeVariables() []*Variable { return nil }
func (c *Constant) Children() []Node           { return nil }
func (c *Constant) NumChildren() int           { return 0 }
func (c *Constant) IsValidChild() bool         { return true }
func (c *Constant) clone() Node                { return &Constant{value: c.value, label: c.label} }

func (c *Constant) derivative(string) (Node, error) { return Zero(), nil }

func (c *Constant) Simplify() Node {
	if c.label != "" {
		return c.clone()
	}
	return canonicalConstant(c.value)
}

func (c *Constant) Equal(other Node) bool {
	o, ok := other.(*Constant)
	return ok && c.value == o.value
}

func (c *Constant) String() string {
	if c.label != "" {
		return c.label
	}
	return formatNumber(c.value)
}

func (c *Constant) LaTeX() string {
	switch c.label {
	case "":
		return formatNumber(c.value)
	case "π":
		return "\\pi"
	case "φ":
		return "\\varphi"
	}
	return c.label
}

func (c *Constant) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "const", "value": c.value}
	if c.label != "" {
		m["label"] = c.label
	}
	return m
}

// accumulator folds numeric children while a parent is being built. It is
// never visible outside its builder; build produces the immutable Constant.
type accumulator struct {
	v float64
}

func (a *accumulator) add(x float64)        { a.v += x }
func (a *accumulator) multiplyBy(x float64) { a.v *= x }
func (a *accumulator) build() *Constant     { return canonicalConstant(a.v) }

func asConstant(n Node) (*Constant, bool) {
	c, ok := n.(*Constant)
	return c, ok
}

func isConstantValue(n Node, v float64) bool {
	c, ok := n.(*Constant)
	return ok && c.value == v
}

func isInteger(v float64) bool { return v == math.Trunc(v) && !math.IsInf(v, 0) }

// foldNumeric collapses a subtree with no free variables into a Constant.
func foldNumeric(n Node) (Node, bool) {
	if len(n.FreeVariables()) > 0 {
		return nil, false
	}
	v, ok := n.Value(nil).Float64()
	if !ok || math.IsInf(v, 0) {
		return nil, false
	}
	return canonicalConstant(v), true
}
