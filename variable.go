package functree

import (
	"math"
	"strconv"
)

// ============================================================
// Variable — symbolic leaf
// ============================================================

// Variable is a named symbol. Its name defines its identity; the optional
// bound value is used when evaluation bindings do not mention the name.
type Variable struct {
	name  string
	bound *float64
}

func NewVariable(name string) *Variable { return &Variable{name: name} }

// BoundVariable returns a variable carrying a fallback value.
func BoundVariable(name string, v float64) *Variable {
	return &Variable{name: name, bound: &v}
}

func (v *Variable) Name() string { return v.name }

func (v *Variable) Bound() (float64, bool) {
	if v.bound == nil {
		return 0, false
	}
	return *v.bound, true
}

func (v *Variable) Precedence() Precedence     { return AtomicPrecedence }
func (v *Variable) String() string             { return v.name }
func (v *Variable) LaTeX() string              { return v.name }
func (v *Variable) FreeVariables() []*Variable { return []*Variable{v} }
func (v *Variable) Children() []Node           { return nil }
func (v *Variable) NumChildren() int           { return 0 }
func (v *Variable) IsValidChild() bool         { return true }
func (v *Variable) Simplify() Node             { return v.clone() }

func (v *Variable) Value(b Bindings) Value {
	if x, ok := b[v.name]; ok {
		return Defined(x)
	}
	if v.bound != nil {
		return Defined(*v.bound)
	}
	return Undefined()
}

func (v *Variable) derivative(variable string) (Node, error) {
	if v.name == variable {
		return One(), nil
	}
	return Zero(), nil
}

func (v *Variable) Equal(other Node) bool {
	o, ok := other.(*Variable)
	return ok && v.name == o.name
}

func (v *Variable) clone() Node {
	c := &Variable{name: v.name}
	if v.bound != nil {
		b := *v.bound
		c.bound = &b
	}
	return c
}

func (v *Variable) toJSON() map[string]interface{} {
	m := map[string]interface{}{"type": "var", "name": v.name}
	if v.bound != nil {
		m["bound"] = *v.bound
	}
	return m
}

// ============================================================
// Monomial — coeff * name^power
// ============================================================

// Monomial is a variable with a coefficient and an integer power. It
// differentiates without building intermediate product nodes.
type Monomial struct {
	name  string
	coeff float64
	power int
}

func NewMonomial(name string, coeff float64, power int) *Monomial {
	return &Monomial{name: name, coeff: coeff, power: power}
}

func (m *Monomial) Name() string         { return m.name }
func (m *Monomial) Coefficient() float64 { return m.coeff }
func (m *Monomial) Power() int           { return m.power }

func (m *Monomial) Precedence() Precedence {
	switch {
	case m.power == 0 && m.coeff < 0:
		return NegPrecedence
	case m.power == 0:
		return AtomicPrecedence
	case m.coeff != 1:
		return MultPrecedence
	case m.power != 1:
		return ExpPrecedence
	}
	return AtomicPrecedence
}

func (m *Monomial) powerString(open, close string) string {
	if m.power == 1 {
		return m.name
	}
	p := strconv.Itoa(m.power)
	if m.power < 0 {
		p = open + p + close
	}
	return m.name + "^" + p
}

func (m *Monomial) String() string {
	if m.power == 0 {
		return formatNumber(m.coeff)
	}
	s := m.powerString("(", ")")
	if m.coeff != 1 {
		s = formatNumber(m.coeff) + "*" + s
	}
	return s
}

func (m *Monomial) LaTeX() string {
	if m.power == 0 {
		return formatNumber(m.coeff)
	}
	s := m.name
	if m.power != 1 {
		s += "^{" + strconv.Itoa(m.power) + "}"
	}
	if m.coeff != 1 {
		s = formatNumber(m.coeff) + " " + s
	}
	return s
}

func (m *Monomial) Value(b Bindings) Value {
	x, ok := NewVariable(m.name).Value(b).Float64()
	if !ok {
		return Undefined()
	}
	return Defined(m.coeff * math.Pow(x, float64(m.power)))
}

func (m *Monomial) derivative(variable string) (Node, error) {
	if m.name != variable || m.power == 0 {
		return Zero(), nil
	}
	if m.power == 1 {
		return NewConstant(m.coeff), nil
	}
	return NewMonomial(m.name, m.coeff*float64(m.power), m.power-1), nil
}

func (m *Monomial) Simplify() Node {
	switch {
	case m.coeff == 0:
		return Zero()
	case m.power == 0:
		return canonicalConstant(m.coeff)
	case m.coeff == 1 && m.power == 1:
		return NewVariable(m.name)
	}
	return m.clone()
}

func (m *Monomial) FreeVariables() []*Variable { return []*Variable{NewVariable(m.name)} }
func (m *Monomial) Children() []Node           { return nil }
func (m *Monomial) NumChildren() int           { return 0 }
func (m *Monomial) IsValidChild() bool         { return true }
func (m *Monomial) clone() Node                { return NewMonomial(m.name, m.coeff, m.power) }

func (m *Monomial) Equal(other Node) bool {
	o, ok := other.(*Monomial)
	return ok && m.name == o.name && m.coeff == o.coeff && m.power == o.power
}

func (m *Monomial) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "monomial", "name": m.name, "coeff": m.coeff, "power": m.power}
}
