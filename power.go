package functree

import "math"

// ============================================================
// Power — base^exponent
// ============================================================

type Power struct{ base, exponent Node }

func NewPower(base, exponent Node) *Power { return &Power{base: base, exponent: exponent} }

func (p *Power) Base() Node     { return p.base }
func (p *Power) Exponent() Node { return p.exponent }

func (p *Power) Precedence() Precedence { return ExpPrecedence }

func (p *Power) String() string {
	return wrap(p.base, AtomicPrecedence) + "^" + wrap(p.exponent, AtomicPrecedence)
}

func (p *Power) LaTeX() string {
	return wrapLaTeX(p.base, AtomicPrecedence) + "^{" + p.exponent.LaTeX() + "}"
}

func (p *Power) Value(b Bindings) Value {
	base, ok1 := p.base.Value(b).Float64()
	exp, ok2 := p.exponent.Value(b).Float64()
	if !ok1 || !ok2 {
		return Undefined()
	}
	return Defined(math.Pow(base, exp))
}

func (p *Power) derivative(variable string) (Node, error) {
	db, err := p.base.derivative(variable)
	if err != nil {
		return nil, err
	}
	de, err := p.exponent.derivative(variable)
	if err != nil {
		return nil, err
	}

	zb, ze := isConstantValue(db, 0), isConstantValue(de, 0)
	if zb && ze {
		return Zero(), nil
	}

	// k * base^(k-1) * base'
	if k, ok := asConstant(p.exponent); ok {
		out := MultiplyOf(NewConstant(k.value), NewPower(p.base.clone(), NewConstant(k.value-1)), db)
		return out, nil
	}
	if c, ok := asConstant(p.base); ok {
		// e^u: u' * e^u
		if c.value == math.E {
			return MultiplyOf(de, p.clone()), nil
		}
		// c^u: ln(c) * c^u * u'
		return MultiplyOf(Log(c.clone()), p.clone(), de), nil
	}

	// u^v: v * u^(v-1) * u' + u^v * ln(u) * v'
	// Zero terms are omitted: log(u) is undefined for u < 0.
	sum := NewAdd()
	if !zb {
		sum.AddTerm(MultiplyOf(p.exponent.clone(), NewPower(p.base.clone(), Difference(p.exponent.clone(), One())), db), 1)
	}
	if !ze {
		sum.AddTerm(MultiplyOf(p.clone(), Log(p.base.clone()), de), 1)
	}
	return sum, nil
}

func (p *Power) Simplify() Node {
	if c, ok := foldNumeric(p); ok {
		return c
	}
	base := p.base.Simplify()
	exp := p.exponent.Simplify()

	if k, ok := asConstant(exp); ok {
		switch k.value {
		case 0:
			return One()
		case 1:
			return base
		}
	}
	if c, ok := asConstant(base); ok {
		switch {
		case c.value == 1:
			return One()
		case c.value == 0:
			// 0^0 and 0^negative are left alone.
			if k, ok := asConstant(exp); !ok || k.value > 0 {
				return Zero()
			}
		}
	}
	if k, ok := asConstant(exp); ok {
		m := &Multiply{factors: []Node{base}, exponents: []float64{k.value}}
		return m.Simplify()
	}
	return &Power{base: base, exponent: exp}
}

func (p *Power) FreeVariables() []*Variable { return freeVariablesOf(p.base, p.exponent) }
func (p *Power) Children() []Node           { return []Node{p.base, p.exponent} }
func (p *Power) NumChildren() int           { return 2 }
func (p *Power) IsValidChild() bool         { return true }
func (p *Power) clone() Node                { return &Power{base: p.base.clone(), exponent: p.exponent.clone()} }

func (p *Power) Equal(other Node) bool {
	o, ok := other.(*Power)
	return ok && p.base.Equal(o.base) && p.exponent.Equal(o.exponent)
}

func (p *Power) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exponent.toJSON()}
}
