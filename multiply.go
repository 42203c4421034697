package functree

import (
	"math"
	"strings"
)

// ============================================================
// Multiply — product of factors raised to exponents
// ============================================================

// Multiply is a product whose i-th factor contributes factors[i]^exponents[i].
// When the first factor is a Constant it holds the accumulated constant
// factor, with exponent 1.
type Multiply struct {
	factors   []Node
	exponents []float64
}

func NewMultiply() *Multiply { return &Multiply{} }

// MultiplyOf returns the product of factors, each with exponent 1.
func MultiplyOf(factors ...Node) *Multiply {
	m := NewMultiply()
	for _, f := range factors {
		m.MultiplyBy(f, 1)
	}
	return m
}

// Quotient returns num / den.
func Quotient(num, den Node) *Multiply {
	m := NewMultiply()
	m.MultiplyBy(num, 1)
	m.MultiplyBy(den, -1)
	return m
}

// MultiplyBy appends f^exp. Nested products are flattened and constants are
// folded into the leading constant slot. A nil or invalid child is ignored.
// MultiplyBy must not be called once the Multiply is shared.
func (m *Multiply) MultiplyBy(f Node, exp float64) {
	if !validChild(f) {
		return
	}
	switch v := f.(type) {
	case *Constant:
		m.multiplyConstant(v, exp)
		return
	case *Multiply:
		for i, c := range v.factors {
			m.MultiplyBy(c.clone(), exp*v.exponents[i])
		}
		return
	}
	m.factors = append(m.factors, f)
	m.exponents = append(m.exponents, exp)
}

func (m *Multiply) multiplyConstant(c *Constant, exp float64) {
	if len(m.factors) > 0 {
		if lead, ok := asConstant(m.factors[0]); ok {
			acc := accumulator{v: lead.value}
			acc.multiplyBy(math.Pow(c.value, exp))
			m.factors[0] = acc.build()
			return
		}
	}
	lead := c.clone().(*Constant)
	if exp != 1 {
		lead = canonicalConstant(math.Pow(c.value, exp))
	}
	m.factors = append([]Node{lead}, m.factors...)
	m.exponents = append([]float64{1}, m.exponents...)
}

func (m *Multiply) Exponents() []float64 {
	out := make([]float64, len(m.exponents))
	copy(out, m.exponents)
	return out
}

func (m *Multiply) Precedence() Precedence {
	switch len(m.factors) {
	case 0:
		return AtomicPrecedence
	case 1:
		switch e := m.exponents[0]; {
		case e == 1:
			return m.factors[0].Precedence()
		case e > 0:
			return ExpPrecedence
		}
	}
	if c, ok := asConstant(m.factors[0]); ok && c.Precedence() == NegPrecedence {
		return NegPrecedence
	}
	return MultPrecedence
}

func (m *Multiply) render(
	str func(Node, Precedence) string,
	pow func(base, exp string) string,
	mul func(parts []string) string,
	div func(num, den string) string,
) string {
	var num, den []string
	for i, f := range m.factors {
		e := m.exponents[i]
		if c, ok := asConstant(f); ok && e == 1 {
			if i == 0 && c.value == 1 && c.label == "" && len(m.factors) > 1 {
				continue
			}
			num = append(num, str(f, NegPrecedence))
			continue
		}
		s := str(f, MultPrecedence)
		if math.Abs(e) != 1 {
			s = pow(str(f, AtomicPrecedence), formatNumber(math.Abs(e)))
		} else if e < 0 {
			s = str(f, ExpPrecedence)
		}
		if e < 0 {
			den = append(den, s)
		} else {
			num = append(num, s)
		}
	}
	out := "1"
	if len(num) > 0 {
		out = mul(num)
	}
	for _, d := range den {
		out = div(out, d)
	}
	return out
}

func (m *Multiply) String() string {
	return m.render(
		func(n Node, p Precedence) string { return wrap(n, p) },
		func(base, exp string) string { return base + "^" + exp },
		func(parts []string) string { return strings.Join(parts, "*") },
		func(num, den string) string { return num + "/" + den },
	)
}

func (m *Multiply) LaTeX() string {
	return m.render(
		func(n Node, p Precedence) string { return wrapLaTeX(n, p) },
		func(base, exp string) string { return base + "^{" + exp + "}" },
		func(parts []string) string { return strings.Join(parts, " ") },
		func(num, den string) string { return "\\frac{" + num + "}{" + den + "}" },
	)
}

func (m *Multiply) Value(b Bindings) Value {
	prod := 1.0
	for i, f := range m.factors {
		v, ok := f.Value(b).Float64()
		if !ok {
			return Undefined()
		}
		prod *= math.Pow(v, m.exponents[i])
	}
	return Defined(prod)
}

// derivative applies the generalized product rule:
// sum over i of p_i * f_i^(p_i-1) * f_i' * prod_{j != i} f_j^p_j.
func (m *Multiply) derivative(variable string) (Node, error) {
	sum := NewAdd()
	for i, f := range m.factors {
		if _, ok := asConstant(f); ok {
			continue
		}
		df, err := f.derivative(variable)
		if err != nil {
			return nil, err
		}
		if isConstantValue(df, 0) {
			continue
		}
		p := m.exponents[i]
		term := NewMultiply()
		if p != 1 {
			term.MultiplyBy(NewConstant(p), 1)
			term.MultiplyBy(f.clone(), p-1)
		}
		term.MultiplyBy(df, 1)
		for j, g := range m.factors {
			if j != i {
				term.MultiplyBy(g.clone(), m.exponents[j])
			}
		}
		sum.AddTerm(term, 1)
	}
	if len(sum.terms) == 0 {
		return Zero(), nil
	}
	return sum, nil
}

func (m *Multiply) Simplify() Node {
	if c, ok := foldNumeric(m); ok {
		return c
	}
	acc := accumulator{v: 1}
	var groups []weighted
	var collect func(n Node, exp float64)
	collect = func(n Node, exp float64) {
		switch v := n.(type) {
		case *Constant:
			if p := math.Pow(v.value, exp); !math.IsNaN(p) {
				acc.multiplyBy(p)
				return
			}
		case *Multiply:
			if !isInteger(exp) {
				break
			}
			for i, f := range v.factors {
				collect(f, exp*v.exponents[i])
			}
			return
		case *Add:
			if len(v.terms) == 1 {
				if _, isConst := asConstant(v.terms[0]); !isConst {
					if p := math.Pow(v.coeffs[0], exp); !math.IsNaN(p) {
						acc.multiplyBy(p)
						collect(v.terms[0], exp)
						return
					}
				}
			}
		case *Power:
			// (b^k)^e = b^(k*e) only holds for every real b when e is an integer.
			if k, ok := asConstant(v.exponent); ok && isInteger(exp) {
				collect(v.base, exp*k.value)
				return
			}
		}
		groups = collectLike(groups, n, exp)
	}
	for i, f := range m.factors {
		collect(f.Simplify(), m.exponents[i])
	}
	if acc.v == 0 {
		return Zero()
	}

	var live []weighted
	for _, g := range groups {
		if g.weight != 0 {
			live = append(live, g)
		}
	}
	if len(live) == 0 {
		return acc.build()
	}
	var rest Node
	if len(live) == 1 && live[0].weight == 1 {
		rest = live[0].node
	} else {
		p := NewMultiply()
		for _, g := range live {
			p.factors = append(p.factors, g.node)
			p.exponents = append(p.exponents, g.weight)
		}
		rest = p
	}
	if acc.v == 1 {
		return rest
	}
	// A coefficient times the remaining product is kept as a scaled term so
	// that sums can collect it.
	return &Add{terms: []Node{rest}, coeffs: []float64{acc.v}}
}

func (m *Multiply) FreeVariables() []*Variable { return freeVariablesOf(m.factors...) }
func (m *Multiply) Children() []Node           { return copyNodes(m.factors) }
func (m *Multiply) NumChildren() int           { return len(m.factors) }
func (m *Multiply) IsValidChild() bool         { return true }

func (m *Multiply) Equal(other Node) bool {
	o, ok := other.(*Multiply)
	return ok && equalWeights(m.exponents, o.exponents) && equalAll(m.factors, o.factors)
}

func (m *Multiply) clone() Node {
	return &Multiply{factors: cloneAll(m.factors), exponents: m.Exponents()}
}

func (m *Multiply) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs, "exponents": m.Exponents()}
}
