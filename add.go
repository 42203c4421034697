package functree

import (
	"math"
	"strings"
)

// ============================================================
// Add — weighted sum of terms
// ============================================================

// Add is a sum whose i-th term contributes coeffs[i] * terms[i]. When the
// first term is a Constant it holds the accumulated constant summand, with
// coefficient 1.
type Add struct {
	terms  []Node
	coeffs []float64
}

func NewAdd() *Add { return &Add{} }

// AddOf returns the sum of terms, each with coefficient 1.
func AddOf(terms ...Node) *Add {
	a := NewAdd()
	for _, t := range terms {
		a.AddTerm(t, 1)
	}
	return a
}

// Difference returns a - b.
func Difference(a, b Node) *Add {
	s := NewAdd()
	s.AddTerm(a, 1)
	s.AddTerm(b, -1)
	return s
}

// Negate returns -n.
func Negate(n Node) *Add {
	s := NewAdd()
	s.AddTerm(n, -1)
	return s
}

// AddTerm appends coeff*t. Nested sums are flattened and constants are folded
// into the leading constant slot. A nil or invalid child is ignored.
// AddTerm must not be called once the Add is shared.
func (a *Add) AddTerm(t Node, coeff float64) {
	if !validChild(t) {
		return
	}
	switch v := t.(type) {
	case *Constant:
		a.addConstant(v, coeff)
		return
	case *Add:
		for i, c := range v.terms {
			a.AddTerm(c.clone(), coeff*v.coeffs[i])
		}
		return
	}
	a.terms = append(a.terms, t)
	a.coeffs = append(a.coeffs, coeff)
}

func (a *Add) addConstant(c *Constant, coeff float64) {
	if len(a.terms) > 0 {
		if lead, ok := asConstant(a.terms[0]); ok {
			acc := accumulator{v: lead.value}
			acc.add(coeff * c.value)
			a.terms[0] = acc.build()
			return
		}
	}
	if coeff*c.value == 0 {
		return
	}
	lead := c.clone().(*Constant)
	if coeff != 1 {
		lead = canonicalConstant(coeff * c.value)
	}
	a.terms = append([]Node{lead}, a.terms...)
	a.coeffs = append([]float64{1}, a.coeffs...)
}

func (a *Add) Coefficients() []float64 {
	out := make([]float64, len(a.coeffs))
	copy(out, a.coeffs)
	return out
}

func (a *Add) Precedence() Precedence {
	switch {
	case len(a.terms) == 0:
		return AtomicPrecedence
	case len(a.terms) > 1:
		return AddPrecedence
	}
	if _, ok := asConstant(a.terms[0]); ok {
		return a.terms[0].Precedence()
	}
	switch a.coeffs[0] {
	case 1:
		return a.terms[0].Precedence()
	case -1:
		return NegPrecedence
	}
	return MultPrecedence
}

// termParts returns the sign and unsigned printed form of the i-th term.
func (a *Add) termParts(i int, str func(Node) string, mul string) (bool, string) {
	t, coeff := a.terms[i], a.coeffs[i]
	if c, ok := asConstant(t); ok && coeff == 1 {
		if c.label != "" || c.value >= 0 {
			return false, str(c)
		}
		return true, str(NewConstant(-c.value))
	}
	neg := coeff < 0
	m := math.Abs(coeff)
	if m == 1 {
		return neg, str(t)
	}
	return neg, formatNumber(m) + mul + str(t)
}

func (a *Add) render(str func(Node) string, mul string) string {
	if len(a.terms) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i := range a.terms {
		neg, body := a.termParts(i, str, mul)
		switch {
		case i == 0 && neg:
			sb.WriteString("-")
		case i > 0 && neg:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(body)
	}
	return sb.String()
}

func (a *Add) String() string {
	return a.render(func(n Node) string { return wrap(n, MultPrecedence) }, "*")
}

func (a *Add) LaTeX() string {
	return a.render(func(n Node) string { return wrapLaTeX(n, MultPrecedence) }, " ")
}

func (a *Add) Value(b Bindings) Value {
	sum := 0.0
	for i, t := range a.terms {
		v, ok := t.Value(b).Float64()
		if !ok {
			return Undefined()
		}
		sum += a.coeffs[i] * v
	}
	return Defined(sum)
}

func (a *Add) derivative(variable string) (Node, error) {
	out := NewAdd()
	for i, t := range a.terms {
		if _, ok := asConstant(t); ok {
			continue
		}
		d, err := t.derivative(variable)
		if err != nil {
			return nil, err
		}
		if isConstantValue(d, 0) {
			continue
		}
		out.AddTerm(d, a.coeffs[i])
	}
	if len(out.terms) == 0 {
		return Zero(), nil
	}
	return out, nil
}

func (a *Add) Simplify() Node {
	if c, ok := foldNumeric(a); ok {
		return c
	}
	var acc accumulator
	var groups []weighted
	var collect func(n Node, coeff float64)
	collect = func(n Node, coeff float64) {
		switch v := n.(type) {
		case *Constant:
			acc.add(coeff * v.value)
			return
		case *Add:
			for i, t := range v.terms {
				collect(t, coeff*v.coeffs[i])
			}
			return
		}
		groups = collectLike(groups, n, coeff)
	}
	for i, t := range a.terms {
		collect(t.Simplify(), a.coeffs[i])
	}

	out := NewAdd()
	if acc.v != 0 {
		out.terms = append(out.terms, acc.build())
		out.coeffs = append(out.coeffs, 1)
	}
	for _, g := range groups {
		if g.weight == 0 {
			continue
		}
		out.terms = append(out.terms, g.node)
		out.coeffs = append(out.coeffs, g.weight)
	}
	switch {
	case len(out.terms) == 0:
		return Zero()
	case len(out.terms) == 1 && out.coeffs[0] == 1:
		return out.terms[0]
	}
	return out
}

func (a *Add) FreeVariables() []*Variable { return freeVariablesOf(a.terms...) }
func (a *Add) Children() []Node           { return copyNodes(a.terms) }
func (a *Add) NumChildren() int           { return len(a.terms) }
func (a *Add) IsValidChild() bool         { return true }

func (a *Add) Equal(other Node) bool {
	o, ok := other.(*Add)
	return ok && equalWeights(a.coeffs, o.coeffs) && equalAll(a.terms, o.terms)
}

func (a *Add) clone() Node {
	return &Add{terms: cloneAll(a.terms), coeffs: a.Coefficients()}
}

func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts, "coeffs": a.Coefficients()}
}

// weighted pairs a node with its coefficient or exponent during collection.
type weighted struct {
	node   Node
	weight float64
}

func collectLike(groups []weighted, n Node, w float64) []weighted {
	for i := range groups {
		if groups[i].node.Equal(n) {
			groups[i].weight += w
			return groups
		}
	}
	return append(groups, weighted{node: n, weight: w})
}
