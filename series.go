package functree

import "fmt"

// ============================================================
// Series — finite indexed sum or product
// ============================================================

// SeriesKind selects the accumulation of a Series.
type SeriesKind int

const (
	SeriesSum SeriesKind = iota
	SeriesProduct
)

func (k SeriesKind) String() string {
	if k == SeriesProduct {
		return "product"
	}
	return "sum"
}

// MaxSeriesTerms bounds the number of body evaluations per Series.Value.
// Ranges needing more evaluate to undefined.
const MaxSeriesTerms = 1 << 20

// Series accumulates body for index = min + k*step, k = 0, 1, ... while
// index <= max. Reversed bounds are swapped. Indices are computed in floating
// point, so the number of terms for fractional steps or huge bounds can
// differ from (max-min)/step + 1; it never exceeds MaxSeriesTerms + 1.
type Series struct {
	kind           SeriesKind
	body           Node
	index          string
	min, max, step Node
}

func Sum(body Node, index string, min, max, step Node) *Series {
	return &Series{kind: SeriesSum, body: body, index: index, min: min, max: max, step: step}
}

func Product(body Node, index string, min, max, step Node) *Series {
	return &Series{kind: SeriesProduct, body: body, index: index, min: min, max: max, step: step}
}

func (s *Series) Kind() SeriesKind { return s.kind }
func (s *Series) Body() Node       { return s.body }
func (s *Series) Index() string    { return s.index }

func (s *Series) Precedence() Precedence { return AtomicPrecedence }

func (s *Series) String() string {
	return fmt.Sprintf("%s(%s, %s, %s, %s, %s)", s.kind, s.body, s.index, s.min, s.max, s.step)
}

func (s *Series) LaTeX() string {
	op := "\\sum"
	if s.kind == SeriesProduct {
		op = "\\prod"
	}
	bounds := fmt.Sprintf("%s_{%s=%s}^{%s}", op, s.index, s.min.LaTeX(), s.max.LaTeX())
	if !isConstantValue(s.step, 1) {
		bounds += "\\,[\\Delta " + s.index + "=" + s.step.LaTeX() + "]"
	}
	return bounds + wrapLaTeX(s.body, MultPrecedence)
}

func (s *Series) Value(b Bindings) Value {
	lo, ok1 := s.min.Value(b).Float64()
	hi, ok2 := s.max.Value(b).Float64()
	step, ok3 := s.step.Value(b).Float64()
	if !ok1 || !ok2 || !ok3 || !(step > 0) {
		return Undefined()
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if (hi-lo)/step > MaxSeriesTerms {
		return Undefined()
	}
	local := b.with(s.index, lo)
	acc := 0.0
	if s.kind == SeriesProduct {
		acc = 1
	}
	for k := 0; ; k++ {
		idx := lo + float64(k)*step
		if idx > hi {
			break
		}
		if k > MaxSeriesTerms {
			return Undefined()
		}
		local[s.index] = idx
		v, ok := s.body.Value(local).Float64()
		if !ok {
			return Undefined()
		}
		if s.kind == SeriesProduct {
			acc *= v
		} else {
			acc += v
		}
	}
	return Defined(acc)
}

// derivative differentiates the body of a sum over fixed bounds.
func (s *Series) derivative(variable string) (Node, error) {
	if variable == s.index || !s.bodyDependsOnFree() {
		return Zero(), nil
	}
	if s.kind == SeriesProduct {
		return nil, fmt.Errorf("derivative of product series: %w", ErrUnsupported)
	}
	db, err := s.body.derivative(variable)
	if err != nil {
		return nil, err
	}
	return &Series{kind: s.kind, body: db, index: s.index, min: s.min.clone(), max: s.max.clone(), step: s.step.clone()}, nil
}

func (s *Series) bodyDependsOnFree() bool {
	for _, v := range s.body.FreeVariables() {
		if v.name != s.index {
			return true
		}
	}
	return false
}

func (s *Series) Simplify() Node {
	if c, ok := foldNumeric(s); ok {
		return c
	}
	return &Series{
		kind:  s.kind,
		body:  s.body.Simplify(),
		index: s.index,
		min:   s.min.Simplify(),
		max:   s.max.Simplify(),
		step:  s.step.Simplify(),
	}
}

// FreeVariables returns the body's variables other than the index, followed
// by the variables of the bounds and step.
func (s *Series) FreeVariables() []*Variable {
	var out []*Variable
	for _, v := range s.body.FreeVariables() {
		if v.name != s.index {
			out = append(out, v)
		}
	}
	return append(out, freeVariablesOf(s.min, s.max, s.step)...)
}

func (s *Series) Children() []Node   { return []Node{s.body, s.min, s.max, s.step} }
func (s *Series) NumChildren() int   { return 4 }
func (s *Series) IsValidChild() bool { return true }

func (s *Series) Equal(other Node) bool {
	o, ok := other.(*Series)
	return ok && s.kind == o.kind && s.index == o.index &&
		s.body.Equal(o.body) && s.min.Equal(o.min) && s.max.Equal(o.max) && s.step.Equal(o.step)
}

func (s *Series) clone() Node {
	return &Series{kind: s.kind, body: s.body.clone(), index: s.index, min: s.min.clone(), max: s.max.clone(), step: s.step.clone()}
}

func (s *Series) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":  s.kind.String(),
		"body":  s.body.toJSON(),
		"index": s.index,
		"min":   s.min.toJSON(),
		"max":   s.max.toJSON(),
		"step":  s.step.toJSON(),
	}
}
