package functree

import (
	"fmt"
	"math"
	"strings"
)

// ============================================================
// Domain and Piecewise — interval-restricted expressions
// ============================================================

// Interval is a numeric range with independently open or closed ends.
type Interval struct {
	Lower, Upper         float64
	LowerOpen, UpperOpen bool
}

func Closed(lower, upper float64) Interval { return Interval{Lower: lower, Upper: upper} }

func Open(lower, upper float64) Interval {
	return Interval{Lower: lower, Upper: upper, LowerOpen: true, UpperOpen: true}
}

func (iv Interval) Contains(x float64) bool {
	if x < iv.Lower || (iv.LowerOpen && x == iv.Lower) {
		return false
	}
	if x > iv.Upper || (iv.UpperOpen && x == iv.Upper) {
		return false
	}
	return true
}

func (iv Interval) String() string {
	open, close := "[", "]"
	if iv.LowerOpen {
		open = "("
	}
	if iv.UpperOpen {
		close = ")"
	}
	return open + formatNumber(iv.Lower) + ", " + formatNumber(iv.Upper) + close
}

func (iv Interval) latex() string {
	bound := func(v float64) string {
		switch {
		case math.IsInf(v, 1):
			return "\\infty"
		case math.IsInf(v, -1):
			return "-\\infty"
		}
		return formatNumber(v)
	}
	s := iv.String()
	return s[:1] + bound(iv.Lower) + ", " + bound(iv.Upper) + s[len(s)-1:]
}

// Domain is arg restricted to the points where variable lies in interval.
// Outside the interval, or when variable is unbound, it is undefined.
type Domain struct {
	arg      Node
	variable string
	interval Interval
}

func Restrict(arg Node, variable string, iv Interval) *Domain {
	return &Domain{arg: arg, variable: variable, interval: iv}
}

func (d *Domain) Argument() Node     { return d.arg }
func (d *Domain) Variable() string   { return d.variable }
func (d *Domain) Interval() Interval { return d.interval }

func (d *Domain) Precedence() Precedence { return AtomicPrecedence }

func (d *Domain) String() string {
	return fmt.Sprintf("domain(%s, %s in %s)", d.arg, d.variable, d.interval)
}

func (d *Domain) LaTeX() string {
	return fmt.Sprintf("\\left.%s\\right|_{%s \\in %s}", d.arg.LaTeX(), d.variable, d.interval.latex())
}

func (d *Domain) Value(b Bindings) Value {
	x, ok := b[d.variable]
	if !ok || !d.interval.Contains(x) {
		return Undefined()
	}
	return d.arg.Value(b)
}

func (d *Domain) derivative(variable string) (Node, error) {
	if len(d.arg.FreeVariables()) == 0 {
		return Zero(), nil
	}
	return d.restrictedDerivative(variable)
}

func (d *Domain) restrictedDerivative(variable string) (*Domain, error) {
	da, err := d.arg.derivative(variable)
	if err != nil {
		return nil, err
	}
	return Restrict(da, d.variable, d.interval), nil
}

func (d *Domain) Simplify() Node { return d.simplified() }

func (d *Domain) simplified() *Domain {
	return Restrict(d.arg.Simplify(), d.variable, d.interval)
}

// FreeVariables lists the restricted variable first, then the argument's.
func (d *Domain) FreeVariables() []*Variable {
	return append([]*Variable{NewVariable(d.variable)}, d.arg.FreeVariables()...)
}

func (d *Domain) Children() []Node   { return []Node{d.arg} }
func (d *Domain) NumChildren() int   { return 1 }
func (d *Domain) IsValidChild() bool { return true }
func (d *Domain) clone() Node        { return Restrict(d.arg.clone(), d.variable, d.interval) }

func (d *Domain) Equal(other Node) bool {
	o, ok := other.(*Domain)
	return ok && d.variable == o.variable && d.interval == o.interval && d.arg.Equal(o.arg)
}

func (d *Domain) toJSON() map[string]interface{} {
	return map[string]interface{}{
		"type":       "domain",
		"arg":        d.arg.toJSON(),
		"var":        d.variable,
		"lower":      d.interval.Lower,
		"upper":      d.interval.Upper,
		"lower_open": d.interval.LowerOpen,
		"upper_open": d.interval.UpperOpen,
	}
}

// Piecewise is a sum of Domain pieces in which pieces that are undefined at
// a point contribute nothing. It is undefined where no piece is defined.
type Piecewise struct {
	pieces []*Domain
}

// PiecewiseOf returns the piecewise function made of pieces. Nil pieces are ignored.
func PiecewiseOf(pieces ...*Domain) *Piecewise {
	p := &Piecewise{}
	for _, d := range pieces {
		if d != nil {
			p.pieces = append(p.pieces, d)
		}
	}
	return p
}

func (p *Piecewise) Pieces() []*Domain {
	out := make([]*Domain, len(p.pieces))
	copy(out, p.pieces)
	return out
}

func (p *Piecewise) Precedence() Precedence { return AtomicPrecedence }

func (p *Piecewise) String() string {
	parts := make([]string, len(p.pieces))
	for i, d := range p.pieces {
		parts[i] = d.String()
	}
	return "piecewise(" + strings.Join(parts, "; ") + ")"
}

func (p *Piecewise) LaTeX() string {
	rows := make([]string, len(p.pieces))
	for i, d := range p.pieces {
		rows[i] = d.arg.LaTeX() + " & " + d.variable + " \\in " + d.interval.latex()
	}
	return "\\begin{cases}" + strings.Join(rows, " \\\\ ") + "\\end{cases}"
}

func (p *Piecewise) Value(b Bindings) Value {
	sum, found := 0.0, false
	for _, d := range p.pieces {
		if v, ok := d.Value(b).Float64(); ok {
			sum += v
			found = true
		}
	}
	if !found {
		return Undefined()
	}
	return Defined(sum)
}

func (p *Piecewise) derivative(variable string) (Node, error) {
	out := &Piecewise{}
	for _, d := range p.pieces {
		dd, err := d.restrictedDerivative(variable)
		if err != nil {
			return nil, err
		}
		out.pieces = append(out.pieces, dd)
	}
	return out, nil
}

func (p *Piecewise) Simplify() Node {
	out := &Piecewise{}
	for _, d := range p.pieces {
		out.pieces = append(out.pieces, d.simplified())
	}
	return out
}

func (p *Piecewise) FreeVariables() []*Variable {
	var out []*Variable
	for _, d := range p.pieces {
		out = append(out, d.FreeVariables()...)
	}
	return out
}

func (p *Piecewise) Children() []Node {
	out := make([]Node, len(p.pieces))
	for i, d := range p.pieces {
		out[i] = d
	}
	return out
}

func (p *Piecewise) NumChildren() int   { return len(p.pieces) }
func (p *Piecewise) IsValidChild() bool { return true }

func (p *Piecewise) Equal(other Node) bool {
	o, ok := other.(*Piecewise)
	if !ok || len(p.pieces) != len(o.pieces) {
		return false
	}
	for i := range p.pieces {
		if !p.pieces[i].Equal(o.pieces[i]) {
			return false
		}
	}
	return true
}

func (p *Piecewise) clone() Node {
	out := &Piecewise{}
	for _, d := range p.pieces {
		out.pieces = append(out.pieces, d.clone().(*Domain))
	}
	return out
}

func (p *Piecewise) toJSON() map[string]interface{} {
	ps := make([]map[string]interface{}, len(p.pieces))
	for i, d := range p.pieces {
		ps[i] = d.toJSON()
	}
	return map[string]interface{}{"type": "piecewise", "pieces": ps}
}
