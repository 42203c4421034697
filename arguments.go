package functree

import "fmt"

// ============================================================
// ArgumentList and DerivativeOp
// ============================================================

// ArgumentList is the ordered input of a validated factory. It is never a
// legal child: inserting it under Add or Multiply is a no-op.
type ArgumentList struct {
	args []Node
}

func Arguments(args ...Node) *ArgumentList { return &ArgumentList{args: args} }

func (l *ArgumentList) Precedence() Precedence     { return AtomicPrecedence }
func (l *ArgumentList) Value(Bindings) Value       { return Undefined() }
func (l *ArgumentList) String() string             { return "(" + joinStrings(l.args, ", ") + ")" }
func (l *ArgumentList) LaTeX() string              { return "\\left(" + joinLaTeX(l.args, ", ") + "\\right)" }
func (l *ArgumentList) FreeVariables() []*Variable { return freeVariablesOf(l.args...) }
func (l *ArgumentList) Children() []Node           { return copyNodes(l.args) }
func (l *ArgumentList) NumChildren() int           { return len(l.args) }
func (l *ArgumentList) IsValidChild() bool         { return false }
func (l *ArgumentList) clone() Node                { return &ArgumentList{args: cloneAll(l.args)} }

func (l *ArgumentList) Simplify() Node {
	out := &ArgumentList{args: make([]Node, len(l.args))}
	for i, a := range l.args {
		out.args[i] = a.Simplify()
	}
	return out
}

func (l *ArgumentList) derivative(string) (Node, error) {
	return nil, fmt.Errorf("derivative of argument list: %w", ErrUnsupported)
}

func (l *ArgumentList) Equal(other Node) bool {
	o, ok := other.(*ArgumentList)
	return ok && equalAll(l.args, o.args)
}

func (l *ArgumentList) toJSON() map[string]interface{} {
	as := make([]map[string]interface{}, len(l.args))
	for i, a := range l.args {
		as[i] = a.toJSON()
	}
	return map[string]interface{}{"type": "args", "args": as}
}

// DerivativeOp is an unevaluated derivative of body with respect to a
// variable. Simplify expands it.
type DerivativeOp struct {
	body     Node
	variable *Variable
}

func (d *DerivativeOp) Body() Node          { return d.body }
func (d *DerivativeOp) Variable() *Variable { return d.variable }

func (d *DerivativeOp) expand() (Node, error) { return d.body.derivative(d.variable.name) }

func (d *DerivativeOp) Precedence() Precedence { return AtomicPrecedence }

func (d *DerivativeOp) String() string {
	return fmt.Sprintf("derivative(%s, %s)", d.body, d.variable.name)
}

func (d *DerivativeOp) LaTeX() string {
	return fmt.Sprintf("\\frac{\\partial}{\\partial %s}%s", d.variable.name, wrapLaTeX(d.body, AtomicPrecedence))
}

func (d *DerivativeOp) Value(b Bindings) Value {
	n, err := d.expand()
	if err != nil {
		return Undefined()
	}
	return n.Value(b)
}

func (d *DerivativeOp) derivative(variable string) (Node, error) {
	n, err := d.expand()
	if err != nil {
		return nil, err
	}
	return n.derivative(variable)
}

// Simplify expands the operator. When the body has no derivative rule the
// operator is kept with a simplified body.
func (d *DerivativeOp) Simplify() Node {
	n, err := d.expand()
	if err != nil {
		return &DerivativeOp{body: d.body.Simplify(), variable: d.variable}
	}
	return n.Simplify()
}

func (d *DerivativeOp) FreeVariables() []*Variable { return d.body.FreeVariables() }
func (d *DerivativeOp) Children() []Node           { return []Node{d.variable, d.body} }
func (d *DerivativeOp) NumChildren() int           { return 2 }
func (d *DerivativeOp) IsValidChild() bool         { return true }

func (d *DerivativeOp) clone() Node {
	return &DerivativeOp{body: d.body.clone(), variable: d.variable.clone().(*Variable)}
}

func (d *DerivativeOp) Equal(other Node) bool {
	o, ok := other.(*DerivativeOp)
	return ok && d.variable.Equal(o.variable) && d.body.Equal(o.body)
}

func (d *DerivativeOp) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "derivative", "var": d.variable.name, "body": d.body.toJSON()}
}
