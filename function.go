package functree

import "fmt"

// ============================================================
// Function — named unary function application
// ============================================================

type Function struct {
	kind FunctionKind
	arg  Node
}

// Apply returns kind applied to arg.
func Apply(kind FunctionKind, arg Node) *Function { return &Function{kind: kind, arg: arg} }

func Sin(arg Node) *Function   { return Apply(FuncSin, arg) }
func Cos(arg Node) *Function   { return Apply(FuncCos, arg) }
func Tan(arg Node) *Function   { return Apply(FuncTan, arg) }
func Asin(arg Node) *Function  { return Apply(FuncAsin, arg) }
func Acos(arg Node) *Function  { return Apply(FuncAcos, arg) }
func Atan(arg Node) *Function  { return Apply(FuncAtan, arg) }
func Sinh(arg Node) *Function  { return Apply(FuncSinh, arg) }
func Cosh(arg Node) *Function  { return Apply(FuncCosh, arg) }
func Tanh(arg Node) *Function  { return Apply(FuncTanh, arg) }
func Exp(arg Node) *Function   { return Apply(FuncExp, arg) }
func Log(arg Node) *Function   { return Apply(FuncLog, arg) }
func Sqrt(arg Node) *Function  { return Apply(FuncSqrt, arg) }
func Abs(arg Node) *Function   { return Apply(FuncAbs, arg) }
func Floor(arg Node) *Function { return Apply(FuncFloor, arg) }
func Ceil(arg Node) *Function  { return Apply(FuncCeil, arg) }

func (f *Function) Kind() FunctionKind { return f.kind }
func (f *Function) Argument() Node     { return f.arg }

func (f *Function) Precedence() Precedence { return AtomicPrecedence }
func (f *Function) String() string         { return f.kind.String() + "(" + f.arg.String() + ")" }

func (f *Function) LaTeX() string {
	arg := f.arg.LaTeX()
	switch f.kind {
	case FuncAbs:
		return "\\left|" + arg + "\\right|"
	case FuncSqrt:
		return "\\sqrt{" + arg + "}"
	case FuncFloor:
		return "\\lfloor " + arg + " \\rfloor"
	case FuncCeil:
		return "\\lceil " + arg + " \\rceil"
	}
	info, _ := f.kind.Info()
	name := info.latex
	if name == "" {
		name = "\\operatorname{" + f.kind.String() + "}"
	}
	return name + "\\left(" + arg + "\\right)"
}

func (f *Function) Value(b Bindings) Value {
	info, ok := f.kind.Info()
	if !ok {
		return Undefined()
	}
	x, ok := f.arg.Value(b).Float64()
	if !ok {
		return Undefined()
	}
	return Defined(info.eval(x))
}

// derivative applies the chain rule: outer(arg) * arg'.
func (f *Function) derivative(variable string) (Node, error) {
	info, ok := f.kind.Info()
	if !ok {
		return nil, fmt.Errorf("derivative of unknown function %d: %w", f.kind, ErrUnsupported)
	}
	da, err := f.arg.derivative(variable)
	if err != nil {
		return nil, err
	}
	if isConstantValue(da, 0) {
		return Zero(), nil
	}
	var outer Node
	switch {
	case info.Derivative != FuncNone:
		outer = Apply(info.Derivative, f.arg.clone())
	case info.derive != nil:
		outer = info.derive(f.arg.clone())
	default:
		return nil, fmt.Errorf("derivative of %s: %w", info.Name, ErrUnsupported)
	}
	if isConstantValue(da, 1) {
		return outer, nil
	}
	return MultiplyOf(outer, da), nil
}

func (f *Function) Simplify() Node {
	if c, ok := foldNumeric(f); ok {
		return c
	}
	arg := f.arg.Simplify()
	if inner, ok := arg.(*Function); ok {
		if info, _ := f.kind.Info(); info.CancelsInverse && info.Inverse == inner.kind {
			return inner.arg
		}
	}
	return &Function{kind: f.kind, arg: arg}
}

func (f *Function) FreeVariables() []*Variable { return f.arg.FreeVariables() }
func (f *Function) Children() []Node           { return []Node{f.arg} }
func (f *Function) NumChildren() int           { return 1 }
func (f *Function) IsValidChild() bool         { return true }
func (f *Function) clone() Node                { return &Function{kind: f.kind, arg: f.arg.clone()} }

func (f *Function) Equal(other Node) bool {
	o, ok := other.(*Function)
	return ok && f.kind == o.kind && f.arg.Equal(o.arg)
}

func (f *Function) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.kind.String(), "arg": f.arg.toJSON()}
}
