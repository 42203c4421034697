package functree

import (
	"math"
	"sort"
	"strings"
)

// ============================================================
// Named-function registry
// ============================================================

// FunctionKind identifies a named unary function.
type FunctionKind int

const (
	FuncNone FunctionKind = iota
	FuncSin
	FuncCos
	FuncTan
	FuncSec
	FuncCsc
	FuncCot
	FuncAsin
	FuncAcos
	FuncAtan
	FuncSinh
	FuncCosh
	FuncTanh
	FuncAsinh
	FuncAcosh
	FuncAtanh
	FuncExp
	FuncLog
	FuncLog10
	FuncSqrt
	FuncAbs
	FuncSign
	FuncFloor
	FuncCeil
)

// FunctionInfo is the metadata for one function kind.
//
// Derivative names the function whose application to the argument is the
// outer derivative; the chain rule multiplies it by the argument's derivative.
// Kinds without one carry a direct rule instead.
//
// Inverse names the kind g with f(g(x)) == x wherever g is defined, when
// CancelsInverse is set. Simplify uses it to drop the pair.
type FunctionInfo struct {
	Name           string
	Derivative     FunctionKind
	Inverse        FunctionKind
	CancelsInverse bool

	eval   func(float64) float64
	derive func(arg Node) Node
	latex  string
}

var registry map[FunctionKind]FunctionInfo

var aliases = map[string]FunctionKind{
	"ln":     FuncLog,
	"arcsin": FuncAsin,
	"arccos": FuncAcos,
	"arctan": FuncAtan,
}

func init() {
	square := func(n Node) Node { return NewPower(n, NewConstant(2)) }
	registry = map[FunctionKind]FunctionInfo{
		FuncSin: {Name: "sin", Derivative: FuncCos, Inverse: FuncAsin, CancelsInverse: true, eval: math.Sin, latex: `\sin`},
		FuncCos: {Name: "cos", Inverse: FuncAcos, CancelsInverse: true, eval: math.Cos, latex: `\cos`,
			derive: func(x Node) Node { return Negate(Sin(x)) }},
		FuncTan: {Name: "tan", Inverse: FuncAtan, CancelsInverse: true, eval: math.Tan, latex: `\tan`,
			derive: func(x Node) Node { return square(Apply(FuncSec, x)) }},
		FuncSec: {Name: "sec", eval: func(x float64) float64 { return 1 / math.Cos(x) }, latex: `\sec`,
			derive: func(x Node) Node { return MultiplyOf(Apply(FuncSec, x), Tan(x.clone())) }},
		FuncCsc: {Name: "csc", eval: func(x float64) float64 { return 1 / math.Sin(x) }, latex: `\csc`,
			derive: func(x Node) Node { return Negate(MultiplyOf(Apply(FuncCsc, x), Apply(FuncCot, x.clone()))) }},
		FuncCot: {Name: "cot", eval: func(x float64) float64 { return 1 / math.Tan(x) }, latex: `\cot`,
			derive: func(x Node) Node { return Negate(square(Apply(FuncCsc, x))) }},
		FuncAsin: {Name: "asin", Inverse: FuncSin, eval: math.Asin, latex: `\arcsin`,
			derive: func(x Node) Node { return NewPower(Difference(One(), square(x)), NewConstant(-0.5)) }},
		FuncAcos: {Name: "acos", Inverse: FuncCos, eval: math.Acos, latex: `\arccos`,
			derive: func(x Node) Node { return Negate(NewPower(Difference(One(), square(x)), NewConstant(-0.5))) }},
		FuncAtan: {Name: "atan", Inverse: FuncTan, eval: math.Atan, latex: `\arctan`,
			derive: func(x Node) Node { return NewPower(AddOf(One(), square(x)), NewConstant(-1)) }},
		FuncSinh: {Name: "sinh", Derivative: FuncCosh, Inverse: FuncAsinh, CancelsInverse: true, eval: math.Sinh, latex: `\sinh`},
		FuncCosh: {Name: "cosh", Derivative: FuncSinh, Inverse: FuncAcosh, CancelsInverse: true, eval: math.Cosh, latex: `\cosh`},
		FuncTanh: {Name: "tanh", Inverse: FuncAtanh, CancelsInverse: true, eval: math.Tanh, latex: `\tanh`,
			derive: func(x Node) Node { return NewPower(Cosh(x), NewConstant(-2)) }},
		FuncAsinh: {Name: "asinh", Inverse: FuncSinh, CancelsInverse: true, eval: math.Asinh, latex: `\operatorname{arsinh}`,
			derive: func(x Node) Node { return NewPower(AddOf(square(x), One()), NewConstant(-0.5)) }},
		FuncAcosh: {Name: "acosh", Inverse: FuncCosh, eval: math.Acosh, latex: `\operatorname{arcosh}`,
			derive: func(x Node) Node { return NewPower(Difference(square(x), One()), NewConstant(-0.5)) }},
		FuncAtanh: {Name: "atanh", Inverse: FuncTanh, CancelsInverse: true, eval: math.Atanh, latex: `\operatorname{artanh}`,
			derive: func(x Node) Node { return NewPower(Difference(One(), square(x)), NewConstant(-1)) }},
		FuncExp: {Name: "exp", Derivative: FuncExp, Inverse: FuncLog, CancelsInverse: true, eval: math.Exp, latex: `\exp`},
		FuncLog: {Name: "log", Inverse: FuncExp, CancelsInverse: true, eval: math.Log, latex: `\ln`,
			derive: func(x Node) Node { return NewPower(x, NewConstant(-1)) }},
		FuncLog10: {Name: "log10", eval: math.Log10, latex: `\log_{10}`,
			derive: func(x Node) Node { return MultiplyOf(NewConstant(1/math.Ln10), NewPower(x, NewConstant(-1))) }},
		FuncSqrt: {Name: "sqrt", eval: math.Sqrt, latex: `\sqrt`,
			derive: func(x Node) Node { return MultiplyOf(NewConstant(0.5), NewPower(x, NewConstant(-0.5))) }},
		FuncAbs:   {Name: "abs", Derivative: FuncSign, eval: math.Abs},
		FuncSign:  {Name: "sign", eval: sign, latex: `\operatorname{sign}`, derive: func(Node) Node { return Zero() }},
		FuncFloor: {Name: "floor", eval: math.Floor, derive: func(Node) Node { return Zero() }},
		FuncCeil:  {Name: "ceil", eval: math.Ceil, derive: func(Node) Node { return Zero() }},
	}
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return x
}

// Info returns the registry entry for k.
func (k FunctionKind) Info() (FunctionInfo, bool) {
	info, ok := registry[k]
	return info, ok
}

func (k FunctionKind) String() string {
	if info, ok := registry[k]; ok {
		return info.Name
	}
	return "none"
}

// LookupFunction resolves a display name (or alias such as "ln") to its kind.
func LookupFunction(name string) (FunctionKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := aliases[name]; ok {
		return k, true
	}
	for k, info := range registry {
		if info.Name == name {
			return k, true
		}
	}
	return FuncNone, false
}

// Kinds lists the registered function kinds in declaration order.
func Kinds() []FunctionKind {
	out := make([]FunctionKind, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
