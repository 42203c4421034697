package functree

import (
	"fmt"
	"sort"
)

// ============================================================
// Root — variables versus parameters
// ============================================================

// Root wraps a tree with parameter values. Free variables of the tree that
// are not parameters are the Root's unknowns.
type Root struct {
	child  Node
	params Bindings
}

// NewRoot returns a Root over child. params is copied.
func NewRoot(child Node, params Bindings) *Root {
	return &Root{child: child, params: params.copy()}
}

func (r *Root) Child() Node { return r.child }

// Parameters returns a copy of the parameter bindings.
func (r *Root) Parameters() Bindings { return r.params.copy() }

// Variables returns the sorted, distinct unknowns of r.
func (r *Root) Variables() []string {
	var out []string
	for _, name := range VariableNames(r.child) {
		if _, isParam := r.params[name]; !isParam {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// WithParameter returns a copy of r with name bound to v.
func (r *Root) WithParameter(name string, v float64) *Root {
	return &Root{child: r.child, params: r.params.with(name, v)}
}

// WithoutParameter returns a copy of r in which name is an unknown again.
func (r *Root) WithoutParameter(name string) *Root {
	return &Root{child: r.child, params: r.params.without(name)}
}

// Value evaluates the child with the parameters merged over b. Parameters
// take precedence over caller bindings.
func (r *Root) Value(b Bindings) Value {
	merged := b.copy()
	for k, v := range r.params {
		merged[k] = v
	}
	return r.child.Value(merged)
}

// Univariate returns r as a function of its single unknown.
func (r *Root) Univariate() (func(float64) Value, error) {
	vars := r.Variables()
	if len(vars) != 1 {
		return nil, fmt.Errorf("%w: %d unknowns %v", ErrNotUnivariate, len(vars), vars)
	}
	name := vars[0]
	return func(x float64) Value { return r.Value(Bindings{name: x}) }, nil
}

// Multivariate returns r as a function of a coordinate vector whose entries
// are assigned to the unknowns in sorted order.
func (r *Root) Multivariate() *VectorFunc {
	return &VectorFunc{root: r, names: r.Variables()}
}

func (r *Root) Precedence() Precedence { return r.child.Precedence() }
func (r *Root) String() string         { return r.child.String() }
func (r *Root) LaTeX() string          { return r.child.LaTeX() }

func (r *Root) derivative(variable string) (Node, error) {
	if _, isParam := r.params[variable]; isParam {
		return Zero(), nil
	}
	d, err := r.child.derivative(variable)
	if err != nil {
		return nil, err
	}
	return &Root{child: d, params: r.params}, nil
}

func (r *Root) Simplify() Node { return &Root{child: r.child.Simplify(), params: r.params} }

// FreeVariables returns the child's free variables that are not parameters.
func (r *Root) FreeVariables() []*Variable {
	var out []*Variable
	for _, v := range r.child.FreeVariables() {
		if _, isParam := r.params[v.name]; !isParam {
			out = append(out, v)
		}
	}
	return out
}

func (r *Root) Children() []Node   { return []Node{r.child} }
func (r *Root) NumChildren() int   { return 1 }
func (r *Root) IsValidChild() bool { return false }
func (r *Root) clone() Node        { return &Root{child: r.child.clone(), params: r.params.copy()} }

func (r *Root) Equal(other Node) bool {
	o, ok := other.(*Root)
	if !ok || len(r.params) != len(o.params) || !r.child.Equal(o.child) {
		return false
	}
	for k, v := range r.params {
		if w, ok := o.params[k]; !ok || w != v {
			return false
		}
	}
	return true
}

func (r *Root) toJSON() map[string]interface{} {
	params := make(map[string]interface{}, len(r.params))
	for k, v := range r.params {
		params[k] = v
	}
	return map[string]interface{}{"type": "root", "child": r.child.toJSON(), "params": params}
}

// VectorFunc is the multi-input view of a Root.
type VectorFunc struct {
	root  *Root
	names []string
}

func (f *VectorFunc) Dim() int { return len(f.names) }

// Names returns the variable assigned to each coordinate.
func (f *VectorFunc) Names() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// At evaluates the function at coords. A coordinate count other than Dim is
// undefined.
func (f *VectorFunc) At(coords ...float64) Value {
	if len(coords) != len(f.names) {
		return Undefined()
	}
	b := make(Bindings, len(coords))
	for i, name := range f.names {
		b[name] = coords[i]
	}
	return f.root.Value(b)
}
