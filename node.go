// Package functree represents mathematical expressions as trees and operates on them.
//
// Design goals:
//   - Trees are built bottom-up and are read-only once shared
//   - Evaluation returns an explicit optional Value instead of failing
//   - Differentiation is structural and driven by the function registry
//   - Simplification is a single rewrite pass; FullSimplify is bounded
//   - JSON and LaTeX output for tool and agent integrations
package functree

import (
	"strconv"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Precedence describes how tightly a node's printed form binds. A child is
// parenthesized when its precedence is lower than the slot it is printed in.
type Precedence int

const (
	AddPrecedence Precedence = iota
	MultPrecedence
	NegPrecedence
	ExpPrecedence
	AtomicPrecedence
)

// Node is an element of an expression tree.
type Node interface {
	Precedence() Precedence
	Value(b Bindings) Value
	Simplify() Node
	String() string
	LaTeX() string

	// FreeVariables lists the variables in depth-first order. The result
	// may contain duplicates.
	FreeVariables() []*Variable

	// Children returns a copy of the node's child slice.
	Children() []Node
	NumChildren() int

	// IsValidChild reports whether the node may be inserted under a parent.
	IsValidChild() bool
	Equal(other Node) bool

	derivative(variable string) (Node, error)
	clone() Node
	toJSON() map[string]interface{}
}

func validChild(n Node) bool { return n != nil && n.IsValidChild() }

func formatNumber(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func wrap(n Node, min Precedence) string {
	if n.Precedence() < min {
		return "(" + n.String() + ")"
	}
	return n.String()
}

func wrapLaTeX(n Node, min Precedence) string {
	if n.Precedence() < min {
		return "\\left(" + n.LaTeX() + "\\right)"
	}
	return n.LaTeX()
}

func cloneAll(ns []Node) []Node {
	out := make([]Node, len(ns))
	for i, n := range ns {
		out[i] = n.clone()
	}
	return out
}

func copyNodes(ns []Node) []Node {
	out := make([]Node, len(ns))
	copy(out, ns)
	return out
}

func freeVariablesOf(ns ...Node) []*Variable {
	var out []*Variable
	for _, n := range ns {
		out = append(out, n.FreeVariables()...)
	}
	return out
}

func equalAll(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func equalWeights(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func joinStrings(ns []Node, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.String()
	}
	return strings.Join(parts, sep)
}

func joinLaTeX(ns []Node, sep string) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = n.LaTeX()
	}
	return strings.Join(parts, sep)
}

// VariableNames returns the distinct free variable names of n in first-seen order.
func VariableNames(n Node) []string {
	seen := map[string]bool{}
	var names []string
	for _, v := range n.FreeVariables() {
		if !seen[v.name] {
			seen[v.name] = true
			names = append(names, v.name)
		}
	}
	return names
}
