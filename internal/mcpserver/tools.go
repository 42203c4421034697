package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/njchilds90/functree"
)

// Expression is a tree in the functree JSON encoding.
type Expression = map[string]any

// EvaluateInput represents the MCP tool input for evaluation.
type EvaluateInput struct {
	Expression Expression         `json:"expression" jsonschema:"expression tree in the functree JSON encoding"`
	Bindings   map[string]float64 `json:"bindings,omitempty" jsonschema:"variable values"`
}

// EvaluateResult is the evaluated value. Defined is false for missing
// bindings, points outside a domain, and NaN results. Value is zero when the
// result is undefined or infinite; Text always carries the printed result.
type EvaluateResult struct {
	Expression string  `json:"expression"`
	Defined    bool    `json:"defined"`
	Value      float64 `json:"value"`
	Text       string  `json:"text"`
}

// DerivativeInput represents the MCP tool input for differentiation.
type DerivativeInput struct {
	Expression Expression `json:"expression" jsonschema:"expression tree in the functree JSON encoding"`
	Variable   string     `json:"variable" jsonschema:"variable to differentiate with respect to"`
	Order      int        `json:"order,omitempty" jsonschema:"derivative order, default 1"`
}

// SimplifyInput represents the MCP tool input for simplification.
type SimplifyInput struct {
	Expression Expression `json:"expression" jsonschema:"expression tree in the functree JSON encoding"`
	Full       bool       `json:"full,omitempty" jsonschema:"repeat passes until a fixed point"`
}

// TreeResult is an expression in text, LaTeX and JSON form.
type TreeResult struct {
	Text  string     `json:"text"`
	LaTeX string     `json:"latex"`
	Tree  Expression `json:"tree"`
}

// FreeVariablesInput represents the MCP tool input for free variable listing.
type FreeVariablesInput struct {
	Expression Expression `json:"expression" jsonschema:"expression tree in the functree JSON encoding"`
	Parameters []string   `json:"parameters,omitempty" jsonschema:"names treated as parameters rather than variables"`
}

// FreeVariablesResult lists the sorted unknowns.
type FreeVariablesResult struct {
	Variables []string `json:"variables"`
}

// TabulateInput represents the MCP tool input for sampling.
type TabulateInput struct {
	Expression Expression         `json:"expression" jsonschema:"expression tree in the functree JSON encoding"`
	Variable   string             `json:"variable" jsonschema:"variable to sample"`
	From       float64            `json:"from" jsonschema:"first sample point"`
	To         float64            `json:"to" jsonschema:"last sample point, inclusive"`
	Step       float64            `json:"step" jsonschema:"distance between sample points"`
	Bindings   map[string]float64 `json:"bindings,omitempty" jsonschema:"values for the other variables"`
}

// SamplePoint is one sampled value, reported like EvaluateResult.
type SamplePoint struct {
	X       float64 `json:"x"`
	Defined bool    `json:"defined"`
	Y       float64 `json:"y"`
	Text    string  `json:"text"`
}

// TabulateResult holds the samples and a rendered table.
type TabulateResult struct {
	Samples []SamplePoint `json:"samples"`
	Table   string        `json:"table"`
}

func EvaluateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "evaluate",
		Description: "Evaluates an expression tree under variable bindings",
	}
}

func DerivativeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "derivative",
		Description: "Differentiates an expression tree and simplifies the result",
	}
}

func SimplifyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "simplify",
		Description: "Simplifies an expression tree",
	}
}

func FreeVariablesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "free_variables",
		Description: "Lists the unknowns of an expression tree",
	}
}

func TabulateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "tabulate",
		Description: "Samples an expression over a range of one variable",
	}
}

// EvaluateHandler evaluates an expression.
func EvaluateHandler() mcp.ToolHandlerFor[EvaluateInput, EvaluateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EvaluateInput) (*mcp.CallToolResult, EvaluateResult, error) {
		n, err := decode(input.Expression)
		if err != nil {
			return nil, EvaluateResult{}, err
		}
		v := n.Value(input.Bindings)
		f, ok := finite(v)
		return nil, EvaluateResult{Expression: n.String(), Defined: ok, Value: f, Text: v.String()}, nil
	}
}

// DerivativeHandler differentiates an expression.
func DerivativeHandler() mcp.ToolHandlerFor[DerivativeInput, TreeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DerivativeInput) (*mcp.CallToolResult, TreeResult, error) {
		n, err := decode(input.Expression)
		if err != nil {
			return nil, TreeResult{}, err
		}
		variable := strings.TrimSpace(input.Variable)
		if variable == "" {
			return nil, TreeResult{}, errors.New("variable is required")
		}
		order := input.Order
		if order == 0 {
			order = 1
		}
		d, err := functree.DerivativeN(n, variable, order)
		if err != nil {
			return nil, TreeResult{}, fmt.Errorf("differentiate: %w", err)
		}
		result, err := treeResult(d)
		return nil, result, err
	}
}

// SimplifyHandler simplifies an expression, with at most maxPasses passes
// when a full simplification is requested.
func SimplifyHandler(maxPasses int) mcp.ToolHandlerFor[SimplifyInput, TreeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SimplifyInput) (*mcp.CallToolResult, TreeResult, error) {
		n, err := decode(input.Expression)
		if err != nil {
			return nil, TreeResult{}, err
		}
		if !input.Full {
			result, err := treeResult(functree.Simplify(n))
			return nil, result, err
		}
		s, err := functree.FullSimplifyN(n, maxPasses)
		if err != nil {
			return nil, TreeResult{}, err
		}
		result, err := treeResult(s)
		return nil, result, err
	}
}

// FreeVariablesHandler lists the unknowns of an expression.
func FreeVariablesHandler() mcp.ToolHandlerFor[FreeVariablesInput, FreeVariablesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input FreeVariablesInput) (*mcp.CallToolResult, FreeVariablesResult, error) {
		n, err := decode(input.Expression)
		if err != nil {
			return nil, FreeVariablesResult{}, err
		}
		params := functree.Bindings{}
		for _, p := range input.Parameters {
			params[p] = 0
		}
		vars := functree.NewRoot(n, params).Variables()
		if vars == nil {
			vars = []string{}
		}
		return nil, FreeVariablesResult{Variables: vars}, nil
	}
}

// TabulateHandler samples an expression over one variable.
func TabulateHandler() mcp.ToolHandlerFor[TabulateInput, TabulateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TabulateInput) (*mcp.CallToolResult, TabulateResult, error) {
		n, err := decode(input.Expression)
		if err != nil {
			return nil, TabulateResult{}, err
		}
		variable := strings.TrimSpace(input.Variable)
		if variable == "" {
			return nil, TabulateResult{}, errors.New("variable is required")
		}
		root := functree.NewRoot(n, input.Bindings).WithoutParameter(variable)
		samples, err := functree.Tabulate(func(x float64) functree.Value {
			return root.Value(functree.Bindings{variable: x})
		}, input.From, input.To, input.Step)
		if err != nil {
			return nil, TabulateResult{}, err
		}
		result := TabulateResult{Samples: make([]SamplePoint, len(samples))}
		for i, s := range samples {
			y, ok := finite(s.Y)
			result.Samples[i] = SamplePoint{X: s.X, Defined: ok, Y: y, Text: s.Y.String()}
		}
		result.Table = functree.RenderTable(variable, n.String(), samples)
		return nil, result, nil
	}
}

// finite returns v as a JSON-safe number. Infinities report as defined with
// a zero value.
func finite(v functree.Value) (float64, bool) {
	f, ok := v.Float64()
	if math.IsInf(f, 0) {
		return 0, ok
	}
	return f, ok
}

func decode(expr Expression) (functree.Node, error) {
	if expr == nil {
		return nil, errors.New("expression is required")
	}
	n, err := functree.FromJSON(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}
	return n, nil
}

func treeResult(n functree.Node) (TreeResult, error) {
	s, err := functree.ToJSON(n)
	if err != nil {
		return TreeResult{}, fmt.Errorf("encode result: %w", err)
	}
	var tree Expression
	if err := json.Unmarshal([]byte(s), &tree); err != nil {
		return TreeResult{}, fmt.Errorf("encode result: %w", err)
	}
	return TreeResult{Text: n.String(), LaTeX: n.LaTeX(), Tree: tree}, nil
}
