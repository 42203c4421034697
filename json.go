package functree

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(n Node) (string, error) {
	b, err := json.Marshal(n.toJSON())
	return string(b), err
}

// ParseJSON decodes a tree from its JSON text.
func ParseJSON(data []byte) (Node, error) {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode expression: %w", err)
	}
	return FromJSON(m)
}

// FromJSON decodes a tree from the map form produced by encoding/json.
func FromJSON(data map[string]interface{}) (Node, error) {
	if data == nil {
		return nil, fmt.Errorf("expression must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	subObj := func(field string) (Node, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an object", typ, field)
		}
		n, err := FromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return n, nil
	}

	subObjArray := func(field string) ([]Node, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		raw, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%s: %q must be an array", typ, field)
		}
		out := make([]Node, len(raw))
		for i, it := range raw {
			m, ok := it.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be an object", typ, field, i)
			}
			n, err := FromJSON(m)
			if err != nil {
				return nil, fmt.Errorf("%s: %s[%d]: %w", typ, field, i, err)
			}
			out[i] = n
		}
		return out, nil
	}

	subNumbers := func(field string, want int) ([]float64, error) {
		v, ok := data[field]
		if !ok {
			out := make([]float64, want)
			for i := range out {
				out[i] = 1
			}
			return out, nil
		}
		raw, ok := v.([]interface{})
		if !ok || len(raw) != want {
			return nil, fmt.Errorf("%s: %q must be an array of %d numbers", typ, field, want)
		}
		out := make([]float64, want)
		for i, it := range raw {
			f, ok := it.(float64)
			if !ok {
				return nil, fmt.Errorf("%s: %q[%d] must be a number", typ, field, i)
			}
			out[i] = f
		}
		return out, nil
	}

	subString := func(field string) (string, error) {
		v, ok := data[field]
		if !ok {
			return "", fmt.Errorf("%s: missing %q", typ, field)
		}
		s, ok := v.(string)
		if !ok || s == "" {
			return "", fmt.Errorf("%s: %q must be a non-empty string", typ, field)
		}
		return s, nil
	}

	subNumber := func(field string) (float64, error) {
		v, ok := data[field]
		if !ok {
			return 0, fmt.Errorf("%s: missing %q", typ, field)
		}
		f, ok := v.(float64)
		if !ok {
			return 0, fmt.Errorf("%s: %q must be a number", typ, field)
		}
		return f, nil
	}

	subBool := func(field string) bool {
		b, _ := data[field].(bool)
		return b
	}

	switch typ {
	case "const":
		v, err := subNumber("value")
		if err != nil {
			return nil, err
		}
		if label, ok := data["label"].(string); ok && label != "" {
			return NewLabeledConstant(v, label), nil
		}
		return NewConstant(v), nil

	case "var":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		if _, ok := data["bound"]; ok {
			v, err := subNumber("bound")
			if err != nil {
				return nil, err
			}
			return BoundVariable(name, v), nil
		}
		return NewVariable(name), nil

	case "monomial":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		coeff, err := subNumber("coeff")
		if err != nil {
			return nil, err
		}
		power, err := subNumber("power")
		if err != nil {
			return nil, err
		}
		if !isInteger(power) || math.Abs(power) > math.MaxInt32 {
			return nil, fmt.Errorf("monomial: 'power' must be an integer within 32-bit range, got %g", power)
		}
		return NewMonomial(name, coeff, int(power)), nil

	case "add":
		terms, err := subObjArray("terms")
		if err != nil {
			return nil, err
		}
		coeffs, err := subNumbers("coeffs", len(terms))
		if err != nil {
			return nil, err
		}
		a := NewAdd()
		for i, t := range terms {
			a.AddTerm(t, coeffs[i])
		}
		return a, nil

	case "mul":
		factors, err := subObjArray("factors")
		if err != nil {
			return nil, err
		}
		exps, err := subNumbers("exponents", len(factors))
		if err != nil {
			return nil, err
		}
		m := NewMultiply()
		for i, f := range factors {
			m.MultiplyBy(f, exps[i])
		}
		return m, nil

	case "pow":
		base, err := subObj("base")
		if err != nil {
			return nil, err
		}
		exp, err := subObj("exp")
		if err != nil {
			return nil, err
		}
		return NewPower(base, exp), nil

	case "func":
		name, err := subString("name")
		if err != nil {
			return nil, err
		}
		kind, ok := LookupFunction(name)
		if !ok {
			return nil, fmt.Errorf("func: unknown function %q", name)
		}
		arg, err := subObj("arg")
		if err != nil {
			return nil, err
		}
		return Apply(kind, arg), nil

	case "sum", "product":
		index, err := subString("index")
		if err != nil {
			return nil, err
		}
		args := []Node{NewVariable(index)}
		for _, field := range []string{"min", "max", "step", "body"} {
			if field == "step" {
				if _, ok := data[field]; !ok {
					continue
				}
			}
			n, err := subObj(field)
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		}
		kind := SeriesSum
		if typ == "product" {
			kind = SeriesProduct
		}
		s, err := NewSeries(kind, args...)
		if err != nil {
			return nil, err
		}
		return s, nil

	case "domain":
		d, err := domainFromJSON(data, subObj, subString, subNumber, subBool)
		if err != nil {
			return nil, err
		}
		return d, nil

	case "piecewise":
		ps, err := subObjArray("pieces")
		if err != nil {
			return nil, err
		}
		pieces := make([]*Domain, len(ps))
		for i, p := range ps {
			d, ok := p.(*Domain)
			if !ok {
				return nil, fmt.Errorf("piecewise: pieces[%d] must be a domain", i)
			}
			pieces[i] = d
		}
		return PiecewiseOf(pieces...), nil

	case "derivative":
		name, err := subString("var")
		if err != nil {
			return nil, err
		}
		body, err := subObj("body")
		if err != nil {
			return nil, err
		}
		d, err := NewDerivativeOp(NewVariable(name), body)
		if err != nil {
			return nil, err
		}
		return d, nil

	case "root":
		child, err := subObj("child")
		if err != nil {
			return nil, err
		}
		params := Bindings{}
		if raw, ok := data["params"].(map[string]interface{}); ok {
			for k, v := range raw {
				f, ok := v.(float64)
				if !ok {
					return nil, fmt.Errorf("root: param %q must be a number", k)
				}
				params[k] = f
			}
		}
		return NewRoot(child, params), nil
	}
	return nil, fmt.Errorf("unknown expression type: %s", typ)
}

func domainFromJSON(
	data map[string]interface{},
	subObj func(string) (Node, error),
	subString func(string) (string, error),
	subNumber func(string) (float64, error),
	subBool func(string) bool,
) (*Domain, error) {
	arg, err := subObj("arg")
	if err != nil {
		return nil, err
	}
	name, err := subString("var")
	if err != nil {
		return nil, err
	}
	lower, err := subNumber("lower")
	if err != nil {
		return nil, err
	}
	upper, err := subNumber("upper")
	if err != nil {
		return nil, err
	}
	iv := Interval{Lower: lower, Upper: upper, LowerOpen: subBool("lower_open"), UpperOpen: subBool("upper_open")}
	return Restrict(arg, name, iv), nil
}
