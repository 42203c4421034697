package functree

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// MaxSamples bounds the number of rows Tabulate produces.
const MaxSamples = 10000

// Sample is one row of a sampled function.
type Sample struct {
	X float64
	Y Value
}

// Tabulate samples f at from, from+step, ... while x <= to.
func Tabulate(f func(float64) Value, from, to, step float64) ([]Sample, error) {
	if !(step > 0) {
		return nil, fmt.Errorf("tabulate: step must be positive, got %g", step)
	}
	if to < from {
		return nil, fmt.Errorf("tabulate: empty range [%g, %g]", from, to)
	}
	if (to-from)/step >= MaxSamples {
		return nil, errors.New("tabulate: range needs more than the maximum number of samples")
	}
	var out []Sample
	for i := 0; i < MaxSamples; i++ {
		x := from + float64(i)*step
		if x > to {
			break
		}
		out = append(out, Sample{X: x, Y: f(x)})
	}
	return out, nil
}

// TabulateNode samples n as a function of variable.
func TabulateNode(n Node, variable string, from, to, step float64) ([]Sample, error) {
	return Tabulate(func(x float64) Value { return Eval1(n, variable, x) }, from, to, step)
}

// RenderTable renders samples as a two-column text table headed by the
// variable name and the expression.
func RenderTable(variable, expr string, samples []Sample) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{variable, expr})
	for _, s := range samples {
		tw.AppendRow(table.Row{formatNumber(s.X), s.Y.String()})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
	})
	style := table.StyleLight
	style.Format.Header = text.FormatDefault
	tw.SetStyle(style)
	return tw.Render()
}
