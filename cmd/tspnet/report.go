package main

import (
	"fmt"
	"math"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	normalStyle       = lipgloss.NewStyle().Padding(0, 1)
	rightAlignedStyle = lipgloss.NewStyle().Align(lipgloss.Right).Padding(0, 1)
	headerStyle       = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableBorderColor  = "#705090"
)

// summary holds the statistics of one reported metric.
type summary struct {
	name                string
	n                   int
	mean, std, min, max float64
}

func summarize(name string, x []float64) summary {
	s := summary{name: name, n: len(x)}
	if len(x) == 0 {
		s.mean, s.std, s.min, s.max = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.mean, s.std = stat.MeanStdDev(x, nil)
	if len(x) == 1 {
		s.std = 0
	}
	s.min, s.max = floats.Min(x), floats.Max(x)
	return s
}

// report collects metric summaries in insertion order.
type report struct {
	rows []summary
}

func newReport() *report { return &report{} }

func (r *report) add(name string, x []float64) {
	r.rows = append(r.rows, summarize(name, x))
}

func (r *report) render() string {
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(tableBorderColor))).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == lgtable.HeaderRow:
				return headerStyle
			case col == 0:
				return normalStyle
			}
			return rightAlignedStyle
		}).
		Headers("metric", "n", "mean", "std", "min", "max")
	for _, s := range r.rows {
		t.Row(s.name, fmt.Sprint(s.n), format(s.mean), format(s.std), format(s.min), format(s.max))
	}
	return t.String()
}

func format(x float64) string {
	if math.IsNaN(x) {
		return "-"
	}
	return fmt.Sprintf("%.4f", x)
}

// ratios returns a[i]/b[i] − 1, skipping pairs with b[i] == 0.
func ratios(a, b []float64) []float64 {
	out := make([]float64, 0, len(a))
	for i := range a {
		if b[i] != 0 {
			out = append(out, a[i]/b[i]-1)
		}
	}
	return out
}

// maxRelDiff returns max_i |a[i]−b[i]| / max(|a[i]|, |b[i]|, 1).
func maxRelDiff(a, b []float64) float64 {
	var worst float64
	for i := range a {
		d := math.Abs(a[i]-b[i]) / math.Max(1, math.Max(math.Abs(a[i]), math.Abs(b[i])))
		worst = math.Max(worst, d)
	}
	return worst
}
