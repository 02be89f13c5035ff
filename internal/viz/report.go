// Package viz renders trajectories and run summaries for the terminal:
// styled summary blocks, ascii trajectory plots, and a live watch mode.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/xulfus/ai-world3/internal/sensitivity"
)

// RenderSummary formats the end-of-run report for one scenario.
func RenderSummary(scenario string, s sensitivity.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("ai-world3 · %s", scenario)))
	b.WriteString("\n")

	line := func(label string, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(valueStyle.Render(value))
		b.WriteString("\n")
	}

	line("final AI capital", fmt.Sprintf("%.2f", s.FinalKAI))
	line("final output", fmt.Sprintf("%.2f", s.FinalOutput))
	line("final unemployment rate", fmt.Sprintf("%.2f%%", 100*s.FinalUnemployment))
	line("final stability", fmt.Sprintf("%.4f", s.FinalStability))
	line("final tax rate", fmt.Sprintf("%.1f%%", 100*s.FinalTaxRate))
	line("final environment", fmt.Sprintf("%.4f", s.FinalEnvironment))
	line("final resources", fmt.Sprintf("%.1f", s.FinalResources))
	line("min stability", fmt.Sprintf("%.4f", s.MinStability))
	line("max unemployment rate", fmt.Sprintf("%.2f%%", 100*s.MaxUnemployment))
	line("min environment", fmt.Sprintf("%.4f", s.MinEnvironment))

	b.WriteString(renderCollapse("stability collapse", s.StabilityCollapseYear))
	b.WriteString(renderCollapse("environment collapse", s.EnvCollapseYear))
	b.WriteString(renderCollapse("resource depletion", s.ResourceDepletionYear))

	return panelStyle.Render(b.String())
}

func renderCollapse(label string, year float64) string {
	if math.IsInf(year, 1) {
		return labelStyle.Render(label) + okStyle.Render("never") + "\n"
	}
	return labelStyle.Render(label) + warnStyle.Render(fmt.Sprintf("year %.1f", year)) + "\n"
}

// Plot renders one trajectory column as an ascii graph.
func Plot(series []float64, caption string, width, height int) string {
	if len(series) == 0 {
		return ""
	}
	data := downsample(series, width)
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// downsample thins a long series so the plot stays one screen wide.
func downsample(series []float64, width int) []float64 {
	if width <= 0 || len(series) <= width {
		return series
	}
	if width == 1 {
		return series[:1]
	}
	out := make([]float64, width)
	for i := range out {
		out[i] = series[i*(len(series)-1)/(width-1)]
	}
	return out
}

// RenderCorrelations formats a tornado-ordered correlation table.
func RenderCorrelations(metric string, cors []sensitivity.Correlation) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Spearman rank correlation vs %s", metric)))
	b.WriteString("\n")
	for _, c := range cors {
		bar := strings.Repeat("=", int(math.Abs(c.Rho)*30+0.5))
		sign := "+"
		if c.Rho < 0 {
			sign = "-"
		}
		b.WriteString(labelStyle.Render(c.Parameter))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s%.3f %s", sign, math.Abs(c.Rho), bar)))
		b.WriteString("\n")
	}
	return panelStyle.Render(b.String())
}
