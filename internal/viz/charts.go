package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/polsim/internal/analysis"
	"github.com/san-kum/polsim/internal/dynamo"
	"github.com/san-kum/polsim/internal/models"
)

// CompartmentChart plots the absolute size of one compartment over a run.
func CompartmentChart(result *dynamo.Result, idx, width, height int) string {
	if result == nil || len(result.States) == 0 || idx < 0 || idx >= models.Dim {
		return ""
	}
	return asciigraph.Plot(result.Column(idx),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(models.CompartmentNames[idx]),
	)
}

// PartyShareChart overlays the two party shares of one country; country is
// 1 or 2.
func PartyShareChart(result *dynamo.Result, country, width, height int) string {
	if result == nil || len(result.States) == 0 {
		return ""
	}
	first, second := models.B, models.C
	if country == 2 {
		first, second = models.D, models.E
	}

	a := make([]float64, len(result.States))
	b := make([]float64, len(result.States))
	for i, x := range result.States {
		s := analysis.Shares(x)
		a[i], b[i] = s[first], s[second]
	}

	caption := fmt.Sprintf("country %d: %s (blue) vs %s (red) share",
		country, models.CompartmentNames[first], models.CompartmentNames[second])
	return asciigraph.PlotMany([][]float64{a, b},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Precision(3),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption(caption),
	)
}

// FinalTable lists the last state with shares and a sparkline per compartment.
func FinalTable(result *dynamo.Result, sparkWidth int) string {
	if result == nil || len(result.States) == 0 {
		return ""
	}
	x := result.Final()
	shares := analysis.Shares(x)

	var b strings.Builder
	for i, name := range models.CompartmentNames {
		fmt.Fprintf(&b, "  %-3s %14.0f %7.2f%%  %s\n",
			name, x[i], shares[i]*100, Sparkline(result.Column(i), sparkWidth))
	}
	return b.String()
}
