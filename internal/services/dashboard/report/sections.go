package report

import "github.com/louisbranch/insightboard/internal/services/dashboard/chart"

// CalloutStyle selects how a section's callout label is emphasized.
type CalloutStyle int

const (
	// CalloutStrong marks conclusions, findings and recommendations.
	CalloutStrong CalloutStyle = iota
	// CalloutEm marks insights and applications.
	CalloutEm
)

// Definition is the fixed, locale-independent shape of one section.
type Definition struct {
	ID      string
	Bullets int
	Callout CalloutStyle
	Chart   chart.Spec
	// LabelKeys maps chart label keys to message keys.
	LabelKeys []string
}

var definitions = []Definition{
	{
		ID:      "tips_scatter",
		Bullets: 4,
		Callout: CalloutStrong,
		Chart:   chart.Spec{Kind: chart.Scatter, Source: "tips", X: "total_bill", Y: "tip", Color: "sex"},
	},
	{
		ID:      "flights_line",
		Bullets: 4,
		Callout: CalloutEm,
		Chart:   chart.Spec{Kind: chart.Line, Source: "flights", X: "month", Y: "passengers", Color: "year"},
	},
	{
		ID:      "titanic_bar",
		Bullets: 4,
		Callout: CalloutStrong,
		Chart:   chart.Spec{Kind: chart.Bar, Source: "titanic", X: "class", Y: "survived", Color: "class"},
	},
	{
		ID:        "iris_histogram",
		Bullets:   4,
		Callout:   CalloutEm,
		Chart:     chart.Spec{Kind: chart.Histogram, Source: "iris", X: "sepal_length", Color: "species"},
		LabelKeys: []string{chart.CountLabel},
	},
	{
		ID:      "tips_box",
		Bullets: 4,
		Callout: CalloutStrong,
		Chart:   chart.Spec{Kind: chart.Box, Source: "tips", X: "day", Y: "total_bill", Color: "time"},
	},
	{
		ID:        "flights_heatmap",
		Bullets:   4,
		Callout:   CalloutEm,
		Chart:     chart.Spec{Kind: chart.Heatmap, Source: SourceFlightsPivot},
		LabelKeys: []string{"x", "y", "color"},
	},
	{
		ID:      "survival_pie",
		Bullets: 3,
		Callout: CalloutStrong,
		Chart:   chart.Spec{Kind: chart.Pie, Source: SourceSurvivedCounts, Values: "count", Names: "survived"},
	},
	{
		ID:      "iris_3d",
		Bullets: 4,
		Callout: CalloutEm,
		Chart: chart.Spec{
			Kind: chart.Scatter3D, Source: "iris",
			X: "sepal_length", Y: "sepal_width", Z: "petal_length", Color: "species",
		},
	},
}

// Definitions returns the section definitions in page order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

func messageKey(id, field string) string {
	return "section." + id + "." + field
}
