package chart

// Kind names the chart intent of a section.
type Kind string

const (
	Scatter   Kind = "scatter"
	Line      Kind = "line"
	Bar       Kind = "bar"
	Histogram Kind = "histogram"
	Box       Kind = "box"
	Heatmap   Kind = "heatmap"
	Pie       Kind = "pie"
	Scatter3D Kind = "scatter3d"
)

// Kinds lists every supported chart kind.
var Kinds = []Kind{Scatter, Line, Bar, Histogram, Box, Heatmap, Pie, Scatter3D}

// Spec declares one chart: the source table, its column bindings and display
// labels. It is a plain value and never changes after construction.
type Spec struct {
	Kind   Kind
	Source string
	X      string
	Y      string
	Z      string
	Color  string
	Values string
	Names  string
	Title  string
	// Labels overrides the display name of a binding: keys are column names,
	// or "x", "y", "color" for heatmap axes.
	Labels map[string]string
}

// Bindings returns the non-empty column bindings in a stable order.
func (s Spec) Bindings() []string {
	var out []string
	for _, b := range []string{s.X, s.Y, s.Z, s.Color, s.Names, s.Values} {
		if b != "" {
			out = append(out, b)
		}
	}
	return out
}

// CountLabel is the Labels key for the histogram frequency axis.
const CountLabel = "count"

func (s Spec) label(key string) string {
	if l, ok := s.Labels[key]; ok && l != "" {
		return l
	}
	return key
}
