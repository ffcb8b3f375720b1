package chart

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// Trace is one Plotly trace. Series hold float64, string or nil for missing.
type Trace struct {
	Type        string     `json:"type"`
	Mode        string     `json:"mode,omitempty"`
	Name        string     `json:"name,omitempty"`
	LegendGroup string     `json:"legendgroup,omitempty"`
	ShowLegend  *bool      `json:"showlegend,omitempty"`
	X           []any      `json:"x,omitempty"`
	Y           []any      `json:"y,omitempty"`
	Z           any        `json:"z,omitempty"`
	Labels      []any      `json:"labels,omitempty"`
	Values      []any      `json:"values,omitempty"`
	Marker      *Marker    `json:"marker,omitempty"`
	Line        *LineStyle `json:"line,omitempty"`
	ColorScale  [][2]any   `json:"colorscale,omitempty"`
	ColorBar    *ColorBar  `json:"colorbar,omitempty"`
	OffsetGroup string     `json:"offsetgroup,omitempty"`
	Scene       string     `json:"scene,omitempty"`
}

// Marker styles trace points, bars or pie slices.
type Marker struct {
	Color  string   `json:"color,omitempty"`
	Colors []string `json:"colors,omitempty"`
}

// LineStyle styles line traces.
type LineStyle struct {
	Color string `json:"color,omitempty"`
}

// ColorBar labels a continuous color scale.
type ColorBar struct {
	Title Title `json:"title"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
}

// Axis configures one cartesian or scene axis.
type Axis struct {
	Title         Title    `json:"title"`
	CategoryOrder string   `json:"categoryorder,omitempty"`
	CategoryArray []string `json:"categoryarray,omitempty"`
	AutoRange     string   `json:"autorange,omitempty"`
	Type          string   `json:"type,omitempty"`
}

// Legend configures the legend.
type Legend struct {
	Title           Title  `json:"title"`
	TraceGroupOrder string `json:"tracegrouporder,omitempty"`
}

// Scene configures the 3D axes.
type Scene struct {
	XAxis Axis `json:"xaxis"`
	YAxis Axis `json:"yaxis"`
	ZAxis Axis `json:"zaxis"`
}

// Layout is the Plotly layout subset the dashboard uses.
type Layout struct {
	Title   Title   `json:"title"`
	XAxis   *Axis   `json:"xaxis,omitempty"`
	YAxis   *Axis   `json:"yaxis,omitempty"`
	Legend  *Legend `json:"legend,omitempty"`
	BarMode string  `json:"barmode,omitempty"`
	BoxMode string  `json:"boxmode,omitempty"`
	Scene   *Scene  `json:"scene,omitempty"`
}
