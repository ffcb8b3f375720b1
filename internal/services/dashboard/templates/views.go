package templates

// PlotlyScriptURL is the Plotly.js bundle the page loads charts with.
const PlotlyScriptURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// StyleView holds the inline CSS of each page block.
type StyleView struct {
	Container      string
	ChartContainer string
	Analysis       string
	Title          string
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	URL    string
	Active bool
}

// PageView is everything the document component renders.
type PageView struct {
	Lang        string
	Title       string
	Styles      StyleView
	Stylesheets []string
	ScriptURL   string
	Languages   []LanguageOption
	Sections    []SectionView
}

// SectionView is one analysis block and its chart.
type SectionView struct {
	ID           string
	Title        string
	Heading      string
	Intro        string
	Bullets      []string
	CalloutLabel string
	CalloutText  string
	// CalloutEmphasis renders the label with <em> instead of <strong>.
	CalloutEmphasis bool
	ChartKind       string
	Figure          any
}

// FigureScriptID returns the id of the JSON script holding a section's figure.
func FigureScriptID(sectionID string) string {
	return "figure-" + sectionID
}
