package report

import "strings"

// ExternalStylesheet is the base stylesheet the page links.
const ExternalStylesheet = "https://codepen.io/chriddyp/pen/bWLwgP.css"

// Styles holds the inline CSS for each block of the page.
type Styles struct {
	Container      string
	ChartContainer string
	Analysis       string
	Title          string
	Stylesheets    []string
}

// DefaultStyles returns the dashboard's visual styles.
func DefaultStyles() Styles {
	return Styles{
		Container: css(
			"max-width", "1200px",
			"margin", "auto",
			"padding", "20px",
			"font-family", "Arial, sans-serif",
		),
		ChartContainer: css(
			"background-color", "#ffffff",
			"border-radius", "10px",
			"box-shadow", "0 2px 4px rgba(0,0,0,0.1)",
			"margin", "20px 0",
			"padding", "20px",
		),
		Analysis: css(
			"background-color", "#f8f9fa",
			"padding", "15px",
			"border-radius", "8px",
			"margin", "15px 0",
			"border-left", "4px solid #2c3e50",
		),
		Title: css(
			"color", "#2c3e50",
			"border-bottom", "2px solid #3498db",
			"padding-bottom", "10px",
		),
		Stylesheets: []string{ExternalStylesheet},
	}
}

func css(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if b.Len() > 0 {
			b.WriteString("; ")
		}
		b.WriteString(pairs[i])
		b.WriteString(": ")
		b.WriteString(pairs[i+1])
	}
	return b.String()
}
