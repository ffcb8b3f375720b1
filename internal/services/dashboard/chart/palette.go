package chart

// Palette is Plotly's default qualitative color sequence.
var Palette = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// SequentialScale is Plotly's default continuous color scale.
var SequentialScale = [][2]any{
	{0.0, "#0d0887"},
	{0.1111111111111111, "#46039f"},
	{0.2222222222222222, "#7201a8"},
	{0.3333333333333333, "#9c179e"},
	{0.4444444444444444, "#bd3786"},
	{0.5555555555555556, "#d8576b"},
	{0.6666666666666666, "#ed7953"},
	{0.7777777777777778, "#fb9f3a"},
	{0.8888888888888888, "#fdca26"},
	{1.0, "#f0f921"},
}

// ColorAt returns the palette color for the i-th level, cycling.
func ColorAt(i int) string {
	return Palette[i%len(Palette)]
}
