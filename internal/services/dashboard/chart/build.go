package chart

import (
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
)

// Resolver finds chart sources by name.
type Resolver interface {
	Table(name string) (dataset.Table, bool)
}

// Matrix is a table shaped as a labelled grid, as heatmaps require.
type Matrix interface {
	RowLabels() []string
	ColumnLabels() []string
	Cell(r, c int) (float64, bool)
}

// Build resolves the spec against sources and returns its figure. An
// unknown source, an unknown column or a source of the wrong shape fails
// with CHART_INVALID.
func Build(spec Spec, sources Resolver) (Figure, error) {
	if sources == nil {
		return Figure{}, invalid(spec, "no sources to resolve against")
	}
	table, ok := sources.Table(spec.Source)
	if !ok {
		return Figure{}, invalid(spec, fmt.Sprintf("unknown source %q", spec.Source))
	}

	var (
		fig Figure
		err error
	)
	switch spec.Kind {
	case Scatter:
		fig, err = buildXY(spec, table, "scatter", "markers")
	case Line:
		fig, err = buildXY(spec, table, "scatter", "lines")
	case Bar:
		fig, err = buildBar(spec, table)
	case Histogram:
		fig, err = buildHistogram(spec, table)
	case Box:
		fig, err = buildBox(spec, table)
	case Heatmap:
		fig, err = buildHeatmap(spec, table)
	case Pie:
		fig, err = buildPie(spec, table)
	case Scatter3D:
		fig, err = buildScatter3D(spec, table)
	default:
		return Figure{}, invalid(spec, fmt.Sprintf("unsupported chart kind %q", spec.Kind))
	}
	if err != nil {
		return Figure{}, err
	}
	fig.Layout.Title = Title{Text: spec.Title}
	return fig, nil
}

type group struct {
	label string
	rows  []int
}

// groups splits the table rows by the color column's levels. Rows with a
// missing color are dropped. Without a color column there is one group.
func groups(table dataset.Table, color string) []group {
	if color == "" {
		rows := make([]int, table.Len())
		for i := range rows {
			rows[i] = i
		}
		return []group{{rows: rows}}
	}
	levels := table.Levels(color)
	pos := make(map[string]int, len(levels))
	out := make([]group, len(levels))
	for i, l := range levels {
		pos[l] = i
		out[i].label = l
	}
	for r := 0; r < table.Len(); r++ {
		v := table.Value(r, color)
		if i, ok := pos[v]; ok {
			out[i].rows = append(out[i].rows, r)
		}
	}
	return out
}

func series(table dataset.Table, column string, rows []int) []any {
	col, _ := table.Column(column)
	out := make([]any, len(rows))
	for i, r := range rows {
		if col.Kind == dataset.Numeric {
			if v, ok := table.Float(r, column); ok {
				out[i] = v
			}
			continue
		}
		if v := table.Value(r, column); v != "" {
			out[i] = v
		}
	}
	return out
}

func styleTrace(tr *Trace, g group, i int, multi bool) {
	color := ColorAt(i)
	tr.Marker = &Marker{Color: color}
	if multi {
		tr.Name = g.label
		tr.LegendGroup = g.label
		return
	}
	hide := false
	tr.ShowLegend = &hide
}

func buildXY(spec Spec, table dataset.Table, traceType, mode string) (Figure, error) {
	if err := require(spec, table, spec.X, false); err != nil {
		return Figure{}, err
	}
	if err := require(spec, table, spec.Y, true); err != nil {
		return Figure{}, err
	}
	if err := optional(spec, table, spec.Color); err != nil {
		return Figure{}, err
	}
	gs := groups(table, spec.Color)
	fig := Figure{Data: make([]Trace, 0, len(gs))}
	for i, g := range gs {
		tr := Trace{
			Type: traceType,
			Mode: mode,
			X:    series(table, spec.X, g.rows),
			Y:    series(table, spec.Y, g.rows),
		}
		styleTrace(&tr, g, i, spec.Color != "")
		if mode == "lines" {
			tr.Line = &LineStyle{Color: tr.Marker.Color}
		}
		fig.Data = append(fig.Data, tr)
	}
	fig.Layout.XAxis = axisFor(spec, table, spec.X)
	fig.Layout.YAxis = &Axis{Title: Title{Text: spec.label(spec.Y)}}
	fig.Layout.Legend = legendFor(spec)
	return fig, nil
}

// buildBar sums y for each x within each color group, which draws the same
// bar heights as stacking one bar per raw row.
func buildBar(spec Spec, table dataset.Table) (Figure, error) {
	if err := require(spec, table, spec.X, false); err != nil {
		return Figure{}, err
	}
	if err := require(spec, table, spec.Y, true); err != nil {
		return Figure{}, err
	}
	if err := optional(spec, table, spec.Color); err != nil {
		return Figure{}, err
	}
	xLevels := table.Levels(spec.X)
	gs := groups(table, spec.Color)
	fig := Figure{Data: make([]Trace, 0, len(gs))}
	for i, g := range gs {
		sums := map[string]float64{}
		seen := map[string]bool{}
		for _, r := range g.rows {
			x := table.Value(r, spec.X)
			if x == "" {
				continue
			}
			seen[x] = true
			if v, ok := table.Float(r, spec.Y); ok {
				sums[x] += v
			}
		}
		tr := Trace{Type: "bar", OffsetGroup: g.label}
		for _, x := range xLevels {
			if !seen[x] {
				continue
			}
			tr.X = append(tr.X, axisValue(table, spec.X, x))
			tr.Y = append(tr.Y, sums[x])
		}
		styleTrace(&tr, g, i, spec.Color != "")
		fig.Data = append(fig.Data, tr)
	}
	fig.Layout.XAxis = axisFor(spec, table, spec.X)
	fig.Layout.YAxis = &Axis{Title: Title{Text: spec.label(spec.Y)}}
	fig.Layout.Legend = legendFor(spec)
	fig.Layout.BarMode = "relative"
	return fig, nil
}

func buildHistogram(spec Spec, table dataset.Table) (Figure, error) {
	if err := require(spec, table, spec.X, false); err != nil {
		return Figure{}, err
	}
	if err := optional(spec, table, spec.Color); err != nil {
		return Figure{}, err
	}
	gs := groups(table, spec.Color)
	fig := Figure{Data: make([]Trace, 0, len(gs))}
	for i, g := range gs {
		tr := Trace{Type: "histogram", X: series(table, spec.X, g.rows)}
		styleTrace(&tr, g, i, spec.Color != "")
		fig.Data = append(fig.Data, tr)
	}
	fig.Layout.XAxis = axisFor(spec, table, spec.X)
	fig.Layout.YAxis = &Axis{Title: Title{Text: spec.label(CountLabel)}}
	fig.Layout.Legend = legendFor(spec)
	fig.Layout.BarMode = "relative"
	return fig, nil
}

func buildBox(spec Spec, table dataset.Table) (Figure, error) {
	if err := require(spec, table, spec.Y, true); err != nil {
		return Figure{}, err
	}
	if err := optional(spec, table, spec.X); err != nil {
		return Figure{}, err
	}
	if err := optional(spec, table, spec.Color); err != nil {
		return Figure{}, err
	}
	gs := groups(table, spec.Color)
	fig := Figure{Data: make([]Trace, 0, len(gs))}
	for i, g := range gs {
		tr := Trace{Type: "box", Y: series(table, spec.Y, g.rows), OffsetGroup: g.label}
		if spec.X != "" {
			tr.X = series(table, spec.X, g.rows)
		}
		styleTrace(&tr, g, i, spec.Color != "")
		fig.Data = append(fig.Data, tr)
	}
	if spec.X != "" {
		fig.Layout.XAxis = axisFor(spec, table, spec.X)
	}
	fig.Layout.YAxis = &Axis{Title: Title{Text: spec.label(spec.Y)}}
	fig.Layout.Legend = legendFor(spec)
	fig.Layout.BoxMode = "group"
	return fig, nil
}

func buildHeatmap(spec Spec, table dataset.Table) (Figure, error) {
	matrix, ok := table.(Matrix)
	if !ok {
		return Figure{}, invalid(spec, fmt.Sprintf("source %q is not a matrix", spec.Source))
	}
	rows := matrix.RowLabels()
	cols := matrix.ColumnLabels()
	if len(rows) == 0 || len(cols) == 0 {
		return Figure{}, invalid(spec, fmt.Sprintf("source %q is an empty matrix", spec.Source))
	}
	z := make([][]any, len(rows))
	for r := range rows {
		z[r] = make([]any, len(cols))
		for c := range cols {
			if v, ok := matrix.Cell(r, c); ok {
				z[r][c] = v
			}
		}
	}
	tr := Trace{
		Type:       "heatmap",
		X:          labelsOf(cols),
		Y:          labelsOf(rows),
		Z:          z,
		ColorScale: SequentialScale,
		ColorBar:   &ColorBar{Title: Title{Text: spec.label("color")}},
	}
	fig := Figure{Data: []Trace{tr}}
	fig.Layout.XAxis = &Axis{Title: Title{Text: spec.label("x")}}
	fig.Layout.YAxis = &Axis{Title: Title{Text: spec.label("y")}, AutoRange: "reversed"}
	return fig, nil
}

func buildPie(spec Spec, table dataset.Table) (Figure, error) {
	if err := require(spec, table, spec.Names, false); err != nil {
		return Figure{}, err
	}
	if err := require(spec, table, spec.Values, true); err != nil {
		return Figure{}, err
	}
	rows := make([]int, table.Len())
	colors := make([]string, table.Len())
	for i := range rows {
		rows[i] = i
		colors[i] = ColorAt(i)
	}
	tr := Trace{
		Type:   "pie",
		Labels: series(table, spec.Names, rows),
		Values: series(table, spec.Values, rows),
		Marker: &Marker{Colors: colors},
	}
	fig := Figure{Data: []Trace{tr}}
	fig.Layout.Legend = &Legend{Title: Title{Text: spec.label(spec.Names)}, TraceGroupOrder: "normal"}
	return fig, nil
}

func buildScatter3D(spec Spec, table dataset.Table) (Figure, error) {
	for _, col := range []string{spec.X, spec.Y, spec.Z} {
		if err := require(spec, table, col, true); err != nil {
			return Figure{}, err
		}
	}
	if err := optional(spec, table, spec.Color); err != nil {
		return Figure{}, err
	}
	gs := groups(table, spec.Color)
	fig := Figure{Data: make([]Trace, 0, len(gs))}
	for i, g := range gs {
		tr := Trace{
			Type:  "scatter3d",
			Mode:  "markers",
			X:     series(table, spec.X, g.rows),
			Y:     series(table, spec.Y, g.rows),
			Z:     series(table, spec.Z, g.rows),
			Scene: "scene",
		}
		styleTrace(&tr, g, i, spec.Color != "")
		fig.Data = append(fig.Data, tr)
	}
	fig.Layout.Scene = &Scene{
		XAxis: Axis{Title: Title{Text: spec.label(spec.X)}},
		YAxis: Axis{Title: Title{Text: spec.label(spec.Y)}},
		ZAxis: Axis{Title: Title{Text: spec.label(spec.Z)}},
	}
	fig.Layout.Legend = legendFor(spec)
	return fig, nil
}

// axisFor titles an axis and pins the order of declared categories.
func axisFor(spec Spec, table dataset.Table, column string) *Axis {
	axis := &Axis{Title: Title{Text: spec.label(column)}}
	if col, ok := table.Column(column); ok && len(col.Categories) > 0 {
		axis.CategoryOrder = "array"
		axis.CategoryArray = table.Levels(column)
	}
	return axis
}

func legendFor(spec Spec) *Legend {
	if spec.Color == "" {
		return nil
	}
	return &Legend{Title: Title{Text: spec.label(spec.Color)}, TraceGroupOrder: "normal"}
}

func axisValue(table dataset.Table, column, label string) any {
	if col, _ := table.Column(column); col.Kind == dataset.Numeric {
		if v, err := strconv.ParseFloat(label, 64); err == nil {
			return v
		}
	}
	return label
}

func labelsOf(labels []string) []any {
	out := make([]any, len(labels))
	for i, l := range labels {
		out[i] = l
	}
	return out
}

func require(spec Spec, table dataset.Table, column string, numeric bool) error {
	if column == "" {
		return invalid(spec, "missing required binding")
	}
	col, ok := table.Column(column)
	if !ok {
		return invalid(spec, fmt.Sprintf("unknown column %q in source %q", column, spec.Source))
	}
	if numeric && col.Kind != dataset.Numeric {
		return invalid(spec, fmt.Sprintf("column %q in source %q is not numeric", column, spec.Source))
	}
	return nil
}

func optional(spec Spec, table dataset.Table, column string) error {
	if column == "" {
		return nil
	}
	return require(spec, table, column, false)
}

func invalid(spec Spec, message string) error {
	return apperrors.WithMetadata(
		apperrors.CodeChartInvalid,
		fmt.Sprintf("%s chart: %s", spec.Kind, message),
		map[string]string{"kind": string(spec.Kind), "source": spec.Source},
	)
}
