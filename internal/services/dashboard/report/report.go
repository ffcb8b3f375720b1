package report

import (
	"context"
	"fmt"
	"log"
	"strconv"

	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/platform/otel"
	"github.com/louisbranch/insightboard/internal/services/dashboard/chart"
	"github.com/louisbranch/insightboard/internal/services/dashboard/dataset"
	"github.com/louisbranch/insightboard/internal/services/dashboard/derive"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/message"
)

// Loader loads named datasets.
type Loader interface {
	LoadAll(ctx context.Context, names ...string) (map[string]*dataset.Dataset, error)
}

// Localizer provides translated strings.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// Callout is a section's closing remark with its emphasized label.
type Callout struct {
	Style CalloutStyle
	Label string
	Text  string
}

// Section is one localized analysis block with its chart.
type Section struct {
	ID      string
	Title   string
	Heading string
	Intro   string
	Bullets []string
	Callout Callout
	Chart   chart.Spec
	Figure  chart.Figure
}

// Page is the whole dashboard document for one locale.
type Page struct {
	Title    string
	Styles   Styles
	Sections []Section
}

// Report holds the loaded sources. It is immutable once assembled.
type Report struct {
	sources *Sources
}

// Assemble loads the four datasets, derives the pivot and count tables,
// registers all six sources, and checks every section's chart resolves.
// Any failure is returned with its domain code and nothing is served.
func Assemble(ctx context.Context, loader Loader) (*Report, error) {
	ctx, span := otel.Tracer().Start(ctx, "dashboard.build")
	defer span.End()

	r, err := assemble(ctx, loader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperrors.CodeOf(err).String())
		return nil, err
	}
	span.SetAttributes(attribute.Int("dashboard.sections", len(definitions)))
	return r, nil
}

func assemble(ctx context.Context, loader Loader) (*Report, error) {
	if loader == nil {
		return nil, apperrors.New(apperrors.CodeDataUnavailable, "no dataset loader configured")
	}
	datasets, err := loader.LoadAll(ctx, DatasetNames...)
	if err != nil {
		return nil, err
	}
	sources := NewSources()
	for _, name := range DatasetNames {
		ds, ok := datasets[name]
		if !ok || ds == nil {
			return nil, apperrors.WithMetadata(apperrors.CodeDataUnavailable,
				fmt.Sprintf("dataset %s unavailable", name), map[string]string{"dataset": name})
		}
		if err := sources.Register(name, ds); err != nil {
			return nil, err
		}
	}

	pivot, err := traced(ctx, SourceFlightsPivot, func() (dataset.Table, error) {
		return derive.Pivot(datasets["flights"], "month", "year", "passengers")
	})
	if err != nil {
		return nil, err
	}
	if err := sources.Register(SourceFlightsPivot, pivot); err != nil {
		return nil, err
	}
	counts, err := traced(ctx, SourceSurvivedCounts, func() (dataset.Table, error) {
		return derive.ValueCounts(datasets["titanic"], "survived")
	})
	if err != nil {
		return nil, err
	}
	if err := sources.Register(SourceSurvivedCounts, counts); err != nil {
		return nil, err
	}

	for _, def := range definitions {
		if _, err := chart.Build(def.Chart, sources); err != nil {
			return nil, err
		}
	}
	log.Printf("dashboard assembled sources=%d sections=%d", len(sources.Names()), len(definitions))
	return &Report{sources: sources}, nil
}

func traced(ctx context.Context, name string, fn func() (dataset.Table, error)) (dataset.Table, error) {
	_, span := otel.Tracer().Start(ctx, "derive."+name)
	defer span.End()
	table, err := fn()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transform failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("table.rows", table.Len()))
	return table, nil
}

// Sources returns the registry the report's charts resolve against.
func (r *Report) Sources() *Sources {
	return r.sources
}

// Page builds the localized document model: title, styles and the eight
// sections in fixed order, each with its figure.
func (r *Report) Page(loc Localizer) (Page, error) {
	page := Page{
		Title:    t(loc, "core.page_title"),
		Styles:   DefaultStyles(),
		Sections: make([]Section, 0, len(definitions)),
	}
	for _, def := range definitions {
		section, err := r.section(def, loc)
		if err != nil {
			return Page{}, err
		}
		page.Sections = append(page.Sections, section)
	}
	return page, nil
}

func (r *Report) section(def Definition, loc Localizer) (Section, error) {
	spec := def.Chart
	spec.Title = t(loc, messageKey(def.ID, "chart_title"))
	if len(def.LabelKeys) > 0 {
		spec.Labels = make(map[string]string, len(def.LabelKeys))
		for _, key := range def.LabelKeys {
			spec.Labels[key] = t(loc, messageKey(def.ID, "label."+key))
		}
	}
	fig, err := chart.Build(spec, r.sources)
	if err != nil {
		return Section{}, err
	}
	bullets := make([]string, def.Bullets)
	for i := range bullets {
		bullets[i] = t(loc, messageKey(def.ID, "bullet."+strconv.Itoa(i+1)))
	}
	return Section{
		ID:      def.ID,
		Title:   t(loc, messageKey(def.ID, "title")),
		Heading: t(loc, messageKey(def.ID, "heading")),
		Intro:   t(loc, messageKey(def.ID, "intro")),
		Bullets: bullets,
		Callout: Callout{
			Style: def.Callout,
			Label: t(loc, messageKey(def.ID, "callout_label")),
			Text:  t(loc, messageKey(def.ID, "callout")),
		},
		Chart:  spec,
		Figure: fig,
	}, nil
}

func t(loc Localizer, key string) string {
	if loc == nil {
		return key
	}
	return loc.Sprintf(key)
}
