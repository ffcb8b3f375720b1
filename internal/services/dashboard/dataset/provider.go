package dataset

import (
	"bytes"
	"context"
	"fmt"
	"log"

	apperrors "github.com/louisbranch/insightboard/internal/platform/errors"
	"github.com/louisbranch/insightboard/internal/platform/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Provider loads named, profiled datasets from a Source.
type Provider struct {
	source Source
}

// NewProvider returns a provider reading from source.
func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// Load fetches, parses and profiles one dataset. Every failure carries the
// DATA_UNAVAILABLE code and the dataset name.
func (p *Provider) Load(ctx context.Context, name string) (*Dataset, error) {
	ctx, span := otel.Tracer().Start(ctx, "dataset.load")
	defer span.End()
	span.SetAttributes(attribute.String("dataset.name", name))

	ds, err := p.load(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "dataset unavailable")
		return nil, apperrors.WrapWithMetadata(
			apperrors.CodeDataUnavailable,
			fmt.Sprintf("dataset %s unavailable", name),
			map[string]string{"dataset": name},
			err,
		)
	}
	span.SetAttributes(attribute.Int("dataset.rows", ds.Len()))
	log.Printf("dataset loaded name=%s rows=%d columns=%d", name, ds.Len(), len(ds.columns))
	return ds, nil
}

func (p *Provider) load(ctx context.Context, name string) (*Dataset, error) {
	if p == nil || p.source == nil {
		return nil, fmt.Errorf("dataset provider is not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := p.source.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	parsed, err := ParseCSV(name, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if parsed.Len() == 0 {
		return nil, fmt.Errorf("dataset %s has no rows", name)
	}
	return ProfileFor(name).Apply(parsed)
}

// LoadAll loads the named datasets in order and stops at the first failure.
func (p *Provider) LoadAll(ctx context.Context, names ...string) (map[string]*Dataset, error) {
	out := make(map[string]*Dataset, len(names))
	for _, name := range names {
		ds, err := p.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		out[name] = ds
	}
	return out, nil
}
