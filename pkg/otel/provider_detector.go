package otel

import (
	"context"

	"github.com/adrianliechti/imgtrans/pkg/detector"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type Detector interface {
	Observable
	detector.Provider
}

type observableDetector struct {
	provider string

	detector detector.Provider
}

func NewDetector(provider string, p detector.Provider) Detector {
	return &observableDetector{
		detector: p,

		provider: provider,
	}
}

func (p *observableDetector) otelSetup() {
}

func (p *observableDetector) Detect(ctx context.Context, input detector.File, options *detector.DetectOptions) (*detector.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "detect "+p.provider)
	defer span.End()

	span.SetAttributes(
		attribute.String("detector.provider", p.provider),
		attribute.Int("detector.input.size", len(input.Content)),
	)

	result, err := p.detector.Detect(ctx, input, options)

	if result != nil {
		span.SetAttributes(attribute.Int("detector.blocks", len(result.Blocks)))
	}

	recordError(span, err)

	return result, err
}
