package otel

import (
	"context"
	"unicode/utf8"

	"github.com/adrianliechti/imgtrans/pkg/translator"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Translator interface {
	Observable
	translator.Provider
}

type observableTranslator struct {
	provider string

	translator translator.Provider

	charactersMetric metric.Int64Counter
}

func NewTranslator(provider string, p translator.Provider) Translator {
	meter := otel.Meter(instrumentationName)

	charactersMetric, _ := meter.Int64Counter("imgtrans.translate.characters",
		metric.WithDescription("Characters sent for translation"),
		metric.WithUnit("{character}"),
	)

	return &observableTranslator{
		translator: p,

		provider: provider,

		charactersMetric: charactersMetric,
	}
}

func (p *observableTranslator) otelSetup() {
}

func (p *observableTranslator) Translate(ctx context.Context, text string, options *translator.TranslateOptions) (*translator.Translation, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "translate "+p.provider)
	defer span.End()

	attrs := []attribute.KeyValue{
		attribute.String("translator.provider", p.provider),
	}

	if options != nil {
		attrs = append(attrs,
			attribute.String("translator.source_language", options.SourceLanguage),
			attribute.String("translator.target_language", options.TargetLanguage),
		)
	}

	span.SetAttributes(attrs...)

	result, err := p.translator.Translate(ctx, text, options)

	if result != nil && p.charactersMetric != nil {
		p.charactersMetric.Add(ctx, int64(utf8.RuneCountInString(text)), metric.WithAttributes(attrs...))
	}

	recordError(span, err)

	return result, err
}
