package otel

import (
	"context"

	"github.com/adrianliechti/imgtrans/pkg/overlay"
	"github.com/adrianliechti/imgtrans/pkg/renderer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type Renderer interface {
	Observable
	renderer.Provider
}

type observableRenderer struct {
	renderer renderer.Provider
}

func NewRenderer(p renderer.Provider) Renderer {
	return &observableRenderer{
		renderer: p,
	}
}

func (p *observableRenderer) otelSetup() {
}

func (p *observableRenderer) Render(ctx context.Context, blocks []overlay.RenderBlock, src, dest string, style *renderer.Style) error {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "render")
	defer span.End()

	span.SetAttributes(attribute.Int("renderer.blocks", len(blocks)))

	err := p.renderer.Render(ctx, blocks, src, dest, style)

	recordError(span, err)

	return err
}
