// Package overlay turns detected text blocks into translated, pixel-space
// render blocks.
package overlay

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/translator"
)

var (
	ErrMissingGeometry = errors.New("block has no bounding box")
)

// Rect is a pixel-space rectangle. Width or height may be zero.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

type RenderBlock struct {
	Text string
	Rect Rect
}

// Filter keeps untagged blocks with non-empty text, in detection order.
func Filter(blocks []detector.Block) []detector.Block {
	result := make([]detector.Block, 0, len(blocks))

	for _, b := range blocks {
		if b.Type != nil {
			if b.Text != nil && *b.Text != "" {
				slog.Debug("dropping tagged block with text", "type", *b.Type)
			}

			continue
		}

		if b.Text == nil || *b.Text == "" {
			continue
		}

		result = append(result, b)
	}

	return result
}

// MapBox scales a relative box to the image size, rounding every value up.
func MapBox(box detector.BoundingBox, width, height int) Rect {
	return Rect{
		Left:   ceil(box.Left * float64(width)),
		Top:    ceil(box.Top * float64(height)),
		Width:  ceil(box.Width * float64(width)),
		Height: ceil(box.Height * float64(height)),
	}
}

func ceil(v float64) int {
	return int(math.Ceil(v))
}

// Build filters blocks, translates each survivor in order and maps its box
// against the given image size. Geometry is checked for every eligible block
// before the first translation. Translator errors are returned unchanged.
func Build(ctx context.Context, t translator.Provider, blocks []detector.Block, width, height int, options *translator.TranslateOptions) ([]RenderBlock, error) {
	eligible := Filter(blocks)

	slog.Debug("filtered blocks", "detected", len(blocks), "eligible", len(eligible))

	for _, b := range eligible {
		if b.Box == nil {
			return nil, ErrMissingGeometry
		}
	}

	result := make([]RenderBlock, 0, len(eligible))

	for _, b := range eligible {
		translation, err := t.Translate(ctx, *b.Text, options)

		if err != nil {
			return nil, err
		}

		result = append(result, RenderBlock{
			Text: translation.Text,
			Rect: MapBox(*b.Box, width, height),
		})
	}

	return result, nil
}
