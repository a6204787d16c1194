package detector

import (
	"context"
	"errors"
)

type Provider interface {
	Detect(ctx context.Context, input File, options *DetectOptions) (*Document, error)
}

var (
	ErrUnsupported = errors.New("unsupported type")
)

type File struct {
	Name string

	Content     []byte
	ContentType string
}

type DetectOptions struct {
}

type Document struct {
	Blocks []Block
}

// Block is a detected text region. A nil Type marks a plain line; backends set
// it for structural results (words, table cells, form fields, selection marks).
type Block struct {
	Type *string
	Text *string

	Box *BoundingBox
}

// BoundingBox is relative to the image size, each field in [0, 1].
type BoundingBox struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}
