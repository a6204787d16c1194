// Package pipeline runs detect, filter, translate and render for one image.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/overlay"
	"github.com/adrianliechti/imgtrans/pkg/renderer"
	"github.com/adrianliechti/imgtrans/pkg/translator"

	"github.com/google/uuid"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrSamePath = errors.New("source and destination must differ")
)

const (
	DefaultSourceLanguage = "en"
	DefaultTargetLanguage = "ja"
)

type Pipeline struct {
	detector   detector.Provider
	translator translator.Provider

	renderer renderer.Provider
	style    *renderer.Style
}

type Option func(*Pipeline)

func WithRenderer(r renderer.Provider) Option {
	return func(p *Pipeline) {
		p.renderer = r
	}
}

func WithStyle(style *renderer.Style) Option {
	return func(p *Pipeline) {
		p.style = style
	}
}

func New(d detector.Provider, t translator.Provider, options ...Option) *Pipeline {
	p := &Pipeline{
		detector:   d,
		translator: t,

		renderer: renderer.New(),
		style:    renderer.DefaultStyle(),
	}

	for _, option := range options {
		option(p)
	}

	return p
}

type TranslateOptions struct {
	SourceLanguage string
	TargetLanguage string
}

// Translate writes a copy of src to dest with every detected text line
// outlined and overlaid by its translation. On failure dest does not exist
// and the error of the failing step is returned as is.
func (p *Pipeline) Translate(ctx context.Context, src, dest string, options *TranslateOptions) (err error) {
	if options == nil {
		options = new(TranslateOptions)
	}

	if err := Validate(src, dest); err != nil {
		return err
	}

	logger := slog.With("run", uuid.NewString())

	translateOptions := &translator.TranslateOptions{
		SourceLanguage: options.SourceLanguage,
		TargetLanguage: options.TargetLanguage,
	}

	if translateOptions.SourceLanguage == "" {
		translateOptions.SourceLanguage = DefaultSourceLanguage
	}

	if translateOptions.TargetLanguage == "" {
		translateOptions.TargetLanguage = DefaultTargetLanguage
	}

	logger.Debug("translating image", "src", src, "dest", dest, "source", translateOptions.SourceLanguage, "target", translateOptions.TargetLanguage)

	data, err := os.ReadFile(src)

	if err != nil {
		return err
	}

	size, format, err := image.DecodeConfig(bytes.NewReader(data))

	if err != nil {
		return err
	}

	input := detector.File{
		Name: filepath.Base(src),

		Content:     data,
		ContentType: "image/" + format,
	}

	document, err := p.detector.Detect(ctx, input, nil)

	if err != nil {
		return err
	}

	blocks, err := overlay.Build(ctx, p.translator, document.Blocks, size.Width, size.Height, translateOptions)

	if err != nil {
		return err
	}

	logger.Debug("blocks translated", "detected", len(document.Blocks), "rendered", len(blocks))

	defer func() {
		if err != nil {
			renderer.Discard(dest)
		}
	}()

	if err := p.renderer.Render(ctx, blocks, src, dest, p.style); err != nil {
		return err
	}

	logger.Info("image translated", "dest", dest, "blocks", len(blocks))

	return nil
}

// Validate rejects a destination that resolves to the source path. It does
// not touch the file system.
func Validate(src, dest string) error {
	a, err := filepath.Abs(src)

	if err != nil {
		return err
	}

	b, err := filepath.Abs(dest)

	if err != nil {
		return err
	}

	if a == b {
		return ErrSamePath
	}

	return nil
}
