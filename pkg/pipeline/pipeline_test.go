package pipeline_test

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/overlay"
	"github.com/adrianliechti/imgtrans/pkg/pipeline"
	"github.com/adrianliechti/imgtrans/pkg/renderer"
	"github.com/adrianliechti/imgtrans/pkg/translator"

	"github.com/stretchr/testify/require"
)

func ptr(s string) *string {
	return &s
}

type fakeDetector struct {
	document *detector.Document
	err      error

	calls int
	input detector.File
}

func (d *fakeDetector) Detect(ctx context.Context, input detector.File, options *detector.DetectOptions) (*detector.Document, error) {
	d.calls++
	d.input = input

	if d.err != nil {
		return nil, d.err
	}

	return d.document, nil
}

type fakeTranslator struct {
	text string
	err  error

	calls   int
	options []translator.TranslateOptions
}

func (t *fakeTranslator) Translate(ctx context.Context, text string, options *translator.TranslateOptions) (*translator.Translation, error) {
	t.calls++
	t.options = append(t.options, *options)

	if t.err != nil {
		return nil, t.err
	}

	return &translator.Translation{
		Text: t.text,
	}, nil
}

type fakeRenderer struct {
	calls  int
	blocks []overlay.RenderBlock

	write bool
	err   error
}

func (r *fakeRenderer) Render(ctx context.Context, blocks []overlay.RenderBlock, src, dest string, style *renderer.Style) error {
	r.calls++
	r.blocks = blocks

	if r.write {
		if err := os.WriteFile(dest, []byte("partial"), 0644); err != nil {
			return err
		}
	}

	return r.err
}

type recordingSurface struct {
	rects  [][4]float64
	moves  [][2]float64
	texts  []string
	encode error
}

func (s *recordingSurface) SetColor(r, g, b, a float64)   {}
func (s *recordingSurface) SetFontSize(size float64)      {}
func (s *recordingSurface) SetFontFace(face string) error { return nil }

func (s *recordingSurface) StrokeRectangle(x, y, w, h float64) {
	s.rects = append(s.rects, [4]float64{x, y, w, h})
}

func (s *recordingSurface) MoveTo(x, y float64) {
	s.moves = append(s.moves, [2]float64{x, y})
}

func (s *recordingSurface) ShowText(text string) {
	s.texts = append(s.texts, text)
}

func (s *recordingSurface) Encode(path string) error {
	return s.encode
}

func writeImage(t *testing.T, path string, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}

	f, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return data
}

func helloDocument(box detector.BoundingBox) *detector.Document {
	return &detector.Document{
		Blocks: []detector.Block{
			{Type: ptr("PAGE"), Box: &detector.BoundingBox{Width: 1, Height: 1}},
			{Text: ptr("hello"), Box: &box},
			{Type: ptr("WORD"), Text: ptr("hello"), Box: &box},
		},
	}
}

func TestTranslate(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	original := writeImage(t, src, 200, 100)

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4})}
	tr := &fakeTranslator{text: "こんにちは"}

	p := pipeline.New(d, tr)

	err := p.Translate(context.Background(), src, dest, nil)
	require.NoError(t, err)

	require.Equal(t, 1, d.calls)
	require.Equal(t, "in.png", d.input.Name)
	require.Equal(t, "image/png", d.input.ContentType)
	require.Equal(t, original, d.input.Content)

	require.Equal(t, 1, tr.calls)
	require.Equal(t, "en", tr.options[0].SourceLanguage)
	require.Equal(t, "ja", tr.options[0].TargetLanguage)

	result, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.NotEqual(t, original, result)

	after, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, original, after)
}

func TestTranslateLanguages(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 10, 10)

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{})}
	tr := &fakeTranslator{text: "hallo"}

	p := pipeline.New(d, tr, pipeline.WithRenderer(&fakeRenderer{}))

	err := p.Translate(context.Background(), src, dest, &pipeline.TranslateOptions{
		SourceLanguage: "ja",
		TargetLanguage: "de",
	})

	require.NoError(t, err)
	require.Equal(t, []translator.TranslateOptions{{SourceLanguage: "ja", TargetLanguage: "de"}}, tr.options)
}

func TestTranslateZeroBox(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 64, 32)

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{})}
	tr := &fakeTranslator{text: "こんにちは"}

	surface := &recordingSurface{}

	r := renderer.New(renderer.WithOpener(func(path string, fonts *renderer.Fonts) (renderer.Surface, error) {
		return surface, nil
	}))

	p := pipeline.New(d, tr, pipeline.WithRenderer(r))

	err := p.Translate(context.Background(), src, dest, nil)
	require.NoError(t, err)

	require.Equal(t, [][4]float64{{0, 0, 0, 0}}, surface.rects)
	require.Equal(t, [][2]float64{{0, 0}}, surface.moves)
	require.Equal(t, []string{"こんにちは"}, surface.texts)

	require.FileExists(t, dest)
}

func TestTranslateZeroBoxCanvas(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 64, 32)

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{})}
	tr := &fakeTranslator{text: "こんにちは"}

	err := pipeline.New(d, tr).Translate(context.Background(), src, dest, nil)
	require.NoError(t, err)

	require.FileExists(t, dest)
}

func TestTranslateSamePath(t *testing.T) {
	dir := t.TempDir()

	paths := [][2]string{
		{filepath.Join(dir, "in.png"), filepath.Join(dir, "in.png")},
		{filepath.Join(dir, "in.png"), dir + "/./sub/../in.png"},
	}

	for _, pair := range paths {
		d := &fakeDetector{document: helloDocument(detector.BoundingBox{})}
		tr := &fakeTranslator{text: "x"}
		r := &fakeRenderer{}

		p := pipeline.New(d, tr, pipeline.WithRenderer(r))

		err := p.Translate(context.Background(), pair[0], pair[1], nil)
		require.ErrorIs(t, err, pipeline.ErrSamePath)

		require.Zero(t, d.calls)
		require.Zero(t, tr.calls)
		require.Zero(t, r.calls)
	}

	require.NoFileExists(t, filepath.Join(dir, "in.png"))
}

type quotaError struct{}

func (quotaError) Error() string { return "quota exceeded" }

func TestTranslateTranslatorError(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 10, 10)

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{})}
	tr := &fakeTranslator{err: quotaError{}}
	r := &fakeRenderer{}

	p := pipeline.New(d, tr, pipeline.WithRenderer(r))

	err := p.Translate(context.Background(), src, dest, nil)
	require.Equal(t, quotaError{}, err)

	var target quotaError
	require.ErrorAs(t, err, &target)

	require.Zero(t, r.calls)
	require.NoFileExists(t, dest)
}

func TestTranslateDetectorError(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 10, 10)

	failure := errors.New("throttled")

	d := &fakeDetector{err: failure}
	tr := &fakeTranslator{}

	err := pipeline.New(d, tr).Translate(context.Background(), src, dest, nil)
	require.Same(t, failure, err)

	require.Zero(t, tr.calls)
	require.NoFileExists(t, dest)
}

func TestTranslateDetectorErrorKeepsExistingDest(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 10, 10)
	require.NoError(t, os.WriteFile(dest, []byte("previous"), 0644))

	failure := errors.New("throttled")

	err := pipeline.New(&fakeDetector{err: failure}, &fakeTranslator{}).Translate(context.Background(), src, dest, nil)
	require.Same(t, failure, err)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "previous", string(data))
}

func TestTranslateRenderError(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	original := writeImage(t, src, 10, 10)

	failure := errors.New("encode failed")

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{Width: 0.5, Height: 0.5})}
	tr := &fakeTranslator{text: "こんにちは"}

	r := renderer.New(renderer.WithOpener(func(path string, fonts *renderer.Fonts) (renderer.Surface, error) {
		require.FileExists(t, path)
		return &recordingSurface{encode: failure}, nil
	}))

	err := pipeline.New(d, tr, pipeline.WithRenderer(r)).Translate(context.Background(), src, dest, nil)
	require.Same(t, failure, err)

	require.NoFileExists(t, dest)

	after, err := os.ReadFile(src)
	require.NoError(t, err)
	require.Equal(t, original, after)
}

func TestTranslatePartialOutputRemoved(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 10, 10)

	failure := errors.New("draw failed")

	d := &fakeDetector{document: helloDocument(detector.BoundingBox{})}
	tr := &fakeTranslator{text: "x"}
	r := &fakeRenderer{write: true, err: failure}

	err := pipeline.New(d, tr, pipeline.WithRenderer(r)).Translate(context.Background(), src, dest, nil)
	require.Same(t, failure, err)

	require.Equal(t, 1, r.calls)
	require.NoFileExists(t, dest)
}

func TestTranslateMissingGeometry(t *testing.T) {
	dir := t.TempDir()

	src := filepath.Join(dir, "in.png")
	dest := filepath.Join(dir, "out.png")

	writeImage(t, src, 10, 10)

	d := &fakeDetector{document: &detector.Document{
		Blocks: []detector.Block{{Text: ptr("hello")}},
	}}

	tr := &fakeTranslator{text: "x"}

	err := pipeline.New(d, tr).Translate(context.Background(), src, dest, nil)
	require.ErrorIs(t, err, overlay.ErrMissingGeometry)

	require.Zero(t, tr.calls)
	require.NoFileExists(t, dest)
}
