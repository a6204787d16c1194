package renderer

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/adrianliechti/imgtrans/pkg/overlay"
)

type Provider interface {
	Render(ctx context.Context, blocks []overlay.RenderBlock, src, dest string, style *Style) error
}

// Color components are in the range 0..1.
type Color struct {
	Red   float64
	Green float64
	Blue  float64
	Alpha float64
}

type Style struct {
	Color Color

	FontFace string
	FontSize float64

	Fonts *Fonts
}

// DefaultStyle draws opaque red outlines and text at 16 points.
func DefaultStyle() *Style {
	return &Style{
		Color: Color{Red: 1, Alpha: 1},

		FontFace: "MigMix 1M",
		FontSize: 16,
	}
}

var _ Provider = (*Renderer)(nil)

type Renderer struct {
	open Opener
}

type Option func(*Renderer)

// WithOpener replaces the function used to open the destination image.
func WithOpener(open Opener) Option {
	return func(r *Renderer) {
		r.open = open
	}
}

func New(options ...Option) *Renderer {
	r := &Renderer{
		open: OpenCanvas,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Render copies src to dest and draws every block onto dest: an outline of
// its rectangle and its text anchored at the rectangle's top-left corner.
// If any step fails dest is removed and the step's error is returned.
func (r *Renderer) Render(ctx context.Context, blocks []overlay.RenderBlock, src, dest string, style *Style) (err error) {
	if style == nil {
		style = new(Style)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	in, err := os.Open(src)

	if err != nil {
		return err
	}

	defer in.Close()

	defer func() {
		if err != nil {
			Discard(dest)
		}
	}()

	if err := copyFile(in, dest); err != nil {
		return err
	}

	surface, err := r.open(dest, style.Fonts)

	if err != nil {
		return err
	}

	c := style.Color
	surface.SetColor(c.Red, c.Green, c.Blue, c.Alpha)

	if style.FontSize > 0 {
		surface.SetFontSize(style.FontSize)
	}

	if err := surface.SetFontFace(style.FontFace); err != nil {
		return err
	}

	for _, b := range blocks {
		x := float64(b.Rect.Left)
		y := float64(b.Rect.Top)

		surface.StrokeRectangle(x, y, float64(b.Rect.Width), float64(b.Rect.Height))

		surface.MoveTo(x, y)
		surface.ShowText(b.Text)
	}

	if err := surface.Encode(dest); err != nil {
		return err
	}

	slog.Debug("image rendered", "path", dest, "blocks", len(blocks))

	return nil
}

// Discard removes a partially written output file. A missing file is not an
// error; any other removal failure is logged.
func Discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("unable to remove output file", "path", path, "error", err)
	}
}

func copyFile(in io.Reader, dest string) error {
	out, err := os.Create(dest)

	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
