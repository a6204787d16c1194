package renderer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	_ "golang.org/x/image/webp"
)

var _ Surface = (*Canvas)(nil)

// Canvas is a Surface backed by a gg drawing context.
type Canvas struct {
	dc    *gg.Context
	fonts *Fonts

	font *sfnt.Font
	size float64

	x, y float64
}

// OpenCanvas decodes the image at path with any registered codec.
func OpenCanvas(path string, fonts *Fonts) (Surface, error) {
	img, err := imaging.Open(path)

	if err != nil {
		return nil, err
	}

	if fonts == nil {
		fonts = new(Fonts)
	}

	return &Canvas{
		dc:    gg.NewContextForImage(img),
		fonts: fonts,

		size: 16,
	}, nil
}

func (c *Canvas) SetColor(r, g, b, a float64) {
	c.dc.SetRGBA(r, g, b, a)
}

func (c *Canvas) SetFontSize(size float64) {
	c.size = size

	if err := c.applyFace(); err != nil {
		slog.Warn("unable to apply font size", "size", size, "error", err)
	}
}

func (c *Canvas) SetFontFace(face string) error {
	font, err := c.fonts.Load(face)

	if err != nil {
		return err
	}

	c.font = font

	return c.applyFace()
}

func (c *Canvas) applyFace() error {
	if c.font == nil {
		return nil
	}

	face, err := opentype.NewFace(c.font, &opentype.FaceOptions{
		Size: c.size,
		DPI:  72,
	})

	if err != nil {
		return err
	}

	c.dc.SetFontFace(face)

	return nil
}

func (c *Canvas) StrokeRectangle(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
}

func (c *Canvas) MoveTo(x, y float64) {
	c.x = x
	c.y = y
}

func (c *Canvas) ShowText(text string) {
	c.dc.DrawString(text, c.x, c.y)

	w, _ := c.dc.MeasureString(text)
	c.x += w
}

// Encode writes the image in the format implied by the file extension.
func (c *Canvas) Encode(path string) error {
	img := c.dc.Image()

	if strings.EqualFold(filepath.Ext(path), ".webp") {
		f, err := os.Create(path)

		if err != nil {
			return err
		}

		if err := webp.Encode(f, img, &webp.Options{Lossless: true}); err != nil {
			f.Close()
			return err
		}

		return f.Close()
	}

	return imaging.Save(img, path)
}
