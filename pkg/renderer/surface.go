package renderer

// Surface is an image opened for drawing. Color and font settings stick until
// changed; text is drawn at the current point with its baseline there.
type Surface interface {
	SetColor(r, g, b, a float64)
	SetFontSize(size float64)
	SetFontFace(face string) error

	StrokeRectangle(x, y, w, h float64)

	MoveTo(x, y float64)
	ShowText(text string)

	Encode(path string) error
}

// Opener opens the image at path as a Surface.
type Opener func(path string, fonts *Fonts) (Surface, error)
