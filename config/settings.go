package config

import (
	"errors"

	"github.com/adrianliechti/imgtrans/pkg/renderer"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is an 8-bit color with a separate opacity in the range 0..1.
type RGBA struct {
	Red   uint8
	Green uint8
	Blue  uint8

	Alpha float64
}

type Settings struct {
	DetectorRegion   string
	TranslatorRegion string

	FontFace string
	FontFile string
	FontDirs []string

	FontSize  float64
	FontColor RGBA
}

func DefaultSettings() *Settings {
	return &Settings{
		DetectorRegion:   "us-east-1",
		TranslatorRegion: "ap-northeast-1",

		FontFace: "MigMix 1M",

		FontSize:  16,
		FontColor: RGBA{Red: 255, Alpha: 1},
	}
}

// Configure passes the settings to fn for in-place changes.
func (s *Settings) Configure(fn func(*Settings)) {
	fn(s)
}

// Style converts the font settings for the renderer.
func (s *Settings) Style() *renderer.Style {
	return &renderer.Style{
		Color: renderer.Color{
			Red:   float64(s.FontColor.Red) / 255,
			Green: float64(s.FontColor.Green) / 255,
			Blue:  float64(s.FontColor.Blue) / 255,
			Alpha: s.FontColor.Alpha,
		},

		FontFace: s.FontFace,
		FontSize: s.FontSize,

		Fonts: &renderer.Fonts{
			File: s.FontFile,
			Dirs: s.FontDirs,
		},
	}
}

type settingsConfig struct {
	DetectorRegion   string `yaml:"detector_region"`
	TranslatorRegion string `yaml:"translator_region"`

	Font fontConfig `yaml:"font"`
}

type fontConfig struct {
	Face string   `yaml:"face"`
	File string   `yaml:"file"`
	Dirs []string `yaml:"dirs"`

	Size *float64 `yaml:"size"`

	Color string    `yaml:"color"`
	Alpha *float64  `yaml:"alpha"`
	RGBA  []float64 `yaml:"rgba"`
}

func (c *Config) registerSettings(f *configFile) error {
	if f.Address != "" {
		c.Address = f.Address
	}

	s := f.Settings

	if s.DetectorRegion != "" {
		c.Settings.DetectorRegion = s.DetectorRegion
	}

	if s.TranslatorRegion != "" {
		c.Settings.TranslatorRegion = s.TranslatorRegion
	}

	if s.Font.Face != "" {
		c.Settings.FontFace = s.Font.Face
	}

	if s.Font.File != "" {
		c.Settings.FontFile = s.Font.File
	}

	if len(s.Font.Dirs) > 0 {
		c.Settings.FontDirs = s.Font.Dirs
	}

	if s.Font.Size != nil {
		if *s.Font.Size <= 0 {
			return errors.New("invalid font size")
		}

		c.Settings.FontSize = *s.Font.Size
	}

	color, err := parseColor(s.Font, c.Settings.FontColor)

	if err != nil {
		return err
	}

	c.Settings.FontColor = color

	return nil
}

func parseColor(cfg fontConfig, fallback RGBA) (RGBA, error) {
	result := fallback

	if cfg.Color != "" && len(cfg.RGBA) > 0 {
		return result, errors.New("font color and rgba are mutually exclusive")
	}

	if cfg.Color != "" {
		c, err := colorful.Hex(cfg.Color)

		if err != nil {
			return result, err
		}

		r, g, b := c.RGB255()

		result = RGBA{Red: r, Green: g, Blue: b, Alpha: 1}
	}

	if len(cfg.RGBA) > 0 {
		if len(cfg.RGBA) != 4 {
			return result, errors.New("rgba requires four values")
		}

		for _, v := range cfg.RGBA[:3] {
			if v < 0 || v > 255 {
				return result, errors.New("rgba channel out of range")
			}
		}

		result = RGBA{
			Red:   uint8(cfg.RGBA[0]),
			Green: uint8(cfg.RGBA[1]),
			Blue:  uint8(cfg.RGBA[2]),

			Alpha: cfg.RGBA[3],
		}
	}

	if cfg.Alpha != nil {
		result.Alpha = *cfg.Alpha
	}

	if result.Alpha < 0 || result.Alpha > 1 {
		return result, errors.New("alpha must be between 0 and 1")
	}

	return result, nil
}
