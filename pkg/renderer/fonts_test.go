package renderer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

func glyphIndex(t *testing.T, font *sfnt.Font, r rune) sfnt.GlyphIndex {
	t.Helper()

	idx, err := font.GlyphIndex(&sfnt.Buffer{}, r)
	require.NoError(t, err)

	return idx
}

func TestNormalizeFontName(t *testing.T) {
	require.Equal(t, "migmix1m", normalizeFontName("MigMix 1M"))
	require.Equal(t, "migmix1mregular", normalizeFontName("migmix-1m-regular"))
	require.Equal(t, "", normalizeFontName(""))
}

func TestFontsFind(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "nested", "Go-Regular.ttf")

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Go-Regular.txt"), []byte("x"), 0644))

	fonts := &Fonts{Dirs: []string{dir}}

	require.Equal(t, path, fonts.find("Go Regular"))
	require.Equal(t, "", fonts.find("Definitely Missing Face 42"))

	font, err := fonts.Load("go regular")
	require.NoError(t, err)
	require.NotNil(t, font)
}

func TestFontsFallback(t *testing.T) {
	fonts := &Fonts{Dirs: []string{t.TempDir()}}

	font, err := fonts.Load("Definitely Missing Face 42")
	require.NoError(t, err)
	require.NotNil(t, font)
}

func TestFontsFile(t *testing.T) {
	fonts := &Fonts{File: filepath.Join(t.TempDir(), "missing.ttf")}

	_, err := fonts.Load("Go Regular")
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFontsOpenTypeAndCollections(t *testing.T) {
	for _, name := range []string{"MigMix-1M-Regular.otf", "MigMix-1M.ttc", "migmix-1m.OTC"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)

			require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))

			fonts := &Fonts{Dirs: []string{dir}}
			require.Equal(t, path, fonts.find("MigMix 1M"))

			font, err := fonts.Load("MigMix 1M")
			require.NoError(t, err)
			require.NotZero(t, glyphIndex(t, font, 'A'))
		})
	}
}

func TestFontsCJKFallback(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ipag.ttf")

	require.NoError(t, os.WriteFile(path, goregular.TTF, 0644))

	fonts := &Fonts{Dirs: []string{dir}}
	require.Equal(t, "", fonts.find("Definitely Missing Face 42"))

	font, err := fonts.Load("Definitely Missing Face 42")
	require.NoError(t, err)
	require.NotZero(t, glyphIndex(t, font, 'A'))
}

func TestFontsJapaneseGlyphs(t *testing.T) {
	fonts := &Fonts{Dirs: []string{t.TempDir()}}
	files := fonts.files()

	installed := false

	for _, face := range cjkFaces {
		if matchFont(files, face) != "" {
			installed = true
			break
		}
	}

	if !installed {
		t.Skip("no Japanese font installed")
	}

	font, err := fonts.Load("MigMix 1M")
	require.NoError(t, err)

	for _, r := range "こんにちは" {
		require.NotZero(t, glyphIndex(t, font, r), "missing glyph for %q", r)
	}
}
