package renderer

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

var fontExtensions = []string{".ttf", ".otf", ".ttc", ".otc"}

// Japanese-capable families tried when the requested face is not installed,
// including the file names some of them ship under.
var cjkFaces = []string{
	"MigMix 1M",
	"Noto Sans CJK JP",
	"Noto Sans CJK",
	"Noto Sans JP",
	"Noto Sans Mono CJK JP",
	"Source Han Sans",
	"IPAexGothic",
	"ipaexg",
	"IPAGothic",
	"ipag",
	"TakaoGothic",
	"VL Gothic",
	"Hiragino Sans",
	"Yu Gothic",
	"YuGoth",
	"MS Gothic",
	"msgothic",
	"Droid Sans Fallback",
	"WenQuanYi Zen Hei",
}

// Fonts resolves a font face name to an OpenType font. An explicit File wins;
// otherwise Dirs and the system font directories are searched for a file
// named after the face, then for a known CJK family. Go Regular is used when
// nothing matches.
type Fonts struct {
	File string
	Dirs []string
}

func (f *Fonts) Load(face string) (*sfnt.Font, error) {
	if f.File != "" {
		return parseFont(f.File, face)
	}

	files := f.files()

	for _, name := range append([]string{face}, cjkFaces...) {
		path := matchFont(files, name)

		if path == "" {
			continue
		}

		font, err := parseFont(path, name)

		if err != nil {
			slog.Warn("unable to parse font", "face", name, "path", path, "error", err)
			continue
		}

		if name == face {
			slog.Debug("font resolved", "face", face, "path", path)
		} else {
			slog.Warn("font not found, using fallback", "face", face, "fallback", name, "path", path)
		}

		return font, nil
	}

	slog.Warn("font not found, using fallback", "face", face, "fallback", "Go Regular")

	return opentype.Parse(goregular.TTF)
}

func (f *Fonts) find(face string) string {
	return matchFont(f.files(), face)
}

// files lists the font files below Dirs and the system font directories, in
// search order.
func (f *Fonts) files() []string {
	dirs := append([]string{}, f.Dirs...)
	dirs = append(dirs, systemFontDirs()...)

	var files []string

	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}

				return nil
			}

			if d.IsDir() {
				return nil
			}

			if slices.Contains(fontExtensions, strings.ToLower(filepath.Ext(path))) {
				files = append(files, path)
			}

			return nil
		})
	}

	return files
}

func matchFont(files []string, face string) string {
	name := normalizeFontName(face)

	if name == "" {
		return ""
	}

	for _, path := range files {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		if strings.HasPrefix(normalizeFontName(base), name) {
			return path
		}
	}

	return ""
}

// parseFont reads a single font or a collection. From a collection the first
// font whose family matches face is used, else the first font.
func parseFont(path, face string) (*sfnt.Font, error) {
	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	collection, err := opentype.ParseCollection(data)

	if err != nil {
		return nil, err
	}

	name := normalizeFontName(face)

	var buf sfnt.Buffer

	for i := 0; i < collection.NumFonts() && name != ""; i++ {
		font, err := collection.Font(i)

		if err != nil {
			return nil, err
		}

		family, err := font.Name(&buf, sfnt.NameIDFamily)

		if err == nil && strings.HasPrefix(normalizeFontName(family), name) {
			return font, nil
		}
	}

	return collection.Font(0)
}

func normalizeFontName(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_', '.':
			return -1
		}

		return unicode.ToLower(r)
	}, name)
}

func systemFontDirs() []string {
	var dirs []string

	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "darwin":
		dirs = append(dirs, "/System/Library/Fonts", "/Library/Fonts")

		if home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}

	case "windows":
		dirs = append(dirs, filepath.Join(os.Getenv("WINDIR"), "Fonts"))

	default:
		dirs = append(dirs, "/usr/share/fonts", "/usr/local/share/fonts")

		if home != "" {
			dirs = append(dirs, filepath.Join(home, ".fonts"), filepath.Join(home, ".local", "share", "fonts"))
		}
	}

	return dirs
}
