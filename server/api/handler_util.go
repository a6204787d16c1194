package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

var errInvalidFormat = errors.New("invalid format")

var formats = []string{"png", "jpg", "jpeg", "gif", "tif", "tiff", "bmp", "webp"}

type file struct {
	Name string

	Content     []byte
	ContentType string
}

func valueDetector(r *http.Request) string {
	return r.FormValue("detector")
}

func valueTranslator(r *http.Request) string {
	return r.FormValue("translator")
}

func valueSourceLanguage(r *http.Request) string {
	if val := r.FormValue("source"); val != "" {
		return val
	}

	return r.FormValue("from")
}

func valueTargetLanguage(r *http.Request) string {
	if val := r.FormValue("target"); val != "" {
		return val
	}

	if val := r.FormValue("to"); val != "" {
		return val
	}

	return r.FormValue("lang")
}

// valueFormat returns the requested output extension with a leading dot.
// Only bare image extensions are accepted.
func valueFormat(r *http.Request) (string, error) {
	val := strings.ToLower(r.FormValue("format"))

	if val == "" {
		return "", nil
	}

	if strings.ContainsAny(val, `/\`) || strings.Contains(val, "..") {
		return "", errInvalidFormat
	}

	val = strings.TrimPrefix(val, ".")

	if !slices.Contains(formats, val) {
		return "", errInvalidFormat
	}

	return "." + val, nil
}

func readFile(r *http.Request) (*file, error) {
	if f, header, err := r.FormFile("file"); err == nil {
		defer f.Close()

		data, err := io.ReadAll(f)

		if err != nil {
			return nil, err
		}

		return &file{
			Name: header.Filename,

			Content:     data,
			ContentType: header.Header.Get("Content-Type"),
		}, nil
	}

	contentType := r.Header.Get("Content-Type")
	contentDisposition := r.Header.Get("Content-Disposition")

	_, params, _ := mime.ParseMediaType(contentDisposition)

	filename := params["filename*"]
	filename = strings.TrimPrefix(filename, "UTF-8''")
	filename = strings.TrimPrefix(filename, "utf-8''")

	if filename == "" {
		filename = params["filename"]
	}

	data, err := io.ReadAll(r.Body)

	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, errors.New("missing image")
	}

	return &file{
		Name: filename,

		Content:     data,
		ContentType: contentType,
	}, nil
}

// extension picks a file extension for the upload from its name or, failing
// that, its content type.
func (f *file) extension() string {
	if ext := strings.ToLower(filepath.Ext(f.Name)); slices.Contains(formats, strings.TrimPrefix(ext, ".")) {
		return ext
	}

	mediaType, _, _ := mime.ParseMediaType(f.ContentType)

	switch mediaType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/tiff":
		return ".tiff"
	case "image/bmp":
		return ".bmp"
	case "image/webp":
		return ".webp"
	}

	return ".png"
}

func contentType(path string) string {
	if val := mime.TypeByExtension(filepath.Ext(path)); val != "" {
		return val
	}

	return "application/octet-stream"
}
