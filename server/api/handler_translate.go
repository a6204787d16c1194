package api

import (
	"errors"
	"image"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/overlay"
	"github.com/adrianliechti/imgtrans/pkg/pipeline"
	"github.com/adrianliechti/imgtrans/pkg/translator"

	"github.com/aws/smithy-go"
)

func (h *Handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	p, err := h.Pipeline(valueDetector(r), valueTranslator(r))

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	input, err := readFile(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	format, err := valueFormat(r)

	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if format == "" {
		format = input.extension()
	}

	dir, err := os.MkdirTemp("", "imgtrans-")

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	defer os.RemoveAll(dir)

	src := filepath.Join(dir, "input"+input.extension())
	dest := filepath.Join(dir, "output"+format)

	if err := os.WriteFile(src, input.Content, 0600); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	options := &pipeline.TranslateOptions{
		SourceLanguage: valueSourceLanguage(r),
		TargetLanguage: valueTargetLanguage(r),
	}

	if err := p.Translate(r.Context(), src, dest, options); err != nil {
		writeTranslateError(w, err)
		return
	}

	data, err := os.ReadFile(dest)

	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", contentType(dest))
	w.Write(data)
}

func writeTranslateError(w http.ResponseWriter, err error) {
	var apiErr smithy.APIError

	switch {
	case errors.Is(err, pipeline.ErrSamePath),
		errors.Is(err, overlay.ErrMissingGeometry),
		errors.Is(err, detector.ErrUnsupported),
		errors.Is(err, translator.ErrUnsupported),
		errors.Is(err, image.ErrFormat):
		writeError(w, http.StatusBadRequest, err)

	case errors.As(err, &apiErr):
		slog.Warn("remote service failed", "code", apiErr.ErrorCode(), "error", apiErr.ErrorMessage())

		writeJson(w, http.StatusBadGateway, ErrorResponse{
			Error: Error{
				Code:    http.StatusBadGateway,
				Message: apiErr.ErrorMessage(),

				Type: apiErr.ErrorCode(),
			},
		})

	default:
		slog.Error("image translation failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
	}
}
