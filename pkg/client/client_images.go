package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

type ImageService struct {
	Options []RequestOption
}

func NewImageService(opts ...RequestOption) ImageService {
	return ImageService{
		Options: opts,
	}
}

type TranslateRequest struct {
	Name   string
	Reader io.Reader

	SourceLanguage string
	TargetLanguage string

	// Format is the output extension, e.g. "png" or "webp".
	Format string

	Detector   string
	Translator string
}

type Image struct {
	Content     []byte
	ContentType string
}

// Error is a non-success response of the API.
type Error struct {
	StatusCode int

	Type    string
	Message string
}

func (e *Error) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}

	return e.Message
}

func (r *ImageService) Translate(ctx context.Context, input TranslateRequest, opts ...RequestOption) (*Image, error) {
	cfg := newRequestConfig(append(r.Options, opts...)...)
	url := strings.TrimRight(cfg.URL, "/") + "/v1/images/translate"

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	fields := map[string]string{
		"source":     input.SourceLanguage,
		"target":     input.TargetLanguage,
		"format":     input.Format,
		"detector":   input.Detector,
		"translator": input.Translator,
	}

	for k, v := range fields {
		if v == "" {
			continue
		}

		if err := w.WriteField(k, v); err != nil {
			return nil, err
		}
	}

	name := input.Name

	if name == "" {
		name = "image"
	}

	part, err := w.CreateFormFile("file", name)

	if err != nil {
		return nil, err
	}

	if _, err := io.Copy(part, input.Reader); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)

	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", w.FormDataContentType())

	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	resp, err := cfg.Client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	data, err := io.ReadAll(resp.Body)

	if err != nil {
		return nil, err
	}

	return &Image{
		Content:     data,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	result := &Error{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(data)),
	}

	var body struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		result.Type = body.Error.Type
		result.Message = body.Error.Message
	}

	if result.Message == "" {
		result.Message = http.StatusText(resp.StatusCode)
	}

	return result
}
