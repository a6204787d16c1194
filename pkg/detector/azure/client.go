package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/adrianliechti/imgtrans/pkg/detector"
)

var _ detector.Provider = (*Client)(nil)

const (
	BlockTypeWord          = "WORD"
	BlockTypeSelectionMark = "SELECTION_MARK"
)

type Client struct {
	client *http.Client

	url   string
	token string

	interval time.Duration
}

func New(url string, options ...Option) (*Client, error) {
	if url == "" {
		return nil, errors.New("invalid url")
	}

	c := &Client{
		client: http.DefaultClient,

		url: url,

		interval: 2 * time.Second,
	}

	for _, option := range options {
		option(c)
	}

	return c, nil
}

func (c *Client) Detect(ctx context.Context, input detector.File, options *detector.DetectOptions) (*detector.Document, error) {
	if options == nil {
		options = new(detector.DetectOptions)
	}

	if !isSupported(input) {
		return nil, detector.ErrUnsupported
	}

	u, _ := url.Parse(strings.TrimRight(c.url, "/") + "/documentintelligence/documentModels/prebuilt-read:analyze")

	query := u.Query()
	query.Set("api-version", "2024-11-30")

	u.RawQuery = query.Encode()

	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(input.Content))
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, convertError(resp)
	}

	operationURL := resp.Header.Get("Operation-Location")

	if operationURL == "" {
		return nil, errors.New("missing operation location")
	}

	for {
		operation, err := c.poll(ctx, operationURL)

		if err != nil {
			return nil, err
		}

		if operation.Status == OperationStatusRunning || operation.Status == OperationStatusNotStarted {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.interval):
			}

			continue
		}

		if operation.Status != OperationStatusSucceeded {
			return nil, errors.New("operation " + string(operation.Status))
		}

		return toDocument(operation.Result), nil
	}
}

func (c *Client) poll(ctx context.Context, operationURL string) (*AnalyzeOperation, error) {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, operationURL, nil)
	req.Header.Set("Ocp-Apim-Subscription-Key", c.token)

	resp, err := c.client.Do(req)

	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, convertError(resp)
	}

	var operation AnalyzeOperation

	if err := json.NewDecoder(resp.Body).Decode(&operation); err != nil {
		return nil, err
	}

	return &operation, nil
}

// Lines become plain blocks. Words and selection marks carry a type so the
// overlay skips them.
func toDocument(result AnalyzeResult) *detector.Document {
	document := &detector.Document{
		Blocks: []detector.Block{},
	}

	for _, page := range result.Pages {
		for _, line := range page.Lines {
			document.Blocks = append(document.Blocks, detector.Block{
				Text: &line.Content,
				Box:  convertPolygon(line.Polygon, page.Width, page.Height),
			})
		}

		for _, word := range page.Words {
			document.Blocks = append(document.Blocks, detector.Block{
				Type: ptr(BlockTypeWord),
				Text: &word.Content,
				Box:  convertPolygon(word.Polygon, page.Width, page.Height),
			})
		}

		for _, mark := range page.SelectionMarks {
			document.Blocks = append(document.Blocks, detector.Block{
				Type: ptr(BlockTypeSelectionMark),
				Box:  convertPolygon(mark.Polygon, page.Width, page.Height),
			})
		}
	}

	return document
}

func isSupported(file detector.File) bool {
	if file.Name == "" && file.ContentType == "" {
		return true
	}

	if file.Name != "" {
		ext := strings.ToLower(path.Ext(file.Name))

		if slices.Contains(SupportedExtensions, ext) {
			return true
		}
	}

	if file.ContentType != "" {
		if slices.Contains(SupportedMimeTypes, file.ContentType) {
			return true
		}
	}

	return false
}

// convertPolygon turns [x1, y1, x2, y2, ...] page units into a box relative to
// the page size.
func convertPolygon(polygon []float64, width, height float64) *detector.BoundingBox {
	if len(polygon) < 2 || len(polygon)%2 != 0 || width <= 0 || height <= 0 {
		return nil
	}

	minX, minY := polygon[0], polygon[1]
	maxX, maxY := polygon[0], polygon[1]

	for i := 2; i < len(polygon); i += 2 {
		minX = min(minX, polygon[i])
		maxX = max(maxX, polygon[i])

		minY = min(minY, polygon[i+1])
		maxY = max(maxY, polygon[i+1])
	}

	return &detector.BoundingBox{
		Left:   minX / width,
		Top:    minY / height,
		Width:  (maxX - minX) / width,
		Height: (maxY - minY) / height,
	}
}

func ptr[T any](v T) *T {
	return &v
}

func convertError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	if len(data) == 0 {
		return errors.New(http.StatusText(resp.StatusCode))
	}

	return errors.New(string(data))
}
