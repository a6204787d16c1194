package textract_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/imgtrans/pkg/detector"
	"github.com/adrianliechti/imgtrans/pkg/detector/textract"

	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/require"
)

const detectResponse = `{
	"DocumentMetadata": {"Pages": 1},
	"Blocks": [
		{"BlockType": "PAGE", "Geometry": {"BoundingBox": {"Left": 0, "Top": 0, "Width": 1, "Height": 1}}},
		{"BlockType": "LINE", "Text": "hello world", "Geometry": {"BoundingBox": {"Left": 0.1, "Top": 0.2, "Width": 0.3, "Height": 0.4}}},
		{"BlockType": "WORD", "Text": "hello", "TextType": "PRINTED", "Geometry": {"BoundingBox": {"Left": 0.1, "Top": 0.2, "Width": 0.1, "Height": 0.4}}}
	]
}`

func newClient(t *testing.T, handler http.HandlerFunc) *textract.Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := textract.New("us-east-1",
		textract.WithEndpoint(server.URL),
		textract.WithCredentials(credentials.NewStaticCredentialsProvider("AKID", "SECRET", "")),
	)

	require.NoError(t, err)

	return c
}

func TestDetect(t *testing.T) {
	var target string
	var body []byte

	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		target = r.Header.Get("X-Amz-Target")
		body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/x-amz-json-1.1")
		w.Write([]byte(detectResponse))
	})

	input := detector.File{
		Name:    "sample.png",
		Content: []byte("png-bytes"),
	}

	result, err := c.Detect(context.Background(), input, nil)
	require.NoError(t, err)

	require.Equal(t, "Textract.DetectDocumentText", target)
	require.Contains(t, string(body), `"Bytes"`)

	require.Len(t, result.Blocks, 3)

	page := result.Blocks[0]
	require.Nil(t, page.Type)
	require.Nil(t, page.Text)

	line := result.Blocks[1]
	require.Nil(t, line.Type)
	require.Equal(t, "hello world", *line.Text)
	require.Equal(t, &detector.BoundingBox{Left: 0.1, Top: 0.2, Width: 0.3, Height: 0.4}, line.Box)

	word := result.Blocks[2]
	require.NotNil(t, word.Type)
	require.Equal(t, "PRINTED", *word.Type)
}

func TestDetectError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-amz-json-1.1")
		w.Header().Set("X-Amzn-Errortype", "InvalidParameterException")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"__type": "InvalidParameterException", "Message": "Request has invalid parameters"}`))
	})

	_, err := c.Detect(context.Background(), detector.File{Content: []byte("x")}, nil)
	require.Error(t, err)

	var apiErr smithy.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "InvalidParameterException", apiErr.ErrorCode())
}

func TestDetectUnsupported(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request")
	})

	_, err := c.Detect(context.Background(), detector.File{Name: "sample.docx", Content: []byte("x")}, nil)
	require.ErrorIs(t, err, detector.ErrUnsupported)
}
