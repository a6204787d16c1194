package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/adrianliechti/imgtrans/pkg/client"

	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	var (
		path   string
		token  string
		target string
		name   string
		data   string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		token = r.Header.Get("Authorization")
		target = r.FormValue("target")

		if f, header, err := r.FormFile("file"); err == nil {
			content, _ := io.ReadAll(f)

			name = header.Filename
			data = string(content)
		}

		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("rendered"))
	}))

	defer server.Close()

	c := client.New(server.URL, client.WithToken("secret"))

	image, err := c.Images.Translate(context.Background(), client.TranslateRequest{
		Name:   "photo.png",
		Reader: strings.NewReader("source"),

		TargetLanguage: "de",
	})

	require.NoError(t, err)
	require.Equal(t, "rendered", string(image.Content))
	require.Equal(t, "image/png", image.ContentType)

	require.Equal(t, "/v1/images/translate", path)
	require.Equal(t, "Bearer secret", token)
	require.Equal(t, "de", target)
	require.Equal(t, "photo.png", name)
	require.Equal(t, "source", data)
}

func TestTranslateError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":{"code":502,"type":"ThrottlingException","message":"slow down"}}`))
	}))

	defer server.Close()

	c := client.New(server.URL)

	_, err := c.Images.Translate(context.Background(), client.TranslateRequest{
		Reader: strings.NewReader("source"),
	})

	var apiErr *client.Error
	require.True(t, errors.As(err, &apiErr))

	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, "ThrottlingException", apiErr.Type)
	require.EqualError(t, err, "ThrottlingException: slow down")
}

func TestTranslatePlainError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))

	defer server.Close()

	_, err := client.New(server.URL).Images.Translate(context.Background(), client.TranslateRequest{
		Reader: strings.NewReader("source"),
	})

	require.EqualError(t, err, "Unauthorized")
}
