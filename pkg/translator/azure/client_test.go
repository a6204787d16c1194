package azure_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/adrianliechti/imgtrans/pkg/translator"
	"github.com/adrianliechti/imgtrans/pkg/translator/azure"

	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	var query url.Values
	var key, region string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()

		key = r.Header.Get("Ocp-Apim-Subscription-Key")
		region = r.Header.Get("Ocp-Apim-Subscription-Region")

		w.Write([]byte(`[{"translations": [{"text": "こんにちは", "to": "ja"}]}]`))
	}))

	defer server.Close()

	c, err := azure.New(server.URL, azure.WithToken("secret"), azure.WithRegion("westeurope"))
	require.NoError(t, err)

	result, err := c.Translate(context.Background(), "hello", &translator.TranslateOptions{
		SourceLanguage: "en",
		TargetLanguage: "ja",
	})

	require.NoError(t, err)

	require.Equal(t, "en", query.Get("from"))
	require.Equal(t, "ja", query.Get("to"))
	require.Equal(t, "3.0", query.Get("api-version"))

	require.Equal(t, "secret", key)
	require.Equal(t, "westeurope", region)

	require.Equal(t, "こんにちは", result.Text)
	require.Equal(t, "en", result.SourceLanguage)
	require.Equal(t, "ja", result.TargetLanguage)
}

func TestTranslateError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"code": 401000, "message": "invalid key"}}`))
	}))

	defer server.Close()

	c, err := azure.New(server.URL)
	require.NoError(t, err)

	_, err = c.Translate(context.Background(), "hello", nil)
	require.ErrorContains(t, err, "invalid key")
}
