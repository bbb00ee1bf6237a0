package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wathiq/internal/platform/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.OCRConfig{BaseURL: srv.URL, Timeout: 2 * time.Second})
}

func TestExtractText(t *testing.T) {
	image := []byte{0xFF, 0xD8, 0xFF} // jpeg magic, content irrelevant

	t.Run("returns recognized text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/extract", r.URL.Path)

			var req map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			decoded, err := base64.StdEncoding.DecodeString(req["image"])
			require.NoError(t, err)
			assert.Equal(t, image, decoded)

			_ = json.NewEncoder(w).Encode(map[string]string{"text": "احمد علي حسن"})
		})

		text, err := client.ExtractText(context.Background(), image)
		require.NoError(t, err)
		assert.Equal(t, "احمد علي حسن", text)
	})

	t.Run("empty text is not an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"text": ""})
		})

		text, err := client.ExtractText(context.Background(), image)
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("server error is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := client.ExtractText(context.Background(), image)
		assert.Error(t, err)
	})
}
