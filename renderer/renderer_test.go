package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/isdmx/resumebox/config"
	"github.com/isdmx/resumebox/document"
)

var pdfBytes = []byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n%%EOF")

func testDocument() document.Document {
	doc := document.Template()
	doc.Template = document.TemplateModern
	return doc
}

func TestRender(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received document.Document
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, PDFContentType, r.Header.Get("Accept"))
			assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

			w.Header().Set("Content-Type", "application/pdf; charset=binary")
			_, _ = w.Write(pdfBytes)
		}))
		defer srv.Close()

		r := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL, WithAPIKey("token-123"))
		artifact, err := r.Render(context.Background(), testDocument())
		require.NoError(t, err)
		assert.Equal(t, pdfBytes, artifact.Data)
		assert.Equal(t, PDFContentType, artifact.ContentType)
		assert.Equal(t, testDocument(), received)
	})

	t.Run("NoAPIKey", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			w.Header().Set("Content-Type", PDFContentType)
			_, _ = w.Write(pdfBytes)
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL).Render(context.Background(), testDocument())
		require.NoError(t, err)
	})

	t.Run("ErrorStatus", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = io.WriteString(w, `{"error":"profile.name missing"}`)
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL).Render(context.Background(), testDocument())
		require.Error(t, err)

		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, http.StatusUnprocessableEntity, respErr.StatusCode)
		assert.Equal(t, `{"error":"profile.name missing"}`, respErr.Body)
		assert.Contains(t, err.Error(), "status 422")
	})

	t.Run("WrongContentType", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = io.WriteString(w, "<html>maintenance</html>")
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL).Render(context.Background(), testDocument())

		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Equal(t, http.StatusOK, respErr.StatusCode)
		assert.Equal(t, "<html>maintenance</html>", respErr.Body)
		assert.Contains(t, err.Error(), `unexpected content type "text/html; charset=utf-8"`)
	})

	t.Run("MissingContentType", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header()["Content-Type"] = nil
			_, _ = w.Write(pdfBytes)
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL).Render(context.Background(), testDocument())
		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
	})

	t.Run("ErrorBodyIsBounded", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = io.WriteString(w, strings.Repeat("x", 3*maxErrorBody))
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL).Render(context.Background(), testDocument())
		var respErr *ResponseError
		require.ErrorAs(t, err, &respErr)
		assert.Len(t, respErr.Body, maxErrorBody)
	})

	t.Run("TooLarge", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", PDFContentType)
			_, _ = w.Write(pdfBytes)
		}))
		defer srv.Close()

		r := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL, WithMaxArtifactBytes(8))
		_, err := r.Render(context.Background(), testDocument())
		require.ErrorIs(t, err, ErrArtifactTooLarge)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", PDFContentType)
		}))
		defer srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL).Render(context.Background(), testDocument())
		require.ErrorIs(t, err, ErrEmptyArtifact)
	})

	t.Run("Unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewHTTPRenderer(zaptest.NewLogger(t), url).Render(context.Background(), testDocument())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "renderer request failed")
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			<-release
		}))
		defer srv.Close()
		defer close(release)

		r := NewHTTPRenderer(zaptest.NewLogger(t), srv.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
		_, err := r.Render(context.Background(), testDocument())
		require.Error(t, err)
	})
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{
		Renderer: config.RendererConfig{
			URL:               "https://render.example.org/api",
			APIKey:            "key",
			TimeoutSec:        7,
			MaxArtifactSizeMB: 2,
		},
	}

	r, ok := NewFromConfig(zaptest.NewLogger(t), cfg).(*HTTPRenderer)
	require.True(t, ok)
	assert.Equal(t, "https://render.example.org/api", r.url)
	assert.Equal(t, "key", r.apiKey)
	assert.Equal(t, 7*time.Second, r.client.Timeout)
	assert.Equal(t, int64(2*1024*1024), r.maxBytes)
}
