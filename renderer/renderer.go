package renderer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/isdmx/resumebox/config"
	"github.com/isdmx/resumebox/document"
)

// PDFContentType is the only content type accepted from the renderer.
const PDFContentType = "application/pdf"

const (
	// DefaultMaxArtifactBytes bounds the rendered document size.
	DefaultMaxArtifactBytes = 20 * 1024 * 1024
	// maxErrorBody bounds how much of a failed response is kept.
	maxErrorBody = 4 * 1024
)

var (
	ErrArtifactTooLarge = errors.New("rendered document exceeds size limit")
	ErrEmptyArtifact    = errors.New("renderer returned an empty document")
)

// Artifact is a rendered document.
type Artifact struct {
	Data        []byte
	ContentType string
}

// Renderer turns a document into a binary artifact.
type Renderer interface {
	Render(ctx context.Context, doc document.Document) (Artifact, error)
}

// ResponseError reports a renderer response that was not a usable PDF.
type ResponseError struct {
	StatusCode  int
	ContentType string
	Body        string
}

func (e *ResponseError) Error() string {
	if e.StatusCode < 200 || e.StatusCode > 299 {
		return fmt.Sprintf("renderer returned status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("renderer returned unexpected content type %q: %s", e.ContentType, e.Body)
}

// HTTPRenderer implements Renderer over HTTP
type HTTPRenderer struct {
	logger   *zap.Logger
	url      string
	apiKey   string
	client   *http.Client
	maxBytes int64
}

// Option defines a functional option for HTTPRenderer
type Option func(*HTTPRenderer)

// WithHTTPClient sets the http.Client used for requests
func WithHTTPClient(client *http.Client) Option {
	return func(r *HTTPRenderer) {
		r.client = client
	}
}

// WithAPIKey sends key as a bearer token
func WithAPIKey(key string) Option {
	return func(r *HTTPRenderer) {
		r.apiKey = key
	}
}

// WithMaxArtifactBytes sets the largest accepted response body
func WithMaxArtifactBytes(n int64) Option {
	return func(r *HTTPRenderer) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// NewHTTPRenderer creates a new HTTPRenderer posting to url
func NewHTTPRenderer(logger *zap.Logger, url string, opts ...Option) *HTTPRenderer {
	r := &HTTPRenderer{
		logger:   logger,
		url:      url,
		client:   &http.Client{},
		maxBytes: DefaultMaxArtifactBytes,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// NewFromConfig creates the renderer described by the renderer config section
func NewFromConfig(logger *zap.Logger, cfg *config.Config) Renderer {
	return NewHTTPRenderer(logger, cfg.Renderer.URL,
		WithHTTPClient(&http.Client{Timeout: cfg.GetTimeout()}),
		WithAPIKey(cfg.Renderer.APIKey),
		WithMaxArtifactBytes(cfg.MaxArtifactBytes()),
	)
}

// Render posts doc to the renderer and returns the PDF it produced
func (r *HTTPRenderer) Render(ctx context.Context, doc document.Document) (Artifact, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to encode document: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to build renderer request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", PDFContentType)
	if r.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.apiKey)
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return Artifact{}, fmt.Errorf("renderer request failed: %w", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	r.logger.Debug("renderer responded",
		zap.String("url", r.url),
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", contentType),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Artifact{}, &ResponseError{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        readErrorBody(resp.Body),
		}
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != PDFContentType {
		return Artifact{}, &ResponseError{
			StatusCode:  resp.StatusCode,
			ContentType: contentType,
			Body:        readErrorBody(resp.Body),
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return Artifact{}, fmt.Errorf("failed to read rendered document: %w", err)
	}
	if int64(len(data)) > r.maxBytes {
		return Artifact{}, fmt.Errorf("%w: more than %d bytes", ErrArtifactTooLarge, r.maxBytes)
	}
	if len(data) == 0 {
		return Artifact{}, ErrEmptyArtifact
	}

	return Artifact{Data: data, ContentType: mediaType}, nil
}

func readErrorBody(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBody))
	if err != nil && len(data) == 0 {
		return fmt.Sprintf("<unreadable body: %v>", err)
	}
	return strings.TrimSpace(string(data))
}
