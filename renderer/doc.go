// Package renderer submits documents to the remote rendering service.
//
// The service receives the full document as JSON over HTTP POST and answers
// with the rendered PDF. A non-success status or a response that is not a PDF
// is reported as a *ResponseError carrying the response body for diagnosis.
// Requests are never retried.
//
// Usage:
//
//	r := renderer.NewHTTPRenderer(logger, "https://render.internal/api/render")
//	artifact, err := r.Render(ctx, doc)
package renderer
