package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:generate mockgen -destination=mocks/mock_router.go -package=mocks github.com/mattjoyce/webhookd/internal/webhook Router

// Router is the part of a chi router the registrar needs.
type Router interface {
	Get(pattern string, h http.HandlerFunc)
	Post(pattern string, h http.HandlerFunc)
}

// Handler writes the final reply for an accepted webhook call.
type Handler func(w http.ResponseWriter, r *Request)

// PreHandler gates a request before the handler runs. A nil return lets the
// request through; any error stops the chain and becomes the reply.
type PreHandler func(r *Request) error

// Request is an inbound webhook call with its body already read.
type Request struct {
	*http.Request

	// ID is the request id (X-Request-Id or generated).
	ID string

	// RawBody is the body as received, possibly empty.
	RawBody []byte

	// Payload is the validated JSON body, nil unless the content type is JSON.
	Payload json.RawMessage

	// Log is scoped to this request.
	Log *slog.Logger
}

// ContentType returns the raw Content-Type header.
func (r *Request) ContentType() string {
	return r.Header.Get("Content-Type")
}

// Param returns a route parameter, or "" when absent.
func (r *Request) Param(name string) string {
	return chi.URLParam(r.Request, name)
}

// AckResponse is the acknowledge reply body.
type AckResponse struct {
	StatusCode int    `json:"statusCode"`
	Result     string `json:"result"`
}

// ErrorResponse is the JSON envelope for every failure.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// Default values
const (
	DefaultURL         = "/webhook"
	DefaultMaxBodySize = 1048576 // 1 MB

	PlaceholderMessage = "Placeholder for a webhook, you need to call via POST"
)
