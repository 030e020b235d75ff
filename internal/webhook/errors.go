package webhook

import (
	"encoding/json"
	"fmt"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes carried by webhook errors.
const (
	TextCodeInvalidOptions       = "INVALID_OPTIONS"
	TextCodeBadRequest           = "BAD_REQUEST"
	TextCodeForbidden            = "FORBIDDEN"
	TextCodeNotFound             = "NOT_FOUND"
	TextCodeMethodNotAllowed     = "METHOD_NOT_ALLOWED"
	TextCodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	TextCodeUnsupportedMediaType = "UNSUPPORTED_MEDIA_TYPE"
)

func configError(message, field string) error {
	return goerrors.New(message, goerrors.CategoryValidation).
		WithTextCode(TextCodeInvalidOptions).
		WithMetadata(map[string]any{"option": field})
}

// Forbidden returns a 403 rejection for use by pre-handlers.
func Forbidden(message string) error {
	return goerrors.New(message, goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(TextCodeForbidden)
}

func badRequest(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(TextCodeBadRequest)
}

func payloadTooLarge(limit int64) error {
	return goerrors.New(fmt.Sprintf("Request body is too large, limit is %d bytes", limit), goerrors.CategoryBadInput).
		WithCode(http.StatusRequestEntityTooLarge).
		WithTextCode(TextCodePayloadTooLarge)
}

func unsupportedMediaType(contentType string) error {
	return goerrors.New("Unsupported Media Type: "+contentType, goerrors.CategoryBadInput).
		WithCode(http.StatusUnsupportedMediaType).
		WithTextCode(TextCodeUnsupportedMediaType)
}

func methodNotAllowed(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusMethodNotAllowed).
		WithTextCode(TextCodeMethodNotAllowed)
}

// NotFound is the error the host router answers unknown routes with.
func NotFound() error {
	return goerrors.New("Not found", goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(TextCodeNotFound)
}

// WriteJSON sends a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// WriteError renders err as an ErrorResponse. Errors without an HTTP code
// are treated as gate rejections (403).
func WriteError(w http.ResponseWriter, err error) {
	status := http.StatusForbidden
	message := err.Error()

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		if rich.Code != 0 {
			status = rich.Code
		}
		message = rich.Message
	}

	WriteJSON(w, status, ErrorResponse{
		StatusCode: status,
		Error:      http.StatusText(status),
		Message:    message,
	})
}
