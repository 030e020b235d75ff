package webhook

import (
	"encoding/json"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/mattjoyce/webhookd/internal/log"
)

// MsgEmptyJSONBody answers a JSON content type sent without a body.
const MsgEmptyJSONBody = "Unexpected end of JSON input"

// newRequest reads the body once, enforcing limit, and validates it when
// the media type is application/json.
func newRequest(r *http.Request, limit int64, logger *slog.Logger) (*Request, error) {
	id := middleware.GetReqID(r.Context())
	if id == "" {
		id = uuid.NewString()
	}

	req := &Request{
		Request: r,
		ID:      id,
		Log:     log.WithRequest(logger, id),
	}

	if r.Body != nil {
		body, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
		if err != nil {
			return req, badRequest("Failed to read request body")
		}
		if int64(len(body)) > limit {
			return req, payloadTooLarge(limit)
		}
		req.RawBody = body
	}

	if !isJSONMediaType(req.ContentType()) {
		return req, nil
	}
	if len(req.RawBody) == 0 {
		return req, badRequest(MsgEmptyJSONBody)
	}
	var v any
	if err := json.Unmarshal(req.RawBody, &v); err != nil {
		return req, badRequest(err.Error())
	}
	req.Payload = json.RawMessage(req.RawBody)
	return req, nil
}

func isJSONMediaType(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}
