package webhook

import (
	"fmt"
	"net/http"
)

// HandlerKind names a built-in response handler.
type HandlerKind int

const (
	KindAcknowledge HandlerKind = iota
	KindEcho
	KindLogger
)

func (k HandlerKind) String() string {
	switch k {
	case KindAcknowledge:
		return "acknowledge"
	case KindEcho:
		return "echo"
	case KindLogger:
		return "logger"
	}
	return fmt.Sprintf("HandlerKind(%d)", int(k))
}

// ParseHandlerKind maps a configuration name to a HandlerKind.
func ParseHandlerKind(name string) (HandlerKind, error) {
	switch name {
	case "acknowledge":
		return KindAcknowledge, nil
	case "echo":
		return KindEcho, nil
	case "logger":
		return KindLogger, nil
	}
	return 0, configError(fmt.Sprintf("The option handler must be one of acknowledge, echo, logger, instead got %q", name), "handler")
}

// HandlerFor returns the built-in handler for k, nil for an unknown kind.
func HandlerFor(k HandlerKind) Handler {
	switch k {
	case KindAcknowledge:
		return Acknowledge
	case KindEcho:
		return Echo
	case KindLogger:
		return Logger
	}
	return nil
}

// Acknowledge replies 200 with a fixed success body.
func Acknowledge(w http.ResponseWriter, r *Request) {
	WriteJSON(w, http.StatusOK, AckResponse{StatusCode: http.StatusOK, Result: "success"})
}

// Logger logs the request and acknowledges it.
func Logger(w http.ResponseWriter, r *Request) {
	logRequest(r)
	Acknowledge(w, r)
}

// Echo replies with the JSON payload unchanged. The content type must be
// exactly application/json.
func Echo(w http.ResponseWriter, r *Request) {
	if r.ContentType() != "application/json" {
		WriteError(w, unsupportedMediaType(r.ContentType()))
		return
	}
	logRequest(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(r.Payload)
}

func logRequest(r *Request) {
	r.Log.Info("webhook request",
		"method", r.Method,
		"content_type", r.ContentType(),
		"request_id", r.ID,
		"body", string(r.RawBody),
	)
}
