package webhook

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

// newTestRouter mounts opts on a chi router that answers unknown routes
// like the host server does.
func newTestRouter(t *testing.T, opts Options) *chi.Mux {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	r := chi.NewRouter()
	notFound := func(w http.ResponseWriter, r *http.Request) { WriteError(w, NotFound()) }
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	if err := Register(r, opts); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	return r
}

func do(h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(b []byte, v any) error {
	return json.Unmarshal(b, v)
}
