package webhook

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEcho(t *testing.T) {
	r := newTestRouter(t, Options{Handler: Echo})

	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantBody    string
	}{
		{
			name:        "json payload is echoed",
			contentType: "application/json",
			body:        `{"payload":"test"}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"payload":"test"}`,
		},
		{
			name:        "nested payload is echoed",
			contentType: "application/json",
			body:        `{"a":[1,2,{"b":null}],"c":true}`,
			wantStatus:  http.StatusOK,
			wantBody:    `{"a":[1,2,{"b":null}],"c":true}`,
		},
		{
			name:        "unknown media type",
			contentType: "application/unknown",
			body:        `{"payload":"test"}`,
			wantStatus:  http.StatusUnsupportedMediaType,
			wantBody:    `{"statusCode":415,"error":"Unsupported Media Type","message":"Unsupported Media Type: application/unknown"}`,
		},
		{
			name:       "missing media type",
			wantStatus: http.StatusUnsupportedMediaType,
			wantBody:   `{"statusCode":415,"error":"Unsupported Media Type","message":"Unsupported Media Type: "}`,
		},
		{
			name:        "json with parameters is not exact",
			contentType: "application/json; charset=utf-8",
			body:        `{"payload":"test"}`,
			wantStatus:  http.StatusUnsupportedMediaType,
			wantBody:    `{"statusCode":415,"error":"Unsupported Media Type","message":"Unsupported Media Type: application/json; charset=utf-8"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/webhook", tt.contentType, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestEcho_WritesPayloadVerbatim(t *testing.T) {
	r := newTestRouter(t, Options{Handler: Echo})
	body := `{ "spaced" : "out",  "n": 1.50 }`

	rec := do(r, http.MethodPost, "/webhook", "application/json", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, rec.Body.String())
}

func TestLogger_LogsRequestAndAcknowledges(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	r := newTestRouter(t, Options{Handler: Logger, Logger: logger})

	rec := do(r, http.MethodPost, "/webhook", "application/json", `{"payload":"test"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, ackBody, rec.Body.String())

	var entry map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var e map[string]any
		if err := json.Unmarshal(line, &e); err == nil && e["msg"] == "webhook request" {
			entry = e
			break
		}
	}
	require.NotNil(t, entry, "expected a webhook request log line, got %s", buf.String())
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "application/json", entry["content_type"])
	assert.Equal(t, `{"payload":"test"}`, entry["body"])
	assert.NotEmpty(t, entry["request_id"])
}

func TestAcknowledge_IgnoresInput(t *testing.T) {
	r := newTestRouter(t, Options{Handler: Acknowledge})

	rec := do(r, http.MethodPost, "/webhook", "application/xml", "<a/>")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, ackBody, rec.Body.String())
}

func TestHandlerKinds(t *testing.T) {
	for _, name := range []string{"acknowledge", "echo", "logger"} {
		kind, err := ParseHandlerKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, kind.String())
		assert.NotNil(t, HandlerFor(kind), name)
	}

	_, err := ParseHandlerKind("shout")
	assert.Error(t, err)
	assert.Nil(t, HandlerFor(HandlerKind(99)))
	assert.Equal(t, "HandlerKind(99)", HandlerKind(99).String())
}
