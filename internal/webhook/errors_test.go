package webhook

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{
			name:     "plain error is a rejection",
			err:      errors.New("go away"),
			wantCode: http.StatusForbidden,
			wantBody: `{"statusCode":403,"error":"Forbidden","message":"go away"}`,
		},
		{
			name:     "forbidden",
			err:      Forbidden(MsgWrongSecretKey),
			wantCode: http.StatusForbidden,
			wantBody: wrongSecretBody,
		},
		{
			name:     "wrapped forbidden keeps its message",
			err:      fmt.Errorf("gate: %w", Forbidden(MsgWrongToken)),
			wantCode: http.StatusForbidden,
			wantBody: wrongTokenBody,
		},
		{
			name:     "not found",
			err:      NotFound(),
			wantCode: http.StatusNotFound,
			wantBody: notFoundBody,
		},
		{
			name:     "unsupported media type",
			err:      unsupportedMediaType("text/csv"),
			wantCode: http.StatusUnsupportedMediaType,
			wantBody: `{"statusCode":415,"error":"Unsupported Media Type","message":"Unsupported Media Type: text/csv"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
