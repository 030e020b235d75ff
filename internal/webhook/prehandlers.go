package webhook

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// Gate rejection messages.
const (
	MsgWrongSecretKey = "Missing or wrong secret key"
	MsgWrongToken     = "Missing or wrong token"
)

// CheckSecretKey requires a POST with a JSON body whose "secretKey" field
// equals secret. An empty secret lets every request through.
func CheckSecretKey(secret string) PreHandler {
	return func(r *Request) error {
		if secret == "" {
			return nil
		}
		if r.Method != http.MethodPost ||
			!strings.HasPrefix(r.ContentType(), "application/json") ||
			!secretMatches(payloadSecretKey(r.Payload), secret) {
			r.Log.Debug("secret key check failed", "method", r.Method, "content_type", r.ContentType())
			return Forbidden(MsgWrongSecretKey)
		}
		return nil
	}
}

// payloadSecretKey extracts the string "secretKey" field, or "" when the
// payload is absent, not an object, or the field is not a string.
func payloadSecretKey(payload json.RawMessage) string {
	if len(payload) == 0 {
		return ""
	}
	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	var key string
	if err := json.Unmarshal(body["secretKey"], &key); err != nil {
		return ""
	}
	return key
}

func secretMatches(provided, secret string) bool {
	if provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) == 1
}

// CheckEvenToken requires the route parameter param to be a positive even
// integer. Leading zeros are accepted ("0998").
func CheckEvenToken(param string) PreHandler {
	return func(r *Request) error {
		n, err := strconv.Atoi(r.Param(param))
		if err != nil || n <= 0 || n%2 != 0 {
			return Forbidden(MsgWrongToken)
		}
		return nil
	}
}
