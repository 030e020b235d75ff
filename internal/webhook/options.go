package webhook

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mattjoyce/webhookd/internal/log"
)

// Options configures Register. The zero value registers POST /webhook with
// the acknowledge handler and no secret.
type Options struct {
	// URL is the route path (default "/webhook"). ":name" segments become
	// route parameters.
	URL string

	// Handler answers accepted requests (default Acknowledge).
	Handler Handler

	// DisableWebhook registers nothing, placeholder included.
	DisableWebhook bool

	// EnableGetPlaceholder adds a GET route answering 405.
	EnableGetPlaceholder bool

	// SecretKey enables the default secret gate when non-empty.
	SecretKey string

	// PreHandlers run in order before Handler. nil means
	// [CheckSecretKey(SecretKey)]; an empty slice means no gates.
	PreHandlers []PreHandler

	// MaxBodySize bounds the request body in bytes (default 1 MB).
	MaxBodySize int64

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.URL == "" {
		o.URL = DefaultURL
	}
	if o.Handler == nil {
		o.Handler = Acknowledge
	}
	if o.PreHandlers == nil {
		o.PreHandlers = []PreHandler{CheckSecretKey(o.SecretKey)}
	}
	if o.MaxBodySize <= 0 {
		o.MaxBodySize = DefaultMaxBodySize
	}
	if o.Logger == nil {
		o.Logger = log.WithComponent("webhook")
	}
	return o
}

func (o Options) validate() error {
	if !strings.HasPrefix(o.URL, "/") {
		return configError(fmt.Sprintf("The option url must be a path starting with '/', instead got %q", o.URL), "url")
	}
	if strings.ContainsAny(o.URL, " \t\r\n?#") {
		return configError(fmt.Sprintf("The option url must not contain whitespace, query or fragment, instead got %q", o.URL), "url")
	}
	if err := checkRoutes(routePatterns(o.URL)); err != nil {
		return err
	}
	if o.Handler == nil {
		return configError("The option handler must be a function", "handler")
	}
	for i, h := range o.PreHandlers {
		if h == nil {
			return configError(fmt.Sprintf("The option preHandlers must be a list of functions, entry %d is nil", i), "preHandlers")
		}
	}
	return nil
}

// checkRoutes mounts patterns on a scratch mux so a pattern chi rejects
// (unbalanced braces, a '*' before the last segment, duplicate params)
// surfaces as an error before the caller's router is touched.
func checkRoutes(patterns []string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = configError(fmt.Sprintf("The option url is not a valid route pattern: %v", rec), "url")
		}
	}()

	scratch := chi.NewRouter()
	noop := func(http.ResponseWriter, *http.Request) {}
	for _, p := range patterns {
		scratch.Post(p, noop)
	}
	return nil
}
