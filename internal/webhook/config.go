package webhook

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mattjoyce/webhookd/internal/config"
)

// Pre-handler names accepted in config.
const (
	PreHandlerSecretKey = "check_secret_key"
	PreHandlerEvenToken = "check_even_token"
)

// FromConfig converts config.WebhookConfig to Options.
// Resolves handler and pre-handler names and parses the max body size.
func FromConfig(wc *config.WebhookConfig, logger *slog.Logger) (Options, error) {
	if wc == nil {
		return Options{}, configError("webhook config is nil", "webhook")
	}

	kind, err := ParseHandlerKind(wc.Handler)
	if err != nil {
		return Options{}, err
	}

	maxBodySize, err := parseMaxBodySize(wc.MaxBodySize)
	if err != nil {
		return Options{}, configError(fmt.Sprintf("invalid max_body_size %q: %v", wc.MaxBodySize, err), "max_body_size")
	}

	opts := Options{
		URL:                  wc.URL,
		Handler:              HandlerFor(kind),
		DisableWebhook:       wc.DisableWebhook,
		EnableGetPlaceholder: wc.EnableGetPlaceholder,
		SecretKey:            wc.SecretKey,
		MaxBodySize:          maxBodySize,
		Logger:               logger,
	}

	// nil keeps the default chain; an explicit empty list disables gating.
	if wc.PreHandlers != nil {
		opts.PreHandlers = make([]PreHandler, 0, len(wc.PreHandlers))
		for i, name := range wc.PreHandlers {
			gate, err := preHandlerByName(name, wc)
			if err != nil {
				return Options{}, configError(fmt.Sprintf("pre_handlers[%d]: %v", i, err), "pre_handlers")
			}
			opts.PreHandlers = append(opts.PreHandlers, gate)
		}
	}

	return opts, nil
}

func preHandlerByName(name string, wc *config.WebhookConfig) (PreHandler, error) {
	switch name {
	case PreHandlerSecretKey:
		return CheckSecretKey(wc.SecretKey), nil
	case PreHandlerEvenToken:
		param := wc.TokenParam
		if param == "" {
			param = "token"
		}
		return CheckEvenToken(param), nil
	}
	return nil, fmt.Errorf("unknown pre-handler %q (want %s or %s)", name, PreHandlerSecretKey, PreHandlerEvenToken)
}

// parseMaxBodySize parses size strings like "1MB", "2048576", "64KB" to bytes.
// Returns DefaultMaxBodySize if empty.
func parseMaxBodySize(size string) (int64, error) {
	if size == "" {
		return DefaultMaxBodySize, nil
	}

	upper := strings.ToUpper(strings.TrimSpace(size))
	multiplier := int64(1)
	for _, unit := range []struct {
		suffix string
		mult   int64
	}{
		{"KB", 1024},
		{"MB", 1024 * 1024},
		{"GB", 1024 * 1024 * 1024},
	} {
		if strings.HasSuffix(upper, unit.suffix) {
			multiplier = unit.mult
			upper = strings.TrimSuffix(upper, unit.suffix)
			break
		}
	}

	value, err := strconv.ParseInt(strings.TrimSpace(upper), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size value: %w", err)
	}
	if value <= 0 {
		return 0, fmt.Errorf("size must be positive")
	}

	result := value * multiplier
	if result/multiplier != value {
		return 0, fmt.Errorf("size too large")
	}
	return result, nil
}
