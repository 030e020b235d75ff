package config

// Config represents the complete webhookd configuration.
type Config struct {
	Service ServiceConfig `yaml:"service"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// ServiceConfig defines core service settings.
type ServiceConfig struct {
	Name      string `yaml:"name"`
	Listen    string `yaml:"listen"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// PIDFile, when set, makes start refuse to run twice on the same file.
	PIDFile string `yaml:"pid_file,omitempty"`
}

// WebhookConfig mirrors the registrar options in their file form.
// Handler and pre-handler names are resolved by the webhook package.
type WebhookConfig struct {
	// URL is the route path; ":param" segments become chi route params.
	URL string `yaml:"url"`

	// Handler is one of "acknowledge", "echo", "logger".
	Handler string `yaml:"handler"`

	DisableWebhook       bool `yaml:"disable_webhook"`
	EnableGetPlaceholder bool `yaml:"enable_get_placeholder"`

	// SecretKey is the shared secret callers must send as "secretKey" in the body.
	SecretKey string `yaml:"secret_key,omitempty"`

	// PreHandlers lists gate names in execution order. Absent or null keeps the
	// default chain; an empty list disables gating.
	PreHandlers []string `yaml:"pre_handlers"`

	// TokenParam is the route parameter read by the check_even_token gate.
	TokenParam string `yaml:"token_param,omitempty"`

	// MaxBodySize accepts plain bytes or KB/MB/GB suffixes (default: 1MB).
	MaxBodySize string `yaml:"max_body_size,omitempty"`
}

// ChecksumManifest is the on-disk format of .checksums.
type ChecksumManifest struct {
	Version     int               `yaml:"version"`
	GeneratedAt string            `yaml:"generated_at"`
	Hashes      map[string]string `yaml:"hashes"`
}

// DefaultFilename is looked up when Load is given a directory.
const DefaultFilename = "webhookd.yaml"

// Defaults returns a configuration with default values.
func Defaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:      "webhookd",
			Listen:    "127.0.0.1:3000",
			LogLevel:  "info",
			LogFormat: "json",
		},
		Webhook: WebhookConfig{
			URL:        "/webhook",
			Handler:    "acknowledge",
			TokenParam: "token",
		},
	}
}
