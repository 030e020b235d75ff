package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// checkWebhookNode rejects webhook options whose YAML type is wrong before
// decoding, so "url: 42" fails instead of silently becoming "42".
func checkWebhookNode(root *yaml.Node) error {
	doc := root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		doc = doc.Content[0]
	}
	if doc.Kind != yaml.MappingNode {
		return fmt.Errorf("config root must be a mapping")
	}

	webhook := mappingValue(doc, "webhook")
	if webhook == nil || isNull(webhook) {
		return nil
	}
	if webhook.Kind != yaml.MappingNode {
		return fmt.Errorf("webhook must be a mapping, instead got %s", describe(webhook))
	}

	for _, key := range []string{"url", "handler", "token_param", "max_body_size"} {
		if v := mappingValue(webhook, key); v != nil && !isString(v) {
			return fmt.Errorf("webhook.%s must be a string, instead got %s", key, describe(v))
		}
	}
	if v := mappingValue(webhook, "secret_key"); v != nil && !isNull(v) && !isString(v) {
		return fmt.Errorf("webhook.secret_key must be a string, instead got %s", describe(v))
	}
	if v := mappingValue(webhook, "pre_handlers"); v != nil && !isNull(v) {
		if v.Kind != yaml.SequenceNode {
			return fmt.Errorf("webhook.pre_handlers must be a list (of pre-handler names), instead got %s", describe(v))
		}
		for i, item := range v.Content {
			if !isString(item) {
				return fmt.Errorf("webhook.pre_handlers[%d] must be a string, instead got %s", i, describe(item))
			}
		}
	}
	return nil
}

func mappingValue(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func isString(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str"
}

func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.MappingNode:
		return "a mapping"
	case yaml.AliasNode:
		return "an alias"
	}
	return fmt.Sprintf("'%s'", strings.TrimPrefix(n.ShortTag(), "!!"))
}

// validate performs basic validation on the configuration.
func validate(cfg *Config) error {
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[cfg.Service.LogLevel] {
		return fmt.Errorf("service.log_level must be one of: debug, info, warn, error (got %q)", cfg.Service.LogLevel)
	}
	if cfg.Service.LogFormat != "json" && cfg.Service.LogFormat != "text" {
		return fmt.Errorf("service.log_format must be one of: json, text (got %q)", cfg.Service.LogFormat)
	}

	if !strings.HasPrefix(cfg.Webhook.URL, "/") {
		return fmt.Errorf("webhook.url must start with '/' (got %q)", cfg.Webhook.URL)
	}

	// An unset env var must not turn into a literal secret.
	if matches := envVarPattern.FindStringSubmatch(cfg.Webhook.SecretKey); len(matches) > 1 {
		return fmt.Errorf("webhook.secret_key: environment variable ${%s} is not set", matches[1])
	}

	return nil
}
