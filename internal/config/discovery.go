package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Discover finds the config file by checking standard locations.
// Priority order: $WEBHOOKD_CONFIG, ~/.config/webhookd, /etc/webhookd, ./webhookd.yaml
func Discover() (string, error) {
	if path := os.Getenv("WEBHOOKD_CONFIG"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	candidates := []string{}
	if homeDir, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(homeDir, ".config", "webhookd", DefaultFilename))
	}
	candidates = append(candidates,
		filepath.Join("/etc", "webhookd", DefaultFilename),
		filepath.Join(".", DefaultFilename),
	)

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no config found (checked: $WEBHOOKD_CONFIG, ~/.config/webhookd, /etc/webhookd, ./%s)", DefaultFilename)
}
