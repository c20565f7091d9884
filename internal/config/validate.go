package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError lists every missing or malformed field at once so an
// operator can fix the config in a single pass.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// Validate checks the preconditions the pipeline assumes: messaging
// credentials and destination, calendar credentials and source. It runs
// before any network call.
func Validate(cfg *Config) error {
	var problems []string

	if strings.TrimSpace(cfg.Telegram.Token) == "" {
		problems = append(problems, "telegram.token is required")
	}
	if cfg.Telegram.ChannelID == 0 {
		problems = append(problems, "telegram.channel_id is required")
	}

	if strings.TrimSpace(cfg.Google.ClientEmail) == "" {
		problems = append(problems, "google.client_email is required")
	}
	if strings.TrimSpace(cfg.Google.PrivateKey) == "" && strings.TrimSpace(cfg.Google.PrivateKeyFile) == "" {
		problems = append(problems, "google.private_key or google.private_key_file is required")
	}
	if strings.TrimSpace(cfg.Google.CalendarID) == "" {
		problems = append(problems, "google.calendar_id is required")
	}

	if cfg.Scheduler.Enabled && cfg.Scheduler.Daily == "" && cfg.Scheduler.Weekly == "" {
		problems = append(problems, "scheduler enabled but neither scheduler.daily nor scheduler.weekly is set")
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// ResolvePrivateKey returns the service-account key material, reading
// private_key_file when no inline key is present.
func (g GoogleConfig) ResolvePrivateKey() (string, error) {
	if strings.TrimSpace(g.PrivateKey) != "" {
		return g.PrivateKey, nil
	}
	if strings.TrimSpace(g.PrivateKeyFile) == "" {
		return "", fmt.Errorf("google private key not configured")
	}
	b, err := os.ReadFile(g.PrivateKeyFile)
	if err != nil {
		return "", fmt.Errorf("read google.private_key_file: %w", err)
	}
	return string(b), nil
}
