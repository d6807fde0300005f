// Package config provides token management utilities.
package config

import "strings"

// GetToken returns the GitHub token from the configuration.
// The token is optional: unauthenticated searches work with lower rate
// limits, so an empty result is not an error.
func GetToken(cfg *Config) string {
	if cfg == nil {
		return ""
	}
	return strings.TrimSpace(cfg.GitHub.Token)
}

// MaskToken returns a masked version of the token for display.
// Shows the first 4 and last 4 characters.
func MaskToken(token string) string {
	if token == "" {
		return "(not set)"
	}

	if len(token) <= 8 {
		return "****"
	}

	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}
