package search

import "strings"

// IsRateLimited reports whether an endpoint message describes a rate-limit
// condition. The endpoint signals this through message text rather than a
// dedicated status code, so the heuristic lives here in one place and can
// be swapped without touching pagination.
func IsRateLimited(message string) bool {
	if message == "" {
		return false
	}
	lower := strings.ToLower(message)
	return strings.Contains(lower, "rate limit") || strings.Contains(lower, "abuse detection")
}
