package env

import (
	"os"
	"strings"
)

// First returns the first non-empty variable among keys, or fallback.
// It lets a prefixed name override the bare one.
func First(fallback string, keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return fallback
}
