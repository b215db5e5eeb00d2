package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when the variable is unset
// or blank.
func Get(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(val); trimmed != "" {
			return trimmed
		}
	}
	return fallback
}
