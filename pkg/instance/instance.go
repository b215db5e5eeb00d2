package instance

import (
	"os"

	"github.com/lien-travel/planner-backend/pkg/env"
)

// GetID identifies the running process in logs. Platform dyno names win over
// the container hostname.
func GetID() string {
	if id := env.Get("DYNO", ""); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "local"
}
