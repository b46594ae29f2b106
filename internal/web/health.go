package web

import (
	"net/http"
	"time"
)

var startTime = time.Now()

const version = "0.1.0"

// HealthHandler serves the /healthz endpoint.
type HealthHandler struct {
	authEnabled      bool
	defaultRecipient bool
}

func NewHealthHandler(authEnabled, defaultRecipient bool) *HealthHandler {
	return &HealthHandler{authEnabled: authEnabled, defaultRecipient: defaultRecipient}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"version":           version,
		"uptime_seconds":    int(time.Since(startTime).Seconds()),
		"auth_enabled":      h.authEnabled,
		"default_recipient": h.defaultRecipient,
	})
}
