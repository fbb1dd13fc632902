package api

import (
	"net/http"

	"github.com/somnahealth/somna-backend/internal/api/respond"
	"github.com/somnahealth/somna-backend/internal/store"
)

// HealthHandler reports process liveness and, when the store supports it,
// database connectivity.
type HealthHandler struct {
	pinger store.HealthPinger
}

func NewHealthHandler(pinger store.HealthPinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.HealthPing(r.Context()); err != nil {
			respond.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// WelcomeHandler serves the API root banner.
func WelcomeHandler(projectName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.WriteJSON(w, http.StatusOK, map[string]string{
			"message": "Welcome to the " + projectName + " API",
			"status":  "online",
		})
	}
}
