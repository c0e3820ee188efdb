package handler

import "net/http"

// Health reports service liveness.
type Health struct{}

// NewHealth creates a new Health handler instance.
func NewHealth() *Health {
	return &Health{}
}

// Check responds with a static liveness payload.
func (h *Health) Check(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
