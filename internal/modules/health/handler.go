package health

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler exposes the liveness endpoint.
type Handler struct {
	store   Pinger
	timeout time.Duration
}

// NewHandler creates a health handler that pings store on every check.
func NewHandler(store Pinger) *Handler {
	return &Handler{store: store, timeout: 2 * time.Second}
}

// RegisterRoutes mounts GET /api/health.
func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Get("/api/health", h.health)
}

type status struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		log.Printf("health: store ping failed: %v", err)
		respond(w, http.StatusServiceUnavailable, status{Status: "UNAVAILABLE", Error: "Vendor store is unreachable"})
		return
	}
	respond(w, http.StatusOK, status{Status: "OK", Message: "Server is running"})
}

func respond(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}
