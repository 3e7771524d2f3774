package httpserver

import (
	"log"
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows browser calls from the listed origins only. Requests without
// an Origin header (curl, server-side callers) are not affected.
func CORS(allowed []string) func(http.Handler) http.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		allowedSet[o] = true
	}
	return cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			if allowedSet[origin] {
				return true
			}
			log.Printf("Blocked by CORS: %s", origin)
			return false
		},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	})
}
