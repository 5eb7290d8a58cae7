package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/wonny/pulseboard/backend/internal/api/handlers"
	"github.com/wonny/pulseboard/backend/pkg/config"
	"github.com/wonny/pulseboard/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router. metrics may be nil, in
// which case /metrics is not served.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(cfg *config.Config, analysis *handlers.AnalysisHandler, metrics *Metrics, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	// API
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/analyze", analysis.Analyze).Methods("POST")
	api.HandleFunc("/validate", analysis.Validate).Methods("POST")
	api.HandleFunc("/insights/latest", analysis.GetLatest).Methods("GET")

	api.Use(rateLimitMiddleware(rate.NewLimiter(rate.Limit(cfg.API.RateLimitRPS), cfg.API.RateLimitBurst)))
	api.Use(bodyLimitMiddleware(cfg.API.MaxBodyBytes))

	// Apply middleware
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(log, metrics))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "pulseboard-api",
	})
}
