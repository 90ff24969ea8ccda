package handler

import (
	"net/http"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/response"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/repository/postgres"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, r, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck returns readiness status including database connectivity
func ReadyCheck(db *postgres.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(r.Context()); err != nil {
			response.Unavailable(w, r, "database not ready")
			return
		}

		response.OK(w, r, map[string]string{
			"status": "ready",
		})
	}
}

// ListLLMProviders returns the registered LLM providers
func ListLLMProviders(router *llm.Router) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, r, map[string]any{
			"providers":        router.GetProvidersInfo(),
			"default_provider": router.DefaultProvider(),
		})
	}
}
