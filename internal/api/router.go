package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/handler"
	customMiddleware "github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/api/middleware"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/config"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/interview"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm/gemini"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm/ollama"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/llm/openai"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/match"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/memory"
	mongorepo "github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/repository/mongo"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/repository/postgres"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/repository/redis"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/resume"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/security"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/session"
	"github.com/dhruvarora12/ai-voice-to-voice-interviewer-with-LLM/internal/stt"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	db *postgres.DB,
	redisClient *redis.Client,
	mongoClient *mongorepo.Client,
	registry *session.Registry,
) (http.Handler, *interview.Controller) {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Security
	tokenManager := security.NewTokenManager(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	// LLM providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	log.Info().Msgf("Initializing LLM providers. Default: %s", cfg.LLM.DefaultProvider)

	if cfg.LLM.Ollama.Host != "" {
		log.Info().Str("host", cfg.LLM.Ollama.Host).Msg("Registering Ollama provider")
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama.Host, cfg.LLM.Ollama.DefaultModel))
	}
	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI.APIKey, cfg.LLM.OpenAI.Model))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	} else {
		log.Warn().Msg("Gemini API key is empty, skipping registration")
	}

	// Repositories
	interviewRepo := postgres.NewInterviewRepository(db.Pool)
	jobRepo := mongorepo.NewJobRepository(mongoClient)
	factRepo := mongorepo.NewFactRepository(mongoClient, cfg.Memory.CollectionName)

	// Caching and rate limiting
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)
	matchCache := redis.NewMatchCache(redisClient)

	// Services
	memoryService := memory.NewService(factRepo, llmRouter, cfg.Memory.RecallMinScore, cfg.Memory.MaxFactsPerSession)
	resumeService := resume.NewService(llmRouter)
	matchService := match.NewService(jobRepo, llmRouter, matchCache)
	controller := interview.NewController(
		registry,
		llmRouter,
		memoryService,
		interviewRepo,
		resumeService,
		cfg.Interview.PregenDelay,
		cfg.Interview.IntroQuestion,
	)
	sttRelay := stt.NewRelay(cfg.STT)

	// Handlers
	interviewHandler := handler.NewInterviewHandler(controller, tokenManager)
	resumeHandler := handler.NewResumeHandler(resumeService)
	jobsHandler := handler.NewJobsHandler(jobRepo, matchService)

	// Middleware
	authMiddleware := customMiddleware.NewAuthMiddleware(tokenManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(db))
		r.Get("/llm-providers", handler.ListLLMProviders(llmRouter))

		// Session creation is public; everything session-scoped needs the
		// token minted here.
		r.With(rateLimitMiddleware.Limit).Post("/interviews", interviewHandler.Create)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Route("/interviews/{sessionID}", func(r chi.Router) {
				r.Post("/answer", interviewHandler.Answer)
				r.Post("/assessment", interviewHandler.Assessment)
				r.Delete("/", interviewHandler.Delete)
			})

			r.Get("/stt/stream", sttRelay.ServeHTTP)
		})

		// Job board and resume tooling
		r.Group(func(r chi.Router) {
			r.Use(rateLimitMiddleware.Limit)

			r.Post("/resumes/parse", resumeHandler.Parse)
			r.Get("/jobs", jobsHandler.List)
			r.Post("/jobs/match", jobsHandler.Match)
		})
	})

	return r, controller
}
