package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucas/resume-studio/internal/billing"
	"github.com/lucas/resume-studio/internal/config"
	"github.com/lucas/resume-studio/internal/db"
	"github.com/lucas/resume-studio/internal/generation"
	"github.com/lucas/resume-studio/internal/llm"
	"github.com/lucas/resume-studio/internal/server/middleware"
	"github.com/lucas/resume-studio/internal/server/ratelimit"
)

// Server is the HTTP server for the resume studio API.
type Server struct {
	httpServer  *http.Server
	db          DBClient
	database    *db.DB
	gen         *generation.Service
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// Config holds server configuration.
type Config struct {
	Port        int
	DatabaseURL string
}

// New creates a server instance connected to the database.
func New(cfg Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:          database,
		database:    database,
		rateLimiter: ratelimit.NewLimiter(5 * time.Minute),
	}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(s.db, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.gen = generation.NewService()
	s.gen.OnInvocation = s.logInvocation

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: s.withLogging(s.withCORS(s.routes())),
		// Generation calls can run long; the write timeout covers the
		// slowest provider round trip.
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request mux. Generation and account routes sit
// behind JWT auth; generation routes are additionally rate limited by
// the caller's plan.
func (s *Server) routes() http.Handler {
	authed := middleware.Auth(s.jwtService.AsTokenValidator())
	limited := func(h http.HandlerFunc) http.Handler {
		return authed(s.withPlanRateLimit(h))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /models", s.handleListModels)

	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", authed(http.HandlerFunc(s.handleUpdatePassword)))

	mux.Handle("PUT /credentials", authed(http.HandlerFunc(s.handleStoreCredential)))
	mux.Handle("GET /credentials", authed(http.HandlerFunc(s.handleListCredentials)))
	mux.Handle("DELETE /credentials/{service}", authed(http.HandlerFunc(s.handleDeleteCredential)))
	mux.Handle("GET /invocations", authed(http.HandlerFunc(s.handleListInvocations)))

	mux.Handle("POST /resumes/tailor", limited(s.handleTailorResume))
	mux.Handle("POST /resumes/import-profile", limited(s.handleImportProfile))
	mux.Handle("POST /resumes/merge-text", limited(s.handleMergeText))
	mux.Handle("POST /profiles/format", limited(s.handleFormatProfile))
	mux.Handle("POST /profiles/import-text", limited(s.handleImportText))
	mux.Handle("POST /jobs/parse", limited(s.handleParseJob))
	mux.Handle("POST /points/work-experience", limited(s.handleWorkExperiencePoints))
	mux.Handle("POST /points/work-experience/improve", limited(s.handleImproveWorkExperiencePoint))
	mux.Handle("POST /points/project", limited(s.handleProjectPoints))
	mux.Handle("POST /points/project/improve", limited(s.handleImproveProjectPoint))
	mux.Handle("POST /experiences/modify", limited(s.handleModifyExperience))
	mux.Handle("POST /suggestions/sections", limited(s.handleSuggestSections))

	return mux
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.database != nil {
		s.database.Close()
	}
	log.Println("Server stopped")
	return nil
}

// logInvocation persists per-call generation metadata. Failures are
// logged, never surfaced: accounting must not fail a generation the
// user already paid tokens for.
func (s *Server) logInvocation(ctx context.Context, inv *llm.Invocation) {
	userID, err := middleware.UserIDFromContext(ctx)
	if err != nil {
		return
	}

	rec := &db.InvocationRecord{
		UserID:           userID,
		Model:            inv.ModelID,
		Family:           string(inv.Family),
		Contract:         inv.Contract,
		PromptTokens:     inv.Usage.PromptTokens,
		CompletionTokens: inv.Usage.CompletionTokens,
		TotalTokens:      inv.Usage.TotalTokens,
		FinishReason:     inv.FinishReason,
		Duration:         inv.Duration,
	}
	if err := s.db.LogInvocation(ctx, rec); err != nil {
		log.Printf("failed to log invocation for %s: %v", userID, err)
	}
}

// withPlanRateLimit limits generation requests by the caller's plan
// quota. The bucket key is the user ID, so the limit follows the
// account rather than the client address.
func (s *Server) withPlanRateLimit(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		plan := billing.PlanFree
		if user, err := s.db.GetUser(r.Context(), userID); err == nil && user != nil {
			if parsed, err := billing.ParsePlan(user.Plan); err == nil {
				plan = parsed
			}
		}
		quota := billing.QuotaFor(plan)

		allowed, info := s.rateLimiter.Allow(userID.String(), ratelimit.Rate{
			PerMinute: quota.RequestsPerMinute,
			Burst:     quota.Burst,
		})
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword handles password change requests.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePassword(w, r, userID)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())+1))
	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"error":       "rate_limit_exceeded",
		"retry_after": info.RetryAfter.Seconds(),
	})
}
