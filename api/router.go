package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/piclink-games/piclink-backend/api/handlers"
	attemptservice "github.com/piclink-games/piclink-backend/app/modules/attempt/application"
	challengeservice "github.com/piclink-games/piclink-backend/app/modules/challenge/application"
	leaderboardservice "github.com/piclink-games/piclink-backend/app/modules/leaderboard/application"
	userservice "github.com/piclink-games/piclink-backend/app/modules/user/application"
	"github.com/piclink-games/piclink-backend/app/shared/attr"
)

// Dependencies are the services the HTTP surface routes into.
type Dependencies struct {
	Attempts    attemptservice.Service
	Challenges  challengeservice.Service
	Leaderboard *leaderboardservice.LeaderboardService
	Users       *userservice.UserService
	Registry    *prometheus.Registry
}

// NewRouter builds the chi router for the API.
func NewRouter(deps Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(correlationID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/challenges", handlers.NewChallengeHandler(deps.Challenges).Routes())
		r.Mount("/attempts", handlers.NewAttemptHandler(deps.Attempts).Routes())
		r.Mount("/leaderboard", handlers.NewLeaderboardHandler(deps.Leaderboard).Routes())
		r.Mount("/users", handlers.NewUserHandler(deps.Users).Routes())
	})

	return r
}

// correlationID threads a request-scoped correlation id through the context
// so service logs can be stitched together.
func correlationID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Correlation-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Correlation-ID", id)
		next.ServeHTTP(w, r.WithContext(attr.WithCorrelationID(r.Context(), id)))
	})
}
