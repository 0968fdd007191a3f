package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"gradscout/internal/usecase"
)

// userCookie carries the signed-in username between requests. It is neither
// signed nor encrypted; see DESIGN.md on the preserved plaintext-session flaw.
const userCookie = "gradscout_user"

type Server struct {
	auth    usecase.AuthUseCase
	session usecase.SessionUseCase
	search  usecase.SearchOrchestrator
	history usecase.PromptHistoryLog
	log     *zerolog.Logger
}

func NewServer(
	auth usecase.AuthUseCase,
	session usecase.SessionUseCase,
	search usecase.SearchOrchestrator,
	history usecase.PromptHistoryLog,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		auth:    auth,
		session: session,
		search:  search,
		history: history,
		log:     logger,
	}
}

// Routes builds the full router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Post("/auth/logout", s.handleLogout)

		r.Post("/search", s.handleSearch)
		r.Get("/search/state", s.handleSearchState)
		r.Post("/search/summary", s.handleAudioSummary)

		r.Post("/favorites/toggle", s.handleToggleFavorite)
		r.Get("/favorites", s.handleFavorites)

		r.Post("/searches", s.handleSaveSearch)
		r.Get("/searches", s.handleSavedSearches)
		r.Delete("/searches/{id}", s.handleDeleteSearch)

		r.Get("/history", s.handleHistory)
		r.Post("/export", s.handleExport)
	})
	return r
}

// username resolves the caller's identity from the session cookie, falling
// back to the X-Username header for non-browser clients. Empty means
// anonymous: searches still run, nothing is persisted or logged.
func username(r *http.Request) string {
	if c, err := r.Cookie(userCookie); err == nil && c.Value != "" {
		return c.Value
	}
	return r.Header.Get("X-Username")
}
