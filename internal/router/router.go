package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"flashtube-backend/internal/handlers"
	"flashtube-backend/internal/middleware"
)

func New(
	flashcardHandler *handlers.FlashcardHandler,
	transcriptHandler *handlers.TranscriptHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Generation rate limiter (10 req/min per IP); transcript-only
	// fetches are cheap enough to leave unmetered.
	generateLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Get("/health", handlers.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/flashcards", func(r chi.Router) {
			r.Use(generateLimiter.Middleware)
			r.Post("/generate", flashcardHandler.Generate)
		})

		r.Post("/transcript", transcriptHandler.Fetch)
	})

	return r
}
