package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	"github.com/leadflow/server/internal/api/handlers"
	mw "github.com/leadflow/server/internal/api/middleware"
	"github.com/leadflow/server/internal/services"
)

type Dependencies struct {
	TokenIssuer  *services.TokenIssuer
	AuthHandler  *handlers.AuthHandler
	LeadsHandler *handlers.LeadsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(chimid.Compress(5))

	// 10 requests per hour per IP on the abuse-prone endpoints.
	authLimiter := mw.RateLimit(rate.Every(6*time.Minute), 10)
	analyzeLimiter := mw.RateLimit(rate.Every(6*time.Minute), 10)

	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(auth chi.Router) {
			auth.Use(authLimiter)
			auth.Post("/auth/register", dep.AuthHandler.Register)
			auth.Post("/auth/login", dep.AuthHandler.Login)
		})

		api.Group(func(protected chi.Router) {
			protected.Use(mw.Auth(dep.TokenIssuer))

			protected.Route("/leads", func(lr chi.Router) {
				lr.Get("/", dep.LeadsHandler.List)
				lr.With(analyzeLimiter).Post("/analyze", dep.LeadsHandler.Analyze)
				lr.Put("/{id}/status", dep.LeadsHandler.UpdateStatus)
				lr.Delete("/{id}", dep.LeadsHandler.Delete)
				lr.Put("/{id}/email", dep.LeadsHandler.UpdateEmail)
				lr.Post("/{id}/notes", dep.LeadsHandler.AddNote)
				lr.Put("/{id}/reminder", dep.LeadsHandler.SetReminder)
				lr.Get("/{id}/proposal", dep.LeadsHandler.Proposal)
			})
		})
	})

	return r
}
