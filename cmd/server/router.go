package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/taskroom/taskroom-api/internal/api"
	apiMiddleware "github.com/taskroom/taskroom-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Credentialed CORS: only the configured origins may send the refresh
	// cookie cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(
		app.userStore,
		app.jwtService,
		app.passwordHasher,
		app.passwordVerifier,
		app.config,
	)
	taskHandler := api.NewTaskHandler(app.taskStore)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.userStore)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)
		r.Post("/auth/logout", authHandler.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Post("/auth/verify", authHandler.Verify)

			// Task endpoints; the /rooms path is kept for client compatibility.
			r.Get("/rooms", taskHandler.List)
			r.Post("/rooms", taskHandler.Create)
			r.Put("/rooms/{id}", taskHandler.Update)
			r.Patch("/rooms/{id}/complete", taskHandler.Complete)
			r.Delete("/rooms/{id}", taskHandler.Delete)
		})

		// Health check endpoint
		r.Get("/health", healthCheck)
	})

	return r
}

// healthCheck reports liveness; it deliberately touches no dependencies.
func healthCheck(w http.ResponseWriter, r *http.Request) {
	api.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
