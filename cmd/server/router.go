package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/taskal/internal/api"
	apiMiddleware "github.com/phrazzld/taskal/internal/api/middleware"
)

// setupRouter registers every route with its middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(apiMiddleware.Locale(app.locale))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.config.Auth, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/me", authHandler.Me)
			r.Delete("/me", authHandler.DeleteMe)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/agenda", taskHandler.Agenda)
				r.Get("/completed", taskHandler.Completed)
				r.Get("/trash", taskHandler.Trash)
				r.Get("/{id}", taskHandler.GetTask)
				r.Put("/{id}", taskHandler.UpdateTask)
				r.Patch("/{id}/status", taskHandler.ChangeStatus)
				r.Delete("/{id}", taskHandler.DeleteTask)
				r.Post("/{id}/restore", taskHandler.RestoreTask)
				r.Delete("/{id}/purge", taskHandler.PurgeTask)
			})

			r.Get("/calendar/{year}/{month}", taskHandler.Calendar)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.CreateProject)
				r.Get("/{id}", projectHandler.GetProject)
				r.Put("/{id}", projectHandler.UpdateProject)
				r.Patch("/{id}/status", projectHandler.ChangeProjectStatus)
				r.Delete("/{id}", projectHandler.DeleteProject)
			})
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
