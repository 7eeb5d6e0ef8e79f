package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/careboard/careboard-api/internal/api"
	"github.com/careboard/careboard-api/internal/api/middleware"
)

// setupRouter builds the HTTP routing table for the server.
func setupRouter(app *application) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.taskService)
	patientHandler := api.NewPatientHandler(app.patientService)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", taskHandler.CreateTask)
			r.Get("/", taskHandler.ListTasks)
			r.Get("/{id}", taskHandler.GetTaskDetails)
			r.Post("/{id}/assign", taskHandler.AssignTask)
			r.Post("/{id}/complete", taskHandler.CompleteTask)
		})

		r.Route("/patients", func(r chi.Router) {
			r.Post("/", patientHandler.CreatePatient)
			r.Get("/", patientHandler.QueryPatients)
			// Registered before /{id} so "export" is not captured as an ID.
			r.Get("/export", patientHandler.ExportPatients)
			r.Get("/{id}", patientHandler.GetPatient)
			r.Put("/{id}", patientHandler.UpdatePatient)
			r.Delete("/{id}", patientHandler.DeletePatient)
			r.Post("/{id}/deactivate", patientHandler.DeactivatePatient)
			r.Post("/{id}/reactivate", patientHandler.ReactivatePatient)
			r.Get("/{id}/weather", patientHandler.GetPatientWeather)
		})
	})

	return r
}
