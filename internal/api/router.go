package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(apiHandler *APIHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)       // Basic request logging
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	// All API routes will be under /api
	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/signup", apiHandler.SignupHandler)
		r.Post("/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// Profile
		r.Get("/profile", apiHandler.GetProfileHandler)
		r.Post("/profile", apiHandler.SaveProfileHandler)
		r.Post("/profile/enrich", apiHandler.EnrichProfileHandler)

		// AI planning features (free text is the product)
		r.Post("/itinerary", apiHandler.ItineraryHandler)
		r.Post("/packing", apiHandler.PackingHandler)
		r.Post("/culture", apiHandler.CultureHandler)
		r.Post("/experiences", apiHandler.ExperiencesHandler)
		r.Post("/cost", apiHandler.CostHandler)

		// Safety
		r.Post("/safety", apiHandler.SafetyCheckHandler)
		r.Post("/safety/enhanced", apiHandler.EnhancedSafetyHandler)
		r.Post("/safety/emergency", apiHandler.EmergencyHandler)
		r.Post("/safety/region", apiHandler.RegionSafetyHandler)

		// Journal
		r.Post("/journal", apiHandler.SaveJournalHandler)
		r.Get("/journal", apiHandler.ListJournalHandler)
		r.Post("/journal/analyze", apiHandler.AnalyzeJournalHandler)

		// Location, weather, distance, stays
		r.Get("/location", apiHandler.LocationHandler)
		r.Get("/weather", apiHandler.WeatherHandler)
		r.Post("/distance", apiHandler.DistanceHandler)
		r.Get("/stays/{place}", apiHandler.StaysHandler)
		r.Post("/similar", apiHandler.SimilarStaysHandler)

		// Usage metrics and survey
		r.Route("/metrics", func(r chi.Router) {
			r.Post("/page", apiHandler.LogPageHandler)
			r.Post("/event", apiHandler.LogClickHandler)
			r.Post("/load_time", apiHandler.LogLoadTimeHandler)
			r.Post("/scroll", apiHandler.LogScrollHandler)
			r.Post("/ai", apiHandler.LogAIUsageHandler)
			r.Post("/task_attempt", apiHandler.TaskAttemptHandler)
			r.Post("/task_success", apiHandler.TaskSuccessHandler)
			r.Post("/task_error", apiHandler.TaskErrorHandler)
		})
		r.Post("/survey", apiHandler.SurveyHandler)

		// Admin routes require a valid token
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			r.Get("/admin/metrics", apiHandler.AdminMetricsHandler)
			r.Get("/admin/export/users.csv", apiHandler.ExportUsersCSVHandler)
			r.Get("/admin/export/metrics.csv", apiHandler.ExportMetricsCSVHandler)
			r.Get("/admin/export.json", apiHandler.ExportJSONHandler)
		})
	})

	return r
}
