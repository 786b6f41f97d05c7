package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/kgrimaldi/challenge75-backend/internal/handlers"
)

func SetupRoutes(r chi.Router, h *handlers.Handler) {
	// Day record routes
	r.Post("/api/save-day", h.SaveDay)
	r.Delete("/api/delete-photo/{day}/{index}", h.DeletePhoto)
	r.Post("/api/set-cover/{day}/{index}", h.SetCoverPhoto)

	// Summary stats
	r.Get("/api/summary", h.GetSummary)
}
