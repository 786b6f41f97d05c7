package handlers

import (
	"net/http"
	"time"

	"github.com/kgrimaldi/challenge75-backend/internal/stats"
)

type summaryResponse struct {
	Success         bool          `json:"success"`
	Summary         stats.Summary `json:"summary"`
	CurrentDay      int           `json:"current_day"`
	ProgressPercent float64       `json:"progress_percent"`
}

// GetSummary handles GET /api/summary: aggregate stats over the whole
// document plus the challenge day counter.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	doc := h.Store.Load()

	day := stats.CurrentDay(h.Cfg.ChallengeStart, time.Now(), h.Cfg.TotalDays)
	writeJSON(w, http.StatusOK, summaryResponse{
		Success:         true,
		Summary:         stats.Compute(doc),
		CurrentDay:      day,
		ProgressPercent: stats.ProgressPercent(day, h.Cfg.TotalDays),
	})
}
