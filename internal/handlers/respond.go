package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/kgrimaldi/challenge75-backend/internal/models"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// photoListResponse is the envelope for every photo-mutating operation. The
// client replaces the day's photo list with Photos wholesale.
type photoListResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Photos  []models.Photo `json:"photos"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}
