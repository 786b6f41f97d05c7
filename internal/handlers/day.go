package handlers

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kgrimaldi/challenge75-backend/internal/config"
	"github.com/kgrimaldi/challenge75-backend/internal/models"
	"github.com/kgrimaldi/challenge75-backend/internal/photos"
	"github.com/kgrimaldi/challenge75-backend/internal/store"
)

// Handler holds the dependencies of the day API.
type Handler struct {
	Store  *store.RecordStore
	Photos *photos.Manager
	Cfg    *config.Config
}

// SaveDay handles POST /api/save-day: stores any uploaded photos, overwrites
// the day's non-photo fields with the submitted values (blank or unparsable
// values become null), appends the new photos and persists the document.
func (h *Handler) SaveDay(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadMB << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form: "+err.Error())
		return
	}

	dayStr := strings.TrimSpace(r.FormValue("day"))
	if dayStr == "" {
		writeError(w, http.StatusBadRequest, "Day number is required.")
		return
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid day number.")
		return
	}

	fields := models.DayFields{
		Mood:            r.FormValue("mood"),
		DietRating:      r.FormValue("diet_rating"),
		SleepHours:      r.FormValue("sleep_hours"),
		CaloriesBurned:  r.FormValue("calories_burned"),
		StepsTaken:      r.FormValue("steps_taken"),
		StrengthWorkout: r.FormValue("strength_workout"),
		CardioWorkout:   r.FormValue("cardio_workout"),
		AdditionalNotes: r.FormValue("additional_notes"),
	}

	var files []*multipart.FileHeader
	if r.MultipartForm != nil {
		files = r.MultipartForm.File["photos"]
	}
	if len(files) > h.Cfg.MaxPhotosPerDay {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("Too many photos: at most %d per save.", h.Cfg.MaxPhotosPerDay))
		return
	}

	// Uploads get distinct generated filenames, so they can be written before
	// taking the document lock.
	var paths []string
	for _, fh := range files {
		file, err := fh.Open()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to read uploaded photo.")
			return
		}
		p, err := h.Photos.StoreUpload(day, file, fh.Filename)
		file.Close()
		if err != nil {
			log.Printf("Error storing upload for day %d: %v", day, err)
			writeError(w, http.StatusInternalServerError, "Failed to store uploaded photo.")
			return
		}
		paths = append(paths, p)
	}

	var saved []models.Photo
	err = h.Store.Update(func(doc models.Document) error {
		rec := doc.Ensure(day)
		fields.Apply(rec)
		h.Photos.Append(rec, paths)
		saved = append([]models.Photo(nil), rec.Photos...)
		return nil
	})
	if err != nil {
		log.Printf("Error saving data for day %d: %v", day, err)
		writeError(w, http.StatusInternalServerError, "Failed to save data. Check server logs.")
		return
	}

	if saved == nil {
		saved = []models.Photo{}
	}
	writeJSON(w, http.StatusOK, photoListResponse{
		Success: true,
		Message: fmt.Sprintf("Day %d updated successfully.", day),
		Photos:  saved,
	})
}

// DeletePhoto handles DELETE /api/delete-photo/{day}/{index}. The record
// update is authoritative; removal of the underlying file is best-effort.
func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	day, index, ok := dayIndexParams(w, r)
	if !ok {
		return
	}

	var saved []models.Photo
	err := h.Store.Update(func(doc models.Document) error {
		rec := doc.Day(day)
		if rec == nil || len(rec.Photos) == 0 {
			return photos.ErrPhotoNotFound
		}
		if err := h.Photos.Delete(rec, index); err != nil {
			return err
		}
		saved = append([]models.Photo(nil), rec.Photos...)
		return nil
	})
	if err != nil {
		if errors.Is(err, photos.ErrPhotoNotFound) {
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("Photo %d not found for day %d.", index, day))
			return
		}
		log.Printf("Error deleting photo %d for day %d: %v", index, day, err)
		writeError(w, http.StatusInternalServerError, "Failed to delete photo.")
		return
	}

	if saved == nil {
		saved = []models.Photo{}
	}
	writeJSON(w, http.StatusOK, photoListResponse{
		Success: true,
		Message: "Photo deleted successfully.",
		Photos:  saved,
	})
}

// SetCoverPhoto handles POST /api/set-cover/{day}/{index}.
func (h *Handler) SetCoverPhoto(w http.ResponseWriter, r *http.Request) {
	day, index, ok := dayIndexParams(w, r)
	if !ok {
		return
	}

	var saved []models.Photo
	err := h.Store.Update(func(doc models.Document) error {
		rec := doc.Day(day)
		if rec == nil || len(rec.Photos) == 0 {
			return photos.ErrPhotoNotFound
		}
		if err := h.Photos.SetCover(rec, index); err != nil {
			return err
		}
		saved = append([]models.Photo(nil), rec.Photos...)
		return nil
	})
	if err != nil {
		if errors.Is(err, photos.ErrPhotoNotFound) {
			writeError(w, http.StatusNotFound,
				fmt.Sprintf("Photo %d not found for day %d.", index, day))
			return
		}
		log.Printf("Error setting cover photo %d for day %d: %v", index, day, err)
		writeError(w, http.StatusInternalServerError, "Failed to set cover photo.")
		return
	}

	writeJSON(w, http.StatusOK, photoListResponse{
		Success: true,
		Message: "Cover photo updated.",
		Photos:  saved,
	})
}

// dayIndexParams parses the {day}/{index} URL params. Non-numeric values are
// addressed like any other missing resource.
func dayIndexParams(w http.ResponseWriter, r *http.Request) (day, index int, ok bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Invalid day number.")
		return 0, 0, false
	}
	index, err = strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Invalid photo index.")
		return 0, 0, false
	}
	return day, index, true
}
