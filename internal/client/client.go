// Package client is the synchronization layer used by the calendar UIs. It
// keeps an in-memory mirror of the challenge document, fetched once, and
// patches only the affected day from each mutation's response instead of
// re-fetching the whole document.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/kgrimaldi/challenge75-backend/internal/models"
)

// CellState is the visual state of one calendar cell, derived purely from the
// mirrored record content.
type CellState int

const (
	CellEmpty CellState = iota
	CellHasContent
	CellHasImage
)

// Upload is one photo file attached to a save call.
type Upload struct {
	Name string
	Data []byte
}

// Client mirrors the challenge document and talks to the day API.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu  sync.RWMutex
	doc models.Document
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		doc:     models.Document{},
	}
}

type apiResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Photos  []models.Photo `json:"photos"`
}

// Load fetches the full document into the mirror. The cachebust query defeats
// stale copies in intermediate caches.
func (c *Client) Load(ctx context.Context) error {
	url := fmt.Sprintf("%s/data.json?cachebust=%d", c.baseURL, time.Now().UnixNano())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("load data: status %d", resp.StatusCode)
	}

	var doc models.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	if doc == nil {
		doc = models.Document{}
	}

	c.mu.Lock()
	c.doc = doc
	c.mu.Unlock()
	return nil
}

// Day returns a copy of the mirrored record for a day, or nil if the day has
// never been saved.
func (c *Client) Day(day int) *models.DayRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec := c.doc.Day(day)
	if rec == nil {
		return nil
	}
	cp := *rec
	cp.Photos = append([]models.Photo(nil), rec.Photos...)
	return &cp
}

// SaveDay submits the day's fields and any new photos. On success the mirror
// is patched with the normalized fields and the server's authoritative photo
// list; on any failure the mirror is untouched.
func (c *Client) SaveDay(ctx context.Context, day int, fields models.DayFields, uploads []Upload) ([]models.Photo, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	formFields := map[string]string{
		"day":              strconv.Itoa(day),
		"mood":             fields.Mood,
		"diet_rating":      fields.DietRating,
		"sleep_hours":      fields.SleepHours,
		"calories_burned":  fields.CaloriesBurned,
		"steps_taken":      fields.StepsTaken,
		"strength_workout": fields.StrengthWorkout,
		"cardio_workout":   fields.CardioWorkout,
		"additional_notes": fields.AdditionalNotes,
	}
	for name, value := range formFields {
		if err := mw.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	for _, u := range uploads {
		part, err := mw.CreateFormFile("photos", u.Name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(u.Data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/save-day", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	result, err := c.do(req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	rec := c.doc.Ensure(day)
	fields.Apply(rec)
	rec.Photos = photosOrEmpty(result.Photos)
	saved := append([]models.Photo(nil), rec.Photos...)
	c.mu.Unlock()
	return saved, nil
}

// DeletePhoto removes the photo at index for a day and patches the mirrored
// photo list from the response.
func (c *Client) DeletePhoto(ctx context.Context, day, index int) ([]models.Photo, error) {
	return c.mutatePhotos(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/delete-photo/%d/%d", c.baseURL, day, index), day)
}

// SetCoverPhoto designates the photo at index as the day's cover and patches
// the mirrored photo list from the response.
func (c *Client) SetCoverPhoto(ctx context.Context, day, index int) ([]models.Photo, error) {
	return c.mutatePhotos(ctx, http.MethodPost,
		fmt.Sprintf("%s/api/set-cover/%d/%d", c.baseURL, day, index), day)
}

// CellState derives the visual state of a day's calendar cell. imageOK
// reports whether the cover image resource actually loads; a load failure
// falls back to the flat content indicator. A nil imageOK assumes images load.
func (c *Client) CellState(day int, imageOK func(path string) bool) CellState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec := c.doc.Day(day)
	if rec == nil {
		return CellEmpty
	}
	if cover, ok := rec.Cover(); ok {
		if imageOK == nil || imageOK(cover.Path) {
			return CellHasImage
		}
	}
	if rec.HasContent() {
		return CellHasContent
	}
	return CellEmpty
}

func (c *Client) mutatePhotos(ctx context.Context, method, url string, day int) ([]models.Photo, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	result, err := c.do(req)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	rec := c.doc.Ensure(day)
	rec.Photos = photosOrEmpty(result.Photos)
	saved := append([]models.Photo(nil), rec.Photos...)
	c.mu.Unlock()
	return saved, nil
}

// do runs the request and decodes the uniform response envelope. A non-2xx
// status or success=false surfaces the server's message as the error.
func (c *Client) do(req *http.Request) (*apiResponse, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("server error: %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || !result.Success {
		if result.Message != "" {
			return nil, fmt.Errorf("%s", result.Message)
		}
		return nil, fmt.Errorf("server error: %d", resp.StatusCode)
	}
	return &result, nil
}

func photosOrEmpty(ps []models.Photo) []models.Photo {
	if ps == nil {
		return []models.Photo{}
	}
	return ps
}
