// Package photos persists uploaded images to the asset directory and manages
// the ordered per-day photo list with its single cover photo.
package photos

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kgrimaldi/challenge75-backend/internal/models"
)

// ErrPhotoNotFound is returned when a photo index does not address an entry
// in the day's photo list.
var ErrPhotoNotFound = errors.New("photo not found")

// webPrefix is the document-relative directory recorded in photo paths, so
// they double as web resource URLs.
const webPrefix = "images"

// Manager writes and removes photo files under a single asset directory.
type Manager struct {
	dir string
}

func NewManager(dir string) *Manager {
	os.MkdirAll(dir, 0o755)
	return &Manager{dir: dir}
}

// StoreUpload writes the uploaded bytes under a generated unique name
// (day number + timestamp + random suffix + original extension) and returns
// the document-relative path to record in the day's photo list.
func (m *Manager) StoreUpload(day int, r io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	ext := filepath.Ext(originalName)
	name := fmt.Sprintf("day%d-%d-%s%s", day, time.Now().UnixMilli(), shortID(), ext)

	// O_EXCL backs up the uniqueness of the generated name.
	f, err := os.OpenFile(filepath.Join(m.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}

	return path.Join(webPrefix, name), nil
}

// Append adds new photo entries for the given stored paths, preserving the
// existing order. Each entry gets a fresh id and no cover designation; if the
// list ends up with no cover at all, the first entry is promoted.
func (m *Manager) Append(rec *models.DayRecord, paths []string) {
	for _, p := range paths {
		rec.Photos = append(rec.Photos, models.Photo{ID: uuid.NewString(), Path: p})
	}
	ensureCover(rec)
}

// Delete removes the photo at index. If the removed entry was the cover, the
// new first entry is promoted. The underlying file is unlinked best-effort:
// a failure is logged and the record mutation stands.
func (m *Manager) Delete(rec *models.DayRecord, index int) error {
	if index < 0 || index >= len(rec.Photos) {
		return ErrPhotoNotFound
	}

	removed := rec.Photos[index]
	rec.Photos = append(rec.Photos[:index], rec.Photos[index+1:]...)
	ensureCover(rec)

	if err := os.Remove(m.fileFor(removed.Path)); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not delete photo file %s: %v", removed.Path, err)
	}
	return nil
}

// SetCover designates the photo at index as the day's cover and clears the
// flag on every other entry.
func (m *Manager) SetCover(rec *models.DayRecord, index int) error {
	if index < 0 || index >= len(rec.Photos) {
		return ErrPhotoNotFound
	}
	for i := range rec.Photos {
		rec.Photos[i].IsCover = i == index
	}
	return nil
}

// fileFor maps a recorded document-relative path back to the file on disk.
func (m *Manager) fileFor(recorded string) string {
	return filepath.Join(m.dir, path.Base(recorded))
}

// ensureCover enforces the exactly-one-cover invariant for non-empty lists.
func ensureCover(rec *models.DayRecord) {
	if len(rec.Photos) == 0 {
		return
	}
	for _, p := range rec.Photos {
		if p.IsCover {
			return
		}
	}
	rec.Photos[0].IsCover = true
}

func shortID() string {
	return uuid.NewString()[:8]
}
