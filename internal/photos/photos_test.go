package photos

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kgrimaldi/challenge75-backend/internal/models"
)

func TestStoreUpload(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	p, err := m.StoreUpload(3, strings.NewReader("jpeg bytes"), "selfie.jpg")
	if err != nil {
		t.Fatalf("store upload failed: %v", err)
	}
	if !strings.HasPrefix(p, "images/day3-") {
		t.Errorf("expected images/day3- prefix, got %s", p)
	}
	if !strings.HasSuffix(p, ".jpg") {
		t.Errorf("expected original extension preserved, got %s", p)
	}

	onDisk := filepath.Join(dir, filepath.Base(p))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("uploaded file not on disk: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestStoreUploadGeneratesUniqueNames(t *testing.T) {
	m := NewManager(t.TempDir())
	a, err := m.StoreUpload(1, strings.NewReader("a"), "x.png")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.StoreUpload(1, strings.NewReader("b"), "x.png")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Errorf("expected unique names for identical uploads, got %s twice", a)
	}
}

func TestStoreUploadCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	m := NewManager(dir)
	os.RemoveAll(dir)

	if _, err := m.StoreUpload(2, strings.NewReader("x"), "a.jpg"); err != nil {
		t.Fatalf("expected upload to recreate the directory: %v", err)
	}
}

func TestAppendPromotesFirstPhotoToCover(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{}

	m.Append(rec, []string{"images/a.jpg", "images/b.jpg"})

	if len(rec.Photos) != 2 {
		t.Fatalf("expected 2 photos, got %d", len(rec.Photos))
	}
	if !rec.Photos[0].IsCover || rec.Photos[1].IsCover {
		t.Errorf("expected [cover, not-cover], got [%v, %v]",
			rec.Photos[0].IsCover, rec.Photos[1].IsCover)
	}
	if rec.Photos[0].ID == "" || rec.Photos[0].ID == rec.Photos[1].ID {
		t.Error("expected distinct non-empty photo ids")
	}
}

func TestAppendKeepsExistingCover(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{
		{ID: "p1", Path: "images/a.jpg"},
		{ID: "p2", Path: "images/b.jpg", IsCover: true},
	}}

	m.Append(rec, []string{"images/c.jpg"})

	if len(rec.Photos) != 3 {
		t.Fatalf("expected 3 photos, got %d", len(rec.Photos))
	}
	covers := 0
	for _, p := range rec.Photos {
		if p.IsCover {
			covers++
		}
	}
	if covers != 1 || !rec.Photos[1].IsCover {
		t.Errorf("expected existing cover untouched, photos: %+v", rec.Photos)
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{{Path: "images/a.jpg", IsCover: true}}}

	for _, idx := range []int{-1, 1, 5} {
		if err := m.Delete(rec, idx); err != ErrPhotoNotFound {
			t.Errorf("Delete(%d): expected ErrPhotoNotFound, got %v", idx, err)
		}
	}
	if len(rec.Photos) != 1 {
		t.Error("out-of-range delete must leave the list unchanged")
	}
}

func TestDeleteRepromotesCoverAndUnlinksFile(t *testing.T) {
	dir := t.TempDir()
	m := NewManager(dir)

	pathA, err := m.StoreUpload(5, strings.NewReader("a"), "a.jpg")
	if err != nil {
		t.Fatal(err)
	}
	rec := &models.DayRecord{}
	m.Append(rec, []string{pathA, "images/b.jpg"})

	if err := m.Delete(rec, 0); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(rec.Photos) != 1 {
		t.Fatalf("expected 1 photo after delete, got %d", len(rec.Photos))
	}
	if !rec.Photos[0].IsCover {
		t.Error("expected remaining photo to be re-promoted to cover")
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.Base(pathA))); !os.IsNotExist(err) {
		t.Error("expected the underlying file to be removed")
	}
}

func TestDeleteSurvivesMissingFile(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{{Path: "images/never-existed.jpg", IsCover: true}}}

	if err := m.Delete(rec, 0); err != nil {
		t.Fatalf("file unlink is best-effort, delete must still succeed: %v", err)
	}
	if len(rec.Photos) != 0 {
		t.Error("expected empty photo list")
	}
}

func TestDeleteNonCoverKeepsCover(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{
		{ID: "p1", Path: "images/a.jpg", IsCover: true},
		{ID: "p2", Path: "images/b.jpg"},
	}}

	if err := m.Delete(rec, 1); err != nil {
		t.Fatal(err)
	}
	if len(rec.Photos) != 1 || !rec.Photos[0].IsCover || rec.Photos[0].ID != "p1" {
		t.Errorf("expected cover untouched, got %+v", rec.Photos)
	}
}

func TestSetCover(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{
		{Path: "images/a.jpg", IsCover: true},
		{Path: "images/b.jpg"},
		{Path: "images/c.jpg"},
	}}

	if err := m.SetCover(rec, 2); err != nil {
		t.Fatal(err)
	}
	for i, p := range rec.Photos {
		if p.IsCover != (i == 2) {
			t.Errorf("photo %d cover = %v", i, p.IsCover)
		}
	}
}

func TestSetCoverOutOfRangeLeavesCoverUnchanged(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{
		{Path: "images/a.jpg", IsCover: true},
		{Path: "images/b.jpg"},
	}}

	if err := m.SetCover(rec, 7); err != ErrPhotoNotFound {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
	if !rec.Photos[0].IsCover || rec.Photos[1].IsCover {
		t.Error("out-of-range set-cover must leave cover assignment unchanged")
	}
}

func TestSetCoverIdempotentOnSolePhoto(t *testing.T) {
	m := NewManager(t.TempDir())
	rec := &models.DayRecord{Photos: []models.Photo{{Path: "images/a.jpg", IsCover: true}}}

	if err := m.SetCover(rec, 0); err != nil {
		t.Fatal(err)
	}
	if !rec.Photos[0].IsCover {
		t.Error("sole photo must stay cover")
	}
}
