package store

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/kgrimaldi/challenge75-backend/internal/models"
)

// RecordStore handles file-based persistence of the whole challenge document.
// Every mutation is load-entire-document, mutate, write-entire-document; the
// mutex serializes those cycles so concurrent API calls cannot interleave
// within one process. Cross-process writers remain last-writer-wins.
type RecordStore struct {
	path string
	mu   sync.Mutex
}

func New(path string) *RecordStore {
	if dir := filepath.Dir(path); dir != "." {
		os.MkdirAll(dir, 0o755)
	}
	return &RecordStore{path: path}
}

// Load returns the persisted document. A missing or unparsable file yields an
// empty document with a logged warning, never an error.
func (s *RecordStore) Load() models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Save overwrites the document file with doc, pretty-printed.
func (s *RecordStore) Save(doc models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(doc)
}

// Update runs fn against a freshly loaded document inside the single-writer
// lock and persists the result. If fn returns an error the document file is
// left untouched.
func (s *RecordStore) Update(fn func(models.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	if err := fn(doc); err != nil {
		return err
	}
	return s.write(doc)
}

func (s *RecordStore) read() models.Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not read %s, starting fresh: %v", s.path, err)
		}
		return models.Document{}
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Warning: invalid JSON in %s, starting fresh: %v", s.path, err)
		return models.Document{}
	}
	if doc == nil {
		doc = models.Document{}
	}
	return doc
}

func (s *RecordStore) write(doc models.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
