package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// FileStore persists the cache document as one pretty-printed JSON file,
// matching the artifacts earlier runs left behind.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore writing to path. Parent directories are
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the document. A missing file is an empty document, not an
// error.
func (s *FileStore) Load(ctx context.Context) (Document, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Document{}, nil
	}
	if err != nil {
		return nil, err
	}
	doc := Document{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Save overwrites the persisted document with doc.
func (s *FileStore) Save(ctx context.Context, doc Document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}

var _ Store = (*FileStore)(nil)
