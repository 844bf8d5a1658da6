package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"mcra/internal/domain"
)

// JSONStore keeps the last report run in a JSON file.
type JSONStore struct {
	path string
}

// NewJSONStore returns a SnapshotStore that reads/writes path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Path returns the snapshot location.
func (s *JSONStore) Path() string {
	return s.path
}

// Save writes the snapshot, creating the directory if needed.
func (s *JSONStore) Save(snapshot *domain.ReportSnapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Load reads the last snapshot.
func (s *JSONStore) Load() (*domain.ReportSnapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}
	var snapshot domain.ReportSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snapshot, nil
}
