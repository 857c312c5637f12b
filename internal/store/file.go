package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/filex"
	"github.com/dmitrijs2005/patentcert/internal/models"
)

// FileStore keeps the document in one JSON file. Saves go through a
// temporary file and rename, so a crash mid-write never leaves a torn
// document behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load(ctx context.Context) (*models.AppData, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Seed(), nil
		}
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	data := &models.AppData{}
	if err := json.Unmarshal(b, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrorStoreCorrupt, s.path, err)
	}
	return data, nil
}

func (s *FileStore) Save(ctx context.Context, data *models.AppData) error {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o660); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(tmp), err)
	}
	return nil
}

func (s *FileStore) Reset(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", s.path, err)
	}
	return nil
}
