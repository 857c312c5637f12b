package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data", "patentcert.json"))
	require.NoError(t, err)
	return s
}

func TestFileStoreLoadEmptyReturnsSeed(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	a, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Seed(), a)

	// Two loads of an empty store must not share mutable substructure.
	b, err := s.Load(ctx)
	require.NoError(t, err)
	a.Users[1].Credits = 1
	assert.Equal(t, 1000, b.Users[1].Credits)
}

func TestFileStoreSaveLoadRoundtrip(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	data := models.Seed()
	data.Certificates = append(data.Certificates, models.Certificate{
		ID: "2024010203040550001", UserID: "user1", ProjectID: "p2",
		ProjectName: "研发与实验使用", IssueDate: "2024-01-02T03:04:05Z",
	})
	data.Users[1].Credits = 800

	require.NoError(t, s.Save(ctx, data))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestFileStoreResetErasesDocument(t *testing.T) {
	ctx := context.Background()
	s := newFileStore(t)

	data := models.Seed()
	data.Users[1].Credits = 1
	require.NoError(t, s.Save(ctx, data))

	require.NoError(t, s.Reset(ctx))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Seed(), got)

	// resetting an already-empty store is fine
	assert.NoError(t, s.Reset(ctx))
}

func TestFileStoreCorruptDocumentIsFatal(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "patentcert.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o660))

	s, err := NewFileStore(path)
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrorStoreCorrupt)
}
