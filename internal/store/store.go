// Package store persists the AppData aggregate as a single JSON document.
//
// A store holds exactly one document. Save replaces it wholesale; there is
// no merging and no partial write. Load of an empty store yields a fresh
// seed aggregate, so two loads never share mutable state.
package store

import (
	"context"

	"github.com/dmitrijs2005/patentcert/internal/models"
)

type Store interface {
	// Load returns the persisted aggregate, or a fresh seed copy when
	// nothing has been saved yet. A malformed document is returned as an
	// error wrapping common.ErrorStoreCorrupt; the caller must treat it as
	// fatal rather than fall back to the seed.
	Load(ctx context.Context) (*models.AppData, error)

	// Save durably overwrites the stored document with the given aggregate.
	Save(ctx context.Context, data *models.AppData) error

	// Reset erases the stored document so the next Load returns the seed.
	// It does not rehydrate anything in memory; callers reload afterwards.
	Reset(ctx context.Context) error
}
