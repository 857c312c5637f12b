package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/dbx"
	"github.com/dmitrijs2005/patentcert/internal/migrations"
	"github.com/dmitrijs2005/patentcert/internal/models"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresStore keeps the document in a single-row jsonb table. It exists
// for multi-host deployments where a shared database replaces the local
// file; the document semantics (whole replacement, seed on empty) are
// identical to FileStore.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.runMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return goose.UpContext(ctx, s.db, ".")
}

func (s *PostgresStore) Load(ctx context.Context) (*models.AppData, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT document FROM app_document WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Seed(), nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	data := &models.AppData{}
	if err := json.Unmarshal(raw, data); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorStoreCorrupt, err)
	}
	return data, nil
}

func (s *PostgresStore) Save(ctx context.Context, data *models.AppData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO app_document (id, document, saved_at)
			 VALUES (1, $1, now())
			 ON CONFLICT (id) DO UPDATE SET document = $1, saved_at = now()`,
			raw)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) Reset(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM app_document WHERE id = 1`)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
