// Package app initializes and runs the patent certificate console.
// It selects the storage backend, opens the aggregate, wires the services
// and hands control to the interactive command loop.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/patentcert/internal/admin"
	"github.com/dmitrijs2005/patentcert/internal/auth"
	"github.com/dmitrijs2005/patentcert/internal/cli"
	"github.com/dmitrijs2005/patentcert/internal/config"
	"github.com/dmitrijs2005/patentcert/internal/export"
	"github.com/dmitrijs2005/patentcert/internal/ledger"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/repository"
	"github.com/dmitrijs2005/patentcert/internal/store"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	console *cli.App
	store   store.Store
}

// newStore picks the persistence backend: Postgres when a DSN is
// configured, the local JSON file otherwise.
func newStore(ctx context.Context, c *config.Config) (store.Store, error) {
	if c.DatabaseDSN != "" {
		return store.NewPostgresStore(ctx, c.DatabaseDSN)
	}
	return store.NewFileStore(c.StorePath)
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	st, err := newStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	agg, err := repository.Open(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("document load error: %w", err)
	}

	gate := auth.NewGate(agg, c.SecretKey, c.SessionValidityDuration)
	ledgerSvc := ledger.NewService(agg, logger)
	adminSvc := admin.NewService(agg, logger)

	var archiver export.Archiver
	s3cfg := export.S3Config{
		RootUser:     c.S3RootUser,
		RootPassword: c.S3RootPassword,
		Bucket:       c.S3Bucket,
		Region:       c.S3Region,
		BaseEndpoint: c.S3BaseEndpoint,
	}
	if s3cfg.Enabled() {
		archiver = export.NewS3Archiver(s3cfg)
	}

	delivery := export.NewService(ledgerSvc, ledgerSvc, export.NewRenderer(), archiver, c.ExportDir, logger)

	console := cli.NewApp(gate, ledgerSvc, adminSvc, delivery, agg, logger)

	return &App{config: c, logger: logger, console: console, store: st}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	app.console.Run(ctx)

	if closer, ok := app.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			app.logger.Error(ctx, err.Error())
		}
	}
}
