package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/filex"
	"github.com/dmitrijs2005/patentcert/internal/ledger"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/models"
)

// Payer is the slice of the ledger the delivery step needs: the idempotent
// pay-on-download transition.
type Payer interface {
	ConfirmDelivery(ctx context.Context, certID string) (ledger.Outcome, error)
}

// Reader resolves certificates and the patent configuration from the
// aggregate.
type Reader interface {
	Certificate(ctx context.Context, certID string) (*models.Certificate, error)
	Config(ctx context.Context) models.PatentConfig
}

// Archiver pushes an exported document to long-term storage and returns a
// retrieval URL. Optional.
type Archiver interface {
	Archive(ctx context.Context, certID string, payload []byte) (string, error)
}

// Result reports what a delivery produced.
type Result struct {
	Path       string
	ArchiveURL string
	Outcome    ledger.Outcome
}

// Service implements the explicit two-step download protocol: render and
// export first (no ledger effect), confirm delivery second. Payment is
// requested only after every presentation step succeeded, so a render or
// write failure can never charge anyone.
type Service struct {
	ledger   Payer
	reader   Reader
	renderer *Renderer
	archiver Archiver
	dir      string
	logger   logging.Logger
}

// NewService wires a delivery pipeline. The ledger service satisfies both
// Payer and Reader; archiver may be nil.
func NewService(payer Payer, reader Reader, renderer *Renderer, archiver Archiver, dir string, logger logging.Logger) *Service {
	return &Service{
		ledger:   payer,
		reader:   reader,
		renderer: renderer,
		archiver: archiver,
		dir:      dir,
		logger:   logger.With("component", "export"),
	}
}

// Download renders the certificate, writes the PDF to the export directory,
// archives it when an archiver is configured, and finally performs the
// pay-on-download transition. Retrying after any failure is always safe:
// either nothing was paid yet, or the ledger answers already-paid.
func (s *Service) Download(ctx context.Context, certID string) (*Result, error) {
	cert, err := s.reader.Certificate(ctx, certID)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.Render(cert, s.reader.Config(ctx))
	if err != nil {
		return nil, err
	}
	payload, err := doc.Bytes()
	if err != nil {
		return nil, err
	}

	if _, err := filex.EnsureDir(s.dir); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorExportFailed, err)
	}
	path := filepath.Join(s.dir, fmt.Sprintf("授权证明_%s.pdf", cert.ID))
	if err := os.WriteFile(path, payload, 0o660); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorExportFailed, err)
	}

	result := &Result{Path: path}
	if s.archiver != nil {
		url, err := s.archiver.Archive(ctx, cert.ID, payload)
		if err != nil {
			// The document was produced; archiving is best-effort and must
			// not block the delivery.
			s.logger.Warn(ctx, "archive upload failed", "certId", cert.ID, "error", err.Error())
		} else {
			result.ArchiveURL = url
		}
	}

	outcome, err := s.ledger.ConfirmDelivery(ctx, certID)
	if err != nil {
		return nil, err
	}
	result.Outcome = outcome

	s.logger.Info(ctx, "certificate delivered", "certId", cert.ID, "outcome", outcome.String())
	return result, nil
}
