package export

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/ledger"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayer struct {
	calls   int
	outcome ledger.Outcome
	err     error
}

func (f *fakePayer) ConfirmDelivery(ctx context.Context, certID string) (ledger.Outcome, error) {
	f.calls++
	return f.outcome, f.err
}

type fakeReader struct {
	cert *models.Certificate
	err  error
}

func (f *fakeReader) Certificate(ctx context.Context, certID string) (*models.Certificate, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.cert, nil
}

func (f *fakeReader) Config(ctx context.Context) models.PatentConfig {
	return models.PatentConfig{PatentName: "p", PatentNo: "n"}
}

type fakeArchiver struct {
	url string
	err error
}

func (f *fakeArchiver) Archive(ctx context.Context, certID string, payload []byte) (string, error) {
	return f.url, f.err
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)))
}

func TestDownloadDelivers(t *testing.T) {
	ctx := context.Background()
	payer := &fakePayer{outcome: ledger.OutcomePaidNow}
	reader := &fakeReader{cert: sampleCert()}
	dir := filepath.Join(t.TempDir(), "exports")

	svc := NewService(payer, reader, NewRenderer(), nil, dir, testLogger())

	res, err := svc.Download(ctx, "2024050110000000042")
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomePaidNow, res.Outcome)
	assert.Equal(t, 1, payer.calls)
	assert.Empty(t, res.ArchiveURL)

	b, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}

func TestDownloadUnknownCertificateNeverPays(t *testing.T) {
	ctx := context.Background()
	payer := &fakePayer{}
	reader := &fakeReader{err: common.ErrorNotFound}

	svc := NewService(payer, reader, NewRenderer(), nil, t.TempDir(), testLogger())

	_, err := svc.Download(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.Zero(t, payer.calls)
}

func TestDownloadExportFailureLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	payer := &fakePayer{}
	reader := &fakeReader{cert: sampleCert()}

	// Make the export directory impossible to create: its parent is a file.
	parent := filepath.Join(t.TempDir(), "blocked")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0o660))
	dir := filepath.Join(parent, "exports")

	svc := NewService(payer, reader, NewRenderer(), nil, dir, testLogger())

	_, err := svc.Download(ctx, "2024050110000000042")
	assert.ErrorIs(t, err, common.ErrorExportFailed)
	assert.Zero(t, payer.calls)
}

func TestDownloadArchiveFailureStillDelivers(t *testing.T) {
	ctx := context.Background()
	payer := &fakePayer{outcome: ledger.OutcomePaidNow}
	reader := &fakeReader{cert: sampleCert()}
	archiver := &fakeArchiver{err: errors.New("endpoint down")}

	svc := NewService(payer, reader, NewRenderer(), archiver, t.TempDir(), testLogger())

	res, err := svc.Download(ctx, "2024050110000000042")
	require.NoError(t, err)
	assert.Equal(t, 1, payer.calls)
	assert.Empty(t, res.ArchiveURL)
}

func TestDownloadArchiveURLReturned(t *testing.T) {
	ctx := context.Background()
	payer := &fakePayer{outcome: ledger.OutcomeAlreadyPaid}
	reader := &fakeReader{cert: sampleCert()}
	archiver := &fakeArchiver{url: "https://minio.local/certs/x.pdf"}

	svc := NewService(payer, reader, NewRenderer(), archiver, t.TempDir(), testLogger())

	res, err := svc.Download(ctx, "2024050110000000042")
	require.NoError(t, err)
	assert.Equal(t, ledger.OutcomeAlreadyPaid, res.Outcome)
	assert.Equal(t, "https://minio.local/certs/x.pdf", res.ArchiveURL)
}

func TestDownloadPaymentErrorPropagates(t *testing.T) {
	ctx := context.Background()
	payer := &fakePayer{err: &ledger.InsufficientCreditsError{Required: 50, Available: 30}}
	reader := &fakeReader{cert: sampleCert()}

	svc := NewService(payer, reader, NewRenderer(), nil, t.TempDir(), testLogger())

	_, err := svc.Download(ctx, "2024050110000000042")
	var ice *ledger.InsufficientCreditsError
	assert.ErrorAs(t, err, &ice)
}
