// Package ledger implements the certificate lifecycle and the credit
// accounting around it.
//
// A certificate has exactly two states: unpaid (initial) and paid
// (terminal). Applying records an unpaid certificate without touching the
// balance; the debit happens exactly once, at the first confirmed delivery,
// no matter how often delivery is retried.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/patentcert/internal/certid"
	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/dmitrijs2005/patentcert/internal/repository"
)

// maxIDAttempts bounds identifier regeneration when a freshly generated id
// is already taken (two applications within the same millisecond can draw
// the same random suffix).
const maxIDAttempts = 5

// InsufficientCreditsError reports an affordability failure together with
// the figures the actor needs to see.
type InsufficientCreditsError struct {
	Required  int
	Available int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d", e.Required, e.Available)
}

// Outcome describes a successful ConfirmDelivery call.
type Outcome int

const (
	// OutcomePaidNow: this call performed the debit and marked the
	// certificate paid.
	OutcomePaidNow Outcome = iota
	// OutcomeAlreadyPaid: a previous call already paid; nothing changed.
	// Treated as success so downloads can be retried safely.
	OutcomeAlreadyPaid
)

func (o Outcome) String() string {
	switch o {
	case OutcomePaidNow:
		return "paid-now"
	case OutcomeAlreadyPaid:
		return "already-paid"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

type Service struct {
	agg    *repository.Aggregate
	logger logging.Logger
	gen    *certid.Generator
	now    func() time.Time
}

func NewService(agg *repository.Aggregate, logger logging.Logger) *Service {
	return &Service{
		agg:    agg,
		logger: logger.With("component", "ledger"),
		gen:    certid.NewGenerator(),
		now:    time.Now,
	}
}

// Apply validates affordability and records a new unpaid certificate for
// the actor. The actor's balance is re-read from the aggregate, never taken
// from session state, and is NOT debited here: applying records intent, the
// charge lands at first download.
//
// The certificate snapshots the project name, the current patent metadata
// and the applicant's company name; later edits to any of those never
// change an issued certificate.
func (s *Service) Apply(ctx context.Context, actorID, projectID string) (*models.Certificate, error) {
	var cert *models.Certificate

	err := s.agg.Update(ctx, func(data *models.AppData) error {
		actor := data.UserByID(actorID)
		if actor == nil {
			return common.ErrorNotFound
		}
		if actor.Role != models.RoleUser {
			return common.ErrorUnauthorized
		}

		project := data.ProjectByID(projectID)
		if project == nil {
			return common.ErrorNotFound
		}

		if actor.Credits < project.Cost {
			return &InsufficientCreditsError{Required: project.Cost, Available: actor.Credits}
		}

		now := s.now()
		id, err := s.freshID(data, now)
		if err != nil {
			return err
		}

		c := models.Certificate{
			ID:            id,
			UserID:        actor.ID,
			ProjectID:     project.ID,
			ProjectName:   project.Name,
			PatentName:    data.Config.PatentName,
			PatentNo:      data.Config.PatentNo,
			ApplicantName: actor.CompanyName,
			IssueDate:     models.FormatIssueDate(now),
			IsPaid:        false,
		}
		data.Certificates = append(data.Certificates, c)
		cert = &c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "certificate issued", "certId", cert.ID, "userId", actorID, "projectId", projectID)
	return cert, nil
}

// freshID generates a certificate id that is unique within the aggregate,
// regenerating on collision. Identifier uniqueness is enforced here, at
// creation time, rather than tolerated at payment time.
func (s *Service) freshID(data *models.AppData, now time.Time) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.gen.New(now)
		if _, n := data.CertificateByID(id); n == 0 {
			return id, nil
		}
	}
	return "", common.ErrorIDCollision
}

// ConfirmDelivery performs the pay-on-download transition for the given
// certificate. It is idempotent: the first successful call debits the owner
// by the referenced project's current cost and marks the certificate paid;
// every later call reports OutcomeAlreadyPaid without touching anything.
//
// A project deleted since issuance costs zero — the certificate is a
// historical record and its delivery is not blocked. Debit and paid-flag
// are committed in one aggregate replacement; no partial state is ever
// observable.
func (s *Service) ConfirmDelivery(ctx context.Context, certID string) (Outcome, error) {
	err := s.agg.Update(ctx, func(data *models.AppData) error {
		cert, matches := data.CertificateByID(certID)
		if cert == nil {
			return common.ErrorNotFound
		}
		if matches > 1 {
			// Identifier collision in persisted data. Diagnose loudly but
			// stay available: proceed deterministically on the first match.
			s.logger.Warn(ctx, "duplicate certificate ids detected", "certId", certID, "matches", matches)
		}

		if cert.IsPaid {
			return errAlreadyPaid
		}

		cost := 0
		if project := data.ProjectByID(cert.ProjectID); project != nil {
			cost = project.Cost
		}

		owner := data.UserByID(cert.UserID)
		if owner == nil {
			return common.ErrorNotFound
		}
		if owner.Credits < cost {
			return &InsufficientCreditsError{Required: cost, Available: owner.Credits}
		}

		owner.Credits -= cost
		cert.IsPaid = true
		return nil
	})

	switch {
	case errors.Is(err, errAlreadyPaid):
		return OutcomeAlreadyPaid, nil
	case err != nil:
		return 0, err
	}

	s.logger.Info(ctx, "certificate paid", "certId", certID)
	return OutcomePaidNow, nil
}

// errAlreadyPaid aborts the Update without persisting; already-paid is a
// success for the caller, not a mutation.
var errAlreadyPaid = errors.New("already paid")

// CertificatesFor returns the actor's certificates, newest last.
func (s *Service) CertificatesFor(ctx context.Context, userID string) []models.Certificate {
	var out []models.Certificate
	s.agg.View(func(data *models.AppData) {
		for _, c := range data.Certificates {
			if c.UserID == userID {
				out = append(out, c)
			}
		}
	})
	return out
}

// Certificate returns a copy of the certificate with the given id.
func (s *Service) Certificate(ctx context.Context, certID string) (*models.Certificate, error) {
	var cert *models.Certificate
	s.agg.View(func(data *models.AppData) {
		if c, _ := data.CertificateByID(certID); c != nil {
			cp := *c
			cert = &cp
		}
	})
	if cert == nil {
		return nil, common.ErrorNotFound
	}
	return cert, nil
}

// Config returns the current patent configuration.
func (s *Service) Config(ctx context.Context) models.PatentConfig {
	var cfg models.PatentConfig
	s.agg.View(func(data *models.AppData) {
		cfg = data.Config
	})
	return cfg
}

// Projects lists the purchasable projects.
func (s *Service) Projects(ctx context.Context) []models.Project {
	var out []models.Project
	s.agg.View(func(data *models.AppData) {
		out = append(out, data.Projects...)
	})
	return out
}

// Balance returns the user's live credit balance.
func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	credits := 0
	found := false
	s.agg.View(func(data *models.AppData) {
		if u := data.UserByID(userID); u != nil {
			credits = u.Credits
			found = true
		}
	})
	if !found {
		return 0, common.ErrorNotFound
	}
	return credits, nil
}
