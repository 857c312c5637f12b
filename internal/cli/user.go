package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/ledger"
	"github.com/dmitrijs2005/patentcert/internal/models"
)

// Projects prints the patent on offer and the available licensing projects.
func (a *App) Projects(ctx context.Context) error {
	cfg := a.ledger.Config(ctx)
	fmt.Printf("Patent: %s (%s)\n", cfg.PatentName, cfg.PatentNo)
	for _, p := range a.ledger.Projects(ctx) {
		fmt.Printf("  %s  %-24s %d credits\n", p.ID, p.Name, p.Cost)
	}
	return nil
}

// Balance prints the current credit balance of the logged-in account.
func (a *App) Balance(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	balance, err := a.ledger.Balance(ctx, actor.ID)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("Balance: %d credits\n", balance)
	return nil
}

// Apply issues a certificate for a project. No credits are charged here;
// payment happens on first download.
func (a *App) Apply(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	projectID, err := getSimpleText(a.reader, "Enter project id", os.Stdout)
	if err != nil {
		return err
	}

	cert, err := a.ledger.Apply(ctx, actor.ID, projectID)
	if err != nil {
		var ice *ledger.InsufficientCreditsError
		switch {
		case errors.As(err, &ice):
			fmt.Printf("Insufficient credits: need %d, have %d.\n", ice.Required, ice.Available)
		case errors.Is(err, common.ErrorNotFound):
			fmt.Println("Project not found.")
		default:
			fmt.Println("Error:", err)
		}
		return err
	}

	fmt.Printf("Certificate %s issued for %s. Payment is due on download.\n", cert.ID, cert.ProjectName)
	return nil
}

// Certs lists the certificates of the logged-in account.
func (a *App) Certs(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	certs := a.ledger.CertificatesFor(ctx, actor.ID)
	if len(certs) == 0 {
		fmt.Println("No certificates yet.")
		return nil
	}
	for _, c := range certs {
		status := "unpaid"
		if c.IsPaid {
			status = "paid"
		}
		fmt.Printf("  %s  %-24s %s  %s\n", c.ID, c.ProjectName, c.IssueDate, status)
	}
	return nil
}

// Download renders a certificate to a PDF file and settles payment on the
// first successful delivery. Repeated downloads are free.
func (a *App) Download(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	certID, err := getSimpleText(a.reader, "Enter certificate id", os.Stdout)
	if err != nil {
		return err
	}

	cert, err := a.ledger.Certificate(ctx, certID)
	if err != nil {
		fmt.Println("Certificate not found.")
		return err
	}
	// Accounts only see their own certificates.
	if actor.Role != models.RoleAdmin && cert.UserID != actor.ID {
		fmt.Println("Certificate not found.")
		return common.ErrorNotFound
	}

	res, err := a.delivery.Download(ctx, certID)
	if err != nil {
		var ice *ledger.InsufficientCreditsError
		if errors.As(err, &ice) {
			fmt.Printf("Insufficient credits: need %d, have %d.\n", ice.Required, ice.Available)
		} else {
			fmt.Println("Error:", err)
		}
		return err
	}

	fmt.Printf("Saved to %s (%s).\n", res.Path, res.Outcome)
	if res.ArchiveURL != "" {
		fmt.Println("Archive link:", res.ArchiveURL)
	}
	return nil
}
