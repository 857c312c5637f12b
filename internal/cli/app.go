package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/patentcert/internal/admin"
	"github.com/dmitrijs2005/patentcert/internal/auth"
	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/export"
	"github.com/dmitrijs2005/patentcert/internal/ledger"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/dmitrijs2005/patentcert/internal/repository"
)

// App is the interactive console. It keeps the session token issued at
// login and dispatches REPL commands to the underlying services.
type App struct {
	gate     *auth.Gate
	ledger   *ledger.Service
	admin    *admin.Service
	delivery *export.Service
	agg      *repository.Aggregate
	logger   logging.Logger
	reader   *bufio.Reader

	token string
	role  models.Role
}

func NewApp(gate *auth.Gate, ledgerSvc *ledger.Service, adminSvc *admin.Service, delivery *export.Service, agg *repository.Aggregate, logger logging.Logger) *App {
	return &App{
		gate:     gate,
		ledger:   ledgerSvc,
		admin:    adminSvc,
		delivery: delivery,
		agg:      agg,
		logger:   logger,
		reader:   bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("Patent certificate console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.token != ""
}

func (a *App) isAdmin() bool {
	return a.role == models.RoleAdmin
}

// currentUser resolves the session token against the live aggregate, so
// edits made by an admin (credits, deletion) are visible immediately.
// An invalid or orphaned token drops the session.
func (a *App) currentUser(ctx context.Context) (*models.User, error) {
	if a.token == "" {
		return nil, common.ErrorUnauthorized
	}
	user, err := a.gate.UserFromToken(ctx, a.token)
	if err != nil {
		a.token = ""
		a.role = ""
		return nil, err
	}
	return user, nil
}

func (a *App) getStatus() string {
	if a.token == "" {
		return ""
	}
	user, err := a.currentUser(context.Background())
	if err != nil {
		return ""
	}
	if user.Role == models.RoleAdmin {
		return fmt.Sprintf("(%s admin) ", user.UserName)
	}
	return fmt.Sprintf("(%s %d credits) ", user.UserName, user.Credits)
}
