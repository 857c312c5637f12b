// Package admin implements the administrator operations: patent metadata,
// project catalog, registered accounts and the demo-data reset.
//
// Every operation takes the acting user and rejects non-admins; the caller
// obtains the actor from the auth gate. Certificates are never touched
// here — their snapshots survive any edit or deletion performed below.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/patentcert/internal/auth"
	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/logging"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/dmitrijs2005/patentcert/internal/repository"
	"github.com/google/uuid"
)

type Service struct {
	agg    *repository.Aggregate
	logger logging.Logger
}

func NewService(agg *repository.Aggregate, logger logging.Logger) *Service {
	return &Service{agg: agg, logger: logger.With("component", "admin")}
}

func requireAdmin(actor *models.User) error {
	if actor == nil || actor.Role != models.RoleAdmin {
		return common.ErrorUnauthorized
	}
	return nil
}

// UpdateConfig replaces the patent metadata. The background reference may
// be empty, which restores the default certificate style.
func (s *Service) UpdateConfig(ctx context.Context, actor *models.User, cfg models.PatentConfig) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(cfg.PatentName) == "" || strings.TrimSpace(cfg.PatentNo) == "" {
		return fmt.Errorf("%w: patent name and number are required", common.ErrorValidation)
	}

	return s.agg.Update(ctx, func(data *models.AppData) error {
		data.Config = cfg
		return nil
	})
}

// AddProject registers a new usage project.
func (s *Service) AddProject(ctx context.Context, actor *models.User, name string, cost int) (*models.Project, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := validateProject(name, cost); err != nil {
		return nil, err
	}

	p := models.Project{ID: uuid.NewString(), Name: name, Cost: cost}
	err := s.agg.Update(ctx, func(data *models.AppData) error {
		data.Projects = append(data.Projects, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "project added", "projectId", p.ID, "name", name, "cost", cost)
	return &p, nil
}

// UpdateProject edits a project's name and cost. Issued certificates keep
// their snapshots.
func (s *Service) UpdateProject(ctx context.Context, actor *models.User, id, name string, cost int) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := validateProject(name, cost); err != nil {
		return err
	}

	return s.agg.Update(ctx, func(data *models.AppData) error {
		p := data.ProjectByID(id)
		if p == nil {
			return common.ErrorNotFound
		}
		p.Name = name
		p.Cost = cost
		return nil
	})
}

// DeleteProject removes a project. Unpaid certificates referencing it
// remain downloadable at zero cost.
func (s *Service) DeleteProject(ctx context.Context, actor *models.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	return s.agg.Update(ctx, func(data *models.AppData) error {
		for i := range data.Projects {
			if data.Projects[i].ID == id {
				data.Projects = append(data.Projects[:i], data.Projects[i+1:]...)
				return nil
			}
		}
		return common.ErrorNotFound
	})
}

func validateProject(name string, cost int) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: project name is required", common.ErrorValidation)
	}
	if cost < 0 {
		return fmt.Errorf("%w: project cost must not be negative", common.ErrorValidation)
	}
	return nil
}

// AddUser registers a new enterprise account with zero credits and the
// given initial password (stored hashed).
func (s *Service) AddUser(ctx context.Context, actor *models.User, username, companyName, password string) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(username) == "" || strings.TrimSpace(companyName) == "" {
		return nil, fmt.Errorf("%w: username and company name are required", common.ErrorValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	u := models.User{
		ID:          uuid.NewString(),
		UserName:    username,
		Password:    hash,
		CompanyName: companyName,
		Credits:     0,
		Role:        models.RoleUser,
	}
	err = s.agg.Update(ctx, func(data *models.AppData) error {
		if data.UserByName(username) != nil {
			return fmt.Errorf("%w: username already taken", common.ErrorValidation)
		}
		data.Users = append(data.Users, u)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user added", "userId", u.ID, "username", username)
	return &u, nil
}

// UpdateUser edits an account's login name, company name and credit grant.
func (s *Service) UpdateUser(ctx context.Context, actor *models.User, id, username, companyName string, credits int) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if credits < 0 {
		return fmt.Errorf("%w: credits must not be negative", common.ErrorValidation)
	}

	return s.agg.Update(ctx, func(data *models.AppData) error {
		if other := data.UserByName(username); other != nil && other.ID != id {
			return fmt.Errorf("%w: username already taken", common.ErrorValidation)
		}
		u := data.UserByID(id)
		if u == nil {
			return common.ErrorNotFound
		}
		u.UserName = username
		u.CompanyName = companyName
		u.Credits = credits
		return nil
	})
}

// SetPassword replaces an account's credential with a bcrypt hash.
func (s *Service) SetPassword(ctx context.Context, actor *models.User, id, password string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	return setPassword(ctx, s.agg, id, password)
}

// DeleteUser removes an enterprise account. Admin accounts are never
// hard-deleted.
func (s *Service) DeleteUser(ctx context.Context, actor *models.User, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}

	return s.agg.Update(ctx, func(data *models.AppData) error {
		for i := range data.Users {
			if data.Users[i].ID != id {
				continue
			}
			if data.Users[i].Role == models.RoleAdmin {
				return fmt.Errorf("%w: admin accounts cannot be deleted", common.ErrorValidation)
			}
			data.Users = append(data.Users[:i], data.Users[i+1:]...)
			return nil
		}
		return common.ErrorNotFound
	})
}

// Users lists all registered accounts.
func (s *Service) Users(ctx context.Context, actor *models.User) ([]models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	var out []models.User
	s.agg.View(func(data *models.AppData) {
		out = append(out, data.Users...)
	})
	return out, nil
}

// Reset erases all demo data and restores the seed document.
func (s *Service) Reset(ctx context.Context, actor *models.User) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if err := s.agg.Reset(ctx); err != nil {
		return err
	}
	s.logger.Info(ctx, "demo data reset")
	return nil
}

// ChangeOwnPassword lets any authenticated account (admin or enterprise
// user) replace its own credential.
func ChangeOwnPassword(ctx context.Context, agg *repository.Aggregate, actor *models.User, password string) error {
	if actor == nil {
		return common.ErrorUnauthorized
	}
	return setPassword(ctx, agg, actor.ID, password)
}

func setPassword(ctx context.Context, agg *repository.Aggregate, id, password string) error {
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return common.ErrorInternal
	}

	return agg.Update(ctx, func(data *models.AppData) error {
		u := data.UserByID(id)
		if u == nil {
			return common.ErrorNotFound
		}
		u.Password = hash
		return nil
	})
}
