// Package auth implements the session gate: credential verification, the
// role check for the two login entry points, and session tokens.
//
// Every mutating operation in the system runs behind this gate. The gate
// reads accounts from the live aggregate, never from a cached session.
package auth

import (
	"context"
	"time"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/models"
	"github.com/dmitrijs2005/patentcert/internal/repository"
)

type Gate struct {
	agg             *repository.Aggregate
	secretKey       []byte
	sessionValidity time.Duration
}

func NewGate(agg *repository.Aggregate, secretKey string, sessionValidity time.Duration) *Gate {
	return &Gate{agg: agg, secretKey: []byte(secretKey), sessionValidity: sessionValidity}
}

// Authenticate verifies the credential and the requested role and, on
// success, returns a copy of the account.
//
// A credential mismatch and an unknown username are indistinguishable to the
// caller (both ErrorUnauthorized). A valid credential with the wrong role —
// a USER account at the admin entry point or vice versa — is rejected with
// ErrorRoleMismatch so the account cannot escalate by picking the other
// login mode.
func (g *Gate) Authenticate(ctx context.Context, username, credential string, requestedRole models.Role) (*models.User, error) {
	var user *models.User
	g.agg.View(func(data *models.AppData) {
		if u := data.UserByName(username); u != nil {
			cp := *u
			user = &cp
		}
	})

	if user == nil || !VerifyPassword(user.Password, credential) {
		return nil, common.ErrorUnauthorized
	}
	if user.Role != requestedRole {
		return nil, common.ErrorRoleMismatch
	}
	return user, nil
}

// Session mints a token for an authenticated user.
func (g *Gate) Session(user *models.User) (string, error) {
	return GenerateToken(user, g.secretKey, g.sessionValidity)
}

// UserFromToken resolves a session token against the live aggregate. The
// account is re-read on every call, so edits (or deletion) made after login
// take effect immediately.
func (g *Gate) UserFromToken(ctx context.Context, token string) (*models.User, error) {
	claims, err := ParseToken(token, g.secretKey)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	var user *models.User
	g.agg.View(func(data *models.AppData) {
		if u := data.UserByID(claims.UserID); u != nil {
			cp := *u
			user = &cp
		}
	})
	if user == nil {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}
