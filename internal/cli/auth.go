package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/patentcert/internal/admin"
	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login authenticates a company account. Admin accounts must use
// AdminLogin instead; attempting to cross over is rejected.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, models.RoleUser)
}

// AdminLogin authenticates an administrator account.
func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, models.RoleAdmin)
}

func (a *App) login(ctx context.Context, role models.Role) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.gate.Authenticate(ctx, username, string(password), role)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorRoleMismatch):
			fmt.Println("This account cannot sign in here; use the other login command.")
		case errors.Is(err, common.ErrorUnauthorized):
			fmt.Println("Invalid username or password.")
		default:
			fmt.Println("Login failed:", err)
		}
		return err
	}

	token, err := a.gate.Session(user)
	if err != nil {
		fmt.Println("Login failed:", err)
		return err
	}

	a.token = token
	a.role = user.Role
	fmt.Printf("Welcome, %s!\n", user.CompanyName)
	return nil
}

// Logout drops the in-memory session token.
func (a *App) Logout(ctx context.Context) error {
	a.token = ""
	a.role = ""
	fmt.Println("Logged out.")
	return nil
}

// Passwd changes the password of the currently logged-in account.
func (a *App) Passwd(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := admin.ChangeOwnPassword(ctx, a.agg, actor, string(password)); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("Password updated.")
	return nil
}
