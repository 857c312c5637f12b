package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/patentcert/internal/common"
	"github.com/dmitrijs2005/patentcert/internal/models"
)

// ShowConfig prints the patent configuration stamped onto new certificates.
func (a *App) ShowConfig(ctx context.Context) error {
	cfg := a.ledger.Config(ctx)
	fmt.Printf("Patent name: %s\n", cfg.PatentName)
	fmt.Printf("Patent no:   %s\n", cfg.PatentNo)
	fmt.Printf("Background:  %s\n", cfg.BackgroundURL)
	return nil
}

// SetConfig updates the patent configuration. Existing certificates keep
// the values they were issued with.
func (a *App) SetConfig(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	name, err := getSimpleText(a.reader, "Enter patent name", os.Stdout)
	if err != nil {
		return err
	}
	no, err := getSimpleText(a.reader, "Enter patent number", os.Stdout)
	if err != nil {
		return err
	}
	bg, err := getSimpleText(a.reader, "Enter background URL (empty for none)", os.Stdout)
	if err != nil {
		return err
	}

	cfg := models.PatentConfig{PatentName: name, PatentNo: no, BackgroundURL: bg}
	if err := a.admin.UpdateConfig(ctx, actor, cfg); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("Configuration updated.")
	return nil
}

// AddProject creates a new licensing project.
func (a *App) AddProject(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	name, err := getSimpleText(a.reader, "Enter project name", os.Stdout)
	if err != nil {
		return err
	}
	cost, err := GetInt(a.reader, "Enter cost in credits", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	project, err := a.admin.AddProject(ctx, actor, name, cost)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("Project %s created.\n", project.ID)
	return nil
}

// EditProject changes the name and cost of an existing project.
func (a *App) EditProject(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	id, err := getSimpleText(a.reader, "Enter project id", os.Stdout)
	if err != nil {
		return err
	}
	name, err := getSimpleText(a.reader, "Enter project name", os.Stdout)
	if err != nil {
		return err
	}
	cost, err := GetInt(a.reader, "Enter cost in credits", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if err := a.admin.UpdateProject(ctx, actor, id, name, cost); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("Project updated.")
	return nil
}

// DeleteProject removes a project. Certificates already issued against it
// keep their snapshot and pay nothing on download.
func (a *App) DeleteProject(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	id, err := getSimpleText(a.reader, "Enter project id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.admin.DeleteProject(ctx, actor, id); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("Project deleted.")
	return nil
}

// Users lists all accounts.
func (a *App) Users(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	users, err := a.admin.Users(ctx, actor)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	for _, u := range users {
		fmt.Printf("  %s  %-16s %-24s %6d credits  %s\n", u.ID, u.UserName, u.CompanyName, u.Credits, u.Role)
	}
	return nil
}

// AddUser creates a company account with a zero credit balance.
func (a *App) AddUser(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	company, err := getSimpleText(a.reader, "Enter company name", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.admin.AddUser(ctx, actor, username, company, string(password))
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Printf("User %s created.\n", user.ID)
	return nil
}

// EditUser changes the username, company name and credit balance of an account.
func (a *App) EditUser(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	id, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	company, err := getSimpleText(a.reader, "Enter company name", os.Stdout)
	if err != nil {
		return err
	}
	credits, err := GetInt(a.reader, "Enter credit balance", os.Stdout)
	if err != nil {
		fmt.Println("Error:", err)
		return err
	}

	if err := a.admin.UpdateUser(ctx, actor, id, username, company, credits); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("User updated.")
	return nil
}

// SetUserPassword resets another account's password.
func (a *App) SetUserPassword(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	id, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.admin.SetPassword(ctx, actor, id, string(password)); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("Password updated.")
	return nil
}

// DeleteUser removes an account. The built-in admin account cannot be deleted.
func (a *App) DeleteUser(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	id, err := getSimpleText(a.reader, "Enter user id", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.admin.DeleteUser(ctx, actor, id); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("User deleted.")
	return nil
}

// Reset restores the document to its seed state after an explicit confirmation.
func (a *App) Reset(ctx context.Context) error {
	actor, err := a.currentUser(ctx)
	if err != nil {
		fmt.Println("Session expired, please log in again.")
		return err
	}

	confirm, err := getSimpleText(a.reader, "This wipes all data. Type RESET to confirm", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "RESET" {
		fmt.Println("Aborted.")
		return nil
	}

	if err := a.admin.Reset(ctx, actor); err != nil {
		fmt.Println("Error:", err)
		return err
	}

	fmt.Println("Data reset to defaults.")
	return nil
}
