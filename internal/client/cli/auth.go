package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/wghub/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, string, error) {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return "", "", err
	}
	pw, err := getPassword(a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(pw)
	return email, string(pw), nil
}

// Register prompts for an email and password and creates an account.
// The new user is signed in on success.
func (a *App) Register(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	id, err := a.auth.Register(ctx, email, password)
	if err != nil {
		return err
	}
	a.userID = id
	printlnFn("Welcome!")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, password, err := a.credentials()
	if err != nil {
		return err
	}
	id, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}
	a.userID = id
	printlnFn("Login successful")
	return nil
}

// Logout runs, or resumes, the logout sequence.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.printStopped(ctx)
		return err
	}
	a.userID = ""
	printlnFn("Logged out")
	return nil
}

// DeleteAccount asks for confirmation, then runs or resumes the deletion.
func (a *App) DeleteAccount(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "This deletes your account and all your data. Type DELETE to confirm", a.out)
	if err != nil {
		return err
	}
	if answer != "DELETE" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.auth.DeleteAccount(ctx); err != nil {
		a.printStopped(ctx)
		return err
	}
	a.userID = ""
	printlnFn("Account deleted")
	return nil
}

func (a *App) printStopped(ctx context.Context) {
	p, err := a.progress.Progress(ctx)
	if err != nil {
		return
	}
	printlnFn(fmt.Sprintf("Stopped: logout %s, account deletion %s. Run the command again to resume.", p.Logout, p.DeleteAccount))
}

func (a *App) Progress(ctx context.Context) error {
	p, err := a.progress.Progress(ctx)
	if err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "logout:           %s\n", p.Logout)
	fmt.Fprintf(&b, "account deletion: %s", p.DeleteAccount)
	printlnFn(b.String())
	return nil
}
