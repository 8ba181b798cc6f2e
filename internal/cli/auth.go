package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/classfunds/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a login, display name and password and creates the
// account. The password byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", os.Stdout)
	if err != nil {
		return err
	}

	displayName, err := getSimpleText(a.reader, "Enter display name", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.users.Register(ctx, login, displayName, password); err != nil {
		a.logger.Error(ctx, "registration failed", "error", err)
		printlnFn("Registration failed:", err)
		return err
	}

	printlnFn("Success! You can now log in.")
	return nil
}

// Login prompts for credentials, authenticates and stores the token pair.
// The profile is provisioned on first login; its display name goes into the
// prompt.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Enter login", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	pair, err := a.users.Login(ctx, login, password)
	if err != nil {
		a.logger.Error(ctx, "login failed", "error", err)
		printlnFn("Login failed:", err)
		return err
	}

	a.accessToken = pair.AccessToken
	a.refreshToken = pair.RefreshToken

	actorID, err := a.users.ActorFromToken(pair.AccessToken)
	if err != nil {
		return err
	}
	profile, err := a.users.CurrentUser(ctx, actorID)
	if err != nil {
		return err
	}
	a.userName = profile.Name

	printlnFn(fmt.Sprintf("Welcome, %s!", profile.Name))
	return nil
}

// Logout drops the session state, including the selected classroom.
func (a *App) Logout(ctx context.Context) error {
	a.clearSession()
	printlnFn("Logged out.")
	return nil
}
