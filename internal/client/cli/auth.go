package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) readCredentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	if userName == "" {
		return "", nil, errors.New("username required")
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

// Register prompts for a username and password and creates an account. It
// does not log in.
func (a *App) Register(ctx context.Context) error {
	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, string(password)); err != nil {
		return err
	}

	a.printf("Registered %s, you can log in now\n", userName)
	return nil
}

// Login prompts for credentials and authenticates.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		a.printf("Already logged in as %s\n", a.state.Username())
		return nil
	}

	userName, password, err := a.readCredentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Login(ctx, userName, string(password)); err != nil {
		return err
	}

	a.printf("Logged in as %s\n", userName)
	return nil
}

// Logout ends the session. The local session is cleared even when the
// server call fails; the failure is still reported.
func (a *App) Logout(ctx context.Context) error {
	err := a.authService.Logout(ctx)
	a.printf("Logged out\n")
	return err
}

func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.printf("Not logged in\n")
		return nil
	}
	snap := a.state.Snapshot()
	a.printf("%s\n", snap.Username)
	return nil
}
