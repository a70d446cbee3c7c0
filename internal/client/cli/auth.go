package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophvault/internal/common"
)

// Input indirections, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getKey        = GetKey
	getMultiline  = GetMultiline
)

// Register prompts for a user name and password and creates the account.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login signs in online, or offline when the client runs with -o or the
// server cannot be reached.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	online, err := a.auth.SignIn(ctx, userName, password, !a.config.Offline)
	if err != nil {
		if a.config.Offline {
			a.setMode(ModeOffline)
		} else {
			a.setMode(ModeDisabled)
		}
		return err
	}

	if online {
		a.setMode(ModeOnline)
	} else {
		a.setMode(ModeOffline)
	}
	fmt.Fprintf(a.out, "Logged in (%s)\n", a.Mode())
	return nil
}

// Logout ends the session. Offline credentials stay on the device.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.SignOut(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}
