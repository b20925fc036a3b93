package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/docsim/internal/common"
)

func (a *App) Register(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	name, err := GetSimpleText(a.reader, "Enter your name", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	profile, session, err := a.auth.Register(ctx, email, password, name)
	if err != nil {
		return a.report(ctx, "register", err)
	}

	a.sessionID, a.email = session.ID, profile.Email
	printlnFn(okColor.Sprintf("Welcome, %s!", profile.Name))
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.reader, "Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.report(ctx, "login", err)
	}

	profile, err := a.users.GetUser(ctx, session.UserID)
	if err != nil {
		return a.report(ctx, "login", err)
	}

	a.sessionID, a.email = session.ID, profile.Email
	printlnFn(okColor.Sprintf("Logged in as %s.", profile.Name))
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil && !errors.Is(err, common.ErrorNotAuthenticated) {
		return a.report(ctx, "logout", err)
	}
	if p != nil {
		if err := a.auth.Logout(ctx, p); err != nil {
			return a.report(ctx, "logout", err)
		}
	}

	a.sessionID, a.email = "", ""
	printlnFn("Logged out.")
	return nil
}
