package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/docsim/internal/common"
	"github.com/dmitrijs2005/docsim/internal/models"
)

func (a *App) Whoami(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "whoami", err)
	}

	profile, err := a.users.GetUser(ctx, p.UserID)
	if err != nil {
		return a.report(ctx, "whoami", err)
	}

	printlnFn(renderProfile(profile))
	printlnFn("Session valid until " + p.ExpiresAt.Local().Format(dateLayout))
	return nil
}

// Profile edits name and avatar. An empty answer keeps the current value and
// "-" removes the avatar.
func (a *App) Profile(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "profile", err)
	}

	var patch models.UserPatch

	name, err := GetSimpleText(a.reader, "New name (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if name != "" {
		patch.Name = &name
	}

	avatar, err := GetSimpleText(a.reader, "New avatar URL (empty keeps current, - removes)", a.out)
	if err != nil {
		return err
	}
	switch avatar {
	case "":
	case "-":
		empty := ""
		patch.AvatarURL = &empty
	default:
		patch.AvatarURL = &avatar
	}

	profile, err := a.users.UpdateProfile(ctx, p, patch)
	if err != nil {
		return a.report(ctx, "profile", err)
	}

	printlnFn(okColor.Sprint("Profile updated."))
	printlnFn(renderProfile(profile))
	return nil
}

var errPasswordMismatch = errors.New("passwords do not match")

func (a *App) Passwd(ctx context.Context) error {
	p, err := a.principal(ctx)
	if err != nil {
		return a.report(ctx, "passwd", err)
	}

	current, err := GetPassword(a.reader, "Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := GetPassword(a.reader, "New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := GetPassword(a.reader, "Repeat new password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(next, confirm) {
		printlnFn(errorColor.Sprint("Passwords do not match."))
		return errPasswordMismatch
	}

	if err := a.users.ChangePassword(ctx, p, current, next); err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			printlnFn(errorColor.Sprint("Current password is wrong."))
			return err
		}
		return a.report(ctx, "passwd", err)
	}

	printlnFn(okColor.Sprint("Password changed."))
	return nil
}
