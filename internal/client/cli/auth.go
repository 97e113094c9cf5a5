package cli

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/dmitrijs2005/linkedin-clone/internal/client/client"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/models"
	"github.com/dmitrijs2005/linkedin-clone/internal/client/session"
	"github.com/dmitrijs2005/linkedin-clone/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	msgInvalidCredentials = "Invalid credentials"
	msgEmailInUse         = "Email already in use"
	msgUnavailable        = "Server unavailable, please try again later"
)

// Register prompts for the registration form and creates an account. On
// success the session is established and the feed is shown.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	bio, err := getSimpleText(a.reader, "Enter bio (optional)", a.out)
	if err != nil {
		return err
	}

	data := models.RegisterData{Name: name, Email: email, Password: string(password), Bio: bio}
	if err := data.Validate(); err != nil {
		a.printFieldErrors(err)
		return err
	}

	if err := a.session.Register(ctx, data); err != nil {
		a.log.Info(ctx, "register failed", "error", err)
		switch fields := client.FieldErrors(err); {
		case len(fields) > 0:
			a.printFieldErrors(models.ValidationErrors(fields))
		case errors.Is(err, client.ErrValidation), errors.Is(err, client.ErrConflict):
			a.println(msgEmailInUse)
		case errors.Is(err, client.ErrUnavailable):
			a.println(msgUnavailable)
		default:
			a.println("Registration failed:", err)
		}
		return err
	}
	return nil
}

// Login prompts for credentials and signs in. On success the session is
// established and the feed is shown.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}
	if err := creds.Validate(); err != nil {
		a.printFieldErrors(err)
		return err
	}

	if err := a.session.Login(ctx, creds); err != nil {
		a.log.Info(ctx, "login failed", "error", err)
		switch {
		case errors.Is(err, client.ErrValidation), errors.Is(err, client.ErrUnauthorized):
			a.println(msgInvalidCredentials)
		case errors.Is(err, client.ErrUnavailable):
			a.println(msgUnavailable)
		default:
			a.println("Login failed:", err)
		}
		return err
	}
	return nil
}

// Logout ends the session and shows the login screen.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	return nil
}

// Whoami prints the signed-in user and the age of the stored token.
func (a *App) Whoami(ctx context.Context) error {
	st := a.session.Snapshot()
	if !st.Authenticated() {
		a.println("Not logged in")
		return nil
	}

	u := st.User
	a.printf("%s <%s> (id %s)\n", u.Name, u.Email, u.ID)
	if u.Headline != "" {
		a.println(u.Headline)
	}
	if savedAt, ok, err := a.tokens.SavedAt(ctx); err == nil && ok {
		a.printf("Signed in since %s\n", savedAt.Local().Format(time.DateTime))
	}
	if exp, ok := session.TokenExpiry(st.Token); ok {
		a.printf("Session expires %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}

func (a *App) printFieldErrors(err error) {
	var fields models.ValidationErrors
	if !errors.As(err, &fields) {
		a.println(err)
		return
	}
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		a.printf("%s: %s\n", name, fields[name])
	}
}
