package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/common"
)

// register prompts for username, email and a confirmed password, creates the
// account and logs it in.
func (a *App) register(ctx context.Context, _ []string) error {
	username, err := a.ask("Enter username")
	if err != nil {
		return err
	}
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmation, err := a.askPassword("Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if username == "" || email == "" || len(password) == 0 {
		a.println("Please fill in all fields.")
		return nil
	}
	if !bytes.Equal(password, confirmation) {
		a.println("Passwords do not match.")
		return nil
	}

	err = a.auth.AddUser(models.StoredUser{
		User:     models.User{Email: email, Username: username},
		Password: string(password),
	})
	if errors.Is(err, common.ErrorUserExists) {
		a.println("A user with this email is already registered.")
		return nil
	}
	if err != nil {
		return err
	}

	u, err := a.auth.Login(email, password)
	if err != nil {
		return err
	}
	a.lastListed = nil
	a.logger.Info(ctx, "user registered", "email", u.Email)
	a.printf("Welcome, %s!\n", u.Username)
	return nil
}

func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.ask("Enter email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(email, password)
	if errors.Is(err, common.ErrorInvalidCredentials) {
		a.logger.Debug(ctx, "login failed", "email", email)
		a.println("Invalid email or password.")
		return nil
	}
	if err != nil {
		return err
	}

	a.lastListed = nil
	a.printf("Welcome, %s!\n", u.Username)
	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	ok, err := a.confirmed("Log out?")
	if err != nil || !ok {
		return err
	}
	a.auth.Logout()
	a.lastListed = nil
	a.println("Logged out.")
	return nil
}

func (a *App) whoami(_ context.Context, _ []string) error {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return common.ErrorNotLoggedIn
	}
	role := "user"
	if u.IsAdmin {
		role = "admin"
	}
	a.printf("%s <%s> (%s)\n", u.Username, u.Email, role)
	return nil
}
