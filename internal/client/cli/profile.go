package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/coursemanager/internal/client/listing"
	"github.com/dmitrijs2005/coursemanager/internal/client/media"
	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/client/services"
	"github.com/dmitrijs2005/coursemanager/internal/common"
)

const dateLayout = "2006-01-02"

func (a *App) profile(_ context.Context, _ []string) error {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return common.ErrorNotLoggedIn
	}
	stats := listing.CourseStats(a.ownCourses(u))

	a.printf("Username:  %s\n", u.Username)
	a.printf("Email:     %s\n", u.Email)
	a.printf("Joined:    %s\n", formatDate(u.CreatedAt.Time))
	if u.IsAdmin {
		a.println("Role:      admin")
	}
	if pic := u.Avatar(); pic != "" {
		mime, data, err := media.DecodeDataURI(pic)
		if err == nil {
			a.printf("Picture:   %s, %d bytes\n", mime, len(data))
		}
	} else {
		a.println("Picture:   none")
	}
	a.printf("Courses:   %d\n", stats.Courses)
	a.printf("Topics:    %d\n", stats.Topics)
	return nil
}

func (a *App) rename(_ context.Context, _ []string) error {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return common.ErrorNotLoggedIn
	}
	name, err := a.ask("Enter new username")
	if err != nil {
		return err
	}
	if name == "" || name == u.Username {
		a.println("The new username must not be empty or equal to the current one.")
		return nil
	}

	if _, err := a.auth.UpdateUser(models.UserUpdate{Username: &name}); err != nil {
		return err
	}
	a.println("Username changed.")
	return nil
}

func (a *App) passwd(_ context.Context, _ []string) error {
	current, err := a.askPassword("Current password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)
	next, err := a.askPassword("New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)
	confirmation, err := a.askPassword("Repeat new password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if len(current) == 0 || len(next) == 0 || len(confirmation) == 0 {
		a.println("Please fill in all password fields.")
		return nil
	}
	if !bytes.Equal(next, confirmation) {
		a.println("The new password does not match its confirmation.")
		return nil
	}

	err = a.auth.ChangePassword(current, next)
	if errors.Is(err, common.ErrorInvalidCredentials) {
		a.println("The current password is not valid.")
		return nil
	}
	if err != nil {
		return err
	}
	a.println("Password changed.")
	return nil
}

// avatar sets the profile picture from an image file, or removes it.
func (a *App) avatar(_ context.Context, args []string) error {
	var pic string
	if args[0] != "--remove" {
		uri, err := media.LoadDataURI(args[0], a.config.MaxImageDimension)
		if err != nil {
			return err
		}
		pic = uri
	}

	if _, err := a.auth.UpdateUser(models.UserUpdate{ProfilePicture: &pic}); err != nil {
		return err
	}
	if pic == "" {
		a.println("Profile picture removed.")
	} else {
		a.println("Profile picture updated.")
	}
	return nil
}

func (a *App) deleteAccount(_ context.Context, _ []string) error {
	ok, err := a.confirmed("Delete your account and all of your courses? This cannot be undone.")
	if err != nil || !ok {
		return err
	}
	if err := services.DeleteAccount(a.auth, a.courses); err != nil {
		return err
	}
	a.lastListed = nil
	a.println("Account deleted.")
	return nil
}

func (a *App) theme(_ context.Context, _ []string) error {
	a.printf("Theme: %s\n", a.prefs.ToggleTheme())
	return nil
}

// ownCourses is the user's own courses, also for an admin.
func (a *App) ownCourses(u models.User) []models.Course {
	return a.lister.UserCourses(a.courses.All(), u.Email, "")
}
