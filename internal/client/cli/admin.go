package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/coursemanager/internal/client/listing"
	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/client/services"
	"github.com/dmitrijs2005/coursemanager/internal/common"
)

func (a *App) listUsers(_ context.Context, _ []string) error {
	users := a.managedUsers()
	if len(users) == 0 {
		a.println("No users registered.")
		return nil
	}
	all := a.courses.All()
	for i, u := range users {
		stats := listing.CourseStats(a.lister.UserCourses(all, u.Email, ""))
		a.printf("%3d. %s <%s>  (%d courses, joined %s)\n", i+1, u.Username, u.Email, stats.Courses, formatDate(u.CreatedAt.Time))
	}
	return nil
}

func (a *App) addUser(ctx context.Context, _ []string) error {
	username, err := a.ask("Username")
	if err != nil {
		return err
	}
	email, err := a.ask("Email")
	if err != nil {
		return err
	}
	password, err := a.askPassword("Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if username == "" || email == "" || len(password) == 0 {
		a.println("Please fill in all fields.")
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
	a.logger.Info(ctx, "user added by admin", "email", email)
	a.printf("User %s created.\n", email)
	return nil
}

func (a *App) showUser(_ context.Context, args []string) error {
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}
	stats := listing.CourseStats(a.lister.UserCourses(a.courses.All(), u.Email, ""))

	a.printf("Username:  %s\n", u.Username)
	a.printf("Email:     %s\n", u.Email)
	a.printf("Joined:    %s\n", formatDate(u.CreatedAt.Time))
	if u.IsAdmin {
		a.println("Role:      admin")
	}
	a.printf("Courses:   %d\n", stats.Courses)
	a.printf("Topics:    %d\n", stats.Topics)
	return nil
}

// editUser changes another user's username and/or password. Empty answers
// leave the field unchanged.
func (a *App) editUser(_ context.Context, args []string) error {
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}

	username, err := a.ask("Username [" + u.Username + "]")
	if err != nil {
		return err
	}
	password, err := a.askPassword("New password (empty keeps the current one)")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var update models.StoredUserUpdate
	if username != "" && username != u.Username {
		update.Username = &username
	}
	if len(password) > 0 {
		pw := string(password)
		update.Password = &pw
	}
	if update.Username == nil && update.Password == nil {
		a.println("Nothing changed.")
		return nil
	}

	if err := a.auth.UpdateUserByEmail(u.Email, update); err != nil {
		return err
	}
	a.println("User updated.")
	return nil
}

func (a *App) deleteUser(ctx context.Context, args []string) error {
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}
	if u.Email == a.auth.AdminEmail() {
		return fmt.Errorf("%w: the bootstrap admin cannot be deleted", common.ErrorForbidden)
	}
	ok, err := a.confirmed("Delete " + u.Email + " and all of their courses?")
	if err != nil || !ok {
		return err
	}

	if err := services.DeleteUser(a.auth, a.courses, u.Email); err != nil {
		return err
	}
	a.lastListed = nil
	a.logger.Info(ctx, "user deleted", "email", u.Email)
	a.println("User deleted.")
	return nil
}

func (a *App) userCourses(_ context.Context, args []string) error {
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}
	list := a.lister.UserCourses(a.courses.All(), u.Email, query(args[1:]))
	a.lastListed = courseIDs(list)
	a.printCourses(list, false)
	return nil
}

func (a *App) userAddCourse(ctx context.Context, args []string) error {
	u, err := a.resolveUser(args[0])
	if err != nil {
		return err
	}
	return a.createCourse(ctx, u.Email)
}

func (a *App) userEditCourse(_ context.Context, args []string) error {
	c, err := a.resolveUserCourse(args)
	if err != nil {
		return err
	}
	return a.updateCourse(c)
}

func (a *App) userDeleteCourse(_ context.Context, args []string) error {
	c, err := a.resolveUserCourse(args)
	if err != nil {
		return err
	}
	return a.removeCourse(c)
}

// resolveUserCourse resolves <user> <course> against that user's courses.
func (a *App) resolveUserCourse(args []string) (models.Course, error) {
	u, err := a.resolveUser(args[0])
	if err != nil {
		return models.Course{}, err
	}
	return pickCourse(args[1], a.lastListed, a.lister.UserCourses(a.courses.All(), u.Email, ""))
}
