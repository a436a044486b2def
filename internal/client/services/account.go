package services

import (
	"fmt"

	"github.com/dmitrijs2005/coursemanager/internal/common"
)

// DeleteUser removes a user together with every course they own. Courses are
// removed first, then the user.
func DeleteUser(auth AuthService, courses CourseService, email string) error {
	if email == auth.AdminEmail() {
		return fmt.Errorf("%w: the bootstrap admin cannot be deleted", common.ErrorForbidden)
	}
	if _, ok := auth.UserByEmail(email); !ok {
		return common.ErrorNotFound
	}

	courses.Dispatch(DeleteCoursesByUser{UserEmail: email})
	return auth.DeleteUserByEmail(email)
}

// DeleteAccount removes the logged-in user and their courses, ending the
// session.
func DeleteAccount(auth AuthService, courses CourseService) error {
	u, ok := auth.CurrentUser()
	if !ok {
		return common.ErrorNotLoggedIn
	}
	if u.Email == auth.AdminEmail() {
		return fmt.Errorf("%w: the bootstrap admin cannot be deleted", common.ErrorForbidden)
	}

	courses.Dispatch(DeleteCoursesByUser{UserEmail: u.Email})
	return auth.DeleteCurrentUser()
}
