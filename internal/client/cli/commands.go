package cli

// getSimpleText, getPassword and getMultiline are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
	confirm       = Confirm
)

func (a *App) commands() []command {
	return []command{
		{name: "register", summary: "create an account and log in", access: accessGuest, run: a.register},
		{name: "login", summary: "log in", access: accessGuest, run: a.login},

		{name: "logout", summary: "log out", access: accessUser, run: a.logout},
		{name: "whoami", summary: "show the logged-in user", access: accessUser, run: a.whoami},
		{name: "profile", summary: "show your profile and statistics", access: accessUser, run: a.profile},
		{name: "rename", summary: "change your username", access: accessUser, run: a.rename},
		{name: "passwd", summary: "change your password", access: accessUser, run: a.passwd},
		{name: "avatar", args: "<image-file>|--remove", summary: "set or remove your profile picture", access: accessUser, minArgs: 1, run: a.avatar},
		{name: "deleteaccount", summary: "delete your account and all your courses", access: accessUser, run: a.deleteAccount},
		{name: "theme", summary: "toggle between the dark and light theme", access: accessUser, run: a.theme},

		{name: "courses", args: "[query]", summary: "list your courses", access: accessUser, run: a.listCourses},
		{name: "sort", args: "[option]", summary: "show or set the course sort order", access: accessUser, run: a.setSort},
		{name: "addcourse", summary: "create a course", access: accessUser, run: a.addCourse},
		{name: "editcourse", args: "<course>", summary: "rename a course or change its description", access: accessUser, minArgs: 1, run: a.editCourse},
		{name: "delcourse", args: "<course>", summary: "delete a course", access: accessUser, minArgs: 1, run: a.deleteCourse},
		{name: "course", args: "<course> [query]", summary: "show a course and its topics", access: accessUser, minArgs: 1, run: a.showCourse},

		{name: "addtopic", args: "<course>", summary: "add a topic to a course", access: accessUser, minArgs: 1, run: a.addTopic},
		{name: "edittopic", args: "<course> <topic>", summary: "rename a topic", access: accessUser, minArgs: 2, run: a.editTopic},
		{name: "deltopic", args: "<course> <topic>", summary: "delete a topic", access: accessUser, minArgs: 2, run: a.deleteTopic},
		{name: "topic", args: "<course> <topic>", summary: "show a topic with its notes", access: accessUser, minArgs: 2, run: a.showTopic},
		{name: "notes", args: "<course> <topic> [file]", summary: "replace the notes of a topic", access: accessUser, minArgs: 2, run: a.editNotes},
		{name: "addimage", args: "<course> <topic> <image-file>", summary: "attach an image to a topic", access: accessUser, minArgs: 3, run: a.addImage},
		{name: "rmimage", args: "<course> <topic> <image>", summary: "remove an image from a topic", access: accessUser, minArgs: 3, run: a.removeImage},
		{name: "saveimage", args: "<course> <topic> <image> [file]", summary: "write a topic image to a file", access: accessUser, minArgs: 3, run: a.saveImage},

		{name: "export", args: "[file]", summary: "write all users and courses to a backup file", access: accessUser, run: a.export},
		{name: "import", args: "<file>", summary: "replace all users and courses from a backup file", access: accessUser, minArgs: 1, run: a.importBackup},

		{name: "users", summary: "list users", access: accessAdmin, run: a.listUsers},
		{name: "adduser", summary: "create a user", access: accessAdmin, run: a.addUser},
		{name: "user", args: "<user>", summary: "show a user", access: accessAdmin, minArgs: 1, run: a.showUser},
		{name: "edituser", args: "<user>", summary: "change a user's username or password", access: accessAdmin, minArgs: 1, run: a.editUser},
		{name: "deluser", args: "<user>", summary: "delete a user and their courses", access: accessAdmin, minArgs: 1, run: a.deleteUser},
		{name: "usercourses", args: "<user> [query]", summary: "list a user's courses", access: accessAdmin, minArgs: 1, run: a.userCourses},
		{name: "useraddcourse", args: "<user>", summary: "create a course for a user", access: accessAdmin, minArgs: 1, run: a.userAddCourse},
		{name: "usereditcourse", args: "<user> <course>", summary: "edit a user's course", access: accessAdmin, minArgs: 2, run: a.userEditCourse},
		{name: "userdelcourse", args: "<user> <course>", summary: "delete a user's course", access: accessAdmin, minArgs: 2, run: a.userDeleteCourse},
	}
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) ([]byte, error) {
	return getPassword(a.reader, prompt, a.out)
}

func (a *App) askMultiline(prompt string) (string, error) {
	return getMultiline(a.reader, prompt, a.out)
}

// confirmed asks for a y/N answer and reports "Cancelled." on a no.
func (a *App) confirmed(prompt string) (bool, error) {
	ok, err := confirm(a.reader, prompt, a.out)
	if err != nil {
		return false, err
	}
	if !ok {
		a.println("Cancelled.")
	}
	return ok, nil
}
