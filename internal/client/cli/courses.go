package cli

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/coursemanager/internal/client/listing"
	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/client/services"
	"github.com/dmitrijs2005/coursemanager/internal/common"
)

func (a *App) listCourses(_ context.Context, args []string) error {
	list := a.lister.FilterCourses(a.visibleCourses(), query(args))
	a.lastListed = courseIDs(list)
	a.printCourses(list, a.isAdmin())
	return nil
}

func (a *App) printCourses(list []models.Course, withOwner bool) {
	if len(list) == 0 {
		a.println("No courses found.")
		return
	}
	for i, c := range list {
		owner := ""
		if withOwner {
			owner = "  <" + c.UserEmail + ">"
		}
		a.printf("%3d. %-8s  %s%s  (%d topics, %s)\n", i+1, shortID(c.ID), c.Name, owner, len(c.Topics), formatDate(c.CreatedAt.Time))
	}
}

func (a *App) setSort(_ context.Context, args []string) error {
	if len(args) == 0 {
		names := make([]string, len(listing.SortOptions))
		for i, o := range listing.SortOptions {
			names[i] = string(o)
		}
		a.printf("Sort order: %s (options: %s)\n", a.sort, strings.Join(names, ", "))
		return nil
	}

	opt, err := listing.ParseSortOption(args[0])
	if err != nil {
		return err
	}
	a.sort = opt
	a.lastListed = nil
	a.printf("Sort order: %s\n", opt)
	return nil
}

func (a *App) addCourse(ctx context.Context, _ []string) error {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return common.ErrorNotLoggedIn
	}
	return a.createCourse(ctx, u.Email)
}

// createCourse prompts for name and description and adds a course owned by
// email.
func (a *App) createCourse(ctx context.Context, email string) error {
	name, err := a.ask("Course name")
	if err != nil {
		return err
	}
	description, err := a.ask("Description (optional)")
	if err != nil {
		return err
	}
	if name == "" {
		a.println("The course name is required.")
		return nil
	}

	c := a.courses.AddCourse(name, description, email)
	a.logger.Debug(ctx, "course added", "id", c.ID, "owner", email)
	a.printf("Course %q created (%s).\n", c.Name, shortID(c.ID))
	return nil
}

func (a *App) editCourse(_ context.Context, args []string) error {
	c, err := a.resolveCourse(args[0])
	if err != nil {
		return err
	}
	return a.updateCourse(c)
}

// updateCourse prompts for new values; an empty answer keeps the current one.
func (a *App) updateCourse(c models.Course) error {
	name, err := a.ask("Course name [" + c.Name + "]")
	if err != nil {
		return err
	}
	description, err := a.ask("Description [" + c.Description + "] (enter - to clear)")
	if err != nil {
		return err
	}
	if name == "" {
		name = c.Name
	}
	switch description {
	case "":
		description = c.Description
	case "-":
		description = ""
	}

	a.courses.Dispatch(services.EditCourse{CourseID: c.ID, Name: name, Description: description})
	a.println("Course updated.")
	return nil
}

func (a *App) deleteCourse(_ context.Context, args []string) error {
	c, err := a.resolveCourse(args[0])
	if err != nil {
		return err
	}
	return a.removeCourse(c)
}

func (a *App) removeCourse(c models.Course) error {
	ok, err := a.confirmed("Delete course " + c.Name + " and all of its topics?")
	if err != nil || !ok {
		return err
	}
	a.courses.Dispatch(services.DeleteCourse{CourseID: c.ID})
	a.lastListed = nil
	a.println("Course deleted.")
	return nil
}

// showCourse prints a course and its topics, filtered by the optional query.
// Topic numbers stay those of the unfiltered list.
func (a *App) showCourse(_ context.Context, args []string) error {
	c, err := a.resolveCourse(args[0])
	if err != nil {
		return err
	}

	a.printf("%s  (%s)\n", c.Name, c.ID)
	if c.Description != "" {
		a.println(c.Description)
	}
	a.printf("Owner: %s, created %s\n", c.UserEmail, formatDate(c.CreatedAt.Time))

	ordered := a.orderedTopics(c)
	topics := a.lister.FilterTopics(c.Topics, query(args[1:]))
	if len(topics) == 0 {
		a.println("No topics found.")
		return nil
	}
	a.println("Topics:")
	for _, t := range topics {
		a.printf("%3d. %-8s  %s  (%d images)\n", topicNumber(ordered, t.ID), shortID(t.ID), t.Title, len(t.ImageURLs))
	}
	return nil
}
