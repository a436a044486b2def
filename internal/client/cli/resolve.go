package cli

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/coursemanager/internal/client/listing"
	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/common"
)

// References on the command line are either a 1-based number from the last
// listing or an id (a unique prefix is enough).

// visibleCourses is what the session user may address: every course for an
// admin, their own otherwise.
func (a *App) visibleCourses() []models.Course {
	u, ok := a.auth.CurrentUser()
	if !ok {
		return nil
	}
	return a.lister.SortCourses(a.courses.Visible(u), a.sort)
}

func (a *App) resolveCourse(ref string) (models.Course, error) {
	return pickCourse(ref, a.lastListed, a.visibleCourses())
}

// pickCourse resolves ref against pool. Numbers index listed when it is not
// empty, pool otherwise.
func pickCourse(ref string, listed []string, pool []models.Course) (models.Course, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		ids := listed
		if len(ids) == 0 {
			ids = courseIDs(pool)
		}
		if n < 1 || n > len(ids) {
			return models.Course{}, common.ErrorNotFound
		}
		ref = ids[n-1]
	}

	var match []models.Course
	for _, c := range pool {
		if c.ID == ref {
			return c, nil
		}
		if strings.HasPrefix(c.ID, ref) {
			match = append(match, c)
		}
	}
	switch len(match) {
	case 0:
		return models.Course{}, common.ErrorNotFound
	case 1:
		return match[0], nil
	default:
		return models.Course{}, fmt.Errorf("%w: %q matches %d courses", common.ErrorValidation, ref, len(match))
	}
}

// orderedTopics is the stable topic numbering of a course (oldest first).
func (a *App) orderedTopics(c models.Course) []models.Topic {
	return a.lister.FilterTopics(c.Topics, "")
}

func (a *App) resolveTopic(c models.Course, ref string) (models.Topic, error) {
	topics := a.orderedTopics(c)
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(topics) {
			return models.Topic{}, common.ErrorNotFound
		}
		return topics[n-1], nil
	}

	var match []models.Topic
	for _, t := range topics {
		if t.ID == ref {
			return t, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			match = append(match, t)
		}
	}
	switch len(match) {
	case 0:
		return models.Topic{}, common.ErrorNotFound
	case 1:
		return match[0], nil
	default:
		return models.Topic{}, fmt.Errorf("%w: %q matches %d topics", common.ErrorValidation, ref, len(match))
	}
}

// resolveCourseTopic resolves the <course> <topic> pair used by the topic
// commands.
func (a *App) resolveCourseTopic(args []string) (models.Course, models.Topic, error) {
	c, err := a.resolveCourse(args[0])
	if err != nil {
		return models.Course{}, models.Topic{}, err
	}
	t, err := a.resolveTopic(c, args[1])
	if err != nil {
		return models.Course{}, models.Topic{}, err
	}
	return c, t, nil
}

// managedUsers is the admin's user list, the admin excluded.
func (a *App) managedUsers() []models.StoredUser {
	return listing.OtherUsers(a.auth.AllUsers(), a.auth.AdminEmail())
}

// resolveUser accepts a number from the user list or an exact email.
func (a *App) resolveUser(ref string) (models.StoredUser, error) {
	if n, err := strconv.Atoi(ref); err == nil {
		users := a.managedUsers()
		if n < 1 || n > len(users) {
			return models.StoredUser{}, common.ErrorNotFound
		}
		return users[n-1], nil
	}
	u, ok := a.auth.UserByEmail(ref)
	if !ok {
		return models.StoredUser{}, common.ErrorNotFound
	}
	return u, nil
}

// resolveImage accepts a 1-based image number.
func resolveImage(t models.Topic, ref string) (int, error) {
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(t.ImageURLs) {
		return 0, common.ErrorNotFound
	}
	return n - 1, nil
}

func courseIDs(cs []models.Course) []string {
	ids := make([]string, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}
	return ids
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(dateLayout)
}

func query(args []string) string {
	return strings.Join(args, " ")
}

func topicNumber(topics []models.Topic, id string) int {
	return slices.IndexFunc(topics, func(t models.Topic) bool { return t.ID == id }) + 1
}
