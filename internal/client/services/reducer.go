package services

import (
	"slices"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/timex"
	"github.com/google/uuid"
)

// Reducer computes the next course collection from the current one and an
// action. It never modifies its input.
type Reducer struct {
	NewID func() string
	Now   func() timex.Millis
}

func NewReducer() Reducer {
	return Reducer{NewID: uuid.NewString, Now: timex.Now}
}

func (r Reducer) Reduce(state []models.Course, action Action) []models.Course {
	switch a := action.(type) {
	case SetCourses:
		return models.CloneCourses(a.Courses)

	case AddCourse:
		c := models.Course{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Topics:      []models.Topic{},
			CreatedAt:   a.CreatedAt,
			UserEmail:   a.UserEmail,
		}
		if c.ID == "" {
			c.ID = r.NewID()
		}
		if c.CreatedAt.IsZero() {
			c.CreatedAt = r.Now()
		}
		return append(models.CloneCourses(state), c)

	case EditCourse:
		return mapCourse(state, a.CourseID, func(c models.Course) models.Course {
			c.Name = a.Name
			c.Description = a.Description
			return c
		})

	case DeleteCourse:
		return filterCourses(state, func(c models.Course) bool { return c.ID != a.CourseID })

	case AddTopic:
		t := models.Topic{
			ID:        a.ID,
			Title:     a.Title,
			Notes:     "",
			ImageURLs: []string{},
			CreatedAt: a.CreatedAt,
		}
		if t.ID == "" {
			t.ID = r.NewID()
		}
		if t.CreatedAt.IsZero() {
			t.CreatedAt = r.Now()
		}
		return mapCourse(state, a.CourseID, func(c models.Course) models.Course {
			c.Topics = append(c.Topics, t)
			return c
		})

	case EditTopic:
		return mapTopic(state, a.CourseID, a.TopicID, func(t models.Topic) models.Topic {
			t.Title = a.Title
			return t
		})

	case DeleteTopic:
		return mapCourse(state, a.CourseID, func(c models.Course) models.Course {
			c.Topics = slices.DeleteFunc(c.Topics, func(t models.Topic) bool { return t.ID == a.TopicID })
			return c
		})

	case UpdateTopicDetails:
		return mapTopic(state, a.CourseID, a.TopicID, func(t models.Topic) models.Topic {
			t.Notes = a.Notes
			t.ImageURLs = slices.Clone(a.ImageURLs)
			if t.ImageURLs == nil {
				t.ImageURLs = []string{}
			}
			return t
		})

	case DeleteCoursesByUser:
		return filterCourses(state, func(c models.Course) bool { return c.UserEmail != a.UserEmail })

	default:
		return state
	}
}

// mapCourse returns a copy of state with fn applied to the course with id.
// fn receives a deep copy.
func mapCourse(state []models.Course, id string, fn func(models.Course) models.Course) []models.Course {
	out := models.CloneCourses(state)
	for i := range out {
		if out[i].ID == id {
			out[i] = fn(out[i])
		}
	}
	return out
}

func mapTopic(state []models.Course, courseID, topicID string, fn func(models.Topic) models.Topic) []models.Course {
	return mapCourse(state, courseID, func(c models.Course) models.Course {
		for i := range c.Topics {
			if c.Topics[i].ID == topicID {
				c.Topics[i] = fn(c.Topics[i])
			}
		}
		return c
	})
}

func filterCourses(state []models.Course, keep func(models.Course) bool) []models.Course {
	out := make([]models.Course, 0, len(state))
	for _, c := range state {
		if keep(c) {
			out = append(out, c.Clone())
		}
	}
	return out
}
