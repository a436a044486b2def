package services

import (
	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/timex"
)

// Action is a course collection transition understood by Reducer.
type Action interface {
	kind() string
}

// SetCourses replaces the entire collection. Used at load time only.
type SetCourses struct {
	Courses []models.Course
}

// AddCourse appends a new course with no topics. ID and CreatedAt are
// generated when empty.
type AddCourse struct {
	ID          string
	Name        string
	Description string
	UserEmail   string
	CreatedAt   timex.Millis
}

type EditCourse struct {
	CourseID    string
	Name        string
	Description string
}

type DeleteCourse struct {
	CourseID string
}

// AddTopic appends an empty topic to a course. ID and CreatedAt are generated
// when empty.
type AddTopic struct {
	CourseID  string
	ID        string
	Title     string
	CreatedAt timex.Millis
}

// EditTopic changes the title only.
type EditTopic struct {
	CourseID string
	TopicID  string
	Title    string
}

type DeleteTopic struct {
	CourseID string
	TopicID  string
}

// UpdateTopicDetails replaces notes and images wholesale.
type UpdateTopicDetails struct {
	CourseID  string
	TopicID   string
	Notes     string
	ImageURLs []string
}

// DeleteCoursesByUser removes every course owned by UserEmail.
type DeleteCoursesByUser struct {
	UserEmail string
}

func (SetCourses) kind() string          { return "set_courses" }
func (AddCourse) kind() string           { return "add_course" }
func (EditCourse) kind() string          { return "edit_course" }
func (DeleteCourse) kind() string        { return "delete_course" }
func (AddTopic) kind() string            { return "add_topic" }
func (EditTopic) kind() string           { return "edit_topic" }
func (DeleteTopic) kind() string         { return "delete_topic" }
func (UpdateTopicDetails) kind() string  { return "update_topic_details" }
func (DeleteCoursesByUser) kind() string { return "delete_courses_by_user" }
