package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/common"
	"github.com/dmitrijs2005/coursemanager/internal/logging"
)

// CourseService owns the course collection. State changes go through
// Dispatch, which runs the reducer and, once the collection has been loaded,
// queues a snapshot for writing.
type CourseService interface {
	Init(ctx context.Context) error
	Reload(ctx context.Context) error
	Loaded() bool

	Dispatch(action Action)
	AddCourse(name, description, userEmail string) models.Course
	AddTopic(courseID, title string) (models.Topic, error)

	All() []models.Course
	Course(id string) (models.Course, bool)
	Topic(courseID, topicID string) (models.Topic, bool)
	Visible(user models.User) []models.Course
}

type courseService struct {
	store   CourseStore
	queue   Submitter
	reducer Reducer
	logger  logging.Logger

	mu      sync.RWMutex
	courses []models.Course
	loaded  bool
}

func NewCourseService(store CourseStore, queue Submitter, reducer Reducer, logger logging.Logger) CourseService {
	return &courseService{store: store, queue: queue, reducer: reducer, logger: logger}
}

// Init loads the collection through SetCourses. The load itself is not
// written back.
func (s *courseService) Init(ctx context.Context) error {
	list, err := s.store.Courses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load courses: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.courses = s.reducer.Reduce(s.courses, SetCourses{Courses: list})
	s.loaded = true

	s.logger.Debug(ctx, "courses loaded", "count", len(list))
	return nil
}

func (s *courseService) Reload(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *courseService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *courseService) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatch(action)
}

func (s *courseService) dispatch(action Action) {
	s.courses = s.reducer.Reduce(s.courses, action)
	if !s.loaded {
		return
	}

	snapshot := models.CloneCourses(s.courses)
	s.logger.Debug(context.Background(), "course action applied", "action", action.kind(), "courses", len(snapshot))
	s.queue.Submit(func(ctx context.Context) error {
		return s.store.ReplaceCourses(ctx, snapshot)
	})
}

func (s *courseService) AddCourse(name, description, userEmail string) models.Course {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.reducer.NewID()
	s.dispatch(AddCourse{ID: id, Name: name, Description: description, UserEmail: userEmail, CreatedAt: s.reducer.Now()})

	c, _ := s.find(id)
	return c.Clone()
}

func (s *courseService) AddTopic(courseID, title string) (models.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(courseID); !ok {
		return models.Topic{}, common.ErrorNotFound
	}

	id := s.reducer.NewID()
	s.dispatch(AddTopic{CourseID: courseID, ID: id, Title: title, CreatedAt: s.reducer.Now()})

	c, _ := s.find(courseID)
	t, _ := c.Topic(id)
	return t.Clone(), nil
}

func (s *courseService) All() []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneCourses(s.courses)
}

func (s *courseService) Course(id string) (models.Course, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.find(id)
	if !ok {
		return models.Course{}, false
	}
	return c.Clone(), true
}

func (s *courseService) Topic(courseID, topicID string) (models.Topic, bool) {
	c, ok := s.Course(courseID)
	if !ok {
		return models.Topic{}, false
	}
	return c.Topic(topicID)
}

// Visible returns every course for an admin and only the user's own courses
// otherwise.
func (s *courseService) Visible(user models.User) []models.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user.IsAdmin {
		return models.CloneCourses(s.courses)
	}
	out := []models.Course{}
	for _, c := range s.courses {
		if c.UserEmail == user.Email {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *courseService) find(id string) (models.Course, bool) {
	for _, c := range s.courses {
		if c.ID == id {
			return c, true
		}
	}
	return models.Course{}, false
}
