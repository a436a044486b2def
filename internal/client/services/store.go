package services

import (
	"context"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/client/persist"
)

// UserStore is the part of the local store owned by AuthService.
type UserStore interface {
	Users(ctx context.Context) ([]models.StoredUser, error)
	ReplaceUsers(ctx context.Context, users []models.StoredUser) error
	SettingStore
}

// CourseStore is the part of the local store owned by CourseService.
type CourseStore interface {
	Courses(ctx context.Context) ([]models.Course, error)
	ReplaceCourses(ctx context.Context, courses []models.Course) error
}

// SettingStore reads and writes single JSON settings.
type SettingStore interface {
	Setting(ctx context.Context, key string, dst any) (bool, error)
	SetSetting(ctx context.Context, key string, value any) error
	DeleteSetting(ctx context.Context, key string) error
}

// Submitter accepts background write jobs. *persist.Queue implements it.
type Submitter interface {
	Submit(job persist.Job)
}
