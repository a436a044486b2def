package courses

import (
	"context"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
)

// Repository reads and replaces the whole course collection.
type Repository interface {
	// GetAll returns every course in insertion order.
	GetAll(ctx context.Context) ([]models.Course, error)

	// ReplaceAll deletes all courses and inserts the given ones in order.
	ReplaceAll(ctx context.Context, courses []models.Course) error
}
