package users

import (
	"context"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
)

// Repository reads and replaces the whole user registry.
type Repository interface {
	// GetAll returns every stored user in insertion order.
	GetAll(ctx context.Context) ([]models.StoredUser, error)

	// ReplaceAll deletes all users and inserts the given ones in order.
	ReplaceAll(ctx context.Context, users []models.StoredUser) error
}
