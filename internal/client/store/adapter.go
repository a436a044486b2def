package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/client/repositories/courses"
	"github.com/dmitrijs2005/coursemanager/internal/client/repositories/settings"
	"github.com/dmitrijs2005/coursemanager/internal/client/repositories/users"
	"github.com/dmitrijs2005/coursemanager/internal/dbx"
)

// Adapter exposes whole-collection reads and replaces over the local
// database. It is safe for concurrent use.
type Adapter struct {
	db *sql.DB
}

func New(db *sql.DB) *Adapter {
	return &Adapter{db: db}
}

func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) Users(ctx context.Context) ([]models.StoredUser, error) {
	return users.NewSQLiteRepository(a.db).GetAll(ctx)
}

func (a *Adapter) ReplaceUsers(ctx context.Context, list []models.StoredUser) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return users.NewSQLiteRepository(tx).ReplaceAll(ctx, list)
	})
}

func (a *Adapter) Courses(ctx context.Context) ([]models.Course, error) {
	return courses.NewSQLiteRepository(a.db).GetAll(ctx)
}

func (a *Adapter) ReplaceCourses(ctx context.Context, list []models.Course) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return courses.NewSQLiteRepository(tx).ReplaceAll(ctx, list)
	})
}

// ReplaceAll replaces both collections in one transaction.
func (a *Adapter) ReplaceAll(ctx context.Context, us []models.StoredUser, cs []models.Course) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := users.NewSQLiteRepository(tx).ReplaceAll(ctx, us); err != nil {
			return err
		}
		return courses.NewSQLiteRepository(tx).ReplaceAll(ctx, cs)
	})
}

// Setting decodes the JSON value stored under key into dst. It reports false
// when the key is absent, leaving dst untouched.
func (a *Adapter) Setting(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := settings.NewSQLiteRepository(a.db).Get(ctx, key)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("failed to decode setting[%s]: %w", key, err)
	}
	return true, nil
}

// DeleteSetting removes key. Deleting an absent key is not an error.
func (a *Adapter) DeleteSetting(ctx context.Context, key string) error {
	return settings.NewSQLiteRepository(a.db).Delete(ctx, key)
}

// SetSetting stores value under key as JSON.
func (a *Adapter) SetSetting(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode setting[%s]: %w", key, err)
	}
	return settings.NewSQLiteRepository(a.db).Set(ctx, key, raw)
}
