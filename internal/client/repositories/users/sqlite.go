package users

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/coursemanager/internal/client/models"
	"github.com/dmitrijs2005/coursemanager/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.StoredUser, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT email, data FROM users ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select users: %w", err)
	}
	defer rows.Close()

	result := []models.StoredUser{}
	for rows.Next() {
		var (
			email string
			data  []byte
		)
		if err := rows.Scan(&email, &data); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		var u models.StoredUser
		if err := json.Unmarshal(data, &u); err != nil {
			return nil, fmt.Errorf("failed to decode user %s: %w", email, err)
		}
		result = append(result, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, users []models.StoredUser) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	for i, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to encode user %s: %w", u.Email, err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO users (email, position, data) VALUES (?, ?, ?)`,
			u.Email, i, data)
		if err != nil {
			return fmt.Errorf("failed to insert user %s: %w", u.Email, err)
		}
	}

	return nil
}
