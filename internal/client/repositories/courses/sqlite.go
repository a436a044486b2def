package courses

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

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Course, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, data FROM courses ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to select courses: %w", err)
	}
	defer rows.Close()

	result := []models.Course{}
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		var c models.Course
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to decode course %s: %w", id, err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate course rows: %w", err)
	}

	return result, nil
}

func (r *SQLiteRepository) ReplaceAll(ctx context.Context, courses []models.Course) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("failed to clear courses: %w", err)
	}

	for i, c := range courses {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode course %s: %w", c.ID, err)
		}
		_, err = r.db.ExecContext(ctx,
			`INSERT INTO courses (id, position, user_email, data) VALUES (?, ?, ?, ?)`,
			c.ID, i, c.UserEmail, data)
		if err != nil {
			return fmt.Errorf("failed to insert course %s: %w", c.ID, err)
		}
	}

	return nil
}
