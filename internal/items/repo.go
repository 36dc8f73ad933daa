package items

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"reviewhub/internal/apperr"
	"reviewhub/pkg/database"
	"reviewhub/pkg/models"
)

type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

// Create is used by seeding/admin tooling; items have no public write
// route. Duplicate names surface as a conflict via items.name UNIQUE.
func (r *Repo) Create(ctx context.Context, name string) (*models.Item, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO items (id, name)
		VALUES (?, ?)
	`, id, name)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("item name already exists")
		}
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, name, created_at
		FROM items
		WHERE id = ?
	`, id)

	var item models.Item
	if err := row.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &item, nil
}

func (r *Repo) List(ctx context.Context) ([]models.Item, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, name, created_at
		FROM items
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var out []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}
