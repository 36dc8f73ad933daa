package comments

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

// Create relies on the review_id foreign key for existence; there is no
// uniqueness rule, a user may comment on the same review repeatedly.
func (r *Repo) Create(ctx context.Context, userID, reviewID, text string) (*models.Comment, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO comments (id, user_id, review_id, text)
		VALUES (?, ?, ?, ?)
	`, id, userID, reviewID, text)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, apperr.NotFound("review not found")
		}
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, review_id, text, created_at
		FROM comments
		WHERE id = ?
	`, id)

	var comment models.Comment
	if err := row.Scan(&comment.ID, &comment.UserID, &comment.ReviewID, &comment.Text, &comment.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &comment, nil
}

func (r *Repo) ListByReview(ctx context.Context, reviewID string) ([]models.Comment, error) {
	return r.list(ctx, `
		SELECT id, user_id, review_id, text, created_at
		FROM comments
		WHERE review_id = ?
		ORDER BY created_at
	`, reviewID)
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]models.Comment, error) {
	return r.list(ctx, `
		SELECT id, user_id, review_id, text, created_at
		FROM comments
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
}

func (r *Repo) list(ctx context.Context, query string, arg string) ([]models.Comment, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var out []models.Comment
	for rows.Next() {
		var comment models.Comment
		if err := rows.Scan(&comment.ID, &comment.UserID, &comment.ReviewID, &comment.Text, &comment.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		out = append(out, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM comments
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}
