package reviews

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

// Create inserts without checking first. The (user_id, item_id) UNIQUE
// constraint decides duplicate reviews, and the item_id foreign key
// decides whether the item exists, so two concurrent attempts cannot
// both succeed.
func (r *Repo) Create(ctx context.Context, userID, itemID, text string, rating int) (*models.Review, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO reviews (id, user_id, item_id, text, rating)
		VALUES (?, ?, ?, ?, ?)
	`, id, userID, itemID, text, rating)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, apperr.Conflict("you already reviewed this item")
		}
		if database.IsForeignKeyViolation(err) {
			// the author is a resolved user, so the missing row is the item
			return nil, apperr.NotFound("item not found")
		}
		return nil, fmt.Errorf("insert review: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, user_id, item_id, text, rating, created_at
		FROM reviews
		WHERE id = ?
	`, id)

	var review models.Review
	if err := row.Scan(&review.ID, &review.UserID, &review.ItemID, &review.Text, &review.Rating, &review.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan review: %w", err)
	}
	return &review, nil
}

func (r *Repo) ListByItem(ctx context.Context, itemID string) ([]models.Review, error) {
	return r.list(ctx, `
		SELECT id, user_id, item_id, text, rating, created_at
		FROM reviews
		WHERE item_id = ?
		ORDER BY created_at DESC
	`, itemID)
}

func (r *Repo) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	return r.list(ctx, `
		SELECT id, user_id, item_id, text, rating, created_at
		FROM reviews
		WHERE user_id = ?
		ORDER BY created_at DESC
	`, userID)
}

func (r *Repo) list(ctx context.Context, query string, arg string) ([]models.Review, error) {
	rows, err := r.DB.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var out []models.Review
	for rows.Next() {
		var review models.Review
		if err := rows.Scan(&review.ID, &review.UserID, &review.ItemID, &review.Text, &review.Rating, &review.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows err: %w", err)
	}
	return out, nil
}

// Update touches text and rating only; author and item never change.
func (r *Repo) Update(ctx context.Context, id, text string, rating int) error {
	_, err := r.DB.ExecContext(ctx, `
		UPDATE reviews
		SET text = ?, rating = ?
		WHERE id = ?
	`, text, rating, id)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	return nil
}

// Delete removes the review; its comments go with it via the cascade on
// comments.review_id.
func (r *Repo) Delete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx, `
		DELETE FROM reviews
		WHERE id = ?
	`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
