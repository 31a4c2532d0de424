package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pkdsmart/feedback-portal/internal/models"
)

const adminColumns = `feedback.id, users.username, feedback.feedback_text, feedback.rating, feedback.status, feedback.created_at`

// FeedbackRepository provides database access for feedback entries.
type FeedbackRepository struct {
	db *sqlx.DB
}

// NewFeedbackRepository creates a new instance of FeedbackRepository.
func NewFeedbackRepository(db *sqlx.DB) *FeedbackRepository {
	return &FeedbackRepository{db: db}
}

// ListByUser returns all feedback owned by a user, newest first.
func (r *FeedbackRepository) ListByUser(ctx context.Context, userID int64) ([]models.Feedback, error) {
	const query = `SELECT id, user_id, feedback_text, rating, status, created_at FROM feedback WHERE user_id = $1 ORDER BY created_at DESC`
	var entries []models.Feedback
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		return nil, fmt.Errorf("list feedback by user: %w", err)
	}
	return entries, nil
}

// FindOwned returns a feedback entry only when it belongs to the given user.
func (r *FeedbackRepository) FindOwned(ctx context.Context, id, userID int64) (*models.Feedback, error) {
	const query = `SELECT id, user_id, feedback_text, rating, status, created_at FROM feedback WHERE id = $1 AND user_id = $2 LIMIT 1`
	var entry models.Feedback
	if err := r.db.GetContext(ctx, &entry, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find owned feedback: %w", err)
	}
	return &entry, nil
}

// Create inserts a new feedback entry and fills in the generated identifier.
// Status and created_at always come from the caller-constructed entry, never
// from the form.
func (r *FeedbackRepository) Create(ctx context.Context, entry *models.Feedback) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO feedback (user_id, feedback_text, rating, status, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &entry.ID, query, entry.UserID, entry.Text, entry.Rating, entry.Status, entry.CreatedAt); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

// UpdateOwned rewrites text and rating of an entry, guarded so that only the
// owner may touch it and only while it is still Incomplete. Status and
// created_at are left untouched. Returns the number of rows affected; zero
// means the entry is missing, foreign, or locked.
func (r *FeedbackRepository) UpdateOwned(ctx context.Context, id, userID int64, text string, rating int) (int64, error) {
	const query = `UPDATE feedback SET feedback_text = $3, rating = $4 WHERE id = $1 AND user_id = $2 AND status = 'Incomplete'`
	res, err := r.db.ExecContext(ctx, query, id, userID, text, rating)
	if err != nil {
		return 0, fmt.Errorf("update owned feedback: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update owned feedback: %w", err)
	}
	return affected, nil
}

// ListAll returns every feedback entry joined with its submitter's username.
func (r *FeedbackRepository) ListAll(ctx context.Context) ([]models.AdminFeedbackRow, error) {
	query := `SELECT ` + adminColumns + ` FROM feedback JOIN users ON feedback.user_id = users.id ORDER BY feedback.created_at DESC`
	var rows []models.AdminFeedbackRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all feedback: %w", err)
	}
	return rows, nil
}

// ListByDate returns entries whose creation date, ignoring time of day,
// matches the given day.
func (r *FeedbackRepository) ListByDate(ctx context.Context, day time.Time) ([]models.AdminFeedbackRow, error) {
	query := `SELECT ` + adminColumns + ` FROM feedback JOIN users ON feedback.user_id = users.id WHERE feedback.created_at::date = $1 ORDER BY feedback.created_at DESC`
	var rows []models.AdminFeedbackRow
	if err := r.db.SelectContext(ctx, &rows, query, day.Format("2006-01-02")); err != nil {
		return nil, fmt.Errorf("list feedback by date: %w", err)
	}
	return rows, nil
}

// Search fans a single term out across feedback text, username, rating,
// status, and creation date; a row is included when any column matches.
func (r *FeedbackRepository) Search(ctx context.Context, term string) ([]models.AdminFeedbackRow, error) {
	query := `SELECT ` + adminColumns + ` FROM feedback JOIN users ON feedback.user_id = users.id
		WHERE feedback.feedback_text ILIKE $1
		OR users.username ILIKE $1
		OR CAST(feedback.rating AS TEXT) LIKE $1
		OR feedback.status ILIKE $1
		OR TO_CHAR(feedback.created_at, 'YYYY-MM-DD') LIKE $1
		ORDER BY feedback.created_at DESC`
	var rows []models.AdminFeedbackRow
	if err := r.db.SelectContext(ctx, &rows, query, "%"+term+"%"); err != nil {
		return nil, fmt.Errorf("search feedback: %w", err)
	}
	return rows, nil
}

// UpdateStatus unconditionally overwrites an entry's status.
func (r *FeedbackRepository) UpdateStatus(ctx context.Context, id int64, status models.FeedbackStatus) error {
	const query = `UPDATE feedback SET status = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status); err != nil {
		return fmt.Errorf("update feedback status: %w", err)
	}
	return nil
}

// Delete unconditionally removes an entry.
func (r *FeedbackRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM feedback WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
