package models

import "time"

// FeedbackStatus is the workflow state of a feedback entry.
type FeedbackStatus string

const (
	StatusIncomplete FeedbackStatus = "Incomplete"
	StatusComplete   FeedbackStatus = "Complete"
)

// Valid reports whether the status is one of the closed set.
func (s FeedbackStatus) Valid() bool {
	return s == StatusIncomplete || s == StatusComplete
}

// Feedback represents a row in the feedback table. Rating is nullable because
// rows predating the rating column carry none. CreatedAt is set at insert time
// and never touched by edits.
type Feedback struct {
	ID        int64          `db:"id"`
	UserID    int64          `db:"user_id"`
	Text      string         `db:"feedback_text"`
	Rating    *int           `db:"rating"`
	Status    FeedbackStatus `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
}

// Editable reports whether the owning user may still change the entry.
func (f Feedback) Editable() bool {
	return f.Status == StatusIncomplete
}

// AdminFeedbackRow is a feedback entry joined with its submitter's username
// for the admin dashboard listing.
type AdminFeedbackRow struct {
	ID        int64          `db:"id"`
	Username  string         `db:"username"`
	Text      string         `db:"feedback_text"`
	Rating    *int           `db:"rating"`
	Status    FeedbackStatus `db:"status"`
	CreatedAt time.Time      `db:"created_at"`
}

// FeedbackForm carries the feedback page submission. EditID zero means a new
// entry; non-zero targets an existing entry owned by the submitter.
type FeedbackForm struct {
	Text   string `form:"feedback" validate:"required"`
	Rating int    `form:"rating" validate:"required,min=1,max=5"`
	EditID int64  `form:"edit_id"`
}

// StatusUpdateForm carries the admin dashboard status change submission.
type StatusUpdateForm struct {
	FeedbackID int64  `form:"feedback_id" validate:"required"`
	Status     string `form:"status" validate:"required"`
}
