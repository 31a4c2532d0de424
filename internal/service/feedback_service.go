package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pkdsmart/feedback-portal/internal/models"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
)

type feedbackRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Feedback, error)
	FindOwned(ctx context.Context, id, userID int64) (*models.Feedback, error)
	Create(ctx context.Context, entry *models.Feedback) error
	UpdateOwned(ctx context.Context, id, userID int64, text string, rating int) (int64, error)
}

// FeedbackService implements the user-facing feedback flow: listing own
// entries, creating new ones, and editing entries that are still Incomplete.
type FeedbackService struct {
	repo      feedbackRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService instance.
func NewFeedbackService(repo feedbackRepository, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, validator: validate, logger: logger}
}

// List returns all feedback owned by the user, newest first.
func (s *FeedbackService) List(ctx context.Context, userID int64) ([]models.Feedback, error) {
	entries, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return entries, nil
}

// Submit creates or edits a feedback entry on behalf of the user. Invalid
// submissions are rejected with a visible validation error rather than
// silently dropped, even when the client-side checks were bypassed.
func (s *FeedbackService) Submit(ctx context.Context, userID int64, form models.FeedbackForm) error {
	form.Text = strings.TrimSpace(form.Text)

	if err := s.validator.Struct(form); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "Feedback text and a rating between 1 and 5 are required.")
	}

	if form.EditID == 0 {
		rating := form.Rating
		entry := &models.Feedback{
			UserID:    userID,
			Text:      form.Text,
			Rating:    &rating,
			Status:    models.StatusIncomplete,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.repo.Create(ctx, entry); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create feedback")
		}
		s.logger.Info("feedback created", zap.Int64("user_id", userID), zap.Int64("feedback_id", entry.ID))
		return nil
	}

	entry, err := s.repo.FindOwned(ctx, form.EditID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "Feedback entry not found.")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback")
	}
	if !entry.Editable() {
		return appErrors.Clone(appErrors.ErrFeedbackLocked, "")
	}

	affected, err := s.repo.UpdateOwned(ctx, form.EditID, userID, form.Text, form.Rating)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update feedback")
	}
	if affected == 0 {
		// Lost a race with an admin status change between the read and write.
		return appErrors.Clone(appErrors.ErrFeedbackLocked, "")
	}

	s.logger.Info("feedback updated", zap.Int64("user_id", userID), zap.Int64("feedback_id", form.EditID))
	return nil
}

// EditLookup loads the entry into the edit form only when it belongs to the
// caller; any miss degrades to the "create new" form.
func (s *FeedbackService) EditLookup(ctx context.Context, userID, id int64) (*models.Feedback, error) {
	entry, err := s.repo.FindOwned(ctx, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feedback")
	}
	return entry, nil
}
