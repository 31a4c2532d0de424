package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/pkdsmart/feedback-portal/internal/models"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
)

type dashboardRepository interface {
	ListAll(ctx context.Context) ([]models.AdminFeedbackRow, error)
	ListByDate(ctx context.Context, day time.Time) ([]models.AdminFeedbackRow, error)
	Search(ctx context.Context, term string) ([]models.AdminFeedbackRow, error)
	UpdateStatus(ctx context.Context, id int64, status models.FeedbackStatus) error
	Delete(ctx context.Context, id int64) error
}

// DashboardQuery selects exactly one listing mode. A nil field means the
// corresponding form control was not submitted; the date filter wins when
// both are present.
type DashboardQuery struct {
	FilterDate *string
	Search     *string
}

// DashboardService implements the admin triage flow over all feedback.
type DashboardService struct {
	repo      dashboardRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(repo dashboardRepository, validate *validator.Validate, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &DashboardService{repo: repo, validator: validate, logger: logger}
}

// List returns feedback rows for the requested mode: exact-date filter,
// substring search, or the full joined listing.
func (s *DashboardService) List(ctx context.Context, q DashboardQuery) ([]models.AdminFeedbackRow, error) {
	switch {
	case q.FilterDate != nil:
		if *q.FilterDate == "" {
			return s.listAll(ctx)
		}
		day, err := time.Parse("2006-01-02", *q.FilterDate)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Filter date must be a valid date.")
		}
		rows, err := s.repo.ListByDate(ctx, day)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to filter feedback")
		}
		return rows, nil
	case q.Search != nil:
		rows, err := s.repo.Search(ctx, *q.Search)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to search feedback")
		}
		return rows, nil
	default:
		return s.listAll(ctx)
	}
}

func (s *DashboardService) listAll(ctx context.Context) ([]models.AdminFeedbackRow, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list feedback")
	}
	return rows, nil
}

// UpdateStatus overwrites an entry's status. The admin is trusted; there is
// no ownership check, only enum validation.
func (s *DashboardService) UpdateStatus(ctx context.Context, form models.StatusUpdateForm) error {
	if err := s.validator.Struct(form); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "A feedback id and status are required.")
	}
	status := models.FeedbackStatus(form.Status)
	if !status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "Status must be Complete or Incomplete.")
	}

	if err := s.repo.UpdateStatus(ctx, form.FeedbackID, status); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update status")
	}
	s.logger.Info("feedback status updated", zap.Int64("feedback_id", form.FeedbackID), zap.String("status", form.Status))
	return nil
}

// Delete unconditionally removes an entry.
func (s *DashboardService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "A feedback id is required.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete feedback")
	}
	s.logger.Info("feedback deleted", zap.Int64("feedback_id", id))
	return nil
}
