package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pkdsmart/feedback-portal/internal/models"
	appErrors "github.com/pkdsmart/feedback-portal/pkg/errors"
)

type mockDashboardRepo struct {
	rows          []models.AdminFeedbackRow
	listAllCalled bool
	byDateCalled  bool
	searchCalled  bool
	lastDay       time.Time
	lastTerm      string
	updatedID     int64
	updatedStatus models.FeedbackStatus
	deletedID     int64
	updateErr     error
	deleteErr     error
}

func (m *mockDashboardRepo) ListAll(ctx context.Context) ([]models.AdminFeedbackRow, error) {
	m.listAllCalled = true
	return m.rows, nil
}

func (m *mockDashboardRepo) ListByDate(ctx context.Context, day time.Time) ([]models.AdminFeedbackRow, error) {
	m.byDateCalled = true
	m.lastDay = day
	return m.rows, nil
}

func (m *mockDashboardRepo) Search(ctx context.Context, term string) ([]models.AdminFeedbackRow, error) {
	m.searchCalled = true
	m.lastTerm = term
	return m.rows, nil
}

func (m *mockDashboardRepo) UpdateStatus(ctx context.Context, id int64, status models.FeedbackStatus) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updatedID = id
	m.updatedStatus = status
	return nil
}

func (m *mockDashboardRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func newDashboardService(repo *mockDashboardRepo) *DashboardService {
	return NewDashboardService(repo, validator.New(), zap.NewNop())
}

func strPtr(s string) *string { return &s }

func TestListDefaultMode(t *testing.T) {
	repo := &mockDashboardRepo{rows: []models.AdminFeedbackRow{{ID: 1, Username: "alice"}}}
	svc := newDashboardService(repo)

	rows, err := svc.List(context.Background(), DashboardQuery{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.True(t, repo.listAllCalled)
	assert.False(t, repo.byDateCalled)
	assert.False(t, repo.searchCalled)
}

func TestListDateFilter(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	_, err := svc.List(context.Background(), DashboardQuery{FilterDate: strPtr("2024-06-15")})
	require.NoError(t, err)
	assert.True(t, repo.byDateCalled)
	assert.Equal(t, "2024-06-15", repo.lastDay.Format("2006-01-02"))
}

func TestListEmptyDateFallsBackToAll(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	_, err := svc.List(context.Background(), DashboardQuery{FilterDate: strPtr("")})
	require.NoError(t, err)
	assert.True(t, repo.listAllCalled)
	assert.False(t, repo.byDateCalled)
}

func TestListInvalidDateRejected(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	_, err := svc.List(context.Background(), DashboardQuery{FilterDate: strPtr("June 15th")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestListDateWinsOverSearch(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	_, err := svc.List(context.Background(), DashboardQuery{FilterDate: strPtr("2024-06-15"), Search: strPtr("alice")})
	require.NoError(t, err)
	assert.True(t, repo.byDateCalled)
	assert.False(t, repo.searchCalled)
}

func TestListSearchMode(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	_, err := svc.List(context.Background(), DashboardQuery{Search: strPtr("Complete")})
	require.NoError(t, err)
	assert.True(t, repo.searchCalled)
	assert.Equal(t, "Complete", repo.lastTerm)
}

func TestUpdateStatusValid(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	err := svc.UpdateStatus(context.Background(), models.StatusUpdateForm{FeedbackID: 7, Status: "Complete"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.updatedID)
	assert.Equal(t, models.StatusComplete, repo.updatedStatus)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	err := svc.UpdateStatus(context.Background(), models.StatusUpdateForm{FeedbackID: 7, Status: "Done"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.updatedID)
}

func TestUpdateStatusRequiresID(t *testing.T) {
	svc := newDashboardService(&mockDashboardRepo{})

	err := svc.UpdateStatus(context.Background(), models.StatusUpdateForm{Status: "Complete"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDelete(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	err := svc.Delete(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), repo.deletedID)
}

func TestDeleteRejectsBadID(t *testing.T) {
	repo := &mockDashboardRepo{}
	svc := newDashboardService(repo)

	err := svc.Delete(context.Background(), 0)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Zero(t, repo.deletedID)
}
