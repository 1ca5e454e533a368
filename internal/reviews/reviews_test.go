package reviews

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchplease/internal/models"
)

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) GetReviews(ctx context.Context, facilityID int64) ([]models.Review, error) {
	args := m.Called(ctx, facilityID)
	list, _ := args.Get(0).([]models.Review)
	return list, args.Error(1)
}

func (m *mockAPI) CreateReview(ctx context.Context, req models.ReviewRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *mockAPI) DeleteReview(ctx context.Context, facilityID, reviewID, userID int64) error {
	return m.Called(ctx, facilityID, reviewID, userID).Error(0)
}

var sample = []models.Review{
	{ID: 1, FacilityID: 9, UserID: 2, Rating: 5, Comment: "great"},
	{ID: 2, FacilityID: 9, UserID: 3, Rating: 2, Comment: "meh"},
}

func TestList_FlagsOwn(t *testing.T) {
	ctx := context.Background()
	api := &mockAPI{}
	api.On("GetReviews", ctx, int64(9)).Return(sample, nil)

	list, err := NewService(api, nil).List(ctx, 9, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Own)
	assert.False(t, list[1].Own)

	anon, err := NewService(api, nil).List(ctx, 9, 0)
	require.NoError(t, err)
	assert.False(t, anon[0].Own)
}

func TestCreate_RatingRequired(t *testing.T) {
	api := &mockAPI{}
	svc := NewService(api, nil)

	for _, rating := range []int{0, -1, 6} {
		assert.ErrorIs(t, svc.Create(context.Background(), 9, 2, rating, "x"), ErrRatingRequired)
	}
	api.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
}

func TestCreate_Posts(t *testing.T) {
	ctx := context.Background()
	api := &mockAPI{}
	api.On("CreateReview", ctx, models.ReviewRequest{FacilityID: 9, UserID: 2, Rating: 4, Comment: "nice"}).Return(nil)

	require.NoError(t, NewService(api, nil).Create(ctx, 9, 2, 4, "  nice "))
	api.AssertExpectations(t)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	api := &mockAPI{}
	api.On("GetReviews", ctx, int64(9)).Return(sample, nil)
	api.On("DeleteReview", ctx, int64(9), int64(1), int64(2)).Return(nil).Once()
	svc := NewService(api, nil)

	assert.NoError(t, svc.Delete(ctx, 9, 1, 2))
	assert.ErrorIs(t, svc.Delete(ctx, 9, 2, 2), ErrNotOwnReview)
	assert.ErrorIs(t, svc.Delete(ctx, 9, 42, 2), ErrReviewNotFound)
	api.AssertNumberOfCalls(t, "DeleteReview", 1)
}

func TestList_Error(t *testing.T) {
	ctx := context.Background()
	api := &mockAPI{}
	api.On("GetReviews", ctx, int64(9)).Return(nil, errors.New("http 500"))

	_, err := NewService(api, nil).List(ctx, 9, 2)
	assert.ErrorContains(t, err, "http 500")
}
