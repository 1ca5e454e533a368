// Package reviews lists, posts and deletes facility reviews.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"pitchplease/internal/models"
)

var (
	ErrRatingRequired = errors.New("please select a rating between 1 and 5")
	ErrNotOwnReview   = errors.New("you can only delete your own reviews")
	ErrReviewNotFound = errors.New("review not found")
)

// API is the review part of the backend client.
type API interface {
	GetReviews(ctx context.Context, facilityID int64) ([]models.Review, error)
	CreateReview(ctx context.Context, req models.ReviewRequest) error
	DeleteReview(ctx context.Context, facilityID, reviewID, userID int64) error
}

// Entry is a review as shown to the current user.
type Entry struct {
	models.Review
	Own bool
}

// Service wraps the review endpoints with client-side checks.
type Service struct {
	api    API
	logger *zerolog.Logger
}

// NewService creates a review service.
func NewService(api API, logger *zerolog.Logger) *Service {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Service{api: api, logger: logger}
}

// List returns the facility's reviews, flagging those written by userID.
// A zero userID flags nothing.
func (s *Service) List(ctx context.Context, facilityID, userID int64) ([]Entry, error) {
	list, err := s.api.GetReviews(ctx, facilityID)
	if err != nil {
		return nil, fmt.Errorf("get reviews: %w", err)
	}
	out := make([]Entry, len(list))
	for i, r := range list {
		out[i] = Entry{Review: r, Own: userID != 0 && r.UserID == userID}
	}
	return out, nil
}

// Create posts a review. The rating must be 1..models.MaxRating.
func (s *Service) Create(ctx context.Context, facilityID, userID int64, rating int, comment string) error {
	if rating < 1 || rating > models.MaxRating {
		return ErrRatingRequired
	}
	req := models.ReviewRequest{
		FacilityID: facilityID,
		UserID:     userID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := s.api.CreateReview(ctx, req); err != nil {
		return fmt.Errorf("create review: %w", err)
	}
	s.logger.Info().Int64("facility_id", facilityID).Int("rating", rating).Msg("review submitted")
	return nil
}

// Delete removes one of userID's own reviews.
func (s *Service) Delete(ctx context.Context, facilityID, reviewID, userID int64) error {
	list, err := s.List(ctx, facilityID, userID)
	if err != nil {
		return err
	}
	for _, e := range list {
		if e.ID != reviewID {
			continue
		}
		if !e.Own {
			return ErrNotOwnReview
		}
		if err := s.api.DeleteReview(ctx, facilityID, reviewID, userID); err != nil {
			return fmt.Errorf("delete review: %w", err)
		}
		s.logger.Info().Int64("review_id", reviewID).Msg("review deleted")
		return nil
	}
	return ErrReviewNotFound
}
