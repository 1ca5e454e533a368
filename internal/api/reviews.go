package api

import (
	"context"
	"fmt"
	"net/http"

	"pitchplease/internal/models"
)

// GetReviews lists reviews of a facility.
func (c *Client) GetReviews(ctx context.Context, facilityID int64) ([]models.Review, error) {
	endpoint := fmt.Sprintf("%s?facilityId=%d", c.url("/facility_details/get_reviews"), facilityID)
	var list []models.Review
	if err := c.doGet(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateReview posts a review. The facility's cached details are dropped so
// the next lookup shows the new average rating.
func (c *Client) CreateReview(ctx context.Context, req models.ReviewRequest) error {
	if err := c.doJSON(ctx, http.MethodPost, c.url("/facility_details/create_review"), req, nil); err != nil {
		return err
	}
	c.Invalidate(ctx, FacilityCacheKey(req.FacilityID))
	return nil
}

// DeleteReview removes a review written by userID.
func (c *Client) DeleteReview(ctx context.Context, facilityID, reviewID, userID int64) error {
	endpoint := fmt.Sprintf("%s?reviewId=%d&userId=%d", c.url("/facility_details/delete_review"), reviewID, userID)
	if err := c.doDelete(ctx, endpoint); err != nil {
		return err
	}
	c.Invalidate(ctx, FacilityCacheKey(facilityID))
	return nil
}
