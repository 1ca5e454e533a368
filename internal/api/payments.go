package api

import (
	"context"
	"fmt"
	"net/http"

	"pitchplease/internal/models"
)

// CreatePayment posts the booking and payment record.
func (c *Client) CreatePayment(ctx context.Context, req models.PaymentRequest) (*models.PaymentResponse, error) {
	var resp models.PaymentResponse
	if err := c.doJSON(ctx, http.MethodPost, c.url("/payments/create"), req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListUserPayments returns the payment history of a user.
func (c *Client) ListUserPayments(ctx context.Context, userID int64) ([]models.Payment, error) {
	var list []models.Payment
	if err := c.doGet(ctx, c.url(fmt.Sprintf("/payments/user/%d", userID)), &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListFacilityPayments returns payments made for a facility.
func (c *Client) ListFacilityPayments(ctx context.Context, facilityID int64) ([]models.Payment, error) {
	var list []models.Payment
	if err := c.doGet(ctx, c.url(fmt.Sprintf("/payments/facility/%d", facilityID)), &list); err != nil {
		return nil, err
	}
	return list, nil
}
