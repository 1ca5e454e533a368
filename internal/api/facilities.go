package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"pitchplease/internal/models"
)

// FacilityCacheKey is the cache key for a single facility's details.
func FacilityCacheKey(id int64) string {
	return fmt.Sprintf("facility:%d", id)
}

const facilitiesAllKey = "facilities:all"

// GetFacility fetches details for one facility.
func (c *Client) GetFacility(ctx context.Context, id int64) (*models.Facility, error) {
	endpoint := fmt.Sprintf("%s?id=%d", c.url("/facility_details/get_details"), id)
	var f models.Facility
	if err := c.getCached(ctx, endpoint, FacilityCacheKey(id), &f); err != nil {
		return nil, err
	}
	if f.ID == 0 {
		f.ID = id
	}
	return &f, nil
}

// ListFacilities returns every facility.
func (c *Client) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	var list []models.Facility
	if err := c.getCached(ctx, c.url("/facilities/all"), facilitiesAllKey, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// SearchFacilities filters facilities by city, type and price range.
func (c *Client) SearchFacilities(ctx context.Context, filter models.SearchFilter) ([]models.Facility, error) {
	q := url.Values{}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.FacilityType != "" {
		q.Set("facilityType", filter.FacilityType)
	}
	if filter.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}
	query := q.Encode()

	var list []models.Facility
	if err := c.getCached(ctx, c.url("/facilities/search")+"?"+query, "facilities:search:"+query, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// ListOwnedFacilities returns the facilities managed by userID.
func (c *Client) ListOwnedFacilities(ctx context.Context, userID int64) ([]models.Facility, error) {
	endpoint := fmt.Sprintf("%s?userId=%d", c.url("/facilities/user_facilities"), userID)
	var list []models.Facility
	if err := c.doGet(ctx, endpoint, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// CreateFacility registers a new facility.
func (c *Client) CreateFacility(ctx context.Context, in models.FacilityInput) (*models.Facility, error) {
	var f models.Facility
	if err := c.doJSON(ctx, http.MethodPost, c.url("/facilities/create"), in, &f); err != nil {
		return nil, err
	}
	c.Invalidate(ctx, facilitiesAllKey)
	return &f, nil
}

// UpdateFacility replaces a facility's editable fields.
func (c *Client) UpdateFacility(ctx context.Context, in models.FacilityInput) (*models.Facility, error) {
	endpoint := fmt.Sprintf("%s?facilityId=%d", c.url("/facilities/update"), in.ID)
	var f models.Facility
	if err := c.doJSON(ctx, http.MethodPut, endpoint, in, &f); err != nil {
		return nil, err
	}
	c.Invalidate(ctx, facilitiesAllKey, FacilityCacheKey(in.ID))
	return &f, nil
}

// DeleteFacility removes a facility.
func (c *Client) DeleteFacility(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("%s?facilityId=%d", c.url("/facilities/delete"), id)
	if err := c.doDelete(ctx, endpoint); err != nil {
		return err
	}
	c.Invalidate(ctx, facilitiesAllKey, FacilityCacheKey(id))
	return nil
}
