package api

import (
	"context"
	"net/http"

	"pitchplease/internal/models"
)

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.Tokens, error) {
	var resp models.LoginResponse
	if err := c.doJSON(ctx, http.MethodPost, c.url("/auth/login"), creds, &resp); err != nil {
		return nil, err
	}
	return &resp.Response, nil
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.doJSON(ctx, http.MethodPost, c.url("/auth/register"), reg, nil)
}

// Logout invalidates the refresh token on the server.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	return c.doJSON(ctx, http.MethodPost, c.url("/auth/logout"), models.LogoutRequest{Token: refreshToken}, nil)
}

// GetUserID resolves the user behind token. The endpoint answers in plain text.
func (c *Client) GetUserID(ctx context.Context, token string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url("/users/user-id"), http.NoBody)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.doText(req)
}
