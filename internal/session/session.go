// Package session reads and writes the authentication state kept in the
// transient store.
package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"pitchplease/internal/models"
	"pitchplease/internal/store"
)

// ErrNotAuthenticated is returned when no usable access token is stored.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthAPI is the part of the backend client the session needs.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.Tokens, error)
	Register(ctx context.Context, reg models.Registration) error
	Logout(ctx context.Context, refreshToken string) error
	GetUserID(ctx context.Context, token string) (string, error)
}

// Session is the accessor over stored tokens.
type Session struct {
	store  store.Store
	api    AuthAPI
	logger *zerolog.Logger
	now    func() time.Time
}

// New creates a session accessor.
func New(s store.Store, api AuthAPI, logger *zerolog.Logger) *Session {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	return &Session{store: s, api: api, logger: logger, now: time.Now}
}

// AccessToken returns the stored access token, or "" when absent.
func (s *Session) AccessToken(ctx context.Context) string {
	token, err := s.store.Get(ctx, models.AccessTokenKey)
	if err != nil {
		return ""
	}
	return token
}

// IsAuthenticated reports whether an unexpired access token is stored.
func (s *Session) IsAuthenticated(ctx context.Context) bool {
	token := s.AccessToken(ctx)
	if token == "" {
		return false
	}
	exp, ok := s.expiry(ctx, token)
	if !ok {
		return true
	}
	return s.now().Before(exp)
}

// expiry reads accessTokenExpiresAt, falling back to the token's exp claim.
func (s *Session) expiry(ctx context.Context, token string) (time.Time, bool) {
	if raw, err := s.store.Get(ctx, models.AccessTokenExpiresAtKey); err == nil && raw != "" {
		if t, ok := parseExpiry(raw); ok {
			return t, true
		}
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

func parseExpiry(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, true
	}
	// Zone-less timestamps are the backend's local time.
	for _, layout := range []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, true
		}
	}
	// epoch milliseconds
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

// UserName returns the name used at login, or "".
func (s *Session) UserName(ctx context.Context) string {
	name, err := s.store.Get(ctx, models.UserNameKey)
	if err != nil {
		return ""
	}
	return name
}

// UserID resolves the current user through the backend.
func (s *Session) UserID(ctx context.Context) (int64, error) {
	token := s.AccessToken(ctx)
	if token == "" {
		return 0, ErrNotAuthenticated
	}
	raw, err := s.api.GetUserID(ctx, token)
	if err != nil {
		return 0, fmt.Errorf("get user id: %w", err)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: unexpected user id %q", ErrNotAuthenticated, raw)
	}
	return id, nil
}

// Login authenticates and stores the issued tokens.
func (s *Session) Login(ctx context.Context, userName, password string) error {
	tokens, err := s.api.Login(ctx, models.Credentials{UserName: userName, Password: password})
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if tokens.AccessToken == "" {
		return fmt.Errorf("login: %w: empty access token", ErrNotAuthenticated)
	}
	values := map[string]string{
		models.AccessTokenKey:          tokens.AccessToken,
		models.RefreshTokenKey:         tokens.RefreshToken,
		models.AccessTokenExpiresAtKey: tokens.AccessTokenExpiresAt,
		models.UserNameKey:             userName,
	}
	for key, val := range values {
		if err := s.store.Set(ctx, key, val); err != nil {
			return fmt.Errorf("store %s: %w", key, err)
		}
	}
	s.logger.Info().Str("user", userName).Msg("logged in")
	return nil
}

// Register creates an account. It does not log in.
func (s *Session) Register(ctx context.Context, reg models.Registration) error {
	if err := s.api.Register(ctx, reg); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return nil
}

// Logout invalidates the refresh token remotely and always clears the stored
// tokens. A failed remote call is only logged.
func (s *Session) Logout(ctx context.Context) error {
	if refresh, err := s.store.Get(ctx, models.RefreshTokenKey); err == nil && refresh != "" {
		if err := s.api.Logout(ctx, refresh); err != nil {
			s.logger.Warn().Err(err).Msg("logout request failed")
		}
	}
	return s.store.Delete(ctx, models.AccessTokenKey, models.RefreshTokenKey, models.AccessTokenExpiresAtKey, models.UserNameKey)
}
