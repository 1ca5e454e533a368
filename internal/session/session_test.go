package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pitchplease/internal/models"
	"pitchplease/internal/store"
)

type mockAuthAPI struct {
	mock.Mock
}

func (m *mockAuthAPI) Login(ctx context.Context, creds models.Credentials) (*models.Tokens, error) {
	args := m.Called(ctx, creds)
	if t := args.Get(0); t != nil {
		return t.(*models.Tokens), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAuthAPI) Register(ctx context.Context, reg models.Registration) error {
	return m.Called(ctx, reg).Error(0)
}

func (m *mockAuthAPI) Logout(ctx context.Context, refreshToken string) error {
	return m.Called(ctx, refreshToken).Error(0)
}

func (m *mockAuthAPI) GetUserID(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)})
	s, err := tok.SignedString([]byte("test"))
	require.NoError(t, err)
	return s
}

func TestLoginStoresTokens(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	api := &mockAuthAPI{}
	api.On("Login", ctx, models.Credentials{UserName: "u", Password: "p"}).
		Return(&models.Tokens{AccessToken: "a", RefreshToken: "r", AccessTokenExpiresAt: "2099-01-01T00:00:00Z"}, nil)

	s := New(st, api, nil)
	require.NoError(t, s.Login(ctx, "u", "p"))

	assert.Equal(t, "a", s.AccessToken(ctx))
	refresh, err := st.Get(ctx, models.RefreshTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "r", refresh)
	assert.True(t, s.IsAuthenticated(ctx))
	assert.Equal(t, "u", s.UserName(ctx))
	api.AssertExpectations(t)
}

func TestLoginFailure(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	api := &mockAuthAPI{}
	api.On("Login", ctx, mock.Anything).Return(nil, errors.New("http 401"))

	s := New(st, api, nil)
	assert.Error(t, s.Login(ctx, "u", "bad"))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestIsAuthenticated(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		values map[string]string
		want   bool
	}{
		{name: "no token", values: map[string]string{}, want: false},
		{name: "opaque token without expiry", values: map[string]string{models.AccessTokenKey: "opaque"}, want: true},
		{name: "expires later", values: map[string]string{models.AccessTokenKey: "x", models.AccessTokenExpiresAtKey: "2026-10-14T13:00:00Z"}, want: true},
		{name: "expired", values: map[string]string{models.AccessTokenKey: "x", models.AccessTokenExpiresAtKey: "2026-10-14T11:00:00Z"}, want: false},
		{name: "epoch millis", values: map[string]string{models.AccessTokenKey: "x", models.AccessTokenExpiresAtKey: "1000"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			for k, v := range tt.values {
				require.NoError(t, st.Set(ctx, k, v))
			}
			s := New(st, &mockAuthAPI{}, nil)
			s.now = func() time.Time { return now }
			assert.Equal(t, tt.want, s.IsAuthenticated(ctx))
		})
	}
}

func TestIsAuthenticated_JWTExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	st := store.NewMemory()
	s := New(st, &mockAuthAPI{}, nil)

	require.NoError(t, st.Set(ctx, models.AccessTokenKey, signedToken(t, now.Add(time.Hour))))
	assert.True(t, s.IsAuthenticated(ctx))

	require.NoError(t, st.Set(ctx, models.AccessTokenKey, signedToken(t, now.Add(-time.Hour))))
	assert.False(t, s.IsAuthenticated(ctx))
}

func TestUserID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	api := &mockAuthAPI{}
	s := New(st, api, nil)

	_, err := s.UserID(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	require.NoError(t, st.Set(ctx, models.AccessTokenKey, "tok"))
	api.On("GetUserID", ctx, "tok").Return("17", nil).Once()
	id, err := s.UserID(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(17), id)

	api.On("GetUserID", ctx, "tok").Return("not-a-number", nil).Once()
	_, err = s.UserID(ctx)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogoutIgnoresRemoteFailure(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	for k, v := range map[string]string{
		models.AccessTokenKey:          "a",
		models.RefreshTokenKey:         "r",
		models.AccessTokenExpiresAtKey: "2099-01-01T00:00:00Z",
	} {
		require.NoError(t, st.Set(ctx, k, v))
	}
	api := &mockAuthAPI{}
	api.On("Logout", ctx, "r").Return(errors.New("offline"))

	s := New(st, api, nil)
	require.NoError(t, s.Logout(ctx))

	assert.False(t, s.IsAuthenticated(ctx))
	assert.Empty(t, s.UserName(ctx))
	_, err := st.Get(ctx, models.RefreshTokenKey)
	assert.ErrorIs(t, err, store.ErrNotFound)
	api.AssertExpectations(t)
}

func TestParseExpiry_LocalTime(t *testing.T) {
	orig := time.Local
	time.Local = time.FixedZone("UTC+5", 5*60*60)
	t.Cleanup(func() { time.Local = orig })

	got, ok := parseExpiry("2026-10-14T12:30:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 14, 7, 30, 0, 0, time.UTC), got.UTC())

	got, ok = parseExpiry("2026-10-14T12:30:00.250")
	require.True(t, ok)
	assert.Equal(t, 250*time.Millisecond, time.Duration(got.Nanosecond()))
	assert.Equal(t, 7, got.UTC().Hour())

	got, ok = parseExpiry("2026-10-14T12:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 12, got.UTC().Hour())
}
