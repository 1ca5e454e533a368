package models

// Token keys in the transient store.
const (
	AccessTokenKey          = "accessToken"
	RefreshTokenKey         = "refreshToken"
	AccessTokenExpiresAtKey = "accessTokenExpiresAt"
	UserNameKey             = "userName"
)

// Credentials is the login body.
type Credentials struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Registration is the register body.
type Registration struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Tokens are issued by the auth service on login.
type Tokens struct {
	AccessToken          string `json:"accessToken"`
	RefreshToken         string `json:"refreshToken"`
	AccessTokenExpiresAt string `json:"accessTokenExpiresAt"`
}

// LoginResponse wraps the tokens the way the auth service does.
type LoginResponse struct {
	Response Tokens `json:"response"`
	Message  string `json:"message,omitempty"`
}

// LogoutRequest carries the refresh token to invalidate.
type LogoutRequest struct {
	Token string `json:"token"`
}
