package core

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Claims represents the authorization claims transmitted via a JWT.
// The backend signs them; the client only reads them to know who it
// is acting as.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Session carries the bearer credential and role marker for one
// authenticated user. It is created at login and destroyed at
// logout or on any 401 response.
type Session struct {
	Token  string
	Role   string
	Claims *Claims
}

// NewSession builds a Session from a raw bearer token. The token payload
// is decoded without signature verification (the backend holds the key);
// the embedded role and expiry are only advisory on the client side.
func NewSession(token string) (*Session, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, err
	}
	return &Session{
		Token:  token,
		Role:   claims.Role,
		Claims: claims,
	}, nil
}

// Authorization returns the value for the Authorization request header.
func (s *Session) Authorization() string {
	return "Bearer " + s.Token
}

// Expired reports whether the token's expiry claim has passed.
// An expired session will be rejected with a 401 by the backend anyway;
// checking locally just saves the round trip.
func (s *Session) Expired() bool {
	if s.Claims == nil || s.Claims.ExpiresAt == 0 {
		return false
	}
	return time.Now().Unix() >= s.Claims.ExpiresAt
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}
