// Package identity verifies the bearer tokens issued by the external identity
// provider. Sign-in happens elsewhere; this side only reads claims.
package identity

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// User is the authenticated caller.
type User struct {
	ID        string
	Email     string
	FullName  string
	AvatarURL string
	CreatedAt time.Time // zero when the token does not carry it
}

// DisplayName returns the full name, else the local part of the email, else
// "User".
func (u User) DisplayName() string {
	if n := strings.TrimSpace(u.FullName); n != "" {
		return n
	}
	if local, _, ok := strings.Cut(u.Email, "@"); ok && local != "" {
		return local
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return u.Email
	}
	return "User"
}

type userMetadata struct {
	FullName  string `json:"full_name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

type claims struct {
	Email        string           `json:"email,omitempty"`
	UserMetadata userMetadata     `json:"user_metadata"`
	CreatedAt    *jwt.NumericDate `json:"created_at,omitempty"`
	jwt.RegisteredClaims
}

type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

// Verify checks an HS256 token and returns its user. Expired tokens and tokens
// without a subject are rejected.
func (v *Verifier) Verify(tokenStr string) (User, error) {
	var c claims
	t, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil || !t.Valid {
		return User{}, ErrInvalidToken
	}
	if c.Subject == "" {
		return User{}, ErrInvalidToken
	}

	u := User{
		ID:        c.Subject,
		Email:     c.Email,
		FullName:  c.UserMetadata.FullName,
		AvatarURL: c.UserMetadata.AvatarURL,
	}
	if c.CreatedAt != nil {
		u.CreatedAt = c.CreatedAt.Time.UTC()
	}
	return u, nil
}

// Sign issues a token for u valid for ttl. Used by tests and local tooling.
func (v *Verifier) Sign(u User, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		Email:        u.Email,
		UserMetadata: userMetadata{FullName: u.FullName, AvatarURL: u.AvatarURL},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	if !u.CreatedAt.IsZero() {
		c.CreatedAt = jwt.NewNumericDate(u.CreatedAt)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}
