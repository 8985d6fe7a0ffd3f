package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWT signs and verifies the HS256 tokens guarding the admin dashboard.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// NewJWT creates a new JWT signer/verifier.
// Parameters:
//   - secret: HMAC signing secret.
//   - ttl: token lifetime; 0 defaults to 7 days.
// Returns:
//   - *JWT: initialized signer.
func NewJWT(secret string, ttl time.Duration) *JWT {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &JWT{secret: []byte(secret), ttl: ttl}
}

// Sign issues a token for the given user ID.
// Parameters:
//   - userID: subject claim value.
// Returns:
//   - string: signed token.
//   - error: non-nil if signing fails.
func (j *JWT) Sign(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(j.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(j.secret)
}

// Verify validates a token and extracts the user ID.
// Parameters:
//   - tokenStr: bearer token from the Authorization header.
// Returns:
//   - string: subject user ID.
//   - error: non-nil if the token is invalid or expired.
func (j *JWT) Verify(tokenStr string) (string, error) {
	t, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil || !t.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("missing sub")
	}
	return sub, nil
}
