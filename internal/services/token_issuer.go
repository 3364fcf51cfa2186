package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	appErr "github.com/leadflow/server/pkg/errors"
)

// TokenIssuer issues and verifies signed, time-limited identity tokens.
// Tokens carry no server-side state; the embedded user id is the only claim
// consumers rely on.
type TokenIssuer struct {
	hmacSecret []byte
	ttl        time.Duration
}

func NewTokenIssuer(secret []byte, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{hmacSecret: secret, ttl: ttl}
}

// Issue signs a fresh token bound to the given user id.
func (i *TokenIssuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID.String(),
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	})
	signed, err := token.SignedString(i.hmacSecret)
	if err != nil {
		return "", appErr.Wrap(err, appErr.CodeInternal, "sign token failed")
	}
	return signed, nil
}

// Verify parses and validates a token and returns the embedded user id.
// Missing, malformed, expired, and bad-signature tokens all fail the same
// way.
func (i *TokenIssuer) Verify(tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, appErr.New(appErr.CodeUnauthorized, "invalid or expired token")
	}
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.hmacSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, appErr.Wrap(err, appErr.CodeUnauthorized, "invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, appErr.New(appErr.CodeUnauthorized, "invalid or expired token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, appErr.Wrap(err, appErr.CodeUnauthorized, "invalid or expired token")
	}
	return userID, nil
}
