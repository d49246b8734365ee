package authsvc

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/chirper/social-system/internal/core/domain"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expiry. Callers never learn which, by design of the
// validate-token contract.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs and verifies the HS256 tokens the gateway passes
// around. Claims carry the full identity so validation needs no DB hit.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given identity.
func (i *TokenIssuer) Issue(claim domain.IdentityClaim) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      claim.SubjectID,
		"idHash":   claim.IDHash,
		"username": claim.Username,
		"role":     claim.Role,
		"iat":      now.Unix(),
		"exp":      now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Verify parses and validates a token, returning the embedded identity.
func (i *TokenIssuer) Verify(token string) (domain.IdentityClaim, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return domain.IdentityClaim{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.IdentityClaim{}, ErrInvalidToken
	}

	claim := domain.IdentityClaim{
		SubjectID: stringClaim(claims, "sub"),
		IDHash:    stringClaim(claims, "idHash"),
		Username:  stringClaim(claims, "username"),
		Role:      stringClaim(claims, "role"),
	}
	if !claim.Valid() {
		return domain.IdentityClaim{}, ErrInvalidToken
	}
	return claim, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
