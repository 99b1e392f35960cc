package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shoplist/shopping-api/internal/core/ports"
)

// TokenTTL is the fixed validity window of an issued token.
const TokenTTL = 30 * 24 * time.Hour

type tokenClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec implements ports.TokenCodec with HS256 and a single shared secret.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), now: time.Now}
}

// WithClock replaces the codec's time source.
func (c *JWTCodec) WithClock(now func() time.Time) *JWTCodec {
	c.now = now
	return c
}

func (c *JWTCodec) Issue(claims ports.TokenClaims) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("issue token: empty signing secret")
	}

	iat := c.now().UTC().Truncate(time.Second)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(TokenTTL)),
		},
	})
	return t.SignedString(c.secret)
}

func (c *JWTCodec) Verify(token string) (ports.TokenClaims, bool) {
	if token == "" || len(c.secret) == 0 {
		return ports.TokenClaims{}, false
	}

	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !parsed.Valid || claims.ID == "" {
		return ports.TokenClaims{}, false
	}

	out := ports.TokenClaims{
		UserID:    claims.ID,
		Email:     claims.Email,
		Role:      claims.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	return out, true
}
