package services

import (
	"errors"
	"time"

	"spiritualgifts/models"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	ErrTokenExpired = NewUnauthorizedError("Token expired")
	ErrTokenInvalid = NewUnauthorizedError("Invalid token")
)

// Identity is what a bearer token asserts about its holder.
type Identity struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	Role     string `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type Claims struct {
	Identity
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 bearer tokens. There is no revocation:
// a token is valid until it expires.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (t *TokenIssuer) Issue(id Identity) (string, error) {
	now := t.now()
	claims := Claims{
		Identity: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

func (t *TokenIssuer) Verify(raw string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Identity.ID == 0 {
		return nil, ErrTokenInvalid
	}
	identity := claims.Identity
	return &identity, nil
}

func (t *TokenIssuer) TTL() time.Duration {
	return t.ttl
}
