package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"nojom_backend/internals/configs"
	"nojom_backend/internals/models"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is shared by access and refresh tokens; Type tells them apart.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func accessSecret() []byte  { return []byte(configs.JWTSecret) }
func refreshSecret() []byte { return []byte(configs.JWTRefreshSecret) }

// IssuePair signs a new access/refresh pair for user at now.
func IssuePair(user models.User, now time.Time) (TokenPair, error) {
	if len(accessSecret()) == 0 || len(refreshSecret()) == 0 {
		return TokenPair{}, errors.New("JWT secrets are not configured")
	}
	accessTTL := configs.App.Auth.AccessTTL
	refreshTTL := configs.App.Auth.RefreshTTL

	access, err := sign(Claims{
		UserID:           user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Type:             TokenTypeAccess,
		RegisteredClaims: registered(user.ID, now, accessTTL),
	}, accessSecret())
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign access: %w", err)
	}
	refresh, err := sign(Claims{
		UserID:           user.ID,
		Type:             TokenTypeRefresh,
		RegisteredClaims: registered(user.ID, now, refreshTTL),
	}, refreshSecret())
	if err != nil {
		return TokenPair{}, fmt.Errorf("sign refresh: %w", err)
	}

	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(accessTTL.Seconds()),
	}, nil
}

func registered(userID uint, now time.Time, ttl time.Duration) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}

func sign(c Claims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
}

// ParseAccess verifies signature, expiry and token type.
func ParseAccess(token string) (*Claims, error) {
	return parse(token, accessSecret(), TokenTypeAccess)
}

func ParseRefresh(token string) (*Claims, error) {
	return parse(token, refreshSecret(), TokenTypeRefresh)
}

func parse(token string, secret []byte, typ string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Type != typ || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Expiry falls back to now + refresh TTL for tokens without exp.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt != nil {
		return c.ExpiresAt.Time
	}
	return time.Now().Add(configs.App.Auth.RefreshTTL)
}
