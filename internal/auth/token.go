package auth

import (
	"fmt"
	"time"

	"blogstarter/internal/config"
	"blogstarter/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenIssuer signs access tokens and refresh tokens with distinct secrets.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	expiresIn     time.Duration
	refreshIn     time.Duration
	now           func() time.Time
	parser        *jwt.Parser
}

func NewTokenIssuer(cfg config.Security) *TokenIssuer {
	i := &TokenIssuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		expiresIn:     cfg.ExpiresIn,
		refreshIn:     cfg.RefreshIn,
		now:           time.Now,
	}
	i.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return i.now() }),
	)
	return i
}

func (i *TokenIssuer) IssueAccess(userID string) (string, error) {
	return i.sign(userID, i.accessSecret, i.expiresIn)
}

func (i *TokenIssuer) IssueRefresh(userID string) (string, error) {
	return i.sign(userID, i.refreshSecret, i.refreshIn)
}

func (i *TokenIssuer) IssuePair(userID string) (models.TokenPair, error) {
	access, err := i.IssueAccess(userID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := i.IssueRefresh(userID)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("issue refresh token: %w", err)
	}
	return models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *TokenIssuer) VerifyAccess(token string) (string, error) {
	return i.verify(token, i.accessSecret)
}

func (i *TokenIssuer) VerifyRefresh(token string) (string, error) {
	return i.verify(token, i.refreshSecret)
}

// Decode reads the user id without checking signature or expiry. Callers must
// only pass tokens that were already verified earlier in the request.
func (i *TokenIssuer) Decode(token string) (string, error) {
	claims := &Claims{}
	if _, _, err := i.parser.ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("%w: token has no userId", models.ErrUnauthorized)
	}
	return claims.UserID, nil
}

func (i *TokenIssuer) sign(userID string, secret []byte, ttl time.Duration) (string, error) {
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("%w: sign token: %w", models.ErrInternal, err)
	}
	return signed, nil
}

func (i *TokenIssuer) verify(token string, secret []byte) (string, error) {
	claims := &Claims{}
	parsed, err := i.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", models.ErrUnauthorized, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return "", fmt.Errorf("%w: invalid token", models.ErrUnauthorized)
	}
	return claims.UserID, nil
}
