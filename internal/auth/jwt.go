// Package auth provides password hashing, JWT issuance/validation, and the
// bearer-token middleware for the snippet API.
//
// Tokens are stateless: everything needed to authenticate a request (subject
// user ID, expiry, token type) lives inside the signed token. There is no
// server-side session store and no revocation list — a leaked token stays
// valid until it expires. That trade-off is deliberate.
//
// Two token kinds are issued as a pair on login:
//
//	access  — 24 hours, sent as "Authorization: Bearer <token>" on API calls
//	refresh — 30 days, exchanged at /api/auth/refresh for a fresh pair
//
// The kind is carried in a "type" claim so a refresh token can never be used
// to call the API directly, and vice versa.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour

	issuer = "code-snippet"
)

// TokenService signs and verifies JWTs with a shared HMAC secret.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService. The secret should be at least
// 32 bytes of random data in production (e.g. openssl rand -hex 32).
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the standard registered claims plus the
// access/refresh type discriminator.
type claims struct {
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// GenerateAccess issues a 24-hour access token for the given user ID.
func (s *TokenService) GenerateAccess(userID string) (string, error) {
	return s.generate(userID, TokenTypeAccess, AccessTokenTTL)
}

// GenerateRefresh issues a 30-day refresh token for the given user ID.
func (s *TokenService) GenerateRefresh(userID string) (string, error) {
	return s.generate(userID, TokenTypeRefresh, RefreshTokenTTL)
}

// GenerateWithDuration issues a token of the given type with a custom
// lifetime. Used by tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(userID, tokenType string, d time.Duration) (string, error) {
	return s.generate(userID, tokenType, d)
}

func (s *TokenService) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

// Validate parses and verifies a token and checks it has the wanted type.
// Returns the user ID from the subject claim.
//
// A tampered signature, an expired token, a missing subject, and a wrong
// token type are all plain errors here; callers collapse them into a single
// "not authenticated" answer so the failure mode is never distinguishable
// from outside.
//
// jwt.WithValidMethods pins the algorithm to HS256, which closes the
// algorithm-confusion hole where an attacker substitutes "none" or an
// asymmetric scheme.
func (s *TokenService) Validate(tokenStr, wantType string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}
	if c.TokenType != wantType {
		return "", fmt.Errorf("auth: token type %q, want %q", c.TokenType, wantType)
	}
	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
