// Package service contains the business logic layer. Handlers parse HTTP
// and delegate here; services validate, enforce ownership, and orchestrate
// repository calls. Services depend on the repository interfaces, not on
// the sqlite package.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gupta-8/code-snippet/internal/apperror"
	"github.com/gupta-8/code-snippet/internal/auth"
	"github.com/gupta-8/code-snippet/internal/model"
	"github.com/gupta-8/code-snippet/internal/repository"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
)

// TokenPair is what every successful authentication returns.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
}

// AuthService owns signup, login, token refresh, and access-token
// verification for the request middleware.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Signup registers a new account. Usernames are case-insensitive: the
// stored form is always lowercase, so "Alice" and "alice" collide.
func (s *AuthService) Signup(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if len(username) < MinUsernameLength || len(username) > MaxUsernameLength {
		return nil, nil, apperror.ValidationFailed("username",
			fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength))
	}
	if len(password) < MinPasswordLength {
		return nil, nil, apperror.ValidationFailed("password",
			fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{Username: username, PasswordHash: hash}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user signed up", "user_id", user.ID, "username", user.Username)
	return user, pair, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords get
// the same error so the response does not leak which accounts exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, *TokenPair, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, nil, apperror.Unauthorized()
	}
	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		return nil, nil, apperror.Unauthorized()
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh token pair. Both
// tokens rotate; the old refresh token keeps working until it expires.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.Validate(refreshToken, auth.TokenTypeRefresh)
	if err != nil {
		return nil, apperror.Unauthorized()
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, apperror.Unauthorized()
	}
	return s.issueTokens(userID)
}

// Authenticate verifies an access token and confirms the subject still
// exists. The auth middleware calls this on every protected request.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (string, error) {
	userID, err := s.tokens.Validate(accessToken, auth.TokenTypeAccess)
	if err != nil {
		return "", apperror.Unauthorized()
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return "", apperror.Unauthorized()
	}
	return userID, nil
}

// GetUserByID backs the /api/auth/me endpoint.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

// LoginOrRegisterGitHub upserts the account for a GitHub profile and
// issues the same token pair password logins get. Accounts created this
// way have no password; their username derives from the GitHub login.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, gh *auth.GitHubUser) (*model.User, *TokenPair, error) {
	user := &model.User{
		Username: strings.ToLower(gh.Login),
		GitHubID: gh.ID,
	}
	if err := s.users.UpsertUserByGitHubID(ctx, user); err != nil {
		return nil, nil, fmt.Errorf("upserting github user: %w", err)
	}

	pair, err := s.issueTokens(user.ID)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info("github sign-in", "user_id", user.ID, "github_id", gh.ID)
	return user, pair, nil
}

func (s *AuthService) issueTokens(userID string) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("generating access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("generating refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: "bearer"}, nil
}
