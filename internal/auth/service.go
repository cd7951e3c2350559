// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelamos/kol-backend/internal/core"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
)

type Service struct {
	repo   Repository
	tokens *TokenManager
}

func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register rejects a taken username, hashes the password, and stores the
// credential. The check-then-put sequence is not atomic; two concurrent
// registrations of the same username can race (accepted behavior).
func (s *Service) Register(ctx context.Context, username, password string) error {
	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return ErrUsernameExists
	}
	if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("check username: %w", err)
	}

	hash, err := core.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// Login verifies the credential and issues a bearer token. Unknown username
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	username, password string,
) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.CreateToken(user.Username)
	if err != nil {
		return "", fmt.Errorf("create token: %w", err)
	}

	return token, nil
}
