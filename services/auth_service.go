//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"log/slog"
	"strings"
	"time"

	"chatroom/auth"
	"chatroom/errors"
	"chatroom/repositories"
)

type IAuthService interface {
	Login(username, password string) (LoginResult, error)
	Seed(users map[string]string) error
}

type LoginResult struct {
	Username string
	Token    string
}

// AuthService resolves login to an accepted/rejected outcome. Credentials
// never travel past this boundary.
type AuthService struct {
	users    repositories.IUserRepository
	tokenKey []byte
	tokenTTL time.Duration
	log      *slog.Logger
}

func NewAuthService(log *slog.Logger, users repositories.IUserRepository, tokenKey []byte, tokenTTL time.Duration) *AuthService {
	return &AuthService{users: users, tokenKey: tokenKey, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Login(username, password string) (LoginResult, error) {
	if err := auth.ValidateLogin(auth.LoginRequest{Username: username, Password: password}); err != nil {
		return LoginResult{}, errors.ErrMissingCredentials
	}
	username = strings.TrimSpace(username)

	user, err := s.users.Get(username)
	if err != nil {
		// A missing user and a wrong password are indistinguishable to the
		// caller.
		return LoginResult{}, errors.ErrInvalidCredentials
	}
	ok, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !ok {
		return LoginResult{}, errors.ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.tokenKey, username, s.tokenTTL)
	if err != nil {
		return LoginResult{}, err
	}
	s.log.Info("login accepted", "username", username)
	return LoginResult{Username: username, Token: token}, nil
}

// Seed creates demo accounts at startup. Existing usernames are skipped so
// restarts stay idempotent.
func (s *AuthService) Seed(users map[string]string) error {
	for username, password := range users {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return err
		}
		if err := s.users.Create(username, hash); err != nil {
			if err == errors.ErrUserAlreadyExists {
				continue
			}
			return err
		}
		s.log.Info("seeded user", "username", username)
	}
	return nil
}
