package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"chatroom/auth"
	"chatroom/errors"
	"chatroom/repositories"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAuthService(slog.Default(), repositories.NewUserRepository(db),
		[]byte("test-signing-key"), time.Hour)
}

func TestAuthService_Login_Accepted(t *testing.T) {
	req := require.New(t)
	service := newTestAuth(t)
	req.NoError(service.Seed(map[string]string{"alice": "wonderland"}))

	result, err := service.Login("alice", "wonderland")

	req.NoError(err)
	req.Equal("alice", result.Username)
	claims, err := auth.ValidateToken([]byte("test-signing-key"), result.Token)
	req.NoError(err)
	req.Equal("alice", claims.Username)
}

func TestAuthService_Login_Wrong_Password(t *testing.T) {
	req := require.New(t)
	service := newTestAuth(t)
	req.NoError(service.Seed(map[string]string{"alice": "wonderland"}))

	_, err := service.Login("alice", "looking-glass")

	req.ErrorIs(err, errors.ErrInvalidCredentials)
}

func TestAuthService_Login_Unknown_User(t *testing.T) {
	req := require.New(t)
	service := newTestAuth(t)

	_, err := service.Login("ghost", "boo")

	req.ErrorIs(err, errors.ErrInvalidCredentials)
}

func TestAuthService_Login_Missing_Credentials(t *testing.T) {
	req := require.New(t)
	service := newTestAuth(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"both empty", "", ""},
		{"blank username", "   ", "secret"},
		{"blank password", "alice", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Login(tt.username, tt.password)
			req.ErrorIs(err, errors.ErrMissingCredentials)
		})
	}
}

func TestAuthService_Seed_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	service := newTestAuth(t)
	users := map[string]string{"alice": "wonderland"}

	req.NoError(service.Seed(users))
	req.NoError(service.Seed(users))

	_, err := service.Login("alice", "wonderland")
	req.NoError(err)
}
