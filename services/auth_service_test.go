package services

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/tartacosmica/chat-backend/errors"
	"github.com/tartacosmica/chat-backend/repositories"
)

func newAuthService(t *testing.T) IAuthService {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewAuthService(repositories.NewUserRepository(db), slog.Default())
}

func Test_Register_Then_Authenticate(t *testing.T) {
	req := require.New(t)
	service := newAuthService(t)

	account, err := service.Register("alice", "pass1234")
	req.NoError(err)
	req.Equal("alice", account.Username)
	req.NotEmpty(account.PasswordHash)

	authenticated, err := service.Authenticate("alice", "pass1234")
	req.NoError(err)
	req.Equal("alice", authenticated.Username)
}

func Test_Register_Trims_Username(t *testing.T) {
	req := require.New(t)
	service := newAuthService(t)

	account, err := service.Register("  alice  ", "pass1234")
	req.NoError(err)
	req.Equal("alice", account.Username)

	_, err = service.Authenticate("alice", "pass1234")
	req.NoError(err)
}

func Test_Register_Duplicate_Is_Conflict(t *testing.T) {
	req := require.New(t)
	service := newAuthService(t)

	_, err := service.Register("alice", "pass1234")
	req.NoError(err)

	_, err = service.Register("alice", "other-password")
	req.ErrorIs(err, errors.ErrUsernameTaken)
}

func Test_Register_Validation_Before_Store(t *testing.T) {
	req := require.New(t)
	service := newAuthService(t)

	_, err := service.Register("ab", "pass1234")
	req.ErrorIs(err, errors.ErrValidation)

	_, err = service.Register("alice", "abc")
	req.ErrorIs(err, errors.ErrValidation)
}

// Wrong password and unknown username must be indistinguishable so the
// login surface gives no user-enumeration signal.
func Test_Authenticate_Failures_Are_Indistinguishable(t *testing.T) {
	req := require.New(t)
	service := newAuthService(t)

	_, err := service.Register("alice", "pass1234")
	req.NoError(err)

	_, wrongPassword := service.Authenticate("alice", "wrong")
	_, unknownUser := service.Authenticate("nobody", "pass1234")
	req.ErrorIs(wrongPassword, errors.ErrInvalidCredentials)
	req.ErrorIs(unknownUser, errors.ErrInvalidCredentials)
	req.Equal(wrongPassword.Error(), unknownUser.Error())
}
