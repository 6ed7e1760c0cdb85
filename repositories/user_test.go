package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"github.com/tartacosmica/chat-backend/errors"
)

func Test_Create_And_Get_User(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewUserRepository(db)
	created, err := repository.CreateUser("alice", "$argon2id$fake")
	req.NoError(err)
	req.Equal("alice", created.Username)
	req.NotZero(created.CreatedAt)

	fetched, err := repository.GetUserByUsername("alice")
	req.NoError(err)
	req.Equal(created, fetched)
}

func Test_Create_User_Is_Case_Sensitive(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewUserRepository(db)
	_, err = repository.CreateUser("alice", "hash")
	req.NoError(err)

	_, err = repository.CreateUser("Alice", "hash")
	req.NoError(err)
}

func Test_Duplicate_Username_Rejected(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewUserRepository(db)
	_, err = repository.CreateUser("alice", "hash")
	req.NoError(err)

	_, err = repository.CreateUser("alice", "other-hash")
	req.ErrorIs(err, errors.ErrUsernameTaken)
}

func Test_Get_Unknown_User_Fails(t *testing.T) {
	req := require.New(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	req.NoError(err)
	defer db.Close()

	repository := NewUserRepository(db)
	_, err = repository.GetUserByUsername("nobody")
	req.Error(err)
}
