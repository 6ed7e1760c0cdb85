package repositories

import (
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"

	"github.com/tartacosmica/chat-backend/domain"
	"github.com/tartacosmica/chat-backend/errors"
)

type IUserRepository interface {
	CreateUser(username, hashedPassword string) (domain.Account, error)
	GetUserByUsername(username string) (domain.Account, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) IUserRepository {
	return &UserRepository{db: db}
}

const userKeyPrefix = "user:"

// CreateUser persists the account under "user:{username}". The existence
// pre-check and the write share one transaction, so two concurrent
// registrations of the same name cannot both succeed.
func (u *UserRepository) CreateUser(username, hashedPassword string) (domain.Account, error) {
	account := domain.Account{
		Username:     username,
		PasswordHash: hashedPassword,
		CreatedAt:    time.Now().UnixMilli(),
	}
	data, err := cbor.Marshal(account)
	if err != nil {
		return domain.Account{}, err
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		key := []byte(userKeyPrefix + username)
		if _, err := txn.Get(key); err == nil {
			return errors.ErrUsernameTaken
		}
		return txn.Set(key, data)
	})
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

// GetUserByUsername retrieves an account by exact username match.
func (u *UserRepository) GetUserByUsername(username string) (domain.Account, error) {
	var account domain.Account
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userKeyPrefix + username))
		if err != nil {
			return err // Mapped to ErrInvalidCredentials in the service layer
		}
		return item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, &account)
		})
	})
	if err != nil {
		return domain.Account{}, err
	}
	return account, nil
}
