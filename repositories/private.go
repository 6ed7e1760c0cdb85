package repositories

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/tartacosmica/chat-backend/domain"
)

type IPrivateMessageRepository interface {
	Append(message domain.PrivateMessage) (domain.PrivateMessage, error)
	List(chatID string, limit int) ([]domain.PrivateMessage, error)
	ScanRecent(fn func(domain.PrivateMessage) (bool, error)) error
}

type PrivateMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPrivateMessageRepository(db *badger.DB, log *slog.Logger) IPrivateMessageRepository {
	return &PrivateMessageRepository{db: db, log: log}
}

const privateKeyPrefix = "priv:"

// privateKey formats "priv:{chatId}:{timestamp_padded}:{uuid}" so that one
// conversation is a contiguous, chronologically sorted key range.
func privateKey(message domain.PrivateMessage) []byte {
	return fmt.Appendf(nil, "%s%s:%019d:%s",
		privateKeyPrefix, message.ChatID, message.Timestamp, message.ID)
}

// Append stores a private message and returns it with its generated id.
func (r *PrivateMessageRepository) Append(message domain.PrivateMessage) (domain.PrivateMessage, error) {
	message.ID = uuid.NewString()
	data, err := cbor.Marshal(message)
	if err != nil {
		return domain.PrivateMessage{}, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(privateKey(message), data)
	})
	if err != nil {
		return domain.PrivateMessage{}, err
	}
	return message, nil
}

// List returns the most recent `limit` messages of one conversation in
// ascending timestamp order, same truncation semantics as the public log.
func (r *PrivateMessageRepository) List(chatID string, limit int) ([]domain.PrivateMessage, error) {
	var messages []domain.PrivateMessage
	err := r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(privateKeyPrefix + chatID + ":")
		seekKey := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				break
			}
			var message domain.PrivateMessage
			err := it.Item().Value(func(val []byte) error {
				return cbor.Unmarshal(val, &message)
			})
			if err != nil {
				return err
			}
			messages = append(messages, message)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	lo.Reverse(messages)
	return messages, nil
}

// ScanRecent streams the whole private log, one conversation at a time,
// newest message first within each conversation. Cross-conversation order
// is key order, not time order; projections that need a global time order
// sort their groups afterwards. The callback returns false to stop.
func (r *PrivateMessageRepository) ScanRecent(fn func(domain.PrivateMessage) (bool, error)) error {
	return r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(privateKeyPrefix)
		seekKey := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var message domain.PrivateMessage
			err := it.Item().Value(func(val []byte) error {
				return cbor.Unmarshal(val, &message)
			})
			if err != nil {
				return err
			}
			keep, err := fn(message)
			if err != nil {
				return err
			}
			if !keep {
				return nil
			}
		}
		return nil
	})
}
