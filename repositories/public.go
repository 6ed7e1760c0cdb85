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

type IPublicMessageRepository interface {
	Append(message domain.PublicMessage) (domain.PublicMessage, error)
	List(limit int) ([]domain.PublicMessage, error)
	CurrentPremium() (*domain.PublicMessage, error)
	ClearAll() (int, error)
	ScanRecent(fn func(domain.PublicMessage) (bool, error)) error
}

type PublicMessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewPublicMessageRepository(db *badger.DB, log *slog.Logger) IPublicMessageRepository {
	return &PublicMessageRepository{db: db, log: log}
}

const publicKeyPrefix = "pub:"

// publicKey formats "pub:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order).
//  2. Prevent data loss by using UUID as a collision disconnector if two
//     messages arrive in the same millisecond.
func publicKey(message domain.PublicMessage) []byte {
	return fmt.Appendf(nil, "%s%019d:%s", publicKeyPrefix, message.Timestamp, message.ID)
}

// Append stores a room message and returns it with its generated id.
// A premium append replaces the broadcast slot: every premium record still
// in the log is deleted in the same transaction that inserts the new one,
// so the singleton invariant holds at every commit point and the latest
// successful premium send wins.
func (r *PublicMessageRepository) Append(message domain.PublicMessage) (domain.PublicMessage, error) {
	message.ID = uuid.NewString()
	data, err := cbor.Marshal(message)
	if err != nil {
		return domain.PublicMessage{}, err
	}

	err = r.db.Update(func(txn *badger.Txn) error {
		if message.IsPremium {
			if err := deletePremium(txn); err != nil {
				return err
			}
		}
		return txn.Set(publicKey(message), data)
	})
	if err != nil {
		return domain.PublicMessage{}, err
	}
	return message, nil
}

// deletePremium removes every premium record visible to txn. Keys are
// collected first: badger forbids deleting under a live iterator.
func deletePremium(txn *badger.Txn) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	prefix := []byte(publicKeyPrefix)
	var stale [][]byte
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		item := it.Item()
		var message domain.PublicMessage
		err := item.Value(func(val []byte) error {
			return cbor.Unmarshal(val, &message)
		})
		if err != nil {
			it.Close()
			return err
		}
		if message.IsPremium {
			stale = append(stale, item.KeyCopy(nil))
		}
	}
	it.Close()

	for _, key := range stale {
		if err := txn.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

// List returns the most recent `limit` messages in ascending timestamp
// order. When more messages exist than the limit, the oldest ones are
// dropped from the result, not from the log.
func (r *PublicMessageRepository) List(limit int) ([]domain.PublicMessage, error) {
	var messages []domain.PublicMessage
	err := r.ScanRecent(func(message domain.PublicMessage) (bool, error) {
		messages = append(messages, message)
		return limit <= 0 || len(messages) < limit, nil
	})
	if err != nil {
		return nil, err
	}
	lo.Reverse(messages)
	return messages, nil
}

// CurrentPremium returns the most recently timestamped premium record, or
// nil when the slot is empty. Recency is a defensive tie-break on top of
// the singleton invariant enforced by Append.
func (r *PublicMessageRepository) CurrentPremium() (*domain.PublicMessage, error) {
	var premium *domain.PublicMessage
	err := r.ScanRecent(func(message domain.PublicMessage) (bool, error) {
		if !message.IsPremium {
			return true, nil
		}
		premium = &message
		return false, nil
	})
	if err != nil {
		return nil, err
	}
	return premium, nil
}

// ClearAll wipes the whole public log and reports how many records were
// removed.
func (r *PublicMessageRepository) ClearAll() (int, error) {
	deleted := 0
	err := r.db.Update(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		it := txn.NewIterator(options)
		prefix := []byte(publicKeyPrefix)
		var keys [][]byte
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		it.Close()

		for _, key := range keys {
			if err := txn.Delete(key); err != nil {
				return err
			}
		}
		deleted = len(keys)
		return nil
	})
	return deleted, err
}

// ScanRecent streams the log newest first. Thanks to the padded timestamp
// in the key, reverse iteration order is reverse chronological order. The
// callback returns false to stop the scan early.
func (r *PublicMessageRepository) ScanRecent(fn func(domain.PublicMessage) (bool, error)) error {
	return r.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		prefix := []byte(publicKeyPrefix)
		// Seek past the last possible key of the prefix, then walk back.
		seekKey := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seekKey); it.ValidForPrefix(prefix); it.Next() {
			var message domain.PublicMessage
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
