package repositories

import (
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/tartacosmica/chat-backend/domain"
)

func openPublicRepository(t *testing.T) IPublicMessageRepository {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPublicMessageRepository(db, slog.Default())
}

func Test_Append_And_List_Ascending(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	for _, message := range []domain.PublicMessage{
		{Username: "alice", Message: "first", Timestamp: 1},
		{Username: "bob", Message: "second", Timestamp: 2},
		{Username: "alice", Message: "third", Timestamp: 3},
	} {
		stored, err := repository.Append(message)
		req.NoError(err)
		req.NotEmpty(stored.ID)
	}

	messages, err := repository.List(100)
	req.NoError(err)
	req.Equal([]string{"first", "second", "third"},
		lo.Map(messages, func(m domain.PublicMessage, _ int) string { return m.Message }))
}

func Test_List_Keeps_Most_Recent_When_Limited(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	for ts := int64(1); ts <= 5; ts++ {
		_, err := repository.Append(domain.PublicMessage{Username: "alice", Message: "m", Timestamp: ts})
		req.NoError(err)
	}

	messages, err := repository.List(2)
	req.NoError(err)
	req.Len(messages, 2)
	// The two most recent, still in ascending order.
	req.Equal(int64(4), messages[0].Timestamp)
	req.Equal(int64(5), messages[1].Timestamp)
}

func Test_List_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	for ts := int64(1); ts <= 3; ts++ {
		_, err := repository.Append(domain.PublicMessage{Username: "alice", Message: "m", Timestamp: ts})
		req.NoError(err)
	}

	first, err := repository.List(100)
	req.NoError(err)
	second, err := repository.List(100)
	req.NoError(err)
	req.Equal(first, second)
}

func Test_Premium_Append_Replaces_Previous_Premium(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	_, err := repository.Append(domain.PublicMessage{Username: "ads", Message: "A", Timestamp: 1, IsPremium: true})
	req.NoError(err)
	_, err = repository.Append(domain.PublicMessage{Username: "ads", Message: "B", Timestamp: 2, IsPremium: true})
	req.NoError(err)

	messages, err := repository.List(100)
	req.NoError(err)
	req.Len(messages, 1)
	req.Equal("B", messages[0].Message)

	premium, err := repository.CurrentPremium()
	req.NoError(err)
	req.NotNil(premium)
	req.Equal("B", premium.Message)
}

func Test_Premium_Replace_Leaves_Room_Messages_Alone(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	_, err := repository.Append(domain.PublicMessage{Username: "alice", Message: "hello", Timestamp: 1})
	req.NoError(err)
	_, err = repository.Append(domain.PublicMessage{Username: "ads", Message: "A", Timestamp: 2, IsPremium: true})
	req.NoError(err)
	_, err = repository.Append(domain.PublicMessage{Username: "ads", Message: "B", Timestamp: 3, IsPremium: true})
	req.NoError(err)

	messages, err := repository.List(100)
	req.NoError(err)
	req.Len(messages, 2)
	req.Equal("hello", messages[0].Message)
	req.Equal("B", messages[1].Message)
}

func Test_Current_Premium_Empty_Slot(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	_, err := repository.Append(domain.PublicMessage{Username: "alice", Message: "not premium", Timestamp: 1})
	req.NoError(err)

	premium, err := repository.CurrentPremium()
	req.NoError(err)
	req.Nil(premium)
}

func Test_Clear_All_Reports_Count(t *testing.T) {
	req := require.New(t)
	repository := openPublicRepository(t)

	for ts := int64(1); ts <= 4; ts++ {
		_, err := repository.Append(domain.PublicMessage{Username: "alice", Message: "m", Timestamp: ts})
		req.NoError(err)
	}

	deleted, err := repository.ClearAll()
	req.NoError(err)
	req.Equal(4, deleted)

	messages, err := repository.List(100)
	req.NoError(err)
	req.Empty(messages)

	deleted, err = repository.ClearAll()
	req.NoError(err)
	req.Zero(deleted)
}
