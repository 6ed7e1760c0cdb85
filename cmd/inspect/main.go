// Command inspect dumps the chat store as a table, one row per record.
// Useful to check what the server actually persisted without going through
// the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/fxamacker/cbor/v2"
	"github.com/olekukonko/tablewriter"

	"github.com/tartacosmica/chat-backend/domain"
)

func main() {
	dbPath := flag.String("db", "./data", "Path to badger DB")
	prefix := flag.String("prefix", "pub:", "Prefix to scan (user:, pub: or priv:)")
	flag.Parse()

	db, err := badger.Open(badger.DefaultOptions(*dbPath).
		WithReadOnly(true).
		WithLoggingLevel(badger.ERROR))
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Time", "Username", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())
			err := item.Value(func(val []byte) error {
				row, err := toRow(key, val)
				if err != nil {
					// Log and keep going instead of stopping the dump.
					fmt.Printf("Error decoding key %s: %v\n", key, err)
					return nil
				}
				table.Append(row)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func toRow(key string, val []byte) ([]string, error) {
	switch {
	case strings.HasPrefix(key, "user:"):
		var account domain.Account
		if err := cbor.Unmarshal(val, &account); err != nil {
			return nil, err
		}
		return []string{key, "USER", formatMillis(account.CreatedAt), account.Username, "registered"}, nil
	case strings.HasPrefix(key, "priv:"):
		var message domain.PrivateMessage
		if err := cbor.Unmarshal(val, &message); err != nil {
			return nil, err
		}
		return []string{key, "PRIVATE", formatMillis(message.Timestamp), message.Username, message.Message}, nil
	default:
		var message domain.PublicMessage
		if err := cbor.Unmarshal(val, &message); err != nil {
			return nil, err
		}
		kind := "PUBLIC"
		if message.IsPremium {
			kind = "PREMIUM"
		}
		return []string{key, kind, formatMillis(message.Timestamp), message.Username, message.Message}, nil
	}
}

func formatMillis(millis int64) string {
	return time.UnixMilli(millis).UTC().Format("15:04:05")
}
