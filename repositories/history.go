//go:generate go run go.uber.org/mock/mockgen -source=history.go -destination=../mocks/mock_history.go -package=mocks
package repositories

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"chatroom/domain"
)

type IHistory interface {
	Append(evt domain.ChatEvent) error
	Query(from, to time.Time) ([]domain.ChatEvent, error)
}

// History is the append-only room log on BadgerDB.
// The key is formatted as "evt:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding
//     (lexicographical order equals time order).
//  2. Prevent data loss by using UUID as a collision disconnector if two
//     events carry the same nanosecond.
type History struct {
	db  *badger.DB
	log *slog.Logger
}

func NewHistory(db *badger.DB, log *slog.Logger) History {
	return History{db: db, log: log}
}

// record is the stored shape. Attachment fields are flattened so a record
// without an attachment stays small.
type record struct {
	ID       string    `json:"id"`
	Type     string    `json:"type"`
	Sender   string    `json:"sender"`
	Content  string    `json:"content,omitempty"`
	At       time.Time `json:"at"`
	FileID   string    `json:"fileId,omitempty"`
	FileName string    `json:"fileName,omitempty"`
	FileType string    `json:"fileType,omitempty"`
	FileURL  string    `json:"fileUrl,omitempty"`
}

// Append persists an event in receipt order. A well-formed event is never
// rejected; a missing timestamp is assigned on the way in.
func (h History) Append(evt domain.ChatEvent) error {
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	if evt.ID == uuid.Nil {
		evt.ID = uuid.New()
	}
	key := fmt.Sprintf("evt:%019d:%s", evt.CreatedAt.UnixNano(), evt.ID)
	data, err := json.Marshal(toRecord(evt))
	if err != nil {
		return err
	}
	return h.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// Query returns the CHAT events with from <= timestamp <= to in ascending
// timestamp order. JOIN and LEAVE entries are ephemeral presence signals and
// are filtered out. The whole scan runs inside one View transaction, so a
// concurrent Append never tears the result: callers see a consistent prefix
// of the log as of call time.
func (h History) Query(from, to time.Time) ([]domain.ChatEvent, error) {
	if to.Before(from) {
		return nil, nil
	}
	// Padded keys assume non-negative nanoseconds; clamp pre-epoch bounds.
	if epoch := time.Unix(0, 0); from.Before(epoch) {
		from = epoch
	}
	lower := []byte(fmt.Sprintf("evt:%019d:", from.UnixNano()))
	upper := []byte(fmt.Sprintf("evt:%019d:", to.UnixNano()+1))

	var events []domain.ChatEvent
	err := h.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(lower); it.Valid(); it.Next() {
			item := it.Item()
			if bytes.Compare(item.Key(), upper) >= 0 {
				break
			}
			var rec record
			if err := item.Value(func(value []byte) error {
				return json.Unmarshal(value, &rec)
			}); err != nil {
				return err
			}
			if rec.Type != string(domain.EventChat) {
				continue
			}
			evt, err := fromRecord(rec)
			if err != nil {
				return err
			}
			events = append(events, evt)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func toRecord(evt domain.ChatEvent) record {
	rec := record{
		ID:      evt.ID.String(),
		Type:    string(evt.Type),
		Sender:  evt.Sender,
		Content: evt.Content,
		At:      evt.CreatedAt,
	}
	if evt.Attachment != nil {
		rec.FileID = evt.Attachment.FileID
		rec.FileName = evt.Attachment.FileName
		rec.FileType = evt.Attachment.FileType
		rec.FileURL = evt.Attachment.FileURL
	}
	return rec
}

func fromRecord(rec record) (domain.ChatEvent, error) {
	parsedID, err := uuid.Parse(rec.ID)
	if err != nil {
		return domain.ChatEvent{}, err
	}
	evt := domain.ChatEvent{
		ID:        parsedID,
		Type:      domain.EventType(rec.Type),
		Sender:    rec.Sender,
		Content:   rec.Content,
		CreatedAt: rec.At,
	}
	if rec.FileID != "" {
		evt.Attachment = &domain.AttachmentRef{
			FileID:   rec.FileID,
			FileName: rec.FileName,
			FileType: rec.FileType,
			FileURL:  rec.FileURL,
		}
	}
	return evt, nil
}
