// Package domain contains core concepts of the chat room.
// Events are immutable once appended to history.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventJoin     EventType = "JOIN"
	EventLeave    EventType = "LEAVE"
	EventChat     EventType = "CHAT"
	EventUserList EventType = "USER_LIST"
)

// Event is anything the room broadcasts to connected sessions.
type Event interface {
	Kind() EventType
}

// AttachmentRef is the stable reference minted by the attachment gateway
// at upload completion. It is embedded by value in at most one ChatEvent
// and outlives it: deleting history never deletes stored bytes.
type AttachmentRef struct {
	FileID   string
	FileName string
	FileType string
	FileURL  string
}

// ChatEvent is the discriminated union over JOIN, LEAVE and CHAT.
// CreatedAt is server-assigned and monotone non-decreasing across the log.
type ChatEvent struct {
	ID         uuid.UUID
	Type       EventType
	Sender     string
	Content    string
	Attachment *AttachmentRef
	CreatedAt  time.Time
}

func (e ChatEvent) Kind() EventType { return e.Type }

// PresenceSnapshot is derived, never stored: the identifiers of the
// currently connected participants in join order. Recomputed and broadcast
// on every membership change.
type PresenceSnapshot struct {
	Users []string
}

func (PresenceSnapshot) Kind() EventType { return EventUserList }
