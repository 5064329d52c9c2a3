package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"chatroom/contract"
	"chatroom/domain"
	"chatroom/errors"
	"chatroom/repositories"
)

// Broker turns inbound client intents into validated, enriched, broadcast
// and logged events. Join, chat and leave all run under the room mutex,
// which gives a single total order for history appends and broadcasts.
//
// Slow recipients cannot stall the room: sinks are non-blocking by contract,
// so holding the mutex across a fan-out stays cheap.
type Broker struct {
	mu       sync.Mutex
	log      *slog.Logger
	registry contract.IRegistry
	history  repositories.IHistory
	lastAt   time.Time
}

func NewBroker(log *slog.Logger, registry contract.IRegistry, history repositories.IHistory) *Broker {
	return &Broker{log: log, registry: registry, history: history}
}

// Join moves a connection from Connecting to Active. On success the new
// session alone receives JOIN notices for the members already present, then
// the room receives the JOIN event and the refreshed presence snapshot.
// On a duplicate identifier nothing is appended or broadcast.
func (b *Broker) Join(ctx context.Context, identifier string, sink contract.EventSink) (*Session, error) {
	if identifier == "" {
		return nil, errors.ErrMalformedIntent
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	existing := b.registry.Snapshot()
	if err := b.registry.Register(identifier, sink); err != nil {
		return nil, err
	}

	// Targeted backfill so the newcomer sees who was already in the room.
	for _, member := range existing {
		notice := domain.ChatEvent{
			ID:        uuid.New(),
			Type:      domain.EventJoin,
			Sender:    member,
			Content:   fmt.Sprintf("%s joined!", member),
			CreatedAt: time.Now().UTC(),
		}
		if err := sink.Consume(ctx, notice); err != nil {
			b.log.Warn("backfill delivery failed", "identifier", identifier, "error", err)
		}
	}

	evt := b.stamp(domain.ChatEvent{
		ID:      uuid.New(),
		Type:    domain.EventJoin,
		Sender:  identifier,
		Content: fmt.Sprintf("%s joined!", identifier),
	})
	b.append(evt)
	b.broadcast(ctx, evt)
	b.broadcast(ctx, domain.PresenceSnapshot{Users: b.registry.Snapshot()})

	b.log.Info("participant joined", "identifier", identifier)
	return newSession(identifier, sink), nil
}

// Chat validates, enriches, appends and broadcasts a CHAT intent. The sender
// must match the session's registered identifier, and an entirely empty
// message (no content, no attachment) is rejected before any side effect.
func (b *Broker) Chat(ctx context.Context, s *Session, intent domain.Intent) error {
	if s.State() != StateActive {
		return errors.ErrSessionClosed
	}
	if intent.Sender != s.Identifier {
		return errors.ErrSenderMismatch
	}
	attachment := intent.AttachmentRef()
	if intent.Content == "" && attachment == nil {
		return errors.ErrEmptyMessage
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	evt := b.stamp(domain.ChatEvent{
		ID:         uuid.New(),
		Type:       domain.EventChat,
		Sender:     s.Identifier,
		Content:    intent.Content,
		Attachment: attachment,
	})
	b.append(evt)
	// The sender receives its own echo: that confirms delivery and ordering
	// from the server's vantage point.
	b.broadcast(ctx, evt)
	return nil
}

// Leave moves the session to Closed exactly once, whether triggered by an
// explicit LEAVE intent or a transport-detected disconnect.
func (b *Broker) Leave(ctx context.Context, s *Session) {
	s.close(func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		b.registry.Unregister(s.Identifier)

		evt := b.stamp(domain.ChatEvent{
			ID:      uuid.New(),
			Type:    domain.EventLeave,
			Sender:  s.Identifier,
			Content: fmt.Sprintf("%s left!", s.Identifier),
		})
		b.append(evt)
		b.broadcast(ctx, evt)
		b.broadcast(ctx, domain.PresenceSnapshot{Users: b.registry.Snapshot()})

		b.log.Info("participant left", "identifier", s.Identifier)
	})
}

// stamp assigns the server timestamp. Caller holds the room mutex, so the
// log clock is monotone non-decreasing even if the wall clock steps back.
func (b *Broker) stamp(evt domain.ChatEvent) domain.ChatEvent {
	now := time.Now().UTC()
	if now.Before(b.lastAt) {
		now = b.lastAt
	}
	b.lastAt = now
	evt.CreatedAt = now
	return evt
}

func (b *Broker) append(evt domain.ChatEvent) {
	if err := b.history.Append(evt); err != nil {
		b.log.Error("history append failed", "type", evt.Type, "sender", evt.Sender, "error", err)
	}
}

func (b *Broker) broadcast(ctx context.Context, e domain.Event) {
	for _, snk := range b.registry.Sinks() {
		if err := snk.Consume(ctx, e); err != nil {
			b.log.Warn("event delivery failed", "type", e.Kind(), "error", err)
		}
	}
}
