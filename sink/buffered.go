// Package sink provides per-recipient delivery buffers between the room
// broadcast and the transport write loop.
package sink

import (
	"context"
	"sync/atomic"

	"chatroom/domain"
)

// Buffered decouples the broadcast from the slowest consumer with a bounded
// channel. When the buffer is full the oldest buffered event is dropped and
// the gap is surfaced through Dropped; the recipient is never disconnected
// for being slow.
type Buffered struct {
	events  chan domain.Event
	dropped atomic.Uint64
}

func NewBuffered(size int) *Buffered {
	return &Buffered{events: make(chan domain.Event, size)}
}

// Consume is called by the broker fan-out. It never blocks on a stalled
// recipient: a full buffer sheds its oldest entry instead.
func (s *Buffered) Consume(ctx context.Context, e domain.Event) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case s.events <- e:
			return nil
		default:
		}
		select {
		case <-s.events:
			s.dropped.Add(1)
		default:
		}
	}
}

// Events is drained by the transport write loop.
func (s *Buffered) Events() <-chan domain.Event {
	return s.events
}

// Dropped reports how many buffered events were shed due to overflow.
func (s *Buffered) Dropped() uint64 {
	return s.dropped.Load()
}
