//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"

	"chatroom/domain"
)

// EventSink receives broadcast events for one recipient. Implementations
// must not block the caller: the broker fans out under its room lock.
type EventSink interface {
	Consume(ctx context.Context, e domain.Event) error
}

// IRegistry tracks the connected participants and their delivery sinks.
type IRegistry interface {
	Register(identifier string, sink EventSink) error
	Unregister(identifier string)
	Snapshot() []string
	Sinks() []EventSink
}
