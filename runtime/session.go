package runtime

import (
	"sync"
	"sync/atomic"

	"chatroom/contract"
)

type SessionState int32

const (
	StateConnecting SessionState = iota
	StateActive
	StateClosed // terminal
)

// Session is the broker-side handle for one streaming connection. The
// transport owns the connection itself; the broker only keeps a non-owning
// reference keyed by the participant identifier.
type Session struct {
	Identifier string

	sink      contract.EventSink
	state     atomic.Int32
	closeOnce sync.Once
}

func newSession(identifier string, sink contract.EventSink) *Session {
	s := &Session{Identifier: identifier, sink: sink}
	s.state.Store(int32(StateActive))
	return s
}

func (s *Session) State() SessionState {
	return SessionState(s.state.Load())
}

// close runs fn exactly once and moves the session to its terminal state,
// even when a transport-detected disconnect races an explicit leave.
func (s *Session) close(fn func()) {
	s.closeOnce.Do(func() {
		s.state.Store(int32(StateClosed))
		fn()
	})
}
