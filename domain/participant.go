package domain

import "time"

// Participant is a currently connected member of the room.
// The identifier is unique among connected participants; a second live
// session with a colliding identifier is rejected at registration.
type Participant struct {
	Identifier string
	JoinedAt   time.Time
}
