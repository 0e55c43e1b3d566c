// Package idgen generates identifiers for participants and speech events.
package idgen

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewParticipantID returns a lexically sortable ULID. Participant ids are
// assigned at connect time and double as a stable tiebreaker for roster
// ordering.
func NewParticipantID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now().UTC()), entropy).String()
}

// NewEventID returns a correlation id for a speech event.
func NewEventID() string {
	return uuid.New().String()
}
