// Package stt streams audio to an external speech recognition service and
// yields incremental transcript results. Recognition is optional: the
// gateway only opens a session when a service is configured, and a failed
// session stops speech events for that connection without touching
// membership.
package stt

import "context"

// Result is one incremental recognition result. Interim results (IsFinal
// false) may still change; a final result closes out the utterance.
type Result struct {
	Text    string
	IsFinal bool
}

// Session is one live recognition stream bound to a single connection.
type Session interface {
	// SendAudio forwards one chunk of encoded audio to the recognizer.
	SendAudio(data []byte) error
	// Results yields transcript results until the session ends. The channel
	// is closed when the upstream connection closes or errors.
	Results() <-chan Result
	// Close tears the session down. Safe to call more than once.
	Close() error
}

// Service opens recognition sessions against the external collaborator.
type Service interface {
	Start(ctx context.Context, language string) (Session, error)
}
