package stt

import (
	"context"
	"sync"
)

// StubService replays a scripted sequence of results, one per audio chunk
// received. Used in tests.
type StubService struct {
	Script []Result
}

type stubSession struct {
	script    []Result
	next      int
	mu        sync.Mutex
	results   chan Result
	closeOnce sync.Once
}

// Start opens a session over the scripted results.
func (s *StubService) Start(_ context.Context, _ string) (Session, error) {
	return &stubSession{
		script:  s.Script,
		results: make(chan Result, len(s.Script)+1),
	}, nil
}

// SendAudio emits the next scripted result, ignoring the audio content.
func (s *stubSession) SendAudio(_ []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next < len(s.script) {
		s.results <- s.script[s.next]
		s.next++
	}
	return nil
}

func (s *stubSession) Results() <-chan Result {
	return s.results
}

func (s *stubSession) Close() error {
	s.closeOnce.Do(func() { close(s.results) })
	return nil
}
