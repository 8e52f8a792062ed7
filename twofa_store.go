package auth

import (
	"context"
	"sync"
)

type pendingChallenge struct {
	id   LoginAttemptID
	code TwoFACode
}

// MemoryTwoFACodeStore holds at most one pending challenge per email.
// Put for an email with an existing challenge overwrites it, which is
// what invalidates stale login attempts after a repeated login.
type MemoryTwoFACodeStore struct {
	mu    sync.RWMutex
	codes map[string]pendingChallenge
}

var _ TwoFACodeStore = (*MemoryTwoFACodeStore)(nil)

func NewMemoryTwoFACodeStore() *MemoryTwoFACodeStore {
	return &MemoryTwoFACodeStore{
		codes: make(map[string]pendingChallenge),
	}
}

func (s *MemoryTwoFACodeStore) Put(_ context.Context, email Email, id LoginAttemptID, code TwoFACode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.codes[email.String()] = pendingChallenge{id: id, code: code}
	return nil
}

func (s *MemoryTwoFACodeStore) Get(_ context.Context, email Email) (LoginAttemptID, TwoFACode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, ok := s.codes[email.String()]
	if !ok {
		return LoginAttemptID{}, TwoFACode{}, ErrChallengeNotFound
	}

	return challenge.id, challenge.code, nil
}

// Remove deletes the pending challenge; removing an absent entry is
// not an error.
func (s *MemoryTwoFACodeStore) Remove(_ context.Context, email Email) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.codes, email.String())
	return nil
}
