package auth

import (
	"context"
	"sync"
)

// MemoryBannedTokenStore is the in-memory revocation set. Membership is
// monotonic for the process lifetime: nothing evicts entries, even past
// their expiry. Acceptable at this scope; a long-running deployment
// would need an external sweeper.
type MemoryBannedTokenStore struct {
	mu     sync.RWMutex
	tokens map[string]int64
}

var _ BannedTokenStore = (*MemoryBannedTokenStore)(nil)

func NewMemoryBannedTokenStore() *MemoryBannedTokenStore {
	return &MemoryBannedTokenStore{
		tokens: make(map[string]int64),
	}
}

// Ban records the token. Banning the same token twice is a no-op.
func (s *MemoryBannedTokenStore) Ban(_ context.Context, token string, expiry int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[token]; !exists {
		s.tokens[token] = expiry
	}

	return nil
}

func (s *MemoryBannedTokenStore) IsBanned(_ context.Context, token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, banned := s.tokens[token]
	return banned
}
