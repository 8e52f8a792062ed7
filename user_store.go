package auth

import (
	"context"
	"sync"
)

// MemoryUserStore is the in-memory UserStore. Readers run concurrently;
// writers exclude everything on this store only, its lock is never held
// together with another store's.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]User
}

var _ UserStore = (*MemoryUserStore)(nil)

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users: make(map[string]User),
	}
}

// Add inserts the user if no account exists for its email. The check
// and the insert share one write acquisition, so concurrent signups
// for the same email cannot both succeed.
func (s *MemoryUserStore) Add(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := user.Email.String()
	if _, exists := s.users[key]; exists {
		return ErrUserAlreadyExists
	}

	s.users[key] = user
	return nil
}

func (s *MemoryUserStore) Get(_ context.Context, email Email) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email.String()]
	if !ok {
		return User{}, ErrUserNotFound
	}

	return user, nil
}

// Validate looks the user up and compares the supplied password
// against the stored hash. Missing user and bad password stay
// distinguishable here; the authenticator collapses them for callers.
func (s *MemoryUserStore) Validate(ctx context.Context, email Email, password Password) error {
	user, err := s.Get(ctx, email)
	if err != nil {
		return err
	}

	return ComparePasswordAndHash(password, user.PasswordHash)
}
