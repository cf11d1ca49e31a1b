package session

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used in tests and single-process
// development setups. It mirrors the persistence semantics of the
// Postgres store, including soft expiry.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*Session
	byToken map[string]uuid.UUID
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[uuid.UUID]*Session),
		byToken: make(map[string]uuid.UUID),
	}
}

func (s *MemoryStore) Create(ctx context.Context, sess *Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.byID[cp.ID] = &cp
	s.byToken[cp.Token] = cp.ID
	return nil
}

func (s *MemoryStore) FindValidByToken(ctx context.Context, token string, now time.Time) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byToken[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess := s.byID[id]
	if !sess.Active(now) {
		return nil, ErrSessionNotFound
	}

	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) RenewExpiry(ctx context.Context, id uuid.UUID, expiresAt, updatedAt time.Time) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.ExpiresAt = expiresAt
	sess.UpdatedAt = updatedAt

	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) Invalidate(ctx context.Context, id uuid.UUID, updatedAt time.Time) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.byID[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.ExpiresAt = sess.CreatedAt.Add(-24 * time.Hour)
	sess.UpdatedAt = updatedAt

	cp := *sess
	return &cp, nil
}

func (s *MemoryStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Session
	for _, sess := range s.byID {
		if sess.UserID != userID {
			continue
		}
		cp := *sess
		cp.Token = ""
		out = append(out, cp)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}
