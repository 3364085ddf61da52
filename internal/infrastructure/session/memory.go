package session

import (
	"context"
	"sync"
	"time"

	"github.com/hilthontt/roombook/internal/domain"
)

const memoryCleanupInterval = time.Minute

type memoryEntry struct {
	session   domain.Session
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions are lost on restart
// and are not shared between instances.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	ttl       time.Duration
	now       func() time.Time
	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	s := &MemoryStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
		now:      time.Now,
		done:     make(chan struct{}),
	}

	go s.cleanupLoop(memoryCleanupInterval)

	return s
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok || s.now().After(entry.expiresAt) {
		return nil, domain.ErrSessionNotFound
	}

	session := entry.session
	return &session, nil
}

func (s *MemoryStore) Set(ctx context.Context, id string, session *domain.Session) error {
	if id == "" || session == nil {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	s.sessions[id] = memoryEntry{
		session:   *session,
		expiresAt: s.now().Add(s.ttl),
	}
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.removeExpired()
		case <-s.done:
			return
		}
	}
}

func (s *MemoryStore) removeExpired() {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.sessions {
		if now.After(entry.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

func (s *MemoryStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return nil
}
