package ratelimiter

import (
	"sync"
	"time"
)

const inMemoryCleanupInterval = time.Minute

type inMemoryEntry struct {
	value     int
	expiresAt time.Time
}

func (e inMemoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// InMemory is a process-local GetterSetter with lazy and periodic expiry.
type InMemory struct {
	mu        sync.RWMutex
	cache     map[string]inMemoryEntry
	done      chan struct{}
	closeOnce sync.Once
}

func NewInMemory() GetterSetter {
	im := &InMemory{
		cache: make(map[string]inMemoryEntry),
		done:  make(chan struct{}),
	}

	go im.cleanupLoop(inMemoryCleanupInterval)

	return im
}

func (i *InMemory) Get(key string) (int, error) {
	i.mu.RLock()
	entry, ok := i.cache[key]
	i.mu.RUnlock()

	if !ok || entry.expired(time.Now()) {
		return 0, ErrCacheMiss
	}

	return entry.value, nil
}

func (i *InMemory) SetWithExpiration(key string, value int, expiration time.Duration) error {
	entry := inMemoryEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = time.Now().Add(expiration)
	}

	i.mu.Lock()
	i.cache[key] = entry
	i.mu.Unlock()

	return nil
}

func (i *InMemory) cleanupLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			i.removeExpired()
		case <-i.done:
			return
		}
	}
}

func (i *InMemory) removeExpired() {
	now := time.Now()

	i.mu.Lock()
	defer i.mu.Unlock()

	for key, entry := range i.cache {
		if entry.expired(now) {
			delete(i.cache, key)
		}
	}
}

func (i *InMemory) Close() error {
	i.closeOnce.Do(func() {
		close(i.done)
	})
	return nil
}
