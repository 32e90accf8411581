// Package session keeps each uploaded export isolated in memory until it
// expires, is replaced, or is deleted. Nothing is written to disk.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/chatlens/internal/chatlog"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

const (
	DefaultTTL         = 2 * time.Hour
	DefaultMaxSessions = 256
)

// Session is one upload and its parsed record set.
type Session struct {
	ID         uuid.UUID
	Name       string
	Records    chatlog.RecordSet
	CreatedAt  time.Time
	LastAccess time.Time
}

// Registry holds sessions keyed by id. Safe for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	max      int
	now      func() time.Time
}

// NewRegistry creates a registry. Non-positive values use the defaults.
func NewRegistry(ttl time.Duration, maxSessions int) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Registry{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		max:      maxSessions,
		now:      time.Now,
	}
}

// Create stores a record set under a fresh id, evicting the least recently
// used session when the registry is full.
func (r *Registry) Create(name string, rs chatlog.RecordSet) Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.max {
		r.evictOldestLocked()
	}

	now := r.now()
	s := &Session{
		ID:         uuid.New(),
		Name:       name,
		Records:    rs,
		CreatedAt:  now,
		LastAccess: now,
	}
	r.sessions[s.ID] = s
	return *s
}

// Get returns a live session and refreshes its expiry.
func (r *Registry) Get(id uuid.UUID) (Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	now := r.now()
	if r.expired(s, now) {
		delete(r.sessions, id)
		return Session{}, ErrNotFound
	}
	s.LastAccess = now
	return *s, nil
}

// Delete discards a session. Deleting an unknown id returns ErrNotFound.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Sweep removes every session idle for longer than the TTL and returns how many went.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for id, s := range r.sessions {
		if r.expired(s, now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included until swept.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) expired(s *Session, now time.Time) bool {
	return now.Sub(s.LastAccess) > r.ttl
}

func (r *Registry) evictOldestLocked() {
	var oldest *Session
	for _, s := range r.sessions {
		if oldest == nil || s.LastAccess.Before(oldest.LastAccess) {
			oldest = s
		}
	}
	if oldest != nil {
		delete(r.sessions, oldest.ID)
	}
}
