package auth

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// Registry tracks live sessions in process memory. Sessions are not
// persisted; a restart drops every token. Entries carry an expiry and a
// janitor goroutine sweeps expired ones so the map cannot grow without bound.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	ttl      time.Duration

	done    chan struct{}
	stopped sync.Once
}

type sessionEntry struct {
	user      SessionUser
	expiresAt time.Time
}

// NewRegistry creates a session registry. A zero ttl means sessions never
// expire; sweepInterval is ignored in that case.
func NewRegistry(ttl, sweepInterval time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]sessionEntry),
		ttl:      ttl,
		done:     make(chan struct{}),
	}

	if ttl > 0 {
		if sweepInterval <= 0 {
			sweepInterval = 5 * time.Minute
		}
		go r.janitor(sweepInterval)
	}

	return r
}

// Create stores a snapshot for the user and returns a fresh opaque token.
func (r *Registry) Create(user SessionUser) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	var expiresAt time.Time
	if r.ttl > 0 {
		expiresAt = time.Now().Add(r.ttl)
	}

	r.mu.Lock()
	r.sessions[token] = sessionEntry{user: user, expiresAt: expiresAt}
	r.mu.Unlock()

	return token, nil
}

// Resolve looks up the user snapshot for a token. Expired entries miss.
func (r *Registry) Resolve(token string) (SessionUser, bool) {
	r.mu.RLock()
	entry, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok {
		return SessionUser{}, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return SessionUser{}, false
	}
	return entry.user, true
}

// Destroy removes a session. Destroying an unknown token is a no-op.
func (r *Registry) Destroy(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// Len returns the number of tracked sessions, expired entries included until
// the next sweep.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops the janitor goroutine.
func (r *Registry) Close() {
	r.stopped.Do(func() { close(r.done) })
}

func (r *Registry) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case now := <-ticker.C:
			r.mu.Lock()
			for token, entry := range r.sessions {
				if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
					delete(r.sessions, token)
				}
			}
			r.mu.Unlock()
		}
	}
}

// generateToken returns a cryptographically random opaque token.
func generateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
