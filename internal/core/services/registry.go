package services

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/custodia-labs/repdesk/internal/core/ports/driving"
)

// Ensure SessionRegistry implements the interface.
var _ driving.SessionProvider = (*SessionRegistry)(nil)

// DefaultSessionTTL is how long an unused session is kept.
const DefaultSessionTTL = 30 * time.Minute

// SessionRegistry hands out one Session per client id and forgets
// sessions that have not been used for the TTL.
type SessionRegistry struct {
	mu      sync.Mutex
	cache   *cache.Cache
	ttl     time.Duration
	factory func() *Session
}

// NewSessionRegistry creates a registry. A non-positive ttl uses DefaultSessionTTL.
func NewSessionRegistry(ttl time.Duration, factory func() *Session) *SessionRegistry {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRegistry{
		cache:   cache.New(ttl, ttl/2),
		ttl:     ttl,
		factory: factory,
	}
}

// Open returns the session for id, creating it when missing or expired.
// An empty id creates a new session under a generated id.
// Every call extends the session's lifetime.
func (r *SessionRegistry) Open(id string) (string, driving.RetrievalSession) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if x, found := r.cache.Get(id); found {
		sess := x.(*Session)
		r.cache.Set(id, sess, cache.DefaultExpiration)
		return id, sess
	}

	sess := r.factory()
	r.cache.Set(id, sess, cache.DefaultExpiration)
	return id, sess
}

// Close forgets the session for id.
func (r *SessionRegistry) Close(id string) {
	r.cache.Delete(id)
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	return r.cache.ItemCount()
}
