package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Session is the identity behind a session token.
type Session struct {
	UserID   int
	Nickname string
}

// Sessions maps opaque tokens to logged-in members. Entries expire after
// the configured TTL and the least recently used are evicted at capacity.
// Safe for concurrent use.
type Sessions struct {
	cache *expirable.LRU[string, Session]
}

// NewSessions returns a session table holding at most capacity entries.
func NewSessions(capacity int, ttl time.Duration) *Sessions {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Sessions{cache: expirable.NewLRU[string, Session](capacity, nil, ttl)}
}

// Create starts a session and returns its token.
func (s *Sessions) Create(userID int, nickname string) string {
	token := uuid.NewString()
	s.cache.Add(token, Session{UserID: userID, Nickname: nickname})
	return token
}

// Lookup returns the session for token, if it is live.
func (s *Sessions) Lookup(token string) (Session, bool) {
	if token == "" {
		return Session{}, false
	}
	return s.cache.Get(token)
}

// Destroy ends the session. Unknown tokens are ignored.
func (s *Sessions) Destroy(token string) {
	s.cache.Remove(token)
}

// Len reports the number of live sessions.
func (s *Sessions) Len() int {
	return s.cache.Len()
}
