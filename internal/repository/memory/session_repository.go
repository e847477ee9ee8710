package memory

import (
	"time"

	"shell-assistant-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps conversation state in process memory. State is
// ephemeral by design; an expired session simply starts fresh.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Default expiration of 1 hour, purging expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(sessionID string, state *store.ConversationState) {
	r.cache.Set(sessionID, state, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.ConversationState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.ConversationState), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
