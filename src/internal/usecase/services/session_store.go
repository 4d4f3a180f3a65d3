package services

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/api-sage/banking-frontend/src/internal/metrics"
	"github.com/api-sage/banking-frontend/src/internal/usecase/service_interfaces"
)

// SessionStore keeps one FormSession per browser in a bounded LRU. Evicting
// a session drops its state, the same as reloading the page.
type SessionStore struct {
	client service_interfaces.AccountClient

	mu       sync.Mutex
	sessions *lru.Cache[string, *FormSession]
}

func NewSessionStore(client service_interfaces.AccountClient, capacity int) (*SessionStore, error) {
	sessions, err := lru.New[string, *FormSession](capacity)
	if err != nil {
		return nil, fmt.Errorf("create session cache: %w", err)
	}

	return &SessionStore{client: client, sessions: sessions}, nil
}

// Session returns the session for id, creating it when unknown. Ids that are
// not UUIDs are replaced with a fresh one; the returned id is the one the
// caller should hand back to the browser.
func (s *SessionStore) Session(id string) (string, *FormSession) {
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session, ok := s.sessions.Get(id); ok {
		return id, session
	}

	session := NewFormSession(s.client)
	s.sessions.Add(id, session)
	metrics.SetLiveSessions(s.sessions.Len())
	return id, session
}

func (s *SessionStore) Len() int {
	return s.sessions.Len()
}
