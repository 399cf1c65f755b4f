package usecase

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

// Registry holds the open pages in memory.
type Registry struct {
	deps SessionDeps

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(deps SessionDeps) *Registry {
	return &Registry{deps: deps.withDefaults(), sessions: make(map[string]*Session)}
}

// Open starts a page session for the named flow.
func (r *Registry) Open(flowName string) (*Session, error) {
	flow, err := LookupFlow(flowName)
	if err != nil {
		return nil, err
	}

	s := NewSession(uuid.NewString(), flow, r.deps)

	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()

	r.deps.Logger.Info("session opened", zap.String("session_id", s.ID()), zap.String("flow", string(flow.Kind)))
	return s, nil
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return s, nil
}

// Close tears the page down and forgets it.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	s.Close()
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll is called on shutdown.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
