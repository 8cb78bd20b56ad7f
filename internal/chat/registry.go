package chat

import "sync"

// Registry tracks live sessions by display target, giving the host direct
// lookup and removal when a display target closes.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Add registers a session under its display target, replacing any previous
// session for that target.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.Target()] = s
}

// Remove forgets the session for target.
func (r *Registry) Remove(target string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, target)
}

// Find returns the session for target, or nil.
func (r *Registry) Find(target string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[target]
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CloseAll aborts every registered session and empties the registry.
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}
