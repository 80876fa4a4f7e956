package limit

import "sync"

// Registry maps language identifiers to strategy instances. It is
// built explicitly at construction rather than lazily on first use, so
// there is no hidden initialization order. Register/Unregister/Clear
// exist for test isolation and for embedding extra languages.
type Registry struct {
	mu         sync.RWMutex
	strategies map[string]Strategy
}

// NewRegistry creates a registry populated with all built-in languages.
func NewRegistry() *Registry {
	r := NewEmptyRegistry()
	for _, profile := range allProfiles() {
		r.strategies[profile.id] = newStrategy(profile)
	}
	return r
}

// NewEmptyRegistry creates a registry with no strategies.
func NewEmptyRegistry() *Registry {
	return &Registry{strategies: make(map[string]Strategy)}
}

// Get returns the strategy for a language, or nil when none is
// registered. Callers must treat nil as a hard error.
func (r *Registry) Get(language string) Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.strategies[language]
}

// Register adds or replaces a strategy.
func (r *Registry) Register(s Strategy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies[s.Language()] = s
}

// Unregister removes a language's strategy.
func (r *Registry) Unregister(language string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.strategies, language)
}

// Clear removes all strategies.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.strategies = make(map[string]Strategy)
}

// Languages returns the registered language identifiers.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.strategies))
	for id := range r.strategies {
		ids = append(ids, id)
	}
	return ids
}
