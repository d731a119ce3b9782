package app

import (
	"sort"
	"sync"

	"bodytrack/internal/domain"
)

// ProfileStore holds participant profiles keyed by name.
type ProfileStore struct {
	mu       sync.Mutex
	profiles map[string]domain.Profile
}

// NewProfileStore creates an empty profile store.
func NewProfileStore() *ProfileStore {
	return &ProfileStore{
		profiles: make(map[string]domain.Profile),
	}
}

// Upsert stores the profile and returns the authoritative record. If a
// profile with the same name already exists, its recorded height wins: a
// participant's height is immutable after creation, so re-selecting a known
// name can never silently change it.
func (s *ProfileStore) Upsert(p domain.Profile) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.profiles[p.Name]; ok {
		return existing
	}
	s.profiles[p.Name] = p
	return p
}

// Get returns the profile with the given name, or nil if unknown.
func (s *ProfileStore) Get(name string) *domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.profiles[name]; ok {
		return &p
	}
	return nil
}

// Names returns every known participant name, sorted.
func (s *ProfileStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns a copy of every profile, for persistence.
func (s *ProfileStore) All() map[string]domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.Profile, len(s.profiles))
	for name, p := range s.profiles {
		out[name] = p
	}
	return out
}

// Replace swaps in previously persisted state.
func (s *ProfileStore) Replace(profiles map[string]domain.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = make(map[string]domain.Profile, len(profiles))
	for name, p := range profiles {
		s.profiles[name] = p
	}
}
