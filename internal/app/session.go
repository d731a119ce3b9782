// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"bodytrack/internal/domain"

	"github.com/rs/zerolog/log"
)

var (
	// ErrNoActiveParticipant indicates that no profile is currently selected.
	ErrNoActiveParticipant = errors.New("no active participant")
	// ErrInvalidProfile indicates a profile with an empty name or non-positive height.
	ErrInvalidProfile = errors.New("profile requires a name and a positive height")
	// ErrInvalidWeight indicates a non-positive weight measurement.
	ErrInvalidWeight = errors.New("weight must be > 0")
	// ErrResetNotConfirmed indicates a reset attempt without explicit confirmation.
	ErrResetNotConfirmed = errors.New("reset requires explicit confirmation")
)

// Session owns the active-participant pointer and orchestrates the two
// stores. Every successful mutation is followed by a fire-and-forget write
// through the persistence gateway; write failures are logged, never surfaced.
type Session struct {
	profiles *ProfileStore
	entries  *EntryStore
	gateway  domain.Gateway

	mu     sync.Mutex
	active string
}

// NewSession creates a session over the given stores and gateway.
func NewSession(profiles *ProfileStore, entries *EntryStore, gateway domain.Gateway) *Session {
	return &Session{
		profiles: profiles,
		entries:  entries,
		gateway:  gateway,
	}
}

// Profiles exposes the profile store to the rendering boundary for tabular
// display. Mutations still go through the session.
func (s *Session) Profiles() *ProfileStore {
	return s.profiles
}

// SelectOrCreate upserts the profile and makes it the active participant.
// For a known name the stored height is authoritative and the returned
// profile reflects it; the supplied height is only used for new names.
func (s *Session) SelectOrCreate(ctx context.Context, p domain.Profile) (domain.Profile, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return domain.Profile{}, ErrInvalidProfile
	}
	if s.profiles.Get(p.Name) == nil && p.HeightCm <= 0 {
		return domain.Profile{}, ErrInvalidProfile
	}

	stored := s.profiles.Upsert(p)

	s.mu.Lock()
	s.active = stored.Name
	s.mu.Unlock()

	s.persistProfiles(ctx)
	s.persistActive(ctx)
	return stored, nil
}

// Deselect clears the active participant without deleting any data.
func (s *Session) Deselect(ctx context.Context) {
	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()

	if err := s.gateway.Remove(ctx, domain.KeyActive); err != nil {
		log.Warn().Err(err).Str("key", domain.KeyActive).Msg("persist remove failed")
	}
}

// Active returns the currently selected profile, or nil.
func (s *Session) Active() *domain.Profile {
	s.mu.Lock()
	name := s.active
	s.mu.Unlock()

	if name == "" {
		return nil
	}
	return s.profiles.Get(name)
}

// AddEntry records the active participant's next weekly entry. The
// challenge-complete condition comes back as ErrChallengeComplete so callers
// can react deliberately instead of inspecting logs.
func (s *Session) AddEntry(ctx context.Context, m domain.Metrics) (domain.Entry, error) {
	if m.WeightKg <= 0 {
		return domain.Entry{}, ErrInvalidWeight
	}

	active := s.Active()
	if active == nil {
		return domain.Entry{}, ErrNoActiveParticipant
	}

	entry, err := s.entries.Append(active.Name, *active, m)
	if err != nil {
		if errors.Is(err, ErrChallengeComplete) {
			log.Debug().Str("participant", active.Name).Msg("append rejected: challenge already complete")
		}
		return domain.Entry{}, err
	}

	s.persistEntries(ctx)
	return entry, nil
}

// DeleteEntry removes the active participant's entry with the given id.
// No-op when nothing is selected or the id is unknown.
func (s *Session) DeleteEntry(ctx context.Context, id int64) {
	active := s.Active()
	if active == nil {
		return
	}

	s.entries.DeleteByID(active.Name, id)
	s.persistEntries(ctx)
}

// ResetAll irreversibly clears all profiles, entries and the active pointer.
// The caller must pass confirm=true; the confirmation step lives with the
// caller because there is no way back.
func (s *Session) ResetAll(ctx context.Context, confirm bool) error {
	if !confirm {
		return ErrResetNotConfirmed
	}

	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()

	s.profiles.Replace(nil)
	s.entries.Replace(nil)

	for _, key := range []string{domain.KeyProfiles, domain.KeyEntries, domain.KeyActive} {
		if err := s.gateway.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}
