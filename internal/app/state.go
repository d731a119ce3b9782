package app

import (
	"context"
	"encoding/json"

	"bodytrack/internal/domain"

	"github.com/rs/zerolog/log"
)

// Restore loads persisted state through the gateway. Missing or malformed
// data degrades to empty collections; the dashboard must come up either way,
// so problems are logged and swallowed here.
func (s *Session) Restore(ctx context.Context) {
	profiles := make(map[string]domain.Profile)
	if raw := s.loadKey(ctx, domain.KeyProfiles); raw != nil {
		if err := json.Unmarshal(raw, &profiles); err != nil {
			log.Warn().Err(err).Str("key", domain.KeyProfiles).Msg("malformed persisted state, starting empty")
			profiles = make(map[string]domain.Profile)
		}
	}
	s.profiles.Replace(profiles)

	entries := make(map[string][]domain.Entry)
	if raw := s.loadKey(ctx, domain.KeyEntries); raw != nil {
		if err := json.Unmarshal(raw, &entries); err != nil {
			log.Warn().Err(err).Str("key", domain.KeyEntries).Msg("malformed persisted state, starting empty")
			entries = make(map[string][]domain.Entry)
		}
	}
	s.entries.Replace(entries)

	// The active pointer only survives if its profile still exists.
	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()
	if raw := s.loadKey(ctx, domain.KeyActive); raw != nil {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil {
			log.Warn().Err(err).Str("key", domain.KeyActive).Msg("malformed persisted state, ignoring")
		} else if s.profiles.Get(name) != nil {
			s.mu.Lock()
			s.active = name
			s.mu.Unlock()
		}
	}
}

func (s *Session) loadKey(ctx context.Context, key string) []byte {
	raw, err := s.gateway.Load(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("load failed, starting empty")
		return nil
	}
	return raw
}

func (s *Session) persistProfiles(ctx context.Context) {
	s.saveKey(ctx, domain.KeyProfiles, s.profiles.All())
}

func (s *Session) persistEntries(ctx context.Context) {
	s.saveKey(ctx, domain.KeyEntries, s.entries.All())
}

func (s *Session) persistActive(ctx context.Context) {
	s.mu.Lock()
	name := s.active
	s.mu.Unlock()

	if name == "" {
		if err := s.gateway.Remove(ctx, domain.KeyActive); err != nil {
			log.Warn().Err(err).Str("key", domain.KeyActive).Msg("persist remove failed")
		}
		return
	}
	s.saveKey(ctx, domain.KeyActive, name)
}

// saveKey is fire-and-forget: persistence failures must not fail the
// mutation that triggered them.
func (s *Session) saveKey(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("encode state failed")
		return
	}
	if err := s.gateway.Save(ctx, key, raw); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("persist failed")
	}
}
