package app

import (
	"errors"
	"sort"
	"sync"
	"time"

	"bodytrack/internal/domain"
)

// ErrChallengeComplete is returned by Append once a participant has logged
// every week of the challenge.
var ErrChallengeComplete = errors.New("challenge already complete")

// EntryStore holds the weekly entries for all participants, keyed by
// profile name. Entries are kept unordered; both read orders are derived
// by sorting at query time so they always reflect the latest mutation.
type EntryStore struct {
	mu      sync.Mutex
	weeks   int
	entries map[string][]domain.Entry
	lastID  int64

	now func() time.Time
}

// NewEntryStore creates an empty store capped at challengeWeeks entries per
// participant.
func NewEntryStore(challengeWeeks int) *EntryStore {
	return &EntryStore{
		weeks:   challengeWeeks,
		entries: make(map[string][]domain.Entry),
		now:     time.Now,
	}
}

// ChallengeWeeks returns the configured challenge duration.
func (s *EntryStore) ChallengeWeeks() int {
	return s.weeks
}

// Append creates the next weekly entry for the participant. The week number
// is always max(existing weeks)+1; deleted weeks are never reused. Returns
// ErrChallengeComplete when every week has been logged, leaving the
// collection unchanged. BMI is computed from the entry's own weight and the
// owning profile's height, once, at creation time.
func (s *EntryStore) Append(participant string, profile domain.Profile, m domain.Metrics) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.maxWeekLocked(participant) + 1
	if next > s.weeks {
		return domain.Entry{}, ErrChallengeComplete
	}

	// Creation-time millisecond timestamps, bumped so IDs stay strictly
	// monotonic even when two appends land in the same millisecond.
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	e := domain.Entry{
		ID:                id,
		Week:              next,
		WeightKg:          m.WeightKg,
		BMI:               domain.BMI(m.WeightKg, profile.HeightCm),
		BodyFatPercentage: m.BodyFatPercentage,
		MuscleMassKg:      m.MuscleMassKg,
		VisceralFatLevel:  m.VisceralFatLevel,
	}
	s.entries[participant] = append(s.entries[participant], e)
	return e, nil
}

// DeleteByID removes the participant's entry with the given id. Unknown ids
// are a no-op, not an error. Remaining entries keep their week numbers.
func (s *EntryStore) DeleteByID(participant string, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.entries[participant]
	for i, e := range list {
		if e.ID == id {
			s.entries[participant] = append(list[:i], list[i+1:]...)
			return
		}
	}
}

// ListDescending returns the participant's entries, most recent week first.
func (s *EntryStore) ListDescending(participant string) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Entry, len(s.entries[participant]))
	copy(result, s.entries[participant])
	sort.Slice(result, func(i, j int) bool {
		return result[i].Week > result[j].Week
	})
	return result
}

// ListAscending returns the participant's entries in chart order, week 1 first.
func (s *EntryStore) ListAscending(participant string) []domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Entry, len(s.entries[participant]))
	copy(result, s.entries[participant])
	sort.Slice(result, func(i, j int) bool {
		return result[i].Week < result[j].Week
	})
	return result
}

// LatestAndPrevious returns the participant's two most recent entries by
// week. Either may be nil.
func (s *EntryStore) LatestAndPrevious(participant string) (*domain.Entry, *domain.Entry) {
	desc := s.ListDescending(participant)

	var latest, previous *domain.Entry
	if len(desc) > 0 {
		latest = &desc[0]
	}
	if len(desc) > 1 {
		previous = &desc[1]
	}
	return latest, previous
}

// NextLoggableWeek returns max(existing weeks)+1 for the participant,
// regardless of whether that week is still within the challenge. Capping is
// the caller's concern, consistent with Append's rejection.
func (s *EntryStore) NextLoggableWeek(participant string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxWeekLocked(participant) + 1
}

// All returns a copy of every participant's entries, for persistence.
func (s *EntryStore) All() map[string][]domain.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]domain.Entry, len(s.entries))
	for name, list := range s.entries {
		cp := make([]domain.Entry, len(list))
		copy(cp, list)
		out[name] = cp
	}
	return out
}

// Replace swaps in previously persisted state and reseeds the id counter so
// newly appended entries keep ids strictly above every restored one.
func (s *EntryStore) Replace(entries map[string][]domain.Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string][]domain.Entry, len(entries))
	s.lastID = 0
	for name, list := range entries {
		cp := make([]domain.Entry, len(list))
		copy(cp, list)
		s.entries[name] = cp
		for _, e := range cp {
			if e.ID > s.lastID {
				s.lastID = e.ID
			}
		}
	}
}

// At most one entry per challenge week, so a linear scan is enough.
func (s *EntryStore) maxWeekLocked(participant string) int {
	maxWeek := 0
	for _, e := range s.entries[participant] {
		if e.Week > maxWeek {
			maxWeek = e.Week
		}
	}
	return maxWeek
}
