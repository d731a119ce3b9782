package app_test

import (
	"context"
	"errors"
	"testing"

	"bodytrack/internal/app"
	"bodytrack/internal/domain"
)

// mockGateway is a function-field gateway with map-backed defaults.
type mockGateway struct {
	values map[string][]byte

	loadFn   func(ctx context.Context, key string) ([]byte, error)
	saveFn   func(ctx context.Context, key string, value []byte) error
	removeFn func(ctx context.Context, key string) error
}

func newMockGateway() *mockGateway {
	return &mockGateway{values: map[string][]byte{}}
}

func (m *mockGateway) Load(ctx context.Context, key string) ([]byte, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx, key)
	}
	return m.values[key], nil
}

func (m *mockGateway) Save(ctx context.Context, key string, value []byte) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, key, value)
	}
	m.values[key] = value
	return nil
}

func (m *mockGateway) Remove(ctx context.Context, key string) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, key)
	}
	delete(m.values, key)
	return nil
}

func newSession(gw domain.Gateway) *app.Session {
	return app.NewSession(app.NewProfileStore(), app.NewEntryStore(domain.ChallengeWeeks), gw)
}

func TestSelectOrCreateValidation(t *testing.T) {
	s := newSession(newMockGateway())
	ctx := context.Background()

	tests := []struct {
		name    string
		profile domain.Profile
	}{
		{"empty name", domain.Profile{Name: "", HeightCm: 170}},
		{"blank name", domain.Profile{Name: "   ", HeightCm: 170}},
		{"zero height", domain.Profile{Name: "Alice", HeightCm: 0}},
		{"negative height", domain.Profile{Name: "Alice", HeightCm: -170}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := s.SelectOrCreate(ctx, tc.profile); !errors.Is(err, app.ErrInvalidProfile) {
				t.Errorf("err = %v; want ErrInvalidProfile", err)
			}
		})
	}
}

func TestSelectOrCreateKeepsStoredHeight(t *testing.T) {
	s := newSession(newMockGateway())
	ctx := context.Background()

	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatalf("first select: %v", err)
	}

	// A known name re-selected with a different (even invalid) height keeps
	// the recorded one.
	got, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: -1})
	if err != nil {
		t.Fatalf("second select: %v", err)
	}
	if got.HeightCm != 170 {
		t.Errorf("height = %v; want stored 170", got.HeightCm)
	}
}

func TestAddEntryRequiresActiveParticipant(t *testing.T) {
	s := newSession(newMockGateway())

	_, err := s.AddEntry(context.Background(), domain.Metrics{WeightKg: 80})
	if !errors.Is(err, app.ErrNoActiveParticipant) {
		t.Fatalf("err = %v; want ErrNoActiveParticipant", err)
	}
}

func TestAddEntryRejectsInvalidWeight(t *testing.T) {
	s := newSession(newMockGateway())
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}

	for _, w := range []float64{0, -5} {
		if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: w}); !errors.Is(err, app.ErrInvalidWeight) {
			t.Errorf("AddEntry(%v) err = %v; want ErrInvalidWeight", w, err)
		}
	}
}

func TestChallengeLifecycle(t *testing.T) {
	s := newSession(newMockGateway())
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}

	var lastEntry domain.Entry
	for week := 1; week <= domain.ChallengeWeeks; week++ {
		e, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 80 - float64(week)})
		if err != nil {
			t.Fatalf("week %d: %v", week, err)
		}
		if e.Week != week {
			t.Fatalf("week %d assigned %d", week, e.Week)
		}
		lastEntry = e
	}

	vm, err := s.ViewModel()
	if err != nil {
		t.Fatal(err)
	}
	if !vm.IsComplete {
		t.Error("expected IsComplete after logging every week")
	}
	if vm.NextWeek != domain.ChallengeWeeks+1 {
		t.Errorf("nextWeek = %d; want %d", vm.NextWeek, domain.ChallengeWeeks+1)
	}
	if vm.CurrentWeek != domain.ChallengeWeeks+1 {
		t.Errorf("currentWeek = %d; want %d", vm.CurrentWeek, domain.ChallengeWeeks+1)
	}

	// A seventh append is an explicit rejection, not a silent log line.
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 70}); !errors.Is(err, app.ErrChallengeComplete) {
		t.Fatalf("err = %v; want ErrChallengeComplete", err)
	}

	dash, err := s.Dashboard()
	if err != nil {
		t.Fatal(err)
	}
	if len(dash.Log) != domain.ChallengeWeeks {
		t.Errorf("log rows = %d; want %d", len(dash.Log), domain.ChallengeWeeks)
	}

	// Deleting the final week re-opens the challenge.
	s.DeleteEntry(ctx, lastEntry.ID)
	vm, err = s.ViewModel()
	if err != nil {
		t.Fatal(err)
	}
	if vm.IsComplete {
		t.Error("expected challenge re-opened after deleting the last week")
	}
	if vm.NextWeek != domain.ChallengeWeeks {
		t.Errorf("nextWeek = %d; want %d", vm.NextWeek, domain.ChallengeWeeks)
	}
}

func TestViewModelFreshParticipant(t *testing.T) {
	s := newSession(newMockGateway())
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}

	vm, err := s.ViewModel()
	if err != nil {
		t.Fatal(err)
	}
	if vm.Latest != nil || vm.Previous != nil {
		t.Error("expected no entries yet")
	}
	if vm.NextWeek != 1 || vm.CurrentWeek != 1 || vm.IsComplete {
		t.Errorf("vm = %+v; want nextWeek=1 currentWeek=1 not complete", vm)
	}
}

func TestDashboardDeltasAndChart(t *testing.T) {
	s := newSession(newMockGateway())
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}

	bf1, bf2 := 31.0, 30.2
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 80, BodyFatPercentage: &bf1}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 78, BodyFatPercentage: &bf2}); err != nil {
		t.Fatal(err)
	}

	dash, err := s.Dashboard()
	if err != nil {
		t.Fatal(err)
	}

	if dash.Deltas.Weight.Sign != domain.DeltaDecrease || dash.Deltas.Weight.Value == nil || *dash.Deltas.Weight.Value != -2.0 {
		t.Errorf("weight delta = %+v; want -2.0 decrease", dash.Deltas.Weight)
	}
	if dash.Deltas.BodyFat.Sign != domain.DeltaDecrease {
		t.Errorf("body fat delta sign = %q; want decrease", dash.Deltas.BodyFat.Sign)
	}
	// Muscle mass was never supplied, so there is nothing to compare.
	if dash.Deltas.MuscleMass.Sign != domain.DeltaNone || dash.Deltas.MuscleMass.Value != nil {
		t.Errorf("muscle mass delta = %+v; want none/nil", dash.Deltas.MuscleMass)
	}
	if dash.BMICategory != "Overweight" {
		t.Errorf("bmi category = %q; want Overweight", dash.BMICategory)
	}

	if len(dash.Log) != 2 {
		t.Fatalf("log rows = %d; want 2", len(dash.Log))
	}
	if dash.Log[0].Week != 2 {
		t.Errorf("first log row week = %d; want 2 (most recent first)", dash.Log[0].Week)
	}
	if dash.Log[0].WeightChange.Value == nil || *dash.Log[0].WeightChange.Value != -2.0 {
		t.Errorf("row change = %+v; want -2.0", dash.Log[0].WeightChange)
	}
	if dash.Log[1].WeightChange.Value != nil {
		t.Errorf("oldest row change = %+v; want nil", dash.Log[1].WeightChange)
	}

	if len(dash.Chart) != 2 || dash.Chart[0].Week != 1 || dash.Chart[1].Week != 2 {
		t.Errorf("chart = %+v; want ascending weeks 1, 2", dash.Chart)
	}
}

func TestDeselectClearsActivePointerOnly(t *testing.T) {
	gw := newMockGateway()
	s := newSession(gw)
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 80}); err != nil {
		t.Fatal(err)
	}

	s.Deselect(ctx)
	if s.Active() != nil {
		t.Error("expected no active participant")
	}
	if _, ok := gw.values[domain.KeyActive]; ok {
		t.Error("active key should be removed")
	}
	if _, ok := gw.values[domain.KeyEntries]; !ok {
		t.Error("entries must survive a deselect")
	}
	if _, err := s.ViewModel(); !errors.Is(err, app.ErrNoActiveParticipant) {
		t.Error("expected ErrNoActiveParticipant from ViewModel")
	}
}

func TestResetAllRequiresConfirmation(t *testing.T) {
	gw := newMockGateway()
	s := newSession(gw)
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}

	if err := s.ResetAll(ctx, false); !errors.Is(err, app.ErrResetNotConfirmed) {
		t.Fatalf("err = %v; want ErrResetNotConfirmed", err)
	}
	if s.Active() == nil {
		t.Fatal("unconfirmed reset must not change anything")
	}

	if err := s.ResetAll(ctx, true); err != nil {
		t.Fatalf("confirmed reset: %v", err)
	}
	if s.Active() != nil {
		t.Error("expected no active participant after reset")
	}
	if len(gw.values) != 0 {
		t.Errorf("gateway still holds %d keys after reset", len(gw.values))
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	gw := newMockGateway()
	ctx := context.Background()

	s := newSession(gw)
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 80}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 78}); err != nil {
		t.Fatal(err)
	}

	// A second session over the same medium sees structurally identical data.
	restored := newSession(gw)
	restored.Restore(ctx)

	active := restored.Active()
	if active == nil || active.Name != "Alice" || active.HeightCm != 170 {
		t.Fatalf("active = %v; want Alice/170", active)
	}
	vm, err := restored.ViewModel()
	if err != nil {
		t.Fatal(err)
	}
	if vm.Latest == nil || vm.Latest.Week != 2 || vm.Latest.WeightKg != 78 {
		t.Errorf("latest = %+v; want week 2 at 78kg", vm.Latest)
	}
	if vm.NextWeek != 3 {
		t.Errorf("nextWeek = %d; want 3", vm.NextWeek)
	}

	// New appends must not collide with restored ids.
	e, err := restored.AddEntry(ctx, domain.Metrics{WeightKg: 77})
	if err != nil {
		t.Fatal(err)
	}
	if e.ID <= vm.Latest.ID {
		t.Errorf("id %d not above restored id %d", e.ID, vm.Latest.ID)
	}
}

func TestRestoreMalformedStateStartsEmpty(t *testing.T) {
	gw := newMockGateway()
	gw.values[domain.KeyProfiles] = []byte(`{not json`)
	gw.values[domain.KeyEntries] = []byte(`[unexpected]`)
	gw.values[domain.KeyActive] = []byte(`"Alice"`)

	s := newSession(gw)
	s.Restore(context.Background())

	// Alice's profile failed to parse, so the dangling active pointer is dropped too.
	if s.Active() != nil {
		t.Error("expected no active participant")
	}
	if _, err := s.AddEntry(context.Background(), domain.Metrics{WeightKg: 80}); !errors.Is(err, app.ErrNoActiveParticipant) {
		t.Errorf("err = %v; want ErrNoActiveParticipant on empty state", err)
	}
}

func TestRestoreGatewayErrorDegradesToEmpty(t *testing.T) {
	gw := newMockGateway()
	gw.loadFn = func(ctx context.Context, key string) ([]byte, error) {
		return nil, errors.New("medium unavailable")
	}

	s := newSession(gw)
	s.Restore(context.Background())
	if s.Active() != nil {
		t.Error("expected empty state on load failure")
	}
}

func TestPersistFailureDoesNotFailMutation(t *testing.T) {
	gw := newMockGateway()
	gw.saveFn = func(ctx context.Context, key string, value []byte) error {
		return errors.New("disk full")
	}

	s := newSession(gw)
	ctx := context.Background()
	if _, err := s.SelectOrCreate(ctx, domain.Profile{Name: "Alice", HeightCm: 170}); err != nil {
		t.Fatalf("select must succeed despite persist failure: %v", err)
	}
	if _, err := s.AddEntry(ctx, domain.Metrics{WeightKg: 80}); err != nil {
		t.Fatalf("append must succeed despite persist failure: %v", err)
	}
}
