package app

import (
	"bodytrack/internal/domain"
)

// ViewModel is the minimal presentation state derived for the active
// participant. CurrentWeek drives the visual progress indicator and is
// deliberately decoupled from whether another entry can still be logged.
type ViewModel struct {
	Latest      *domain.Entry `json:"latest"`
	Previous    *domain.Entry `json:"previous"`
	NextWeek    int           `json:"nextWeek"`
	CurrentWeek int           `json:"currentWeek"`
	IsComplete  bool          `json:"isComplete"`
}

// StatDeltas holds the latest-vs-previous change for each tracked metric.
type StatDeltas struct {
	Weight      domain.Delta `json:"weight"`
	BMI         domain.Delta `json:"bmi"`
	BodyFat     domain.Delta `json:"bodyFat"`
	MuscleMass  domain.Delta `json:"muscleMass"`
	VisceralFat domain.Delta `json:"visceralFat"`
}

// LogRow is one table row of the weekly log: the entry plus its weight
// change against the next older row.
type LogRow struct {
	domain.Entry
	WeightChange domain.Delta `json:"weightChange"`
}

// ChartPoint is one point of the trend chart, in ascending week order.
type ChartPoint struct {
	Week              int      `json:"week"`
	WeightKg          float64  `json:"weightKg"`
	BMI               float64  `json:"bmi"`
	BodyFatPercentage *float64 `json:"bodyFatPercentage,omitempty"`
	MuscleMassKg      *float64 `json:"muscleMassKg,omitempty"`
}

// DashboardView is everything the dashboard renders for one participant.
type DashboardView struct {
	Profile domain.Profile `json:"profile"`
	ViewModel
	BMICategory string       `json:"bmiCategory"`
	Deltas      StatDeltas   `json:"deltas"`
	Log         []LogRow     `json:"log"`
	Chart       []ChartPoint `json:"chart"`
	TotalWeeks  int          `json:"totalWeeks"`
}

// ViewModel derives the presentation state for the active participant.
func (s *Session) ViewModel() (ViewModel, error) {
	active := s.Active()
	if active == nil {
		return ViewModel{}, ErrNoActiveParticipant
	}
	return s.viewModelFor(active.Name), nil
}

func (s *Session) viewModelFor(participant string) ViewModel {
	latest, previous := s.entries.LatestAndPrevious(participant)
	nextWeek := s.entries.NextLoggableWeek(participant)

	currentWeek := 1
	if latest != nil {
		currentWeek = latest.Week + 1
	}

	return ViewModel{
		Latest:      latest,
		Previous:    previous,
		NextWeek:    nextWeek,
		CurrentWeek: currentWeek,
		IsComplete:  nextWeek > s.entries.ChallengeWeeks(),
	}
}

// Dashboard assembles the full dashboard view for the active participant.
func (s *Session) Dashboard() (*DashboardView, error) {
	active := s.Active()
	if active == nil {
		return nil, ErrNoActiveParticipant
	}

	vm := s.viewModelFor(active.Name)
	desc := s.entries.ListDescending(active.Name)
	asc := s.entries.ListAscending(active.Name)

	view := &DashboardView{
		Profile:     *active,
		ViewModel:   vm,
		BMICategory: "N/A",
		Deltas:      statDeltas(vm.Latest, vm.Previous),
		Log:         make([]LogRow, 0, len(desc)),
		Chart:       make([]ChartPoint, 0, len(asc)),
		TotalWeeks:  s.entries.ChallengeWeeks(),
	}
	if vm.Latest != nil {
		view.BMICategory = domain.BMICategory(vm.Latest.BMI)
	}

	// Each row's change compares against the next older row; the oldest row
	// has nothing to compare to.
	for i, e := range desc {
		row := LogRow{Entry: e}
		if i+1 < len(desc) {
			row.WeightChange = domain.DeltaOf(&desc[i].WeightKg, &desc[i+1].WeightKg)
		} else {
			row.WeightChange = domain.DeltaOf(&desc[i].WeightKg, nil)
		}
		view.Log = append(view.Log, row)
	}

	for _, e := range asc {
		view.Chart = append(view.Chart, ChartPoint{
			Week:              e.Week,
			WeightKg:          e.WeightKg,
			BMI:               e.BMI,
			BodyFatPercentage: e.BodyFatPercentage,
			MuscleMassKg:      e.MuscleMassKg,
		})
	}
	return view, nil
}

func statDeltas(latest, previous *domain.Entry) StatDeltas {
	var lw, lb, pw, pb *float64
	var lf, lm, lv, pf, pm, pv *float64

	if latest != nil {
		lw, lb = &latest.WeightKg, &latest.BMI
		lf, lm = latest.BodyFatPercentage, latest.MuscleMassKg
		lv = intToFloat(latest.VisceralFatLevel)
	}
	if previous != nil {
		pw, pb = &previous.WeightKg, &previous.BMI
		pf, pm = previous.BodyFatPercentage, previous.MuscleMassKg
		pv = intToFloat(previous.VisceralFatLevel)
	}

	return StatDeltas{
		Weight:      domain.DeltaOf(lw, pw),
		BMI:         domain.DeltaOf(lb, pb),
		BodyFat:     domain.DeltaOf(lf, pf),
		MuscleMass:  domain.DeltaOf(lm, pm),
		VisceralFat: domain.DeltaOf(lv, pv),
	}
}

func intToFloat(v *int) *float64 {
	if v == nil {
		return nil
	}
	f := float64(*v)
	return &f
}
