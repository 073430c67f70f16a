package goalscan

// StatScope identifies which slice of a team's record a snapshot covers
type StatScope string

const (
	ScopeHome   StatScope = "home"
	ScopeAway   StatScope = "away"
	ScopeGlobal StatScope = "global"
)

// TeamGoalStats is an immutable snapshot of one team's goal statistics
// for a single scope. It is supplied externally per match; zero values
// mean the field was not populated by the provider.
type TeamGoalStats struct {
	AvgGoalsScored   float64 `json:"avgGoalsScored"`
	AvgGoalsConceded float64 `json:"avgGoalsConceded"`
	AvgTotalGoals    float64 `json:"avgTotalGoals"`
	CleanSheetPct    float64 `json:"cleanSheetPct"`
	NoGoalsPct       float64 `json:"noGoalsPct"`
	Over25Pct        float64 `json:"over25Pct"`

	// Optional quality signals (expected-goals based). Zero means absent.
	AvgXG        float64 `json:"avgXg,omitempty"`
	AvgXGAgainst float64 `json:"avgXgAgainst,omitempty"`
}

// TeamScopedStats bundles the per-scope snapshots for one team. Callers
// select the venue-specific scope where available, falling back to the
// global record when the provider did not supply it.
type TeamScopedStats struct {
	Home   *TeamGoalStats `json:"home,omitempty"`
	Away   *TeamGoalStats `json:"away,omitempty"`
	Global *TeamGoalStats `json:"global,omitempty"`
}

// ForScope returns the snapshot for the requested scope, or the global
// snapshot when the specific one is absent. May return nil.
func (t *TeamScopedStats) ForScope(scope StatScope) *TeamGoalStats {
	if t == nil {
		return nil
	}
	switch scope {
	case ScopeHome:
		if t.Home != nil {
			return t.Home
		}
	case ScopeAway:
		if t.Away != nil {
			return t.Away
		}
	case ScopeGlobal:
		if t.Global != nil {
			return t.Global
		}
	}
	return t.Global
}

// coreFieldCount is the number of statistical fields considered when
// measuring input completeness
const coreFieldCount = 6

// Completeness returns the fraction of core fields populated, 0..1.
// A nil snapshot counts as fully absent.
func (s *TeamGoalStats) Completeness() float64 {
	if s == nil {
		return 0
	}
	populated := 0
	for _, v := range []float64{
		s.AvgGoalsScored,
		s.AvgGoalsConceded,
		s.AvgTotalGoals,
		s.CleanSheetPct,
		s.NoGoalsPct,
		s.Over25Pct,
	} {
		if v > 0 {
			populated++
		}
	}
	return float64(populated) / float64(coreFieldCount)
}

// IsEmpty reports whether every core field is zero or absent
func (s *TeamGoalStats) IsEmpty() bool {
	return s.Completeness() == 0
}

// HasQualityMetrics reports whether xG based signals were supplied
func (s *TeamGoalStats) HasQualityMetrics() bool {
	return s != nil && s.AvgXG > 0 && s.AvgXGAgainst > 0
}
