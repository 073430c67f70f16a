package goalscan

// Per-source probability building. Each data source (recent form,
// season table) runs the same pipeline: estimate goal rates, read the
// raw Poisson Over(1.5), then layer bounded sigmoid adjustments keyed
// on the descriptive statistics. An externally produced AI estimate
// skips the pipeline entirely and arrives as a ready-made value.

// SourceTag identifies which pipeline produced an estimate
type SourceTag string

const (
	SourceStatistical SourceTag = "statistical"
	SourceTable       SourceTag = "table"
	SourceAI          SourceTag = "ai"
)

// SourceEstimate is one source's probability for the reference market,
// produced once per analysis and never mutated afterwards.
// Confidence is -1 when the source did not report one.
type SourceEstimate struct {
	Value      float64   `json:"value"`
	Confidence float64   `json:"confidence"`
	Tag        SourceTag `json:"sourceTag"`

	// Goal rates behind the estimate, when the source derived them
	LambdaHome float64 `json:"lambdaHome,omitempty"`
	LambdaAway float64 `json:"lambdaAway,omitempty"`
	HasLambda  bool    `json:"-"`
}

// BuildSourceEstimate runs the full statistical pipeline for one source.
// Returns nil when both snapshots are empty, in which case the caller
// may fall back to a competition-average baseline.
func BuildSourceEstimate(tag SourceTag, home, away *TeamGoalStats) *SourceEstimate {
	if home.IsEmpty() && away.IsEmpty() {
		return nil
	}

	lambdaHome, lambdaAway := EstimateGoalRates(home, away)
	matrix := ScoreMatrix(lambdaHome, lambdaAway)
	raw := OverProbability(matrix, Config.ReferenceLine)

	adjusted := raw + adjustmentDelta(home, away)
	adjusted = clampFloat(adjusted, 0, 100)

	return &SourceEstimate{
		Value:      roundToDecimalPlaces(adjusted, 2),
		Confidence: sourceConfidence(home, away),
		Tag:        tag,
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
		HasLambda:  true,
	}
}

// NewBaselineEstimate wraps a competition-average percentage as a
// statistical estimate for the degenerate all-zero-stats path. No
// Poisson math is involved; the reduced confidence communicates that.
func NewBaselineEstimate(averagePct float64) *SourceEstimate {
	return &SourceEstimate{
		Value:      clampFloat(averagePct, 0, 100),
		Confidence: Config.BaselineConfidence,
		Tag:        SourceStatistical,
	}
}

// NewAIEstimate validates an externally supplied probability/confidence
// pair. The engine treats the producer as opaque; anything non-finite
// or outside [0, 100] discards the estimate entirely and the caller
// falls back to the remaining sources.
func NewAIEstimate(probability, confidence float64) *SourceEstimate {
	if !isValidPercent(probability) || !isValidPercent(confidence) {
		return nil
	}
	return &SourceEstimate{
		Value:      probability,
		Confidence: confidence,
		Tag:        SourceAI,
	}
}

// adjustmentDelta sums the four heuristic corrections to the raw
// Poisson probability. Each is a bounded delta that fades continuously
// through its pivot, so nearly identical inputs always produce nearly
// identical probabilities.
func adjustmentDelta(home, away *TeamGoalStats) float64 {
	delta := 0.0

	if v, ok := pairAverage(home, away, func(s *TeamGoalStats) float64 { return s.AvgTotalGoals }); ok {
		delta += Config.TotalGoalsDelta * smoothStep(v, Config.TotalGoalsThreshold, Config.TotalGoalsSteepness)
	}

	// Defensive solidity suppresses goals: high clean-sheet or
	// failed-to-score rates pull the estimate down
	if v, ok := pairAverage(home, away, func(s *TeamGoalStats) float64 { return s.CleanSheetPct }); ok {
		delta -= Config.CleanSheetDelta * smoothStep(v, Config.CleanSheetThreshold, Config.PercentSteepness)
	}

	if v, ok := pairAverage(home, away, func(s *TeamGoalStats) float64 { return s.NoGoalsPct }); ok {
		delta -= Config.NoGoalsDelta * smoothStep(v, Config.NoGoalsThreshold, Config.PercentSteepness)
	}

	if v, ok := pairAverage(home, away, func(s *TeamGoalStats) float64 { return s.Over25Pct }); ok {
		delta += Config.Over25Delta * smoothStep(v, Config.Over25Threshold, Config.PercentSteepness)
	}

	return delta
}

// pairAverage averages a field over whichever sides populated it
func pairAverage(home, away *TeamGoalStats, field func(*TeamGoalStats) float64) (float64, bool) {
	sum := 0.0
	n := 0
	for _, s := range []*TeamGoalStats{home, away} {
		if s == nil {
			continue
		}
		if v := field(s); v > 0 {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// sourceConfidence derives confidence from input completeness: the more
// populated fields, the more the estimate can be trusted
func sourceConfidence(home, away *TeamGoalStats) float64 {
	completeness := (home.Completeness() + away.Completeness()) / 2.0
	confidence := Config.BaseConfidence + Config.CompletenessSpan*completeness
	return clampFloat(confidence, 0, Config.MaxConfidence)
}
