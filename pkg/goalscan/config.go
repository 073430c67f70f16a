package goalscan

import "fmt"

// EngineConfig contains all configurable parameters that influence analysis outcomes
// This centralizes all magic numbers and constants for easy adjustment
type EngineConfig struct {
	// === GOAL RATE ESTIMATION ===

	NeutralGoalRate float64 // Substituted for invalid or missing rate inputs (default: 1.0)
	MinGoalRate     float64 // Floor applied to any derived goal rate (default: 0.05)
	MaxGoalRate     float64 // Cap applied to any derived goal rate (default: 10.0)

	// Blend between raw goals-per-game and quality (xG) signals when both exist
	RawGoalsWeight float64 // Weight of raw scored/conceded averages (default: 0.4)
	QualityWeight  float64 // Weight of xG-based quality metrics (default: 0.6)

	// === POISSON MODEL ===

	PoissonMaxGoals int     // Per-side goal counts considered, 0..N (default: 15)
	PoissonMinGoals int     // Minimum goal counts regardless of tail mass (default: 6)
	TailEpsilon     float64 // Probability mass below which the tail is truncated (default: 1e-9)

	// Dixon-Coles correlation parameter for low-scoring games
	DixonColesRho float64 // Correlation parameter (default: -0.03)

	// === SOURCE ADJUSTMENTS (sigmoid-shaped, bounded) ===

	// Each adjustment fades in smoothly around its threshold instead of
	// switching abruptly; Steepness controls how quickly it saturates.
	TotalGoalsThreshold float64 // Goals average pivot (default: 2.0)
	TotalGoalsDelta     float64 // Max contribution in pp (default: 6.0)
	TotalGoalsSteepness float64 // Sigmoid steepness per goal (default: 2.5)

	CleanSheetThreshold float64 // Clean sheet pct pivot (default: 40.0)
	CleanSheetDelta     float64 // Max contribution in pp, applied negatively (default: 5.0)

	NoGoalsThreshold float64 // Failed-to-score pct pivot (default: 20.0)
	NoGoalsDelta     float64 // Max contribution in pp, applied negatively (default: 4.0)

	Over25Threshold float64 // Over 2.5 pct pivot (default: 50.0)
	Over25Delta     float64 // Max contribution in pp (default: 8.0)

	PercentSteepness float64 // Sigmoid steepness per percentage point (default: 0.12)

	// === CONFIDENCE ===

	BaseConfidence     float64 // Confidence with no populated stat fields (default: 30.0)
	CompletenessSpan   float64 // Confidence span earned by full inputs (default: 70.0)
	BaselineConfidence float64 // Confidence of the competition-average fallback (default: 35.0)
	MaxConfidence      float64 // Confidence ceiling (default: 100.0)

	// === FUSION ===

	DivergenceThreshold   float64 // Divergence in pp beyond which trust decays (default: 30.0)
	DivergencePenaltySpan float64 // pp above threshold at which the penalty saturates (default: 40.0)
	MaxDivergencePenalty  float64 // Largest fractional weight reduction (default: 0.5)
	DefaultExternalWeight float64 // Blend weight when a source reports no confidence (default: 0.5)

	// Smooth clamp operating range for combined probabilities
	ClampLow           float64 // Lower bound (default: 10.0)
	ClampHigh          float64 // Upper bound (default: 98.0)
	ClampTaperFraction float64 // Fraction of range forming each taper band (default: 0.05)

	// === THRESHOLD GRID ===

	GridFirstLine float64 // First over/under line (default: 0.5)
	GridLastLine  float64 // Last over/under line (default: 5.5)
	GridLineStep  float64 // Line spacing (default: 1.0)

	// Over(1.5) is the reference market every source estimate is built on
	ReferenceLine float64 // (default: 1.5)

	// Bounds for the inverse Poisson search
	InferLambdaLow  float64 // (default: 0.1)
	InferLambdaHigh float64 // (default: 8.0)
	InferLambdaIter int     // Binary search iterations (default: 60)

	// === DEFAULT LEAGUE AVERAGES ===

	// Used to split a total goal rate between the sides when no
	// source-derived rates are available
	DefaultHomeGoalsPerGame float64 // (default: 1.5)
	DefaultAwayGoalsPerGame float64 // (default: 1.1)

	// === VALUE METRICS ===

	HouseMargin float64 // Assumed bookmaker margin (default: 0.06)

	// Risk tier boundaries (strict greater-than)
	RiskLowBoundary      float64 // probability above which risk is Low (default: 88.0)
	RiskModerateBoundary float64 // probability above which risk is Moderate (default: 78.0)
	RiskHighBoundary     float64 // probability above which risk is High (default: 68.0)

	// Verdict bands (UX labels, not an engine invariant)
	VerdictStrongBoundary    float64 // (default: 85.0)
	VerdictFavorableBoundary float64 // (default: 72.0)
	VerdictLeanBoundary      float64 // (default: 58.0)
}

// DefaultEngineConfig returns the default configuration with all standard values
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		NeutralGoalRate: 1.0,
		MinGoalRate:     0.05,
		MaxGoalRate:     10.0,

		RawGoalsWeight: 0.4,
		QualityWeight:  0.6,

		PoissonMaxGoals: 15,
		PoissonMinGoals: 6,
		TailEpsilon:     1e-9,

		DixonColesRho: -0.03,

		TotalGoalsThreshold: 2.0,
		TotalGoalsDelta:     6.0,
		TotalGoalsSteepness: 2.5,

		CleanSheetThreshold: 40.0,
		CleanSheetDelta:     5.0,

		NoGoalsThreshold: 20.0,
		NoGoalsDelta:     4.0,

		Over25Threshold: 50.0,
		Over25Delta:     8.0,

		PercentSteepness: 0.12,

		BaseConfidence:     30.0,
		CompletenessSpan:   70.0,
		BaselineConfidence: 35.0,
		MaxConfidence:      100.0,

		DivergenceThreshold:   30.0,
		DivergencePenaltySpan: 40.0,
		MaxDivergencePenalty:  0.5,
		DefaultExternalWeight: 0.5,

		ClampLow:           10.0,
		ClampHigh:          98.0,
		ClampTaperFraction: 0.05,

		GridFirstLine: 0.5,
		GridLastLine:  5.5,
		GridLineStep:  1.0,

		ReferenceLine: 1.5,

		InferLambdaLow:  0.1,
		InferLambdaHigh: 8.0,
		InferLambdaIter: 60,

		DefaultHomeGoalsPerGame: 1.5,
		DefaultAwayGoalsPerGame: 1.1,

		HouseMargin: 0.06,

		RiskLowBoundary:      88.0,
		RiskModerateBoundary: 78.0,
		RiskHighBoundary:     68.0,

		VerdictStrongBoundary:    85.0,
		VerdictFavorableBoundary: 72.0,
		VerdictLeanBoundary:      58.0,
	}
}

// Global configuration instance
var Config *EngineConfig

// init initializes the global configuration with default values
func init() {
	Config = DefaultEngineConfig()
}

// UpdateConfig allows updating the global configuration
func UpdateConfig(newConfig *EngineConfig) {
	Config = newConfig
}

// === CONFIGURATION VALIDATION ===

// ValidateConfig ensures all configuration values are within reasonable ranges
func ValidateConfig(config *EngineConfig) error {
	if config.RawGoalsWeight < 0.0 || config.RawGoalsWeight > 1.0 {
		return fmt.Errorf("RawGoalsWeight must be between 0.0 and 1.0, got: %f", config.RawGoalsWeight)
	}

	if config.RawGoalsWeight+config.QualityWeight != 1.0 {
		return fmt.Errorf("RawGoalsWeight and QualityWeight must sum to 1.0, got: %f", config.RawGoalsWeight+config.QualityWeight)
	}

	if config.PoissonMaxGoals < 5 {
		return fmt.Errorf("PoissonMaxGoals should be at least 5 to capture realistic scores, got: %d", config.PoissonMaxGoals)
	}

	if config.DixonColesRho > 0 || config.DixonColesRho < -0.1 {
		return fmt.Errorf("DixonColesRho should be between -0.1 and 0, got: %f", config.DixonColesRho)
	}

	if config.ClampLow < 0 || config.ClampHigh > 100 || config.ClampLow >= config.ClampHigh {
		return fmt.Errorf("clamp bounds must satisfy 0 <= low < high <= 100, got: %f..%f", config.ClampLow, config.ClampHigh)
	}

	if config.MaxDivergencePenalty < 0.0 || config.MaxDivergencePenalty > 1.0 {
		return fmt.Errorf("MaxDivergencePenalty must be between 0.0 and 1.0, got: %f", config.MaxDivergencePenalty)
	}

	if config.HouseMargin < 0.0 || config.HouseMargin > 0.25 {
		return fmt.Errorf("HouseMargin should be between 0.0 and 0.25, got: %f", config.HouseMargin)
	}

	if config.RiskLowBoundary <= config.RiskModerateBoundary || config.RiskModerateBoundary <= config.RiskHighBoundary {
		return fmt.Errorf("risk boundaries must be strictly descending, got: %f/%f/%f",
			config.RiskLowBoundary, config.RiskModerateBoundary, config.RiskHighBoundary)
	}

	return nil
}

// === HELPER FUNCTIONS FOR EASY ACCESS ===

// GetNeutralGoalRate returns the substitute rate for invalid inputs
func GetNeutralGoalRate() float64 {
	return Config.NeutralGoalRate
}

// GetDixonColesRho returns the Dixon-Coles correlation parameter
func GetDixonColesRho() float64 {
	return Config.DixonColesRho
}

// GetDivergenceThreshold returns the divergence threshold in percentage points
func GetDivergenceThreshold() float64 {
	return Config.DivergenceThreshold
}

// GetHouseMargin returns the assumed bookmaker margin
func GetHouseMargin() float64 {
	return Config.HouseMargin
}
