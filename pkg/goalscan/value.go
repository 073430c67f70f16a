package goalscan

// Value metrics: expected value, edge against the margin-adjusted fair
// price, discrete risk classification and the categorical verdict.

// RiskTier is a discrete classification of the combined probability
type RiskTier string

const (
	RiskLow      RiskTier = "Low"
	RiskModerate RiskTier = "Moderate"
	RiskHigh     RiskTier = "High"
	RiskVeryHigh RiskTier = "VeryHigh"
)

// ExpectedValue returns the EV percentage for a probability and a
// decimal market odd. EV is undefined for odds at or below evens-minus
// (<= 1.0) or absent odds; ok is false in that case.
func ExpectedValue(probabilityPct, marketOdd float64) (ev float64, ok bool) {
	if marketOdd <= 1.0 {
		return 0, false
	}
	return roundToDecimalPlaces((probabilityPct/100.0*marketOdd-1.0)*100.0, 2), true
}

// ImpliedProbability converts a decimal odd to its implied probability
// percentage, zero when the odd is unusable
func ImpliedProbability(marketOdd float64) float64 {
	if marketOdd <= 1.0 {
		return 0
	}
	return 100.0 / marketOdd
}

// FairImpliedProbability strips the assumed house margin from the
// implied probability. The multiplicative form implied * (1 - margin)
// is used throughout the engine: the bookmaker inflates every implied
// probability by the overround, so the fair figure is always lower.
func FairImpliedProbability(marketOdd float64) float64 {
	return ImpliedProbability(marketOdd) * (1.0 - GetHouseMargin())
}

// EdgePoints returns the estimated probability minus the fair implied
// probability, in percentage points. Positive edge means the market
// underprices the outcome. ok is false when the odd is unusable.
func EdgePoints(probabilityPct, marketOdd float64) (edge float64, ok bool) {
	if marketOdd <= 1.0 {
		return 0, false
	}
	return roundToDecimalPlaces(probabilityPct-FairImpliedProbability(marketOdd), 2), true
}

// RemoveVig2 converts two-way decimal odds to fair probabilities by
// stripping the bookmaker's overround. Both results are percentages
// summing to 100. Used when the market supplies both sides of a line.
func RemoveVig2(oddA, oddB float64) (float64, float64) {
	rawA := 1.0 / oddA
	rawB := 1.0 / oddB
	total := rawA + rawB
	return rawA / total * 100.0, rawB / total * 100.0
}

// RiskTierFor classifies a combined probability. Boundaries are strict:
// a probability exactly on a boundary falls into the riskier tier.
func RiskTierFor(probabilityPct float64) RiskTier {
	switch {
	case probabilityPct > Config.RiskLowBoundary:
		return RiskLow
	case probabilityPct > Config.RiskModerateBoundary:
		return RiskModerate
	case probabilityPct > Config.RiskHighBoundary:
		return RiskHigh
	default:
		return RiskVeryHigh
	}
}

// Verdict maps the combined probability onto a short categorical label.
// The band boundaries are a presentation concern, not an engine
// invariant.
func Verdict(probabilityPct float64) string {
	switch {
	case probabilityPct > Config.VerdictStrongBoundary:
		return "High confidence"
	case probabilityPct > Config.VerdictFavorableBoundary:
		return "Favorable"
	case probabilityPct > Config.VerdictLeanBoundary:
		return "Slight lean"
	default:
		return "Tight game"
	}
}
