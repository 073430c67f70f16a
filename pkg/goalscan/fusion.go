package goalscan

import "math"

// Fusion of source estimates into one calibrated probability. External
// estimates are folded into the statistical baseline one at a time; a
// source that strongly disagrees with the running value has its weight
// scaled down proportionally, reducing trust without discarding it.

// CombinedResult is the fused probability together with the realized
// weights and divergence, kept for auditability. It is recomputed from
// the source estimates whenever any of them changes and never persisted
// by the engine itself.
type CombinedResult struct {
	Probability  float64               `json:"probability"`
	Weights      map[SourceTag]float64 `json:"contributingWeights"`
	DivergencePp float64               `json:"divergencePp"`

	// Goal rates consistent with Probability; the threshold grid is
	// always derived from these so every displayed market agrees
	LambdaHome float64 `json:"lambdaHome"`
	LambdaAway float64 `json:"lambdaAway"`
}

// Fuse combines the statistical estimate with any available external
// estimates (season table, AI). Nil externals are skipped. With no
// externals the statistical value passes through unchanged; otherwise
// the combined value is smooth-clamped to the engine's operating range.
func Fuse(statistical *SourceEstimate, externals ...*SourceEstimate) *CombinedResult {
	combined := statistical.Value
	weights := map[SourceTag]float64{statistical.Tag: 1.0}
	maxDivergence := 0.0

	lambdaHome := statistical.LambdaHome
	lambdaAway := statistical.LambdaAway
	hasLambda := statistical.HasLambda

	folded := false
	for _, ext := range externals {
		if ext == nil {
			continue
		}

		divergence := math.Abs(ext.Value - combined)
		if divergence > maxDivergence {
			maxDivergence = divergence
		}

		weight := baseWeight(ext.Confidence)
		weight *= divergenceScale(divergence)

		combined = ext.Value*weight + combined*(1.0-weight)

		if ext.HasLambda && hasLambda {
			lambdaHome = ext.LambdaHome*weight + lambdaHome*(1.0-weight)
			lambdaAway = ext.LambdaAway*weight + lambdaAway*(1.0-weight)
		}

		// Earlier contributors shrink by the complement so the
		// realized weights always sum to one
		for tag := range weights {
			weights[tag] *= 1.0 - weight
		}
		weights[ext.Tag] = weight
		folded = true
	}

	if folded {
		combined = smoothClamp(combined, Config.ClampLow, Config.ClampHigh)
	}

	lambdaHome, lambdaAway = alignGoalRates(combined, lambdaHome, lambdaAway, hasLambda)

	return &CombinedResult{
		Probability:  roundToDecimalPlaces(combined, 2),
		Weights:      weights,
		DivergencePp: roundToDecimalPlaces(maxDivergence, 2),
		LambdaHome:   lambdaHome,
		LambdaAway:   lambdaAway,
	}
}

// baseWeight converts a reported confidence into a blend weight.
// A source that reported no confidence gets an equal blend.
func baseWeight(confidence float64) float64 {
	if confidence < 0 {
		return Config.DefaultExternalWeight
	}
	return clampFloat(confidence/100.0, 0, 1)
}

// divergenceScale returns the weight multiplier for a given divergence.
// Below the threshold trust is untouched; above it the weight shrinks
// linearly, saturating at the configured maximum penalty so the source
// is damped but never eliminated.
func divergenceScale(divergence float64) float64 {
	threshold := GetDivergenceThreshold()
	if divergence <= threshold {
		return 1.0
	}
	excess := math.Min((divergence-threshold)/Config.DivergencePenaltySpan, 1.0)
	return 1.0 - Config.MaxDivergencePenalty*excess
}

// alignGoalRates re-derives the goal rate pair from the final combined
// probability. Because two independent Poisson sides sum to a single
// Poisson total, inverting Over(reference line) to a total rate and
// splitting it by the fused home share makes the threshold grid agree
// exactly with the combined probability.
func alignGoalRates(combinedPct, lambdaHome, lambdaAway float64, hasLambda bool) (float64, float64) {
	total := InferTotalLambda(combinedPct, Config.ReferenceLine)

	homeShare := Config.DefaultHomeGoalsPerGame / (Config.DefaultHomeGoalsPerGame + Config.DefaultAwayGoalsPerGame)
	if hasLambda && lambdaHome+lambdaAway > 0 {
		homeShare = lambdaHome / (lambdaHome + lambdaAway)
	}

	return total * homeShare, total * (1.0 - homeShare)
}
