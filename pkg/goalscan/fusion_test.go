package goalscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func statEstimate(value float64) *SourceEstimate {
	return &SourceEstimate{Value: value, Confidence: 80, Tag: SourceStatistical}
}

func TestFusePassThrough(t *testing.T) {
	// With no external estimate the statistical value must survive
	// unchanged, including values outside the clamp range
	for _, p := range []float64{0, 5, 10, 50, 98, 99.5, 100} {
		result := Fuse(statEstimate(p), nil, nil)
		assert.Equal(t, p, result.Probability, "fuse(%f, nil, nil) must pass through", p)
		assert.Equal(t, 1.0, result.Weights[SourceStatistical])
	}
}

func TestFuseStaysInsideClampRange(t *testing.T) {
	for p := 0.0; p <= 100.0; p += 10.0 {
		for q := 0.0; q <= 100.0; q += 10.0 {
			ext := &SourceEstimate{Value: q, Confidence: 100, Tag: SourceTable}
			result := Fuse(statEstimate(p), ext)
			assert.GreaterOrEqual(t, result.Probability, Config.ClampLow)
			assert.LessOrEqual(t, result.Probability, Config.ClampHigh)
		}
	}
}

func TestDivergencePenaltyReducesWeight(t *testing.T) {
	ext := &SourceEstimate{Value: 80, Confidence: 90, Tag: SourceTable}
	result := Fuse(statEstimate(20), ext)

	nominal := ext.Confidence / 100.0
	realized := result.Weights[SourceTable]
	assert.Less(t, realized, nominal, "divergence above threshold must shrink the external weight")
	assert.Greater(t, realized, 0.0, "the external source is damped, never eliminated")
	assert.InDelta(t, 60.0, result.DivergencePp, 1e-9)
}

func TestNoPenaltyBelowThreshold(t *testing.T) {
	ext := &SourceEstimate{Value: 60, Confidence: 90, Tag: SourceTable}
	result := Fuse(statEstimate(50), ext)
	assert.InDelta(t, 0.9, result.Weights[SourceTable], 1e-9)
}

func TestAbsentConfidenceGivesEqualBlend(t *testing.T) {
	ext := &SourceEstimate{Value: 60, Confidence: -1, Tag: SourceTable}
	result := Fuse(statEstimate(50), ext)
	assert.InDelta(t, Config.DefaultExternalWeight, result.Weights[SourceTable], 1e-9)
	assert.InDelta(t, 55.0, result.Probability, 1e-9)
}

func TestWeightsSumToOne(t *testing.T) {
	table := &SourceEstimate{Value: 58, Confidence: 70, Tag: SourceTable}
	ai := &SourceEstimate{Value: 66, Confidence: 85, Tag: SourceAI}
	result := Fuse(statEstimate(62), table, ai)

	total := 0.0
	for _, w := range result.Weights {
		total += w
	}
	assert.InDelta(t, 1.0, total, 1e-9)
	assert.Len(t, result.Weights, 3)
}

func TestFoldReducesDivergenceStepwise(t *testing.T) {
	// The second fold diverges against the running combined value, not
	// the original statistical estimate
	table := &SourceEstimate{Value: 70, Confidence: 100, Tag: SourceTable}
	ai := &SourceEstimate{Value: 70, Confidence: 100, Tag: SourceAI}
	result := Fuse(statEstimate(70), table, ai)
	assert.InDelta(t, 0.0, result.DivergencePp, 1e-9)
}

func TestFusedLambdaMatchesProbability(t *testing.T) {
	// The aligned goal rates must reproduce the combined probability at
	// the reference line, guaranteeing grid consistency
	stat := &SourceEstimate{Value: 72, Confidence: 80, Tag: SourceStatistical, LambdaHome: 1.6, LambdaAway: 1.2, HasLambda: true}
	table := &SourceEstimate{Value: 64, Confidence: 60, Tag: SourceTable, LambdaHome: 1.3, LambdaAway: 1.0, HasLambda: true}
	result := Fuse(stat, table)

	matrix := ScoreMatrix(result.LambdaHome, result.LambdaAway)
	assert.InDelta(t, result.Probability, OverProbability(matrix, Config.ReferenceLine), 0.05)
}

func TestSmoothClampBehaviour(t *testing.T) {
	low, high := Config.ClampLow, Config.ClampHigh

	// Inner region untouched
	assert.Equal(t, 50.0, smoothClamp(50, low, high))

	// Taper regions approach but never reach the bounds
	assert.Less(t, smoothClamp(99, low, high), high)
	assert.Greater(t, smoothClamp(99, low, high), 93.0)
	assert.Greater(t, smoothClamp(3, low, high), low)
	assert.Less(t, smoothClamp(3, low, high), 15.0)

	// Continuity at the band edge
	band := Config.ClampTaperFraction * (high - low)
	edge := high - band
	assert.InDelta(t, smoothClamp(edge, low, high), smoothClamp(edge+1e-9, low, high), 1e-6)
}
