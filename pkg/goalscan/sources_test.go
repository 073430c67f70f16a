package goalscan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func fullStats() *TeamGoalStats {
	return &TeamGoalStats{
		AvgGoalsScored:   1.6,
		AvgGoalsConceded: 1.1,
		AvgTotalGoals:    2.7,
		CleanSheetPct:    30,
		NoGoalsPct:       15,
		Over25Pct:        55,
	}
}

func TestBuildSourceEstimate(t *testing.T) {
	est := BuildSourceEstimate(SourceStatistical, fullStats(), fullStats())
	assert.NotNil(t, est)
	assert.Equal(t, SourceStatistical, est.Tag)
	assert.True(t, est.HasLambda)
	assert.Greater(t, est.Value, 0.0)
	assert.LessOrEqual(t, est.Value, 100.0)
	assert.Equal(t, Config.MaxConfidence, est.Confidence, "fully populated inputs earn full confidence")
}

func TestBuildSourceEstimateEmptyInputs(t *testing.T) {
	assert.Nil(t, BuildSourceEstimate(SourceStatistical, &TeamGoalStats{}, nil))
}

func TestAdjustmentsAreContinuous(t *testing.T) {
	// Crossing an adjustment pivot must not jump the probability
	below := fullStats()
	below.AvgTotalGoals = Config.TotalGoalsThreshold - 0.001
	above := fullStats()
	above.AvgTotalGoals = Config.TotalGoalsThreshold + 0.001

	pBelow := BuildSourceEstimate(SourceStatistical, below, below).Value
	pAbove := BuildSourceEstimate(SourceStatistical, above, above).Value
	assert.InDelta(t, pBelow, pAbove, 0.1)
}

func TestAdjustmentDirection(t *testing.T) {
	attacking := fullStats()
	attacking.AvgTotalGoals = 3.5
	attacking.Over25Pct = 80
	attacking.CleanSheetPct = 10
	attacking.NoGoalsPct = 5

	defensive := fullStats()
	defensive.AvgTotalGoals = 1.2
	defensive.Over25Pct = 25
	defensive.CleanSheetPct = 60
	defensive.NoGoalsPct = 40

	pAttacking := BuildSourceEstimate(SourceStatistical, attacking, attacking).Value
	pDefensive := BuildSourceEstimate(SourceStatistical, defensive, defensive).Value
	assert.Greater(t, pAttacking, pDefensive)
}

func TestConfidenceTracksCompleteness(t *testing.T) {
	partial := &TeamGoalStats{AvgGoalsScored: 1.4, AvgGoalsConceded: 1.0}
	full := fullStats()

	cPartial := BuildSourceEstimate(SourceStatistical, partial, partial).Confidence
	cFull := BuildSourceEstimate(SourceStatistical, full, full).Confidence
	assert.Less(t, cPartial, cFull)
}

func TestNewBaselineEstimate(t *testing.T) {
	est := NewBaselineEstimate(45)
	assert.Equal(t, 45.0, est.Value)
	assert.Equal(t, Config.BaselineConfidence, est.Confidence)
	assert.False(t, est.HasLambda)
}

func TestNewAIEstimateValidation(t *testing.T) {
	assert.NotNil(t, NewAIEstimate(70, 80))
	assert.Nil(t, NewAIEstimate(150, 80))
	assert.Nil(t, NewAIEstimate(-5, 80))
	assert.Nil(t, NewAIEstimate(70, 120))
	assert.Nil(t, NewAIEstimate(math.NaN(), 80))
	assert.Nil(t, NewAIEstimate(70, math.Inf(1)))
}

func TestEstimateGoalRatesNeutralFallback(t *testing.T) {
	bad := &TeamGoalStats{AvgGoalsScored: math.NaN(), AvgGoalsConceded: -3}
	lh, la := EstimateGoalRates(bad, nil)
	assert.Equal(t, GetNeutralGoalRate(), lh)
	assert.Equal(t, GetNeutralGoalRate(), la)
}

func TestQualityBlend(t *testing.T) {
	raw := &TeamGoalStats{AvgGoalsScored: 2.0, AvgGoalsConceded: 1.0}
	withXG := &TeamGoalStats{AvgGoalsScored: 2.0, AvgGoalsConceded: 1.0, AvgXG: 1.0, AvgXGAgainst: 1.0}

	lhRaw, _ := EstimateGoalRates(raw, raw)
	lhXG, _ := EstimateGoalRates(withXG, withXG)
	assert.Less(t, lhXG, lhRaw, "a weaker xG signal should pull the rate down")
}
