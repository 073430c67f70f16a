package goalscan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGoalDistributionSumsToOne(t *testing.T) {
	for _, lambda := range []float64{0.3, 1.0, 1.7, 3.2} {
		probs := goalDistribution(lambda)
		total := 0.0
		for _, p := range probs {
			total += p
		}
		assert.InDelta(t, 1.0, total, 1e-6, "mass should be preserved for lambda %f", lambda)
	}
}

func TestGoalDistributionRejectsBadInput(t *testing.T) {
	neutral := goalDistribution(GetNeutralGoalRate())
	assert.Equal(t, neutral, goalDistribution(math.NaN()))
	assert.Equal(t, neutral, goalDistribution(-2.5))
	assert.Equal(t, neutral, goalDistribution(math.Inf(1)))
}

func TestUnderOverComplement(t *testing.T) {
	matrix := ScoreMatrix(1.4, 1.1)
	for _, line := range []float64{0.5, 1.5, 2.5, 3.5, 4.5, 5.5} {
		under := UnderProbability(matrix, line)
		over := OverProbability(matrix, line)
		assert.InDelta(t, 100.0, under+over, 1e-9)
	}
}

func TestBothTeamsToScore(t *testing.T) {
	expected := (1 - math.Exp(-1.0)) * (1 - math.Exp(-1.0)) * 100.0
	assert.InDelta(t, expected, BothTeamsToScore(1.0, 1.0), 1e-9)
}

func TestOutcomeProbabilitiesSumToHundred(t *testing.T) {
	outcome := OutcomeProbabilities(1.6, 1.2)
	assert.InDelta(t, 100.0, outcome.HomeWin+outcome.Draw+outcome.AwayWin, 1e-6)
	assert.Greater(t, outcome.HomeWin, outcome.AwayWin, "stronger side should be favoured")
}

func TestDixonColesPreservesMass(t *testing.T) {
	matrix := ScoreMatrix(1.2, 0.9)
	corrected := dixonColesCorrection(matrix, 1.2, 0.9)
	total := 0.0
	for i := range corrected {
		for j := range corrected[i] {
			total += corrected[i][j]
		}
	}
	assert.InDelta(t, 1.0, total, 1e-9)
}

func TestInferTotalLambdaRoundTrip(t *testing.T) {
	for _, lambda := range []float64{1.0, 2.5, 3.8} {
		over := totalGoalsOverProbability(lambda, 1.5)
		inferred := InferTotalLambda(over, 1.5)
		assert.InDelta(t, lambda, inferred, 1e-6)
	}
}

func TestInferTotalLambdaExtremes(t *testing.T) {
	assert.Equal(t, Config.InferLambdaLow, InferTotalLambda(0, 1.5))
	assert.Equal(t, Config.InferLambdaHigh, InferTotalLambda(100, 1.5))
}
