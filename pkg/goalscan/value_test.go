package goalscan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedValueWorkedExample(t *testing.T) {
	ev, ok := ExpectedValue(60, 1.80)
	assert.True(t, ok)
	assert.InDelta(t, 8.0, ev, 1e-9)
}

func TestExpectedValueUndefined(t *testing.T) {
	_, ok := ExpectedValue(60, 1.0)
	assert.False(t, ok)
	_, ok = ExpectedValue(60, 0)
	assert.False(t, ok)
}

func TestFairImpliedProbability(t *testing.T) {
	// Multiplicative margin removal: implied 50% at a 6% margin
	assert.InDelta(t, 47.0, FairImpliedProbability(2.0), 1e-9)
}

func TestEdgePoints(t *testing.T) {
	edge, ok := EdgePoints(60, 2.0)
	assert.True(t, ok)
	assert.InDelta(t, 13.0, edge, 1e-9)

	_, ok = EdgePoints(60, 1.0)
	assert.False(t, ok)
}

func TestRemoveVig2(t *testing.T) {
	a, b := RemoveVig2(1.9, 1.9)
	assert.InDelta(t, 50.0, a, 1e-9)
	assert.InDelta(t, 50.0, b, 1e-9)
	assert.InDelta(t, 100.0, a+b, 1e-9)
}

func TestRiskTierBoundaries(t *testing.T) {
	assert.Equal(t, RiskModerate, RiskTierFor(88.0), "boundary values fall into the riskier tier")
	assert.Equal(t, RiskLow, RiskTierFor(88.1))
	assert.Equal(t, RiskHigh, RiskTierFor(78.0))
	assert.Equal(t, RiskModerate, RiskTierFor(78.1))
	assert.Equal(t, RiskVeryHigh, RiskTierFor(68.0))
	assert.Equal(t, RiskHigh, RiskTierFor(68.1))
	assert.Equal(t, RiskVeryHigh, RiskTierFor(12.0))
}

func TestVerdictBands(t *testing.T) {
	assert.Equal(t, "High confidence", Verdict(90))
	assert.Equal(t, "Favorable", Verdict(80))
	assert.Equal(t, "Slight lean", Verdict(65))
	assert.Equal(t, "Tight game", Verdict(40))
}
