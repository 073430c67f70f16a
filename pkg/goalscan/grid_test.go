package goalscan

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGridShapeAndComplement(t *testing.T) {
	grid := BuildThresholdGrid(1.4, 1.1)
	assert.Len(t, grid.Lines, 6)
	assert.Equal(t, 0.5, grid.Lines[0].Line)
	assert.Equal(t, 5.5, grid.Lines[5].Line)

	for _, l := range grid.Lines {
		assert.InDelta(t, 100.0, l.Over+l.Under, 0.02, "complement law at line %f", l.Line)
	}
}

func TestGridMonotonicity(t *testing.T) {
	for _, rates := range [][2]float64{{0.6, 0.4}, {1.4, 1.1}, {2.8, 2.1}} {
		grid := BuildThresholdGrid(rates[0], rates[1])
		for i := 1; i < len(grid.Lines); i++ {
			assert.GreaterOrEqual(t, grid.Lines[i-1].Over, grid.Lines[i].Over,
				"Over must be non-increasing in the line for rates %v", rates)
		}
	}
}

func TestRangeProbabilityIsCDFDifference(t *testing.T) {
	grid := BuildThresholdGrid(1.5, 1.1)
	over := SelectedBet{Line: 0.5, Type: BetOver}
	under := SelectedBet{Line: 4.5, Type: BetUnder}

	got := grid.RangeProbability(over, under)
	want := grid.Under(4.5) - grid.Under(0.5)
	assert.InDelta(t, want, got, 0.011)

	// The naive independence product would be a different (wrong) number
	naive := grid.Over(0.5) * grid.Under(4.5) / 100.0
	assert.Greater(t, math.Abs(naive-got), 0.5)
}

func TestInvertedRangeIsEmpty(t *testing.T) {
	grid := BuildThresholdGrid(1.5, 1.1)
	over := SelectedBet{Line: 3.5, Type: BetOver}
	under := SelectedBet{Line: 1.5, Type: BetUnder}
	assert.Equal(t, 0.0, grid.RangeProbability(over, under))

	equal := SelectedBet{Line: 1.5, Type: BetOver}
	assert.Equal(t, 0.0, grid.RangeProbability(equal, under))
}

func TestSelectionProbabilityLookup(t *testing.T) {
	grid := BuildThresholdGrid(1.5, 1.1)
	assert.Equal(t, grid.Over(1.5), grid.SelectionProbability(SelectedBet{Line: 1.5, Type: BetOver}))
	assert.Equal(t, grid.Under(2.5), grid.SelectionProbability(SelectedBet{Line: 2.5, Type: BetUnder}))
	assert.Equal(t, -1.0, grid.SelectionProbability(SelectedBet{Line: 9.5, Type: BetOver}))
}
