package goalscan

import "math"

// Threshold grid. All over/under lines are derived from one shared
// goal-rate pair, never edited piecewise, so the displayed markets are
// mutually consistent by construction: Over is non-increasing in the
// line and every cell satisfies over + under = 100.

// GridLine is one row of the threshold grid
type GridLine struct {
	Line  float64 `json:"line"`
	Over  float64 `json:"over"`
	Under float64 `json:"under"`
}

// ThresholdGrid is the ordered over/under table for lines 0.5 through 5.5
type ThresholdGrid struct {
	Lines []GridLine `json:"lines"`
}

// BetType selects the side of an over/under line
type BetType string

const (
	BetOver  BetType = "over"
	BetUnder BetType = "under"
)

// SelectedBet is one user-selected over/under leg
type SelectedBet struct {
	Line        float64 `json:"line"`
	Type        BetType `json:"type"`
	Probability float64 `json:"probability"`
}

// BuildThresholdGrid expands a goal-rate pair into the full grid. The
// score matrix is computed once and every line is read from it.
func BuildThresholdGrid(lambdaHome, lambdaAway float64) *ThresholdGrid {
	matrix := ScoreMatrix(lambdaHome, lambdaAway)

	grid := &ThresholdGrid{}
	for line := Config.GridFirstLine; line <= Config.GridLastLine+1e-9; line += Config.GridLineStep {
		under := UnderProbability(matrix, line)
		grid.Lines = append(grid.Lines, GridLine{
			Line:  line,
			Over:  roundToDecimalPlaces(100.0-under, 2),
			Under: roundToDecimalPlaces(under, 2),
		})
	}
	return grid
}

// Under returns the under probability at the given line, or -1 when the
// line is not part of the grid
func (g *ThresholdGrid) Under(line float64) float64 {
	for _, l := range g.Lines {
		if math.Abs(l.Line-line) < 1e-9 {
			return l.Under
		}
	}
	return -1
}

// Over returns the over probability at the given line, or -1 when the
// line is not part of the grid
func (g *ThresholdGrid) Over(line float64) float64 {
	for _, l := range g.Lines {
		if math.Abs(l.Line-line) < 1e-9 {
			return l.Over
		}
	}
	return -1
}

// SelectionProbability reads a single selection's probability straight
// from the grid
func (g *ThresholdGrid) SelectionProbability(bet SelectedBet) float64 {
	if bet.Type == BetUnder {
		return g.Under(bet.Line)
	}
	return g.Over(bet.Line)
}

// RangeProbability evaluates a compound two-sided selection, over at
// the lower line plus under at the upper line. The result is the
// cumulative-distribution difference Under(upper) - Under(lower); the
// two legs describe overlapping regions of one distribution, so
// multiplying their probabilities would be wrong. An inverted pairing
// is a legitimate transient UI state and evaluates to the empty range.
func (g *ThresholdGrid) RangeProbability(over, under SelectedBet) float64 {
	if over.Line >= under.Line {
		return 0
	}
	upper := g.Under(under.Line)
	lower := g.Under(over.Line)
	if upper < 0 || lower < 0 {
		return 0
	}
	return roundToDecimalPlaces(upper-lower, 2)
}
