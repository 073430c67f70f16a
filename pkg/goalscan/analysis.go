package goalscan

import (
	"fmt"
	"strings"

	"github.com/goalscanpro/goalscan/internal/logger"
)

// Analysis pipeline. Maps a fully formed request to a deterministic
// result with no I/O and no hidden state; callers resolve any network
// or storage work (table ingestion, AI estimates, market odds) before
// invoking the engine, so it is safe to run concurrently per fixture.

// AIEstimateInput is the probability/confidence pair supplied by the
// external AI collaborator
type AIEstimateInput struct {
	Probability float64 `json:"probability"`
	Confidence  float64 `json:"confidence"`
}

// FixtureStats holds both teams' scoped snapshots for one data source
type FixtureStats struct {
	Home *TeamScopedStats `json:"home,omitempty"`
	Away *TeamScopedStats `json:"away,omitempty"`
}

// AnalysisRequest carries everything the engine needs for one fixture.
// Sentinels follow the provider contract: negative AIProbability means
// no AI estimate was produced, CompetitionAvgOver15 <= 0 means no
// baseline exists, MarketOdd <= 1 means no usable price.
type AnalysisRequest struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`

	Form  *FixtureStats `json:"form,omitempty"`
	Table *FixtureStats `json:"table,omitempty"`

	CompetitionAvgOver15 float64 `json:"competitionAvgOver15,omitempty"`

	// Externally produced estimate, opaque to the engine; nil when the
	// AI collaborator returned nothing
	AI *AIEstimateInput `json:"ai,omitempty"`

	MarketOdd   float64 `json:"marketOdd,omitempty"`
	OppositeOdd float64 `json:"oppositeOdd,omitempty"`

	Selections []SelectedBet `json:"selections,omitempty"`
}

// AnalysisResult is the full bundle handed back to collaborators
type AnalysisResult struct {
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`

	Combined   *CombinedResult   `json:"combined"`
	Sources    []*SourceEstimate `json:"sources"`
	Confidence float64           `json:"confidence"`

	Grid    *ThresholdGrid `json:"grid"`
	BTTS    float64        `json:"btts"`
	Outcome MatchOutcome   `json:"outcome"`

	SelectionProbability float64 `json:"selectionProbability"`

	EV      float64 `json:"ev"`
	HasEV   bool    `json:"hasEv"`
	EdgePp  float64 `json:"edgePp"`
	HasEdge bool    `json:"hasEdge"`

	// Vig-free market probability when both sides of the line priced
	MarketFairPct float64 `json:"marketFairPct,omitempty"`

	Risk    RiskTier `json:"risk"`
	Verdict string   `json:"verdict"`
}

// Validate checks the only hard-error class: a request without team
// identifiers has no statistically meaningful fallback
func (r *AnalysisRequest) Validate() error {
	if r == nil {
		return fmt.Errorf("analysis request must not be nil")
	}
	if strings.TrimSpace(r.HomeTeam) == "" || strings.TrimSpace(r.AwayTeam) == "" {
		return fmt.Errorf("both home and away team names are required")
	}
	return nil
}

// Analyze runs the full pipeline for one fixture. Degenerate data never
// fails: missing statistics fall back to the competition average or the
// neutral goal rate with reduced confidence, and an out-of-range AI
// estimate is silently discarded.
func Analyze(req *AnalysisRequest) (*AnalysisResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	statistical := BuildSourceEstimate(SourceStatistical, scoped(req.Form, ScopeHome), scoped(req.Form, ScopeAway))
	table := BuildSourceEstimate(SourceTable, scoped(req.Table, ScopeHome), scoped(req.Table, ScopeAway))

	if statistical == nil {
		if table == nil && req.CompetitionAvgOver15 > 0 {
			logger.Debug("No usable statistics, using competition average baseline", req.HomeTeam, req.AwayTeam)
			statistical = NewBaselineEstimate(req.CompetitionAvgOver15)
		} else {
			logger.Debug("No recent-form statistics, using neutral goal rates", req.HomeTeam, req.AwayTeam)
			statistical = neutralEstimate()
		}
	}

	var ai *SourceEstimate
	if req.AI != nil {
		ai = NewAIEstimate(req.AI.Probability, req.AI.Confidence)
		if ai == nil {
			logger.Warn("Discarding out-of-range AI estimate", req.AI.Probability, req.AI.Confidence)
		}
	}

	combined := Fuse(statistical, table, ai)
	grid := BuildThresholdGrid(combined.LambdaHome, combined.LambdaAway)

	sources := []*SourceEstimate{statistical}
	if table != nil {
		sources = append(sources, table)
	}
	if ai != nil {
		sources = append(sources, ai)
	}

	result := &AnalysisResult{
		HomeTeam:   req.HomeTeam,
		AwayTeam:   req.AwayTeam,
		Combined:   combined,
		Sources:    sources,
		Confidence: overallConfidence(sources, combined.Weights),
		Grid:       grid,
		BTTS:       roundToDecimalPlaces(BothTeamsToScore(combined.LambdaHome, combined.LambdaAway), 2),
		Outcome:    OutcomeProbabilities(combined.LambdaHome, combined.LambdaAway),
		Risk:       RiskTierFor(combined.Probability),
		Verdict:    Verdict(combined.Probability),
	}

	result.SelectionProbability = selectionProbability(grid, combined.Probability, req.Selections)

	if ev, ok := ExpectedValue(result.SelectionProbability, req.MarketOdd); ok {
		result.EV = ev
		result.HasEV = true
	}
	if edge, ok := EdgePoints(result.SelectionProbability, req.MarketOdd); ok {
		result.EdgePp = edge
		result.HasEdge = true
	}
	if req.MarketOdd > 1.0 && req.OppositeOdd > 1.0 {
		fair, _ := RemoveVig2(req.MarketOdd, req.OppositeOdd)
		result.MarketFairPct = roundToDecimalPlaces(fair, 2)
	}

	return result, nil
}

// scoped picks one team's snapshot for its venue, nil-safe
func scoped(fs *FixtureStats, scope StatScope) *TeamGoalStats {
	if fs == nil {
		return nil
	}
	if scope == ScopeHome {
		return fs.Home.ForScope(ScopeHome)
	}
	return fs.Away.ForScope(ScopeAway)
}

// neutralEstimate is the last-resort statistical estimate: both sides
// at the neutral goal rate, confidence at the floor
func neutralEstimate() *SourceEstimate {
	rate := GetNeutralGoalRate()
	matrix := ScoreMatrix(rate, rate)
	return &SourceEstimate{
		Value:      roundToDecimalPlaces(OverProbability(matrix, Config.ReferenceLine), 2),
		Confidence: Config.BaseConfidence,
		Tag:        SourceStatistical,
		LambdaHome: rate,
		LambdaAway: rate,
		HasLambda:  true,
	}
}

// selectionProbability resolves the probability the value metrics are
// computed against: the compound range for two legs, the grid value for
// one leg, the combined probability otherwise
func selectionProbability(grid *ThresholdGrid, combinedPct float64, selections []SelectedBet) float64 {
	switch len(selections) {
	case 1:
		if p := grid.SelectionProbability(selections[0]); p >= 0 {
			return p
		}
		return combinedPct
	case 2:
		over, under := selections[0], selections[1]
		if over.Type != BetOver {
			over, under = under, over
		}
		if over.Type != BetOver || under.Type != BetUnder {
			return 0
		}
		return grid.RangeProbability(over, under)
	default:
		return combinedPct
	}
}

// overallConfidence blends the source confidences by their realized
// fusion weights; a source that reported none contributes the default
// external blend expressed on the confidence scale
func overallConfidence(sources []*SourceEstimate, weights map[SourceTag]float64) float64 {
	total := 0.0
	for _, s := range sources {
		w, ok := weights[s.Tag]
		if !ok {
			continue
		}
		c := s.Confidence
		if c < 0 {
			c = Config.DefaultExternalWeight * 100.0
		}
		total += w * c
	}
	return roundToDecimalPlaces(clampFloat(total, 0, Config.MaxConfidence), 2)
}
