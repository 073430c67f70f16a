package goalscan

// Goal rate estimation. Turns one source's raw statistics into a pair
// of expected-goals rates, one per side, which seed the Poisson model.

// EstimateGoalRates derives the expected goals for each side of a
// fixture from a single source's snapshots. The home snapshot should
// carry home-scope statistics and the away snapshot away-scope ones;
// the caller picks scopes via TeamScopedStats.ForScope.
//
// Each side's rate is the mean of its own attack strength and the
// opposition's defensive leak. Non-finite or negative inputs are
// substituted with the neutral default rather than failing, so the
// downstream Poisson math is always well defined.
func EstimateGoalRates(home, away *TeamGoalStats) (lambdaHome, lambdaAway float64) {
	homeAttack := attackStrength(home)
	awayAttack := attackStrength(away)
	homeLeak := defenseLeak(home)
	awayLeak := defenseLeak(away)

	lambdaHome = (homeAttack + awayLeak) / 2.0
	lambdaAway = (awayAttack + homeLeak) / 2.0

	lambdaHome = clampFloat(lambdaHome, Config.MinGoalRate, Config.MaxGoalRate)
	lambdaAway = clampFloat(lambdaAway, Config.MinGoalRate, Config.MaxGoalRate)
	return lambdaHome, lambdaAway
}

// attackStrength blends raw scoring average with the xG quality signal
// when the provider supplied one, otherwise uses the raw average alone
func attackStrength(s *TeamGoalStats) float64 {
	if s == nil {
		return GetNeutralGoalRate()
	}
	raw := sanitizeRate(s.AvgGoalsScored)
	if raw == 0 {
		raw = GetNeutralGoalRate()
	}
	if !s.HasQualityMetrics() {
		return raw
	}
	quality := sanitizeRate(s.AvgXG)
	return Config.RawGoalsWeight*raw + Config.QualityWeight*quality
}

// defenseLeak mirrors attackStrength for goals conceded
func defenseLeak(s *TeamGoalStats) float64 {
	if s == nil {
		return GetNeutralGoalRate()
	}
	raw := sanitizeRate(s.AvgGoalsConceded)
	if raw == 0 {
		raw = GetNeutralGoalRate()
	}
	if !s.HasQualityMetrics() {
		return raw
	}
	quality := sanitizeRate(s.AvgXGAgainst)
	return Config.RawGoalsWeight*raw + Config.QualityWeight*quality
}
