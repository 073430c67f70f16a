package goalscan

import "math"

// Analytic Poisson goal model. The joint score distribution is the
// outer product of two independent per-side distributions; treating the
// sides as independent is an explicit simplifying choice, with the
// Dixon-Coles correction recovering the observed low-score correlation
// for the 1X2 market.

// MatchOutcome holds the 1X2 probabilities derived from the score matrix
type MatchOutcome struct {
	HomeWin float64 `json:"homeWin"`
	Draw    float64 `json:"draw"`
	AwayWin float64 `json:"awayWin"`
}

// goalDistribution computes P(X=k) for k=0..n, n chosen so that the
// truncated tail mass is negligible. The terms are built iteratively
// (p_k = p_{k-1} * lambda / k) so no factorial or power ever overflows.
func goalDistribution(lambda float64) []float64 {
	lambda = sanitizeRate(lambda)
	if lambda == 0 {
		lambda = GetNeutralGoalRate()
	}

	probs := make([]float64, 0, Config.PoissonMaxGoals+1)
	p := math.Exp(-lambda)
	probs = append(probs, p)

	for k := 1; k <= Config.PoissonMaxGoals; k++ {
		p = p * lambda / float64(k)
		probs = append(probs, p)
		if k >= Config.PoissonMinGoals && p < Config.TailEpsilon {
			break
		}
	}
	return probs
}

// ScoreMatrix returns the joint probability of every final score (h, a)
// as matrix[h][a], assuming per-side independence
func ScoreMatrix(lambdaHome, lambdaAway float64) [][]float64 {
	homeProbs := goalDistribution(lambdaHome)
	awayProbs := goalDistribution(lambdaAway)

	matrix := make([][]float64, len(homeProbs))
	for h := range homeProbs {
		matrix[h] = make([]float64, len(awayProbs))
		for a := range awayProbs {
			matrix[h][a] = homeProbs[h] * awayProbs[a]
		}
	}
	return matrix
}

// UnderProbability returns P(total goals <= floor(line)) * 100 from a
// joint score matrix
func UnderProbability(matrix [][]float64, line float64) float64 {
	limit := int(math.Floor(line))
	total := 0.0
	for h := range matrix {
		for a := range matrix[h] {
			if h+a <= limit {
				total += matrix[h][a]
			}
		}
	}
	return total * 100.0
}

// OverProbability is the complement of UnderProbability on the same matrix
func OverProbability(matrix [][]float64, line float64) float64 {
	return 100.0 - UnderProbability(matrix, line)
}

// BothTeamsToScore returns the probability that neither side keeps a
// clean sheet, as a percentage
func BothTeamsToScore(lambdaHome, lambdaAway float64) float64 {
	lambdaHome = sanitizeRate(lambdaHome)
	lambdaAway = sanitizeRate(lambdaAway)
	return (1.0 - math.Exp(-lambdaHome)) * (1.0 - math.Exp(-lambdaAway)) * 100.0
}

// OutcomeProbabilities computes 1X2 probabilities from the lambda pair,
// applying the Dixon-Coles low-score correction before aggregating the
// matrix triangles
func OutcomeProbabilities(lambdaHome, lambdaAway float64) MatchOutcome {
	matrix := ScoreMatrix(lambdaHome, lambdaAway)
	corrected := dixonColesCorrection(matrix, lambdaHome, lambdaAway)

	var home, draw, away float64
	for h := range corrected {
		for a := range corrected[h] {
			switch {
			case h > a:
				home += corrected[h][a]
			case h == a:
				draw += corrected[h][a]
			default:
				away += corrected[h][a]
			}
		}
	}

	return MatchOutcome{
		HomeWin: home * 100.0,
		Draw:    draw * 100.0,
		AwayWin: away * 100.0,
	}
}

// dixonColesCorrection adjusts the four low-score cells by the tau
// factors and renormalizes so the matrix still sums to one
func dixonColesCorrection(matrix [][]float64, lambdaHome, lambdaAway float64) [][]float64 {
	rho := GetDixonColesRho()

	corrected := make([][]float64, len(matrix))
	for i := range matrix {
		corrected[i] = make([]float64, len(matrix[i]))
		copy(corrected[i], matrix[i])
	}

	if len(corrected) > 1 && len(corrected[0]) > 1 {
		corrected[0][0] *= calculateTau(0, 0, lambdaHome, lambdaAway, rho)
		corrected[1][0] *= calculateTau(1, 0, lambdaHome, lambdaAway, rho)
		corrected[0][1] *= calculateTau(0, 1, lambdaHome, lambdaAway, rho)
		corrected[1][1] *= calculateTau(1, 1, lambdaHome, lambdaAway, rho)
	}

	return renormalizeMatrix(corrected)
}

// calculateTau computes the Dixon-Coles correction factor for specific scorelines
func calculateTau(homeGoals, awayGoals int, lambda1, lambda2, rho float64) float64 {
	if homeGoals == 0 && awayGoals == 0 {
		return 1 - lambda1*lambda2*rho
	} else if homeGoals == 0 && awayGoals == 1 {
		return 1 + lambda1*rho
	} else if homeGoals == 1 && awayGoals == 0 {
		return 1 + lambda2*rho
	} else if homeGoals == 1 && awayGoals == 1 {
		return 1 - rho
	}
	return 1.0
}

// renormalizeMatrix ensures all probabilities sum to 1 after correction
func renormalizeMatrix(matrix [][]float64) [][]float64 {
	total := 0.0
	for i := range matrix {
		for j := range matrix[i] {
			total += matrix[i][j]
		}
	}
	if total > 0 {
		for i := range matrix {
			for j := range matrix[i] {
				matrix[i][j] /= total
			}
		}
	}
	return matrix
}

// totalGoalsOverProbability returns P(total > line) * 100 for a single
// Poisson total-goals rate, used by the inverse search
func totalGoalsOverProbability(totalLambda, line float64) float64 {
	limit := int(math.Floor(line))
	p := math.Exp(-totalLambda)
	cdf := p
	for k := 1; k <= limit; k++ {
		p = p * totalLambda / float64(k)
		cdf += p
	}
	return (1.0 - cdf) * 100.0
}

// InferTotalLambda finds, by binary search, the total-goals rate whose
// Poisson distribution reproduces the given Over(line) percentage.
// Over(line) is monotonically increasing in the rate, so the search is
// well conditioned everywhere inside the bounds.
func InferTotalLambda(overPct, line float64) float64 {
	lo := Config.InferLambdaLow
	hi := Config.InferLambdaHigh

	if overPct <= totalGoalsOverProbability(lo, line) {
		return lo
	}
	if overPct >= totalGoalsOverProbability(hi, line) {
		return hi
	}

	for i := 0; i < Config.InferLambdaIter; i++ {
		mid := (lo + hi) / 2.0
		if totalGoalsOverProbability(mid, line) < overPct {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2.0
}
