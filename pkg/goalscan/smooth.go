package goalscan

import "math"

// Shared numeric helpers used across the engine. Every bounding or
// adjustment function here is continuous: infinitesimally different
// inputs must never produce a jump in the output.

// sigmoid is the standard logistic function
func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// smoothStep maps x relative to a pivot onto (-1, 1), crossing zero at
// the pivot. Steepness controls how quickly it saturates either side.
func smoothStep(x, pivot, steepness float64) float64 {
	return 2.0*sigmoid(steepness*(x-pivot)) - 1.0
}

// smoothClamp bounds p to (low, high). The inner region passes through
// unchanged; within the taper band at each end a tanh taper bends the
// value so it approaches the bound asymptotically instead of hitting a
// hard wall. Continuous with slope 1 at the band edges.
func smoothClamp(p, low, high float64) float64 {
	band := Config.ClampTaperFraction * (high - low)
	if band <= 0 {
		return math.Min(math.Max(p, low), high)
	}

	upperEdge := high - band
	lowerEdge := low + band

	switch {
	case p > upperEdge:
		return upperEdge + band*math.Tanh((p-upperEdge)/band)
	case p < lowerEdge:
		return lowerEdge - band*math.Tanh((lowerEdge-p)/band)
	default:
		return p
	}
}

// makeSensible ensures a value is not zero to avoid division by zero
func makeSensible(value float64) float64 {
	if value == 0.0 {
		return GetNeutralGoalRate()
	}
	return value
}

// sanitizeRate substitutes the neutral default for non-finite or
// negative rate inputs so downstream Poisson math stays well defined
func sanitizeRate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return GetNeutralGoalRate()
	}
	return v
}

// isValidPercent reports whether v is a usable percentage in [0, 100]
func isValidPercent(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0 && v <= 100
}

// clampFloat bounds v to [low, high] with hard edges
func clampFloat(v, low, high float64) float64 {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// roundToDecimalPlaces rounds to the given number of decimal places
func roundToDecimalPlaces(value float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(value*shift) / shift
}
