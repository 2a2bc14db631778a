package domain

import "math"

// Bayesian damping parameters. See the package doc for the derivation.
const (
	// PriorRating is the assumed rating of a business with zero reviews.
	PriorRating = 3.8

	// DampingFactor is the review count at which the observed rating and
	// the prior are weighted equally.
	DampingFactor = 150.0
)

// CredibilityScore blends a raw rating with the global prior, weighted by
// review volume: (v/(v+m))·R + (m/(v+m))·C. Deterministic and pure; negative
// or missing review counts are treated as zero, which yields exactly the
// prior.
func CredibilityScore(rating float64, reviewCount int) float64 {
	if reviewCount < 0 {
		reviewCount = 0
	}
	v := float64(reviewCount)
	return (v/(v+DampingFactor))*rating + (DampingFactor/(v+DampingFactor))*PriorRating
}

// RoundScore rounds a score to two decimals, the precision used for both
// sorting and display.
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
