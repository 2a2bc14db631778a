// Package domain models local-business search queries and results.
//
// # Data Source
//
// Business records come from the Yelp Fusion business search endpoint
// (https://api.yelp.com/v3/businesses/search). Yelp orders results by its own
// relevance heuristic, not by rating credibility, so the service requests a
// pool several times larger than the display limit and re-ranks it locally
// before truncating. See [Rank].
//
// # Credibility Score
//
// Raw ratings overweight small samples: a 5.0 with three reviews beats a 4.6
// with twelve hundred. Scores are therefore damped toward a global prior with
// a Bayesian weighted average:
//
//	score = (v/(v+m))·R + (m/(v+m))·C
//
//	R = raw rating (0–5)
//	v = review count
//	C = prior rating, 3.8 — the assumed rating of an unreviewed business
//	m = damping constant, 150 — the review count at which R and C weigh equally
//
// At v=0 the score is exactly C; as v grows the score converges on R. Worked
// examples: a 5.0 with 3 reviews scores ≈3.88, a 4.6 with 1200 reviews scores
// ≈4.58. Scores are rounded to two decimals before sorting so the displayed
// order always agrees with the displayed scores.
//
// # Upstream Conventions
//
// Yelp field quirks handled during mapping:
//
//	rating        0–5 in half-star steps; absent → 0 (scored at the prior)
//	review_count  non-negative; absent → 0
//	price         display string "$".."$$$$"; the *inbound* price filter is
//	              the numeric tier set {1,2,3,4}
//	distance      meters as a float; truncated to an integer for output
//	location      display_address lines are joined with ", "
//	radius        capped at 40000 m (Yelp maximum)
//	limit         capped at 50 per page (Yelp maximum)
package domain
