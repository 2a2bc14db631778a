package domain

import "sort"

// Rank scores every record, sorts descending by rounded score, truncates to
// the query's display limit, and builds the response envelope. The sort is
// stable: ties keep their original upstream order.
func Rank(q SearchQuery, records []BusinessRecord) *SearchResponse {
	scored := make([]ScoredResult, 0, len(records))
	for _, rec := range records {
		scored = append(scored, ScoredResult{
			BusinessRecord: rec,
			Score:          RoundScore(CredibilityScore(rec.Rating, rec.ReviewCount)),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > q.Limit {
		scored = scored[:q.Limit]
	}

	return &SearchResponse{
		Term:        q.Term,
		Center:      Center{Lat: q.Lat, Lng: q.Lng, RadiusM: q.RadiusM},
		Count:       len(scored),
		Results:     scored,
		Attribution: Attribution,
	}
}
