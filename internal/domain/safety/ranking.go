package safety

import (
	"sort"
)

// Rank orders a batch of evaluated routes from safest to least safe and
// assigns ranks in place. Ties on the composite score break by shorter
// distance, then shorter duration, then lexicographic route id, so the order
// is total and reproducible. Exactly the rank-0 route gets IsSafest.
func Rank(batch []*EvaluatedRoute) error {
	if len(batch) == 0 {
		return &EmptyBatchError{}
	}

	sort.SliceStable(batch, func(i, j int) bool {
		a, b := batch[i], batch[j]
		if a.Composite != b.Composite {
			return a.Composite < b.Composite
		}
		if a.Route.DistanceMeters != b.Route.DistanceMeters {
			return a.Route.DistanceMeters < b.Route.DistanceMeters
		}
		if a.Route.DurationSeconds != b.Route.DurationSeconds {
			return a.Route.DurationSeconds < b.Route.DurationSeconds
		}
		return a.Route.ID < b.Route.ID
	})

	for i, er := range batch {
		er.Rank = i
		er.IsSafest = i == 0
	}

	return nil
}
