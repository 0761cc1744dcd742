package safety

import (
	"fmt"
	"sort"
	"strings"
)

// Justify renders the explanation text for one evaluated route: the factors
// with the lowest weighted contributions are presented as favorable, the
// highest as concerning. The function is pure; equal contributions keep
// catalog declaration order.
func Justify(er *EvaluatedRoute, catalog Catalog) string {
	factors := make([]SafetyFactor, 0, len(er.Factors))
	for _, entry := range catalog {
		if f, ok := er.Factors[entry.Key]; ok {
			factors = append(factors, f)
		}
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].WeightedContribution() < factors[j].WeightedContribution()
	})

	favorableCount, concerningCount := splitCounts(len(factors))
	favorable := describe(factors[:favorableCount])
	concerning := describe(factors[len(factors)-concerningCount:])

	return fmt.Sprintf(
		"This route covers %s in about %s and was evaluated against the full safety catalog. "+
			"The most favorable aspects are: %s. Areas of concern include: %s.",
		FormatDistance(er.Route.DistanceMeters),
		FormatDuration(er.Route.DurationSeconds),
		favorable,
		concerning,
	)
}

// splitCounts returns how many factors to present on each side. With six or
// more factors both sides get three; smaller catalogs split evenly with the
// odd factor going to the favorable side.
func splitCounts(n int) (favorable, concerning int) {
	if n >= 6 {
		return 3, 3
	}
	favorable = (n + 1) / 2
	return favorable, n - favorable
}

func describe(factors []SafetyFactor) string {
	if len(factors) == 0 {
		return "none"
	}
	parts := make([]string, len(factors))
	for i, f := range factors {
		parts[i] = f.Description
	}
	return strings.Join(parts, ", ")
}

// FormatDistance renders meters as a kilometer string, e.g. "12.5 km".
func FormatDistance(meters int) string {
	return fmt.Sprintf("%.1f km", float64(meters)/1000.0)
}

// FormatDuration renders seconds as a compact duration, e.g. "1 h 5 min".
func FormatDuration(seconds int) string {
	minutes := (seconds + 30) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	rem := minutes % 60
	if rem == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, rem)
}
