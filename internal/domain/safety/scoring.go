package safety

import (
	"fmt"
	"math"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
)

// The composite score is the weighted mean of the raw factor scores:
//
//	composite = Σ(score × weight) / Σ(weight)
//
// which keeps it inside [0,10] regardless of catalog size. The published
// display score rescales linearly to 0-100. Lower always means safer.

// DisplayScale maps the composite range [0,10] onto the display range
// [0,100].
const DisplayScale = 10.0

// Score attaches factor scores and the composite to a route. Ranking and
// justification happen separately, over the whole batch.
func Score(r *route.Route, factors map[FactorKey]SafetyFactor) *EvaluatedRoute {
	var weighted, totalWeight float64
	for _, f := range factors {
		weighted += f.WeightedContribution()
		totalWeight += f.Weight
	}

	var composite float64
	if totalWeight > 0 {
		composite = weighted / totalWeight
	}

	return &EvaluatedRoute{
		Route:     r,
		Factors:   factors,
		Composite: composite,
		Display:   composite * DisplayScale,
	}
}

// DisplayColor renders the display score as a green-to-red ramp for map
// polylines. Safer routes come out greener.
func DisplayColor(display float64) string {
	normalized := math.Min(math.Max(display, 0), 100)
	red := int(255 * normalized / 100)
	green := int(255 * (1 - normalized/100))
	return fmt.Sprintf("rgb(%d, %d, 0)", red, green)
}
