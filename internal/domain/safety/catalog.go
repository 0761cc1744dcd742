// Package safety implements the multi-criteria route safety evaluation
// engine: factor extraction, composite scoring, ranking, justification and
// metric presentation. Scores follow a single direction everywhere: lower
// means safer.
package safety

import (
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
)

// FactorKey is the stable identifier of one safety dimension.
type FactorKey string

const (
	FactorSchoolZoneProximity FactorKey = "schoolZoneProximity"
	FactorResidentialDensity  FactorKey = "residentialDensity"
	FactorRoadGrade           FactorKey = "roadGrade"
	FactorSharpTurns          FactorKey = "sharpTurns"
	FactorRoadWidth           FactorKey = "roadWidth"
	FactorHazmatRestrictions  FactorKey = "hazmatRestrictions"
	FactorSpeedSafety         FactorKey = "speedSafety"
	FactorTrafficDensity      FactorKey = "trafficDensity"
	FactorEmergencyAccess     FactorKey = "emergencyAccess"
	FactorWeatherRisks        FactorKey = "weatherRisks"
)

// Raw factor scores are clamped into [MinRawScore, MaxRawScore].
const (
	MinRawScore = 0.0
	MaxRawScore = 10.0
)

// SafetyFactor is one measured risk dimension of a route. Score is the raw
// risk in [0,10], higher riskier.
type SafetyFactor struct {
	Key         FactorKey `json:"key"`
	Score       float64   `json:"score"`
	Weight      float64   `json:"weight"`
	Description string    `json:"description"`
}

// WeightedContribution is the factor's share of the composite numerator.
func (f SafetyFactor) WeightedContribution() float64 {
	return f.Score * f.Weight
}

// CatalogEntry declares one factor of the catalog: key, weight and
// human-readable description.
type CatalogEntry struct {
	Key         FactorKey
	Weight      float64
	Description string
}

// Catalog is the fixed, ordered set of safety dimensions every route in a
// batch is evaluated against. Declaration order is the tie-break order for
// justification rendering.
type Catalog []CatalogEntry

// DefaultCatalog returns the standard tanker-routing factor catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		{Key: FactorSchoolZoneProximity, Weight: 2.0, Description: "Proximity to school zones"},
		{Key: FactorResidentialDensity, Weight: 1.5, Description: "Population density in residential areas"},
		{Key: FactorRoadGrade, Weight: 1.8, Description: "Steepness of road inclines"},
		{Key: FactorSharpTurns, Weight: 1.6, Description: "Presence of sharp turns"},
		{Key: FactorRoadWidth, Weight: 1.7, Description: "Road width constraints"},
		{Key: FactorHazmatRestrictions, Weight: 2.5, Description: "Hazmat transport restrictions"},
		{Key: FactorSpeedSafety, Weight: 1.4, Description: "Speed limits vs. safe tanker speeds"},
		{Key: FactorTrafficDensity, Weight: 1.3, Description: "Traffic congestion"},
		{Key: FactorEmergencyAccess, Weight: 1.5, Description: "Access for emergency services"},
		{Key: FactorWeatherRisks, Weight: 1.4, Description: "Weather-related risk factors"},
	}
}

// Index returns the declaration position of a key, or len(c) for unknown
// keys so they sort last.
func (c Catalog) Index(key FactorKey) int {
	for i, e := range c {
		if e.Key == key {
			return i
		}
	}
	return len(c)
}

// TotalWeight returns the sum of all factor weights.
func (c Catalog) TotalWeight() float64 {
	var total float64
	for _, e := range c {
		total += e.Weight
	}
	return total
}

// EvaluatedRoute is a route together with its evaluation results. Instances
// live for the duration of one calculation request.
type EvaluatedRoute struct {
	Route         *route.Route               `json:"route"`
	Factors       map[FactorKey]SafetyFactor `json:"factors"`
	Composite     float64                    `json:"composite"`
	Display       float64                    `json:"display"`
	Rank          int                        `json:"rank"`
	IsSafest      bool                       `json:"is_safest"`
	Justification string                     `json:"justification"`
}

func clampRaw(score float64) float64 {
	if score < MinRawScore {
		return MinRawScore
	}
	if score > MaxRawScore {
		return MaxRawScore
	}
	return score
}
