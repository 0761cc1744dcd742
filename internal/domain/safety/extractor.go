package safety

import (
	"context"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
)

// RoadClass is the structural classification of a step's road.
type RoadClass string

const (
	RoadHighway  RoadClass = "highway"
	RoadArterial RoadClass = "arterial"
	RoadLocal    RoadClass = "local"
	RoadUnpaved  RoadClass = "unpaved"
)

// StepAttributes are the structured road attributes the classification
// capability derives for one step. The extractor scores rubrics over these
// attributes instead of matching instruction text.
type StepAttributes struct {
	RoadClass         RoadClass
	SpeedLimitKph     int
	GradePercent      float64
	Narrow            bool
	InSchoolZone      bool
	InResidentialZone bool
	HazmatRestricted  bool
	Tunnel            bool
	Bridge            bool
}

// StepClassifier is the supplied classification capability: given a step it
// returns structured attributes. Implementations must be deterministic for
// identical inputs.
type StepClassifier interface {
	Classify(ctx context.Context, step route.Step) (StepAttributes, error)
}

// ExtractionInput bundles everything one route's extraction depends on.
// EvaluationTime is the explicit time-of-day input for school-hours and
// night weighting; the extractor never reads the system clock.
type ExtractionInput struct {
	Route          *route.Route
	Vehicle        VehicleSpec
	CargoClass     string
	SchoolZones    []zone.Zone
	HazmatZones    []zone.Zone
	EvaluationTime time.Time
}

// Extractor derives the raw factor scores for one route. Extraction is pure:
// identical inputs always produce identical scores.
type Extractor struct {
	catalog    Catalog
	classifier StepClassifier
}

// NewExtractor creates an Extractor over the given catalog and
// classification capability.
func NewExtractor(catalog Catalog, classifier StepClassifier) *Extractor {
	return &Extractor{catalog: catalog, classifier: classifier}
}

// Rubric penalty constants. All raw scores are risk values in [0,10],
// higher = riskier, clamped after accumulation.
const (
	schoolZonePenalty      = 2.0
	schoolHoursExtra       = 1.0
	residentialStepPenalty = 1.5
	denseGridPenalty       = 1.0
	denseGridStepMeters    = 500
	steepGradePenalty      = 2.0
	moderateGradePenalty   = 1.0
	steepGradePercent      = 6.0
	moderateGradePercent   = 3.0
	sharpTurnPenalty       = 1.5
	unpavedPenalty         = 2.5
	narrowPenalty          = 1.5
	hazmatClassPenalty     = 4.0
	hazmatOtherPenalty     = 2.0
	hazmatSegmentPenalty   = 2.0
	speedExcessPenalty     = 1.5
	tunnelPenalty          = 2.0
	bridgePenalty          = 1.0
	offHighwayPenalty      = 0.5
	nightPenalty           = 3.0
	longHaulPenalty        = 2.0
	longHaulSeconds        = 7200
	weatherBaseRisk        = 1.0
)

// Extract computes the route's raw score per catalog factor. A classifier
// failure aborts the route with a PartialExtractionError; sibling routes are
// unaffected.
func (e *Extractor) Extract(ctx context.Context, in ExtractionInput) (map[FactorKey]SafetyFactor, error) {
	raw := make(map[FactorKey]float64, len(e.catalog))

	for _, step := range in.Route.Steps() {
		attrs, err := e.classifier.Classify(ctx, step)
		if err != nil {
			return nil, &PartialExtractionError{RouteID: in.Route.ID, Err: err}
		}

		raw[FactorSchoolZoneProximity] += e.schoolZoneRisk(step, attrs, in)
		raw[FactorResidentialDensity] += residentialRisk(step, attrs)
		raw[FactorRoadGrade] += gradeRisk(attrs)
		raw[FactorSharpTurns] += turnRisk(step)
		raw[FactorRoadWidth] += widthRisk(attrs)
		raw[FactorHazmatRestrictions] += e.hazmatRisk(step, attrs, in)
		raw[FactorSpeedSafety] += speedRisk(attrs, in.Vehicle)
		raw[FactorEmergencyAccess] += accessRisk(attrs)
	}

	raw[FactorTrafficDensity] = trafficRisk(in.Route)
	raw[FactorWeatherRisks] = weatherRisk(in.Route, in.EvaluationTime)

	factors := make(map[FactorKey]SafetyFactor, len(e.catalog))
	for _, entry := range e.catalog {
		factors[entry.Key] = SafetyFactor{
			Key:         entry.Key,
			Score:       clampRaw(raw[entry.Key]),
			Weight:      entry.Weight,
			Description: entry.Description,
		}
	}

	return factors, nil
}

func (e *Extractor) schoolZoneRisk(step route.Step, attrs StepAttributes, in ExtractionInput) float64 {
	inZone := attrs.InSchoolZone
	if !inZone {
		for _, z := range in.SchoolZones {
			if z.IntersectsPath(step.Path) {
				inZone = true
				break
			}
		}
	}
	if !inZone {
		return 0
	}

	risk := schoolZonePenalty
	if isSchoolHours(in.EvaluationTime) {
		risk += schoolHoursExtra
	}
	return risk
}

func isSchoolHours(t time.Time) bool {
	hour := t.Hour()
	return hour >= 7 && hour <= 16
}

func residentialRisk(step route.Step, attrs StepAttributes) float64 {
	var risk float64
	if attrs.InResidentialZone {
		risk += residentialStepPenalty
	}
	// Short segments indicate a dense street grid.
	if step.DistanceMeters > 0 && step.DistanceMeters < denseGridStepMeters {
		risk += denseGridPenalty
	}
	return risk
}

func gradeRisk(attrs StepAttributes) float64 {
	switch {
	case attrs.GradePercent >= steepGradePercent:
		return steepGradePenalty
	case attrs.GradePercent >= moderateGradePercent:
		return moderateGradePenalty
	}
	return 0
}

func turnRisk(step route.Step) float64 {
	if step.Maneuver.IsSharp() {
		return sharpTurnPenalty
	}
	return 0
}

func widthRisk(attrs StepAttributes) float64 {
	var risk float64
	if attrs.RoadClass == RoadUnpaved {
		risk += unpavedPenalty
	}
	if attrs.Narrow {
		risk += narrowPenalty
	}
	return risk
}

func (e *Extractor) hazmatRisk(step route.Step, attrs StepAttributes, in ExtractionInput) float64 {
	var risk float64
	if attrs.HazmatRestricted {
		risk += hazmatSegmentPenalty
	}
	for _, z := range in.HazmatZones {
		if !z.IntersectsPath(step.Path) {
			continue
		}
		if z.RestrictsClass(in.CargoClass) {
			risk += hazmatClassPenalty
		} else {
			risk += hazmatOtherPenalty
		}
	}
	return risk
}

func speedRisk(attrs StepAttributes, vehicle VehicleSpec) float64 {
	if attrs.SpeedLimitKph > vehicle.SafeSpeedKph {
		return speedExcessPenalty
	}
	return 0
}

func accessRisk(attrs StepAttributes) float64 {
	var risk float64
	if attrs.Tunnel {
		risk += tunnelPenalty
	}
	if attrs.Bridge {
		risk += bridgePenalty
	}
	if attrs.RoadClass != RoadHighway {
		risk += offHighwayPenalty
	}
	return risk
}

func trafficRisk(r *route.Route) float64 {
	ratio := r.TrafficRatio()
	switch {
	case ratio > 1.5:
		return 8
	case ratio > 1.2:
		return 5
	case ratio > 1.05:
		return 2.5
	}
	return 1
}

func weatherRisk(r *route.Route, at time.Time) float64 {
	risk := weatherBaseRisk
	if hour := at.Hour(); hour < 6 || hour > 18 {
		risk += nightPenalty
	}
	if r.DurationSeconds > longHaulSeconds {
		risk += longHaulPenalty
	}
	return risk
}
