// Package classify provides the default step-classification capability.
package classify

import (
	"context"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/safety"
)

// Speed thresholds in km/h for road-class bucketing.
const (
	highwaySpeedKph  = 80.0
	arterialSpeedKph = 50.0
	crawlSpeedKph    = 15.0
	narrowSpeedKph   = 25.0
)

// residentialStepMeters marks the step length below which a local road is
// treated as part of a residential street grid.
const residentialStepMeters = 500

// HeuristicClassifier derives step attributes from the step's structured
// fields only (maneuver kind, distance, duration). It never inspects
// instruction text, so results are independent of provider phrasing, and it
// is fully deterministic.
//
// Zone membership is left false here; the extractor resolves school and
// hazmat membership against the zone geofences itself.
type HeuristicClassifier struct{}

// NewHeuristicClassifier returns the default classifier.
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Classify buckets the step by its mean travel speed.
func (h *HeuristicClassifier) Classify(_ context.Context, step route.Step) (safety.StepAttributes, error) {
	speed := step.AverageSpeedKph()

	attrs := safety.StepAttributes{
		SpeedLimitKph: speedLimitEstimate(speed),
	}

	switch {
	case speed >= highwaySpeedKph:
		attrs.RoadClass = safety.RoadHighway
	case speed >= arterialSpeedKph:
		attrs.RoadClass = safety.RoadArterial
	case speed > 0 && speed < crawlSpeedKph:
		attrs.RoadClass = safety.RoadUnpaved
	default:
		attrs.RoadClass = safety.RoadLocal
	}

	if attrs.RoadClass == safety.RoadLocal {
		attrs.Narrow = speed > 0 && speed < narrowSpeedKph
		attrs.InResidentialZone = step.DistanceMeters > 0 && step.DistanceMeters < residentialStepMeters
	}

	return attrs, nil
}

// speedLimitEstimate rounds the observed speed up to the next 10 km/h step,
// a conservative stand-in for the posted limit.
func speedLimitEstimate(speedKph float64) int {
	if speedKph <= 0 {
		return 0
	}
	return (int(speedKph)/10 + 1) * 10
}
