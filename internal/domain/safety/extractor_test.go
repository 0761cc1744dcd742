package safety

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier returns canned attributes keyed by step instruction.
type stubClassifier struct {
	attrs map[string]StepAttributes
	err   error
}

func (s *stubClassifier) Classify(_ context.Context, step route.Step) (StepAttributes, error) {
	if s.err != nil {
		return StepAttributes{}, s.err
	}
	return s.attrs[step.Instruction], nil
}

func flatRoute(id string, steps ...route.Step) *route.Route {
	var dist, dur int
	for _, s := range steps {
		dist += s.DistanceMeters
		dur += s.DurationSeconds
	}
	return &route.Route{
		ID:              id,
		Legs:            []route.Leg{{DistanceMeters: dist, DurationSeconds: dur, Steps: steps}},
		DistanceMeters:  dist,
		DurationSeconds: dur,
	}
}

var midday = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestExtractIsDeterministic(t *testing.T) {
	classifier := &stubClassifier{attrs: map[string]StepAttributes{
		"a": {RoadClass: RoadHighway, SpeedLimitKph: 90},
		"b": {RoadClass: RoadLocal, Narrow: true, GradePercent: 7},
	}}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	in := ExtractionInput{
		Route: flatRoute("route-det",
			route.Step{Instruction: "a", DistanceMeters: 3000, DurationSeconds: 120},
			route.Step{Instruction: "b", Maneuver: route.ManeuverSharpLeft, DistanceMeters: 400, DurationSeconds: 90},
		),
		Vehicle:        SpecFor(VehicleMedium),
		EvaluationTime: midday,
	}

	first, err := extractor.Extract(context.Background(), in)
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, len(DefaultCatalog()))
	for _, f := range first {
		assert.GreaterOrEqual(t, f.Score, MinRawScore)
		assert.LessOrEqual(t, f.Score, MaxRawScore)
	}
}

func TestExtractSchoolZoneRisk(t *testing.T) {
	classifier := &stubClassifier{attrs: map[string]StepAttributes{}}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	inZone := route.Step{
		Instruction:     "pass school",
		DistanceMeters:  600,
		DurationSeconds: 60,
		Path:            []route.LatLng{{Lat: 40.7328, Lng: -74.0060}},
	}
	school := zone.Zone{
		Kind:         zone.KindSchool,
		Center:       route.LatLng{Lat: 40.7328, Lng: -74.0060},
		RadiusMeters: 300,
	}

	base := ExtractionInput{
		Route:       flatRoute("route-school", inZone),
		Vehicle:     SpecFor(VehicleMedium),
		SchoolZones: []zone.Zone{school},
	}

	// 12:00 is within school hours: zone penalty plus the hours surcharge.
	base.EvaluationTime = midday
	factors, err := extractor.Extract(context.Background(), base)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, factors[FactorSchoolZoneProximity].Score, 1e-9)

	// 20:00 is outside school hours.
	base.EvaluationTime = time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC)
	factors, err = extractor.Extract(context.Background(), base)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, factors[FactorSchoolZoneProximity].Score, 1e-9)

	// Same route with the zones elsewhere scores zero.
	base.SchoolZones = nil
	factors, err = extractor.Extract(context.Background(), base)
	require.NoError(t, err)
	assert.Zero(t, factors[FactorSchoolZoneProximity].Score)
}

func TestExtractHazmatRisk(t *testing.T) {
	classifier := &stubClassifier{attrs: map[string]StepAttributes{}}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	step := route.Step{
		Instruction:     "tunnel approach",
		DistanceMeters:  800,
		DurationSeconds: 90,
		Path:            []route.LatLng{{Lat: 40.7028, Lng: -74.0160}},
	}
	tunnel := zone.Zone{
		Kind:              zone.KindHazmat,
		Center:            route.LatLng{Lat: 40.7028, Lng: -74.0160},
		RadiusMeters:      500,
		RestrictedClasses: []string{"3", "8"},
	}

	in := ExtractionInput{
		Route:          flatRoute("route-hazmat", step),
		Vehicle:        SpecFor(VehicleLarge),
		CargoClass:     "3",
		HazmatZones:    []zone.Zone{tunnel},
		EvaluationTime: midday,
	}

	factors, err := extractor.Extract(context.Background(), in)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, factors[FactorHazmatRestrictions].Score, 1e-9)

	// A zone restricting other classes still carries residual risk.
	in.CargoClass = "9"
	factors, err = extractor.Extract(context.Background(), in)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, factors[FactorHazmatRestrictions].Score, 1e-9)
}

func TestExtractTrafficThresholds(t *testing.T) {
	classifier := &stubClassifier{attrs: map[string]StepAttributes{}}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	cases := []struct {
		traffic int
		want    float64
	}{
		{traffic: 1000, want: 8},  // ratio 1.67
		{traffic: 800, want: 5},   // ratio 1.33
		{traffic: 660, want: 2.5}, // ratio 1.10
		{traffic: 620, want: 1},   // ratio 1.03
		{traffic: 0, want: 1},     // no estimate
	}

	for _, tc := range cases {
		r := flatRoute("route-traffic", route.Step{Instruction: "drive", DistanceMeters: 9000, DurationSeconds: 600})
		r.DurationInTrafficSeconds = tc.traffic

		factors, err := extractor.Extract(context.Background(), ExtractionInput{
			Route:          r,
			Vehicle:        SpecFor(VehicleMedium),
			EvaluationTime: midday,
		})
		require.NoError(t, err)
		assert.InDelta(t, tc.want, factors[FactorTrafficDensity].Score, 1e-9,
			"traffic duration %d", tc.traffic)
	}
}

func TestExtractClampsAccumulatedRisk(t *testing.T) {
	classifier := &stubClassifier{attrs: map[string]StepAttributes{
		"steep": {GradePercent: 8},
	}}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	steps := make([]route.Step, 12)
	for i := range steps {
		steps[i] = route.Step{Instruction: "steep", DistanceMeters: 700, DurationSeconds: 60}
	}

	factors, err := extractor.Extract(context.Background(), ExtractionInput{
		Route:          flatRoute("route-clamp", steps...),
		Vehicle:        SpecFor(VehicleMedium),
		EvaluationTime: midday,
	})
	require.NoError(t, err)
	assert.Equal(t, MaxRawScore, factors[FactorRoadGrade].Score)
}

func TestExtractNightAndLongHaulWeather(t *testing.T) {
	classifier := &stubClassifier{attrs: map[string]StepAttributes{}}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	r := flatRoute("route-night", route.Step{Instruction: "drive", DistanceMeters: 200000, DurationSeconds: 8000})

	factors, err := extractor.Extract(context.Background(), ExtractionInput{
		Route:          r,
		Vehicle:        SpecFor(VehicleMedium),
		EvaluationTime: time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	// Base risk plus night and long-haul surcharges.
	assert.InDelta(t, 6.0, factors[FactorWeatherRisks].Score, 1e-9)
}

func TestExtractClassifierFailure(t *testing.T) {
	classifier := &stubClassifier{err: errors.New("capability offline")}
	extractor := NewExtractor(DefaultCatalog(), classifier)

	_, err := extractor.Extract(context.Background(), ExtractionInput{
		Route:          flatRoute("route-fail", route.Step{Instruction: "drive", DistanceMeters: 1000, DurationSeconds: 60}),
		Vehicle:        SpecFor(VehicleMedium),
		EvaluationTime: midday,
	})
	require.Error(t, err)

	var perr *PartialExtractionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "route-fail", perr.RouteID)
}
