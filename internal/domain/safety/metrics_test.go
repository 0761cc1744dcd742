package safety

import (
	"testing"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
	"github.com/stretchr/testify/assert"
)

func TestSpecForDefaultsToMedium(t *testing.T) {
	assert.Equal(t, VehicleSmall, SpecFor(VehicleSmall).Class)
	assert.Equal(t, VehicleLarge, SpecFor(VehicleLarge).Class)
	assert.Equal(t, VehicleMedium, SpecFor("articulated").Class)
	assert.Equal(t, VehicleMedium, SpecFor("").Class)
}

func TestPresentBasicMetrics(t *testing.T) {
	r := &route.Route{
		ID:              "route-m",
		DistanceMeters:  100000,
		DurationSeconds: 3600,
		Legs: []route.Leg{{
			Steps: []route.Step{
				{Maneuver: route.ManeuverTurnLeft},
				{Maneuver: route.ManeuverStraight},
				{Maneuver: route.ManeuverRoundaboutRight},
				{Maneuver: route.ManeuverMerge},
			},
		}},
	}
	er := Score(r, uniformFactors(5))

	view := Present(er, SpecFor(VehicleMedium), nil, nil)

	assert.Equal(t, "100.0 km", view.BasicMetrics.Distance)
	assert.Equal(t, "1 h", view.BasicMetrics.Duration)
	assert.Empty(t, view.BasicMetrics.TrafficDuration)
	// 100 km at 35 L/100km, 2.68 kg CO2 per liter.
	assert.Equal(t, "35.0 liters", view.BasicMetrics.FuelConsumption)
	assert.Equal(t, "93.8 kg", view.BasicMetrics.CO2Emissions)
	assert.Equal(t, "100 km/h", view.BasicMetrics.AverageSpeed)
	assert.Equal(t, 2, view.BasicMetrics.TurnCount)
}

func TestPresentTrafficDuration(t *testing.T) {
	r := &route.Route{
		ID:                       "route-t",
		DistanceMeters:           50000,
		DurationSeconds:          3600,
		DurationInTrafficSeconds: 4500,
	}
	er := Score(r, uniformFactors(3))

	view := Present(er, SpecFor(VehicleSmall), nil, nil)
	assert.Equal(t, "1 h 15 min", view.BasicMetrics.TrafficDuration)
}

func TestPresentSafetyPercentages(t *testing.T) {
	r := &route.Route{ID: "route-p", DistanceMeters: 10000, DurationSeconds: 900}

	factors := uniformFactors(0)
	f := factors[FactorSharpTurns]
	f.Score = 7.5
	factors[FactorSharpTurns] = f

	view := Present(Score(r, factors), SpecFor(VehicleMedium), nil, nil)

	assert.Len(t, view.SafetyPercentages, len(DefaultCatalog()))
	assert.InDelta(t, 75.0, view.SafetyPercentages[FactorSharpTurns], 1e-9)
	assert.Zero(t, view.SafetyPercentages[FactorRoadGrade])
}

func TestPresentRestrictions(t *testing.T) {
	path := []route.LatLng{
		{Lat: 40.70, Lng: -74.02},
		{Lat: 40.7028, Lng: -74.0160}, // inside the tunnel zone
		{Lat: 40.7328, Lng: -74.0060}, // inside the school zone
		{Lat: 40.76, Lng: -74.00},
	}
	r := &route.Route{
		ID:              "route-r",
		DistanceMeters:  20000,
		DurationSeconds: 1800,
		Path:            path,
	}
	er := Score(r, uniformFactors(5))

	tunnel := zone.Zone{
		Name:              "Downtown Tunnel",
		Kind:              zone.KindHazmat,
		Center:            route.LatLng{Lat: 40.7028, Lng: -74.0160},
		RadiusMeters:      500,
		RestrictedClasses: []string{"3", "8"},
		MaxWeightKg:       20000,
		Description:       "Flammable cargo prohibited",
	}
	school := zone.Zone{
		Name:         "Central Elementary School",
		Kind:         zone.KindSchool,
		Center:       route.LatLng{Lat: 40.7328, Lng: -74.0060},
		RadiusMeters: 300,
	}

	// A large tanker exceeds the tunnel's weight limit.
	view := Present(er, SpecFor(VehicleLarge), []zone.Zone{school}, []zone.Zone{tunnel})

	assert.Len(t, view.Restrictions.Hazmat, 1)
	assert.Contains(t, view.Restrictions.Hazmat[0].Location, "Downtown Tunnel")
	assert.Contains(t, view.Restrictions.Hazmat[0].Location, "25% of route")
	assert.Equal(t, "Flammable cargo prohibited", view.Restrictions.Hazmat[0].Description)

	assert.Len(t, view.Restrictions.Weight, 1)
	assert.Equal(t, "20 tons", view.Restrictions.Weight[0].Limit)

	assert.Len(t, view.Restrictions.Speed, 1)
	assert.Contains(t, view.Restrictions.Speed[0].Location, "Central Elementary School")
	assert.Equal(t, "30 km/h", view.Restrictions.Speed[0].Limit)

	// A small tanker clears the weight limit.
	view = Present(er, SpecFor(VehicleSmall), []zone.Zone{school}, []zone.Zone{tunnel})
	assert.Empty(t, view.Restrictions.Weight)
	assert.Len(t, view.Restrictions.Hazmat, 1)
}
