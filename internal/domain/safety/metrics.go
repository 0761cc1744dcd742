package safety

import (
	"fmt"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/zone"
)

// CO2PerLiterDiesel is the fixed diesel emission factor in kg CO2 per liter.
const CO2PerLiterDiesel = 2.68

// BasicMetrics are the human-readable headline numbers of a route.
type BasicMetrics struct {
	Distance        string `json:"distance"`
	Duration        string `json:"duration"`
	TrafficDuration string `json:"trafficDuration,omitempty"`
	FuelConsumption string `json:"fuelConsumption"`
	CO2Emissions    string `json:"co2Emissions"`
	AverageSpeed    string `json:"averageSpeed"`
	TurnCount       int    `json:"turnCount"`
}

// HazmatRestriction is one hazmat zone the route passes through.
type HazmatRestriction struct {
	Location    string `json:"location"`
	Description string `json:"description"`
}

// SpeedRestriction is one reduced-speed area along the route.
type SpeedRestriction struct {
	Location string `json:"location"`
	Limit    string `json:"limit"`
}

// WeightRestriction is one weight-limited structure along the route.
type WeightRestriction struct {
	Location string `json:"location"`
	Limit    string `json:"limit"`
}

// Restrictions groups the restriction summaries for the detail view.
type Restrictions struct {
	Hazmat []HazmatRestriction `json:"hazmat"`
	Speed  []SpeedRestriction  `json:"speed"`
	Weight []WeightRestriction `json:"weight"`
}

// DetailView is the structured factor breakdown for one evaluated route.
type DetailView struct {
	BasicMetrics      BasicMetrics          `json:"basicMetrics"`
	SafetyPercentages map[FactorKey]float64 `json:"safetyPercentages"`
	Restrictions      Restrictions          `json:"restrictions"`
}

// schoolZoneSpeedLimitKph is the posted limit assumed inside school zones.
const schoolZoneSpeedLimitKph = 30

// EvaluationRecord bundles an evaluated route with the context needed to
// rebuild its detail view later in the request's lifetime.
type EvaluationRecord struct {
	Evaluated    *EvaluatedRoute `json:"evaluated"`
	VehicleClass VehicleClass    `json:"vehicle_class"`
	CargoClass   string          `json:"cargo_class"`
	SchoolZones  []zone.Zone     `json:"school_zones"`
	HazmatZones  []zone.Zone     `json:"hazmat_zones"`
}

// Present builds the detail view for one evaluated route. The function is
// total: unknown vehicle classes have already been defaulted by SpecFor.
func Present(er *EvaluatedRoute, vehicle VehicleSpec, schoolZones, hazmatZones []zone.Zone) DetailView {
	r := er.Route
	distanceKm := r.DistanceKm()
	fuelLiters := distanceKm / 100 * vehicle.FuelPer100Km
	co2Kg := fuelLiters * CO2PerLiterDiesel

	var avgSpeed float64
	if r.DurationSeconds > 0 {
		avgSpeed = distanceKm / (float64(r.DurationSeconds) / 3600.0)
	}

	turns := 0
	for _, step := range r.Steps() {
		if step.Maneuver.IsTurn() {
			turns++
		}
	}

	basics := BasicMetrics{
		Distance:        FormatDistance(r.DistanceMeters),
		Duration:        FormatDuration(r.DurationSeconds),
		FuelConsumption: fmt.Sprintf("%.1f liters", fuelLiters),
		CO2Emissions:    fmt.Sprintf("%.1f kg", co2Kg),
		AverageSpeed:    fmt.Sprintf("%.0f km/h", avgSpeed),
		TurnCount:       turns,
	}
	if r.DurationInTrafficSeconds > 0 {
		basics.TrafficDuration = FormatDuration(r.DurationInTrafficSeconds)
	}

	percentages := make(map[FactorKey]float64, len(er.Factors))
	for key, f := range er.Factors {
		percentages[key] = f.Score / MaxRawScore * 100
	}

	return DetailView{
		BasicMetrics:      basics,
		SafetyPercentages: percentages,
		Restrictions:      collectRestrictions(er, vehicle, schoolZones, hazmatZones),
	}
}

func collectRestrictions(er *EvaluatedRoute, vehicle VehicleSpec, schoolZones, hazmatZones []zone.Zone) Restrictions {
	res := Restrictions{
		Hazmat: []HazmatRestriction{},
		Speed:  []SpeedRestriction{},
		Weight: []WeightRestriction{},
	}

	for _, z := range hazmatZones {
		pos, hit := routePosition(er, z)
		if !hit {
			continue
		}
		res.Hazmat = append(res.Hazmat, HazmatRestriction{
			Location:    fmt.Sprintf("%s at approximately %d%% of route", z.Name, pos),
			Description: z.Description,
		})
		if z.MaxWeightKg > 0 && float64(vehicle.WeightKg) > z.MaxWeightKg {
			res.Weight = append(res.Weight, WeightRestriction{
				Location: fmt.Sprintf("%s at approximately %d%% of route", z.Name, pos),
				Limit:    fmt.Sprintf("%.0f tons", z.MaxWeightKg/1000),
			})
		}
	}

	for _, z := range schoolZones {
		pos, hit := routePosition(er, z)
		if !hit {
			continue
		}
		res.Speed = append(res.Speed, SpeedRestriction{
			Location: fmt.Sprintf("School zone (%s) at approximately %d%% of route", z.Name, pos),
			Limit:    fmt.Sprintf("%d km/h", schoolZoneSpeedLimitKph),
		})
	}

	return res
}

// routePosition locates a zone along the route as a percentage of the path,
// by the first path point falling inside the geofence.
func routePosition(er *EvaluatedRoute, z zone.Zone) (int, bool) {
	path := er.Route.Path
	if len(path) == 0 {
		return 0, false
	}
	for i, p := range path {
		if z.Contains(p) {
			return i * 100 / len(path), true
		}
	}
	return 0, false
}
