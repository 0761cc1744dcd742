// Package zone models the geofenced areas the safety engine evaluates routes
// against: school zones and hazmat-restricted segments.
package zone

import (
	"context"
	"math"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
)

// Kind distinguishes the zone datasets.
type Kind string

const (
	KindSchool Kind = "school"
	KindHazmat Kind = "hazmat"
)

// Zone is a circular geofence with descriptive metadata. School zones carry
// operating hours; hazmat zones carry the restricted cargo classes and an
// optional weight limit.
type Zone struct {
	ID                string       `json:"id"`
	Kind              Kind         `json:"kind"`
	Name              string       `json:"name"`
	Center            route.LatLng `json:"location"`
	RadiusMeters      float64      `json:"radius"`
	OperatingHours    string       `json:"operationHours,omitempty"`
	RestrictedClasses []string     `json:"classes,omitempty"`
	MaxWeightKg       float64      `json:"maxWeightKg,omitempty"`
	Description       string       `json:"description,omitempty"`
}

// Contains reports whether the point lies inside the geofence.
func (z Zone) Contains(p route.LatLng) bool {
	return HaversineMeters(z.Center, p) <= z.RadiusMeters
}

// IntersectsPath reports whether any point of the path falls inside the
// geofence.
func (z Zone) IntersectsPath(path []route.LatLng) bool {
	for _, p := range path {
		if z.Contains(p) {
			return true
		}
	}
	return false
}

// RestrictsClass reports whether the zone restricts the given hazmat class.
// A zone with no class list restricts everything.
func (z Zone) RestrictsClass(class string) bool {
	if len(z.RestrictedClasses) == 0 {
		return true
	}
	for _, c := range z.RestrictedClasses {
		if c == class {
			return true
		}
	}
	return false
}

// Lookup answers which zones fall within a geographic area. The service is
// instantiated twice, once per zone dataset.
type Lookup interface {
	ZonesWithin(ctx context.Context, bounds route.Bounds) ([]Zone, error)
}

const earthRadiusMeters = 6371000.0

// HaversineMeters returns the great-circle distance between two coordinates.
func HaversineMeters(a, b route.LatLng) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
