package zone

import (
	"testing"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters(t *testing.T) {
	// One degree of latitude is roughly 111.2 km.
	a := route.LatLng{Lat: 40.0, Lng: -74.0}
	b := route.LatLng{Lat: 41.0, Lng: -74.0}
	assert.InDelta(t, 111195, HaversineMeters(a, b), 100)

	assert.Zero(t, HaversineMeters(a, a))
}

func TestZoneContains(t *testing.T) {
	z := Zone{
		ID:           "school-1",
		Kind:         KindSchool,
		Center:       route.LatLng{Lat: 40.7328, Lng: -74.0060},
		RadiusMeters: 300,
	}

	assert.True(t, z.Contains(route.LatLng{Lat: 40.7328, Lng: -74.0060}))
	// ~110 m north of center.
	assert.True(t, z.Contains(route.LatLng{Lat: 40.7338, Lng: -74.0060}))
	// ~1.1 km north of center.
	assert.False(t, z.Contains(route.LatLng{Lat: 40.7428, Lng: -74.0060}))
}

func TestZoneIntersectsPath(t *testing.T) {
	z := Zone{
		Center:       route.LatLng{Lat: 40.7328, Lng: -74.0060},
		RadiusMeters: 300,
	}

	through := []route.LatLng{
		{Lat: 40.70, Lng: -74.0060},
		{Lat: 40.7330, Lng: -74.0060},
		{Lat: 40.76, Lng: -74.0060},
	}
	assert.True(t, z.IntersectsPath(through))

	past := []route.LatLng{
		{Lat: 40.70, Lng: -74.10},
		{Lat: 40.76, Lng: -74.10},
	}
	assert.False(t, z.IntersectsPath(past))
	assert.False(t, z.IntersectsPath(nil))
}

func TestRestrictsClass(t *testing.T) {
	tunnel := Zone{RestrictedClasses: []string{"3", "8"}}
	assert.True(t, tunnel.RestrictsClass("3"))
	assert.True(t, tunnel.RestrictsClass("8"))
	assert.False(t, tunnel.RestrictsClass("9"))

	blanket := Zone{}
	assert.True(t, blanket.RestrictsClass("9"))
	assert.True(t, blanket.RestrictsClass(""))
}
