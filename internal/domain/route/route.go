package route

// LatLng is a geographic coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the coordinate is the unset zero value.
func (p LatLng) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Valid reports whether the coordinate lies within the WGS84 range.
func (p LatLng) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Bounds is the axis-aligned bounding box of a route or query area.
type Bounds struct {
	Northeast LatLng `json:"northeast"`
	Southwest LatLng `json:"southwest"`
}

// Contains reports whether the point lies inside the bounding box.
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat <= b.Northeast.Lat && p.Lat >= b.Southwest.Lat &&
		p.Lng <= b.Northeast.Lng && p.Lng >= b.Southwest.Lng
}

// Expand returns the bounds grown by the given margin in degrees on every side.
func (b Bounds) Expand(degrees float64) Bounds {
	return Bounds{
		Northeast: LatLng{Lat: b.Northeast.Lat + degrees, Lng: b.Northeast.Lng + degrees},
		Southwest: LatLng{Lat: b.Southwest.Lat - degrees, Lng: b.Southwest.Lng - degrees},
	}
}

// ManeuverKind classifies the maneuver a step performs.
type ManeuverKind string

const (
	ManeuverStraight        ManeuverKind = "straight"
	ManeuverTurnLeft        ManeuverKind = "turn-left"
	ManeuverTurnRight       ManeuverKind = "turn-right"
	ManeuverSharpLeft       ManeuverKind = "turn-sharp-left"
	ManeuverSharpRight      ManeuverKind = "turn-sharp-right"
	ManeuverUTurnLeft       ManeuverKind = "uturn-left"
	ManeuverUTurnRight      ManeuverKind = "uturn-right"
	ManeuverRoundaboutLeft  ManeuverKind = "roundabout-left"
	ManeuverRoundaboutRight ManeuverKind = "roundabout-right"
	ManeuverMerge           ManeuverKind = "merge"
	ManeuverRampLeft        ManeuverKind = "ramp-left"
	ManeuverRampRight       ManeuverKind = "ramp-right"
)

// IsTurn reports whether the maneuver changes direction at all.
func (m ManeuverKind) IsTurn() bool {
	switch m {
	case ManeuverTurnLeft, ManeuverTurnRight,
		ManeuverSharpLeft, ManeuverSharpRight,
		ManeuverUTurnLeft, ManeuverUTurnRight,
		ManeuverRoundaboutLeft, ManeuverRoundaboutRight:
		return true
	}
	return false
}

// IsSharp reports whether the maneuver is a sharp turn, u-turn or roundabout,
// the maneuvers that matter for tanker stability.
func (m ManeuverKind) IsSharp() bool {
	switch m {
	case ManeuverSharpLeft, ManeuverSharpRight,
		ManeuverUTurnLeft, ManeuverUTurnRight,
		ManeuverRoundaboutLeft, ManeuverRoundaboutRight:
		return true
	}
	return false
}

// Step is one atomic maneuver within a leg. The path is the step's decoded
// sub-geometry.
type Step struct {
	Instruction     string       `json:"instruction"`
	Maneuver        ManeuverKind `json:"maneuver"`
	DistanceMeters  int          `json:"distance_meters"`
	DurationSeconds int          `json:"duration_seconds"`
	Path            []LatLng     `json:"path,omitempty"`
}

// AverageSpeedKph returns the mean travel speed over the step, or 0 when the
// duration is unknown.
func (s Step) AverageSpeedKph() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	return float64(s.DistanceMeters) / float64(s.DurationSeconds) * 3.6
}

// Leg is one origin-to-destination hop of a route.
type Leg struct {
	DistanceMeters           int    `json:"distance_meters"`
	DurationSeconds          int    `json:"duration_seconds"`
	DurationInTrafficSeconds int    `json:"duration_in_traffic_seconds,omitempty"`
	Steps                    []Step `json:"steps"`
}

// Route is one canonical candidate path between origin and destination.
// Routes are produced once by Normalize and treated as immutable afterwards.
type Route struct {
	ID                       string   `json:"id"`
	Summary                  string   `json:"summary"`
	Legs                     []Leg    `json:"legs"`
	DistanceMeters           int      `json:"distance_meters"`
	DurationSeconds          int      `json:"duration_seconds"`
	DurationInTrafficSeconds int      `json:"duration_in_traffic_seconds,omitempty"`
	Polyline                 string   `json:"polyline"`
	Path                     []LatLng `json:"path"`
	Bounds                   Bounds   `json:"bounds"`
}

// Steps returns the route's steps flattened across legs, in travel order.
func (r *Route) Steps() []Step {
	var steps []Step
	for _, leg := range r.Legs {
		steps = append(steps, leg.Steps...)
	}
	return steps
}

// DistanceKm returns the total route distance in kilometers.
func (r *Route) DistanceKm() float64 {
	return float64(r.DistanceMeters) / 1000.0
}

// TrafficRatio returns duration-in-traffic over free-flow duration, or 1.0
// when no traffic estimate is available.
func (r *Route) TrafficRatio() float64 {
	if r.DurationInTrafficSeconds <= 0 || r.DurationSeconds <= 0 {
		return 1.0
	}
	return float64(r.DurationInTrafficSeconds) / float64(r.DurationSeconds)
}
