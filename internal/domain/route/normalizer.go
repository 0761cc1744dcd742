package route

import (
	"fmt"

	"github.com/google/uuid"
)

// MalformedRouteError marks a provider route record that failed
// normalization. Callers drop the offending route and continue with the rest
// of the batch.
type MalformedRouteError struct {
	Reason string
}

func (e *MalformedRouteError) Error() string {
	return fmt.Sprintf("malformed route: %s", e.Reason)
}

func malformed(format string, args ...interface{}) error {
	return &MalformedRouteError{Reason: fmt.Sprintf(format, args...)}
}

// Normalize converts a raw provider route into the canonical Route entity.
// It assigns a stable caller-visible id, flattens leg totals, and decodes the
// overview polyline and every step's sub-geometry.
func Normalize(pr ProviderRoute) (*Route, error) {
	if len(pr.Legs) == 0 {
		return nil, malformed("route has no legs")
	}

	r := &Route{
		ID:       "route-" + uuid.NewString(),
		Summary:  pr.Summary,
		Polyline: pr.Polyline,
		Bounds:   pr.Bounds,
		Legs:     make([]Leg, 0, len(pr.Legs)),
	}

	for i, pl := range pr.Legs {
		if len(pl.Steps) == 0 {
			return nil, malformed("leg %d has no steps", i)
		}
		if pl.DistanceMeters < 0 || pl.DurationSeconds < 0 {
			return nil, malformed("leg %d has negative distance or duration", i)
		}
		if pl.DistanceMeters == 0 && pl.DurationSeconds == 0 {
			return nil, malformed("leg %d is missing distance and duration", i)
		}

		leg := Leg{
			DistanceMeters:           pl.DistanceMeters,
			DurationSeconds:          pl.DurationSeconds,
			DurationInTrafficSeconds: pl.DurationInTrafficSeconds,
			Steps:                    make([]Step, 0, len(pl.Steps)),
		}

		for j, ps := range pl.Steps {
			if ps.DistanceMeters < 0 || ps.DurationSeconds < 0 {
				return nil, malformed("leg %d step %d has negative distance or duration", i, j)
			}

			path, err := DecodePolyline(ps.Polyline)
			if err != nil {
				return nil, malformed("leg %d step %d: %v", i, j, err)
			}

			leg.Steps = append(leg.Steps, Step{
				Instruction:     ps.Instruction,
				Maneuver:        ManeuverKind(ps.Maneuver),
				DistanceMeters:  ps.DistanceMeters,
				DurationSeconds: ps.DurationSeconds,
				Path:            path,
			})
		}

		r.DistanceMeters += leg.DistanceMeters
		r.DurationSeconds += leg.DurationSeconds
		r.DurationInTrafficSeconds += leg.DurationInTrafficSeconds
		r.Legs = append(r.Legs, leg)
	}

	path, err := DecodePolyline(pr.Polyline)
	if err != nil {
		return nil, malformed("overview polyline: %v", err)
	}
	if len(path) == 0 {
		return nil, malformed("route has empty geometry")
	}
	r.Path = path

	return r, nil
}
