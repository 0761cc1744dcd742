package route

import (
	"errors"
	"strings"
)

// Polyline codec implementing the signed-varint encoding used by mapping
// providers: 5 bits per byte, zig-zag signed deltas, coordinates scaled by
// 1e5.

// ErrTruncatedPolyline is returned when an encoded polyline ends in the
// middle of a varint group.
var ErrTruncatedPolyline = errors.New("truncated polyline")

// DecodePolyline decodes an encoded polyline string into coordinates.
func DecodePolyline(encoded string) ([]LatLng, error) {
	var path []LatLng
	var lat, lng int64

	index := 0
	for index < len(encoded) {
		dlat, next, err := decodeSignedDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		lat += dlat
		index = next

		dlng, next, err := decodeSignedDelta(encoded, index)
		if err != nil {
			return nil, err
		}
		lng += dlng
		index = next

		path = append(path, LatLng{
			Lat: float64(lat) / 1e5,
			Lng: float64(lng) / 1e5,
		})
	}

	return path, nil
}

func decodeSignedDelta(encoded string, index int) (int64, int, error) {
	var result int64
	var shift uint

	for {
		if index >= len(encoded) {
			return 0, 0, ErrTruncatedPolyline
		}
		b := int64(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}

	// Zig-zag decode.
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// EncodePolyline encodes coordinates into a polyline string. Decoding the
// result yields the input truncated to 1e-5 degree precision, so the round
// trip is exact for already-decoded paths.
func EncodePolyline(path []LatLng) string {
	var sb strings.Builder
	var prevLat, prevLng int64

	for _, p := range path {
		lat := scaleCoordinate(p.Lat)
		lng := scaleCoordinate(p.Lng)
		encodeSignedDelta(&sb, lat-prevLat)
		encodeSignedDelta(&sb, lng-prevLng)
		prevLat = lat
		prevLng = lng
	}

	return sb.String()
}

func scaleCoordinate(deg float64) int64 {
	if deg < 0 {
		return int64(deg*1e5 - 0.5)
	}
	return int64(deg*1e5 + 0.5)
}

func encodeSignedDelta(sb *strings.Builder, delta int64) {
	// Zig-zag encode.
	v := delta << 1
	if delta < 0 {
		v = ^v
	}
	for v >= 0x20 {
		sb.WriteByte(byte((0x20 | (v & 0x1f)) + 63))
		v >>= 5
	}
	sb.WriteByte(byte(v + 63))
}
