package safety

// VehicleClass identifies a tanker size class.
type VehicleClass string

const (
	VehicleSmall  VehicleClass = "small"
	VehicleMedium VehicleClass = "medium"
	VehicleLarge  VehicleClass = "large"
)

// VehicleSpec holds the physical specification of a tanker class.
type VehicleSpec struct {
	Class          VehicleClass `json:"class"`
	CapacityLiters int          `json:"capacity_liters"`
	WeightKg       int          `json:"weight_kg"`
	WidthMeters    float64      `json:"width_m"`
	HeightMeters   float64      `json:"height_m"`
	LengthMeters   float64      `json:"length_m"`
	SafeSpeedKph   int          `json:"safe_speed_kph"`
	// FuelPer100Km is the consumption estimate in liters per 100 km.
	FuelPer100Km float64 `json:"fuel_per_100km"`
}

var vehicleSpecs = map[VehicleClass]VehicleSpec{
	VehicleSmall: {
		Class:          VehicleSmall,
		CapacityLiters: 10000,
		WeightKg:       15000,
		WidthMeters:    2.5,
		HeightMeters:   3.2,
		LengthMeters:   8.5,
		SafeSpeedKph:   80,
		FuelPer100Km:   25,
	},
	VehicleMedium: {
		Class:          VehicleMedium,
		CapacityLiters: 25000,
		WeightKg:       30000,
		WidthMeters:    2.6,
		HeightMeters:   3.5,
		LengthMeters:   12,
		SafeSpeedKph:   70,
		FuelPer100Km:   35,
	},
	VehicleLarge: {
		Class:          VehicleLarge,
		CapacityLiters: 40000,
		WeightKg:       45000,
		WidthMeters:    2.8,
		HeightMeters:   3.8,
		LengthMeters:   16.5,
		SafeSpeedKph:   60,
		FuelPer100Km:   45,
	},
}

// SpecFor returns the specification for a vehicle class. Unrecognized
// classes fall back to medium so presentation stays total.
func SpecFor(class VehicleClass) VehicleSpec {
	if spec, ok := vehicleSpecs[class]; ok {
		return spec
	}
	return vehicleSpecs[VehicleMedium]
}
