package safety

import (
	"testing"

	"github.com/SafeHaul-Logistics/service-routing/internal/domain/route"
	"github.com/stretchr/testify/assert"
)

func uniformFactors(score float64) map[FactorKey]SafetyFactor {
	factors := make(map[FactorKey]SafetyFactor)
	for _, entry := range DefaultCatalog() {
		factors[entry.Key] = SafetyFactor{
			Key:         entry.Key,
			Score:       score,
			Weight:      entry.Weight,
			Description: entry.Description,
		}
	}
	return factors
}

func TestScoreWeightedMean(t *testing.T) {
	r := &route.Route{ID: "route-a", DistanceMeters: 10000, DurationSeconds: 900}

	// When every raw score is equal the weights cancel out.
	er := Score(r, uniformFactors(4))
	assert.InDelta(t, 4.0, er.Composite, 1e-9)
	assert.InDelta(t, 40.0, er.Display, 1e-9)

	er = Score(r, uniformFactors(0))
	assert.Zero(t, er.Composite)
	assert.Zero(t, er.Display)

	er = Score(r, uniformFactors(MaxRawScore))
	assert.InDelta(t, 10.0, er.Composite, 1e-9)
	assert.InDelta(t, 100.0, er.Display, 1e-9)
}

func TestScoreWeightsSkewComposite(t *testing.T) {
	r := &route.Route{ID: "route-b"}

	factors := uniformFactors(0)
	heavy := factors[FactorHazmatRestrictions]
	heavy.Score = 10
	factors[FactorHazmatRestrictions] = heavy

	light := factors[FactorTrafficDensity]
	light.Score = 10
	factors[FactorTrafficDensity] = light

	er := Score(r, factors)

	// 10×2.5 + 10×1.3 over the catalog's total weight of 16.7.
	assert.InDelta(t, 38.0/16.7, er.Composite, 1e-9)
	assert.GreaterOrEqual(t, er.Composite, 0.0)
	assert.LessOrEqual(t, er.Composite, 10.0)
}

func TestScoreEmptyFactors(t *testing.T) {
	er := Score(&route.Route{ID: "route-c"}, map[FactorKey]SafetyFactor{})
	assert.Zero(t, er.Composite)
	assert.Zero(t, er.Display)
}

func TestDisplayColor(t *testing.T) {
	assert.Equal(t, "rgb(0, 255, 0)", DisplayColor(0))
	assert.Equal(t, "rgb(255, 0, 0)", DisplayColor(100))
	assert.Equal(t, "rgb(127, 127, 0)", DisplayColor(50))

	// Out-of-range inputs clamp to the ramp ends.
	assert.Equal(t, "rgb(0, 255, 0)", DisplayColor(-5))
	assert.Equal(t, "rgb(255, 0, 0)", DisplayColor(140))
}
