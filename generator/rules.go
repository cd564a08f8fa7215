package generator

import (
	"math/rand/v2"
	"time"

	"github.com/enbility/telemetry-go/model"
)

// solar arrays only produce between these local hours, [start, end)
const (
	daylightStartHour = 6
	daylightEndHour   = 18
)

// Sample is the synthesized part of a reading
type Sample struct {
	Magnitude float64
	Kind      model.ReadingKind
	Voltage   float64
}

// RuleFunc synthesizes a sample for a device at the given local time
type RuleFunc func(device model.Device, now time.Time, rnd *rand.Rand) (Sample, error)

// random value with two decimals in [min, max], given in hundredths
func hundredths(rnd *rand.Rand, min, max int) float64 {
	return float64(min+rnd.IntN(max-min+1)) / 100
}

// SynthesizeVoltage returns a voltage in [235, 245) with one decimal
func SynthesizeVoltage(rnd *rand.Rand) float64 {
	return float64(2350+rnd.IntN(100)) / 10
}

// SolarRule generates 2 to 7 kWh during daylight and nothing at night
func SolarRule(_ model.Device, now time.Time, rnd *rand.Rand) (Sample, error) {
	sample := Sample{
		Kind:    model.ReadingKindGeneration,
		Voltage: SynthesizeVoltage(rnd),
	}

	hour := now.Hour()
	if hour >= daylightStartHour && hour < daylightEndHour {
		sample.Magnitude = -hundredths(rnd, 200, 700)
	}

	return sample, nil
}

// ConsumptionRule consumes between 5 and 15 kWh, 15 excluded
func ConsumptionRule(_ model.Device, _ time.Time, rnd *rand.Rand) (Sample, error) {
	return Sample{
		Magnitude: hundredths(rnd, 500, 1499),
		Kind:      model.ReadingKindConsumption,
		Voltage:   SynthesizeVoltage(rnd),
	}, nil
}

// DefaultRules returns the synthesis rule for every device category
func DefaultRules() map[model.DeviceCategory]RuleFunc {
	rules := make(map[model.DeviceCategory]RuleFunc)
	for _, category := range model.DeviceCategories() {
		rules[category] = ConsumptionRule
	}
	rules[model.DeviceCategorySolarArray] = SolarRule

	return rules
}
