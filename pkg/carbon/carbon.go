// Package carbon converts a measured inference latency and a
// hardware/region pair into power, energy, and CO2 emission estimates using
// the injected reference tables.
package carbon

import (
	"github.com/greenml/co2scope/pkg/reference"
)

// UtilizationFactor is the assumed fraction of TDP drawn during inference.
// Hardware is not at 100% TDP constantly; this is the key assumption for
// estimation accuracy.
const UtilizationFactor = 0.6

// Estimate is the carbon footprint of one inference pass. The zero value is
// the empty estimate, produced when the benchmark was unmeasurable;
// consumers must branch on Empty rather than read zeros as a zero-cost
// result. The region factors used are carried for traceability.
type Estimate struct {
	PowerWatts      float64 `json:"compute_power_watts"`
	EnergyKWh       float64 `json:"energy_consumption_kwh_per_inference"`
	CO2Grams        float64 `json:"co2_emissions_grams_per_inference"`
	CarbonIntensity float64 `json:"region_carbon_intensity_g_kwh"`
	PUE             float64 `json:"pue_factor"`
}

// Empty reports whether the estimate was produced from an unmeasurable
// benchmark.
func (e Estimate) Empty() bool { return e == Estimate{} }

// Calculator derives carbon estimates from latency. It is pure and
// deterministic given its inputs and the tables injected at construction.
type Calculator struct {
	tables *reference.Tables
}

// NewCalculator builds a calculator over the given factor tables. A nil
// tables argument uses the built-ins.
func NewCalculator(tables *reference.Tables) *Calculator {
	if tables == nil {
		tables = reference.Builtin()
	}
	return &Calculator{tables: tables}
}

// Estimate computes power draw, per-inference energy, and emissions.
//
// latencyMS of 0 marks an unmeasurable benchmark and yields the empty
// estimate immediately; anything else would present a zero-cost figure as
// real. Unknown hardware or region identifiers resolve to the documented
// defaults rather than failing.
func (c *Calculator) Estimate(latencyMS float64, hardwareID, regionID string) Estimate {
	if latencyMS == 0 {
		return Estimate{}
	}

	hw := c.tables.Hardware(hardwareID)
	region := c.tables.Region(regionID)

	powerWatts := hw.TDPWatts * UtilizationFactor
	hours := (latencyMS / 1000) / 3600
	energyKWh := (powerWatts * hours) / 1000

	// Total CO2e = energy * carbon intensity * data center overhead (PUE).
	co2Grams := energyKWh * region.CarbonIntensity * region.PUE

	return Estimate{
		PowerWatts:      powerWatts,
		EnergyKWh:       energyKWh,
		CO2Grams:        co2Grams,
		CarbonIntensity: region.CarbonIntensity,
		PUE:             region.PUE,
	}
}
