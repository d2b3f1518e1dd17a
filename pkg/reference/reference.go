// Package reference holds the static estimation factors: hardware thermal
// design power, regional power usage effectiveness, and regional carbon
// intensity. Values come from public cloud documentation and carbon
// intensity maps; they are representative, not measured telemetry, and can
// be overridden from a YAML file for higher accuracy.
package reference

// HardwareProfile describes one hardware target.
// TDPWatts is the thermal design power, used as a proxy for power draw
// under load. Accelerator marks dedicated inference hardware (GPUs,
// Inferentia) as opposed to general-purpose CPUs.
type HardwareProfile struct {
	ID          string  `yaml:"id"`
	TDPWatts    float64 `yaml:"tdp_watts"`
	Accelerator bool    `yaml:"accelerator"`
}

// RegionProfile describes one data-center region.
// PUE = (Total Facility Energy) / (IT Equipment Energy); lower is better.
// CarbonIntensity is in grams CO2e per kWh.
type RegionProfile struct {
	ID              string  `yaml:"id"`
	PUE             float64 `yaml:"pue"`
	CarbonIntensity float64 `yaml:"carbon_intensity_g_kwh"`
}

// DefaultHardwareID is the profile substituted for unknown hardware
// identifiers.
const DefaultHardwareID = "cpu_c5"

// DefaultRegionID is the profile substituted for unknown region
// identifiers.
const DefaultRegionID = "default"

// Tables is an immutable set of estimation factors. Construct via Builtin
// or Load; never mutate after construction. Safe for concurrent reads.
type Tables struct {
	hardware map[string]HardwareProfile
	regions  map[string]RegionProfile
}

// Builtin returns a fresh Tables with the built-in factors.
func Builtin() *Tables {
	return &Tables{
		hardware: map[string]HardwareProfile{
			"cpu_c5":      {ID: "cpu_c5", TDPWatts: 150},      // typical Intel Xeon Platinum 8000 series
			"gpu_t4":      {ID: "gpu_t4", TDPWatts: 75, Accelerator: true},    // NVIDIA Tesla T4
			"gpu_a10g":    {ID: "gpu_a10g", TDPWatts: 150, Accelerator: true}, // NVIDIA A10G
			"gpu_v100":    {ID: "gpu_v100", TDPWatts: 300, Accelerator: true}, // NVIDIA Tesla V100
			"inferentia1": {ID: "inferentia1", TDPWatts: 100, Accelerator: true},
			"graviton2":   {ID: "graviton2", TDPWatts: 120},
		},
		regions: map[string]RegionProfile{
			"us-east-1":    {ID: "us-east-1", PUE: 1.15, CarbonIntensity: 379},    // Virginia
			"us-west-2":    {ID: "us-west-2", PUE: 1.10, CarbonIntensity: 89},     // Oregon, largely hydro
			"eu-west-1":    {ID: "eu-west-1", PUE: 1.12, CarbonIntensity: 290},    // Ireland
			"eu-central-1": {ID: "eu-central-1", PUE: 1.20, CarbonIntensity: 339}, // Frankfurt
			"ap-south-1":   {ID: "ap-south-1", PUE: 1.25, CarbonIntensity: 708},   // Mumbai
			"default":      {ID: "default", PUE: 1.20, CarbonIntensity: 400},      // global average
		},
	}
}

// Hardware resolves a hardware identifier. Unknown identifiers resolve to
// the cpu_c5 default rather than failing; callers that need strict
// validation should check HasHardware first.
func (t *Tables) Hardware(id string) HardwareProfile {
	if p, ok := t.hardware[id]; ok {
		return p
	}
	return t.hardware[DefaultHardwareID]
}

// Region resolves a region identifier, falling back to the generic default
// region for unknown identifiers.
func (t *Tables) Region(id string) RegionProfile {
	if p, ok := t.regions[id]; ok {
		return p
	}
	return t.regions[DefaultRegionID]
}

// HasHardware reports whether id is an enumerated hardware identifier.
func (t *Tables) HasHardware(id string) bool {
	_, ok := t.hardware[id]
	return ok
}

// HasRegion reports whether id is an enumerated region identifier.
func (t *Tables) HasRegion(id string) bool {
	_, ok := t.regions[id]
	return ok
}

// HardwareIDs returns the enumerated hardware identifiers in unspecified
// order.
func (t *Tables) HardwareIDs() []string {
	ids := make([]string, 0, len(t.hardware))
	for id := range t.hardware {
		ids = append(ids, id)
	}
	return ids
}

// RegionIDs returns the enumerated region identifiers in unspecified order.
func (t *Tables) RegionIDs() []string {
	ids := make([]string, 0, len(t.regions))
	for id := range t.regions {
		ids = append(ids, id)
	}
	return ids
}
