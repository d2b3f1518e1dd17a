package reference

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// overrideFile is the YAML schema for factor overrides. Entries merge over
// the built-in tables by identifier; new identifiers are added as-is.
type overrideFile struct {
	Hardware []HardwareProfile `yaml:"hardware"`
	Regions  []RegionProfile   `yaml:"regions"`
}

// Load reads a YAML override file and merges it over the built-in tables.
// Overrides must keep the factors physically meaningful: TDP > 0, PUE >= 1,
// carbon intensity >= 0. A violation is a load error, not a silent default.
func Load(path string) (*Tables, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reference: read overrides: %w", err)
	}

	var of overrideFile
	if err := yaml.Unmarshal(raw, &of); err != nil {
		return nil, fmt.Errorf("reference: parse overrides: %w", err)
	}

	t := Builtin()
	for _, h := range of.Hardware {
		if h.ID == "" {
			return nil, fmt.Errorf("reference: hardware override without id")
		}
		if h.TDPWatts <= 0 {
			return nil, fmt.Errorf("reference: hardware %q: tdp_watts must be > 0, got %v", h.ID, h.TDPWatts)
		}
		t.hardware[h.ID] = h
	}
	for _, r := range of.Regions {
		if r.ID == "" {
			return nil, fmt.Errorf("reference: region override without id")
		}
		if r.PUE < 1 {
			return nil, fmt.Errorf("reference: region %q: pue must be >= 1, got %v", r.ID, r.PUE)
		}
		if r.CarbonIntensity < 0 {
			return nil, fmt.Errorf("reference: region %q: carbon_intensity_g_kwh must be >= 0, got %v", r.ID, r.CarbonIntensity)
		}
		t.regions[r.ID] = r
	}
	return t, nil
}
