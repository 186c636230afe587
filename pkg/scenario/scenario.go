package scenario

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one simulation described as data: where, what hardware, which
// models, and when.
type Scenario struct {
	Name     string         `yaml:"name"`
	Notes    string         `yaml:"notes"`
	Location LocationConfig `yaml:"location"`
	System   SystemConfig   `yaml:"system"`
	Chain    ChainConfig    `yaml:"chain"`
	Times    TimesConfig    `yaml:"times"`
}

// LocationConfig mirrors the scenario location block.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	Altitude  float64 `yaml:"altitude" validate:"gte=-500,lte=9000"`
	Timezone  string  `yaml:"timezone"`
	Name      string  `yaml:"name"`
	Turbidity float64 `yaml:"turbidity" default:"3" validate:"gte=1,lte=10"`
}

// SystemConfig mirrors the scenario system block. Hardware comes either from
// the parameter database (module / inverter names) or inline coefficient
// maps, never both.
type SystemConfig struct {
	Name                  string             `yaml:"name"`
	Module                string             `yaml:"module"`
	ModuleParameters      map[string]float64 `yaml:"module_parameters"`
	Inverter              string             `yaml:"inverter"`
	InverterParameters    map[string]float64 `yaml:"inverter_parameters"`
	SurfaceTilt           float64            `yaml:"surface_tilt" validate:"gte=0,lte=90"`
	SurfaceAzimuth        float64            `yaml:"surface_azimuth" default:"180" validate:"gte=0,lte=360"`
	Mount                 *MountConfig       `yaml:"mount"`
	Albedo                *float64           `yaml:"albedo" validate:"omitempty,gte=0,lte=1"`
	SurfaceType           string             `yaml:"surface_type"`
	Racking               string             `yaml:"racking"`
	TemperatureParameters map[string]float64 `yaml:"temperature_parameters"`
	LossParameters        map[string]float64 `yaml:"loss_parameters"`
	ModulesPerString      int                `yaml:"modules_per_string" default:"1" validate:"gte=1"`
	StringsPerInverter    int                `yaml:"strings_per_inverter" default:"1" validate:"gte=1"`
}

// MountConfig selects the mount. Fixed mounts read surface_tilt and
// surface_azimuth from the system block; single-axis mounts read the axis
// fields here. A zero gcr keeps the tracker's default ground coverage ratio.
type MountConfig struct {
	Type        string  `yaml:"type" default:"fixed" validate:"oneof=fixed single_axis"`
	AxisTilt    float64 `yaml:"axis_tilt" validate:"gte=0,lte=90"`
	AxisAzimuth float64 `yaml:"axis_azimuth" default:"180" validate:"gte=0,lte=360"`
	MaxAngle    float64 `yaml:"max_angle" default:"90" validate:"gte=0,lte=180"`
	Backtrack   *bool   `yaml:"backtrack"`
	GCR         float64 `yaml:"gcr" validate:"gte=0,lte=1"`
}

// ChainConfig names the model key per stage. Empty fields keep the registry
// default or, for the system-parameterised stages, coefficient inference.
type ChainConfig struct {
	SolarPosition       string  `yaml:"solar_position"`
	Airmass             string  `yaml:"airmass"`
	ClearSky            string  `yaml:"clear_sky"`
	Transposition       string  `yaml:"transposition"`
	AOI                 string  `yaml:"aoi"`
	Spectral            string  `yaml:"spectral"`
	CellTemp            string  `yaml:"cell_temperature"`
	DC                  string  `yaml:"dc"`
	AC                  string  `yaml:"ac"`
	Losses              string  `yaml:"losses"`
	OrientationStrategy string  `yaml:"orientation_strategy"`
	ReferenceIrradiance float64 `yaml:"reference_irradiance" validate:"omitempty,gt=0"`
}

// TimesConfig describes the run index: either an explicit list or a
// start/end/step span. Entries parse as RFC 3339 stamps with offsets, or as
// naive "2006-01-02 15:04" forms resolved in the location timezone.
type TimesConfig struct {
	Start string   `yaml:"start"`
	End   string   `yaml:"end"`
	Step  string   `yaml:"step" default:"1h"`
	List  []string `yaml:"list"`
}

// LoadFile reads and validates the named scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	return Parse(data)
}

// Load reads and validates a scenario from r.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("scenario: read: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals, defaults and validates a scenario document.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: parse yaml: %w", err)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
