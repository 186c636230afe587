// Package pvsystem describes the hardware side of a simulation: the module
// plane orientation, the module and inverter coefficient sets, and the
// electrical models that turn plane-of-array irradiance into DC and AC
// power.
//
// A System is immutable once constructed. The coefficient sets are opaque
// float maps; which models a parameter set can drive is decided by key
// inspection (see the models package) rather than by subtyping.
package pvsystem

import (
	"fmt"

	"github.com/goliatone/go-pvsim/pkg/irradiance"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
)

// DefaultAlbedo is used when neither an albedo nor a surface type is given.
const DefaultAlbedo = 0.25

// DefaultRacking names the mounting configuration assumed for cell
// temperature when the system does not specify one.
const DefaultRacking = "open_rack_cell_glassback"

// Option customises a System during construction.
type Option func(*System)

// WithName attaches a human-readable system name.
func WithName(name string) Option {
	return func(s *System) {
		s.name = name
	}
}

// WithMount sets the module mounting. The default is a flat fixed mount
// facing south.
func WithMount(mount Mount) Option {
	return func(s *System) {
		s.mount = mount
	}
}

// WithFixedOrientation mounts the modules at a fixed tilt and azimuth.
// Shorthand for WithMount(FixedMount{...}).
func WithFixedOrientation(surfaceTilt, surfaceAzimuth float64) Option {
	return func(s *System) {
		s.mount = FixedMount{SurfaceTilt: surfaceTilt, SurfaceAzimuth: surfaceAzimuth}
	}
}

// WithModule labels the module model, e.g. a database key.
func WithModule(name string) Option {
	return func(s *System) {
		s.module = name
	}
}

// WithModuleParameters sets the module coefficient set. The map is copied.
func WithModuleParameters(params ModuleParameters) Option {
	return func(s *System) {
		s.moduleParameters = params.Clone()
	}
}

// WithInverter labels the inverter model, e.g. a database key.
func WithInverter(name string) Option {
	return func(s *System) {
		s.inverter = name
	}
}

// WithInverterParameters sets the inverter coefficient set. The map is
// copied.
func WithInverterParameters(params InverterParameters) Option {
	return func(s *System) {
		s.inverterParameters = params.Clone()
	}
}

// WithTemperatureParameters overrides the cell temperature coefficients.
// When omitted, the racking preset supplies them.
func WithTemperatureParameters(params Parameters) Option {
	return func(s *System) {
		s.temperatureParameters = params.Clone()
	}
}

// WithLossParameters sets coefficients for the losses stage, keyed by loss
// name in percent.
func WithLossParameters(params Parameters) Option {
	return func(s *System) {
		s.lossParameters = params.Clone()
	}
}

// WithRacking names the mounting configuration used to pick cell
// temperature presets, e.g. "roof_mount_cell_glassback".
func WithRacking(name string) Option {
	return func(s *System) {
		s.racking = name
	}
}

// WithAlbedo sets the ground reflectance [0, 1] directly.
func WithAlbedo(albedo float64) Option {
	return func(s *System) {
		s.albedo = albedo
		s.albedoSet = true
	}
}

// WithSurfaceType selects the ground reflectance from the named surface,
// e.g. "grass" or "fresh snow". Ignored when WithAlbedo is also given.
func WithSurfaceType(surface string) Option {
	return func(s *System) {
		s.surfaceType = surface
	}
}

// WithModulesPerString sets the series string length. Voltages scale with
// it.
func WithModulesPerString(n int) Option {
	return func(s *System) {
		s.modulesPerString = n
	}
}

// WithStringsPerInverter sets the parallel string count. Currents scale
// with it.
func WithStringsPerInverter(n int) Option {
	return func(s *System) {
		s.stringsPerInverter = n
	}
}

// System is an immutable description of a PV installation: mounting
// geometry, hardware coefficient sets and array wiring.
type System struct {
	name                  string
	module                string
	inverter              string
	mount                 Mount
	moduleParameters      ModuleParameters
	inverterParameters    InverterParameters
	temperatureParameters Parameters
	lossParameters        Parameters
	racking               string
	surfaceType           string
	albedo                float64
	albedoSet             bool
	modulesPerString      int
	stringsPerInverter    int
}

// New validates the configuration and returns the system. Surface tilt is
// limited to [0, 90] (facing the sky) and azimuth to [0, 360].
func New(options ...Option) (*System, error) {
	s := &System{
		mount:              FixedMount{SurfaceTilt: 0, SurfaceAzimuth: 180},
		albedo:             DefaultAlbedo,
		racking:            DefaultRacking,
		modulesPerString:   1,
		stringsPerInverter: 1,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	if s.mount == nil {
		return nil, fmt.Errorf("pvsystem: mount is required")
	}
	if err := s.mount.Validate(); err != nil {
		return nil, err
	}

	if !s.albedoSet && s.surfaceType != "" {
		albedo, ok := irradiance.SurfaceAlbedos[s.surfaceType]
		if !ok {
			return nil, fmt.Errorf("pvsystem: unknown surface type %q", s.surfaceType)
		}
		s.albedo = albedo
	}
	if err := pverr.CheckRange("albedo", s.albedo, 0, 1); err != nil {
		return nil, err
	}

	if s.modulesPerString < 1 {
		return nil, fmt.Errorf("pvsystem: modules per string must be at least 1, got %d", s.modulesPerString)
	}
	if s.stringsPerInverter < 1 {
		return nil, fmt.Errorf("pvsystem: strings per inverter must be at least 1, got %d", s.stringsPerInverter)
	}

	return s, nil
}

// MustNew panics when construction fails. Useful for fixtures and examples.
func MustNew(options ...Option) *System {
	s, err := New(options...)
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the system name, empty when unset.
func (s *System) Name() string { return s.name }

// Module returns the module label.
func (s *System) Module() string { return s.module }

// Inverter returns the inverter label.
func (s *System) Inverter() string { return s.inverter }

// Mount returns the mounting geometry.
func (s *System) Mount() Mount { return s.mount }

// Orientation resolves the module plane for a solar position.
func (s *System) Orientation(pos solarposition.Position) Orientation {
	return s.mount.Orientation(pos)
}

// AOI returns the angle of incidence of the direct beam on the module
// plane, in degrees.
func (s *System) AOI(pos solarposition.Position) float64 {
	orient := s.mount.Orientation(pos)
	return irradiance.AOI(orient.SurfaceTilt, orient.SurfaceAzimuth, pos.ApparentZenith, pos.Azimuth)
}

// ModuleParameters returns a copy of the module coefficient set.
func (s *System) ModuleParameters() ModuleParameters {
	return s.moduleParameters.Clone()
}

// InverterParameters returns a copy of the inverter coefficient set.
func (s *System) InverterParameters() InverterParameters {
	return s.inverterParameters.Clone()
}

// TemperatureParameters returns a copy of the cell temperature coefficient
// overrides, nil when the racking preset applies.
func (s *System) TemperatureParameters() Parameters {
	return s.temperatureParameters.Clone()
}

// LossParameters returns a copy of the loss coefficient set.
func (s *System) LossParameters() Parameters {
	return s.lossParameters.Clone()
}

// Racking returns the mounting configuration name.
func (s *System) Racking() string { return s.racking }

// Albedo returns the ground reflectance.
func (s *System) Albedo() float64 { return s.albedo }

// ModulesPerString returns the series string length.
func (s *System) ModulesPerString() int { return s.modulesPerString }

// StringsPerInverter returns the parallel string count.
func (s *System) StringsPerInverter() int { return s.stringsPerInverter }

// ScaleDC scales a single-module operating point to the full array:
// voltages by modules per string, currents by strings per inverter, power
// by both.
func (s *System) ScaleDC(dc DCResult) DCResult {
	v := float64(s.modulesPerString)
	i := float64(s.stringsPerInverter)
	return DCResult{
		ISC: dc.ISC * i,
		IMP: dc.IMP * i,
		VOC: dc.VOC * v,
		VMP: dc.VMP * v,
		PMP: dc.PMP * v * i,
		IX:  dc.IX * i,
		IXX: dc.IXX * i,
	}
}

// DCResult is the DC operating point of a module or array. Models that do
// not resolve the IV curve only fill PMP.
type DCResult struct {
	ISC float64 // short-circuit current, A
	IMP float64 // current at maximum power, A
	VOC float64 // open-circuit voltage, V
	VMP float64 // voltage at maximum power, V
	PMP float64 // maximum power, W
	IX  float64 // current at V = 0.5 Voc, A
	IXX float64 // current at V = 0.5 (Voc + Vmp), A
}
