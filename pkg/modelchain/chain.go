// Package modelchain wires a System and a Location into a runnable
// simulation pipeline. Construction resolves every stage to a concrete model
// function: explicit keys go through the stage registries, unset
// hardware-dependent stages are inferred from the parameter sets, and
// builders bind coefficients once. A configured Chain does no lookups or
// parameter inspection during a run; it just executes the bound functions
// over the timestamp index.
package modelchain

import (
	"fmt"
	"math"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/models"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
)

// Orientation strategies accepted by WithOrientationStrategy. A strategy
// replaces the system mount for the duration of the chain.
const (
	StrategyFlat                = "flat"
	StrategySouthAtLatitudeTilt = "south_at_latitude_tilt"
)

// Reference conditions for the rated-capacity estimate.
const (
	// DefaultReferenceIrradiance is the standard test condition irradiance
	// in W/m^2.
	DefaultReferenceIrradiance = 1000.0

	ratedCellTemp = 25.0
)

// ModelKeys names the model resolved for each pipeline stage. Empty DC, AC,
// AOI and spectral keys mean "infer from the parameter sets".
type ModelKeys struct {
	SolarPosition string
	Airmass       string
	ClearSky      string
	Transposition string
	AOI           string
	Spectral      string
	CellTemp      string
	DC            string
	AC            string
	Losses        string
}

// Option configures a Chain under construction.
type Option func(*Chain)

// WithSolarPositionModel selects the solar position algorithm.
func WithSolarPositionModel(key string) Option {
	return func(c *Chain) {
		c.keys.SolarPosition = key
	}
}

// WithAirmassModel selects the relative airmass model.
func WithAirmassModel(key string) Option {
	return func(c *Chain) {
		c.keys.Airmass = key
	}
}

// WithClearSkyModel selects the model used when a run has no measured
// irradiance.
func WithClearSkyModel(key string) Option {
	return func(c *Chain) {
		c.keys.ClearSky = key
	}
}

// WithTranspositionModel selects the sky diffuse transposition model.
func WithTranspositionModel(key string) Option {
	return func(c *Chain) {
		c.keys.Transposition = key
	}
}

// WithAOIModel overrides incidence angle loss inference.
func WithAOIModel(key string) Option {
	return func(c *Chain) {
		c.keys.AOI = key
	}
}

// WithSpectralModel overrides spectral loss inference.
func WithSpectralModel(key string) Option {
	return func(c *Chain) {
		c.keys.Spectral = key
	}
}

// WithCellTempModel selects the cell temperature model.
func WithCellTempModel(key string) Option {
	return func(c *Chain) {
		c.keys.CellTemp = key
	}
}

// WithDCModel overrides DC model inference.
func WithDCModel(key string) Option {
	return func(c *Chain) {
		c.keys.DC = key
	}
}

// WithACModel overrides AC model inference.
func WithACModel(key string) Option {
	return func(c *Chain) {
		c.keys.AC = key
	}
}

// WithLossesModel selects the DC losses model.
func WithLossesModel(key string) Option {
	return func(c *Chain) {
		c.keys.Losses = key
	}
}

// WithOrientationStrategy replaces the system mount with a strategy-derived
// fixed plane: StrategyFlat or StrategySouthAtLatitudeTilt.
func WithOrientationStrategy(name string) Option {
	return func(c *Chain) {
		c.strategy = name
	}
}

// WithTurbidity overrides the location's Linke turbidity for clear-sky
// estimates.
func WithTurbidity(linke float64) Option {
	return func(c *Chain) {
		c.turbidity = linke
	}
}

// WithReferenceIrradiance sets the irradiance the rated-capacity estimate is
// evaluated at.
func WithReferenceIrradiance(wPerM2 float64) Option {
	return func(c *Chain) {
		c.referenceIrradiance = wPerM2
	}
}

// Chain is a configured simulation pipeline for one System at one Location.
// A Chain is safe to reuse for any number of runs but not for concurrent
// ones: it retains the most recent Results. Independent chains run in
// parallel freely.
type Chain struct {
	system   *pvsystem.System
	location *location.Location
	mount    pvsystem.Mount
	strategy string

	keys                ModelKeys
	turbidity           float64
	referenceIrradiance float64
	diffuseFraction     float64

	solarPosition models.SolarPositionFunc
	airmass       models.AirmassFunc
	clearSky      models.ClearSkyFunc
	transposition models.TranspositionFunc
	aoiLoss       models.AOILossFunc
	spectralLoss  models.SpectralLossFunc
	cellTemp      models.CellTempFunc
	dc            models.BoundDC
	ac            models.ACFunc
	losses        models.LossesFunc

	results *Results
}

// New resolves, infers and binds every pipeline stage for the system and
// location. All configuration errors surface here: unknown model keys,
// failed inference, missing coefficients, and model pairings that cannot
// work together (the sandia inverter model needs a DC model that reports an
// operating voltage).
func New(system *pvsystem.System, loc *location.Location, options ...Option) (*Chain, error) {
	if system == nil {
		return nil, fmt.Errorf("modelchain: system is required")
	}
	if loc == nil {
		return nil, fmt.Errorf("modelchain: location is required")
	}

	c := &Chain{
		system:   system,
		location: loc,
		mount:    system.Mount(),
		keys: ModelKeys{
			SolarPosition: models.DefaultSolarPosition,
			Airmass:       models.DefaultAirmass,
			ClearSky:      models.DefaultClearSky,
			Transposition: models.DefaultTransposition,
			CellTemp:      models.DefaultCellTemp,
			Losses:        models.DefaultLosses,
		},
		turbidity:           loc.Turbidity(),
		referenceIrradiance: DefaultReferenceIrradiance,
		diffuseFraction:     system.ModuleParameters().Value("FD", 1),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if err := pverr.CheckRange("turbidity", c.turbidity, 1, 10); err != nil {
		return nil, err
	}
	if c.referenceIrradiance <= 0 || math.IsNaN(c.referenceIrradiance) {
		return nil, &pverr.InputRangeError{
			Field: "reference_irradiance",
			Value: c.referenceIrradiance,
			Min:   0,
			Max:   math.Inf(1),
		}
	}
	if err := c.resolveOrientation(); err != nil {
		return nil, err
	}
	if err := c.resolveModels(); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNew panics when construction fails. Useful for examples and fixtures.
func MustNew(system *pvsystem.System, loc *location.Location, options ...Option) *Chain {
	c, err := New(system, loc, options...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Chain) resolveOrientation() error {
	switch c.strategy {
	case "":
		// Keep the system mount.
	case StrategyFlat:
		c.mount = pvsystem.FixedMount{SurfaceTilt: 0, SurfaceAzimuth: 180}
	case StrategySouthAtLatitudeTilt:
		c.mount = pvsystem.FixedMount{
			SurfaceTilt:    math.Abs(c.location.Latitude()),
			SurfaceAzimuth: 180,
		}
	default:
		return &pverr.UnknownModelError{
			Stage: "orientation",
			Key:   c.strategy,
			Known: []string{StrategyFlat, StrategySouthAtLatitudeTilt},
		}
	}
	return nil
}

func (c *Chain) resolveModels() error {
	var err error
	if c.solarPosition, err = models.SolarPosition(c.keys.SolarPosition); err != nil {
		return err
	}
	if c.airmass, err = models.Airmass(c.keys.Airmass); err != nil {
		return err
	}
	if c.clearSky, err = models.ClearSky(c.keys.ClearSky); err != nil {
		return err
	}
	if c.transposition, err = models.Transposition(c.keys.Transposition); err != nil {
		return err
	}

	if c.keys.AOI == "" {
		c.keys.AOI = models.InferAOIModel(c.system.ModuleParameters())
	}
	if c.keys.Spectral == "" {
		c.keys.Spectral = models.InferSpectralModel(c.system.ModuleParameters())
	}
	if c.keys.DC == "" {
		if c.keys.DC, err = models.InferDCModel(c.system.ModuleParameters()); err != nil {
			return err
		}
	}
	if c.keys.AC == "" {
		if c.keys.AC, err = models.InferACModel(c.system.InverterParameters()); err != nil {
			return err
		}
	}

	aoiBuilder, err := models.AOI(c.keys.AOI)
	if err != nil {
		return err
	}
	if c.aoiLoss, err = aoiBuilder(c.system); err != nil {
		return c.bindError(models.StageAOI, c.keys.AOI, err)
	}

	spectralBuilder, err := models.Spectral(c.keys.Spectral)
	if err != nil {
		return err
	}
	if c.spectralLoss, err = spectralBuilder(c.system); err != nil {
		return c.bindError(models.StageSpectral, c.keys.Spectral, err)
	}

	cellTempBuilder, err := models.CellTemp(c.keys.CellTemp)
	if err != nil {
		return err
	}
	if c.cellTemp, err = cellTempBuilder(c.system); err != nil {
		return c.bindError(models.StageCellTemp, c.keys.CellTemp, err)
	}

	dcBuilder, err := models.DC(c.keys.DC)
	if err != nil {
		return err
	}
	if c.dc, err = dcBuilder(c.system); err != nil {
		return c.bindError(models.StageDC, c.keys.DC, err)
	}

	acBuilder, err := models.AC(c.keys.AC)
	if err != nil {
		return err
	}
	if c.ac, err = acBuilder(c.system); err != nil {
		return c.bindError(models.StageAC, c.keys.AC, err)
	}

	lossesBuilder, err := models.Losses(c.keys.Losses)
	if err != nil {
		return err
	}
	if c.losses, err = lossesBuilder(c.system); err != nil {
		return c.bindError(models.StageLosses, c.keys.Losses, err)
	}

	if c.keys.AC == "sandia" && !c.dc.ReportsVoltage {
		return &pverr.ModelSelectionError{
			Stage: string(models.StageAC),
			Reason: fmt.Sprintf("the sandia inverter model needs an operating voltage, which the %s dc model does not report",
				c.keys.DC),
			Candidates: []string{"pvwatts"},
		}
	}
	return nil
}

func (c *Chain) bindError(stage models.Stage, key string, err error) error {
	return fmt.Errorf("modelchain: bind %s model %q: %w", stage, key, err)
}

// System returns the system the chain simulates.
func (c *Chain) System() *pvsystem.System { return c.system }

// Location returns the site the chain simulates at.
func (c *Chain) Location() *location.Location { return c.location }

// Mount returns the module plane geometry in effect, after any orientation
// strategy override.
func (c *Chain) Mount() pvsystem.Mount { return c.mount }

// Models returns the resolved model key for every stage, inference included.
func (c *Chain) Models() ModelKeys { return c.keys }

// Turbidity returns the Linke turbidity the clear-sky stage uses.
func (c *Chain) Turbidity() float64 { return c.turbidity }

// ReferenceIrradiance returns the irradiance DCCapacity is evaluated at.
func (c *Chain) ReferenceIrradiance() float64 { return c.referenceIrradiance }

// DCCapacity estimates the array's rated DC power: the bound DC model
// evaluated at the reference irradiance and 25 C cell temperature, scaled to
// the full array.
func (c *Chain) DCCapacity() float64 {
	return c.system.ScaleDC(c.dc.Func(c.referenceIrradiance, ratedCellTemp)).PMP
}

// Results returns the output of the most recent run, nil before the first
// one. Each run overwrites it.
func (c *Chain) Results() *Results { return c.results }
