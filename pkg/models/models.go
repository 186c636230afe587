// Package models is the dispatch directory for simulation stages. Each stage
// owns a registry mapping a model key to a typed function; built-in models
// are registered at init time and custom ones can be added before a chain is
// configured. Lookups are safe for concurrent use.
//
// Stages whose models depend on hardware parameters (AOI, spectral, cell
// temperature, DC, AC, losses) register builders instead of bare functions:
// a builder validates the relevant parameter set once and returns the bound
// function, so key resolution happens at configuration time rather than
// inside the simulation loop.
package models

import (
	"time"

	"github.com/goliatone/go-pvsim/pkg/clearsky"
	"github.com/goliatone/go-pvsim/pkg/irradiance"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
)

// Stage identifies one step of the simulation pipeline.
type Stage string

const (
	StageSolarPosition Stage = "solarposition"
	StageAirmass       Stage = "airmass"
	StageClearSky      Stage = "clearsky"
	StageTransposition Stage = "transposition"
	StageAOI           Stage = "aoi"
	StageSpectral      Stage = "spectral"
	StageCellTemp      Stage = "celltemp"
	StageDC            Stage = "dc"
	StageAC            Stage = "ac"
	StageLosses        Stage = "losses"
)

// Default model keys used when a chain is configured without an explicit
// choice for a stage.
const (
	DefaultSolarPosition = "ephemeris"
	DefaultAirmass       = "kastenyoung1989"
	DefaultClearSky      = "ineichen"
	DefaultTransposition = "haydavies"
	DefaultCellTemp      = "sapm"
	DefaultLosses        = "no_loss"
)

// SolarPositionFunc computes the sun coordinates for one instant at a site.
// Pressure (Pa) and temperature (C) feed the refraction correction; models
// without one ignore them.
type SolarPositionFunc func(t time.Time, latitude, longitude, pressure, temperature float64) solarposition.Position

// AirmassFunc returns the relative airmass for a solar position, NaN when
// the sun is below the horizon. Models differ in whether they want the true
// or the refraction-corrected zenith, so they receive the full position.
type AirmassFunc func(pos solarposition.Position) float64

// ClearSkyInput carries everything any of the clear-sky models may need.
type ClearSkyInput struct {
	ApparentZenith  float64
	AirmassAbsolute float64
	LinkeTurbidity  float64
	Altitude        float64
	DNIExtra        float64
}

// ClearSkyFunc estimates the cloudless irradiance components at a site.
type ClearSkyFunc func(in ClearSkyInput) clearsky.Irradiance

// TranspositionFunc maps horizontal diffuse irradiance onto a tilted plane.
type TranspositionFunc = irradiance.SkyDiffuseFunc
