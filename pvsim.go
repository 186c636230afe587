// Package pvsim models the power output of photovoltaic systems. The root
// package re-exports the pieces most callers need: build a Location and a
// System, wire them into a modelchain.Chain, and run it over a time index to
// get irradiance, cell temperature and AC power series.
//
// Subpackages carry the full surface: pkg/modelchain for the simulation
// pipeline, pkg/models for the model registries, pkg/scenario for YAML-driven
// runs, pkg/moduledb for the bundled hardware tables, and pkg/iotools for
// measured-weather file readers.
package pvsim

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/moduledb"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
)

// Location is a site on the globe; alias exported via the root package for
// convenience.
type Location = location.Location

// System describes the PV hardware under simulation.
type System = pvsystem.System

// Chain is the configured simulation pipeline.
type Chain = modelchain.Chain

// Results holds the per-stage output series of a run.
type Results = modelchain.Results

// Weather carries optional measured inputs for a run.
type Weather = modelchain.Weather

// Localized pairs a system with a location for the convenience methods that
// need no full chain.
type Localized = modelchain.Localized

// ChainOption configures a chain at construction.
type ChainOption = modelchain.Option

// ModelKeys records which model each pipeline stage resolved to.
type ModelKeys = modelchain.ModelKeys

// UnknownModelError reports a model key absent from its stage registry.
type UnknownModelError = pverr.UnknownModelError

// NaiveTimestampError reports a timestamp that carries no timezone.
type NaiveTimestampError = pverr.NaiveTimestampError

// InputRangeError reports a numeric input outside its physical range.
type InputRangeError = pverr.InputRangeError

// Orientation strategies accepted by WithOrientationStrategy.
const (
	StrategyFlat                = modelchain.StrategyFlat
	StrategySouthAtLatitudeTilt = modelchain.StrategySouthAtLatitudeTilt
)

// NewChain exposes the chain constructor from the top-level module.
func NewChain(system *pvsystem.System, loc *location.Location, options ...modelchain.Option) (*modelchain.Chain, error) {
	return modelchain.New(system, loc, options...)
}

// WithOrientationStrategy replaces the system mount with a strategy-derived
// fixed plane, passed through to the chain constructor.
func WithOrientationStrategy(name string) modelchain.Option {
	return modelchain.WithOrientationStrategy(name)
}

// WithTurbidity overrides the Linke turbidity the clear-sky fill assumes.
func WithTurbidity(linke float64) modelchain.Option {
	return modelchain.WithTurbidity(linke)
}

// BasicChain looks the named hardware up in the bundled database, mounts it
// south at latitude tilt, and runs a clear-sky simulation over times. It is
// the simplest entry point for callers that just want power series.
func BasicChain(ctx context.Context, times []time.Time, latitude, longitude float64, module, inverter string, options ...modelchain.Option) (*modelchain.Chain, *modelchain.Results, error) {
	db, err := moduledb.Default()
	if err != nil {
		return nil, nil, err
	}
	mod, ok := db.Module(module)
	if !ok {
		return nil, nil, fmt.Errorf("pvsim: unknown module %q", module)
	}
	inv, ok := db.Inverter(inverter)
	if !ok {
		return nil, nil, fmt.Errorf("pvsim: unknown inverter %q", inverter)
	}

	system, err := pvsystem.New(
		pvsystem.WithModuleParameters(mod.Parameters),
		pvsystem.WithInverterParameters(inv.Parameters),
	)
	if err != nil {
		return nil, nil, err
	}
	loc, err := location.New(latitude, longitude)
	if err != nil {
		return nil, nil, err
	}

	opts := append([]modelchain.Option{
		modelchain.WithOrientationStrategy(modelchain.StrategySouthAtLatitudeTilt),
	}, options...)
	chain, err := modelchain.New(system, loc, opts...)
	if err != nil {
		return nil, nil, err
	}
	res, err := chain.Run(ctx, times, modelchain.Weather{})
	if err != nil {
		return nil, nil, err
	}
	return chain, res, nil
}
