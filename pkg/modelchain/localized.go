package modelchain

import (
	"fmt"
	"time"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// Localized pairs a system with the site it operates at. It is a
// convenience for carrying the two together, answering site-dependent
// questions about the hardware, and spawning chains; it adds no state of
// its own.
type Localized struct {
	System   *pvsystem.System
	Location *location.Location
}

// NewLocalized pairs a system with a location.
func NewLocalized(system *pvsystem.System, loc *location.Location) (*Localized, error) {
	if system == nil {
		return nil, fmt.Errorf("modelchain: system is required")
	}
	if loc == nil {
		return nil, fmt.Errorf("modelchain: location is required")
	}
	return &Localized{System: system, Location: loc}, nil
}

// Chain configures a simulation chain for the pair.
func (l *Localized) Chain(options ...Option) (*Chain, error) {
	return New(l.System, l.Location, options...)
}

// SolarPosition computes the sun coordinates at the site for each timestamp.
func (l *Localized) SolarPosition(times []time.Time, method string) ([]solarposition.Position, error) {
	return l.Location.SolarPosition(times, method)
}

// ClearSky estimates cloudless irradiance at the site.
func (l *Localized) ClearSky(times []time.Time, model string) (*timeseries.Frame, error) {
	return l.Location.ClearSky(times, model)
}

// Orientation reports the system's module plane for a solar position.
func (l *Localized) Orientation(pos solarposition.Position) pvsystem.Orientation {
	return l.System.Orientation(pos)
}

// AOI is the angle of incidence on the system's module plane for a solar
// position, in degrees.
func (l *Localized) AOI(pos solarposition.Position) float64 {
	return l.System.AOI(pos)
}
