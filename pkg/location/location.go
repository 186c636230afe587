// Package location describes a site on the earth's surface and offers
// convenience wrappers that evaluate the site-level models (solar position,
// airmass, clear sky) over a time index.
//
// A Location is immutable once constructed; derive a modified copy by
// calling New again.
package location

import (
	"fmt"
	"time"

	"github.com/goliatone/go-pvsim/pkg/atmosphere"
	"github.com/goliatone/go-pvsim/pkg/clearsky"
	"github.com/goliatone/go-pvsim/pkg/irradiance"
	"github.com/goliatone/go-pvsim/pkg/models"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// Option customises a Location during construction.
type Option func(*Location)

// WithName attaches a human-readable site name.
func WithName(name string) Option {
	return func(l *Location) {
		l.name = name
	}
}

// WithAltitude sets the site elevation in meters above sea level.
func WithAltitude(meters float64) Option {
	return func(l *Location) {
		l.altitude = meters
	}
}

// WithTimezone sets the IANA timezone name, e.g. "Etc/GMT+7" or
// "Europe/Berlin". The name is resolved during construction.
func WithTimezone(tz string) Option {
	return func(l *Location) {
		l.tzName = tz
	}
}

// WithTurbidity sets the Linke turbidity factor used by the clear-sky
// models. Sites without a better source keep the mid-latitude default.
func WithTurbidity(linke float64) Option {
	return func(l *Location) {
		l.turbidity = linke
	}
}

// Location is an immutable site descriptor: geographic coordinates plus the
// timezone that observation timestamps should be interpreted in.
type Location struct {
	latitude  float64
	longitude float64
	altitude  float64
	turbidity float64
	name      string
	tzName    string
	tz        *time.Location
}

// New validates the coordinates and resolves the timezone. Latitude is
// degrees north [-90, 90], longitude degrees east [-180, 180].
func New(latitude, longitude float64, options ...Option) (*Location, error) {
	l := &Location{
		latitude:  latitude,
		longitude: longitude,
		turbidity: clearsky.DefaultLinkeTurbidity,
		tzName:    "UTC",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}

	if err := pverr.CheckRange("latitude", latitude, -90, 90); err != nil {
		return nil, err
	}
	if err := pverr.CheckRange("longitude", longitude, -180, 180); err != nil {
		return nil, err
	}
	if err := pverr.CheckRange("turbidity", l.turbidity, 1, 10); err != nil {
		return nil, err
	}

	tz, err := time.LoadLocation(l.tzName)
	if err != nil {
		return nil, fmt.Errorf("location: resolve timezone %q: %w", l.tzName, err)
	}
	l.tz = tz

	return l, nil
}

// MustNew panics when construction fails. Useful for fixtures and examples.
func MustNew(latitude, longitude float64, options ...Option) *Location {
	l, err := New(latitude, longitude, options...)
	if err != nil {
		panic(err)
	}
	return l
}

// Latitude in decimal degrees, positive north.
func (l *Location) Latitude() float64 { return l.latitude }

// Longitude in decimal degrees, positive east.
func (l *Location) Longitude() float64 { return l.longitude }

// Altitude in meters above sea level.
func (l *Location) Altitude() float64 { return l.altitude }

// Turbidity is the Linke turbidity factor for clear-sky estimates.
func (l *Location) Turbidity() float64 { return l.turbidity }

// Name returns the site name, empty when unset.
func (l *Location) Name() string { return l.name }

// TimezoneName returns the IANA name the location was configured with.
func (l *Location) TimezoneName() string { return l.tzName }

// Timezone returns the resolved timezone.
func (l *Location) Timezone() *time.Location { return l.tz }

// Pressure returns the standard-atmosphere pressure at the site altitude.
func (l *Location) Pressure() float64 {
	return atmosphere.AltitudeToPressure(l.altitude)
}

// LocalTimes converts every timestamp to the location's timezone. Instants
// are preserved.
func (l *Location) LocalTimes(times []time.Time) []time.Time {
	out := make([]time.Time, len(times))
	for i, t := range times {
		out[i] = t.In(l.tz)
	}
	return out
}

// String renders the location in a compact single line form.
func (l *Location) String() string {
	name := l.name
	if name == "" {
		name = "location"
	}
	return fmt.Sprintf("%s: %.4f, %.4f (%s, %.0f m)", name, l.latitude, l.longitude, l.tzName, l.altitude)
}

// SolarPosition evaluates the named solar position model over the index.
// An empty method selects the default.
func (l *Location) SolarPosition(times []time.Time, method string) ([]solarposition.Position, error) {
	if method == "" {
		method = models.DefaultSolarPosition
	}
	fn, err := models.SolarPosition(method)
	if err != nil {
		return nil, err
	}

	pressure := l.Pressure()
	out := make([]solarposition.Position, len(times))
	for i, t := range times {
		out[i] = fn(t, l.latitude, l.longitude, pressure, solarposition.DefaultTemperature)
	}
	return out, nil
}

// Airmass evaluates the named relative airmass model over the index and
// pressure-corrects it for the site altitude. The result frame has columns
// airmass_relative and airmass_absolute; both are NaN while the sun is set.
func (l *Location) Airmass(times []time.Time, model string) (*timeseries.Frame, error) {
	if model == "" {
		model = models.DefaultAirmass
	}
	fn, err := models.Airmass(model)
	if err != nil {
		return nil, err
	}
	positions, err := l.SolarPosition(times, "")
	if err != nil {
		return nil, err
	}

	pressure := l.Pressure()
	relative := make([]float64, len(times))
	absolute := make([]float64, len(times))
	for i, pos := range positions {
		relative[i] = fn(pos)
		absolute[i] = atmosphere.AbsoluteAirmass(relative[i], pressure)
	}

	frame := timeseries.NewFrame(times)
	if err := frame.Add("airmass_relative", relative); err != nil {
		return nil, err
	}
	if err := frame.Add("airmass_absolute", absolute); err != nil {
		return nil, err
	}
	return frame, nil
}

// ClearSky estimates cloudless irradiance over the index with the named
// model. The result frame has columns ghi, dni and dhi.
func (l *Location) ClearSky(times []time.Time, model string) (*timeseries.Frame, error) {
	if model == "" {
		model = models.DefaultClearSky
	}
	fn, err := models.ClearSky(model)
	if err != nil {
		return nil, err
	}
	positions, err := l.SolarPosition(times, "")
	if err != nil {
		return nil, err
	}

	pressure := l.Pressure()
	ghi := make([]float64, len(times))
	dni := make([]float64, len(times))
	dhi := make([]float64, len(times))
	for i, t := range times {
		pos := positions[i]
		relative := atmosphere.RelativeAirmassKastenYoung(pos.ApparentZenith)
		estimate := fn(models.ClearSkyInput{
			ApparentZenith:  pos.ApparentZenith,
			AirmassAbsolute: atmosphere.AbsoluteAirmass(relative, pressure),
			LinkeTurbidity:  l.turbidity,
			Altitude:        l.altitude,
			DNIExtra:        irradiance.ExtraterrestrialDNI(t),
		})
		ghi[i] = estimate.GHI
		dni[i] = estimate.DNI
		dhi[i] = estimate.DHI
	}

	frame := timeseries.NewFrame(times)
	if err := frame.Add("ghi", ghi); err != nil {
		return nil, err
	}
	if err := frame.Add("dni", dni); err != nil {
		return nil, err
	}
	if err := frame.Add("dhi", dhi); err != nil {
		return nil, err
	}
	return frame, nil
}
