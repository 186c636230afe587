package scenario

import (
	"fmt"
	"time"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/moduledb"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/tracking"
)

// Built is a scenario resolved against a parameter database: the constructed
// location and system, the chain options, and the parsed run index in the
// location timezone.
type Built struct {
	Location *location.Location
	System   *pvsystem.System
	Options  []modelchain.Option
	Times    []time.Time
}

// Chain constructs the model chain for the built scenario.
func (b *Built) Chain() (*modelchain.Chain, error) {
	return modelchain.New(b.System, b.Location, b.Options...)
}

// Build resolves database references, constructs the location and system,
// and parses the run index. db may be nil when the scenario carries inline
// parameters only.
func (s *Scenario) Build(db *moduledb.Database) (*Built, error) {
	loc, err := s.buildLocation()
	if err != nil {
		return nil, err
	}
	system, err := s.buildSystem(db)
	if err != nil {
		return nil, err
	}
	times, err := s.Times.resolve(loc.Timezone(), s.Location.Timezone != "")
	if err != nil {
		return nil, err
	}

	return &Built{
		Location: loc,
		System:   system,
		Options:  s.chainOptions(),
		Times:    loc.LocalTimes(times),
	}, nil
}

func (s *Scenario) buildLocation() (*location.Location, error) {
	opts := []location.Option{
		location.WithAltitude(s.Location.Altitude),
		location.WithTurbidity(s.Location.Turbidity),
	}
	if s.Location.Name != "" {
		opts = append(opts, location.WithName(s.Location.Name))
	}
	if s.Location.Timezone != "" {
		opts = append(opts, location.WithTimezone(s.Location.Timezone))
	}

	loc, err := location.New(s.Location.Latitude, s.Location.Longitude, opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario: location: %w", err)
	}
	return loc, nil
}

func (s *Scenario) buildSystem(db *moduledb.Database) (*pvsystem.System, error) {
	cfg := s.System
	var opts []pvsystem.Option
	if cfg.Name != "" {
		opts = append(opts, pvsystem.WithName(cfg.Name))
	}

	if cfg.Module != "" {
		entry, ok := db.Module(cfg.Module)
		if !ok {
			return nil, fmt.Errorf("scenario: unknown module %q in parameter database", cfg.Module)
		}
		opts = append(opts, pvsystem.WithModule(entry.Name), pvsystem.WithModuleParameters(entry.Parameters))
	} else {
		opts = append(opts, pvsystem.WithModuleParameters(toParameters(cfg.ModuleParameters)))
	}

	if cfg.Inverter != "" {
		entry, ok := db.Inverter(cfg.Inverter)
		if !ok {
			return nil, fmt.Errorf("scenario: unknown inverter %q in parameter database", cfg.Inverter)
		}
		opts = append(opts, pvsystem.WithInverter(entry.Name), pvsystem.WithInverterParameters(entry.Parameters))
	} else {
		opts = append(opts, pvsystem.WithInverterParameters(toParameters(cfg.InverterParameters)))
	}

	if cfg.Mount != nil && cfg.Mount.Type == "single_axis" {
		opts = append(opts, pvsystem.WithMount(buildSingleAxis(cfg.Mount)))
	} else {
		opts = append(opts, pvsystem.WithFixedOrientation(cfg.SurfaceTilt, cfg.SurfaceAzimuth))
	}

	if cfg.Albedo != nil {
		opts = append(opts, pvsystem.WithAlbedo(*cfg.Albedo))
	}
	if cfg.SurfaceType != "" {
		opts = append(opts, pvsystem.WithSurfaceType(cfg.SurfaceType))
	}
	if cfg.Racking != "" {
		opts = append(opts, pvsystem.WithRacking(cfg.Racking))
	}
	if len(cfg.TemperatureParameters) > 0 {
		opts = append(opts, pvsystem.WithTemperatureParameters(toParameters(cfg.TemperatureParameters)))
	}
	if len(cfg.LossParameters) > 0 {
		opts = append(opts, pvsystem.WithLossParameters(toParameters(cfg.LossParameters)))
	}
	opts = append(opts,
		pvsystem.WithModulesPerString(cfg.ModulesPerString),
		pvsystem.WithStringsPerInverter(cfg.StringsPerInverter),
	)

	system, err := pvsystem.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("scenario: system: %w", err)
	}
	return system, nil
}

func buildSingleAxis(cfg *MountConfig) *tracking.SingleAxisMount {
	opts := []tracking.Option{
		tracking.WithAxisTilt(cfg.AxisTilt),
		tracking.WithAxisAzimuth(cfg.AxisAzimuth),
		tracking.WithMaxAngle(cfg.MaxAngle),
	}
	switch {
	case cfg.Backtrack != nil && !*cfg.Backtrack:
		opts = append(opts, tracking.WithoutBacktracking())
	case cfg.GCR > 0:
		opts = append(opts, tracking.WithBacktracking(cfg.GCR))
	}
	return tracking.NewSingleAxis(opts...)
}

func (s *Scenario) chainOptions() []modelchain.Option {
	cfg := s.Chain
	var opts []modelchain.Option
	add := func(key string, fn func(string) modelchain.Option) {
		if key != "" {
			opts = append(opts, fn(key))
		}
	}
	add(cfg.SolarPosition, modelchain.WithSolarPositionModel)
	add(cfg.Airmass, modelchain.WithAirmassModel)
	add(cfg.ClearSky, modelchain.WithClearSkyModel)
	add(cfg.Transposition, modelchain.WithTranspositionModel)
	add(cfg.AOI, modelchain.WithAOIModel)
	add(cfg.Spectral, modelchain.WithSpectralModel)
	add(cfg.CellTemp, modelchain.WithCellTempModel)
	add(cfg.DC, modelchain.WithDCModel)
	add(cfg.AC, modelchain.WithACModel)
	add(cfg.Losses, modelchain.WithLossesModel)
	add(cfg.OrientationStrategy, modelchain.WithOrientationStrategy)
	if cfg.ReferenceIrradiance > 0 {
		opts = append(opts, modelchain.WithReferenceIrradiance(cfg.ReferenceIrradiance))
	}
	return opts
}

func toParameters(m map[string]float64) pvsystem.Parameters {
	params := make(pvsystem.Parameters, len(m))
	for key, value := range m {
		params[key] = value
	}
	return params
}

// Time string layouts, tried in order. The aware set carries offsets and
// always parses standalone; the naive set needs the scenario timezone.
var (
	awareLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02 15:04:05 -07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}
)

func (c TimesConfig) resolve(zone *time.Location, hasZone bool) ([]time.Time, error) {
	if len(c.List) > 0 {
		out := make([]time.Time, len(c.List))
		for i, raw := range c.List {
			t, err := parseStamp(raw, i, zone, hasZone)
			if err != nil {
				return nil, err
			}
			out[i] = t
		}
		return out, nil
	}

	start, err := parseStamp(c.Start, 0, zone, hasZone)
	if err != nil {
		return nil, err
	}
	end, err := parseStamp(c.End, 1, zone, hasZone)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, fmt.Errorf("scenario: times: end %s before start %s", c.End, c.Start)
	}
	step, err := time.ParseDuration(c.Step)
	if err != nil {
		return nil, fmt.Errorf("scenario: times: parse step: %w", err)
	}
	if step <= 0 {
		return nil, fmt.Errorf("scenario: times: step must be positive, got %s", step)
	}

	var out []time.Time
	for t := start; !t.After(end); t = t.Add(step) {
		out = append(out, t)
	}
	return out, nil
}

func parseStamp(value string, index int, zone *time.Location, hasZone bool) (time.Time, error) {
	for _, layout := range awareLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	for _, layout := range naiveLayouts {
		t, err := time.ParseInLocation(layout, value, zone)
		if err != nil {
			continue
		}
		if !hasZone {
			return time.Time{}, &pverr.NaiveTimestampError{Index: index, Value: value}
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("scenario: times: cannot parse %q", value)
}
