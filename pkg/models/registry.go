package models

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-pvsim/pkg/atmosphere"
	"github.com/goliatone/go-pvsim/pkg/clearsky"
	"github.com/goliatone/go-pvsim/pkg/irradiance"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
)

// registry stores the models of one stage by key, providing discovery and
// duplication safeguards. The typed package-level wrappers are the public
// surface.
type registry[F any] struct {
	mu      sync.RWMutex
	stage   Stage
	entries map[string]F
}

func newRegistry[F any](stage Stage) *registry[F] {
	return &registry[F]{
		stage:   stage,
		entries: make(map[string]F),
	}
}

// register adds a model by key. Duplicate keys return an error.
func (r *registry[F]) register(key string, fn F) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("models: %s model key is required", r.stage)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[key]; exists {
		return fmt.Errorf("models: %s model %q already registered", r.stage, key)
	}

	r.entries[key] = fn
	return nil
}

// mustRegister panics on registration failure. Useful for init-time wiring.
func (r *registry[F]) mustRegister(key string, fn F) {
	if err := r.register(key, fn); err != nil {
		panic(err)
	}
}

func (r *registry[F]) lookup(key string) (F, error) {
	r.mu.RLock()
	fn, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		var zero F
		return zero, &pverr.UnknownModelError{
			Stage: string(r.stage),
			Key:   key,
			Known: r.keys(),
		}
	}
	return fn, nil
}

func (r *registry[F]) keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (r *registry[F]) has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[key]
	return ok
}

var (
	solarPositionModels = newRegistry[SolarPositionFunc](StageSolarPosition)
	airmassModels       = newRegistry[AirmassFunc](StageAirmass)
	clearSkyModels      = newRegistry[ClearSkyFunc](StageClearSky)
	transpositionModels = newRegistry[TranspositionFunc](StageTransposition)
)

// RegisterSolarPosition adds a custom solar position model.
func RegisterSolarPosition(key string, fn SolarPositionFunc) error {
	if fn == nil {
		return fmt.Errorf("models: %s model %q: function is required", StageSolarPosition, key)
	}
	return solarPositionModels.register(key, fn)
}

// SolarPosition resolves a solar position model by key.
func SolarPosition(key string) (SolarPositionFunc, error) {
	return solarPositionModels.lookup(key)
}

// RegisterAirmass adds a custom relative airmass model.
func RegisterAirmass(key string, fn AirmassFunc) error {
	if fn == nil {
		return fmt.Errorf("models: %s model %q: function is required", StageAirmass, key)
	}
	return airmassModels.register(key, fn)
}

// Airmass resolves a relative airmass model by key.
func Airmass(key string) (AirmassFunc, error) {
	return airmassModels.lookup(key)
}

// RegisterClearSky adds a custom clear-sky model.
func RegisterClearSky(key string, fn ClearSkyFunc) error {
	if fn == nil {
		return fmt.Errorf("models: %s model %q: function is required", StageClearSky, key)
	}
	return clearSkyModels.register(key, fn)
}

// ClearSky resolves a clear-sky model by key.
func ClearSky(key string) (ClearSkyFunc, error) {
	return clearSkyModels.lookup(key)
}

// RegisterTransposition adds a custom sky diffuse transposition model.
func RegisterTransposition(key string, fn TranspositionFunc) error {
	if fn == nil {
		return fmt.Errorf("models: %s model %q: function is required", StageTransposition, key)
	}
	return transpositionModels.register(key, fn)
}

// Transposition resolves a sky diffuse transposition model by key.
func Transposition(key string) (TranspositionFunc, error) {
	return transpositionModels.lookup(key)
}

// Keys returns the sorted model keys registered for a stage.
func Keys(stage Stage) []string {
	switch stage {
	case StageSolarPosition:
		return solarPositionModels.keys()
	case StageAirmass:
		return airmassModels.keys()
	case StageClearSky:
		return clearSkyModels.keys()
	case StageTransposition:
		return transpositionModels.keys()
	case StageAOI:
		return aoiModels.keys()
	case StageSpectral:
		return spectralModels.keys()
	case StageCellTemp:
		return cellTempModels.keys()
	case StageDC:
		return dcModels.keys()
	case StageAC:
		return acModels.keys()
	case StageLosses:
		return lossModels.keys()
	}
	return nil
}

// Catalog lists every stage with its registered model keys, sorted.
func Catalog() map[Stage][]string {
	catalog := make(map[Stage][]string, len(Stages()))
	for _, stage := range Stages() {
		catalog[stage] = Keys(stage)
	}
	return catalog
}

// Stages returns the pipeline stages in execution order.
func Stages() []Stage {
	return []Stage{
		StageSolarPosition,
		StageAirmass,
		StageClearSky,
		StageTransposition,
		StageAOI,
		StageSpectral,
		StageCellTemp,
		StageDC,
		StageAC,
		StageLosses,
	}
}

func init() {
	solarPositionModels.mustRegister("ephemeris", solarposition.Ephemeris)
	solarPositionModels.mustRegister("psa", func(t time.Time, latitude, longitude, _, _ float64) solarposition.Position {
		return solarposition.PSA(t, latitude, longitude)
	})

	// Kasten-Young and Gueymard were fit against refraction-corrected
	// zenith angles, Young and the plain secant against geometric ones.
	airmassModels.mustRegister("kastenyoung1989", func(pos solarposition.Position) float64 {
		return atmosphere.RelativeAirmassKastenYoung(pos.ApparentZenith)
	})
	airmassModels.mustRegister("young1994", func(pos solarposition.Position) float64 {
		return atmosphere.RelativeAirmassYoung(pos.Zenith)
	})
	airmassModels.mustRegister("simple", func(pos solarposition.Position) float64 {
		return atmosphere.RelativeAirmassSimple(pos.Zenith)
	})
	airmassModels.mustRegister("gueymard1993", func(pos solarposition.Position) float64 {
		return atmosphere.RelativeAirmassGueymard(pos.ApparentZenith)
	})

	clearSkyModels.mustRegister("ineichen", func(in ClearSkyInput) clearsky.Irradiance {
		return clearsky.Ineichen(in.ApparentZenith, in.AirmassAbsolute, in.LinkeTurbidity, in.Altitude, in.DNIExtra)
	})
	// Haurwitz only models global irradiance; the Erbs correlation fills
	// in the beam and diffuse components.
	clearSkyModels.mustRegister("haurwitz", func(in ClearSkyInput) clearsky.Irradiance {
		ghi := clearsky.Haurwitz(in.ApparentZenith)
		if ghi <= 0 {
			return clearsky.Irradiance{}
		}
		split := irradiance.Erbs(ghi, in.ApparentZenith, in.DNIExtra)
		return clearsky.Irradiance{GHI: ghi, DNI: split.DNI, DHI: split.DHI}
	})

	transpositionModels.mustRegister("isotropic", irradiance.Isotropic)
	transpositionModels.mustRegister("haydavies", irradiance.HayDavies)
	transpositionModels.mustRegister("klucher", irradiance.Klucher)
	transpositionModels.mustRegister("perez", irradiance.Perez)
}
