package modelchain

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/goliatone/go-pvsim/pkg/atmosphere"
	"github.com/goliatone/go-pvsim/pkg/irradiance"
	"github.com/goliatone/go-pvsim/pkg/models"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/solarposition"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// Substitutes for weather columns a run does not supply.
const (
	DefaultAirTemperature = 20.0
	DefaultWindSpeed      = 0.0
)

// Weather carries per-timestamp measurements for a run. Each column is
// either nil or exactly as long as the timestamp index. The irradiance
// columns travel as a set: all three present means measured irradiance, all
// three absent means the chain fills them from its clear-sky model, and a
// partial set is rejected (CompleteIrradiance derives the missing one
// first). Missing temperature and wind columns fall back to
// DefaultAirTemperature and DefaultWindSpeed.
type Weather struct {
	GHI       []float64 // global horizontal irradiance, W/m²
	DNI       []float64 // direct normal irradiance, W/m²
	DHI       []float64 // diffuse horizontal irradiance, W/m²
	TempAir   []float64 // air temperature, °C
	WindSpeed []float64 // wind speed, m/s
}

func (w Weather) irradianceCount() int {
	count := 0
	for _, col := range [][]float64{w.GHI, w.DNI, w.DHI} {
		if col != nil {
			count++
		}
	}
	return count
}

func (w Weather) checkLengths(n int) error {
	for _, col := range []struct {
		name   string
		values []float64
	}{
		{"ghi", w.GHI},
		{"dni", w.DNI},
		{"dhi", w.DHI},
		{"temp_air", w.TempAir},
		{"wind_speed", w.WindSpeed},
	} {
		if col.values == nil {
			continue
		}
		if len(col.values) != n {
			return fmt.Errorf("modelchain: weather %s has %d values for %d timestamps", col.name, len(col.values), n)
		}
	}
	return nil
}

// checkIrradianceSign rejects negative measured irradiance. NaN marks a gap
// and passes; it propagates to NaN outputs at that timestamp.
func (w Weather) checkIrradianceSign() error {
	for _, col := range []struct {
		name   string
		values []float64
	}{
		{"ghi", w.GHI},
		{"dni", w.DNI},
		{"dhi", w.DHI},
	} {
		for i, v := range col.values {
			if v < 0 {
				return &pverr.InputRangeError{
					Field: fmt.Sprintf("%s[%d]", col.name, i),
					Value: v,
					Min:   0,
					Max:   math.Inf(1),
				}
			}
		}
	}
	return nil
}

func (w Weather) validate(n int) error {
	if err := w.checkLengths(n); err != nil {
		return err
	}
	if got := w.irradianceCount(); got != 0 && got != 3 {
		return fmt.Errorf("modelchain: weather supplies %d of ghi, dni, dhi: provide all three, none for a clear-sky run, or derive the missing one with CompleteIrradiance", got)
	}
	return w.checkIrradianceSign()
}

func checkIndex(times []time.Time, operation string) error {
	i, err := timeseries.ValidateIndex(times)
	if err == nil {
		return nil
	}
	if i >= 0 {
		return &pverr.NaiveTimestampError{Index: i}
	}
	return fmt.Errorf("modelchain: %s needs at least one timestamp", operation)
}

func stageInterrupted(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("modelchain: %s stage: %w", stage, err)
	}
	return nil
}

// Run executes the pipeline over the timestamp index. Timestamps may arrive
// in any timezone; they are converted to the site timezone, and every output
// series shares that converted index. The returned Results is also retained
// on the chain, partially populated when a context cancellation stops the
// pipeline between stages. Input validation failures return a nil Results.
func (c *Chain) Run(ctx context.Context, times []time.Time, weather Weather) (*Results, error) {
	if err := checkIndex(times, "run"); err != nil {
		return nil, err
	}
	if err := weather.validate(len(times)); err != nil {
		return nil, err
	}

	local := c.location.LocalTimes(times)
	res := newResults(local)
	c.results = res

	n := len(local)
	lat := c.location.Latitude()
	lon := c.location.Longitude()
	pressure := c.location.Pressure()

	if err := stageInterrupted(ctx, string(models.StageSolarPosition)); err != nil {
		return res, err
	}
	positions := make([]solarposition.Position, n)
	zenith := make([]float64, n)
	appZenith := make([]float64, n)
	elevation := make([]float64, n)
	azimuth := make([]float64, n)
	for i, t := range local {
		pos := c.solarPosition(t, lat, lon, pressure, solarposition.DefaultTemperature)
		positions[i] = pos
		zenith[i] = pos.Zenith
		appZenith[i] = pos.ApparentZenith
		elevation[i] = pos.Elevation
		azimuth[i] = pos.Azimuth
	}
	res.SolarZenith = timeseries.Must(local, zenith)
	res.ApparentZenith = timeseries.Must(local, appZenith)
	res.Elevation = timeseries.Must(local, elevation)
	res.SolarAzimuth = timeseries.Must(local, azimuth)

	if err := stageInterrupted(ctx, string(models.StageAirmass)); err != nil {
		return res, err
	}
	amRel := make([]float64, n)
	amAbs := make([]float64, n)
	dniExtra := make([]float64, n)
	for i := range local {
		amRel[i] = c.airmass(positions[i])
		amAbs[i] = atmosphere.AbsoluteAirmass(amRel[i], pressure)
		dniExtra[i] = irradiance.ExtraterrestrialDNI(local[i])
	}
	res.AirmassRelative = timeseries.Must(local, amRel)
	res.AirmassAbsolute = timeseries.Must(local, amAbs)
	res.DNIExtra = timeseries.Must(local, dniExtra)

	if err := stageInterrupted(ctx, "weather"); err != nil {
		return res, err
	}
	ghi := make([]float64, n)
	dni := make([]float64, n)
	dhi := make([]float64, n)
	if weather.irradianceCount() == 3 {
		copy(ghi, weather.GHI)
		copy(dni, weather.DNI)
		copy(dhi, weather.DHI)
	} else {
		res.ClearSkyFilled = true
		altitude := c.location.Altitude()
		for i := range local {
			sky := c.clearSky(models.ClearSkyInput{
				ApparentZenith:  appZenith[i],
				AirmassAbsolute: amAbs[i],
				LinkeTurbidity:  c.turbidity,
				Altitude:        altitude,
				DNIExtra:        dniExtra[i],
			})
			ghi[i], dni[i], dhi[i] = sky.GHI, sky.DNI, sky.DHI
		}
	}
	tempAir := columnOrDefault(weather.TempAir, n, DefaultAirTemperature)
	windSpeed := columnOrDefault(weather.WindSpeed, n, DefaultWindSpeed)
	res.GHI = timeseries.Must(local, ghi)
	res.DNI = timeseries.Must(local, dni)
	res.DHI = timeseries.Must(local, dhi)
	res.TempAir = timeseries.Must(local, tempAir)
	res.WindSpeed = timeseries.Must(local, windSpeed)

	if err := stageInterrupted(ctx, "orientation"); err != nil {
		return res, err
	}
	tilt := make([]float64, n)
	surfAz := make([]float64, n)
	incidence := make([]float64, n)
	for i := range local {
		plane := c.mount.Orientation(positions[i])
		tilt[i] = plane.SurfaceTilt
		surfAz[i] = plane.SurfaceAzimuth
		incidence[i] = irradiance.AOI(plane.SurfaceTilt, plane.SurfaceAzimuth, positions[i].ApparentZenith, positions[i].Azimuth)
	}
	res.SurfaceTilt = timeseries.Must(local, tilt)
	res.SurfaceAzimuth = timeseries.Must(local, surfAz)
	res.AOI = timeseries.Must(local, incidence)

	if err := stageInterrupted(ctx, string(models.StageTransposition)); err != nil {
		return res, err
	}
	albedo := c.system.Albedo()
	poaGlobal := make([]float64, n)
	poaDirect := make([]float64, n)
	poaDiffuse := make([]float64, n)
	poaSky := make([]float64, n)
	poaGround := make([]float64, n)
	for i := range local {
		poa := irradiance.Total(irradiance.TranspositionInput{
			SurfaceTilt:     tilt[i],
			SurfaceAzimuth:  surfAz[i],
			SolarZenith:     appZenith[i],
			SolarAzimuth:    azimuth[i],
			GHI:             ghi[i],
			DNI:             dni[i],
			DHI:             dhi[i],
			DNIExtra:        dniExtra[i],
			AirmassRelative: amRel[i],
		}, albedo, c.transposition)
		poaGlobal[i] = poa.Global
		poaDirect[i] = poa.Direct
		poaDiffuse[i] = poa.Diffuse
		poaSky[i] = poa.SkyDiffuse
		poaGround[i] = poa.GroundDiffuse
	}
	res.POAGlobal = timeseries.Must(local, poaGlobal)
	res.POADirect = timeseries.Must(local, poaDirect)
	res.POADiffuse = timeseries.Must(local, poaDiffuse)
	res.POASkyDiffuse = timeseries.Must(local, poaSky)
	res.POAGroundDiffuse = timeseries.Must(local, poaGround)

	if err := stageInterrupted(ctx, string(models.StageCellTemp)); err != nil {
		return res, err
	}
	cellTemp := make([]float64, n)
	for i := range local {
		cellTemp[i] = c.cellTemp(poaGlobal[i], tempAir[i], windSpeed[i])
	}
	res.CellTemperature = timeseries.Must(local, cellTemp)

	if err := stageInterrupted(ctx, "effective irradiance"); err != nil {
		return res, err
	}
	effective := make([]float64, n)
	for i := range local {
		f1 := c.spectralLoss(amAbs[i])
		f2 := c.aoiLoss(incidence[i])
		effective[i] = pvsystem.EffectiveIrradiance(f1, f2, c.diffuseFraction, poaDirect[i], poaDiffuse[i])
	}
	res.EffectiveIrradiance = timeseries.Must(local, effective)

	if err := stageInterrupted(ctx, string(models.StageDC)); err != nil {
		return res, err
	}
	points := make([]pvsystem.DCResult, n)
	for i := range local {
		points[i] = c.system.ScaleDC(c.dc.Func(effective[i], cellTemp[i]))
	}

	if err := stageInterrupted(ctx, string(models.StageLosses)); err != nil {
		return res, err
	}
	lossFactor := make([]float64, n)
	for i := range local {
		before := points[i].PMP
		points[i] = c.losses(points[i])
		if before > 0 {
			lossFactor[i] = points[i].PMP / before
		} else {
			lossFactor[i] = 1
		}
	}
	res.LossFactor = timeseries.Must(local, lossFactor)
	res.DC = newDCSeries(local, points, c.dc.ReportsVoltage)

	if err := stageInterrupted(ctx, string(models.StageAC)); err != nil {
		return res, err
	}
	ac := make([]float64, n)
	for i := range local {
		ac[i] = c.ac(points[i].VMP, points[i].PMP)
	}
	res.AC = timeseries.Must(local, ac)

	return res, nil
}

// CompleteIrradiance derives the missing member of the ghi/dni/dhi triple
// from the closure relation GHI = DNI·cos(zenith) + DHI, evaluated at the
// refraction-corrected zenith of the chain's solar position model. Exactly
// two of the three must be supplied. The returned Weather carries all three
// plus copies of the temperature and wind columns, ready for Run.
func (c *Chain) CompleteIrradiance(times []time.Time, weather Weather) (Weather, error) {
	if err := checkIndex(times, "complete irradiance"); err != nil {
		return Weather{}, err
	}
	if err := weather.checkLengths(len(times)); err != nil {
		return Weather{}, err
	}
	if got := weather.irradianceCount(); got != 2 {
		return Weather{}, fmt.Errorf("modelchain: complete irradiance needs exactly two of ghi, dni, dhi, got %d", got)
	}
	if err := weather.checkIrradianceSign(); err != nil {
		return Weather{}, err
	}

	local := c.location.LocalTimes(times)
	lat := c.location.Latitude()
	lon := c.location.Longitude()
	pressure := c.location.Pressure()

	n := len(local)
	out := Weather{
		GHI:       make([]float64, n),
		DNI:       make([]float64, n),
		DHI:       make([]float64, n),
		TempAir:   cloneColumn(weather.TempAir),
		WindSpeed: cloneColumn(weather.WindSpeed),
	}
	for i, t := range local {
		zen := c.solarPosition(t, lat, lon, pressure, solarposition.DefaultTemperature).ApparentZenith
		switch {
		case weather.DNI == nil:
			out.GHI[i] = weather.GHI[i]
			out.DHI[i] = weather.DHI[i]
			out.DNI[i] = irradiance.DNIFromGHIDHI(weather.GHI[i], weather.DHI[i], zen)
		case weather.GHI == nil:
			out.DNI[i] = weather.DNI[i]
			out.DHI[i] = weather.DHI[i]
			out.GHI[i] = irradiance.GHIFromComponents(weather.DNI[i], weather.DHI[i], zen)
		default:
			out.GHI[i] = weather.GHI[i]
			out.DNI[i] = weather.DNI[i]
			out.DHI[i] = irradiance.DHIFromGHIDNI(weather.GHI[i], weather.DNI[i], zen)
		}
	}
	return out, nil
}

func columnOrDefault(values []float64, n int, fallback float64) []float64 {
	out := make([]float64, n)
	if values == nil {
		for i := range out {
			out[i] = fallback
		}
		return out
	}
	copy(out, values)
	return out
}

func cloneColumn(values []float64) []float64 {
	if values == nil {
		return nil
	}
	out := make([]float64, len(values))
	copy(out, values)
	return out
}
