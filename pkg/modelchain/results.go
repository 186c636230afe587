package modelchain

import (
	"time"

	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// DCSeries is the array-level DC operating point over the run index, after
// constant losses. Models that only resolve a power (pvwatts) populate PMP
// and leave the current and voltage columns empty.
type DCSeries struct {
	ISC timeseries.Series
	IMP timeseries.Series
	VOC timeseries.Series
	VMP timeseries.Series
	PMP timeseries.Series
	IX  timeseries.Series
	IXX timeseries.Series
}

// Results is the output of one run: every series the pipeline produced, all
// on the run's timestamp index converted to the site timezone. When a
// cancellation stops a run between stages, the series of stages that never
// ran stay empty.
type Results struct {
	times []time.Time

	SolarZenith    timeseries.Series
	ApparentZenith timeseries.Series
	Elevation      timeseries.Series
	SolarAzimuth   timeseries.Series

	AirmassRelative timeseries.Series
	AirmassAbsolute timeseries.Series
	DNIExtra        timeseries.Series

	// ClearSkyFilled records that the irradiance columns below came from
	// the clear-sky model rather than measurements.
	ClearSkyFilled bool

	GHI       timeseries.Series
	DNI       timeseries.Series
	DHI       timeseries.Series
	TempAir   timeseries.Series
	WindSpeed timeseries.Series

	SurfaceTilt    timeseries.Series
	SurfaceAzimuth timeseries.Series
	AOI            timeseries.Series

	POAGlobal        timeseries.Series
	POADirect        timeseries.Series
	POADiffuse       timeseries.Series
	POASkyDiffuse    timeseries.Series
	POAGroundDiffuse timeseries.Series

	CellTemperature     timeseries.Series
	EffectiveIrradiance timeseries.Series

	DC         DCSeries
	LossFactor timeseries.Series
	AC         timeseries.Series
}

func newResults(times []time.Time) *Results {
	return &Results{times: times}
}

func newDCSeries(times []time.Time, points []pvsystem.DCResult, fullCurve bool) DCSeries {
	pmp := make([]float64, len(points))
	for i, p := range points {
		pmp[i] = p.PMP
	}
	dc := DCSeries{PMP: timeseries.Must(times, pmp)}
	if !fullCurve {
		return dc
	}

	isc := make([]float64, len(points))
	imp := make([]float64, len(points))
	voc := make([]float64, len(points))
	vmp := make([]float64, len(points))
	ix := make([]float64, len(points))
	ixx := make([]float64, len(points))
	for i, p := range points {
		isc[i] = p.ISC
		imp[i] = p.IMP
		voc[i] = p.VOC
		vmp[i] = p.VMP
		ix[i] = p.IX
		ixx[i] = p.IXX
	}
	dc.ISC = timeseries.Must(times, isc)
	dc.IMP = timeseries.Must(times, imp)
	dc.VOC = timeseries.Must(times, voc)
	dc.VMP = timeseries.Must(times, vmp)
	dc.IX = timeseries.Must(times, ix)
	dc.IXX = timeseries.Must(times, ixx)
	return dc
}

// Times returns the run index in the site timezone.
func (r *Results) Times() []time.Time {
	out := make([]time.Time, len(r.times))
	copy(out, r.times)
	return out
}

// Len returns the number of timestamps in the run.
func (r *Results) Len() int { return len(r.times) }

// ACEnergy integrates AC power over the run assuming a fixed step between
// timestamps, in watt-hours.
func (r *Results) ACEnergy(step time.Duration) float64 {
	return r.AC.Sum() * step.Hours()
}

type resultColumn struct {
	name   string
	series timeseries.Series
}

func (r *Results) columns() []resultColumn {
	return []resultColumn{
		{"zenith", r.SolarZenith},
		{"apparent_zenith", r.ApparentZenith},
		{"elevation", r.Elevation},
		{"azimuth", r.SolarAzimuth},
		{"airmass_relative", r.AirmassRelative},
		{"airmass_absolute", r.AirmassAbsolute},
		{"dni_extra", r.DNIExtra},
		{"ghi", r.GHI},
		{"dni", r.DNI},
		{"dhi", r.DHI},
		{"temp_air", r.TempAir},
		{"wind_speed", r.WindSpeed},
		{"surface_tilt", r.SurfaceTilt},
		{"surface_azimuth", r.SurfaceAzimuth},
		{"aoi", r.AOI},
		{"poa_global", r.POAGlobal},
		{"poa_direct", r.POADirect},
		{"poa_sky_diffuse", r.POASkyDiffuse},
		{"poa_ground_diffuse", r.POAGroundDiffuse},
		{"poa_diffuse", r.POADiffuse},
		{"cell_temperature", r.CellTemperature},
		{"effective_irradiance", r.EffectiveIrradiance},
		{"i_sc", r.DC.ISC},
		{"i_mp", r.DC.IMP},
		{"v_oc", r.DC.VOC},
		{"v_mp", r.DC.VMP},
		{"p_mp", r.DC.PMP},
		{"i_x", r.DC.IX},
		{"i_xx", r.DC.IXX},
		{"loss_factor", r.LossFactor},
		{"ac", r.AC},
	}
}

// Frame collects every populated series into one frame under conventional
// column names, empty columns skipped.
func (r *Results) Frame() *timeseries.Frame {
	frame := timeseries.NewFrame(r.times)
	for _, col := range r.columns() {
		if col.series.IsEmpty() {
			continue
		}
		// Columns share the run index by construction.
		_ = frame.Add(col.name, col.series.Values())
	}
	return frame
}
