// Package irradiance derives plane-of-array irradiance from horizontal
// components: extraterrestrial radiation, incidence-angle geometry,
// ground-reflected diffuse, the sky-diffuse transposition models, and the
// decomposition/closure relations between global, direct, and diffuse
// irradiance.
package irradiance

import (
	"math"
	"time"
)

const (
	// SolarConstant is the accepted total solar irradiance in W/m².
	SolarConstant = 1366.1

	degToRad = math.Pi / 180
	radToDeg = 180 / math.Pi
)

// SurfaceAlbedos maps named ground covers to broadband albedo values for
// ground-reflected diffuse estimates.
var SurfaceAlbedos = map[string]float64{
	"urban":       0.18,
	"grass":       0.25,
	"fresh grass": 0.26,
	"soil":        0.17,
	"sand":        0.40,
	"snow":        0.65,
	"fresh snow":  0.75,
	"asphalt":     0.12,
	"concrete":    0.30,
	"aluminum":    0.85,
	"copper":      0.74,
	"fresh steel": 0.35,
	"dirty steel": 0.08,
	"sea":         0.06,
}

// ExtraterrestrialDNI returns top-of-atmosphere normal irradiance (W/m²) for
// the day of year of t, using the Spencer Fourier fit of the earth-sun
// distance.
func ExtraterrestrialDNI(t time.Time) float64 {
	b := dayAngle(t)
	roverR0Sqrd := 1.00011 + 0.034221*math.Cos(b) + 0.00128*math.Sin(b) +
		0.000719*math.Cos(2*b) + 7.7e-05*math.Sin(2*b)
	return SolarConstant * roverR0Sqrd
}

// ExtraterrestrialDNIASCE is the simpler ASCE cosine fit, kept for parity
// checks against tabulated references.
func ExtraterrestrialDNIASCE(t time.Time) float64 {
	doy := float64(t.YearDay())
	return SolarConstant * (1 + 0.033*math.Cos(2*math.Pi*doy/365))
}

func dayAngle(t time.Time) float64 {
	return 2 * math.Pi * float64(t.YearDay()-1) / 365
}

// AOIProjection returns the unclipped cosine of the angle of incidence
// between the sun and the surface normal. Negative values mean the sun is
// behind the plane.
func AOIProjection(surfaceTilt, surfaceAzimuth, solarZenith, solarAzimuth float64) float64 {
	return math.Cos(surfaceTilt*degToRad)*math.Cos(solarZenith*degToRad) +
		math.Sin(surfaceTilt*degToRad)*math.Sin(solarZenith*degToRad)*
			math.Cos((solarAzimuth-surfaceAzimuth)*degToRad)
}

// AOI returns the angle of incidence in degrees.
func AOI(surfaceTilt, surfaceAzimuth, solarZenith, solarAzimuth float64) float64 {
	proj := AOIProjection(surfaceTilt, surfaceAzimuth, solarZenith, solarAzimuth)
	return math.Acos(clamp(proj, -1, 1)) * radToDeg
}

// GroundDiffuse returns the ground-reflected diffuse irradiance on a tilted
// surface from global horizontal irradiance and surface albedo.
func GroundDiffuse(surfaceTilt, ghi, albedo float64) float64 {
	return albedo * ghi * (1 - math.Cos(surfaceTilt*degToRad)) / 2
}

// TranspositionInput bundles everything a sky-diffuse transposition model may
// consume. Models ignore the fields they do not use.
type TranspositionInput struct {
	SurfaceTilt     float64 // degrees from horizontal
	SurfaceAzimuth  float64 // degrees clockwise from north
	SolarZenith     float64 // apparent zenith, degrees
	SolarAzimuth    float64 // degrees clockwise from north
	GHI             float64 // W/m²
	DNI             float64 // W/m²
	DHI             float64 // W/m²
	DNIExtra        float64 // W/m²
	AirmassRelative float64 // dimensionless
}

// SkyDiffuseFunc computes sky diffuse irradiance on the plane of array.
type SkyDiffuseFunc func(TranspositionInput) float64

// POA is plane-of-array irradiance split into its components; Global =
// Direct + Diffuse, Diffuse = SkyDiffuse + GroundDiffuse. All W/m².
type POA struct {
	Global        float64
	Direct        float64
	Diffuse       float64
	SkyDiffuse    float64
	GroundDiffuse float64
}

// Total assembles plane-of-array irradiance: beam projected through the
// incidence angle, sky diffuse from the supplied transposition model, and
// ground-reflected diffuse from albedo.
func Total(in TranspositionInput, albedo float64, sky SkyDiffuseFunc) POA {
	proj := AOIProjection(in.SurfaceTilt, in.SurfaceAzimuth, in.SolarZenith, in.SolarAzimuth)
	direct := in.DNI * math.Max(proj, 0)
	skyDiffuse := sky(in)
	ground := GroundDiffuse(in.SurfaceTilt, in.GHI, albedo)
	diffuse := skyDiffuse + ground
	return POA{
		Global:        direct + diffuse,
		Direct:        direct,
		Diffuse:       diffuse,
		SkyDiffuse:    skyDiffuse,
		GroundDiffuse: ground,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
