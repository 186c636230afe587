// Package atmosphere converts between altitude and pressure and computes the
// optical airmass models the pipeline's spectral corrections rely on.
package atmosphere

import "math"

const (
	// ReferencePressure is standard sea-level pressure in pascals.
	ReferencePressure = 101325.0

	degToRad = math.Pi / 180
)

// AltitudeToPressure returns site pressure (Pa) for an altitude (m) using the
// lower-atmosphere standard profile. Valid to 11 km.
func AltitudeToPressure(altitude float64) float64 {
	return 100 * math.Pow((44331.514-altitude)/11880.516, 1/0.1902632)
}

// PressureToAltitude inverts AltitudeToPressure.
func PressureToAltitude(pressure float64) float64 {
	return 44331.5 - 4946.62*math.Pow(pressure, 0.190263)
}

// RelativeAirmassKastenYoung computes relative airmass with the Kasten &
// Young (1989) fit. zenith is the apparent zenith in degrees; NaN above the
// horizon limit.
func RelativeAirmassKastenYoung(zenith float64) float64 {
	if zenith > 90 {
		return math.NaN()
	}
	return 1 / (math.Cos(zenith*degToRad) + 0.50572*math.Pow(96.07995-zenith, -1.6364))
}

// RelativeAirmassYoung computes relative airmass with the Young (1994)
// rational fit in the cosine of the true zenith.
func RelativeAirmassYoung(zenith float64) float64 {
	if zenith > 90 {
		return math.NaN()
	}
	c := math.Cos(zenith * degToRad)
	return (1.002432*c*c + 0.148386*c + 0.0096467) /
		(c*c*c + 0.149864*c*c + 0.0102963*c + 0.000303978)
}

// RelativeAirmassSimple is the plane-parallel secant approximation; it
// diverges near the horizon and suits only high-sun work.
func RelativeAirmassSimple(zenith float64) float64 {
	if zenith > 90 {
		return math.NaN()
	}
	return 1 / math.Cos(zenith*degToRad)
}

// RelativeAirmassGueymard computes relative airmass with the Gueymard (1993)
// fit to the apparent zenith.
func RelativeAirmassGueymard(zenith float64) float64 {
	if zenith > 90 {
		return math.NaN()
	}
	return 1 / (math.Cos(zenith*degToRad) + 0.00176759*zenith*math.Pow(94.37515-zenith, -1.21563))
}

// AbsoluteAirmass pressure-corrects a relative airmass. NaN passes through.
func AbsoluteAirmass(relative, pressure float64) float64 {
	return relative * pressure / ReferencePressure
}
