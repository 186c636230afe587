package irradiance

import "math"

// minCosZenith floors the zenith cosine in decomposition ratios so clearness
// and beam conversions stay bounded at dawn and dusk (cos 86.3°).
const minCosZenith = 0.065

// ClearnessIndex is the ratio of GHI to horizontal extraterrestrial
// irradiance, clipped to [0, 2].
func ClearnessIndex(ghi, solarZenith, dniExtra float64) float64 {
	denom := dniExtra * math.Max(math.Cos(solarZenith*degToRad), minCosZenith)
	if denom <= 0 {
		return 0
	}
	return clamp(ghi/denom, 0, 2)
}

// ErbsResult carries the diffuse split of a global horizontal measurement.
type ErbsResult struct {
	DNI             float64
	DHI             float64
	ClearnessIndex  float64
	DiffuseFraction float64
}

// Erbs estimates DNI and DHI from GHI with the Erbs correlation: the diffuse
// fraction is a piecewise polynomial in the clearness index.
func Erbs(ghi, solarZenith, dniExtra float64) ErbsResult {
	kt := ClearnessIndex(ghi, solarZenith, dniExtra)

	var df float64
	switch {
	case kt <= 0.22:
		df = 1 - 0.09*kt
	case kt <= 0.8:
		df = 0.9511 - 0.1604*kt + 4.388*kt*kt - 16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	default:
		df = 0.165
	}

	dhi := df * ghi
	dni := (ghi - dhi) / math.Max(math.Cos(solarZenith*degToRad), minCosZenith)

	return ErbsResult{
		DNI:             math.Max(dni, 0),
		DHI:             dhi,
		ClearnessIndex:  kt,
		DiffuseFraction: df,
	}
}

// GHIFromComponents applies the closure relation GHI = DNI·cos(zenith) + DHI.
func GHIFromComponents(dni, dhi, solarZenith float64) float64 {
	cosZen := math.Cos(solarZenith * degToRad)
	if cosZen < 0 {
		cosZen = 0
	}
	return dni*cosZen + dhi
}

// DNIFromGHIDHI inverts the closure relation. Below the zenith floor the
// beam contribution is undefined and 0 is returned.
func DNIFromGHIDHI(ghi, dhi, solarZenith float64) float64 {
	cosZen := math.Cos(solarZenith * degToRad)
	if cosZen < minCosZenith {
		return 0
	}
	return math.Max((ghi-dhi)/cosZen, 0)
}

// DHIFromGHIDNI completes the closure relation for a missing diffuse term,
// floored at zero.
func DHIFromGHIDNI(ghi, dni, solarZenith float64) float64 {
	cosZen := math.Cos(solarZenith * degToRad)
	if cosZen < 0 {
		cosZen = 0
	}
	return math.Max(ghi-dni*cosZen, 0)
}
