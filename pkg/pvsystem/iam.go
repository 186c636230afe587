package pvsystem

import "math"

// Defaults for the physical incidence angle model: uncoated glass over an
// air gap.
const (
	PhysicalIAMRefractionIndex = 1.526
	PhysicalIAMExtinction      = 4.0   // 1/m
	PhysicalIAMGlazing         = 0.002 // m
	ASHRAEIAMDefaultB          = 0.05
)

// ASHRAEIAM is the single-coefficient incidence angle modifier. The result
// is clipped to [0, 1]; angles of 90 degrees and beyond yield 0.
func ASHRAEIAM(aoi, b float64) float64 {
	if math.IsNaN(aoi) || aoi >= 90 || aoi <= -90 {
		return 0
	}
	iam := 1 - b*(1/math.Cos(aoi*math.Pi/180)-1)
	return math.Max(iam, 0)
}

// PhysicalIAM models reflection and absorption losses with the Fresnel
// equations and Bouguer's law. n is the refractive index, k the glazing
// extinction coefficient (1/m), l the glazing thickness (m). Normal
// incidence returns exactly 1.
func PhysicalIAM(aoi, n, k, l float64) float64 {
	if math.IsNaN(aoi) || math.Abs(aoi) > 90 {
		return 0
	}
	if math.Abs(aoi) < 1e-6 {
		return 1
	}

	aoiRad := aoi * math.Pi / 180
	// Snell's law gives the refraction angle inside the glazing.
	thetaR := math.Asin(math.Sin(aoiRad) / n)

	rhoZero := math.Pow((1-n)/(1+n), 2)
	tauZero := math.Exp(-k * l)

	rhoPara := math.Pow(math.Tan(thetaR-aoiRad)/math.Tan(thetaR+aoiRad), 2)
	rhoPerp := math.Pow(math.Sin(thetaR-aoiRad)/math.Sin(thetaR+aoiRad), 2)
	tau := math.Exp(-k * l / math.Cos(thetaR))

	iam := (1 - (rhoPara+rhoPerp)/2) / (1 - rhoZero) * tau / tauZero
	// Precision at grazing incidence can leave a tiny negative residue.
	return math.Max(iam, 0)
}
