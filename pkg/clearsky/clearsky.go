// Package clearsky estimates ground-level irradiance under a cloudless
// atmosphere. The Ineichen-Perez model is the detailed option and needs an
// absolute airmass plus a Linke turbidity factor; Haurwitz is a coarse
// zenith-only fallback that produces global horizontal irradiance alone.
//
// Angles are degrees, irradiance W/m^2, altitude meters above sea level.
package clearsky

import "math"

// DefaultLinkeTurbidity is a reasonable mid-latitude annual value used when
// a site does not supply its own turbidity.
const DefaultLinkeTurbidity = 3.0

const degToRad = math.Pi / 180

// Irradiance is a clear-sky estimate of the three broadband components.
type Irradiance struct {
	GHI float64
	DNI float64
	DHI float64
}

// Ineichen implements the Ineichen-Perez clear-sky model with the empirical
// beam correction. The airmass must be pressure-adjusted; turbidity is the
// Linke factor at airmass 2. A NaN airmass means the sun is below the
// horizon and yields zero irradiance.
func Ineichen(apparentZenith, airmassAbsolute, linkeTurbidity, altitude, dniExtra float64) Irradiance {
	if math.IsNaN(airmassAbsolute) {
		return Irradiance{}
	}

	tl := linkeTurbidity

	fh1 := math.Exp(-altitude / 8000)
	fh2 := math.Exp(-altitude / 1250)
	cg1 := 5.09e-05*altitude + 0.868
	cg2 := 3.92e-05*altitude + 0.0387

	cosZenith := math.Max(math.Cos(apparentZenith*degToRad), 0)

	ghi := math.Exp(-cg2 * airmassAbsolute * (fh1 + fh2*(tl-1)))
	ghi = cg1 * dniExtra * cosZenith * math.Max(ghi, 0)

	b := 0.664 + 0.163/fh1
	bnci := b * math.Exp(-0.09*airmassAbsolute*(tl-1))
	bnci = dniExtra * math.Max(bnci, 0)

	// Empirical correction that caps the beam so the closure relation
	// cannot go negative near the horizon.
	bnci2 := (1 - (0.1-0.2*math.Exp(-tl))/(0.1+0.882/fh1)) / cosZenith
	bnci2 = ghi * math.Min(math.Max(bnci2, 0), 1e20)

	dni := math.Min(bnci, bnci2)
	dhi := ghi - dni*cosZenith

	return Irradiance{GHI: ghi, DNI: dni, DHI: dhi}
}

// Haurwitz returns clear-sky global horizontal irradiance from the apparent
// zenith alone. The model has no beam/diffuse split; pair it with a
// decomposition when components are needed.
func Haurwitz(apparentZenith float64) float64 {
	cosZenith := math.Cos(apparentZenith * degToRad)
	if cosZenith <= 0 {
		return 0
	}
	return 1098 * cosZenith * math.Exp(-0.059/cosZenith)
}
