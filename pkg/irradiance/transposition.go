package irradiance

import "math"

// Isotropic treats the sky as a uniform diffuse source; the tilted surface
// sees the fraction of the dome its tilt exposes.
func Isotropic(in TranspositionInput) float64 {
	return in.DHI * (1 + math.Cos(in.SurfaceTilt*degToRad)) / 2
}

// HayDavies splits sky diffuse into a circumsolar part, scaled by the
// anisotropy index DNI/DNIExtra and projected like beam, and an isotropic
// remainder.
func HayDavies(in TranspositionInput) float64 {
	if in.DNIExtra <= 0 {
		return Isotropic(in)
	}

	proj := math.Max(AOIProjection(in.SurfaceTilt, in.SurfaceAzimuth, in.SolarZenith, in.SolarAzimuth), 0)
	// Floor the zenith cosine at cos(89°) so the circumsolar ratio stays
	// bounded near the horizon.
	rb := proj / math.Max(math.Cos(in.SolarZenith*degToRad), 0.01745)

	ai := in.DNI / in.DNIExtra
	sky := in.DHI * (ai*rb + (1-ai)*0.5*(1+math.Cos(in.SurfaceTilt*degToRad)))
	return math.Max(sky, 0)
}

// Klucher modulates the isotropic dome with horizon brightening and
// circumsolar terms driven by the diffuse fraction.
func Klucher(in TranspositionInput) float64 {
	f := 0.0
	if in.GHI > 0 {
		ratio := in.DHI / in.GHI
		f = 1 - ratio*ratio
	}

	proj := AOIProjection(in.SurfaceTilt, in.SurfaceAzimuth, in.SolarZenith, in.SolarAzimuth)
	halfTilt := math.Sin(in.SurfaceTilt / 2 * degToRad)
	sinZen := math.Sin(in.SolarZenith * degToRad)

	term1 := 0.5 * (1 + math.Cos(in.SurfaceTilt*degToRad))
	term2 := 1 + f*halfTilt*halfTilt*halfTilt
	term3 := 1 + f*proj*proj*sinZen*sinZen*sinZen

	return in.DHI * term1 * term2 * term3
}

// perezBinEdges are the clearness boundaries of the Perez sky categories;
// perezCoeffs is the "all sites composite 1990" coefficient set, one row of
// (f11, f12, f13, f21, f22, f23) per clearness bin.
var (
	perezBinEdges = [...]float64{1.065, 1.23, 1.5, 1.95, 2.8, 4.5, 6.2}

	perezCoeffs = [8][6]float64{
		{-0.0083117, 0.5877285, -0.0620636, -0.0596012, 0.0721249, -0.0220216},
		{0.1299457, 0.6825954, -0.1513752, -0.0189325, 0.0659650, -0.0288748},
		{0.3296958, 0.4868735, -0.2210958, 0.0554140, -0.0639588, -0.0260542},
		{0.5682053, 0.1874525, -0.2951290, 0.1088631, -0.1519229, -0.0139754},
		{0.8730280, -0.3920403, -0.3616149, 0.2255647, -0.4620442, 0.0012448},
		{1.1326077, -1.2367284, -0.4118494, 0.2877813, -0.8230357, 0.0558651},
		{1.0601591, -1.5999137, -0.3589221, 0.2642124, -1.1272340, 0.1310694},
		{0.6777470, -0.3272588, -0.2504286, 0.1561313, -1.3765031, 0.2509212},
	}
)

// Perez computes sky diffuse with the Perez (1990) anisotropic model:
// clearness-binned brightness coefficients drive circumsolar and horizon
// brightening terms on top of the isotropic dome.
func Perez(in TranspositionInput) float64 {
	if in.DHI <= 0 {
		return 0
	}

	z := in.SolarZenith * degToRad
	const kappa = 1.041
	z3 := z * z * z
	epsilon := ((in.DHI+in.DNI)/in.DHI + kappa*z3) / (1 + kappa*z3)

	bin := 0
	for bin < len(perezBinEdges) && epsilon >= perezBinEdges[bin] {
		bin++
	}
	c := perezCoeffs[bin]

	delta := 0.0
	if in.DNIExtra > 0 && !math.IsNaN(in.AirmassRelative) {
		delta = in.DHI * in.AirmassRelative / in.DNIExtra
	}

	f1 := math.Max(c[0]+c[1]*delta+c[2]*z, 0)
	f2 := c[3] + c[4]*delta + c[5]*z

	a := math.Max(AOIProjection(in.SurfaceTilt, in.SurfaceAzimuth, in.SolarZenith, in.SolarAzimuth), 0)
	// cos(85°): bounds the circumsolar denominator at low sun.
	b := math.Max(math.Cos(z), 0.08715574274765817)

	term1 := 0.5 * (1 - f1) * (1 + math.Cos(in.SurfaceTilt*degToRad))
	term2 := f1 * a / b
	term3 := f2 * math.Sin(in.SurfaceTilt*degToRad)

	return math.Max(in.DHI*(term1+term2+term3), 0)
}
