package pvsystem

import (
	"fmt"
	"math"
	"strings"
)

// Reference cell temperature and physical constants for the Sandia model.
const (
	sapmTempRef      = 25.0
	boltzmann        = 1.38066e-23 // J/K
	elementaryCharge = 1.60218e-19 // C
)

// SAPMModule is the typed view of a Sandia Array Performance Model
// coefficient set. Field names follow the model publication; FD is the
// fraction of diffuse irradiance used by the module, almost always 1 for
// flat-plate collectors.
type SAPMModule struct {
	CellsInSeries float64
	ISCO          float64
	IMPO          float64
	VOCO          float64
	VMPO          float64
	AISC          float64
	AIMP          float64
	BVOCO         float64
	MBVOC         float64
	BVMPO         float64
	MBVMP         float64
	N             float64
	C             [8]float64
	IXO           float64
	IXXO          float64
	FD            float64
}

var sapmRequiredKeys = []string{
	"Cells_in_Series", "Isco", "Impo", "Voco", "Vmpo",
	"Aisc", "Aimp", "Bvoco", "Mbvoc", "Bvmpo", "Mbvmp",
	"N", "C0", "C1", "C2", "C3",
}

// ParseSAPMModule builds the typed coefficient set from an opaque parameter
// map. The five-point coefficients C4..C7, IXO and IXXO are optional; when
// absent the IX and IXX outputs stay zero.
func ParseSAPMModule(p ModuleParameters) (SAPMModule, error) {
	if missing := p.Missing(sapmRequiredKeys...); len(missing) > 0 {
		return SAPMModule{}, fmt.Errorf("pvsystem: sapm module parameters missing %s", strings.Join(missing, ", "))
	}

	m := SAPMModule{
		CellsInSeries: p["Cells_in_Series"],
		ISCO:          p["Isco"],
		IMPO:          p["Impo"],
		VOCO:          p["Voco"],
		VMPO:          p["Vmpo"],
		AISC:          p["Aisc"],
		AIMP:          p["Aimp"],
		BVOCO:         p["Bvoco"],
		MBVOC:         p["Mbvoc"],
		BVMPO:         p["Bvmpo"],
		MBVMP:         p["Mbvmp"],
		N:             p["N"],
		IXO:           p.Value("IXO", 0),
		IXXO:          p.Value("IXXO", 0),
		FD:            p.Value("FD", 1),
	}
	for i := 0; i < 8; i++ {
		m.C[i] = p.Value(fmt.Sprintf("C%d", i), 0)
	}
	return m, nil
}

// IV evaluates the five-point IV curve at the given effective irradiance
// (W/m^2) and cell temperature (C). Zero or NaN irradiance yields an all
// zero operating point.
func (m SAPMModule) IV(effectiveIrradiance, cellTemperature float64) DCResult {
	ee := effectiveIrradiance / 1000 // suns
	if math.IsNaN(ee) || ee <= 0 {
		return DCResult{}
	}

	dT := cellTemperature - sapmTempRef
	bvmpo := m.BVMPO + m.MBVMP*(1-ee)
	bvoco := m.BVOCO + m.MBVOC*(1-ee)
	delta := m.N * boltzmann * (cellTemperature + 273.15) / elementaryCharge
	logEe := math.Log(ee)

	isc := m.ISCO * ee * (1 + m.AISC*dT)
	imp := m.IMPO * (m.C[0]*ee + m.C[1]*ee*ee) * (1 + m.AIMP*dT)
	voc := math.Max(0, m.VOCO+m.CellsInSeries*delta*logEe+bvoco*dT)
	vmp := math.Max(0, m.VMPO+
		m.C[2]*m.CellsInSeries*delta*logEe+
		m.C[3]*m.CellsInSeries*(delta*logEe)*(delta*logEe)+
		bvmpo*dT)

	// The IX and IXX points both use the short-circuit temperature
	// coefficient; the model publication's use of Aimp for IXX is a
	// known typo.
	ix := m.IXO * (m.C[4]*ee + m.C[5]*ee*ee) * (1 + m.AISC*dT)
	ixx := m.IXXO * (m.C[6]*ee + m.C[7]*ee*ee) * (1 + m.AISC*dT)

	return DCResult{
		ISC: isc,
		IMP: imp,
		VOC: voc,
		VMP: vmp,
		PMP: imp * vmp,
		IX:  ix,
		IXX: ixx,
	}
}

// ParseSAPMSpectral extracts the A0..A4 airmass polynomial coefficients.
func ParseSAPMSpectral(p ModuleParameters) ([5]float64, error) {
	var a [5]float64
	for i := range a {
		key := fmt.Sprintf("A%d", i)
		v, ok := p.Get(key)
		if !ok {
			return a, fmt.Errorf("pvsystem: sapm spectral parameters missing %s", key)
		}
		a[i] = v
	}
	return a, nil
}

// SAPMSpectralLoss evaluates the spectral mismatch modifier F1 as a
// polynomial in absolute airmass. NaN airmass (sun below the horizon) maps
// to 0, and the modifier never goes negative.
func SAPMSpectralLoss(airmassAbsolute float64, a [5]float64) float64 {
	if math.IsNaN(airmassAbsolute) {
		return 0
	}
	am := airmassAbsolute
	f1 := a[0] + am*(a[1]+am*(a[2]+am*(a[3]+am*a[4])))
	return math.Max(0, f1)
}

// ParseSAPMIAM extracts the B0..B5 incidence angle polynomial coefficients.
func ParseSAPMIAM(p ModuleParameters) ([6]float64, error) {
	var b [6]float64
	for i := range b {
		key := fmt.Sprintf("B%d", i)
		v, ok := p.Get(key)
		if !ok {
			return b, fmt.Errorf("pvsystem: sapm incidence angle parameters missing %s", key)
		}
		b[i] = v
	}
	return b, nil
}

// SAPMIAM evaluates the incidence angle modifier F2 as a polynomial in the
// angle of incidence (degrees), clipped to [0, 1]. Negative angles yield 0.
func SAPMIAM(aoi float64, b [6]float64) float64 {
	if aoi < 0 || math.IsNaN(aoi) {
		return 0
	}
	f2 := b[0] + aoi*(b[1]+aoi*(b[2]+aoi*(b[3]+aoi*(b[4]+aoi*b[5]))))
	if f2 < 0 {
		return 0
	}
	if f2 > 1 {
		return 1
	}
	return f2
}

// EffectiveIrradiance combines plane-of-array components with the spectral
// modifier f1, the incidence angle modifier f2 and the diffuse usage
// fraction fd into the irradiance reaching the cells, in W/m^2.
func EffectiveIrradiance(f1, f2, fd, poaDirect, poaDiffuse float64) float64 {
	return f1 * (poaDirect*f2 + fd*poaDiffuse)
}
