package pvsystem

import (
	"fmt"
	"math"
	"strings"
)

// Single-diode reference condition constants.
const (
	boltzmannEV  = 8.617332478e-05 // eV/K
	diodeTempRef = 25.0
	irradRef     = 1000.0

	// De Soto silicon bandgap and its temperature dependence.
	EgRefSilicon = 1.121
	DEgDTSilicon = -0.0002677
)

// DeSotoModule holds the five reference parameters of the De Soto
// single-diode translation plus the short-circuit temperature coefficient
// and bandgap description.
type DeSotoModule struct {
	AlphaSC float64 // short-circuit current temperature coefficient, A/C
	ARef    float64 // modified ideality factor at reference, V
	ILRef   float64 // photocurrent at reference, A
	IORef   float64 // diode saturation current at reference, A
	RShRef  float64 // shunt resistance at reference, ohm
	RS      float64 // series resistance, ohm
	EgRef   float64 // bandgap at reference, eV
	DEgDT   float64 // bandgap temperature dependence, 1/K
}

var deSotoRequiredKeys = []string{"alpha_sc", "a_ref", "I_L_ref", "I_o_ref", "R_sh_ref", "R_s"}

// ParseDeSotoModule builds the typed reference set from an opaque parameter
// map. EgRef and dEgdT fall back to the silicon values.
func ParseDeSotoModule(p ModuleParameters) (DeSotoModule, error) {
	if missing := p.Missing(deSotoRequiredKeys...); len(missing) > 0 {
		return DeSotoModule{}, fmt.Errorf("pvsystem: single diode module parameters missing %s", strings.Join(missing, ", "))
	}
	return DeSotoModule{
		AlphaSC: p["alpha_sc"],
		ARef:    p["a_ref"],
		ILRef:   p["I_L_ref"],
		IORef:   p["I_o_ref"],
		RShRef:  p["R_sh_ref"],
		RS:      p["R_s"],
		EgRef:   p.Value("EgRef", EgRefSilicon),
		DEgDT:   p.Value("dEgdT", DEgDTSilicon),
	}, nil
}

// ParseCECModule builds a De Soto set with the CEC Adjust correction
// applied to the short-circuit temperature coefficient.
func ParseCECModule(p ModuleParameters) (DeSotoModule, error) {
	adjust, ok := p.Get("Adjust")
	if !ok {
		return DeSotoModule{}, fmt.Errorf("pvsystem: cec module parameters missing Adjust")
	}
	m, err := ParseDeSotoModule(p)
	if err != nil {
		return DeSotoModule{}, err
	}
	m.AlphaSC *= 1 - adjust/100
	return m, nil
}

// SingleDiodeParams is a single-diode equation parameter set translated to
// one operating condition.
type SingleDiodeParams struct {
	Photocurrent      float64 // IL, A
	SaturationCurrent float64 // I0, A
	SeriesResistance  float64 // Rs, ohm
	ShuntResistance   float64 // Rsh, ohm
	NNsVth            float64 // modified ideality factor a, V
}

// CalcParams translates the reference set to the given effective irradiance
// (W/m^2) and cell temperature (C) with the De Soto equations.
func (m DeSotoModule) CalcParams(effectiveIrradiance, cellTemperature float64) SingleDiodeParams {
	tRefK := diodeTempRef + 273.15
	tCellK := cellTemperature + 273.15

	eg := m.EgRef * (1 + m.DEgDT*(tCellK-tRefK))
	nNsVth := m.ARef * tCellK / tRefK

	il := effectiveIrradiance / irradRef * (m.ILRef + m.AlphaSC*(tCellK-tRefK))
	i0 := m.IORef * math.Pow(tCellK/tRefK, 3) *
		math.Exp(m.EgRef/(boltzmannEV*tRefK)-eg/(boltzmannEV*tCellK))

	rsh := math.Inf(1)
	if effectiveIrradiance > 0 {
		rsh = m.RShRef * irradRef / effectiveIrradiance
	}

	return SingleDiodeParams{
		Photocurrent:      il,
		SaturationCurrent: i0,
		SeriesResistance:  m.RS,
		ShuntResistance:   rsh,
		NNsVth:            nNsVth,
	}
}

// SingleDiode solves the single-diode equation for the full operating
// point. A dark condition (no photocurrent) returns zeros.
func SingleDiode(p SingleDiodeParams) DCResult {
	if p.Photocurrent <= 0 || math.IsNaN(p.Photocurrent) {
		return DCResult{}
	}

	isc := currentAtVoltage(p, 0)
	voc := openCircuitVoltage(p)
	vmp, pmp := maxPower(p, voc)
	imp := 0.0
	if vmp > 0 {
		imp = pmp / vmp
	}
	ix := currentAtVoltage(p, 0.5*voc)
	ixx := currentAtVoltage(p, 0.5*(voc+vmp))

	return DCResult{
		ISC: isc,
		IMP: imp,
		VOC: voc,
		VMP: vmp,
		PMP: pmp,
		IX:  ix,
		IXX: ixx,
	}
}

// currentAtVoltage solves I = IL - I0 (exp((V+I Rs)/a) - 1) - (V+I Rs)/Rsh
// for I with Newton iterations. The residual is monotone decreasing in I,
// so convergence from the photocurrent side is well behaved.
func currentAtVoltage(p SingleDiodeParams, v float64) float64 {
	shunt := func(vd float64) float64 {
		if math.IsInf(p.ShuntResistance, 1) {
			return 0
		}
		return vd / p.ShuntResistance
	}

	i := p.Photocurrent
	for iter := 0; iter < 100; iter++ {
		vd := v + i*p.SeriesResistance
		expTerm := math.Exp(vd / p.NNsVth)
		f := p.Photocurrent - p.SaturationCurrent*(expTerm-1) - shunt(vd) - i

		fPrime := -p.SaturationCurrent*expTerm*p.SeriesResistance/p.NNsVth - 1
		if !math.IsInf(p.ShuntResistance, 1) {
			fPrime -= p.SeriesResistance / p.ShuntResistance
		}

		step := f / fPrime
		i -= step
		if math.Abs(step) < 1e-12 {
			break
		}
	}
	return i
}

// openCircuitVoltage solves the diode equation at I = 0.
func openCircuitVoltage(p SingleDiodeParams) float64 {
	shunt := func(v float64) float64 {
		if math.IsInf(p.ShuntResistance, 1) {
			return 0
		}
		return v / p.ShuntResistance
	}

	v := p.NNsVth * math.Log(p.Photocurrent/p.SaturationCurrent+1)
	for iter := 0; iter < 100; iter++ {
		expTerm := math.Exp(v / p.NNsVth)
		g := p.Photocurrent - p.SaturationCurrent*(expTerm-1) - shunt(v)

		gPrime := -p.SaturationCurrent * expTerm / p.NNsVth
		if !math.IsInf(p.ShuntResistance, 1) {
			gPrime -= 1 / p.ShuntResistance
		}

		step := g / gPrime
		v -= step
		if math.Abs(step) < 1e-12 {
			break
		}
	}
	return v
}

// maxPower locates the maximum power point on [0, voc] with a golden
// section search. Power is unimodal on the IV curve, so the bracket only
// tightens.
func maxPower(p SingleDiodeParams, voc float64) (vmp, pmp float64) {
	const invPhi = 0.6180339887498949

	power := func(v float64) float64 {
		return v * currentAtVoltage(p, v)
	}

	lo, hi := 0.0, voc
	x1 := hi - invPhi*(hi-lo)
	x2 := lo + invPhi*(hi-lo)
	p1, p2 := power(x1), power(x2)

	for hi-lo > 1e-10 {
		if p1 < p2 {
			lo = x1
			x1, p1 = x2, p2
			x2 = lo + invPhi*(hi-lo)
			p2 = power(x2)
		} else {
			hi = x2
			x2, p2 = x1, p1
			x1 = hi - invPhi*(hi-lo)
			p1 = power(x1)
		}
	}

	vmp = 0.5 * (lo + hi)
	return vmp, power(vmp)
}
