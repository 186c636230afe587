package pvsystem

import (
	"fmt"
	"math"
	"strings"
)

// SandiaInverter is the Sandia grid-connected inverter model coefficient
// set.
type SandiaInverter struct {
	Paco float64 // AC power rating, W
	Pdco float64 // DC power at which the AC rating is reached, W
	Vdco float64 // DC voltage at which the ratings apply, V
	Pso  float64 // DC power required to start inversion, W
	C0   float64 // curvature of AC power vs DC power, 1/W
	C1   float64 // variation of Pdco with DC voltage, 1/V
	C2   float64 // variation of Pso with DC voltage, 1/V
	C3   float64 // variation of C0 with DC voltage, 1/V
	Pnt  float64 // night tare consumption, W
}

var sandiaInverterRequiredKeys = []string{
	"Paco", "Pdco", "Vdco", "Pso", "C0", "C1", "C2", "C3", "Pnt",
}

// ParseSandiaInverter builds the typed coefficient set from an opaque
// parameter map.
func ParseSandiaInverter(p InverterParameters) (SandiaInverter, error) {
	if missing := p.Missing(sandiaInverterRequiredKeys...); len(missing) > 0 {
		return SandiaInverter{}, fmt.Errorf("pvsystem: sandia inverter parameters missing %s", strings.Join(missing, ", "))
	}
	return SandiaInverter{
		Paco: p["Paco"],
		Pdco: p["Pdco"],
		Vdco: p["Vdco"],
		Pso:  p["Pso"],
		C0:   p["C0"],
		C1:   p["C1"],
		C2:   p["C2"],
		C3:   p["C3"],
		Pnt:  p["Pnt"],
	}, nil
}

// AC converts a DC operating point (voltage and power at maximum power) to
// AC power. Output is clipped at the AC rating; below the inversion
// threshold the inverter draws its night tare.
func (inv SandiaInverter) AC(vdc, pdc float64) float64 {
	if pdc < inv.Pso || math.IsNaN(pdc) {
		return -math.Abs(inv.Pnt)
	}

	dv := vdc - inv.Vdco
	a := inv.Pdco * (1 + inv.C1*dv)
	b := inv.Pso * (1 + inv.C2*dv)
	c := inv.C0 * (1 + inv.C3*dv)

	pac := (inv.Paco/(a-b)-c*(a-b))*(pdc-b) + c*(pdc-b)*(pdc-b)
	return math.Min(inv.Paco, pac)
}

// PVWattsInverter is the two-coefficient NREL PVWatts inverter description.
type PVWattsInverter struct {
	PDC0      float64 // DC input limit, W
	EtaInvNom float64 // nominal efficiency
}

// Reference efficiency of the PVWatts part-load curve.
const pvwattsEtaInvRef = 0.9637

// DefaultEtaInvNom is assumed when the parameter set omits the nominal
// efficiency.
const DefaultEtaInvNom = 0.96

// ParsePVWattsInverter builds the typed coefficient pair from an opaque
// parameter map.
func ParsePVWattsInverter(p InverterParameters) (PVWattsInverter, error) {
	pdc0, ok := p.Get("pdc0")
	if !ok {
		return PVWattsInverter{}, fmt.Errorf("pvsystem: pvwatts inverter parameters missing pdc0")
	}
	return PVWattsInverter{
		PDC0:      pdc0,
		EtaInvNom: p.Value("eta_inv_nom", DefaultEtaInvNom),
	}, nil
}

// AC converts DC power to AC power with the PVWatts part-load efficiency
// curve. Output is clipped to [0, Paco].
func (inv PVWattsInverter) AC(pdc float64) float64 {
	pac0 := inv.EtaInvNom * inv.PDC0

	zeta := pdc / inv.PDC0
	if zeta == 0 || math.IsNaN(zeta) {
		return 0
	}

	eta := inv.EtaInvNom / pvwattsEtaInvRef * (-0.0162*zeta - 0.0059/zeta + 0.9858)
	pac := eta * pdc
	pac = math.Min(pac0, pac)
	return math.Max(0, pac)
}
