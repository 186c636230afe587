package pvsystem

import "fmt"

// PVWattsModule is the two-coefficient module description of the PVWatts
// method: nameplate DC power and its temperature coefficient.
type PVWattsModule struct {
	PDC0     float64 // nameplate power at reference conditions, W
	GammaPDC float64 // power temperature coefficient, 1/C
}

// ParsePVWattsModule builds the typed coefficient pair from an opaque
// parameter map.
func ParsePVWattsModule(p ModuleParameters) (PVWattsModule, error) {
	pdc0, ok := p.Get("pdc0")
	if !ok {
		return PVWattsModule{}, fmt.Errorf("pvsystem: pvwatts module parameters missing pdc0")
	}
	gamma, ok := p.Get("gamma_pdc")
	if !ok {
		return PVWattsModule{}, fmt.Errorf("pvsystem: pvwatts module parameters missing gamma_pdc")
	}
	return PVWattsModule{PDC0: pdc0, GammaPDC: gamma}, nil
}

// DC evaluates the PVWatts power equation at the given transmitted
// irradiance (W/m^2) and cell temperature (C). Only power is resolved; the
// IV points stay zero.
func (m PVWattsModule) DC(effectiveIrradiance, cellTemperature float64) DCResult {
	pdc := effectiveIrradiance / 1000 * m.PDC0 * (1 + m.GammaPDC*(cellTemperature-sapmTempRef))
	return DCResult{PMP: pdc}
}

// Default PVWatts system loss percentages.
var DefaultPVWattsLosses = Parameters{
	"soiling":          2,
	"shading":          3,
	"snow":             0,
	"mismatch":         2,
	"wiring":           2,
	"connections":      0.5,
	"lid":              1.5,
	"nameplate_rating": 1,
	"age":              0,
	"availability":     3,
}

// PVWattsLosses combines individual loss percentages into the total system
// loss percent. Absent entries fall back to the PVWatts defaults; unknown
// entries are combined as given.
func PVWattsLosses(overrides Parameters) float64 {
	combined := DefaultPVWattsLosses.Clone()
	for name, pct := range overrides {
		combined[name] = pct
	}

	derate := 1.0
	for _, pct := range combined {
		derate *= 1 - pct/100
	}
	return 100 * (1 - derate)
}
