package pvsystem

import (
	"fmt"
	"math"
	"sort"
)

// SAPMTempParams are the empirical coefficients of the Sandia cell
// temperature model for one mounting configuration.
type SAPMTempParams struct {
	A      float64 // natural log of irradiance-to-temperature gain at zero wind
	B      float64 // wind speed coefficient, s/m
	DeltaT float64 // cell-to-back-surface temperature difference at 1000 W/m^2, C
}

// SAPMTemperatureParams maps racking configuration names to measured
// coefficient sets.
var SAPMTemperatureParams = map[string]SAPMTempParams{
	"open_rack_cell_glassback":         {A: -3.47, B: -0.0594, DeltaT: 3},
	"roof_mount_cell_glassback":        {A: -2.98, B: -0.0471, DeltaT: 1},
	"open_rack_cell_polymerback":       {A: -3.56, B: -0.0750, DeltaT: 3},
	"insulated_back_polymerback":       {A: -2.81, B: -0.0455, DeltaT: 0},
	"open_rack_polymer_thinfilm_steel": {A: -3.58, B: -0.113, DeltaT: 3},
	"22x_concentrator_tracker":         {A: -3.23, B: -0.130, DeltaT: 13},
}

// SAPMTempParamsFor resolves the coefficient set for a racking name,
// listing the known configurations when the name is unknown.
func SAPMTempParamsFor(racking string) (SAPMTempParams, error) {
	params, ok := SAPMTemperatureParams[racking]
	if !ok {
		known := make([]string, 0, len(SAPMTemperatureParams))
		for name := range SAPMTemperatureParams {
			known = append(known, name)
		}
		sort.Strings(known)
		return SAPMTempParams{}, fmt.Errorf("pvsystem: unknown racking %q (known: %v)", racking, known)
	}
	return params, nil
}

// SAPMCellTemp estimates the cell temperature (C) from plane-of-array
// irradiance (W/m^2), ambient air temperature (C) and wind speed (m/s)
// using the Sandia empirical model.
func SAPMCellTemp(poaGlobal, tempAir, windSpeed float64, params SAPMTempParams) float64 {
	moduleTemp := poaGlobal*math.Exp(params.A+params.B*windSpeed) + tempAir
	return moduleTemp + poaGlobal/1000*params.DeltaT
}

// Defaults of the PVsyst cell temperature model for freestanding arrays.
const (
	PVsystUcFreestanding  = 29.0 // W/m^2/K
	PVsystUvFreestanding  = 0.0  // W/m^3/sK
	PVsystEtaDefault      = 0.1
	PVsystAlphaAbsorption = 0.9
)

// PVsystCellTemp estimates the cell temperature (C) with the PVsyst energy
// balance: absorbed irradiance not converted to electricity heats the
// module against a wind-dependent loss factor.
func PVsystCellTemp(poaGlobal, tempAir, windSpeed, uc, uv, moduleEfficiency, alphaAbsorption float64) float64 {
	totalLoss := uc + uv*windSpeed
	heatInput := poaGlobal * alphaAbsorption * (1 - moduleEfficiency)
	return tempAir + heatInput/totalLoss
}
