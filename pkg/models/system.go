package models

import (
	"fmt"

	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
)

// AOILossFunc returns the incidence angle modifier, in [0, 1], for an angle
// of incidence in degrees.
type AOILossFunc func(aoi float64) float64

// SpectralLossFunc returns the spectral mismatch modifier for an absolute
// airmass.
type SpectralLossFunc func(airmassAbsolute float64) float64

// CellTempFunc estimates the cell temperature (C) from plane-of-array
// irradiance (W/m^2), air temperature (C) and wind speed (m/s).
type CellTempFunc func(poaGlobal, tempAir, windSpeed float64) float64

// DCFunc evaluates the DC operating point of one module at an effective
// irradiance (W/m^2) and cell temperature (C).
type DCFunc func(effectiveIrradiance, cellTemperature float64) pvsystem.DCResult

// ACFunc converts a DC operating point (string voltage, array power) to AC
// power.
type ACFunc func(vdc, pdc float64) float64

// LossesFunc derates a DC operating point for constant system losses.
type LossesFunc func(dc pvsystem.DCResult) pvsystem.DCResult

// BoundDC is a DC model resolved against a system's module parameters.
// ReportsVoltage tells the chain whether the operating point carries a real
// VMP; inverter models that steer on DC voltage require one that does.
type BoundDC struct {
	Func           DCFunc
	ReportsVoltage bool
}

// Builders for the system-parameterized stages. A builder validates the
// coefficients it needs from the system exactly once and returns the bound
// function, so a bad parameter set fails at configuration time.
type (
	AOIBuilder      func(system *pvsystem.System) (AOILossFunc, error)
	SpectralBuilder func(system *pvsystem.System) (SpectralLossFunc, error)
	CellTempBuilder func(system *pvsystem.System) (CellTempFunc, error)
	DCBuilder       func(system *pvsystem.System) (BoundDC, error)
	ACBuilder       func(system *pvsystem.System) (ACFunc, error)
	LossesBuilder   func(system *pvsystem.System) (LossesFunc, error)
)

var (
	aoiModels      = newRegistry[AOIBuilder](StageAOI)
	spectralModels = newRegistry[SpectralBuilder](StageSpectral)
	cellTempModels = newRegistry[CellTempBuilder](StageCellTemp)
	dcModels       = newRegistry[DCBuilder](StageDC)
	acModels       = newRegistry[ACBuilder](StageAC)
	lossModels     = newRegistry[LossesBuilder](StageLosses)
)

// RegisterAOI adds a custom incidence angle loss builder.
func RegisterAOI(key string, builder AOIBuilder) error {
	if builder == nil {
		return fmt.Errorf("models: %s model %q: builder is required", StageAOI, key)
	}
	return aoiModels.register(key, builder)
}

// AOI resolves an incidence angle loss builder by key.
func AOI(key string) (AOIBuilder, error) {
	return aoiModels.lookup(key)
}

// RegisterSpectral adds a custom spectral loss builder.
func RegisterSpectral(key string, builder SpectralBuilder) error {
	if builder == nil {
		return fmt.Errorf("models: %s model %q: builder is required", StageSpectral, key)
	}
	return spectralModels.register(key, builder)
}

// Spectral resolves a spectral loss builder by key.
func Spectral(key string) (SpectralBuilder, error) {
	return spectralModels.lookup(key)
}

// RegisterCellTemp adds a custom cell temperature builder.
func RegisterCellTemp(key string, builder CellTempBuilder) error {
	if builder == nil {
		return fmt.Errorf("models: %s model %q: builder is required", StageCellTemp, key)
	}
	return cellTempModels.register(key, builder)
}

// CellTemp resolves a cell temperature builder by key.
func CellTemp(key string) (CellTempBuilder, error) {
	return cellTempModels.lookup(key)
}

// RegisterDC adds a custom DC model builder.
func RegisterDC(key string, builder DCBuilder) error {
	if builder == nil {
		return fmt.Errorf("models: %s model %q: builder is required", StageDC, key)
	}
	return dcModels.register(key, builder)
}

// DC resolves a DC model builder by key.
func DC(key string) (DCBuilder, error) {
	return dcModels.lookup(key)
}

// RegisterAC adds a custom AC model builder.
func RegisterAC(key string, builder ACBuilder) error {
	if builder == nil {
		return fmt.Errorf("models: %s model %q: builder is required", StageAC, key)
	}
	return acModels.register(key, builder)
}

// AC resolves an AC model builder by key.
func AC(key string) (ACBuilder, error) {
	return acModels.lookup(key)
}

// RegisterLosses adds a custom losses builder.
func RegisterLosses(key string, builder LossesBuilder) error {
	if builder == nil {
		return fmt.Errorf("models: %s model %q: builder is required", StageLosses, key)
	}
	return lossModels.register(key, builder)
}

// Losses resolves a losses builder by key.
func Losses(key string) (LossesBuilder, error) {
	return lossModels.lookup(key)
}

// Coefficient families recognised by model inference. Inference only sniffs
// the family; the chosen builder still validates the full set.
var (
	sapmDCFamily      = []string{"A0", "A1", "C7"}
	singleDiodeFamily = []string{"a_ref", "I_L_ref", "I_o_ref", "R_sh_ref", "R_s"}
	pvwattsDCFamily   = []string{"pdc0", "gamma_pdc"}
	sandiaACFamily    = []string{"C0", "C1", "C2"}
)

// InferDCModel picks the DC model key from the coefficient family found in
// the module parameters. Matching no family or more than one yields a
// *pverr.ModelSelectionError.
func InferDCModel(params pvsystem.ModuleParameters) (string, error) {
	var matches []string
	if params.Has(sapmDCFamily...) {
		matches = append(matches, "sapm")
	}
	if params.Has(singleDiodeFamily...) {
		if params.Has("Adjust") {
			matches = append(matches, "cec")
		} else {
			matches = append(matches, "desoto")
		}
	}
	if params.Has(pvwattsDCFamily...) {
		matches = append(matches, "pvwatts")
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &pverr.ModelSelectionError{
			Stage:      string(StageDC),
			Reason:     "module parameters match no known coefficient family",
			Candidates: Keys(StageDC),
		}
	default:
		return "", &pverr.ModelSelectionError{
			Stage:      string(StageDC),
			Reason:     "module parameters match more than one coefficient family",
			Candidates: matches,
		}
	}
}

// InferACModel picks the AC model key from the coefficient family found in
// the inverter parameters, with the same no-match and ambiguity rules as
// InferDCModel.
func InferACModel(params pvsystem.InverterParameters) (string, error) {
	var matches []string
	if params.Has(sandiaACFamily...) {
		matches = append(matches, "sandia")
	}
	if params.Has("pdc0") {
		matches = append(matches, "pvwatts")
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", &pverr.ModelSelectionError{
			Stage:      string(StageAC),
			Reason:     "inverter parameters match no known coefficient family",
			Candidates: Keys(StageAC),
		}
	default:
		return "", &pverr.ModelSelectionError{
			Stage:      string(StageAC),
			Reason:     "inverter parameters match more than one coefficient family",
			Candidates: matches,
		}
	}
}

// InferAOIModel picks the incidence angle loss key from the module
// parameters. Absence of every family degrades to "no_loss", never an
// error.
func InferAOIModel(params pvsystem.ModuleParameters) string {
	switch {
	case params.Has("B0", "B1", "B2", "B3", "B4", "B5"):
		return "sapm"
	case params.Has("n", "K", "L"):
		return "physical"
	case params.Has("b"):
		return "ashrae"
	default:
		return "no_loss"
	}
}

// InferSpectralModel picks the spectral loss key from the module
// parameters, degrading to "no_loss" when no family matches.
func InferSpectralModel(params pvsystem.ModuleParameters) string {
	if params.Has("A0", "A1", "A2", "A3", "A4") {
		return "sapm"
	}
	return "no_loss"
}

func init() {
	aoiModels.mustRegister("sapm", func(system *pvsystem.System) (AOILossFunc, error) {
		b, err := pvsystem.ParseSAPMIAM(system.ModuleParameters())
		if err != nil {
			return nil, err
		}
		return func(aoi float64) float64 {
			return pvsystem.SAPMIAM(aoi, b)
		}, nil
	})
	aoiModels.mustRegister("physical", func(system *pvsystem.System) (AOILossFunc, error) {
		params := system.ModuleParameters()
		n := params.Value("n", pvsystem.PhysicalIAMRefractionIndex)
		k := params.Value("K", pvsystem.PhysicalIAMExtinction)
		l := params.Value("L", pvsystem.PhysicalIAMGlazing)
		return func(aoi float64) float64 {
			return pvsystem.PhysicalIAM(aoi, n, k, l)
		}, nil
	})
	aoiModels.mustRegister("ashrae", func(system *pvsystem.System) (AOILossFunc, error) {
		b := system.ModuleParameters().Value("b", pvsystem.ASHRAEIAMDefaultB)
		return func(aoi float64) float64 {
			return pvsystem.ASHRAEIAM(aoi, b)
		}, nil
	})
	aoiModels.mustRegister("no_loss", func(*pvsystem.System) (AOILossFunc, error) {
		return func(float64) float64 { return 1 }, nil
	})

	spectralModels.mustRegister("sapm", func(system *pvsystem.System) (SpectralLossFunc, error) {
		a, err := pvsystem.ParseSAPMSpectral(system.ModuleParameters())
		if err != nil {
			return nil, err
		}
		return func(airmassAbsolute float64) float64 {
			return pvsystem.SAPMSpectralLoss(airmassAbsolute, a)
		}, nil
	})
	spectralModels.mustRegister("no_loss", func(*pvsystem.System) (SpectralLossFunc, error) {
		return func(float64) float64 { return 1 }, nil
	})

	cellTempModels.mustRegister("sapm", buildSAPMCellTemp)
	cellTempModels.mustRegister("pvsyst", func(system *pvsystem.System) (CellTempFunc, error) {
		params := system.TemperatureParameters()
		uc := params.Value("u_c", pvsystem.PVsystUcFreestanding)
		uv := params.Value("u_v", pvsystem.PVsystUvFreestanding)
		eta := params.Value("eta_m", pvsystem.PVsystEtaDefault)
		alpha := params.Value("alpha_absorption", pvsystem.PVsystAlphaAbsorption)
		return func(poaGlobal, tempAir, windSpeed float64) float64 {
			return pvsystem.PVsystCellTemp(poaGlobal, tempAir, windSpeed, uc, uv, eta, alpha)
		}, nil
	})

	dcModels.mustRegister("sapm", func(system *pvsystem.System) (BoundDC, error) {
		module, err := pvsystem.ParseSAPMModule(system.ModuleParameters())
		if err != nil {
			return BoundDC{}, err
		}
		return BoundDC{Func: module.IV, ReportsVoltage: true}, nil
	})
	dcModels.mustRegister("desoto", func(system *pvsystem.System) (BoundDC, error) {
		module, err := pvsystem.ParseDeSotoModule(system.ModuleParameters())
		if err != nil {
			return BoundDC{}, err
		}
		return BoundDC{
			Func: func(effectiveIrradiance, cellTemperature float64) pvsystem.DCResult {
				return pvsystem.SingleDiode(module.CalcParams(effectiveIrradiance, cellTemperature))
			},
			ReportsVoltage: true,
		}, nil
	})
	dcModels.mustRegister("cec", func(system *pvsystem.System) (BoundDC, error) {
		module, err := pvsystem.ParseCECModule(system.ModuleParameters())
		if err != nil {
			return BoundDC{}, err
		}
		return BoundDC{
			Func: func(effectiveIrradiance, cellTemperature float64) pvsystem.DCResult {
				return pvsystem.SingleDiode(module.CalcParams(effectiveIrradiance, cellTemperature))
			},
			ReportsVoltage: true,
		}, nil
	})
	dcModels.mustRegister("pvwatts", func(system *pvsystem.System) (BoundDC, error) {
		module, err := pvsystem.ParsePVWattsModule(system.ModuleParameters())
		if err != nil {
			return BoundDC{}, err
		}
		return BoundDC{Func: module.DC, ReportsVoltage: false}, nil
	})

	acModels.mustRegister("sandia", func(system *pvsystem.System) (ACFunc, error) {
		inv, err := pvsystem.ParseSandiaInverter(system.InverterParameters())
		if err != nil {
			return nil, err
		}
		return inv.AC, nil
	})
	acModels.mustRegister("pvwatts", func(system *pvsystem.System) (ACFunc, error) {
		inv, err := pvsystem.ParsePVWattsInverter(system.InverterParameters())
		if err != nil {
			return nil, err
		}
		return func(_, pdc float64) float64 {
			return inv.AC(pdc)
		}, nil
	})

	lossModels.mustRegister("no_loss", func(*pvsystem.System) (LossesFunc, error) {
		return func(dc pvsystem.DCResult) pvsystem.DCResult { return dc }, nil
	})
	// Constant losses derate current and power, leaving voltages physical,
	// so the IV point relationships survive the scaling.
	lossModels.mustRegister("pvwatts", func(system *pvsystem.System) (LossesFunc, error) {
		factor := 1 - pvsystem.PVWattsLosses(system.LossParameters())/100
		return func(dc pvsystem.DCResult) pvsystem.DCResult {
			dc.ISC *= factor
			dc.IMP *= factor
			dc.PMP *= factor
			dc.IX *= factor
			dc.IXX *= factor
			return dc
		}, nil
	})
}

// buildSAPMCellTemp uses explicit a/b/deltaT overrides when the system
// carries them, otherwise the coefficient preset for its racking.
func buildSAPMCellTemp(system *pvsystem.System) (CellTempFunc, error) {
	overrides := system.TemperatureParameters()

	var params pvsystem.SAPMTempParams
	switch {
	case overrides.Has("a", "b", "deltaT"):
		params = pvsystem.SAPMTempParams{
			A:      overrides["a"],
			B:      overrides["b"],
			DeltaT: overrides["deltaT"],
		}
	case overrides.Has("a") || overrides.Has("b") || overrides.Has("deltaT"):
		return nil, fmt.Errorf("models: sapm cell temperature overrides need a, b and deltaT together")
	default:
		preset, err := pvsystem.SAPMTempParamsFor(system.Racking())
		if err != nil {
			return nil, err
		}
		params = preset
	}

	return func(poaGlobal, tempAir, windSpeed float64) float64 {
		return pvsystem.SAPMCellTemp(poaGlobal, tempAir, windSpeed, params)
	}, nil
}
