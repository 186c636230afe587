package modelchain_test

import (
	"testing"
	"time"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
)

// A 96-cell 220 W module characterised for the Sandia performance model.
func frontierML220() pvsystem.ModuleParameters {
	return pvsystem.ModuleParameters{
		"Cells_in_Series": 96,
		"Isco":            5.09,
		"Impo":            4.55,
		"Voco":            59.26,
		"Vmpo":            48.32,
		"Aisc":            0.000397,
		"Aimp":            0.000181,
		"Bvoco":           -0.1697,
		"Mbvoc":           0,
		"Bvmpo":           -0.1619,
		"Mbvmp":           0,
		"N":               1.4032,
		"C0":              1.01284,
		"C1":              -0.0128398,
		"C2":              0.279317,
		"C3":              -7.24463,
		"C4":              0.9964,
		"C5":              0.0036,
		"C6":              1.0985,
		"C7":              -0.0985,
		"IXO":             4.97,
		"IXXO":            3.18,
		"FD":              1,
		"A0":              0.928385,
		"A1":              0.068093,
		"A2":              -0.0157738,
		"A3":              0.0016606,
		"A4":              -6.93e-05,
		"B0":              1,
		"B1":              -0.002438,
		"B2":              0.0003103,
		"B3":              -1.246e-05,
		"B4":              2.112e-07,
		"B5":              -1.359e-09,
	}
}

// A 250 W microinverter characterised for the Sandia inverter model.
func cobaltM250() pvsystem.InverterParameters {
	return pvsystem.InverterParameters{
		"Paco": 250,
		"Pdco": 259.589,
		"Vdco": 40.242,
		"Pso":  1.771,
		"C0":   -2.88e-05,
		"C1":   -1.11e-04,
		"C2":   8.0e-04,
		"C3":   -0.0352,
		"Pnt":  0,
	}
}

// desertSystem wires the Sandia module and microinverter fixtures into a
// single-module system on the default flat mount.
func desertSystem(t *testing.T, options ...pvsystem.Option) *pvsystem.System {
	t.Helper()
	base := []pvsystem.Option{
		pvsystem.WithModule("Frontier_ML_220W"),
		pvsystem.WithInverter("Cobalt_M250_240V"),
		pvsystem.WithModuleParameters(frontierML220()),
		pvsystem.WithInverterParameters(cobaltM250()),
	}
	system, err := pvsystem.New(append(base, options...)...)
	if err != nil {
		t.Fatalf("construct system: %v", err)
	}
	return system
}

// pvwattsSystem is a 20-module array described only by nameplate
// coefficients, paired with a PVWatts inverter.
func pvwattsSystem(t *testing.T) *pvsystem.System {
	t.Helper()
	system, err := pvsystem.New(
		pvsystem.WithFixedOrientation(30, 180),
		pvsystem.WithModuleParameters(pvsystem.ModuleParameters{
			"pdc0":      220,
			"gamma_pdc": -0.0047,
		}),
		pvsystem.WithInverterParameters(pvsystem.InverterParameters{
			"pdc0":        250,
			"eta_inv_nom": 0.96,
		}),
		pvsystem.WithModulesPerString(10),
		pvsystem.WithStringsPerInverter(2),
	)
	if err != nil {
		t.Fatalf("construct pvwatts system: %v", err)
	}
	return system
}

// desertLocation is a Sonoran desert site in a fixed-offset zone (UTC-7).
func desertLocation(t *testing.T, options ...location.Option) *location.Location {
	t.Helper()
	base := []location.Option{location.WithTimezone("Etc/GMT+7")}
	loc, err := location.New(32, -111, append(base, options...)...)
	if err != nil {
		t.Fatalf("construct location: %v", err)
	}
	return loc
}

// desertTimes returns a clear winter noon and a time after sunset at the
// desert site, in its own timezone.
func desertTimes(t *testing.T) []time.Time {
	t.Helper()
	tz, err := time.LoadLocation("Etc/GMT+7")
	if err != nil {
		t.Fatalf("load timezone: %v", err)
	}
	return []time.Time{
		time.Date(2016, time.January, 1, 12, 0, 0, 0, tz),
		time.Date(2016, time.January, 1, 18, 0, 0, 0, tz),
	}
}
