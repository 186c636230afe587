package pvsystem_test

import (
	"testing"

	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/testsupport"
)

func TestSAPMTempParamsFor(t *testing.T) {
	rackings := []string{
		"open_rack_cell_glassback",
		"roof_mount_cell_glassback",
		"open_rack_cell_polymerback",
		"insulated_back_polymerback",
		"open_rack_polymer_thinfilm_steel",
		"22x_concentrator_tracker",
	}
	for _, racking := range rackings {
		if _, err := pvsystem.SAPMTempParamsFor(racking); err != nil {
			t.Fatalf("preset %q should resolve: %v", racking, err)
		}
	}

	params, err := pvsystem.SAPMTempParamsFor("open_rack_cell_glassback")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if params.A != -3.47 || params.B != -0.0594 || params.DeltaT != 3 {
		t.Fatalf("unexpected open rack coefficients: %+v", params)
	}

	if _, err := pvsystem.SAPMTempParamsFor("balloon_mounted"); err == nil {
		t.Fatal("unknown racking must fail")
	}
}

func TestSAPMCellTemp(t *testing.T) {
	openRack := pvsystem.SAPMTempParams{A: -3.47, B: -0.0594, DeltaT: 3}
	roofMount := pvsystem.SAPMTempParams{A: -2.98, B: -0.0471, DeltaT: 1}

	got := pvsystem.SAPMCellTemp(894.3, 25, 5, openRack)
	testsupport.AssertAlmostEqual(t, "open rack", 48.3602994407692, got, 1e-9)

	got = pvsystem.SAPMCellTemp(894.3, 25, 5, roofMount)
	testsupport.AssertAlmostEqual(t, "roof mount", 61.78726406906405, got, 1e-9)

	// No irradiance means the cell sits at ambient.
	got = pvsystem.SAPMCellTemp(0, 12, 0, openRack)
	testsupport.AssertAlmostEqual(t, "calm night", 12, got, 1e-12)

	// A roof mount runs hotter than an open rack under the same sky.
	open := pvsystem.SAPMCellTemp(800, 20, 3, openRack)
	roof := pvsystem.SAPMCellTemp(800, 20, 3, roofMount)
	if roof <= open {
		t.Fatalf("roof mount (%v) should run hotter than open rack (%v)", roof, open)
	}
}

func TestPVsystCellTemp(t *testing.T) {
	got := pvsystem.PVsystCellTemp(800, 20, 5,
		pvsystem.PVsystUcFreestanding, pvsystem.PVsystUvFreestanding,
		pvsystem.PVsystEtaDefault, pvsystem.PVsystAlphaAbsorption)
	testsupport.AssertAlmostEqual(t, "default", 42.3448275862069, got, 1e-9)

	// A wind-dependent loss factor cools the module as wind picks up.
	got = pvsystem.PVsystCellTemp(800, 20, 10, 25, 1.2,
		pvsystem.PVsystEtaDefault, pvsystem.PVsystAlphaAbsorption)
	testsupport.AssertAlmostEqual(t, "windy", 37.513513513513516, got, 1e-9)
}
