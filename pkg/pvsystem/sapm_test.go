package pvsystem_test

import (
	"math"
	"strings"
	"testing"

	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/testsupport"
)

func TestParseSAPMModule(t *testing.T) {
	module, err := pvsystem.ParseSAPMModule(frontierML220())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if module.CellsInSeries != 96 || module.ISCO != 5.09 || module.FD != 1 {
		t.Fatalf("unexpected coefficients: %+v", module)
	}

	incomplete := frontierML220()
	delete(incomplete, "Voco")
	delete(incomplete, "N")
	_, err = pvsystem.ParseSAPMModule(incomplete)
	if err == nil {
		t.Fatal("missing keys must fail")
	}
	if !strings.Contains(err.Error(), "Voco") || !strings.Contains(err.Error(), "N") {
		t.Fatalf("error should name the missing keys, got %v", err)
	}

	// FD defaults to 1 when absent.
	noFD := frontierML220()
	delete(noFD, "FD")
	module, err = pvsystem.ParseSAPMModule(noFD)
	if err != nil {
		t.Fatalf("parse without FD: %v", err)
	}
	if module.FD != 1 {
		t.Fatalf("FD should default to 1, got %v", module.FD)
	}
}

func TestSAPMModule_IV(t *testing.T) {
	module, err := pvsystem.ParseSAPMModule(frontierML220())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		name       string
		irradiance float64
		cellTemp   float64
		want       pvsystem.DCResult
	}{
		{
			name:       "reference conditions hit the nameplate",
			irradiance: 1000,
			cellTemp:   25,
			want: pvsystem.DCResult{
				ISC: 5.09,
				IMP: 4.55000091,
				VOC: 59.26,
				VMP: 48.32,
				PMP: 219.8560439712,
				IX:  4.97,
				IXX: 3.18,
			},
		},
		{
			name:       "warm operating point",
			irradiance: 894.3,
			cellTemp:   48.24,
			want: pvsystem.DCResult{
				ISC: 4.59398490661836,
				IMP: 4.091727724829009,
				VOC: 54.89939267461362,
				VMP: 44.427921818982284,
				PMP: 181.78695946326548,
				IX:  4.483971888664835,
				IXX: 2.8999944093246572,
			},
		},
		{
			name:       "low light",
			irradiance: 200,
			cellTemp:   30,
			want: pvsystem.DCResult{
				ISC: 1.02002073,
				IMP: 0.9201795659385418,
				VOC: 52.74782863044739,
				VMP: 43.50783975614839,
				PMP: 40.03502510173626,
				IX:  0.9931046875007999,
				IXX: 0.6874787418480001,
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := module.IV(tc.irradiance, tc.cellTemp)
			testsupport.AssertAlmostEqual(t, "isc", tc.want.ISC, got.ISC, 1e-9)
			testsupport.AssertAlmostEqual(t, "imp", tc.want.IMP, got.IMP, 1e-9)
			testsupport.AssertAlmostEqual(t, "voc", tc.want.VOC, got.VOC, 1e-9)
			testsupport.AssertAlmostEqual(t, "vmp", tc.want.VMP, got.VMP, 1e-9)
			testsupport.AssertAlmostEqual(t, "pmp", tc.want.PMP, got.PMP, 1e-9)
			testsupport.AssertAlmostEqual(t, "ix", tc.want.IX, got.IX, 1e-9)
			testsupport.AssertAlmostEqual(t, "ixx", tc.want.IXX, got.IXX, 1e-9)
		})
	}

	if got := module.IV(0, 10); got != (pvsystem.DCResult{}) {
		t.Fatalf("no irradiance must yield a zero operating point, got %+v", got)
	}
	if got := module.IV(math.NaN(), 25); got != (pvsystem.DCResult{}) {
		t.Fatalf("NaN irradiance must yield a zero operating point, got %+v", got)
	}
}

func TestSAPMSpectralLoss(t *testing.T) {
	a, err := pvsystem.ParseSAPMSpectral(frontierML220())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		name    string
		airmass float64
		want    float64
	}{
		{name: "overhead sun", airmass: 1, want: 0.9822955},
		{name: "tucson noon", airmass: 1.6226254748655238, want: 1.0039574519504977},
		{name: "mid morning", airmass: 3, want: 1.0299227},
		{name: "near horizon", airmass: 8, want: 1.0299801999999998},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			testsupport.AssertAlmostEqual(t, "f1", tc.want, pvsystem.SAPMSpectralLoss(tc.airmass, a), 1e-9)
		})
	}

	if got := pvsystem.SAPMSpectralLoss(math.NaN(), a); got != 0 {
		t.Fatalf("night airmass must zero the modifier, got %v", got)
	}

	missing := frontierML220()
	delete(missing, "A2")
	if _, err := pvsystem.ParseSAPMSpectral(missing); err == nil {
		t.Fatal("missing A2 must fail")
	}
}

func TestSAPMIAM(t *testing.T) {
	b, err := pvsystem.ParseSAPMIAM(frontierML220())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cases := []struct {
		name string
		aoi  float64
		want float64
	}{
		{name: "normal incidence", aoi: 0, want: 1},
		{name: "shallow angle clips at one", aoi: 26.02407573244032, want: 1},
		{name: "fifty degrees", aoi: 50, want: 0.9916625000000002},
		{name: "steep", aoi: 75, want: 0.7635542968750012},
		{name: "grazing", aoi: 89, want: 0.11941506800900115},
		{name: "behind the plane", aoi: -5, want: 0},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			testsupport.AssertAlmostEqual(t, "f2", tc.want, pvsystem.SAPMIAM(tc.aoi, b), 1e-9)
		})
	}

	missing := frontierML220()
	delete(missing, "B5")
	if _, err := pvsystem.ParseSAPMIAM(missing); err == nil {
		t.Fatal("missing B5 must fail")
	}
}

func TestEffectiveIrradiance(t *testing.T) {
	// F1 * (direct * F2 + FD * diffuse) with the warm operating numbers.
	got := pvsystem.EffectiveIrradiance(1.0039574519504977, 0.9916625, 1, 727.9, 130.2)
	want := 1.0039574519504977 * (727.9*0.9916625 + 130.2)
	testsupport.AssertAlmostEqual(t, "effective irradiance", want, got, 1e-9)

	if got := pvsystem.EffectiveIrradiance(0, 1, 1, 800, 100); got != 0 {
		t.Fatalf("zero spectral modifier must zero the result, got %v", got)
	}
}
