package modelchain_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/pverr"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/testsupport"
	"github.com/goliatone/go-pvsim/pkg/tracking"
)

func TestNew_Defaults(t *testing.T) {
	t.Parallel()

	chain, err := modelchain.New(desertSystem(t), desertLocation(t), nil)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	want := modelchain.ModelKeys{
		SolarPosition: "ephemeris",
		Airmass:       "kastenyoung1989",
		ClearSky:      "ineichen",
		Transposition: "haydavies",
		AOI:           "sapm",
		Spectral:      "sapm",
		CellTemp:      "sapm",
		DC:            "sapm",
		AC:            "sandia",
		Losses:        "no_loss",
	}
	if chain.Models() != want {
		t.Fatalf("models = %+v, want %+v", chain.Models(), want)
	}
	if chain.Turbidity() != 3 {
		t.Fatalf("turbidity = %v, want the site default", chain.Turbidity())
	}
	if chain.ReferenceIrradiance() != modelchain.DefaultReferenceIrradiance {
		t.Fatalf("reference irradiance = %v", chain.ReferenceIrradiance())
	}
	mount, ok := chain.Mount().(pvsystem.FixedMount)
	if !ok || mount.SurfaceTilt != 0 || mount.SurfaceAzimuth != 180 {
		t.Fatalf("mount = %+v, want the system's flat fixed mount", chain.Mount())
	}
	if chain.System() == nil || chain.Location() == nil {
		t.Fatal("accessors should echo the constructor arguments")
	}
	if chain.Results() != nil {
		t.Fatal("results should be nil before the first run")
	}
}

func TestNew_RequiresSystemAndLocation(t *testing.T) {
	t.Parallel()

	if _, err := modelchain.New(nil, desertLocation(t)); err == nil {
		t.Fatal("nil system should not construct")
	}
	if _, err := modelchain.New(desertSystem(t), nil); err == nil {
		t.Fatal("nil location should not construct")
	}
}

func TestNew_UnknownModelKeys(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		stage  string
		option modelchain.Option
	}{
		{"solar position", "solarposition", modelchain.WithSolarPositionModel("sunpath")},
		{"airmass", "airmass", modelchain.WithAirmassModel("thickair")},
		{"clear sky", "clearsky", modelchain.WithClearSkyModel("bluest")},
		{"transposition", "transposition", modelchain.WithTranspositionModel("tilted")},
		{"aoi", "aoi", modelchain.WithAOIModel("fresnel")},
		{"spectral", "spectral", modelchain.WithSpectralModel("rainbow")},
		{"cell temperature", "celltemp", modelchain.WithCellTempModel("thermal")},
		{"dc", "dc", modelchain.WithDCModel("curvefit")},
		{"ac", "ac", modelchain.WithACModel("gridtie")},
		{"losses", "losses", modelchain.WithLossesModel("wear")},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := modelchain.New(desertSystem(t), desertLocation(t), tc.option)
			var unknown *pverr.UnknownModelError
			if !errors.As(err, &unknown) {
				t.Fatalf("want UnknownModelError, got %v", err)
			}
			if unknown.Stage != tc.stage {
				t.Fatalf("stage = %q, want %q", unknown.Stage, tc.stage)
			}
			if len(unknown.Known) == 0 {
				t.Fatal("error should list the registered keys")
			}
		})
	}
}

func TestNew_OrientationStrategies(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		latitude float64
		strategy string
		wantTilt float64
	}{
		{"flat", 32, modelchain.StrategyFlat, 0},
		{"south at latitude tilt", 32, modelchain.StrategySouthAtLatitudeTilt, 32},
		{"southern hemisphere tilts by magnitude", -23.5, modelchain.StrategySouthAtLatitudeTilt, 23.5},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			loc, err := location.New(tc.latitude, -111, location.WithTimezone("Etc/GMT+7"))
			if err != nil {
				t.Fatalf("construct location: %v", err)
			}
			chain, err := modelchain.New(desertSystem(t), loc, modelchain.WithOrientationStrategy(tc.strategy))
			if err != nil {
				t.Fatalf("construct: %v", err)
			}
			mount, ok := chain.Mount().(pvsystem.FixedMount)
			if !ok {
				t.Fatalf("strategy should produce a fixed mount, got %T", chain.Mount())
			}
			if mount.SurfaceTilt != tc.wantTilt || mount.SurfaceAzimuth != 180 {
				t.Fatalf("mount = %+v, want tilt %v facing south", mount, tc.wantTilt)
			}
		})
	}

	t.Run("unknown strategy", func(t *testing.T) {
		t.Parallel()

		_, err := modelchain.New(desertSystem(t), desertLocation(t), modelchain.WithOrientationStrategy("single_axis"))
		var unknown *pverr.UnknownModelError
		if !errors.As(err, &unknown) {
			t.Fatalf("want UnknownModelError, got %v", err)
		}
		if unknown.Stage != "orientation" {
			t.Fatalf("stage = %q", unknown.Stage)
		}
	})

	t.Run("system mount kept without a strategy", func(t *testing.T) {
		t.Parallel()

		tracker := tracking.NewSingleAxis()
		chain, err := modelchain.New(desertSystem(t, pvsystem.WithMount(tracker)), desertLocation(t))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		if _, ok := chain.Mount().(*tracking.SingleAxisMount); !ok {
			t.Fatalf("mount = %T, want the system's tracker", chain.Mount())
		}
	})
}

func TestNew_ExplicitModelsSkipInference(t *testing.T) {
	t.Parallel()

	chain, err := modelchain.New(desertSystem(t), desertLocation(t),
		modelchain.WithAirmassModel("young1994"),
		modelchain.WithTranspositionModel("perez"),
		modelchain.WithAOIModel("physical"),
		modelchain.WithSpectralModel("no_loss"),
		modelchain.WithCellTempModel("pvsyst"),
	)
	if err != nil {
		t.Fatalf("construct: %v", err)
	}

	keys := chain.Models()
	if keys.Airmass != "young1994" || keys.Transposition != "perez" {
		t.Fatalf("site models not kept: %+v", keys)
	}
	if keys.AOI != "physical" || keys.Spectral != "no_loss" || keys.CellTemp != "pvsyst" {
		t.Fatalf("system models not kept: %+v", keys)
	}
	if keys.DC != "sapm" || keys.AC != "sandia" {
		t.Fatalf("inference should still fill the unset stages: %+v", keys)
	}
}

func TestNew_InferenceFailures(t *testing.T) {
	t.Parallel()

	t.Run("no dc family", func(t *testing.T) {
		t.Parallel()

		system, err := pvsystem.New(pvsystem.WithInverterParameters(cobaltM250()))
		if err != nil {
			t.Fatalf("construct system: %v", err)
		}
		_, err = modelchain.New(system, desertLocation(t))
		var selection *pverr.ModelSelectionError
		if !errors.As(err, &selection) {
			t.Fatalf("want ModelSelectionError, got %v", err)
		}
		if selection.Stage != "dc" {
			t.Fatalf("stage = %q", selection.Stage)
		}
	})

	t.Run("two dc families", func(t *testing.T) {
		t.Parallel()

		params := frontierML220()
		params["pdc0"] = 220
		params["gamma_pdc"] = -0.0047
		system, err := pvsystem.New(
			pvsystem.WithModuleParameters(params),
			pvsystem.WithInverterParameters(cobaltM250()),
		)
		if err != nil {
			t.Fatalf("construct system: %v", err)
		}
		_, err = modelchain.New(system, desertLocation(t))
		var selection *pverr.ModelSelectionError
		if !errors.As(err, &selection) {
			t.Fatalf("want ModelSelectionError, got %v", err)
		}
		if selection.Stage != "dc" || len(selection.Candidates) != 2 {
			t.Fatalf("selection = %+v, want both matching dc families listed", selection)
		}
	})

	t.Run("no ac family", func(t *testing.T) {
		t.Parallel()

		system, err := pvsystem.New(pvsystem.WithModuleParameters(frontierML220()))
		if err != nil {
			t.Fatalf("construct system: %v", err)
		}
		_, err = modelchain.New(system, desertLocation(t))
		var selection *pverr.ModelSelectionError
		if !errors.As(err, &selection) {
			t.Fatalf("want ModelSelectionError, got %v", err)
		}
		if selection.Stage != "ac" {
			t.Fatalf("stage = %q", selection.Stage)
		}
	})
}

func TestNew_SandiaACNeedsDCVoltage(t *testing.T) {
	t.Parallel()

	system, err := pvsystem.New(
		pvsystem.WithModuleParameters(pvsystem.ModuleParameters{
			"pdc0":      220,
			"gamma_pdc": -0.0047,
		}),
		pvsystem.WithInverterParameters(cobaltM250()),
	)
	if err != nil {
		t.Fatalf("construct system: %v", err)
	}

	_, err = modelchain.New(system, desertLocation(t))
	var selection *pverr.ModelSelectionError
	if !errors.As(err, &selection) {
		t.Fatalf("want ModelSelectionError, got %v", err)
	}
	if selection.Stage != "ac" {
		t.Fatalf("stage = %q", selection.Stage)
	}
	if len(selection.Candidates) != 1 || selection.Candidates[0] != "pvwatts" {
		t.Fatalf("candidates = %v, want the voltage-free inverter model", selection.Candidates)
	}
}

func TestNew_BindFailure(t *testing.T) {
	t.Parallel()

	_, err := modelchain.New(pvwattsSystem(t), desertLocation(t), modelchain.WithDCModel("sapm"))
	if err == nil || !strings.Contains(err.Error(), `bind dc model "sapm"`) {
		t.Fatalf("want a bind failure naming the dc stage, got %v", err)
	}
	var unknown *pverr.UnknownModelError
	if errors.As(err, &unknown) {
		t.Fatal("a registered key with bad coefficients is not an unknown model")
	}
}

func TestNew_TurbidityAndReferenceIrradiance(t *testing.T) {
	t.Parallel()

	t.Run("site turbidity flows through", func(t *testing.T) {
		t.Parallel()

		chain, err := modelchain.New(desertSystem(t), desertLocation(t, location.WithTurbidity(4.2)))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		if chain.Turbidity() != 4.2 {
			t.Fatalf("turbidity = %v", chain.Turbidity())
		}
	})

	t.Run("override wins", func(t *testing.T) {
		t.Parallel()

		chain, err := modelchain.New(desertSystem(t), desertLocation(t), modelchain.WithTurbidity(5))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		if chain.Turbidity() != 5 {
			t.Fatalf("turbidity = %v", chain.Turbidity())
		}
	})

	t.Run("turbidity out of range", func(t *testing.T) {
		t.Parallel()

		_, err := modelchain.New(desertSystem(t), desertLocation(t), modelchain.WithTurbidity(0.5))
		var rangeErr *pverr.InputRangeError
		if !errors.As(err, &rangeErr) || rangeErr.Field != "turbidity" {
			t.Fatalf("want turbidity range error, got %v", err)
		}
	})

	t.Run("reference irradiance must be positive", func(t *testing.T) {
		t.Parallel()

		for _, value := range []float64{0, -100} {
			_, err := modelchain.New(desertSystem(t), desertLocation(t), modelchain.WithReferenceIrradiance(value))
			var rangeErr *pverr.InputRangeError
			if !errors.As(err, &rangeErr) || rangeErr.Field != "reference_irradiance" {
				t.Fatalf("reference %v: want range error, got %v", value, err)
			}
		}
	})
}

func TestChain_DCCapacity(t *testing.T) {
	t.Parallel()

	t.Run("sandia full curve", func(t *testing.T) {
		t.Parallel()

		chain, err := modelchain.New(desertSystem(t), desertLocation(t))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		testsupport.AssertAlmostEqual(t, "dc capacity", 219.8560439712, chain.DCCapacity(), 1e-9)
	})

	t.Run("pvwatts nameplate", func(t *testing.T) {
		t.Parallel()

		chain, err := modelchain.New(pvwattsSystem(t), desertLocation(t))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		testsupport.AssertAlmostEqual(t, "dc capacity", 4400, chain.DCCapacity(), 1e-9)
	})

	t.Run("reference irradiance feeds the estimate", func(t *testing.T) {
		t.Parallel()

		chain, err := modelchain.New(pvwattsSystem(t), desertLocation(t), modelchain.WithReferenceIrradiance(500))
		if err != nil {
			t.Fatalf("construct: %v", err)
		}
		testsupport.AssertAlmostEqual(t, "derated capacity", 2200, chain.DCCapacity(), 1e-9)
	})
}
