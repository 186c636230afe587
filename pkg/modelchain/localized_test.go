package modelchain_test

import (
	"testing"

	"github.com/goliatone/go-pvsim/pkg/modelchain"
)

func TestLocalized(t *testing.T) {
	t.Parallel()

	system := desertSystem(t)
	loc := desertLocation(t)

	if _, err := modelchain.NewLocalized(nil, loc); err == nil {
		t.Fatal("nil system should not pair")
	}
	if _, err := modelchain.NewLocalized(system, nil); err == nil {
		t.Fatal("nil location should not pair")
	}

	pair, err := modelchain.NewLocalized(system, loc)
	if err != nil {
		t.Fatalf("pair: %v", err)
	}

	chain, err := pair.Chain(modelchain.WithOrientationStrategy(modelchain.StrategyFlat))
	if err != nil {
		t.Fatalf("chain: %v", err)
	}
	if chain.System() != system || chain.Location() != loc {
		t.Fatal("chain should wrap the pair's members")
	}

	times := desertTimes(t)
	positions, err := pair.SolarPosition(times, "")
	if err != nil {
		t.Fatalf("solar position: %v", err)
	}
	if len(positions) != len(times) {
		t.Fatalf("positions = %d, want %d", len(positions), len(times))
	}

	if pair.AOI(positions[0]) != system.AOI(positions[0]) {
		t.Fatal("aoi should delegate to the system")
	}
	if pair.Orientation(positions[0]) != system.Orientation(positions[0]) {
		t.Fatal("orientation should delegate to the system")
	}

	sky, err := pair.ClearSky(times, "")
	if err != nil {
		t.Fatalf("clear sky: %v", err)
	}
	for _, name := range []string{"ghi", "dni", "dhi"} {
		if !sky.Has(name) {
			t.Errorf("clear sky frame should carry %q", name)
		}
	}
}
