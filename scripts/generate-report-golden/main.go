// Regenerates the report golden files from the desert bench run. Run from
// the repository root:
//
//	go run ./scripts/generate-report-golden
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goliatone/go-pvsim/pkg/location"
	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/moduledb"
	"github.com/goliatone/go-pvsim/pkg/pvsystem"
	"github.com/goliatone/go-pvsim/pkg/report"
)

const (
	textGoldenPath = "pkg/report/testdata/report_text.golden"
	htmlGoldenPath = "pkg/report/testdata/report_html.golden"
)

func main() {
	ctx := context.Background()

	data, err := snapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build report data: %v\n", err)
		os.Exit(1)
	}

	if err := render(data, report.FormatText, textGoldenPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write text golden: %v\n", err)
		os.Exit(1)
	}
	if err := render(data, report.FormatHTML, htmlGoldenPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write html golden: %v\n", err)
		os.Exit(1)
	}
}

// snapshot reruns the desert bench fixture the report tests pin: database
// hardware, latitude tilt, a clear winter noon and a post-sunset stamp.
func snapshot(ctx context.Context) (report.Data, error) {
	db, err := moduledb.Default()
	if err != nil {
		return report.Data{}, err
	}
	module, ok := db.Module("Frontier_ML_220W")
	if !ok {
		return report.Data{}, fmt.Errorf("module Frontier_ML_220W missing from the embedded database")
	}
	inverter, ok := db.Inverter("Cobalt_M250_240V")
	if !ok {
		return report.Data{}, fmt.Errorf("inverter Cobalt_M250_240V missing from the embedded database")
	}

	system, err := pvsystem.New(
		pvsystem.WithName("Frontier 220 array"),
		pvsystem.WithModuleParameters(module.Parameters),
		pvsystem.WithInverterParameters(inverter.Parameters),
	)
	if err != nil {
		return report.Data{}, err
	}
	loc, err := location.New(32, -111,
		location.WithName("Desert Rooftop"),
		location.WithTimezone("Etc/GMT+7"),
	)
	if err != nil {
		return report.Data{}, err
	}
	chain, err := modelchain.New(system, loc,
		modelchain.WithOrientationStrategy(modelchain.StrategySouthAtLatitudeTilt))
	if err != nil {
		return report.Data{}, err
	}

	times := []time.Time{
		time.Date(2016, time.January, 1, 12, 0, 0, 0, loc.Timezone()),
		time.Date(2016, time.January, 1, 18, 0, 0, 0, loc.Timezone()),
	}
	res, err := chain.Run(ctx, times, modelchain.Weather{})
	if err != nil {
		return report.Data{}, err
	}

	return report.Build(chain, res, time.Hour, report.WithNotes("Clear January afternoon.")), nil
}

func render(data report.Data, format report.Format, path string) error {
	out, err := report.Render(data, format)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote %s (%d bytes)\n", path, len(out))
	return nil
}
