package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-pvsim/pkg/iotools"
	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/moduledb"
	"github.com/goliatone/go-pvsim/pkg/report"
	"github.com/goliatone/go-pvsim/pkg/scenario"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

func cmdRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	scenarioPath := fs.String("scenario", "", "scenario file (required)")
	weatherPath := fs.String("weather", "", "measured weather file; its timestamps replace the scenario times")
	weatherFormat := fs.String("weather-format", "srml", "weather file format: srml or midc")
	format := fs.String("format", "text", "report format: text, html or json")
	outPath := fs.String("out", "", "write the report to this path instead of stdout")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*verbose)

	if *scenarioPath == "" {
		return fmt.Errorf("run: -scenario is required")
	}
	reportFormat, err := report.ParseFormat(*format)
	if err != nil {
		return err
	}

	sc, err := scenario.LoadFile(*scenarioPath)
	if err != nil {
		return err
	}
	db, err := moduledb.Default()
	if err != nil {
		return err
	}
	built, err := sc.Build(db)
	if err != nil {
		return err
	}
	chain, err := built.Chain()
	if err != nil {
		return err
	}
	logger.Debug().
		Str("scenario", sc.Name).
		Float64("dc_capacity", chain.DCCapacity()).
		Msg("chain constructed")

	times, weather := built.Times, modelchain.Weather{}
	if *weatherPath != "" {
		times, weather, err = readWeather(*weatherPath, *weatherFormat)
		if err != nil {
			return err
		}
		logger.Debug().Str("weather", *weatherPath).Int("points", len(times)).Msg("weather loaded")
	}

	res, err := chain.Run(ctx, times, weather)
	if err != nil {
		return err
	}
	logger.Debug().
		Int("points", res.Len()).
		Bool("clear_sky", res.ClearSkyFilled).
		Msg("run finished")

	opts := []report.BuildOption{report.WithNotes(sc.Notes)}
	if sc.Name != "" {
		opts = append(opts, report.WithTitle(sc.Name))
	}
	data := report.Build(chain, res, reportStep(sc, times), opts...)
	out, err := report.Render(data, reportFormat)
	if err != nil {
		return err
	}

	if *outPath != "" {
		if err := os.WriteFile(*outPath, []byte(out), 0o644); err != nil {
			return fmt.Errorf("run: write report: %w", err)
		}
		logger.Info().Str("path", *outPath).Msg("report written")
		return nil
	}
	_, err = fmt.Fprint(os.Stdout, out)
	return err
}

func readWeather(path, format string) ([]time.Time, modelchain.Weather, error) {
	var (
		frame *timeseries.Frame
		err   error
	)
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "srml":
		frame, err = iotools.ReadSRMLFile(path)
	case "midc":
		frame, err = iotools.ReadMIDCFile(path)
	default:
		return nil, modelchain.Weather{}, fmt.Errorf("run: unknown weather format %q (want srml or midc)", format)
	}
	if err != nil {
		return nil, modelchain.Weather{}, err
	}
	times, weather := iotools.ToWeather(frame)
	return times, weather, nil
}

// reportStep prefers the actual spacing of the run index and falls back to
// the declared scenario step.
func reportStep(sc *scenario.Scenario, times []time.Time) time.Duration {
	if len(times) >= 2 {
		if d := times[1].Sub(times[0]); d > 0 {
			return d
		}
	}
	if sc.Times.Step != "" {
		if d, err := time.ParseDuration(sc.Times.Step); err == nil && d > 0 {
			return d
		}
	}
	return time.Hour
}
