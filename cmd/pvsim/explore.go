package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pvsim/components/timezones"
	"github.com/goliatone/go-pvsim/internal/prompt"
	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/moduledb"
	"github.com/goliatone/go-pvsim/pkg/report"
	"github.com/goliatone/go-pvsim/pkg/scenario"
)

func cmdExplore(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("explore", flag.ContinueOnError)
	savePath := fs.String("save", "", "write the assembled scenario to this path")
	verbose := fs.Bool("verbose", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	logger := newLogger(*verbose)

	db, err := moduledb.Default()
	if err != nil {
		return err
	}
	catalog, err := timezones.Default()
	if err != nil {
		return err
	}
	driver := prompt.NewSurveyDriver()

	sc, err := buildScenario(ctx, driver, db, catalog)
	if err != nil {
		return err
	}

	if *savePath != "" {
		doc, err := yaml.Marshal(sc)
		if err != nil {
			return fmt.Errorf("explore: marshal scenario: %w", err)
		}
		if err := os.WriteFile(*savePath, doc, 0o644); err != nil {
			return fmt.Errorf("explore: write scenario: %w", err)
		}
		logger.Info().Str("path", *savePath).Msg("scenario saved")
	}

	runNow, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Run this scenario now?",
		Default: true,
	})
	if err != nil {
		return err
	}
	if !runNow {
		return nil
	}

	built, err := sc.Build(db)
	if err != nil {
		return err
	}
	chain, err := built.Chain()
	if err != nil {
		return err
	}
	res, err := chain.Run(ctx, built.Times, modelchain.Weather{})
	if err != nil {
		return err
	}

	var opts []report.BuildOption
	if sc.Name != "" {
		opts = append(opts, report.WithTitle(sc.Name))
	}
	data := report.Build(chain, res, reportStep(sc, built.Times), opts...)
	out, err := report.Render(data, report.FormatText)
	if err != nil {
		return err
	}
	return driver.Info(ctx, out)
}

// buildScenario walks the interview: site, hardware, orientation, day. The
// returned scenario is validated and ready to build.
func buildScenario(ctx context.Context, driver prompt.Driver, db *moduledb.Database, catalog *timezones.Catalog) (*scenario.Scenario, error) {
	name, err := driver.Input(ctx, prompt.InputConfig{
		Message: "Site name",
		Default: "Exploration site",
	})
	if err != nil {
		return nil, err
	}
	latitude, err := floatInput(ctx, driver, "Latitude (degrees north)", "33.4", -90, 90)
	if err != nil {
		return nil, err
	}
	longitude, err := floatInput(ctx, driver, "Longitude (degrees east)", "-111.9", -180, 180)
	if err != nil {
		return nil, err
	}
	tz, err := driver.Input(ctx, prompt.InputConfig{
		Message:  "Timezone",
		Default:  "Etc/GMT+7",
		Help:     "IANA zone name; type a prefix for suggestions",
		Validate: validTimezone,
		Suggest: func(partial string) []string {
			return catalog.Search(partial, 10)
		},
	})
	if err != nil {
		return nil, err
	}

	moduleIdx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:  "Module",
		Options:  db.ModuleNames(),
		PageSize: 10,
	})
	if err != nil {
		return nil, err
	}
	moduleNames := db.ModuleNames()
	if moduleIdx < 0 || moduleIdx >= len(moduleNames) {
		return nil, fmt.Errorf("explore: module selection out of range")
	}
	inverterIdx, err := driver.Select(ctx, prompt.SelectConfig{
		Message:  "Inverter",
		Options:  db.InverterNames(),
		PageSize: 10,
	})
	if err != nil {
		return nil, err
	}
	inverterNames := db.InverterNames()
	if inverterIdx < 0 || inverterIdx >= len(inverterNames) {
		return nil, fmt.Errorf("explore: inverter selection out of range")
	}

	latTilt, err := driver.Confirm(ctx, prompt.ConfirmConfig{
		Message: "Face the array south at latitude tilt?",
		Default: true,
	})
	if err != nil {
		return nil, err
	}
	var tilt, azimuth float64
	if !latTilt {
		tilt, err = floatInput(ctx, driver, "Surface tilt (degrees from horizontal)", "20", 0, 90)
		if err != nil {
			return nil, err
		}
		azimuth, err = floatInput(ctx, driver, "Surface azimuth (degrees, 180 = south)", "180", 0, 360)
		if err != nil {
			return nil, err
		}
	}

	day, err := driver.Input(ctx, prompt.InputConfig{
		Message:  "Day to simulate (YYYY-MM-DD)",
		Default:  "2020-06-21",
		Validate: validDay,
	})
	if err != nil {
		return nil, err
	}

	sc := &scenario.Scenario{
		Name: name,
		Location: scenario.LocationConfig{
			Latitude:  latitude,
			Longitude: longitude,
			Timezone:  tz,
			Name:      name,
		},
		System: scenario.SystemConfig{
			Module:   moduleNames[moduleIdx],
			Inverter: inverterNames[inverterIdx],
		},
		Times: scenario.TimesConfig{
			Start: day + " 00:00",
			End:   day + " 23:00",
			Step:  "1h",
		},
	}
	if latTilt {
		sc.Chain.OrientationStrategy = modelchain.StrategySouthAtLatitudeTilt
	} else {
		sc.System.SurfaceTilt = tilt
		sc.System.SurfaceAzimuth = azimuth
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func floatInput(ctx context.Context, driver prompt.Driver, message, def string, lo, hi float64) (float64, error) {
	raw, err := driver.Input(ctx, prompt.InputConfig{
		Message: message,
		Default: def,
		Validate: func(answer string) error {
			v, err := strconv.ParseFloat(strings.TrimSpace(answer), 64)
			if err != nil {
				return fmt.Errorf("enter a number")
			}
			if v < lo || v > hi {
				return fmt.Errorf("enter a value between %g and %g", lo, hi)
			}
			return nil
		},
	})
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func validTimezone(answer string) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return fmt.Errorf("a timezone is required")
	}
	if _, err := time.LoadLocation(answer); err != nil {
		return fmt.Errorf("unknown timezone %q", answer)
	}
	return nil
}

func validDay(answer string) error {
	if _, err := time.Parse("2006-01-02", strings.TrimSpace(answer)); err != nil {
		return fmt.Errorf("enter a day as YYYY-MM-DD")
	}
	return nil
}
