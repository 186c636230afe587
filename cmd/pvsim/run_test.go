package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pvsim/pkg/report"
	"github.com/goliatone/go-pvsim/pkg/scenario"
	"github.com/goliatone/go-pvsim/pkg/testsupport"
)

const benchScenario = `name: Bench check
notes: Nightly commissioning sweep
location:
  latitude: 32
  longitude: -111
  timezone: Etc/GMT+7
  name: Sonoran bench
system:
  name: Single-module bench
  module: Frontier_ML_220W
  inverter: Cobalt_M250_240V
chain:
  orientation_strategy: south_at_latitude_tilt
times:
  list:
    - 2016-01-01T12:00:00-07:00
    - 2016-01-01T18:00:00-07:00
`

// The archive stamps rows in Etc/GMT+8; 1200 and 1300 label interval ends,
// so the frame carries 11:59 and 12:59.
const benchSRML = "DOY\t2016\t1000\t0\t2011\t0\t3000\t0\n" +
	"1\t1200\t425.0\t11\t610.2\t11\t95.1\t11\n" +
	"1\t1300\t390.5\t11\t540.8\t11\t101.4\t11\n"

func writeScenario(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.yaml")
	if err := os.WriteFile(path, []byte(benchScenario), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestCmdRun_JSONReport(t *testing.T) {
	scPath := writeScenario(t)
	outPath := filepath.Join(filepath.Dir(scPath), "report.json")

	err := cmdRun(testsupport.Context(), []string{
		"-scenario", scPath, "-format", "json", "-out", outPath,
	})
	if err != nil {
		t.Fatalf("cmdRun: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var data report.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if data.Title != "Bench check" {
		t.Fatalf("title = %q, want the scenario name", data.Title)
	}
	if data.Site != "Sonoran bench" || data.System != "Single-module bench" {
		t.Fatalf("site/system = %q / %q", data.Site, data.System)
	}
	if !data.ClearSkyFilled {
		t.Fatal("a run without measured weather must report the clear-sky fill")
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(data.Rows))
	}
	if data.Rows[0].Time != "2016-01-01 12:00" || data.Rows[0].AC != "176.5" {
		t.Fatalf("midday row = %+v", data.Rows[0])
	}
	if data.Rows[1].AC != "0.0" {
		t.Fatalf("night row = %+v", data.Rows[1])
	}
	// Two stamps six hours apart integrate at a 6h step.
	if data.Step != "6h" || data.ACEnergyWh != "1058.9" {
		t.Fatalf("energy = %s Wh at %s step", data.ACEnergyWh, data.Step)
	}
	if data.PeakACW != "176.5" || data.PeakACTime != "2016-01-01 12:00" {
		t.Fatalf("peak = %s W at %s", data.PeakACW, data.PeakACTime)
	}
	if data.DCCapacityW != "219.9" {
		t.Fatalf("dc capacity = %s", data.DCCapacityW)
	}
}

func TestCmdRun_TextReportToFile(t *testing.T) {
	scPath := writeScenario(t)
	outPath := filepath.Join(filepath.Dir(scPath), "report.txt")

	err := cmdRun(testsupport.Context(), []string{
		"-scenario", scPath, "-out", outPath,
	})
	if err != nil {
		t.Fatalf("cmdRun: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	text := string(raw)
	if !strings.Contains(text, "Bench check") {
		t.Fatalf("report drops the title:\n%s", text)
	}
	if !strings.Contains(text, "AC energy: 1058.9 Wh (6h step)") {
		t.Fatalf("report drops the energy line:\n%s", text)
	}
}

func TestCmdRun_WeatherFileReplacesTimes(t *testing.T) {
	scPath := writeScenario(t)
	dir := filepath.Dir(scPath)
	weatherPath := filepath.Join(dir, "bench_srml.txt")
	if err := os.WriteFile(weatherPath, []byte(benchSRML), 0o644); err != nil {
		t.Fatalf("write weather: %v", err)
	}
	outPath := filepath.Join(dir, "report.json")

	err := cmdRun(testsupport.Context(), []string{
		"-scenario", scPath, "-weather", weatherPath, "-format", "json", "-out", outPath,
	})
	if err != nil {
		t.Fatalf("cmdRun: %v", err)
	}

	raw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	var data report.Data
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("decode report: %v", err)
	}

	if data.ClearSkyFilled {
		t.Fatal("measured weather must disable the clear-sky fill")
	}
	if len(data.Rows) != 2 {
		t.Fatalf("expected the archive rows, got %d", len(data.Rows))
	}
	// Archive stamps localize into the site timezone, one hour east.
	if data.Rows[0].Time != "2016-01-01 12:59" {
		t.Fatalf("first row time = %q", data.Rows[0].Time)
	}
	if data.Rows[0].GHI != "425.0" {
		t.Fatalf("first row ghi = %q, want the measured value", data.Rows[0].GHI)
	}
	if data.Rows[0].AC == "0.0" || data.Rows[0].AC == "-" {
		t.Fatalf("midday ac = %q, want output under measured irradiance", data.Rows[0].AC)
	}
	if data.Step != "1h" {
		t.Fatalf("step = %q", data.Step)
	}
}

func TestCmdRun_MissingScenario(t *testing.T) {
	t.Parallel()

	err := cmdRun(testsupport.Context(), nil)
	if err == nil || !strings.Contains(err.Error(), "-scenario is required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadWeather_UnknownFormat(t *testing.T) {
	t.Parallel()

	_, _, err := readWeather("bench.csv", "csv")
	if err == nil || !strings.Contains(err.Error(), `unknown weather format "csv"`) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReportStep(t *testing.T) {
	t.Parallel()

	base := time.Date(2016, time.January, 1, 12, 0, 0, 0, time.UTC)
	declared := &scenario.Scenario{Times: scenario.TimesConfig{Step: "2h"}}

	if got := reportStep(declared, []time.Time{base, base.Add(30 * time.Minute)}); got != 30*time.Minute {
		t.Fatalf("index spacing should win, got %v", got)
	}
	if got := reportStep(declared, []time.Time{base}); got != 2*time.Hour {
		t.Fatalf("single stamp should fall back to the declared step, got %v", got)
	}
	if got := reportStep(&scenario.Scenario{}, nil); got != time.Hour {
		t.Fatalf("expected the 1h default, got %v", got)
	}
	if got := reportStep(&scenario.Scenario{Times: scenario.TimesConfig{Step: "soon"}}, nil); got != time.Hour {
		t.Fatalf("unparseable step should fall back to 1h, got %v", got)
	}
}
