package iotools_test

import (
	"math"
	"testing"
	"time"

	"github.com/goliatone/go-pvsim/pkg/iotools"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

func TestToWeather_PicksInstrumentColumns(t *testing.T) {
	t.Parallel()

	frame, err := iotools.ReadSRMLFile("testdata/SRML-day-EUPO1801.txt")
	if err != nil {
		t.Fatalf("ReadSRMLFile: %v", err)
	}

	times, weather := iotools.ToWeather(frame)
	if len(times) != 5 {
		t.Fatalf("expected 5 timestamps, got %d", len(times))
	}
	if weather.GHI == nil || weather.DNI == nil || weather.DHI == nil || weather.TempAir == nil {
		t.Fatal("expected ghi, dni, dhi and temp_air to be picked up")
	}
	if weather.WindSpeed != nil {
		t.Fatal("fixture has no wind column, WindSpeed must stay nil")
	}
	if weather.GHI[3] != 412.5 {
		t.Fatalf("ghi[3] = %v, want 412.5", weather.GHI[3])
	}
	if !math.IsNaN(weather.DNI[1]) {
		t.Fatalf("masked reading must flow through as NaN, got %v", weather.DNI[1])
	}
}

func TestToWeather_ExactNameWins(t *testing.T) {
	t.Parallel()

	times := []time.Time{time.Date(2016, time.January, 1, 12, 0, 0, 0, time.UTC)}
	frame := timeseries.NewFrame(times)
	if err := frame.Add("ghi_PSP", []float64{100}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := frame.Add("ghi", []float64{200}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	_, weather := iotools.ToWeather(frame)
	if weather.GHI[0] != 200 {
		t.Fatalf("exact column must win over instrument columns, got %v", weather.GHI[0])
	}
}

func TestToWeather_NilFrame(t *testing.T) {
	t.Parallel()

	times, weather := iotools.ToWeather(nil)
	if times != nil {
		t.Fatal("expected nil times")
	}
	if weather.GHI != nil || weather.DNI != nil || weather.DHI != nil {
		t.Fatal("expected empty weather")
	}
}
