package iotools_test

import (
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pvsim/pkg/iotools"
)

func TestMapMIDCColumn(t *testing.T) {
	t.Parallel()

	cases := []struct {
		field string
		want  string
	}{
		{"Temperature @ 2m [deg C]", "temp_air_@_2m"},
		{"Global PSP [W/m^2]", "ghi_PSP"},
		{"Temperature @ 50m [deg C]", "temp_air_@_50m"},
		{"Other Variable [units]", "Other Variable [units]"},
	}
	for _, tc := range cases {
		if got := iotools.MapMIDCColumn(tc.field); got != tc.want {
			t.Fatalf("MapMIDCColumn(%q) = %q, want %q", tc.field, got, tc.want)
		}
	}
}

func TestReadMIDC_ColumnsAndIndex(t *testing.T) {
	t.Parallel()

	frame, err := iotools.ReadMIDCFile("testdata/midc_20181014.txt")
	if err != nil {
		t.Fatalf("ReadMIDCFile: %v", err)
	}

	for _, col := range []string{"ghi_PSP", "dni_NIP", "dhi_PSP", "temp_air_@_2m", "temp_air_@_50m"} {
		if !frame.Has(col) {
			t.Fatalf("expected column %q, have %v", col, frame.Columns())
		}
	}
	if !frame.Has("Avg Wind Speed @ 10m [m/s]") {
		t.Fatal("unmapped fields must keep their original label")
	}

	mst, err := time.LoadLocation("MST")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	times := frame.Times()
	if want := time.Date(2018, time.October, 14, 0, 0, 0, 0, mst); !times[0].Equal(want) {
		t.Fatalf("first timestamp %v, want %v", times[0], want)
	}
	if want := time.Date(2018, time.October, 14, 23, 59, 0, 0, mst); !times[len(times)-1].Equal(want) {
		t.Fatalf("last timestamp %v, want %v", times[len(times)-1], want)
	}

	ghi, _ := frame.Column("ghi_PSP")
	if ghi.Value(2) != 727.9 {
		t.Fatalf("noon ghi = %v, want 727.9", ghi.Value(2))
	}
}

func TestReadMIDC_MapsProblemZones(t *testing.T) {
	t.Parallel()

	input := "DATE (MM/DD/YYYY),PST,Global PSP [W/m^2]\n10/14/2018,0:00,-1.2\n"
	frame, err := iotools.ReadMIDC(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadMIDC: %v", err)
	}

	_, offset := frame.Times()[0].Zone()
	if offset != -8*3600 {
		t.Fatalf("PST must localize to a fixed -8h zone, got offset %d", offset)
	}
}

func TestReadMIDC_RequiresDateColumn(t *testing.T) {
	t.Parallel()

	input := "Date,MST,Global PSP [W/m^2]\n10/14/2018,0:00,-1.2\n"
	_, err := iotools.ReadMIDC(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected date column error")
	}
	if !strings.Contains(err.Error(), "DATE (MM/DD/YYYY)") {
		t.Fatalf("unexpected error: %v", err)
	}
}
