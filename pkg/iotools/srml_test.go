package iotools_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-pvsim/pkg/iotools"
)

func TestMapSRMLColumn(t *testing.T) {
	t.Parallel()

	cases := []struct {
		column string
		want   string
	}{
		{"1001", "ghi_1"},
		{"7324", "7324"},
		{"2001", "2001"},
		{"2017", "dni_7"},
		{"9211", "wind_speed_1"},
	}
	for _, tc := range cases {
		if got := iotools.MapSRMLColumn(tc.column); got != tc.want {
			t.Fatalf("MapSRMLColumn(%q) = %q, want %q", tc.column, got, tc.want)
		}
	}
}

func TestReadSRML_ColumnsAndIndex(t *testing.T) {
	t.Parallel()

	frame, err := iotools.ReadSRMLFile("testdata/SRML-day-EUPO1801.txt")
	if err != nil {
		t.Fatalf("ReadSRMLFile: %v", err)
	}

	for _, col := range []string{"ghi_0", "ghi_0_flag", "dni_1", "dni_1_flag", "7008", "7008_flag"} {
		if !frame.Has(col) {
			t.Fatalf("expected column %q, have %v", col, frame.Columns())
		}
	}
	if frame.Has("2018") {
		t.Fatal("year column must not survive as data")
	}

	zone, err := time.LoadLocation("Etc/GMT+8")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	times := frame.Times()
	if want := time.Date(2018, time.January, 14, 0, 0, 0, 0, zone); !times[0].Equal(want) {
		t.Fatalf("first timestamp %v, want %v", times[0], want)
	}
	if want := time.Date(2018, time.January, 14, 23, 59, 0, 0, zone); !times[len(times)-1].Equal(want) {
		t.Fatalf("last timestamp %v, want %v", times[len(times)-1], want)
	}
	// The fourth row carried the former 1200 stamp, shifted back to 11:59.
	if want := time.Date(2018, time.January, 14, 11, 59, 0, 0, zone); !times[3].Equal(want) {
		t.Fatalf("noon timestamp %v, want %v", times[3], want)
	}
}

func TestReadSRML_MasksFlaggedReadings(t *testing.T) {
	t.Parallel()

	frame, err := iotools.ReadSRMLFile("testdata/SRML-day-EUPO1801.txt")
	if err != nil {
		t.Fatalf("ReadSRMLFile: %v", err)
	}

	dni, ok := frame.Column("dni_1")
	if !ok {
		t.Fatal("expected dni_1 column")
	}
	flags, ok := frame.Column("dni_1_flag")
	if !ok {
		t.Fatal("expected dni_1_flag column")
	}
	if !math.IsNaN(dni.Value(1)) {
		t.Fatalf("expected flagged reading to be NaN, got %v", dni.Value(1))
	}
	if flags.Value(1) != 99 {
		t.Fatalf("expected flag 99, got %v", flags.Value(1))
	}
	if dni.Value(3) != 522.4 {
		t.Fatalf("expected clean reading to survive, got %v", dni.Value(3))
	}
}

func TestReadSRML_RejectsUnpairedColumns(t *testing.T) {
	t.Parallel()

	input := "DOY\t2018\t1000\t0\t2011\n14\t1\t0\t11\t0\n"
	_, err := iotools.ReadSRML(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected pairing error")
	}
	if !strings.Contains(err.Error(), "value/flag pairs") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadSRML_RequiresYearHeader(t *testing.T) {
	t.Parallel()

	input := "DOY\tYEAR\t1000\t0\n14\t1\t0\t11\n"
	_, err := iotools.ReadSRML(strings.NewReader(input))
	if err == nil {
		t.Fatal("expected year header error")
	}
	if !strings.Contains(err.Error(), "file year") {
		t.Fatalf("unexpected error: %v", err)
	}
}
