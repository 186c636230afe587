package iotools

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// midcVariableMap maps leading MIDC field-name fragments to standard names,
// checked in order. The instrument fragment between prefix and unit bracket
// is appended to the mapped name with spaces turned into underscores, so
// "Global PSP [W/m^2]" becomes "ghi_PSP".
var midcVariableMap = []struct {
	prefix string
	name   string
}{
	{"Direct", "dni"},
	{"Global", "ghi"},
	{"Diffuse", "dhi"},
	{"Airmass", "airmass"},
	{"Azimuth Angle", "solar_azimuth"},
	{"Zenith Angle", "solar_zenith"},
	{"Air Temperature", "temp_air"},
	{"Temperature", "temp_air"},
	{"Dew Point Temp", "temp_dew"},
	{"Relative Humidity", "relative_humidity"},
}

// midcDateColumn is the fixed label of the date column in MIDC exports.
const midcDateColumn = "DATE (MM/DD/YYYY)"

// midcZoneMap resolves station timezone labels that tzdata does not carry.
var midcZoneMap = map[string]string{
	"PST": "Etc/GMT+8",
	"CST": "Etc/GMT+6",
}

// ReadMIDCFile reads the named NREL MIDC export.
func ReadMIDCFile(path string) (*timeseries.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iotools: open midc file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadMIDC(f)
}

// ReadMIDC reads an NREL MIDC daily export into a frame.
//
// The first column must be "DATE (MM/DD/YYYY)". The second column holds
// HH:MM times and is headed by the station timezone label, which decides the
// index zone. Variable columns are renamed per midcVariableMap; fields that
// match no known fragment keep their original label.
func ReadMIDC(r io.Reader) (*timeseries.Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("iotools: read midc data: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("iotools: midc file has no data rows")
	}

	header := records[0]
	if len(header) < 3 {
		return nil, fmt.Errorf("iotools: midc header needs date, time and at least one variable column")
	}
	if header[0] != midcDateColumn {
		return nil, fmt.Errorf("iotools: midc file must start with a %q column, got %q", midcDateColumn, header[0])
	}

	zoneLabel := strings.TrimSpace(header[1])
	zoneName := zoneLabel
	if mapped, ok := midcZoneMap[zoneLabel]; ok {
		zoneName = mapped
	}
	zone, err := time.LoadLocation(zoneName)
	if err != nil {
		return nil, fmt.Errorf("iotools: midc timezone %q: %w", zoneLabel, err)
	}

	rows := records[1:]
	times := make([]time.Time, len(rows))
	for i, row := range rows {
		stamp := strings.TrimSpace(row[0]) + " " + strings.TrimSpace(row[1])
		t, err := time.ParseInLocation("1/2/2006 15:04", stamp, zone)
		if err != nil {
			return nil, fmt.Errorf("iotools: midc row %d: %w", i+1, err)
		}
		times[i] = t
	}

	frame := timeseries.NewFrame(times)
	for col := 2; col < len(header); col++ {
		name := MapMIDCColumn(strings.TrimSpace(header[col]))
		values := make([]float64, len(rows))
		for i, row := range rows {
			value, err := parseCell(row[col])
			if err != nil {
				return nil, fmt.Errorf("iotools: midc row %d column %q: %w", i+1, name, err)
			}
			values[i] = value
		}
		if err := frame.Add(name, values); err != nil {
			return nil, fmt.Errorf("iotools: midc: %w", err)
		}
	}
	return frame, nil
}

// MapMIDCColumn maps an MIDC field name to its standard name. Fields that
// match no known fragment keep their original label.
func MapMIDCColumn(field string) string {
	for _, entry := range midcVariableMap {
		if !strings.HasPrefix(field, entry.prefix) {
			continue
		}
		instrument := field[len(entry.prefix):]
		if i := strings.Index(instrument, "["); i >= 0 {
			instrument = instrument[:i]
		}
		instrument = strings.TrimRight(instrument, " ")
		return entry.name + strings.ReplaceAll(instrument, " ", "_")
	}
	return field
}
