package iotools

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// srmlVariableMap maps SRML data element numbers to standard names. For most
// elements the first three digits name the quantity and the fourth is the
// instrument number. Spectral elements (7xxx) use all four digits.
var srmlVariableMap = map[string]string{
	"100": "ghi",
	"201": "dni",
	"300": "dhi",
	"920": "wind_dir",
	"921": "wind_speed",
	"930": "temp_air",
	"931": "temp_dew",
	"933": "relative_humidity",
	"937": "temp_cell",
}

// The archive is stamped in local standard time year round.
const srmlZone = "Etc/GMT+8"

// srmlBadDataFlag marks bad or missing readings in the archive flag columns.
const srmlBadDataFlag = 99

// ReadSRMLFile reads the named SRML archive file.
func ReadSRMLFile(path string) (*timeseries.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iotools: open srml file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadSRML(f)
}

// ReadSRML reads a University of Oregon SRML archive into a frame.
//
// The first column holds the day of year; the second is headed by the file's
// year and holds times as integers 1-2400. Each reading labels the end of
// its interval, so the index is shifted back one minute: a returned row
// covers the span from its own timestamp to the next row's. Element columns
// are renamed per srmlVariableMap with the instrument digit as suffix, the
// flag column following each element becomes "<name>_flag", and readings
// flagged 99 are masked to NaN.
func ReadSRML(r io.Reader) (*timeseries.Frame, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	// TrimLeadingSpace would swallow the tab delimiter of empty cells;
	// parseCell trims padding instead.

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("iotools: read srml data: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("iotools: srml file has no data rows")
	}

	header := records[0]
	if len(header) < 4 {
		return nil, fmt.Errorf("iotools: srml header needs day, time and at least one element column")
	}
	if (len(header)-2)%2 != 0 {
		return nil, fmt.Errorf("iotools: srml element columns must come in value/flag pairs, got %d data columns", len(header)-2)
	}

	year, err := strconv.Atoi(strings.TrimSpace(header[1]))
	if err != nil {
		return nil, fmt.Errorf("iotools: srml time column must be headed by the file year: %w", err)
	}
	zone, err := time.LoadLocation(srmlZone)
	if err != nil {
		return nil, fmt.Errorf("iotools: load zone %s: %w", srmlZone, err)
	}

	rows := records[1:]
	times := make([]time.Time, len(rows))
	for i, row := range rows {
		doy, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("iotools: srml row %d: day of year: %w", i+1, err)
		}
		raw, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			return nil, fmt.Errorf("iotools: srml row %d: time: %w", i+1, err)
		}
		// Shift interval-end labels back one minute, fixing up the minutes
		// at each former hour mark (1200 becomes 1159, 2400 becomes 2359).
		raw--
		if raw%100 == 99 {
			raw -= 40
		}
		times[i] = time.Date(year, time.January, 1, raw/100, raw%100, 0, 0, zone).AddDate(0, 0, doy-1)
	}

	frame := timeseries.NewFrame(times)
	for col := 2; col < len(header); col += 2 {
		name := MapSRMLColumn(strings.TrimSpace(header[col]))
		values := make([]float64, len(rows))
		flags := make([]float64, len(rows))
		for i, row := range rows {
			value, err := parseCell(row[col])
			if err != nil {
				return nil, fmt.Errorf("iotools: srml row %d column %q: %w", i+1, name, err)
			}
			flag, err := parseCell(row[col+1])
			if err != nil {
				return nil, fmt.Errorf("iotools: srml row %d column %q flag: %w", i+1, name, err)
			}
			if flag == srmlBadDataFlag {
				value = math.NaN()
			}
			values[i] = value
			flags[i] = flag
		}
		if err := frame.Add(name, values); err != nil {
			return nil, fmt.Errorf("iotools: srml: %w", err)
		}
		if err := frame.Add(name+"_flag", flags); err != nil {
			return nil, fmt.Errorf("iotools: srml: %w", err)
		}
	}
	return frame, nil
}

// MapSRMLColumn maps an SRML data element number to its standard name.
// Unknown elements keep their original label.
func MapSRMLColumn(col string) string {
	if strings.HasPrefix(col, "7") {
		// Spectral data: the full element number names the variable.
		if name, ok := srmlVariableMap[col]; ok {
			return name
		}
		return col
	}
	if len(col) < 4 {
		return col
	}
	name, ok := srmlVariableMap[col[:3]]
	if !ok {
		return col
	}
	return name + "_" + col[3:]
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}
