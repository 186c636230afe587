package iotools

import (
	"strings"
	"time"

	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// ToWeather extracts chain inputs from a frame produced by one of the file
// readers. For each quantity an exact column name wins; otherwise the first
// instrument-suffixed column in file order is used, e.g. "ghi_PSP" or
// "ghi_0". Flag columns are never considered. Missing quantities stay nil,
// which lets the chain fall back to its clear-sky fill.
func ToWeather(frame *timeseries.Frame) ([]time.Time, modelchain.Weather) {
	if frame == nil {
		return nil, modelchain.Weather{}
	}
	return frame.Times(), modelchain.Weather{
		GHI:       pickColumn(frame, "ghi"),
		DNI:       pickColumn(frame, "dni"),
		DHI:       pickColumn(frame, "dhi"),
		TempAir:   pickColumn(frame, "temp_air"),
		WindSpeed: pickColumn(frame, "wind_speed"),
	}
}

func pickColumn(frame *timeseries.Frame, name string) []float64 {
	if series, ok := frame.Column(name); ok {
		return series.Values()
	}
	for _, col := range frame.Columns() {
		if !strings.HasPrefix(col, name+"_") {
			continue
		}
		if strings.HasSuffix(col, "_flag") {
			continue
		}
		series, _ := frame.Column(col)
		return series.Values()
	}
	return nil
}
