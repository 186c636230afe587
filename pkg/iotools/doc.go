// Package iotools reads measured weather files into frames a chain run can
// consume. Supported formats are University of Oregon SRML archives (tab
// separated, one minute resolution) and NREL MIDC daily exports (comma
// separated).
//
// Readers return a timeseries.Frame with a localized index and standard
// column names; ToWeather then extracts the columns a chain run needs.
// Instrument numbers survive as name suffixes, so a station with two
// pyranometers yields e.g. "ghi_1" and "ghi_2".
package iotools
