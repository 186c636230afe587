package report

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/goliatone/go-pvsim/pkg/modelchain"
	"github.com/goliatone/go-pvsim/pkg/models"
	"github.com/goliatone/go-pvsim/pkg/timeseries"
)

// Format selects the report output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatJSON Format = "json"
)

// ParseFormat maps a user-supplied format name onto a Format. The empty
// string means text.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("report: unknown format %q (want text, html or json)", name)
}

// DefaultTitle heads reports that do not override it.
const DefaultTitle = "PV simulation report"

const timeLayout = "2006-01-02 15:04"

// ModelLine is one stage/key pair of the configuration echo, in pipeline
// order.
type ModelLine struct {
	Stage string `json:"stage"`
	Key   string `json:"key"`
}

// Row is one timestamp of the run table. Values are display strings, one
// decimal, already in the site timezone.
type Row struct {
	Time            string `json:"time"`
	GHI             string `json:"ghi"`
	POAGlobal       string `json:"poa_global"`
	CellTemperature string `json:"cell_temperature"`
	PMP             string `json:"p_mp"`
	AC              string `json:"ac"`
}

// Data is the fully prepared context of one report. Every field is ready
// for direct interpolation: numbers are formatted and free text carries no
// markup.
type Data struct {
	Title          string      `json:"title"`
	Site           string      `json:"site"`
	System         string      `json:"system"`
	Notes          string      `json:"notes,omitempty"`
	Timezone       string      `json:"timezone"`
	Step           string      `json:"step"`
	ClearSkyFilled bool        `json:"clear_sky_filled"`
	Models         []ModelLine `json:"models"`
	Rows           []Row       `json:"rows"`
	ACEnergyWh     string      `json:"ac_energy_wh"`
	PeakACW        string      `json:"peak_ac_w"`
	PeakACTime     string      `json:"peak_ac_time,omitempty"`
	DCCapacityW    string      `json:"dc_capacity_w"`
}

// BuildOption customizes report data before the free-text fields are
// sanitized.
type BuildOption func(*Data)

// WithTitle overrides the default report title.
func WithTitle(title string) BuildOption {
	return func(d *Data) { d.Title = title }
}

// WithNotes attaches free-form run notes to the report.
func WithNotes(notes string) BuildOption {
	return func(d *Data) { d.Notes = notes }
}

// Build assembles the report data for a finished run. step is the sampling
// interval the energy integration assumes.
func Build(chain *modelchain.Chain, res *modelchain.Results, step time.Duration, opts ...BuildOption) Data {
	loc := chain.Location()

	d := Data{
		Title:          DefaultTitle,
		Site:           loc.Name(),
		System:         chain.System().Name(),
		Timezone:       loc.TimezoneName(),
		Step:           formatStep(step),
		ClearSkyFilled: res.ClearSkyFilled,
		Models:         modelLines(chain.Models()),
		Rows:           buildRows(res),
		ACEnergyWh:     formatValue(res.ACEnergy(step)),
		DCCapacityW:    formatValue(chain.DCCapacity()),
	}
	if d.Site == "" {
		d.Site = fmt.Sprintf("%.4f, %.4f", loc.Latitude(), loc.Longitude())
	}
	if d.System == "" {
		d.System = "unnamed system"
	}
	if res.AC.IsEmpty() {
		d.PeakACW = formatValue(0)
	} else {
		peak, at := res.AC.Max()
		d.PeakACW = formatValue(peak)
		if at >= 0 {
			d.PeakACTime = res.AC.Time(at).Format(timeLayout)
		}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(&d)
		}
	}

	d.Title = sanitizeText(d.Title)
	d.Site = sanitizeText(d.Site)
	d.System = sanitizeText(d.System)
	d.Notes = sanitizeText(d.Notes)
	if d.Title == "" {
		d.Title = DefaultTitle
	}
	return d
}

// Render encodes the data in the requested format. Text and HTML go through
// the embedded templates; JSON is the data model itself, indented.
func Render(data Data, format Format) (string, error) {
	switch format {
	case FormatText:
		return defaultEngine().Render(textTemplate, data)
	case FormatHTML:
		return defaultEngine().Render(htmlTemplate, data)
	case FormatJSON:
		payload, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return "", fmt.Errorf("report: encode json: %w", err)
		}
		return string(payload) + "\n", nil
	}
	return "", fmt.Errorf("report: unknown format %q (want text, html or json)", string(format))
}

func modelLines(keys modelchain.ModelKeys) []ModelLine {
	all := []ModelLine{
		{Stage: string(models.StageSolarPosition), Key: keys.SolarPosition},
		{Stage: string(models.StageAirmass), Key: keys.Airmass},
		{Stage: string(models.StageClearSky), Key: keys.ClearSky},
		{Stage: string(models.StageTransposition), Key: keys.Transposition},
		{Stage: string(models.StageAOI), Key: keys.AOI},
		{Stage: string(models.StageSpectral), Key: keys.Spectral},
		{Stage: string(models.StageCellTemp), Key: keys.CellTemp},
		{Stage: string(models.StageDC), Key: keys.DC},
		{Stage: string(models.StageAC), Key: keys.AC},
		{Stage: string(models.StageLosses), Key: keys.Losses},
	}
	out := make([]ModelLine, 0, len(all))
	for _, line := range all {
		if line.Key == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

func buildRows(res *modelchain.Results) []Row {
	times := res.Times()
	rows := make([]Row, 0, len(times))
	for i, ts := range times {
		rows = append(rows, Row{
			Time:            ts.Format(timeLayout),
			GHI:             cell(res.GHI, i),
			POAGlobal:       cell(res.POAGlobal, i),
			CellTemperature: cell(res.CellTemperature, i),
			PMP:             cell(res.DC.PMP, i),
			AC:              cell(res.AC, i),
		})
	}
	return rows
}

// cell formats one reading; stages that never ran (interrupted runs) leave
// their series empty and show as a dash.
func cell(s timeseries.Series, i int) string {
	if s.IsEmpty() {
		return "-"
	}
	return formatValue(s.Value(i))
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	s := fmt.Sprintf("%.1f", v)
	// Night tare comes back as negative zero; fold it into plain zero.
	if s == "-0.0" {
		return "0.0"
	}
	return s
}

// formatStep renders a duration without the zero-valued tail Go's stringer
// produces ("1h0m0s" reads as "1h").
func formatStep(step time.Duration) string {
	s := step.String()
	if strings.HasSuffix(s, "m0s") {
		s = s[:len(s)-2]
	}
	if strings.HasSuffix(s, "h0m") {
		s = s[:len(s)-2]
	}
	return s
}
