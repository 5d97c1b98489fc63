// Package report renders a simulation run as a standalone HTML page with
// inline SVG charts: front/back irradiance, DC power, and hourly energy.
package report

import (
	"fmt"
	"html/template"
	"os"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/solarsim/bifacialsim/internal/simulation"
)

const chartWidth = 900
const chartHeight = 260
const chartPad = 45

type chartData struct {
	Title  string
	Series []series
	Bars   []bar
	YLabel string
	YMax   float64
}

type series struct {
	Label  string
	Color  string
	Points string // SVG polyline points
}

type bar struct {
	X, Y, W, H float64
	Label      string
}

type pageData struct {
	RunID       string
	Date        string
	Sunrise     string
	Sunset      string
	TotalWh     float64
	TotalKWh    float64
	FrontWh     float64
	BackWh      float64
	PeakPowerW  float64
	MeanPowerW  float64
	MeanPOA     float64
	Samples     int
	StepMinutes int
	Charts      []chartData
	Width       int
	Height      int
	Pad         int
	Generated   string
}

// Generate renders the run to HTML.
func Generate(res *simulation.Result) ([]byte, error) {
	if len(res.Readings) == 0 {
		return nil, fmt.Errorf("run %s has no readings to report", res.RunID)
	}

	front := make([]float64, len(res.Readings))
	back := make([]float64, len(res.Readings))
	pFront := make([]float64, len(res.Readings))
	pBack := make([]float64, len(res.Readings))
	pTotal := make([]float64, len(res.Readings))
	for i, r := range res.Readings {
		front[i] = r.POAFront
		back[i] = r.POABack
		pFront[i] = r.PowerFront
		pBack[i] = r.PowerBack
		pTotal[i] = r.PowerTotal
	}

	irrMax := seriesMax(front, back)
	powMax := seriesMax(pTotal)

	charts := []chartData{
		{
			Title:  "Plane-of-array irradiance",
			YLabel: "W/m²",
			YMax:   irrMax,
			Series: []series{
				{Label: "front", Color: "#d62728", Points: polyline(front, irrMax)},
				{Label: "back", Color: "#1f77b4", Points: polyline(back, irrMax)},
			},
		},
		{
			Title:  "DC power",
			YLabel: "W",
			YMax:   powMax,
			Series: []series{
				{Label: "front", Color: "#d62728", Points: polyline(pFront, powMax)},
				{Label: "back", Color: "#1f77b4", Points: polyline(pBack, powMax)},
				{Label: "total", Color: "#2ca02c", Points: polyline(pTotal, powMax)},
			},
		},
		hourlyChart(res),
	}

	summary := res.Summary
	data := pageData{
		RunID:       res.RunID,
		Date:        res.Times[0].Format("2006-01-02"),
		Sunrise:     summary.Sunrise,
		Sunset:      summary.Sunset,
		TotalWh:     summary.TotalWh,
		TotalKWh:    summary.TotalWh / 1000,
		FrontWh:     summary.FrontWh,
		BackWh:      summary.BackWh,
		PeakPowerW:  summary.PeakPowerW,
		MeanPowerW:  summary.MeanPowerW,
		MeanPOA:     stat.Mean(front, nil),
		Samples:     summary.Samples,
		StepMinutes: summary.StepSeconds / 60,
		Charts:      charts,
		Width:       chartWidth,
		Height:      chartHeight,
		Pad:         chartPad,
		Generated:   time.Now().Format(time.RFC3339),
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return []byte(sb.String()), nil
}

// WriteFile renders the run and writes the HTML to path.
func WriteFile(path string, res *simulation.Result) error {
	html, err := Generate(res)
	if err != nil {
		return err
	}
	return os.WriteFile(path, html, 0o644)
}

func seriesMax(seriesList ...[]float64) float64 {
	max := 0.0
	for _, s := range seriesList {
		for _, v := range s {
			if v > max {
				max = v
			}
		}
	}
	if max <= 0 {
		max = 1
	}
	return max
}

// polyline maps a series onto the chart viewport, x spread over the full
// plot width, y scaled to yMax.
func polyline(values []float64, yMax float64) string {
	plotW := float64(chartWidth - 2*chartPad)
	plotH := float64(chartHeight - 2*chartPad)
	denom := float64(len(values) - 1)
	if denom <= 0 {
		denom = 1
	}

	var sb strings.Builder
	for i, v := range values {
		x := float64(chartPad) + plotW*float64(i)/denom
		y := float64(chartHeight-chartPad) - plotH*v/yMax
		fmt.Fprintf(&sb, "%.1f,%.1f ", x, y)
	}
	return strings.TrimSpace(sb.String())
}

func hourlyChart(res *simulation.Result) chartData {
	yMax := 1.0
	for _, h := range res.Hourly {
		if h.TotalWh > yMax {
			yMax = h.TotalWh
		}
	}

	plotW := float64(chartWidth - 2*chartPad)
	plotH := float64(chartHeight - 2*chartPad)
	n := len(res.Hourly)
	slot := plotW / float64(n)

	bars := make([]bar, n)
	for i, h := range res.Hourly {
		height := plotH * h.TotalWh / yMax
		bars[i] = bar{
			X:     float64(chartPad) + slot*float64(i) + slot*0.1,
			Y:     float64(chartHeight-chartPad) - height,
			W:     slot * 0.8,
			H:     height,
			Label: h.HourStart.Format("15"),
		}
	}

	return chartData{
		Title:  "Hourly energy",
		YLabel: "Wh",
		YMax:   yMax,
		Bars:   bars,
	}
}

var pageTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"sub": func(a, b int) int { return a - b },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Bifacial simulation {{.Date}}</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.4em; }
.total { font-size: 1.2em; margin: 0.5em 0 1.5em; }
table { border-collapse: collapse; margin-bottom: 2em; }
td, th { border: 1px solid #ccc; padding: 0.3em 0.8em; text-align: left; }
svg { border: 1px solid #eee; margin-bottom: 1.5em; }
.legend { font-size: 0.8em; }
</style>
</head>
<body>
<h1>Bifacial fixed-tilt simulation &mdash; {{.Date}}</h1>
<p class="total"><strong>Total Daily Production: {{printf "%.0f" .TotalWh}} Wh ({{printf "%.2f" .TotalKWh}} kWh)</strong></p>
<table>
<tr><th>Run</th><td>{{.RunID}}</td></tr>
<tr><th>Samples</th><td>{{.Samples}} at {{.StepMinutes}} min</td></tr>
<tr><th>Sunrise / sunset</th><td>{{.Sunrise}} / {{.Sunset}}</td></tr>
<tr><th>Front / back energy</th><td>{{printf "%.0f" .FrontWh}} / {{printf "%.0f" .BackWh}} Wh</td></tr>
<tr><th>Peak / mean power</th><td>{{printf "%.1f" .PeakPowerW}} / {{printf "%.1f" .MeanPowerW}} W</td></tr>
<tr><th>Mean front irradiance</th><td>{{printf "%.1f" .MeanPOA}} W/m&sup2;</td></tr>
</table>
{{$w := .Width}}{{$h := .Height}}{{$p := .Pad}}
{{range .Charts}}
<h2>{{.Title}}</h2>
<svg width="{{$w}}" height="{{$h}}" viewBox="0 0 {{$w}} {{$h}}">
  <line x1="{{$p}}" y1="{{sub $h $p}}" x2="{{sub $w $p}}" y2="{{sub $h $p}}" stroke="#888"/>
  <line x1="{{$p}}" y1="{{$p}}" x2="{{$p}}" y2="{{sub $h $p}}" stroke="#888"/>
  <text x="8" y="{{$p}}" font-size="11">{{printf "%.0f" .YMax}} {{.YLabel}}</text>
  {{range .Series}}<polyline fill="none" stroke="{{.Color}}" stroke-width="1.5" points="{{.Points}}"/>
  {{end}}
  {{range .Bars}}<rect x="{{printf "%.1f" .X}}" y="{{printf "%.1f" .Y}}" width="{{printf "%.1f" .W}}" height="{{printf "%.1f" .H}}" fill="#2ca02c"/>
  {{end}}
</svg>
<p class="legend">{{range .Series}}<span style="color:{{.Color}}">&#9632; {{.Label}}</span>&nbsp;&nbsp;{{end}}</p>
{{end}}
<p class="legend">generated {{.Generated}}</p>
</body>
</html>
`))
