package report

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/solarsim/bifacialsim/internal/simulation"
	"github.com/solarsim/bifacialsim/internal/types"
)

func sampleResult() *simulation.Result {
	zone := simulation.FixedOffsetZone(-1)
	start := time.Date(2025, 6, 21, 10, 0, 0, 0, zone)

	var times []time.Time
	var readings []types.PVReading
	for i := 0; i < 120; i++ {
		t := start.Add(time.Duration(i) * time.Minute)
		times = append(times, t)
		readings = append(readings, types.PVReading{
			Timestamp:  t,
			RunID:      "test-run",
			POAFront:   800,
			POABack:    60,
			PowerFront: 380,
			PowerBack:  20,
			PowerTotal: 400,
		})
	}

	return &simulation.Result{
		RunID:    "test-run",
		Times:    times,
		Readings: readings,
		Hourly: []types.HourlyEnergy{
			{HourStart: start, RunID: "test-run", FrontWh: 380, BackWh: 20, TotalWh: 400},
			{HourStart: start.Add(time.Hour), RunID: "test-run", FrontWh: 380, BackWh: 20, TotalWh: 400},
		},
		Summary: types.RunSummary{
			RunID:       "test-run",
			StartTime:   times[0],
			EndTime:     times[len(times)-1],
			StepSeconds: 60,
			Samples:     len(times),
			FrontWh:     760,
			BackWh:      40,
			TotalWh:     800,
			PeakPowerW:  400,
			MeanPowerW:  400,
			Sunrise:     "05:12",
			Sunset:      "20:41",
		},
	}
}

func TestGenerate(t *testing.T) {
	html, err := Generate(sampleResult())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	page := string(html)

	for _, want := range []string{
		"Total Daily Production: 800 Wh (0.80 kWh)",
		"Plane-of-array irradiance",
		"DC power",
		"Hourly energy",
		"05:12",
		"test-run",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("report missing %q", want)
		}
	}

	// Two line charts with 2 and 3 series, one bar chart with 2 bars
	if got := strings.Count(page, "<polyline"); got != 5 {
		t.Errorf("found %d polylines, expected 5", got)
	}
	if got := strings.Count(page, "<rect"); got != 2 {
		t.Errorf("found %d bars, expected 2", got)
	}
}

func TestGenerateEmptyRun(t *testing.T) {
	if _, err := Generate(&simulation.Result{RunID: "empty"}); err == nil {
		t.Error("expected error for a run with no readings")
	}
}

func TestPolylineStaysInViewport(t *testing.T) {
	points := polyline([]float64{0, 500, 1000}, 1000)
	for _, pair := range strings.Fields(points) {
		var x, y float64
		if _, err := fmt.Sscanf(pair, "%f,%f", &x, &y); err != nil {
			t.Fatalf("bad point %q: %v", pair, err)
		}
		if x < chartPad || x > chartWidth-chartPad {
			t.Errorf("x %.1f outside plot area", x)
		}
		if y < chartPad || y > chartHeight-chartPad {
			t.Errorf("y %.1f outside plot area", y)
		}
	}
}
