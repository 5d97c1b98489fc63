package simulation

import (
	"context"
	"math"
	"os"
	"testing"
	"time"

	"github.com/solarsim/bifacialsim/internal/log"
	"github.com/solarsim/bifacialsim/internal/types"
	"github.com/solarsim/bifacialsim/pkg/config"
)

func TestMain(m *testing.M) {
	if err := log.Init(false); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func defaultConfig() *config.ConfigData {
	cfg := &config.ConfigData{}
	cfg.ApplyDefaults()
	return cfg
}

func TestEngineRunDefaults(t *testing.T) {
	res, err := NewEngine(defaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Summary.Samples != 1441 {
		t.Errorf("samples = %d, expected 1441 for the default day", res.Summary.Samples)
	}
	if len(res.Readings) != 1441 || len(res.Times) != 1441 {
		t.Errorf("readings/times length mismatch: %d / %d", len(res.Readings), len(res.Times))
	}
	if res.RunID == "" {
		t.Error("run has no ID")
	}
	if res.Summary.TotalWh <= 0 {
		t.Errorf("total energy = %.1f Wh, expected positive on a clear solstice day", res.Summary.TotalWh)
	}
	if res.Summary.PeakPowerW < res.Summary.MeanPowerW {
		t.Errorf("peak power %.1f below mean %.1f", res.Summary.PeakPowerW, res.Summary.MeanPowerW)
	}
	if res.Summary.Sunrise == "" || res.Summary.Sunset == "" {
		t.Error("summary missing sunrise/sunset")
	}
}

func TestEngineEnergyConsistency(t *testing.T) {
	cfg := defaultConfig()
	res, err := NewEngine(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// The daily total must equal both the sum of the hourly bins and the
	// direct integral of power over the sampling interval
	hourSum := 0.0
	for _, h := range res.Hourly {
		hourSum += h.TotalWh
	}
	if math.Abs(hourSum-res.Summary.TotalWh) > 1e-6 {
		t.Errorf("hourly sum %.6f != summary total %.6f", hourSum, res.Summary.TotalWh)
	}

	step := time.Duration(cfg.Simulation.StepMinutes) * time.Minute
	integral := 0.0
	for _, r := range res.Readings {
		integral += r.PowerTotal * step.Hours()
	}
	if math.Abs(integral-res.Summary.TotalWh) > 1e-6 {
		t.Errorf("power integral %.6f != summary total %.6f", integral, res.Summary.TotalWh)
	}

	frontBack := res.Summary.FrontWh + res.Summary.BackWh
	if math.Abs(frontBack-res.Summary.TotalWh) > 1e-6 {
		t.Errorf("front %.4f + back %.4f != total %.4f", res.Summary.FrontWh, res.Summary.BackWh, res.Summary.TotalWh)
	}
}

func TestEngineZeroBifaciality(t *testing.T) {
	cfg := defaultConfig()
	// Set after defaulting: a zero here is the intent, not an unset field
	cfg.Module.Bifaciality = 0

	res, err := NewEngine(cfg, nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, r := range res.Readings {
		if r.PowerBack != 0 {
			t.Fatalf("sample %d: back power %.4f with zero bifaciality", i, r.PowerBack)
		}
	}
	if res.Summary.BackWh != 0 {
		t.Errorf("back energy %.4f Wh with zero bifaciality", res.Summary.BackWh)
	}
}

func TestEngineNightCellTemperatureEqualsAmbient(t *testing.T) {
	res, err := NewEngine(defaultConfig(), nil).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	seen := false
	for _, r := range res.Readings {
		if r.POAFront == 0 {
			seen = true
			if r.CellTemp != r.AirTemp {
				t.Fatalf("%s: cell %.4f != ambient %.4f with no irradiance",
					r.Timestamp.Format(time.RFC3339), r.CellTemp, r.AirTemp)
			}
		}
	}
	if !seen {
		t.Error("no dark samples found in a full-day run")
	}
}

func TestEngineInjectedAmbientSource(t *testing.T) {
	res, err := NewEngine(defaultConfig(), ConstantAmbient(10)).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, r := range res.Readings {
		if r.AirTemp != 10 {
			t.Fatalf("%s: air temp %.2f, expected the injected constant 10",
				r.Timestamp.Format(time.RFC3339), r.AirTemp)
		}
	}
}

func TestEngineCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewEngine(defaultConfig(), nil).Run(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestBinHourlyConstantPower(t *testing.T) {
	// A constant 300 W over one fully sampled clock hour integrates to
	// exactly 300 Wh
	zone := FixedOffsetZone(-1)
	start := time.Date(2025, 6, 21, 10, 0, 0, 0, zone)
	var readings []types.PVReading
	for i := 0; i < 60; i++ {
		readings = append(readings, types.PVReading{
			Timestamp:  start.Add(time.Duration(i) * time.Minute),
			PowerTotal: 300,
		})
	}

	hourly := binHourly("test-run", readings, time.Minute)
	if len(hourly) != 1 {
		t.Fatalf("expected one bin, got %d", len(hourly))
	}
	if math.Abs(hourly[0].TotalWh-300) > 1e-9 {
		t.Errorf("bin energy = %.6f Wh, expected exactly 300", hourly[0].TotalWh)
	}
	if !hourly[0].HourStart.Equal(start) {
		t.Errorf("bin start %s, expected %s", hourly[0].HourStart, start)
	}
}

func TestBinHourlySplitsAcrossHours(t *testing.T) {
	zone := FixedOffsetZone(0)
	start := time.Date(2025, 6, 21, 10, 30, 0, 0, zone)
	var readings []types.PVReading
	for i := 0; i < 60; i++ {
		readings = append(readings, types.PVReading{
			Timestamp:  start.Add(time.Duration(i) * time.Minute),
			PowerFront: 120,
			PowerTotal: 120,
		})
	}

	hourly := binHourly("test-run", readings, time.Minute)
	if len(hourly) != 2 {
		t.Fatalf("expected two bins, got %d", len(hourly))
	}
	if math.Abs(hourly[0].TotalWh-60) > 1e-9 || math.Abs(hourly[1].TotalWh-60) > 1e-9 {
		t.Errorf("bins = %.4f / %.4f Wh, expected 60 each", hourly[0].TotalWh, hourly[1].TotalWh)
	}
}
