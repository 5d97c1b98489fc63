package pvmodel

import (
	"math"
	"testing"
)

func TestCellTemperatureZeroIrradiance(t *testing.T) {
	p := ThermalModelParams["open_rack_glass_glass"]
	for _, ambient := range []float64{-10, 0, 25, 40} {
		if got := CellTemperature(0, ambient, 1.0, p); got != ambient {
			t.Errorf("ambient %.1f: cell temperature %.4f, expected exactly ambient", ambient, got)
		}
	}
}

func TestCellTemperatureOpenRack(t *testing.T) {
	// Hand-computed from the open rack parameters: at 1000 W/m², 25 °C,
	// 1 m/s the module heats roughly 30 °C above ambient plus the 3 °C
	// cell-to-module offset.
	p := ThermalModelParams["open_rack_glass_glass"]
	got := CellTemperature(1000, 25, 1.0, p)
	want := 1000*math.Exp(-3.47-0.0594*1.0) + 25 + 3
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("cell temperature = %.4f, expected %.4f", got, want)
	}
	if got < 50 || got > 60 {
		t.Errorf("cell temperature %.1f outside plausible STC range", got)
	}
}

func TestCellTemperatureWindCooling(t *testing.T) {
	p := ThermalModelParams["open_rack_glass_glass"]
	calm := CellTemperature(800, 20, 0.5, p)
	breezy := CellTemperature(800, 20, 5.0, p)
	if breezy >= calm {
		t.Errorf("wind should cool the cell: %.2f at 5 m/s vs %.2f at 0.5 m/s", breezy, calm)
	}
}

func TestThermalParamsFor(t *testing.T) {
	for name := range ThermalModelParams {
		if _, err := ThermalParamsFor(name); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := ThermalParamsFor("floating_rack"); err == nil {
		t.Error("expected error for unknown thermal model")
	}
}
