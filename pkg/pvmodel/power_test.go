package pvmodel

import (
	"math"
	"testing"
)

func TestPVWattsDCAtReferenceConditions(t *testing.T) {
	// STC irradiance at STC cell temperature yields exactly the rated power
	if got := PVWattsDC(1000, 25, 500, -0.0038); got != 500 {
		t.Errorf("power at STC = %.4f, expected 500", got)
	}
}

func TestPVWattsDCZeroIrradiance(t *testing.T) {
	if got := PVWattsDC(0, 25, 500, -0.0038); got != 0 {
		t.Errorf("power at zero irradiance = %.4f, expected 0", got)
	}
	if got := PVWattsDC(-5, 25, 500, -0.0038); got != 0 {
		t.Errorf("power at negative irradiance = %.4f, expected 0", got)
	}
}

func TestPVWattsDCTemperatureDerate(t *testing.T) {
	cool := PVWattsDC(800, 25, 500, -0.0038)
	hot := PVWattsDC(800, 55, 500, -0.0038)
	if hot >= cool {
		t.Errorf("hot cell should produce less: %.2f at 55 °C vs %.2f at 25 °C", hot, cool)
	}
	want := 800.0 / 1000 * 500 * (1 - 0.0038*30)
	if math.Abs(hot-want) > 1e-9 {
		t.Errorf("derated power = %.4f, expected %.4f", hot, want)
	}
}

func TestPVWattsDCScalesLinearlyWithIrradiance(t *testing.T) {
	half := PVWattsDC(500, 25, 500, -0.0038)
	full := PVWattsDC(1000, 25, 500, -0.0038)
	if math.Abs(full-2*half) > 1e-9 {
		t.Errorf("power not linear in irradiance: %.4f vs 2x%.4f", full, half)
	}
}
