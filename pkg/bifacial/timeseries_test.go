package bifacial

import (
	"testing"
	"time"
)

func testArray() Array {
	return Array{RowHeight: 1.13, RowWidth: 1.935, Pitch: 5, Albedo: 0.2, Rows: 3, ObservedRow: 1}
}

func minuteAxis(n int) []time.Time {
	start := time.Date(2025, 6, 21, 0, 0, 0, 0, time.UTC)
	times := make([]time.Time, n)
	for i := range times {
		times[i] = start.Add(time.Duration(i) * time.Minute)
	}
	return times
}

func TestTimeseriesRejectsMismatchedSeries(t *testing.T) {
	times := minuteAxis(3)
	three := []float64{0, 0, 0}
	two := []float64{0, 0}

	_, err := Timeseries(times, three, three, three, two, 32, 270, 180, testArray())
	if err == nil {
		t.Error("expected error for mismatched dhi length")
	}
}

func TestTimeseriesRejectsBadAxisAzimuth(t *testing.T) {
	times := minuteAxis(1)
	zero := []float64{0}
	_, err := Timeseries(times, zero, zero, zero, zero, 32, 270, 270, testArray())
	if err == nil {
		t.Error("expected error for axis azimuth equal to surface azimuth")
	}
}

func TestTimeseriesNightIsZero(t *testing.T) {
	times := minuteAxis(5)
	az := []float64{0, 10, 20, 30, 40}
	zen := []float64{120, 115, 110, 105, 100}
	zero := []float64{0, 0, 0, 0, 0}

	irr, err := Timeseries(times, az, zen, zero, zero, 32, 270, 180, testArray())
	if err != nil {
		t.Fatalf("Timeseries: %v", err)
	}
	for i, r := range irr {
		if r.Front != 0 || r.Back != 0 {
			t.Errorf("sample %d: expected zero irradiance at night, got %+v", i, r)
		}
	}
}

func TestTimeseriesMiddayFrontExceedsBack(t *testing.T) {
	// Sun high and aligned with the surface azimuth: the front face
	// receives direct beam, the back face only diffuse and reflected
	times := minuteAxis(1)
	irr, err := Timeseries(times,
		[]float64{270}, []float64{25}, []float64{900}, []float64{100},
		32, 270, 180, testArray())
	if err != nil {
		t.Fatalf("Timeseries: %v", err)
	}

	r := irr[0]
	if r.Front <= 0 || r.Back <= 0 {
		t.Fatalf("expected positive irradiance on both sides, got %+v", r)
	}
	if r.Back >= r.Front {
		t.Errorf("back irradiance %.1f should be well below front %.1f", r.Back, r.Front)
	}
	if r.Front > 1100 {
		t.Errorf("front irradiance %.1f implausibly above beam + diffuse input", r.Front)
	}
	// Rear side of a bifacial array typically sees a few percent of the
	// front side under clear sky
	if r.Back > 0.5*r.Front {
		t.Errorf("back irradiance %.1f implausibly high against front %.1f", r.Back, r.Front)
	}
}

func TestTimeseriesDiffuseOnlySky(t *testing.T) {
	// Pure diffuse: front receives roughly (1+cos(tilt))/2 of DHI plus
	// reflections, back the complement share
	times := minuteAxis(1)
	irr, err := Timeseries(times,
		[]float64{180}, []float64{60}, []float64{0}, []float64{200},
		32, 270, 180, testArray())
	if err != nil {
		t.Fatalf("Timeseries: %v", err)
	}

	r := irr[0]
	if r.Front <= r.Back {
		t.Errorf("front %.1f should exceed back %.1f under isotropic diffuse", r.Front, r.Back)
	}
	if r.Front > 200 {
		t.Errorf("front irradiance %.1f cannot exceed the diffuse input", r.Front)
	}
}

func TestTimeseriesEdgeRowDiffersFromInterior(t *testing.T) {
	// The first row has open ground on one side, so its rear irradiance
	// differs from the interior row's
	times := minuteAxis(1)
	az := []float64{270}
	zen := []float64{40}
	dni := []float64{800}
	dhi := []float64{120}

	interior := testArray()
	edge := testArray()
	edge.ObservedRow = 0

	irrInterior, err := Timeseries(times, az, zen, dni, dhi, 32, 270, 180, interior)
	if err != nil {
		t.Fatalf("interior: %v", err)
	}
	irrEdge, err := Timeseries(times, az, zen, dni, dhi, 32, 270, 180, edge)
	if err != nil {
		t.Fatalf("edge: %v", err)
	}

	if irrInterior[0].Back == irrEdge[0].Back {
		t.Errorf("interior and edge rows report identical back irradiance %.2f", irrInterior[0].Back)
	}
}

func TestBeamShadingLowSun(t *testing.T) {
	arr := testArray()
	sc, err := buildScene(arr, 32)
	if err != nil {
		t.Fatalf("buildScene: %v", err)
	}

	// Sun high overhead: no inter-row shading
	if frac := sc.beamShadingFraction(1, 0.05, 0.99); frac != 0 {
		t.Errorf("high sun shading fraction = %.3f, expected 0", frac)
	}

	// Sun very low in the +x direction: the downwind neighbor shades part
	// of the observed row
	if frac := sc.beamShadingFraction(1, 0.995, 0.0995); frac <= 0 {
		t.Errorf("low sun shading fraction = %.3f, expected > 0", frac)
	}
}
