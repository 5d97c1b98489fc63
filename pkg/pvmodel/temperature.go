// Package pvmodel converts plane-of-array irradiance into cell temperature
// and DC power using the SAPM thermal model and the PVWatts power model.
package pvmodel

import (
	"fmt"
	"math"
)

// referenceIrradiance is the STC irradiance in W/m².
const referenceIrradiance = 1000.0

// ThermalParams is one named SAPM cell temperature parameter set.
type ThermalParams struct {
	A      float64 // empirical module temperature coefficient
	B      float64 // empirical wind cooling coefficient (s/m)
	DeltaT float64 // cell-to-module temperature difference at STC (°C)
}

// ThermalModelParams holds the standard SAPM parameter sets, keyed by
// mounting configuration.
var ThermalModelParams = map[string]ThermalParams{
	"open_rack_glass_glass":        {A: -3.47, B: -0.0594, DeltaT: 3},
	"close_mount_glass_glass":      {A: -2.98, B: -0.0471, DeltaT: 1},
	"open_rack_glass_polymer":      {A: -3.56, B: -0.075, DeltaT: 3},
	"insulated_back_glass_polymer": {A: -2.81, B: -0.0455, DeltaT: 0},
}

// ThermalParamsFor looks up a named SAPM parameter set.
func ThermalParamsFor(model string) (ThermalParams, error) {
	p, ok := ThermalModelParams[model]
	if !ok {
		return ThermalParams{}, fmt.Errorf("unknown thermal model %q", model)
	}
	return p, nil
}

// CellTemperature returns the SAPM cell temperature in °C for the given
// plane-of-array irradiance (W/m²), ambient air temperature (°C), and wind
// speed (m/s). With zero irradiance the cell sits at ambient temperature.
func CellTemperature(poa, airTempC, windSpeed float64, p ThermalParams) float64 {
	moduleTemp := poa*math.Exp(p.A+p.B*windSpeed) + airTempC
	return moduleTemp + poa/referenceIrradiance*p.DeltaT
}
