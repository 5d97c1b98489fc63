package simulation

import (
	"math"
	"time"
)

// AmbientSource supplies the ambient air temperature for a timestamp.
// The pipeline takes any implementation, so a measured or forecast series
// can replace the synthetic default without touching the conversion chain.
type AmbientSource interface {
	AirTemperature(t time.Time) float64
}

// SinusoidalAmbient is a synthetic diurnal temperature profile: a sine
// wave on the local wall clock with its minimum at midnight and its peak
// at noon.
type SinusoidalAmbient struct {
	MeanC      float64
	AmplitudeC float64
}

// AirTemperature returns the profile temperature in °C at t's wall-clock
// time.
func (s SinusoidalAmbient) AirTemperature(t time.Time) float64 {
	hour := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return s.MeanC + s.AmplitudeC*math.Sin(math.Pi*(hour-6)/12)
}

// ConstantAmbient holds the air temperature fixed, matching scenarios that
// assume a constant ambient.
type ConstantAmbient float64

func (c ConstantAmbient) AirTemperature(time.Time) float64 {
	return float64(c)
}
