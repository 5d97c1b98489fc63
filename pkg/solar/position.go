// Package solar computes solar geometry and clear-sky irradiance for a
// fixed site: per-timestamp azimuth and apparent zenith, Ineichen-Perez
// clear-sky DNI/DHI components, and sunrise/sunset times.
package solar

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
)

// refractionDeg is the standard atmospheric refraction correction applied
// to the geometric elevation at the horizon.
const refractionDeg = 0.5667

// Position holds the solar geometry for one timestamp.
type Position struct {
	AzimuthDeg        float64 // compass azimuth, 0 = north, 90 = east
	ApparentZenithDeg float64 // refraction-corrected zenith angle
	ElevationDeg      float64 // apparent elevation above the horizon
	DeclinationDeg    float64
	EqOfTimeMin       float64
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// solarCoordinates returns the Sun's mean longitude, mean anomaly, orbital
// eccentricity, and mean obliquity for Julian centuries T since J2000.0.
func solarCoordinates(T float64) (L0, M, e, eps0 float64) {
	L0 = fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M = fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e = 0.016708634 - T*(0.000042037+T*0.0000001267)
	eps0 = 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	return
}

// equationOfTime returns the difference between apparent and mean solar
// time in minutes for the given instant.
func equationOfTime(t time.Time) float64 {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0, M, e, eps0 := solarCoordinates(T)

	y := math.Tan(degToRad(eps0)/2) * math.Tan(degToRad(eps0)/2)
	return radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4
}

// CalculatePosition returns the Sun's azimuth and apparent zenith for the
// given instant and site coordinates. Longitude is positive east.
func CalculatePosition(t time.Time, latitude, longitude float64) Position {
	jd := julian.TimeToJD(t.UTC())
	T := (jd - 2451545.0) / 36525.0

	L0, M, _, eps0 := solarCoordinates(T)

	// Apparent solar longitude, corrected for nutation and aberration
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	sunLong := L0 + C
	omega := 125.04 - 1934.136*T
	lambda := sunLong - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	declRad := math.Asin(math.Sin(degToRad(eps0)) * math.Sin(degToRad(lambda)))

	eqTimeMin := equationOfTime(t)

	// Hour angle from true solar time
	ut := t.UTC()
	utcMin := float64(ut.Hour()*60+ut.Minute()) + float64(ut.Second())/60.0
	tst := utcMin + 4*longitude + eqTimeMin
	haDeg := tst/4 - 180
	haRad := degToRad(haDeg)

	latRad := degToRad(latitude)
	cosZen := math.Sin(latRad)*math.Sin(declRad) + math.Cos(latRad)*math.Cos(declRad)*math.Cos(haRad)
	zenRad := math.Acos(cosZen)
	zenDeg := radToDeg(zenRad)
	elDeg := 90 - zenDeg + refractionDeg

	azDeg := 0.0
	azDen := math.Cos(latRad) * math.Sin(zenRad)
	if azDen != 0 {
		azArg := (math.Sin(declRad) - math.Sin(latRad)*cosZen) / azDen
		azArg = math.Max(-1, math.Min(1, azArg))
		azDeg = radToDeg(math.Acos(azArg))
		if haDeg > 0 {
			azDeg = 360 - azDeg
		}
	}

	return Position{
		AzimuthDeg:        azDeg,
		ApparentZenithDeg: 90 - elDeg,
		ElevationDeg:      elDeg,
		DeclinationDeg:    radToDeg(declRad),
		EqOfTimeMin:       eqTimeMin,
	}
}
