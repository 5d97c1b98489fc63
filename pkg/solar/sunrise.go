package solar

import (
	"math"
	"time"
)

// SunriseSunset returns sunrise and sunset instants for the calendar day of
// the given time, expressed in that time's location. ok is false for polar
// day or polar night.
func SunriseSunset(day time.Time, latitude, longitude float64) (sunrise, sunset time.Time, ok bool) {
	doy := float64(day.YearDay())

	// Solar declination
	innerAngle := (356.6 + 0.9856*doy) * (math.Pi / 180.0)
	outerAngle := (278.97 + 0.9856*doy + 1.9165*math.Sin(innerAngle)) * (math.Pi / 180.0)
	declinationRad := math.Asin(0.39785 * math.Sin(outerAngle))

	latRad := latitude * (math.Pi / 180.0)

	// Hour angle at the horizon: cos(H) = -tan(lat) * tan(declination)
	cosH := -math.Tan(latRad) * math.Tan(declinationRad)
	if cosH < -1.0 || cosH > 1.0 {
		// Midnight sun or polar night
		return time.Time{}, time.Time{}, false
	}

	hourAngleMin := radToDeg(math.Acos(cosH)) * 4.0 // 4 minutes of time per degree

	noon := time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
	eotMin := equationOfTime(noon)

	// Solar noon in UTC minutes from midnight, shifted by longitude and EoT
	solarNoonUTC := 720.0 - longitude*4.0 - eotMin

	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	sunrise = midnight.Add(time.Duration((solarNoonUTC - hourAngleMin) * float64(time.Minute))).In(day.Location())
	sunset = midnight.Add(time.Duration((solarNoonUTC + hourAngleMin) * float64(time.Minute))).In(day.Location())
	return sunrise, sunset, true
}
