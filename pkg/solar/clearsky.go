package solar

import (
	"math"
	"time"
)

// solarConstant is the average solar energy flux at the top of Earth's
// atmosphere in W/m².
const solarConstant = 1361.0

// ClearSky holds the clear-sky irradiance components for one timestamp.
type ClearSky struct {
	GHI float64 // global horizontal irradiance (W/m²)
	DNI float64 // direct normal irradiance (W/m²)
	DHI float64 // diffuse horizontal irradiance (W/m²)
}

// CalculateClearSkyIneichenPerez computes clear-sky irradiance with the
// Ineichen-Perez model: direct normal from an air-mass attenuated
// extraterrestrial flux, diffuse from a seasonal fraction of it. Below the
// horizon all components are zero.
func CalculateClearSkyIneichenPerez(t time.Time, latitude, longitude, altitude float64) ClearSky {
	pos := CalculatePosition(t, latitude, longitude)
	thetaZ := pos.ApparentZenithDeg
	if thetaZ >= 90.0 {
		return ClearSky{}
	}

	N := t.YearDay()

	// Extraterrestrial radiation, adjusted for Earth-Sun distance
	g0 := solarConstant * (1 + 0.033*math.Cos(degToRad(360.0*(float64(N)-3)/365.0)))

	// Linke turbidity factor, typical for clear skies (range: 2-6)
	const tl = 2.0
	// Air mass via the Kasten-Young formula
	am := 1.0 / (math.Cos(degToRad(thetaZ)) + 0.50572*math.Pow(96.07995-thetaZ, -1.6364))

	const c = 0.7   // normalization constant for DNI
	const a = 0.027 // atmospheric extinction coefficient
	dni := g0 * c * math.Exp(-a*am*tl*math.Exp(-altitude/8000.0))

	// Diffuse fraction with a seasonal adjustment, scaled by sun height so
	// DHI peaks near solar noon and vanishes toward the horizon
	fh := 0.1 + 0.05*math.Sin(math.Pi*float64(N-100)/365.0)
	dhi := fh * g0 * math.Cos(degToRad(thetaZ))

	return ClearSky{
		GHI: dni*math.Cos(degToRad(thetaZ)) + dhi,
		DNI: dni,
		DHI: dhi,
	}
}
