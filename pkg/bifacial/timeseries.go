package bifacial

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Irradiance is the front/back plane-of-array irradiance pair for one
// timestep, in W/m². The channels are independent; callers combine them.
type Irradiance struct {
	Front float64
	Back  float64
}

// Timeseries computes front- and back-side irradiance on the observed row
// for every timestamp. The solar position, DNI, and DHI series must share
// the timestamp axis; mismatched lengths are rejected. The surface and
// axis azimuths must satisfy the 90-degree fixed-tilt relationship.
func Timeseries(times []time.Time, solarAzimuth, solarZenith, dni, dhi []float64,
	surfaceTilt, surfaceAzimuth, axisAzimuth float64, arr Array) ([]Irradiance, error) {

	n := len(times)
	for name, s := range map[string][]float64{
		"solar azimuth": solarAzimuth,
		"solar zenith":  solarZenith,
		"dni":           dni,
		"dhi":           dhi,
	} {
		if len(s) != n {
			return nil, fmt.Errorf("%s series has %d samples, timestamp axis has %d", name, len(s), n)
		}
	}

	if err := arr.Validate(surfaceTilt); err != nil {
		return nil, err
	}
	rotation, err := RotationFromAzimuths(surfaceTilt, surfaceAzimuth, axisAzimuth)
	if err != nil {
		return nil, err
	}

	sc, err := buildScene(arr, math.Abs(rotation))
	if err != nil {
		return nil, err
	}

	out := make([]Irradiance, n)
	for i := range times {
		out[i], err = sc.step(surfaceAzimuth, solarAzimuth[i], solarZenith[i], dni[i], dhi[i])
		if err != nil {
			return nil, fmt.Errorf("radiosity solve at %s: %w", times[i].Format(time.RFC3339), err)
		}
	}
	return out, nil
}

func (sc *scene) step(surfaceAzimuth, solAz, solZen, dni, dhi float64) (Irradiance, error) {
	if dni <= 0 && dhi <= 0 {
		return Irradiance{}, nil
	}

	zr := solZen * math.Pi / 180
	gr := (solAz - surfaceAzimuth) * math.Pi / 180

	// Angle of incidence on the front face, and the sun direction
	// projected into the cross-section plane for shadow casting
	cosAOI := math.Cos(zr)*math.Cos(sc.tiltRad) + math.Sin(zr)*math.Sin(sc.tiltRad)*math.Cos(gr)
	sx := math.Sin(zr) * math.Cos(gr)
	sy := math.Cos(zr)
	beamUp := sy > 0 && dni > 0

	incident := make([]float64, len(sc.surfaces))

	for i := 0; i < sc.groundN; i++ {
		e := sc.skyVF[i] * dhi
		if beamUp {
			cx, _ := sc.surfaces[i].seg.center()
			if !sc.groundShaded(cx, sx, sy) {
				e += dni * sy
			}
		}
		incident[i] = e
	}

	for k := 0; k < sc.arr.Rows; k++ {
		shade := 0.0
		if beamUp {
			shade = sc.beamShadingFraction(k, sx, sy)
		}
		fi := frontIndex(sc.groundN, k)
		bi := backIndex(sc.groundN, k)
		incident[fi] = sc.skyVF[fi]*dhi + dni*math.Max(0, cosAOI)*(1-shade)
		incident[bi] = sc.skyVF[bi]*dhi + dni*math.Max(0, -cosAOI)*(1-shade)
	}

	q, err := sc.solveRadiosity(incident)
	if err != nil {
		return Irradiance{}, err
	}

	fi := frontIndex(sc.groundN, sc.arr.ObservedRow)
	bi := backIndex(sc.groundN, sc.arr.ObservedRow)
	return Irradiance{
		Front: incident[fi] + sc.reflectedOnto(fi, q),
		Back:  incident[bi] + sc.reflectedOnto(bi, q),
	}, nil
}

// reflectedOnto sums the radiosity arriving at surface i from every other
// surface it sees.
func (sc *scene) reflectedOnto(i int, q *mat.VecDense) float64 {
	total := 0.0
	for j := 0; j < len(sc.surfaces); j++ {
		if f := sc.f.At(i, j); f > 0 {
			total += f * q.AtVec(j)
		}
	}
	return total
}

// groundShaded reports whether the ground point at x lies inside the beam
// shadow of any row.
func (sc *scene) groundShaded(x, sx, sy float64) bool {
	for k := 0; k < sc.arr.Rows; k++ {
		seg := sc.surfaces[frontIndex(sc.groundN, k)].seg
		g1 := seg.x1 - seg.y1*sx/sy
		g2 := seg.x2 - seg.y2*sx/sy
		if x >= math.Min(g1, g2) && x <= math.Max(g1, g2) {
			return true
		}
	}
	return false
}

// beamShadingFraction returns the fraction of row k's width shaded by the
// other rows for the current sun direction.
func (sc *scene) beamShadingFraction(k int, sx, sy float64) float64 {
	row := sc.surfaces[frontIndex(sc.groundN, k)].seg
	cx, cy := row.center()
	hw := sc.arr.RowWidth / 2
	tx, ty := -math.Cos(sc.tiltRad), math.Sin(sc.tiltRad)

	var intervals [][2]float64
	for j := 0; j < sc.arr.Rows; j++ {
		if j == k {
			continue
		}
		obstacle := sc.surfaces[frontIndex(sc.groundN, j)].seg
		ox, oy := obstacle.center()
		// Only rows on the sun side can cast a shadow onto this one
		if (ox-cx)*sx+(oy-cy)*sy <= 0 {
			continue
		}

		u1, ok1 := projectAlongSun(cx, cy, tx, ty, obstacle.x1, obstacle.y1, sx, sy)
		u2, ok2 := projectAlongSun(cx, cy, tx, ty, obstacle.x2, obstacle.y2, sx, sy)
		if !ok1 || !ok2 {
			continue
		}

		lo := math.Max(math.Min(u1, u2), -hw)
		hi := math.Min(math.Max(u1, u2), hw)
		if hi > lo {
			intervals = append(intervals, [2]float64{lo, hi})
		}
	}
	if len(intervals) == 0 {
		return 0
	}

	sort.Slice(intervals, func(a, b int) bool { return intervals[a][0] < intervals[b][0] })
	shaded := 0.0
	cur := intervals[0]
	for _, iv := range intervals[1:] {
		if iv[0] > cur[1] {
			shaded += cur[1] - cur[0]
			cur = iv
			continue
		}
		if iv[1] > cur[1] {
			cur[1] = iv[1]
		}
	}
	shaded += cur[1] - cur[0]

	frac := shaded / sc.arr.RowWidth
	if frac > 1 {
		frac = 1
	}
	return frac
}

// projectAlongSun casts point (px, py) along the shadow direction onto the
// line through (cx, cy) with direction (tx, ty), returning the line
// parameter. ok is false when the ray is parallel to the line or the
// shadow falls sunward of the obstacle.
func projectAlongSun(cx, cy, tx, ty, px, py, sx, sy float64) (float64, bool) {
	det := tx*sy - ty*sx
	if math.Abs(det) < 1e-12 {
		return 0, false
	}
	u := ((px-cx)*sy - (py-cy)*sx) / det
	s := (tx*(py-cy) - ty*(px-cx)) / det
	if s <= 0 {
		return 0, false
	}
	return u, true
}
