package bifacial

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// groundStripsPerPitch controls the ground discretization of the
	// cross-section. Finer strips sharpen the shadow boundaries seen by
	// the rear side at the cost of a larger radiosity system.
	groundStripsPerPitch = 12

	// Module face reflectances for the radiosity exchange
	frontReflectance = 0.01
	backReflectance  = 0.03
)

// surface is one participant in the radiosity exchange.
type surface struct {
	seg  segment
	nx   float64 // outward normal
	ny   float64
	refl float64
}

// scene holds the static cross-section geometry and the prefactored
// radiosity system. It is built once per Timeseries call and reused for
// every timestep.
type scene struct {
	arr      Array
	pitch    float64
	tiltRad  float64
	surfaces []surface
	groundN  int // surfaces[0:groundN] are ground strips

	f     *mat.Dense // view factor matrix between surfaces
	skyVF []float64  // per-surface view factor to the sky dome
	lu    mat.LU     // factorization of (I - diag(refl)·F)
}

func frontIndex(groundN, row int) int { return groundN + 2*row }
func backIndex(groundN, row int) int  { return groundN + 2*row + 1 }

// rowSegment returns the cross-section segment of row k, ordered from the
// lower (sun-facing) edge to the upper edge.
func rowSegment(arr Array, pitch, tiltRad float64, k int) segment {
	cx := float64(k) * pitch
	cy := arr.RowHeight
	hw := arr.RowWidth / 2
	// Direction along the panel from the lower edge to the upper edge
	tx, ty := -math.Cos(tiltRad), math.Sin(tiltRad)
	return segment{
		x1: cx - hw*tx, y1: cy - hw*ty,
		x2: cx + hw*tx, y2: cy + hw*ty,
	}
}

func buildScene(arr Array, tiltDeg float64) (*scene, error) {
	pitch, err := arr.PitchM()
	if err != nil {
		return nil, err
	}

	sc := &scene{
		arr:     arr,
		pitch:   pitch,
		tiltRad: tiltDeg * math.Pi / 180,
	}

	// Ground strips spanning one pitch beyond the array on each side
	spans := arr.Rows + 1
	stripW := pitch / groundStripsPerPitch
	x := -pitch
	for i := 0; i < spans*groundStripsPerPitch; i++ {
		sc.surfaces = append(sc.surfaces, surface{
			seg:  segment{x1: x, y1: 0, x2: x + stripW, y2: 0},
			nx:   0, ny: 1,
			refl: arr.Albedo,
		})
		x += stripW
	}
	sc.groundN = len(sc.surfaces)

	// Row faces: front normal points toward +x and up, back the opposite
	sin, cos := math.Sin(sc.tiltRad), math.Cos(sc.tiltRad)
	for k := 0; k < arr.Rows; k++ {
		seg := rowSegment(arr, pitch, sc.tiltRad, k)
		sc.surfaces = append(sc.surfaces,
			surface{seg: seg, nx: sin, ny: cos, refl: frontReflectance},
			surface{seg: seg, nx: -sin, ny: -cos, refl: backReflectance},
		)
	}

	sc.buildViewFactors()
	if err := sc.factorize(); err != nil {
		return nil, err
	}
	return sc, nil
}

// sees reports whether two surfaces face each other, judged from their
// centers and outward normals.
func sees(a, b surface) bool {
	ax, ay := a.seg.center()
	bx, by := b.seg.center()
	dx, dy := bx-ax, by-ay
	return dx*a.nx+dy*a.ny > 1e-12 && -dx*b.nx-dy*b.ny > 1e-12
}

// viewFactor computes the radiative view factor from segment a to segment b
// with the crossed-strings method. Occlusion by intervening rows is not
// modeled; at the ground coverage ratios this model targets, exchange is
// dominated by adjacent surfaces.
func viewFactor(a, b segment) float64 {
	dist := func(x1, y1, x2, y2 float64) float64 { return math.Hypot(x2-x1, y2-y1) }
	crossed := dist(a.x1, a.y1, b.x2, b.y2) + dist(a.x2, a.y2, b.x1, b.y1)
	uncrossed := dist(a.x1, a.y1, b.x1, b.y1) + dist(a.x2, a.y2, b.x2, b.y2)
	f := math.Abs(crossed-uncrossed) / (2 * a.length())
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func (sc *scene) buildViewFactors() {
	n := len(sc.surfaces)
	sc.f = mat.NewDense(n, n, nil)
	sc.skyVF = make([]float64, n)

	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			if i == j || !sees(sc.surfaces[i], sc.surfaces[j]) {
				continue
			}
			f := viewFactor(sc.surfaces[i].seg, sc.surfaces[j].seg)
			sc.f.Set(i, j, f)
			sum += f
		}
		// Whatever does not land on another surface reaches the sky
		sc.skyVF[i] = math.Max(0, 1-sum)
	}
}

// factorize prepares the radiosity system (I - diag(refl)·F) q = refl∘E
// for repeated solves. The matrix is strictly diagonally dominant for
// physical reflectances, so the factorization cannot fail on valid input.
func (sc *scene) factorize() error {
	n := len(sc.surfaces)
	a := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := -sc.surfaces[i].refl * sc.f.At(i, j)
			if i == j {
				v += 1
			}
			a.Set(i, j, v)
		}
	}
	sc.lu.Factorize(a)
	if sc.lu.Cond() > 1e12 {
		return errRadiositySingular
	}
	return nil
}

var errRadiositySingular = errors.New("radiosity system is singular")

// solveRadiosity returns the reflected radiosity of every surface for the
// given per-surface incident shortwave flux.
func (sc *scene) solveRadiosity(incident []float64) (*mat.VecDense, error) {
	n := len(sc.surfaces)
	b := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		b.SetVec(i, sc.surfaces[i].refl*incident[i])
	}
	q := mat.NewVecDense(n, nil)
	if err := sc.lu.SolveVecTo(q, false, b); err != nil {
		return nil, err
	}
	return q, nil
}
