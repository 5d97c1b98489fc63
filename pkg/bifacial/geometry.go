// Package bifacial implements a two-dimensional view-factor irradiance
// model for multi-row PV arrays. It computes front- and back-side
// plane-of-array irradiance for one observed row by modeling the array
// cross-section: discretized ground strips and row faces exchange
// reflected flux through crossed-strings view factors, and the resulting
// radiosity system is solved per timestep.
//
// The API is shaped like a single-axis tracker model. A fixed-tilt array
// is expressed by declaring an axis azimuth offset exactly 90 degrees
// from the surface azimuth, which pins the tracker rotation to the
// surface tilt so the row never rotates.
package bifacial

import (
	"errors"
	"fmt"
	"math"
)

// Array describes the fixed geometry of the modeled row array.
type Array struct {
	RowHeight   float64 // height of the row center above ground (m)
	RowWidth    float64 // collector width along the slope (m)
	Pitch       float64 // row-to-row spacing (m); derived from GCR when zero
	GCR         float64 // ground coverage ratio; derived from width/pitch when zero
	Albedo      float64 // ground reflectance
	Rows        int     // number of rows in the array
	ObservedRow int     // index of the row whose irradiance is reported
}

// PitchM returns the row-to-row spacing, deriving it from the ground
// coverage ratio when not given directly.
func (a Array) PitchM() (float64, error) {
	switch {
	case a.Pitch > 0:
		return a.Pitch, nil
	case a.GCR > 0:
		return a.RowWidth / a.GCR, nil
	}
	return 0, errors.New("array needs either pitch or gcr")
}

// Validate rejects geometries the cross-section model cannot represent.
func (a Array) Validate(surfaceTilt float64) error {
	if a.RowWidth <= 0 {
		return fmt.Errorf("row width must be positive, got %.3f", a.RowWidth)
	}
	if a.RowHeight <= 0 {
		return fmt.Errorf("row height must be positive, got %.3f", a.RowHeight)
	}
	if a.Albedo < 0 || a.Albedo > 1 {
		return fmt.Errorf("albedo %.2f out of range [0, 1]", a.Albedo)
	}
	if a.Rows < 1 {
		return fmt.Errorf("need at least one row, got %d", a.Rows)
	}
	if a.ObservedRow < 0 || a.ObservedRow >= a.Rows {
		return fmt.Errorf("observed row %d out of range [0, %d)", a.ObservedRow, a.Rows)
	}
	pitch, err := a.PitchM()
	if err != nil {
		return err
	}
	if pitch <= 0 {
		return fmt.Errorf("pitch must be positive, got %.3f", pitch)
	}
	tiltRad := surfaceTilt * math.Pi / 180
	if a.RowHeight-(a.RowWidth/2)*math.Sin(tiltRad) < 0 {
		return fmt.Errorf("row lower edge below ground: height %.2f m, width %.2f m, tilt %.1f deg",
			a.RowHeight, a.RowWidth, surfaceTilt)
	}
	return nil
}

// RotationFromAzimuths returns the constant tracker rotation implied by a
// fixed surface orientation declared through the tracking-shaped API. The
// axis azimuth must be offset exactly 90 degrees from the surface azimuth;
// the rotation then equals the surface tilt, signed by which side of the
// axis the row faces, and never changes.
func RotationFromAzimuths(surfaceTilt, surfaceAzimuth, axisAzimuth float64) (float64, error) {
	offset := math.Mod(surfaceAzimuth-axisAzimuth+720, 360)
	switch {
	case math.Abs(offset-90) < 1e-9:
		return surfaceTilt, nil
	case math.Abs(offset-270) < 1e-9:
		return -surfaceTilt, nil
	}
	return 0, fmt.Errorf("surface azimuth %.1f must be offset 90 degrees from axis azimuth %.1f for a fixed-tilt array",
		surfaceAzimuth, axisAzimuth)
}

// segment is a finite line in the array cross-section plane.
// x runs horizontally toward the surface azimuth, y is up.
type segment struct {
	x1, y1 float64
	x2, y2 float64
}

func (s segment) length() float64 {
	return math.Hypot(s.x2-s.x1, s.y2-s.y1)
}

func (s segment) center() (float64, float64) {
	return (s.x1 + s.x2) / 2, (s.y1 + s.y2) / 2
}
