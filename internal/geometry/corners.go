// Package geometry computes the corners of a unit square rotated about the
// vertical axis and the small set of helpers used to plot them.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point3D is an immutable (x, y, z) position. Y is the vertical axis.
type Point3D = r3.Vec

const (
	// HalfSide is half the side length of the unit square.
	HalfSide = 0.5
	// HalfDiagonal is the distance from the square's centre to each corner.
	HalfDiagonal = HalfSide * math.Sqrt2
)

// GenerateCorners returns the four corners of a unit square centred on
// center, lying in the horizontal plane HalfSide above it, rotated by
// rotation radians about the vertical axis through center.
//
// The corners come in two diagonal pairs; each pair is emitted as the
// positive direction followed by its reflection through the centre.
func GenerateCorners(center Point3D, rotation float64) [4]Point3D {
	s := math.Sin(rotation) * HalfDiagonal
	c := math.Cos(rotation) * HalfDiagonal

	diagonals := [2][2]float64{{s, c}, {c, -s}}

	var corners [4]Point3D
	i := 0
	for _, diag := range diagonals {
		for _, d := range [2]float64{1, -1} {
			corners[i] = Point3D{
				X: center.X + d*diag[0],
				Y: center.Y + HalfSide,
				Z: center.Z + d*diag[1],
			}
			i++
		}
	}
	return corners
}

// HorizontalDistance returns the distance between p and center measured in
// the x-z plane.
func HorizontalDistance(p, center Point3D) float64 {
	return math.Hypot(p.X-center.X, p.Z-center.Z)
}

// RotateAboutVertical rotates p by angle radians about the vertical line
// through center. A positive angle carries +Z towards +X, matching the
// direction GenerateCorners turns its corners.
func RotateAboutVertical(p, center Point3D, angle float64) Point3D {
	rot := r3.NewRotation(angle, r3.Vec{Y: 1})
	return r3.Add(rot.Rotate(r3.Sub(p, center)), center)
}
