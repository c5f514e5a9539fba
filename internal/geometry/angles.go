package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Degrees converts radians to degrees.
func Degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}

// Linspace returns n evenly spaced values from start to end, both ends
// included. n == 1 yields just start; n <= 0 yields an empty slice.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{start}
	}
	out := floats.Span(make([]float64, n), start, end)
	// Span accumulates rounding in the step; pin the endpoint.
	out[n-1] = end
	return out
}

// XZ is a point projected onto the horizontal plane.
type XZ struct {
	X, Z float64
}

// ProjectXZ drops the vertical component of each point.
func ProjectXZ(points []Point3D) []XZ {
	out := make([]XZ, len(points))
	for i, p := range points {
		out[i] = XZ{X: p.X, Z: p.Z}
	}
	return out
}
