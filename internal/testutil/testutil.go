// Package testutil provides shared test helpers for the geometry and
// plotting packages.
package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// AssertVecNear fails the test if any component of got differs from want
// by more than tol.
func AssertVecNear(t testing.TB, want, got r3.Vec, tol float64, msg string) {
	t.Helper()
	if !scalar.EqualWithinAbs(want.X, got.X, tol) ||
		!scalar.EqualWithinAbs(want.Y, got.Y, tol) ||
		!scalar.EqualWithinAbs(want.Z, got.Z, tol) {
		t.Errorf("%s: got %v, want %v (tol %g)", msg, got, want, tol)
	}
}

// AssertFinite fails the test if any component of v is NaN or infinite.
func AssertFinite(t testing.TB, v r3.Vec, msg string) {
	t.Helper()
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Errorf("%s: non-finite component in %v", msg, v)
			return
		}
	}
}
