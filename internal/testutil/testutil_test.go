package testutil

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// recordingTB captures failures instead of failing the enclosing test.
type recordingTB struct {
	testing.TB
	failed bool
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) { r.failed = true }

func TestAssertVecNear(t *testing.T) {
	t.Parallel()
	rec := &recordingTB{TB: t}
	AssertVecNear(rec, r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{X: 1 + 1e-12, Y: 2, Z: 3 - 1e-12}, 1e-9, "near")
	if rec.failed {
		t.Error("AssertVecNear failed for vectors within tolerance")
	}

	rec = &recordingTB{TB: t}
	AssertVecNear(rec, r3.Vec{X: 1}, r3.Vec{X: 1.1}, 1e-9, "far")
	if !rec.failed {
		t.Error("AssertVecNear passed for distant vectors")
	}
}

func TestAssertFinite(t *testing.T) {
	t.Parallel()
	rec := &recordingTB{TB: t}
	AssertFinite(rec, r3.Vec{X: 1, Y: -2, Z: 3}, "finite")
	if rec.failed {
		t.Error("AssertFinite failed for a finite vector")
	}

	for _, v := range []r3.Vec{{Y: math.NaN()}, {Z: math.Inf(-1)}} {
		rec = &recordingTB{TB: t}
		AssertFinite(rec, v, "non-finite")
		if !rec.failed {
			t.Errorf("AssertFinite passed for %v", v)
		}
	}
}
