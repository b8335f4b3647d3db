package dynamo

import (
	"math"
	"testing"
)

func TestVec3_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec3
		valid bool
	}{
		{"zero", Vec3{}, true},
		{"normal", Vec3{1, 2, 3}, true},
		{"with NaN", Vec3{1, math.NaN(), 0}, false},
		{"with +Inf", Vec3{math.Inf(1), 0, 0}, false},
		{"with -Inf", Vec3{0, 0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec3_Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	if got := a.Add(b); got != (Vec3{5, 7, 9}) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != (Vec3{3, 3, 3}) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := (Vec3{3, 4, 12}).Norm(); math.Abs(got-13) > 1e-12 {
		t.Errorf("Norm = %v, want 13", got)
	}
}

func TestTrajectory_Projections(t *testing.T) {
	tr := Trajectory{{1, 2, 3}, {4, 5, 6}}

	xy := tr.XY()
	if len(xy) != 2 || xy[1] != (Point2{4, 5}) {
		t.Errorf("XY failed: got %v", xy)
	}

	m := tr.Matrix()
	if len(m) != 2 || len(m[0]) != 3 || m[1][2] != 6 {
		t.Errorf("Matrix failed: got %v", m)
	}
}

func TestTrajectory_CloneIsIndependent(t *testing.T) {
	tr := Trajectory{{1, 1, 1}}
	c := tr.Clone()
	c[0].X = 99
	if tr[0].X == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestHistories_Len(t *testing.T) {
	h := Histories{{{}, {}}, {{}, {}}, {{}, {}}}
	if h.Len() != 2 {
		t.Errorf("Len = %d, want 2", h.Len())
	}

	h[2] = h[2][:1]
	if h.Len() != -1 {
		t.Errorf("Len = %d, want -1 for mismatched histories", h.Len())
	}
}
