package dynamo

import (
	"fmt"
	"math"
)

// NumBodies is fixed: primary, secondary and test body.
const NumBodies = 3

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v.X * f, v.Y * f, v.Z * f}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// IsValid reports whether every component is finite.
func (v Vec3) IsValid() bool {
	for _, c := range [3]float64{v.X, v.Y, v.Z} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v Vec3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}

// Point2 is a position projected onto the x/y plane.
type Point2 struct {
	X, Y float64
}

type Trajectory []Vec3

func (t Trajectory) Clone() Trajectory {
	c := make(Trajectory, len(t))
	copy(c, t)
	return c
}

// XY drops the z component of every sample.
func (t Trajectory) XY() []Point2 {
	pts := make([]Point2, len(t))
	for i, p := range t {
		pts[i] = Point2{X: p.X, Y: p.Y}
	}
	return pts
}

// Matrix returns one row per sample with the x, y, z columns.
func (t Trajectory) Matrix() [][]float64 {
	rows := make([][]float64, len(t))
	for i, p := range t {
		rows[i] = p.Slice()
	}
	return rows
}

// IsValid reports whether every sample is finite.
func (t Trajectory) IsValid() bool {
	for _, p := range t {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// Histories holds one trajectory per body, indexed 0..2 for bodies 1..3.
type Histories [NumBodies]Trajectory

// Len returns the common sample count, or -1 if the trajectories disagree.
func (h Histories) Len() int {
	n := len(h[0])
	for _, t := range h[1:] {
		if len(t) != n {
			return -1
		}
	}
	return n
}
