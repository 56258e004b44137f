package common

import (
	"math"
)

// Returns the square of the value.
func Sqr[T IT](a T) T {
	return a * a
}

// Returns the absolute value.
func Abs[T IT](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

func Clamp[T IT](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Lerp[T ~float32 | ~float64](a, b, t T) T {
	return a + (b-a)*t
}

func Sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}

func Cos32(v float32) float32 {
	return float32(math.Cos(float64(v)))
}

func Atan232(y, x float32) float32 {
	return float32(math.Atan2(float64(y), float64(x)))
}

// Vlerp interpolates between two points.
func Vlerp(a, b Vec3, t float32) Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Vdist returns the distance between two points.
func Vdist(a, b Vec3) float32 {
	return b.Sub(a).Len()
}

// Vdist2D returns the distance between two points on the ground plane,
// ignoring the vertical axis.
func Vdist2D(a, b Vec3) float32 {
	dx := b.X() - a.X()
	dz := b.Z() - a.Z()
	return Sqrt32(dx*dx + dz*dz)
}

// TriArea2D returns twice the signed area of the triangle abc projected onto
// the ground plane. Positive when c lies to the left of the segment ab seen
// from above.
func TriArea2D(a, b, c Vec3) float32 {
	abx := b.X() - a.X()
	abz := b.Z() - a.Z()
	acx := c.X() - a.X()
	acz := c.Z() - a.Z()
	return acx*abz - abx*acz
}
