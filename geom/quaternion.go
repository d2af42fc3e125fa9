package geom

import "math"

type Quaternion struct {
	X float64
	Y float64
	Z float64
	W float64
}

func NewIdentityQuaternion() *Quaternion {
	return &Quaternion{W: 1}
}

func NewQuaternionFromAxisAngle(axis [3]float64, rad float64) *Quaternion {
	s := math.Sin(rad / 2)
	return &Quaternion{X: axis[0] * s, Y: axis[1] * s, Z: axis[2] * s, W: math.Cos(rad / 2)}
}

// Mul returns q * q2 (q2 is applied first).
func (q *Quaternion) Mul(q2 *Quaternion) *Quaternion {
	return &Quaternion{
		X: q.W*q2.X + q.X*q2.W + q.Y*q2.Z - q.Z*q2.Y,
		Y: q.W*q2.Y - q.X*q2.Z + q.Y*q2.W + q.Z*q2.X,
		Z: q.W*q2.Z + q.X*q2.Y - q.Y*q2.X + q.Z*q2.W,
		W: q.W*q2.W - q.X*q2.X - q.Y*q2.Y - q.Z*q2.Z,
	}
}

func (q *Quaternion) Len() float64 {
	return math.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// WXYZ returns the components in host storage order.
func (q *Quaternion) WXYZ() [4]float64 {
	return [4]float64{q.W, q.X, q.Y, q.Z}
}
