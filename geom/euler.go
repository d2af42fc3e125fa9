package geom

import "math"

// RotationOrder names the intrinsic axis order of an Euler rotation.
// RotationOrderXYZ means R = Rx * Ry * Rz.
type RotationOrder int

const (
	RotationOrderXYZ RotationOrder = iota
	RotationOrderYXZ
	RotationOrderZXY
	RotationOrderZYX
)

// RotationOrderHostZXY is the order a host application labels "ZXY" (extrinsic Z, X, Y).
const RotationOrderHostZXY = RotationOrderYXZ

type EulerAngles struct {
	X, Y, Z float64
	Order   RotationOrder
}

func NewEuler(x, y, z float64, order RotationOrder) *EulerAngles {
	return &EulerAngles{X: x, Y: y, Z: z, Order: order}
}

func (v *EulerAngles) ToQuaternion() *Quaternion {
	cx := math.Cos(v.X / 2)
	cy := math.Cos(v.Y / 2)
	cz := math.Cos(v.Z / 2)
	sx := math.Sin(v.X / 2)
	sy := math.Sin(v.Y / 2)
	sz := math.Sin(v.Z / 2)

	switch v.Order {
	case RotationOrderXYZ:
		return &Quaternion{
			X: sx*cy*cz + cx*sy*sz,
			Y: cx*sy*cz - sx*cy*sz,
			Z: cx*cy*sz + sx*sy*cz,
			W: cx*cy*cz - sx*sy*sz}
	case RotationOrderYXZ:
		return &Quaternion{
			X: sx*cy*cz + cx*sy*sz,
			Y: cx*sy*cz - sx*cy*sz,
			Z: cx*cy*sz - sx*sy*cz,
			W: cx*cy*cz + sx*sy*sz}
	case RotationOrderZXY:
		return &Quaternion{
			X: sx*cy*cz - cx*sy*sz,
			Y: cx*sy*cz + sx*cy*sz,
			Z: cx*cy*sz + sx*sy*cz,
			W: cx*cy*cz - sx*sy*sz}
	case RotationOrderZYX:
		return &Quaternion{
			X: sx*cy*cz - cx*sy*sz,
			Y: cx*sy*cz + sx*cy*sz,
			Z: cx*cy*sz - sx*sy*cz,
			W: cx*cy*cz + sx*sy*sz}
	default:
		return NewIdentityQuaternion()
	}
}
