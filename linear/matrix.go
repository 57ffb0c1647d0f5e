package linear

import "github.com/go-gl/mathgl/mgl64"

// M4 is a column-major 4x4 matrix, the same layout as mgl64.Mat4.
// Points are column vectors: p' = M ⋅ p.
type M4 mgl64.Mat4

func (m M4) mgl() mgl64.Mat4 { return mgl64.Mat4(m) }

// Identity returns the identity matrix.
func Identity() M4 { return M4(mgl64.Ident4()) }

// Mul returns l ⋅ r.
func (l M4) Mul(r M4) M4 { return M4(l.mgl().Mul4(r.mgl())) }

// Translate returns a translation matrix.
func Translate(t Vec3) M4 { return M4(mgl64.Translate3D(t[0], t[1], t[2])) }

// Scale returns a scaling matrix.
func Scale(s Vec3) M4 { return M4(mgl64.Scale3D(s[0], s[1], s[2])) }

// RotateX returns a rotation of rad radians about the X axis.
func RotateX(rad float64) M4 { return M4(mgl64.HomogRotate3DX(rad)) }

// RotateY returns a rotation of rad radians about the Y axis.
func RotateY(rad float64) M4 { return M4(mgl64.HomogRotate3DY(rad)) }

// RotateZ returns a rotation of rad radians about the Z axis.
func RotateZ(rad float64) M4 { return M4(mgl64.HomogRotate3DZ(rad)) }

// Euler returns the rotation for intrinsic XYZ angles, Rx ⋅ Ry ⋅ Rz.
// Z is applied to a point first.
func Euler(r Vec3) M4 {
	return RotateX(r[0]).Mul(RotateY(r[1])).Mul(RotateZ(r[2]))
}

// Compose returns T ⋅ R ⋅ S for the given position, Euler rotation and scale.
func Compose(pos, rot, scale Vec3) M4 {
	return Translate(pos).Mul(Euler(rot)).Mul(Scale(scale))
}

// Point transforms p as a point (w = 1).
func (m M4) Point(p Vec3) Vec3 {
	return Vec3(m.mgl().Mul4x1(mgl64.Vec3(p).Vec4(1)).Vec3())
}

// Dir transforms d as a direction (w = 0).
func (m M4) Dir(d Vec3) Vec3 {
	return Vec3(m.mgl().Mul4x1(mgl64.Vec3(d).Vec4(0)).Vec3())
}

// Basis returns column i (0, 1 or 2) of m: the image of that unit axis.
func (m M4) Basis(i int) Vec3 { return Vec3(m.mgl().Col(i).Vec3()) }

// Translation returns the translation column of m.
func (m M4) Translation() Vec3 { return Vec3(m.mgl().Col(3).Vec3()) }

// LookAt returns a view matrix for an eye at eye looking at center.
// The camera looks down its local -Z axis.
func LookAt(eye, center, up Vec3) M4 {
	return M4(mgl64.LookAtV(mgl64.Vec3(eye), mgl64.Vec3(center), mgl64.Vec3(up)))
}
