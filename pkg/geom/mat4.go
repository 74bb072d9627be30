package geom

import "math"

// Mat4 is a 4x4 matrix in column-major order: element (row r, col c) is
// m[c*4+r]. This matches the OpenGL convention, so translation lives in
// m[12..14].
type Mat4 [16]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	var m Mat4
	m[0], m[5], m[10], m[15] = 1, 1, 1, 1
	return m
}

// Translate returns a translation matrix.
func Translate(t Vec3) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

// Scale returns a uniform scale matrix.
func Scale(s float64) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = s, s, s
	return m
}

// RotateX returns a rotation about the X axis by angle radians.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

// RotateY returns a rotation about the Y axis by angle radians.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

// RotateZ returns a rotation about the Z axis by angle radians.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Mul returns a * b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var r Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				r[j*4+i] += a[k*4+i] * b[j*4+k]
			}
		}
	}
	return r
}

// MulVec4 applies the matrix to a homogeneous coordinate.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// TransformPoint applies the matrix to a point (w=1) and performs the
// perspective divide when w is nonzero.
func (m Mat4) TransformPoint(v Vec3) Vec3 {
	r := m.MulVec4(v.Homogeneous())
	if r.W != 0 {
		return Vec3{r.X / r.W, r.Y / r.W, r.Z / r.W}
	}
	return Vec3{r.X, r.Y, r.Z}
}

// LookAt returns a right-handed view matrix for a camera at eye looking
// toward target with the given up direction. World space maps to a
// camera space where the view direction is -Z.
func LookAt(eye, target, up Vec3) Mat4 {
	f := target.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	var m Mat4
	m[0], m[4], m[8] = s.X, s.Y, s.Z
	m[1], m[5], m[9] = u.X, u.Y, u.Z
	m[2], m[6], m[10] = -f.X, -f.Y, -f.Z
	m[12] = -s.Dot(eye)
	m[13] = -u.Dot(eye)
	m[14] = f.Dot(eye)
	m[15] = 1
	return m
}

// Perspective returns a perspective projection matrix. fovy is the
// vertical field of view in degrees and must lie in (0, 180); near and
// far are positive clip distances with near < far. Out-of-range
// arguments are a caller error and produce garbage geometry rather than
// a guarded failure.
func Perspective(fovy, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(DegToRad(fovy)/2)
	var m Mat4
	m[0] = f / aspect
	m[5] = f
	m[10] = (far + near) / (near - far)
	m[11] = -1
	m[14] = 2 * far * near / (near - far)
	return m
}
