package rmsd

// The superposition core is a Go rendering of the QCProt reference code.
// cgo is not an option here: the calculator runs once per window per
// simulation step from many goroutines, and high frequency cgo calls from
// multiple threads perform badly.
//
// If you use this QC rotation calculation method in a publication, please
// reference:
//
//	Douglas L. Theobald (2005)
//	"Rapid calculation of RMSD using a quaternion-based characteristic
//	polynomial."
//	Acta Crystallographica A 61(4):478-480.
//
//	Pu Liu, Dmitris K. Agrafiotis, and Douglas L. Theobald (2009)
//	"Fast determination of the optimal rotational matrix for macromolecular
//	superpositions."
//	Journal of Computational Chemistry 31(7):1561-1563.

import (
	"math"

	"github.com/curvelab/ssorder/geom"
)

// Memory is reusable scratch space for superposition calculations of a
// fixed structure size. Only one goroutine may use a Memory at a time;
// concurrent callers should each construct their own.
type Memory struct {
	cur [3][]float64
}

// NewMemory creates scratch space for structures of n atoms.
func NewMemory(n int) *Memory {
	var mem Memory
	for i := 0; i < 3; i++ {
		mem.cur[i] = make([]float64, n)
	}
	return &mem
}

func (mem *Memory) size() int {
	return len(mem.cur[0])
}

// loadCentered copies pos into the scratch buffers and subtracts the
// centroid.
func (mem *Memory) loadCentered(pos []geom.Coords) {
	c := geom.Centroid(pos)
	for i, p := range pos {
		mem.cur[0][i] = p[0] - c[0]
		mem.cur[1][i] = p[1] - c[1]
		mem.cur[2][i] = p[2] - c[2]
	}
}

// centered returns the i'th centered point currently loaded in mem.
func (mem *Memory) centered(i int) geom.Coords {
	return geom.Coords{mem.cur[0][i], mem.cur[1][i], mem.cur[2][i]}
}

// superpose computes the minimized RMSD between the centered coordinates in
// mem and the centered reference ref, along with the proper rotation that
// best maps ref onto the coordinates in mem. The rotation is row-major.
// degenerate is set when the optimal rotation is ambiguous (no row of the
// key matrix adjoint resolved the leading eigenvector) and the identity was
// returned instead.
func superpose(mem *Memory, ref [3][]float64) (rmsd float64, rot [9]float64, degenerate bool) {
	E0, A := innerProduct(mem.cur, ref)
	return fastCalcRMSDAndRotation(A, E0, mem.size())
}

// innerProduct computes the cross-covariance matrix A between two centered
// coordinate sets along with half the sum of their squared norms (the E0 of
// the QCP papers). With arguments (cur, ref), the rotation later derived
// from A maps ref onto cur.
func innerProduct(coords1, coords2 [3][]float64) (float64, [9]float64) {
	var x1, x2, y1, y2, z1, z2 float64
	numCoords := len(coords1[0])
	fx1, fy1, fz1 := coords1[0], coords1[1], coords1[2]
	fx2, fy2, fz2 := coords2[0], coords2[1], coords2[2]
	var G1, G2 float64 = 0.0, 0.0
	var A [9]float64
	for i := 0; i < numCoords; i++ {
		x1, y1, z1 = fx1[i], fy1[i], fz1[i]
		x2, y2, z2 = fx2[i], fy2[i], fz2[i]

		G1 += x1*x1 + y1*y1 + z1*z1
		G2 += x2*x2 + y2*y2 + z2*z2

		A[0] += x1 * x2
		A[1] += x1 * y2
		A[2] += x1 * z2

		A[3] += y1 * x2
		A[4] += y1 * y2
		A[5] += y1 * z2

		A[6] += z1 * x2
		A[7] += z1 * y2
		A[8] += z1 * z2
	}
	return 0.5 * (G1 + G2), A
}

func fastCalcRMSDAndRotation(
	A [9]float64, E0 float64, numCoords int) (float64, [9]float64, bool) {

	// These are some crazy names...
	var Sxx, Sxy, Sxz, Syx, Syy, Syz, Szx, Szy, Szz float64
	var Szz2, Syy2, Sxx2, Sxy2, Syz2, Sxz2, Syx2, Szy2, Szx2 float64
	var SyzSzymSyySzz2, Sxx2Syy2Szz2Syz2Szy2, Sxy2Sxz2Syx2Szx2 float64
	var SxzpSzx, SyzpSzy, SxypSyx, SyzmSzy float64
	var SxzmSzx, SxymSyx, SxxpSyy, SxxmSyy float64
	var C [4]float64
	var mxEigenV float64
	var oldg float64 = 0.0
	var b, a, delta, qsqr float64
	var q1, q2, q3, q4, normq float64
	var a11, a12, a13, a14, a21, a22, a23, a24 float64
	var a31, a32, a33, a34, a41, a42, a43, a44 float64
	var a2, x2, y2, z2 float64
	var xy, az, zx, ay, yz, ax float64
	var a3344_4334, a3244_4234, a3243_4233 float64
	var a3143_4133, a3144_4134, a3142_4132 float64
	var evecprec float64 = 1e-6
	var evalprec float64 = 1e-11

	Sxx, Sxy, Sxz = A[0], A[1], A[2]
	Syx, Syy, Syz = A[3], A[4], A[5]
	Szx, Szy, Szz = A[6], A[7], A[8]

	Sxx2 = Sxx * Sxx
	Syy2 = Syy * Syy
	Szz2 = Szz * Szz

	Sxy2 = Sxy * Sxy
	Syz2 = Syz * Syz
	Sxz2 = Sxz * Sxz

	Syx2 = Syx * Syx
	Szy2 = Szy * Szy
	Szx2 = Szx * Szx

	SyzSzymSyySzz2 = 2.0 * (Syz*Szy - Syy*Szz)
	Sxx2Syy2Szz2Syz2Szy2 = Syy2 + Szz2 - Sxx2 + Syz2 + Szy2

	C[2] = -2.0 * (Sxx2 + Syy2 + Szz2 + Sxy2 + Syx2 +
		Sxz2 + Szx2 + Syz2 + Szy2)
	C[1] = 8.0 * (Sxx*Syz*Szy + Syy*Szx*Sxz + Szz*Sxy*Syx -
		Sxx*Syy*Szz - Syz*Szx*Sxy - Szy*Syx*Sxz)

	SxzpSzx = Sxz + Szx
	SyzpSzy = Syz + Szy
	SxypSyx = Sxy + Syx
	SyzmSzy = Syz - Szy
	SxzmSzx = Sxz - Szx
	SxymSyx = Sxy - Syx
	SxxpSyy = Sxx + Syy
	SxxmSyy = Sxx - Syy
	Sxy2Sxz2Syx2Szx2 = Sxy2 + Sxz2 - Syx2 - Szx2

	C[0] = Sxy2Sxz2Syx2Szx2*Sxy2Sxz2Syx2Szx2 +
		(Sxx2Syy2Szz2Syz2Szy2+SyzSzymSyySzz2)*
			(Sxx2Syy2Szz2Syz2Szy2-SyzSzymSyySzz2) +
		(-(SxzpSzx)*(SyzmSzy)+(SxymSyx)*(SxxmSyy-Szz))*
			(-(SxzmSzx)*(SyzpSzy)+(SxymSyx)*(SxxmSyy+Szz)) +
		(-(SxzpSzx)*(SyzpSzy)-(SxypSyx)*(SxxpSyy-Szz))*
			(-(SxzmSzx)*(SyzmSzy)-(SxypSyx)*(SxxpSyy+Szz)) +
		(+(SxypSyx)*(SyzpSzy)+(SxzpSzx)*(SxxmSyy+Szz))*
			(-(SxymSyx)*(SyzmSzy)+(SxzpSzx)*(SxxpSyy+Szz)) +
		(+(SxypSyx)*(SyzmSzy)+(SxzmSzx)*(SxxmSyy-Szz))*
			(-(SxymSyx)*(SyzpSzy)+(SxzmSzx)*(SxxpSyy-Szz))

	// Newton-Raphson on the characteristic quartic, seeded with E0 which is
	// an upper bound on the largest eigenvalue.
	mxEigenV = E0
	for i := 0; i < 50; i++ {
		oldg = mxEigenV
		x2 = mxEigenV * mxEigenV
		b = (x2 + C[2]) * mxEigenV
		a = b + C[1]
		delta = (a*mxEigenV + C[0]) / (2.0*x2*mxEigenV + b + a)
		mxEigenV -= delta
		if math.Abs(mxEigenV-oldg) < math.Abs(evalprec*mxEigenV) {
			break
		}
	}

	rmsd := math.Sqrt(math.Abs(2.0 * (E0 - mxEigenV) / float64(numCoords)))

	a11 = SxxpSyy + Szz - mxEigenV
	a12 = SyzmSzy
	a13 = -SxzmSzx
	a14 = SxymSyx
	a21 = SyzmSzy
	a22 = SxxmSyy - Szz - mxEigenV
	a23 = SxypSyx
	a24 = SxzpSzx
	a31 = a13
	a32 = a23
	a33 = Syy - Sxx - Szz - mxEigenV
	a34 = SyzpSzy
	a41 = a14
	a42 = a24
	a43 = a34
	a44 = Szz - SxxpSyy - mxEigenV
	a3344_4334 = a33*a44 - a43*a34
	a3244_4234 = a32*a44 - a42*a34
	a3243_4233 = a32*a43 - a42*a33
	a3143_4133 = a31*a43 - a41*a33
	a3144_4134 = a31*a44 - a41*a34
	a3142_4132 = a31*a42 - a41*a32
	q1 = a22*a3344_4334 - a23*a3244_4234 + a24*a3243_4233
	q2 = -a21*a3344_4334 + a23*a3144_4134 - a24*a3143_4133
	q3 = a21*a3244_4234 - a22*a3144_4134 + a24*a3142_4132
	q4 = -a21*a3243_4233 + a22*a3143_4133 - a23*a3142_4132

	// The rotation quaternion is read off the adjoint of the key matrix.
	// When a row of the adjoint is vanishingly small the eigenvector has no
	// component there, so try the next row.
	qsqr = q1*q1 + q2*q2 + q3*q3 + q4*q4
	if qsqr < evecprec {
		q1 = a12*a3344_4334 - a13*a3244_4234 + a14*a3243_4233
		q2 = -a11*a3344_4334 + a13*a3144_4134 - a14*a3143_4133
		q3 = a11*a3244_4234 - a12*a3144_4134 + a14*a3142_4132
		q4 = -a11*a3243_4233 + a12*a3143_4133 - a13*a3142_4132
		qsqr = q1*q1 + q2*q2 + q3*q3 + q4*q4

		if qsqr < evecprec {
			a1324_1423 := a13*a24 - a14*a23
			a1224_1422 := a12*a24 - a14*a22
			a1223_1322 := a12*a23 - a13*a22
			a1124_1421 := a11*a24 - a14*a21
			a1123_1321 := a11*a23 - a13*a21
			a1122_1221 := a11*a22 - a12*a21

			q1 = a42*a1324_1423 - a43*a1224_1422 + a44*a1223_1322
			q2 = -a41*a1324_1423 + a43*a1124_1421 - a44*a1123_1321
			q3 = a41*a1224_1422 - a42*a1124_1421 + a44*a1122_1221
			q4 = -a41*a1223_1322 + a42*a1123_1321 - a43*a1122_1221
			qsqr = q1*q1 + q2*q2 + q3*q3 + q4*q4

			if qsqr < evecprec {
				q1 = a32*a1324_1423 - a33*a1224_1422 + a34*a1223_1322
				q2 = -a31*a1324_1423 + a33*a1124_1421 - a34*a1123_1321
				q3 = a31*a1224_1422 - a32*a1124_1421 + a34*a1122_1221
				q4 = -a31*a1223_1322 + a32*a1123_1321 - a33*a1122_1221
				qsqr = q1*q1 + q2*q2 + q3*q3 + q4*q4

				if qsqr < evecprec {
					// Every row of the adjoint is negligible: the optimal
					// rotation is ambiguous. Report the identity and let
					// the caller flag the window.
					return rmsd, [9]float64{
						1.0, 0.0, 0.0,
						0.0, 1.0, 0.0,
						0.0, 0.0, 1.0,
					}, true
				}
			}
		}
	}

	normq = math.Sqrt(qsqr)
	q1 /= normq
	q2 /= normq
	q3 /= normq
	q4 /= normq

	a2 = q1 * q1
	x2 = q2 * q2
	y2 = q3 * q3
	z2 = q4 * q4

	xy = q2 * q3
	az = q1 * q4
	zx = q4 * q2
	ay = q1 * q3
	yz = q3 * q4
	ax = q1 * q2

	var rot [9]float64
	rot[0] = a2 + x2 - y2 - z2
	rot[1] = 2 * (xy + az)
	rot[2] = 2 * (zx - ay)
	rot[3] = 2 * (xy - az)
	rot[4] = a2 - x2 + y2 - z2
	rot[5] = 2 * (yz + ax)
	rot[6] = 2 * (zx + ay)
	rot[7] = 2 * (yz - ax)
	rot[8] = a2 - x2 - y2 + z2

	return rmsd, rot, false
}

// rotate applies a row-major rotation matrix to p.
func rotate(rot [9]float64, p geom.Coords) geom.Coords {
	return geom.Coords{
		rot[0]*p[0] + rot[1]*p[1] + rot[2]*p[2],
		rot[3]*p[0] + rot[4]*p[1] + rot[5]*p[2],
		rot[6]*p[0] + rot[7]*p[1] + rot[8]*p[2],
	}
}
