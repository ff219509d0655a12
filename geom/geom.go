// Package geom provides the small set of 3D primitives shared by the rest
// of the repository: coordinates, an orthorhombic periodic box with minimum
// image conventions, and a virial accumulator.
package geom

import "math"

// Coords represents a point (or displacement) in 3D space.
type Coords [3]float64

// Add returns the component-wise sum of c and d.
func (c Coords) Add(d Coords) Coords {
	return Coords{c[0] + d[0], c[1] + d[1], c[2] + d[2]}
}

// Sub returns the component-wise difference c - d.
func (c Coords) Sub(d Coords) Coords {
	return Coords{c[0] - d[0], c[1] - d[1], c[2] - d[2]}
}

// Scale returns c multiplied by the scalar k.
func (c Coords) Scale(k float64) Coords {
	return Coords{k * c[0], k * c[1], k * c[2]}
}

// Dot returns the inner product of c and d.
func (c Coords) Dot(d Coords) float64 {
	return c[0]*d[0] + c[1]*d[1] + c[2]*d[2]
}

// Norm returns the Euclidean length of c.
func (c Coords) Norm() float64 {
	return math.Sqrt(c.Dot(c))
}

// Finite reports whether every component of c is a finite number.
func (c Coords) Finite() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(c[i]) || math.IsInf(c[i], 0) {
			return false
		}
	}
	return true
}

// Centroid returns the average position of a set of points. It panics if
// the set is empty.
func Centroid(points []Coords) Coords {
	if len(points) == 0 {
		panic("geom: centroid of an empty point set")
	}
	var sum Coords
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}

// Box describes an orthorhombic periodic cell. A zero-length side means the
// system is not periodic along that axis. The zero value is a fully
// non-periodic box.
type Box struct {
	Lengths Coords
}

// Periodic reports whether the box is periodic along at least one axis.
func (b Box) Periodic() bool {
	return b.Lengths[0] > 0 || b.Lengths[1] > 0 || b.Lengths[2] > 0
}

// MinImage maps the displacement d onto its minimum image under the box.
// Axes with zero length are left untouched.
func (b Box) MinImage(d Coords) Coords {
	for i := 0; i < 3; i++ {
		if l := b.Lengths[i]; l > 0 {
			d[i] -= l * math.Round(d[i]/l)
		}
	}
	return d
}

// MakeWhole rewrites pos in place so that each point is the minimum image
// of its predecessor. The first point is the anchor and never moves. This
// reconstructs a contiguous stretch of a chain that has been wrapped into
// the box.
func (b Box) MakeWhole(pos []Coords) {
	if !b.Periodic() {
		return
	}
	for i := 1; i < len(pos); i++ {
		pos[i] = pos[i-1].Add(b.MinImage(pos[i].Sub(pos[i-1])))
	}
}

// Virial is a 3x3 box-derivative accumulator, stored row-major.
type Virial [3][3]float64

// AddOuter accumulates -grad (x) pos into the virial, the usual convention
// for the box derivative of a term whose atom gradient is grad.
func (v *Virial) AddOuter(grad, pos Coords) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v[i][j] -= grad[i] * pos[j]
		}
	}
}

// Add accumulates w into v.
func (v *Virial) Add(w Virial) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v[i][j] += w[i][j]
		}
	}
}

// AddScaled accumulates k*w into v.
func (v *Virial) AddScaled(k float64, w Virial) {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			v[i][j] += k * w[i][j]
		}
	}
}
