package rmsd

import (
	"fmt"
	"math"

	"github.com/curvelab/ssorder/geom"
)

// Result carries a structural distance, its analytic gradient with respect
// to every atom of the measured structure, and the associated box
// derivative. Degenerate is set by the Optimal metric when the best-fit
// rotation was ambiguous; the value is still usable (it was computed with
// the documented identity fallback) but callers may want to know.
type Result struct {
	Dist       float64
	Grad       []geom.Coords
	Virial     geom.Virial
	Degenerate bool
}

// Calculator measures the structural distance between a set of instantaneous
// coordinates and a fixed reference structure. Implementations are immutable
// after construction and safe for concurrent use; the *Mem variants allow
// callers to supply per-goroutine scratch space and avoid allocation.
type Calculator interface {
	// Size returns the number of atoms the calculator expects.
	Size() int

	// Distance computes the distance and gradient for pos. The coordinates
	// must already be whole (free of periodic wrapping); see geom.MakeWhole.
	Distance(pos []geom.Coords) Result

	// DistanceMem is Distance with caller-provided scratch space. mem must
	// have been created with NewMemory(Size()) and must not be shared
	// between goroutines.
	DistanceMem(mem *Memory, pos []geom.Coords) Result
}

// distZero is the distance below which a structure is considered to match
// the reference exactly. The gradient of the RMS displacement is singular
// there, and identically zero by symmetry, so we return zero.
const distZero = 1e-10

// Optimal computes the minimal root mean square atomic displacement between
// the instantaneous structure and the reference after best-fit translation
// and proper rotation. It is invariant under global rotation and
// translation of the structure but, unlike Pairwise, sensitive to
// reflection.
type Optimal struct {
	refCols [3][]float64 // centered reference, column layout for the QC core
	refPts  []geom.Coords
	n       int
}

// NewOptimal creates an optimal-superposition calculator for the given
// reference coordinates. The reference is multiplied by scale (use 1 if the
// reference is already in simulation units), centered once, and shared
// read-only by all subsequent calls.
func NewOptimal(ref []geom.Coords, scale float64) (*Optimal, error) {
	if len(ref) == 0 {
		return nil, fmt.Errorf("rmsd: reference structure must not be empty")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("rmsd: reference scale must be positive, got %g", scale)
	}
	o := &Optimal{n: len(ref)}
	scaled := make([]geom.Coords, len(ref))
	for i, p := range ref {
		scaled[i] = p.Scale(scale)
	}
	c := geom.Centroid(scaled)
	o.refPts = make([]geom.Coords, len(ref))
	for i := 0; i < 3; i++ {
		o.refCols[i] = make([]float64, len(ref))
	}
	for i, p := range scaled {
		o.refPts[i] = p.Sub(c)
		o.refCols[0][i] = o.refPts[i][0]
		o.refCols[1][i] = o.refPts[i][1]
		o.refCols[2][i] = o.refPts[i][2]
	}
	return o, nil
}

// Size returns the number of atoms in the reference.
func (o *Optimal) Size() int {
	return o.n
}

// Distance computes the minimized RMS displacement and its gradient.
func (o *Optimal) Distance(pos []geom.Coords) Result {
	return o.DistanceMem(NewMemory(o.n), pos)
}

// DistanceMem is Distance with caller-provided scratch space.
//
// Because the rotation is a stationary point of the displacement
// functional, its variation with atom position contributes nothing to first
// order, and the gradient reduces to the displacement between each atom and
// its optimally rotated reference partner, scaled by 1/(N*d).
func (o *Optimal) DistanceMem(mem *Memory, pos []geom.Coords) Result {
	if len(pos) != o.n {
		panic(fmt.Sprintf("rmsd: Optimal built for %d atoms was given %d",
			o.n, len(pos)))
	}
	mem.loadCentered(pos)
	dist, rot, degenerate := superpose(mem, o.refCols)

	res := Result{
		Dist:       dist,
		Grad:       make([]geom.Coords, o.n),
		Degenerate: degenerate,
	}
	if dist < distZero {
		return res
	}
	inv := 1 / (dist * float64(o.n))
	for i := 0; i < o.n; i++ {
		aligned := rotate(rot, o.refPts[i])
		res.Grad[i] = mem.centered(i).Sub(aligned).Scale(inv)
		res.Virial.AddOuter(res.Grad[i], pos[i])
	}
	return res
}

// Pairwise computes a distance-matrix RMSD: the root mean square difference
// between the instantaneous and reference interatomic distances over every
// unordered atom pair. No alignment is performed, so the metric is
// invariant under rotation, translation and reflection.
type Pairwise struct {
	refDist []float64 // upper triangle, row-major: (i,j) with j > i
	n       int
}

// NewPairwise creates a pairwise-distance calculator for the given
// reference coordinates, scaled like NewOptimal.
func NewPairwise(ref []geom.Coords, scale float64) (*Pairwise, error) {
	if len(ref) < 2 {
		return nil, fmt.Errorf("rmsd: a pairwise reference needs at least "+
			"2 atoms, got %d", len(ref))
	}
	if scale <= 0 {
		return nil, fmt.Errorf("rmsd: reference scale must be positive, got %g", scale)
	}
	p := &Pairwise{
		n:       len(ref),
		refDist: make([]float64, 0, len(ref)*(len(ref)-1)/2),
	}
	for i := 0; i < len(ref); i++ {
		for j := i + 1; j < len(ref); j++ {
			p.refDist = append(p.refDist, ref[j].Sub(ref[i]).Norm()*scale)
		}
	}
	return p, nil
}

// Size returns the number of atoms in the reference.
func (p *Pairwise) Size() int {
	return p.n
}

// Distance computes the pairwise-distance metric and its gradient.
func (p *Pairwise) Distance(pos []geom.Coords) Result {
	return p.DistanceMem(nil, pos)
}

// DistanceMem is Distance; the Pairwise metric needs no scratch space and
// ignores mem. It exists to satisfy Calculator.
func (p *Pairwise) DistanceMem(_ *Memory, pos []geom.Coords) Result {
	if len(pos) != p.n {
		panic(fmt.Sprintf("rmsd: Pairwise built for %d atoms was given %d",
			p.n, len(pos)))
	}
	res := Result{Grad: make([]geom.Coords, p.n)}
	npairs := float64(len(p.refDist))

	var sum float64
	k := 0
	for i := 0; i < p.n; i++ {
		for j := i + 1; j < p.n; j++ {
			diff := pos[j].Sub(pos[i])
			delta := diff.Norm() - p.refDist[k]
			sum += delta * delta
			k++
		}
	}
	res.Dist = math.Sqrt(sum / npairs)
	if res.Dist < distZero {
		return res
	}

	// d^2 = (1/P) sum (|r_ij| - ref_ij)^2, so
	// dd/dx_j = (|r_ij| - ref_ij) * unit_ij / (P*d) and dd/dx_i the negative.
	inv := 1 / (res.Dist * npairs)
	k = 0
	for i := 0; i < p.n; i++ {
		for j := i + 1; j < p.n; j++ {
			diff := pos[j].Sub(pos[i])
			r := diff.Norm()
			if r < distZero {
				// Coincident atoms have no pair direction; the pair still
				// contributes to the value but not to the gradient.
				k++
				continue
			}
			delta := r - p.refDist[k]
			g := diff.Scale(inv * delta / r)
			res.Grad[j] = res.Grad[j].Add(g)
			res.Grad[i] = res.Grad[i].Sub(g)
			k++
		}
	}
	for i := 0; i < p.n; i++ {
		res.Virial.AddOuter(res.Grad[i], pos[i])
	}
	return res
}
