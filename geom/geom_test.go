package geom

import (
	"math"
	"testing"
)

func TestCentroid(t *testing.T) {
	pts := []Coords{
		{0, 0, 0},
		{2, 4, 6},
		{4, 8, -6},
	}
	c := Centroid(pts)
	want := Coords{2, 4, 0}
	if c.Sub(want).Norm() > 1e-12 {
		t.Fatalf("centroid = %v, want %v", c, want)
	}
}

func TestCentroidEmptyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("centroid of an empty set did not panic")
		}
	}()
	Centroid(nil)
}

func TestFinite(t *testing.T) {
	if !(Coords{1, -2, 3}).Finite() {
		t.Error("finite coordinates reported as non-finite")
	}
	if (Coords{math.NaN(), 0, 0}).Finite() {
		t.Error("NaN coordinate reported as finite")
	}
	if (Coords{0, math.Inf(1), 0}).Finite() {
		t.Error("infinite coordinate reported as finite")
	}
}

func TestMinImage(t *testing.T) {
	box := Box{Lengths: Coords{10, 10, 10}}
	tests := []struct {
		d, want Coords
	}{
		{Coords{1, 2, 3}, Coords{1, 2, 3}},
		{Coords{6, 0, 0}, Coords{-4, 0, 0}},
		{Coords{-6, 0, 0}, Coords{4, 0, 0}},
		{Coords{11, -11, 0}, Coords{1, -1, 0}},
		{Coords{4.9, -4.9, 0}, Coords{4.9, -4.9, 0}},
	}
	for _, tt := range tests {
		got := box.MinImage(tt.d)
		if got.Sub(tt.want).Norm() > 1e-12 {
			t.Errorf("MinImage(%v) = %v, want %v", tt.d, got, tt.want)
		}
	}
}

func TestMinImageNonPeriodicAxis(t *testing.T) {
	box := Box{Lengths: Coords{10, 0, 10}}
	got := box.MinImage(Coords{6, 17, 6})
	want := Coords{-4, 17, -4}
	if got.Sub(want).Norm() > 1e-12 {
		t.Fatalf("MinImage = %v, want %v", got, want)
	}
}

func TestPeriodic(t *testing.T) {
	if (Box{}).Periodic() {
		t.Error("zero box reported as periodic")
	}
	if !(Box{Lengths: Coords{0, 5, 0}}).Periodic() {
		t.Error("box with one periodic axis reported as non-periodic")
	}
}

// A chain wrapped into the box must come out contiguous, anchored at its
// first atom.
func TestMakeWhole(t *testing.T) {
	box := Box{Lengths: Coords{10, 10, 10}}

	// A straight chain along x with spacing 1, starting near the boundary.
	whole := make([]Coords, 6)
	for i := range whole {
		whole[i] = Coords{8.5 + float64(i), 1, 1}
	}
	wrapped := make([]Coords, len(whole))
	for i, p := range whole {
		wrapped[i] = p
		wrapped[i][0] = math.Mod(p[0], 10)
	}

	box.MakeWhole(wrapped)
	for i := range whole {
		if wrapped[i].Sub(whole[i]).Norm() > 1e-12 {
			t.Fatalf("atom %d reconstructed at %v, want %v",
				i, wrapped[i], whole[i])
		}
	}
}

func TestMakeWholeNonPeriodic(t *testing.T) {
	pos := []Coords{{0, 0, 0}, {100, 0, 0}}
	(Box{}).MakeWhole(pos)
	if pos[1] != (Coords{100, 0, 0}) {
		t.Fatalf("non-periodic MakeWhole moved an atom: %v", pos[1])
	}
}

func TestVirial(t *testing.T) {
	var v Virial
	v.AddOuter(Coords{1, 0, 0}, Coords{0, 2, 0})
	if v[0][1] != -2 {
		t.Fatalf("AddOuter accumulated %v, want -2 at [0][1]", v[0][1])
	}

	var w Virial
	w.AddScaled(3, v)
	if w[0][1] != -6 {
		t.Fatalf("AddScaled accumulated %v, want -6 at [0][1]", w[0][1])
	}
	w.Add(v)
	if w[0][1] != -8 {
		t.Fatalf("Add accumulated %v, want -8 at [0][1]", w[0][1])
	}
}
