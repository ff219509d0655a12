package motif

import (
	"testing"

	"github.com/curvelab/ssorder/geom"
)

var builtins = []string{
	"alpha-d-minus-trans",
	"alpha-d-plus-cis",
	"alpha-d-plus-trans",
	"alpha-minus-cis",
	"alpha-minus-trans",
	"alpha-plus-cis",
	"alpha-plus-trans",
	"c7beta-minus-cis",
	"c7beta-minus-trans",
	"c7beta-plus-cis",
	"c7beta-plus-trans",
}

func TestBuiltins(t *testing.T) {
	names := Names()
	registered := make(map[string]bool, len(names))
	for _, name := range names {
		registered[name] = true
	}
	for _, want := range builtins {
		if !registered[want] {
			t.Fatalf("built-in motif %q is not registered (have %v)",
				want, names)
		}
	}

	for _, name := range builtins {
		tmpl, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if tmpl.AtomsPerResidue != 5 {
			t.Errorf("%s: atoms per residue = %d, want 5",
				name, tmpl.AtomsPerResidue)
		}
		if tmpl.Size() != 15 {
			t.Errorf("%s: size = %d, want 15", name, tmpl.Size())
		}
		if tmpl.Residues() != 3 {
			t.Errorf("%s: residues = %d, want 3", name, tmpl.Residues())
		}
		for i, p := range tmpl.Coords {
			if !p.Finite() {
				t.Errorf("%s: atom %d has non-finite coordinates %v",
					name, i, p)
			}
		}
	}
}

// Built-in templates must not be degenerate: any two atoms sit a bonded
// distance or more apart.
func TestBuiltinsNonDegenerate(t *testing.T) {
	for _, name := range builtins {
		tmpl, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < tmpl.Size(); i++ {
			for j := i + 1; j < tmpl.Size(); j++ {
				if d := tmpl.Coords[j].Sub(tmpl.Coords[i]).Norm(); d < 0.5 {
					t.Errorf("%s: atoms %d and %d are only %v apart",
						name, i, j, d)
				}
			}
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("no-such-motif"); err == nil {
		t.Fatal("Lookup accepted an unknown motif name")
	}
}

func TestRegisterErrors(t *testing.T) {
	coords := []geom.Coords{{0, 0, 0}, {1, 0, 0}}
	bad := []*Template{
		{Name: "", AtomsPerResidue: 1, Coords: coords},
		{Name: "t", AtomsPerResidue: 0, Coords: coords},
		{Name: "t", AtomsPerResidue: 1, Coords: nil},
		{Name: "t", AtomsPerResidue: 3, Coords: coords},
		{Name: "alpha-plus-cis", AtomsPerResidue: 1, Coords: coords},
	}
	for _, tmpl := range bad {
		if err := Register(tmpl); err == nil {
			t.Errorf("Register accepted malformed template %+v", tmpl)
		}
	}
}

func TestRegister(t *testing.T) {
	tmpl := &Template{
		Name:            "test-dimer",
		AtomsPerResidue: 1,
		Coords:          []geom.Coords{{0, 0, 0}, {1, 0, 0}},
	}
	if err := Register(tmpl); err != nil {
		t.Fatal(err)
	}
	if err := Register(tmpl); err == nil {
		t.Fatal("Register accepted a duplicate name")
	}
	got, err := Lookup("test-dimer")
	if err != nil {
		t.Fatal(err)
	}
	if got != tmpl {
		t.Fatal("Lookup returned a different template than was registered")
	}
}
