// Package motif maintains the registry of named reference templates: the
// idealized backbone geometries that windows of a chain are compared
// against. A template is plain data — an ordered coordinate table plus the
// number of backbone atoms per residue — looked up by name, so adding a
// motif never means adding a type.
package motif

import (
	"fmt"
	"sort"

	"github.com/curvelab/ssorder/geom"
)

// Template is an immutable reference structure for one motif. Coordinates
// are stored in the units they were authored in (angstroms for the built-in
// tables); consumers apply their own unit scale.
type Template struct {
	Name            string
	AtomsPerResidue int
	Coords          []geom.Coords
}

// Residues returns the number of residues the template spans.
func (t *Template) Residues() int {
	return len(t.Coords) / t.AtomsPerResidue
}

// Size returns the number of atoms in the template.
func (t *Template) Size() int {
	return len(t.Coords)
}

func (t *Template) validate() error {
	if t.Name == "" {
		return fmt.Errorf("motif: template has no name")
	}
	if t.AtomsPerResidue <= 0 {
		return fmt.Errorf("motif: template %q must have a positive number of "+
			"atoms per residue, got %d", t.Name, t.AtomsPerResidue)
	}
	if len(t.Coords) == 0 {
		return fmt.Errorf("motif: template %q has no coordinates", t.Name)
	}
	if len(t.Coords)%t.AtomsPerResidue != 0 {
		return fmt.Errorf("motif: template %q has %d coordinates, which is "+
			"not a multiple of %d atoms per residue",
			t.Name, len(t.Coords), t.AtomsPerResidue)
	}
	return nil
}

var registry = make(map[string]*Template)

// Register adds a template to the registry. It returns an error if the
// template is malformed or the name is already taken.
func Register(t *Template) error {
	if err := t.validate(); err != nil {
		return err
	}
	if _, ok := registry[t.Name]; ok {
		return fmt.Errorf("motif: template %q is already registered", t.Name)
	}
	registry[t.Name] = t
	return nil
}

// mustRegister is Register for the built-in tables, where a failure is a
// bug in this package.
func mustRegister(t *Template) {
	if err := Register(t); err != nil {
		panic(err)
	}
}

// Lookup returns the template registered under name.
func Lookup(name string) (*Template, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("motif: no template named %q (known motifs: %v)",
			name, Names())
	}
	return t, nil
}

// Names returns the sorted names of all registered templates.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
