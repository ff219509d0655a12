package colvar

import (
	"fmt"

	"github.com/curvelab/ssorder/motif"
)

// Chain is an ordered run of backbone atoms, identified by their indices
// into the caller's coordinate array and partitioned into residues of a
// fixed atom count. The engine only consumes the ordering and length;
// which atoms make up a backbone is the caller's business.
type Chain struct {
	Name  string
	Atoms []int
}

// Residues returns the number of residues in the chain for the given atoms
// per residue.
func (c Chain) Residues(atomsPerResidue int) int {
	return len(c.Atoms) / atomsPerResidue
}

// enumerateWindows produces every contiguous residue-aligned window of
// template length from each chain: a chain of L residues yields L-T+1
// windows for a template of T residues. Windows never split a residue and
// windows from different chains never overlap.
func enumerateWindows(tmpl *motif.Template, chains []Chain) ([][]int, error) {
	if len(chains) == 0 {
		return nil, fmt.Errorf("colvar: at least one backbone chain is required")
	}
	apr := tmpl.AtomsPerResidue
	tres := tmpl.Residues()

	var windows [][]int
	for ci, chain := range chains {
		if len(chain.Atoms)%apr != 0 {
			return nil, fmt.Errorf("colvar: backbone chain %s has %d atoms, "+
				"which is not a multiple of %d atoms per residue",
				chainLabel(ci, chain), len(chain.Atoms), apr)
		}
		nres := chain.Residues(apr)
		if nres < tres {
			return nil, fmt.Errorf("colvar: backbone chain %s has %d residues "+
				"but the %q template needs at least %d",
				chainLabel(ci, chain), nres, tmpl.Name, tres)
		}
		for w := 0; w <= nres-tres; w++ {
			start := w * apr
			windows = append(windows, chain.Atoms[start:start+tmpl.Size()])
		}
	}
	return windows, nil
}

func chainLabel(i int, c Chain) string {
	if c.Name != "" {
		return fmt.Sprintf("%q", c.Name)
	}
	return fmt.Sprintf("#%d", i)
}
