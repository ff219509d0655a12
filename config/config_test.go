package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curvelab/ssorder/colvar"
)

const sampleYAML = `
motif: alpha-minus-cis
scale: 1.0
chains:
  - name: A
    atoms: [0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14,
            15, 16, 17, 18, 19]
outputs:
  - name: helix
    metric: optimal
    reducer: sum
    r0: 0.5
  - name: closest
    metric: drmsd
    reducer: min
    beta: 10
`

func writeConfig(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ssorder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestNew(t *testing.T) {
	cfg, err := New(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, "alpha-minus-cis", cfg.Motif)
	assert.Equal(t, 1.0, cfg.Scale)
	require.Len(t, cfg.Chains, 1)
	assert.Equal(t, "A", cfg.Chains[0].Name)
	assert.Len(t, cfg.Chains[0].Atoms, 20)
	require.Len(t, cfg.Outputs, 2)
	assert.Equal(t, "optimal", cfg.Outputs[0].Metric)
	assert.Equal(t, 0.5, cfg.Outputs[0].R0)
	assert.Equal(t, 10.0, cfg.Outputs[1].Beta)
}

func TestEngine(t *testing.T) {
	cfg, err := New(writeConfig(t, sampleYAML))
	require.NoError(t, err)

	e, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, 2, e.Windows())
}

func TestEngineDefaults(t *testing.T) {
	cfg := &Cfg{
		Motif: "alpha-plus-trans",
		Chains: []Chain{{Atoms: []int{
			0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14}}},
		Outputs: []Output{{Name: "s"}},
	}
	require.NoError(t, cfg.Check())

	// Defaults: drmsd metric, sum reducer, standard switching, scale 0.1.
	e, err := cfg.Engine()
	require.NoError(t, err)
	assert.Equal(t, 1, e.Windows())
}

func TestNewErrors(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("New opened a missing file")
	}
	if _, err := New(writeConfig(t, "motif: [not, a, string")); err == nil {
		t.Fatal("New decoded malformed YAML")
	}
}

func TestCheckErrors(t *testing.T) {
	chains := []Chain{{Atoms: []int{0}}}
	outputs := []Output{{Name: "s"}}

	cases := []struct {
		name string
		cfg  Cfg
	}{
		{"no motif", Cfg{Chains: chains, Outputs: outputs}},
		{"unknown motif", Cfg{Motif: "nope", Chains: chains, Outputs: outputs}},
		{"no chains", Cfg{Motif: "alpha-plus-cis", Outputs: outputs}},
		{"no outputs", Cfg{Motif: "alpha-plus-cis", Chains: chains}},
		{"unnamed output", Cfg{Motif: "alpha-plus-cis", Chains: chains,
			Outputs: []Output{{}}}},
		{"bad metric", Cfg{Motif: "alpha-plus-cis", Chains: chains,
			Outputs: []Output{{Name: "s", Metric: "kabsch"}}}},
		{"bad reducer", Cfg{Motif: "alpha-plus-cis", Chains: chains,
			Outputs: []Output{{Name: "s", Reducer: "median"}}}},
	}
	for _, tc := range cases {
		assert.Error(t, tc.cfg.Check(), tc.name)
	}
}

func TestEngineOptions(t *testing.T) {
	atoms := make([]int, 15)
	for i := range atoms {
		atoms[i] = i
	}
	cfg := &Cfg{
		Motif:         "c7beta-plus-trans",
		Scale:         1,
		NoPBC:         true,
		Chains:        []Chain{{Name: "A", Atoms: atoms}},
		Outputs:       []Output{{Name: "s", Metric: "optimal"}},
		NLStride:      10,
		NLTol:         1e-4,
		StrandsCutoff: &Cutoff{A: 0, B: 14, Dist: 100},
	}
	require.NoError(t, cfg.Check())
	_, err := cfg.Engine()
	require.NoError(t, err)

	// The engine still vets what the mapping passed through.
	cfg.StrandsCutoff.Dist = -1
	_, err = cfg.Engine()
	assert.Error(t, err)

	// Extra options combine with the configured ones.
	cfg.StrandsCutoff = nil
	_, err = cfg.Engine(colvar.WithWorkers(2))
	require.NoError(t, err)
}
