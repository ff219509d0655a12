// Package config loads an evaluation description from a YAML file and
// turns it into a ready-to-run colvar Engine. Everything here is a thin,
// validated mapping onto the colvar types; the engine re-checks whatever
// it cares about at construction.
package config

import (
	"bufio"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/curvelab/ssorder/colvar"
	"github.com/curvelab/ssorder/motif"
	"github.com/curvelab/ssorder/switching"
)

// Chain names one backbone and lists its atom indices (into the coordinate
// array handed to Evaluate), in residue order.
type Chain struct {
	Name  string `yaml:"name"`
	Atoms []int  `yaml:"atoms"`
}

// Output configures one named output. Zero switching parameters take the
// standard defaults (D_0=0, R_0=0.08, NN=8, MM=12); a zero beta defaults
// to 50.
type Output struct {
	Name    string  `yaml:"name"`
	Metric  string  `yaml:"metric"`  // optimal or drmsd; default drmsd
	Reducer string  `yaml:"reducer"` // sum, min, max or mean; default sum
	Beta    float64 `yaml:"beta"`
	D0      float64 `yaml:"d0"`
	R0      float64 `yaml:"r0"`
	NN      int     `yaml:"nn"`
	MM      int     `yaml:"mm"`
}

// Cutoff configures the strands-cutoff skip between two window atoms.
type Cutoff struct {
	A    int     `yaml:"a"`
	B    int     `yaml:"b"`
	Dist float64 `yaml:"dist"`
}

// Cfg is the full evaluation description. It can be produced by New or
// built by hand; hand-built configurations should call Check.
type Cfg struct {
	// Motif is the name of a registered reference template.
	Motif string `yaml:"motif"`

	// Scale converts template coordinates into simulation units.
	// Zero means the default of 0.1 (angstrom to nanometer).
	Scale float64 `yaml:"scale"`

	// NoPBC disables minimum-image reconstruction of windows.
	NoPBC bool `yaml:"nopbc"`

	// Chains are the backbones to slide windows along.
	Chains []Chain `yaml:"chains"`

	// Outputs are the quantities to compute.
	Outputs []Output `yaml:"outputs"`

	// NLStride and NLTol enable skipping of negligible windows between
	// refresh steps. Zero disables the optimization.
	NLStride int     `yaml:"nlStride"`
	NLTol    float64 `yaml:"nlTol"`

	// StrandsCutoff, when present, skips windows whose two designated
	// atoms are too far apart.
	StrandsCutoff *Cutoff `yaml:"strandsCutoff"`
}

// New opens and decodes the YAML file at path and checks the result.
func New(path string) (*Cfg, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var c Cfg
	dec := yaml.NewDecoder(bufio.NewReader(f))
	if err := dec.Decode(&c); err != nil {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return &c, nil
}

// Check verifies the parts of the configuration that the engine cannot:
// references to names and the mapping of strings onto engine types. Deeper
// consistency (chain lengths, switching parameters) is the engine's job.
func (c *Cfg) Check() error {
	if c.Motif == "" {
		return fmt.Errorf("a motif name is required (known motifs: %v)",
			motif.Names())
	}
	if _, err := motif.Lookup(c.Motif); err != nil {
		return err
	}
	if len(c.Chains) == 0 {
		return fmt.Errorf("at least one chain is required")
	}
	if len(c.Outputs) == 0 {
		return fmt.Errorf("at least one output is required")
	}
	for _, out := range c.Outputs {
		if out.Name == "" {
			return fmt.Errorf("every output needs a name")
		}
		if out.Metric != "" {
			if _, err := colvar.ParseMetric(out.Metric); err != nil {
				return fmt.Errorf("output %q: %w", out.Name, err)
			}
		}
		if out.Reducer != "" {
			if _, err := colvar.ParseReducer(out.Reducer); err != nil {
				return fmt.Errorf("output %q: %w", out.Name, err)
			}
		}
	}
	return nil
}

// Engine builds the colvar Engine described by the configuration.
func (c *Cfg) Engine(opts ...colvar.Option) (*colvar.Engine, error) {
	tmpl, err := motif.Lookup(c.Motif)
	if err != nil {
		return nil, err
	}

	chains := make([]colvar.Chain, len(c.Chains))
	for i, ch := range c.Chains {
		chains[i] = colvar.Chain{Name: ch.Name, Atoms: ch.Atoms}
	}

	specs := make([]colvar.OutputSpec, len(c.Outputs))
	for i, out := range c.Outputs {
		spec := colvar.OutputSpec{
			Name:   out.Name,
			Switch: switching.Default(),
			Reducer: colvar.Reducer{
				Kind: colvar.ReduceSum,
				Beta: colvar.DefaultBeta,
			},
		}
		if out.Metric != "" {
			if spec.Metric, err = colvar.ParseMetric(out.Metric); err != nil {
				return nil, err
			}
		} else {
			spec.Metric = colvar.MetricPairwise
		}
		if out.Reducer != "" {
			if spec.Reducer.Kind, err = colvar.ParseReducer(out.Reducer); err != nil {
				return nil, err
			}
		}
		if out.Beta != 0 {
			spec.Reducer.Beta = out.Beta
		}
		if out.D0 != 0 {
			spec.Switch.D0 = out.D0
		}
		if out.R0 != 0 {
			spec.Switch.R0 = out.R0
		}
		if out.NN != 0 {
			spec.Switch.NN = out.NN
		}
		if out.MM != 0 {
			spec.Switch.MM = out.MM
		}
		specs[i] = spec
	}

	if c.Scale != 0 {
		opts = append(opts, colvar.WithScale(c.Scale))
	}
	if c.NoPBC {
		opts = append(opts, colvar.WithoutPBC())
	}
	if c.NLStride > 0 {
		opts = append(opts, colvar.WithSkipUpdates(c.NLStride, c.NLTol))
	}
	if c.StrandsCutoff != nil {
		opts = append(opts, colvar.WithStrandsCutoff(colvar.StrandsCutoff{
			A:    c.StrandsCutoff.A,
			B:    c.StrandsCutoff.B,
			Dist: c.StrandsCutoff.Dist,
		}))
	}
	return colvar.New(tmpl, chains, specs, opts...)
}
