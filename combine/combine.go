// Package combine computes differentiable polynomial combinations of scalar
// inputs:
//
//	C = sum_i c_i * (x_i - a_i)^p_i
//
// with a per-term coefficient c, offset a and power p. Inputs may live on a
// periodic domain, in which case the difference x - a is taken around the
// nearest wrap and is smooth across the boundary (its derivative is 1
// everywhere).
//
// Two addressing variants exist. Fixed combines a small set of named inputs,
// each with its own term, in one call. PerTask applies one term per task
// index to a single input at a time, so that the same combination logic can
// be reused across thousands of structurally identical evaluations without
// carrying all of them in one argument vector.
package combine

import (
	"fmt"
	"math"
)

// Term is one (coefficient, offset, power) triple.
type Term struct {
	Coeff float64
	Param float64
	Power float64
}

// Domain describes a periodic input domain [Min, Max). A nil *Domain means
// the input is aperiodic.
type Domain struct {
	Min, Max float64
}

// Diff returns the difference x - a mapped onto the domain, together with
// its derivative with respect to x. The derivative is 1 everywhere,
// including across the wrap, because the periodic difference is defined to
// be smooth there.
func (d *Domain) Diff(a, x float64) (float64, float64) {
	diff := x - a
	if d != nil {
		l := d.Max - d.Min
		diff -= l * math.Round(diff/l)
	}
	return diff, 1
}

// normalized rescales coefficients so they sum to one. A zero sum has no
// meaningful normalization and is rejected.
func normalized(terms []Term) ([]Term, error) {
	var sum float64
	for _, t := range terms {
		sum += t.Coeff
	}
	if sum == 0 {
		return nil, fmt.Errorf("combine: cannot normalize coefficients that " +
			"sum to zero")
	}
	out := make([]Term, len(terms))
	for i, t := range terms {
		t.Coeff /= sum
		out[i] = t
	}
	return out, nil
}

// Fixed combines a fixed set of inputs, one term per input.
type Fixed struct {
	terms   []Term
	domains []*Domain
}

// NewFixed builds a Fixed combination. domains may be nil, meaning every
// input is aperiodic; otherwise it must have one entry (possibly nil) per
// term. With normalize set, coefficients are rescaled to sum to one.
func NewFixed(terms []Term, domains []*Domain, normalize bool) (*Fixed, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("combine: at least one term is required")
	}
	if domains != nil && len(domains) != len(terms) {
		return nil, fmt.Errorf("combine: got %d domains for %d terms",
			len(domains), len(terms))
	}
	if domains == nil {
		domains = make([]*Domain, len(terms))
	}
	for i, d := range domains {
		if d != nil && d.Max <= d.Min {
			return nil, fmt.Errorf("combine: domain %d is empty: [%g, %g)",
				i, d.Min, d.Max)
		}
	}
	if normalize {
		var err error
		if terms, err = normalized(terms); err != nil {
			return nil, err
		}
	} else {
		terms = append([]Term(nil), terms...)
	}
	return &Fixed{terms: terms, domains: domains}, nil
}

// N returns the number of inputs the combination expects.
func (c *Fixed) N() int {
	return len(c.terms)
}

// Coefficients returns a copy of the (possibly normalized) coefficients.
func (c *Fixed) Coefficients() []float64 {
	out := make([]float64, len(c.terms))
	for i, t := range c.terms {
		out[i] = t.Coeff
	}
	return out
}

// Eval computes the combination of args and the derivative with respect to
// each input. It panics if len(args) != N; argument counts are fixed at
// setup and a mismatch is a programmer error.
func (c *Fixed) Eval(args []float64) (float64, []float64) {
	if len(args) != len(c.terms) {
		panic(fmt.Sprintf("combine: Fixed built for %d inputs was given %d",
			len(c.terms), len(args)))
	}
	var val float64
	deriv := make([]float64, len(args))
	for i, t := range c.terms {
		cv, dcv := c.domains[i].Diff(t.Param, args[i])
		val += t.Coeff * math.Pow(cv, t.Power)
		deriv[i] = t.Coeff * t.Power * math.Pow(cv, t.Power-1) * dcv
	}
	return val, deriv
}

// PerTask applies one term per task index to a stream of same-shaped
// inputs. All tasks share one domain (or none).
type PerTask struct {
	terms  []Term
	domain *Domain
}

// NewPerTask builds a PerTask combination with one term per task. With
// normalize set, coefficients are rescaled to sum to one across tasks.
func NewPerTask(terms []Term, domain *Domain, normalize bool) (*PerTask, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("combine: at least one task term is required")
	}
	if domain != nil && domain.Max <= domain.Min {
		return nil, fmt.Errorf("combine: task domain is empty: [%g, %g)",
			domain.Min, domain.Max)
	}
	if normalize {
		var err error
		if terms, err = normalized(terms); err != nil {
			return nil, err
		}
	} else {
		terms = append([]Term(nil), terms...)
	}
	return &PerTask{terms: terms, domain: domain}, nil
}

// Tasks returns the number of task terms.
func (c *PerTask) Tasks() int {
	return len(c.terms)
}

// Eval computes the task'th contribution for the input arg and its
// derivative with respect to arg. It panics on a task index out of range.
func (c *PerTask) Eval(task int, arg float64) (float64, float64) {
	if task < 0 || task >= len(c.terms) {
		panic(fmt.Sprintf("combine: task %d out of range [0, %d)",
			task, len(c.terms)))
	}
	t := c.terms[task]
	cv, dcv := c.domain.Diff(t.Param, arg)
	val := t.Coeff * math.Pow(cv, t.Power)
	deriv := t.Coeff * t.Power * math.Pow(cv, t.Power-1) * dcv
	return val, deriv
}
