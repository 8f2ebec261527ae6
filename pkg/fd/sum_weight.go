// Package fd: global constraints - SumWeight (weighted sum, bounds propagation)
//
// SumWeight enforces Σ w[i]*x[i] = sum with bounds-consistent propagation.
//
// Propagation
//   - Prune sum to [SumMin..SumMax], where
//     SumMin = Σ (w[i]>0 ? w[i]*min(x[i]) : w[i]*max(x[i]))
//     SumMax = Σ (w[i]>0 ? w[i]*max(x[i]) : w[i]*min(x[i]))
//   - For each x[k], derive the admissible interval of its term
//     w[k]*x[k] ∈ [sum.min - OtherMax, sum.max - OtherMin]
//     and convert it to bounds on x[k] with sign-aware ceil/floor division.
//
// Products and totals go through Multiply and Add, so a model whose
// weights overflow reports ErrOverflow instead of pruning on wrapped values.
package fd

import (
	"fmt"
	"strings"
)

// SumWeight enforces a weighted sum.
type SumWeight struct {
	Base
	List    []*IntVar
	Weights []int
	SumVar  *IntVar
}

// NewSumWeight returns the constraint Σ weights[i]*list[i] = sum.
//
// Contract:
//   - len(list) == len(weights)
//   - weights can be positive, negative or zero
//   - sum != nil
func NewSumWeight(list []*IntVar, weights []int, sum *IntVar) (*SumWeight, error) {
	if len(list) != len(weights) {
		return nil, modelErrorf(KindSumWeight, "%d variables but %d weights", len(list), len(weights))
	}
	if sum == nil {
		return nil, modelErrorf(KindSumWeight, "nil sum variable")
	}
	for i, v := range list {
		if v == nil {
			return nil, modelErrorf(KindSumWeight, "variable %d is nil", i)
		}
	}
	c := &SumWeight{
		List:    append([]*IntVar(nil), list...),
		Weights: append([]int(nil), weights...),
		SumVar:  sum,
	}
	c.queueIndex = QueueLinear
	return c, nil
}

// Kind returns KindSumWeight.
func (c *SumWeight) Kind() Kind { return KindSumWeight }

// Arguments returns the scope of the constraint.
func (c *SumWeight) Arguments() []*IntVar {
	return append(append([]*IntVar(nil), c.List...), c.SumVar)
}

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *SumWeight) ConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *SumWeight) Impose(s *Store) error {
	imposeScope(s, c, c.Arguments())
	return nil
}

// term returns the bounds of w*x.
func term(w int, x *IntVar) (int, int, error) {
	a, err := Multiply(w, x.Min())
	if err != nil {
		return 0, 0, err
	}
	b, err := Multiply(w, x.Max())
	if err != nil {
		return 0, 0, err
	}
	if w < 0 {
		a, b = b, a
	}
	return a, b, nil
}

// Consistency narrows SumVar to the weighted range of the list and each
// term to what the rest leaves, divided by its weight.
func (c *SumWeight) Consistency(s *Store) error {
	n := len(c.List)
	tMin := make([]int, n)
	tMax := make([]int, n)

	for s.NewPropagation() {
		s.SetNewPropagation(false)

		sumMin, sumMax := 0, 0
		for i, x := range c.List {
			lo, hi, err := term(c.Weights[i], x)
			if err != nil {
				return err
			}
			tMin[i], tMax[i] = lo, hi
			if sumMin, sumMax, err = sumBounds(sumMin, sumMax, lo, hi); err != nil {
				return err
			}
		}
		if err := c.SumVar.In(sumMin, sumMax); err != nil {
			return err
		}

		for i, x := range c.List {
			w := c.Weights[i]
			if w == 0 {
				continue
			}
			// w*x ∈ [lo, hi]
			lo, hi, err := residual(c.SumVar.Min(), c.SumVar.Max(), sumMin, sumMax, tMin[i], tMax[i])
			if err != nil {
				return err
			}
			var xlo, xhi int
			if w > 0 {
				xlo, xhi = ceilDiv(lo, w), floorDiv(hi, w)
			} else {
				xlo, xhi = ceilDiv(hi, w), floorDiv(lo, w)
			}
			if err := x.In(xlo, xhi); err != nil {
				return err
			}
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *SumWeight) Satisfied() bool {
	if !c.SumVar.IsBound() {
		return false
	}
	total := 0
	for i, v := range c.List {
		if !v.IsBound() {
			return false
		}
		t, err := Multiply(c.Weights[i], v.Min())
		if err != nil {
			// no int total equals a value of the sum's domain
			return false
		}
		if total, err = Add(total, t); err != nil {
			return false
		}
	}
	return total == c.SumVar.Min()
}

// String renders the constraint with its variables.
func (c *SumWeight) String() string {
	terms := make([]string, len(c.List))
	for i, v := range c.List {
		terms[i] = fmt.Sprintf("%d*%s", c.Weights[i], v.Name())
	}
	return formatConstraint(c, fmt.Sprintf("%s = %s", strings.Join(terms, " + "), c.SumVar.Name()))
}
