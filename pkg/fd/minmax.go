// Package fd: global constraints - Max and Min of a list.
//
// These constraints link a result variable to the maximum or minimum value
// among a list of variables:
//   - Max(list, r):
//     r ∈ [max_i min(xi) .. max_i max(xi)]
//     and for all i: xi ≤ max(r)
//     and when a single xi can still reach min(r), xi ≥ min(r)
//   - Min(list, r) is the mirror image.
//
// The single-carrier rule is what makes the propagation stronger than plain
// interval reasoning: if only one variable can still be the maximum, it has
// to be.
package fd

import "fmt"

// Max enforces MaxVar = max(List).
type Max struct {
	Base
	List   []*IntVar
	MaxVar *IntVar
}

// NewMax returns the constraint max(list) = max.
func NewMax(list []*IntVar, max *IntVar) (*Max, error) {
	if err := checkExtremumArgs(KindMax, list, max); err != nil {
		return nil, err
	}
	c := &Max{List: append([]*IntVar(nil), list...), MaxVar: max}
	c.queueIndex = QueueLinear
	return c, nil
}

func checkExtremumArgs(kind Kind, list []*IntVar, r *IntVar) error {
	if len(list) == 0 {
		return modelErrorf(kind, "empty list")
	}
	if r == nil {
		return modelErrorf(kind, "nil result variable")
	}
	for i, v := range list {
		if v == nil {
			return modelErrorf(kind, "variable %d is nil", i)
		}
	}
	return nil
}

// Kind returns KindMax.
func (c *Max) Kind() Kind { return KindMax }

// Arguments returns the scope of the constraint.
func (c *Max) Arguments() []*IntVar { return append(append([]*IntVar(nil), c.List...), c.MaxVar) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Max) ConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Max) Impose(s *Store) error {
	imposeScope(s, c, c.Arguments())
	return nil
}

// Consistency narrows MaxVar to the largest bounds of the list and caps
// every list variable.
func (c *Max) Consistency(s *Store) error {
	for s.NewPropagation() {
		s.SetNewPropagation(false)

		lo, hi := MinInt, MinInt
		for _, x := range c.List {
			lo = max(lo, x.Min())
			hi = max(hi, x.Max())
		}
		if err := c.MaxVar.In(lo, hi); err != nil {
			return err
		}

		rMin, rMax := c.MaxVar.Min(), c.MaxVar.Max()
		var carrier *IntVar
		carriers := 0
		for _, x := range c.List {
			if err := x.InMax(rMax); err != nil {
				return err
			}
			if x.Max() >= rMin {
				carrier = x
				carriers++
			}
		}
		switch carriers {
		case 0:
			return s.Fail(c)
		case 1:
			if err := carrier.InMin(rMin); err != nil {
				return err
			}
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Max) Satisfied() bool {
	if !c.MaxVar.IsBound() {
		return false
	}
	m := MinInt
	for _, x := range c.List {
		if !x.IsBound() {
			return false
		}
		m = max(m, x.Min())
	}
	return m == c.MaxVar.Min()
}

// String renders the constraint with its variables.
func (c *Max) String() string {
	return formatConstraint(c, fmt.Sprintf("max%s = %s", varNames(c.List), c.MaxVar.Name()))
}

// Min enforces MinVar = min(List).
type Min struct {
	Base
	List   []*IntVar
	MinVar *IntVar
}

// NewMin returns the constraint min(list) = min.
func NewMin(list []*IntVar, min *IntVar) (*Min, error) {
	if err := checkExtremumArgs(KindMin, list, min); err != nil {
		return nil, err
	}
	c := &Min{List: append([]*IntVar(nil), list...), MinVar: min}
	c.queueIndex = QueueLinear
	return c, nil
}

// Kind returns KindMin.
func (c *Min) Kind() Kind { return KindMin }

// Arguments returns the scope of the constraint.
func (c *Min) Arguments() []*IntVar { return append(append([]*IntVar(nil), c.List...), c.MinVar) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Min) ConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Min) Impose(s *Store) error {
	imposeScope(s, c, c.Arguments())
	return nil
}

// Consistency narrows MinVar to the smallest bounds of the list and
// raises every list variable.
func (c *Min) Consistency(s *Store) error {
	for s.NewPropagation() {
		s.SetNewPropagation(false)

		lo, hi := MaxInt, MaxInt
		for _, x := range c.List {
			lo = min(lo, x.Min())
			hi = min(hi, x.Max())
		}
		if err := c.MinVar.In(lo, hi); err != nil {
			return err
		}

		rMin, rMax := c.MinVar.Min(), c.MinVar.Max()
		var carrier *IntVar
		carriers := 0
		for _, x := range c.List {
			if err := x.InMin(rMin); err != nil {
				return err
			}
			if x.Min() <= rMax {
				carrier = x
				carriers++
			}
		}
		switch carriers {
		case 0:
			return s.Fail(c)
		case 1:
			if err := carrier.InMax(rMax); err != nil {
				return err
			}
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Min) Satisfied() bool {
	if !c.MinVar.IsBound() {
		return false
	}
	m := MaxInt
	for _, x := range c.List {
		if !x.IsBound() {
			return false
		}
		m = min(m, x.Min())
	}
	return m == c.MinVar.Min()
}

// String renders the constraint with its variables.
func (c *Min) String() string {
	return formatConstraint(c, fmt.Sprintf("min%s = %s", varNames(c.List), c.MinVar.Name()))
}
