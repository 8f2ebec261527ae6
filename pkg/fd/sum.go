// Package fd: global constraints - Sum (bounds consistency)
//
// Sum enforces list[0] + ... + list[n-1] = sum.
//
// Design
//   - The list is copied and kept partitioned as [grounded ... | open ...].
//     Two reversible TimeStamps hold the partition: nextGroundedPosition
//     (where the open part starts) and sumGrounded (the total of the
//     grounded prefix). A call never re-adds variables that were already
//     folded into sumGrounded, at this level or any level above it.
//   - Each pass scans the open part once. Newly bound variables are swapped
//     into the prefix and folded into sumGrounded; the others contribute to
//     lMin/lMax, the smallest and largest reachable totals.
//   - sum is narrowed to [lMin, lMax]. Then every open variable v is
//     narrowed to
//     [min(sum) - (lMax - max(v)), max(sum) - (lMin - min(v))],
//     the values that still leave the other variables room to reach sum.
//   - The pass repeats while it narrowed something in the scope.
//
// All totals go through the checked Add/Subtract helpers.
package fd

import "fmt"

// Sum enforces that the variables of List add up to SumVar.
type Sum struct {
	Base
	List   []*IntVar
	SumVar *IntVar

	work                 []*IntVar
	sumGrounded          *TimeStamp[int]
	nextGroundedPosition *TimeStamp[int]
}

// NewSum returns the constraint sum(list) = sum.
func NewSum(list []*IntVar, sum *IntVar) (*Sum, error) {
	if sum == nil {
		return nil, modelErrorf(KindSum, "nil sum variable")
	}
	for i, v := range list {
		if v == nil {
			return nil, modelErrorf(KindSum, "variable %d is nil", i)
		}
	}
	c := &Sum{
		List:   append([]*IntVar(nil), list...),
		SumVar: sum,
		work:   append([]*IntVar(nil), list...),
	}
	c.queueIndex = QueueLinear
	return c, nil
}

// Kind returns KindSum.
func (c *Sum) Kind() Kind { return KindSum }

// Arguments returns the scope of the constraint.
func (c *Sum) Arguments() []*IntVar { return append(append([]*IntVar(nil), c.List...), c.SumVar) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Sum) ConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Sum) Impose(s *Store) error {
	c.sumGrounded = NewTimeStamp(s, 0)
	c.nextGroundedPosition = NewTimeStamp(s, 0)
	imposeScope(s, c, c.Arguments())
	return nil
}

// Consistency narrows SumVar to the range of the list and each term to
// what the rest of the list leaves.
func (c *Sum) Consistency(s *Store) error {
	for s.NewPropagation() {
		s.SetNewPropagation(false)

		lMin, lMax, pos, err := c.fold()
		if err != nil {
			return err
		}
		if err := c.SumVar.In(lMin, lMax); err != nil {
			return err
		}
		if lMin == lMax {
			continue
		}

		sumMin, sumMax := c.SumVar.Min(), c.SumVar.Max()
		for _, v := range c.work[pos:] {
			lo, hi, err := residual(sumMin, sumMax, lMin, lMax, v.Min(), v.Max())
			if err != nil {
				return err
			}
			if err := v.In(lo, hi); err != nil {
				return err
			}
		}
	}
	return nil
}

// fold moves newly bound variables into the grounded prefix and returns
// the bounds of the total together with the new start of the open part.
func (c *Sum) fold() (lMin, lMax, pos int, err error) {
	pos = c.nextGroundedPosition.Value()
	grounded := c.sumGrounded.Value()

	lMin, lMax = 0, 0
	for i := pos; i < len(c.work); i++ {
		v := c.work[i]
		if v.IsBound() {
			c.work[i], c.work[pos] = c.work[pos], c.work[i]
			pos++
			if grounded, err = Add(grounded, v.Min()); err != nil {
				return 0, 0, 0, err
			}
			continue
		}
		if lMin, lMax, err = sumBounds(lMin, lMax, v.Min(), v.Max()); err != nil {
			return 0, 0, 0, err
		}
	}
	if pos != c.nextGroundedPosition.Value() {
		c.nextGroundedPosition.Update(pos)
		c.sumGrounded.Update(grounded)
	}
	if lMin, lMax, err = sumBounds(lMin, lMax, grounded, grounded); err != nil {
		return 0, 0, 0, err
	}
	return lMin, lMax, pos, nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Sum) Satisfied() bool {
	if !c.SumVar.IsBound() {
		return false
	}
	total := 0
	for _, v := range c.List {
		if !v.IsBound() {
			return false
		}
		var err error
		if total, err = Add(total, v.Min()); err != nil {
			return false
		}
	}
	return total == c.SumVar.Min()
}

// String renders the constraint with its variables.
func (c *Sum) String() string {
	return formatConstraint(c, fmt.Sprintf("sum%s = %s", varNames(c.List), c.SumVar.Name()))
}
