// Package fd: global constraints - Alldiff (bounds consistency)
//
// Alldiff is Alldifferent plus Puget's O(n^2) bounds reasoning on the open
// variables. It detects Hall intervals: ranges [L, R] that exactly as many
// variables as the range has values are confined to. No other variable can
// take a value in a Hall interval, so their bounds are pushed past it.
//
// Algorithm (lower bounds; upper bounds are symmetric on negated values)
//   - Sort the open variables by increasing max and insert them one by one.
//   - Before inserting a variable, raise its min past every Hall interval
//     recorded so far that contains it.
//   - After inserting a variable with max R, for every distinct min L among
//     the inserted variables, count the inserted variables with min >= L.
//     They all lie in [L, R].
//     count > R-L+1 means the variables cannot all be different: fail.
//     count = R-L+1 makes [L, R] a Hall interval.
//
// Every variable inserted later has max >= R, so a Hall interval found at
// insertion time only ever constrains variables that are not part of it.
package fd

import "sort"

// Alldiff enforces pairwise distinct values with bounds consistency.
type Alldiff struct {
	Base
	List []*IntVar
	part *groundPartition
}

// NewAlldiff returns an Alldiff over vars. Every variable may appear only
// once.
func NewAlldiff(vars []*IntVar) (*Alldiff, error) {
	if err := checkDistinctScope(KindAlldiff, vars); err != nil {
		return nil, err
	}
	c := &Alldiff{List: append([]*IntVar(nil), vars...), part: newGroundPartition(vars)}
	c.queueIndex = QueueGlobal
	return c, nil
}

// Kind returns KindAlldiff.
func (c *Alldiff) Kind() Kind { return KindAlldiff }

// Arguments returns the scope of the constraint.
func (c *Alldiff) Arguments() []*IntVar { return c.List }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Alldiff) ConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Alldiff) Impose(s *Store) error {
	c.part.init(s)
	imposeScope(s, c, c.List)
	return nil
}

// QueueVariable records v as changed at level.
func (c *Alldiff) QueueVariable(level int, v *IntVar) { c.part.enqueue(v) }

// RemoveLevel drops the variables queued at the abandoned level.
func (c *Alldiff) RemoveLevel(level int) { c.part.reset() }

// Consistency removes bound values from the other variables and applies
// the bounds reasoning over the whole list.
func (c *Alldiff) Consistency(s *Store) error {
	c.part.scan()
	for s.NewPropagation() {
		s.SetNewPropagation(false)
		if err := c.part.propagate(nil); err != nil {
			return err
		}
		if err := hallBounds(s, c, c.part.open()); err != nil {
			return err
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Alldiff) Satisfied() bool { return allDistinct(c.List) }

// String renders the constraint with its variables.
func (c *Alldiff) String() string { return formatConstraint(c, varNames(c.List)) }

// hallBounds runs the lower and upper bound passes once.
func hallBounds(s *Store, origin Constraint, vars []*IntVar) error {
	if len(vars) < 2 {
		return nil
	}
	open := append([]*IntVar(nil), vars...)
	if err := hallPass(s, origin, open, lowerView{}); err != nil {
		return err
	}
	return hallPass(s, origin, open, upperView{})
}

// boundView abstracts which side of the domains a Hall pass works on. The
// upper pass sees every value negated, which turns maxes into mins.
type boundView interface {
	lo(v *IntVar) int
	hi(v *IntVar) int
	raise(v *IntVar, lo int) error
}

type lowerView struct{}

func (lowerView) lo(v *IntVar) int              { return v.Min() }
func (lowerView) hi(v *IntVar) int              { return v.Max() }
func (lowerView) raise(v *IntVar, lo int) error { return v.InMin(lo) }

type upperView struct{}

func (upperView) lo(v *IntVar) int              { return -v.Max() }
func (upperView) hi(v *IntVar) int              { return -v.Min() }
func (upperView) raise(v *IntVar, lo int) error { return v.InMax(-lo) }

type hallInterval struct{ lo, hi int }

func hallPass(s *Store, origin Constraint, vars []*IntVar, view boundView) error {
	sort.SliceStable(vars, func(i, j int) bool { return view.hi(vars[i]) < view.hi(vars[j]) })

	var halls []hallInterval
	mins := make([]int, 0, len(vars))
	for _, v := range vars {
		if err := pushPastHalls(v, halls, view); err != nil {
			return err
		}

		lo, r := view.lo(v), view.hi(v)
		mins = insertSorted(mins, lo)
		for i := len(mins) - 1; i >= 0; i-- {
			if i > 0 && mins[i-1] == mins[i] {
				continue
			}
			l := mins[i]
			count := len(mins) - i
			capacity := r - l + 1
			if count > capacity {
				return s.Fail(origin)
			}
			if count == capacity {
				halls = append(halls, hallInterval{l, r})
			}
		}
	}
	return nil
}

// pushPastHalls raises the view minimum of v until it lies outside every
// Hall interval.
func pushPastHalls(v *IntVar, halls []hallInterval, view boundView) error {
	for {
		lo := view.lo(v)
		moved := false
		for _, h := range halls {
			if lo >= h.lo && lo <= h.hi {
				lo = h.hi + 1
				moved = true
			}
		}
		if !moved {
			return nil
		}
		if err := view.raise(v, lo); err != nil {
			return err
		}
	}
}

func insertSorted(xs []int, x int) []int {
	i := sort.SearchInts(xs, x)
	xs = append(xs, 0)
	copy(xs[i+1:], xs[i:])
	xs[i] = x
	return xs
}
