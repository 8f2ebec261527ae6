package fd

// primitives.go: primitive comparison constraints.
//
// Each type here is a PrimitiveConstraint: it can be imposed on its own,
// negated, or nested inside And, Or, Not, Eq, Xor and Reified. All of
// them are cheap and reach their fixpoint in a single pass, so none of
// them loops on NewPropagation.

import "fmt"

// XeqC enforces X = C.
type XeqC struct {
	Base
	X *IntVar
	C int
}

// NewXeqC returns the constraint x = c.
func NewXeqC(x *IntVar, c int) *XeqC { return &XeqC{X: x, C: c} }

// Kind returns KindXeqC.
func (c *XeqC) Kind() Kind { return KindXeqC }

// Arguments returns the scope of the constraint.
func (c *XeqC) Arguments() []*IntVar { return []*IntVar{c.X} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XeqC) ConsistencyEvent(v *IntVar) Event { return EventAny }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XeqC) NotConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XeqC) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency binds X to C.
func (c *XeqC) Consistency(s *Store) error { return c.X.InValue(c.C) }

// NotConsistency enforces the negation of X = C.
func (c *XeqC) NotConsistency(s *Store) error { return c.X.InComplement(c.C) }

// Satisfied reports whether X = C holds for every value left.
func (c *XeqC) Satisfied() bool { return c.X.IsBound() && c.X.Min() == c.C }

// NotSatisfied reports whether X = C fails for every value left.
func (c *XeqC) NotSatisfied() bool { return !c.X.Contains(c.C) }

// String renders the constraint with its variables.
func (c *XeqC) String() string { return formatConstraint(c, fmt.Sprintf("%s = %d", c.X.Name(), c.C)) }

// XneqC enforces X != C.
type XneqC struct {
	Base
	X *IntVar
	C int
}

// NewXneqC returns the constraint x != c.
func NewXneqC(x *IntVar, c int) *XneqC { return &XneqC{X: x, C: c} }

// Kind returns KindXneqC.
func (c *XneqC) Kind() Kind { return KindXneqC }

// Arguments returns the scope of the constraint.
func (c *XneqC) Arguments() []*IntVar { return []*IntVar{c.X} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XneqC) ConsistencyEvent(v *IntVar) Event { return EventAny }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XneqC) NotConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XneqC) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency removes C from X.
func (c *XneqC) Consistency(s *Store) error { return c.X.InComplement(c.C) }

// NotConsistency enforces the negation of X != C.
func (c *XneqC) NotConsistency(s *Store) error { return c.X.InValue(c.C) }

// Satisfied reports whether X != C holds for every value left.
func (c *XneqC) Satisfied() bool { return !c.X.Contains(c.C) }

// NotSatisfied reports whether X != C fails for every value left.
func (c *XneqC) NotSatisfied() bool { return c.X.IsBound() && c.X.Min() == c.C }

// String renders the constraint with its variables.
func (c *XneqC) String() string { return formatConstraint(c, fmt.Sprintf("%s != %d", c.X.Name(), c.C)) }

// XlteqC enforces X <= C.
type XlteqC struct {
	Base
	X *IntVar
	C int
}

// NewXlteqC returns the constraint x <= c.
func NewXlteqC(x *IntVar, c int) *XlteqC { return &XlteqC{X: x, C: c} }

// Kind returns KindXlteqC.
func (c *XlteqC) Kind() Kind { return KindXlteqC }

// Arguments returns the scope of the constraint.
func (c *XlteqC) Arguments() []*IntVar { return []*IntVar{c.X} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XlteqC) ConsistencyEvent(v *IntVar) Event { return EventBound }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XlteqC) NotConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XlteqC) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency lowers the maximum of X to C.
func (c *XlteqC) Consistency(s *Store) error { return c.X.InMax(c.C) }

// NotConsistency enforces the negation of X <= C.
func (c *XlteqC) NotConsistency(s *Store) error { return c.X.InMin(c.C + 1) }

// Satisfied reports whether X <= C holds for every value left.
func (c *XlteqC) Satisfied() bool { return c.X.Max() <= c.C }

// NotSatisfied reports whether X <= C fails for every value left.
func (c *XlteqC) NotSatisfied() bool { return c.X.Min() > c.C }

// String renders the constraint with its variables.
func (c *XlteqC) String() string { return formatConstraint(c, fmt.Sprintf("%s <= %d", c.X.Name(), c.C)) }

// XgteqC enforces X >= C.
type XgteqC struct {
	Base
	X *IntVar
	C int
}

// NewXgteqC returns the constraint x >= c.
func NewXgteqC(x *IntVar, c int) *XgteqC { return &XgteqC{X: x, C: c} }

// Kind returns KindXgteqC.
func (c *XgteqC) Kind() Kind { return KindXgteqC }

// Arguments returns the scope of the constraint.
func (c *XgteqC) Arguments() []*IntVar { return []*IntVar{c.X} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XgteqC) ConsistencyEvent(v *IntVar) Event { return EventBound }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XgteqC) NotConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XgteqC) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency raises the minimum of X to C.
func (c *XgteqC) Consistency(s *Store) error { return c.X.InMin(c.C) }

// NotConsistency enforces the negation of X >= C.
func (c *XgteqC) NotConsistency(s *Store) error { return c.X.InMax(c.C - 1) }

// Satisfied reports whether X >= C holds for every value left.
func (c *XgteqC) Satisfied() bool { return c.X.Min() >= c.C }

// NotSatisfied reports whether X >= C fails for every value left.
func (c *XgteqC) NotSatisfied() bool { return c.X.Max() < c.C }

// String renders the constraint with its variables.
func (c *XgteqC) String() string { return formatConstraint(c, fmt.Sprintf("%s >= %d", c.X.Name(), c.C)) }

// XeqY enforces X = Y with domain consistency.
type XeqY struct {
	Base
	X, Y *IntVar
}

// NewXeqY returns the constraint x = y.
func NewXeqY(x, y *IntVar) *XeqY { return &XeqY{X: x, Y: y} }

// Kind returns KindXeqY.
func (c *XeqY) Kind() Kind { return KindXeqY }

// Arguments returns the scope of the constraint.
func (c *XeqY) Arguments() []*IntVar { return []*IntVar{c.X, c.Y} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XeqY) ConsistencyEvent(v *IntVar) Event { return EventAny }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XeqY) NotConsistencyEvent(v *IntVar) Event { return EventGround }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XeqY) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency intersects the domains of X and Y.
func (c *XeqY) Consistency(s *Store) error {
	if err := c.X.InDomain(c.Y.Domain()); err != nil {
		return err
	}
	return c.Y.InDomain(c.X.Domain())
}

// NotConsistency enforces the negation of X = Y.
func (c *XeqY) NotConsistency(s *Store) error {
	return notEqual(c.X, c.Y)
}

// Satisfied reports whether X = Y holds for every value left.
func (c *XeqY) Satisfied() bool {
	return c.X.IsBound() && c.Y.IsBound() && c.X.Min() == c.Y.Min()
}

// NotSatisfied reports whether X = Y fails for every value left.
func (c *XeqY) NotSatisfied() bool {
	return !c.X.Domain().IsIntersecting(c.Y.Domain())
}

// String renders the constraint with its variables.
func (c *XeqY) String() string {
	return formatConstraint(c, fmt.Sprintf("%s = %s", c.X.Name(), c.Y.Name()))
}

// XneqY enforces X != Y.
type XneqY struct {
	Base
	X, Y *IntVar
}

// NewXneqY returns the constraint x != y.
func NewXneqY(x, y *IntVar) *XneqY { return &XneqY{X: x, Y: y} }

// Kind returns KindXneqY.
func (c *XneqY) Kind() Kind { return KindXneqY }

// Arguments returns the scope of the constraint.
func (c *XneqY) Arguments() []*IntVar { return []*IntVar{c.X, c.Y} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XneqY) ConsistencyEvent(v *IntVar) Event { return EventGround }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XneqY) NotConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XneqY) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency removes the value of a bound side from the other side.
func (c *XneqY) Consistency(s *Store) error { return notEqual(c.X, c.Y) }

// NotConsistency enforces the negation of X != Y.
func (c *XneqY) NotConsistency(s *Store) error {
	if err := c.X.InDomain(c.Y.Domain()); err != nil {
		return err
	}
	return c.Y.InDomain(c.X.Domain())
}

// Satisfied reports whether X != Y holds for every value left.
func (c *XneqY) Satisfied() bool {
	return !c.X.Domain().IsIntersecting(c.Y.Domain())
}

// NotSatisfied reports whether X != Y fails for every value left.
func (c *XneqY) NotSatisfied() bool {
	return c.X.IsBound() && c.Y.IsBound() && c.X.Min() == c.Y.Min()
}

// String renders the constraint with its variables.
func (c *XneqY) String() string {
	return formatConstraint(c, fmt.Sprintf("%s != %s", c.X.Name(), c.Y.Name()))
}

// notEqual removes the value of a bound side from the other side.
func notEqual(x, y *IntVar) error {
	if x.IsBound() {
		if err := y.InComplement(x.Min()); err != nil {
			return err
		}
	}
	if y.IsBound() {
		return x.InComplement(y.Min())
	}
	return nil
}

// XltY enforces X < Y with bounds consistency.
type XltY struct {
	Base
	X, Y *IntVar
}

// NewXltY returns the constraint x < y.
func NewXltY(x, y *IntVar) *XltY { return &XltY{X: x, Y: y} }

// Kind returns KindXltY.
func (c *XltY) Kind() Kind { return KindXltY }

// Arguments returns the scope of the constraint.
func (c *XltY) Arguments() []*IntVar { return []*IntVar{c.X, c.Y} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XltY) ConsistencyEvent(v *IntVar) Event { return EventBound }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XltY) NotConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XltY) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency moves the bounds of X below Y and of Y above X.
func (c *XltY) Consistency(s *Store) error { return lessEqual(c.X, c.Y, 1) }

// NotConsistency enforces the negation of X < Y.
func (c *XltY) NotConsistency(s *Store) error { return lessEqual(c.Y, c.X, 0) }

// Satisfied reports whether X < Y holds for every value left.
func (c *XltY) Satisfied() bool { return c.X.Max() < c.Y.Min() }

// NotSatisfied reports whether X < Y fails for every value left.
func (c *XltY) NotSatisfied() bool { return c.X.Min() >= c.Y.Max() }

// String renders the constraint with its variables.
func (c *XltY) String() string {
	return formatConstraint(c, fmt.Sprintf("%s < %s", c.X.Name(), c.Y.Name()))
}

// XlteqY enforces X <= Y with bounds consistency.
type XlteqY struct {
	Base
	X, Y *IntVar
}

// NewXlteqY returns the constraint x <= y.
func NewXlteqY(x, y *IntVar) *XlteqY { return &XlteqY{X: x, Y: y} }

// Kind returns KindXlteqY.
func (c *XlteqY) Kind() Kind { return KindXlteqY }

// Arguments returns the scope of the constraint.
func (c *XlteqY) Arguments() []*IntVar { return []*IntVar{c.X, c.Y} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XlteqY) ConsistencyEvent(v *IntVar) Event { return EventBound }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XlteqY) NotConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XlteqY) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency keeps the maximum of X at most the maximum of Y and the
// minimum of Y at least the minimum of X.
func (c *XlteqY) Consistency(s *Store) error { return lessEqual(c.X, c.Y, 0) }

// NotConsistency enforces the negation of X <= Y.
func (c *XlteqY) NotConsistency(s *Store) error { return lessEqual(c.Y, c.X, 1) }

// Satisfied reports whether X <= Y holds for every value left.
func (c *XlteqY) Satisfied() bool { return c.X.Max() <= c.Y.Min() }

// NotSatisfied reports whether X <= Y fails for every value left.
func (c *XlteqY) NotSatisfied() bool { return c.X.Min() > c.Y.Max() }

// String renders the constraint with its variables.
func (c *XlteqY) String() string {
	return formatConstraint(c, fmt.Sprintf("%s <= %s", c.X.Name(), c.Y.Name()))
}

// lessEqual enforces x + gap <= y on the bounds. One pass is a fixpoint:
// trimming the top of x cannot move its minimum, and raising the bottom
// of y cannot move its maximum.
func lessEqual(x, y *IntVar, gap int) error {
	if err := x.InMax(y.Max() - gap); err != nil {
		return err
	}
	return y.InMin(x.Min() + gap)
}

var (
	_ PrimitiveConstraint = (*XeqC)(nil)
	_ PrimitiveConstraint = (*XneqC)(nil)
	_ PrimitiveConstraint = (*XlteqC)(nil)
	_ PrimitiveConstraint = (*XgteqC)(nil)
	_ PrimitiveConstraint = (*XeqY)(nil)
	_ PrimitiveConstraint = (*XneqY)(nil)
	_ PrimitiveConstraint = (*XltY)(nil)
	_ PrimitiveConstraint = (*XlteqY)(nil)
	_ PrimitiveConstraint = (*XplusCeqZ)(nil)
	_ PrimitiveConstraint = (*XplusYeqZ)(nil)
	_ PrimitiveConstraint = (*XmulYeqZ)(nil)
)
