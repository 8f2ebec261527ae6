package fd

// arithmetic.go: ternary arithmetic constraints.
//
//   - XplusCeqZ: X + C = Z, domain consistent (shifted intersections)
//   - XplusYeqZ: X + Y = Z, bounds consistent, domain consistent once
//     one operand is bound
//   - XmulYeqZ:  X * Y = Z, bounds consistent with interval division
//
// Products go through Multiply so that an overflowing bound is reported
// as ErrOverflow instead of pruning with a wrapped value.

import "fmt"

// XplusCeqZ enforces X + C = Z.
type XplusCeqZ struct {
	Base
	X *IntVar
	C int
	Z *IntVar
}

// NewXplusCeqZ returns the constraint x + c = z.
func NewXplusCeqZ(x *IntVar, c int, z *IntVar) *XplusCeqZ {
	return &XplusCeqZ{X: x, C: c, Z: z}
}

// Kind returns KindXplusCeqZ.
func (c *XplusCeqZ) Kind() Kind { return KindXplusCeqZ }

// Arguments returns the scope of the constraint.
func (c *XplusCeqZ) Arguments() []*IntVar { return []*IntVar{c.X, c.Z} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XplusCeqZ) ConsistencyEvent(v *IntVar) Event { return EventAny }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XplusCeqZ) NotConsistencyEvent(v *IntVar) Event { return EventGround }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XplusCeqZ) Impose(s *Store) error { imposeScope(s, c, c.Arguments()); return nil }

// Consistency keeps X and Z shifted copies of each other.
func (c *XplusCeqZ) Consistency(s *Store) error {
	if err := c.X.InShift(c.Z.Domain(), -c.C); err != nil {
		return err
	}
	return c.Z.InShift(c.X.Domain(), c.C)
}

// NotConsistency enforces the negation of X + C = Z.
func (c *XplusCeqZ) NotConsistency(s *Store) error {
	if c.X.IsBound() {
		if err := c.Z.InComplement(c.X.Min() + c.C); err != nil {
			return err
		}
	}
	if c.Z.IsBound() {
		return c.X.InComplement(c.Z.Min() - c.C)
	}
	return nil
}

// Satisfied reports whether X + C = Z holds for every value left.
func (c *XplusCeqZ) Satisfied() bool {
	return c.X.IsBound() && c.Z.IsBound() && c.X.Min()+c.C == c.Z.Min()
}

// NotSatisfied reports whether X + C = Z fails for every value left.
func (c *XplusCeqZ) NotSatisfied() bool {
	return !c.X.Domain().Shift(c.C).IsIntersecting(c.Z.Domain())
}

// String renders the constraint with its variables.
func (c *XplusCeqZ) String() string {
	return formatConstraint(c, fmt.Sprintf("%s + %d = %s", c.X.Name(), c.C, c.Z.Name()))
}

// XplusYeqZ enforces X + Y = Z.
type XplusYeqZ struct {
	Base
	X, Y, Z *IntVar
}

// NewXplusYeqZ returns the constraint x + y = z.
func NewXplusYeqZ(x, y, z *IntVar) *XplusYeqZ {
	c := &XplusYeqZ{X: x, Y: y, Z: z}
	c.queueIndex = QueueLinear
	return c
}

// Kind returns KindXplusYeqZ.
func (c *XplusYeqZ) Kind() Kind { return KindXplusYeqZ }

// Arguments returns the scope of the constraint.
func (c *XplusYeqZ) Arguments() []*IntVar { return []*IntVar{c.X, c.Y, c.Z} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XplusYeqZ) ConsistencyEvent(v *IntVar) Event { return EventBound }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XplusYeqZ) NotConsistencyEvent(v *IntVar) Event { return EventGround }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XplusYeqZ) Impose(s *Store) error { imposeScope(s, c, distinctVars(c.Arguments())); return nil }

// Consistency narrows the bounds of X, Y and Z until they agree.
func (c *XplusYeqZ) Consistency(s *Store) error {
	x, y, z := c.X, c.Y, c.Z
	for s.NewPropagation() {
		s.SetNewPropagation(false)

		switch {
		case x.IsBound():
			if err := y.InShift(z.Domain(), -x.Min()); err != nil {
				return err
			}
			if err := z.InShift(y.Domain(), x.Min()); err != nil {
				return err
			}
		case y.IsBound():
			if err := x.InShift(z.Domain(), -y.Min()); err != nil {
				return err
			}
			if err := z.InShift(x.Domain(), y.Min()); err != nil {
				return err
			}
		default:
			if err := x.In(z.Min()-y.Max(), z.Max()-y.Min()); err != nil {
				return err
			}
			if err := y.In(z.Min()-x.Max(), z.Max()-x.Min()); err != nil {
				return err
			}
			if err := z.In(x.Min()+y.Min(), x.Max()+y.Max()); err != nil {
				return err
			}
		}
	}
	return nil
}

// NotConsistency enforces the negation of X + Y = Z.
func (c *XplusYeqZ) NotConsistency(s *Store) error {
	x, y, z := c.X, c.Y, c.Z
	switch {
	case x.IsBound() && y.IsBound():
		return z.InComplement(x.Min() + y.Min())
	case x.IsBound() && z.IsBound():
		return y.InComplement(z.Min() - x.Min())
	case y.IsBound() && z.IsBound():
		return x.InComplement(z.Min() - y.Min())
	}
	return nil
}

// Satisfied reports whether X + Y = Z holds for every value left.
func (c *XplusYeqZ) Satisfied() bool {
	return c.X.IsBound() && c.Y.IsBound() && c.Z.IsBound() && c.X.Min()+c.Y.Min() == c.Z.Min()
}

// NotSatisfied reports whether X + Y = Z fails for every value left.
func (c *XplusYeqZ) NotSatisfied() bool {
	x, y, z := c.X, c.Y, c.Z
	if z.Max() < x.Min()+y.Min() || z.Min() > x.Max()+y.Max() {
		return true
	}
	return x.IsBound() && y.IsBound() && z.IsBound() && x.Min()+y.Min() != z.Min()
}

// String renders the constraint with its variables.
func (c *XplusYeqZ) String() string {
	return formatConstraint(c, fmt.Sprintf("%s + %s = %s", c.X.Name(), c.Y.Name(), c.Z.Name()))
}

// XmulYeqZ enforces X * Y = Z.
type XmulYeqZ struct {
	Base
	X, Y, Z *IntVar
}

// NewXmulYeqZ returns the constraint x * y = z.
func NewXmulYeqZ(x, y, z *IntVar) *XmulYeqZ {
	c := &XmulYeqZ{X: x, Y: y, Z: z}
	c.queueIndex = QueueLinear
	return c
}

// Kind returns KindXmulYeqZ.
func (c *XmulYeqZ) Kind() Kind { return KindXmulYeqZ }

// Arguments returns the scope of the constraint.
func (c *XmulYeqZ) Arguments() []*IntVar { return []*IntVar{c.X, c.Y, c.Z} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *XmulYeqZ) ConsistencyEvent(v *IntVar) Event { return EventBound }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *XmulYeqZ) NotConsistencyEvent(v *IntVar) Event { return EventGround }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *XmulYeqZ) Impose(s *Store) error { imposeScope(s, c, distinctVars(c.Arguments())); return nil }

// Consistency narrows the bounds with interval multiplication and division.
func (c *XmulYeqZ) Consistency(s *Store) error {
	x, y, z := c.X, c.Y, c.Z
	for s.NewPropagation() {
		s.SetNewPropagation(false)

		lo, hi, err := mulBounds(x.Min(), x.Max(), y.Min(), y.Max())
		if err != nil {
			return err
		}
		if err := z.In(lo, hi); err != nil {
			return err
		}
		if !z.Contains(0) {
			if err := x.InComplement(0); err != nil {
				return err
			}
			if err := y.InComplement(0); err != nil {
				return err
			}
		}
		if err := divideInto(x, z, y); err != nil {
			return err
		}
		if err := divideInto(y, z, x); err != nil {
			return err
		}
	}
	return nil
}

// divideInto narrows q to the integer quotients z / d when d excludes 0.
// A divisor with values on both sides of 0 is split into its negative and
// positive halves.
func divideInto(q, z, d *IntVar) error {
	if d.Contains(0) {
		return nil
	}
	lo, hi := MaxInt, MinInt
	if d.Min() < 0 {
		l, h := divBounds(z.Min(), z.Max(), d.Min(), min(d.Max(), -1))
		lo, hi = min(lo, l), max(hi, h)
	}
	if d.Max() > 0 {
		l, h := divBounds(z.Min(), z.Max(), max(d.Min(), 1), d.Max())
		lo, hi = min(lo, l), max(hi, h)
	}
	return q.In(lo, hi)
}

// mulBounds returns the bounds of [a, b] * [c, d].
func mulBounds(a, b, c, d int) (int, int, error) {
	lo, hi := MaxInt, MinInt
	for _, p := range [][2]int{{a, c}, {a, d}, {b, c}, {b, d}} {
		m, err := Multiply(p[0], p[1])
		if err != nil {
			return 0, 0, err
		}
		lo = min(lo, m)
		hi = max(hi, m)
	}
	return lo, hi, nil
}

// divBounds returns the integer bounds of [zl, zh] / [dl, dh] for an
// interval [dl, dh] that does not contain 0. The extremes of a quotient
// over a box are reached at its corners.
func divBounds(zl, zh, dl, dh int) (int, int) {
	lo, hi := ceilDiv(zl, dl), floorDiv(zl, dl)
	for _, p := range [][2]int{{zl, dh}, {zh, dl}, {zh, dh}} {
		lo = min(lo, ceilDiv(p[0], p[1]))
		hi = max(hi, floorDiv(p[0], p[1]))
	}
	return lo, hi
}

// NotConsistency enforces the negation of X * Y = Z.
func (c *XmulYeqZ) NotConsistency(s *Store) error {
	x, y, z := c.X, c.Y, c.Z
	switch {
	case x.IsBound() && y.IsBound():
		p, err := Multiply(x.Min(), y.Min())
		if err != nil {
			return err
		}
		return z.InComplement(p)
	case x.IsBound() && z.IsBound():
		return c.notQuotient(s, y, z.Min(), x.Min())
	case y.IsBound() && z.IsBound():
		return c.notQuotient(s, x, z.Min(), y.Min())
	}
	return nil
}

// notQuotient removes from q the only value with q * d = zv.
func (c *XmulYeqZ) notQuotient(s *Store, q *IntVar, zv, d int) error {
	if d == 0 {
		if zv == 0 {
			// 0 * q = 0 holds for every q
			return s.Fail(c)
		}
		return nil
	}
	if zv%d != 0 {
		return nil
	}
	return q.InComplement(zv / d)
}

// Satisfied reports whether X * Y = Z holds for every value left.
func (c *XmulYeqZ) Satisfied() bool {
	x, y, z := c.X, c.Y, c.Z
	if !x.IsBound() || !y.IsBound() || !z.IsBound() {
		return false
	}
	p, err := Multiply(x.Min(), y.Min())
	return err == nil && p == z.Min()
}

// NotSatisfied reports whether X * Y = Z fails for every value left.
func (c *XmulYeqZ) NotSatisfied() bool {
	x, y, z := c.X, c.Y, c.Z
	lo, hi, err := mulBounds(x.Min(), x.Max(), y.Min(), y.Max())
	if err != nil {
		return false
	}
	if z.Max() < lo || z.Min() > hi {
		return true
	}
	if x.IsBound() && y.IsBound() && z.IsBound() {
		return lo != z.Min()
	}
	return false
}

// String renders the constraint with its variables.
func (c *XmulYeqZ) String() string {
	return formatConstraint(c, fmt.Sprintf("%s * %s = %s", c.X.Name(), c.Y.Name(), c.Z.Name()))
}
