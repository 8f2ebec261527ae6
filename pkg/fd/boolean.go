package fd

// boolean.go: Boolean combinators over primitive constraints.
//
//   - And(c1..cn):     every ci holds
//   - Or(c1..cn):      at least one ci holds
//   - Not(c):          c does not hold
//   - Eq(c1, c2):      c1 holds iff c2 holds
//   - Xor(c, b):       b = 1 iff c does not hold
//   - Reified(c, b):   b = 1 iff c holds
//
// Combinators decide what to propagate by sensing their children with
// Satisfied and NotSatisfied. A child is propagated positively or
// negatively only once the sensing leaves no other option; otherwise the
// combinator stays suspended until one of the watched variables changes.
//
// Children are owned by their combinator: they get an identifier from the
// store but are never imposed, queued or retracted on their own.

import (
	"fmt"
	"strings"
)

// nestedHolder is implemented by combinators.
type nestedHolder interface {
	nested() []PrimitiveConstraint
}

// attachNested gives identifiers to a tree of nested constraints.
func attachNested(s *Store, cs []PrimitiveConstraint) {
	for _, c := range cs {
		s.attach(c)
		if h, ok := c.(nestedHolder); ok {
			attachNested(s, h.nested())
		}
	}
}

// runNested calls a child's propagation as if the store had just
// scheduled it.
func runNested(s *Store, f func(*Store) error) error {
	s.SetNewPropagation(true)
	return f(s)
}

// untilStable repeats pass until it leaves every domain unchanged.
func untilStable(s *Store, pass func() error) error {
	for {
		mark := s.changes
		if err := pass(); err != nil {
			return err
		}
		if s.changes == mark {
			s.SetNewPropagation(false)
			return nil
		}
	}
}

func forwardQueueVariable(cs []PrimitiveConstraint, level int, v *IntVar) {
	for _, c := range cs {
		if containsVar(c.Arguments(), v) {
			c.QueueVariable(level, v)
		}
	}
}

func argumentsOf(cs []PrimitiveConstraint, extra ...*IntVar) []*IntVar {
	groups := make([][]*IntVar, 0, len(cs)+1)
	for _, c := range cs {
		groups = append(groups, c.Arguments())
	}
	groups = append(groups, extra)
	return distinctVars(groups...)
}

// childEvent is the widest event any child needs on v in the given polarity.
func childEvent(cs []PrimitiveConstraint, v *IntVar, positive bool) Event {
	e := EventNone
	for _, c := range cs {
		if containsVar(c.Arguments(), v) {
			e = widest(e, nestedEvent(c, v, positive))
		}
	}
	return e
}

func joinConstraints(cs []PrimitiveConstraint, sep string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, sep)
}

func checkBoolGuard(kind Kind, b *IntVar) error {
	if b == nil {
		return modelErrorf(kind, "nil guard variable")
	}
	if b.Min() < 0 || b.Max() > 1 {
		return modelErrorf(kind, "guard %s has domain %s, want a subset of {0, 1}", b.Name(), b.Domain())
	}
	return nil
}

// And holds when every child holds.
type And struct {
	Base
	List []PrimitiveConstraint
}

// NewAnd returns the conjunction of cs.
func NewAnd(cs ...PrimitiveConstraint) *And {
	c := &And{List: cs}
	c.queueIndex = QueueBoolean
	return c
}

func (c *And) nested() []PrimitiveConstraint { return c.List }

// Kind returns KindAnd.
func (c *And) Kind() Kind { return KindAnd }

// Arguments returns the scope of the constraint.
func (c *And) Arguments() []*IntVar { return argumentsOf(c.List) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *And) ConsistencyEvent(v *IntVar) Event { return childEvent(c.List, v, true) }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *And) NotConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *And) Impose(s *Store) error {
	if len(c.List) == 0 {
		return modelErrorf(KindAnd, "no constraints")
	}
	attachNested(s, c.List)
	imposeScope(s, c, c.Arguments())
	return nil
}

// QueueVariable records v as changed at level.
func (c *And) QueueVariable(level int, v *IntVar) { forwardQueueVariable(c.List, level, v) }

// Consistency runs every child to a common fixpoint.
func (c *And) Consistency(s *Store) error {
	return untilStable(s, func() error {
		for _, ch := range c.List {
			if err := runNested(s, ch.Consistency); err != nil {
				return err
			}
		}
		return nil
	})
}

// NotConsistency propagates the negation once a single child is left
// undetermined and every other one is satisfied.
func (c *And) NotConsistency(s *Store) error {
	open := -1
	for i, ch := range c.List {
		if ch.NotSatisfied() {
			return nil
		}
		if !ch.Satisfied() {
			if open >= 0 {
				return nil
			}
			open = i
		}
	}
	if open < 0 {
		return s.Fail(c)
	}
	return runNested(s, c.List[open].NotConsistency)
}

// Satisfied reports whether the conjunction holds for every value left.
func (c *And) Satisfied() bool {
	for _, ch := range c.List {
		if !ch.Satisfied() {
			return false
		}
	}
	return true
}

// NotSatisfied reports whether the conjunction fails for every value left.
func (c *And) NotSatisfied() bool {
	for _, ch := range c.List {
		if ch.NotSatisfied() {
			return true
		}
	}
	return false
}

// String renders the constraint with its variables.
func (c *And) String() string { return formatConstraint(c, joinConstraints(c.List, " /\\ ")) }

// Or holds when at least one child holds.
type Or struct {
	Base
	List []PrimitiveConstraint
}

// NewOr returns the disjunction of cs.
func NewOr(cs ...PrimitiveConstraint) *Or {
	c := &Or{List: cs}
	c.queueIndex = QueueBoolean
	return c
}

func (c *Or) nested() []PrimitiveConstraint { return c.List }

// Kind returns KindOr.
func (c *Or) Kind() Kind { return KindOr }

// Arguments returns the scope of the constraint.
func (c *Or) Arguments() []*IntVar { return argumentsOf(c.List) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Or) ConsistencyEvent(v *IntVar) Event { return EventAny }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *Or) NotConsistencyEvent(v *IntVar) Event { return childEvent(c.List, v, false) }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Or) Impose(s *Store) error {
	if len(c.List) == 0 {
		return modelErrorf(KindOr, "no constraints")
	}
	attachNested(s, c.List)
	imposeScope(s, c, c.Arguments())
	return nil
}

// QueueVariable records v as changed at level.
func (c *Or) QueueVariable(level int, v *IntVar) { forwardQueueVariable(c.List, level, v) }

// Consistency fails when every disjunct is violated and propagates the
// last undetermined one when all the others are violated. It runs once
// per call: the remaining disjunct reaches its own fixpoint.
func (c *Or) Consistency(s *Store) error {
	open := -1
	for i, ch := range c.List {
		if ch.Satisfied() {
			return nil
		}
		if ch.NotSatisfied() {
			continue
		}
		if open >= 0 {
			return nil
		}
		open = i
	}
	if open < 0 {
		return s.Fail(c)
	}
	return runNested(s, c.List[open].Consistency)
}

// NotConsistency enforces the negation of the disjunction.
func (c *Or) NotConsistency(s *Store) error {
	return untilStable(s, func() error {
		for _, ch := range c.List {
			if err := runNested(s, ch.NotConsistency); err != nil {
				return err
			}
		}
		return nil
	})
}

// Satisfied reports whether the disjunction holds for every value left.
func (c *Or) Satisfied() bool {
	for _, ch := range c.List {
		if ch.Satisfied() {
			return true
		}
	}
	return false
}

// NotSatisfied reports whether the disjunction fails for every value left.
func (c *Or) NotSatisfied() bool {
	for _, ch := range c.List {
		if !ch.NotSatisfied() {
			return false
		}
	}
	return true
}

// String renders the constraint with its variables.
func (c *Or) String() string { return formatConstraint(c, joinConstraints(c.List, " \\/ ")) }

// Not holds when its child does not.
type Not struct {
	Base
	C PrimitiveConstraint
}

// NewNot returns the negation of c.
func NewNot(c PrimitiveConstraint) *Not {
	n := &Not{C: c}
	n.queueIndex = c.QueueIndex()
	return n
}

func (c *Not) nested() []PrimitiveConstraint { return []PrimitiveConstraint{c.C} }

// Kind returns KindNot.
func (c *Not) Kind() Kind { return KindNot }

// Arguments returns the scope of the constraint.
func (c *Not) Arguments() []*IntVar { return c.C.Arguments() }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Not) ConsistencyEvent(v *IntVar) Event { return c.C.NotConsistencyEvent(v) }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *Not) NotConsistencyEvent(v *IntVar) Event { return c.C.ConsistencyEvent(v) }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Not) Impose(s *Store) error {
	attachNested(s, c.nested())
	imposeScope(s, c, distinctVars(c.Arguments()))
	return nil
}

// QueueVariable records v as changed at level.
func (c *Not) QueueVariable(level int, v *IntVar) { c.C.QueueVariable(level, v) }

// Consistency propagates the negation of C.
func (c *Not) Consistency(s *Store) error { return c.C.NotConsistency(s) }

// NotConsistency enforces the negation of the negated constraint.
func (c *Not) NotConsistency(s *Store) error { return c.C.Consistency(s) }

// Satisfied reports whether the negated constraint holds for every value left.
func (c *Not) Satisfied() bool { return c.C.NotSatisfied() }

// NotSatisfied reports whether the negated constraint fails for every value left.
func (c *Not) NotSatisfied() bool { return c.C.Satisfied() }

// String renders the constraint with its variables.
func (c *Not) String() string { return formatConstraint(c, "~"+c.C.String()) }

// Eq holds when both children hold or both are violated.
type Eq struct {
	Base
	C1, C2 PrimitiveConstraint
}

// NewEq returns the equivalence c1 <=> c2.
func NewEq(c1, c2 PrimitiveConstraint) *Eq {
	c := &Eq{C1: c1, C2: c2}
	c.queueIndex = QueueBoolean
	return c
}

func (c *Eq) nested() []PrimitiveConstraint { return []PrimitiveConstraint{c.C1, c.C2} }

// Kind returns KindEq.
func (c *Eq) Kind() Kind { return KindEq }

// Arguments returns the scope of the constraint.
func (c *Eq) Arguments() []*IntVar { return argumentsOf(c.nested()) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Eq) ConsistencyEvent(v *IntVar) Event { return EventAny }

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *Eq) NotConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Eq) Impose(s *Store) error {
	attachNested(s, c.nested())
	imposeScope(s, c, c.Arguments())
	return nil
}

// QueueVariable records v as changed at level.
func (c *Eq) QueueVariable(level int, v *IntVar) { forwardQueueVariable(c.nested(), level, v) }

// Consistency propagates one side once the other is entailed or disentailed.
func (c *Eq) Consistency(s *Store) error {
	return untilStable(s, func() error { return c.propagate(s, true) })
}

// NotConsistency enforces the negation of the equivalence.
func (c *Eq) NotConsistency(s *Store) error {
	return untilStable(s, func() error { return c.propagate(s, false) })
}

// propagate drives each side from the sensed state of the other. With
// same set the sides must agree, otherwise they must differ.
func (c *Eq) propagate(s *Store, same bool) error {
	if err := follow(s, c.C1, c.C2, same); err != nil {
		return err
	}
	return follow(s, c.C2, c.C1, same)
}

// follow propagates target once leader is decided.
func follow(s *Store, leader, target PrimitiveConstraint, same bool) error {
	switch {
	case leader.Satisfied():
		if same {
			return runNested(s, target.Consistency)
		}
		return runNested(s, target.NotConsistency)
	case leader.NotSatisfied():
		if same {
			return runNested(s, target.NotConsistency)
		}
		return runNested(s, target.Consistency)
	}
	return nil
}

// Satisfied reports whether the equivalence holds for every value left.
func (c *Eq) Satisfied() bool {
	return (c.C1.Satisfied() && c.C2.Satisfied()) || (c.C1.NotSatisfied() && c.C2.NotSatisfied())
}

// NotSatisfied reports whether the equivalence fails for every value left.
func (c *Eq) NotSatisfied() bool {
	return (c.C1.Satisfied() && c.C2.NotSatisfied()) || (c.C1.NotSatisfied() && c.C2.Satisfied())
}

// String renders the constraint with its variables.
func (c *Eq) String() string {
	return formatConstraint(c, fmt.Sprintf("%s <=> %s", c.C1, c.C2))
}

// Reified holds when B = 1 and C holds, or B = 0 and C is violated.
type Reified struct {
	Base
	C PrimitiveConstraint
	B *IntVar
}

// NewReified returns the reification b <=> c. The domain of b must be a
// subset of {0, 1}.
func NewReified(c PrimitiveConstraint, b *IntVar) (*Reified, error) {
	if err := checkBoolGuard(KindReified, b); err != nil {
		return nil, err
	}
	r := &Reified{C: c, B: b}
	r.queueIndex = QueueBoolean
	return r, nil
}

func (c *Reified) nested() []PrimitiveConstraint { return []PrimitiveConstraint{c.C} }

// Kind returns KindReified.
func (c *Reified) Kind() Kind { return KindReified }

// Arguments returns the scope of the constraint.
func (c *Reified) Arguments() []*IntVar { return argumentsOf(c.nested(), c.B) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Reified) ConsistencyEvent(v *IntVar) Event {
	if v == c.B {
		return EventGround
	}
	return EventAny
}

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *Reified) NotConsistencyEvent(v *IntVar) Event { return c.ConsistencyEvent(v) }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Reified) Impose(s *Store) error {
	attachNested(s, c.nested())
	imposeScope(s, c, c.Arguments())
	return nil
}

// QueueVariable records v as changed at level.
func (c *Reified) QueueVariable(level int, v *IntVar) {
	if v != c.B || containsVar(c.C.Arguments(), v) {
		c.C.QueueVariable(level, v)
	}
}

// Consistency prunes the domains of the scope.
func (c *Reified) Consistency(s *Store) error { return reify(s, c.C, c.B, true) }

// NotConsistency enforces the negation of C <=> B.
func (c *Reified) NotConsistency(s *Store) error { return reify(s, c.C, c.B, false) }

// Satisfied reports whether C <=> B holds for every value left.
func (c *Reified) Satisfied() bool {
	return c.B.IsBound() && ((c.B.Min() == 1 && c.C.Satisfied()) || (c.B.Min() == 0 && c.C.NotSatisfied()))
}

// NotSatisfied reports whether C <=> B fails for every value left.
func (c *Reified) NotSatisfied() bool {
	return c.B.IsBound() && ((c.B.Min() == 1 && c.C.NotSatisfied()) || (c.B.Min() == 0 && c.C.Satisfied()))
}

// String renders the constraint with its variables.
func (c *Reified) String() string {
	return formatConstraint(c, fmt.Sprintf("%s <=> %s", c.C, c.B.Name()))
}

// reify links b and c: with positive set b = 1 iff c holds, otherwise
// b = 1 iff c is violated.
func reify(s *Store, c PrimitiveConstraint, b *IntVar, positive bool) error {
	holds, fails := c.Consistency, c.NotConsistency
	if !positive {
		holds, fails = fails, holds
	}
	switch {
	case b.Min() == 1:
		return runNested(s, holds)
	case b.Max() == 0:
		return runNested(s, fails)
	}

	sat, notSat := c.Satisfied(), c.NotSatisfied()
	if !positive {
		sat, notSat = notSat, sat
	}
	switch {
	case sat:
		return b.InValue(1)
	case notSat:
		return b.InValue(0)
	}
	return nil
}

// Xor holds when exactly one of "C holds" and "B = 1" is true, that is
// B = 1 iff C is violated.
type Xor struct {
	Base
	C PrimitiveConstraint
	B *IntVar
}

// NewXor returns c xor (b = 1). The domain of b must be a subset of {0, 1}.
func NewXor(c PrimitiveConstraint, b *IntVar) (*Xor, error) {
	if err := checkBoolGuard(KindXor, b); err != nil {
		return nil, err
	}
	x := &Xor{C: c, B: b}
	x.queueIndex = QueueBoolean
	return x, nil
}

func (c *Xor) nested() []PrimitiveConstraint { return []PrimitiveConstraint{c.C} }

// Kind returns KindXor.
func (c *Xor) Kind() Kind { return KindXor }

// Arguments returns the scope of the constraint.
func (c *Xor) Arguments() []*IntVar { return argumentsOf(c.nested(), c.B) }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Xor) ConsistencyEvent(v *IntVar) Event {
	if v == c.B {
		return EventGround
	}
	return EventAny
}

// NotConsistencyEvent returns the change of v that wakes the negation.
func (c *Xor) NotConsistencyEvent(v *IntVar) Event { return c.ConsistencyEvent(v) }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Xor) Impose(s *Store) error {
	attachNested(s, c.nested())
	imposeScope(s, c, c.Arguments())
	return nil
}

// QueueVariable records v as changed at level.
func (c *Xor) QueueVariable(level int, v *IntVar) {
	if v != c.B || containsVar(c.C.Arguments(), v) {
		c.C.QueueVariable(level, v)
	}
}

// Consistency prunes the domains of the scope.
func (c *Xor) Consistency(s *Store) error { return reify(s, c.C, c.B, false) }

// NotConsistency enforces the negation of C xor B.
func (c *Xor) NotConsistency(s *Store) error { return reify(s, c.C, c.B, true) }

// Satisfied reports whether C xor B holds for every value left.
func (c *Xor) Satisfied() bool {
	return c.B.IsBound() && ((c.B.Min() == 1 && c.C.NotSatisfied()) || (c.B.Min() == 0 && c.C.Satisfied()))
}

// NotSatisfied reports whether C xor B fails for every value left.
func (c *Xor) NotSatisfied() bool {
	return c.B.IsBound() && ((c.B.Min() == 1 && c.C.Satisfied()) || (c.B.Min() == 0 && c.C.NotSatisfied()))
}

// String renders the constraint with its variables.
func (c *Xor) String() string {
	return formatConstraint(c, fmt.Sprintf("%s xor %s", c.C, c.B.Name()))
}

var (
	_ PrimitiveConstraint = (*And)(nil)
	_ PrimitiveConstraint = (*Or)(nil)
	_ PrimitiveConstraint = (*Not)(nil)
	_ PrimitiveConstraint = (*Eq)(nil)
	_ PrimitiveConstraint = (*Reified)(nil)
	_ PrimitiveConstraint = (*Xor)(nil)
)
