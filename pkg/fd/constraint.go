package fd

// constraint.go: the constraint protocol.
//
// A constraint moves through a small life cycle:
//
//	unimposed --Impose--> imposed --(scheduled, Consistency)*--> retracted
//
// Impose registers the constraint on every variable of its scope with the
// pruning Event it cares about. From then on the Store schedules it each
// time one of those variables changes accordingly, and calls Consistency,
// which narrows domains through the IntVar.In* methods. A constraint
// imposed at search level L is retracted (RemoveConstraint) when level L
// is popped.
//
// PrimitiveConstraint adds the negative half of the protocol so that
// constraints can be combined with And, Or, Not, Eq, Xor and Reified.

import (
	"fmt"
	"strings"
)

// Kind identifies the type of a constraint. It is used for logging,
// statistics and error messages.
type Kind int

const (
	KindXeqC Kind = iota
	KindXneqC
	KindXlteqC
	KindXgteqC
	KindXeqY
	KindXneqY
	KindXltY
	KindXlteqY
	KindXplusCeqZ
	KindXplusYeqZ
	KindXmulYeqZ
	KindAnd
	KindOr
	KindNot
	KindEq
	KindXor
	KindReified
	KindAlldifferent
	KindAlldiff
	KindCircuit
	KindSum
	KindSumWeight
	KindElementInteger
	KindElementVariable
	KindMax
	KindMin
	KindCumulative
)

var kindNames = [...]string{
	KindXeqC:            "XeqC",
	KindXneqC:           "XneqC",
	KindXlteqC:          "XlteqC",
	KindXgteqC:          "XgteqC",
	KindXeqY:            "XeqY",
	KindXneqY:           "XneqY",
	KindXltY:            "XltY",
	KindXlteqY:          "XlteqY",
	KindXplusCeqZ:       "XplusCeqZ",
	KindXplusYeqZ:       "XplusYeqZ",
	KindXmulYeqZ:        "XmulYeqZ",
	KindAnd:             "And",
	KindOr:              "Or",
	KindNot:             "Not",
	KindEq:              "Eq",
	KindXor:             "Xor",
	KindReified:         "Reified",
	KindAlldifferent:    "Alldifferent",
	KindAlldiff:         "Alldiff",
	KindCircuit:         "Circuit",
	KindSum:             "Sum",
	KindSumWeight:       "SumWeight",
	KindElementInteger:  "ElementInteger",
	KindElementVariable: "ElementVariable",
	KindMax:             "Max",
	KindMin:             "Min",
	KindCumulative:      "Cumulative",
}

// String returns the type name of the constraint kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Constraint is implemented by every propagator.
//
// Implementations must embed Base, which supplies identity, scheduling
// state, a no-op QueueVariable and RemoveConstraint.
type Constraint interface {
	// ID returns the store-assigned identifier, or 0 before Impose.
	ID() int

	// Kind returns the constraint type.
	Kind() Kind

	// Arguments returns the scope of the constraint.
	Arguments() []*IntVar

	// Impose registers the constraint on its scope and schedules it.
	// Called by Store.Impose; not meant to be called directly.
	Impose(s *Store) error

	// Consistency prunes the domains of the scope. It returns a *Failure
	// when the current state is inconsistent. On entry s.NewPropagation()
	// is true. Constraints with a local fixpoint loop clear the flag at
	// the start of each pass and loop while a pass sets it again.
	Consistency(s *Store) error

	// QueueVariable is called when a variable of the scope changed. It
	// must not propagate.
	QueueVariable(level int, v *IntVar)

	// RemoveConstraint unregisters the constraint from its scope.
	RemoveConstraint()

	// Satisfied reports whether the constraint holds for every completion
	// of the current domains. A false result does not mean violation.
	Satisfied() bool

	// ConsistencyEvent returns the event on v that should reschedule the
	// constraint.
	ConsistencyEvent(v *IntVar) Event

	// QueueIndex returns the priority queue the constraint runs on.
	QueueIndex() int

	String() string

	base() *Base
}

// PrimitiveConstraint is a constraint that can also be propagated in
// negated form, and thus embedded in Boolean combinators.
type PrimitiveConstraint interface {
	Constraint

	// NotConsistency prunes the scope so that the constraint does not hold.
	NotConsistency(s *Store) error

	// NotSatisfied reports whether the constraint is violated by every
	// completion of the current domains.
	NotSatisfied() bool

	// NotConsistencyEvent returns the event on v that should reschedule
	// the negated constraint.
	NotConsistencyEvent(v *IntVar) Event
}

// RemoveLevelListener is implemented by constraints that keep level-local
// caches. RemoveLevel is called for every imposed listener when a level is
// popped, before the trail restores domains and TimeStamps.
type RemoveLevelListener interface {
	RemoveLevel(level int)
}

// Base carries the state shared by every constraint.
type Base struct {
	id         int
	queueIndex int
	pending    bool
	imposed    bool

	self    Constraint
	events  map[*IntVar]Event
	watched []*IntVar
}

func (b *Base) base() *Base { return b }

// ID returns the store-assigned identifier.
func (b *Base) ID() int { return b.id }

// QueueIndex returns the priority queue the constraint runs on.
func (b *Base) QueueIndex() int { return b.queueIndex }

// Imposed reports whether the constraint is currently imposed.
func (b *Base) Imposed() bool { return b.imposed }

// SetConsistencyEvent overrides the pruning event used to register v.
// It must be called before the constraint is imposed.
func (b *Base) SetConsistencyEvent(v *IntVar, e Event) {
	if b.events == nil {
		b.events = make(map[*IntVar]Event)
	}
	b.events[v] = e
}

// QueueVariable is a no-op: most constraints rescan their scope.
func (b *Base) QueueVariable(level int, v *IntVar) {}

// RemoveConstraint unregisters the constraint from every watched variable.
func (b *Base) RemoveConstraint() {
	for _, v := range b.watched {
		v.removeWatch(b.self)
	}
	b.watched = nil
}

// register watches every distinct variable of vars for the event the
// constraint asks for, unless an override was set.
func (b *Base) register(c Constraint, vars []*IntVar) {
	b.self = c
	for _, v := range vars {
		if v == nil {
			continue
		}
		e, ok := b.events[v]
		if !ok {
			e = c.ConsistencyEvent(v)
		}
		if !containsVar(b.watched, v) {
			b.watched = append(b.watched, v)
		}
		v.addWatch(c, e)
	}
}

// imposeScope is the common Impose body: register on the scope, schedule
// the first run and count the constraint.
func imposeScope(s *Store, c Constraint, vars []*IntVar) {
	c.base().register(c, vars)
	s.AddChanged(c)
	s.CountConstraint()
}

// nestedEvent is the event a combinator needs on v to follow child c in
// the given polarity.
func nestedEvent(c PrimitiveConstraint, v *IntVar, positive bool) Event {
	if positive {
		return c.ConsistencyEvent(v)
	}
	return c.NotConsistencyEvent(v)
}

// widest returns the event that wakes on every change either of a or b
// would wake on.
func widest(a, b Event) Event {
	if a == EventNone {
		return b
	}
	if b == EventNone {
		return a
	}
	if a > b {
		return a
	}
	return b
}

func containsVar(vars []*IntVar, v *IntVar) bool {
	for _, w := range vars {
		if w == v {
			return true
		}
	}
	return false
}

func distinctVars(groups ...[]*IntVar) []*IntVar {
	var out []*IntVar
	for _, g := range groups {
		for _, v := range g {
			if v != nil && !containsVar(out, v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// formatConstraint renders "Kind#id(body)".
func formatConstraint(c Constraint, body string) string {
	return fmt.Sprintf("%s#%d(%s)", c.Kind(), c.ID(), body)
}

func varNames(vars []*IntVar) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Name()
	}
	return "[" + strings.Join(names, ", ") + "]"
}

var (
	_ Constraint          = (*Alldifferent)(nil)
	_ Constraint          = (*Alldiff)(nil)
	_ Constraint          = (*Circuit)(nil)
	_ Constraint          = (*Sum)(nil)
	_ Constraint          = (*SumWeight)(nil)
	_ Constraint          = (*ElementInteger)(nil)
	_ Constraint          = (*ElementVariable)(nil)
	_ Constraint          = (*Max)(nil)
	_ Constraint          = (*Min)(nil)
	_ Constraint          = (*Cumulative)(nil)
	_ RemoveLevelListener = (*Alldifferent)(nil)
	_ RemoveLevelListener = (*Alldiff)(nil)
	_ RemoveLevelListener = (*Circuit)(nil)
)
