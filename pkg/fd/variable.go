package fd

// variable.go: finite-domain integer variables and pruning events.
//
// An IntVar owns exactly one Domain. All narrowing goes through the In*
// family below, which
//   - intersects the current domain with the requested set,
//   - reports a *Failure when the result would be empty,
//   - trails the previous domain once per search level,
//   - classifies the change as a pruning Event and wakes the constraints
//     registered for that event.
//
// The variable itself never restores anything. Backtracking is driven by
// the Store's trail, which puts back the domain pointer saved here.

import "fmt"

// Event classifies a domain change. Events are ordered from the most
// specific to the most general: a constraint registered for an event is
// woken by that event and every more specific one.
type Event int

const (
	// EventGround fires when the domain becomes a singleton.
	EventGround Event = iota
	// EventBound fires when the minimum or the maximum changes.
	EventBound
	// EventAny fires on every change.
	EventAny
	// EventNone never fires. Constraints registered with it are only run
	// when imposed or explicitly queued.
	EventNone
)

// String returns the name of the event.
func (e Event) String() string {
	switch e {
	case EventGround:
		return "GROUND"
	case EventBound:
		return "BOUND"
	case EventAny:
		return "ANY"
	case EventNone:
		return "NONE"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// wakes reports whether a registration for e is woken by change.
func (e Event) wakes(change Event) bool {
	return e != EventNone && change <= e
}

type watch struct {
	c     Constraint
	event Event
}

// IntVar is a finite-domain integer variable owned by a Store.
//
// Variables are created with Store.NewIntVar and friends and must not be
// shared between stores.
type IntVar struct {
	store *Store
	id    int
	name  string

	dom   Domain
	stamp int // level at which dom was last trailed

	weight   int
	watchers []watch
}

// ID returns the store-local identifier of the variable.
func (v *IntVar) ID() int { return v.id }

// Name returns the variable's name.
func (v *IntVar) Name() string { return v.name }

// Store returns the store the variable belongs to.
func (v *IntVar) Store() *Store { return v.store }

// Domain returns the current domain.
func (v *IntVar) Domain() Domain { return v.dom }

// Min returns the smallest value still possible.
func (v *IntVar) Min() int { return v.dom.Min() }

// Max returns the largest value still possible.
func (v *IntVar) Max() int { return v.dom.Max() }

// Size returns the number of values still possible.
func (v *IntVar) Size() int { return v.dom.Count() }

// IsBound returns true if the domain is a singleton.
func (v *IntVar) IsBound() bool { return v.dom.IsSingleton() }

// Contains reports whether value is still possible.
func (v *IntVar) Contains(value int) bool { return v.dom.Contains(value) }

// Value returns the bound value. Panics if the variable is not bound.
func (v *IntVar) Value() int {
	if !v.IsBound() {
		panic(fmt.Sprintf("variable %s is not bound (domain %s)", v.name, v.dom))
	}
	return v.dom.SingletonValue()
}

// TryValue returns the bound value, or an error if the variable still
// has several candidate values.
func (v *IntVar) TryValue() (int, error) {
	if !v.IsBound() {
		return 0, fmt.Errorf("variable %s is not bound (domain size: %d)", v.name, v.dom.Count())
	}
	return v.dom.SingletonValue(), nil
}

// Weight returns the failure count accumulated by constraints over this
// variable. Search heuristics use it to prefer variables involved in
// frequent conflicts.
func (v *IntVar) Weight() int { return v.weight }

// Degree returns the number of constraints currently watching the variable.
func (v *IntVar) Degree() int { return len(v.watchers) }

// String renders the variable as name=3 or name::{1..4}.
func (v *IntVar) String() string {
	if v.IsBound() {
		return fmt.Sprintf("%s=%d", v.name, v.dom.SingletonValue())
	}
	return fmt.Sprintf("%s::%s", v.name, v.dom)
}

// In restricts the domain to [lo, hi].
func (v *IntVar) In(lo, hi int) error {
	if lo <= v.dom.Min() && hi >= v.dom.Max() {
		return nil
	}
	return v.update(v.dom.IntersectRange(lo, hi))
}

// InDomain restricts the domain to its intersection with d.
func (v *IntVar) InDomain(d Domain) error {
	if v.dom.IsSubsetOf(d) {
		return nil
	}
	return v.update(v.dom.Intersect(d))
}

// InMin removes every value below min.
func (v *IntVar) InMin(min int) error {
	if min <= v.dom.Min() {
		return nil
	}
	return v.update(v.dom.RemoveBelow(min))
}

// InMax removes every value above max.
func (v *IntVar) InMax(max int) error {
	if max >= v.dom.Max() {
		return nil
	}
	return v.update(v.dom.RemoveAbove(max))
}

// InValue binds the variable to value.
func (v *IntVar) InValue(value int) error {
	return v.In(value, value)
}

// InComplement removes value from the domain.
func (v *IntVar) InComplement(value int) error {
	if !v.dom.Contains(value) {
		return nil
	}
	return v.update(v.dom.Subtract(value))
}

// InComplementRange removes every value of [lo, hi].
func (v *IntVar) InComplementRange(lo, hi int) error {
	if lo > hi || hi < v.dom.Min() || lo > v.dom.Max() {
		return nil
	}
	return v.update(v.dom.SubtractRange(lo, hi))
}

// InComplementDomain removes every value of d.
func (v *IntVar) InComplementDomain(d Domain) error {
	if !v.dom.IsIntersecting(d) {
		return nil
	}
	return v.update(v.dom.SubtractDomain(d))
}

// InShift restricts the domain to {x + shift | x in d}.
func (v *IntVar) InShift(d Domain, shift int) error {
	return v.InDomain(d.Shift(shift))
}

// update installs a narrowed domain. d must be a subset of the current
// domain; every In* method above guarantees that.
func (v *IntVar) update(d Domain) error {
	if d.IsEmpty() {
		return v.store.failEmpty(v)
	}
	old := v.dom
	if d.Count() == old.Count() {
		return nil
	}

	event := EventAny
	switch {
	case d.IsSingleton():
		event = EventGround
	case d.Min() != old.Min() || d.Max() != old.Max():
		event = EventBound
	}

	v.store.recordDomain(v)
	v.dom = d
	v.store.notify(v, event)
	return nil
}

func (v *IntVar) addWatch(c Constraint, e Event) {
	for i := range v.watchers {
		if v.watchers[i].c == c {
			// keep the widest registration
			if old := v.watchers[i].event; old == EventNone || (e != EventNone && e > old) {
				v.watchers[i].event = e
			}
			return
		}
	}
	v.watchers = append(v.watchers, watch{c: c, event: e})
}

func (v *IntVar) removeWatch(c Constraint) {
	for i := range v.watchers {
		if v.watchers[i].c == c {
			v.watchers = append(v.watchers[:i], v.watchers[i+1:]...)
			return
		}
	}
}
