package fd

// store.go: the propagation store.
//
// The Store owns every variable and constraint of a model and provides
//   - the scheduler: an array of FIFO queues of constraints, lower index
//     first, with at most one pending entry per constraint;
//   - the fixpoint loop (Consistency);
//   - the trail, which makes domains, TimeStamps and impositions
//     reversible per search level.
//
// A Store is not safe for concurrent use. Independent solves each get
// their own Store.

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultQueueCount is the number of priority queues of a new Store.
const DefaultQueueCount = 5

// Queue indexes used by the built-in constraints. Cheap bound reasoning
// runs first, global constraints last.
const (
	QueuePrimitive = 0
	QueueLinear    = 1
	QueueBoolean   = 1
	QueueGlobal    = 2
	QueueExpensive = 3
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithQueueCount sets the number of priority queues. Values below 1 are
// ignored. Constraints asking for a queue beyond the last one run on the
// last one.
func WithQueueCount(n int) StoreOption {
	return func(s *Store) {
		if n >= 1 {
			s.queues = make([]constraintQueue, n)
		}
	}
}

// WithLogger sets the logger used for debug tracing of propagation.
func WithLogger(l *logrus.Entry) StoreOption {
	return func(s *Store) {
		s.log = l
	}
}

// undoer is a reversible cell that can put back its previous value.
type undoer interface {
	undo()
}

// trailEntry is one reversible change: a domain, a cell or an imposition.
type trailEntry struct {
	v     *IntVar
	dom   Domain
	stamp int

	cell    undoer
	imposed Constraint
}

type constraintQueue struct {
	items []Constraint
	head  int
}

func (q *constraintQueue) push(c Constraint) { q.items = append(q.items, c) }

func (q *constraintQueue) empty() bool { return q.head == len(q.items) }

func (q *constraintQueue) pop() Constraint {
	c := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	}
	return c
}

func (q *constraintQueue) reset() {
	for i := q.head; i < len(q.items); i++ {
		q.items[i].base().pending = false
		q.items[i] = nil
	}
	q.items = q.items[:0]
	q.head = 0
}

// Store is the propagation context of one model.
type Store struct {
	log *logrus.Entry

	level  int
	marks  []int
	trail  []trailEntry
	queues []constraintQueue

	current        Constraint
	newPropagation bool

	// failed is the error of the last fixpoint run that did not complete.
	// It holds until the level it happened at is popped.
	failed      error
	failedLevel int
	changes        int // domain changes since the store was created

	nextVarID        int
	nextConstraintID int
	vars             []*IntVar
	varIndex         map[string]*IntVar
	constraints      []Constraint
	listeners        []RemoveLevelListener

	stats Stats
}

// NewStore creates an empty store at level 0.
func NewStore(opts ...StoreOption) *Store {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	s := &Store{
		log:      logrus.NewEntry(logger),
		queues:   make([]constraintQueue, DefaultQueueCount),
		varIndex: make(map[string]*IntVar),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Logger returns the store's logger.
func (s *Store) Logger() *logrus.Entry { return s.log }

// Level returns the current search level.
func (s *Store) Level() int { return s.level }

// QueueCount returns the number of priority queues.
func (s *Store) QueueCount() int { return len(s.queues) }

// NewIntVar creates a variable with domain [min, max]. An empty name is
// replaced by a generated one.
func (s *Store) NewIntVar(name string, min, max int) *IntVar {
	return s.NewIntVarDomain(name, NewIntervalDomain(min, max))
}

// NewIntVarValues creates a variable whose domain holds exactly values.
func (s *Store) NewIntVarValues(name string, values ...int) *IntVar {
	return s.NewIntVarDomain(name, NewDomainFromValues(values...))
}

// NewBoolVar creates a 0/1 variable.
func (s *Store) NewBoolVar(name string) *IntVar {
	return s.NewIntVar(name, 0, 1)
}

// NewIntVarDomain creates a variable with the given initial domain.
func (s *Store) NewIntVarDomain(name string, d Domain) *IntVar {
	s.nextVarID++
	if name == "" {
		name = fmt.Sprintf("_v%d", s.nextVarID)
	}
	v := &IntVar{
		store: s,
		id:    s.nextVarID,
		name:  name,
		dom:   d,
		stamp: s.level,
	}
	s.vars = append(s.vars, v)
	s.varIndex[name] = v
	s.stats.Variables++
	return v
}

// FindVariable returns the most recently created variable called name,
// or nil.
func (s *Store) FindVariable(name string) *IntVar {
	return s.varIndex[name]
}

// Variables returns the variables of the store in creation order.
func (s *Store) Variables() []*IntVar { return s.vars }

// Constraints returns the currently imposed constraints in imposition order.
func (s *Store) Constraints() []Constraint { return s.constraints }

// Impose imposes c on its own queue.
func (s *Store) Impose(c Constraint) error {
	return s.ImposeWithQueue(c, c.QueueIndex())
}

// ImposeWithQueue imposes c and schedules it on queue index.
func (s *Store) ImposeWithQueue(c Constraint, index int) error {
	b := c.base()
	if b.imposed {
		return modelErrorf(c.Kind(), "constraint %s is already imposed", c)
	}
	s.attach(c)
	b.queueIndex = s.clampQueue(index)
	b.imposed = true
	if err := c.Impose(s); err != nil {
		b.imposed = false
		c.RemoveConstraint()
		return err
	}
	s.constraints = append(s.constraints, c)
	if l, ok := c.(RemoveLevelListener); ok {
		s.listeners = append(s.listeners, l)
	}
	if s.level > 0 {
		s.pushTrail(trailEntry{imposed: c})
	}
	s.log.WithFields(logrus.Fields{
		"constraint": c.String(),
		"level":      s.level,
	}).Debug("imposed")
	return nil
}

// ImposeWithConsistency imposes c and runs propagation to a fixpoint.
func (s *Store) ImposeWithConsistency(c Constraint) error {
	if err := s.Impose(c); err != nil {
		return err
	}
	return s.Consistency()
}

// ImposeAll imposes every constraint in order.
func (s *Store) ImposeAll(cs ...Constraint) error {
	for _, c := range cs {
		if err := s.Impose(c); err != nil {
			return err
		}
	}
	return nil
}

// attach gives c an identifier. Nested constraints of combinators are
// attached but never imposed.
func (s *Store) attach(c Constraint) {
	b := c.base()
	if b.id == 0 {
		s.nextConstraintID++
		b.id = s.nextConstraintID
	}
	b.self = c
}

func (s *Store) clampQueue(index int) int {
	if index < 0 {
		return 0
	}
	if index >= len(s.queues) {
		return len(s.queues) - 1
	}
	return index
}

// AddChanged schedules c on its queue unless it is already pending.
func (s *Store) AddChanged(c Constraint) {
	b := c.base()
	if b.pending {
		return
	}
	b.pending = true
	s.queues[s.clampQueue(b.queueIndex)].push(c)
}

// CountConstraint increases the constraint counter by n, or by one.
func (s *Store) CountConstraint(n ...int) {
	if len(n) == 0 {
		s.stats.Constraints++
		return
	}
	for _, k := range n {
		s.stats.Constraints += k
	}
}

// NewPropagation reports whether the scope of the running constraint
// changed since the flag was last cleared.
func (s *Store) NewPropagation() bool { return s.newPropagation }

// SetNewPropagation sets the local fixpoint flag.
func (s *Store) SetNewPropagation(b bool) { s.newPropagation = b }

// CurrentConstraint returns the constraint being propagated, or nil.
func (s *Store) CurrentConstraint() Constraint { return s.current }

// Fail returns the failure raised by origin. Constraints return it from
// Consistency; they never recover from it.
func (s *Store) Fail(origin Constraint) error {
	return &Failure{Constraint: origin}
}

func (s *Store) failEmpty(v *IntVar) error {
	return &Failure{Constraint: s.current, Var: v}
}

// Consistency runs the scheduled constraints until every queue is empty.
// On failure the queues are cleared and the error is returned; the caller
// is expected to backtrack. Until the failing level is popped every later
// call returns the same error.
func (s *Store) Consistency() error {
	if s.failed != nil {
		return s.failed
	}
	for {
		c := s.dequeue()
		if c == nil {
			return nil
		}
		s.current = c
		s.newPropagation = true
		s.stats.ConsistencyCalls++
		err := c.Consistency(s)
		s.current = nil
		if err != nil {
			s.clearQueues()
			s.failed, s.failedLevel = err, s.level
			if IsFailure(err) {
				s.stats.Failures++
				for _, v := range c.Arguments() {
					v.weight++
				}
				s.log.WithFields(logrus.Fields{
					"constraint": c.String(),
					"level":      s.level,
				}).Debug("propagation failed")
			}
			return err
		}
	}
}

func (s *Store) dequeue() Constraint {
	for i := range s.queues {
		if !s.queues[i].empty() {
			c := s.queues[i].pop()
			c.base().pending = false
			return c
		}
	}
	return nil
}

func (s *Store) clearQueues() {
	for i := range s.queues {
		s.queues[i].reset()
	}
}

// notify wakes the constraints watching v for event.
func (s *Store) notify(v *IntVar, event Event) {
	s.changes++
	for _, w := range v.watchers {
		if !w.event.wakes(event) {
			continue
		}
		w.c.QueueVariable(s.level, v)
		if w.c == s.current {
			s.newPropagation = true
			continue
		}
		s.AddChanged(w.c)
	}
}

// Failed returns the error that left the store inconsistent, or nil.
func (s *Store) Failed() error { return s.failed }

// Push opens a new search level.
func (s *Store) Push() {
	s.marks = append(s.marks, len(s.trail))
	s.level++
	if s.level > s.stats.MaxLevel {
		s.stats.MaxLevel = s.level
	}
}

// Pop undoes every change made at the current level and returns to the
// previous one. RemoveLevel is broadcast before anything is restored.
func (s *Store) Pop() {
	if s.level == 0 {
		panic("fd: Pop called at level 0")
	}
	level := s.level
	listeners := append([]RemoveLevelListener(nil), s.listeners...)
	for _, l := range listeners {
		l.RemoveLevel(level)
	}

	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	for i := len(s.trail) - 1; i >= mark; i-- {
		s.undo(&s.trail[i])
		s.trail[i] = trailEntry{}
	}
	s.trail = s.trail[:mark]
	s.level--
	if s.failed != nil && s.level < s.failedLevel {
		s.failed = nil
	}
	s.clearQueues()
	s.stats.Backtracks++
	s.log.WithField("level", s.level).Debug("backtrack")
}

// Backtrack pops levels until the store is at level.
func (s *Store) Backtrack(level int) {
	for s.level > level {
		s.Pop()
	}
}

func (s *Store) undo(e *trailEntry) {
	switch {
	case e.v != nil:
		e.v.dom = e.dom
		e.v.stamp = e.stamp
	case e.cell != nil:
		e.cell.undo()
	case e.imposed != nil:
		s.retract(e.imposed)
	}
}

func (s *Store) retract(c Constraint) {
	c.RemoveConstraint()
	c.base().imposed = false
	for i := len(s.constraints) - 1; i >= 0; i-- {
		if s.constraints[i] == c {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			break
		}
	}
	if l, ok := c.(RemoveLevelListener); ok {
		for i := len(s.listeners) - 1; i >= 0; i-- {
			if s.listeners[i] == l {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				break
			}
		}
	}
}

// recordDomain trails the current domain of v if it was not trailed at
// this level yet.
func (s *Store) recordDomain(v *IntVar) {
	if v.stamp < s.level {
		s.pushTrail(trailEntry{v: v, dom: v.dom, stamp: v.stamp})
		v.stamp = s.level
	}
}

func (s *Store) pushTrail(e trailEntry) {
	s.trail = append(s.trail, e)
	if len(s.trail) > s.stats.PeakTrailSize {
		s.stats.PeakTrailSize = len(s.trail)
	}
}

// Stats returns a snapshot of the store counters.
func (s *Store) Stats() Stats { return s.stats }

// String lists the variables of the store with their current domains.
func (s *Store) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Store(level=%d, constraints=%d)\n", s.level, len(s.constraints))
	for _, v := range s.vars {
		b.WriteString("  ")
		b.WriteString(v.String())
		b.WriteString("\n")
	}
	return b.String()
}
