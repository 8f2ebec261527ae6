// Package fd: global constraints - Alldifferent (ground-value propagation)
//
// Alldifferent enforces x[i] != x[j] for every pair i != j. It only reasons
// about variables that are already bound: the value of a bound variable is
// removed from every variable that is still open. This is arc consistency
// against ground values, not a Hall-set argument; Alldiff adds the bounds
// reasoning on top of the same machinery.
//
// Design
//   - The scope is copied into a working list kept partitioned as
//     [grounded ... | open ...]. A reversible TimeStamp records where the
//     open part starts.
//   - QueueVariable collects variables that became bound. Consistency
//     moves each of them to the end of the grounded prefix and removes its
//     value from the open part. Removing values can bind more variables,
//     which are collected in turn, so the loop runs until nothing is left.
//   - The list is only permuted beyond the current boundary, so the
//     grounded prefix saved at any level is still intact when the boundary
//     is restored by backtracking.
//   - The first Consistency call at a level scans the scope for variables
//     that were bound before the constraint was imposed. A reversible
//     boolean marks that the scan was done.
package fd

// groundPartition is the incremental [grounded | open] bookkeeping shared
// by Alldifferent, Alldiff and Circuit.
type groundPartition struct {
	list     []*IntVar
	position map[*IntVar]int
	grounded *TimeStamp[int]
	scanned  *TimeStamp[bool]
	queue    []*IntVar
}

func newGroundPartition(vars []*IntVar) *groundPartition {
	p := &groundPartition{
		list:     append([]*IntVar(nil), vars...),
		position: make(map[*IntVar]int, len(vars)),
	}
	for i, v := range p.list {
		p.position[v] = i
	}
	return p
}

// init creates the reversible cells. Called from Impose.
func (p *groundPartition) init(s *Store) {
	p.grounded = NewTimeStamp(s, 0)
	p.scanned = NewTimeStamp(s, false)
	p.queue = p.queue[:0]
}

// open returns the variables that are not in the grounded prefix yet.
func (p *groundPartition) open() []*IntVar { return p.list[p.grounded.Value():] }

func (p *groundPartition) enqueue(v *IntVar) {
	if v.IsBound() {
		p.queue = append(p.queue, v)
	}
}

func (p *groundPartition) reset() { p.queue = p.queue[:0] }

// scan queues every bound variable once per level.
func (p *groundPartition) scan() {
	if p.scanned.Value() {
		return
	}
	for _, v := range p.open() {
		p.enqueue(v)
	}
	p.scanned.Update(true)
}

// propagate moves every queued bound variable into the grounded prefix,
// removes its value from the open variables and calls onGround, if set,
// with the variable and its value.
func (p *groundPartition) propagate(onGround func(v *IntVar, value int) error) error {
	for len(p.queue) > 0 {
		v := p.queue[0]
		p.queue = p.queue[1:]

		g := p.grounded.Value()
		pos := p.position[v]
		if pos < g || !v.IsBound() {
			continue
		}
		p.swap(pos, g)
		p.grounded.Update(g + 1)

		value := v.Min()
		for _, w := range p.list[g+1:] {
			if err := w.InComplement(value); err != nil {
				return err
			}
		}
		if onGround != nil {
			if err := onGround(v, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *groundPartition) swap(i, j int) {
	if i == j {
		return
	}
	p.list[i], p.list[j] = p.list[j], p.list[i]
	p.position[p.list[i]] = i
	p.position[p.list[j]] = j
}

// allDistinct reports whether every variable is bound to a different value.
func allDistinct(vars []*IntVar) bool {
	seen := make(map[int]struct{}, len(vars))
	for _, v := range vars {
		if !v.IsBound() {
			return false
		}
		if _, dup := seen[v.Min()]; dup {
			return false
		}
		seen[v.Min()] = struct{}{}
	}
	return true
}

func checkDistinctScope(kind Kind, vars []*IntVar) error {
	seen := make(map[*IntVar]struct{}, len(vars))
	for i, v := range vars {
		if v == nil {
			return modelErrorf(kind, "variable %d is nil", i)
		}
		if _, dup := seen[v]; dup {
			return modelErrorf(kind, "variable %s appears twice", v.Name())
		}
		seen[v] = struct{}{}
	}
	return nil
}

// Alldifferent enforces pairwise distinct values by ground-value removal.
type Alldifferent struct {
	Base
	List []*IntVar
	part *groundPartition
}

// NewAlldifferent returns an Alldifferent over vars. Every variable may
// appear only once.
func NewAlldifferent(vars []*IntVar) (*Alldifferent, error) {
	if err := checkDistinctScope(KindAlldifferent, vars); err != nil {
		return nil, err
	}
	c := &Alldifferent{List: append([]*IntVar(nil), vars...), part: newGroundPartition(vars)}
	c.queueIndex = QueueLinear
	return c, nil
}

// Kind returns KindAlldifferent.
func (c *Alldifferent) Kind() Kind { return KindAlldifferent }

// Arguments returns the scope of the constraint.
func (c *Alldifferent) Arguments() []*IntVar { return c.List }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Alldifferent) ConsistencyEvent(v *IntVar) Event { return EventGround }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Alldifferent) Impose(s *Store) error {
	c.part.init(s)
	imposeScope(s, c, c.List)
	return nil
}

// QueueVariable records v as changed at level.
func (c *Alldifferent) QueueVariable(level int, v *IntVar) { c.part.enqueue(v) }

// RemoveLevel drops the variables queued at the abandoned level.
func (c *Alldifferent) RemoveLevel(level int) { c.part.reset() }

// Consistency removes the value of every newly bound variable from the
// rest of the list.
func (c *Alldifferent) Consistency(s *Store) error {
	c.part.scan()
	for s.NewPropagation() {
		s.SetNewPropagation(false)
		if err := c.part.propagate(nil); err != nil {
			return err
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Alldifferent) Satisfied() bool { return allDistinct(c.List) }

// String renders the constraint with its variables.
func (c *Alldifferent) String() string { return formatConstraint(c, varNames(c.List)) }
