// Package fd: global constraints - Element (table lookup)
//
// ElementInteger enforces list[index - shift] = value over a constant table,
// ElementVariable the same over a table of variables. Indexes are 1-based:
// with shift 0, index 1 selects the first entry.
//
// Propagation (ElementInteger)
//   - value is narrowed to the table entries reachable from index.
//   - index is narrowed to the positions whose entry is still in value.
//     A reverse map from each distinct entry to its positions, built once
//     at construction, makes this a walk over the distinct entries.
//
// Propagation (ElementVariable)
//   - index loses every position whose variable no longer intersects value.
//   - value is narrowed to the union of the variables still selectable.
//   - Once index is bound, the selected variable and value are made equal
//     in both directions.
//
// Both constraints exclude out-of-range indexes on their first call at a
// level. A reversible boolean records that the restriction was applied.
package fd

import (
	"fmt"
	"sort"
)

// ElementInteger enforces List[Index - Shift] = Value for a constant table.
type ElementInteger struct {
	Base
	Index *IntVar
	List  []int
	Value *IntVar
	Shift int

	positions map[int]Domain // entry -> indexes producing it
	entries   []int          // distinct entries, ascending
	ready     *TimeStamp[bool]
}

// NewElementInteger returns the constraint list[index - shift] = value.
func NewElementInteger(index *IntVar, list []int, value *IntVar, shift int) (*ElementInteger, error) {
	if index == nil || value == nil {
		return nil, modelErrorf(KindElementInteger, "nil index or value variable")
	}
	if len(list) == 0 {
		return nil, modelErrorf(KindElementInteger, "empty table")
	}
	c := &ElementInteger{
		Index:     index,
		List:      append([]int(nil), list...),
		Value:     value,
		Shift:     shift,
		positions: make(map[int]Domain),
	}
	byEntry := make(map[int][]int)
	for i, e := range list {
		byEntry[e] = append(byEntry[e], i+1+shift)
	}
	for e, idx := range byEntry {
		c.positions[e] = NewDomainFromValues(idx...)
		c.entries = append(c.entries, e)
	}
	sort.Ints(c.entries)
	c.queueIndex = QueuePrimitive
	return c, nil
}

// Kind returns KindElementInteger.
func (c *ElementInteger) Kind() Kind { return KindElementInteger }

// Arguments returns the scope of the constraint.
func (c *ElementInteger) Arguments() []*IntVar { return []*IntVar{c.Index, c.Value} }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *ElementInteger) ConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *ElementInteger) Impose(s *Store) error {
	c.ready = NewTimeStamp(s, false)
	imposeScope(s, c, distinctVars(c.Arguments()))
	return nil
}

// Consistency keeps the indexes whose listed value is in Value and the
// values reachable through Index.
func (c *ElementInteger) Consistency(s *Store) error {
	if !c.ready.Value() {
		if err := c.Index.In(1+c.Shift, len(c.List)+c.Shift); err != nil {
			return err
		}
		c.ready.Update(true)
	}

	for s.NewPropagation() {
		s.SetNewPropagation(false)

		reachable := make([]int, 0, c.Index.Size())
		c.Index.Domain().IterateValues(func(i int) {
			reachable = append(reachable, c.List[i-c.Shift-1])
		})
		if err := c.Value.InDomain(NewDomainFromValues(reachable...)); err != nil {
			return err
		}

		var allowed Domain = EmptyDomain()
		for _, e := range c.entries {
			if c.Value.Contains(e) {
				allowed = allowed.Union(c.positions[e])
			}
		}
		if err := c.Index.InDomain(allowed); err != nil {
			return err
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *ElementInteger) Satisfied() bool {
	if !c.Index.IsBound() || !c.Value.IsBound() {
		return false
	}
	i := c.Index.Min() - c.Shift - 1
	return i >= 0 && i < len(c.List) && c.List[i] == c.Value.Min()
}

// String renders the constraint with its variables.
func (c *ElementInteger) String() string {
	return formatConstraint(c, fmt.Sprintf("%v[%s - %d] = %s", c.List, c.Index.Name(), c.Shift, c.Value.Name()))
}

// ElementVariable enforces List[Index - Shift] = Value for a table of
// variables.
type ElementVariable struct {
	Base
	Index *IntVar
	List  []*IntVar
	Value *IntVar
	Shift int

	ready *TimeStamp[bool]
}

// NewElementVariable returns the constraint list[index - shift] = value.
func NewElementVariable(index *IntVar, list []*IntVar, value *IntVar, shift int) (*ElementVariable, error) {
	if index == nil || value == nil {
		return nil, modelErrorf(KindElementVariable, "nil index or value variable")
	}
	if len(list) == 0 {
		return nil, modelErrorf(KindElementVariable, "empty table")
	}
	for i, v := range list {
		if v == nil {
			return nil, modelErrorf(KindElementVariable, "table variable %d is nil", i)
		}
	}
	c := &ElementVariable{
		Index: index,
		List:  append([]*IntVar(nil), list...),
		Value: value,
		Shift: shift,
	}
	c.queueIndex = QueueLinear
	return c, nil
}

// Kind returns KindElementVariable.
func (c *ElementVariable) Kind() Kind { return KindElementVariable }

// Arguments returns the scope of the constraint.
func (c *ElementVariable) Arguments() []*IntVar {
	return distinctVars([]*IntVar{c.Index}, c.List, []*IntVar{c.Value})
}

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *ElementVariable) ConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *ElementVariable) Impose(s *Store) error {
	c.ready = NewTimeStamp(s, false)
	imposeScope(s, c, c.Arguments())
	return nil
}

func (c *ElementVariable) at(i int) *IntVar { return c.List[i-c.Shift-1] }

// Consistency keeps the indexes whose variable meets Value, narrows Value
// to the union of the remaining variables and equates the selected one
// once Index is bound.
func (c *ElementVariable) Consistency(s *Store) error {
	if !c.ready.Value() {
		if err := c.Index.In(1+c.Shift, len(c.List)+c.Shift); err != nil {
			return err
		}
		c.ready.Update(true)
	}

	for s.NewPropagation() {
		s.SetNewPropagation(false)

		value := c.Value.Domain()
		var keep []int
		var union Domain = EmptyDomain()
		c.Index.Domain().IterateValues(func(i int) {
			d := c.at(i).Domain()
			if d.IsIntersecting(value) {
				keep = append(keep, i)
				union = union.Union(d)
			}
		})
		if err := c.Index.InDomain(NewDomainFromValues(keep...)); err != nil {
			return err
		}
		if err := c.Value.InDomain(union); err != nil {
			return err
		}

		if c.Index.IsBound() {
			selected := c.at(c.Index.Min())
			if err := selected.InDomain(c.Value.Domain()); err != nil {
				return err
			}
			if err := c.Value.InDomain(selected.Domain()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *ElementVariable) Satisfied() bool {
	if !c.Index.IsBound() || !c.Value.IsBound() {
		return false
	}
	i := c.Index.Min() - c.Shift - 1
	if i < 0 || i >= len(c.List) {
		return false
	}
	return c.List[i].IsBound() && c.List[i].Min() == c.Value.Min()
}

// String renders the constraint with its variables.
func (c *ElementVariable) String() string {
	return formatConstraint(c, fmt.Sprintf("%s[%s - %d] = %s", varNames(c.List), c.Index.Name(), c.Shift, c.Value.Name()))
}
