// Package fd: global constraints - Cumulative (time-table filtering)
//
// Cumulative models one renewable resource shared by tasks with variable
// start times, fixed durations and fixed demands. At every time t the
// demands of the tasks running at t must not exceed the limit variable.
//
// Contract:
//   - Task i runs over the inclusive range [start, start+Duration-1].
//   - Duration > 0 and Resource >= 0.
//   - Limit is a variable; only its maximum bounds the profile and its
//     minimum is raised to the highest compulsory load.
//
// Propagation strength: time-table filtering with compulsory parts.
//   - est = min(start), lst = max(start). When lst <= est+Duration-1 the
//     task certainly runs over [lst, est+Duration-1], its compulsory part.
//   - The profile is the sum of the compulsory parts, kept as segments of
//     constant height between consecutive part boundaries, so wide time
//     horizons cost nothing.
//   - A segment higher than max(Limit) fails. Otherwise a task whose demand
//     would push a segment over max(Limit) cannot start anywhere that makes
//     it overlap the segment, and that whole range of starts is removed.
//     The task's own compulsory load is subtracted before the test.
package fd

import (
	"fmt"
	"sort"
	"strings"
)

// Task is an activity of a Cumulative constraint.
type Task struct {
	Start    *IntVar
	Duration int
	Resource int
}

// Cumulative enforces a resource limit over a set of tasks.
type Cumulative struct {
	Base
	Tasks []Task
	Limit *IntVar
}

// NewCumulative returns a Cumulative constraint over tasks with the given
// resource limit.
func NewCumulative(tasks []Task, limit *IntVar) (*Cumulative, error) {
	if len(tasks) == 0 {
		return nil, modelErrorf(KindCumulative, "no tasks")
	}
	if limit == nil {
		return nil, modelErrorf(KindCumulative, "nil limit variable")
	}
	for i, t := range tasks {
		if t.Start == nil {
			return nil, modelErrorf(KindCumulative, "task %d has no start variable", i)
		}
		if t.Duration <= 0 {
			return nil, modelErrorf(KindCumulative, "task %d: duration %d must be > 0", i, t.Duration)
		}
		if t.Resource < 0 {
			return nil, modelErrorf(KindCumulative, "task %d: resource %d must be >= 0", i, t.Resource)
		}
	}
	c := &Cumulative{Tasks: append([]Task(nil), tasks...), Limit: limit}
	c.queueIndex = QueueExpensive
	return c, nil
}

// Kind returns KindCumulative.
func (c *Cumulative) Kind() Kind { return KindCumulative }

// Arguments returns the scope of the constraint.
func (c *Cumulative) Arguments() []*IntVar {
	vars := make([]*IntVar, 0, len(c.Tasks)+1)
	for _, t := range c.Tasks {
		vars = append(vars, t.Start)
	}
	return append(vars, c.Limit)
}

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Cumulative) ConsistencyEvent(v *IntVar) Event { return EventBound }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Cumulative) Impose(s *Store) error {
	imposeScope(s, c, distinctVars(c.Arguments()))
	return nil
}

// segment is a maximal time range of constant compulsory load.
type segment struct {
	from, to int
	height   int
}

// compulsory returns the compulsory part of t, if any.
func compulsory(t Task) (from, to int, ok bool) {
	from = t.Start.Max()
	to = t.Start.Min() + t.Duration - 1
	return from, to, from <= to
}

// profile sums the compulsory parts into segments of positive height.
func (c *Cumulative) profile() []segment {
	type event struct{ at, delta int }
	events := make([]event, 0, 2*len(c.Tasks))
	for _, t := range c.Tasks {
		if t.Resource == 0 {
			continue
		}
		if from, to, ok := compulsory(t); ok {
			events = append(events, event{from, t.Resource}, event{to + 1, -t.Resource})
		}
	}
	sort.Slice(events, func(i, j int) bool { return events[i].at < events[j].at })

	var segs []segment
	height := 0
	for i := 0; i < len(events); {
		at := events[i].at
		for i < len(events) && events[i].at == at {
			height += events[i].delta
			i++
		}
		if height > 0 && i < len(events) {
			segs = append(segs, segment{from: at, to: events[i].at - 1, height: height})
		}
	}
	return segs
}

// Consistency raises the limit to the peak of the compulsory profile and
// moves every start out of the segments it would overload.
func (c *Cumulative) Consistency(s *Store) error {
	for s.NewPropagation() {
		s.SetNewPropagation(false)

		segs := c.profile()
		peak := 0
		for _, sg := range segs {
			peak = max(peak, sg.height)
		}
		if peak > c.Limit.Max() {
			return s.Fail(c)
		}
		if err := c.Limit.InMin(peak); err != nil {
			return err
		}

		limit := c.Limit.Max()
		for _, t := range c.Tasks {
			if t.Resource == 0 {
				continue
			}
			from, to, hasPart := compulsory(t)
			for _, sg := range segs {
				load := sg.height
				if hasPart && sg.from >= from && sg.to <= to {
					load -= t.Resource
				}
				if load+t.Resource <= limit {
					continue
				}
				if err := t.Start.InComplementRange(sg.from-t.Duration+1, sg.to); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Cumulative) Satisfied() bool {
	for _, t := range c.Tasks {
		if !t.Start.IsBound() {
			return false
		}
	}
	if !c.Limit.IsBound() {
		return false
	}
	for _, sg := range c.profile() {
		if sg.height > c.Limit.Min() {
			return false
		}
	}
	return true
}

// String renders the constraint with its variables.
func (c *Cumulative) String() string {
	parts := make([]string, len(c.Tasks))
	for i, t := range c.Tasks {
		parts[i] = fmt.Sprintf("%s/%d/%d", t.Start.Name(), t.Duration, t.Resource)
	}
	return formatConstraint(c, fmt.Sprintf("[%s] <= %s", strings.Join(parts, ", "), c.Limit.Name()))
}
