// Package fd: global constraints - Circuit (single Hamiltonian cycle)
//
// Circuit models successor variables next[1..n]: next[i] = j means node j
// follows node i. The successors must form one cycle through all n nodes.
//
// Enforced relations
//  1. next[i] in {1..n} and next[i] != i
//  2. All successors differ (Alldiff: ground removal plus Hall bounds)
//  3. No sub-tour: a partial chain of length < n may not be closed
//  4. The domain graph (edge i -> j for every j in next[i]) must be
//     strongly connected
//
// Chains
//   - Every node starts as a chain of length 1. When next[i] is bound to j,
//     the chain ending at i is joined with the chain starting at j.
//   - Chain endpoints and lengths live in reversible TimeStamps indexed by
//     node, so backtracking splits the chains again for free.
//   - If j already heads the chain ending at i, binding next[i] = j closes
//     a cycle, which is only allowed when the chain spans all n nodes.
//     Otherwise the tail of the joined chain loses its head as successor.
//
// Strong connectivity
//   - Tarjan's algorithm runs over the domain graph once per Consistency
//     call. More than one component means some nodes cannot reach the
//     others and no single cycle exists. It catches islands long before
//     the chains close.
package fd

// Circuit enforces a single Hamiltonian circuit over successor variables.
type Circuit struct {
	Base
	List []*IntVar

	part  *groundPartition
	node  map[*IntVar]int
	ready *TimeStamp[bool]

	head   []*TimeStamp[int] // head[t]: first node of the chain ending at t
	tail   []*TimeStamp[int] // tail[h]: last node of the chain starting at h
	length []*TimeStamp[int] // length[h]: nodes in the chain starting at h
}

// NewCircuit returns a Circuit over the successor variables vars, where
// vars[i] holds the 1-based successor of node i+1.
func NewCircuit(vars []*IntVar) (*Circuit, error) {
	if len(vars) == 0 {
		return nil, modelErrorf(KindCircuit, "no variables")
	}
	if err := checkDistinctScope(KindCircuit, vars); err != nil {
		return nil, err
	}
	c := &Circuit{
		List: append([]*IntVar(nil), vars...),
		part: newGroundPartition(vars),
		node: make(map[*IntVar]int, len(vars)),
	}
	for i, v := range vars {
		c.node[v] = i
	}
	c.queueIndex = QueueExpensive
	return c, nil
}

// Kind returns KindCircuit.
func (c *Circuit) Kind() Kind { return KindCircuit }

// Arguments returns the scope of the constraint.
func (c *Circuit) Arguments() []*IntVar { return c.List }

// ConsistencyEvent returns the change of v that wakes the constraint.
func (c *Circuit) ConsistencyEvent(v *IntVar) Event { return EventAny }

// Impose attaches the constraint to its variables.
// Implements Constraint.
func (c *Circuit) Impose(s *Store) error {
	n := len(c.List)
	c.part.init(s)
	c.ready = NewTimeStamp(s, false)
	c.head = make([]*TimeStamp[int], n)
	c.tail = make([]*TimeStamp[int], n)
	c.length = make([]*TimeStamp[int], n)
	for i := 0; i < n; i++ {
		c.head[i] = NewTimeStamp(s, i)
		c.tail[i] = NewTimeStamp(s, i)
		c.length[i] = NewTimeStamp(s, 1)
	}
	imposeScope(s, c, c.List)
	return nil
}

// QueueVariable records v as changed at level.
func (c *Circuit) QueueVariable(level int, v *IntVar) { c.part.enqueue(v) }

// RemoveLevel drops the variables queued at the abandoned level.
func (c *Circuit) RemoveLevel(level int) { c.part.reset() }

// Consistency removes values that would close a cycle shorter than the
// whole list.
func (c *Circuit) Consistency(s *Store) error {
	if !c.ready.Value() {
		n := len(c.List)
		for i, v := range c.List {
			if err := v.In(1, n); err != nil {
				return err
			}
			if err := v.InComplement(i + 1); err != nil {
				return err
			}
		}
		c.ready.Update(true)
	}
	c.part.scan()

	for s.NewPropagation() {
		s.SetNewPropagation(false)
		if err := c.part.propagate(func(v *IntVar, value int) error {
			return c.link(s, c.node[v], value-1)
		}); err != nil {
			return err
		}
		if err := hallBounds(s, c, c.part.open()); err != nil {
			return err
		}
	}
	return c.stronglyConnected(s)
}

// link records the edge i -> j in the chain cells.
func (c *Circuit) link(s *Store, i, j int) error {
	n := len(c.List)
	h := c.head[i].Value()
	t := c.tail[j].Value()

	if t == i {
		// i -> j closes the chain j .. i
		if c.length[j].Value() != n {
			return s.Fail(c)
		}
		return nil
	}

	size := c.length[h].Value() + c.length[j].Value()
	c.tail[h].Update(t)
	c.head[t].Update(h)
	c.length[h].Update(size)

	if size < n {
		return c.List[t].InComplement(h + 1)
	}
	return c.List[t].InValue(h + 1)
}

// stronglyConnected fails unless the domain graph is a single strongly
// connected component.
func (c *Circuit) stronglyConnected(s *Store) error {
	n := len(c.List)
	if n <= 1 {
		return nil
	}

	index := 0
	stack := []int{}
	onStack := make([]bool, n)
	indices := make([]int, n)
	lowlink := make([]int, n)
	for i := range indices {
		indices[i] = -1
	}
	components := 0

	var strongconnect func(int)
	strongconnect = func(v int) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		c.List[v].Domain().IterateValues(func(value int) {
			w := value - 1
			if w < 0 || w >= n {
				return
			}
			if indices[w] == -1 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] && indices[w] < lowlink[v] {
				lowlink[v] = indices[w]
			}
		})

		if lowlink[v] == indices[v] {
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				if w == v {
					break
				}
			}
			components++
		}
	}

	strongconnect(0)
	if components != 1 || index != n {
		return s.Fail(c)
	}
	return nil
}

// Satisfied reports whether the constraint holds for every value left.
func (c *Circuit) Satisfied() bool {
	n := len(c.List)
	for _, v := range c.List {
		if !v.IsBound() {
			return false
		}
	}
	seen := make([]bool, n)
	node := 0
	for step := 0; step < n; step++ {
		if seen[node] {
			return false
		}
		seen[node] = true
		next := c.List[node].Min() - 1
		if next < 0 || next >= n {
			return false
		}
		node = next
	}
	return node == 0
}

// String renders the constraint with its variables.
func (c *Circuit) String() string { return formatConstraint(c, varNames(c.List)) }
