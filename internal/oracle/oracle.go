// Package oracle decides small finite-domain problems exactly with a SAT
// solver. It is the reference propagation results are checked against:
// a value is supported when some full solution uses it, and a sound
// propagator never removes a supported value.
//
// Every variable is encoded one-hot, one literal per candidate value, with
// an exactly-one cardinality constraint. Every relation is encoded by
// forbidding, clause by clause, the tuples of its scope that the relation
// rejects, so problems must stay small.
package oracle

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

const satisfiable = 1

// Var identifies a variable of a Model.
type Var int

type variable struct {
	name   string
	values []int
}

type relation struct {
	scope   []Var
	allowed func(values []int) bool
}

// Model collects variables and relations before compilation.
type Model struct {
	vars []variable
	rels []relation
}

// NewModel returns an empty model.
func NewModel() *Model { return &Model{} }

// NewVar adds a variable taking one of values.
func (m *Model) NewVar(name string, values ...int) Var {
	m.vars = append(m.vars, variable{name: name, values: append([]int(nil), values...)})
	return Var(len(m.vars) - 1)
}

// NewRangeVar adds a variable over [lo, hi].
func (m *Model) NewRangeVar(name string, lo, hi int) Var {
	values := make([]int, 0, max(hi-lo+1, 0))
	for v := lo; v <= hi; v++ {
		values = append(values, v)
	}
	return m.NewVar(name, values...)
}

// Relation restricts the variables of scope to the tuples allowed accepts.
// The slice handed to allowed is reused between calls.
func (m *Model) Relation(scope []Var, allowed func(values []int) bool) {
	m.rels = append(m.rels, relation{scope: append([]Var(nil), scope...), allowed: allowed})
}

// Values returns the candidate values of v.
func (m *Model) Values(v Var) []int { return m.vars[v].values }

// compiled is one SAT instance of a model.
type compiled struct {
	g           inter.S
	lits        [][]z.Lit
	assumptions []z.Lit
}

func (m *Model) compile() *compiled {
	c := logic.NewC()
	out := &compiled{g: gini.New(), lits: make([][]z.Lit, len(m.vars))}

	for i, v := range m.vars {
		ms := make([]z.Lit, len(v.values))
		for j := range ms {
			ms[j] = c.Lit()
		}
		out.lits[i] = ms
		if len(ms) == 0 {
			// no value left: assume a literal together with its negation
			f := c.Lit()
			out.assumptions = append(out.assumptions, f, f.Not())
			continue
		}
		cs := c.CardSort(ms)
		out.assumptions = append(out.assumptions, cs.Leq(1), cs.Geq(1))
	}

	for _, r := range m.rels {
		m.forbid(c, out, r)
	}

	c.ToCnf(out.g)
	return out
}

// forbid adds one clause per rejected tuple of r.
func (m *Model) forbid(c *logic.C, out *compiled, r relation) {
	if len(r.scope) == 0 {
		return
	}
	idx := make([]int, len(r.scope))
	tuple := make([]int, len(r.scope))
	for _, v := range r.scope {
		if len(m.vars[v].values) == 0 {
			return
		}
	}
	for {
		for k, v := range r.scope {
			tuple[k] = m.vars[v].values[idx[k]]
		}
		if !r.allowed(tuple) {
			clause := out.lits[r.scope[0]][idx[0]].Not()
			for k := 1; k < len(r.scope); k++ {
				clause = c.Or(clause, out.lits[r.scope[k]][idx[k]].Not())
			}
			out.assumptions = append(out.assumptions, clause)
		}

		k := len(idx) - 1
		for ; k >= 0; k-- {
			idx[k]++
			if idx[k] < len(m.vars[r.scope[k]].values) {
				break
			}
			idx[k] = 0
		}
		if k < 0 {
			return
		}
	}
}

func (cp *compiled) solve(extra ...z.Lit) bool {
	cp.g.Assume(cp.assumptions...)
	cp.g.Assume(extra...)
	return cp.g.Solve() == satisfiable
}

func (cp *compiled) assignment(m *Model) []int {
	sol := make([]int, len(m.vars))
	for i, ms := range cp.lits {
		for j, lit := range ms {
			if cp.g.Value(lit) {
				sol[i] = m.vars[i].values[j]
				break
			}
		}
	}
	return sol
}

// Oracle answers support queries on a compiled model.
type Oracle struct {
	model *Model
	cp    *compiled
}

// Compile freezes the model into an oracle. Later changes to the model
// are not seen by the oracle.
func (m *Model) Compile() *Oracle {
	return &Oracle{model: m, cp: m.compile()}
}

// Satisfiable reports whether the model has a solution.
func (o *Oracle) Satisfiable() bool { return o.cp.solve() }

// Supported reports whether some solution assigns value to v.
func (o *Oracle) Supported(v Var, value int) bool {
	for j, w := range o.model.vars[v].values {
		if w == value {
			return o.cp.solve(o.cp.lits[v][j])
		}
	}
	return false
}

// Support returns the values of v used by at least one solution, in the
// order they were declared.
func (o *Oracle) Support(v Var) []int {
	var out []int
	for j, w := range o.model.vars[v].values {
		if o.cp.solve(o.cp.lits[v][j]) {
			out = append(out, w)
		}
	}
	return out
}

// Solutions enumerates up to limit solutions, or all of them when limit
// is not positive. Each solution lists values in variable order.
func (o *Oracle) Solutions(limit int) [][]int {
	// blocking clauses go to a private instance
	cp := o.model.compile()
	var out [][]int
	for limit <= 0 || len(out) < limit {
		if !cp.solve() {
			break
		}
		sol := cp.assignment(o.model)
		out = append(out, sol)
		for i, ms := range cp.lits {
			for j, lit := range ms {
				if o.model.vars[i].values[j] == sol[i] {
					cp.g.Add(lit.Not())
				}
			}
		}
		cp.g.Add(z.LitNull)
	}
	return out
}

// String describes the model size.
func (o *Oracle) String() string {
	return fmt.Sprintf("oracle(%d vars, %d relations)", len(o.model.vars), len(o.model.rels))
}
