package fd_test

import (
	"fmt"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// ExampleNewCircuit builds a tour over three nodes where next[i] is the
// successor of node i+1. Choosing 1 -> 2 leaves a single way to close
// the cycle.
func ExampleNewCircuit() {
	s := fd.NewStore()
	next := make([]*fd.IntVar, 3)
	for i := range next {
		next[i] = s.NewIntVar(fmt.Sprintf("n%d", i+1), 1, 3)
	}

	c, err := fd.NewCircuit(next)
	if err != nil {
		fmt.Println("model error:", err)
		return
	}
	if err := s.ImposeWithConsistency(c); err != nil {
		fmt.Println("failed:", err)
		return
	}
	fmt.Println("no self loops:", next[0].Domain(), next[1].Domain(), next[2].Domain())

	s.Push()
	defer s.Pop()
	_ = next[0].InValue(2)
	if err := s.Consistency(); err != nil {
		fmt.Println("failed:", err)
		return
	}
	fmt.Println("after 1 -> 2:", next[0].Domain(), next[1].Domain(), next[2].Domain())
	// Output:
	// no self loops: {2..3} {1, 3} {1..2}
	// after 1 -> 2: {2} {3} {1}
}
