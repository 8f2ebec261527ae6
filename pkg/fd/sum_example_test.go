package fd_test

import (
	"fmt"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// ExampleNewSum narrows each term to what the others leave: three terms
// of at most 5 reach a total of 12 only if each is at least 2.
func ExampleNewSum() {
	s := fd.NewStore()
	terms := []*fd.IntVar{
		s.NewIntVar("x", 0, 5),
		s.NewIntVar("y", 0, 5),
		s.NewIntVar("z", 0, 5),
	}
	total := s.NewIntVar("total", 12, 20)

	c, err := fd.NewSum(terms, total)
	if err != nil {
		fmt.Println("model error:", err)
		return
	}
	if err := s.ImposeWithConsistency(c); err != nil {
		fmt.Println("failed:", err)
		return
	}

	for _, v := range terms {
		fmt.Printf("%s=%v ", v.Name(), v.Domain())
	}
	fmt.Println("total =", total.Domain())
	// Output:
	// x={2..5} y={2..5} z={2..5} total = {12..15}
}
