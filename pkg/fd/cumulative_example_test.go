package fd_test

import (
	"fmt"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// ExampleNewCumulative schedules two unit-resource tasks on one machine.
// Task a is fixed on [0, 2], so b cannot start before 3, and the
// capacity must cover a's load.
func ExampleNewCumulative() {
	s := fd.NewStore()
	a := s.NewIntVar("a", 0, 0)
	b := s.NewIntVar("b", 0, 5)
	capacity := s.NewIntVar("capacity", 0, 1)

	c, err := fd.NewCumulative([]fd.Task{
		{Start: a, Duration: 3, Resource: 1},
		{Start: b, Duration: 2, Resource: 1},
	}, capacity)
	if err != nil {
		fmt.Println("model error:", err)
		return
	}
	if err := s.ImposeWithConsistency(c); err != nil {
		fmt.Println("failed:", err)
		return
	}

	fmt.Println("b starts in", b.Domain())
	fmt.Println("capacity =", capacity.Domain())
	// Output:
	// b starts in {3..5}
	// capacity = {1}
}
