package fd_test

import (
	"fmt"

	"github.com/gitrdm/fdprop/pkg/fd"
)

// ExampleNewAlldiff shows bounds reasoning over a Hall interval: x and y
// share the two values 1 and 2, so z is pushed past them.
func ExampleNewAlldiff() {
	s := fd.NewStore()
	x := s.NewIntVar("x", 1, 2)
	y := s.NewIntVar("y", 1, 2)
	z := s.NewIntVar("z", 1, 3)

	c, err := fd.NewAlldiff([]*fd.IntVar{x, y, z})
	if err != nil {
		fmt.Println("model error:", err)
		return
	}
	if err := s.ImposeWithConsistency(c); err != nil {
		fmt.Println("failed:", err)
		return
	}

	fmt.Println("z =", z.Domain())
	// Output:
	// z = {3}
}

// ExampleNewElementInteger restricts the value to the table entries the
// index can still reach, and the index to the entries the value allows.
func ExampleNewElementInteger() {
	s := fd.NewStore()
	index := s.NewIntVar("index", 0, 10)
	value := s.NewIntVar("value", 15, 30)

	c, _ := fd.NewElementInteger(index, []int{10, 20, 30}, value, 0)
	if err := s.ImposeWithConsistency(c); err != nil {
		fmt.Println("failed:", err)
		return
	}

	fmt.Printf("index=%v value=%v\n", index.Domain(), value.Domain())
	// Output:
	// index={2..3} value={20, 30}
}

// ExampleStore_Push walks one branch of a search by hand: decisions made
// after Push are undone by Pop.
func ExampleStore_Push() {
	s := fd.NewStore()
	vars := make([]*fd.IntVar, 3)
	for i := range vars {
		vars[i] = s.NewIntVar(fmt.Sprintf("v%d", i+1), 1, 3)
	}
	c, _ := fd.NewAlldifferent(vars)
	_ = s.ImposeWithConsistency(c)

	s.Push()
	_ = vars[0].InValue(1)
	_ = s.Consistency()
	fmt.Println("after v1=1:", vars[1].Domain(), vars[2].Domain())

	s.Pop()
	fmt.Println("after pop:", vars[0].Domain(), vars[1].Domain())
	// Output:
	// after v1=1: {2..3} {2..3}
	// after pop: {1..3} {1..3}
}

// ExampleNewReified counts how many variables are at least 3 by summing
// reification guards.
func ExampleNewReified() {
	s := fd.NewStore()
	vars := []*fd.IntVar{
		s.NewIntVar("a", 0, 2),
		s.NewIntVar("b", 3, 9),
		s.NewIntVar("c", 4, 9),
	}
	guards := make([]*fd.IntVar, len(vars))
	for i, v := range vars {
		guards[i] = s.NewBoolVar("")
		r, _ := fd.NewReified(fd.NewXgteqC(v, 3), guards[i])
		_ = s.Impose(r)
	}
	count := s.NewIntVar("count", 0, len(vars))
	sum, _ := fd.NewSum(guards, count)
	if err := s.ImposeWithConsistency(sum); err != nil {
		fmt.Println("failed:", err)
		return
	}

	fmt.Println("count =", count.Domain())
	// Output:
	// count = {2}
}

// ExampleIsFailure separates a dead branch from a broken model.
func ExampleIsFailure() {
	s := fd.NewStore()
	x := s.NewIntVarValues("x", 2)
	y := s.NewIntVarValues("y", 2)

	c, err := fd.NewAlldifferent([]*fd.IntVar{x, y})
	fmt.Println("model error:", err != nil)

	err = s.ImposeWithConsistency(c)
	fmt.Println("failure:", fd.IsFailure(err))

	_, err = fd.NewAlldifferent([]*fd.IntVar{x, x})
	fmt.Println("model error:", err != nil, fd.IsFailure(err))
	// Output:
	// model error: false
	// failure: true
	// model error: true false
}
