package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCumulative_PrunesAroundCompulsoryPart(t *testing.T) {
	s := NewStore()
	a := s.NewIntVar("a", 0, 0)
	b := s.NewIntVar("b", 0, 5)
	limit := s.NewIntVar("limit", 3, 3)

	c, err := NewCumulative([]Task{
		{Start: a, Duration: 3, Resource: 2},
		{Start: b, Duration: 2, Resource: 2},
	}, limit)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))

	// a occupies [0, 2]; b cannot overlap it
	assert.Equal(t, "{3..5}", b.Domain().String())
}

func TestCumulative_RaisesLimit(t *testing.T) {
	s := NewStore()
	a := s.NewIntVar("a", 0, 1)
	b := s.NewIntVar("b", 1, 1)
	limit := s.NewIntVar("limit", 0, 10)

	c, err := NewCumulative([]Task{
		{Start: a, Duration: 4, Resource: 2},
		{Start: b, Duration: 2, Resource: 3},
	}, limit)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))

	// a surely runs over [1, 3], b over [1, 2]
	assert.Equal(t, "{5..10}", limit.Domain().String())
}

func TestCumulative_OverloadFails(t *testing.T) {
	s := NewStore()
	a := s.NewIntVar("a", 2, 2)
	b := s.NewIntVar("b", 3, 3)
	limit := s.NewIntVar("limit", 0, 3)

	c, err := NewCumulative([]Task{
		{Start: a, Duration: 3, Resource: 2},
		{Start: b, Duration: 3, Resource: 2},
	}, limit)
	require.NoError(t, err)
	err = s.ImposeWithConsistency(c)
	require.Error(t, err)
	assert.True(t, IsFailure(err))
}

func TestCumulative_OwnLoadIsNotCountedTwice(t *testing.T) {
	s := NewStore()
	a := s.NewIntVar("a", 0, 2)
	limit := s.NewIntVar("limit", 2, 2)

	c, err := NewCumulative([]Task{{Start: a, Duration: 4, Resource: 2}}, limit)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))
	assert.Equal(t, "{0..2}", a.Domain().String())
}

func TestCumulative_Satisfied(t *testing.T) {
	s := NewStore()
	a := s.NewIntVar("a", 0, 0)
	b := s.NewIntVar("b", 2, 2)
	limit := s.NewIntVar("limit", 2, 2)
	c, err := NewCumulative([]Task{
		{Start: a, Duration: 2, Resource: 2},
		{Start: b, Duration: 2, Resource: 2},
	}, limit)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))
	assert.True(t, c.Satisfied())
	assert.Equal(t, "Cumulative#1([a/2/2, b/2/2] <= limit)", c.String())
}

func TestCumulative_ModelErrors(t *testing.T) {
	s := NewStore()
	x := s.NewIntVar("x", 0, 9)
	limit := s.NewIntVar("limit", 1, 1)

	_, err := NewCumulative(nil, limit)
	assert.ErrorIs(t, err, ErrModel)
	_, err = NewCumulative([]Task{{Start: x, Duration: 0, Resource: 1}}, limit)
	assert.ErrorIs(t, err, ErrModel)
	_, err = NewCumulative([]Task{{Start: x, Duration: 1, Resource: -1}}, limit)
	assert.ErrorIs(t, err, ErrModel)
	_, err = NewCumulative([]Task{{Start: x, Duration: 1, Resource: 1}}, nil)
	assert.ErrorIs(t, err, ErrModel)
}
