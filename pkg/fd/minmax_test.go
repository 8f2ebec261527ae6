package fd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMax(t *testing.T) {
	s := NewStore()
	x := s.NewIntVar("x", 1, 5)
	y := s.NewIntVar("y", 2, 3)
	r := s.NewIntVar("r", 0, 10)

	c, err := NewMax([]*IntVar{x, y}, r)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))
	assert.Equal(t, "{2..5}", r.Domain().String())

	// only x can still reach 4
	require.NoError(t, r.InMin(4))
	require.NoError(t, s.Consistency())
	assert.Equal(t, "{4..5}", x.Domain().String())
	assert.Equal(t, "{2..3}", y.Domain().String())

	require.NoError(t, r.InMax(4))
	require.NoError(t, s.Consistency())
	assert.Equal(t, "{4}", x.Domain().String())
}

func TestMax_CapsEveryTerm(t *testing.T) {
	s := NewStore()
	vars := newVars(s, "x", 3, 0, 9)
	r := s.NewIntVar("r", 0, 4)
	c, err := NewMax(vars, r)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))
	assert.Equal(t, []string{"{0..4}", "{0..4}", "{0..4}"}, domains(vars))
}

func TestMax_NoCarrierFails(t *testing.T) {
	s := NewStore()
	x := s.NewIntVar("x", 0, 3)
	r := s.NewIntVar("r", 5, 9)
	c, err := NewMax([]*IntVar{x}, r)
	require.NoError(t, err)
	err = s.ImposeWithConsistency(c)
	require.Error(t, err)
	assert.True(t, IsFailure(err))
}

func TestMin(t *testing.T) {
	s := NewStore()
	x := s.NewIntVar("x", 1, 5)
	y := s.NewIntVar("y", 3, 8)
	r := s.NewIntVar("r", 0, 10)

	c, err := NewMin([]*IntVar{x, y}, r)
	require.NoError(t, err)
	require.NoError(t, s.ImposeWithConsistency(c))
	assert.Equal(t, "{1..5}", r.Domain().String())

	require.NoError(t, r.InMax(2))
	require.NoError(t, s.Consistency())
	assert.Equal(t, "{1..2}", x.Domain().String())
	assert.Equal(t, "{3..8}", y.Domain().String())

	require.NoError(t, x.InValue(2))
	require.NoError(t, s.Consistency())
	assert.Equal(t, "{2}", r.Domain().String())
	assert.False(t, c.Satisfied())

	require.NoError(t, y.InValue(3))
	assert.True(t, c.Satisfied())
}

func TestMinMax_ModelErrors(t *testing.T) {
	s := NewStore()
	x := s.NewIntVar("x", 0, 1)
	_, err := NewMax(nil, x)
	assert.ErrorIs(t, err, ErrModel)
	_, err = NewMin([]*IntVar{x}, nil)
	assert.ErrorIs(t, err, ErrModel)
}
