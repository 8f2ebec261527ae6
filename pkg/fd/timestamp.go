package fd

// TimeStamp is a reversible cell. Update records the previous value on the
// store trail the first time the cell changes at a given level, so that
// popping the level restores it. Constraints keep their incremental
// bookkeeping in TimeStamps (grounded prefixes, partial sums, chain
// endpoints) and never need to recompute it after backtracking.
type TimeStamp[T any] struct {
	store *Store
	value T
	stamp int
}

// NewTimeStamp creates a cell holding value at the current level.
func NewTimeStamp[T any](s *Store, value T) *TimeStamp[T] {
	return &TimeStamp[T]{store: s, value: value, stamp: s.level}
}

// Value returns the current value.
func (t *TimeStamp[T]) Value() T { return t.value }

// Stamp returns the level at which the value was last set.
func (t *TimeStamp[T]) Stamp() int { return t.stamp }

// Update sets the value at the current store level.
func (t *TimeStamp[T]) Update(value T) {
	if t.stamp < t.store.level {
		t.store.pushTrail(trailEntry{cell: &stampRecord[T]{cell: t, value: t.value, stamp: t.stamp}})
		t.stamp = t.store.level
	}
	t.value = value
}

type stampRecord[T any] struct {
	cell  *TimeStamp[T]
	value T
	stamp int
}

func (r *stampRecord[T]) undo() {
	r.cell.value = r.value
	r.cell.stamp = r.stamp
}
