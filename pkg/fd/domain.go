// Package fd is the propagation core of a finite-domain constraint solver.
//
// This file defines the Domain interface and its interval-list
// implementation. Domains are immutable: every operation that could change
// the set of values returns a new domain. Reversibility during search is
// therefore the job of the Store's trail, which only has to remember the
// previous domain pointer of each variable.
//
// Domains support the operations constraint propagation needs:
//   - Membership and bounds queries (Contains, Min, Max, IsSingleton)
//   - Pruning (IntersectRange, Subtract, SubtractRange, RemoveBelow, RemoveAbove)
//   - Set algebra (Intersect, Union, Complement, IsIntersecting)
//   - Ordered enumeration (IterateValues, ToSlice)
package fd

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Bounds of every domain. Values outside [MinInt, MaxInt] are never
// represented; sums and products of bounds in that range fit an int, and
// the checked helpers in arith.go catch anything that does not.
const (
	MinInt = math.MinInt32
	MaxInt = math.MaxInt32
)

// Domain is an ordered, possibly disjoint, finite set of integers.
//
// Implementations must be immutable and safe for concurrent reads.
type Domain interface {
	// Count returns the number of values in the domain.
	Count() int

	// IsEmpty reports whether the domain has no values. An empty domain
	// means the current branch is inconsistent.
	IsEmpty() bool

	// Min returns the smallest value. Undefined for an empty domain.
	Min() int

	// Max returns the largest value. Undefined for an empty domain.
	Max() int

	// IsSingleton reports whether the domain contains exactly one value.
	IsSingleton() bool

	// SingletonValue returns the single value of a singleton domain.
	SingletonValue() int

	// Contains reports whether value is in the domain.
	Contains(value int) bool

	// ContainsRange reports whether every value of [lo, hi] is in the domain.
	ContainsRange(lo, hi int) bool

	// IsIntersecting reports whether the two domains share a value.
	IsIntersecting(other Domain) bool

	// IsSubsetOf reports whether every value of the domain is in other.
	IsSubsetOf(other Domain) bool

	// Intersect returns the values present in both domains.
	Intersect(other Domain) Domain

	// IntersectRange returns the values within [lo, hi].
	IntersectRange(lo, hi int) Domain

	// Union returns the values present in either domain.
	Union(other Domain) Domain

	// Subtract returns the domain without value.
	Subtract(value int) Domain

	// SubtractRange returns the domain without the values in [lo, hi].
	SubtractRange(lo, hi int) Domain

	// SubtractDomain returns the values not present in other.
	SubtractDomain(other Domain) Domain

	// RemoveBelow returns the domain without values < threshold.
	RemoveBelow(threshold int) Domain

	// RemoveAbove returns the domain without values > threshold.
	RemoveAbove(threshold int) Domain

	// Complement returns [MinInt, MaxInt] minus the domain.
	Complement() Domain

	// Shift returns {v + offset | v in domain}.
	Shift(offset int) Domain

	// IterateValues calls f for each value in ascending order.
	IterateValues(f func(value int))

	// Intervals returns the maximal disjoint intervals of the domain in
	// ascending order. The returned slice must not be modified.
	Intervals() []Interval

	// ToSlice returns all values in ascending order.
	ToSlice() []int

	// Equal reports whether both domains hold the same values.
	Equal(other Domain) bool

	// String returns a human-readable representation such as {1..3, 7}.
	String() string
}

// Interval is a closed range [Min, Max] with Min <= Max.
type Interval struct {
	Min, Max int
}

// Size returns the number of values in the interval.
func (iv Interval) Size() int { return iv.Max - iv.Min + 1 }

// IntervalDomain is a Domain stored as sorted, non-adjacent, non-overlapping
// closed intervals. Sparse sets of large values and wide ranges cost the
// same: one Interval per maximal run of consecutive values.
type IntervalDomain struct {
	intervals []Interval
}

var emptyDomain = &IntervalDomain{}

// EmptyDomain returns the domain with no values.
func EmptyDomain() *IntervalDomain { return emptyDomain }

// NewIntervalDomain returns the domain [min, max], clamped to
// [MinInt, MaxInt]. If min > max the domain is empty.
func NewIntervalDomain(min, max int) *IntervalDomain {
	if min < MinInt {
		min = MinInt
	}
	if max > MaxInt {
		max = MaxInt
	}
	if min > max {
		return emptyDomain
	}
	return &IntervalDomain{intervals: []Interval{{min, max}}}
}

// NewDomainFromValues returns the domain holding exactly the given values.
// Duplicates are ignored and order does not matter.
func NewDomainFromValues(values ...int) *IntervalDomain {
	if len(values) == 0 {
		return emptyDomain
	}
	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	ivs := make([]Interval, 0, len(sorted))
	for _, v := range sorted {
		if v < MinInt || v > MaxInt {
			continue
		}
		if n := len(ivs); n > 0 && v <= ivs[n-1].Max+1 {
			if v > ivs[n-1].Max {
				ivs[n-1].Max = v
			}
			continue
		}
		ivs = append(ivs, Interval{v, v})
	}
	if len(ivs) == 0 {
		return emptyDomain
	}
	return &IntervalDomain{intervals: ivs}
}

// NewDomainFromIntervals normalises arbitrary, possibly overlapping
// intervals into a domain.
func NewDomainFromIntervals(ivs ...Interval) *IntervalDomain {
	valid := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if iv.Min < MinInt {
			iv.Min = MinInt
		}
		if iv.Max > MaxInt {
			iv.Max = MaxInt
		}
		if iv.Min <= iv.Max {
			valid = append(valid, iv)
		}
	}
	if len(valid) == 0 {
		return emptyDomain
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Min < valid[j].Min })
	return &IntervalDomain{intervals: mergeSorted(valid)}
}

// mergeSorted merges touching or overlapping intervals of a slice sorted
// by Min. The slice is reused.
func mergeSorted(ivs []Interval) []Interval {
	out := ivs[:1]
	for _, iv := range ivs[1:] {
		last := &out[len(out)-1]
		if iv.Min <= last.Max+1 {
			if iv.Max > last.Max {
				last.Max = iv.Max
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

func fromSorted(ivs []Interval) Domain {
	if len(ivs) == 0 {
		return emptyDomain
	}
	return &IntervalDomain{intervals: ivs}
}

// Count returns the number of values in the domain.
func (d *IntervalDomain) Count() int {
	n := 0
	for _, iv := range d.intervals {
		n += iv.Size()
	}
	return n
}

// IsEmpty reports whether the domain has no values.
func (d *IntervalDomain) IsEmpty() bool { return len(d.intervals) == 0 }

// Min returns the smallest value, or 0 for an empty domain.
func (d *IntervalDomain) Min() int {
	if len(d.intervals) == 0 {
		return 0
	}
	return d.intervals[0].Min
}

// Max returns the largest value, or 0 for an empty domain.
func (d *IntervalDomain) Max() int {
	if len(d.intervals) == 0 {
		return 0
	}
	return d.intervals[len(d.intervals)-1].Max
}

// IsSingleton reports whether the domain has exactly one value.
func (d *IntervalDomain) IsSingleton() bool {
	return len(d.intervals) == 1 && d.intervals[0].Min == d.intervals[0].Max
}

// SingletonValue returns the only value. Panics if the domain is not a
// singleton.
func (d *IntervalDomain) SingletonValue() int {
	if !d.IsSingleton() {
		panic(fmt.Sprintf("SingletonValue called on non-singleton domain %s", d))
	}
	return d.intervals[0].Min
}

// find returns the index of the first interval whose Max >= value.
func (d *IntervalDomain) find(value int) int {
	return sort.Search(len(d.intervals), func(i int) bool { return d.intervals[i].Max >= value })
}

// Contains reports whether value is in the domain. O(log k) for k intervals.
func (d *IntervalDomain) Contains(value int) bool {
	i := d.find(value)
	return i < len(d.intervals) && d.intervals[i].Min <= value
}

// ContainsRange reports whether [lo, hi] is fully inside the domain.
func (d *IntervalDomain) ContainsRange(lo, hi int) bool {
	if lo > hi {
		return true
	}
	i := d.find(lo)
	return i < len(d.intervals) && d.intervals[i].Min <= lo && d.intervals[i].Max >= hi
}

// IsIntersecting reports whether the domains share a value.
func (d *IntervalDomain) IsIntersecting(other Domain) bool {
	a, b := d.intervals, other.Intervals()
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Max < b[j].Min {
			i++
			continue
		}
		if b[j].Max < a[i].Min {
			j++
			continue
		}
		return true
	}
	return false
}

// IsSubsetOf reports whether every value is also in other.
func (d *IntervalDomain) IsSubsetOf(other Domain) bool {
	for _, iv := range d.intervals {
		if !other.ContainsRange(iv.Min, iv.Max) {
			return false
		}
	}
	return true
}

// Intersect returns the values present in both domains.
// O(k1 + k2) over the interval counts.
func (d *IntervalDomain) Intersect(other Domain) Domain {
	a, b := d.intervals, other.Intervals()
	out := make([]Interval, 0, len(a))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		lo := max(a[i].Min, b[j].Min)
		hi := min(a[i].Max, b[j].Max)
		if lo <= hi {
			out = append(out, Interval{lo, hi})
		}
		if a[i].Max < b[j].Max {
			i++
		} else {
			j++
		}
	}
	return fromSorted(out)
}

// IntersectRange returns the values within [lo, hi].
func (d *IntervalDomain) IntersectRange(lo, hi int) Domain {
	if lo > hi || len(d.intervals) == 0 {
		return emptyDomain
	}
	if lo <= d.Min() && hi >= d.Max() {
		return d
	}
	out := make([]Interval, 0, len(d.intervals))
	for i := d.find(lo); i < len(d.intervals); i++ {
		iv := d.intervals[i]
		if iv.Min > hi {
			break
		}
		out = append(out, Interval{max(iv.Min, lo), min(iv.Max, hi)})
	}
	return fromSorted(out)
}

// Union returns the values present in either domain.
func (d *IntervalDomain) Union(other Domain) Domain {
	b := other.Intervals()
	if len(b) == 0 {
		return d
	}
	if len(d.intervals) == 0 {
		return fromSorted(append([]Interval(nil), b...))
	}
	all := make([]Interval, 0, len(d.intervals)+len(b))
	i, j := 0, 0
	for i < len(d.intervals) || j < len(b) {
		if j == len(b) || (i < len(d.intervals) && d.intervals[i].Min <= b[j].Min) {
			all = append(all, d.intervals[i])
			i++
		} else {
			all = append(all, b[j])
			j++
		}
	}
	return fromSorted(mergeSorted(all))
}

// Subtract returns the domain without value.
func (d *IntervalDomain) Subtract(value int) Domain {
	return d.SubtractRange(value, value)
}

// SubtractRange returns the domain without the values in [lo, hi].
func (d *IntervalDomain) SubtractRange(lo, hi int) Domain {
	if lo > hi || len(d.intervals) == 0 || hi < d.Min() || lo > d.Max() {
		return d
	}
	out := make([]Interval, 0, len(d.intervals)+1)
	changed := false
	for _, iv := range d.intervals {
		if iv.Max < lo || iv.Min > hi {
			out = append(out, iv)
			continue
		}
		changed = true
		if iv.Min < lo {
			out = append(out, Interval{iv.Min, lo - 1})
		}
		if iv.Max > hi {
			out = append(out, Interval{hi + 1, iv.Max})
		}
	}
	if !changed {
		return d
	}
	return fromSorted(out)
}

// SubtractDomain returns the values of d that are not in other.
func (d *IntervalDomain) SubtractDomain(other Domain) Domain {
	var result Domain = d
	for _, iv := range other.Intervals() {
		result = result.SubtractRange(iv.Min, iv.Max)
		if result.IsEmpty() {
			break
		}
	}
	return result
}

// RemoveBelow returns the domain without values < threshold.
func (d *IntervalDomain) RemoveBelow(threshold int) Domain {
	return d.IntersectRange(threshold, MaxInt)
}

// RemoveAbove returns the domain without values > threshold.
func (d *IntervalDomain) RemoveAbove(threshold int) Domain {
	return d.IntersectRange(MinInt, threshold)
}

// Complement returns [MinInt, MaxInt] minus the domain.
func (d *IntervalDomain) Complement() Domain {
	out := make([]Interval, 0, len(d.intervals)+1)
	next := MinInt
	for _, iv := range d.intervals {
		if iv.Min > next {
			out = append(out, Interval{next, iv.Min - 1})
		}
		next = iv.Max + 1
	}
	if len(d.intervals) == 0 || d.Max() < MaxInt {
		out = append(out, Interval{next, MaxInt})
	}
	return fromSorted(out)
}

// Shift returns {v + offset | v in domain}, clamped to [MinInt, MaxInt].
func (d *IntervalDomain) Shift(offset int) Domain {
	if offset == 0 {
		return d
	}
	out := make([]Interval, len(d.intervals))
	for i, iv := range d.intervals {
		out[i] = Interval{iv.Min + offset, iv.Max + offset}
	}
	return NewDomainFromIntervals(out...)
}

// IterateValues calls f for each value in ascending order.
func (d *IntervalDomain) IterateValues(f func(value int)) {
	for _, iv := range d.intervals {
		for v := iv.Min; v <= iv.Max; v++ {
			f(v)
			if v == MaxInt {
				break
			}
		}
	}
}

// Intervals returns the underlying intervals.
func (d *IntervalDomain) Intervals() []Interval { return d.intervals }

// ToSlice returns all values as a sorted slice. Useful for tests and
// debugging; avoid it on wide domains.
func (d *IntervalDomain) ToSlice() []int {
	values := make([]int, 0, d.Count())
	d.IterateValues(func(v int) { values = append(values, v) })
	return values
}

// Equal reports whether both domains hold the same values.
func (d *IntervalDomain) Equal(other Domain) bool {
	b := other.Intervals()
	if len(b) != len(d.intervals) {
		return false
	}
	for i := range b {
		if b[i] != d.intervals[i] {
			return false
		}
	}
	return true
}

// String renders the domain as {1..3, 7}.
func (d *IntervalDomain) String() string {
	if len(d.intervals) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, iv := range d.intervals {
		if i > 0 {
			b.WriteString(", ")
		}
		if iv.Min == iv.Max {
			fmt.Fprintf(&b, "%d", iv.Min)
		} else {
			fmt.Fprintf(&b, "%d..%d", iv.Min, iv.Max)
		}
	}
	b.WriteString("}")
	return b.String()
}
