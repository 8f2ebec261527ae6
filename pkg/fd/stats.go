package fd

import "fmt"

// Stats holds the counters of a Store.
type Stats struct {
	// Model
	Variables   int // Variables created
	Constraints int // Constraints counted by CountConstraint

	// Propagation
	ConsistencyCalls int // Calls to Constraint.Consistency
	Failures         int // Fixpoint runs ended by a failure

	// Search
	Backtracks int // Levels popped
	MaxLevel   int // Deepest level reached

	// Memory
	PeakTrailSize int // Peak number of trail entries
}

// String returns a one-line summary.
func (st Stats) String() string {
	return fmt.Sprintf("vars=%d constraints=%d consistency=%d failures=%d backtracks=%d maxLevel=%d peakTrail=%d",
		st.Variables, st.Constraints, st.ConsistencyCalls, st.Failures, st.Backtracks, st.MaxLevel, st.PeakTrailSize)
}
