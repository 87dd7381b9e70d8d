package domain

import "fmt"

// ValidationError reports a missing or out-of-range field. Non-recoverable;
// callers surface it immediately without retrying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CapacityError reports an equipment allocation that exceeds the parent
// task's remaining capacity. Both amounts are part of the contract so the
// caller can present an actionable message.
type CapacityError struct {
	Requested int
	Remaining int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("requested %d units but only %d remaining on parent task", e.Requested, e.Remaining)
}

// ConsistencyError reports an actual count exceeding the planned count on
// the same entity.
type ConsistencyError struct {
	Actual  int
	Planned int
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("actual count %d exceeds planned count %d", e.Actual, e.Planned)
}
