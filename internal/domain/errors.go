package domain

import "errors"

var (
	// ErrInvalidAddress is returned when an address fails validation
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNoLatestExecution is returned when no import has ever been finalized
	ErrNoLatestExecution = errors.New("no-latest-execution")

	// ErrNoAllocation is returned when an address has no record in the latest
	// finalized import
	ErrNoAllocation = errors.New("no-allocation")

	// ErrExecutionNotFound is returned when an import worker cannot find the
	// execution record its batch belongs to. The refresher always writes the
	// record before dispatching batches, so this is an invariant violation.
	ErrExecutionNotFound = errors.New("execution not found")

	// ErrStatsNotRefreshed is returned when the stats query still reports the
	// pre-re-execution id after all poll attempts are used up
	ErrStatsNotRefreshed = errors.New("stats query not refreshed")
)
