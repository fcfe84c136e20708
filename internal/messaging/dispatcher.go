package messaging

import (
	"context"
)

// Dispatcher submits one task per import batch to the task queue. Delivery is
// at-least-once; redelivery and backoff are the queue's concern.
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// ScheduleImportTasks partitions totalRows into batches and dispatches one
	// task per batch. Dispatches are independent; a failed dispatch does not
	// roll back the others, it only surfaces in the returned error. Returns
	// the number of batches scheduled.
	ScheduleImportTasks(ctx context.Context, executionID string, totalRows int64) (int64, error)

	// Close closes the connection to the queue
	Close()
}
