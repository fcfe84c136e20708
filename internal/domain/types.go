package domain

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Reward scaling constants. Both reward tasks are capped individually; the
// transfer task only credits a tenth of the transferred volume.
const (
	TransferRewardRate = 0.1
	MaxTaskReward      = 100.0
)

// Address is a lowercase-normalized EVM account address (0x + 40 hex chars)
type Address string

// NewAddress validates and normalizes an address string
func NewAddress(s string) (Address, error) {
	if !common.IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return Address(strings.ToLower(s)), nil
}

// String returns the string representation of the address
func (a Address) String() string {
	return string(a)
}

// Stats holds campaign-wide aggregate figures as of one execution
type Stats struct {
	Block          int64   `json:"block"`
	Recipients     int64   `json:"recipients"`
	MentoAllocated float64 `json:"mentoAllocated"`
}

// Execution is a snapshot of the upstream analytics query result set that the
// system is importing or has imported.
type Execution struct {
	ExecutionID    string `json:"executionId"`
	Timestamp      int64  `json:"timestamp"` // epoch millis of execution_ended_at
	ImportFinished bool   `json:"importFinished"`
	Rows           int64  `json:"rows"`
	Stats          Stats  `json:"stats"`
}

// ExecutionRef is one entry of the execution index, newest first
type ExecutionRef struct {
	ExecutionID string `json:"executionId"`
	Timestamp   int64  `json:"timestamp"`
}

// Allocation holds the two per-address reward inputs for one execution
type Allocation struct {
	TransferVolume  float64 `json:"transferVolume"`
	AverageHoldings float64 `json:"averageHoldings"`
}

// AllocationRow is one validated row of the upstream allocation query
type AllocationRow struct {
	Address           Address
	EndBlock          int64
	AmountTransferred float64
	AvgAmountHeld     float64
}

// ImportTask carries the parameters for one import batch
type ImportTask struct {
	ExecutionID string `json:"executionId"`
	Offset      int64  `json:"offset"`
	Limit       int64  `json:"limit"`
	BatchIndex  int64  `json:"batchIndex"`
}

// RefreshOutcome describes the decision taken by one refresh invocation
type RefreshOutcome string

const (
	// RefreshStarted means a fresh or restarted import was kicked off
	RefreshStarted RefreshOutcome = "started"
	// RefreshSkippedFresh means an import is already finished or still in
	// progress and not yet considered stuck
	RefreshSkippedFresh RefreshOutcome = "skipped-fresh"
	// RefreshSkippedCap means the campaign allocation cap has been reached
	RefreshSkippedCap RefreshOutcome = "skipped-cap"
)

// TaskRewards splits a reward amount by the behavior that earned it
type TaskRewards struct {
	Hold     float64 `json:"hold"`
	Transfer float64 `json:"transfer"`
}

// Reward is the user-facing allocation computed from an Allocation record
type Reward struct {
	Address     Address     `json:"address"`
	Total       float64     `json:"total"`
	ByTask      TaskRewards `json:"byTask"`
	RefreshedAt int64       `json:"refreshedAt"`
}

// ComputeReward converts raw allocation inputs into the user-facing reward.
// refreshedAt is the timestamp of the execution the allocation belongs to.
func ComputeReward(address Address, allocation Allocation, refreshedAt int64) Reward {
	hold := min(allocation.AverageHoldings, MaxTaskReward)
	transfer := min(allocation.TransferVolume*TransferRewardRate, MaxTaskReward)

	return Reward{
		Address:     address,
		Total:       hold + transfer,
		ByTask:      TaskRewards{Hold: hold, Transfer: transfer},
		RefreshedAt: refreshedAt,
	}
}
