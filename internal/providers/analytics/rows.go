package analytics

import (
	"encoding/json"
	"fmt"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
)

// StatsRow is the single validated row of the stats query. Its shape is a
// hard contract with the analytics provider.
type StatsRow struct {
	MentoEarnedFromHolding   float64
	MentoEarnedFromTransfers float64
	TotalMentoEarned         float64
	Block                    int64
	Recipients               int64
}

// Wire shapes use pointer fields so that missing columns are detected instead
// of silently decoding to zero values.
type allocationRowWire struct {
	Address           *string  `json:"address"`
	EndBlock          *int64   `json:"end_block"`
	AmountTransferred *float64 `json:"amount_transferred"`
	AvgAmountHeld     *float64 `json:"avg_amount_held"`
}

type statsRowWire struct {
	MentoEarnedFromHolding   *float64 `json:"mento_earned_from_holding"`
	MentoEarnedFromTransfers *float64 `json:"mento_earned_from_transfers"`
	TotalMentoEarned         *float64 `json:"total_mento_earned"`
	Block                    *int64   `json:"block"`
	Recipients               *int64   `json:"recipients"`
}

// DecodeAllocationRows validates and decodes a page of allocation query rows.
// A single malformed row fails the whole page.
func DecodeAllocationRows(rows []json.RawMessage) ([]domain.AllocationRow, error) {
	decoded := make([]domain.AllocationRow, 0, len(rows))
	for i, raw := range rows {
		var wire allocationRowWire
		if err := json.Unmarshal(raw, &wire); err != nil {
			return nil, fmt.Errorf("malformed allocation row %d: %w", i, err)
		}
		if wire.Address == nil || wire.EndBlock == nil || wire.AmountTransferred == nil || wire.AvgAmountHeld == nil {
			return nil, fmt.Errorf("allocation row %d is missing required fields", i)
		}

		address, err := domain.NewAddress(*wire.Address)
		if err != nil {
			return nil, fmt.Errorf("allocation row %d: %w", i, err)
		}

		decoded = append(decoded, domain.AllocationRow{
			Address:           address,
			EndBlock:          *wire.EndBlock,
			AmountTransferred: *wire.AmountTransferred,
			AvgAmountHeld:     *wire.AvgAmountHeld,
		})
	}

	return decoded, nil
}

// DecodeStatsRow validates and decodes the single row of the stats query
func DecodeStatsRow(raw json.RawMessage) (*StatsRow, error) {
	var wire statsRowWire
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("malformed stats row: %w", err)
	}
	if wire.MentoEarnedFromHolding == nil || wire.MentoEarnedFromTransfers == nil ||
		wire.TotalMentoEarned == nil || wire.Block == nil || wire.Recipients == nil {
		return nil, fmt.Errorf("stats row is missing required fields")
	}

	return &StatsRow{
		MentoEarnedFromHolding:   *wire.MentoEarnedFromHolding,
		MentoEarnedFromTransfers: *wire.MentoEarnedFromTransfers,
		TotalMentoEarned:         *wire.TotalMentoEarned,
		Block:                    *wire.Block,
		Recipients:               *wire.Recipients,
	}, nil
}
