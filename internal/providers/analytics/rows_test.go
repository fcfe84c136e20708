package analytics_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mento-labs/airdrop-allocator/internal/domain"
	"github.com/mento-labs/airdrop-allocator/internal/providers/analytics"
)

func TestDecodeAllocationRows(t *testing.T) {
	rows := []json.RawMessage{
		json.RawMessage(`{
			"address": "0x1234567890ABCDEF1234567890abcdef12345678",
			"end_block": 21000000,
			"amount_transferred": 500.5,
			"avg_amount_held": 42.25
		}`),
		json.RawMessage(`{
			"address": "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
			"end_block": 21000000,
			"amount_transferred": 0,
			"avg_amount_held": 0
		}`),
	}

	decoded, err := analytics.DecodeAllocationRows(rows)

	assert.NoError(t, err)
	assert.Len(t, decoded, 2)
	// Address is normalized to lowercase on decode
	assert.Equal(t, domain.Address("0x1234567890abcdef1234567890abcdef12345678"), decoded[0].Address)
	assert.Equal(t, int64(21000000), decoded[0].EndBlock)
	assert.Equal(t, 500.5, decoded[0].AmountTransferred)
	assert.Equal(t, 42.25, decoded[0].AvgAmountHeld)
}

func TestDecodeAllocationRows_Strictness(t *testing.T) {
	tests := []struct {
		name string
		rows []json.RawMessage
	}{
		{
			name: "missing field fails the page",
			rows: []json.RawMessage{
				json.RawMessage(`{"address": "0x1234567890abcdef1234567890abcdef12345678", "end_block": 1, "amount_transferred": 1}`),
			},
		},
		{
			name: "invalid address fails the page",
			rows: []json.RawMessage{
				json.RawMessage(`{"address": "not-an-address", "end_block": 1, "amount_transferred": 1, "avg_amount_held": 1}`),
			},
		},
		{
			name: "one bad row fails the whole page",
			rows: []json.RawMessage{
				json.RawMessage(`{"address": "0x1234567890abcdef1234567890abcdef12345678", "end_block": 1, "amount_transferred": 1, "avg_amount_held": 1}`),
				json.RawMessage(`not json`),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := analytics.DecodeAllocationRows(tt.rows)

			assert.Error(t, err)
			assert.Nil(t, decoded)
		})
	}
}

func TestDecodeAllocationRows_Empty(t *testing.T) {
	decoded, err := analytics.DecodeAllocationRows(nil)

	assert.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeStatsRow(t *testing.T) {
	raw := json.RawMessage(`{
		"mento_earned_from_holding": 120000.5,
		"mento_earned_from_transfers": 80000.25,
		"total_mento_earned": 200000.75,
		"block": 21000000,
		"recipients": 1500
	}`)

	row, err := analytics.DecodeStatsRow(raw)

	assert.NoError(t, err)
	assert.Equal(t, 120000.5, row.MentoEarnedFromHolding)
	assert.Equal(t, 80000.25, row.MentoEarnedFromTransfers)
	assert.Equal(t, 200000.75, row.TotalMentoEarned)
	assert.Equal(t, int64(21000000), row.Block)
	assert.Equal(t, int64(1500), row.Recipients)
}

func TestDecodeStatsRow_MissingField(t *testing.T) {
	raw := json.RawMessage(`{
		"mento_earned_from_holding": 120000.5,
		"total_mento_earned": 200000.75,
		"block": 21000000,
		"recipients": 1500
	}`)

	row, err := analytics.DecodeStatsRow(raw)

	assert.Error(t, err)
	assert.Nil(t, row)
}
