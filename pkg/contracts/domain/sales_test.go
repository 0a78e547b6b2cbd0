package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPredicates(t *testing.T) {
	tests := []struct {
		name          string
		record        Record
		wantTimestamp bool
		wantAmount    bool
	}{
		{
			name:          "complete record",
			record:        Record{CreatedAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC), Amount: 100},
			wantTimestamp: true,
			wantAmount:    true,
		},
		{
			name:          "zero amount is still an amount",
			record:        Record{CreatedAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC)},
			wantTimestamp: true,
			wantAmount:    true,
		},
		{
			name:   "unparsed timestamp and amount",
			record: Record{Amount: math.NaN()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantTimestamp, tt.record.HasTimestamp())
			assert.Equal(t, tt.wantAmount, tt.record.HasAmount())
		})
	}
}

func TestRecordKeys(t *testing.T) {
	r := Record{ItemCode: "A", ItemName: "Apple", GroupCode: "G1", GroupName: "Fruit"}

	assert.Equal(t, "A - Apple", r.ItemKey())
	assert.Equal(t, "G1 - Fruit", r.GroupKey())
	assert.Equal(t, "[G1] Fruit", FormatGroupLabel(r.GroupCode, r.GroupName))
}

func TestRecordJSONOmitsAmount(t *testing.T) {
	data, err := json.Marshal(Record{OrderID: "O1", Amount: math.NaN()})
	require.NoError(t, err)

	assert.NotContains(t, string(data), "amount")
	assert.Contains(t, string(data), `"order_id":"O1"`)
}
