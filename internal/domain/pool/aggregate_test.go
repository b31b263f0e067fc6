package pool

import (
	"testing"
	"time"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ledger() []RawContribution {
	day := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []RawContribution{
		{EventID: "event1", ItemID: "item1", UserID: "user2", Amount: dec("20"), Date: day},
		{EventID: "event1", ItemID: "item1", UserID: "user1", Amount: dec("30"), Date: day},
		{EventID: "event1", ItemID: "item2", UserID: "user2", Amount: dec("15.50"), Date: day.Add(time.Hour)},
		{EventID: "event1", ItemID: "item1", UserID: "user1", Amount: dec("20"), Date: day.Add(2 * time.Hour)},
	}
}

func TestAggregateByUser(t *testing.T) {
	contributions, err := AggregateByUser(ledger())
	require.NoError(t, err)
	require.Len(t, contributions, 2)

	// First-seen order
	assert.Equal(t, "user2", contributions[0].UserID)
	assert.Equal(t, "35.5", contributions[0].Amount.String())
	assert.Equal(t, "user1", contributions[1].UserID)
	assert.Equal(t, "50", contributions[1].Amount.String())
}

func TestAggregateByUser_ForItem(t *testing.T) {
	rows := FilterByItem(ledger(), "item1")
	require.Len(t, rows, 3)
	assert.Equal(t, "70", Total(rows).String())

	contributions, err := AggregateByUser(rows)
	require.NoError(t, err)

	assert.Equal(t, []string{"user2", "user1"}, []string{contributions[0].UserID, contributions[1].UserID})
	assert.Equal(t, "20", contributions[0].Amount.String())
}

func TestAggregateByUser_Empty(t *testing.T) {
	contributions, err := AggregateByUser(nil)
	require.NoError(t, err)
	assert.Empty(t, contributions)
	assert.True(t, Total(nil).IsZero())
}

func TestAggregateByUser_InvalidRows(t *testing.T) {
	_, err := AggregateByUser([]RawContribution{{UserID: "user1", Amount: dec("-5")}})
	assert.ErrorIs(t, err, allocator.ErrInvalidInput)

	_, err = AggregateByUser([]RawContribution{{Amount: dec("5")}})
	assert.ErrorIs(t, err, allocator.ErrInvalidInput)
}
