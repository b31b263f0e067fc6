// Package pool holds the contribution-ledger side of a gift pool: turning raw
// ledger rows into the per-user contributions the allocator works with, and
// planning how the rest of a pool could be raised.
package pool

import (
	"fmt"
	"time"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
)

// RawContribution is a single ledger row. A user may have many rows per item.
type RawContribution struct {
	EventID string
	ItemID  string
	UserID  string
	Amount  decimal.Decimal
	Date    time.Time
}

// AggregateByUser sums raw ledger rows per user. Users appear in the order
// they were first seen in rows.
func AggregateByUser(rows []RawContribution) ([]allocator.Contribution, error) {
	index := make(map[string]int, len(rows))
	var out []allocator.Contribution

	for _, row := range rows {
		if row.UserID == "" {
			return nil, fmt.Errorf("%w: contribution without user id", allocator.ErrInvalidInput)
		}
		if row.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: contribution from %s is negative (%s)", allocator.ErrInvalidInput, row.UserID, row.Amount)
		}

		if i, ok := index[row.UserID]; ok {
			out[i].Amount = out[i].Amount.Add(row.Amount)
			continue
		}
		index[row.UserID] = len(out)
		out = append(out, allocator.Contribution{UserID: row.UserID, Amount: row.Amount})
	}

	return out, nil
}

// FilterByItem returns the rows recorded against itemID.
func FilterByItem(rows []RawContribution, itemID string) []RawContribution {
	var out []RawContribution
	for _, row := range rows {
		if row.ItemID == itemID {
			out = append(out, row)
		}
	}
	return out
}

// Total sums the amounts of rows.
func Total(rows []RawContribution) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Amount)
	}
	return total
}
