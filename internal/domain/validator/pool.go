// Package validator reconciles contribution ledgers before money is routed.
//
// The pool validator ensures that the contributions a caller hands to a
// resolver add up to the pooled amount it claims to hold. This prevents
// refunding from a ledger that is missing rows or carries duplicates.
package validator

import (
	"fmt"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
)

// tolerance allows for rounding in upstream ledgers.
var tolerance = decimal.New(2, -2)

// PoolValidation contains the result of reconciling a contribution pool.
type PoolValidation struct {
	// Valid is true if the contributions sum to the pooled total
	Valid bool

	// ContributionsSum is the sum of all contribution amounts
	ContributionsSum decimal.Decimal

	// PooledTotal is what the contributions should sum to
	PooledTotal decimal.Decimal

	// Difference is ContributionsSum - PooledTotal
	Difference decimal.Decimal

	// Reason explains why validation failed (empty if valid)
	Reason string
}

// ValidatePool checks that contributions sum to pooledTotal within 2 cents.
//
// A negative difference means ledger rows are missing (a contribution has
// not been recorded yet); a positive one points at a duplicate or a row
// from another pool.
func ValidatePool(contributions []allocator.Contribution, pooledTotal decimal.Decimal) *PoolValidation {
	sum := decimal.Zero
	for _, c := range contributions {
		sum = sum.Add(c.Amount)
	}
	sum = sum.Round(2)
	expected := pooledTotal.Round(2)
	diff := sum.Sub(expected)

	result := &PoolValidation{
		Valid:            true,
		ContributionsSum: sum,
		PooledTotal:      expected,
		Difference:       diff,
	}

	if diff.Abs().LessThanOrEqual(tolerance) {
		return result
	}

	result.Valid = false
	if diff.IsNegative() {
		result.Reason = fmt.Sprintf("contributions ($%s) are less than pooled total ($%s) - missing $%s, likely a contribution hasn't been recorded yet",
			sum.StringFixed(2), expected.StringFixed(2), diff.Neg().StringFixed(2))
	} else {
		result.Reason = fmt.Sprintf("contributions ($%s) exceed pooled total ($%s) by $%s - possible duplicate or foreign contribution",
			sum.StringFixed(2), expected.StringFixed(2), diff.StringFixed(2))
	}

	return result
}
