// Package allocator computes how pooled gift money is distributed, refunded
// or reallocated across contributors and wishlist items.
//
// Every operation is a pure function of its inputs. Nothing is stored between
// calls and caller-owned slices are never modified; results are fresh values
// the caller renders or acts on (wallet debits, status changes and the like
// happen outside this package).
//
// Example usage:
//
//	a, err := allocator.NewAllocator(allocator.DefaultConfig())
//	fees, err := a.CalculateTotalRequired(decimal.NewFromInt(100))
//	// fees.TotalRequired == 113
package allocator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Policy thresholds. These are fixed, not derived from configuration.
var (
	// upgradeThreshold is the price-drop ratio above which the surplus should
	// fund an upgrade.
	upgradeThreshold = decimal.RequireFromString("0.20")

	// complementaryThreshold is the price-drop ratio above which the surplus
	// should fund a complementary item. Drops at or below it are refunded.
	complementaryThreshold = decimal.RequireFromString("0.05")

	// topUpThreshold is the fraction of an item's price that may be missing
	// while still suggesting a top-up instead of an alternative.
	topUpThreshold = decimal.RequireFromString("0.15")

	// fraudThreshold is the relative deviation from the market average above
	// which a listed price is flagged.
	fraudThreshold = decimal.RequireFromString("0.15")
)

var hundred = decimal.NewFromInt(100)

// Config holds the fee rates applied on top of a gift price.
type Config struct {
	PlatformFeeRate    decimal.Decimal // Default: 0.05
	ProcessingFeeRate  decimal.Decimal // Default: 0.03
	ExchangeBufferRate decimal.Decimal // Default: 0.05
}

// DefaultConfig returns the standard platform, processing and buffer rates.
func DefaultConfig() Config {
	return Config{
		PlatformFeeRate:    decimal.RequireFromString("0.05"),
		ProcessingFeeRate:  decimal.RequireFromString("0.03"),
		ExchangeBufferRate: decimal.RequireFromString("0.05"),
	}
}

// Allocator runs fund allocation calculations. It is immutable after
// construction and safe for concurrent use.
type Allocator struct {
	config Config
}

// NewAllocator creates an allocator with the given fee rates.
// Returns an error if any rate is negative.
func NewAllocator(config Config) (*Allocator, error) {
	rates := map[string]decimal.Decimal{
		"platform fee rate":    config.PlatformFeeRate,
		"processing fee rate":  config.ProcessingFeeRate,
		"exchange buffer rate": config.ExchangeBufferRate,
	}
	for name, rate := range rates {
		if rate.IsNegative() {
			return nil, fmt.Errorf("%w: %s cannot be negative", ErrInvalidInput, name)
		}
	}

	return &Allocator{config: config}, nil
}

// Config returns the rates the allocator was built with.
func (a *Allocator) Config() Config {
	return a.config
}

// roundToCents rounds an amount to 2 decimal places.
func roundToCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// distribute rounds each amount to cents and moves the rounding residual onto
// the largest entry, so the returned amounts sum to total exactly.
func distribute(amounts []decimal.Decimal, total decimal.Decimal) []decimal.Decimal {
	rounded := make([]decimal.Decimal, len(amounts))
	if len(amounts) == 0 {
		return rounded
	}

	sum := decimal.Zero
	maxIdx := 0
	for i, amount := range amounts {
		rounded[i] = roundToCents(amount)
		sum = sum.Add(rounded[i])
		if rounded[i].GreaterThan(rounded[maxIdx]) {
			maxIdx = i
		}
	}

	if diff := total.Sub(sum); !diff.IsZero() {
		rounded[maxIdx] = rounded[maxIdx].Add(diff)
	}

	return rounded
}
