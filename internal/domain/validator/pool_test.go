package validator

import (
	"testing"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func contributions(amounts ...string) []allocator.Contribution {
	out := make([]allocator.Contribution, len(amounts))
	for i, a := range amounts {
		out[i] = allocator.Contribution{
			UserID: string(rune('a' + i)),
			Amount: decimal.RequireFromString(a),
		}
	}
	return out
}

func TestValidatePool_Valid(t *testing.T) {
	result := ValidatePool(contributions("100", "50"), decimal.RequireFromString("150"))

	assert.True(t, result.Valid)
	assert.Equal(t, "150.00", result.ContributionsSum.StringFixed(2))
	assert.Equal(t, "150.00", result.PooledTotal.StringFixed(2))
	assert.True(t, result.Difference.IsZero())
	assert.Empty(t, result.Reason)
}

func TestValidatePool_ValidThirds(t *testing.T) {
	result := ValidatePool(contributions("33.33", "33.33", "33.34"), decimal.RequireFromString("100"))

	assert.True(t, result.Valid)
}

func TestValidatePool_ValidWithinTolerance(t *testing.T) {
	result := ValidatePool(contributions("99.99"), decimal.RequireFromString("100"))
	assert.True(t, result.Valid, "1 cent difference should be within tolerance")

	result = ValidatePool(contributions("99.98"), decimal.RequireFromString("100"))
	assert.True(t, result.Valid, "2 cent difference should be within tolerance")
}

func TestValidatePool_InvalidMissingContribution(t *testing.T) {
	result := ValidatePool(contributions("100"), decimal.RequireFromString("150"))

	assert.False(t, result.Valid)
	assert.Equal(t, "-50.00", result.Difference.StringFixed(2))
	assert.Contains(t, result.Reason, "missing $50.00")
	assert.Contains(t, result.Reason, "hasn't been recorded")
}

func TestValidatePool_InvalidJustOverTolerance(t *testing.T) {
	result := ValidatePool(contributions("99.97"), decimal.RequireFromString("100"))

	assert.False(t, result.Valid, "3 cent difference should fail")
}

func TestValidatePool_InvalidExcess(t *testing.T) {
	result := ValidatePool(contributions("100", "50", "50"), decimal.RequireFromString("150"))

	assert.False(t, result.Valid)
	assert.Equal(t, "50.00", result.Difference.StringFixed(2))
	assert.Contains(t, result.Reason, "exceed pooled total ($150.00) by $50.00")
}

func TestValidatePool_Empty(t *testing.T) {
	result := ValidatePool(nil, decimal.Zero)
	assert.True(t, result.Valid)

	result = ValidatePool(nil, decimal.RequireFromString("10"))
	assert.False(t, result.Valid)
}
