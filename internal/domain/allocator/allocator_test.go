package allocator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(expected).String(), actual.String(), msgAndArgs...)
}

func newTestAllocator(t *testing.T) *Allocator {
	t.Helper()
	a, err := NewAllocator(DefaultConfig())
	require.NoError(t, err)
	return a
}

func TestNewAllocator_DefaultRates(t *testing.T) {
	a := newTestAllocator(t)

	cfg := a.Config()
	assertDecimal(t, "0.05", cfg.PlatformFeeRate)
	assertDecimal(t, "0.03", cfg.ProcessingFeeRate)
	assertDecimal(t, "0.05", cfg.ExchangeBufferRate)
}

func TestNewAllocator_RejectsNegativeRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProcessingFeeRate = dec("-0.01")

	a, err := NewAllocator(cfg)
	assert.Nil(t, a)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "processing fee rate")
}

func TestDistribute_ResidualGoesToLargest(t *testing.T) {
	amounts := []decimal.Decimal{dec("10.004"), dec("50.004"), dec("39.992")}

	result := distribute(amounts, dec("100"))

	// Rounded: 10.00 + 50.00 + 39.99 = 99.99, so the largest absorbs 0.01
	assertDecimal(t, "10", result[0])
	assertDecimal(t, "50.01", result[1])
	assertDecimal(t, "39.99", result[2])
	assertDecimal(t, "100", decimal.Sum(result[0], result[1:]...))
}

func TestDistribute_Empty(t *testing.T) {
	assert.Empty(t, distribute(nil, decimal.Zero))
}

func TestParseOverfundingPolicy(t *testing.T) {
	for _, tag := range []string{"proportional_refund", "keep", "bonus_tier"} {
		p, err := ParseOverfundingPolicy(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, string(p))
	}

	_, err := ParseOverfundingPolicy("donate")
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)
}

func TestParseUnderfundingPolicy(t *testing.T) {
	for _, tag := range []string{"refund", "partial_fulfillment", "extension"} {
		p, err := ParseUnderfundingPolicy(tag)
		require.NoError(t, err)
		assert.Equal(t, tag, string(p))
	}

	// The original UI offered "partial" as a label; only the full tag is accepted.
	_, err := ParseUnderfundingPolicy("partial")
	assert.ErrorIs(t, err, ErrUnsupportedPolicy)
}
