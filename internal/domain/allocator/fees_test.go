package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotalRequired_DefaultRates(t *testing.T) {
	a := newTestAllocator(t)

	fees, err := a.CalculateTotalRequired(dec("100"))
	require.NoError(t, err)

	assertDecimal(t, "100", fees.GiftPrice)
	assertDecimal(t, "5", fees.PlatformFee)
	assertDecimal(t, "3", fees.PaymentProcessingFee)
	assertDecimal(t, "5", fees.ExchangeBuffer)
	assertDecimal(t, "113", fees.TotalRequired)
}

func TestCalculateTotalRequired_NoCompounding(t *testing.T) {
	// Fees are all taken on the gift price, never on each other
	a := newTestAllocator(t)

	fees, err := a.CalculateTotalRequired(dec("59.99"))
	require.NoError(t, err)

	assertDecimal(t, "2.9995", fees.PlatformFee)
	assertDecimal(t, "1.7997", fees.PaymentProcessingFee)
	assertDecimal(t, "2.9995", fees.ExchangeBuffer)
	assertDecimal(t, "67.7887", fees.TotalRequired)
	assertDecimal(t, fees.TotalRequired.String(),
		fees.GiftPrice.Add(fees.PlatformFee).Add(fees.PaymentProcessingFee).Add(fees.ExchangeBuffer))
}

func TestCalculateTotalRequired_CustomRates(t *testing.T) {
	a, err := NewAllocator(Config{
		PlatformFeeRate:    dec("0.10"),
		ProcessingFeeRate:  dec("0"),
		ExchangeBufferRate: dec("0.02"),
	})
	require.NoError(t, err)

	fees, err := a.CalculateTotalRequired(dec("250"))
	require.NoError(t, err)

	assertDecimal(t, "25", fees.PlatformFee)
	assertDecimal(t, "0", fees.PaymentProcessingFee)
	assertDecimal(t, "5", fees.ExchangeBuffer)
	assertDecimal(t, "280", fees.TotalRequired)
}

func TestCalculateTotalRequired_ZeroPrice(t *testing.T) {
	a := newTestAllocator(t)

	fees, err := a.CalculateTotalRequired(dec("0"))
	require.NoError(t, err)
	assertDecimal(t, "0", fees.TotalRequired)
}

func TestCalculateTotalRequired_NegativePrice(t *testing.T) {
	a := newTestAllocator(t)

	fees, err := a.CalculateTotalRequired(dec("-1"))
	assert.Nil(t, fees)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
