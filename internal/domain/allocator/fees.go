package allocator

import "github.com/shopspring/decimal"

// CalculateTotalRequired returns the amount a gift needs once platform,
// processing and exchange-buffer fees are added. Each fee is a flat rate on
// the gift price:
//
//	total_required = price + price*platform + price*processing + price*buffer
//
// Returns an error if giftPrice is negative.
func (a *Allocator) CalculateTotalRequired(giftPrice decimal.Decimal) (*FeeBreakdown, error) {
	if err := requireNonNegative("gift price", giftPrice); err != nil {
		return nil, err
	}

	platformFee := giftPrice.Mul(a.config.PlatformFeeRate)
	processingFee := giftPrice.Mul(a.config.ProcessingFeeRate)
	buffer := giftPrice.Mul(a.config.ExchangeBufferRate)

	return &FeeBreakdown{
		GiftPrice:            giftPrice,
		PlatformFee:          platformFee,
		PaymentProcessingFee: processingFee,
		ExchangeBuffer:       buffer,
		TotalRequired:        giftPrice.Add(platformFee).Add(processingFee).Add(buffer),
	}, nil
}
