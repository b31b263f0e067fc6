package allocator

import "github.com/shopspring/decimal"

// PriceChangeRecommendation is the suggested reaction to a gift whose price
// moved after funding started. Only the fields relevant to Recommendation
// are non-zero.
type PriceChangeRecommendation struct {
	OriginalPrice   decimal.Decimal
	CurrentPrice    decimal.Decimal
	PriceDifference decimal.Decimal // original - current
	TotalCollected  decimal.Decimal
	Contributors    []Contribution
	Recommendation  Recommendation

	Surplus             decimal.Decimal // price dropped
	UpgradeBudget       decimal.Decimal
	ComplementaryBudget decimal.Decimal
	RefundAmount        decimal.Decimal

	Shortfall        decimal.Decimal // price rose
	NewTarget        decimal.Decimal
	AdditionalNeeded decimal.Decimal
}

// HandlePriceChange compares the locked price against the current one.
//
// Price drop, by ratio = (original - current) / original:
//   - above 20%: upgrade with the surplus
//   - above 5%: add a complementary item
//   - otherwise: refund the surplus
//
// Price rise: auto-adjust the target if the pool already covers the new
// price, otherwise request a top-up for the difference.
func (a *Allocator) HandlePriceChange(
	originalPrice decimal.Decimal,
	currentPrice decimal.Decimal,
	totalCollected decimal.Decimal,
	contributors []Contribution,
) (*PriceChangeRecommendation, error) {
	if err := requireNonNegative("original price", originalPrice); err != nil {
		return nil, err
	}
	if err := requireNonNegative("current price", currentPrice); err != nil {
		return nil, err
	}
	if err := requireNonNegative("total collected", totalCollected); err != nil {
		return nil, err
	}

	result := &PriceChangeRecommendation{
		OriginalPrice:   originalPrice,
		CurrentPrice:    currentPrice,
		PriceDifference: originalPrice.Sub(currentPrice),
		TotalCollected:  totalCollected,
		Contributors:    append([]Contribution(nil), contributors...),
	}

	switch currentPrice.Cmp(originalPrice) {
	case -1:
		surplus := originalPrice.Sub(currentPrice)
		result.Surplus = surplus

		ratio := surplus.Div(originalPrice)
		switch {
		case ratio.GreaterThan(upgradeThreshold):
			result.Recommendation = RecommendUpgrade
			result.UpgradeBudget = surplus
		case ratio.GreaterThan(complementaryThreshold):
			result.Recommendation = RecommendComplementaryItem
			result.ComplementaryBudget = surplus
		default:
			result.Recommendation = RecommendSmallRefund
			result.RefundAmount = surplus
		}

	case 1:
		shortfall := currentPrice.Sub(originalPrice)
		result.Shortfall = shortfall

		if totalCollected.GreaterThanOrEqual(currentPrice) {
			result.Recommendation = RecommendAutoAdjust
			result.NewTarget = currentPrice
		} else {
			result.Recommendation = RecommendRequestTopUp
			result.AdditionalNeeded = shortfall
		}

	default:
		result.Recommendation = RecommendNoChange
	}

	return result, nil
}
