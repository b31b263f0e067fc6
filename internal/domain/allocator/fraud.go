package allocator

import "github.com/shopspring/decimal"

// PriceRange is the spread of market reference prices.
type PriceRange struct {
	Min decimal.Decimal
	Max decimal.Decimal
}

// FraudAssessment is the result of comparing a listed price with the market.
type FraudAssessment struct {
	GiftPrice            decimal.Decimal
	AverageMarketPrice   decimal.Decimal
	PriceRange           PriceRange
	DifferencePercentage decimal.Decimal // 0-100+
	Assessment           Assessment
	Reason               string
}

// Assessment reasons.
const (
	ReasonNoSources    = "No market sources available for comparison"
	ReasonAboveMarket  = "Price is significantly higher than market average"
	ReasonBelowMarket  = "Price is significantly lower than market average (potential scam or counterfeit)"
	ReasonWithinMarket = "Price is within normal market range"
)

// CheckMarketPrice flags a listed price that deviates from the average of
// marketPrices by more than 15% in either direction. With no market prices
// the assessment is AssessmentUnknown.
//
// Returns an error if giftPrice is negative or a market price is not positive.
func (a *Allocator) CheckMarketPrice(giftPrice decimal.Decimal, marketPrices []decimal.Decimal) (*FraudAssessment, error) {
	if err := requireNonNegative("gift price", giftPrice); err != nil {
		return nil, err
	}
	for _, p := range marketPrices {
		if !p.IsPositive() {
			return nil, invalidf("market price %s must be positive", p)
		}
	}

	if len(marketPrices) == 0 {
		return &FraudAssessment{
			GiftPrice:  giftPrice,
			Assessment: AssessmentUnknown,
			Reason:     ReasonNoSources,
		}, nil
	}

	average := decimal.Avg(marketPrices[0], marketPrices[1:]...)
	diff := giftPrice.Sub(average).Abs().Div(average)

	result := &FraudAssessment{
		GiftPrice:          giftPrice,
		AverageMarketPrice: average,
		PriceRange: PriceRange{
			Min: decimal.Min(marketPrices[0], marketPrices[1:]...),
			Max: decimal.Max(marketPrices[0], marketPrices[1:]...),
		},
		DifferencePercentage: diff.Mul(hundred),
		Assessment:           AssessmentReasonable,
		Reason:               ReasonWithinMarket,
	}

	if diff.GreaterThan(fraudThreshold) {
		result.Assessment = AssessmentPotentialFraud
		result.Reason = ReasonBelowMarket
		if giftPrice.GreaterThan(average) {
			result.Reason = ReasonAboveMarket
		}
	}

	return result, nil
}
