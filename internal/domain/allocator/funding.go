package allocator

import "github.com/shopspring/decimal"

// FundingStatus tells a caller which resolver applies to a wishlist.
type FundingStatus string

const (
	StatusOverfunded  FundingStatus = "overfunded"
	StatusFullyFunded FundingStatus = "fully_funded"
	StatusUnderfunded FundingStatus = "underfunded"
)

// FundingSummary is an overview of a wishlist's pooled money.
type FundingSummary struct {
	TotalValue decimal.Decimal // sum of item prices
	Funded     decimal.Decimal // sum of pooled amounts
	Remaining  decimal.Decimal // TotalValue - Funded, negative when overfunded
	Progress   decimal.Decimal // Funded / TotalValue, capped at 1
	Status     FundingStatus
	Fees       FeeBreakdown // fees on TotalValue
}

// SummarizeFunding totals a wishlist and reports whether it is over, exactly
// or under funded. It does not run a resolver; routing stays with the caller.
//
// Returns an error if items is empty or an item has a negative price or
// pooled amount.
func (a *Allocator) SummarizeFunding(items []WishlistItem) (*FundingSummary, error) {
	if len(items) == 0 {
		return nil, invalidf("no wishlist items to summarize")
	}

	totalValue := decimal.Zero
	funded := decimal.Zero
	for _, item := range items {
		if item.Price.IsNegative() {
			return nil, invalidf("item %q has a negative price", item.Title)
		}
		if item.PooledAmount.IsNegative() {
			return nil, invalidf("item %q has a negative pooled amount", item.Title)
		}
		totalValue = totalValue.Add(item.Price)
		funded = funded.Add(item.PooledAmount)
	}

	fees, err := a.CalculateTotalRequired(totalValue)
	if err != nil {
		return nil, err
	}

	progress := decimal.NewFromInt(1)
	if totalValue.IsPositive() {
		progress = decimal.Min(funded.Div(totalValue), progress)
	}

	status := StatusUnderfunded
	switch funded.Cmp(totalValue) {
	case 1:
		status = StatusOverfunded
	case 0:
		status = StatusFullyFunded
	}

	return &FundingSummary{
		TotalValue: totalValue,
		Funded:     funded,
		Remaining:  totalValue.Sub(funded),
		Progress:   progress,
		Status:     status,
		Fees:       *fees,
	}, nil
}
