package allocator

import "github.com/shopspring/decimal"

// Alternative is a cheaper substitute for a gift that fell short.
type Alternative struct {
	ID    string
	Title string
	URL   string
	Price decimal.Decimal
}

// ItemInfo carries optional details about the gift being funded.
type ItemInfo struct {
	Alternatives []Alternative
}

// UnderfundingResult describes what happens to a pool that fell short.
type UnderfundingResult struct {
	TotalCollected decimal.Decimal
	TargetAmount   decimal.Decimal
	Shortfall      decimal.Decimal
	Policy         UnderfundingPolicy
	Contributors   []ContributorOutcome
	Decision       UnderfundingDecision

	// Alternative and Savings are set when Decision is DecisionBuyAlternative.
	Alternative *Alternative
	Savings     decimal.Decimal

	// NeededAdditional is set when Decision is DecisionExtendDeadline.
	NeededAdditional decimal.Decimal
}

// HandleUnderfunding decides what happens when less was collected than a
// gift needs. Callers route here only when totalCollected < targetAmount.
//
// Policies:
//   - RefundAll: every contributor gets their full amount back.
//   - PartialFulfillment: buy the most expensive alternative the pool can
//     cover, falling back to a gift card when none fits or none is known.
//   - Extension: keep collecting; the shortfall is what is still needed.
func (a *Allocator) HandleUnderfunding(
	totalCollected decimal.Decimal,
	targetAmount decimal.Decimal,
	contributors []Contribution,
	itemInfo *ItemInfo,
	policy UnderfundingPolicy,
) (*UnderfundingResult, error) {
	if _, err := ParseUnderfundingPolicy(string(policy)); err != nil {
		return nil, err
	}
	if err := requireNonNegative("total collected", totalCollected); err != nil {
		return nil, err
	}
	if err := requireNonNegative("target amount", targetAmount); err != nil {
		return nil, err
	}
	if _, err := sumContributions(contributors); err != nil {
		return nil, err
	}
	if itemInfo != nil {
		for _, alt := range itemInfo.Alternatives {
			if alt.Price.IsNegative() {
				return nil, invalidf("alternative %q has a negative price", alt.Title)
			}
		}
	}
	if !totalCollected.LessThan(targetAmount) {
		return nil, preconditionf("underfunding requires total collected (%s) < target (%s)", totalCollected, targetAmount)
	}

	shortfall := targetAmount.Sub(totalCollected)
	result := &UnderfundingResult{
		TotalCollected:   totalCollected,
		TargetAmount:     targetAmount,
		Shortfall:        shortfall,
		Policy:           policy,
		Contributors:     make([]ContributorOutcome, len(contributors)),
		Savings:          decimal.Zero,
		NeededAdditional: decimal.Zero,
	}

	switch policy {
	case RefundAll:
		for i, c := range contributors {
			result.Contributors[i] = ContributorOutcome{
				UserID:            c.UserID,
				Amount:            c.Amount,
				Refund:            c.Amount,
				FinalContribution: decimal.Zero,
			}
		}
		result.Decision = DecisionRefundAll

	case PartialFulfillment:
		for i, c := range contributors {
			result.Contributors[i] = passThrough(c)
		}
		result.Decision = DecisionGiftCard
		if best := bestAffordable(itemInfo, totalCollected); best != nil {
			result.Decision = DecisionBuyAlternative
			result.Alternative = best
			result.Savings = totalCollected.Sub(best.Price)
		}

	case Extension:
		for i, c := range contributors {
			result.Contributors[i] = passThrough(c)
		}
		result.Decision = DecisionExtendDeadline
		result.NeededAdditional = shortfall
	}

	return result, nil
}

// bestAffordable returns a copy of the most expensive alternative priced
// within budget. On equal prices the first listed wins.
func bestAffordable(itemInfo *ItemInfo, budget decimal.Decimal) *Alternative {
	if itemInfo == nil {
		return nil
	}

	var best *Alternative
	for i := range itemInfo.Alternatives {
		alt := itemInfo.Alternatives[i]
		if alt.Price.GreaterThan(budget) {
			continue
		}
		if best == nil || alt.Price.GreaterThan(best.Price) {
			best = &alt
		}
	}
	return best
}
