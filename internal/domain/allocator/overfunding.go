package allocator

import "github.com/shopspring/decimal"

// OverfundingResult describes how a surplus is disposed of.
type OverfundingResult struct {
	TotalCollected decimal.Decimal
	TargetAmount   decimal.Decimal
	Surplus        decimal.Decimal
	Policy         OverfundingPolicy
	Contributors   []ContributorOutcome

	// BonusGiftBudget is set for BonusTier only.
	BonusGiftBudget decimal.Decimal
}

// HandleOverfunding decides what happens to money collected beyond the
// target. Callers route here only when totalCollected >= targetAmount; the
// resolver checks that contract and never picks a different path on its own.
//
// Policies:
//   - ProportionalRefund: refund = surplus * amount / total_collected,
//     rounded to cents with the residual on the largest refund so the
//     refunds sum to the surplus. Contributions must add up to totalCollected.
//   - KeepSurplus: nothing is refunded; the recipient keeps the surplus.
//   - BonusTier: nothing is refunded; the surplus becomes a bonus gift budget.
func (a *Allocator) HandleOverfunding(
	totalCollected decimal.Decimal,
	targetAmount decimal.Decimal,
	contributors []Contribution,
	policy OverfundingPolicy,
) (*OverfundingResult, error) {
	if _, err := ParseOverfundingPolicy(string(policy)); err != nil {
		return nil, err
	}
	if err := requireNonNegative("total collected", totalCollected); err != nil {
		return nil, err
	}
	if err := requireNonNegative("target amount", targetAmount); err != nil {
		return nil, err
	}
	contributed, err := sumContributions(contributors)
	if err != nil {
		return nil, err
	}
	if totalCollected.LessThan(targetAmount) {
		return nil, preconditionf("overfunding requires total collected (%s) >= target (%s)", totalCollected, targetAmount)
	}

	surplus := totalCollected.Sub(targetAmount)
	result := &OverfundingResult{
		TotalCollected:  totalCollected,
		TargetAmount:    targetAmount,
		Surplus:         surplus,
		Policy:          policy,
		Contributors:    make([]ContributorOutcome, len(contributors)),
		BonusGiftBudget: decimal.Zero,
	}

	switch policy {
	case ProportionalRefund:
		if totalCollected.IsZero() {
			return nil, invalidf("no contributions to refund")
		}
		if !contributed.Equal(totalCollected) {
			return nil, invalidf("contributions sum to %s but total collected is %s", contributed, totalCollected)
		}

		rawRefunds := make([]decimal.Decimal, len(contributors))
		for i, c := range contributors {
			rawRefunds[i] = surplus.Mul(c.Amount).Div(totalCollected)
		}
		refunds := distribute(rawRefunds, surplus)

		for i, c := range contributors {
			result.Contributors[i] = ContributorOutcome{
				UserID:            c.UserID,
				Amount:            c.Amount,
				Refund:            refunds[i],
				FinalContribution: c.Amount.Sub(refunds[i]),
			}
		}

	case KeepSurplus, BonusTier:
		for i, c := range contributors {
			result.Contributors[i] = passThrough(c)
		}
		if policy == BonusTier {
			result.BonusGiftBudget = surplus
		}
	}

	return result, nil
}

// passThrough leaves a contribution in the pool untouched.
func passThrough(c Contribution) ContributorOutcome {
	return ContributorOutcome{
		UserID:            c.UserID,
		Amount:            c.Amount,
		Refund:            decimal.Zero,
		FinalContribution: c.Amount,
	}
}
