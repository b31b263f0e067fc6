package allocator

import "github.com/shopspring/decimal"

// AllocateContributions splits giftPrice across contributors in proportion
// to what each put in:
//
//	proportion = amount / total_collected
//	individual_share = proportion * gift_price
//	percentage = proportion * 100
//
// Shares are rounded to cents; the rounding residual goes to the largest
// share so the shares always sum to giftPrice.
//
// Returns an error if nothing was collected (including an empty list), if
// giftPrice or any amount is negative, or if a user appears twice.
func (a *Allocator) AllocateContributions(contributions []Contribution, giftPrice decimal.Decimal) ([]ContributorShare, error) {
	if err := requireNonNegative("gift price", giftPrice); err != nil {
		return nil, err
	}

	// Step 1: Sum contributions
	totalCollected, err := sumContributions(contributions)
	if err != nil {
		return nil, err
	}
	if totalCollected.IsZero() {
		return nil, invalidf("no contributions to allocate")
	}

	// Step 2: Proportional shares
	proportions := make([]decimal.Decimal, len(contributions))
	rawShares := make([]decimal.Decimal, len(contributions))
	for i, c := range contributions {
		proportions[i] = c.Amount.Div(totalCollected)
		rawShares[i] = proportions[i].Mul(giftPrice)
	}

	// Step 3: Round to cents, residual onto the largest share
	shares := distribute(rawShares, giftPrice)

	result := make([]ContributorShare, len(contributions))
	for i, c := range contributions {
		result[i] = ContributorShare{
			UserID:          c.UserID,
			Amount:          c.Amount,
			IndividualShare: shares[i],
			Percentage:      proportions[i].Mul(hundred),
		}
	}

	return result, nil
}
