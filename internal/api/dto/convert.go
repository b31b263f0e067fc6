package dto

import (
	"time"

	"github.com/eshaffer321/giftpool/internal/application/service"
	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/eshaffer321/giftpool/internal/domain/pool"
	"github.com/shopspring/decimal"
)

// ToRawContributions converts request rows to ledger rows.
func ToRawContributions(in []ContributionRequest) []pool.RawContribution {
	out := make([]pool.RawContribution, len(in))
	for i, c := range in {
		row := pool.RawContribution{
			EventID: c.EventID,
			ItemID:  c.ItemID,
			UserID:  c.UserID,
			Amount:  c.Amount,
		}
		if c.Date != nil {
			row.Date = *c.Date
		}
		out[i] = row
	}
	return out
}

// ToWishlistItems converts request items, resolving priority labels.
func ToWishlistItems(in []WishlistItemRequest) []allocator.WishlistItem {
	out := make([]allocator.WishlistItem, len(in))
	for i, item := range in {
		out[i] = allocator.WishlistItem{
			ID:           item.ID,
			Title:        item.Title,
			Price:        item.Price,
			Priority:     allocator.ParsePriority(item.Priority),
			PooledAmount: item.PooledAmount,
		}
	}
	return out
}

// ToItemInfo converts alternatives. No alternatives means no item info.
func ToItemInfo(in []AlternativeRequest) *allocator.ItemInfo {
	if len(in) == 0 {
		return nil
	}
	info := &allocator.ItemInfo{Alternatives: make([]allocator.Alternative, len(in))}
	for i, a := range in {
		info.Alternatives[i] = allocator.Alternative{ID: a.ID, Title: a.Title, URL: a.URL, Price: a.Price}
	}
	return info
}

// ToParticipants converts participant directory entries.
func ToParticipants(in []ParticipantRequest) []pool.Participant {
	out := make([]pool.Participant, len(in))
	for i, p := range in {
		out[i] = pool.Participant{UserID: p.UserID, RSVP: pool.RSVP(p.RSVP)}
	}
	return out
}

// ParseEventDate parses an optional YYYY-MM-DD date.
func ParseEventDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, s)
}

// FromFeeBreakdown converts a fee breakdown.
func FromFeeBreakdown(f allocator.FeeBreakdown) FeeBreakdownResponse {
	return FeeBreakdownResponse{
		GiftPrice:            f.GiftPrice,
		PlatformFee:          f.PlatformFee,
		PaymentProcessingFee: f.PaymentProcessingFee,
		ExchangeBuffer:       f.ExchangeBuffer,
		TotalRequired:        f.TotalRequired,
	}
}

// FromShares converts allocator shares.
func FromShares(shares []allocator.ContributorShare) AllocateResponse {
	out := AllocateResponse{Shares: make([]ContributorShareResponse, len(shares))}
	for i, s := range shares {
		out.Shares[i] = ContributorShareResponse{
			UserID:          s.UserID,
			Amount:          s.Amount,
			IndividualShare: s.IndividualShare,
			Percentage:      s.Percentage,
		}
	}
	return out
}

func fromOutcomes(in []allocator.ContributorOutcome) []ContributorOutcomeResponse {
	out := make([]ContributorOutcomeResponse, len(in))
	for i, c := range in {
		out[i] = ContributorOutcomeResponse{
			UserID:            c.UserID,
			Amount:            c.Amount,
			Refund:            c.Refund,
			FinalContribution: c.FinalContribution,
		}
	}
	return out
}

// FromOverfunding converts an overfunding result.
func FromOverfunding(r *allocator.OverfundingResult) OverfundingResponse {
	out := OverfundingResponse{
		TotalCollected: r.TotalCollected,
		TargetAmount:   r.TargetAmount,
		Surplus:        r.Surplus,
		Policy:         string(r.Policy),
		Contributors:   fromOutcomes(r.Contributors),
	}
	if r.Policy == allocator.BonusTier {
		out.BonusGiftBudget = ptr(r.BonusGiftBudget)
	}
	return out
}

// FromUnderfunding converts an underfunding result.
func FromUnderfunding(r *allocator.UnderfundingResult) UnderfundingResponse {
	out := UnderfundingResponse{
		TotalCollected: r.TotalCollected,
		TargetAmount:   r.TargetAmount,
		Shortfall:      r.Shortfall,
		Policy:         string(r.Policy),
		Decision:       string(r.Decision),
		Contributors:   fromOutcomes(r.Contributors),
	}
	switch r.Decision {
	case allocator.DecisionBuyAlternative:
		out.Alternative = &AlternativeResponse{
			ID:    r.Alternative.ID,
			Title: r.Alternative.Title,
			URL:   r.Alternative.URL,
			Price: r.Alternative.Price,
		}
		out.Savings = ptr(r.Savings)
	case allocator.DecisionExtendDeadline:
		out.NeededAdditional = ptr(r.NeededAdditional)
	}
	return out
}

// FromPriceChange converts a price change recommendation.
func FromPriceChange(r *allocator.PriceChangeRecommendation) PriceChangeResponse {
	out := PriceChangeResponse{
		OriginalPrice:   r.OriginalPrice,
		CurrentPrice:    r.CurrentPrice,
		PriceDifference: r.PriceDifference,
		TotalCollected:  r.TotalCollected,
		Contributors:    make([]ContributionResponse, len(r.Contributors)),
		Recommendation:  string(r.Recommendation),
	}
	for i, c := range r.Contributors {
		out.Contributors[i] = ContributionResponse{UserID: c.UserID, Amount: c.Amount}
	}

	switch r.Recommendation {
	case allocator.RecommendUpgrade:
		out.Surplus = ptr(r.Surplus)
		out.UpgradeBudget = ptr(r.UpgradeBudget)
	case allocator.RecommendComplementaryItem:
		out.Surplus = ptr(r.Surplus)
		out.ComplementaryBudget = ptr(r.ComplementaryBudget)
	case allocator.RecommendSmallRefund:
		out.Surplus = ptr(r.Surplus)
		out.RefundAmount = ptr(r.RefundAmount)
	case allocator.RecommendRequestTopUp:
		out.Shortfall = ptr(r.Shortfall)
		out.AdditionalNeeded = ptr(r.AdditionalNeeded)
	case allocator.RecommendAutoAdjust:
		out.Shortfall = ptr(r.Shortfall)
		out.NewTarget = ptr(r.NewTarget)
	}
	return out
}

// FromPurchasePlan converts a purchase plan.
func FromPurchasePlan(plan []allocator.PlannedPurchase) PurchasePlanResponse {
	out := PurchasePlanResponse{Plan: make([]PlannedPurchaseResponse, len(plan))}
	for i, p := range plan {
		resp := PlannedPurchaseResponse{
			Item: WishlistItemResponse{
				ID:           p.Item.ID,
				Title:        p.Item.Title,
				Price:        p.Item.Price,
				Priority:     p.Item.Priority.String(),
				PooledAmount: p.Item.PooledAmount,
			},
			CanPurchase: p.CanPurchase,
			Decision:    string(p.Decision),
		}
		switch p.Decision {
		case allocator.DecisionSuggestTopUp:
			resp.AdditionalNeeded = ptr(p.AdditionalNeeded)
		case allocator.DecisionSuggestAlternative:
			resp.BudgetAvailable = ptr(p.BudgetAvailable)
		}
		out.Plan[i] = resp
	}
	return out
}

// FromFraudAssessment converts a market price verdict.
func FromFraudAssessment(a *allocator.FraudAssessment) FraudCheckResponse {
	out := FraudCheckResponse{
		GiftPrice:  a.GiftPrice,
		Assessment: string(a.Assessment),
		Reason:     a.Reason,
	}
	if a.Assessment != allocator.AssessmentUnknown {
		out.AverageMarketPrice = ptr(a.AverageMarketPrice)
		out.PriceRangeMin = ptr(a.PriceRange.Min)
		out.PriceRangeMax = ptr(a.PriceRange.Max)
		out.DifferencePercentage = ptr(a.DifferencePercentage)
	}
	return out
}

// FromFundingSummary converts a funding summary.
func FromFundingSummary(s allocator.FundingSummary) FundingSummaryResponse {
	return FundingSummaryResponse{
		TotalValue: s.TotalValue,
		Funded:     s.Funded,
		Remaining:  s.Remaining,
		Progress:   s.Progress,
		Status:     string(s.Status),
		Fees:       FromFeeBreakdown(s.Fees),
	}
}

// FromContributionPlan converts a contribution plan.
func FromContributionPlan(p *service.ContributionPlan) ContributionPlanResponse {
	out := ContributionPlanResponse{
		Summary:               FromFundingSummary(p.Summary),
		AverageContribution:   p.AverageContribution,
		PotentialFunding:      p.PotentialFunding,
		PotentialContributors: p.PotentialContributors,
		Items:                 make([]ItemContributionPlanResponse, len(p.Items)),
	}
	for i, item := range p.Items {
		suggestions := make([]SuggestedAmountResponse, len(item.Suggestions))
		for j, s := range item.Suggestions {
			suggestions[j] = SuggestedAmountResponse{Label: s.Label, Amount: s.Amount}
		}
		out.Items[i] = ItemContributionPlanResponse{
			ItemID:       item.ItemID,
			Title:        item.Title,
			Remaining:    item.Remaining,
			Participants: item.Split.Participants,
			PerPerson:    item.Split.PerPerson,
			Suggestions:  suggestions,
		}
	}
	return out
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
