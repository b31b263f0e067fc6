package allocator

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Contribution is one contributor's total toward a gift.
// Callers aggregate multiple raw contributions per user before passing them in.
type Contribution struct {
	UserID string
	Amount decimal.Decimal
}

// ContributorShare is a contribution annotated with its proportional share
// of a gift price.
type ContributorShare struct {
	UserID          string
	Amount          decimal.Decimal
	IndividualShare decimal.Decimal
	Percentage      decimal.Decimal // 0-100
}

// ContributorOutcome is a contribution annotated with what a resolver decided
// to refund and what stays in the pool.
type ContributorOutcome struct {
	UserID            string
	Amount            decimal.Decimal
	Refund            decimal.Decimal
	FinalContribution decimal.Decimal
}

// FeeBreakdown is the total a gift requires, fees included.
type FeeBreakdown struct {
	GiftPrice            decimal.Decimal
	PlatformFee          decimal.Decimal
	PaymentProcessingFee decimal.Decimal
	ExchangeBuffer       decimal.Decimal
	TotalRequired        decimal.Decimal
}

// OverfundingPolicy selects what happens to a surplus.
type OverfundingPolicy string

const (
	ProportionalRefund OverfundingPolicy = "proportional_refund"
	KeepSurplus        OverfundingPolicy = "keep"
	BonusTier          OverfundingPolicy = "bonus_tier"
)

// ParseOverfundingPolicy converts a policy tag into an OverfundingPolicy.
func ParseOverfundingPolicy(s string) (OverfundingPolicy, error) {
	p := OverfundingPolicy(s)
	switch p {
	case ProportionalRefund, KeepSurplus, BonusTier:
		return p, nil
	}
	return "", fmt.Errorf("%w: overfunding policy %q", ErrUnsupportedPolicy, s)
}

// UnderfundingPolicy selects what happens when a pool falls short.
type UnderfundingPolicy string

const (
	RefundAll          UnderfundingPolicy = "refund"
	PartialFulfillment UnderfundingPolicy = "partial_fulfillment"
	Extension          UnderfundingPolicy = "extension"
)

// ParseUnderfundingPolicy converts a policy tag into an UnderfundingPolicy.
func ParseUnderfundingPolicy(s string) (UnderfundingPolicy, error) {
	p := UnderfundingPolicy(s)
	switch p {
	case RefundAll, PartialFulfillment, Extension:
		return p, nil
	}
	return "", fmt.Errorf("%w: underfunding policy %q", ErrUnsupportedPolicy, s)
}

// UnderfundingDecision is the purchase outcome of an underfunding policy.
type UnderfundingDecision string

const (
	DecisionRefundAll      UnderfundingDecision = "refund_all"
	DecisionBuyAlternative UnderfundingDecision = "buy_alternative"
	DecisionGiftCard       UnderfundingDecision = "gift_card"
	DecisionExtendDeadline UnderfundingDecision = "extend_deadline"
)

// Recommendation is the suggested reaction to a price change.
type Recommendation string

const (
	RecommendUpgrade           Recommendation = "upgrade"
	RecommendComplementaryItem Recommendation = "complementary_item"
	RecommendSmallRefund       Recommendation = "small_refund"
	RecommendAutoAdjust        Recommendation = "auto_adjust"
	RecommendRequestTopUp      Recommendation = "request_topup"
	RecommendNoChange          Recommendation = "no_change"
)

// PurchaseDecision is the per-item outcome of a purchase plan.
type PurchaseDecision string

const (
	DecisionBuy                PurchaseDecision = "buy"
	DecisionSuggestTopUp       PurchaseDecision = "suggest_topup"
	DecisionSuggestAlternative PurchaseDecision = "suggest_alternative"
)

// Assessment is the verdict of a market price check.
type Assessment string

const (
	AssessmentReasonable     Assessment = "reasonable_price"
	AssessmentPotentialFraud Assessment = "potential_fraud"
	AssessmentUnknown        Assessment = "unknown"
)
