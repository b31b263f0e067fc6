package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money fields are encoded as JSON strings so clients never round-trip
// through float64.

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service,omitempty"`
	Timestamp string `json:"timestamp"`
}

// NewHealthResponse creates a health response stamped with the current time.
func NewHealthResponse(service string) HealthResponse {
	return HealthResponse{
		Status:    "ok",
		Service:   service,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// FeeBreakdownResponse is the total a gift requires, fees included.
type FeeBreakdownResponse struct {
	GiftPrice            decimal.Decimal `json:"gift_price"`
	PlatformFee          decimal.Decimal `json:"platform_fee"`
	PaymentProcessingFee decimal.Decimal `json:"payment_processing_fee"`
	ExchangeBuffer       decimal.Decimal `json:"exchange_buffer"`
	TotalRequired        decimal.Decimal `json:"total_required"`
}

// ContributorShareResponse is a contributor's share of a gift price.
type ContributorShareResponse struct {
	UserID          string          `json:"user_id"`
	Amount          decimal.Decimal `json:"amount"`
	IndividualShare decimal.Decimal `json:"individual_share"`
	Percentage      decimal.Decimal `json:"percentage"`
}

// AllocateResponse is returned by the allocation endpoint.
type AllocateResponse struct {
	Shares []ContributorShareResponse `json:"shares"`
}

// ContributorOutcomeResponse is what a resolver decided for one contributor.
type ContributorOutcomeResponse struct {
	UserID            string          `json:"user_id"`
	Amount            decimal.Decimal `json:"amount"`
	Refund            decimal.Decimal `json:"refund"`
	FinalContribution decimal.Decimal `json:"final_contribution"`
}

// OverfundingResponse is the outcome of an overfunding policy.
type OverfundingResponse struct {
	TotalCollected  decimal.Decimal              `json:"total_collected"`
	TargetAmount    decimal.Decimal              `json:"target_amount"`
	Surplus         decimal.Decimal              `json:"surplus"`
	Policy          string                       `json:"policy"`
	Contributors    []ContributorOutcomeResponse `json:"contributors"`
	BonusGiftBudget *decimal.Decimal             `json:"bonus_gift_budget,omitempty"`
}

// AlternativeResponse is the alternative chosen for an underfunded item.
type AlternativeResponse struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	URL   string          `json:"url,omitempty"`
	Price decimal.Decimal `json:"price"`
}

// UnderfundingResponse is the outcome of an underfunding policy.
type UnderfundingResponse struct {
	TotalCollected   decimal.Decimal              `json:"total_collected"`
	TargetAmount     decimal.Decimal              `json:"target_amount"`
	Shortfall        decimal.Decimal              `json:"shortfall"`
	Policy           string                       `json:"policy"`
	Decision         string                       `json:"decision"`
	Contributors     []ContributorOutcomeResponse `json:"contributors"`
	Alternative      *AlternativeResponse         `json:"alternative,omitempty"`
	Savings          *decimal.Decimal             `json:"savings,omitempty"`
	NeededAdditional *decimal.Decimal             `json:"needed_additional,omitempty"`
}

// ContributionResponse is an aggregated contribution.
type ContributionResponse struct {
	UserID string          `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

// PriceChangeResponse is the recommendation after a price change. Only the
// amounts relevant to the recommendation are set.
type PriceChangeResponse struct {
	OriginalPrice       decimal.Decimal        `json:"original_price"`
	CurrentPrice        decimal.Decimal        `json:"current_price"`
	PriceDifference     decimal.Decimal        `json:"price_difference"`
	TotalCollected      decimal.Decimal        `json:"total_collected"`
	Contributors        []ContributionResponse `json:"contributors"`
	Recommendation      string                 `json:"recommendation"`
	Surplus             *decimal.Decimal       `json:"surplus,omitempty"`
	UpgradeBudget       *decimal.Decimal       `json:"upgrade_budget,omitempty"`
	ComplementaryBudget *decimal.Decimal       `json:"complementary_budget,omitempty"`
	RefundAmount        *decimal.Decimal       `json:"refund_amount,omitempty"`
	Shortfall           *decimal.Decimal       `json:"shortfall,omitempty"`
	NewTarget           *decimal.Decimal       `json:"new_target,omitempty"`
	AdditionalNeeded    *decimal.Decimal       `json:"additional_needed,omitempty"`
}

// WishlistItemResponse echoes a wishlist item with its resolved priority.
type WishlistItemResponse struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Priority     string          `json:"priority"`
	PooledAmount decimal.Decimal `json:"pooled_amount"`
}

// PlannedPurchaseResponse is a wishlist item with its purchase decision.
type PlannedPurchaseResponse struct {
	Item             WishlistItemResponse `json:"item"`
	CanPurchase      bool                 `json:"can_purchase"`
	Decision         string               `json:"decision"`
	AdditionalNeeded *decimal.Decimal     `json:"additional_needed,omitempty"`
	BudgetAvailable  *decimal.Decimal     `json:"budget_available,omitempty"`
}

// PurchasePlanResponse is returned by the purchase plan endpoint.
type PurchasePlanResponse struct {
	Plan []PlannedPurchaseResponse `json:"plan"`
}

// FraudCheckResponse is the verdict of a market price check.
type FraudCheckResponse struct {
	GiftPrice            decimal.Decimal  `json:"gift_price"`
	AverageMarketPrice   *decimal.Decimal `json:"average_market_price,omitempty"`
	PriceRangeMin        *decimal.Decimal `json:"price_range_min,omitempty"`
	PriceRangeMax        *decimal.Decimal `json:"price_range_max,omitempty"`
	DifferencePercentage *decimal.Decimal `json:"difference_percentage,omitempty"`
	Assessment           string           `json:"assessment"`
	Reason               string           `json:"reason"`
}

// FundingSummaryResponse is a wishlist funding overview.
type FundingSummaryResponse struct {
	TotalValue decimal.Decimal      `json:"total_value"`
	Funded     decimal.Decimal      `json:"funded"`
	Remaining  decimal.Decimal      `json:"remaining"`
	Progress   decimal.Decimal      `json:"progress"`
	Status     string               `json:"status"`
	Fees       FeeBreakdownResponse `json:"fees"`
}

// SuggestedAmountResponse is one contribution option.
type SuggestedAmountResponse struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// ItemContributionPlanResponse is the plan for one item that needs money.
type ItemContributionPlanResponse struct {
	ItemID       string                    `json:"item_id"`
	Title        string                    `json:"title"`
	Remaining    decimal.Decimal           `json:"remaining"`
	Participants int                       `json:"participants"`
	PerPerson    decimal.Decimal           `json:"per_person"`
	Suggestions  []SuggestedAmountResponse `json:"suggestions"`
}

// ContributionPlanResponse is the plan for raising the rest of a wishlist.
type ContributionPlanResponse struct {
	Summary               FundingSummaryResponse         `json:"summary"`
	AverageContribution   decimal.Decimal                `json:"average_contribution"`
	PotentialFunding      decimal.Decimal                `json:"potential_funding"`
	PotentialContributors int                            `json:"potential_contributors"`
	Items                 []ItemContributionPlanResponse `json:"items"`
}
