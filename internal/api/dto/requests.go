package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money fields accept JSON numbers or strings ("59.99") and are decoded
// without going through float64.

// ContributionRequest is one ledger row. Rows from the same user are summed.
type ContributionRequest struct {
	UserID  string          `json:"user_id"`
	Amount  decimal.Decimal `json:"amount"`
	EventID string          `json:"event_id,omitempty"`
	ItemID  string          `json:"item_id,omitempty"`
	Date    *time.Time      `json:"date,omitempty"`
}

// AlternativeRequest is a cheaper option for an underfunded item.
type AlternativeRequest struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	URL   string          `json:"url,omitempty"`
	Price decimal.Decimal `json:"price"`
}

// WishlistItemRequest is a wishlist entry. Priority is "high", "medium" or
// "low"; anything else counts as medium.
type WishlistItemRequest struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Priority     string          `json:"priority,omitempty"`
	PooledAmount decimal.Decimal `json:"pooled_amount"`
}

// ParticipantRequest is an invited participant and their RSVP.
type ParticipantRequest struct {
	UserID string `json:"user_id"`
	RSVP   string `json:"rsvp"`
}

// FeesRequest asks for the fee breakdown of a gift price.
type FeesRequest struct {
	GiftPrice decimal.Decimal `json:"gift_price"`
}

// AllocateRequest asks for proportional shares of a gift price.
type AllocateRequest struct {
	GiftPrice     decimal.Decimal       `json:"gift_price"`
	Contributions []ContributionRequest `json:"contributions"`
}

// OverfundingRequest asks how to handle a surplus. Policy defaults to
// proportional_refund.
type OverfundingRequest struct {
	TotalCollected decimal.Decimal       `json:"total_collected"`
	TargetAmount   decimal.Decimal       `json:"target_amount"`
	Contributions  []ContributionRequest `json:"contributions"`
	Policy         string                `json:"policy,omitempty"`
}

// UnderfundingRequest asks how to handle a shortfall. Policy defaults to
// refund.
type UnderfundingRequest struct {
	TotalCollected decimal.Decimal       `json:"total_collected"`
	TargetAmount   decimal.Decimal       `json:"target_amount"`
	Contributions  []ContributionRequest `json:"contributions"`
	Alternatives   []AlternativeRequest  `json:"alternatives,omitempty"`
	Policy         string                `json:"policy,omitempty"`
}

// PriceChangeRequest asks what to do after a gift's price moved.
type PriceChangeRequest struct {
	OriginalPrice  decimal.Decimal       `json:"original_price"`
	CurrentPrice   decimal.Decimal       `json:"current_price"`
	TotalCollected decimal.Decimal       `json:"total_collected"`
	Contributions  []ContributionRequest `json:"contributions"`
}

// PurchasePlanRequest asks which wishlist items to buy with what was raised.
// EventDate is YYYY-MM-DD and optional.
type PurchasePlanRequest struct {
	Items       []WishlistItemRequest `json:"items"`
	TotalRaised decimal.Decimal       `json:"total_raised"`
	EventDate   string                `json:"event_date,omitempty"`
}

// FraudCheckRequest compares a listed price with market prices.
type FraudCheckRequest struct {
	GiftPrice    decimal.Decimal   `json:"gift_price"`
	MarketPrices []decimal.Decimal `json:"market_prices"`
}

// FundingSummaryRequest asks for a wishlist funding overview.
type FundingSummaryRequest struct {
	Items []WishlistItemRequest `json:"items"`
}

// ContributionPlanRequest asks how the rest of a wishlist could be raised.
type ContributionPlanRequest struct {
	Items         []WishlistItemRequest `json:"items"`
	Contributions []ContributionRequest `json:"contributions"`
	Participants  []ParticipantRequest  `json:"participants"`
	WalletBalance decimal.Decimal       `json:"wallet_balance"`
}
