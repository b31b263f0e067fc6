package allocator

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Priority ranks wishlist items. Higher values are bought first.
type Priority int

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

// ParsePriority maps a wishlist priority label to its value.
// Unknown or empty labels are treated as medium.
func ParsePriority(label string) Priority {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// String returns the wishlist label for the priority.
func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "high"
	case PriorityLow:
		return "low"
	default:
		return "medium"
	}
}

// WishlistItem is an item as supplied by the wishlist store.
type WishlistItem struct {
	ID           string
	Title        string
	Price        decimal.Decimal
	Priority     Priority // zero means medium
	PooledAmount decimal.Decimal
}

// PlannedPurchase is a wishlist item decorated with its purchase decision.
type PlannedPurchase struct {
	Item        WishlistItem
	CanPurchase bool
	Decision    PurchaseDecision

	// AdditionalNeeded is set for DecisionSuggestTopUp.
	AdditionalNeeded decimal.Decimal

	// BudgetAvailable is set for DecisionSuggestAlternative.
	BudgetAvailable decimal.Decimal
}

// PrioritizePurchases orders items for purchase and decides, under a running
// budget, which ones to buy.
//
// Items are sorted (stable, descending) by:
//  1. priority
//  2. whether the item fits the whole raised amount
//  3. price / total_raised for items that fit, so larger purchases go first
//
// The walk then buys every item that fits the remaining budget. An item that
// does not fit suggests a top-up when at most 15% of its price is missing,
// otherwise an alternative. Declined items leave the budget untouched, so a
// cheaper item further down can still use it.
//
// eventDate is accepted for urgency weighting but currently has no effect.
//
// The input slice is not modified.
func (a *Allocator) PrioritizePurchases(items []WishlistItem, totalRaised decimal.Decimal, eventDate time.Time) ([]PlannedPurchase, error) {
	if err := requireNonNegative("total raised", totalRaised); err != nil {
		return nil, err
	}

	type ranked struct {
		item       WishlistItem
		affordable bool
		fraction   decimal.Decimal
	}

	sorted := make([]ranked, len(items))
	for i, item := range items {
		if !item.Price.IsPositive() {
			return nil, invalidf("item %q must have a positive price", item.Title)
		}
		if item.PooledAmount.IsNegative() {
			return nil, invalidf("item %q has a negative pooled amount", item.Title)
		}
		switch item.Priority {
		case 0:
			item.Priority = PriorityMedium
		case PriorityLow, PriorityMedium, PriorityHigh:
		default:
			return nil, invalidf("item %q has priority %d, want 1-3", item.Title, int(item.Priority))
		}

		r := ranked{item: item, fraction: decimal.Zero}
		if item.Price.LessThanOrEqual(totalRaised) {
			r.affordable = true
			r.fraction = item.Price.Div(totalRaised)
		}
		sorted[i] = r
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		x, y := sorted[i], sorted[j]
		if x.item.Priority != y.item.Priority {
			return x.item.Priority > y.item.Priority
		}
		if x.affordable != y.affordable {
			return x.affordable
		}
		return x.fraction.GreaterThan(y.fraction)
	})

	remaining := totalRaised
	plan := make([]PlannedPurchase, len(sorted))
	for i, r := range sorted {
		price := r.item.Price
		planned := PlannedPurchase{
			Item:             r.item,
			AdditionalNeeded: decimal.Zero,
			BudgetAvailable:  decimal.Zero,
		}

		switch missing := price.Sub(remaining); {
		case !missing.IsPositive():
			planned.CanPurchase = true
			planned.Decision = DecisionBuy
			remaining = remaining.Sub(price)
		case missing.LessThanOrEqual(price.Mul(topUpThreshold)):
			planned.Decision = DecisionSuggestTopUp
			planned.AdditionalNeeded = missing
		default:
			planned.Decision = DecisionSuggestAlternative
			planned.BudgetAvailable = remaining
		}

		plan[i] = planned
	}

	return plan, nil
}
