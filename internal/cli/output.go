package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
)

// PrintHeader prints the application header
func PrintHeader(w io.Writer, name string) {
	fmt.Fprintf(w, "giftpool: %s\n", name)
	fmt.Fprintln(w, strings.Repeat("-", 60))
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// PrintReport prints every section of a scenario report that applied.
func PrintReport(w io.Writer, r *Report) {
	PrintHeader(w, r.Name)

	if r.Fees != nil {
		fmt.Fprintf(w, "Gift: %s | Platform: %s | Processing: %s | Buffer: %s | Required: %s\n",
			money(r.Fees.GiftPrice),
			money(r.Fees.PlatformFee),
			money(r.Fees.PaymentProcessingFee),
			money(r.Fees.ExchangeBuffer),
			money(r.Fees.TotalRequired))
		fmt.Fprintf(w, "Collected: %s\n", money(r.TotalCollected))
	}

	if len(r.Shares) > 0 {
		fmt.Fprintln(w, "\nShares:")
		for _, s := range r.Shares {
			fmt.Fprintf(w, "  %-12s put in %10s  share %10s  (%s%%)\n",
				s.UserID, money(s.Amount), money(s.IndividualShare), s.Percentage.StringFixed(1))
		}
	}

	if o := r.Overfunding; o != nil {
		fmt.Fprintf(w, "\nOverfunded by %s (policy: %s)\n", money(o.Surplus), o.Policy)
		for _, c := range o.Contributors {
			fmt.Fprintf(w, "  %-12s refund %10s  keeps %10s\n", c.UserID, money(c.Refund), money(c.FinalContribution))
		}
		if !o.BonusGiftBudget.IsZero() {
			fmt.Fprintf(w, "  Bonus gift budget: %s\n", money(o.BonusGiftBudget))
		}
	}

	if u := r.Underfunding; u != nil {
		fmt.Fprintf(w, "\nShort by %s (policy: %s) -> %s\n", money(u.Shortfall), u.Policy, u.Decision)
		for _, c := range u.Contributors {
			fmt.Fprintf(w, "  %-12s refund %10s  keeps %10s\n", c.UserID, money(c.Refund), money(c.FinalContribution))
		}
		if u.Alternative != nil {
			fmt.Fprintf(w, "  Buy %q for %s, %s left over\n", u.Alternative.Title, money(u.Alternative.Price), money(u.Savings))
		}
		if u.NeededAdditional.IsPositive() {
			fmt.Fprintf(w, "  Still needed: %s\n", money(u.NeededAdditional))
		}
	}

	if p := r.PriceChange; p != nil {
		fmt.Fprintf(w, "\nPrice moved %s -> %s: %s\n", money(p.OriginalPrice), money(p.CurrentPrice), p.Recommendation)
		switch {
		case p.AdditionalNeeded.IsPositive():
			fmt.Fprintf(w, "  Additional needed: %s\n", money(p.AdditionalNeeded))
		case p.Surplus.IsPositive():
			fmt.Fprintf(w, "  Surplus: %s\n", money(p.Surplus))
		}
	}

	if f := r.Fraud; f != nil {
		fmt.Fprintf(w, "\nPrice check: %s (%s)\n", f.Assessment, f.Reason)
		if f.Assessment != allocator.AssessmentUnknown {
			fmt.Fprintf(w, "  Market average %s, range %s-%s, off by %s%%\n",
				money(f.AverageMarketPrice), money(f.PriceRange.Min), money(f.PriceRange.Max),
				f.DifferencePercentage.StringFixed(1))
		}
	}

	if len(r.Purchases) > 0 {
		fmt.Fprintln(w, "\nPurchase plan:")
		for i, p := range r.Purchases {
			line := fmt.Sprintf("  %d. %-24s %10s  [%s] %s", i+1, p.Item.Title, money(p.Item.Price), p.Item.Priority, p.Decision)
			switch {
			case p.AdditionalNeeded.IsPositive():
				line += fmt.Sprintf(" (needs %s more)", money(p.AdditionalNeeded))
			case !p.CanPurchase:
				line += fmt.Sprintf(" (budget %s)", money(p.BudgetAvailable))
			}
			fmt.Fprintln(w, line)
		}
	}

	if plan := r.Plan; plan != nil {
		s := plan.Summary
		fmt.Fprintf(w, "\nWishlist: %s of %s funded (%s%%), %s\n",
			money(s.Funded), money(s.TotalValue), s.Progress.Mul(decimal.NewFromInt(100)).StringFixed(0), s.Status)
		fmt.Fprintf(w, "Average contribution %s, %d more could add about %s\n",
			money(plan.AverageContribution), plan.PotentialContributors, money(plan.PotentialFunding))
		for _, item := range plan.Items {
			fmt.Fprintf(w, "  %-24s needs %10s: %d x %s\n",
				item.Title, money(item.Remaining), item.Split.Participants, money(item.Split.PerPerson))
			for _, sug := range item.Suggestions {
				fmt.Fprintf(w, "      %-12s %10s\n", sug.Label, money(sug.Amount))
			}
		}
	}

	fmt.Fprintln(w, strings.Repeat("-", 60))
}
