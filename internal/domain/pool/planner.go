package pool

import (
	"fmt"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
)

// DefaultAverageContribution is assumed when nobody has contributed yet.
var DefaultAverageContribution = decimal.NewFromInt(25)

// RSVP is a participant's answer to an event invitation.
type RSVP string

const (
	RSVPYes          RSVP = "yes"
	RSVPMaybe        RSVP = "maybe"
	RSVPNo           RSVP = "no"
	RSVPNotResponded RSVP = "not responded"
)

// Participant is an entry from the participant directory.
type Participant struct {
	UserID string
	RSVP   RSVP
}

// Confirmed reports whether the participant said yes or maybe.
func (p Participant) Confirmed() bool {
	return p.RSVP == RSVPYes || p.RSVP == RSVPMaybe
}

// Split is a plan for raising the rest of an item's price.
type Split struct {
	Remaining    decimal.Decimal
	Participants int
	PerPerson    decimal.Decimal
}

// SuggestedAmount is one contribution option shown to a user.
type SuggestedAmount struct {
	Label  string
	Amount decimal.Decimal
}

// AverageContribution is funded / contributorCount, or
// DefaultAverageContribution when there are no contributors or nothing has
// been funded.
func AverageContribution(funded decimal.Decimal, contributorCount int) decimal.Decimal {
	if contributorCount <= 0 || !funded.IsPositive() {
		return DefaultAverageContribution
	}
	return funded.Div(decimal.NewFromInt(int64(contributorCount)))
}

// PotentialFunding estimates what confirmed participants who have not
// contributed yet could add at the average contribution.
func PotentialFunding(participants []Participant, contributorIDs []string, average decimal.Decimal) (decimal.Decimal, int) {
	contributed := make(map[string]struct{}, len(contributorIDs))
	for _, id := range contributorIDs {
		contributed[id] = struct{}{}
	}

	count := 0
	for _, p := range participants {
		if !p.Confirmed() {
			continue
		}
		if _, ok := contributed[p.UserID]; ok {
			continue
		}
		count++
	}

	return average.Mul(decimal.NewFromInt(int64(count))), count
}

// SmartSplit divides remaining between as many people as it would take at
// the average contribution, never fewer than one. The participant count uses
// banker's rounding; the per-person amount is rounded to cents.
func SmartSplit(remaining, average decimal.Decimal) (*Split, error) {
	if !remaining.IsPositive() {
		return nil, fmt.Errorf("%w: nothing left to split (%s)", allocator.ErrInvalidInput, remaining)
	}
	if !average.IsPositive() {
		return nil, fmt.Errorf("%w: average contribution must be positive (%s)", allocator.ErrInvalidInput, average)
	}

	participants := remaining.Div(average).RoundBank(0).IntPart()
	if participants < 1 {
		participants = 1
	}

	return &Split{
		Remaining:    remaining,
		Participants: int(participants),
		PerPerson:    remaining.Div(decimal.NewFromInt(participants)).Round(2),
	}, nil
}

var suggestions = []struct {
	label    string
	fraction decimal.Decimal
}{
	{"Full amount", decimal.NewFromInt(1)},
	{"Half", decimal.NewFromFloat(0.5)},
	{"25%", decimal.NewFromFloat(0.25)},
	{"10%", decimal.NewFromFloat(0.1)},
}

// SuggestAmounts offers the full remaining amount, half, 25% and 10%,
// keeping only the options walletBalance can cover.
func SuggestAmounts(remaining, walletBalance decimal.Decimal) ([]SuggestedAmount, error) {
	if remaining.IsNegative() {
		return nil, fmt.Errorf("%w: remaining amount is negative (%s)", allocator.ErrInvalidInput, remaining)
	}
	if walletBalance.IsNegative() {
		return nil, fmt.Errorf("%w: wallet balance is negative (%s)", allocator.ErrInvalidInput, walletBalance)
	}
	if remaining.IsZero() {
		return nil, nil
	}

	var out []SuggestedAmount
	for _, s := range suggestions {
		amount := remaining.Mul(s.fraction).Round(2)
		if walletBalance.GreaterThanOrEqual(amount) {
			out = append(out, SuggestedAmount{Label: s.label, Amount: amount})
		}
	}
	return out, nil
}
