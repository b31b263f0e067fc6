package allocator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidInput is returned for negative prices or amounts, missing
	// contributions, and totals that would divide by zero.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedPolicy is returned when a resolver receives a policy it
	// does not know.
	ErrUnsupportedPolicy = errors.New("unsupported policy")

	// ErrPreconditionViolation is returned when a resolver is called for the
	// wrong funding state (e.g. overfunding with less collected than needed).
	ErrPreconditionViolation = errors.New("precondition violation")
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

func preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrPreconditionViolation}, args...)...)
}

func requireNonNegative(name string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return invalidf("%s cannot be negative", name)
	}
	return nil
}

// sumContributions validates contributions and returns their total.
// Amounts must be non-negative and user IDs unique.
func sumContributions(contributions []Contribution) (decimal.Decimal, error) {
	total := decimal.Zero
	seen := make(map[string]bool, len(contributions))

	for _, c := range contributions {
		if c.Amount.IsNegative() {
			return decimal.Zero, invalidf("contribution from %q cannot be negative", c.UserID)
		}
		if seen[c.UserID] {
			return decimal.Zero, invalidf("duplicate contributor %q, aggregate contributions per user first", c.UserID)
		}
		seen[c.UserID] = true
		total = total.Add(c.Amount)
	}

	return total, nil
}
