package allocator

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateContributions_Proportional(t *testing.T) {
	a := newTestAllocator(t)
	contributions := []Contribution{
		{UserID: "user1", Amount: dec("50")},
		{UserID: "user2", Amount: dec("30")},
		{UserID: "user3", Amount: dec("20")},
	}

	shares, err := a.AllocateContributions(contributions, dec("100"))
	require.NoError(t, err)
	require.Len(t, shares, 3)

	assert.Equal(t, "user1", shares[0].UserID)
	assertDecimal(t, "50", shares[0].IndividualShare)
	assertDecimal(t, "50", shares[0].Percentage)
	assertDecimal(t, "30", shares[1].IndividualShare)
	assertDecimal(t, "30", shares[1].Percentage)
	assertDecimal(t, "20", shares[2].IndividualShare)
	assertDecimal(t, "20", shares[2].Percentage)
}

func TestAllocateContributions_ScalesToGiftPrice(t *testing.T) {
	// $150 collected toward a $120 gift: each share is 80% of the amount
	a := newTestAllocator(t)
	contributions := []Contribution{
		{UserID: "user1", Amount: dec("100")},
		{UserID: "user2", Amount: dec("50")},
	}

	shares, err := a.AllocateContributions(contributions, dec("120"))
	require.NoError(t, err)

	assertDecimal(t, "80", shares[0].IndividualShare)
	assertDecimal(t, "40", shares[1].IndividualShare)
	assert.InDelta(t, 66.6667, shares[0].Percentage.InexactFloat64(), 0.001)
	assert.InDelta(t, 33.3333, shares[1].Percentage.InexactFloat64(), 0.001)
	// Amount is carried through untouched
	assertDecimal(t, "100", shares[0].Amount)
}

func TestAllocateContributions_RoundingResidual(t *testing.T) {
	// Three equal thirds of $100 round to 33.33 each; the extra cent lands on one share
	a := newTestAllocator(t)
	contributions := []Contribution{
		{UserID: "user1", Amount: dec("10")},
		{UserID: "user2", Amount: dec("10")},
		{UserID: "user3", Amount: dec("10")},
	}

	shares, err := a.AllocateContributions(contributions, dec("100"))
	require.NoError(t, err)

	assertDecimal(t, "33.34", shares[0].IndividualShare)
	assertDecimal(t, "33.33", shares[1].IndividualShare)
	assertDecimal(t, "33.33", shares[2].IndividualShare)
	assertDecimal(t, "100", sumShares(shares))
}

func TestAllocateContributions_SharesSumToGiftPrice(t *testing.T) {
	a := newTestAllocator(t)
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		n := rng.Intn(8) + 1
		contributions := make([]Contribution, n)
		for i := range contributions {
			contributions[i] = Contribution{
				UserID: string(rune('a' + i)),
				Amount: decimal.New(rng.Int63n(50000)+1, -2),
			}
		}
		giftPrice := decimal.New(rng.Int63n(100000), -2)

		shares, err := a.AllocateContributions(contributions, giftPrice)
		require.NoError(t, err)

		assert.InDelta(t, giftPrice.InexactFloat64(), sumShares(shares).InexactFloat64(), 1e-6,
			"run %d: shares should sum to gift price", run)
	}
}

func TestAllocateContributions_ZeroContributorKeepsZeroShare(t *testing.T) {
	a := newTestAllocator(t)
	contributions := []Contribution{
		{UserID: "user1", Amount: dec("40")},
		{UserID: "user2", Amount: dec("0")},
	}

	shares, err := a.AllocateContributions(contributions, dec("40"))
	require.NoError(t, err)

	assertDecimal(t, "40", shares[0].IndividualShare)
	assertDecimal(t, "0", shares[1].IndividualShare)
	assertDecimal(t, "0", shares[1].Percentage)
}

func TestAllocateContributions_Empty(t *testing.T) {
	a := newTestAllocator(t)

	shares, err := a.AllocateContributions([]Contribution{}, dec("100"))
	assert.Nil(t, shares)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "no contributions to allocate")
}

func TestAllocateContributions_AllZero(t *testing.T) {
	a := newTestAllocator(t)
	contributions := []Contribution{
		{UserID: "user1", Amount: dec("0")},
		{UserID: "user2", Amount: dec("0")},
	}

	_, err := a.AllocateContributions(contributions, dec("100"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAllocateContributions_InvalidInputs(t *testing.T) {
	a := newTestAllocator(t)

	tests := []struct {
		name          string
		contributions []Contribution
		giftPrice     string
	}{
		{
			name:          "negative gift price",
			contributions: []Contribution{{UserID: "user1", Amount: dec("10")}},
			giftPrice:     "-5",
		},
		{
			name:          "negative amount",
			contributions: []Contribution{{UserID: "user1", Amount: dec("-10")}},
			giftPrice:     "50",
		},
		{
			name: "duplicate user",
			contributions: []Contribution{
				{UserID: "user1", Amount: dec("10")},
				{UserID: "user1", Amount: dec("15")},
			},
			giftPrice: "50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := a.AllocateContributions(tt.contributions, dec(tt.giftPrice))
			assert.Nil(t, shares)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func sumShares(shares []ContributorShare) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.IndividualShare)
	}
	return sum
}
