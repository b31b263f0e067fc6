package pool

import (
	"testing"

	"github.com/eshaffer321/giftpool/internal/domain/allocator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageContribution(t *testing.T) {
	assert.Equal(t, "40", AverageContribution(dec("80"), 2).String())
	assert.Equal(t, "25", AverageContribution(dec("80"), 0).String())
	assert.Equal(t, "25", AverageContribution(decimal.Zero, 3).String())
}

func TestPotentialFunding(t *testing.T) {
	participants := []Participant{
		{UserID: "alice", RSVP: RSVPYes},
		{UserID: "bob", RSVP: RSVPMaybe},
		{UserID: "carol", RSVP: RSVPNo},
		{UserID: "dave", RSVP: RSVPNotResponded},
		{UserID: "erin", RSVP: RSVPYes},
	}

	potential, count := PotentialFunding(participants, []string{"erin"}, dec("40"))

	assert.Equal(t, 2, count)
	assert.Equal(t, "80", potential.String())
}

func TestPotentialFunding_EveryoneContributed(t *testing.T) {
	participants := []Participant{{UserID: "alice", RSVP: RSVPYes}}

	potential, count := PotentialFunding(participants, []string{"alice"}, dec("40"))

	assert.Equal(t, 0, count)
	assert.True(t, potential.IsZero())
}

func TestSmartSplit(t *testing.T) {
	tests := []struct {
		name         string
		remaining    string
		average      string
		participants int
		perPerson    string
	}{
		{"rounds participant count", "70", "25", 3, "23.33"},
		{"at least one person", "10", "25", 1, "10"},
		{"half rounds to even", "62.5", "25", 2, "31.25"},
		{"exact multiple", "100", "25", 4, "25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split, err := SmartSplit(dec(tt.remaining), dec(tt.average))
			require.NoError(t, err)

			assert.Equal(t, tt.participants, split.Participants)
			assert.Equal(t, tt.perPerson, split.PerPerson.String())
			assert.Equal(t, dec(tt.remaining).String(), split.Remaining.String())
		})
	}
}

func TestSmartSplit_InvalidInputs(t *testing.T) {
	_, err := SmartSplit(decimal.Zero, dec("25"))
	assert.ErrorIs(t, err, allocator.ErrInvalidInput)

	_, err = SmartSplit(dec("50"), decimal.Zero)
	assert.ErrorIs(t, err, allocator.ErrInvalidInput)
}

func TestSuggestAmounts(t *testing.T) {
	t.Run("wallet covers everything", func(t *testing.T) {
		amounts, err := SuggestAmounts(dec("100"), dec("1000"))
		require.NoError(t, err)

		require.Len(t, amounts, 4)
		assert.Equal(t, "Full amount", amounts[0].Label)
		assert.Equal(t, "100", amounts[0].Amount.String())
		assert.Equal(t, "Half", amounts[1].Label)
		assert.Equal(t, "50", amounts[1].Amount.String())
		assert.Equal(t, "25%", amounts[2].Label)
		assert.Equal(t, "25", amounts[2].Amount.String())
		assert.Equal(t, "10%", amounts[3].Label)
		assert.Equal(t, "10", amounts[3].Amount.String())
	})

	t.Run("wallet limits options", func(t *testing.T) {
		amounts, err := SuggestAmounts(dec("100"), dec("30"))
		require.NoError(t, err)

		require.Len(t, amounts, 2)
		assert.Equal(t, "25%", amounts[0].Label)
		assert.Equal(t, "10%", amounts[1].Label)
	})

	t.Run("exact balance is enough", func(t *testing.T) {
		amounts, err := SuggestAmounts(dec("80"), dec("80"))
		require.NoError(t, err)
		assert.Len(t, amounts, 4)
	})

	t.Run("nothing remaining", func(t *testing.T) {
		amounts, err := SuggestAmounts(decimal.Zero, dec("80"))
		require.NoError(t, err)
		assert.Empty(t, amounts)
	})

	t.Run("negative wallet", func(t *testing.T) {
		_, err := SuggestAmounts(dec("80"), dec("-1"))
		assert.ErrorIs(t, err, allocator.ErrInvalidInput)
	})
}
