package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanerPay(t *testing.T) {
	base := CentsFromDollars(150)
	pay := CleanerPay(base, 0.10)
	assert.Equal(t, CentsFromDollars(135), pay)
	// the platform keeps exactly the difference
	assert.Equal(t, CentsFromDollars(15), base-pay)
}

func TestSplitFee_Reconstructs(t *testing.T) {
	total := CentsFromDollars(199.99)
	fee, earnings := SplitFee(total, 0.13)
	assert.Equal(t, total, fee+earnings)
	assert.Greater(t, int64(fee), int64(0))
}

func TestBonusAmount(t *testing.T) {
	b, err := BonusAmount(CentsFromDollars(180), CentsFromDollars(90))
	assert.NoError(t, err)
	assert.Equal(t, CentsFromDollars(90), b)

	_, err = BonusAmount(CentsFromDollars(50), CentsFromDollars(90))
	assert.ErrorIs(t, err, ErrNegativeBonus)
}

func TestCentsRoundTrip(t *testing.T) {
	assert.Equal(t, Cents(13550), CentsFromDollars(135.5))
	assert.Equal(t, 135.5, Cents(13550).Dollars())
	assert.Equal(t, "$135.50", Cents(13550).String())
}
