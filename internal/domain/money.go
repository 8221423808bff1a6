package domain

import (
	"errors"
	"fmt"
	"math"
)

var ErrNegativeBonus = errors.New("solo earnings below original share")

// Cents is a money amount in integer cents. Server payloads carry raw
// numbers; constructing a Cents value is where the numeric invariants
// get checked instead of trusting them downstream.
type Cents int64

func CentsFromDollars(d float64) Cents {
	return Cents(math.Round(d * 100))
}

func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

func (c Cents) IsZero() bool { return c == 0 }

func (c Cents) String() string {
	return fmt.Sprintf("$%.2f", c.Dollars())
}

// SplitFee divides a job total into platform fee and cleaner earnings.
// fee + earnings == total always holds: the fee is rounded, the
// earnings take the remainder.
func SplitFee(total Cents, feePercent float64) (fee, earnings Cents) {
	fee = Cents(math.Round(float64(total) * feePercent))
	return fee, total - fee
}

// CleanerPay computes a cleaner's payout for a base price. Rounding
// happens at whole-dollar granularity: a $150 job at 10% fee pays
// exactly $135.
func CleanerPay(base Cents, feePercent float64) Cents {
	dollars := math.Round(base.Dollars() * (1 - feePercent))
	return CentsFromDollars(dollars)
}

// BonusAmount is the incentive for finishing an under-staffed job
// alone: full solo payment minus what the cleaner was already owed.
// Never negative; a server payload violating that is rejected here
// rather than rendered.
func BonusAmount(soloEarnings, originalShare Cents) (Cents, error) {
	if soloEarnings < originalShare {
		return 0, ErrNegativeBonus
	}
	return soloEarnings - originalShare, nil
}
