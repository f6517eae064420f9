package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func detentionCarrier() *Carrier {
	return &Carrier{
		ID:                  "c1",
		Name:                "Acme Freight",
		DetentionEnabled:    true,
		FreeTimeHours:       24,
		ChargeIntervalHours: 4,
		ChargePerInterval:   decimal.NewFromInt(50),
	}
}

func TestCalculateDetentionCharge(t *testing.T) {
	t.Run("NothingOwedBeforeOverdue", func(t *testing.T) {
		charge := CalculateDetentionCharge(0, detentionCarrier())
		assert.True(t, charge.Charge.IsZero())
		assert.False(t, charge.MaxChargeExceeded)
	})

	t.Run("PartialIntervalNotBilled", func(t *testing.T) {
		charge := CalculateDetentionCharge(3, detentionCarrier())
		assert.True(t, charge.Charge.IsZero())
	})

	t.Run("FullIntervalsBilled", func(t *testing.T) {
		// 10 overdue hours at 4-hour intervals is 2 full intervals.
		charge := CalculateDetentionCharge(10, detentionCarrier())
		assert.True(t, charge.Charge.Equal(decimal.NewFromInt(100)), "got %s", charge.Charge)
	})

	t.Run("CappedAtMaxCharge", func(t *testing.T) {
		c := detentionCarrier()
		c.MaxChargeEnabled = true
		c.MaxCharge = decimal.NewFromInt(120)

		charge := CalculateDetentionCharge(40, c)
		assert.True(t, charge.Charge.Equal(decimal.NewFromInt(120)), "got %s", charge.Charge)
		assert.True(t, charge.MaxChargeExceeded)
	})

	t.Run("ZeroIntervalPolicyChargesNothing", func(t *testing.T) {
		c := detentionCarrier()
		c.ChargeIntervalHours = 0
		charge := CalculateDetentionCharge(40, c)
		assert.True(t, charge.Charge.IsZero())
	})
}

func TestCarrier_EligibleFor(t *testing.T) {
	c := &Carrier{EligibleSiteIDs: []string{"site-1", "site-2"}}
	assert.True(t, c.EligibleFor("site-1"))
	assert.False(t, c.EligibleFor("site-3"))
	assert.False(t, (&Carrier{}).EligibleFor("site-1"))
}
