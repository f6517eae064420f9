package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Carrier is a transportation company operating trailers. It carries
// the detention billing configuration consulted by the accrual engine.
type Carrier struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name"`
	Code         string `json:"code" gorm:"uniqueIndex"`
	OwnsTractors bool   `json:"owns_tractors"`
	OwnsTrailers bool   `json:"owns_trailers"`

	DetentionEnabled    bool            `json:"detention_enabled"`
	FreeTimeHours       int             `json:"free_time_hours"`
	ChargeIntervalHours int             `json:"charge_interval_hours"`
	ChargePerInterval   decimal.Decimal `json:"charge_per_interval" gorm:"type:numeric"`
	MaxChargeEnabled    bool            `json:"max_charge_enabled"`
	MaxCharge           decimal.Decimal `json:"max_charge" gorm:"type:numeric"`

	EligibleSiteIDs []string  `json:"eligible_site_ids" gorm:"serializer:json"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EligibleFor reports whether the carrier may operate at the site.
func (c *Carrier) EligibleFor(siteID string) bool {
	for _, id := range c.EligibleSiteIDs {
		if id == siteID {
			return true
		}
	}
	return false
}

// DetentionCharge is the read-side result of a detention fee
// calculation. It mutates nothing.
type DetentionCharge struct {
	TrailerID         string          `json:"trailer_id"`
	CarrierID         string          `json:"carrier_id"`
	HoursOverdue      int64           `json:"hours_overdue"`
	Charge            decimal.Decimal `json:"charge"`
	MaxChargeExceeded bool            `json:"max_charge_exceeded"`
}

// CalculateDetentionCharge computes the fee owed for the given overdue
// hours under the carrier's policy: full elapsed intervals times the
// per-interval rate, capped at the maximum charge when one is enabled.
func CalculateDetentionCharge(hoursOverdue int64, c *Carrier) DetentionCharge {
	charge := DetentionCharge{CarrierID: c.ID, HoursOverdue: hoursOverdue}
	if hoursOverdue <= 0 || c.ChargeIntervalHours <= 0 {
		charge.Charge = decimal.Zero
		return charge
	}

	intervals := hoursOverdue / int64(c.ChargeIntervalHours)
	charge.Charge = c.ChargePerInterval.Mul(decimal.NewFromInt(intervals))

	if c.MaxChargeEnabled && charge.Charge.GreaterThan(c.MaxCharge) {
		charge.Charge = c.MaxCharge
		charge.MaxChargeExceeded = true
	}
	return charge
}
