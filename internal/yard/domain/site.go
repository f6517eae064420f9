package domain

import "time"

// Site is one physical yard facility.
type Site struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Code      string    `json:"code" gorm:"uniqueIndex"`
	Address   string    `json:"address,omitempty"`
	City      string    `json:"city,omitempty"`
	State     string    `json:"state,omitempty"`
	ZipCode   string    `json:"zip_code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GateFunction restricts what a gate may be used for.
type GateFunction string

const (
	GateCheckIn    GateFunction = "CHECK_IN"
	GateCheckOut   GateFunction = "CHECK_OUT"
	GateCheckInOut GateFunction = "CHECK_IN_OUT"
)

// SupportsCheckIn reports whether a gate with this function may admit
// trailers.
func (f GateFunction) SupportsCheckIn() bool {
	return f == GateCheckIn || f == GateCheckInOut
}

// SupportsCheckOut reports whether a gate with this function may release
// trailers.
func (f GateFunction) SupportsCheckOut() bool {
	return f == GateCheckOut || f == GateCheckInOut
}

// Gate is a site entry or exit point.
type Gate struct {
	ID        string       `json:"id" gorm:"primaryKey"`
	Name      string       `json:"name"`
	Code      string       `json:"code" gorm:"uniqueIndex"`
	Function  GateFunction `json:"function"`
	SiteID    string       `json:"site_id" gorm:"index"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
