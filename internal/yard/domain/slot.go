package domain

import "time"

// SlotStatus is the occupancy state shared by doors and yard locations.
type SlotStatus string

const (
	SlotAvailable    SlotStatus = "AVAILABLE"
	SlotOccupied     SlotStatus = "OCCUPIED"
	SlotOutOfService SlotStatus = "OUT_OF_SERVICE"
)

// Door is a dock door a trailer can be spotted at. Status and occupant
// are always updated together.
type Door struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name"`
	Code             string     `json:"code" gorm:"uniqueIndex"`
	DockID           string     `json:"dock_id" gorm:"index"`
	Status           SlotStatus `json:"status"`
	CurrentTrailerID *string    `json:"current_trailer_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// YardLocation is a parking spot in the yard. Position coordinates feed
// the yard map.
type YardLocation struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	Name             string     `json:"name"`
	Code             string     `json:"code" gorm:"uniqueIndex"`
	SiteID           string     `json:"site_id" gorm:"index"`
	Status           SlotStatus `json:"status"`
	CurrentTrailerID *string    `json:"current_trailer_id,omitempty"`
	PositionX        *float64   `json:"position_x,omitempty"`
	PositionY        *float64   `json:"position_y,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Dock groups doors on a site.
type Dock struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Code      string    `json:"code" gorm:"uniqueIndex"`
	SiteID    string    `json:"site_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
