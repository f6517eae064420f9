package domain

import "time"

// MoveType distinguishes the two physical repositioning tasks.
type MoveType string

const (
	// MoveSpot places a trailer at a door.
	MoveSpot MoveType = "SPOT"
	// MovePull removes a trailer from a door.
	MovePull MoveType = "PULL"
)

// ValidMoveType reports whether t is a known move type.
func ValidMoveType(t MoveType) bool {
	return t == MoveSpot || t == MovePull
}

// MoveStatus is the lifecycle state of a move request.
type MoveStatus string

const (
	MoveRequested  MoveStatus = "REQUESTED"
	MoveAssigned   MoveStatus = "ASSIGNED"
	MoveInProgress MoveStatus = "IN_PROGRESS"
	MoveCompleted  MoveStatus = "COMPLETED"
	MoveCancelled  MoveStatus = "CANCELLED"
)

var moveTransitions = map[MoveStatus][]MoveStatus{
	MoveRequested:  {MoveAssigned, MoveCancelled},
	MoveAssigned:   {MoveInProgress, MoveCancelled},
	MoveInProgress: {MoveCompleted, MoveCancelled},
	MoveCompleted:  {},
	MoveCancelled:  {},
}

// Active reports whether the move still needs spotter attention.
func (s MoveStatus) Active() bool {
	return s == MoveRequested || s == MoveAssigned || s == MoveInProgress
}

// ValidMoveStatus reports whether s is a known move status.
func ValidMoveStatus(s MoveStatus) bool {
	_, ok := moveTransitions[s]
	return ok
}

// LocationType names the kind of place a move starts or ends at.
type LocationType string

const (
	LocationYard LocationType = "YARD"
	LocationDoor LocationType = "DOOR"
	LocationGate LocationType = "GATE"
)

// ValidLocationType reports whether t is a known location type.
func ValidLocationType(t LocationType) bool {
	return t == LocationYard || t == LocationDoor || t == LocationGate
}

// MoveRequest is a task to relocate a trailer between two named
// locations, executed by a spotter.
type MoveRequest struct {
	ID                      string       `json:"id" gorm:"primaryKey"`
	SiteID                  string       `json:"site_id" gorm:"index"`
	TrailerID               string       `json:"trailer_id" gorm:"index"`
	MoveType                MoveType     `json:"move_type"`
	Status                  MoveStatus   `json:"status" gorm:"index"`
	SourceLocationType      LocationType `json:"source_location_type"`
	SourceLocationID        string       `json:"source_location_id"`
	DestinationLocationType LocationType `json:"destination_location_type"`
	DestinationLocationID   string       `json:"destination_location_id"`
	AssignedSpotterID       *string      `json:"assigned_spotter_id,omitempty" gorm:"index"`
	RequestedByID           string       `json:"requested_by_id"`
	RequestTime             time.Time    `json:"request_time"`
	AssignedTime            *time.Time   `json:"assigned_time,omitempty"`
	StartTime               *time.Time   `json:"start_time,omitempty"`
	CompletionTime          *time.Time   `json:"completion_time,omitempty"`
	Notes                   string       `json:"notes,omitempty"`
	CreatedAt               time.Time    `json:"created_at"`
	UpdatedAt               time.Time    `json:"updated_at"`
}

// Transition moves the request to the next status, failing when the
// transition table does not allow it.
func (m *MoveRequest) Transition(next MoveStatus) error {
	for _, allowed := range moveTransitions[m.Status] {
		if allowed == next {
			m.Status = next
			return nil
		}
	}
	return Invalidf("move request %s cannot transition from %s to %s", m.ID, m.Status, next)
}

// AppendNotes appends text onto any existing notes, newline-joined.
func (m *MoveRequest) AppendNotes(text string) {
	if m.Notes != "" {
		m.Notes += "\n" + text
	} else {
		m.Notes = text
	}
}
