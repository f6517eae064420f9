package domain

import "time"

// LoadStatus describes how much freight a trailer carries.
type LoadStatus string

const (
	LoadStatusEmpty   LoadStatus = "EMPTY"
	LoadStatusPartial LoadStatus = "PARTIAL"
	LoadStatusFull    LoadStatus = "FULL"
)

// ProcessStatus describes where a trailer sits in its yard workflow.
type ProcessStatus string

const (
	ProcessStatusInGate    ProcessStatus = "IN_GATE"
	ProcessStatusLoad      ProcessStatus = "LOAD"
	ProcessStatusLoading   ProcessStatus = "LOADING"
	ProcessStatusLoaded    ProcessStatus = "LOADED"
	ProcessStatusUnload    ProcessStatus = "UNLOAD"
	ProcessStatusUnloading ProcessStatus = "UNLOADING"
	ProcessStatusUnloaded  ProcessStatus = "UNLOADED"
)

// TrailerCondition is the physical condition recorded at the gate.
type TrailerCondition string

const (
	TrailerConditionClean   TrailerCondition = "CLEAN"
	TrailerConditionDirty   TrailerCondition = "DIRTY"
	TrailerConditionDamaged TrailerCondition = "DAMAGED"
)

// RefrigerationStatus is the reefer unit state recorded at the gate.
type RefrigerationStatus string

const (
	RefrigerationActive        RefrigerationStatus = "ACTIVE"
	RefrigerationPreCooling    RefrigerationStatus = "PRE_COOLING"
	RefrigerationDefrost       RefrigerationStatus = "DEFROST"
	RefrigerationOff           RefrigerationStatus = "OFF"
	RefrigerationNotApplicable RefrigerationStatus = "NOT_APPLICABLE"
)

// Trailer is a tracked unit moving through the yard. References to its
// slot (door or yard location) and its open appointment are held as ids;
// a trailer occupies at most one slot at a time.
type Trailer struct {
	ID                   string              `json:"id" gorm:"primaryKey"`
	TrailerNumber        string              `json:"trailer_number" gorm:"uniqueIndex"`
	CarrierID            *string             `json:"carrier_id,omitempty" gorm:"index"`
	LoadStatus           LoadStatus          `json:"load_status"`
	ProcessStatus        ProcessStatus       `json:"process_status" gorm:"index"`
	Condition            TrailerCondition    `json:"condition"`
	RefrigerationStatus  RefrigerationStatus `json:"refrigeration_status"`
	AssignedDoorID       *string             `json:"assigned_door_id,omitempty" gorm:"index"`
	YardLocationID       *string             `json:"yard_location_id,omitempty" gorm:"index"`
	CurrentAppointmentID *string             `json:"current_appointment_id,omitempty"`
	CheckInTime          *time.Time          `json:"check_in_time,omitempty"`
	CheckOutTime         *time.Time          `json:"check_out_time,omitempty"`
	DetentionStartTime   *time.Time          `json:"detention_start_time,omitempty"`
	DetentionActive      bool                `json:"detention_active"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

// StatusContext identifies which yard event is asking for a process
// status derivation. The same load status maps differently depending on
// the event.
type StatusContext int

const (
	// ContextCheckIn derives the initial status at the inbound gate.
	ContextCheckIn StatusContext = iota
	// ContextCheckOut derives the final status at the outbound gate.
	ContextCheckOut
	// ContextDoorAssignment derives the status when a trailer is parked
	// at a door directly through the registry.
	ContextDoorAssignment
	// ContextSpottedAtDoor derives the status when a SPOT move to a
	// door completes.
	ContextSpottedAtDoor
)

// DeriveProcessStatus maps a load status to a process status for the
// given context. The second return value is false when the context
// defines no rule for the load status, in which case the current
// process status must be left unchanged.
func DeriveProcessStatus(load LoadStatus, ctx StatusContext) (ProcessStatus, bool) {
	switch ctx {
	case ContextCheckIn:
		switch load {
		case LoadStatusEmpty:
			return ProcessStatusLoad, true
		case LoadStatusFull:
			return ProcessStatusUnload, true
		default:
			return ProcessStatusInGate, true
		}
	case ContextCheckOut:
		switch load {
		case LoadStatusEmpty:
			return ProcessStatusUnloaded, true
		case LoadStatusFull:
			return ProcessStatusLoaded, true
		}
	case ContextDoorAssignment:
		switch load {
		case LoadStatusEmpty:
			return ProcessStatusLoading, true
		case LoadStatusFull:
			return ProcessStatusUnloading, true
		}
	case ContextSpottedAtDoor:
		switch load {
		case LoadStatusEmpty, LoadStatusPartial:
			return ProcessStatusLoading, true
		case LoadStatusFull:
			return ProcessStatusUnloading, true
		}
	}
	return "", false
}

// ValidateProcessStatusChange rejects process statuses that contradict
// the trailer's load status: a FULL trailer cannot enter a loading
// state, an EMPTY trailer cannot enter an unloading state.
func (t *Trailer) ValidateProcessStatusChange(next ProcessStatus) error {
	switch t.LoadStatus {
	case LoadStatusFull:
		if next == ProcessStatusLoad || next == ProcessStatusLoading || next == ProcessStatusLoaded {
			return Invalidf("cannot change a FULL trailer to %s", next)
		}
	case LoadStatusEmpty:
		if next == ProcessStatusUnload || next == ProcessStatusUnloading || next == ProcessStatusUnloaded {
			return Invalidf("cannot change an EMPTY trailer to %s", next)
		}
	}
	return nil
}

// SlotID returns the id of the slot the trailer currently occupies, or
// empty string when it is unparked.
func (t *Trailer) SlotID() string {
	if t.AssignedDoorID != nil {
		return *t.AssignedDoorID
	}
	if t.YardLocationID != nil {
		return *t.YardLocationID
	}
	return ""
}
