package domain

import "time"

// AppointmentType classifies the purpose of a gate visit.
type AppointmentType string

const (
	AppointmentLiveLoad    AppointmentType = "LIVE_LOAD"
	AppointmentDropAndHook AppointmentType = "DROP_AND_HOOK"
	AppointmentInboundOnly AppointmentType = "INBOUND_ONLY"
	AppointmentOutbound    AppointmentType = "OUTBOUND_ONLY"
	AppointmentCheckInOnly AppointmentType = "CHECK_IN_ONLY"
	AppointmentUndefined   AppointmentType = "UNDEFINED"
)

// ValidAppointmentType reports whether t is a known appointment type.
func ValidAppointmentType(t AppointmentType) bool {
	switch t {
	case AppointmentLiveLoad, AppointmentDropAndHook, AppointmentInboundOnly,
		AppointmentOutbound, AppointmentCheckInOnly, AppointmentUndefined:
		return true
	}
	return false
}

// AppointmentStatus is the lifecycle state of a gate visit.
type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "SCHEDULED"
	AppointmentCheckedIn  AppointmentStatus = "CHECKED_IN"
	AppointmentInProgress AppointmentStatus = "IN_PROGRESS"
	AppointmentCompleted  AppointmentStatus = "COMPLETED"
	AppointmentCancelled  AppointmentStatus = "CANCELLED"
)

// appointmentTransitions is the allowed-transition set keyed by current
// status. Terminal states have no outgoing transitions.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentScheduled:  {AppointmentCheckedIn, AppointmentCancelled},
	AppointmentCheckedIn:  {AppointmentInProgress, AppointmentCompleted, AppointmentCancelled},
	AppointmentInProgress: {AppointmentCompleted, AppointmentCancelled},
	AppointmentCompleted:  {},
	AppointmentCancelled:  {},
}

// Active reports whether the status counts toward a trailer's active
// gate visit.
func (s AppointmentStatus) Active() bool {
	return s == AppointmentCheckedIn || s == AppointmentInProgress
}

// Appointment is one gate-to-gate visit record for a trailer at a site.
type Appointment struct {
	ID                string            `json:"id" gorm:"primaryKey"`
	TrailerID         *string           `json:"trailer_id,omitempty" gorm:"index"`
	SiteID            string            `json:"site_id" gorm:"index"`
	CheckInGateID     *string           `json:"check_in_gate_id,omitempty" gorm:"index"`
	CheckOutGateID    *string           `json:"check_out_gate_id,omitempty" gorm:"index"`
	Type              AppointmentType   `json:"type"`
	Status            AppointmentStatus `json:"status" gorm:"index"`
	ScheduledTime     *time.Time        `json:"scheduled_time,omitempty"`
	ActualArrivalTime *time.Time        `json:"actual_arrival_time,omitempty"`
	CompletionTime    *time.Time        `json:"completion_time,omitempty"`
	DriverInfo        string            `json:"driver_info,omitempty"`
	GuardComments     string            `json:"guard_comments,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// Transition moves the appointment to the next status, failing when the
// transition table does not allow it.
func (a *Appointment) Transition(next AppointmentStatus) error {
	for _, allowed := range appointmentTransitions[a.Status] {
		if allowed == next {
			a.Status = next
			return nil
		}
	}
	return Invalidf("appointment %s cannot transition from %s to %s", a.ID, a.Status, next)
}

// AppendGuardComment appends a labelled comment line, newline-joined
// onto any existing guard comments.
func (a *Appointment) AppendGuardComment(label, text string) {
	if text == "" {
		return
	}
	entry := label + ": " + text
	if a.GuardComments != "" {
		a.GuardComments += "\n" + entry
	} else {
		a.GuardComments = entry
	}
}
