package ports

import (
	"context"
	"time"

	"yardflow/internal/yard/domain"

	"github.com/shopspring/decimal"
)

// CheckInInput carries everything the guard records at the inbound gate.
type CheckInInput struct {
	SiteID              string
	GateID              string
	TrailerNumber       string
	CarrierID           string
	LoadStatus          domain.LoadStatus
	Condition           domain.TrailerCondition
	RefrigerationStatus domain.RefrigerationStatus
	AppointmentType     domain.AppointmentType
	ScheduledTime       *time.Time
	DriverInfo          string
	GuardComments       string
}

// CheckOutInput carries everything the guard records at the outbound gate.
type CheckOutInput struct {
	SiteID        string
	GateID        string
	TrailerID     string
	Condition     domain.TrailerCondition
	LoadStatus    domain.LoadStatus
	DriverInfo    string
	GuardComments string
}

// ScheduleInput creates a future appointment with no trailer bound yet.
type ScheduleInput struct {
	SiteID          string
	TrailerNumber   string
	AppointmentType domain.AppointmentType
	ScheduledTime   *time.Time
	DriverInfo      string
	GuardComments   string
}

// AppointmentService is the primary port of the appointment lifecycle
// manager.
type AppointmentService interface {
	ProcessCheckIn(ctx context.Context, in CheckInInput) (*domain.Appointment, error)
	ProcessCheckOut(ctx context.Context, in CheckOutInput) (*domain.Appointment, error)
	ScheduleAppointment(ctx context.Context, in ScheduleInput) (*domain.Appointment, error)
	StartProcessing(ctx context.Context, id string) (*domain.Appointment, error)
	Cancel(ctx context.Context, id, reason string) (*domain.Appointment, error)

	GetByID(ctx context.Context, id string) (*domain.Appointment, error)
	GetBySite(ctx context.Context, siteID string) ([]domain.Appointment, error)
	GetActiveBySite(ctx context.Context, siteID string) ([]domain.Appointment, error)
	GetByTrailer(ctx context.Context, trailerID string) ([]domain.Appointment, error)
	GetByGate(ctx context.Context, gateID string) ([]domain.Appointment, error)
	GetByDateRange(ctx context.Context, start, end *time.Time) ([]domain.Appointment, error)
}

// CreateMoveInput carries the fields needed to request a repositioning
// task. The site is derived from the trailer's active appointment.
type CreateMoveInput struct {
	TrailerID               string
	MoveType                domain.MoveType
	SourceLocationType      domain.LocationType
	SourceLocationID        string
	DestinationLocationType domain.LocationType
	DestinationLocationID   string
	Notes                   string
	RequestedByID           string
}

// MoveRequestService is the primary port of the move request lifecycle
// manager.
type MoveRequestService interface {
	Create(ctx context.Context, in CreateMoveInput) (*domain.MoveRequest, error)
	Assign(ctx context.Context, id, spotterID string) (*domain.MoveRequest, error)
	Start(ctx context.Context, id string) (*domain.MoveRequest, error)
	Complete(ctx context.Context, id string) (*domain.MoveRequest, error)
	Cancel(ctx context.Context, id string) (*domain.MoveRequest, error)
	AddNotes(ctx context.Context, id, notes string) (*domain.MoveRequest, error)

	GetByID(ctx context.Context, id string) (*domain.MoveRequest, error)
	GetPending(ctx context.Context) ([]domain.MoveRequest, error)
	GetBySpotter(ctx context.Context, spotterID string) ([]domain.MoveRequest, error)
	GetBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error)
	GetPendingBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error)
	GetByTrailer(ctx context.Context, trailerID string) ([]domain.MoveRequest, error)
	GetByStatus(ctx context.Context, status domain.MoveStatus) ([]domain.MoveRequest, error)
	GetActive(ctx context.Context) ([]domain.MoveRequest, error)
	GetActiveBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error)
	GetByDateRange(ctx context.Context, start, end *time.Time) ([]domain.MoveRequest, error)
}

// TrailerService is the primary port of the trailer state tracker,
// resource registry and detention accrual engine.
type TrailerService interface {
	GetByID(ctx context.Context, id string) (*domain.Trailer, error)
	GetByNumber(ctx context.Context, trailerNumber string) (*domain.Trailer, error)
	GetBySite(ctx context.Context, siteID string) ([]domain.Trailer, error)
	GetByProcessStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.Trailer, error)

	UpdateProcessStatus(ctx context.Context, id string, status domain.ProcessStatus) (*domain.Trailer, error)
	AssignToDoor(ctx context.Context, trailerID, doorID string) (*domain.Trailer, error)
	AssignToYardLocation(ctx context.Context, trailerID, locationID string) (*domain.Trailer, error)

	UpdateDetentionStatus(ctx context.Context, trailerID string) error
	CalculateDetentionCharge(ctx context.Context, trailerID string) (*domain.DetentionCharge, error)
}

// CarrierInput carries the writable carrier fields, detention policy
// included.
type CarrierInput struct {
	Name                string
	Code                string
	OwnsTractors        bool
	OwnsTrailers        bool
	DetentionEnabled    bool
	FreeTimeHours       int
	ChargeIntervalHours int
	ChargePerInterval   decimal.Decimal
	MaxChargeEnabled    bool
	MaxCharge           decimal.Decimal
	EligibleSiteIDs     []string
}

// CarrierService administers carriers and their detention policies.
type CarrierService interface {
	Create(ctx context.Context, in CarrierInput) (*domain.Carrier, error)
	Update(ctx context.Context, id string, in CarrierInput) (*domain.Carrier, error)
	GetByID(ctx context.Context, id string) (*domain.Carrier, error)
	GetByCode(ctx context.Context, code string) (*domain.Carrier, error)
	GetAll(ctx context.Context) ([]domain.Carrier, error)
	GetWithDetention(ctx context.Context) ([]domain.Carrier, error)
	UpdateSiteEligibility(ctx context.Context, id string, siteIDs []string) (*domain.Carrier, error)
	Delete(ctx context.Context, id string) error
}
