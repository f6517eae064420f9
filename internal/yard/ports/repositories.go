package ports

import (
	"context"
	"time"

	"yardflow/internal/yard/domain"
)

// Repositories are the secondary ports for durable storage. Lookups
// return (nil, nil) when the entity does not exist; services translate
// that into domain.NotFoundError.

// TrailerRepository stores trailers.
type TrailerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Trailer, error)
	FindByNumber(ctx context.Context, trailerNumber string) (*domain.Trailer, error)
	FindByProcessStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.Trailer, error)
	FindAll(ctx context.Context) ([]domain.Trailer, error)
	CountByCarrier(ctx context.Context, carrierID string) (int64, error)
	Save(ctx context.Context, trailer *domain.Trailer) error
}

// AppointmentRepository stores gate visits.
type AppointmentRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Appointment, error)
	FindBySite(ctx context.Context, siteID string) ([]domain.Appointment, error)
	FindActiveBySite(ctx context.Context, siteID string) ([]domain.Appointment, error)
	FindByTrailer(ctx context.Context, trailerID string) ([]domain.Appointment, error)
	FindByGate(ctx context.Context, gateID string) ([]domain.Appointment, error)
	FindScheduledBetween(ctx context.Context, start, end time.Time) ([]domain.Appointment, error)
	Save(ctx context.Context, appointment *domain.Appointment) error
}

// MoveRequestRepository stores repositioning tasks.
type MoveRequestRepository interface {
	FindByID(ctx context.Context, id string) (*domain.MoveRequest, error)
	FindByStatus(ctx context.Context, status domain.MoveStatus) ([]domain.MoveRequest, error)
	FindBySpotter(ctx context.Context, spotterID string) ([]domain.MoveRequest, error)
	FindBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error)
	FindBySiteAndStatus(ctx context.Context, siteID string, status domain.MoveStatus) ([]domain.MoveRequest, error)
	FindByTrailer(ctx context.Context, trailerID string) ([]domain.MoveRequest, error)
	FindActive(ctx context.Context) ([]domain.MoveRequest, error)
	FindActiveBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error)
	FindRequestedBetween(ctx context.Context, start, end time.Time) ([]domain.MoveRequest, error)
	Save(ctx context.Context, move *domain.MoveRequest) error
}

// SiteRepository resolves sites.
type SiteRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Site, error)
}

// GateRepository resolves gates.
type GateRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Gate, error)
}

// CarrierRepository stores carriers and their detention policies.
type CarrierRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Carrier, error)
	FindByCode(ctx context.Context, code string) (*domain.Carrier, error)
	FindAll(ctx context.Context) ([]domain.Carrier, error)
	FindDetentionEnabled(ctx context.Context) ([]domain.Carrier, error)
	Save(ctx context.Context, carrier *domain.Carrier) error
	Delete(ctx context.Context, id string) error
}

// UserRepository resolves users.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// DockRepository resolves docks.
type DockRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Dock, error)
}

// DoorRepository stores doors.
type DoorRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Door, error)
	Save(ctx context.Context, door *domain.Door) error
}

// YardLocationRepository stores yard locations.
type YardLocationRepository interface {
	FindByID(ctx context.Context, id string) (*domain.YardLocation, error)
	Save(ctx context.Context, location *domain.YardLocation) error
}

// TxManager runs fn as one atomic unit of work. Every repository call
// made with the context passed to fn joins the same transaction; if fn
// returns an error nothing is persisted.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ActiveAppointmentCache is the read-side projection of a site's active
// appointments. Lookups return (nil, nil) on a cache miss.
type ActiveAppointmentCache interface {
	Get(ctx context.Context, siteID string) ([]domain.Appointment, error)
	Set(ctx context.Context, siteID string, appointments []domain.Appointment) error
	Invalidate(ctx context.Context, siteID string) error
}
