package adapters

import (
	"context"
	"time"

	"yardflow/internal/yard/domain"
)

// GormTrailerRepository implements ports.TrailerRepository.
type GormTrailerRepository struct{ store *Store }

// NewGormTrailerRepository creates a trailer repository over the store.
func NewGormTrailerRepository(store *Store) *GormTrailerRepository {
	return &GormTrailerRepository{store: store}
}

func (r *GormTrailerRepository) FindByID(ctx context.Context, id string) (*domain.Trailer, error) {
	return first[domain.Trailer](r.store.conn(ctx), "id = ?", id)
}

func (r *GormTrailerRepository) FindByNumber(ctx context.Context, trailerNumber string) (*domain.Trailer, error) {
	return first[domain.Trailer](r.store.conn(ctx), "trailer_number = ?", trailerNumber)
}

func (r *GormTrailerRepository) FindByProcessStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.Trailer, error) {
	var trailers []domain.Trailer
	err := r.store.conn(ctx).Where("process_status = ?", status).Find(&trailers).Error
	return trailers, err
}

func (r *GormTrailerRepository) FindAll(ctx context.Context) ([]domain.Trailer, error) {
	var trailers []domain.Trailer
	err := r.store.conn(ctx).Find(&trailers).Error
	return trailers, err
}

func (r *GormTrailerRepository) CountByCarrier(ctx context.Context, carrierID string) (int64, error) {
	var count int64
	err := r.store.conn(ctx).Model(&domain.Trailer{}).Where("carrier_id = ?", carrierID).Count(&count).Error
	return count, err
}

func (r *GormTrailerRepository) Save(ctx context.Context, trailer *domain.Trailer) error {
	return r.store.conn(ctx).Save(trailer).Error
}

// GormAppointmentRepository implements ports.AppointmentRepository.
type GormAppointmentRepository struct{ store *Store }

// NewGormAppointmentRepository creates an appointment repository over
// the store.
func NewGormAppointmentRepository(store *Store) *GormAppointmentRepository {
	return &GormAppointmentRepository{store: store}
}

func (r *GormAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return first[domain.Appointment](r.store.conn(ctx), "id = ?", id)
}

func (r *GormAppointmentRepository) FindBySite(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.store.conn(ctx).Where("site_id = ?", siteID).Find(&appointments).Error
	return appointments, err
}

func (r *GormAppointmentRepository) FindActiveBySite(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.store.conn(ctx).
		Where("site_id = ? AND status IN ?", siteID, []domain.AppointmentStatus{domain.AppointmentCheckedIn, domain.AppointmentInProgress}).
		Find(&appointments).Error
	return appointments, err
}

func (r *GormAppointmentRepository) FindByTrailer(ctx context.Context, trailerID string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.store.conn(ctx).Where("trailer_id = ?", trailerID).Find(&appointments).Error
	return appointments, err
}

func (r *GormAppointmentRepository) FindByGate(ctx context.Context, gateID string) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.store.conn(ctx).
		Where("check_in_gate_id = ? OR check_out_gate_id = ?", gateID, gateID).
		Find(&appointments).Error
	return appointments, err
}

func (r *GormAppointmentRepository) FindScheduledBetween(ctx context.Context, start, end time.Time) ([]domain.Appointment, error) {
	var appointments []domain.Appointment
	err := r.store.conn(ctx).
		Where("status = ? AND scheduled_time BETWEEN ? AND ?", domain.AppointmentScheduled, start, end).
		Find(&appointments).Error
	return appointments, err
}

func (r *GormAppointmentRepository) Save(ctx context.Context, appointment *domain.Appointment) error {
	return r.store.conn(ctx).Save(appointment).Error
}

// GormMoveRequestRepository implements ports.MoveRequestRepository.
type GormMoveRequestRepository struct{ store *Store }

// NewGormMoveRequestRepository creates a move request repository over
// the store.
func NewGormMoveRequestRepository(store *Store) *GormMoveRequestRepository {
	return &GormMoveRequestRepository{store: store}
}

var activeMoveStatuses = []domain.MoveStatus{domain.MoveRequested, domain.MoveAssigned, domain.MoveInProgress}

func (r *GormMoveRequestRepository) FindByID(ctx context.Context, id string) (*domain.MoveRequest, error) {
	return first[domain.MoveRequest](r.store.conn(ctx), "id = ?", id)
}

func (r *GormMoveRequestRepository) FindByStatus(ctx context.Context, status domain.MoveStatus) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("status = ?", status).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindBySpotter(ctx context.Context, spotterID string) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("assigned_spotter_id = ?", spotterID).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("site_id = ?", siteID).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindBySiteAndStatus(ctx context.Context, siteID string, status domain.MoveStatus) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("site_id = ? AND status = ?", siteID, status).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindByTrailer(ctx context.Context, trailerID string) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("trailer_id = ?", trailerID).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindActive(ctx context.Context) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("status IN ?", activeMoveStatuses).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindActiveBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("site_id = ? AND status IN ?", siteID, activeMoveStatuses).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) FindRequestedBetween(ctx context.Context, start, end time.Time) ([]domain.MoveRequest, error) {
	var moves []domain.MoveRequest
	err := r.store.conn(ctx).Where("request_time BETWEEN ? AND ?", start, end).Find(&moves).Error
	return moves, err
}

func (r *GormMoveRequestRepository) Save(ctx context.Context, move *domain.MoveRequest) error {
	return r.store.conn(ctx).Save(move).Error
}

// GormSiteRepository implements ports.SiteRepository.
type GormSiteRepository struct{ store *Store }

// NewGormSiteRepository creates a site repository over the store.
func NewGormSiteRepository(store *Store) *GormSiteRepository {
	return &GormSiteRepository{store: store}
}

func (r *GormSiteRepository) FindByID(ctx context.Context, id string) (*domain.Site, error) {
	return first[domain.Site](r.store.conn(ctx), "id = ?", id)
}

// GormGateRepository implements ports.GateRepository.
type GormGateRepository struct{ store *Store }

// NewGormGateRepository creates a gate repository over the store.
func NewGormGateRepository(store *Store) *GormGateRepository {
	return &GormGateRepository{store: store}
}

func (r *GormGateRepository) FindByID(ctx context.Context, id string) (*domain.Gate, error) {
	return first[domain.Gate](r.store.conn(ctx), "id = ?", id)
}

// GormCarrierRepository implements ports.CarrierRepository.
type GormCarrierRepository struct{ store *Store }

// NewGormCarrierRepository creates a carrier repository over the store.
func NewGormCarrierRepository(store *Store) *GormCarrierRepository {
	return &GormCarrierRepository{store: store}
}

func (r *GormCarrierRepository) FindByID(ctx context.Context, id string) (*domain.Carrier, error) {
	return first[domain.Carrier](r.store.conn(ctx), "id = ?", id)
}

func (r *GormCarrierRepository) FindByCode(ctx context.Context, code string) (*domain.Carrier, error) {
	return first[domain.Carrier](r.store.conn(ctx), "code = ?", code)
}

func (r *GormCarrierRepository) FindAll(ctx context.Context) ([]domain.Carrier, error) {
	var carriers []domain.Carrier
	err := r.store.conn(ctx).Find(&carriers).Error
	return carriers, err
}

func (r *GormCarrierRepository) FindDetentionEnabled(ctx context.Context) ([]domain.Carrier, error) {
	var carriers []domain.Carrier
	err := r.store.conn(ctx).Where("detention_enabled = ?", true).Find(&carriers).Error
	return carriers, err
}

func (r *GormCarrierRepository) Save(ctx context.Context, carrier *domain.Carrier) error {
	return r.store.conn(ctx).Save(carrier).Error
}

func (r *GormCarrierRepository) Delete(ctx context.Context, id string) error {
	return r.store.conn(ctx).Delete(&domain.Carrier{}, "id = ?", id).Error
}

// GormUserRepository implements ports.UserRepository.
type GormUserRepository struct{ store *Store }

// NewGormUserRepository creates a user repository over the store.
func NewGormUserRepository(store *Store) *GormUserRepository {
	return &GormUserRepository{store: store}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return first[domain.User](r.store.conn(ctx), "id = ?", id)
}

// GormDockRepository implements ports.DockRepository.
type GormDockRepository struct{ store *Store }

// NewGormDockRepository creates a dock repository over the store.
func NewGormDockRepository(store *Store) *GormDockRepository {
	return &GormDockRepository{store: store}
}

func (r *GormDockRepository) FindByID(ctx context.Context, id string) (*domain.Dock, error) {
	return first[domain.Dock](r.store.conn(ctx), "id = ?", id)
}

// GormDoorRepository implements ports.DoorRepository.
type GormDoorRepository struct{ store *Store }

// NewGormDoorRepository creates a door repository over the store.
func NewGormDoorRepository(store *Store) *GormDoorRepository {
	return &GormDoorRepository{store: store}
}

func (r *GormDoorRepository) FindByID(ctx context.Context, id string) (*domain.Door, error) {
	return first[domain.Door](r.store.conn(ctx), "id = ?", id)
}

func (r *GormDoorRepository) Save(ctx context.Context, door *domain.Door) error {
	return r.store.conn(ctx).Save(door).Error
}

// GormYardLocationRepository implements ports.YardLocationRepository.
type GormYardLocationRepository struct{ store *Store }

// NewGormYardLocationRepository creates a yard location repository over
// the store.
func NewGormYardLocationRepository(store *Store) *GormYardLocationRepository {
	return &GormYardLocationRepository{store: store}
}

func (r *GormYardLocationRepository) FindByID(ctx context.Context, id string) (*domain.YardLocation, error) {
	return first[domain.YardLocation](r.store.conn(ctx), "id = ?", id)
}

func (r *GormYardLocationRepository) Save(ctx context.Context, location *domain.YardLocation) error {
	return r.store.conn(ctx).Save(location).Error
}
