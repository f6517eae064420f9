package service

import (
	"context"
	"time"

	"yardflow/internal/core/metrics"
	"yardflow/internal/yard/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// passthroughTx is a TxManager that runs the unit of work directly,
// with no transaction underneath.
type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestMetrics() *metrics.Metrics {
	return metrics.NewWith(prometheus.NewRegistry(), "yardflow_test")
}

// MockTrailerRepository is a mock implementation of ports.TrailerRepository.
type MockTrailerRepository struct {
	mock.Mock
}

func (m *MockTrailerRepository) FindByID(ctx context.Context, id string) (*domain.Trailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindByNumber(ctx context.Context, trailerNumber string) (*domain.Trailer, error) {
	args := m.Called(ctx, trailerNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindByProcessStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.Trailer, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) FindAll(ctx context.Context) ([]domain.Trailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Trailer), args.Error(1)
}

func (m *MockTrailerRepository) CountByCarrier(ctx context.Context, carrierID string) (int64, error) {
	args := m.Called(ctx, carrierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTrailerRepository) Save(ctx context.Context, trailer *domain.Trailer) error {
	args := m.Called(ctx, trailer)
	return args.Error(0)
}

// MockAppointmentRepository is a mock implementation of ports.AppointmentRepository.
type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindBySite(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindActiveBySite(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByTrailer(ctx context.Context, trailerID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, trailerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindByGate(ctx context.Context, gateID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, gateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindScheduledBetween(ctx context.Context, start, end time.Time) ([]domain.Appointment, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) Save(ctx context.Context, appointment *domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

// MockMoveRequestRepository is a mock implementation of ports.MoveRequestRepository.
type MockMoveRequestRepository struct {
	mock.Mock
}

func (m *MockMoveRequestRepository) FindByID(ctx context.Context, id string) (*domain.MoveRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindByStatus(ctx context.Context, status domain.MoveStatus) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindBySpotter(ctx context.Context, spotterID string) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, spotterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindBySiteAndStatus(ctx context.Context, siteID string, status domain.MoveStatus) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, siteID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindByTrailer(ctx context.Context, trailerID string) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, trailerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindActive(ctx context.Context) ([]domain.MoveRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindActiveBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) FindRequestedBetween(ctx context.Context, start, end time.Time) ([]domain.MoveRequest, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MoveRequest), args.Error(1)
}

func (m *MockMoveRequestRepository) Save(ctx context.Context, move *domain.MoveRequest) error {
	args := m.Called(ctx, move)
	return args.Error(0)
}

// MockSiteRepository is a mock implementation of ports.SiteRepository.
type MockSiteRepository struct {
	mock.Mock
}

func (m *MockSiteRepository) FindByID(ctx context.Context, id string) (*domain.Site, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Site), args.Error(1)
}

// MockGateRepository is a mock implementation of ports.GateRepository.
type MockGateRepository struct {
	mock.Mock
}

func (m *MockGateRepository) FindByID(ctx context.Context, id string) (*domain.Gate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Gate), args.Error(1)
}

// MockCarrierRepository is a mock implementation of ports.CarrierRepository.
type MockCarrierRepository struct {
	mock.Mock
}

func (m *MockCarrierRepository) FindByID(ctx context.Context, id string) (*domain.Carrier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindByCode(ctx context.Context, code string) (*domain.Carrier, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindAll(ctx context.Context) ([]domain.Carrier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) FindDetentionEnabled(ctx context.Context) ([]domain.Carrier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Carrier), args.Error(1)
}

func (m *MockCarrierRepository) Save(ctx context.Context, carrier *domain.Carrier) error {
	args := m.Called(ctx, carrier)
	return args.Error(0)
}

func (m *MockCarrierRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository is a mock implementation of ports.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockDockRepository is a mock implementation of ports.DockRepository.
type MockDockRepository struct {
	mock.Mock
}

func (m *MockDockRepository) FindByID(ctx context.Context, id string) (*domain.Dock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dock), args.Error(1)
}

// MockDoorRepository is a mock implementation of ports.DoorRepository.
type MockDoorRepository struct {
	mock.Mock
}

func (m *MockDoorRepository) FindByID(ctx context.Context, id string) (*domain.Door, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Door), args.Error(1)
}

func (m *MockDoorRepository) Save(ctx context.Context, door *domain.Door) error {
	args := m.Called(ctx, door)
	return args.Error(0)
}

// MockYardLocationRepository is a mock implementation of ports.YardLocationRepository.
type MockYardLocationRepository struct {
	mock.Mock
}

func (m *MockYardLocationRepository) FindByID(ctx context.Context, id string) (*domain.YardLocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YardLocation), args.Error(1)
}

func (m *MockYardLocationRepository) Save(ctx context.Context, location *domain.YardLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

// MockActiveAppointmentCache is a mock implementation of ports.ActiveAppointmentCache.
type MockActiveAppointmentCache struct {
	mock.Mock
}

func (m *MockActiveAppointmentCache) Get(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}

func (m *MockActiveAppointmentCache) Set(ctx context.Context, siteID string, appointments []domain.Appointment) error {
	args := m.Called(ctx, siteID, appointments)
	return args.Error(0)
}

func (m *MockActiveAppointmentCache) Invalidate(ctx context.Context, siteID string) error {
	args := m.Called(ctx, siteID)
	return args.Error(0)
}
