package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"yardflow/internal/core/locker"
	"yardflow/internal/core/logger"
	"yardflow/internal/core/metrics"
	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AppointmentServiceImpl implements ports.AppointmentService. Every
// mutating operation runs under the trailer's keyed lock and inside a
// single storage transaction, so either all of its entity updates are
// visible or none is.
type AppointmentServiceImpl struct {
	appointments ports.AppointmentRepository
	sites        ports.SiteRepository
	trailers     ports.TrailerRepository
	carriers     ports.CarrierRepository
	gates        ports.GateRepository
	registry     *SlotRegistry
	cache        ports.ActiveAppointmentCache
	tx           ports.TxManager
	locks        *locker.KeyedLocker
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewAppointmentService creates a new AppointmentServiceImpl.
func NewAppointmentService(
	appointments ports.AppointmentRepository,
	sites ports.SiteRepository,
	trailers ports.TrailerRepository,
	carriers ports.CarrierRepository,
	gates ports.GateRepository,
	registry *SlotRegistry,
	cache ports.ActiveAppointmentCache,
	tx ports.TxManager,
	locks *locker.KeyedLocker,
	m *metrics.Metrics,
) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{
		appointments: appointments,
		sites:        sites,
		trailers:     trailers,
		carriers:     carriers,
		gates:        gates,
		registry:     registry,
		cache:        cache,
		tx:           tx,
		locks:        locks,
		metrics:      m,
		now:          time.Now,
	}
}

// ProcessCheckIn admits a trailer through an inbound gate, creating the
// trailer on first visit and opening a CHECKED_IN appointment.
func (s *AppointmentServiceImpl) ProcessCheckIn(ctx context.Context, in ports.CheckInInput) (*domain.Appointment, error) {
	if err := validateCheckInInput(in); err != nil {
		return nil, s.fail("check_in", err)
	}
	if in.AppointmentType == "" {
		in.AppointmentType = domain.AppointmentUndefined
	}

	unlock := s.locks.Lock("trailer:" + in.TrailerNumber)
	defer unlock()

	var appointment *domain.Appointment
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		site, err := s.getSite(ctx, in.SiteID)
		if err != nil {
			return err
		}
		gate, err := s.getGate(ctx, in.GateID)
		if err != nil {
			return err
		}
		carrier, err := s.getCarrier(ctx, in.CarrierID)
		if err != nil {
			return err
		}

		if gate.SiteID != site.ID {
			return domain.Invalidf("gate %s (%s) does not belong to site %s (%s)", gate.Name, gate.ID, site.Name, site.ID)
		}
		if !gate.Function.SupportsCheckIn() {
			return domain.Invalidf("gate %s (%s) does not support check-in operations", gate.Name, gate.ID)
		}
		if !carrier.EligibleFor(site.ID) {
			return domain.Invalidf("carrier %s (%s) is not eligible for site %s (%s)", carrier.Name, carrier.ID, site.Name, site.ID)
		}

		trailer, err := s.trailers.FindByNumber(ctx, in.TrailerNumber)
		if err != nil {
			return fmt.Errorf("service: failed to look up trailer %s: %w", in.TrailerNumber, err)
		}
		if trailer == nil {
			trailer = &domain.Trailer{ID: uuid.NewString(), TrailerNumber: in.TrailerNumber}
		} else {
			// The number key only serializes first visits. A returning
			// trailer is mutated elsewhere under its id key, so that key
			// must be held too. Id keys are never held while waiting on
			// a number key, keeping the nesting one-directional.
			unlockID := s.locks.Lock("trailer:" + trailer.ID)
			defer unlockID()
		}

		now := s.now()
		trailer.CarrierID = &carrier.ID
		trailer.LoadStatus = in.LoadStatus
		trailer.Condition = in.Condition
		trailer.RefrigerationStatus = in.RefrigerationStatus
		trailer.CheckInTime = &now
		trailer.CheckOutTime = nil
		if status, ok := domain.DeriveProcessStatus(in.LoadStatus, domain.ContextCheckIn); ok {
			trailer.ProcessStatus = status
		}
		if carrier.DetentionEnabled {
			trailer.DetentionActive = false
			trailer.DetentionStartTime = nil
		}

		appointment = &domain.Appointment{
			ID:                uuid.NewString(),
			TrailerID:         &trailer.ID,
			SiteID:            site.ID,
			CheckInGateID:     &gate.ID,
			Type:              in.AppointmentType,
			Status:            domain.AppointmentCheckedIn,
			ScheduledTime:     in.ScheduledTime,
			ActualArrivalTime: &now,
			DriverInfo:        in.DriverInfo,
			GuardComments:     in.GuardComments,
		}

		if err := s.appointments.Save(ctx, appointment); err != nil {
			return fmt.Errorf("service: failed to save appointment: %w", err)
		}
		trailer.CurrentAppointmentID = &appointment.ID
		if err := s.trailers.Save(ctx, trailer); err != nil {
			return fmt.Errorf("service: failed to save trailer %s: %w", trailer.TrailerNumber, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("check_in", err)
	}

	s.invalidateActive(ctx, appointment.SiteID)
	s.metrics.CheckIns.Inc()
	logger.Get().Info("Check-in completed",
		zap.String("trailer_number", in.TrailerNumber),
		zap.String("appointment_id", appointment.ID),
	)
	return appointment, nil
}

// ProcessCheckOut releases a trailer through an outbound gate,
// completing its active appointment and freeing any held slot.
func (s *AppointmentServiceImpl) ProcessCheckOut(ctx context.Context, in ports.CheckOutInput) (*domain.Appointment, error) {
	if err := validateCheckOutInput(in); err != nil {
		return nil, s.fail("check_out", err)
	}

	unlock, err := s.lockForCheckOut(ctx, in.TrailerID)
	if err != nil {
		return nil, s.fail("check_out", err)
	}
	defer unlock()

	var appointment *domain.Appointment
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		site, err := s.getSite(ctx, in.SiteID)
		if err != nil {
			return err
		}
		trailer, err := s.getTrailer(ctx, in.TrailerID)
		if err != nil {
			return err
		}
		gate, err := s.getGate(ctx, in.GateID)
		if err != nil {
			return err
		}
		if trailer.CurrentAppointmentID == nil {
			return domain.NotFound("active appointment", "trailer "+trailer.ID)
		}
		appointment, err = s.getAppointment(ctx, *trailer.CurrentAppointmentID)
		if err != nil {
			return err
		}

		if appointment.SiteID != site.ID {
			return domain.Invalidf("site mismatch: trailer was checked in at site %s but checkout was attempted at site %s (%s)",
				appointment.SiteID, site.Name, site.ID)
		}
		if gate.SiteID != appointment.SiteID {
			return domain.Invalidf("gate %s (%s) belongs to site %s, but the trailer is at site %s",
				gate.Name, gate.ID, gate.SiteID, appointment.SiteID)
		}
		if !gate.Function.SupportsCheckOut() {
			return domain.Invalidf("gate %s (%s) does not support check-out operations", gate.Name, gate.ID)
		}

		now := s.now()
		trailer.Condition = in.Condition
		trailer.LoadStatus = in.LoadStatus
		trailer.CheckOutTime = &now
		if status, ok := domain.DeriveProcessStatus(in.LoadStatus, domain.ContextCheckOut); ok {
			trailer.ProcessStatus = status
		}
		if err := s.registry.Release(ctx, trailer); err != nil {
			return err
		}
		trailer.DetentionActive = false

		if err := appointment.Transition(domain.AppointmentCompleted); err != nil {
			return err
		}
		appointment.CompletionTime = &now
		appointment.CheckOutGateID = &gate.ID
		appointment.DriverInfo = in.DriverInfo
		appointment.AppendGuardComment("Check-Out Comments", in.GuardComments)

		trailer.CurrentAppointmentID = nil
		if err := s.trailers.Save(ctx, trailer); err != nil {
			return fmt.Errorf("service: failed to save trailer %s: %w", trailer.ID, err)
		}
		if err := s.appointments.Save(ctx, appointment); err != nil {
			return fmt.Errorf("service: failed to save appointment %s: %w", appointment.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("check_out", err)
	}

	s.invalidateActive(ctx, appointment.SiteID)
	s.metrics.CheckOuts.Inc()
	logger.Get().Info("Check-out completed",
		zap.String("trailer_id", in.TrailerID),
		zap.String("appointment_id", appointment.ID),
	)
	return appointment, nil
}

// lockForCheckOut acquires every key the check-out unit of work
// touches in one sorted acquisition: the trailer, whichever slot it
// holds, and its active appointment. Taking the slot key nested under
// the trailer key would invert the order slot assignment uses. The
// bindings are re-read after locking and the acquisition retried if a
// concurrent operation moved the trailer in between.
func (s *AppointmentServiceImpl) lockForCheckOut(ctx context.Context, trailerID string) (func(), error) {
	for {
		trailer, err := s.getTrailer(ctx, trailerID)
		if err != nil {
			return nil, err
		}
		unlock := s.locks.Lock(checkOutLockKeys(trailer)...)

		current, err := s.getTrailer(ctx, trailerID)
		if err != nil {
			unlock()
			return nil, err
		}
		if current.SlotID() == trailer.SlotID() &&
			stringPtrEqual(current.CurrentAppointmentID, trailer.CurrentAppointmentID) {
			return unlock, nil
		}
		unlock()
	}
}

func checkOutLockKeys(trailer *domain.Trailer) []string {
	keys := []string{"trailer:" + trailer.ID}
	if slot := trailer.SlotID(); slot != "" {
		keys = append(keys, "slot:"+slot)
	}
	if trailer.CurrentAppointmentID != nil {
		keys = append(keys, "appointment:"+*trailer.CurrentAppointmentID)
	}
	return keys
}

func stringPtrEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ScheduleAppointment creates a future appointment in SCHEDULED status.
// No trailer binding is required yet; one is attached when the trailer
// number already resolves.
func (s *AppointmentServiceImpl) ScheduleAppointment(ctx context.Context, in ports.ScheduleInput) (*domain.Appointment, error) {
	if in.SiteID == "" {
		return nil, s.fail("schedule", domain.Invalidf("site ID is required for scheduling an appointment"))
	}
	if in.ScheduledTime == nil {
		return nil, s.fail("schedule", domain.Invalidf("scheduled time is required"))
	}
	if in.ScheduledTime.Before(s.now()) {
		return nil, s.fail("schedule", domain.Invalidf("scheduled time cannot be in the past"))
	}
	if !domain.ValidAppointmentType(in.AppointmentType) {
		return nil, s.fail("schedule", domain.Invalidf("invalid appointment type: %s", in.AppointmentType))
	}

	site, err := s.getSite(ctx, in.SiteID)
	if err != nil {
		return nil, s.fail("schedule", err)
	}

	appointment := &domain.Appointment{
		ID:            uuid.NewString(),
		SiteID:        site.ID,
		Type:          in.AppointmentType,
		Status:        domain.AppointmentScheduled,
		ScheduledTime: in.ScheduledTime,
		DriverInfo:    in.DriverInfo,
		GuardComments: in.GuardComments,
	}
	if in.TrailerNumber != "" {
		trailer, err := s.trailers.FindByNumber(ctx, in.TrailerNumber)
		if err != nil {
			return nil, s.fail("schedule", fmt.Errorf("service: failed to look up trailer %s: %w", in.TrailerNumber, err))
		}
		if trailer != nil {
			appointment.TrailerID = &trailer.ID
		}
	}

	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, s.fail("schedule", fmt.Errorf("service: failed to save appointment: %w", err))
	}
	logger.Get().Info("Appointment scheduled", zap.String("appointment_id", appointment.ID))
	return appointment, nil
}

// StartProcessing moves a CHECKED_IN appointment to IN_PROGRESS.
func (s *AppointmentServiceImpl) StartProcessing(ctx context.Context, id string) (*domain.Appointment, error) {
	unlock := s.locks.Lock("appointment:" + id)
	defer unlock()

	appointment, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, s.fail("start_processing", err)
	}
	if appointment.Status != domain.AppointmentCheckedIn {
		return nil, s.fail("start_processing", domain.Invalidf(
			"cannot start processing appointment with status %s: appointment must be in CHECKED_IN status", appointment.Status))
	}
	if err := appointment.Transition(domain.AppointmentInProgress); err != nil {
		return nil, s.fail("start_processing", err)
	}
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, s.fail("start_processing", fmt.Errorf("service: failed to save appointment %s: %w", id, err))
	}
	s.invalidateActive(ctx, appointment.SiteID)
	return appointment, nil
}

// Cancel cancels a non-terminal appointment, recording the reason and
// detaching the trailer when this was its current appointment. Held
// slots are not released.
func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id, reason string) (*domain.Appointment, error) {
	existing, err := s.getAppointment(ctx, id)
	if err != nil {
		return nil, s.fail("cancel_appointment", err)
	}
	// The trailer binding is set at creation and never reassigned, so
	// the key set is stable across the lookup and the acquisition.
	keys := []string{"appointment:" + id}
	if existing.TrailerID != nil {
		keys = append(keys, "trailer:"+*existing.TrailerID)
	}
	unlock := s.locks.Lock(keys...)
	defer unlock()

	var appointment *domain.Appointment
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		appointment, err = s.getAppointment(ctx, id)
		if err != nil {
			return err
		}
		if appointment.Status == domain.AppointmentCompleted {
			return domain.Invalidf("cannot cancel a completed appointment")
		}
		if appointment.Status == domain.AppointmentCancelled {
			return domain.Invalidf("appointment %s is already cancelled", id)
		}
		if err := appointment.Transition(domain.AppointmentCancelled); err != nil {
			return err
		}
		appointment.AppendGuardComment("Cancellation Reason", reason)

		if appointment.TrailerID != nil {
			trailer, err := s.trailers.FindByID(ctx, *appointment.TrailerID)
			if err != nil {
				return fmt.Errorf("service: failed to look up trailer %s: %w", *appointment.TrailerID, err)
			}
			if trailer != nil && trailer.CurrentAppointmentID != nil && *trailer.CurrentAppointmentID == appointment.ID {
				trailer.CurrentAppointmentID = nil
				if err := s.trailers.Save(ctx, trailer); err != nil {
					return fmt.Errorf("service: failed to save trailer %s: %w", trailer.ID, err)
				}
			}
		}
		if err := s.appointments.Save(ctx, appointment); err != nil {
			return fmt.Errorf("service: failed to save appointment %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("cancel_appointment", err)
	}

	s.invalidateActive(ctx, appointment.SiteID)
	logger.Get().Info("Appointment cancelled", zap.String("appointment_id", id))
	return appointment, nil
}

// GetByID retrieves one appointment.
func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.getAppointment(ctx, id)
}

// GetBySite retrieves every appointment for a site.
func (s *AppointmentServiceImpl) GetBySite(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	if _, err := s.getSite(ctx, siteID); err != nil {
		return nil, err
	}
	return s.appointments.FindBySite(ctx, siteID)
}

// GetActiveBySite retrieves the CHECKED_IN and IN_PROGRESS appointments
// for a site, served from the cache when warm.
func (s *AppointmentServiceImpl) GetActiveBySite(ctx context.Context, siteID string) ([]domain.Appointment, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, siteID); err == nil && cached != nil {
			return cached, nil
		}
	}
	if _, err := s.getSite(ctx, siteID); err != nil {
		return nil, err
	}
	active, err := s.appointments.FindActiveBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, siteID, active); err != nil {
			logger.Get().Warn("Failed to cache active appointments", zap.String("site_id", siteID), zap.Error(err))
		}
	}
	return active, nil
}

// GetByTrailer retrieves every appointment for a trailer.
func (s *AppointmentServiceImpl) GetByTrailer(ctx context.Context, trailerID string) ([]domain.Appointment, error) {
	if _, err := s.getTrailer(ctx, trailerID); err != nil {
		return nil, err
	}
	return s.appointments.FindByTrailer(ctx, trailerID)
}

// GetByGate retrieves appointments that used a gate for check-in or
// check-out.
func (s *AppointmentServiceImpl) GetByGate(ctx context.Context, gateID string) ([]domain.Appointment, error) {
	if _, err := s.getGate(ctx, gateID); err != nil {
		return nil, err
	}
	return s.appointments.FindByGate(ctx, gateID)
}

// GetByDateRange retrieves SCHEDULED appointments inside the range.
func (s *AppointmentServiceImpl) GetByDateRange(ctx context.Context, start, end *time.Time) ([]domain.Appointment, error) {
	if start == nil || end == nil {
		return nil, domain.Invalidf("both start and end dates are required")
	}
	if start.After(*end) {
		return nil, domain.Invalidf("start date cannot be after end date")
	}
	return s.appointments.FindScheduledBetween(ctx, *start, *end)
}

func (s *AppointmentServiceImpl) invalidateActive(ctx context.Context, siteID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, siteID); err != nil {
		logger.Get().Warn("Failed to invalidate active appointment cache", zap.String("site_id", siteID), zap.Error(err))
	}
}

func (s *AppointmentServiceImpl) fail(operation string, err error) error {
	s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	return err
}

func (s *AppointmentServiceImpl) getSite(ctx context.Context, id string) (*domain.Site, error) {
	site, err := s.sites.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up site %s: %w", id, err)
	}
	if site == nil {
		return nil, domain.NotFound("site", id)
	}
	return site, nil
}

func (s *AppointmentServiceImpl) getGate(ctx context.Context, id string) (*domain.Gate, error) {
	gate, err := s.gates.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up gate %s: %w", id, err)
	}
	if gate == nil {
		return nil, domain.NotFound("gate", id)
	}
	return gate, nil
}

func (s *AppointmentServiceImpl) getCarrier(ctx context.Context, id string) (*domain.Carrier, error) {
	carrier, err := s.carriers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up carrier %s: %w", id, err)
	}
	if carrier == nil {
		return nil, domain.NotFound("carrier", id)
	}
	return carrier, nil
}

func (s *AppointmentServiceImpl) getTrailer(ctx context.Context, id string) (*domain.Trailer, error) {
	trailer, err := s.trailers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up trailer %s: %w", id, err)
	}
	if trailer == nil {
		return nil, domain.NotFound("trailer", id)
	}
	return trailer, nil
}

func (s *AppointmentServiceImpl) getAppointment(ctx context.Context, id string) (*domain.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up appointment %s: %w", id, err)
	}
	if appointment == nil {
		return nil, domain.NotFound("appointment", id)
	}
	return appointment, nil
}

func validateCheckInInput(in ports.CheckInInput) error {
	if in.SiteID == "" {
		return domain.Invalidf("site ID is required for check-in")
	}
	if in.GateID == "" {
		return domain.Invalidf("gate ID is required for check-in")
	}
	if strings.TrimSpace(in.TrailerNumber) == "" {
		return domain.Invalidf("trailer number is required for check-in")
	}
	if in.CarrierID == "" {
		return domain.Invalidf("carrier ID is required for check-in")
	}
	if in.LoadStatus == "" {
		return domain.Invalidf("load status is required for check-in")
	}
	if in.AppointmentType != "" && !domain.ValidAppointmentType(in.AppointmentType) {
		return domain.Invalidf("invalid appointment type: %s", in.AppointmentType)
	}
	return nil
}

func validateCheckOutInput(in ports.CheckOutInput) error {
	if in.TrailerID == "" {
		return domain.Invalidf("trailer ID is required for check-out")
	}
	if in.GateID == "" {
		return domain.Invalidf("gate ID is required for check-out")
	}
	if in.SiteID == "" {
		return domain.Invalidf("site ID is required for check-out")
	}
	if in.LoadStatus == "" {
		return domain.Invalidf("load status is required for check-out")
	}
	if in.Condition == "" {
		return domain.Invalidf("trailer condition is required for check-out")
	}
	return nil
}
