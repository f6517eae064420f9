package service

import (
	"context"
	"fmt"
	"time"

	"yardflow/internal/core/locker"
	"yardflow/internal/core/logger"
	"yardflow/internal/core/metrics"
	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"go.uber.org/zap"
)

// TrailerServiceImpl implements ports.TrailerService: trailer state
// queries and transitions, slot assignment through the registry, and
// detention accrual.
type TrailerServiceImpl struct {
	trailers     ports.TrailerRepository
	doors        ports.DoorRepository
	docks        ports.DockRepository
	locations    ports.YardLocationRepository
	carriers     ports.CarrierRepository
	appointments ports.AppointmentRepository
	registry     *SlotRegistry
	tx           ports.TxManager
	locks        *locker.KeyedLocker
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewTrailerService creates a new TrailerServiceImpl.
func NewTrailerService(
	trailers ports.TrailerRepository,
	doors ports.DoorRepository,
	docks ports.DockRepository,
	locations ports.YardLocationRepository,
	carriers ports.CarrierRepository,
	appointments ports.AppointmentRepository,
	registry *SlotRegistry,
	tx ports.TxManager,
	locks *locker.KeyedLocker,
	m *metrics.Metrics,
) *TrailerServiceImpl {
	return &TrailerServiceImpl{
		trailers:     trailers,
		doors:        doors,
		docks:        docks,
		locations:    locations,
		carriers:     carriers,
		appointments: appointments,
		registry:     registry,
		tx:           tx,
		locks:        locks,
		metrics:      m,
		now:          time.Now,
	}
}

// GetByID retrieves one trailer.
func (s *TrailerServiceImpl) GetByID(ctx context.Context, id string) (*domain.Trailer, error) {
	return s.getTrailer(ctx, id)
}

// GetByNumber retrieves a trailer by its unique number.
func (s *TrailerServiceImpl) GetByNumber(ctx context.Context, trailerNumber string) (*domain.Trailer, error) {
	trailer, err := s.trailers.FindByNumber(ctx, trailerNumber)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up trailer %s: %w", trailerNumber, err)
	}
	if trailer == nil {
		return nil, domain.NotFound("trailer", trailerNumber)
	}
	return trailer, nil
}

// GetBySite retrieves the trailers currently at a site, whether parked
// at one of its doors, parked in its yard, or checked in through one of
// its gates.
func (s *TrailerServiceImpl) GetBySite(ctx context.Context, siteID string) ([]domain.Trailer, error) {
	all, err := s.trailers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list trailers: %w", err)
	}

	var result []domain.Trailer
	for _, trailer := range all {
		at, err := s.trailerAtSite(ctx, &trailer, siteID)
		if err != nil {
			return nil, err
		}
		if at {
			result = append(result, trailer)
		}
	}
	return result, nil
}

// GetByProcessStatus retrieves trailers in a given process status.
func (s *TrailerServiceImpl) GetByProcessStatus(ctx context.Context, status domain.ProcessStatus) ([]domain.Trailer, error) {
	return s.trailers.FindByProcessStatus(ctx, status)
}

// UpdateProcessStatus applies a manual process status change, rejecting
// statuses that contradict the trailer's load status.
func (s *TrailerServiceImpl) UpdateProcessStatus(ctx context.Context, id string, status domain.ProcessStatus) (*domain.Trailer, error) {
	unlock := s.locks.Lock("trailer:" + id)
	defer unlock()

	trailer, err := s.getTrailer(ctx, id)
	if err != nil {
		return nil, s.fail("update_process_status", err)
	}
	if err := trailer.ValidateProcessStatusChange(status); err != nil {
		return nil, s.fail("update_process_status", err)
	}
	trailer.ProcessStatus = status
	if err := s.trailers.Save(ctx, trailer); err != nil {
		return nil, s.fail("update_process_status", fmt.Errorf("service: failed to save trailer %s: %w", id, err))
	}
	return trailer, nil
}

// AssignToDoor parks a trailer at a door, releasing any slot it holds,
// and re-derives its process status from its load status.
func (s *TrailerServiceImpl) AssignToDoor(ctx context.Context, trailerID, doorID string) (*domain.Trailer, error) {
	unlock := s.locks.Lock("trailer:"+trailerID, "slot:"+doorID)
	defer unlock()

	var trailer *domain.Trailer
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		trailer, err = s.getTrailer(ctx, trailerID)
		if err != nil {
			return err
		}
		door, err := s.doors.FindByID(ctx, doorID)
		if err != nil {
			return fmt.Errorf("service: failed to look up door %s: %w", doorID, err)
		}
		if door == nil {
			return domain.NotFound("door", doorID)
		}

		if err := s.registry.AssignDoor(ctx, trailer, door); err != nil {
			return err
		}
		if status, ok := domain.DeriveProcessStatus(trailer.LoadStatus, domain.ContextDoorAssignment); ok {
			trailer.ProcessStatus = status
		}
		if err := s.trailers.Save(ctx, trailer); err != nil {
			return fmt.Errorf("service: failed to save trailer %s: %w", trailerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("assign_door", err)
	}

	logger.Get().Info("Trailer assigned to door",
		zap.String("trailer_id", trailerID),
		zap.String("door_id", doorID),
	)
	return trailer, nil
}

// AssignToYardLocation parks a trailer at a yard location, releasing
// any slot it holds. No process status derivation applies in the yard.
func (s *TrailerServiceImpl) AssignToYardLocation(ctx context.Context, trailerID, locationID string) (*domain.Trailer, error) {
	unlock := s.locks.Lock("trailer:"+trailerID, "slot:"+locationID)
	defer unlock()

	var trailer *domain.Trailer
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		trailer, err = s.getTrailer(ctx, trailerID)
		if err != nil {
			return err
		}
		location, err := s.locations.FindByID(ctx, locationID)
		if err != nil {
			return fmt.Errorf("service: failed to look up yard location %s: %w", locationID, err)
		}
		if location == nil {
			return domain.NotFound("yard location", locationID)
		}

		if err := s.registry.AssignYardLocation(ctx, trailer, location); err != nil {
			return err
		}
		if err := s.trailers.Save(ctx, trailer); err != nil {
			return fmt.Errorf("service: failed to save trailer %s: %w", trailerID, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("assign_yard_location", err)
	}

	logger.Get().Info("Trailer assigned to yard location",
		zap.String("trailer_id", trailerID),
		zap.String("location_id", locationID),
	)
	return trailer, nil
}

// UpdateDetentionStatus evaluates elapsed yard time against the
// carrier's free-time policy and activates detention once the allowance
// is exceeded. The operation is idempotent: re-running it after
// activation changes nothing, and detention is only cleared by
// check-out.
func (s *TrailerServiceImpl) UpdateDetentionStatus(ctx context.Context, trailerID string) error {
	unlock := s.locks.Lock("trailer:" + trailerID)
	defer unlock()

	trailer, err := s.getTrailer(ctx, trailerID)
	if err != nil {
		return s.fail("update_detention", err)
	}
	carrier, err := s.trailerCarrier(ctx, trailer)
	if err != nil {
		return s.fail("update_detention", err)
	}
	if carrier == nil || !carrier.DetentionEnabled || trailer.CheckInTime == nil {
		return nil
	}

	hoursInYard := int64(s.now().Sub(*trailer.CheckInTime) / time.Hour)
	if hoursInYard <= int64(carrier.FreeTimeHours) || trailer.DetentionActive {
		return nil
	}

	start := trailer.CheckInTime.Add(time.Duration(carrier.FreeTimeHours) * time.Hour)
	trailer.DetentionStartTime = &start
	trailer.DetentionActive = true
	if err := s.trailers.Save(ctx, trailer); err != nil {
		return s.fail("update_detention", fmt.Errorf("service: failed to save trailer %s: %w", trailerID, err))
	}

	s.metrics.DetentionActivations.Inc()
	logger.Get().Info("Detention activated",
		zap.String("trailer_number", trailer.TrailerNumber),
		zap.Time("detention_start", start),
	)
	return nil
}

// CalculateDetentionCharge computes the fee currently owed for a
// trailer under its carrier's detention policy. Pure read: nothing is
// mutated.
func (s *TrailerServiceImpl) CalculateDetentionCharge(ctx context.Context, trailerID string) (*domain.DetentionCharge, error) {
	trailer, err := s.getTrailer(ctx, trailerID)
	if err != nil {
		return nil, err
	}
	carrier, err := s.trailerCarrier(ctx, trailer)
	if err != nil {
		return nil, err
	}
	if carrier == nil {
		return nil, domain.Invalidf("trailer %s has no carrier", trailer.TrailerNumber)
	}
	if !carrier.DetentionEnabled {
		return nil, domain.Invalidf("carrier %s does not have detention enabled", carrier.Name)
	}

	var hoursOverdue int64
	if trailer.DetentionActive && trailer.DetentionStartTime != nil {
		hoursOverdue = int64(s.now().Sub(*trailer.DetentionStartTime) / time.Hour)
	}
	charge := domain.CalculateDetentionCharge(hoursOverdue, carrier)
	charge.TrailerID = trailer.ID
	return &charge, nil
}

func (s *TrailerServiceImpl) trailerAtSite(ctx context.Context, trailer *domain.Trailer, siteID string) (bool, error) {
	if trailer.AssignedDoorID != nil {
		door, err := s.doors.FindByID(ctx, *trailer.AssignedDoorID)
		if err != nil {
			return false, fmt.Errorf("service: failed to look up door %s: %w", *trailer.AssignedDoorID, err)
		}
		if door == nil {
			return false, nil
		}
		dock, err := s.docks.FindByID(ctx, door.DockID)
		if err != nil {
			return false, fmt.Errorf("service: failed to look up dock %s: %w", door.DockID, err)
		}
		return dock != nil && dock.SiteID == siteID, nil
	}
	if trailer.YardLocationID != nil {
		location, err := s.locations.FindByID(ctx, *trailer.YardLocationID)
		if err != nil {
			return false, fmt.Errorf("service: failed to look up yard location %s: %w", *trailer.YardLocationID, err)
		}
		return location != nil && location.SiteID == siteID, nil
	}
	if trailer.CurrentAppointmentID != nil {
		appointment, err := s.appointments.FindByID(ctx, *trailer.CurrentAppointmentID)
		if err != nil {
			return false, fmt.Errorf("service: failed to look up appointment %s: %w", *trailer.CurrentAppointmentID, err)
		}
		return appointment != nil && appointment.SiteID == siteID, nil
	}
	return false, nil
}

func (s *TrailerServiceImpl) trailerCarrier(ctx context.Context, trailer *domain.Trailer) (*domain.Carrier, error) {
	if trailer.CarrierID == nil {
		return nil, nil
	}
	carrier, err := s.carriers.FindByID(ctx, *trailer.CarrierID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up carrier %s: %w", *trailer.CarrierID, err)
	}
	return carrier, nil
}

func (s *TrailerServiceImpl) fail(operation string, err error) error {
	s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	return err
}

func (s *TrailerServiceImpl) getTrailer(ctx context.Context, id string) (*domain.Trailer, error) {
	trailer, err := s.trailers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up trailer %s: %w", id, err)
	}
	if trailer == nil {
		return nil, domain.NotFound("trailer", id)
	}
	return trailer, nil
}
