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

// MoveRequestServiceImpl implements ports.MoveRequestService.
type MoveRequestServiceImpl struct {
	moves        ports.MoveRequestRepository
	trailers     ports.TrailerRepository
	users        ports.UserRepository
	appointments ports.AppointmentRepository
	tx           ports.TxManager
	locks        *locker.KeyedLocker
	metrics      *metrics.Metrics
	now          func() time.Time
}

// NewMoveRequestService creates a new MoveRequestServiceImpl.
func NewMoveRequestService(
	moves ports.MoveRequestRepository,
	trailers ports.TrailerRepository,
	users ports.UserRepository,
	appointments ports.AppointmentRepository,
	tx ports.TxManager,
	locks *locker.KeyedLocker,
	m *metrics.Metrics,
) *MoveRequestServiceImpl {
	return &MoveRequestServiceImpl{
		moves:        moves,
		trailers:     trailers,
		users:        users,
		appointments: appointments,
		tx:           tx,
		locks:        locks,
		metrics:      m,
		now:          time.Now,
	}
}

// Create opens a REQUESTED move for a trailer. The move's site is
// derived from the trailer's active appointment; the requester must
// have access to that site.
func (s *MoveRequestServiceImpl) Create(ctx context.Context, in ports.CreateMoveInput) (*domain.MoveRequest, error) {
	if err := validateCreateMoveInput(in); err != nil {
		return nil, s.fail("create_move", err)
	}

	trailer, err := s.getTrailer(ctx, in.TrailerID)
	if err != nil {
		return nil, s.fail("create_move", err)
	}
	requester, err := s.getUser(ctx, in.RequestedByID)
	if err != nil {
		return nil, s.fail("create_move", err)
	}
	siteID, err := s.determineTrailerSite(ctx, trailer)
	if err != nil {
		return nil, s.fail("create_move", err)
	}
	if !requester.HasSiteAccess(siteID) {
		return nil, s.fail("create_move", domain.Invalidf("user %s does not have access to site %s", requester.Username, siteID))
	}

	move := &domain.MoveRequest{
		ID:                      uuid.NewString(),
		SiteID:                  siteID,
		TrailerID:               trailer.ID,
		MoveType:                in.MoveType,
		Status:                  domain.MoveRequested,
		SourceLocationType:      in.SourceLocationType,
		SourceLocationID:        in.SourceLocationID,
		DestinationLocationType: in.DestinationLocationType,
		DestinationLocationID:   in.DestinationLocationID,
		RequestedByID:           requester.ID,
		RequestTime:             s.now(),
		Notes:                   in.Notes,
	}
	if err := s.moves.Save(ctx, move); err != nil {
		return nil, s.fail("create_move", fmt.Errorf("service: failed to save move request: %w", err))
	}

	logger.Get().Info("Move request created",
		zap.String("move_request_id", move.ID),
		zap.String("trailer_number", trailer.TrailerNumber),
	)
	return move, nil
}

// Assign hands a REQUESTED move to a spotter with access to its site.
func (s *MoveRequestServiceImpl) Assign(ctx context.Context, id, spotterID string) (*domain.MoveRequest, error) {
	unlock := s.locks.Lock("move:" + id)
	defer unlock()

	move, err := s.getMove(ctx, id)
	if err != nil {
		return nil, s.fail("assign_move", err)
	}
	spotter, err := s.getUser(ctx, spotterID)
	if err != nil {
		return nil, s.fail("assign_move", err)
	}
	if move.Status != domain.MoveRequested {
		return nil, s.fail("assign_move", domain.Invalidf(
			"cannot assign move request that is not in REQUESTED status: current status is %s", move.Status))
	}
	if spotter.Role != domain.RoleSpotter {
		return nil, s.fail("assign_move", domain.Invalidf("user %s is not a spotter: role is %s", spotter.Username, spotter.Role))
	}
	if !spotter.HasSiteAccess(move.SiteID) {
		return nil, s.fail("assign_move", domain.Invalidf("user %s does not have access to site %s", spotter.Username, move.SiteID))
	}

	if err := move.Transition(domain.MoveAssigned); err != nil {
		return nil, s.fail("assign_move", err)
	}
	now := s.now()
	move.AssignedSpotterID = &spotter.ID
	move.AssignedTime = &now
	if err := s.moves.Save(ctx, move); err != nil {
		return nil, s.fail("assign_move", fmt.Errorf("service: failed to save move request %s: %w", id, err))
	}

	logger.Get().Info("Move request assigned",
		zap.String("move_request_id", id),
		zap.String("spotter", spotter.Username),
	)
	return move, nil
}

// Start marks an ASSIGNED move as IN_PROGRESS.
func (s *MoveRequestServiceImpl) Start(ctx context.Context, id string) (*domain.MoveRequest, error) {
	unlock := s.locks.Lock("move:" + id)
	defer unlock()

	move, err := s.getMove(ctx, id)
	if err != nil {
		return nil, s.fail("start_move", err)
	}
	if move.Status != domain.MoveAssigned {
		return nil, s.fail("start_move", domain.Invalidf(
			"cannot start move request that is not in ASSIGNED status: current status is %s", move.Status))
	}
	if err := move.Transition(domain.MoveInProgress); err != nil {
		return nil, s.fail("start_move", err)
	}
	now := s.now()
	move.StartTime = &now
	if err := s.moves.Save(ctx, move); err != nil {
		return nil, s.fail("start_move", fmt.Errorf("service: failed to save move request %s: %w", id, err))
	}
	return move, nil
}

// Complete finishes an IN_PROGRESS move and applies the trailer
// automation: spotting to a door puts the trailer into LOADING or
// UNLOADING; pulling from a door finishes an in-flight LOADING or
// UNLOADING cycle. A pull from a door in any other process status
// leaves the trailer untouched.
func (s *MoveRequestServiceImpl) Complete(ctx context.Context, id string) (*domain.MoveRequest, error) {
	unlock := s.locks.Lock("move:" + id)
	defer unlock()

	var move *domain.MoveRequest
	err := s.tx.Do(ctx, func(ctx context.Context) error {
		var err error
		move, err = s.getMove(ctx, id)
		if err != nil {
			return err
		}
		if move.Status != domain.MoveInProgress {
			return domain.Invalidf("cannot complete move request that is not in IN_PROGRESS status: current status is %s", move.Status)
		}

		unlockTrailer := s.locks.Lock("trailer:" + move.TrailerID)
		defer unlockTrailer()

		if err := move.Transition(domain.MoveCompleted); err != nil {
			return err
		}
		now := s.now()
		move.CompletionTime = &now

		if err := s.applyTrailerAutomation(ctx, move); err != nil {
			return err
		}
		if err := s.moves.Save(ctx, move); err != nil {
			return fmt.Errorf("service: failed to save move request %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail("complete_move", err)
	}

	s.metrics.MovesCompleted.Inc()
	logger.Get().Info("Move request completed", zap.String("move_request_id", id))
	return move, nil
}

// Cancel cancels a move in any non-COMPLETED state. Cancelling twice
// fails rather than silently succeeding.
func (s *MoveRequestServiceImpl) Cancel(ctx context.Context, id string) (*domain.MoveRequest, error) {
	unlock := s.locks.Lock("move:" + id)
	defer unlock()

	move, err := s.getMove(ctx, id)
	if err != nil {
		return nil, s.fail("cancel_move", err)
	}
	if move.Status == domain.MoveCompleted {
		return nil, s.fail("cancel_move", domain.Invalidf("cannot cancel a completed move request"))
	}
	if move.Status == domain.MoveCancelled {
		return nil, s.fail("cancel_move", domain.Invalidf("move request %s is already cancelled", id))
	}
	if err := move.Transition(domain.MoveCancelled); err != nil {
		return nil, s.fail("cancel_move", err)
	}
	if err := s.moves.Save(ctx, move); err != nil {
		return nil, s.fail("cancel_move", fmt.Errorf("service: failed to save move request %s: %w", id, err))
	}
	logger.Get().Info("Move request cancelled", zap.String("move_request_id", id))
	return move, nil
}

// AddNotes appends notes to a move in any status.
func (s *MoveRequestServiceImpl) AddNotes(ctx context.Context, id, notes string) (*domain.MoveRequest, error) {
	if strings.TrimSpace(notes) == "" {
		return nil, s.fail("add_notes", domain.Invalidf("notes cannot be empty"))
	}

	unlock := s.locks.Lock("move:" + id)
	defer unlock()

	move, err := s.getMove(ctx, id)
	if err != nil {
		return nil, s.fail("add_notes", err)
	}
	move.AppendNotes(notes)
	if err := s.moves.Save(ctx, move); err != nil {
		return nil, s.fail("add_notes", fmt.Errorf("service: failed to save move request %s: %w", id, err))
	}
	return move, nil
}

// GetByID retrieves one move request.
func (s *MoveRequestServiceImpl) GetByID(ctx context.Context, id string) (*domain.MoveRequest, error) {
	return s.getMove(ctx, id)
}

// GetPending retrieves every REQUESTED move.
func (s *MoveRequestServiceImpl) GetPending(ctx context.Context) ([]domain.MoveRequest, error) {
	return s.moves.FindByStatus(ctx, domain.MoveRequested)
}

// GetBySpotter retrieves the moves assigned to a spotter.
func (s *MoveRequestServiceImpl) GetBySpotter(ctx context.Context, spotterID string) ([]domain.MoveRequest, error) {
	if _, err := s.getUser(ctx, spotterID); err != nil {
		return nil, err
	}
	return s.moves.FindBySpotter(ctx, spotterID)
}

// GetBySite retrieves every move for a site.
func (s *MoveRequestServiceImpl) GetBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	return s.moves.FindBySite(ctx, siteID)
}

// GetPendingBySite retrieves the REQUESTED moves for a site.
func (s *MoveRequestServiceImpl) GetPendingBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	return s.moves.FindBySiteAndStatus(ctx, siteID, domain.MoveRequested)
}

// GetByTrailer retrieves every move for a trailer.
func (s *MoveRequestServiceImpl) GetByTrailer(ctx context.Context, trailerID string) ([]domain.MoveRequest, error) {
	if _, err := s.getTrailer(ctx, trailerID); err != nil {
		return nil, err
	}
	return s.moves.FindByTrailer(ctx, trailerID)
}

// GetByStatus retrieves moves in a given status.
func (s *MoveRequestServiceImpl) GetByStatus(ctx context.Context, status domain.MoveStatus) ([]domain.MoveRequest, error) {
	if !domain.ValidMoveStatus(status) {
		return nil, domain.Invalidf("invalid move status: %s", status)
	}
	return s.moves.FindByStatus(ctx, status)
}

// GetActive retrieves moves in REQUESTED, ASSIGNED or IN_PROGRESS.
func (s *MoveRequestServiceImpl) GetActive(ctx context.Context) ([]domain.MoveRequest, error) {
	return s.moves.FindActive(ctx)
}

// GetActiveBySite retrieves a site's moves in REQUESTED, ASSIGNED or
// IN_PROGRESS.
func (s *MoveRequestServiceImpl) GetActiveBySite(ctx context.Context, siteID string) ([]domain.MoveRequest, error) {
	return s.moves.FindActiveBySite(ctx, siteID)
}

// GetByDateRange retrieves moves requested inside the range.
func (s *MoveRequestServiceImpl) GetByDateRange(ctx context.Context, start, end *time.Time) ([]domain.MoveRequest, error) {
	if start == nil || end == nil {
		return nil, domain.Invalidf("both start and end dates are required")
	}
	if start.After(*end) {
		return nil, domain.Invalidf("start date cannot be after end date")
	}
	return s.moves.FindRequestedBetween(ctx, *start, *end)
}

func (s *MoveRequestServiceImpl) applyTrailerAutomation(ctx context.Context, move *domain.MoveRequest) error {
	spotToDoor := move.MoveType == domain.MoveSpot && move.DestinationLocationType == domain.LocationDoor
	pullFromDoor := move.MoveType == domain.MovePull && move.SourceLocationType == domain.LocationDoor
	if !spotToDoor && !pullFromDoor {
		return nil
	}

	trailer, err := s.getTrailer(ctx, move.TrailerID)
	if err != nil {
		return err
	}

	changed := false
	if spotToDoor {
		if status, ok := domain.DeriveProcessStatus(trailer.LoadStatus, domain.ContextSpottedAtDoor); ok {
			trailer.ProcessStatus = status
			changed = true
		}
	} else {
		switch trailer.ProcessStatus {
		case domain.ProcessStatusLoading:
			trailer.ProcessStatus = domain.ProcessStatusLoaded
			trailer.LoadStatus = domain.LoadStatusFull
			changed = true
		case domain.ProcessStatusUnloading:
			trailer.ProcessStatus = domain.ProcessStatusUnloaded
			trailer.LoadStatus = domain.LoadStatusEmpty
			changed = true
		}
	}
	if !changed {
		return nil
	}
	if err := s.trailers.Save(ctx, trailer); err != nil {
		return fmt.Errorf("service: failed to save trailer %s: %w", trailer.ID, err)
	}
	return nil
}

func (s *MoveRequestServiceImpl) determineTrailerSite(ctx context.Context, trailer *domain.Trailer) (string, error) {
	if trailer.CurrentAppointmentID == nil {
		return "", domain.Invalidf("unable to determine site for trailer %s: trailer must have an active appointment", trailer.TrailerNumber)
	}
	appointment, err := s.appointments.FindByID(ctx, *trailer.CurrentAppointmentID)
	if err != nil {
		return "", fmt.Errorf("service: failed to look up appointment %s: %w", *trailer.CurrentAppointmentID, err)
	}
	if appointment == nil {
		return "", domain.Invalidf("unable to determine site for trailer %s: trailer must have an active appointment", trailer.TrailerNumber)
	}
	return appointment.SiteID, nil
}

func (s *MoveRequestServiceImpl) fail(operation string, err error) error {
	s.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	return err
}

func (s *MoveRequestServiceImpl) getMove(ctx context.Context, id string) (*domain.MoveRequest, error) {
	move, err := s.moves.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up move request %s: %w", id, err)
	}
	if move == nil {
		return nil, domain.NotFound("move request", id)
	}
	return move, nil
}

func (s *MoveRequestServiceImpl) getTrailer(ctx context.Context, id string) (*domain.Trailer, error) {
	trailer, err := s.trailers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up trailer %s: %w", id, err)
	}
	if trailer == nil {
		return nil, domain.NotFound("trailer", id)
	}
	return trailer, nil
}

func (s *MoveRequestServiceImpl) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to look up user %s: %w", id, err)
	}
	if user == nil {
		return nil, domain.NotFound("user", id)
	}
	return user, nil
}

func validateCreateMoveInput(in ports.CreateMoveInput) error {
	if in.TrailerID == "" {
		return domain.Invalidf("trailer ID is required")
	}
	if in.RequestedByID == "" {
		return domain.Invalidf("requesting user ID is required")
	}
	if in.MoveType == "" {
		return domain.Invalidf("move type is required")
	}
	if !domain.ValidMoveType(in.MoveType) {
		return domain.Invalidf("invalid move type: %s", in.MoveType)
	}
	if !domain.ValidLocationType(in.SourceLocationType) {
		return domain.Invalidf("invalid source location type: %s", in.SourceLocationType)
	}
	if !domain.ValidLocationType(in.DestinationLocationType) {
		return domain.Invalidf("invalid destination location type: %s", in.DestinationLocationType)
	}
	if in.SourceLocationID == "" {
		return domain.Invalidf("source location ID is required")
	}
	if in.DestinationLocationID == "" {
		return domain.Invalidf("destination location ID is required")
	}
	return nil
}
