package service

import (
	"context"
	"fmt"

	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"
)

// SlotRegistry owns door and yard location occupancy. A slot's status
// and its occupant reference are always updated together, and a trailer
// holds at most one slot; every mutation here keeps both invariants.
type SlotRegistry struct {
	doors     ports.DoorRepository
	locations ports.YardLocationRepository
}

// NewSlotRegistry creates a SlotRegistry over the slot repositories.
func NewSlotRegistry(doors ports.DoorRepository, locations ports.YardLocationRepository) *SlotRegistry {
	return &SlotRegistry{doors: doors, locations: locations}
}

// AssignDoor parks the trailer at the door. The door must be AVAILABLE;
// any slot the trailer currently holds is released first as part of the
// same unit of work. The caller persists the trailer.
func (r *SlotRegistry) AssignDoor(ctx context.Context, trailer *domain.Trailer, door *domain.Door) error {
	if door.Status != domain.SlotAvailable {
		return domain.Invalidf("door %s (%s) is not available: status is %s", door.Code, door.ID, door.Status)
	}

	if err := r.releaseYardLocation(ctx, trailer); err != nil {
		return err
	}
	if trailer.AssignedDoorID != nil && *trailer.AssignedDoorID != door.ID {
		if err := r.releaseDoor(ctx, trailer); err != nil {
			return err
		}
	}

	trailer.AssignedDoorID = &door.ID
	door.CurrentTrailerID = &trailer.ID
	door.Status = domain.SlotOccupied
	if err := r.doors.Save(ctx, door); err != nil {
		return fmt.Errorf("registry: failed to save door %s: %w", door.ID, err)
	}
	return nil
}

// AssignYardLocation parks the trailer at the yard location, releasing
// any prior slot first. The caller persists the trailer.
func (r *SlotRegistry) AssignYardLocation(ctx context.Context, trailer *domain.Trailer, location *domain.YardLocation) error {
	if location.Status != domain.SlotAvailable {
		return domain.Invalidf("yard location %s (%s) is not available: status is %s", location.Code, location.ID, location.Status)
	}

	if err := r.releaseDoor(ctx, trailer); err != nil {
		return err
	}
	if trailer.YardLocationID != nil && *trailer.YardLocationID != location.ID {
		if err := r.releaseYardLocation(ctx, trailer); err != nil {
			return err
		}
	}

	trailer.YardLocationID = &location.ID
	location.CurrentTrailerID = &trailer.ID
	location.Status = domain.SlotOccupied
	if err := r.locations.Save(ctx, location); err != nil {
		return fmt.Errorf("registry: failed to save yard location %s: %w", location.ID, err)
	}
	return nil
}

// Release frees whichever slot the trailer holds, if any, restoring it
// to AVAILABLE. The caller persists the trailer.
func (r *SlotRegistry) Release(ctx context.Context, trailer *domain.Trailer) error {
	if err := r.releaseDoor(ctx, trailer); err != nil {
		return err
	}
	return r.releaseYardLocation(ctx, trailer)
}

func (r *SlotRegistry) releaseDoor(ctx context.Context, trailer *domain.Trailer) error {
	if trailer.AssignedDoorID == nil {
		return nil
	}
	door, err := r.doors.FindByID(ctx, *trailer.AssignedDoorID)
	if err != nil {
		return fmt.Errorf("registry: failed to load door %s: %w", *trailer.AssignedDoorID, err)
	}
	if door != nil {
		door.CurrentTrailerID = nil
		door.Status = domain.SlotAvailable
		if err := r.doors.Save(ctx, door); err != nil {
			return fmt.Errorf("registry: failed to release door %s: %w", door.ID, err)
		}
	}
	trailer.AssignedDoorID = nil
	return nil
}

func (r *SlotRegistry) releaseYardLocation(ctx context.Context, trailer *domain.Trailer) error {
	if trailer.YardLocationID == nil {
		return nil
	}
	location, err := r.locations.FindByID(ctx, *trailer.YardLocationID)
	if err != nil {
		return fmt.Errorf("registry: failed to load yard location %s: %w", *trailer.YardLocationID, err)
	}
	if location != nil {
		location.CurrentTrailerID = nil
		location.Status = domain.SlotAvailable
		if err := r.locations.Save(ctx, location); err != nil {
			return fmt.Errorf("registry: failed to release yard location %s: %w", location.ID, err)
		}
	}
	trailer.YardLocationID = nil
	return nil
}
