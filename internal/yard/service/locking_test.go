package service

import (
	"context"
	"testing"
	"time"

	"yardflow/internal/core/locker"
	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// sharedLockerFixture wires the appointment and trailer services over
// one KeyedLocker and one set of repositories, the way main.go does.
type sharedLockerFixture struct {
	trailers     *MockTrailerRepository
	appointments *MockAppointmentRepository
	sites        *MockSiteRepository
	gates        *MockGateRepository
	carriers     *MockCarrierRepository
	doors        *MockDoorRepository
	docks        *MockDockRepository
	locations    *MockYardLocationRepository
	cache        *MockActiveAppointmentCache

	appointmentSvc *AppointmentServiceImpl
	trailerSvc     *TrailerServiceImpl
}

func newSharedLockerFixture() *sharedLockerFixture {
	f := &sharedLockerFixture{
		trailers:     new(MockTrailerRepository),
		appointments: new(MockAppointmentRepository),
		sites:        new(MockSiteRepository),
		gates:        new(MockGateRepository),
		carriers:     new(MockCarrierRepository),
		doors:        new(MockDoorRepository),
		docks:        new(MockDockRepository),
		locations:    new(MockYardLocationRepository),
		cache:        new(MockActiveAppointmentCache),
	}
	locks := locker.New()
	registry := NewSlotRegistry(f.doors, f.locations)
	f.appointmentSvc = NewAppointmentService(
		f.appointments, f.sites, f.trailers, f.carriers, f.gates,
		registry, f.cache, passthroughTx{}, locks, newTestMetrics(),
	)
	f.trailerSvc = NewTrailerService(
		f.trailers, f.doors, f.docks, f.locations, f.carriers, f.appointments,
		registry, passthroughTx{}, locks, newTestMetrics(),
	)
	return f
}

// A check-out takes its trailer, slot and appointment keys in one
// sorted acquisition, so a concurrent slot assignment for the same
// trailer and door waits and then proceeds instead of both operations
// blocking on each other forever.
func TestProcessCheckOut_ConcurrentDoorAssignmentCompletes(t *testing.T) {
	f := newSharedLockerFixture()

	doorID := "door-1"
	appointmentID := "appt-1"
	trailer := &domain.Trailer{
		ID:                   "trailer-1",
		TrailerNumber:        "TRL-100",
		LoadStatus:           domain.LoadStatusFull,
		ProcessStatus:        domain.ProcessStatusLoaded,
		AssignedDoorID:       &doorID,
		CurrentAppointmentID: &appointmentID,
	}
	door := &domain.Door{ID: doorID, Code: "D1", Status: domain.SlotOccupied, CurrentTrailerID: &trailer.ID}
	appointment := &domain.Appointment{ID: appointmentID, SiteID: "site-1", Status: domain.AppointmentInProgress}

	// The site lookup happens after the check-out holds its keys;
	// signalling there guarantees the assignment starts mid-flight.
	checkOutHoldsKeys := make(chan struct{})
	f.sites.On("FindByID", mock.Anything, "site-1").
		Run(func(mock.Arguments) { close(checkOutHoldsKeys) }).
		Return(testSite(), nil)
	f.trailers.On("FindByID", mock.Anything, "trailer-1").Return(trailer, nil)
	f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckOut), nil)
	f.appointments.On("FindByID", mock.Anything, appointmentID).Return(appointment, nil)
	f.doors.On("FindByID", mock.Anything, doorID).Return(door, nil)
	f.doors.On("Save", mock.Anything, door).Return(nil)
	f.trailers.On("Save", mock.Anything, trailer).Return(nil)
	f.appointments.On("Save", mock.Anything, appointment).Return(nil)
	f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

	done := make(chan error, 2)
	go func() {
		_, err := f.appointmentSvc.ProcessCheckOut(context.Background(), ports.CheckOutInput{
			SiteID:     "site-1",
			GateID:     "gate-1",
			TrailerID:  "trailer-1",
			LoadStatus: domain.LoadStatusFull,
			Condition:  domain.TrailerConditionClean,
		})
		done <- err
	}()
	go func() {
		<-checkOutHoldsKeys
		_, err := f.trailerSvc.AssignToDoor(context.Background(), "trailer-1", doorID)
		done <- err
	}()

	for i := 0; i < 2; i++ {
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("check-out and door assignment blocked on each other")
		}
	}

	// The check-out released the door first, so the assignment found
	// it available and re-parked the trailer.
	assert.Equal(t, domain.SlotOccupied, door.Status)
	require.NotNil(t, trailer.AssignedDoorID)
	assert.Equal(t, doorID, *trailer.AssignedDoorID)
}

// A check-in that resolves an existing trailer holds that trailer's id
// key, so id-keyed mutators such as the detention sweep wait for it
// instead of interleaving with its reads and saves.
func TestProcessCheckIn_ExistingTrailerExcludesDetentionSweep(t *testing.T) {
	f := newSharedLockerFixture()

	existing := &domain.Trailer{ID: "trailer-1", TrailerNumber: "TRL-100"}
	f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
	f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckIn), nil)
	f.carriers.On("FindByID", mock.Anything, "carrier-1").Return(testCarrier(), nil)
	f.trailers.On("FindByNumber", mock.Anything, "TRL-100").Return(existing, nil)
	f.trailers.On("FindByID", mock.Anything, "trailer-1").Return(existing, nil)
	f.trailers.On("Save", mock.Anything, existing).Return(nil)
	f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

	// The appointment save happens after the check-in holds the id
	// key; parking there keeps the critical section open while the
	// sweep attempts to enter.
	checkInHoldsKeys := make(chan struct{})
	releaseCheckIn := make(chan struct{})
	f.appointments.On("Save", mock.Anything, mock.AnythingOfType("*domain.Appointment")).
		Run(func(mock.Arguments) {
			close(checkInHoldsKeys)
			<-releaseCheckIn
		}).
		Return(nil)

	checkInDone := make(chan error, 1)
	go func() {
		_, err := f.appointmentSvc.ProcessCheckIn(context.Background(), checkInInput())
		checkInDone <- err
	}()
	<-checkInHoldsKeys

	sweepDone := make(chan error, 1)
	go func() {
		sweepDone <- f.trailerSvc.UpdateDetentionStatus(context.Background(), "trailer-1")
	}()

	select {
	case <-sweepDone:
		t.Fatal("detention sweep ran inside the check-in critical section")
	case <-time.After(100 * time.Millisecond):
	}

	close(releaseCheckIn)
	select {
	case err := <-checkInDone:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("check-in did not finish")
	}
	select {
	case err := <-sweepDone:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("detention sweep did not finish")
	}
}
