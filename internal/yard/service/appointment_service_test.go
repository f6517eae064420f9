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

type appointmentFixture struct {
	appointments *MockAppointmentRepository
	sites        *MockSiteRepository
	trailers     *MockTrailerRepository
	carriers     *MockCarrierRepository
	gates        *MockGateRepository
	doors        *MockDoorRepository
	locations    *MockYardLocationRepository
	cache        *MockActiveAppointmentCache
	service      *AppointmentServiceImpl
}

func newAppointmentFixture() *appointmentFixture {
	f := &appointmentFixture{
		appointments: new(MockAppointmentRepository),
		sites:        new(MockSiteRepository),
		trailers:     new(MockTrailerRepository),
		carriers:     new(MockCarrierRepository),
		gates:        new(MockGateRepository),
		doors:        new(MockDoorRepository),
		locations:    new(MockYardLocationRepository),
		cache:        new(MockActiveAppointmentCache),
	}
	registry := NewSlotRegistry(f.doors, f.locations)
	f.service = NewAppointmentService(
		f.appointments, f.sites, f.trailers, f.carriers, f.gates,
		registry, f.cache, passthroughTx{}, locker.New(), newTestMetrics(),
	)
	return f
}

func testSite() *domain.Site {
	return &domain.Site{ID: "site-1", Name: "Dallas DC", Code: "DAL"}
}

func testGate(function domain.GateFunction) *domain.Gate {
	return &domain.Gate{ID: "gate-1", Name: "North Gate", Code: "N1", Function: function, SiteID: "site-1"}
}

func testCarrier() *domain.Carrier {
	return &domain.Carrier{
		ID:               "carrier-1",
		Name:             "Acme Freight",
		Code:             "ACME",
		DetentionEnabled: true,
		FreeTimeHours:    24,
		EligibleSiteIDs:  []string{"site-1"},
	}
}

func checkInInput() ports.CheckInInput {
	return ports.CheckInInput{
		SiteID:        "site-1",
		GateID:        "gate-1",
		TrailerNumber: "TRL-100",
		CarrierID:     "carrier-1",
		LoadStatus:    domain.LoadStatusEmpty,
		Condition:     domain.TrailerConditionClean,
	}
}

func TestAppointmentService_ProcessCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("NewTrailer", func(t *testing.T) {
		f := newAppointmentFixture()
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckIn), nil)
		f.carriers.On("FindByID", mock.Anything, "carrier-1").Return(testCarrier(), nil)
		f.trailers.On("FindByNumber", mock.Anything, "TRL-100").Return(nil, nil)

		var savedTrailer *domain.Trailer
		f.trailers.On("Save", mock.Anything, mock.AnythingOfType("*domain.Trailer")).
			Run(func(args mock.Arguments) { savedTrailer = args.Get(1).(*domain.Trailer) }).
			Return(nil)
		f.appointments.On("Save", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)
		f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

		appointment, err := f.service.ProcessCheckIn(ctx, checkInInput())
		require.NoError(t, err)

		assert.Equal(t, domain.AppointmentCheckedIn, appointment.Status)
		assert.Equal(t, domain.AppointmentUndefined, appointment.Type)
		assert.Equal(t, "site-1", appointment.SiteID)
		require.NotNil(t, appointment.CheckInGateID)
		assert.Equal(t, "gate-1", *appointment.CheckInGateID)
		assert.NotNil(t, appointment.ActualArrivalTime)

		require.NotNil(t, savedTrailer)
		assert.NotEmpty(t, savedTrailer.ID)
		assert.Equal(t, "TRL-100", savedTrailer.TrailerNumber)
		// An empty trailer arrives to be loaded.
		assert.Equal(t, domain.ProcessStatusLoad, savedTrailer.ProcessStatus)
		assert.NotNil(t, savedTrailer.CheckInTime)
		assert.False(t, savedTrailer.DetentionActive)
		require.NotNil(t, savedTrailer.CurrentAppointmentID)
		assert.Equal(t, appointment.ID, *savedTrailer.CurrentAppointmentID)
		f.trailers.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	t.Run("ReturningFullTrailer", func(t *testing.T) {
		f := newAppointmentFixture()
		existing := &domain.Trailer{
			ID:              "trailer-1",
			TrailerNumber:   "TRL-100",
			DetentionActive: true,
		}
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckInOut), nil)
		f.carriers.On("FindByID", mock.Anything, "carrier-1").Return(testCarrier(), nil)
		f.trailers.On("FindByNumber", mock.Anything, "TRL-100").Return(existing, nil)
		f.trailers.On("Save", mock.Anything, existing).Return(nil)
		f.appointments.On("Save", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)
		f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

		in := checkInInput()
		in.LoadStatus = domain.LoadStatusFull
		_, err := f.service.ProcessCheckIn(ctx, in)
		require.NoError(t, err)

		// A full trailer arrives to be unloaded, and its detention
		// state resets for the new visit.
		assert.Equal(t, domain.ProcessStatusUnload, existing.ProcessStatus)
		assert.False(t, existing.DetentionActive)
		assert.Nil(t, existing.DetentionStartTime)
	})

	t.Run("CheckOutOnlyGateRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckOut), nil)
		f.carriers.On("FindByID", mock.Anything, "carrier-1").Return(testCarrier(), nil)

		_, err := f.service.ProcessCheckIn(ctx, checkInInput())
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)

		f.trailers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.appointments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("GateFromAnotherSiteRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		gate := testGate(domain.GateCheckIn)
		gate.SiteID = "site-2"
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(gate, nil)
		f.carriers.On("FindByID", mock.Anything, "carrier-1").Return(testCarrier(), nil)

		_, err := f.service.ProcessCheckIn(ctx, checkInInput())
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("IneligibleCarrierRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		carrier := testCarrier()
		carrier.EligibleSiteIDs = []string{"site-2"}
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckIn), nil)
		f.carriers.On("FindByID", mock.Anything, "carrier-1").Return(carrier, nil)

		_, err := f.service.ProcessCheckIn(ctx, checkInInput())
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("UnknownSite", func(t *testing.T) {
		f := newAppointmentFixture()
		f.sites.On("FindByID", mock.Anything, "site-1").Return(nil, nil)

		_, err := f.service.ProcessCheckIn(ctx, checkInInput())
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("MissingTrailerNumber", func(t *testing.T) {
		f := newAppointmentFixture()
		in := checkInInput()
		in.TrailerNumber = "  "
		_, err := f.service.ProcessCheckIn(ctx, in)
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestAppointmentService_ProcessCheckOut(t *testing.T) {
	ctx := context.Background()

	checkOutInput := func() ports.CheckOutInput {
		return ports.CheckOutInput{
			SiteID:        "site-1",
			GateID:        "gate-1",
			TrailerID:     "trailer-1",
			Condition:     domain.TrailerConditionClean,
			LoadStatus:    domain.LoadStatusEmpty,
			GuardComments: "seal intact",
		}
	}

	t.Run("ReleasesDoorAndCompletes", func(t *testing.T) {
		f := newAppointmentFixture()
		doorID := "door-1"
		appointmentID := "appt-1"
		trailer := &domain.Trailer{
			ID:                   "trailer-1",
			TrailerNumber:        "TRL-100",
			AssignedDoorID:       &doorID,
			CurrentAppointmentID: &appointmentID,
			DetentionActive:      true,
			ProcessStatus:        domain.ProcessStatusUnloading,
		}
		door := &domain.Door{ID: doorID, Code: "D1", Status: domain.SlotOccupied, CurrentTrailerID: &trailer.ID}
		appointment := &domain.Appointment{ID: appointmentID, SiteID: "site-1", Status: domain.AppointmentInProgress}

		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.trailers.On("FindByID", mock.Anything, "trailer-1").Return(trailer, nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckOut), nil)
		f.appointments.On("FindByID", mock.Anything, appointmentID).Return(appointment, nil)
		f.doors.On("FindByID", mock.Anything, doorID).Return(door, nil)
		f.doors.On("Save", mock.Anything, door).Return(nil)
		f.trailers.On("Save", mock.Anything, trailer).Return(nil)
		f.appointments.On("Save", mock.Anything, appointment).Return(nil)
		f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

		result, err := f.service.ProcessCheckOut(ctx, checkOutInput())
		require.NoError(t, err)

		assert.Equal(t, domain.AppointmentCompleted, result.Status)
		assert.NotNil(t, result.CompletionTime)
		require.NotNil(t, result.CheckOutGateID)
		assert.Equal(t, "gate-1", *result.CheckOutGateID)
		assert.Contains(t, result.GuardComments, "Check-Out Comments: seal intact")

		// Door freed, trailer unparked and detached.
		assert.Equal(t, domain.SlotAvailable, door.Status)
		assert.Nil(t, door.CurrentTrailerID)
		assert.Nil(t, trailer.AssignedDoorID)
		assert.Nil(t, trailer.CurrentAppointmentID)
		assert.NotNil(t, trailer.CheckOutTime)
		assert.False(t, trailer.DetentionActive)
		assert.Equal(t, domain.ProcessStatusUnloaded, trailer.ProcessStatus)
	})

	t.Run("SiteMismatchRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		appointmentID := "appt-1"
		trailer := &domain.Trailer{ID: "trailer-1", CurrentAppointmentID: &appointmentID}
		appointment := &domain.Appointment{ID: appointmentID, SiteID: "site-2", Status: domain.AppointmentCheckedIn}

		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.trailers.On("FindByID", mock.Anything, "trailer-1").Return(trailer, nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckOut), nil)
		f.appointments.On("FindByID", mock.Anything, appointmentID).Return(appointment, nil)

		_, err := f.service.ProcessCheckOut(ctx, checkOutInput())
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
		f.trailers.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("NoActiveAppointment", func(t *testing.T) {
		f := newAppointmentFixture()
		trailer := &domain.Trailer{ID: "trailer-1"}

		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.trailers.On("FindByID", mock.Anything, "trailer-1").Return(trailer, nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckOut), nil)

		_, err := f.service.ProcessCheckOut(ctx, checkOutInput())
		var notFound *domain.NotFoundError
		require.ErrorAs(t, err, &notFound)
	})

	t.Run("CheckInOnlyGateRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		appointmentID := "appt-1"
		trailer := &domain.Trailer{ID: "trailer-1", CurrentAppointmentID: &appointmentID}
		appointment := &domain.Appointment{ID: appointmentID, SiteID: "site-1", Status: domain.AppointmentCheckedIn}

		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.trailers.On("FindByID", mock.Anything, "trailer-1").Return(trailer, nil)
		f.gates.On("FindByID", mock.Anything, "gate-1").Return(testGate(domain.GateCheckIn), nil)
		f.appointments.On("FindByID", mock.Anything, appointmentID).Return(appointment, nil)

		_, err := f.service.ProcessCheckOut(ctx, checkOutInput())
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestAppointmentService_ScheduleAppointment(t *testing.T) {
	ctx := context.Background()
	future := time.Now().Add(48 * time.Hour)

	t.Run("Success", func(t *testing.T) {
		f := newAppointmentFixture()
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.trailers.On("FindByNumber", mock.Anything, "TRL-100").Return(&domain.Trailer{ID: "trailer-1"}, nil)
		f.appointments.On("Save", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)

		appointment, err := f.service.ScheduleAppointment(ctx, ports.ScheduleInput{
			SiteID:          "site-1",
			TrailerNumber:   "TRL-100",
			AppointmentType: domain.AppointmentLiveLoad,
			ScheduledTime:   &future,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentScheduled, appointment.Status)
		require.NotNil(t, appointment.TrailerID)
		assert.Equal(t, "trailer-1", *appointment.TrailerID)
	})

	t.Run("PastTimeRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		past := time.Now().Add(-time.Hour)
		_, err := f.service.ScheduleAppointment(ctx, ports.ScheduleInput{
			SiteID:          "site-1",
			AppointmentType: domain.AppointmentLiveLoad,
			ScheduledTime:   &past,
		})
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("UnknownTrailerNumberLeftUnbound", func(t *testing.T) {
		f := newAppointmentFixture()
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.trailers.On("FindByNumber", mock.Anything, "TRL-999").Return(nil, nil)
		f.appointments.On("Save", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)

		appointment, err := f.service.ScheduleAppointment(ctx, ports.ScheduleInput{
			SiteID:          "site-1",
			TrailerNumber:   "TRL-999",
			AppointmentType: domain.AppointmentDropAndHook,
			ScheduledTime:   &future,
		})
		require.NoError(t, err)
		assert.Nil(t, appointment.TrailerID)
	})
}

func TestAppointmentService_StartProcessing(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := newAppointmentFixture()
		appointment := &domain.Appointment{ID: "appt-1", SiteID: "site-1", Status: domain.AppointmentCheckedIn}
		f.appointments.On("FindByID", mock.Anything, "appt-1").Return(appointment, nil)
		f.appointments.On("Save", mock.Anything, appointment).Return(nil)
		f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

		result, err := f.service.StartProcessing(ctx, "appt-1")
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentInProgress, result.Status)
	})

	t.Run("NotCheckedIn", func(t *testing.T) {
		f := newAppointmentFixture()
		appointment := &domain.Appointment{ID: "appt-1", Status: domain.AppointmentScheduled}
		f.appointments.On("FindByID", mock.Anything, "appt-1").Return(appointment, nil)

		_, err := f.service.StartProcessing(ctx, "appt-1")
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestAppointmentService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("DetachesTrailer", func(t *testing.T) {
		f := newAppointmentFixture()
		trailerID := "trailer-1"
		appointmentID := "appt-1"
		appointment := &domain.Appointment{ID: appointmentID, SiteID: "site-1", TrailerID: &trailerID, Status: domain.AppointmentCheckedIn}
		trailer := &domain.Trailer{ID: trailerID, CurrentAppointmentID: &appointmentID}

		f.appointments.On("FindByID", mock.Anything, appointmentID).Return(appointment, nil)
		f.trailers.On("FindByID", mock.Anything, trailerID).Return(trailer, nil)
		f.trailers.On("Save", mock.Anything, trailer).Return(nil)
		f.appointments.On("Save", mock.Anything, appointment).Return(nil)
		f.cache.On("Invalidate", mock.Anything, "site-1").Return(nil)

		result, err := f.service.Cancel(ctx, appointmentID, "driver no-show")
		require.NoError(t, err)
		assert.Equal(t, domain.AppointmentCancelled, result.Status)
		assert.Contains(t, result.GuardComments, "Cancellation Reason: driver no-show")
		assert.Nil(t, trailer.CurrentAppointmentID)
	})

	t.Run("CompletedRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		appointment := &domain.Appointment{ID: "appt-1", Status: domain.AppointmentCompleted}
		f.appointments.On("FindByID", mock.Anything, "appt-1").Return(appointment, nil)

		_, err := f.service.Cancel(ctx, "appt-1", "late")
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})

	t.Run("DoubleCancelRejected", func(t *testing.T) {
		f := newAppointmentFixture()
		appointment := &domain.Appointment{ID: "appt-1", Status: domain.AppointmentCancelled}
		f.appointments.On("FindByID", mock.Anything, "appt-1").Return(appointment, nil)

		_, err := f.service.Cancel(ctx, "appt-1", "late")
		var invalid *domain.InvalidOperationError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestAppointmentService_GetActiveBySite(t *testing.T) {
	ctx := context.Background()

	t.Run("CacheHit", func(t *testing.T) {
		f := newAppointmentFixture()
		cached := []domain.Appointment{{ID: "appt-1", SiteID: "site-1", Status: domain.AppointmentCheckedIn}}
		f.cache.On("Get", mock.Anything, "site-1").Return(cached, nil)

		result, err := f.service.GetActiveBySite(ctx, "site-1")
		require.NoError(t, err)
		assert.Equal(t, cached, result)
		f.appointments.AssertNotCalled(t, "FindActiveBySite", mock.Anything, mock.Anything)
	})

	t.Run("CacheMissFallsThroughAndWarms", func(t *testing.T) {
		f := newAppointmentFixture()
		active := []domain.Appointment{{ID: "appt-1", SiteID: "site-1", Status: domain.AppointmentInProgress}}
		f.cache.On("Get", mock.Anything, "site-1").Return(nil, nil)
		f.sites.On("FindByID", mock.Anything, "site-1").Return(testSite(), nil)
		f.appointments.On("FindActiveBySite", mock.Anything, "site-1").Return(active, nil)
		f.cache.On("Set", mock.Anything, "site-1", active).Return(nil)

		result, err := f.service.GetActiveBySite(ctx, "site-1")
		require.NoError(t, err)
		assert.Equal(t, active, result)
		f.cache.AssertExpectations(t)
	})
}

func TestAppointmentService_GetByDateRange(t *testing.T) {
	ctx := context.Background()
	f := newAppointmentFixture()

	start := time.Now()
	end := start.Add(24 * time.Hour)

	_, err := f.service.GetByDateRange(ctx, nil, &end)
	assert.Error(t, err)

	_, err = f.service.GetByDateRange(ctx, &end, &start)
	assert.Error(t, err)

	scheduled := []domain.Appointment{{ID: "appt-1", Status: domain.AppointmentScheduled}}
	f.appointments.On("FindScheduledBetween", mock.Anything, start, end).Return(scheduled, nil)
	result, err := f.service.GetByDateRange(ctx, &start, &end)
	require.NoError(t, err)
	assert.Equal(t, scheduled, result)
}
