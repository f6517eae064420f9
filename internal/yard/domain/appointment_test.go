package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Transition(t *testing.T) {
	t.Run("AllowedPath", func(t *testing.T) {
		a := &Appointment{ID: "a1", Status: AppointmentScheduled}

		assert.NoError(t, a.Transition(AppointmentCheckedIn))
		assert.NoError(t, a.Transition(AppointmentInProgress))
		assert.NoError(t, a.Transition(AppointmentCompleted))
		assert.Equal(t, AppointmentCompleted, a.Status)
	})

	t.Run("CheckedInStraightToCompleted", func(t *testing.T) {
		a := &Appointment{ID: "a1", Status: AppointmentCheckedIn}
		assert.NoError(t, a.Transition(AppointmentCompleted))
	})

	t.Run("ScheduledCannotComplete", func(t *testing.T) {
		a := &Appointment{ID: "a1", Status: AppointmentScheduled}
		err := a.Transition(AppointmentCompleted)
		assert.Error(t, err)
		assert.Equal(t, AppointmentScheduled, a.Status)
	})

	t.Run("TerminalStatesAreFinal", func(t *testing.T) {
		for _, terminal := range []AppointmentStatus{AppointmentCompleted, AppointmentCancelled} {
			a := &Appointment{ID: "a1", Status: terminal}
			assert.Error(t, a.Transition(AppointmentCheckedIn))
			assert.Error(t, a.Transition(AppointmentCancelled))
		}
	})
}

func TestAppointmentStatus_Active(t *testing.T) {
	assert.True(t, AppointmentCheckedIn.Active())
	assert.True(t, AppointmentInProgress.Active())
	assert.False(t, AppointmentScheduled.Active())
	assert.False(t, AppointmentCompleted.Active())
	assert.False(t, AppointmentCancelled.Active())
}

func TestAppointment_AppendGuardComment(t *testing.T) {
	a := &Appointment{}

	a.AppendGuardComment("Cancellation Reason", "")
	assert.Equal(t, "", a.GuardComments)

	a.GuardComments = "driver waiting at dock"
	a.AppendGuardComment("Cancellation Reason", "no-show")
	assert.Equal(t, "driver waiting at dock\nCancellation Reason: no-show", a.GuardComments)

	a.AppendGuardComment("Check-Out Comments", "left seal intact")
	assert.Equal(t,
		"driver waiting at dock\nCancellation Reason: no-show\nCheck-Out Comments: left seal intact",
		a.GuardComments)
}

func TestValidAppointmentType(t *testing.T) {
	assert.True(t, ValidAppointmentType(AppointmentLiveLoad))
	assert.True(t, ValidAppointmentType(AppointmentUndefined))
	assert.False(t, ValidAppointmentType("WALK_IN"))
}
