package appointment

import (
	"context"
	"time"

	"github.com/clinicware/doctor-portal/internal/audit"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/store"
)

// RescheduleAppointment moves a cancelled appointment to a new time.
// The backend confirms the new slot before local state changes, so a
// page reload can never lose the reschedule.
type RescheduleAppointment struct {
	stores  *store.Registry
	gateway domain.Gateway
	audit   *audit.Dispatcher
}

func NewRescheduleAppointment(
	stores *store.Registry,
	gateway domain.Gateway,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		stores:  stores,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	doctorID int,
	appointmentID int,
	newTime time.Time,
) (domain.Appointment, error) {

	st := uc.stores.ForDoctor(doctorID)

	ap, ok := st.FindByID(appointmentID)
	if !ok {
		return domain.Appointment{}, httperr.ErrBusiness("appointment_not_found")
	}

	if _, err := domain.NextStatus(ap.Status, domain.ActionReschedule); err != nil {
		return domain.Appointment{}, err
	}

	if err := st.BeginMutation(appointmentID); err != nil {
		return domain.Appointment{}, err
	}
	defer st.EndMutation(appointmentID)

	err := uc.gateway.Reschedule(
		ctx,
		appointmentID,
		newTime.Format("2006-01-02"),
		newTime.Format("15:04:05"),
	)
	if err != nil {
		return domain.Appointment{}, &RemoteUpdateError{Op: "reschedule", ID: appointmentID, Err: err}
	}

	st.ApplyReschedule(appointmentID, newTime)

	uc.audit.Dispatch(audit.Event{
		DoctorID:      doctorID,
		Action:        "appointment_rescheduled",
		AppointmentID: &appointmentID,
		Metadata:      map[string]any{"new_time": newTime},
	})

	updated, _ := st.FindByID(appointmentID)
	return updated, nil
}
