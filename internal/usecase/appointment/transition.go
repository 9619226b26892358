package appointment

import (
	"context"

	"github.com/clinicware/doctor-portal/internal/audit"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/store"
)

// TransitionAppointment applies a status action: validate against the
// transition table, confirm with the backend, then mirror locally.
// Reschedule carries a new time and goes through RescheduleAppointment
// instead.
type TransitionAppointment struct {
	stores  *store.Registry
	gateway domain.Gateway
	audit   *audit.Dispatcher
}

func NewTransitionAppointment(
	stores *store.Registry,
	gateway domain.Gateway,
	audit *audit.Dispatcher,
) *TransitionAppointment {
	return &TransitionAppointment{
		stores:  stores,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	doctorID int,
	appointmentID int,
	action domain.Action,
) (domain.Appointment, error) {

	if action == domain.ActionReschedule {
		return domain.Appointment{}, httperr.ErrBusiness("reschedule_requires_datetime")
	}

	st := uc.stores.ForDoctor(doctorID)

	ap, ok := st.FindByID(appointmentID)
	if !ok {
		return domain.Appointment{}, httperr.ErrBusiness("appointment_not_found")
	}

	next, err := domain.NextStatus(ap.Status, action)
	if err != nil {
		return domain.Appointment{}, err
	}

	if err := st.BeginMutation(appointmentID); err != nil {
		return domain.Appointment{}, err
	}
	defer st.EndMutation(appointmentID)

	if err := uc.gateway.UpdateStatus(ctx, appointmentID, next.BackendValue()); err != nil {
		return domain.Appointment{}, &RemoteUpdateError{Op: string(action), ID: appointmentID, Err: err}
	}

	st.ApplyStatusTransition(appointmentID, next)

	uc.audit.Dispatch(audit.Event{
		DoctorID:      doctorID,
		Action:        "appointment_" + string(action),
		AppointmentID: &appointmentID,
	})

	updated, _ := st.FindByID(appointmentID)
	return updated, nil
}
