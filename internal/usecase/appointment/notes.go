package appointment

import (
	"context"

	"github.com/clinicware/doctor-portal/internal/audit"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/store"
)

type UpdateNotes struct {
	stores  *store.Registry
	gateway domain.Gateway
	audit   *audit.Dispatcher
}

func NewUpdateNotes(
	stores *store.Registry,
	gateway domain.Gateway,
	audit *audit.Dispatcher,
) *UpdateNotes {
	return &UpdateNotes{
		stores:  stores,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *UpdateNotes) Execute(
	ctx context.Context,
	doctorID int,
	appointmentID int,
	notes string,
) (domain.Appointment, error) {

	st := uc.stores.ForDoctor(doctorID)

	if _, ok := st.FindByID(appointmentID); !ok {
		return domain.Appointment{}, httperr.ErrBusiness("appointment_not_found")
	}

	if err := st.BeginMutation(appointmentID); err != nil {
		return domain.Appointment{}, err
	}
	defer st.EndMutation(appointmentID)

	if err := uc.gateway.UpdateNotes(ctx, appointmentID, notes); err != nil {
		return domain.Appointment{}, &RemoteUpdateError{Op: "update notes for", ID: appointmentID, Err: err}
	}

	st.UpdateNotes(appointmentID, notes)

	uc.audit.Dispatch(audit.Event{
		DoctorID:      doctorID,
		Action:        "appointment_notes_updated",
		AppointmentID: &appointmentID,
	})

	updated, _ := st.FindByID(appointmentID)
	return updated, nil
}
