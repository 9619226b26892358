package appointment

import (
	"context"

	"github.com/clinicware/doctor-portal/internal/audit"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/store"
)

type DeleteAppointment struct {
	stores  *store.Registry
	gateway domain.Gateway
	audit   *audit.Dispatcher
}

func NewDeleteAppointment(
	stores *store.Registry,
	gateway domain.Gateway,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		stores:  stores,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	doctorID int,
	appointmentID int,
) error {

	st := uc.stores.ForDoctor(doctorID)

	if _, ok := st.FindByID(appointmentID); !ok {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := st.BeginMutation(appointmentID); err != nil {
		return err
	}
	defer st.EndMutation(appointmentID)

	if err := uc.gateway.DeleteAppointment(ctx, appointmentID); err != nil {
		return &RemoteUpdateError{Op: "delete", ID: appointmentID, Err: err}
	}

	st.Remove(appointmentID)

	uc.audit.Dispatch(audit.Event{
		DoctorID:      doctorID,
		Action:        "appointment_deleted",
		AppointmentID: &appointmentID,
	})

	return nil
}
