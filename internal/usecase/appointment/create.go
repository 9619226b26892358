package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicware/doctor-portal/internal/audit"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
)

// CreateAppointment books a slot for a patient on the doctor's behalf.
// The created record is not mirrored locally; it arrives with the next
// load, which keeps the backend the only writer of new ids.
type CreateAppointment struct {
	gateway domain.Gateway
	audit   *audit.Dispatcher
}

func NewCreateAppointment(
	gateway domain.Gateway,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		gateway: gateway,
		audit:   audit,
	}
}

type CreateInput struct {
	PatientID      int
	BookingDate    string
	BookingTime    string
	Duration       int
	Status         domain.Status
	PaymentMethod  string
	ReasonForVisit string
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	doctorID int,
	in CreateInput,
) error {

	start, err := parseBookingTime(in.BookingTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_booking_time")
	}
	if _, err := time.Parse("2006-01-02", in.BookingDate); err != nil {
		return httperr.ErrBusiness("invalid_booking_date")
	}

	duration := in.Duration
	if duration <= 0 {
		duration = domain.DefaultDuration
	}

	status := in.Status
	if status == "" {
		status = domain.InitialStatus()
	}

	req := domain.CreateRequest{
		PatientID:      in.PatientID,
		BookingDate:    in.BookingDate,
		BookingTime:    start.Format("15:04:05"),
		EndTime:        start.Add(time.Duration(duration) * time.Minute).Format("15:04:05"),
		Duration:       duration,
		Status:         status.BackendValue(),
		PaymentMethod:  in.PaymentMethod,
		ReasonForVisit: in.ReasonForVisit,
	}

	if err := uc.gateway.CreateAppointment(ctx, req); err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}

	uc.audit.Dispatch(audit.Event{
		DoctorID: doctorID,
		Action:   "appointment_created",
		Metadata: map[string]any{
			"patient_id": in.PatientID,
			"date":       in.BookingDate,
			"time":       req.BookingTime,
		},
	})

	return nil
}

func parseBookingTime(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}
