package appointment

import "context"

// CreateRequest is the payload the clinic backend expects when a doctor
// books an appointment on a patient's behalf.
type CreateRequest struct {
	PatientID      int    `json:"patient_id"`
	BookingDate    string `json:"booking_date"`
	BookingTime    string `json:"booking_time"`
	EndTime        string `json:"end_time"`
	Duration       int    `json:"duration"`
	Status         string `json:"status"`
	PaymentMethod  string `json:"payment_method"`
	ReasonForVisit string `json:"reason_for_visit"`
}

// Gateway is the outbound port to the clinic backend. The backend is
// the source of truth; every mutation here must succeed before local
// state is allowed to change.
type Gateway interface {
	// -------- Reads --------
	ListAppointments(ctx context.Context) ([]BackendRecord, error)

	ListSchedule(
		ctx context.Context,
		startDate string,
		endDate string,
	) ([]BackendRecord, error)

	GetAppointment(
		ctx context.Context,
		id int,
	) (BackendRecord, error)

	// -------- Mutations --------
	UpdateStatus(
		ctx context.Context,
		id int,
		backendStatus string,
	) error

	Reschedule(
		ctx context.Context,
		id int,
		bookingDate string,
		bookingTime string,
	) error

	UpdateNotes(
		ctx context.Context,
		id int,
		notes string,
	) error

	DeleteAppointment(
		ctx context.Context,
		id int,
	) error

	CreateAppointment(
		ctx context.Context,
		req CreateRequest,
	) error
}
