package appointment

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultDuration = 30
	DefaultReason   = "No reason specified"
	notProvided     = "N/A"
)

type Appointment struct {
	ID int `json:"id"`

	PatientFirstName string `json:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name"`
	PatientEmail     string `json:"patient_email"`
	PatientPhone     string `json:"patient_phone"`
	PatientDOB       string `json:"patient_dob"`

	ScheduledAt time.Time `json:"scheduled_at"`
	Duration    int       `json:"duration"`

	Reason string `json:"reason"`
	Status Status `json:"status"`
	Notes  string `json:"notes"`
}

func (a Appointment) PatientFullName() string {
	return a.PatientFirstName + " " + a.PatientLastName
}

// BackendRecord is the wire shape the clinic backend returns for a
// booking. booking_date may be a full ISO timestamp; only its date part
// is meaningful, the time of day lives in booking_time.
type BackendRecord struct {
	BookingID      int    `json:"booking_id"`
	PatientName    string `json:"patient_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	DateOfBirth    string `json:"date_of_birth"`
	BookingDate    string `json:"booking_date"`
	BookingTime    string `json:"booking_time"`
	ReasonForVisit string `json:"reason_for_visit"`
	Duration       int    `json:"duration"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

// FromBackend normalizes a backend booking into the internal shape.
// The date part of booking_date is joined with booking_time and parsed
// in the clinic zone, so a UTC-rendered booking_date cannot shift the
// appointment across a day boundary.
func FromBackend(rec BackendRecord, loc *time.Location) (Appointment, error) {
	first, last := splitPatientName(rec.PatientName)

	datePart := rec.BookingDate
	if i := strings.Index(datePart, "T"); i >= 0 {
		datePart = datePart[:i]
	}

	scheduledAt, err := CombineDateTime(datePart, rec.BookingTime, loc)
	if err != nil {
		return Appointment{}, fmt.Errorf("booking %d: %w", rec.BookingID, err)
	}

	duration := rec.Duration
	if duration <= 0 {
		duration = DefaultDuration
	}

	reason := rec.ReasonForVisit
	if reason == "" {
		reason = DefaultReason
	}

	return Appointment{
		ID:               rec.BookingID,
		PatientFirstName: first,
		PatientLastName:  last,
		PatientEmail:     orNotProvided(rec.Email),
		PatientPhone:     orNotProvided(rec.PhoneNumber),
		PatientDOB:       orNotProvided(rec.DateOfBirth),
		ScheduledAt:      scheduledAt,
		Duration:         duration,
		Reason:           reason,
		Status:           NormalizeStatus(rec.Status),
		Notes:            rec.Notes,
	}, nil
}

// splitPatientName is a lossy, best-effort split on the first space.
// A single-token name repeats as the last name. The backend should grow
// separate first/last fields; until then this stays the one place that
// re-derives them.
func splitPatientName(name string) (first, last string) {
	parts := strings.SplitN(strings.TrimSpace(name), " ", 2)
	first = parts[0]
	if len(parts) == 2 && parts[1] != "" {
		return first, parts[1]
	}
	return first, first
}

// CombineDateTime joins a date-only string and a time-of-day string
// into a single timestamp in the given zone.
func CombineDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, dateStr+"T"+timeStr, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid booking date/time %q %q", dateStr, timeStr)
}

func orNotProvided(v string) string {
	if v == "" {
		return notProvided
	}
	return v
}
