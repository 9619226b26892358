package appointment

import (
	"testing"
	"time"
)

func TestFromBackendMapsFields(t *testing.T) {
	rec := BackendRecord{
		BookingID:      42,
		PatientName:    "Maria van der Berg",
		Email:          "maria@example.com",
		PhoneNumber:    "555-0100",
		DateOfBirth:    "1980-06-15",
		BookingDate:    "2024-03-01T00:00:00.000Z",
		BookingTime:    "09:30:00",
		ReasonForVisit: "Follow-up",
		Status:         "Confirmed",
		Notes:          "bring labs",
	}

	ap, err := FromBackend(rec, time.UTC)
	if err != nil {
		t.Fatalf("FromBackend: %v", err)
	}

	if ap.ID != 42 {
		t.Errorf("ID = %d, want 42", ap.ID)
	}
	if ap.PatientFirstName != "Maria" || ap.PatientLastName != "van der Berg" {
		t.Errorf("name split = %q %q", ap.PatientFirstName, ap.PatientLastName)
	}
	if ap.Status != StatusConfirmed {
		t.Errorf("status = %s, want confirmed", ap.Status)
	}

	// The date part of the ISO timestamp joins booking_time in the
	// clinic zone; the appointment must stay on March 1st at 09:30.
	want := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	if !ap.ScheduledAt.Equal(want) {
		t.Errorf("ScheduledAt = %v, want %v", ap.ScheduledAt, want)
	}
}

func TestFromBackendDefaults(t *testing.T) {
	rec := BackendRecord{
		BookingID:   7,
		PatientName: "Cher",
		BookingDate: "2024-03-01",
		BookingTime: "10:00:00",
		Status:      "Pending",
	}

	ap, err := FromBackend(rec, time.UTC)
	if err != nil {
		t.Fatalf("FromBackend: %v", err)
	}

	if ap.PatientFirstName != "Cher" || ap.PatientLastName != "Cher" {
		t.Errorf("single-token name should repeat: got %q %q", ap.PatientFirstName, ap.PatientLastName)
	}
	if ap.PatientEmail != "N/A" || ap.PatientPhone != "N/A" || ap.PatientDOB != "N/A" {
		t.Errorf("missing contact fields should default to N/A: %+v", ap)
	}
	if ap.Reason != DefaultReason {
		t.Errorf("Reason = %q, want %q", ap.Reason, DefaultReason)
	}
	if ap.Duration != DefaultDuration {
		t.Errorf("Duration = %d, want %d", ap.Duration, DefaultDuration)
	}
}

func TestFromBackendRejectsUnparseableDate(t *testing.T) {
	rec := BackendRecord{
		BookingID:   9,
		PatientName: "Ann Lee",
		BookingDate: "not-a-date",
		BookingTime: "10:00:00",
		Status:      "Pending",
	}

	if _, err := FromBackend(rec, time.UTC); err == nil {
		t.Fatal("expected error for unparseable booking date")
	}
}

func TestFromBackendKeepsLocalZone(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	rec := BackendRecord{
		BookingID:   11,
		PatientName: "Joe Smith",
		BookingDate: "2024-03-01T00:00:00.000Z",
		BookingTime: "23:00:00",
		Status:      "Pending",
	}

	ap, err := FromBackend(rec, loc)
	if err != nil {
		t.Fatalf("FromBackend: %v", err)
	}

	// 23:00 local must not drift into March 2nd via UTC conversion.
	if ap.ScheduledAt.Day() != 1 || ap.ScheduledAt.Hour() != 23 {
		t.Errorf("ScheduledAt = %v, want March 1st 23:00 local", ap.ScheduledAt)
	}
	if ap.ScheduledAt.Location() != loc {
		t.Errorf("location = %v, want %v", ap.ScheduledAt.Location(), loc)
	}
}

func TestCombineDateTimeMinutePrecision(t *testing.T) {
	got, err := CombineDateTime("2024-03-01", "14:45", time.UTC)
	if err != nil {
		t.Fatalf("CombineDateTime: %v", err)
	}
	want := time.Date(2024, time.March, 1, 14, 45, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
