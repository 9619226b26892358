package store

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
)

// -- Mock Gateway --

type stubGateway struct {
	records []domain.BackendRecord
	err     error
}

func (g *stubGateway) ListAppointments(_ context.Context) ([]domain.BackendRecord, error) {
	return g.records, g.err
}

func (g *stubGateway) ListSchedule(_ context.Context, _, _ string) ([]domain.BackendRecord, error) {
	return g.records, g.err
}

func (g *stubGateway) GetAppointment(_ context.Context, _ int) (domain.BackendRecord, error) {
	return domain.BackendRecord{}, g.err
}

func (g *stubGateway) UpdateStatus(_ context.Context, _ int, _ string) error { return g.err }

func (g *stubGateway) Reschedule(_ context.Context, _ int, _, _ string) error { return g.err }

func (g *stubGateway) UpdateNotes(_ context.Context, _ int, _ string) error { return g.err }

func (g *stubGateway) DeleteAppointment(_ context.Context, _ int) error { return g.err }

func (g *stubGateway) CreateAppointment(_ context.Context, _ domain.CreateRequest) error {
	return g.err
}

func record(id int, name, date, timeStr, status string) domain.BackendRecord {
	return domain.BackendRecord{
		BookingID:   id,
		PatientName: name,
		BookingDate: date,
		BookingTime: timeStr,
		Status:      status,
	}
}

func TestLoadReplacesCollection(t *testing.T) {
	gw := &stubGateway{records: []domain.BackendRecord{
		record(1, "John Smith", "2024-03-01", "09:00:00", "Pending"),
		record(2, "Ann Jones", "2024-03-02", "10:00:00", "Confirmed"),
	}}
	st := New(gw, time.UTC)

	got, err := st.Load(context.Background(), day(2024, 3, 1), day(2024, 3, 7))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || st.Len() != 2 {
		t.Fatalf("Load returned %d records, store holds %d; want 2/2", len(got), st.Len())
	}

	gw.records = []domain.BackendRecord{
		record(3, "Ben Kim", "2024-03-03", "11:00:00", "Pending"),
	}
	if _, err := st.Load(context.Background(), day(2024, 3, 1), day(2024, 3, 7)); err != nil {
		t.Fatalf("second Load: %v", err)
	}

	if st.Len() != 1 {
		t.Fatalf("Load must replace, not append: store holds %d", st.Len())
	}
	if _, found := st.FindByID(1); found {
		t.Error("record 1 should be gone after replace")
	}
}

func TestLoadFailureKeepsStaleData(t *testing.T) {
	gw := &stubGateway{records: []domain.BackendRecord{
		record(1, "John Smith", "2024-03-01", "09:00:00", "Pending"),
	}}
	st := New(gw, time.UTC)

	if _, err := st.Load(context.Background(), day(2024, 3, 1), day(2024, 3, 7)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	gw.err = errors.New("backend down")
	if _, err := st.Load(context.Background(), day(2024, 3, 1), day(2024, 3, 7)); err == nil {
		t.Fatal("expected load error")
	}

	if st.Len() != 1 {
		t.Fatal("failed load must not clear existing data")
	}
}

func TestFindByID(t *testing.T) {
	gw := &stubGateway{records: []domain.BackendRecord{
		record(1, "John Smith", "2024-03-01", "09:00:00", "Pending"),
	}}
	st := New(gw, time.UTC)
	mustLoad(t, st)

	ap, found := st.FindByID(1)
	if !found || ap.PatientLastName != "Smith" {
		t.Fatalf("FindByID(1) = %+v, %v", ap, found)
	}
	if _, found := st.FindByID(99); found {
		t.Error("FindByID(99) should miss")
	}
}

func TestApplyStatusTransition(t *testing.T) {
	gw := &stubGateway{records: []domain.BackendRecord{
		record(1, "John Smith", "2024-03-01", "09:00:00", "Pending"),
	}}
	st := New(gw, time.UTC)
	mustLoad(t, st)

	st.ApplyStatusTransition(1, domain.StatusConfirmed)
	if ap, _ := st.FindByID(1); ap.Status != domain.StatusConfirmed {
		t.Errorf("status = %s, want confirmed", ap.Status)
	}

	// unknown id is a no-op
	st.ApplyStatusTransition(99, domain.StatusCancelled)
	if st.Len() != 1 {
		t.Error("no-op mutation changed the collection")
	}
}

func TestApplyReschedule(t *testing.T) {
	gw := &stubGateway{records: []domain.BackendRecord{
		record(1, "John Smith", "2024-03-01", "09:00:00", "Cancelled"),
	}}
	st := New(gw, time.UTC)
	mustLoad(t, st)

	newTime := time.Date(2024, time.March, 5, 14, 0, 0, 0, time.UTC)
	st.ApplyReschedule(1, newTime)

	ap, _ := st.FindByID(1)
	if !ap.ScheduledAt.Equal(newTime) {
		t.Errorf("ScheduledAt = %v, want %v", ap.ScheduledAt, newTime)
	}
	if ap.Status != domain.StatusConfirmed {
		t.Errorf("status after reschedule = %s, want confirmed", ap.Status)
	}
}

func TestRemove(t *testing.T) {
	gw := &stubGateway{records: []domain.BackendRecord{
		record(1, "John Smith", "2024-03-01", "09:00:00", "Pending"),
		record(2, "Ann Jones", "2024-03-02", "10:00:00", "Pending"),
	}}
	st := New(gw, time.UTC)
	mustLoad(t, st)

	st.Remove(1)
	if st.Len() != 1 {
		t.Fatalf("Len = %d after remove, want 1", st.Len())
	}
	if _, found := st.FindByID(1); found {
		t.Error("removed record still present")
	}
}

func TestMutationGuard(t *testing.T) {
	st := New(&stubGateway{}, time.UTC)

	if err := st.BeginMutation(1); err != nil {
		t.Fatalf("first BeginMutation: %v", err)
	}
	if err := st.BeginMutation(1); !errors.Is(err, ErrMutationInFlight) {
		t.Fatalf("second BeginMutation = %v, want ErrMutationInFlight", err)
	}

	// other ids are unaffected
	if err := st.BeginMutation(2); err != nil {
		t.Fatalf("BeginMutation(2): %v", err)
	}

	st.EndMutation(1)
	if err := st.BeginMutation(1); err != nil {
		t.Fatalf("BeginMutation after EndMutation: %v", err)
	}
}

func TestRegistryScopesPerDoctor(t *testing.T) {
	reg := NewRegistry(&stubGateway{}, time.UTC)

	a := reg.ForDoctor(1)
	b := reg.ForDoctor(2)
	if a == b {
		t.Fatal("doctors must not share a store")
	}
	if reg.ForDoctor(1) != a {
		t.Fatal("registry must reuse a doctor's store")
	}
}

func mustLoad(t *testing.T, st *AppointmentStore) {
	t.Helper()
	if _, err := st.Load(context.Background(), day(2024, 3, 1), day(2024, 3, 7)); err != nil {
		t.Fatalf("Load: %v", err)
	}
}

func day(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}
