package store

import (
	"context"
	"errors"
	"sync"
	"time"

	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
)

// ErrMutationInFlight rejects a second mutation on an appointment while
// one is still outstanding, so a slow response can never silently
// revert a newer server-confirmed state.
var ErrMutationInFlight = errors.New("another update for this appointment is in flight")

// AppointmentStore holds the in-memory appointment collection for one
// doctor. It is a cache of the clinic backend, never the source of
// truth: mutations land here only after the backend confirmed them, and
// a failed load keeps the previous collection instead of blanking it.
type AppointmentStore struct {
	mu           sync.RWMutex
	appointments []domain.Appointment
	inflight     map[int]struct{}

	gateway domain.Gateway
	loc     *time.Location
}

func New(gw domain.Gateway, loc *time.Location) *AppointmentStore {
	return &AppointmentStore{
		inflight: make(map[int]struct{}),
		gateway:  gw,
		loc:      loc,
	}
}

// --------------------------------------------------
// Loading
// --------------------------------------------------

// Load fetches the doctor's schedule for an inclusive date range and
// replaces the collection. On any failure the existing collection is
// left untouched: stale data beats a blank screen.
func (s *AppointmentStore) Load(ctx context.Context, rangeStart, rangeEnd time.Time) ([]domain.Appointment, error) {
	recs, err := s.gateway.ListSchedule(
		ctx,
		rangeStart.Format("2006-01-02"),
		rangeEnd.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	return s.replace(recs)
}

// LoadAll fetches every appointment for the doctor, unbounded by date.
func (s *AppointmentStore) LoadAll(ctx context.Context) ([]domain.Appointment, error) {
	recs, err := s.gateway.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	return s.replace(recs)
}

func (s *AppointmentStore) replace(recs []domain.BackendRecord) ([]domain.Appointment, error) {
	mapped := make([]domain.Appointment, 0, len(recs))
	for _, rec := range recs {
		ap, err := domain.FromBackend(rec, s.loc)
		if err != nil {
			return nil, err
		}
		mapped = append(mapped, ap)
	}

	s.mu.Lock()
	s.appointments = mapped
	s.mu.Unlock()

	return s.Snapshot(), nil
}

// --------------------------------------------------
// Queries
// --------------------------------------------------

// FindByID is a linear scan; per-doctor collections stay small enough
// that an index would be noise.
func (s *AppointmentStore) FindByID(id int) (domain.Appointment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ap := range s.appointments {
		if ap.ID == id {
			return ap, true
		}
	}
	return domain.Appointment{}, false
}

func (s *AppointmentStore) Snapshot() []domain.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out
}

func (s *AppointmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.appointments)
}

// --------------------------------------------------
// Confirmed mutations
// --------------------------------------------------

// ApplyStatusTransition mirrors a backend-confirmed status change.
// Unknown ids are a no-op.
func (s *AppointmentStore) ApplyStatusTransition(id int, status domain.Status) {
	s.mutate(id, func(ap *domain.Appointment) {
		ap.Status = status
	})
}

// ApplyReschedule mirrors a backend-confirmed reschedule: new time,
// status back to confirmed.
func (s *AppointmentStore) ApplyReschedule(id int, at time.Time) {
	s.mutate(id, func(ap *domain.Appointment) {
		ap.ScheduledAt = at
		ap.Status = domain.StatusConfirmed
	})
}

func (s *AppointmentStore) UpdateNotes(id int, notes string) {
	s.mutate(id, func(ap *domain.Appointment) {
		ap.Notes = notes
	})
}

// ApplyDetail folds fields that only the detail endpoint returns into
// the cached record.
func (s *AppointmentStore) ApplyDetail(id int, dob, notes string) {
	s.mutate(id, func(ap *domain.Appointment) {
		if dob != "" {
			ap.PatientDOB = dob
		}
		if notes != "" {
			ap.Notes = notes
		}
	})
}

func (s *AppointmentStore) Remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ap := range s.appointments {
		if ap.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return
		}
	}
}

func (s *AppointmentStore) mutate(id int, fn func(*domain.Appointment)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.appointments {
		if s.appointments[i].ID == id {
			fn(&s.appointments[i])
			return
		}
	}
}

// --------------------------------------------------
// In-flight guard
// --------------------------------------------------

func (s *AppointmentStore) BeginMutation(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[id]; busy {
		return ErrMutationInFlight
	}
	s.inflight[id] = struct{}{}
	return nil
}

func (s *AppointmentStore) EndMutation(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, id)
}
