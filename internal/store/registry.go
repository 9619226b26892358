package store

import (
	"sync"
	"time"

	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
)

// Registry hands out one AppointmentStore per doctor, created lazily on
// first use. State is scoped per doctor so two signed-in doctors never
// see each other's cache.
type Registry struct {
	mu       sync.Mutex
	byDoctor map[int]*AppointmentStore

	gateway domain.Gateway
	loc     *time.Location
}

func NewRegistry(gw domain.Gateway, loc *time.Location) *Registry {
	return &Registry{
		byDoctor: make(map[int]*AppointmentStore),
		gateway:  gw,
		loc:      loc,
	}
}

func (r *Registry) ForDoctor(doctorID int) *AppointmentStore {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byDoctor[doctorID]
	if !ok {
		st = New(r.gateway, r.loc)
		r.byDoctor[doctorID] = st
	}
	return st
}
