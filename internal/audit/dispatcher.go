package audit

import "github.com/rs/zerolog"

type Event struct {
	DoctorID      int
	Action        string
	AppointmentID *int
	Metadata      any
}

// Dispatcher records appointment actions off the request path. Events
// go through a buffered queue; when the queue is full they are dropped
// rather than ever blocking an API call.
type Dispatcher struct {
	log   zerolog.Logger
	queue chan Event
}

func NewDispatcher(log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		log:   log,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		entry := d.log.Info().
			Int("doctor_id", ev.DoctorID).
			Str("action", ev.Action)

		if ev.AppointmentID != nil {
			entry = entry.Int("appointment_id", *ev.AppointmentID)
		}
		if ev.Metadata != nil {
			entry = entry.Interface("metadata", ev.Metadata)
		}
		entry.Msg("audit")
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
