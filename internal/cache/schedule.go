// Package cache puts a short-lived Redis snapshot in front of backend
// schedule fetches. Portal dashboards reload the same week constantly;
// the snapshot absorbs those repeats without a backend round trip.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/clinicware/doctor-portal/internal/backend"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
)

const DefaultTTL = 30 * time.Second

// ScheduleGateway wraps a Gateway, caching range reads per doctor and
// invalidating that doctor's entries on every mutation. All other calls
// pass straight through.
type ScheduleGateway struct {
	next domain.Gateway
	rdb  *redis.Client
	ttl  time.Duration
	log  zerolog.Logger
}

func NewScheduleGateway(next domain.Gateway, rdb *redis.Client, ttl time.Duration, log zerolog.Logger) *ScheduleGateway {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ScheduleGateway{next: next, rdb: rdb, ttl: ttl, log: log}
}

func Connect(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (g *ScheduleGateway) key(ctx context.Context, start, end string) string {
	return fmt.Sprintf("schedule:%d:%s:%s", backend.DoctorFrom(ctx), start, end)
}

func (g *ScheduleGateway) ListSchedule(
	ctx context.Context,
	startDate string,
	endDate string,
) ([]domain.BackendRecord, error) {

	key := g.key(ctx, startDate, endDate)

	if raw, err := g.rdb.Get(ctx, key).Bytes(); err == nil {
		var recs []domain.BackendRecord
		if err := json.Unmarshal(raw, &recs); err == nil {
			return recs, nil
		}
		// corrupt entry, fall through to the backend
		g.rdb.Del(ctx, key)
	}

	recs, err := g.next.ListSchedule(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(recs); err == nil {
		if err := g.rdb.Set(ctx, key, raw, g.ttl).Err(); err != nil {
			g.log.Warn().Err(err).Msg("schedule cache write failed")
		}
	}
	return recs, nil
}

// invalidate drops every cached range for the doctor. Mutations are
// rare next to reads, so a full per-doctor flush is fine.
func (g *ScheduleGateway) invalidate(ctx context.Context) {
	pattern := fmt.Sprintf("schedule:%d:*", backend.DoctorFrom(ctx))

	iter := g.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		g.rdb.Del(ctx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		g.log.Warn().Err(err).Msg("schedule cache invalidation failed")
	}
}

// -------- Pass-through reads --------

func (g *ScheduleGateway) ListAppointments(ctx context.Context) ([]domain.BackendRecord, error) {
	return g.next.ListAppointments(ctx)
}

func (g *ScheduleGateway) GetAppointment(ctx context.Context, id int) (domain.BackendRecord, error) {
	return g.next.GetAppointment(ctx, id)
}

// -------- Mutations (invalidate on success) --------

func (g *ScheduleGateway) UpdateStatus(ctx context.Context, id int, backendStatus string) error {
	if err := g.next.UpdateStatus(ctx, id, backendStatus); err != nil {
		return err
	}
	g.invalidate(ctx)
	return nil
}

func (g *ScheduleGateway) Reschedule(ctx context.Context, id int, bookingDate, bookingTime string) error {
	if err := g.next.Reschedule(ctx, id, bookingDate, bookingTime); err != nil {
		return err
	}
	g.invalidate(ctx)
	return nil
}

func (g *ScheduleGateway) UpdateNotes(ctx context.Context, id int, notes string) error {
	if err := g.next.UpdateNotes(ctx, id, notes); err != nil {
		return err
	}
	g.invalidate(ctx)
	return nil
}

func (g *ScheduleGateway) DeleteAppointment(ctx context.Context, id int) error {
	if err := g.next.DeleteAppointment(ctx, id); err != nil {
		return err
	}
	g.invalidate(ctx)
	return nil
}

func (g *ScheduleGateway) CreateAppointment(ctx context.Context, req domain.CreateRequest) error {
	if err := g.next.CreateAppointment(ctx, req); err != nil {
		return err
	}
	g.invalidate(ctx)
	return nil
}

// Compile-time check
var _ domain.Gateway = (*ScheduleGateway)(nil)
