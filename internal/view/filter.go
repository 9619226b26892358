// Package view computes visible appointment subsets and dashboard
// aggregates. Everything here is a pure function of the collection and
// a clock value, so it tests without any HTTP or store machinery.
//
// All time values, including Now, are expected in the clinic's local
// zone; week and month boundaries are local calendar boundaries.
package view

import (
	"sort"
	"strings"
	"time"

	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
)

type Mode string

const (
	ModeToday  Mode = "today"
	ModeWeek   Mode = "week"
	ModeMonth  Mode = "month"
	ModeCustom Mode = "custom"
)

// StatusAll disables status narrowing; the empty string does too.
const StatusAll = "all"

// Query is one lens over the collection: a date-range view mode, a
// status filter, and a free-text search term.
type Query struct {
	Mode   Mode
	Status domain.Status
	Search string

	// Custom range bounds, date precision. Both are required for the
	// custom mode to narrow; if either is zero no date filter applies.
	Start time.Time
	End   time.Time

	Now time.Time
}

// Filter returns the visible, ordered subset for a query. Predicates
// apply search first, then the view mode, then status; output is sorted
// ascending by scheduled time with input order preserved on ties.
func Filter(appts []domain.Appointment, q Query) []domain.Appointment {
	out := make([]domain.Appointment, 0, len(appts))

	for _, ap := range appts {
		if !matchesSearch(ap, q.Search) {
			continue
		}
		if !matchesMode(ap, q) {
			continue
		}
		if !matchesStatus(ap, q.Status) {
			continue
		}
		out = append(out, ap)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

func matchesSearch(ap domain.Appointment, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(ap.PatientFirstName), term) ||
		strings.Contains(strings.ToLower(ap.PatientLastName), term) ||
		strings.Contains(strings.ToLower(ap.Reason), term)
}

func matchesStatus(ap domain.Appointment, status domain.Status) bool {
	if status == "" || status == StatusAll {
		return true
	}
	return ap.Status == status
}

func matchesMode(ap domain.Appointment, q Query) bool {
	switch q.Mode {
	case ModeToday:
		return sameDay(ap.ScheduledAt, q.Now)
	case ModeWeek:
		start, end := weekBounds(q.Now)
		return inRange(ap.ScheduledAt, start, end)
	case ModeMonth:
		return sameMonth(ap.ScheduledAt, q.Now)
	case ModeCustom:
		if q.Start.IsZero() || q.End.IsZero() {
			return true
		}
		return inRange(ap.ScheduledAt, dayStart(q.Start), dayEnd(q.End))
	default:
		return true
	}
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

// Stats are the dashboard tile counts, always computed against the
// full collection regardless of the active query.
type Stats struct {
	Today              int `json:"today"`
	Week               int `json:"week"`
	Month              int `json:"month"`
	CancelledThisMonth int `json:"cancelled_this_month"`
}

func ComputeStats(appts []domain.Appointment, now time.Time) Stats {
	var s Stats
	for _, ap := range appts {
		if sameDay(ap.ScheduledAt, now) {
			s.Today++
		}
		if start, end := weekBounds(now); inRange(ap.ScheduledAt, start, end) {
			s.Week++
		}
		if sameMonth(ap.ScheduledAt, now) {
			s.Month++
			if ap.Status == domain.StatusCancelled {
				s.CancelledThisMonth++
			}
		}
	}
	return s
}

// UpcomingWithin lists confirmed appointments starting in (now, now+d],
// soonest first. Feeds the shortly-due reminder.
func UpcomingWithin(appts []domain.Appointment, now time.Time, d time.Duration) []domain.Appointment {
	cutoff := now.Add(d)

	var out []domain.Appointment
	for _, ap := range appts {
		if ap.Status != domain.StatusConfirmed {
			continue
		}
		if ap.ScheduledAt.After(now) && !ap.ScheduledAt.After(cutoff) {
			out = append(out, ap)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

// UpcomingWeek lists appointments whose local date falls within today
// through seven days out, inclusive, ordered by scheduled time.
func UpcomingWeek(appts []domain.Appointment, now time.Time) []domain.Appointment {
	start := dayStart(now)
	end := dayEnd(now.AddDate(0, 0, 7))

	var out []domain.Appointment
	for _, ap := range appts {
		if inRange(ap.ScheduledAt, start, end) {
			out = append(out, ap)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

// --------------------------------------------------
// Calendar helpers
// --------------------------------------------------

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// weekBounds is the Sunday-start week containing now, computed from
// now's own calendar position, never from the appointment's.
func weekBounds(now time.Time) (time.Time, time.Time) {
	start := dayStart(now).AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 7).Add(-time.Millisecond)
	return start, end
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
