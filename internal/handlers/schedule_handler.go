package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/httpresp"
	"github.com/clinicware/doctor-portal/internal/store"
	"github.com/clinicware/doctor-portal/internal/timezone"
	"github.com/clinicware/doctor-portal/internal/view"
)

type ScheduleHandler struct {
	stores *store.Registry
	loc    *time.Location
}

func NewScheduleHandler(stores *store.Registry, loc *time.Location) *ScheduleHandler {
	return &ScheduleHandler{stores: stores, loc: loc}
}

// Range loads the doctor's schedule for an inclusive date range and
// returns it ordered. Without explicit bounds it serves the
// Sunday-start week containing today.
func (h *ScheduleHandler) Range(c *gin.Context) {
	ctx, doctorID := sessionContext(c)
	st := h.stores.ForDoctor(doctorID)

	now := time.Now().In(h.loc)

	start := now.AddDate(0, 0, -int(now.Weekday()))
	end := start.AddDate(0, 0, 6)

	if startStr := c.Query("start_date"); startStr != "" {
		parsed, err := timezone.ParseDate(startStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "start_date must be YYYY-MM-DD.")
			return
		}
		start = parsed
	}
	if endStr := c.Query("end_date"); endStr != "" {
		parsed, err := timezone.ParseDate(endStr, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "end_date must be YYYY-MM-DD.")
			return
		}
		end = parsed
	}

	if end.Before(start) {
		httperr.BadRequest(c, "invalid_range", "end_date must not precede start_date.")
		return
	}

	if _, err := st.Load(ctx, start, end); err != nil {
		writeError(c, err)
		return
	}

	q := view.Query{Now: now}
	httpresp.List(c, view.Filter(st.Snapshot(), q))
}

// Upcoming serves the next seven days, soonest first.
func (h *ScheduleHandler) Upcoming(c *gin.Context) {
	ctx, doctorID := sessionContext(c)
	st := h.stores.ForDoctor(doctorID)

	now := time.Now().In(h.loc)

	if _, err := st.Load(ctx, now, now.AddDate(0, 0, 7)); err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, view.UpcomingWeek(st.Snapshot(), now))
}
