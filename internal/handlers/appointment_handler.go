package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/httperr"
	"github.com/clinicware/doctor-portal/internal/httpresp"
	"github.com/clinicware/doctor-portal/internal/store"
	"github.com/clinicware/doctor-portal/internal/timezone"
	usecase "github.com/clinicware/doctor-portal/internal/usecase/appointment"
	"github.com/clinicware/doctor-portal/internal/view"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	stores  *store.Registry
	gateway domain.Gateway
	loc     *time.Location

	transitionUC *usecase.TransitionAppointment
	rescheduleUC *usecase.RescheduleAppointment
	notesUC      *usecase.UpdateNotes
	deleteUC     *usecase.DeleteAppointment
	createUC     *usecase.CreateAppointment
}

func NewAppointmentHandler(
	stores *store.Registry,
	gateway domain.Gateway,
	loc *time.Location,
	transitionUC *usecase.TransitionAppointment,
	rescheduleUC *usecase.RescheduleAppointment,
	notesUC *usecase.UpdateNotes,
	deleteUC *usecase.DeleteAppointment,
	createUC *usecase.CreateAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		stores:       stores,
		gateway:      gateway,
		loc:          loc,
		transitionUC: transitionUC,
		rescheduleUC: rescheduleUC,
		notesUC:      notesUC,
		deleteUC:     deleteUC,
		createUC:     createUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type RescheduleRequest struct {
	BookingDate string `json:"booking_date" binding:"required"`
	BookingTime string `json:"booking_time" binding:"required"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type CreateAppointmentRequest struct {
	PatientID      int    `json:"patient_id" binding:"required"`
	BookingDate    string `json:"booking_date" binding:"required"`
	BookingTime    string `json:"booking_time" binding:"required"`
	Duration       int    `json:"duration"`
	Status         string `json:"status"`
	PaymentMethod  string `json:"payment_method"`
	ReasonForVisit string `json:"reason_for_visit"`
}

// ======================================================
// LIST / STATS / UPCOMING
// ======================================================

// List refreshes the doctor's appointments and applies the requested
// lens: ?view=today|week|month|custom, ?status=, ?q=, and for the
// custom view ?start_date= and ?end_date=.
func (h *AppointmentHandler) List(c *gin.Context) {
	ctx, doctorID := sessionContext(c)
	st := h.stores.ForDoctor(doctorID)

	if _, err := st.LoadAll(ctx); err != nil {
		writeError(c, err)
		return
	}

	q := view.Query{
		Mode:   view.Mode(c.Query("view")),
		Status: domain.Status(c.Query("status")),
		Search: c.Query("q"),
		Now:    time.Now().In(h.loc),
	}

	if q.Mode == view.ModeCustom {
		start, end, err := h.parseRange(c.Query("start_date"), c.Query("end_date"))
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
			return
		}
		q.Start, q.End = start, end
	}

	httpresp.List(c, view.Filter(st.Snapshot(), q))
}

func (h *AppointmentHandler) Stats(c *gin.Context) {
	ctx, doctorID := sessionContext(c)
	st := h.stores.ForDoctor(doctorID)

	if _, err := st.LoadAll(ctx); err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, view.ComputeStats(st.Snapshot(), time.Now().In(h.loc)))
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	ctx, doctorID := sessionContext(c)
	st := h.stores.ForDoctor(doctorID)

	within := 30 * time.Minute
	if raw := c.Query("within"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			httperr.BadRequest(c, "invalid_duration", "within must be a positive duration, e.g. 30m.")
			return
		}
		within = d
	}

	if _, err := st.LoadAll(ctx); err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, view.UpcomingWithin(st.Snapshot(), time.Now().In(h.loc), within))
}

// ======================================================
// DETAIL
// ======================================================

// Get serves the detail view. The backend detail record carries fields
// the list omits (date of birth, notes); when it is reachable those are
// folded into the cache, otherwise the cached copy is served as is.
func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ctx, doctorID := sessionContext(c)
	st := h.stores.ForDoctor(doctorID)

	rec, err := h.gateway.GetAppointment(ctx, id)
	if err == nil {
		st.ApplyDetail(id, rec.DateOfBirth, rec.Notes)

		if ap, found := st.FindByID(id); found {
			h.writeDetail(c, ap)
			return
		}
		if ap, mapErr := domain.FromBackend(rec, h.loc); mapErr == nil {
			h.writeDetail(c, ap)
			return
		}
	}

	if ap, found := st.FindByID(id); found {
		h.writeDetail(c, ap)
		return
	}

	writeError(c, err)
}

func (h *AppointmentHandler) writeDetail(c *gin.Context, ap domain.Appointment) {
	httpresp.OK(c, gin.H{
		"appointment":     ap,
		"allowed_actions": domain.AllowedActions(ap.Status),
	})
}

// ======================================================
// STATUS ACTIONS
// ======================================================

// Action returns the handler for one status action. Only actions in the
// transition table are routed; everything else never reaches here.
func (h *AppointmentHandler) Action(action domain.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.appointmentID(c)
		if !ok {
			return
		}

		ctx, doctorID := sessionContext(c)

		updated, err := h.transitionUC.Execute(ctx, doctorID, id, action)
		if err != nil {
			writeError(c, err)
			return
		}

		httpresp.OK(c, updated)
	}
}

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "booking_date and booking_time are required.")
		return
	}

	newTime, err := domain.CombineDateTime(req.BookingDate, req.BookingTime, h.loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_datetime", "Date or time is invalid.")
		return
	}

	ctx, doctorID := sessionContext(c)

	updated, err := h.rescheduleUC.Execute(ctx, doctorID, id, newTime)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

// ======================================================
// NOTES / DELETE / CREATE
// ======================================================

func (h *AppointmentHandler) UpdateNotes(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid notes payload.")
		return
	}

	ctx, doctorID := sessionContext(c)

	updated, err := h.notesUC.Execute(ctx, doctorID, id, req.Notes)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, updated)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	ctx, doctorID := sessionContext(c)

	if err := h.deleteUC.Execute(ctx, doctorID, id); err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": id})
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Missing or invalid appointment fields.")
		return
	}

	ctx, doctorID := sessionContext(c)

	err := h.createUC.Execute(ctx, doctorID, usecase.CreateInput{
		PatientID:      req.PatientID,
		BookingDate:    req.BookingDate,
		BookingTime:    req.BookingTime,
		Duration:       req.Duration,
		Status:         domain.NormalizeStatus(req.Status),
		PaymentMethod:  req.PaymentMethod,
		ReasonForVisit: req.ReasonForVisit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, gin.H{"created": true})
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) appointmentID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be a positive integer.")
		return 0, false
	}
	return id, true
}

func (h *AppointmentHandler) parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	// Both bounds are required for narrowing; with either missing the
	// custom view falls back to no date filter.
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, nil
	}

	start, err := timezone.ParseDate(startStr, h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := timezone.ParseDate(endStr, h.loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
