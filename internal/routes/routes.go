package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/clinicware/doctor-portal/internal/audit"
	"github.com/clinicware/doctor-portal/internal/backend"
	"github.com/clinicware/doctor-portal/internal/cache"
	"github.com/clinicware/doctor-portal/internal/config"
	domain "github.com/clinicware/doctor-portal/internal/domain/appointment"
	"github.com/clinicware/doctor-portal/internal/handlers"
	"github.com/clinicware/doctor-portal/internal/middleware"
	"github.com/clinicware/doctor-portal/internal/store"
	"github.com/clinicware/doctor-portal/internal/timezone"
	ucAppointment "github.com/clinicware/doctor-portal/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, cfg *config.Config, log zerolog.Logger) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	loc := timezone.Location(cfg.ClinicTimezone)

	var gateway domain.Gateway = backend.New(cfg.BackendBaseURL, cfg.BackendTimeout)

	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, schedule cache disabled")
		} else {
			gateway = cache.NewScheduleGateway(gateway, rdb, cache.DefaultTTL, log)
		}
	}

	stores := store.NewRegistry(gateway, loc)
	auditDispatcher := audit.NewDispatcher(log)

	// ======================================================
	// USE CASES
	// ======================================================
	transitionUC := ucAppointment.NewTransitionAppointment(stores, gateway, auditDispatcher)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(stores, gateway, auditDispatcher)
	notesUC := ucAppointment.NewUpdateNotes(stores, gateway, auditDispatcher)
	deleteUC := ucAppointment.NewDeleteAppointment(stores, gateway, auditDispatcher)
	createUC := ucAppointment.NewCreateAppointment(gateway, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		stores,
		gateway,
		loc,
		transitionUC,
		rescheduleUC,
		notesUC,
		deleteUC,
		createUC,
	)
	scheduleHandler := handlers.NewScheduleHandler(stores, loc)

	// ======================================================
	// ROUTES
	// ======================================================
	api := r.Group("/api/portal")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.POST("", appointmentHandler.Create)
			appointments.GET("/stats", appointmentHandler.Stats)
			appointments.GET("/upcoming", appointmentHandler.Upcoming)
			appointments.GET("/:id", appointmentHandler.Get)

			appointments.PATCH("/:id/confirm", appointmentHandler.Action(domain.ActionConfirm))
			appointments.PATCH("/:id/cancel", appointmentHandler.Action(domain.ActionCancel))
			appointments.PATCH("/:id/complete", appointmentHandler.Action(domain.ActionComplete))
			appointments.PATCH("/:id/reopen", appointmentHandler.Action(domain.ActionReopen))
			appointments.PATCH("/:id/reschedule", appointmentHandler.Reschedule)

			appointments.PATCH("/:id/notes", appointmentHandler.UpdateNotes)
			appointments.DELETE("/:id", appointmentHandler.Delete)
		}

		schedule := api.Group("/schedule")
		{
			schedule.GET("", scheduleHandler.Range)
			schedule.GET("/upcoming", scheduleHandler.Upcoming)
		}
	}
}
