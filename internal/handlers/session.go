package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/clinicware/doctor-portal/internal/backend"
	"github.com/clinicware/doctor-portal/internal/middleware"
)

// sessionContext lifts the doctor's identity and raw token off the Gin
// context so outbound backend calls carry them.
func sessionContext(c *gin.Context) (context.Context, int) {
	doctorID := c.MustGet(middleware.ContextDoctorID).(int)
	token := c.MustGet(middleware.ContextToken).(string)
	return backend.WithSession(c.Request.Context(), token, doctorID), doctorID
}
