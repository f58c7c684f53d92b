package api

import (
	"errors"
	"net/http"

	reqdto "tutorbook/internal/handler/dto/request"
	resdto "tutorbook/internal/handler/dto/response"
	"tutorbook/internal/handler/middleware"
	"tutorbook/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentCommands commands.AppointmentCommands
}

func NewAppointmentHandler(appointmentCommands commands.AppointmentCommands) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentCommands: appointmentCommands,
	}
}

// @Summary Apply appointment action
// @Description Cancel, confirm, mark no-show, add teacher notes, or reschedule an appointment
// @Tags appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body reqdto.AppointmentActionRequest true "Action request"
// @Success 200 {object} resdto.AppointmentResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) ApplyAction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid appointment ID format",
		})
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.AppointmentActionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	actor := commands.Actor{UserID: userID, Role: role}
	view, err := h.appointmentCommands.Apply(c.Request.Context(), id, req, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrAppointmentNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Appointment not found",
			})
		case errors.Is(err, commands.ErrAppointmentNotOwned):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to modify this appointment",
			})
		case errors.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Action is not valid for the appointment's current status",
			})
		case errors.Is(err, commands.ErrMissingReschedule):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Reschedule requires a new start time",
			})
		case errors.Is(err, commands.ErrInvalidNotes):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid notes",
			})
		case errors.Is(err, commands.ErrPastSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "New start time must be in the future",
			})
		case errors.Is(err, commands.ErrSlotNotInTemplate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "New slot is not in the availability template",
			})
		case errors.Is(err, commands.ErrScheduleUnconfigured):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Availability schedule is not configured",
			})
		case errors.Is(err, commands.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "New slot conflicts with an existing appointment",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAppointmentView(view))
}
