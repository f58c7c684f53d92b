package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "tutorbook/internal/handler/dto/request"
	resdto "tutorbook/internal/handler/dto/response"
	"tutorbook/internal/usecase/commands"
	"tutorbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	availabilityQueries  queries.AvailabilityQueries
	availabilityCommands commands.AvailabilityCommands
}

func NewAvailabilityHandler(
	availabilityQueries queries.AvailabilityQueries,
	availabilityCommands commands.AvailabilityCommands,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries:  availabilityQueries,
		availabilityCommands: availabilityCommands,
	}
}

// @Summary List bookable slots
// @Description List upcoming bookable slots, already filtered against existing appointments
// @Tags availability
// @Produce json
// @Param weeks query int false "Number of weeks ahead (clamped to the configured maximum)"
// @Success 200 {array} resdto.SlotResponse
// @Router /availability [get]
func (h *AvailabilityHandler) ListSlots(c *gin.Context) {
	weeks, _ := strconv.Atoi(c.DefaultQuery("weeks", "0"))

	views, err := h.availabilityQueries.List(c.Request.Context(), weeks)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSlotViews(views))
}

// @Summary Get weekly template
// @Description Get the raw weekly availability template
// @Tags availability
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.TemplateSlotResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/availability [get]
func (h *AvailabilityHandler) GetTemplate(c *gin.Context) {
	views, err := h.availabilityQueries.Template(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromTemplateSlotViews(views))
}

// @Summary Replace weekly template
// @Description Replace the whole weekly availability template in one transaction
// @Tags availability
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReplaceTemplateRequest true "New template"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /admin/availability [put]
func (h *AvailabilityHandler) ReplaceTemplate(c *gin.Context) {
	var req reqdto.ReplaceTemplateRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.availabilityCommands.ReplaceTemplate(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, commands.ErrInvalidTemplate):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid availability template",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
