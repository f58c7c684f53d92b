package api

import (
	"errors"
	"net/http"

	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingQueries queries.PricingQueries
}

func NewPricingHandler(pricingQueries queries.PricingQueries) *PricingHandler {
	return &PricingHandler{
		pricingQueries: pricingQueries,
	}
}

// @Summary Quote a booking
// @Description Compute an advisory price quote with discounts and upsell hint
// @Tags pricing
// @Accept json
// @Produce json
// @Param request body reqdto.QuoteRequest true "Quote request"
// @Success 200 {object} queries.QuoteView
// @Failure 400 {object} map[string]string
// @Router /pricing/quote [post]
func (h *PricingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.pricingQueries.Quote(c.Request.Context(), queries.QuoteInput{
		SessionsTotal:   req.SessionsTotal,
		PricePerSession: req.PricePerSession,
		CourseID:        req.CourseID,
		CouponCode:      req.GetCouponCode(),
	})
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidQuoteReq):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid quote parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}
