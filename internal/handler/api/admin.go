package api

import (
	"context"
	"net/http"

	"salonbook/internal/domain/booking"
	reqdto "salonbook/internal/handler/dto/request"
	"salonbook/internal/handler/middleware"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	commands commands.AdminCommands
}

func NewAdminHandler(cmds commands.AdminCommands) *AdminHandler {
	return &AdminHandler{commands: cmds}
}

// @Summary Approve cancellation
// @Description Approve a cancellation parked for admin review; the pending refund is applied
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminDecisionRequest false "Decision"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/bookings/{id}/cancellation/approve [post]
func (h *AdminHandler) ApproveCancellation(c *gin.Context) {
	h.decide(c, h.commands.ApproveCancellation)
}

// @Summary Reject cancellation
// @Description Reject a cancellation parked for admin review; the booking returns to its prior status
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.AdminDecisionRequest false "Decision"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/bookings/{id}/cancellation/reject [post]
func (h *AdminHandler) RejectCancellation(c *gin.Context) {
	h.decide(c, h.commands.RejectCancellation)
}

type adminDecisionFn func(ctx context.Context, bookingID, adminID uuid.UUID, reason string) (*booking.State, error)

func (h *AdminHandler) decide(c *gin.Context, run adminDecisionFn) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.AdminDecisionRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	state, err := run(c.Request.Context(), bookingID, adminID, req.Reason)
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.NewBookingView(state))
}
