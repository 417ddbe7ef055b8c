package api

import (
	"errors"
	"net/http"

	"salonbook/internal/domain/booking"
	reqdto "salonbook/internal/handler/dto/request"
	"salonbook/internal/handler/middleware"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qs queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary Create booking
// @Description Create a new booking request in PENDING state
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	clientID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	state, err := h.commands.Create(c.Request.Context(), req.ToInput(clientID))
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusCreated, queries.NewBookingView(state))
}

// @Summary Get booking
// @Description Get the current state of a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Get booking history
// @Description Get the full event log of a booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} queries.BookingEventView
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/history [get]
func (h *BookingHandler) GetHistory(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}

	history, err := h.queries.History(c.Request.Context(), id)
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

// @Summary Preview cancellation
// @Description Show the refund and penalty a cancellation would produce right now
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.CancellationPreview
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancellation-preview [get]
func (h *BookingHandler) PreviewCancellation(c *gin.Context) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	_, role, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	preview, err := h.queries.PreviewCancellation(c.Request.Context(), id, role)
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

// @Summary List bookings
// @Description List the caller's bookings, newest appointment first
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.BookingSummary
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, role, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var (
		summaries []*queries.BookingSummary
		err       error
	)
	if role == booking.RoleStylist {
		summaries, err = h.queries.ListByStylist(c.Request.Context(), userID, 0)
	} else {
		summaries, err = h.queries.ListByClient(c.Request.Context(), userID, 0)
	}
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// @Summary Accept booking
// @Description Stylist accepts a pending booking request
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/accept [post]
func (h *BookingHandler) AcceptBooking(c *gin.Context) {
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.Accept(c.Request.Context(), id, actor)
	})
}

// @Summary Confirm booking
// @Description Client confirms an accepted booking; payment capture is queued
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.ConfirmBookingRequest false "Confirmation"
// @Success 200 {object} queries.BookingView
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req reqdto.ConfirmBookingRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.Confirm(c.Request.Context(), id, actor, req.PaymentMethodRef)
	})
}

// @Summary Start booking
// @Description Stylist marks the appointment as started
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/start [post]
func (h *BookingHandler) StartBooking(c *gin.Context) {
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.Start(c.Request.Context(), id, actor)
	})
}

// @Summary Complete booking
// @Description Stylist marks the appointment as completed
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} queries.BookingView
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/complete [post]
func (h *BookingHandler) CompleteBooking(c *gin.Context) {
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.Complete(c.Request.Context(), id, actor)
	})
}

// @Summary Cancel booking
// @Description Cancel a booking; the refund follows the cancellation policy
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CancelBookingRequest false "Cancellation"
// @Success 200 {object} queries.BookingView
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	var req reqdto.CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.Cancel(c.Request.Context(), commands.CancelBookingInput{
			BookingID: id,
			Actor:     actor,
			Reason:    req.Reason,
			Override:  req.Override(actor.ID, actor.Role),
		})
	})
}

// @Summary Report no-show
// @Description Report that one side did not appear; the amount is split per policy
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.MarkNoShowRequest true "No-show report"
// @Success 200 {object} queries.BookingView
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/no-show [post]
func (h *BookingHandler) MarkNoShow(c *gin.Context) {
	var req reqdto.MarkNoShowRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.MarkNoShow(c.Request.Context(), commands.MarkNoShowInput{
			BookingID: id,
			Actor:     actor,
			Party:     booking.NoShowParty(req.Party),
			Reason:    req.Reason,
		})
	})
}

// @Summary Reschedule booking
// @Description Move the appointment to a new date and time
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.RescheduleBookingRequest true "New slot"
// @Success 200 {object} queries.BookingView
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/reschedule [post]
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	var req reqdto.RescheduleBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	h.command(c, func(id uuid.UUID, actor commands.Actor) (*booking.State, error) {
		return h.commands.Reschedule(c.Request.Context(), commands.RescheduleInput{
			BookingID: id,
			Actor:     actor,
			NewDate:   req.NewDate,
			NewTime:   req.NewTime,
		})
	})
}

func (h *BookingHandler) command(c *gin.Context, run func(id uuid.UUID, actor commands.Actor) (*booking.State, error)) {
	id, ok := h.bookingID(c)
	if !ok {
		return
	}
	userID, role, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	state, err := run(id, commands.Actor{ID: userID, Role: role})
	if err != nil {
		respondCommandError(c, err)
		return
	}
	c.JSON(http.StatusOK, queries.NewBookingView(state))
}

func (h *BookingHandler) bookingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return uuid.Nil, false
	}
	return id, true
}

// respondCommandError maps usecase errors onto HTTP statuses.
func respondCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	case errors.Is(err, errs.ErrBookingExists):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking already exists"})
	case errors.Is(err, errs.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Command not allowed in current state"})
	case errors.Is(err, errs.ErrConcurrencyConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Booking was modified concurrently, retry"})
	case errors.Is(err, errs.ErrActorNotAllowed):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to act on this booking"})
	case errors.Is(err, commands.ErrDomainValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed"})
	case errors.Is(err, errs.ErrPolicyViolation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Policy violation"})
	case errors.Is(err, commands.ErrNoPendingCancellation):
		c.JSON(http.StatusConflict, gin.H{"error": "No cancellation awaiting approval"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
