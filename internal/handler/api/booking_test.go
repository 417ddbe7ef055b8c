//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"salonbook/internal/domain/booking"
	"salonbook/internal/handler/api"
	reqdto "salonbook/internal/handler/dto/request"
	"salonbook/internal/pkg/errs"
	"salonbook/internal/usecase/commands"
	"salonbook/internal/usecase/queries"
	"salonbook/tests/common/builder"
	"salonbook/tests/common/httptest"
	"salonbook/tests/common/testutil"
	commandsmock "salonbook/tests/mock/commands"
	queriesmock "salonbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler

	userID uuid.UUID
	role   booking.ActorRole
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)

	s.userID = uuid.New()
	s.role = booking.RoleClient

	// Mock middleware behavior: inject the authenticated actor from the
	// suite so each test can switch identity before performing a request.
	s.router.Use(func(c *gin.Context) {
		c.Set("user_id", s.userID)
		c.Set("user_role", s.role)
		c.Next()
	})

	s.router.POST("/bookings", s.handler.CreateBooking)
	s.router.GET("/bookings", s.handler.ListBookings)
	s.router.GET("/bookings/:id", s.handler.GetBooking)
	s.router.GET("/bookings/:id/history", s.handler.GetHistory)
	s.router.GET("/bookings/:id/cancellation-preview", s.handler.PreviewCancellation)
	s.router.POST("/bookings/:id/accept", s.handler.AcceptBooking)
	s.router.POST("/bookings/:id/confirm", s.handler.ConfirmBooking)
	s.router.POST("/bookings/:id/start", s.handler.StartBooking)
	s.router.POST("/bookings/:id/complete", s.handler.CompleteBooking)
	s.router.POST("/bookings/:id/cancel", s.handler.CancelBooking)
	s.router.POST("/bookings/:id/no-show", s.handler.MarkNoShow)
	s.router.POST("/bookings/:id/reschedule", s.handler.RescheduleBooking)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) actor() commands.Actor {
	return commands.Actor{ID: s.userID, Role: s.role}
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"
	reqBody := builder.NewBookingRequestBuilder().BuildDTO()

	s.Run("success: returns 201 Created with the new booking", func() {
		state := builder.NewBookingStateBuilder().
			WithClient(s.userID).
			WithStylist(reqBody.StylistID).
			Build()
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToInput(s.userID)).
			Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var view queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &view)
		s.Equal(state.BookingID, view.ID)
		s.Equal(string(booking.StatusPending), view.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []testCaseBooking{
			{name: "missing field: stylist_id", mutate: testutil.Field("stylist_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: service_id", mutate: testutil.Field("service_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: booking_date", mutate: testutil.Field("booking_date", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: booking_time", mutate: testutil.Field("booking_time", nil), expectCode: http.StatusBadRequest},
			{name: "zero duration", mutate: testutil.Field("duration_minutes", 0), expectCode: http.StatusBadRequest},
			{name: "negative price", mutate: testutil.Field("total_price_cents", -1), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 409 Conflict when the booking already exists", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrBookingExists).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "already exists")
	})

	s.Run("error: 422 Unprocessable Entity on domain validation failure", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrDomainValidation).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Validation failed")
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()

	s.Run("success: returns the booking view", func() {
		view := &queries.BookingView{ID: bookingID, Status: string(booking.StatusConfirmed)}
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")

		var got queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(bookingID, got.ID)
		s.Equal(string(booking.StatusConfirmed), got.Status)
	})

	s.Run("error: 400 Bad Request for a malformed ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID")
	})

	s.Run("error: 404 Not Found for an unknown booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID).
			Return(nil, errs.ErrBookingNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}

func (s *BookingHandlerTestSuite) TestGetHistory() {
	bookingID := uuid.New()

	s.Run("success: returns events in sequence order", func() {
		history := []*queries.BookingEventView{
			{Sequence: 1, Type: "BOOKING_CREATED", Timestamp: time.Now().UTC()},
			{Sequence: 2, Type: "BOOKING_ACCEPTED", Timestamp: time.Now().UTC()},
		}
		s.mockQueries.EXPECT().History(gomock.Any(), bookingID).Return(history, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String()+"/history", nil, "")

		var got []*queries.BookingEventView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Len(got, 2)
		s.Equal(int64(1), got[0].Sequence)
		s.Equal("BOOKING_ACCEPTED", got[1].Type)
	})

	s.Run("error: 404 Not Found for an unknown booking", func() {
		s.mockQueries.EXPECT().History(gomock.Any(), bookingID).
			Return(nil, errs.ErrBookingNotFound).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String()+"/history", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "not found")
	})
}

func (s *BookingHandlerTestSuite) TestPreviewCancellation() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancellation-preview"

	s.Run("success: previews with the caller's role", func() {
		preview := &queries.CancellationPreview{
			RefundCents:       8000,
			HoursUntilBooking: 49,
		}
		s.mockQueries.EXPECT().PreviewCancellation(gomock.Any(), bookingID, booking.RoleClient).
			Return(preview, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var got queries.CancellationPreview
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Equal(int64(8000), got.RefundCents)
		s.False(got.RequiresAdminApproval)
	})

	s.Run("success: stylist role reaches the stylist policy branch", func() {
		s.role = booking.RoleStylist
		defer func() { s.role = booking.RoleClient }()

		preview := &queries.CancellationPreview{
			PenaltyCents:          1600,
			RequiresAdminApproval: true,
			HoursUntilBooking:     2,
		}
		s.mockQueries.EXPECT().PreviewCancellation(gomock.Any(), bookingID, booking.RoleStylist).
			Return(preview, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")

		var got queries.CancellationPreview
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.True(got.RequiresAdminApproval)
		s.Equal(int64(1600), got.PenaltyCents)
	})

	s.Run("error: 409 Conflict for a terminal booking", func() {
		s.mockQueries.EXPECT().PreviewCancellation(gomock.Any(), bookingID, booking.RoleClient).
			Return(nil, errs.ErrInvalidTransition).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "not allowed in current state")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("success: clients see their own bookings", func() {
		summaries := []*queries.BookingSummary{
			{ID: uuid.New(), ClientID: s.userID, Status: string(booking.StatusPending)},
		}
		s.mockQueries.EXPECT().ListByClient(gomock.Any(), s.userID, 0).
			Return(summaries, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")

		var got []*queries.BookingSummary
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &got)
		s.Len(got, 1)
		s.Equal(s.userID, got[0].ClientID)
	})

	s.Run("success: stylists see their schedule", func() {
		s.role = booking.RoleStylist
		defer func() { s.role = booking.RoleClient }()

		s.mockQueries.EXPECT().ListByStylist(gomock.Any(), s.userID, 0).
			Return([]*queries.BookingSummary{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})
}

func (s *BookingHandlerTestSuite) TestLifecycleEndpoints() {
	bookingID := uuid.New()
	s.role = booking.RoleStylist

	type lifecycleCase struct {
		name   string
		path   string
		status booking.Status
		expect func(state *booking.State)
	}

	cases := []lifecycleCase{
		{
			name:   "accept",
			path:   "/accept",
			status: booking.StatusVerifyAcceptance,
			expect: func(state *booking.State) {
				s.mockCommands.EXPECT().Accept(gomock.Any(), bookingID, s.actor()).
					Return(state, nil).Times(1)
			},
		},
		{
			name:   "confirm",
			path:   "/confirm",
			status: booking.StatusConfirmed,
			expect: func(state *booking.State) {
				s.mockCommands.EXPECT().Confirm(gomock.Any(), bookingID, s.actor(), "").
					Return(state, nil).Times(1)
			},
		},
		{
			name:   "start",
			path:   "/start",
			status: booking.StatusInProgress,
			expect: func(state *booking.State) {
				s.mockCommands.EXPECT().Start(gomock.Any(), bookingID, s.actor()).
					Return(state, nil).Times(1)
			},
		},
		{
			name:   "complete",
			path:   "/complete",
			status: booking.StatusCompleted,
			expect: func(state *booking.State) {
				s.mockCommands.EXPECT().Complete(gomock.Any(), bookingID, s.actor()).
					Return(state, nil).Times(1)
			},
		},
	}

	for _, tc := range cases {
		s.Run("success: "+tc.name+" returns the updated booking", func() {
			state := builder.NewBookingStateBuilder().
				WithID(bookingID).
				WithStatus(tc.status).
				Build()
			tc.expect(state)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+tc.path, nil, "")

			var view queries.BookingView
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
			s.Equal(string(tc.status), view.Status)
		})
	}

	s.Run("error: command errors map onto HTTP statuses", func() {
		errorCases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "invalid transition", err: errs.ErrInvalidTransition, expectCode: http.StatusConflict},
			{name: "actor not allowed", err: errs.ErrActorNotAllowed, expectCode: http.StatusForbidden},
			{name: "concurrency conflict", err: errs.ErrConcurrencyConflict, expectCode: http.StatusConflict},
			{name: "unknown booking", err: errs.ErrBookingNotFound, expectCode: http.StatusNotFound},
			{name: "unexpected failure", err: errs.ErrDatabaseOperationFailed, expectCode: http.StatusInternalServerError},
		}
		for _, tc := range errorCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Accept(gomock.Any(), bookingID, s.actor()).
					Return(nil, tc.err).Times(1)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/accept", nil, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/cancel"

	s.Run("success: client cancel with a reason", func() {
		state := builder.NewBookingStateBuilder().
			WithID(bookingID).
			WithStatus(booking.StatusCancelled).
			Build()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), commands.CancelBookingInput{
			BookingID: bookingID,
			Actor:     s.actor(),
			Reason:    "schedule conflict",
		}).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.CancelBookingRequest{Reason: "schedule conflict"}, "")

		var view queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal(string(booking.StatusCancelled), view.Status)
	})

	s.Run("success: cancel without a body", func() {
		state := builder.NewBookingStateBuilder().
			WithID(bookingID).
			WithStatus(booking.StatusCancelled).
			Build()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), commands.CancelBookingInput{
			BookingID: bookingID,
			Actor:     s.actor(),
		}).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: admin override is forwarded", func() {
		s.role = booking.RoleAdmin
		defer func() { s.role = booking.RoleClient }()

		refund := int64(5000)
		state := builder.NewBookingStateBuilder().
			WithID(bookingID).
			WithStatus(booking.StatusCancelled).
			Build()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), commands.CancelBookingInput{
			BookingID: bookingID,
			Actor:     s.actor(),
			Reason:    "goodwill",
			Override: &booking.AdminOverride{
				AdminID:     s.userID,
				Reason:      "customer retention",
				RefundCents: refund,
			},
		}).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.CancelBookingRequest{
				Reason:              "goodwill",
				OverrideRefundCents: &refund,
				OverrideReason:      "customer retention",
			}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: non-admin override fields are ignored", func() {
		refund := int64(9999)
		state := builder.NewBookingStateBuilder().
			WithID(bookingID).
			WithStatus(booking.StatusCancelled).
			Build()
		s.mockCommands.EXPECT().Cancel(gomock.Any(), commands.CancelBookingInput{
			BookingID: bookingID,
			Actor:     s.actor(),
		}).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.CancelBookingRequest{OverrideRefundCents: &refund}, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 422 Unprocessable Entity on policy violation", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), gomock.Any()).
			Return(nil, errs.ErrPolicyViolation).Times(1)
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "Policy violation")
	})
}

func (s *BookingHandlerTestSuite) TestMarkNoShow() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/no-show"
	s.role = booking.RoleStylist

	s.Run("success: reports a client no-show", func() {
		state := builder.NewBookingStateBuilder().
			WithID(bookingID).
			WithStatus(booking.StatusNoShow).
			Build()
		s.mockCommands.EXPECT().MarkNoShow(gomock.Any(), commands.MarkNoShowInput{
			BookingID: bookingID,
			Actor:     s.actor(),
			Party:     booking.NoShowClient,
			Reason:    "did not arrive",
		}).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.MarkNoShowRequest{Party: "CLIENT", Reason: "did not arrive"}, "")

		var view queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal(string(booking.StatusNoShow), view.Status)
	})

	s.Run("error: 400 Bad Request for an unknown party", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"party": "RECEPTIONIST"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 400 Bad Request when party is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"reason": "no party"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}

func (s *BookingHandlerTestSuite) TestRescheduleBooking() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String() + "/reschedule"

	s.Run("success: moves the appointment", func() {
		state := builder.NewBookingStateBuilder().
			WithID(bookingID).
			WithSlot("2025-12-01", "15:00").
			Build()
		s.mockCommands.EXPECT().Reschedule(gomock.Any(), commands.RescheduleInput{
			BookingID: bookingID,
			Actor:     s.actor(),
			NewDate:   "2025-12-01",
			NewTime:   "15:00",
		}).Return(state, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			reqdto.RescheduleBookingRequest{NewDate: "2025-12-01", NewTime: "15:00"}, "")

		var view queries.BookingView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &view)
		s.Equal("2025-12-01", view.BookingDate)
		s.Equal("15:00", view.BookingTime)
	})

	s.Run("error: 400 Bad Request when the new slot is missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"new_date": "2025-12-01"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})
}
