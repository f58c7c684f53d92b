//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"tutorbook/internal/domain/user"
	"tutorbook/internal/handler/api"
	resdto "tutorbook/internal/handler/dto/response"
	"tutorbook/internal/usecase/commands"
	"tutorbook/internal/usecase/queries"
	"tutorbook/tests/common/builder"
	"tutorbook/tests/common/httptest"
	"tutorbook/tests/common/testutil"
	commandsmock "tutorbook/tests/mock/commands"
	queriesmock "tutorbook/tests/mock/queries"

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
	userID       uuid.UUID
	userRole     user.Role
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()
	s.userRole = user.RoleLearner

	// Mock middleware behavior: an Authorization header stands in for a
	// validated token.
	authed := func(next gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			if c.GetHeader("Authorization") != "" {
				c.Set("user_id", s.userID)
				c.Set("user_role", s.userRole)
			}
			next(c)
		}
	}

	s.router.POST("/bookings", authed(s.handler.CreateBooking))
	s.router.GET("/bookings", authed(s.handler.GetUserBookings))
	s.router.GET("/bookings/:id", authed(s.handler.GetBooking))
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	url := "/bookings"

	bookingBuilder := builder.NewBookingBuilder().WithUserID(s.userID)
	reqBody := bookingBuilder.BuildDTO()
	returnBooking := bookingBuilder.BuildReadModel()

	s.Run("success: returns 201 Created with appointments", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.userID).
			Return(returnBooking, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnBooking.ID, response.ID)
		s.Equal(returnBooking.FinalAmount, response.FinalAmount)
		s.Len(response.Appointments, returnBooking.SessionsTotal)
	})

	s.Run("error: returns 500 when user_id missing in context", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing course_id", mutate: testutil.Field("course_id", nil)},
			{name: "missing sessions_total", mutate: testutil.Field("sessions_total", nil)},
			{name: "zero sessions_total", mutate: testutil.Field("sessions_total", 0)},
			{name: "negative price_per_session", mutate: testutil.Field("price_per_session", -1)},
			{name: "missing first_session_at", mutate: testutil.Field("first_session_at", nil)},
			{name: "malformed first_session_at", mutate: testutil.Field("first_session_at", "not-a-time")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "first session in the past",
				commandsError:  commands.ErrPastSlot,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "First session must be in the future",
			},
			{
				name:           "invalid session count",
				commandsError:  commands.ErrInvalidSessionCount,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid session count",
			},
			{
				name:           "coupon not found",
				commandsError:  commands.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon not found",
			},
			{
				name:           "coupon invalid",
				commandsError:  commands.ErrCouponInvalid,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid or expired coupon",
			},
			{
				name:           "coupon exhausted",
				commandsError:  commands.ErrCouponExhausted,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Coupon redemption limit reached",
			},
			{
				name:           "slot conflict",
				commandsError:  commands.ErrSlotConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "conflict with an existing appointment",
			},
			{
				name:           "schedule unconfigured",
				commandsError:  commands.ErrScheduleUnconfigured,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Availability schedule is not configured",
			},
			{
				name:           "slot not in template",
				commandsError:  commands.ErrSlotNotInTemplate,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not in the availability template",
			},
			{
				name:           "domain validation failure",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Domain validation failed",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), reqBody, s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	returnBooking := builder.NewBookingBuilder().WithUserID(s.userID).BuildReadModel()
	url := "/bookings/" + returnBooking.ID.String()

	s.Run("success: returns booking for its owner", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnBooking.ID, s.userID, false).
			Return(returnBooking, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(returnBooking.ID, response.ID)
	})

	s.Run("success: admin role passes isAdmin to the query", func() {
		s.userRole = user.RoleAdmin
		defer func() { s.userRole = user.RoleLearner }()

		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnBooking.ID, s.userID, true).
			Return(returnBooking, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 on malformed booking ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid booking ID format")
	})

	s.Run("error: 404 when booking is missing or not owned", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnBooking.ID, s.userID, false).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Booking not found")
	})
}

func (s *BookingHandlerTestSuite) TestGetUserBookings() {
	url := "/bookings"

	s.Run("success: returns user's bookings newest first", func() {
		items := []*queries.BookingListItem{
			builder.NewBookingBuilder().BuildListItem(),
			builder.NewBookingBuilder().WithSessions(8).BuildListItem(),
		}
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 0).
			Return(items, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response []resdto.BookingListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
		s.Equal(items[0].ID, response[0].ID)
	})

	s.Run("success: passes limit query through", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 5).
			Return([]*queries.BookingListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListByUser(gomock.Any(), s.userID, 0).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
