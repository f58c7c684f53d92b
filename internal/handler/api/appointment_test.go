//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"tutorbook/internal/domain/user"
	"tutorbook/internal/handler/api"
	reqdto "tutorbook/internal/handler/dto/request"
	resdto "tutorbook/internal/handler/dto/response"
	"tutorbook/internal/usecase/commands"
	"tutorbook/internal/usecase/queries"
	"tutorbook/tests/common/httptest"
	"tutorbook/tests/common/testutil"
	commandsmock "tutorbook/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AppointmentHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockAppointmentCommands
	handler      *api.AppointmentHandler
	userID       uuid.UUID
	userRole     user.Role
}

func (s *AppointmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockAppointmentCommands(s.mockCtrl)
	s.handler = api.NewAppointmentHandler(s.mockCommands)
	s.userID = uuid.New()
	s.userRole = user.RoleLearner

	s.router.PATCH("/appointments/:id", func(c *gin.Context) {
		// Mock middleware behavior
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
			c.Set("user_role", s.userRole)
		}
		s.handler.ApplyAction(c)
	})
}

func (s *AppointmentHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAppointmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(AppointmentHandlerTestSuite))
}

func (s *AppointmentHandlerTestSuite) appointmentView(id uuid.UUID, status string) *queries.AppointmentView {
	now := time.Now()
	return &queries.AppointmentView{
		ID:        id,
		BookingID: uuid.New(),
		UserID:    s.userID,
		StartAt:   now.Add(48 * time.Hour),
		EndAt:     now.Add(49 * time.Hour),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *AppointmentHandlerTestSuite) TestApplyAction() {
	appointmentID := uuid.New()
	url := "/appointments/" + appointmentID.String()
	reqBody := reqdto.AppointmentActionRequest{Action: reqdto.ActionCancel}

	s.Run("success: returns 200 OK with the updated appointment", func() {
		returnView := s.appointmentView(appointmentID, "CANCELED")
		s.mockCommands.EXPECT().
			Apply(gomock.Any(), appointmentID, reqBody, commands.Actor{UserID: s.userID, Role: s.userRole}).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")

		var response resdto.AppointmentResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(appointmentID, response.ID)
		s.Equal("CANCELED", response.Status)
	})

	s.Run("error: 400 on malformed appointment ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/appointments/not-a-uuid", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid appointment ID format")
	})

	s.Run("error: returns 500 when auth context missing", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing action", mutate: testutil.Field("action", nil)},
			{name: "unknown action", mutate: testutil.Field("action", "DELETE_EVERYTHING")},
			{name: "lowercase action", mutate: testutil.Field("action", "cancel")},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, requestMap, "bearer-token")
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
				name:           "appointment not found",
				commandsError:  commands.ErrAppointmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Appointment not found",
			},
			{
				name:           "appointment not owned",
				commandsError:  commands.ErrAppointmentNotOwned,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Not allowed to modify this appointment",
			},
			{
				name:           "invalid transition",
				commandsError:  commands.ErrInvalidTransition,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "not valid for the appointment's current status",
			},
			{
				name:           "missing reschedule time",
				commandsError:  commands.ErrMissingReschedule,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Reschedule requires a new start time",
			},
			{
				name:           "invalid notes",
				commandsError:  commands.ErrInvalidNotes,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid notes",
			},
			{
				name:           "reschedule into the past",
				commandsError:  commands.ErrPastSlot,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "New start time must be in the future",
			},
			{
				name:           "reschedule outside template",
				commandsError:  commands.ErrSlotNotInTemplate,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not in the availability template",
			},
			{
				name:           "schedule unconfigured",
				commandsError:  commands.ErrScheduleUnconfigured,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Availability schedule is not configured",
			},
			{
				name:           "reschedule slot conflict",
				commandsError:  commands.ErrSlotConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "conflicts with an existing appointment",
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
				s.mockCommands.EXPECT().
					Apply(gomock.Any(), appointmentID, reqBody, commands.Actor{UserID: s.userID, Role: s.userRole}).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
