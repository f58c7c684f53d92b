//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"tutorbook/internal/domain/user"
	reqdto "tutorbook/internal/handler/dto/request"
	resdto "tutorbook/internal/handler/dto/response"
	"tutorbook/tests/common/authtest"
	"tutorbook/tests/common/dbtest"
	"tutorbook/tests/common/httptest"
	"tutorbook/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL  = "/api/auth/login"
	logoutURL = "/api/auth/logout"
	meURL     = "/api/auth/me"
)

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "learner@example.com", string(user.RoleLearner))
	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", string(user.RoleAdmin))
	inactiveID := dbtest.CreateTestUser(s.T(), s.DB, "inactive@example.com", string(user.RoleLearner))

	_, err := s.DB.Exec(s.T().Context(), "UPDATE users SET is_active = false WHERE id = $1", inactiveID)
	require.NoError(s.T(), err)
}

func (s *authSuite) TestLogin() {
	s.Run("valid credentials return a token and a cookie", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "learner@example.com", Password: "password123"}, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &response)
		require.NotEmpty(t, response.AccessToken)
		require.Equal(t, "learner@example.com", response.User.Email)
		require.Equal(t, string(user.RoleLearner), response.User.Role)

		accessCookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, accessCookie)
		require.True(t, accessCookie.HttpOnly)
	})

	s.Run("wrong password is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "learner@example.com", Password: "wrongpassword"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("unknown email is indistinguishable from wrong password", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "nobody@example.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("inactive account is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			reqdto.LoginRequest{Email: "inactive@example.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusForbidden, "")
	})
}

func (s *authSuite) TestMe() {
	s.Run("returns the authenticated user", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "admin@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)

		var response map[string]any
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &response)
		require.Equal(t, "admin@example.com", response["email"])
		require.Equal(t, string(user.RoleAdmin), response["role"])
	})

	s.Run("rejects requests without a token", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *authSuite) TestLogout() {
	s.Run("clears the access token cookie", func() {
		t := s.T()
		token := authtest.LoginUser(t, s.Router, "learner@example.com", "password123")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, logoutURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		accessCookie := httptest.ExtractCookie(w, "access_token")
		require.NotNil(t, accessCookie)
		require.Empty(t, accessCookie.Value)
	})
}
