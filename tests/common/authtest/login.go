//go:build e2e

package authtest

import (
	"net/http"
	"testing"

	reqdto "tutorbook/internal/handler/dto/request"
	"tutorbook/internal/pkg/cookie"
	"tutorbook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser authenticates through the real login endpoint and returns
// the access token for Authorization headers.
func LoginUser(t *testing.T, router *gin.Engine, email, password string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		reqdto.LoginRequest{Email: email, Password: password}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	accessCookie := httptest.ExtractCookie(w, cookie.AccessTokenCookieName)
	require.NotNil(t, accessCookie, "access token cookie not set")
	require.NotEmpty(t, accessCookie.Value)

	return accessCookie.Value
}
