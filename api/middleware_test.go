package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/melnyk-o/airport-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware_validToken(t *testing.T) {
	mockService := &MockAuthUseCase{}
	ident := &auth.Identity{UserID: 7, Email: "user@example.com"}
	mockService.On("ParseToken", "good-token").Return(ident, nil)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/orders", nil)
	c.Request.Header.Set("Authorization", "Bearer good-token")

	Auth(mockService)(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, ident, identityFrom(c))
}

func TestAuthMiddleware_missingHeader(t *testing.T) {
	mockService := &MockAuthUseCase{}

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/orders", nil)

	Auth(mockService)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_badToken(t *testing.T) {
	mockService := &MockAuthUseCase{}
	mockService.On("ParseToken", "bad-token").Return(nil, auth.ErrInvalidToken)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/orders", nil)
	c.Request.Header.Set("Authorization", "Bearer bad-token")

	Auth(mockService)(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnly(t *testing.T) {
	testCases := []struct {
		name     string
		identity *auth.Identity
		aborted  bool
		code     int
	}{
		{name: "admin", identity: &auth.Identity{UserID: 1, Admin: true}, aborted: false, code: http.StatusOK},
		{name: "regular user", identity: &auth.Identity{UserID: 2}, aborted: true, code: http.StatusForbidden},
		{name: "no identity", identity: nil, aborted: true, code: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/airports", nil)
			if tc.identity != nil {
				c.Set(identityKey, tc.identity)
			}

			AdminOnly()(c)

			assert.Equal(t, tc.aborted, c.IsAborted())
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	middleware := RateLimit(1, 2)

	gin.SetMode(gin.TestMode)
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("POST", "/orders", nil)
		c.Request.RemoteAddr = "10.0.0.1:1234"

		middleware(c)
		codes = append(codes, w.Code)
	}

	// burst of 2, third request in the same instant is rejected
	assert.Equal(t, http.StatusOK, codes[0])
	assert.Equal(t, http.StatusOK, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
}
