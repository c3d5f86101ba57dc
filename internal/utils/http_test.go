package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSuccessResponse(t *testing.T) {
	c, rec := newTestContext()

	err := SuccessResponse(c, http.StatusOK, "Location retrieved", map[string]interface{}{"lat": 30.0444})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.Equal(t, "Location retrieved", response.Message)
	assert.Equal(t, map[string]interface{}{"lat": 30.0444}, response.Data)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name         string
		call         func(c echo.Context) error
		expectedCode int
		expectedMsg  string
	}{
		{"Bad request", func(c echo.Context) error { return BadRequestResponse(c, "invalid ride group id") }, http.StatusBadRequest, "invalid ride group id"},
		{"Unauthorized default", func(c echo.Context) error { return UnauthorizedResponse(c, "") }, http.StatusUnauthorized, "Unauthorized"},
		{"Forbidden default", func(c echo.Context) error { return ForbiddenResponse(c, "") }, http.StatusForbidden, "Forbidden"},
		{"Not found default", func(c echo.Context) error { return NotFoundResponse(c, "") }, http.StatusNotFound, "Resource not found"},
		{"Too many requests default", func(c echo.Context) error { return TooManyRequestsResponse(c, "") }, http.StatusTooManyRequests, "Rate limit exceeded"},
		{"Internal default", func(c echo.Context) error { return InternalServerErrorResponse(c, "") }, http.StatusInternalServerError, "Internal server error"},
		{"Unavailable custom", func(c echo.Context) error { return ServiceUnavailableResponse(c, "redis down") }, http.StatusServiceUnavailable, "redis down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext()

			require.NoError(t, tt.call(c))

			assert.Equal(t, tt.expectedCode, rec.Code)
			var response ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.False(t, response.Success)
			assert.Equal(t, tt.expectedMsg, response.Error)
			assert.Equal(t, tt.expectedCode, response.Code)
		})
	}
}
