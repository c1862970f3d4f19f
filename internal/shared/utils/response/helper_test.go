package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusConflict, "Booth is no longer available", "BOOTH_UNAVAILABLE", nil)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.JSONEq(t, `{
		"status": "error",
		"status_code": 409,
		"message": "Booth is no longer available",
		"errors": {"code": "BOOTH_UNAVAILABLE"}
	}`, w.Body.String())
}

func TestRespondError_WithDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondError(c, http.StatusBadRequest, "Promo rejected", "PROMO_REJECTED", map[string]interface{}{"reason": "EXPIRED"})

	assert.JSONEq(t, `{
		"status": "error",
		"status_code": 400,
		"message": "Promo rejected",
		"errors": {"code": "PROMO_REJECTED", "details": {"reason": "EXPIRED"}}
	}`, w.Body.String())
}

func TestRespondJSON_Success(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondJSON(c, "success", http.StatusOK, "ok", map[string]int{"total": 2}, nil)

	assert.JSONEq(t, `{"status":"success","status_code":200,"message":"ok","data":{"total":2}}`, w.Body.String())
}
