package response

import "github.com/gin-gonic/gin"

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError writes an error envelope whose errors field carries a machine readable code
func RespondError(c *gin.Context, code int, message string, errorCode string, details map[string]interface{}) {
	body := ErrorDetail{Code: errorCode}
	if len(details) > 0 {
		body.Details = details
	}
	RespondJSON(c, "error", code, message, nil, body)
}
