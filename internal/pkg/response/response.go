package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Redirect is an error response the client turns into a notice plus navigation.
func Redirect(c *gin.Context, statusCode int, code, message, to string) {
	ErrorWithDetails(c, statusCode, code, message, gin.H{"redirect": to})
}

// Unavailable reports a TransientRequestFailure; the client may retry the same request.
func Unavailable(c *gin.Context, message string) {
	ErrorWithDetails(c, http.StatusServiceUnavailable, "REQUEST_FAILED", message, gin.H{"retryable": true})
}

func ValidationFailed(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data", fields)
}
