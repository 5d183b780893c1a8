package utils

import "github.com/gin-gonic/gin"

// Response is the envelope every endpoint answers with: a success flag, a
// human-readable message, and either a data payload or an error detail.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func RespondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// RespondErrorDetail is for failures where the caller benefits from the
// underlying detail, e.g. field-level binding errors.
func RespondErrorDetail(c *gin.Context, status int, message, detail string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// AbortError rejects the request from middleware with the same envelope.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
	})
}
